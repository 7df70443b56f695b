package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopkit/ordering/internal/auth"
	"github.com/shopkit/ordering/internal/orders/app"
	"github.com/shopkit/ordering/internal/orders/app/commands"
	"github.com/shopkit/ordering/internal/orders/app/queries"
	"github.com/shopkit/ordering/internal/orders/domain"
	"github.com/shopkit/ordering/internal/orders/ports"
)

// Handler exposes HTTP endpoints for order operations.
type Handler struct {
	service *app.Service
}

// NewHandler constructs a Handler.
func NewHandler(service *app.Service) *Handler {
	return &Handler{service: service}
}

// Register binds the order routes to the provided router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/orders", func(r chi.Router) {
		r.Post("/create", h.createOrder)
		r.Get("/", h.listOrders)
		r.Get("/{orderID}", h.getOrder)
		r.Put("/{orderID}/status", h.updateOrderStatus)
		r.Delete("/{orderID}/cancel", h.cancelOrder)
		r.Put("/items/{orderItemID}/status", h.updateOrderItemStatus)
	})
}

type createOrderRequest struct {
	CartItemIDs []int64 `json:"cartItemIds"`
	Address     string  `json:"address"`
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, err := auth.FromContext(ctx)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	idemKey := strings.TrimSpace(r.Header.Get("Idempotency-Key"))
	if idemKey != "" {
		stored, err := h.service.GetIdempotentResponse(ctx, idemKey)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if stored != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(stored.StatusCode)
			_, _ = w.Write(stored.Body)
			return
		}
	}

	var payload createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	order, err := h.service.CreateOrder(ctx, identity, payload.CartItemIDs, payload.Address)
	if err != nil {
		writeError(w, statusFromError(err), err.Error())
		return
	}

	response := map[string]any{"order": order}
	body, err := json.Marshal(response)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if idemKey != "" {
		stored := ports.StoredResponse{
			StatusCode: http.StatusCreated,
			Body:       body,
			OrderID:    order.ID,
		}
		if err := h.service.SaveIdempotentResponse(ctx, idemKey, stored); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_, _ = w.Write(body)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	identity, err := auth.FromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	order, err := h.service.GetOrder(r.Context(), identity, chi.URLParam(r, "orderID"))
	if err != nil {
		writeError(w, statusFromError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"order": order})
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	identity, err := auth.FromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var page, pageSize int
	if pageParam := r.URL.Query().Get("page"); pageParam != "" {
		if parsed, err := strconv.Atoi(pageParam); err == nil {
			page = parsed
		}
	}
	if pageSizeParam := r.URL.Query().Get("page_size"); pageSizeParam != "" {
		if parsed, err := strconv.Atoi(pageSizeParam); err == nil {
			pageSize = parsed
		}
	}

	orders, err := h.service.ListOrders(r.Context(), identity, r.URL.Query().Get("email"), page, pageSize)
	if err != nil {
		writeError(w, statusFromError(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"orders": orders})
}

func (h *Handler) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	identity, err := auth.FromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	order, err := h.service.UpdateOrderStatus(r.Context(), identity, chi.URLParam(r, "orderID"), r.URL.Query().Get("status"))
	if err != nil {
		writeError(w, statusFromError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"order": order})
}

func (h *Handler) cancelOrder(w http.ResponseWriter, r *http.Request) {
	identity, err := auth.FromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	if err := h.service.CancelOrder(r.Context(), identity, chi.URLParam(r, "orderID")); err != nil {
		writeError(w, statusFromError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "canceled"})
}

func (h *Handler) updateOrderItemStatus(w http.ResponseWriter, r *http.Request) {
	identity, err := auth.FromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	order, err := h.service.CancelOrderItem(r.Context(), identity, chi.URLParam(r, "orderItemID"), r.URL.Query().Get("status"))
	if err != nil {
		writeError(w, statusFromError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"order": order})
}

func statusFromError(err error) int {
	switch {
	case errors.Is(err, ports.ErrOrderNotFound),
		errors.Is(err, ports.ErrOrderItemNotFound),
		errors.Is(err, ports.ErrUserNotFound),
		errors.Is(err, ports.ErrProductNotFound):
		return http.StatusNotFound
	case errors.Is(err, commands.ErrForbidden),
		errors.Is(err, queries.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, commands.ErrEmptySelection),
		errors.Is(err, domain.ErrUnknownStatus):
		return http.StatusBadRequest
	case errors.Is(err, commands.ErrAlreadyCanceled),
		errors.Is(err, commands.ErrSameStatus),
		errors.Is(err, commands.ErrCancelViaStatus),
		errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, ports.ErrCartUnavailable),
		errors.Is(err, ports.ErrCatalogUnavailable),
		errors.Is(err, ports.ErrUserServiceUnavailable),
		errors.Is(err, commands.ErrStockUpdateFailed),
		errors.Is(err, commands.ErrStockRestoreFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": message})
}
