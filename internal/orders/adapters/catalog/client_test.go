package catalog_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopkit/ordering/internal/orders/adapters/catalog"
	"github.com/shopkit/ordering/internal/orders/ports"
)

func TestGetProductsByIDs(t *testing.T) {
	t.Run("batch-resolves products", func(t *testing.T) {
		var gotIDs []int64
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "/products/batch", r.URL.Path)

			var payload struct {
				ProductIDs []int64 `json:"productIds"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			gotIDs = payload.ProductIDs

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[{"id":100,"name":"Widget","price":"10.00","stockQuantity":5}]`))
		}))
		defer server.Close()

		client := catalog.NewClient(server.URL, time.Second)
		products, err := client.GetProductsByIDs(context.Background(), []int64{100, 101})

		require.NoError(t, err)
		assert.Equal(t, []int64{100, 101}, gotIDs)
		require.Len(t, products, 1)
		assert.Equal(t, "Widget", products[0].Name)
		assert.Equal(t, "10.00", products[0].Price.StringFixed(2))
	})

	t.Run("server error maps to catalog unavailable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		client := catalog.NewClient(server.URL, time.Second)
		_, err := client.GetProductsByIDs(context.Background(), []int64{100})

		assert.ErrorIs(t, err, ports.ErrCatalogUnavailable)
	})

	t.Run("unreachable server maps to catalog unavailable", func(t *testing.T) {
		client := catalog.NewClient("http://127.0.0.1:1", 100*time.Millisecond)
		_, err := client.GetProductsByIDs(context.Background(), []int64{100})

		assert.ErrorIs(t, err, ports.ErrCatalogUnavailable)
	})
}

func TestStockAdjustments(t *testing.T) {
	t.Run("decrement sends negative delta", func(t *testing.T) {
		var gotPath string
		var gotDelta int
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPut, r.Method)
			gotPath = r.URL.Path

			var payload struct {
				Delta int `json:"delta"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			gotDelta = payload.Delta
			w.WriteHeader(http.StatusNoContent)
		}))
		defer server.Close()

		client := catalog.NewClient(server.URL, time.Second)
		err := client.DecrementStock(context.Background(), 100, 3)

		require.NoError(t, err)
		assert.Equal(t, "/products/100/stock", gotPath)
		assert.Equal(t, -3, gotDelta)
	})

	t.Run("restore sends positive delta", func(t *testing.T) {
		var gotDelta int
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var payload struct {
				Delta int `json:"delta"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			gotDelta = payload.Delta
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := catalog.NewClient(server.URL, time.Second)
		err := client.RestoreStock(context.Background(), 100, 3)

		require.NoError(t, err)
		assert.Equal(t, 3, gotDelta)
	})

	t.Run("unknown product maps to not found", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		client := catalog.NewClient(server.URL, time.Second)
		err := client.DecrementStock(context.Background(), 999, 1)

		assert.ErrorIs(t, err, ports.ErrProductNotFound)
	})
}
