package commands

import "errors"

var (
	// ErrEmptySelection is returned when none of the requested cart item ids
	// match the caller's cart.
	ErrEmptySelection = errors.New("no cart items selected")
	// ErrForbidden is returned when the requester is neither the order owner
	// nor an administrator.
	ErrForbidden = errors.New("not allowed to access this order")
	// ErrAlreadyCanceled is returned when cancellation is attempted on an
	// order that is already canceled. Repeated cancellation fails loudly so
	// double-cancel bugs surface to the caller instead of restoring stock twice.
	ErrAlreadyCanceled = errors.New("order is already canceled")
	// ErrSameStatus is returned when a status update requests the status the
	// item already has.
	ErrSameStatus = errors.New("item already has the requested status")
	// ErrStockUpdateFailed is returned when a catalog stock decrement fails
	// during creation. The order row stays PENDING for recovery.
	ErrStockUpdateFailed = errors.New("catalog stock update failed")
	// ErrStockRestoreFailed is returned when a stock restoration fails during
	// cancellation. Nothing is mutated, so the cancel can be retried.
	ErrStockRestoreFailed = errors.New("catalog stock restore failed")
	// ErrCancelViaStatus is returned when the generic status endpoint is used
	// to cancel. Cancellation owns stock restoration and has its own endpoint.
	ErrCancelViaStatus = errors.New("cancellation must go through the cancel endpoint")
)
