package commands

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrInsufficientStock is returned before persistence when a guest asks
	// for more units than the catalog holds.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrActorIsNotStaff rejects staff operations by customers. It is an
	// invalid transition so callers treat it like any other failed guard.
	ErrActorIsNotStaff = fmt.Errorf("%w: actor lacks staff privilege", order.ErrInvalidTransition)
	// ErrShipmentNotConfirmed is returned when the courier did not
	// acknowledge a ready-for-collection notice.
	ErrShipmentNotConfirmed = errors.New("courier did not confirm the shipment")
)

// resultLabel classifies err for metrics.
func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ports.ErrConcurrentModification):
		return "concurrent_modification"
	case errors.Is(err, order.ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, errs.ErrObjectNotFound):
		return "not_found"
	case errors.Is(err, ErrInsufficientStock):
		return "insufficient_stock"
	}
	return "error"
}
