// Package queries holds the read side of the order lifecycle. Queries never
// change state; access checks that depend on the caller's identity live with
// the query that needs them.
package queries

import (
	"context"
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/identity"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

var (
	// ErrAccessDenied is returned when the caller may not read the requested
	// orders.
	ErrAccessDenied = errors.New("access denied")
	// ErrDeliveryStatusUnavailable is returned when the courier could not be
	// asked for a shipment status.
	ErrDeliveryStatusUnavailable = errors.New("delivery status unavailable")
)

// OrderReader is the read-only part of ports.OrderRepository.
type OrderReader interface {
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
	FindByCustomer(ctx context.Context, customerID kernel.UUID) ([]*order.Order, error)
	FindByStatus(ctx context.Context, status *order.Status) ([]*order.Order, error)
	FindByAssignedAdmin(ctx context.Context, adminID kernel.UUID) ([]*order.Order, error)
}

var _ OrderReader = (ports.OrderRepository)(nil)

func requireStaff(ctx context.Context, users ports.UserDirectory, actorID kernel.UUID) (*identity.User, error) {
	actor, err := users.Get(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.IsStaff() {
		return nil, fmt.Errorf("%w: user %s is not staff", ErrAccessDenied, actorID)
	}
	return actor, nil
}
