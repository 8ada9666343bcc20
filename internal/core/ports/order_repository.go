package ports

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// ErrConcurrentModification is returned by CompareAndSetStatus when the stored
// order no longer matches the state the caller loaded.
var ErrConcurrentModification = errors.New("order was modified concurrently")

// OrderRepository defines the persistence contract for order aggregates.
// Listing methods return orders newest first.
type OrderRepository interface {
	// Add persists a new order.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get returns errs.ObjectNotFoundError when id is unknown.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// FindByCustomer lists the orders placed by a registered customer.
	FindByCustomer(ctx context.Context, customerID kernel.UUID) ([]*order.Order, error)

	// FindByStatus lists orders in status, or every order when status is nil.
	FindByStatus(ctx context.Context, status *order.Status) ([]*order.Order, error)

	// FindByAssignedAdmin lists the orders a staff member last acted on.
	FindByAssignedAdmin(ctx context.Context, adminID kernel.UUID) ([]*order.Order, error)

	// CompareAndSetStatus stores the aggregate's status, assigned admin and
	// tracking id only if the stored status still equals expected and the
	// stored version equals aggregate.Version(). On success the stored and
	// in-memory versions both advance by one. A lost race yields
	// ErrConcurrentModification; a missing row yields errs.ObjectNotFoundError.
	CompareAndSetStatus(ctx context.Context, aggregate *order.Order, expected order.Status) error

	// Delete removes the order and its items.
	Delete(ctx context.Context, id kernel.UUID) error
}
