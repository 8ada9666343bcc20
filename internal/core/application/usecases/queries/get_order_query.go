package queries

import (
	"context"
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

type GetOrderQuery struct {
	orderID kernel.UUID
	actorID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(orderID, actorID kernel.UUID) (GetOrderQuery, error) {
	if err := errors.Join(orderID.Validate(), actorID.Validate()); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{orderID: orderID, actorID: actorID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderID() kernel.UUID { return q.orderID }

func (q GetOrderQuery) ActorID() kernel.UUID { return q.actorID }

type GetOrderQueryHandler struct {
	orders OrderReader
	users  ports.UserDirectory
}

func NewGetOrderQueryHandler(orders OrderReader, users ports.UserDirectory) GetOrderQueryHandler {
	return GetOrderQueryHandler{orders: orders, users: users}
}

// Handle returns errs.ObjectNotFoundError when the order does not exist and
// ErrAccessDenied when a customer asks for someone else's order.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	actor, err := h.users.Get(ctx, query.ActorID())
	if err != nil {
		return nil, err
	}

	o, err := h.orders.Get(ctx, query.OrderID())
	if err != nil {
		return nil, err
	}
	if !actor.IsStaff() && !o.Customer().IsCustomer(actor.ID()) {
		return nil, fmt.Errorf("%w: order %s belongs to another customer", ErrAccessDenied, o.ID())
	}
	return o, nil
}
