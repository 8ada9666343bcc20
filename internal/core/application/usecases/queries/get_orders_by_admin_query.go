package queries

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/guard"
)

var ErrGetOrdersByAdminQueryIsNotConstructed = errors.New(
	"GetOrdersByAdminQuery must be created via NewGetOrdersByAdminQuery constructor",
)

// GetOrdersByAdminQuery lists the orders a staff member last acted on.
type GetOrdersByAdminQuery struct {
	adminID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrdersByAdminQuery(adminID kernel.UUID) (GetOrdersByAdminQuery, error) {
	if err := adminID.Validate(); err != nil {
		return GetOrdersByAdminQuery{}, err
	}
	return GetOrdersByAdminQuery{adminID: adminID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrdersByAdminQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersByAdminQueryIsNotConstructed)
}

func (q GetOrdersByAdminQuery) AdminID() kernel.UUID { return q.adminID }

type GetOrdersByAdminQueryHandler struct {
	orders OrderReader
	users  ports.UserDirectory
}

func NewGetOrdersByAdminQueryHandler(orders OrderReader, users ports.UserDirectory) GetOrdersByAdminQueryHandler {
	return GetOrdersByAdminQueryHandler{orders: orders, users: users}
}

func (h GetOrdersByAdminQueryHandler) Handle(ctx context.Context, query GetOrdersByAdminQuery) ([]*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if _, err := requireStaff(ctx, h.users, query.AdminID()); err != nil {
		return nil, err
	}
	return h.orders.FindByAssignedAdmin(ctx, query.AdminID())
}
