package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

type GetCustomerOrdersQueryHandler struct {
	orders OrderReader
	users  ports.UserDirectory
}

func NewGetCustomerOrdersQueryHandler(orders OrderReader, users ports.UserDirectory) GetCustomerOrdersQueryHandler {
	return GetCustomerOrdersQueryHandler{orders: orders, users: users}
}

// Handle returns the customer's orders newest first. Reading someone else's
// orders requires staff privilege.
func (h GetCustomerOrdersQueryHandler) Handle(ctx context.Context, query GetCustomerOrdersQuery) ([]*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if !query.IsOwnOrders() {
		if _, err := requireStaff(ctx, h.users, query.ActorID()); err != nil {
			return nil, err
		}
	}

	return h.orders.FindByCustomer(ctx, query.CustomerID())
}
