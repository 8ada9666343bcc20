package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetCustomerOrdersQueryIsNotConstructed = errors.New(
	"GetCustomerOrdersQuery must be created via NewGetCustomerOrdersQuery constructor",
)

// GetCustomerOrdersQuery lists the orders of one registered customer. The
// actor is either that customer or a staff member.
//
// Example:
//
//	own, _ := NewGetCustomerOrdersQuery(userID, userID)
//	forStaff, _ := NewGetCustomerOrdersQuery(customerID, adminID)
type GetCustomerOrdersQuery struct {
	customerID kernel.UUID
	actorID    kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetCustomerOrdersQuery(customerID, actorID kernel.UUID) (GetCustomerOrdersQuery, error) {
	if err := errors.Join(customerID.Validate(), actorID.Validate()); err != nil {
		return GetCustomerOrdersQuery{}, err
	}
	return GetCustomerOrdersQuery{
		customerID: customerID,
		actorID:    actorID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q GetCustomerOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetCustomerOrdersQueryIsNotConstructed)
}

func (q GetCustomerOrdersQuery) CustomerID() kernel.UUID { return q.customerID }

func (q GetCustomerOrdersQuery) ActorID() kernel.UUID { return q.actorID }

// IsOwnOrders reports whether the customer asks for their own orders.
func (q GetCustomerOrdersQuery) IsOwnOrders() bool {
	return q.customerID.IsEqual(q.actorID)
}
