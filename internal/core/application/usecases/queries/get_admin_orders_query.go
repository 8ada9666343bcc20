package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/identity"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrGetAdminOrdersQueryIsNotConstructed = errors.New(
	"GetAdminOrdersQuery must be created via NewGetAdminOrdersQuery constructor",
)

// GetAdminOrdersQuery lists orders visible to a staff member, optionally
// filtered by status.
type GetAdminOrdersQuery struct {
	actorID kernel.UUID
	status  *order.Status

	guard guard.ConstructorGuard
}

// NewGetAdminOrdersQuery builds the query. A nil status lists every order.
func NewGetAdminOrdersQuery(actorID kernel.UUID, status *order.Status) (GetAdminOrdersQuery, error) {
	if err := actorID.Validate(); err != nil {
		return GetAdminOrdersQuery{}, err
	}
	q := GetAdminOrdersQuery{actorID: actorID, guard: guard.NewConstructorGuard()}
	if status != nil {
		if err := status.Validate(); err != nil {
			return GetAdminOrdersQuery{}, err
		}
		s := *status
		q.status = &s
	}
	return q, nil
}

func (q GetAdminOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetAdminOrdersQueryIsNotConstructed)
}

func (q GetAdminOrdersQuery) ActorID() kernel.UUID { return q.actorID }

func (q GetAdminOrdersQuery) Status() *order.Status {
	if q.status == nil {
		return nil
	}
	s := *q.status
	return &s
}

// AdminOrderView is an order as shown to staff. Customer is nil for guest
// orders.
type AdminOrderView struct {
	Order    *order.Order
	Customer *identity.User
}
