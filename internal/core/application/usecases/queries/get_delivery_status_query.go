package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetDeliveryStatusQueryIsNotConstructed = errors.New(
	"GetDeliveryStatusQuery must be created via NewGetDeliveryStatusQuery constructor",
)

// GetDeliveryStatusQuery asks the courier for the shipment status of an
// order on behalf of actorID.
type GetDeliveryStatusQuery struct {
	orderID kernel.UUID
	actorID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetDeliveryStatusQuery(orderID, actorID kernel.UUID) (GetDeliveryStatusQuery, error) {
	if err := errors.Join(orderID.Validate(), actorID.Validate()); err != nil {
		return GetDeliveryStatusQuery{}, err
	}
	return GetDeliveryStatusQuery{orderID: orderID, actorID: actorID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetDeliveryStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryStatusQueryIsNotConstructed)
}

func (q GetDeliveryStatusQuery) OrderID() kernel.UUID { return q.orderID }

func (q GetDeliveryStatusQuery) ActorID() kernel.UUID { return q.actorID }

// DeliveryStatus is the courier's view of one shipment.
type DeliveryStatus struct {
	OrderID    kernel.UUID
	TrackingID string
	Courier    map[string]any
}
