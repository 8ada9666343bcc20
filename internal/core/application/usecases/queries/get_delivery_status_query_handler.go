package queries

import (
	"context"
	"fmt"
	"log/slog"

	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

type GetDeliveryStatusQueryHandler struct {
	orders     OrderReader
	users      ports.UserDirectory
	dispatcher ports.DeliveryDispatcher
	logger     *slog.Logger
}

func NewGetDeliveryStatusQueryHandler(
	orders OrderReader,
	users ports.UserDirectory,
	dispatcher ports.DeliveryDispatcher,
	logger *slog.Logger,
) GetDeliveryStatusQueryHandler {
	return GetDeliveryStatusQueryHandler{
		orders:     orders,
		users:      users,
		dispatcher: dispatcher,
		logger:     logger.With("component", "delivery_status_query"),
	}
}

// Handle returns:
//   - ErrAccessDenied when a customer asks about someone else's order
//   - errs.ObjectNotFoundError when the order was never handed to the courier
//   - ErrDeliveryStatusUnavailable when the courier call fails
func (h GetDeliveryStatusQueryHandler) Handle(ctx context.Context, query GetDeliveryStatusQuery) (DeliveryStatus, error) {
	if err := query.Validate(); err != nil {
		return DeliveryStatus{}, err
	}

	actor, err := h.users.Get(ctx, query.ActorID())
	if err != nil {
		return DeliveryStatus{}, err
	}

	o, err := h.orders.Get(ctx, query.OrderID())
	if err != nil {
		return DeliveryStatus{}, err
	}

	if !actor.IsStaff() && !o.Customer().IsCustomer(actor.ID()) {
		return DeliveryStatus{}, fmt.Errorf("%w: order %s belongs to another customer", ErrAccessDenied, o.ID())
	}

	if !o.HasTracking() {
		return DeliveryStatus{}, errs.NewObjectNotFoundErrorWithCause("trackingID", o.ID().String(),
			fmt.Errorf("order %s was not sent for delivery", o.ID()))
	}

	statuses, err := h.dispatcher.GetStatus(ctx, []string{o.TrackingID()})
	if err != nil {
		h.logger.WarnContext(ctx, "courier status lookup failed",
			"order_id", o.ID().String(), "tracking_id", o.TrackingID(), "error", err)
		return DeliveryStatus{}, fmt.Errorf("%w: %w", ErrDeliveryStatusUnavailable, err)
	}

	return DeliveryStatus{
		OrderID:    o.ID(),
		TrackingID: o.TrackingID(),
		Courier:    statuses,
	}, nil
}
