package commands

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// MarkOrderDeliveredCommandHandler closes an order. Any staff member may
// close a delivery order; a pickup order only by the admin it is assigned to.
type MarkOrderDeliveredCommandHandler struct {
	uowFactory OrderUoWFactory
	users      ports.UserDirectory
	recorder   LifecycleRecorder
	logger     *slog.Logger
}

func NewMarkOrderDeliveredCommandHandler(
	uowFactory OrderUoWFactory,
	users ports.UserDirectory,
	recorder LifecycleRecorder,
	logger *slog.Logger,
) MarkOrderDeliveredCommandHandler {
	return MarkOrderDeliveredCommandHandler{
		uowFactory: uowFactory,
		users:      users,
		recorder:   recorder,
		logger:     logger.With("component", "mark_order_delivered_handler"),
	}
}

func (h MarkOrderDeliveredCommandHandler) Handle(ctx context.Context, cmd MarkOrderDeliveredCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	o, err := h.markDelivered(ctx, cmd)
	h.recorder.ObserveTransition("mark_delivered", resultLabel(err))
	if err != nil {
		return nil, err
	}

	h.logger.InfoContext(ctx, "order delivered", "order_id", o.ID().String(), "admin_id", cmd.ActorID().String())
	return o, nil
}

func (h MarkOrderDeliveredCommandHandler) markDelivered(ctx context.Context, cmd MarkOrderDeliveredCommand) (*order.Order, error) {
	actor, err := resolveStaff(ctx, h.users, cmd.ActorID())
	if err != nil {
		return nil, err
	}

	return commitTransition(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		return o.MarkDelivered(actor.ID())
	})
}
