package commands

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// DeclineOrderCommandHandler moves a Pending order to Declined.
type DeclineOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	users      ports.UserDirectory
	recorder   LifecycleRecorder
	logger     *slog.Logger
}

func NewDeclineOrderCommandHandler(
	uowFactory OrderUoWFactory,
	users ports.UserDirectory,
	recorder LifecycleRecorder,
	logger *slog.Logger,
) DeclineOrderCommandHandler {
	return DeclineOrderCommandHandler{
		uowFactory: uowFactory,
		users:      users,
		recorder:   recorder,
		logger:     logger.With("component", "decline_order_handler"),
	}
}

func (h DeclineOrderCommandHandler) Handle(ctx context.Context, cmd DeclineOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	o, err := h.decline(ctx, cmd)
	h.recorder.ObserveTransition("decline", resultLabel(err))
	if err != nil {
		return nil, err
	}

	h.logger.InfoContext(ctx, "order declined", "order_id", o.ID().String(), "admin_id", cmd.ActorID().String())
	return o, nil
}

func (h DeclineOrderCommandHandler) decline(ctx context.Context, cmd DeclineOrderCommand) (*order.Order, error) {
	actor, err := resolveStaff(ctx, h.users, cmd.ActorID())
	if err != nil {
		return nil, err
	}

	return commitTransition(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		return o.Decline(actor.ID())
	})
}
