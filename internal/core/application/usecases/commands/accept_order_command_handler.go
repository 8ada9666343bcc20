package commands

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// AcceptOrderCommandHandler moves a Pending order to Accepted. Two staff
// members racing on the same order cannot both win: the loser gets
// order.ErrInvalidTransition or ports.ErrConcurrentModification.
type AcceptOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	users      ports.UserDirectory
	recorder   LifecycleRecorder
	logger     *slog.Logger
}

func NewAcceptOrderCommandHandler(
	uowFactory OrderUoWFactory,
	users ports.UserDirectory,
	recorder LifecycleRecorder,
	logger *slog.Logger,
) AcceptOrderCommandHandler {
	return AcceptOrderCommandHandler{
		uowFactory: uowFactory,
		users:      users,
		recorder:   recorder,
		logger:     logger.With("component", "accept_order_handler"),
	}
}

func (h AcceptOrderCommandHandler) Handle(ctx context.Context, cmd AcceptOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	o, err := h.accept(ctx, cmd)
	h.recorder.ObserveTransition("accept", resultLabel(err))
	if err != nil {
		return nil, err
	}

	h.logger.InfoContext(ctx, "order accepted", "order_id", o.ID().String(), "admin_id", cmd.ActorID().String())
	return o, nil
}

func (h AcceptOrderCommandHandler) accept(ctx context.Context, cmd AcceptOrderCommand) (*order.Order, error) {
	actor, err := resolveStaff(ctx, h.users, cmd.ActorID())
	if err != nil {
		return nil, err
	}

	return commitTransition(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		return o.Accept(actor.ID())
	})
}
