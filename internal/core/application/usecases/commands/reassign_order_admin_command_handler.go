package commands

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// ReassignOrderAdminCommandHandler replaces the assigned admin in any status.
// Both the actor and the new admin must be staff.
type ReassignOrderAdminCommandHandler struct {
	uowFactory OrderUoWFactory
	users      ports.UserDirectory
	recorder   LifecycleRecorder
	logger     *slog.Logger
}

func NewReassignOrderAdminCommandHandler(
	uowFactory OrderUoWFactory,
	users ports.UserDirectory,
	recorder LifecycleRecorder,
	logger *slog.Logger,
) ReassignOrderAdminCommandHandler {
	return ReassignOrderAdminCommandHandler{
		uowFactory: uowFactory,
		users:      users,
		recorder:   recorder,
		logger:     logger.With("component", "reassign_order_admin_handler"),
	}
}

func (h ReassignOrderAdminCommandHandler) Handle(ctx context.Context, cmd ReassignOrderAdminCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	o, err := h.reassign(ctx, cmd)
	h.recorder.ObserveTransition("reassign", resultLabel(err))
	if err != nil {
		return nil, err
	}

	h.logger.InfoContext(ctx, "order reassigned",
		"order_id", o.ID().String(),
		"actor_id", cmd.ActorID().String(),
		"admin_id", cmd.NewAdminID().String())
	return o, nil
}

func (h ReassignOrderAdminCommandHandler) reassign(ctx context.Context, cmd ReassignOrderAdminCommand) (*order.Order, error) {
	if _, err := resolveStaff(ctx, h.users, cmd.ActorID()); err != nil {
		return nil, err
	}
	admin, err := resolveStaff(ctx, h.users, cmd.NewAdminID())
	if err != nil {
		return nil, err
	}

	return commitTransition(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		return o.Reassign(admin.ID())
	})
}
