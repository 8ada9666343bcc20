package commands

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/ports"
)

// DeleteOrderCommandHandler removes an order and its items.
type DeleteOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	users      ports.UserDirectory
	logger     *slog.Logger
}

func NewDeleteOrderCommandHandler(
	uowFactory OrderUoWFactory,
	users ports.UserDirectory,
	logger *slog.Logger,
) DeleteOrderCommandHandler {
	return DeleteOrderCommandHandler{
		uowFactory: uowFactory,
		users:      users,
		logger:     logger.With("component", "delete_order_handler"),
	}
}

// Handle returns errs.ObjectNotFoundError when the order does not exist.
func (h DeleteOrderCommandHandler) Handle(ctx context.Context, cmd DeleteOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if _, err := resolveStaff(ctx, h.users, cmd.ActorID()); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.OrderRepository().Delete(ctx, cmd.OrderID()); err != nil {
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	h.logger.InfoContext(ctx, "order deleted", "order_id", cmd.OrderID().String(), "admin_id", cmd.ActorID().String())
	return nil
}
