package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"fulfillment/internal/core/domain/model/identity"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

const (
	advisoryPickup         = "Order ready for pickup"
	advisoryDispatchFailed = "Order ready but delivery creation failed. Please try again or contact support."
	advisoryDispatchedFmt  = "Order sent to the courier for delivery. Tracking ID: %s"
)

// MarkOrderReadyResult is the outcome of a successful mark ready. Dispatch is
// the zero value for pickup orders.
type MarkOrderReadyResult struct {
	Order    *order.Order
	Dispatch ports.DispatchResult
	Advisory string
}

// MarkOrderReadyCommandHandler marks an order ready and, for delivery
// orders, requests a courier shipment.
//
// The order is loaded and guarded first, the courier is called with no
// transaction open, and the result is committed with a conditional write on
// the loaded status and version. Once the order passes its guard the
// remaining steps ignore cancellation of ctx; the courier call is bounded by
// the dispatcher's own timeout. A courier failure leaves the order Ready
// without tracking and still succeeds; a change that raced ahead of the
// courier call makes the commit fail with ports.ErrConcurrentModification.
type MarkOrderReadyCommandHandler struct {
	uowFactory OrderUoWFactory
	users      ports.UserDirectory
	dispatcher ports.DeliveryDispatcher
	recorder   LifecycleRecorder
	logger     *slog.Logger
}

func NewMarkOrderReadyCommandHandler(
	uowFactory OrderUoWFactory,
	users ports.UserDirectory,
	dispatcher ports.DeliveryDispatcher,
	recorder LifecycleRecorder,
	logger *slog.Logger,
) MarkOrderReadyCommandHandler {
	return MarkOrderReadyCommandHandler{
		uowFactory: uowFactory,
		users:      users,
		dispatcher: dispatcher,
		recorder:   recorder,
		logger:     logger.With("component", "mark_order_ready_handler"),
	}
}

func (h MarkOrderReadyCommandHandler) Handle(ctx context.Context, cmd MarkOrderReadyCommand) (MarkOrderReadyResult, error) {
	if err := cmd.Validate(); err != nil {
		return MarkOrderReadyResult{}, err
	}

	result, err := h.markReady(ctx, cmd)
	h.recorder.ObserveTransition("mark_ready", resultLabel(err))
	return result, err
}

func (h MarkOrderReadyCommandHandler) markReady(ctx context.Context, cmd MarkOrderReadyCommand) (MarkOrderReadyResult, error) {
	actor, err := resolveStaff(ctx, h.users, cmd.ActorID())
	if err != nil {
		return MarkOrderReadyResult{}, err
	}

	o, err := h.uowFactory.Create().OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return MarkOrderReadyResult{}, err
	}

	expected := o.Status()
	if err = o.MarkReady(actor.ID()); err != nil {
		return MarkOrderReadyResult{}, err
	}

	// The courier may accept the shipment at any point from here on, so the
	// caller going away must not stop the final write.
	ctx = context.WithoutCancel(ctx)

	result := MarkOrderReadyResult{Order: o, Advisory: advisoryPickup}
	if o.DeliveryType() == order.Delivery {
		result.Dispatch = h.dispatch(ctx, o)
		result.Advisory = advisoryDispatchFailed

		if result.Dispatch.Succeeded() {
			if err = o.ShipOut(result.Dispatch.TrackingID); err != nil {
				return MarkOrderReadyResult{}, err
			}
			result.Advisory = fmt.Sprintf(advisoryDispatchedFmt, o.TrackingID())
		}
	}

	if err = h.commit(ctx, o, expected); err != nil {
		if result.Dispatch.Succeeded() {
			h.logger.ErrorContext(ctx, "courier shipment created but order commit failed, reconcile manually",
				"order_id", o.ID().String(),
				"tracking_id", result.Dispatch.TrackingID,
				"error", err)
		}
		return MarkOrderReadyResult{}, err
	}

	h.logger.InfoContext(ctx, "order marked ready",
		"order_id", o.ID().String(),
		"admin_id", actor.ID().String(),
		"status", o.Status().String(),
		"tracking_id", o.TrackingID())
	return result, nil
}

// dispatch calls the courier for o. A registered customer whose profile can
// no longer be read is shipped with guest-style fallbacks.
func (h MarkOrderReadyCommandHandler) dispatch(ctx context.Context, o *order.Order) ports.DispatchResult {
	var customer *identity.User
	if id, ok := o.Customer().ID(); ok {
		user, err := h.users.Get(ctx, id)
		switch {
		case err == nil:
			customer = user
		case errors.Is(err, errs.ErrObjectNotFound):
			h.logger.WarnContext(ctx, "customer profile missing, dispatching without it",
				"order_id", o.ID().String(), "customer_id", id.String())
		default:
			h.logger.WarnContext(ctx, "customer lookup failed, dispatching without profile",
				"order_id", o.ID().String(), "error", err)
		}
	}

	result := h.dispatcher.CreateDelivery(ctx, o, customer)
	h.recorder.ObserveDispatch(result.Outcome.String())
	if !result.Succeeded() {
		h.logger.WarnContext(ctx, "courier dispatch failed, order stays ready",
			"order_id", o.ID().String(),
			"outcome", result.Outcome.String(),
			"error", result.Err)
	}
	return result
}

func (h MarkOrderReadyCommandHandler) commit(ctx context.Context, o *order.Order, expected order.Status) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.OrderRepository().CompareAndSetStatus(ctx, o, expected); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
