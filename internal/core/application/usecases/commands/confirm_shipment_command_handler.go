package commands

import (
	"context"
	"fmt"
	"log/slog"

	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// CourierStatusReady is the courier-side status sent by ConfirmShipment.
const CourierStatusReady = "pret"

// ConfirmShipmentCommandHandler forwards a ready-for-collection notice to the
// courier. Order state is not touched.
type ConfirmShipmentCommandHandler struct {
	uowFactory OrderUoWFactory
	users      ports.UserDirectory
	dispatcher ports.DeliveryDispatcher
	logger     *slog.Logger
}

func NewConfirmShipmentCommandHandler(
	uowFactory OrderUoWFactory,
	users ports.UserDirectory,
	dispatcher ports.DeliveryDispatcher,
	logger *slog.Logger,
) ConfirmShipmentCommandHandler {
	return ConfirmShipmentCommandHandler{
		uowFactory: uowFactory,
		users:      users,
		dispatcher: dispatcher,
		logger:     logger.With("component", "confirm_shipment_handler"),
	}
}

// Handle fails with errs.ObjectNotFoundError when the order has no tracking
// id and with ErrShipmentNotConfirmed when the courier does not acknowledge.
func (h ConfirmShipmentCommandHandler) Handle(ctx context.Context, cmd ConfirmShipmentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if _, err := resolveStaff(ctx, h.users, cmd.ActorID()); err != nil {
		return err
	}

	o, err := h.uowFactory.Create().OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if !o.HasTracking() {
		return errs.NewObjectNotFoundErrorWithCause("trackingID", o.ID().String(),
			fmt.Errorf("order %s was never handed to the courier", o.ID()))
	}

	if !h.dispatcher.UpdateStatus(ctx, []string{o.TrackingID()}, CourierStatusReady) {
		h.logger.WarnContext(ctx, "courier did not confirm shipment",
			"order_id", o.ID().String(), "tracking_id", o.TrackingID())
		return ErrShipmentNotConfirmed
	}

	h.logger.InfoContext(ctx, "shipment confirmed", "order_id", o.ID().String(), "tracking_id", o.TrackingID())
	return nil
}
