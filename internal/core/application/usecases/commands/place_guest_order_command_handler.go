package commands

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// PlaceGuestOrderCommandHandler persists a Pending guest order after a
// point-in-time stock check. Nothing is reserved.
type PlaceGuestOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	catalog    ports.ProductCatalog
	now        func() time.Time
	recorder   LifecycleRecorder
	logger     *slog.Logger
}

func NewPlaceGuestOrderCommandHandler(
	uowFactory OrderUoWFactory,
	catalog ports.ProductCatalog,
	now func() time.Time,
	recorder LifecycleRecorder,
	logger *slog.Logger,
) PlaceGuestOrderCommandHandler {
	return PlaceGuestOrderCommandHandler{
		uowFactory: uowFactory,
		catalog:    catalog,
		now:        now,
		recorder:   recorder,
		logger:     logger.With("component", "place_guest_order_handler"),
	}
}

// Handle fails with ErrInsufficientStock before anything is stored when a
// line asks for more than the product's stock.
func (h PlaceGuestOrderCommandHandler) Handle(ctx context.Context, cmd PlaceGuestOrderCommand) (*order.Order, error) {
	o, err := h.place(ctx, cmd)
	h.recorder.ObserveTransition("place_guest", resultLabel(err))
	return o, err
}

func (h PlaceGuestOrderCommandHandler) place(ctx context.Context, cmd PlaceGuestOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	items, err := snapshotItems(ctx, h.catalog, cmd.Lines(), true)
	if err != nil {
		return nil, err
	}

	o, err := order.NewOrder(cmd.OrderID(), cmd.Guest(), items, cmd.Delivery(), h.now())
	if err != nil {
		return nil, err
	}

	if err = addOrder(ctx, h.uowFactory, o); err != nil {
		return nil, err
	}

	h.logger.InfoContext(ctx, "guest order placed",
		"order_id", o.ID().String(),
		"delivery_type", o.DeliveryType().String(),
		"region", o.Delivery().Region,
		"total", o.Total().String())
	return o, nil
}
