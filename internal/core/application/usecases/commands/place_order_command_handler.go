package commands

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// PlaceOrderCommandHandler persists a Pending order for a registered
// customer. Stock is not checked on this path.
type PlaceOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	catalog    ports.ProductCatalog
	users      ports.UserDirectory
	now        func() time.Time
	recorder   LifecycleRecorder
	logger     *slog.Logger
}

func NewPlaceOrderCommandHandler(
	uowFactory OrderUoWFactory,
	catalog ports.ProductCatalog,
	users ports.UserDirectory,
	now func() time.Time,
	recorder LifecycleRecorder,
	logger *slog.Logger,
) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		uowFactory: uowFactory,
		catalog:    catalog,
		users:      users,
		now:        now,
		recorder:   recorder,
		logger:     logger.With("component", "place_order_handler"),
	}
}

// Handle resolves the customer and every product, snapshots titles and prices
// and stores the order. Missing delivery region and phone are taken from the
// customer's profile.
func (h PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (*order.Order, error) {
	o, err := h.place(ctx, cmd)
	h.recorder.ObserveTransition("place", resultLabel(err))
	return o, err
}

func (h PlaceOrderCommandHandler) place(ctx context.Context, cmd PlaceOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	customer, err := h.users.Get(ctx, cmd.CustomerID())
	if err != nil {
		return nil, err
	}

	lines := make([]OrderLine, 0, len(cmd.Items()))
	for _, item := range cmd.Items() {
		lines = append(lines, item.OrderLine)
	}
	items, err := snapshotItems(ctx, h.catalog, lines, false)
	if err != nil {
		return nil, err
	}

	ref, err := order.RegisteredCustomer(customer.ID())
	if err != nil {
		return nil, err
	}

	delivery := cmd.Delivery()
	if delivery.Region == "" {
		delivery.Region = customer.Region()
	}
	if delivery.Phone == "" {
		delivery.Phone = customer.Phone()
	}

	o, err := order.NewOrder(cmd.OrderID(), ref, items, delivery, h.now())
	if err != nil {
		return nil, err
	}

	if err = addOrder(ctx, h.uowFactory, o); err != nil {
		return nil, err
	}

	h.logger.InfoContext(ctx, "order placed",
		"order_id", o.ID().String(),
		"customer_id", customer.ID().String(),
		"delivery_type", o.DeliveryType().String(),
		"total", o.Total().String())
	return o, nil
}

func addOrder(ctx context.Context, uowFactory OrderUoWFactory, o *order.Order) error {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.OrderRepository().Add(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
