package http

import (
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// GetDeliveryTypes handles GET /api/v1/delivery-types.
func (s *Server) GetDeliveryTypes(ctx echo.Context) error {
	types := order.DeliveryTypes()
	names := make([]string, 0, len(types))
	for _, t := range types {
		names = append(names, t.String())
	}
	return ctx.JSON(http.StatusOK, names)
}

// GetRegions handles GET /api/v1/regions.
func (s *Server) GetRegions(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, toRegionResponses(s.regions.Regions()))
}

// PlaceOrder handles POST /api/v1/orders for a registered customer.
func (s *Server) PlaceOrder(ctx echo.Context) error {
	customerID, err := actorID(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	var req PlaceOrderRequest
	if err = s.bind(ctx, &req); err != nil {
		return s.fail(ctx, err)
	}

	items := make([]commands.PlaceOrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		productID, parseErr := kernel.UUIDFromString(item.ProductID)
		if parseErr != nil {
			return s.fail(ctx, errs.NewValueIsInvalidErrorWithCause("productId", parseErr))
		}
		deliveryType, parseErr := order.ParseDeliveryType(item.DeliveryType)
		if parseErr != nil {
			return s.fail(ctx, parseErr)
		}
		items = append(items, commands.PlaceOrderItem{
			OrderLine: commands.OrderLine{ProductID: productID, Quantity: item.Quantity},
			Delivery: order.DeliveryDetails{
				Type:    deliveryType,
				Address: item.DeliveryAddress,
				Phone:   item.DeliveryPhone,
				Region:  item.Region,
			},
		})
	}

	cmd, err := commands.NewPlaceOrderCommand(kernel.NewUUID(), customerID, items)
	if err != nil {
		return s.fail(ctx, err)
	}

	o, err := s.handlers.PlaceOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, toOrderResponse(o))
}

// PlaceGuestOrder handles POST /api/v1/orders/guest. No identity is needed.
func (s *Server) PlaceGuestOrder(ctx echo.Context) error {
	var req PlaceGuestOrderRequest
	if err := s.bind(ctx, &req); err != nil {
		return s.fail(ctx, err)
	}

	deliveryType, err := order.ParseDeliveryType(req.DeliveryType)
	if err != nil {
		return s.fail(ctx, err)
	}

	lines := make([]commands.OrderLine, 0, len(req.Items))
	for _, item := range req.Items {
		productID, parseErr := kernel.UUIDFromString(item.ProductID)
		if parseErr != nil {
			return s.fail(ctx, errs.NewValueIsInvalidErrorWithCause("productId", parseErr))
		}
		lines = append(lines, commands.OrderLine{ProductID: productID, Quantity: item.Quantity})
	}

	cmd, err := commands.NewPlaceGuestOrderCommand(
		kernel.NewUUID(),
		order.GuestProfile{Name: req.GuestName, Phone: req.GuestPhone, Email: req.GuestEmail},
		deliveryType,
		req.DeliveryAddress,
		req.Region,
		lines,
	)
	if err != nil {
		return s.fail(ctx, err)
	}

	o, err := s.handlers.PlaceGuestOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, toOrderResponse(o))
}

// GetMyOrders handles GET /api/v1/orders/my.
func (s *Server) GetMyOrders(ctx echo.Context) error {
	customerID, err := actorID(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetCustomerOrdersQuery(customerID, customerID)
	if err != nil {
		return s.fail(ctx, err)
	}

	orders, err := s.handlers.CustomerOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toOrderResponses(orders))
}

// GetOrder handles GET /api/v1/orders/:id for the owner or staff.
func (s *Server) GetOrder(ctx echo.Context) error {
	actor, orderID, err := actorAndPathID(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(orderID, actor)
	if err != nil {
		return s.fail(ctx, err)
	}

	o, err := s.handlers.Order.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toOrderResponse(o))
}

// GetDeliveryStatus handles GET /api/v1/orders/:id/delivery-status.
func (s *Server) GetDeliveryStatus(ctx echo.Context) error {
	actor, orderID, err := actorAndPathID(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetDeliveryStatusQuery(orderID, actor)
	if err != nil {
		return s.fail(ctx, err)
	}

	status, err := s.handlers.DeliveryStatus.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, DeliveryStatusResponse{
		OrderID:    status.OrderID.String(),
		TrackingID: status.TrackingID,
		Courier:    status.Courier,
	})
}

// bind decodes the JSON body and runs the request validator.
func (s *Server) bind(ctx echo.Context, req any) error {
	if err := ctx.Bind(req); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}
	return ctx.Validate(req)
}

func actorAndPathID(ctx echo.Context) (kernel.UUID, kernel.UUID, error) {
	actor, err := actorID(ctx)
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}
	orderID, err := pathID(ctx)
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}
	return actor, orderID, nil
}
