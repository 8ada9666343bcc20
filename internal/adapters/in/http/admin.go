package http

import (
	"context"
	"net/http"
	"strings"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ListAdminOrders handles GET /api/v1/admin/orders?status=.
func (s *Server) ListAdminOrders(ctx echo.Context) error {
	actor, err := actorID(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	var status *order.Status
	if raw := strings.TrimSpace(ctx.QueryParam("status")); raw != "" {
		parsed, parseErr := order.ParseStatus(raw)
		if parseErr != nil {
			return s.fail(ctx, parseErr)
		}
		status = &parsed
	}

	query, err := queries.NewGetAdminOrdersQuery(actor, status)
	if err != nil {
		return s.fail(ctx, err)
	}

	views, err := s.handlers.AdminOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toAdminOrderResponses(views))
}

// ListAssignedOrders handles GET /api/v1/admin/orders/assigned.
func (s *Server) ListAssignedOrders(ctx echo.Context) error {
	actor, err := actorID(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetOrdersByAdminQuery(actor)
	if err != nil {
		return s.fail(ctx, err)
	}

	orders, err := s.handlers.OrdersByAdmin.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toOrderResponses(orders))
}

// ListCustomerOrders handles GET /api/v1/admin/customers/:id/orders.
func (s *Server) ListCustomerOrders(ctx echo.Context) error {
	actor, customerID, err := actorAndPathID(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetCustomerOrdersQuery(customerID, actor)
	if err != nil {
		return s.fail(ctx, err)
	}

	orders, err := s.handlers.CustomerOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toOrderResponses(orders))
}

// AcceptOrder handles PATCH /api/v1/admin/orders/:id/accept.
func (s *Server) AcceptOrder(ctx echo.Context) error {
	return s.transition(ctx, func(c context.Context, orderID, actor kernel.UUID) (*order.Order, error) {
		cmd, err := commands.NewAcceptOrderCommand(orderID, actor)
		if err != nil {
			return nil, err
		}
		return s.handlers.AcceptOrder.Handle(c, cmd)
	})
}

// DeclineOrder handles PATCH /api/v1/admin/orders/:id/decline.
func (s *Server) DeclineOrder(ctx echo.Context) error {
	return s.transition(ctx, func(c context.Context, orderID, actor kernel.UUID) (*order.Order, error) {
		cmd, err := commands.NewDeclineOrderCommand(orderID, actor)
		if err != nil {
			return nil, err
		}
		return s.handlers.DeclineOrder.Handle(c, cmd)
	})
}

// MarkOrderDelivered handles PATCH /api/v1/admin/orders/:id/delivered.
func (s *Server) MarkOrderDelivered(ctx echo.Context) error {
	return s.transition(ctx, func(c context.Context, orderID, actor kernel.UUID) (*order.Order, error) {
		cmd, err := commands.NewMarkOrderDeliveredCommand(orderID, actor)
		if err != nil {
			return nil, err
		}
		return s.handlers.MarkDelivered.Handle(c, cmd)
	})
}

// MarkOrderReady handles PATCH /api/v1/admin/orders/:id/ready. The message
// tells the operator whether the courier took the parcel.
func (s *Server) MarkOrderReady(ctx echo.Context) error {
	actor, orderID, err := actorAndPathID(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewMarkOrderReadyCommand(orderID, actor)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.handlers.MarkOrderReady.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toMarkReadyResponse(result))
}

// ReassignOrder handles PATCH /api/v1/admin/orders/:id/reassign.
func (s *Server) ReassignOrder(ctx echo.Context) error {
	actor, orderID, err := actorAndPathID(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	var req ReassignRequest
	if ctx.Request().ContentLength != 0 {
		if err = s.bind(ctx, &req); err != nil {
			return s.fail(ctx, err)
		}
	}

	newAdmin := actor
	if req.AdminID != "" {
		if newAdmin, err = kernel.UUIDFromString(req.AdminID); err != nil {
			return s.fail(ctx, errs.NewValueIsInvalidErrorWithCause("adminId", err))
		}
	}

	cmd, err := commands.NewReassignOrderAdminCommand(orderID, actor, newAdmin)
	if err != nil {
		return s.fail(ctx, err)
	}

	o, err := s.handlers.ReassignAdmin.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toOrderResponse(o))
}

// DeleteOrder handles DELETE /api/v1/admin/orders/:id.
func (s *Server) DeleteOrder(ctx echo.Context) error {
	actor, orderID, err := actorAndPathID(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewDeleteOrderCommand(orderID, actor)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.handlers.DeleteOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// ConfirmShipment handles POST /api/v1/admin/orders/:id/confirm-shipment.
func (s *Server) ConfirmShipment(ctx echo.Context) error {
	actor, orderID, err := actorAndPathID(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewConfirmShipmentCommand(orderID, actor)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.handlers.ConfirmShipment.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, MessageResponse{Message: "Courier notified that the parcel is ready"})
}

// transition runs one of the staff commands that return the updated order.
func (s *Server) transition(
	ctx echo.Context,
	run func(c context.Context, orderID, actor kernel.UUID) (*order.Order, error),
) error {
	actor, orderID, err := actorAndPathID(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	o, err := run(ctx.Request().Context(), orderID, actor)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toOrderResponse(o))
}
