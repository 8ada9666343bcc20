package http

import (
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/services"
)

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	// Command handlers
	PlaceOrder      commands.PlaceOrderCommandHandler
	PlaceGuestOrder commands.PlaceGuestOrderCommandHandler
	AcceptOrder     commands.AcceptOrderCommandHandler
	DeclineOrder    commands.DeclineOrderCommandHandler
	MarkOrderReady  commands.MarkOrderReadyCommandHandler
	MarkDelivered   commands.MarkOrderDeliveredCommandHandler
	ReassignAdmin   commands.ReassignOrderAdminCommandHandler
	DeleteOrder     commands.DeleteOrderCommandHandler
	ConfirmShipment commands.ConfirmShipmentCommandHandler

	// Query handlers
	CustomerOrders queries.GetCustomerOrdersQueryHandler
	AdminOrders    queries.GetAdminOrdersQueryHandler
	OrdersByAdmin  queries.GetOrdersByAdminQueryHandler
	Order          queries.GetOrderQueryHandler
	DeliveryStatus queries.GetDeliveryStatusQueryHandler
}

// RegionLister exposes the courier region table.
type RegionLister interface {
	Regions() []services.Region
}

// Server implements the HTTP endpoints of the fulfillment service. It
// translates requests into commands and queries and maps their results and
// errors back to JSON.
type Server struct {
	handlers Handlers
	regions  RegionLister
	logger   *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(handlers Handlers, regions RegionLister, logger *slog.Logger) *Server {
	return &Server{
		handlers: handlers,
		regions:  regions,
		logger:   logger.With("component", "http_server"),
	}
}
