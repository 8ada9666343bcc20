package http

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// NewRouter builds the echo instance serving s. metricsHandler is mounted on
// /metrics when non-nil.
func NewRouter(s *Server, recorder RequestRecorder, metricsHandler http.Handler, logger *slog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewRequestValidator()
	e.HTTPErrorHandler = ErrorHandler

	e.Use(middleware.Recover())
	e.Use(RequestLogger(logger))
	if recorder != nil {
		e.Use(Metrics(recorder))
	}

	e.GET("/health", s.Health)
	if metricsHandler != nil {
		e.GET("/metrics", echo.WrapHandler(metricsHandler))
	}

	s.RegisterRoutes(e.Group("/api/v1"))
	return e
}

// RegisterRoutes mounts every API endpoint on g.
func (s *Server) RegisterRoutes(g *echo.Group) {
	g.GET("/delivery-types", s.GetDeliveryTypes)
	g.GET("/regions", s.GetRegions)

	g.POST("/orders", s.PlaceOrder)
	g.POST("/orders/guest", s.PlaceGuestOrder)
	g.GET("/orders/my", s.GetMyOrders)
	g.GET("/orders/:id", s.GetOrder)
	g.GET("/orders/:id/delivery-status", s.GetDeliveryStatus)

	admin := g.Group("/admin")
	admin.GET("/orders", s.ListAdminOrders)
	admin.GET("/orders/assigned", s.ListAssignedOrders)
	admin.GET("/customers/:id/orders", s.ListCustomerOrders)
	admin.PATCH("/orders/:id/accept", s.AcceptOrder)
	admin.PATCH("/orders/:id/decline", s.DeclineOrder)
	admin.PATCH("/orders/:id/ready", s.MarkOrderReady)
	admin.PATCH("/orders/:id/delivered", s.MarkOrderDelivered)
	admin.PATCH("/orders/:id/reassign", s.ReassignOrder)
	admin.POST("/orders/:id/confirm-shipment", s.ConfirmShipment)
	admin.DELETE("/orders/:id", s.DeleteOrder)
}
