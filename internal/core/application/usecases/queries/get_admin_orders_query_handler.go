package queries

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"fulfillment/internal/core/domain/model/identity"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
)

// GetAdminOrdersQueryHandler scopes the order list by the staff member's
// region. Super admins see every order. Other staff see guest orders and the
// orders of registered customers living in their own region.
type GetAdminOrdersQueryHandler struct {
	orders OrderReader
	users  ports.UserDirectory
	logger *slog.Logger
}

func NewGetAdminOrdersQueryHandler(
	orders OrderReader,
	users ports.UserDirectory,
	logger *slog.Logger,
) GetAdminOrdersQueryHandler {
	return GetAdminOrdersQueryHandler{
		orders: orders,
		users:  users,
		logger: logger.With("component", "admin_orders_query"),
	}
}

func (h GetAdminOrdersQueryHandler) Handle(ctx context.Context, query GetAdminOrdersQuery) ([]AdminOrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	actor, err := requireStaff(ctx, h.users, query.ActorID())
	if err != nil {
		return nil, err
	}

	orders, err := h.orders.FindByStatus(ctx, query.Status())
	if err != nil {
		return nil, err
	}

	customers := make(map[uuid.UUID]*identity.User)
	views := make([]AdminOrderView, 0, len(orders))
	for _, o := range orders {
		customerID, registered := o.Customer().ID()
		if !registered {
			views = append(views, AdminOrderView{Order: o})
			continue
		}

		customer, seen := customers[customerID.Bytes()]
		if !seen {
			customer, err = h.users.Get(ctx, customerID)
			switch {
			case errors.Is(err, errs.ErrObjectNotFound):
				h.logger.WarnContext(ctx, "order customer not found",
					"order_id", o.ID().String(), "customer_id", customerID.String())
			case err != nil:
				return nil, err
			}
			customers[customerID.Bytes()] = customer
		}

		if actor.IsSuperAdmin() || sameRegion(actor, customer) {
			views = append(views, AdminOrderView{Order: o, Customer: customer})
		}
	}

	h.logger.InfoContext(ctx, "admin orders listed",
		"actor_id", actor.ID().String(),
		"super_admin", actor.IsSuperAdmin(),
		"visible", len(views),
		"total", len(orders))
	return views, nil
}

// sameRegion compares regions case-insensitively. An empty region matches
// nothing.
func sameRegion(actor, customer *identity.User) bool {
	if customer == nil {
		return false
	}
	a, c := strings.TrimSpace(actor.Region()), strings.TrimSpace(customer.Region())
	return a != "" && strings.EqualFold(a, c)
}
