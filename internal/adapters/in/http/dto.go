package http

import (
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/identity"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type OrderLineRequest struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

// PlaceOrderItemRequest carries the delivery preference next to each line.
// Only the first line's preference is used.
type PlaceOrderItemRequest struct {
	ProductID       string `json:"productId" validate:"required,uuid"`
	Quantity        int    `json:"quantity" validate:"required,gt=0"`
	DeliveryType    string `json:"deliveryType" validate:"required,oneof=pickup delivery"`
	DeliveryAddress string `json:"deliveryAddress"`
	DeliveryPhone   string `json:"deliveryPhone"`
	Region          string `json:"region"`
}

type PlaceOrderRequest struct {
	Items []PlaceOrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

type PlaceGuestOrderRequest struct {
	GuestName       string             `json:"guestName" validate:"required"`
	GuestPhone      string             `json:"guestPhone" validate:"required"`
	GuestEmail      string             `json:"guestEmail" validate:"omitempty,email"`
	DeliveryType    string             `json:"deliveryType" validate:"required,oneof=pickup delivery"`
	DeliveryAddress string             `json:"deliveryAddress"`
	Region          string             `json:"region"`
	Items           []OrderLineRequest `json:"items" validate:"required,min=1,dive"`
}

// ReassignRequest names the new admin. An empty body hands the order to the
// caller.
type ReassignRequest struct {
	AdminID string `json:"adminId" validate:"omitempty,uuid"`
}

type ItemResponse struct {
	ProductID string `json:"productId"`
	Title     string `json:"title"`
	UnitPrice string `json:"unitPrice"`
	Quantity  int    `json:"quantity"`
	Subtotal  string `json:"subtotal"`
}

type GuestResponse struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email,omitempty"`
}

type OrderResponse struct {
	ID              string         `json:"id"`
	CustomerID      *string        `json:"customerId"`
	Guest           *GuestResponse `json:"guest,omitempty"`
	IsGuestOrder    bool           `json:"isGuestOrder"`
	Items           []ItemResponse `json:"items"`
	Total           string         `json:"total"`
	Status          string         `json:"status"`
	DeliveryType    string         `json:"deliveryType"`
	DeliveryAddress string         `json:"deliveryAddress,omitempty"`
	DeliveryPhone   string         `json:"deliveryPhone,omitempty"`
	Region          string         `json:"region,omitempty"`
	AssignedAdminID *string        `json:"assignedAdminId"`
	TrackingID      string         `json:"trackingId,omitempty"`
	CreatedAt       time.Time      `json:"createdAt"`
	Version         int64          `json:"version"`
}

type CustomerResponse struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Region   string `json:"region,omitempty"`
}

type AdminOrderResponse struct {
	OrderResponse
	Customer *CustomerResponse `json:"customer"`
}

type MarkReadyResponse struct {
	Order    OrderResponse `json:"order"`
	Message  string        `json:"message"`
	Dispatch string        `json:"dispatch,omitempty"`
}

type DeliveryStatusResponse struct {
	OrderID    string         `json:"orderId"`
	TrackingID string         `json:"trackingId"`
	Courier    map[string]any `json:"courier"`
}

type RegionResponse struct {
	Code int    `json:"code"`
	Name string `json:"name"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func toOrderResponse(o *order.Order) OrderResponse {
	items := make([]ItemResponse, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, ItemResponse{
			ProductID: item.ProductID().String(),
			Title:     item.Title(),
			UnitPrice: item.UnitPrice().String(),
			Quantity:  item.Quantity(),
			Subtotal:  item.Subtotal().String(),
		})
	}

	delivery := o.Delivery()
	resp := OrderResponse{
		ID:              o.ID().String(),
		IsGuestOrder:    o.IsGuestOrder(),
		Items:           items,
		Total:           o.Total().String(),
		Status:          o.Status().String(),
		DeliveryType:    o.DeliveryType().String(),
		DeliveryAddress: delivery.Address,
		DeliveryPhone:   delivery.Phone,
		Region:          delivery.Region,
		TrackingID:      o.TrackingID(),
		CreatedAt:       o.CreatedAt(),
		Version:         o.Version(),
	}
	if id, ok := o.Customer().ID(); ok {
		customerID := id.String()
		resp.CustomerID = &customerID
	}
	if guest, ok := o.Customer().Guest(); ok {
		resp.Guest = &GuestResponse{Name: guest.Name, Phone: guest.Phone, Email: guest.Email}
	}
	if admin := o.AssignedAdmin(); admin != nil {
		adminID := admin.String()
		resp.AssignedAdminID = &adminID
	}
	return resp
}

func toOrderResponses(orders []*order.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	return out
}

func toAdminOrderResponses(views []queries.AdminOrderView) []AdminOrderResponse {
	out := make([]AdminOrderResponse, 0, len(views))
	for _, v := range views {
		out = append(out, AdminOrderResponse{
			OrderResponse: toOrderResponse(v.Order),
			Customer:      toCustomerResponse(v.Customer),
		})
	}
	return out
}

func toCustomerResponse(u *identity.User) *CustomerResponse {
	if u == nil {
		return nil
	}
	return &CustomerResponse{
		ID:       u.ID().String(),
		FullName: u.FullName(),
		Email:    u.Email(),
		Phone:    u.Phone(),
		Region:   u.Region(),
	}
}

func toMarkReadyResponse(result commands.MarkOrderReadyResult) MarkReadyResponse {
	resp := MarkReadyResponse{
		Order:   toOrderResponse(result.Order),
		Message: result.Advisory,
	}
	if result.Dispatch.Outcome != 0 {
		resp.Dispatch = result.Dispatch.Outcome.String()
	}
	return resp
}

func toRegionResponses(regions []services.Region) []RegionResponse {
	out := make([]RegionResponse, 0, len(regions))
	for _, r := range regions {
		out = append(out, RegionResponse{Code: r.Code, Name: r.Name})
	}
	return out
}
