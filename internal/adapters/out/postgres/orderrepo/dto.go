// Package orderrepo persists the order aggregate in two tables: orders holds
// the lifecycle columns and the delivery snapshot, order_items the product
// lines captured at placement.
package orderrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the orders row. Guest columns are empty for registered
// customers and CustomerID is nil for guests.
type OrderDTO struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CustomerID      *uuid.UUID `gorm:"type:uuid;index"`
	GuestName       string
	GuestPhone      string
	GuestEmail      string
	Status          int `gorm:"index"`
	DeliveryType    int
	DeliveryAddress string
	DeliveryPhone   string
	Region          string
	AssignedAdminID *uuid.UUID     `gorm:"type:uuid;index"`
	TrackingID      string         `gorm:"index"`
	CreatedAt       time.Time      `gorm:"index"`
	Version         int64          `gorm:"not null;default:0"`
	Items           []OrderItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO is one order_items row. Position keeps the placement order.
type OrderItemDTO struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	OrderID   uuid.UUID `gorm:"type:uuid;index;not null"`
	Position  int
	ProductID uuid.UUID `gorm:"type:uuid"`
	Title     string
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2)"`
	Quantity  int
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

func fromDomain(o *order.Order) OrderDTO {
	dto := OrderDTO{
		ID:              o.ID().Bytes(),
		Status:          int(o.Status()),
		DeliveryType:    int(o.DeliveryType()),
		DeliveryAddress: o.Delivery().Address,
		DeliveryPhone:   o.Delivery().Phone,
		Region:          o.Delivery().Region,
		AssignedAdminID: rawID(o.AssignedAdmin()),
		TrackingID:      o.TrackingID(),
		CreatedAt:       o.CreatedAt(),
		Version:         o.Version(),
	}

	if id, ok := o.Customer().ID(); ok {
		raw := id.Bytes()
		dto.CustomerID = &raw
	}
	if guest, ok := o.Customer().Guest(); ok {
		dto.GuestName = guest.Name
		dto.GuestPhone = guest.Phone
		dto.GuestEmail = guest.Email
	}

	for i, item := range o.Items() {
		dto.Items = append(dto.Items, OrderItemDTO{
			OrderID:   dto.ID,
			Position:  i,
			ProductID: item.ProductID().Bytes(),
			Title:     item.Title(),
			UnitPrice: item.UnitPrice().Amount(),
			Quantity:  item.Quantity(),
		})
	}
	return dto
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var customer order.Customer
	if dto.CustomerID != nil {
		customerID, idErr := kernel.UUIDFromBytes((*dto.CustomerID)[:])
		if idErr != nil {
			return nil, idErr
		}
		customer, err = order.RegisteredCustomer(customerID)
	} else {
		customer, err = order.GuestCustomer(order.GuestProfile{
			Name:  dto.GuestName,
			Phone: dto.GuestPhone,
			Email: dto.GuestEmail,
		})
	}
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	var adminID *kernel.UUID
	if dto.AssignedAdminID != nil {
		parsed, idErr := kernel.UUIDFromBytes((*dto.AssignedAdminID)[:])
		if idErr != nil {
			return nil, idErr
		}
		adminID = &parsed
	}

	delivery := order.DeliveryDetails{
		Type:    order.DeliveryType(dto.DeliveryType),
		Address: dto.DeliveryAddress,
		Phone:   dto.DeliveryPhone,
		Region:  dto.Region,
	}

	return order.RestoreOrder(id, customer, items, delivery, order.Status(dto.Status),
		adminID, dto.TrackingID, dto.CreatedAt, dto.Version)
}

func itemToDomain(dto OrderItemDTO) (order.Item, error) {
	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return order.Item{}, err
	}
	price, err := kernel.NewMoney(dto.UnitPrice)
	if err != nil {
		return order.Item{}, err
	}
	return order.NewItem(productID, dto.Title, price, dto.Quantity)
}

func rawID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}
