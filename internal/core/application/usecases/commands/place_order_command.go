package commands

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrPlaceOrderCommandIsNotConstructed = errors.New(
	"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
)

// OrderLine is a requested product and quantity.
type OrderLine struct {
	ProductID kernel.UUID
	Quantity  int
}

// PlaceOrderItem is a line of a registered customer's checkout together with
// the delivery preference entered for it. Only the first item's preference is
// used for the order.
type PlaceOrderItem struct {
	OrderLine
	Delivery order.DeliveryDetails
}

// PlaceOrderCommand places an order for a registered customer.
//
// Example:
//
//	cmd, err := NewPlaceOrderCommand(kernel.NewUUID(), customerID, []PlaceOrderItem{{
//	    OrderLine: OrderLine{ProductID: productID, Quantity: 2},
//	    Delivery:  order.DeliveryDetails{Type: order.Pickup},
//	}})
type PlaceOrderCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	customerID kernel.UUID
	items      []PlaceOrderItem

	guard guard.ConstructorGuard
}

// NewPlaceOrderCommand validates ids, quantities and the delivery type of the
// first item. Delivery fields are checked by the handler once the customer's
// profile fallbacks are known.
func NewPlaceOrderCommand(orderID, customerID kernel.UUID, items []PlaceOrderItem) (PlaceOrderCommand, error) {
	cmd := PlaceOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCustomerID(customerID),
		cmd.setItems(items),
	); err != nil {
		return PlaceOrderCommand{}, err
	}

	return cmd, nil
}

func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

func (c PlaceOrderCommand) OrderID() kernel.UUID    { return c.orderID }
func (c PlaceOrderCommand) CustomerID() kernel.UUID { return c.customerID }

// Items returns a copy of the requested lines.
func (c PlaceOrderCommand) Items() []PlaceOrderItem {
	out := make([]PlaceOrderItem, len(c.items))
	copy(out, c.items)
	return out
}

// Delivery returns the preference of the first item.
func (c PlaceOrderCommand) Delivery() order.DeliveryDetails {
	return c.items[0].Delivery
}

func (c *PlaceOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *PlaceOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	c.customerID = customerID
	return nil
}

func (c *PlaceOrderCommand) setItems(items []PlaceOrderItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	lines := make([]OrderLine, len(items))
	for i, item := range items {
		lines[i] = item.OrderLine
	}
	if err := validateLines(lines); err != nil {
		return err
	}
	if err := items[0].Delivery.Type.Validate(); err != nil {
		return err
	}

	c.items = make([]PlaceOrderItem, len(items))
	copy(c.items, items)
	return nil
}

func validateLines(lines []OrderLine) error {
	var errList []error
	for i, line := range lines {
		if err := line.ProductID.Validate(); err != nil {
			errList = append(errList, fmt.Errorf("item %d: %w", i, err))
		}
		if line.Quantity <= 0 {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
				"quantity",
				fmt.Errorf("item %d: %d is not greater than 0", i, line.Quantity),
			))
		}
	}
	return errors.Join(errList...)
}
