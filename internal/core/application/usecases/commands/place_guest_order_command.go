package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrPlaceGuestOrderCommandIsNotConstructed = errors.New(
	"PlaceGuestOrderCommand must be created via NewPlaceGuestOrderCommand constructor",
)

// PlaceGuestOrderCommand places an order without an account. The guest's
// phone doubles as the delivery phone.
type PlaceGuestOrderCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	guest    order.Customer
	lines    []OrderLine
	delivery order.DeliveryDetails

	guard guard.ConstructorGuard
}

func NewPlaceGuestOrderCommand(
	orderID kernel.UUID,
	guest order.GuestProfile,
	deliveryType order.DeliveryType,
	address, region string,
	lines []OrderLine,
) (PlaceGuestOrderCommand, error) {
	cmd := PlaceGuestOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	customer, guestErr := order.GuestCustomer(guest)
	delivery := order.DeliveryDetails{
		Type:    deliveryType,
		Address: address,
		Phone:   guest.Phone,
		Region:  region,
	}

	if err := errors.Join(
		orderID.Validate(),
		guestErr,
		requireLines(lines),
		delivery.Validate(),
	); err != nil {
		return PlaceGuestOrderCommand{}, err
	}

	cmd.orderID = orderID
	cmd.guest = customer
	cmd.lines = append([]OrderLine(nil), lines...)
	cmd.delivery = delivery
	return cmd, nil
}

func (c PlaceGuestOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceGuestOrderCommandIsNotConstructed)
}

func (c PlaceGuestOrderCommand) OrderID() kernel.UUID            { return c.orderID }
func (c PlaceGuestOrderCommand) Guest() order.Customer           { return c.guest }
func (c PlaceGuestOrderCommand) Delivery() order.DeliveryDetails { return c.delivery }
func (c PlaceGuestOrderCommand) Lines() []OrderLine              { return append([]OrderLine(nil), c.lines...) }

func requireLines(lines []OrderLine) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	return validateLines(lines)
}
