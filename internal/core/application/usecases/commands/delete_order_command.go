package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
)

var ErrDeleteOrderCommandIsNotConstructed = errors.New(
	"DeleteOrderCommand must be created via NewDeleteOrderCommand constructor",
)

// DeleteOrderCommand purges an order. It is administrative and bypasses the
// lifecycle.
type DeleteOrderCommand struct {
	orderAction
}

func NewDeleteOrderCommand(orderID, actorID kernel.UUID) (DeleteOrderCommand, error) {
	action, err := newOrderAction(orderID, actorID)
	if err != nil {
		return DeleteOrderCommand{}, err
	}
	return DeleteOrderCommand{orderAction: action}, nil
}

func (c DeleteOrderCommand) Validate() error {
	return c.guard.Validate(ErrDeleteOrderCommandIsNotConstructed)
}
