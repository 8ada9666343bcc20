package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
)

var ErrDeclineOrderCommandIsNotConstructed = errors.New(
	"DeclineOrderCommand must be created via NewDeclineOrderCommand constructor",
)

// DeclineOrderCommand asks to decline a Pending order on behalf of a staff member.
type DeclineOrderCommand struct {
	orderAction
}

func NewDeclineOrderCommand(orderID, actorID kernel.UUID) (DeclineOrderCommand, error) {
	action, err := newOrderAction(orderID, actorID)
	if err != nil {
		return DeclineOrderCommand{}, err
	}
	return DeclineOrderCommand{orderAction: action}, nil
}

func (c DeclineOrderCommand) Validate() error {
	return c.guard.Validate(ErrDeclineOrderCommandIsNotConstructed)
}
