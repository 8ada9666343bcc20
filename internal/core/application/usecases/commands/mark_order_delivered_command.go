package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
)

var ErrMarkOrderDeliveredCommandIsNotConstructed = errors.New(
	"MarkOrderDeliveredCommand must be created via NewMarkOrderDeliveredCommand constructor",
)

// MarkOrderDeliveredCommand closes a Ready or OutForDelivery order.
type MarkOrderDeliveredCommand struct {
	orderAction
}

func NewMarkOrderDeliveredCommand(orderID, actorID kernel.UUID) (MarkOrderDeliveredCommand, error) {
	action, err := newOrderAction(orderID, actorID)
	if err != nil {
		return MarkOrderDeliveredCommand{}, err
	}
	return MarkOrderDeliveredCommand{orderAction: action}, nil
}

func (c MarkOrderDeliveredCommand) Validate() error {
	return c.guard.Validate(ErrMarkOrderDeliveredCommandIsNotConstructed)
}
