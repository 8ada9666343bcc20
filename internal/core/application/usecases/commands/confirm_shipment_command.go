package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
)

var ErrConfirmShipmentCommandIsNotConstructed = errors.New(
	"ConfirmShipmentCommand must be created via NewConfirmShipmentCommand constructor",
)

// ConfirmShipmentCommand tells the courier a shipped order's parcel is
// packed and waiting for collection.
type ConfirmShipmentCommand struct {
	orderAction
}

func NewConfirmShipmentCommand(orderID, actorID kernel.UUID) (ConfirmShipmentCommand, error) {
	action, err := newOrderAction(orderID, actorID)
	if err != nil {
		return ConfirmShipmentCommand{}, err
	}
	return ConfirmShipmentCommand{orderAction: action}, nil
}

func (c ConfirmShipmentCommand) Validate() error {
	return c.guard.Validate(ErrConfirmShipmentCommandIsNotConstructed)
}
