package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
)

var ErrMarkOrderReadyCommandIsNotConstructed = errors.New(
	"MarkOrderReadyCommand must be created via NewMarkOrderReadyCommand constructor",
)

// MarkOrderReadyCommand asks to mark an Accepted order ready, or to retry the
// courier dispatch of a Ready delivery order that has no tracking id.
type MarkOrderReadyCommand struct {
	orderAction
}

func NewMarkOrderReadyCommand(orderID, actorID kernel.UUID) (MarkOrderReadyCommand, error) {
	action, err := newOrderAction(orderID, actorID)
	if err != nil {
		return MarkOrderReadyCommand{}, err
	}
	return MarkOrderReadyCommand{orderAction: action}, nil
}

func (c MarkOrderReadyCommand) Validate() error {
	return c.guard.Validate(ErrMarkOrderReadyCommandIsNotConstructed)
}
