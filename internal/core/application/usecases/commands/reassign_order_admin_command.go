package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
)

var ErrReassignOrderAdminCommandIsNotConstructed = errors.New(
	"ReassignOrderAdminCommand must be created via NewReassignOrderAdminCommand constructor",
)

// ReassignOrderAdminCommand hands an order to another staff member.
type ReassignOrderAdminCommand struct {
	orderAction
	newAdminID kernel.UUID
}

func NewReassignOrderAdminCommand(orderID, actorID, newAdminID kernel.UUID) (ReassignOrderAdminCommand, error) {
	action, err := newOrderAction(orderID, actorID)
	if err = errors.Join(err, newAdminID.Validate()); err != nil {
		return ReassignOrderAdminCommand{}, err
	}
	return ReassignOrderAdminCommand{orderAction: action, newAdminID: newAdminID}, nil
}

func (c ReassignOrderAdminCommand) Validate() error {
	return c.guard.Validate(ErrReassignOrderAdminCommandIsNotConstructed)
}

// NewAdminID returns the staff member taking over.
func (c ReassignOrderAdminCommand) NewAdminID() kernel.UUID {
	return c.newAdminID
}
