package commands

import (
	"context"
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/identity"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/guard"
)

// orderAction is the payload shared by the staff commands: which order and
// who is acting.
type orderAction struct {
	orderID kernel.UUID
	actorID kernel.UUID

	guard guard.ConstructorGuard
}

func newOrderAction(orderID, actorID kernel.UUID) (orderAction, error) {
	if err := errors.Join(orderID.Validate(), actorID.Validate()); err != nil {
		return orderAction{}, err
	}
	return orderAction{orderID: orderID, actorID: actorID, guard: guard.NewConstructorGuard()}, nil
}

// OrderID returns the order being acted on.
func (a orderAction) OrderID() kernel.UUID { return a.orderID }

// ActorID returns the acting staff member.
func (a orderAction) ActorID() kernel.UUID { return a.actorID }

// resolveStaff looks the actor up and rejects non-staff identities.
func resolveStaff(ctx context.Context, users ports.UserDirectory, actorID kernel.UUID) (*identity.User, error) {
	actor, err := users.Get(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.IsStaff() {
		return nil, fmt.Errorf("%w: user %s", ErrActorIsNotStaff, actorID)
	}
	return actor, nil
}

// commitTransition loads the order inside a unit of work, applies mutate and
// stores the result with a conditional write on the loaded status.
func commitTransition(
	ctx context.Context,
	uowFactory OrderUoWFactory,
	orderID kernel.UUID,
	mutate func(*order.Order) error,
) (*order.Order, error) {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	o, err := repo.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	expected := o.Status()
	if err = mutate(o); err != nil {
		return nil, err
	}

	if err = repo.CompareAndSetStatus(ctx, o, expected); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
