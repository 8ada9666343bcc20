// Package commands holds the order lifecycle operations: placement and every
// staff-driven transition. Each handler validates its command, resolves the
// actor, and commits the change inside one unit of work with a conditional
// status write.
package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

type (
	// TxManager handles the transaction lifecycle of one command.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides the order repository bound to the transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// OrderUoW is the unit of work for order operations.
	//
	// Example:
	//   uow := factory.Create()
	//   if err := uow.Begin(ctx); err != nil {
	//       return err
	//   }
	//   defer func() { _ = uow.Rollback(ctx) }()
	//
	//   // ... load, mutate, CompareAndSetStatus
	//
	//   return uow.Commit(ctx)
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates a fresh OrderUoW per command.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// LifecycleRecorder receives transition and dispatch outcomes for metrics.
	LifecycleRecorder interface {
		ObserveTransition(event, result string)
		ObserveDispatch(outcome string)
	}
)
