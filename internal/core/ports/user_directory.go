package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/identity"
	"fulfillment/internal/core/domain/model/kernel"
)

// UserDirectory resolves customer and staff identities.
type UserDirectory interface {
	// Get returns errs.ObjectNotFoundError when the user does not exist.
	Get(ctx context.Context, id kernel.UUID) (*identity.User, error)
}
