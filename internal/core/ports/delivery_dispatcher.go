package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/identity"
	"fulfillment/internal/core/domain/model/order"
)

// DispatchOutcome classifies a shipment request.
type DispatchOutcome int

const (
	// Dispatched means the courier accepted the shipment.
	Dispatched DispatchOutcome = iota + 1
	// Degraded means the courier could not be reached or answered with a
	// non-success status.
	Degraded
	// Rejected means the shipment was never sent because a local
	// precondition failed, such as an unknown region.
	Rejected
)

func (o DispatchOutcome) String() string {
	switch o {
	case Dispatched:
		return "dispatched"
	case Degraded:
		return "degraded"
	case Rejected:
		return "rejected"
	}
	return "unknown"
}

// DispatchResult is what the lifecycle learns from a shipment request.
// TrackingID is set only when Outcome is Dispatched; Err explains the other
// outcomes and is informational.
type DispatchResult struct {
	Outcome    DispatchOutcome
	TrackingID string
	Err        error
}

// Succeeded reports whether the courier now holds the shipment.
func (r DispatchResult) Succeeded() bool {
	return r.Outcome == Dispatched && r.TrackingID != ""
}

// DeliveryStatuses is the courier's raw status record per tracking id.
type DeliveryStatuses map[string]any

// DeliveryDispatcher is the courier network. It never mutates orders and
// never fails the caller's transition.
type DeliveryDispatcher interface {
	// CreateDelivery requests a shipment for o. customer is nil for guests.
	CreateDelivery(ctx context.Context, o *order.Order, customer *identity.User) DispatchResult

	// GetStatus returns nil and an error on any failure.
	GetStatus(ctx context.Context, trackingIDs []string) (DeliveryStatuses, error)

	// UpdateStatus reports whether the courier acknowledged the change.
	UpdateStatus(ctx context.Context, trackingIDs []string, newStatus string) bool
}
