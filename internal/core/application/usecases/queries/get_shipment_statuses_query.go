package queries

import (
	"context"
	"errors"
	"log/slog"
	"slices"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// DefaultShipmentBatchSize is how many tracking ids go into one courier call.
const DefaultShipmentBatchSize = 50

var ErrGetShipmentStatusesQueryIsNotConstructed = errors.New(
	"GetShipmentStatusesQuery must be created via NewGetShipmentStatusesQuery constructor",
)

// GetShipmentStatusesQuery asks the courier about every order currently out
// for delivery.
type GetShipmentStatusesQuery struct {
	batchSize int

	guard guard.ConstructorGuard
}

func NewGetShipmentStatusesQuery(batchSize int) (GetShipmentStatusesQuery, error) {
	if batchSize <= 0 {
		return GetShipmentStatusesQuery{}, errs.NewValueIsOutOfRangeError("batchSize", batchSize, 1, "max int")
	}
	return GetShipmentStatusesQuery{batchSize: batchSize, guard: guard.NewConstructorGuard()}, nil
}

func (q GetShipmentStatusesQuery) Validate() error {
	return q.guard.Validate(ErrGetShipmentStatusesQueryIsNotConstructed)
}

func (q GetShipmentStatusesQuery) BatchSize() int { return q.batchSize }

// ShipmentStatus is the courier's record for one order. Courier is nil when
// the courier returned nothing for the tracking id.
type ShipmentStatus struct {
	OrderID    kernel.UUID
	TrackingID string
	Courier    any
}

// ShipmentStatuses is the outcome of one sweep. Failed counts the tracking
// ids whose batch could not be read.
type ShipmentStatuses struct {
	Statuses []ShipmentStatus
	Failed   int
}

type GetShipmentStatusesQueryHandler struct {
	orders     OrderReader
	dispatcher ports.DeliveryDispatcher
	logger     *slog.Logger
}

func NewGetShipmentStatusesQueryHandler(
	orders OrderReader,
	dispatcher ports.DeliveryDispatcher,
	logger *slog.Logger,
) GetShipmentStatusesQueryHandler {
	return GetShipmentStatusesQueryHandler{
		orders:     orders,
		dispatcher: dispatcher,
		logger:     logger.With("component", "shipment_statuses_query"),
	}
}

// Handle reads the courier status of every OutForDelivery order. A failing
// batch is logged and counted; the other batches are still read. The error
// is non-nil only when the orders could not be listed or every batch failed.
func (h GetShipmentStatusesQueryHandler) Handle(ctx context.Context, query GetShipmentStatusesQuery) (ShipmentStatuses, error) {
	if err := query.Validate(); err != nil {
		return ShipmentStatuses{}, err
	}

	status := order.OutForDelivery
	shipped, err := h.orders.FindByStatus(ctx, &status)
	if err != nil {
		return ShipmentStatuses{}, err
	}

	orderByTracking := make(map[string]kernel.UUID, len(shipped))
	trackingIDs := make([]string, 0, len(shipped))
	for _, o := range shipped {
		if !o.HasTracking() {
			continue
		}
		orderByTracking[o.TrackingID()] = o.ID()
		trackingIDs = append(trackingIDs, o.TrackingID())
	}

	var (
		result  ShipmentStatuses
		lastErr error
	)
	for batch := range slices.Chunk(trackingIDs, query.BatchSize()) {
		statuses, err := h.dispatcher.GetStatus(ctx, batch)
		if err != nil {
			h.logger.WarnContext(ctx, "shipment status batch failed", "size", len(batch), "error", err)
			result.Failed += len(batch)
			lastErr = err
			continue
		}
		for _, trackingID := range batch {
			result.Statuses = append(result.Statuses, ShipmentStatus{
				OrderID:    orderByTracking[trackingID],
				TrackingID: trackingID,
				Courier:    statuses[trackingID],
			})
		}
	}

	if len(trackingIDs) > 0 && result.Failed == len(trackingIDs) {
		return result, errors.Join(ErrDeliveryStatusUnavailable, lastErr)
	}
	return result, nil
}
