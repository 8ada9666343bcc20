package jobs

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"fulfillment/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

const (
	// DefaultDeliveryStatusSyncSpec runs the sync every five minutes.
	DefaultDeliveryStatusSyncSpec = "0 */5 * * * *"

	deliveryStatusSyncJobName = "delivery_status_sync"
)

// ShipmentStatusReader is the query the sync job runs.
type ShipmentStatusReader interface {
	Handle(ctx context.Context, query queries.GetShipmentStatusesQuery) (queries.ShipmentStatuses, error)
}

// JobRecorder receives one observation per run.
type JobRecorder interface {
	ObserveDuration(job string, duration time.Duration)
	IncSuccess(job string)
	IncFailure(job string)
}

// DeliveryStatusSyncJob polls the courier for every order out for delivery
// and logs what the courier reports. It never changes an order: closing a
// delivery stays a staff decision.
type DeliveryStatusSyncJob struct {
	reader    ShipmentStatusReader
	spec      string
	batchSize int
	timeout   time.Duration
	cron      *cron.Cron
	recorder  JobRecorder
	logger    *slog.Logger
}

// NewDeliveryStatusSyncJob creates the job. spec is a six-field cron
// expression; an empty spec falls back to DefaultDeliveryStatusSyncSpec.
func NewDeliveryStatusSyncJob(
	reader ShipmentStatusReader,
	spec string,
	recorder JobRecorder,
	logger *slog.Logger,
) *DeliveryStatusSyncJob {
	if spec == "" {
		spec = DefaultDeliveryStatusSyncSpec
	}
	return &DeliveryStatusSyncJob{
		reader:    reader,
		spec:      spec,
		batchSize: queries.DefaultShipmentBatchSize,
		timeout:   2 * time.Minute,
		cron:      cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		recorder:  recorder,
		logger:    logger.With("component", "delivery_status_sync_job"),
	}
}

// Start schedules the job.
func (j *DeliveryStatusSyncJob) Start() error {
	_, err := j.cron.AddFunc(j.spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
		defer cancel()

		if err := j.Run(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Delivery status sync failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Delivery status sync job started", "spec", j.spec)
	return nil
}

// Stop waits for a running sync to finish.
func (j *DeliveryStatusSyncJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Delivery status sync job stopped")
}

// Run performs one sweep.
func (j *DeliveryStatusSyncJob) Run(ctx context.Context) error {
	start := time.Now()
	defer func() {
		j.recorder.ObserveDuration(deliveryStatusSyncJobName, time.Since(start))
	}()

	query, err := queries.NewGetShipmentStatusesQuery(j.batchSize)
	if err != nil {
		j.recorder.IncFailure(deliveryStatusSyncJobName)
		return err
	}

	result, err := j.reader.Handle(ctx, query)
	if err != nil {
		j.recorder.IncFailure(deliveryStatusSyncJobName)
		if errors.Is(err, context.DeadlineExceeded) {
			return errors.Join(errors.New("delivery status sync timed out"), err)
		}
		return err
	}

	for _, s := range result.Statuses {
		j.logger.DebugContext(ctx, "Courier status",
			"order_id", s.OrderID.String(),
			"tracking_id", s.TrackingID,
			"courier", s.Courier,
		)
	}
	j.logger.InfoContext(ctx, "Delivery status sync finished",
		"shipments", len(result.Statuses),
		"failed", result.Failed,
	)
	j.recorder.IncSuccess(deliveryStatusSyncJobName)
	return nil
}
