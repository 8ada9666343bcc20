package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	deliveryStatusSyncJob *DeliveryStatusSyncJob
}

// NewJobManager creates a job manager with every scheduled job.
func NewJobManager(
	shipmentStatuses ShipmentStatusReader,
	deliveryStatusSyncSpec string,
	recorder JobRecorder,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		deliveryStatusSyncJob: NewDeliveryStatusSyncJob(shipmentStatuses, deliveryStatusSyncSpec, recorder, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.deliveryStatusSyncJob.Start(); err != nil {
		return fmt.Errorf("failed to start delivery status sync job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.deliveryStatusSyncJob.Stop()
}
