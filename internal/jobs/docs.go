// Package jobs provides scheduled background tasks for the fulfillment
// service, built on github.com/robfig/cron/v3.
//
// # Available Jobs
//
// DeliveryStatusSyncJob polls the courier for every order out for delivery
// and logs the courier's view of each shipment. The default schedule is
// every five minutes; overlapping runs are skipped.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(shipmentStatusesHandler, cfg.DeliveryStatusSyncSpec, jobMetrics, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A run fails only when the orders cannot be listed or every courier batch
// fails. Failures are logged and counted in the job metrics; the next run
// starts from scratch.
package jobs
