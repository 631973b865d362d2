// Package jobs provides the scheduled background tasks of the fulfillment
// service, built on github.com/robfig/cron/v3 and managed through JobManager.
package jobs

import (
	"fmt"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/pkg/logger"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	reconciliationJob *ReconciliationJob
}

// NewJobManager creates a job manager with all required jobs.
func NewJobManager(
	reconcileHandler commands.ReconcileStockCommandHandler,
	log *logger.Logger,
) *JobManager {
	return &JobManager{
		reconciliationJob: NewReconciliationJob(reconcileHandler, log),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.reconciliationJob.Start(); err != nil {
		return fmt.Errorf("failed to start reconciliation job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.reconciliationJob.Stop()
}
