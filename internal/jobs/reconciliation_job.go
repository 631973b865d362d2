package jobs

import (
	"context"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/pkg/logger"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// ReconciliationJob runs the stock reconciliation sweep every minute,
// repairing reservation drift between the inventory ledger and the orders
// that hold reservations.
type ReconciliationJob struct {
	handler commands.ReconcileStockCommandHandler
	cron    *cron.Cron
	log     *logger.Logger
}

// NewReconciliationJob creates the scheduled reconciliation job.
func NewReconciliationJob(handler commands.ReconcileStockCommandHandler, log *logger.Logger) *ReconciliationJob {
	return &ReconciliationJob{
		handler: handler,
		cron:    cron.New(),
		log:     log.Named("reconciliation_job"),
	}
}

// Start schedules the job to run every minute.
func (j *ReconciliationJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		cmd := commands.NewReconcileStockCommand()

		if err := j.handler.Handle(context.Background(), cmd); err != nil {
			j.log.Error("reconciliation sweep failed", zap.Error(err))
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.log.Info("reconciliation job started")
	return nil
}

// Stop stops the reconciliation job.
func (j *ReconciliationJob) Stop() {
	j.cron.Stop()
	j.log.Info("reconciliation job stopped")
}
