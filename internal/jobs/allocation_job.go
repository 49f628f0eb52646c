package jobs

import (
	"context"
	"errors"
	"log/slog"

	"speedit/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// AllocationJob manages the scheduled allocation of pending orders.
// Runs every minute to plan and commit reservations for orders in
// "created" status.
type AllocationJob struct {
	handler commands.PlanAndAllocateCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewAllocationJob creates a new job for running allocation batches.
// Uses PlanAndAllocateCommandHandler to process the full pending backlog
// on every tick.
func NewAllocationJob(handler commands.PlanAndAllocateCommandHandler, logger *slog.Logger) *AllocationJob {
	return &AllocationJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With("component", "allocation_job"),
	}
}

// Start begins the allocation job to run every minute.
func (j *AllocationJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()

		cmd, cmdErr := commands.NewPlanAndAllocateCommand(nil)
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Failed to build allocation command", "error", cmdErr)
			return
		}

		plan, handleErr := j.handler.Handle(ctx, cmd)
		switch {
		case errors.Is(handleErr, commands.ErrNoOrdersToAllocate):
			// Empty backlog is the normal idle state.
		case errors.Is(handleErr, commands.ErrNotEnoughStock):
			j.logger.InfoContext(ctx, "Allocation skipped, batch cannot be fully covered")
		case errors.Is(handleErr, commands.ErrStockRowConflict):
			// Concurrent reservation; next tick replans against fresh stock.
			j.logger.WarnContext(ctx, "Allocation aborted on stock conflict", "error", handleErr)
		case handleErr != nil:
			j.logger.ErrorContext(ctx, "Allocation job failed", "error", handleErr)
		default:
			j.logger.InfoContext(ctx, "Allocation batch committed",
				"items", len(plan.ItemPlans))
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Allocation job started (running every minute)")
	return nil
}

// Stop stops the allocation job.
func (j *AllocationJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Allocation job stopped")
}
