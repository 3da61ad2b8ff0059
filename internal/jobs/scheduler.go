package jobs

import (
	"fmt"

	"github.com/ovenledger/bakery-api/internal/config"
	"github.com/ovenledger/bakery-api/internal/repository"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler owns the background cron jobs.
type Scheduler struct {
	cron   *cron.Cron
	logger *zap.Logger
}

func NewScheduler(cfg config.JobsConfig, expenseRepo *repository.ExpenseRepository, logger *zap.Logger) (*Scheduler, error) {
	c := cron.New()

	job := NewRecurringExpenseJob(expenseRepo, logger)
	if _, err := c.AddJob(cfg.RecurringExpenseCron, job); err != nil {
		return nil, fmt.Errorf("failed to schedule recurring expense job: %w", err)
	}

	return &Scheduler{
		cron:   c,
		logger: logger,
	}, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("job scheduler started")
}

// Stop halts scheduling and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("job scheduler stopped")
}
