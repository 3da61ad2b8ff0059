package jobs

import (
	"context"
	"time"

	"github.com/ovenledger/bakery-api/internal/domain"
	"github.com/ovenledger/bakery-api/internal/repository"
	"go.uber.org/zap"
)

// RecurringExpenseJob materializes a fresh expense entry each month for
// every expense flagged as recurring. Natural-key dedup keeps reruns of
// the same month from doubling entries.
type RecurringExpenseJob struct {
	expenseRepo *repository.ExpenseRepository
	logger      *zap.Logger
}

func NewRecurringExpenseJob(expenseRepo *repository.ExpenseRepository, logger *zap.Logger) *RecurringExpenseJob {
	return &RecurringExpenseJob{
		expenseRepo: expenseRepo,
		logger:      logger,
	}
}

func (j *RecurringExpenseJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	templates, err := j.expenseRepo.ListRecurring(ctx)
	if err != nil {
		j.logger.Error("failed to list recurring expenses", zap.Error(err))
		return
	}

	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	created := 0
	for _, template := range templates {
		exists, err := j.expenseRepo.ExistsByNaturalKey(ctx, template.OwnerID, monthStart, template.Description, template.Amount)
		if err != nil {
			j.logger.Error("failed to check recurring expense",
				zap.String("expense_id", template.ID.String()),
				zap.Error(err))
			continue
		}
		if exists {
			continue
		}

		entry := &domain.Expense{
			OwnerID:       template.OwnerID,
			Date:          &monthStart,
			Category:      template.Category,
			Amount:        template.Amount,
			Description:   template.Description,
			Supplier:      template.Supplier,
			PaymentSource: template.PaymentSource,
			VATAmount:     template.VATAmount,
			TotalIncTax:   template.TotalIncTax,
			IsRecurring:   false,
			TaxDeductible: template.TaxDeductible,
		}
		if err := j.expenseRepo.Create(ctx, entry); err != nil {
			j.logger.Error("failed to materialize recurring expense",
				zap.String("expense_id", template.ID.String()),
				zap.Error(err))
			continue
		}
		created++
	}

	j.logger.Info("recurring expense job finished",
		zap.Int("templates", len(templates)),
		zap.Int("created", created))
}
