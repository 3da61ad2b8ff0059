package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ovenledger/bakery-api/internal/domain"
	"github.com/ovenledger/bakery-api/internal/repository"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type ReportService struct {
	orderRepo   *repository.OrderRepository
	expenseRepo *repository.ExpenseRepository
	incomeRepo  *repository.IncomeRepository
	enquiryRepo *repository.EnquiryRepository
	logger      *zap.Logger
}

func NewReportService(
	orderRepo *repository.OrderRepository,
	expenseRepo *repository.ExpenseRepository,
	incomeRepo *repository.IncomeRepository,
	enquiryRepo *repository.EnquiryRepository,
	logger *zap.Logger,
) *ReportService {
	return &ReportService{
		orderRepo:   orderRepo,
		expenseRepo: expenseRepo,
		incomeRepo:  incomeRepo,
		enquiryRepo: enquiryRepo,
		logger:      logger,
	}
}

func sumDecimals(values []string) decimal.Decimal {
	sum := decimal.Zero
	for _, v := range values {
		if d, err := decimal.NewFromString(v); err == nil {
			sum = sum.Add(d)
		}
	}
	return sum
}

// Summary aggregates the owner's position over [from, to).
func (s *ReportService) Summary(ctx context.Context, ownerID uuid.UUID, from, to time.Time) (*domain.ReportSummaryDTO, error) {
	orders, err := s.orderRepo.ListForPeriod(ctx, ownerID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load orders for report: %w", err)
	}
	expenses, err := s.expenseRepo.ListForPeriod(ctx, ownerID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses for report: %w", err)
	}
	incomeEntries, err := s.incomeRepo.ListForPeriod(ctx, ownerID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load income for report: %w", err)
	}

	revenue := decimal.Zero
	for _, order := range orders {
		if order.Status == domain.OrderStatusCancelled {
			continue
		}
		if d, err := decimal.NewFromString(order.Total); err == nil {
			revenue = revenue.Add(d)
		}
	}

	expenseTotals := make([]string, len(expenses))
	for i, e := range expenses {
		expenseTotals[i] = e.Amount
	}
	incomeTotals := make([]string, len(incomeEntries))
	for i, in := range incomeEntries {
		incomeTotals[i] = in.Amount
	}

	totalExpenses := sumDecimals(expenseTotals)
	totalIncome := sumDecimals(incomeTotals)
	net := revenue.Add(totalIncome).Sub(totalExpenses)

	openEnquiries, err := s.enquiryRepo.CountOpen(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to count open enquiries: %w", err)
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	upcoming, err := s.orderRepo.CountUpcoming(ctx, ownerID, today)
	if err != nil {
		return nil, fmt.Errorf("failed to count upcoming orders: %w", err)
	}

	return &domain.ReportSummaryDTO{
		TotalOrders:    len(orders),
		TotalRevenue:   revenue.StringFixed(2),
		TotalExpenses:  totalExpenses.StringFixed(2),
		TotalIncome:    totalIncome.StringFixed(2),
		NetProfit:      net.StringFixed(2),
		OpenEnquiries:  int(openEnquiries),
		UpcomingOrders: int(upcoming),
	}, nil
}

// Monthly breaks the period into calendar months, one row per month.
func (s *ReportService) Monthly(ctx context.Context, ownerID uuid.UUID, from, to time.Time) ([]domain.MonthlyReportRowDTO, error) {
	var rows []domain.MonthlyReportRowDTO

	start := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, time.UTC)
	for cursor := start; cursor.Before(to); cursor = cursor.AddDate(0, 1, 0) {
		next := cursor.AddDate(0, 1, 0)

		orders, err := s.orderRepo.ListForPeriod(ctx, ownerID, cursor, next)
		if err != nil {
			return nil, fmt.Errorf("failed to load orders for report: %w", err)
		}
		expenses, err := s.expenseRepo.ListForPeriod(ctx, ownerID, cursor, next)
		if err != nil {
			return nil, fmt.Errorf("failed to load expenses for report: %w", err)
		}
		incomeEntries, err := s.incomeRepo.ListForPeriod(ctx, ownerID, cursor, next)
		if err != nil {
			return nil, fmt.Errorf("failed to load income for report: %w", err)
		}

		revenue := decimal.Zero
		for _, order := range orders {
			if order.Status == domain.OrderStatusCancelled {
				continue
			}
			if d, err := decimal.NewFromString(order.Total); err == nil {
				revenue = revenue.Add(d)
			}
		}

		expenseTotal := decimal.Zero
		for _, e := range expenses {
			if d, err := decimal.NewFromString(e.Amount); err == nil {
				expenseTotal = expenseTotal.Add(d)
			}
		}
		incomeTotal := decimal.Zero
		for _, in := range incomeEntries {
			if d, err := decimal.NewFromString(in.Amount); err == nil {
				incomeTotal = incomeTotal.Add(d)
			}
		}

		rows = append(rows, domain.MonthlyReportRowDTO{
			Month:    cursor.Format("2006-01"),
			Orders:   len(orders),
			Revenue:  revenue.StringFixed(2),
			Expenses: expenseTotal.StringFixed(2),
			Income:   incomeTotal.StringFixed(2),
			Net:      revenue.Add(incomeTotal).Sub(expenseTotal).StringFixed(2),
		})
	}

	return rows, nil
}
