package handler

import (
	"net/http"
	"time"

	"github.com/ovenledger/bakery-api/internal/auth"
	"github.com/ovenledger/bakery-api/internal/service"
	"go.uber.org/zap"
)

// ReportHandler handles HTTP requests for financial reports
type ReportHandler struct {
	reportService *service.ReportService
	logger        *zap.Logger
}

func NewReportHandler(reportService *service.ReportService, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		logger:        logger,
	}
}

// parsePeriod reads from/to query dates, defaulting to the trailing
// twelve months.
func parsePeriod(r *http.Request) (time.Time, time.Time, error) {
	now := time.Now().UTC()
	from := now.AddDate(-1, 0, 0)
	to := now

	if raw := r.URL.Query().Get("from"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return from, to, errInvalidFilter("from")
		}
		from = t
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return from, to, errInvalidFilter("to")
		}
		// Upper bound is exclusive, so include the named day.
		to = t.AddDate(0, 0, 1)
	}

	return from, to, nil
}

// GetSummary godoc
// @Summary Financial summary for a period
// @Tags Reports
// @Produce json
// @Param from query string false "Period start (YYYY-MM-DD)"
// @Param to query string false "Period end (YYYY-MM-DD), inclusive"
// @Success 200 {object} domain.ReportSummaryDTO
// @Security BearerAuth
// @Router /reports/summary [get]
func (h *ReportHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	from, to, err := parsePeriod(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	summary, err := h.reportService.Summary(r.Context(), auth.OwnerID(r.Context()), from, to)
	if err != nil {
		h.logger.Error("failed to build summary report", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, summary)
}

// GetMonthly godoc
// @Summary Month-by-month report for a period
// @Tags Reports
// @Produce json
// @Param from query string false "Period start (YYYY-MM-DD)"
// @Param to query string false "Period end (YYYY-MM-DD), inclusive"
// @Success 200 {array} domain.MonthlyReportRowDTO
// @Security BearerAuth
// @Router /reports/monthly [get]
func (h *ReportHandler) GetMonthly(w http.ResponseWriter, r *http.Request) {
	from, to, err := parsePeriod(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	rows, err := h.reportService.Monthly(r.Context(), auth.OwnerID(r.Context()), from, to)
	if err != nil {
		h.logger.Error("failed to build monthly report", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, rows)
}
