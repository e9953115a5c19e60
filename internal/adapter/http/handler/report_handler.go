package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/oticapro/caixa/internal/adapter/http/dto"
	"github.com/oticapro/caixa/internal/domain"
	"github.com/oticapro/caixa/internal/usecase"
)

// ReportService defines the behavior needed by ReportHandler.
type ReportService interface {
	GetReport(ctx context.Context, input usecase.GetReportInput) (*usecase.Report, error)
	MonthlyVariance(ctx context.Context, store string, month time.Time) (*domain.VarianceReport, error)
}

// ReportHandler handles report-related HTTP requests.
type ReportHandler struct {
	reportUC ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportUC ReportService) *ReportHandler {
	return &ReportHandler{reportUC: reportUC}
}

// GetReport generates a bucketized cash report for one store.
func (h *ReportHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	store := chi.URLParam(r, "store")

	start, err := parseDateQuery(r, "start")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid start date", err.Error())
		return
	}
	end, err := parseDateQuery(r, "end")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid end date", err.Error())
		return
	}

	granularity := r.URL.Query().Get("granularity")
	if granularity == "" {
		granularity = string(domain.GranularityDay)
	}

	report, err := h.reportUC.GetReport(r.Context(), usecase.GetReportInput{
		Store:       store,
		Start:       start,
		End:         end,
		Granularity: domain.Granularity(granularity),
	})
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to generate report", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ReportFromDomain(report))
}

// GetVariance compares the requested month against the one before it.
func (h *ReportHandler) GetVariance(w http.ResponseWriter, r *http.Request) {
	store := chi.URLParam(r, "store")

	month, err := parseMonthQuery(r, "month")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid month", err.Error())
		return
	}

	variance, err := h.reportUC.MonthlyVariance(r.Context(), store, month)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to compute variance", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.VarianceFromDomain(variance))
}
