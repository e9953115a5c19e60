package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/oticapro/caixa/internal/adapter/http/dto"
	"github.com/oticapro/caixa/internal/domain"
	"github.com/oticapro/caixa/internal/usecase"
)

type reportServiceStub struct {
	getReportFn func(ctx context.Context, input usecase.GetReportInput) (*usecase.Report, error)
	varianceFn  func(ctx context.Context, store string, month time.Time) (*domain.VarianceReport, error)
}

func (s *reportServiceStub) GetReport(ctx context.Context, input usecase.GetReportInput) (*usecase.Report, error) {
	return s.getReportFn(ctx, input)
}

func (s *reportServiceStub) MonthlyVariance(ctx context.Context, store string, month time.Time) (*domain.VarianceReport, error) {
	return s.varianceFn(ctx, store, month)
}

func TestReportHandler_GetReport_Success(t *testing.T) {
	bucket := domain.NewBucket("2026-05-04",
		time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 5, 5, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond))
	bucket.InflowTotal = decimal.RequireFromString("1300")
	bucket.NetBalance = decimal.RequireFromString("1300")
	bucket.CumulativeBalance = decimal.RequireFromString("1300")

	var captured usecase.GetReportInput
	handler := NewReportHandler(&reportServiceStub{
		getReportFn: func(ctx context.Context, input usecase.GetReportInput) (*usecase.Report, error) {
			captured = input
			return &usecase.Report{
				Store:           input.Store,
				PeriodStart:     input.Start,
				PeriodEnd:       input.End,
				Granularity:     input.Granularity,
				PreviousBalance: decimal.Zero,
				Buckets:         []domain.Bucket{bucket},
				InflowTotal:     decimal.RequireFromString("1300"),
				OutflowTotal:    decimal.Zero,
				NetBalance:      decimal.RequireFromString("1300"),
				ClosingBalance:  decimal.RequireFromString("1300"),
			}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/report?start=2026-05-04&end=2026-05-06&granularity=day", nil)
	req = setChiURLParam(req, "store", "centro")
	rec := httptest.NewRecorder()

	handler.GetReport(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if captured.Store != "centro" {
		t.Fatalf("expected store centro, got %q", captured.Store)
	}
	if captured.Granularity != domain.GranularityDay {
		t.Fatalf("expected day granularity, got %q", captured.Granularity)
	}

	var resp dto.ReportResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Buckets) != 1 {
		t.Fatalf("expected 1 bucket, got %d", len(resp.Buckets))
	}
	if !resp.ClosingBalance.Equal(decimal.RequireFromString("1300")) {
		t.Fatalf("expected closing balance 1300, got %s", resp.ClosingBalance)
	}
}

func TestReportHandler_GetReport_DefaultsToDayGranularity(t *testing.T) {
	handler := NewReportHandler(&reportServiceStub{
		getReportFn: func(ctx context.Context, input usecase.GetReportInput) (*usecase.Report, error) {
			if input.Granularity != domain.GranularityDay {
				t.Fatalf("expected default granularity day, got %q", input.Granularity)
			}
			return &usecase.Report{Store: input.Store, Granularity: input.Granularity}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/report?start=2026-05-01&end=2026-05-31", nil)
	req = setChiURLParam(req, "store", "centro")
	rec := httptest.NewRecorder()

	handler.GetReport(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestReportHandler_GetReport_MissingDates(t *testing.T) {
	handler := NewReportHandler(&reportServiceStub{
		getReportFn: func(ctx context.Context, input usecase.GetReportInput) (*usecase.Report, error) {
			t.Fatal("GetReport should not be called without dates")
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/report", nil)
	req = setChiURLParam(req, "store", "centro")
	rec := httptest.NewRecorder()

	handler.GetReport(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestReportHandler_GetReport_InvalidGranularity(t *testing.T) {
	handler := NewReportHandler(&reportServiceStub{
		getReportFn: func(ctx context.Context, input usecase.GetReportInput) (*usecase.Report, error) {
			return nil, domain.ErrInvalidGranularity
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/report?start=2026-05-01&end=2026-05-31&granularity=quarter", nil)
	req = setChiURLParam(req, "store", "centro")
	rec := httptest.NewRecorder()

	handler.GetReport(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestReportHandler_GetReport_ServiceError(t *testing.T) {
	handler := NewReportHandler(&reportServiceStub{
		getReportFn: func(ctx context.Context, input usecase.GetReportInput) (*usecase.Report, error) {
			return nil, errors.New("db error")
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/report?start=2026-05-01&end=2026-05-31", nil)
	req = setChiURLParam(req, "store", "centro")
	rec := httptest.NewRecorder()

	handler.GetReport(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestReportHandler_GetVariance_Success(t *testing.T) {
	handler := NewReportHandler(&reportServiceStub{
		varianceFn: func(ctx context.Context, store string, month time.Time) (*domain.VarianceReport, error) {
			if store != "centro" {
				t.Fatalf("expected store centro, got %q", store)
			}
			if month.Year() != 2026 || month.Month() != 5 {
				t.Fatalf("expected 2026-05, got %v", month)
			}
			return &domain.VarianceReport{
				CurrentLabel:  "2026-05",
				PreviousLabel: "2026-04",
				Inflow: domain.MetricVariance{
					Current:       decimal.RequireFromString("150"),
					Previous:      decimal.RequireFromString("100"),
					ChangePercent: decimal.RequireFromString("50"),
				},
			}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/variance?month=2026-05", nil)
	req = setChiURLParam(req, "store", "centro")
	rec := httptest.NewRecorder()

	handler.GetVariance(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.VarianceResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.CurrentMonth != "2026-05" || resp.PreviousMonth != "2026-04" {
		t.Fatalf("expected month labels to propagate, got %+v", resp)
	}
	if !resp.Inflow.ChangePercent.Equal(decimal.RequireFromString("50")) {
		t.Fatalf("expected inflow change 50, got %s", resp.Inflow.ChangePercent)
	}
}

func TestReportHandler_GetVariance_MissingMonth(t *testing.T) {
	handler := NewReportHandler(&reportServiceStub{
		varianceFn: func(ctx context.Context, store string, month time.Time) (*domain.VarianceReport, error) {
			t.Fatal("MonthlyVariance should not be called without a month")
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/variance", nil)
	req = setChiURLParam(req, "store", "centro")
	rec := httptest.NewRecorder()

	handler.GetVariance(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func setChiURLParam(r *http.Request, key, value string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, &chi.Context{
		URLParams: chi.RouteParams{
			Keys:   []string{key},
			Values: []string{value},
		},
	}))
}
