package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/oticapro/caixa/internal/domain"
	"github.com/oticapro/caixa/internal/infrastructure/metrics"
)

// ReportUseCase builds cash-control reports. It holds no aggregate state:
// every report is re-derived from the current store contents, so there is no
// cache to invalidate after mutations.
type ReportUseCase struct {
	entryRepo EntryRepository
	metrics   *metrics.Metrics // optional
}

// NewReportUseCase creates a new ReportUseCase.
func NewReportUseCase(entryRepo EntryRepository, m *metrics.Metrics) *ReportUseCase {
	return &ReportUseCase{
		entryRepo: entryRepo,
		metrics:   m,
	}
}

// Report is a fully derived view of one store's cash movement over a period.
type Report struct {
	Store           string
	PeriodStart     time.Time
	PeriodEnd       time.Time
	Granularity     domain.Granularity
	PreviousBalance decimal.Decimal
	Buckets         []domain.Bucket
	InflowTotal     decimal.Decimal
	OutflowTotal    decimal.Decimal
	NetBalance      decimal.Decimal
	ClosingBalance  decimal.Decimal
}

// PreviousBalance returns the signed sum of every entry strictly before the
// calendar day of periodStart. An entry stamped exactly at that day's
// midnight belongs to the period, not to the carried-forward balance.
func (uc *ReportUseCase) PreviousBalance(ctx context.Context, store string, periodStart time.Time) (decimal.Decimal, error) {
	entries, err := uc.entryRepo.QueryBefore(ctx, store, domain.DayOf(periodStart))
	if err != nil {
		return decimal.Zero, err
	}

	balance := decimal.Zero
	for _, e := range entries {
		balance = balance.Add(e.SignedAmount())
	}
	return balance, nil
}

// GetReportInput represents input for report generation.
type GetReportInput struct {
	Store       string
	Start       time.Time
	End         time.Time
	Granularity domain.Granularity
}

// GetReport computes the previous balance, fetches the in-period entries and
// bucketizes them.
//
// The two reads are separate queries, not one snapshot: a concurrent write
// landing between them shows up in the next report, not this one.
func (uc *ReportUseCase) GetReport(ctx context.Context, input GetReportInput) (*Report, error) {
	if err := domain.ValidateStore(input.Store); err != nil {
		return nil, err
	}
	granularity, err := domain.ParseGranularity(string(input.Granularity))
	if err != nil {
		return nil, err
	}
	started := time.Now()

	previousBalance, err := uc.PreviousBalance(ctx, input.Store, input.Start)
	if err != nil {
		return nil, err
	}

	entries, err := uc.entryRepo.QueryByDateRange(ctx, input.Store, domain.DayOf(input.Start), domain.EndOfDay(input.End))
	if err != nil {
		return nil, err
	}

	buckets := Bucketize(entries, input.Start, input.End, granularity, previousBalance)

	report := &Report{
		Store:           input.Store,
		PeriodStart:     domain.DayOf(input.Start),
		PeriodEnd:       domain.DayOf(input.End),
		Granularity:     granularity,
		PreviousBalance: previousBalance,
		Buckets:         buckets,
		InflowTotal:     decimal.Zero,
		OutflowTotal:    decimal.Zero,
	}
	for i := range buckets {
		report.InflowTotal = report.InflowTotal.Add(buckets[i].InflowTotal)
		report.OutflowTotal = report.OutflowTotal.Add(buckets[i].OutflowTotal)
	}
	report.NetBalance = report.InflowTotal.Sub(report.OutflowTotal)
	report.ClosingBalance = previousBalance.Add(report.NetBalance)

	if uc.metrics != nil {
		uc.metrics.ReportsGenerated.WithLabelValues(string(granularity)).Inc()
		uc.metrics.ReportDuration.Observe(time.Since(started).Seconds())
	}

	return report, nil
}

// ListEntries returns a store's entries for a period, ordered by occurrence.
// The store returns rows in unspecified order; sorting happens here.
func (uc *ReportUseCase) ListEntries(ctx context.Context, store string, start, end time.Time) ([]*domain.LedgerEntry, error) {
	if err := domain.ValidateStore(store); err != nil {
		return nil, err
	}

	entries, err := uc.entryRepo.QueryByDateRange(ctx, store, domain.DayOf(start), domain.EndOfDay(end))
	if err != nil {
		return nil, err
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].OccurredAt.Equal(entries[j].OccurredAt) {
			return entries[i].ID < entries[j].ID
		}
		return entries[i].OccurredAt.Before(entries[j].OccurredAt)
	})
	return entries, nil
}

// MonthlyVariance compares the month containing the given date against the
// month before it. Months without entries compare as zeroed buckets.
func (uc *ReportUseCase) MonthlyVariance(ctx context.Context, store string, month time.Time) (*domain.VarianceReport, error) {
	if err := domain.ValidateStore(store); err != nil {
		return nil, err
	}

	currentStart := domain.StartOfMonth(month)
	previousStart := currentStart.AddDate(0, -1, 0)
	currentEnd := currentStart.AddDate(0, 1, -1)

	entries, err := uc.entryRepo.QueryByDateRange(ctx, store, previousStart, domain.EndOfDay(currentEnd))
	if err != nil {
		return nil, err
	}

	// Cumulative balances are irrelevant to variance; seed with zero.
	buckets := Bucketize(entries, previousStart, currentEnd, domain.GranularityMonth, decimal.Zero)

	current := domain.NewBucket(currentStart.Format("2006-01"), currentStart, domain.EndOfDay(currentEnd))
	previous := domain.NewBucket(previousStart.Format("2006-01"), previousStart, currentStart.Add(-time.Nanosecond))
	for i := range buckets {
		switch {
		case buckets[i].Start.Equal(currentStart):
			current = buckets[i]
		case buckets[i].Start.Equal(previousStart):
			previous = buckets[i]
		}
	}

	report := Compare(current, previous)
	return &report, nil
}
