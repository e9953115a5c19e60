package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Granularity selects how a reporting period is partitioned.
type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
)

// ParseGranularity validates a granularity string.
func ParseGranularity(s string) (Granularity, error) {
	switch Granularity(s) {
	case GranularityDay, GranularityWeek, GranularityMonth:
		return Granularity(s), nil
	}
	return "", ErrInvalidGranularity
}

// Bucket is a time-partitioned aggregate of ledger entries.
//
// For a chronologically ordered sequence covering a period with previous
// balance P, CumulativeBalance of bucket i equals P plus the sum of
// NetBalance over buckets 1..i. Empty buckets carry NetBalance zero and
// inherit the running total unchanged.
type Bucket struct {
	Label             string
	Start             time.Time
	End               time.Time
	InflowTotal       decimal.Decimal
	OutflowTotal      decimal.Decimal
	NetBalance        decimal.Decimal
	CumulativeBalance decimal.Decimal

	// CategoryBreakdown is populated for month granularity only:
	// kind -> category -> subtotal.
	CategoryBreakdown map[EntryKind]map[string]decimal.Decimal
}

// NewBucket returns an empty bucket for the given span with zeroed totals.
func NewBucket(label string, start, end time.Time) Bucket {
	return Bucket{
		Label:             label,
		Start:             start,
		End:               end,
		InflowTotal:       decimal.Zero,
		OutflowTotal:      decimal.Zero,
		NetBalance:        decimal.Zero,
		CumulativeBalance: decimal.Zero,
	}
}

// Add accumulates one entry into the bucket's totals.
func (b *Bucket) Add(e *LedgerEntry) {
	switch e.Kind {
	case KindOutflow:
		b.OutflowTotal = b.OutflowTotal.Add(e.Amount)
	default:
		b.InflowTotal = b.InflowTotal.Add(e.Amount)
	}
	b.NetBalance = b.InflowTotal.Sub(b.OutflowTotal)
}

// AddCategory accumulates one entry into the per-category breakdown,
// creating the kind and category keys on first use.
func (b *Bucket) AddCategory(e *LedgerEntry) {
	if b.CategoryBreakdown == nil {
		b.CategoryBreakdown = map[EntryKind]map[string]decimal.Decimal{
			KindInflow:  {},
			KindOutflow: {},
		}
	}
	byCategory := b.CategoryBreakdown[e.Kind]
	category := e.NormalizedCategory()
	byCategory[category] = byCategory[category].Add(e.Amount)
}

// CategoryTotal sums every category subtotal for one kind.
func (b *Bucket) CategoryTotal(kind EntryKind) decimal.Decimal {
	total := decimal.Zero
	for _, v := range b.CategoryBreakdown[kind] {
		total = total.Add(v)
	}
	return total
}
