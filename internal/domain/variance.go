package domain

import "github.com/shopspring/decimal"

// MetricVariance is the month-over-month change of one report metric.
type MetricVariance struct {
	Current       decimal.Decimal
	Previous      decimal.Decimal
	ChangePercent decimal.Decimal
}

// CategoryVariance is the month-over-month change of one category subtotal.
// Either side may be zero when the category only exists in one month.
type CategoryVariance struct {
	Category      string
	Current       decimal.Decimal
	Previous      decimal.Decimal
	ChangePercent decimal.Decimal
}

// VarianceReport compares two chronologically adjacent month buckets.
type VarianceReport struct {
	CurrentLabel  string
	PreviousLabel string

	Inflow  MetricVariance
	Outflow MetricVariance
	Net     MetricVariance

	InflowCategories  []CategoryVariance
	OutflowCategories []CategoryVariance
}
