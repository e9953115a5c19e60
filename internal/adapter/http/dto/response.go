package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/oticapro/caixa/internal/domain"
	"github.com/oticapro/caixa/internal/usecase"
)

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Monetary values accumulate at full precision internally; responses round
// to currency minor units here, at the presentation boundary.
func money(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// BucketResponse represents one time bucket in API responses.
type BucketResponse struct {
	Label             string                                `json:"label"`
	Start             time.Time                             `json:"start"`
	End               time.Time                             `json:"end"`
	InflowTotal       decimal.Decimal                       `json:"inflow_total"`
	OutflowTotal      decimal.Decimal                       `json:"outflow_total"`
	NetBalance        decimal.Decimal                       `json:"net_balance"`
	CumulativeBalance decimal.Decimal                       `json:"cumulative_balance"`
	CategoryBreakdown map[string]map[string]decimal.Decimal `json:"category_breakdown,omitempty"`
}

// BucketFromDomain converts a domain bucket to a response.
func BucketFromDomain(b domain.Bucket) BucketResponse {
	resp := BucketResponse{
		Label:             b.Label,
		Start:             b.Start,
		End:               b.End,
		InflowTotal:       money(b.InflowTotal),
		OutflowTotal:      money(b.OutflowTotal),
		NetBalance:        money(b.NetBalance),
		CumulativeBalance: money(b.CumulativeBalance),
	}
	if b.CategoryBreakdown != nil {
		resp.CategoryBreakdown = make(map[string]map[string]decimal.Decimal, len(b.CategoryBreakdown))
		for kind, byCategory := range b.CategoryBreakdown {
			m := make(map[string]decimal.Decimal, len(byCategory))
			for category, total := range byCategory {
				m[category] = money(total)
			}
			resp.CategoryBreakdown[string(kind)] = m
		}
	}
	return resp
}

// ReportResponse represents a cash-control report in API responses.
type ReportResponse struct {
	Store           string           `json:"store"`
	PeriodStart     time.Time        `json:"period_start"`
	PeriodEnd       time.Time        `json:"period_end"`
	Granularity     string           `json:"granularity"`
	PreviousBalance decimal.Decimal  `json:"previous_balance"`
	Buckets         []BucketResponse `json:"buckets"`
	InflowTotal     decimal.Decimal  `json:"inflow_total"`
	OutflowTotal    decimal.Decimal  `json:"outflow_total"`
	NetBalance      decimal.Decimal  `json:"net_balance"`
	ClosingBalance  decimal.Decimal  `json:"closing_balance"`
}

// ReportFromDomain converts a report to a response.
func ReportFromDomain(r *usecase.Report) *ReportResponse {
	buckets := make([]BucketResponse, len(r.Buckets))
	for i, b := range r.Buckets {
		buckets[i] = BucketFromDomain(b)
	}
	return &ReportResponse{
		Store:           r.Store,
		PeriodStart:     r.PeriodStart,
		PeriodEnd:       r.PeriodEnd,
		Granularity:     string(r.Granularity),
		PreviousBalance: money(r.PreviousBalance),
		Buckets:         buckets,
		InflowTotal:     money(r.InflowTotal),
		OutflowTotal:    money(r.OutflowTotal),
		NetBalance:      money(r.NetBalance),
		ClosingBalance:  money(r.ClosingBalance),
	}
}

// MetricVarianceResponse represents one metric comparison.
type MetricVarianceResponse struct {
	Current       decimal.Decimal `json:"current"`
	Previous      decimal.Decimal `json:"previous"`
	ChangePercent decimal.Decimal `json:"change_percent"`
}

// CategoryVarianceResponse represents one category comparison.
type CategoryVarianceResponse struct {
	Category      string          `json:"category"`
	Current       decimal.Decimal `json:"current"`
	Previous      decimal.Decimal `json:"previous"`
	ChangePercent decimal.Decimal `json:"change_percent"`
}

// VarianceResponse represents a month-over-month comparison.
type VarianceResponse struct {
	CurrentMonth      string                     `json:"current_month"`
	PreviousMonth     string                     `json:"previous_month"`
	Inflow            MetricVarianceResponse     `json:"inflow"`
	Outflow           MetricVarianceResponse     `json:"outflow"`
	Net               MetricVarianceResponse     `json:"net"`
	InflowCategories  []CategoryVarianceResponse `json:"inflow_categories"`
	OutflowCategories []CategoryVarianceResponse `json:"outflow_categories"`
}

// VarianceFromDomain converts a variance report to a response.
func VarianceFromDomain(v *domain.VarianceReport) *VarianceResponse {
	return &VarianceResponse{
		CurrentMonth:      v.CurrentLabel,
		PreviousMonth:     v.PreviousLabel,
		Inflow:            metricFromDomain(v.Inflow),
		Outflow:           metricFromDomain(v.Outflow),
		Net:               metricFromDomain(v.Net),
		InflowCategories:  categoriesFromDomain(v.InflowCategories),
		OutflowCategories: categoriesFromDomain(v.OutflowCategories),
	}
}

func metricFromDomain(m domain.MetricVariance) MetricVarianceResponse {
	return MetricVarianceResponse{
		Current:       money(m.Current),
		Previous:      money(m.Previous),
		ChangePercent: m.ChangePercent.Round(2),
	}
}

func categoriesFromDomain(categories []domain.CategoryVariance) []CategoryVarianceResponse {
	result := make([]CategoryVarianceResponse, len(categories))
	for i, c := range categories {
		result[i] = CategoryVarianceResponse{
			Category:      c.Category,
			Current:       money(c.Current),
			Previous:      money(c.Previous),
			ChangePercent: c.ChangePercent.Round(2),
		}
	}
	return result
}

// EntryResponse represents a ledger entry in API responses.
type EntryResponse struct {
	ID              string          `json:"id"`
	Store           string          `json:"store"`
	Kind            string          `json:"kind"`
	Amount          decimal.Decimal `json:"amount"`
	OccurredAt      time.Time       `json:"occurred_at"`
	Category        string          `json:"category,omitempty"`
	PaymentMethod   string          `json:"payment_method"`
	Responsible     string          `json:"responsible,omitempty"`
	DocumentNumber  string          `json:"document_number,omitempty"`
	CashierRef      string          `json:"cashier_ref,omitempty"`
	ServiceOrderRef string          `json:"service_order_ref,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// EntryFromDomain converts a domain entry to a response.
func EntryFromDomain(e *domain.LedgerEntry) *EntryResponse {
	return &EntryResponse{
		ID:              e.ID,
		Store:           e.Store,
		Kind:            string(e.Kind),
		Amount:          money(e.Amount),
		OccurredAt:      e.OccurredAt,
		Category:        e.Category,
		PaymentMethod:   string(e.PaymentMethod),
		Responsible:     e.Responsible,
		DocumentNumber:  e.DocumentNumber,
		CashierRef:      e.CashierRef,
		ServiceOrderRef: e.ServiceOrderRef,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

// EntriesFromDomain converts domain entries to responses.
func EntriesFromDomain(entries []*domain.LedgerEntry) []*EntryResponse {
	result := make([]*EntryResponse, len(entries))
	for i, e := range entries {
		result[i] = EntryFromDomain(e)
	}
	return result
}

// ListEntriesResponse wraps an entry listing.
type ListEntriesResponse struct {
	Entries []*EntryResponse `json:"entries"`
	Total   int64            `json:"total"`
}

// MutationResponse reports the outcome of a ledger mutation. StaleAggregate
// signals that the write is durable but aggregates were not re-derived yet.
type MutationResponse struct {
	EntryID        string `json:"entry_id"`
	StaleAggregate bool   `json:"stale_aggregate"`
}

// ReceivableResponse represents a receivable in API responses.
type ReceivableResponse struct {
	ID            string          `json:"id"`
	Store         string          `json:"store"`
	ClientRef     string          `json:"client_ref"`
	Description   string          `json:"description,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	DueDate       time.Time       `json:"due_date"`
	WaiveInterest bool            `json:"waive_interest"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ReceivableFromDomain converts a domain receivable to a response.
func ReceivableFromDomain(r *domain.Receivable) *ReceivableResponse {
	return &ReceivableResponse{
		ID:            r.ID,
		Store:         r.Store,
		ClientRef:     r.ClientRef,
		Description:   r.Description,
		Amount:        money(r.Amount),
		DueDate:       r.DueDate,
		WaiveInterest: r.WaiveInterest,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

// ReceivablesFromDomain converts domain receivables to responses.
func ReceivablesFromDomain(receivables []*domain.Receivable) []*ReceivableResponse {
	result := make([]*ReceivableResponse, len(receivables))
	for i, r := range receivables {
		result[i] = ReceivableFromDomain(r)
	}
	return result
}

// InterestResponse represents an interest evaluation.
type InterestResponse struct {
	ReceivableID string          `json:"receivable_id"`
	AsOf         time.Time       `json:"as_of"`
	Interest     decimal.Decimal `json:"interest"`
}
