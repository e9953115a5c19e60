package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryKind is the direction of a ledger entry.
type EntryKind string

const (
	KindInflow  EntryKind = "inflow"
	KindOutflow EntryKind = "outflow"
)

// PaymentMethod identifies how a movement was settled.
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentDebit    PaymentMethod = "debit"
	PaymentCredit   PaymentMethod = "credit"
	PaymentPix      PaymentMethod = "pix"
	PaymentTransfer PaymentMethod = "transfer"
	PaymentCheck    PaymentMethod = "check"
	PaymentBankSlip PaymentMethod = "bank_slip"
)

// Uncategorized is the sentinel category used when an entry has no label,
// so per-category subtotals stay exhaustive.
const Uncategorized = "uncategorized"

// LedgerEntry represents one cash movement in a store's cash control.
// Amount is always a positive magnitude; direction comes from Kind.
type LedgerEntry struct {
	ID              string
	Store           string
	Kind            EntryKind
	Amount          decimal.Decimal
	OccurredAt      time.Time
	Category        string
	PaymentMethod   PaymentMethod
	Responsible     string
	DocumentNumber  string
	CashierRef      string
	ServiceOrderRef string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// SignedAmount returns the amount with the sign implied by Kind.
func (e *LedgerEntry) SignedAmount() decimal.Decimal {
	if e.Kind == KindOutflow {
		return e.Amount.Neg()
	}
	return e.Amount
}

// Day returns the calendar day the entry belongs to for bucketing purposes.
func (e *LedgerEntry) Day() time.Time {
	return DayOf(e.OccurredAt)
}

// NormalizedCategory returns the entry's category, or the Uncategorized
// sentinel when the label is empty.
func (e *LedgerEntry) NormalizedCategory() string {
	if e.Category == "" {
		return Uncategorized
	}
	return e.Category
}

// DayOf normalizes a timestamp to 00:00:00 UTC of its calendar day.
// Entries carry full timestamps but all range filters and bucket keys
// compare at day granularity.
func DayOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// EndOfDay returns the last representable instant of t's calendar day,
// used for inclusive upper bounds on range queries.
func EndOfDay(t time.Time) time.Time {
	return DayOf(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// StartOfWeek returns the Sunday that opens the week containing t.
func StartOfWeek(t time.Time) time.Time {
	d := DayOf(t)
	return d.AddDate(0, 0, -int(d.Weekday()))
}

// StartOfMonth returns the first day of the month containing t.
func StartOfMonth(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
