package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Receivable is an accounts-receivable record tracked per store.
// Interest accrues against Amount from DueDate unless WaiveInterest is set;
// accrual is always re-evaluated from current values, never stored.
type Receivable struct {
	ID            string
	Store         string
	ClientRef     string
	Description   string
	Amount        decimal.Decimal
	DueDate       time.Time
	WaiveInterest bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
