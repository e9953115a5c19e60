package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// daysPerMonth converts the configured monthly rate into a daily rate.
var daysPerMonth = decimal.NewFromInt(30)

// AccruedInterest computes late-payment interest for a receivable.
//
// The monthly rate is divided by 30 to obtain a daily rate, which accrues
// linearly per whole overdue day. A receivable that is not yet due, a waived
// receivable, or a non-positive rate all accrue zero; interest is never
// negative.
func AccruedInterest(amount decimal.Decimal, dueDate, today time.Time, monthlyRatePercent decimal.Decimal, waived bool) decimal.Decimal {
	if waived || monthlyRatePercent.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	days := OverdueDays(dueDate, today)
	if days == 0 {
		return decimal.Zero
	}

	dailyRate := monthlyRatePercent.Div(daysPerMonth)
	return amount.
		Mul(dailyRate).
		Div(decimal.NewFromInt(100)).
		Mul(decimal.NewFromInt(days))
}

// OverdueDays returns the number of whole calendar days today is past the
// due date, never negative.
func OverdueDays(dueDate, today time.Time) int64 {
	elapsed := DayOf(today).Sub(DayOf(dueDate))
	days := int64(elapsed / (24 * time.Hour))
	if days < 0 {
		return 0
	}
	return days
}
