package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation constants
const (
	MaxStoreLength    = 64
	MaxCategoryLength = 128
	MaxEntryAmount    = "100000000" // 100 million, minor-unit sanity cap
)

var validPaymentMethods = map[PaymentMethod]bool{
	PaymentCash:     true,
	PaymentDebit:    true,
	PaymentCredit:   true,
	PaymentPix:      true,
	PaymentTransfer: true,
	PaymentCheck:    true,
	PaymentBankSlip: true,
}

// ValidateStore validates a store identifier.
func ValidateStore(store string) error {
	store = strings.TrimSpace(store)
	if store == "" {
		return ErrMissingStore
	}
	if len(store) > MaxStoreLength {
		return fmt.Errorf("%w: limit is %d characters", ErrStoreTooLong, MaxStoreLength)
	}
	return nil
}

// ValidateKind validates an entry direction.
func ValidateKind(kind EntryKind) error {
	if kind != KindInflow && kind != KindOutflow {
		return fmt.Errorf("%w: got %q", ErrInvalidKind, kind)
	}
	return nil
}

// ValidateAmount validates an entry or receivable amount. Amounts are
// positive magnitudes; direction is carried by the entry kind only.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return ErrNegativeAmount
	}
	maxAmount, _ := decimal.NewFromString(MaxEntryAmount)
	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum is %s", ErrAmountTooLarge, MaxEntryAmount)
	}
	return nil
}

// ValidatePaymentMethod validates a payment method.
func ValidatePaymentMethod(method PaymentMethod) error {
	if !validPaymentMethods[method] {
		return fmt.Errorf("%w: got %q", ErrInvalidPaymentMethod, method)
	}
	return nil
}

// ValidateEntry validates a full ledger entry before it reaches storage or
// aggregation. Malformed input is rejected here; the aggregation paths
// assume validated amounts and dates.
func ValidateEntry(e *LedgerEntry) error {
	if err := ValidateStore(e.Store); err != nil {
		return err
	}
	if err := ValidateKind(e.Kind); err != nil {
		return err
	}
	if err := ValidateAmount(e.Amount); err != nil {
		return err
	}
	if err := ValidatePaymentMethod(e.PaymentMethod); err != nil {
		return err
	}
	if e.OccurredAt.IsZero() {
		return ErrMissingOccurredAt
	}
	if len(e.Category) > MaxCategoryLength {
		return fmt.Errorf("category exceeds %d characters", MaxCategoryLength)
	}
	return nil
}

// ValidateReceivable validates a receivable record.
func ValidateReceivable(r *Receivable) error {
	if err := ValidateStore(r.Store); err != nil {
		return err
	}
	if err := ValidateAmount(r.Amount); err != nil {
		return err
	}
	if r.DueDate.IsZero() {
		return ErrMissingDueDate
	}
	return nil
}
