package domain

import "errors"

var (
	// Entry errors
	ErrEntryNotFound        = errors.New("ledger entry not found")
	ErrNegativeAmount       = errors.New("amount must not be negative")
	ErrAmountTooLarge       = errors.New("amount exceeds the maximum")
	ErrInvalidKind          = errors.New("kind must be inflow or outflow")
	ErrInvalidPaymentMethod = errors.New("unknown payment method")
	ErrMissingStore         = errors.New("store identifier is required")
	ErrStoreTooLong         = errors.New("store identifier too long")
	ErrMissingOccurredAt    = errors.New("occurred-at date is required")

	// Receivable errors
	ErrReceivableNotFound = errors.New("receivable not found")
	ErrMissingDueDate     = errors.New("due date is required")

	// Reporting errors
	ErrInvalidGranularity = errors.New("granularity must be day, week or month")

	// Mutation errors
	ErrUnknownMutationOp = errors.New("unknown mutation operation")
)
