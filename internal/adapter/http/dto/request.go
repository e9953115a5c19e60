package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/oticapro/caixa/internal/domain"
	"github.com/oticapro/caixa/internal/usecase"
)

// EntryRequest carries a ledger entry payload for create and update.
type EntryRequest struct {
	Kind            string          `json:"kind"`
	Amount          decimal.Decimal `json:"amount"`
	OccurredAt      time.Time       `json:"occurred_at"`
	Category        string          `json:"category,omitempty"`
	PaymentMethod   string          `json:"payment_method"`
	Responsible     string          `json:"responsible,omitempty"`
	DocumentNumber  string          `json:"document_number,omitempty"`
	CashierRef      string          `json:"cashier_ref,omitempty"`
	ServiceOrderRef string          `json:"service_order_ref,omitempty"`
}

// ToEntry converts the request payload to a domain entry. Store and ID are
// assigned by the mutation path, not by the client payload.
func (r *EntryRequest) ToEntry() *domain.LedgerEntry {
	return &domain.LedgerEntry{
		Kind:            domain.EntryKind(r.Kind),
		Amount:          r.Amount,
		OccurredAt:      r.OccurredAt,
		Category:        r.Category,
		PaymentMethod:   domain.PaymentMethod(r.PaymentMethod),
		Responsible:     r.Responsible,
		DocumentNumber:  r.DocumentNumber,
		CashierRef:      r.CashierRef,
		ServiceOrderRef: r.ServiceOrderRef,
	}
}

// ReceivableRequest carries a receivable payload for create and update.
type ReceivableRequest struct {
	ClientRef     string          `json:"client_ref"`
	Description   string          `json:"description,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	DueDate       time.Time       `json:"due_date"`
	WaiveInterest bool            `json:"waive_interest"`
}

// ToCreateInput converts the request to a create input for the given store.
func (r *ReceivableRequest) ToCreateInput(store string) usecase.CreateReceivableInput {
	return usecase.CreateReceivableInput{
		Store:         store,
		ClientRef:     r.ClientRef,
		Description:   r.Description,
		Amount:        r.Amount,
		DueDate:       r.DueDate,
		WaiveInterest: r.WaiveInterest,
	}
}

// ToUpdateInput converts the request to an update input.
func (r *ReceivableRequest) ToUpdateInput(store, id string) usecase.UpdateReceivableInput {
	return usecase.UpdateReceivableInput{
		Store:         store,
		ID:            id,
		ClientRef:     r.ClientRef,
		Description:   r.Description,
		Amount:        r.Amount,
		DueDate:       r.DueDate,
		WaiveInterest: r.WaiveInterest,
	}
}
