package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/oticapro/caixa/internal/domain"
	"github.com/oticapro/caixa/internal/infrastructure/metrics"
)

// ReceivableUseCase handles accounts-receivable records and interest
// accrual. The monthly rate comes from configuration at construction time so
// the accrual itself stays a pure function of its inputs.
type ReceivableUseCase struct {
	receivableRepo ReceivableRepository
	idGen          IDGenerator
	monthlyRate    decimal.Decimal
	metrics        *metrics.Metrics // optional
}

// NewReceivableUseCase creates a new ReceivableUseCase.
func NewReceivableUseCase(receivableRepo ReceivableRepository, idGen IDGenerator, monthlyRatePercent decimal.Decimal, m *metrics.Metrics) *ReceivableUseCase {
	return &ReceivableUseCase{
		receivableRepo: receivableRepo,
		idGen:          idGen,
		monthlyRate:    monthlyRatePercent,
		metrics:        m,
	}
}

// CreateReceivableInput represents input for creating a receivable.
type CreateReceivableInput struct {
	Store         string
	ClientRef     string
	Description   string
	Amount        decimal.Decimal
	DueDate       time.Time
	WaiveInterest bool
}

// CreateReceivable creates a new receivable.
func (uc *ReceivableUseCase) CreateReceivable(ctx context.Context, input CreateReceivableInput) (*domain.Receivable, error) {
	now := time.Now().UTC()

	receivable := &domain.Receivable{
		ID:            uc.idGen.Generate(),
		Store:         input.Store,
		ClientRef:     input.ClientRef,
		Description:   input.Description,
		Amount:        input.Amount,
		DueDate:       input.DueDate,
		WaiveInterest: input.WaiveInterest,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := domain.ValidateReceivable(receivable); err != nil {
		return nil, err
	}

	if err := uc.receivableRepo.Create(ctx, receivable); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.ReceivablesCreated.Inc()
	}

	return receivable, nil
}

// GetReceivable retrieves a receivable by ID.
func (uc *ReceivableUseCase) GetReceivable(ctx context.Context, store, id string) (*domain.Receivable, error) {
	return uc.receivableRepo.GetByID(ctx, store, id)
}

// UpdateReceivableInput represents input for editing a receivable. Amount,
// due date and waive flag edits take effect on the next interest read; no
// accrued value is stored.
type UpdateReceivableInput struct {
	Store         string
	ID            string
	ClientRef     string
	Description   string
	Amount        decimal.Decimal
	DueDate       time.Time
	WaiveInterest bool
}

// UpdateReceivable edits a receivable in place.
func (uc *ReceivableUseCase) UpdateReceivable(ctx context.Context, input UpdateReceivableInput) (*domain.Receivable, error) {
	existing, err := uc.receivableRepo.GetByID(ctx, input.Store, input.ID)
	if err != nil {
		return nil, err
	}

	existing.ClientRef = input.ClientRef
	existing.Description = input.Description
	existing.Amount = input.Amount
	existing.DueDate = input.DueDate
	existing.WaiveInterest = input.WaiveInterest
	existing.UpdatedAt = time.Now().UTC()

	if err := domain.ValidateReceivable(existing); err != nil {
		return nil, err
	}
	if err := uc.receivableRepo.Update(ctx, existing); err != nil {
		return nil, err
	}

	return existing, nil
}

// DeleteReceivable removes a receivable.
func (uc *ReceivableUseCase) DeleteReceivable(ctx context.Context, store, id string) error {
	if _, err := uc.receivableRepo.GetByID(ctx, store, id); err != nil {
		return err
	}
	return uc.receivableRepo.Delete(ctx, store, id)
}

// ListReceivablesInput represents input for listing receivables.
type ListReceivablesInput struct {
	Store  string
	Limit  int
	Offset int
}

// ListReceivables lists a store's receivables with pagination.
func (uc *ReceivableUseCase) ListReceivables(ctx context.Context, input ListReceivablesInput) ([]*domain.Receivable, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}
	if input.Limit > 100 {
		input.Limit = 100
	}
	return uc.receivableRepo.ListByStore(ctx, input.Store, input.Limit, input.Offset)
}

// ComputeInterest evaluates accrued interest for a receivable as of the
// given date, using the configured default monthly rate unless the
// receivable waives interest.
func (uc *ReceivableUseCase) ComputeInterest(ctx context.Context, store, id string, asOf time.Time) (decimal.Decimal, error) {
	receivable, err := uc.receivableRepo.GetByID(ctx, store, id)
	if err != nil {
		return decimal.Zero, err
	}

	if uc.metrics != nil {
		uc.metrics.InterestEvaluations.Inc()
	}

	return domain.AccruedInterest(receivable.Amount, receivable.DueDate, asOf, uc.monthlyRate, receivable.WaiveInterest), nil
}
