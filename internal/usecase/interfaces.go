package usecase

import (
	"context"
	"time"

	"github.com/oticapro/caixa/internal/domain"
)

// EntryRepository defines data access for ledger entries. Queries are scoped
// to exactly one store; range bounds are inclusive and row order is
// unspecified (callers sort).
type EntryRepository interface {
	Create(ctx context.Context, entry *domain.LedgerEntry) error
	GetByID(ctx context.Context, store, id string) (*domain.LedgerEntry, error)
	Update(ctx context.Context, entry *domain.LedgerEntry) error
	Delete(ctx context.Context, store, id string) error
	QueryByDateRange(ctx context.Context, store string, start, end time.Time) ([]*domain.LedgerEntry, error)
	QueryBefore(ctx context.Context, store string, cutoff time.Time) ([]*domain.LedgerEntry, error)
}

// ReceivableRepository defines data access for receivables.
type ReceivableRepository interface {
	Create(ctx context.Context, receivable *domain.Receivable) error
	GetByID(ctx context.Context, store, id string) (*domain.Receivable, error)
	Update(ctx context.Context, receivable *domain.Receivable) error
	Delete(ctx context.Context, store, id string) error
	ListByStore(ctx context.Context, store string, limit, offset int) ([]*domain.Receivable, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Retrier retries a transient-failure-prone operation.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IdempotencyStore handles idempotency key storage for mutation requests.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
