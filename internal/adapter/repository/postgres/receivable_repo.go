package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oticapro/caixa/internal/domain"
)

// ReceivableRepository implements usecase.ReceivableRepository.
type ReceivableRepository struct {
	pool *pgxpool.Pool
}

// NewReceivableRepository creates a new ReceivableRepository.
func NewReceivableRepository(pool *pgxpool.Pool) *ReceivableRepository {
	return &ReceivableRepository{pool: pool}
}

const receivableColumns = `id, store, client_ref, description, amount, due_date,
	waive_interest, created_at, updated_at`

// Create inserts a new receivable.
func (r *ReceivableRepository) Create(ctx context.Context, receivable *domain.Receivable) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO receivables (`+receivableColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		receivable.ID,
		receivable.Store,
		receivable.ClientRef,
		receivable.Description,
		decimalToNumeric(receivable.Amount),
		timeToPgTimestamptz(receivable.DueDate),
		receivable.WaiveInterest,
		timeToPgTimestamptz(receivable.CreatedAt),
		timeToPgTimestamptz(receivable.UpdatedAt),
	)

	return err
}

// GetByID retrieves one of a store's receivables by ID.
func (r *ReceivableRepository) GetByID(ctx context.Context, store, id string) (*domain.Receivable, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+receivableColumns+`
		FROM receivables
		WHERE store = $1 AND id = $2`,
		store, id,
	)

	receivable, err := scanReceivable(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrReceivableNotFound
		}

		return nil, err
	}

	return receivable, nil
}

// Update rewrites an existing receivable.
func (r *ReceivableRepository) Update(ctx context.Context, receivable *domain.Receivable) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE receivables
		SET client_ref = $3, description = $4, amount = $5, due_date = $6,
			waive_interest = $7, updated_at = $8
		WHERE store = $1 AND id = $2`,
		receivable.Store,
		receivable.ID,
		receivable.ClientRef,
		receivable.Description,
		decimalToNumeric(receivable.Amount),
		timeToPgTimestamptz(receivable.DueDate),
		receivable.WaiveInterest,
		timeToPgTimestamptz(receivable.UpdatedAt),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrReceivableNotFound
	}

	return nil
}

// Delete removes a receivable.
func (r *ReceivableRepository) Delete(ctx context.Context, store, id string) error {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM receivables
		WHERE store = $1 AND id = $2`,
		store, id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrReceivableNotFound
	}

	return nil
}

// ListByStore lists a store's receivables ordered by due date.
func (r *ReceivableRepository) ListByStore(ctx context.Context, store string, limit, offset int) ([]*domain.Receivable, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+receivableColumns+`
		FROM receivables
		WHERE store = $1
		ORDER BY due_date, id
		LIMIT $2 OFFSET $3`,
		store, int32(limit), int32(offset),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	receivables := make([]*domain.Receivable, 0)
	for rows.Next() {
		receivable, err := scanReceivable(rows)
		if err != nil {
			return nil, err
		}
		receivables = append(receivables, receivable)
	}

	return receivables, rows.Err()
}

func scanReceivable(row pgx.Row) (*domain.Receivable, error) {
	var (
		receivable domain.Receivable
		amount     pgtype.Numeric
		dueDate    pgtype.Timestamptz
		createdAt  pgtype.Timestamptz
		updatedAt  pgtype.Timestamptz
	)

	err := row.Scan(
		&receivable.ID,
		&receivable.Store,
		&receivable.ClientRef,
		&receivable.Description,
		&amount,
		&dueDate,
		&receivable.WaiveInterest,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	receivable.Amount = numericToDecimal(amount)
	receivable.DueDate = dueDate.Time
	receivable.CreatedAt = createdAt.Time
	receivable.UpdatedAt = updatedAt.Time

	return &receivable, nil
}
