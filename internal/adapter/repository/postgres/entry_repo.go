package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/oticapro/caixa/internal/domain"
)

// EntryRepository implements usecase.EntryRepository.
type EntryRepository struct {
	pool *pgxpool.Pool
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(pool *pgxpool.Pool) *EntryRepository {
	return &EntryRepository{pool: pool}
}

const entryColumns = `id, store, kind, amount, occurred_at, category, payment_method,
	responsible, document_number, cashier_ref, service_order_ref, created_at, updated_at`

// Create inserts a new ledger entry.
func (r *EntryRepository) Create(ctx context.Context, entry *domain.LedgerEntry) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO ledger_entries (`+entryColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		entry.ID,
		entry.Store,
		string(entry.Kind),
		decimalToNumeric(entry.Amount),
		timeToPgTimestamptz(entry.OccurredAt),
		entry.Category,
		string(entry.PaymentMethod),
		entry.Responsible,
		entry.DocumentNumber,
		entry.CashierRef,
		entry.ServiceOrderRef,
		timeToPgTimestamptz(entry.CreatedAt),
		timeToPgTimestamptz(entry.UpdatedAt),
	)

	return err
}

// GetByID retrieves one of a store's entries by ID.
func (r *EntryRepository) GetByID(ctx context.Context, store, id string) (*domain.LedgerEntry, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+entryColumns+`
		FROM ledger_entries
		WHERE store = $1 AND id = $2`,
		store, id,
	)

	entry, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEntryNotFound
		}

		return nil, err
	}

	return entry, nil
}

// Update rewrites an existing ledger entry.
func (r *EntryRepository) Update(ctx context.Context, entry *domain.LedgerEntry) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE ledger_entries
		SET kind = $3, amount = $4, occurred_at = $5, category = $6,
			payment_method = $7, responsible = $8, document_number = $9,
			cashier_ref = $10, service_order_ref = $11, updated_at = $12
		WHERE store = $1 AND id = $2`,
		entry.Store,
		entry.ID,
		string(entry.Kind),
		decimalToNumeric(entry.Amount),
		timeToPgTimestamptz(entry.OccurredAt),
		entry.Category,
		string(entry.PaymentMethod),
		entry.Responsible,
		entry.DocumentNumber,
		entry.CashierRef,
		entry.ServiceOrderRef,
		timeToPgTimestamptz(entry.UpdatedAt),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEntryNotFound
	}

	return nil
}

// Delete removes a ledger entry.
func (r *EntryRepository) Delete(ctx context.Context, store, id string) error {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM ledger_entries
		WHERE store = $1 AND id = $2`,
		store, id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEntryNotFound
	}

	return nil
}

// QueryByDateRange retrieves a store's entries with occurred_at in [start, end].
func (r *EntryRepository) QueryByDateRange(ctx context.Context, store string, start, end time.Time) ([]*domain.LedgerEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+entryColumns+`
		FROM ledger_entries
		WHERE store = $1 AND occurred_at >= $2 AND occurred_at <= $3
		ORDER BY occurred_at, id`,
		store,
		timeToPgTimestamptz(start),
		timeToPgTimestamptz(end),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEntries(rows)
}

// QueryBefore retrieves a store's entries with occurred_at strictly before the
// cutoff.
func (r *EntryRepository) QueryBefore(ctx context.Context, store string, cutoff time.Time) ([]*domain.LedgerEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+entryColumns+`
		FROM ledger_entries
		WHERE store = $1 AND occurred_at < $2
		ORDER BY occurred_at, id`,
		store,
		timeToPgTimestamptz(cutoff),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEntries(rows)
}

func scanEntries(rows pgx.Rows) ([]*domain.LedgerEntry, error) {
	entries := make([]*domain.LedgerEntry, 0)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

func scanEntry(row pgx.Row) (*domain.LedgerEntry, error) {
	var (
		entry         domain.LedgerEntry
		kind          string
		paymentMethod string
		amount        pgtype.Numeric
		occurredAt    pgtype.Timestamptz
		createdAt     pgtype.Timestamptz
		updatedAt     pgtype.Timestamptz
	)

	err := row.Scan(
		&entry.ID,
		&entry.Store,
		&kind,
		&amount,
		&occurredAt,
		&entry.Category,
		&paymentMethod,
		&entry.Responsible,
		&entry.DocumentNumber,
		&entry.CashierRef,
		&entry.ServiceOrderRef,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	entry.Kind = domain.EntryKind(kind)
	entry.PaymentMethod = domain.PaymentMethod(paymentMethod)
	entry.Amount = numericToDecimal(amount)
	entry.OccurredAt = occurredAt.Time
	entry.CreatedAt = createdAt.Time
	entry.UpdatedAt = updatedAt.Time

	return &entry, nil
}

// Type conversion helpers.
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	// NaN numerics carry a nil Int; validated writes never store one, but a
	// manual row edit must not crash the scan path.
	if !n.Valid || n.NaN || n.Int == nil {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}

func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}
