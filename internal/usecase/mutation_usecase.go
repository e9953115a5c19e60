package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/oticapro/caixa/internal/domain"
	"github.com/oticapro/caixa/internal/infrastructure/metrics"
)

// MutationOp identifies a ledger entry mutation.
type MutationOp string

const (
	OpCreate MutationOp = "create"
	OpUpdate MutationOp = "update"
	OpDelete MutationOp = "delete"
)

// ApplyMutationInput represents input for a ledger entry mutation.
type ApplyMutationInput struct {
	Store   string
	Op      MutationOp
	EntryID string              // required for update and delete
	Entry   *domain.LedgerEntry // payload for create and update
}

// MutationResult reports the outcome of a mutation. StaleAggregate is set
// when the entry was persisted but the post-write recompute failed, meaning
// previously rendered aggregates may no longer match the store.
type MutationResult struct {
	EntryID        string
	StaleAggregate bool
}

// MutationUseCase applies create/edit/delete mutations and re-derives the
// affected store's aggregates before returning. Entries can be edited with
// retroactive dates, which would invalidate an unbounded suffix of any
// running-total cache, so the recompute is always a full re-derivation.
type MutationUseCase struct {
	entryRepo EntryRepository
	reports   *ReportUseCase
	idGen     IDGenerator
	retrier   Retrier
	logger    zerolog.Logger
	metrics   *metrics.Metrics // optional
}

// NewMutationUseCase creates a new MutationUseCase.
func NewMutationUseCase(entryRepo EntryRepository, reports *ReportUseCase, idGen IDGenerator, retrier Retrier, logger zerolog.Logger, m *metrics.Metrics) *MutationUseCase {
	return &MutationUseCase{
		entryRepo: entryRepo,
		reports:   reports,
		idGen:     idGen,
		retrier:   retrier,
		logger:    logger,
		metrics:   m,
	}
}

// ApplyMutation persists the mutation and then re-runs the read path for the
// months touched by it. The store write takes durability precedence: once it
// is acknowledged, a recompute failure is surfaced via StaleAggregate rather
// than rolled back or conflated with success.
func (uc *MutationUseCase) ApplyMutation(ctx context.Context, input ApplyMutationInput) (*MutationResult, error) {
	if err := domain.ValidateStore(input.Store); err != nil {
		return nil, err
	}

	var entryID string
	var affected []time.Time
	now := time.Now().UTC()

	switch input.Op {
	case OpCreate:
		entry := *input.Entry
		entry.ID = uc.idGen.Generate()
		entry.Store = input.Store
		entry.CreatedAt = now
		entry.UpdatedAt = now
		if err := domain.ValidateEntry(&entry); err != nil {
			return nil, uc.reject(input.Op, err)
		}
		if err := uc.entryRepo.Create(ctx, &entry); err != nil {
			return nil, uc.reject(input.Op, err)
		}
		entryID = entry.ID
		affected = append(affected, entry.Day())

	case OpUpdate:
		existing, err := uc.entryRepo.GetByID(ctx, input.Store, input.EntryID)
		if err != nil {
			return nil, uc.reject(input.Op, err)
		}
		entry := *input.Entry
		entry.ID = existing.ID
		entry.Store = existing.Store
		entry.CreatedAt = existing.CreatedAt
		entry.UpdatedAt = now
		if err := domain.ValidateEntry(&entry); err != nil {
			return nil, uc.reject(input.Op, err)
		}
		if err := uc.entryRepo.Update(ctx, &entry); err != nil {
			return nil, uc.reject(input.Op, err)
		}
		entryID = entry.ID
		// A date edit moves the entry's contribution; both the old and the
		// new day fall inside the recompute window.
		affected = append(affected, existing.Day(), entry.Day())

	case OpDelete:
		existing, err := uc.entryRepo.GetByID(ctx, input.Store, input.EntryID)
		if err != nil {
			return nil, uc.reject(input.Op, err)
		}
		if err := uc.entryRepo.Delete(ctx, input.Store, input.EntryID); err != nil {
			return nil, uc.reject(input.Op, err)
		}
		entryID = existing.ID
		affected = append(affected, existing.Day())

	default:
		return nil, uc.reject(input.Op, domain.ErrUnknownMutationOp)
	}

	result := &MutationResult{EntryID: entryID}
	if err := uc.recompute(ctx, input.Store, affected); err != nil {
		uc.logger.Warn().
			Err(err).
			Str("store", input.Store).
			Str("entry_id", entryID).
			Str("op", string(input.Op)).
			Msg("aggregate recompute failed after acknowledged write")
		result.StaleAggregate = true
		if uc.metrics != nil {
			uc.metrics.StaleAggregates.Inc()
		}
	}

	if uc.metrics != nil {
		uc.metrics.MutationsApplied.WithLabelValues(string(input.Op)).Inc()
		uc.metrics.MutationDuration.Observe(time.Since(now).Seconds())
	}

	return result, nil
}

func (uc *MutationUseCase) reject(op MutationOp, err error) error {
	if uc.metrics != nil {
		uc.metrics.MutationErrors.WithLabelValues(string(op)).Inc()
	}
	return err
}

// recompute re-runs the full read path over the months spanning the affected
// dates. The write is already acknowledged, so cancellation of the incoming
// request must not abort the recompute.
func (uc *MutationUseCase) recompute(ctx context.Context, store string, affected []time.Time) error {
	ctx = context.WithoutCancel(ctx)

	from := affected[0]
	to := affected[0]
	for _, d := range affected[1:] {
		if d.Before(from) {
			from = d
		}
		if d.After(to) {
			to = d
		}
	}

	windowStart := domain.StartOfMonth(from)
	windowEnd := domain.StartOfMonth(to).AddDate(0, 1, -1)

	return uc.retrier.Retry(ctx, func() error {
		_, err := uc.reports.GetReport(ctx, GetReportInput{
			Store:       store,
			Start:       windowStart,
			End:         windowEnd,
			Granularity: domain.GranularityMonth,
		})
		return err
	})
}
