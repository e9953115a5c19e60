package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/oticapro/caixa/internal/domain"
	"github.com/oticapro/caixa/internal/usecase"
)

// fakeEntryRepo is an in-memory EntryRepository used to exercise the
// write-then-full-recompute cycle end to end.
type fakeEntryRepo struct {
	entries     map[string]*domain.LedgerEntry
	failQueries bool
}

var errStoreDown = errors.New("store unavailable")

func newFakeEntryRepo() *fakeEntryRepo {
	return &fakeEntryRepo{entries: make(map[string]*domain.LedgerEntry)}
}

func (r *fakeEntryRepo) Create(ctx context.Context, entry *domain.LedgerEntry) error {
	copied := *entry
	r.entries[entry.ID] = &copied
	return nil
}

func (r *fakeEntryRepo) GetByID(ctx context.Context, store, id string) (*domain.LedgerEntry, error) {
	e, ok := r.entries[id]
	if !ok || e.Store != store {
		return nil, domain.ErrEntryNotFound
	}
	copied := *e
	return &copied, nil
}

func (r *fakeEntryRepo) Update(ctx context.Context, entry *domain.LedgerEntry) error {
	if _, ok := r.entries[entry.ID]; !ok {
		return domain.ErrEntryNotFound
	}
	copied := *entry
	r.entries[entry.ID] = &copied
	return nil
}

func (r *fakeEntryRepo) Delete(ctx context.Context, store, id string) error {
	if _, ok := r.entries[id]; !ok {
		return domain.ErrEntryNotFound
	}
	delete(r.entries, id)
	return nil
}

func (r *fakeEntryRepo) QueryByDateRange(ctx context.Context, store string, start, end time.Time) ([]*domain.LedgerEntry, error) {
	if r.failQueries {
		return nil, errStoreDown
	}
	var result []*domain.LedgerEntry
	for _, e := range r.entries {
		if e.Store != store {
			continue
		}
		if e.OccurredAt.Before(start) || e.OccurredAt.After(end) {
			continue
		}
		copied := *e
		result = append(result, &copied)
	}
	return result, nil
}

func (r *fakeEntryRepo) QueryBefore(ctx context.Context, store string, cutoff time.Time) ([]*domain.LedgerEntry, error) {
	if r.failQueries {
		return nil, errStoreDown
	}
	var result []*domain.LedgerEntry
	for _, e := range r.entries {
		if e.Store != store || !e.OccurredAt.Before(cutoff) {
			continue
		}
		copied := *e
		result = append(result, &copied)
	}
	return result, nil
}

// seed inserts an entry directly, bypassing the mutation path.
func (r *fakeEntryRepo) seed(e *domain.LedgerEntry) {
	copied := *e
	r.entries[e.ID] = &copied
}

type seqIDGen struct{ n int }

func (g *seqIDGen) Generate() string {
	g.n++
	return fmt.Sprintf("id-%d", g.n)
}

// passRetrier runs the operation once without backoff.
type passRetrier struct{}

func (passRetrier) Retry(ctx context.Context, operation func() error) error {
	return operation()
}

func newMutationFixture() (*fakeEntryRepo, *usecase.ReportUseCase, *usecase.MutationUseCase) {
	repo := newFakeEntryRepo()
	reports := usecase.NewReportUseCase(repo, nil)
	mutations := usecase.NewMutationUseCase(repo, reports, &seqIDGen{}, passRetrier{}, zerolog.Nop(), nil)
	return repo, reports, mutations
}

func dailyReport(t *testing.T, reports *usecase.ReportUseCase, start, end time.Time) *usecase.Report {
	t.Helper()
	report, err := reports.GetReport(context.Background(), usecase.GetReportInput{
		Store:       "centro",
		Start:       start,
		End:         end,
		Granularity: domain.GranularityDay,
	})
	if err != nil {
		t.Fatalf("report failed: %v", err)
	}
	return report
}

func TestApplyMutation_DeleteTriggersFullRecompute(t *testing.T) {
	repo, reports, mutations := newMutationFixture()

	day1 := day(2026, 5, 4)
	day3 := day(2026, 5, 6)
	repo.seed(entry(domain.KindInflow, "1000", day(2026, 4, 1), ""))
	repo.seed(entry(domain.KindInflow, "500", day1, ""))
	repo.seed(entry(domain.KindOutflow, "200", day1, ""))
	doomed := entry(domain.KindInflow, "300", day3, "")
	doomed.ID = "doomed"
	repo.seed(doomed)

	before := dailyReport(t, reports, day1, day3)
	if !before.Buckets[2].CumulativeBalance.Equal(decimal.NewFromInt(1600)) {
		t.Fatalf("precondition: expected day3 cumulative 1600, got %s", before.Buckets[2].CumulativeBalance)
	}

	result, err := mutations.ApplyMutation(context.Background(), usecase.ApplyMutationInput{
		Store:   "centro",
		Op:      usecase.OpDelete,
		EntryID: "doomed",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.StaleAggregate {
		t.Fatal("recompute should have succeeded")
	}

	// The deleted entry must vanish from the re-derived report, not linger
	// in a patched total.
	after := dailyReport(t, reports, day1, day3)
	if !after.Buckets[2].NetBalance.IsZero() {
		t.Errorf("expected day3 net 0 after delete, got %s", after.Buckets[2].NetBalance)
	}
	if !after.Buckets[2].CumulativeBalance.Equal(decimal.NewFromInt(1300)) {
		t.Errorf("expected day3 cumulative 1300 after delete, got %s", after.Buckets[2].CumulativeBalance)
	}
}

func TestApplyMutation_DateEditMovesContribution(t *testing.T) {
	repo, reports, mutations := newMutationFixture()

	day1 := day(2026, 5, 4)
	day3 := day(2026, 5, 6)
	moved := entry(domain.KindInflow, "500", day1, "sales")
	moved.ID = "moved"
	repo.seed(moved)

	payload := *moved
	payload.OccurredAt = day3

	result, err := mutations.ApplyMutation(context.Background(), usecase.ApplyMutationInput{
		Store:   "centro",
		Op:      usecase.OpUpdate,
		EntryID: "moved",
		Entry:   &payload,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.StaleAggregate {
		t.Fatal("recompute should have succeeded")
	}

	report := dailyReport(t, reports, day1, day3)
	if !report.Buckets[0].NetBalance.IsZero() {
		t.Errorf("expected day1 emptied after date edit, got %s", report.Buckets[0].NetBalance)
	}
	if !report.Buckets[2].NetBalance.Equal(decimal.NewFromInt(500)) {
		t.Errorf("expected day3 to receive the moved entry, got %s", report.Buckets[2].NetBalance)
	}
	for i, b := range report.Buckets {
		if !b.CumulativeBalance.Equal(report.PreviousBalance.Add(sumNet(report.Buckets[:i+1]))) {
			t.Errorf("cumulative balance of bucket %d not re-derived", i)
		}
	}
}

func sumNet(buckets []domain.Bucket) decimal.Decimal {
	total := decimal.Zero
	for _, b := range buckets {
		total = total.Add(b.NetBalance)
	}
	return total
}

func TestApplyMutation_CreatePersistsAndRecomputes(t *testing.T) {
	repo, _, mutations := newMutationFixture()

	payload := entry(domain.KindInflow, "250", day(2026, 5, 10), "sales")
	payload.ID = ""

	result, err := mutations.ApplyMutation(context.Background(), usecase.ApplyMutationInput{
		Store: "centro",
		Op:    usecase.OpCreate,
		Entry: payload,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.EntryID == "" {
		t.Fatal("expected a generated entry ID")
	}
	if _, ok := repo.entries[result.EntryID]; !ok {
		t.Fatal("entry was not persisted")
	}
	if result.StaleAggregate {
		t.Fatal("recompute should have succeeded")
	}
}

func TestApplyMutation_RecomputeFailureSurfacesStaleAggregate(t *testing.T) {
	repo, _, mutations := newMutationFixture()

	payload := entry(domain.KindInflow, "250", day(2026, 5, 10), "")
	repo.failQueries = true

	result, err := mutations.ApplyMutation(context.Background(), usecase.ApplyMutationInput{
		Store: "centro",
		Op:    usecase.OpCreate,
		Entry: payload,
	})
	// Durability precedence: the write stands even though the recompute
	// failed, and the caller sees the stale-aggregate condition explicitly.
	if err != nil {
		t.Fatalf("write succeeded, expected no error, got %v", err)
	}
	if !result.StaleAggregate {
		t.Fatal("expected StaleAggregate to be set")
	}
	if _, ok := repo.entries[result.EntryID]; !ok {
		t.Fatal("entry must remain persisted after recompute failure")
	}
}

func TestApplyMutation_InvalidInputRejectedBeforeWrite(t *testing.T) {
	repo, _, mutations := newMutationFixture()

	bad := entry(domain.KindInflow, "100", day(2026, 5, 10), "")
	bad.Amount = decimal.NewFromInt(-5)

	_, err := mutations.ApplyMutation(context.Background(), usecase.ApplyMutationInput{
		Store: "centro",
		Op:    usecase.OpCreate,
		Entry: bad,
	})
	if !errors.Is(err, domain.ErrNegativeAmount) {
		t.Fatalf("expected ErrNegativeAmount, got %v", err)
	}
	if len(repo.entries) != 0 {
		t.Fatal("invalid entry must not reach the store")
	}
}

func TestApplyMutation_UnknownOp(t *testing.T) {
	_, _, mutations := newMutationFixture()

	_, err := mutations.ApplyMutation(context.Background(), usecase.ApplyMutationInput{
		Store: "centro",
		Op:    "archive",
	})
	if !errors.Is(err, domain.ErrUnknownMutationOp) {
		t.Fatalf("expected ErrUnknownMutationOp, got %v", err)
	}
}

func TestApplyMutation_DeleteMissingEntry(t *testing.T) {
	_, _, mutations := newMutationFixture()

	_, err := mutations.ApplyMutation(context.Background(), usecase.ApplyMutationInput{
		Store:   "centro",
		Op:      usecase.OpDelete,
		EntryID: "nope",
	})
	if !errors.Is(err, domain.ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}
}
