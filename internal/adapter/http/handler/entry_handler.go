package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/oticapro/caixa/internal/adapter/http/dto"
	"github.com/oticapro/caixa/internal/domain"
	"github.com/oticapro/caixa/internal/usecase"
)

// MutationService defines the mutation behavior needed by EntryHandler.
type MutationService interface {
	ApplyMutation(ctx context.Context, input usecase.ApplyMutationInput) (*usecase.MutationResult, error)
}

// EntryQueryService defines the read behavior needed by EntryHandler.
type EntryQueryService interface {
	ListEntries(ctx context.Context, store string, start, end time.Time) ([]*domain.LedgerEntry, error)
}

// EntryHandler handles ledger entry HTTP requests. All writes funnel through
// the mutation path so aggregates are re-derived before the response leaves.
type EntryHandler struct {
	mutationUC MutationService
	queryUC    EntryQueryService
}

// NewEntryHandler creates a new EntryHandler.
func NewEntryHandler(mutationUC MutationService, queryUC EntryQueryService) *EntryHandler {
	return &EntryHandler{
		mutationUC: mutationUC,
		queryUC:    queryUC,
	}
}

// Create records a new ledger entry.
func (h *EntryHandler) Create(w http.ResponseWriter, r *http.Request) {
	store := chi.URLParam(r, "store")

	var req dto.EntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.mutationUC.ApplyMutation(r.Context(), usecase.ApplyMutationInput{
		Store: store,
		Op:    usecase.OpCreate,
		Entry: req.ToEntry(),
	})
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to create entry", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, mutationResponse(result))
}

// Update edits an existing ledger entry in place.
func (h *EntryHandler) Update(w http.ResponseWriter, r *http.Request) {
	store := chi.URLParam(r, "store")
	id := chi.URLParam(r, "id")

	var req dto.EntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.mutationUC.ApplyMutation(r.Context(), usecase.ApplyMutationInput{
		Store:   store,
		Op:      usecase.OpUpdate,
		EntryID: id,
		Entry:   req.ToEntry(),
	})
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to update entry", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, mutationResponse(result))
}

// Delete removes a ledger entry from all future aggregations.
func (h *EntryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	store := chi.URLParam(r, "store")
	id := chi.URLParam(r, "id")

	result, err := h.mutationUC.ApplyMutation(r.Context(), usecase.ApplyMutationInput{
		Store:   store,
		Op:      usecase.OpDelete,
		EntryID: id,
	})
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to delete entry", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, mutationResponse(result))
}

// List returns a store's entries for a period.
func (h *EntryHandler) List(w http.ResponseWriter, r *http.Request) {
	store := chi.URLParam(r, "store")

	now := time.Now().UTC()
	start, err := parseDateQueryDefault(r, "start", domain.StartOfMonth(now))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid start date", err.Error())
		return
	}
	end, err := parseDateQueryDefault(r, "end", now)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid end date", err.Error())
		return
	}

	entries, err := h.queryUC.ListEntries(r.Context(), store, start, end)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to list entries", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListEntriesResponse{
		Entries: dto.EntriesFromDomain(entries),
		Total:   int64(len(entries)),
	})
}

func mutationResponse(result *usecase.MutationResult) dto.MutationResponse {
	return dto.MutationResponse{
		EntryID:        result.EntryID,
		StaleAggregate: result.StaleAggregate,
	}
}
