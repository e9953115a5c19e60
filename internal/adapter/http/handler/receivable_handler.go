package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/oticapro/caixa/internal/adapter/http/dto"
	"github.com/oticapro/caixa/internal/domain"
	"github.com/oticapro/caixa/internal/usecase"
)

// ReceivableService defines the behavior needed by ReceivableHandler.
type ReceivableService interface {
	CreateReceivable(ctx context.Context, input usecase.CreateReceivableInput) (*domain.Receivable, error)
	GetReceivable(ctx context.Context, store, id string) (*domain.Receivable, error)
	UpdateReceivable(ctx context.Context, input usecase.UpdateReceivableInput) (*domain.Receivable, error)
	DeleteReceivable(ctx context.Context, store, id string) error
	ListReceivables(ctx context.Context, input usecase.ListReceivablesInput) ([]*domain.Receivable, error)
	ComputeInterest(ctx context.Context, store, id string, asOf time.Time) (decimal.Decimal, error)
}

// ReceivableHandler handles receivable HTTP requests.
type ReceivableHandler struct {
	receivableUC ReceivableService
}

// NewReceivableHandler creates a new ReceivableHandler.
func NewReceivableHandler(receivableUC ReceivableService) *ReceivableHandler {
	return &ReceivableHandler{receivableUC: receivableUC}
}

// Create creates a new receivable.
func (h *ReceivableHandler) Create(w http.ResponseWriter, r *http.Request) {
	store := chi.URLParam(r, "store")

	var req dto.ReceivableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	receivable, err := h.receivableUC.CreateReceivable(r.Context(), req.ToCreateInput(store))
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to create receivable", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.ReceivableFromDomain(receivable))
}

// Get retrieves a receivable by ID.
func (h *ReceivableHandler) Get(w http.ResponseWriter, r *http.Request) {
	store := chi.URLParam(r, "store")
	id := chi.URLParam(r, "id")

	receivable, err := h.receivableUC.GetReceivable(r.Context(), store, id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get receivable", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ReceivableFromDomain(receivable))
}

// Update edits a receivable.
func (h *ReceivableHandler) Update(w http.ResponseWriter, r *http.Request) {
	store := chi.URLParam(r, "store")
	id := chi.URLParam(r, "id")

	var req dto.ReceivableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	receivable, err := h.receivableUC.UpdateReceivable(r.Context(), req.ToUpdateInput(store, id))
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to update receivable", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ReceivableFromDomain(receivable))
}

// Delete removes a receivable.
func (h *ReceivableHandler) Delete(w http.ResponseWriter, r *http.Request) {
	store := chi.URLParam(r, "store")
	id := chi.URLParam(r, "id")

	if err := h.receivableUC.DeleteReceivable(r.Context(), store, id); err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to delete receivable", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// List lists a store's receivables.
func (h *ReceivableHandler) List(w http.ResponseWriter, r *http.Request) {
	store := chi.URLParam(r, "store")
	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	receivables, err := h.receivableUC.ListReceivables(r.Context(), usecase.ListReceivablesInput{
		Store:  store,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to list receivables", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ReceivablesFromDomain(receivables))
}

// GetInterest evaluates accrued interest for a receivable as of a date
// (today when omitted).
func (h *ReceivableHandler) GetInterest(w http.ResponseWriter, r *http.Request) {
	store := chi.URLParam(r, "store")
	id := chi.URLParam(r, "id")

	asOf, err := parseDateQueryDefault(r, "as_of", time.Now().UTC())
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid as_of date", err.Error())
		return
	}

	interest, err := h.receivableUC.ComputeInterest(r.Context(), store, id, asOf)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to compute interest", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.InterestResponse{
		ReceivableID: id,
		AsOf:         asOf,
		Interest:     interest.Round(2),
	})
}
