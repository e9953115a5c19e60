package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/oticapro/caixa/internal/adapter/http/dto"
	"github.com/oticapro/caixa/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrEntryNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrReceivableNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrMissingStore):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidKind):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNegativeAmount):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrAmountTooLarge):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrStoreTooLong):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrMissingDueDate):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidPaymentMethod):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrMissingOccurredAt):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidGranularity):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnknownMutationOp):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return i
}

// parseDateQuery parses a required calendar-date query parameter.
func parseDateQuery(r *http.Request, key string) (time.Time, error) {
	val := r.URL.Query().Get(key)
	if val == "" {
		return time.Time{}, errMissingParam(key)
	}
	t, err := time.Parse("2006-01-02", val)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// parseDateQueryDefault parses an optional calendar-date query parameter.
func parseDateQueryDefault(r *http.Request, key string, defaultValue time.Time) (time.Time, error) {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue, nil
	}
	t, err := time.Parse("2006-01-02", val)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// parseMonthQuery parses a required year-month query parameter.
func parseMonthQuery(r *http.Request, key string) (time.Time, error) {
	val := r.URL.Query().Get(key)
	if val == "" {
		return time.Time{}, errMissingParam(key)
	}
	t, err := time.Parse("2006-01", val)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

type missingParamError string

func errMissingParam(key string) error { return missingParamError(key) }

func (e missingParamError) Error() string { return "missing query parameter: " + string(e) }
