package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/examforge/examforge/internal/apperr"
)

// writeError maps the apperr taxonomy onto HTTP statuses. Unmapped
// errors are treated as internal and their details are not leaked.
func writeError(w http.ResponseWriter, err error) {
	var status int
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperr.ErrForbidden), errors.Is(err, apperr.ErrNotEligible):
		status = http.StatusForbidden
	case errors.Is(err, apperr.ErrAlreadyFinalized), errors.Is(err, apperr.ErrValidation):
		status = http.StatusBadRequest
	default:
		status = http.StatusInternalServerError
	}
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal error"
	}
	writeJSON(w, status, map[string]string{"detail": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
