package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	domerrors "github.com/jiggy-ai/jiggy-user-api/internal/domain/errors"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			log.Error().Err(err).Msg("failed to encode response")
		}
	}
}

func writeErr(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: message, Code: code})
}

// writeDomainErr maps domain sentinel errors to HTTP statuses. Anything
// unrecognized is logged and reported as a 500.
func writeDomainErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domerrors.ErrInvalidCredential):
		writeErr(w, http.StatusUnauthorized, ErrCodeInvalidCredential, "invalid credential")
	case errors.Is(err, domerrors.ErrUserNotFound):
		writeErr(w, http.StatusBadRequest, ErrCodeUserNotFound, "no user found for the authenticated subject; create a user first")
	case errors.Is(err, domerrors.ErrLastAdmin):
		writeErr(w, http.StatusForbidden, ErrCodeLastAdmin, "cannot remove the last accepted admin of a team")
	case errors.Is(err, domerrors.ErrForbidden):
		writeErr(w, http.StatusForbidden, ErrCodeForbidden, "operation not permitted")
	case errors.Is(err, domerrors.ErrConflict):
		writeErr(w, http.StatusConflict, ErrCodeConflict, "resource already exists")
	case errors.Is(err, domerrors.ErrNotFound):
		writeErr(w, http.StatusNotFound, ErrCodeNotFound, "resource not found")
	default:
		log.Error().Err(err).Msg("unhandled error")
		writeErr(w, http.StatusInternalServerError, ErrCodeInternal, "internal server error")
	}
}
