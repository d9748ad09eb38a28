// Package rest contains the HTTP/JSON handlers and the router. Handlers
// stay thin: decode, call the service, map domain errors to status codes.
package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/footprints-app/footprints-backend/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// handleError maps domain errors onto HTTP status codes. Anything
// unrecognized is a 500 and gets logged; domain errors are the client's
// problem and are not.
func handleError(log *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	var vErr *domain.ValidationError

	switch {
	case errors.As(err, &vErr):
		writeJSON(w, http.StatusBadRequest, validationResponse(vErr))
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, domain.ErrNotPublic):
		// Distinct from not-found on purpose: the journal exists but its
		// owner has not shared it.
		writeError(w, http.StatusForbidden, "journal is not shared")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrAlreadyExists):
		writeError(w, http.StatusConflict, "already exists")
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, "conflict")
	default:
		log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

type fieldErrorResponse struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func validationResponse(vErr *domain.ValidationError) map[string]any {
	fields := make([]fieldErrorResponse, len(vErr.Errors))
	for i, fe := range vErr.Errors {
		fields[i] = fieldErrorResponse{Field: fe.Field, Message: fe.Message}
	}
	return map[string]any{"error": "validation failed", "fields": fields}
}

// pathUUID parses a uuid path variable. A malformed id answers 400 and
// reports false.
func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

// pathSlot parses the page slot path variable. Non-numeric slots answer 400;
// range checking belongs to the services.
func pathSlot(w http.ResponseWriter, r *http.Request) (int, bool) {
	slot, err := strconv.Atoi(mux.Vars(r)["slot"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid slot")
		return 0, false
	}
	return slot, true
}
