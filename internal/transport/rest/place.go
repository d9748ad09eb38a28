package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/footprints-app/footprints-backend/internal/adapter/provider/places"
	"github.com/footprints-app/footprints-backend/internal/domain"
	"github.com/footprints-app/footprints-backend/internal/service/place"
)

// placeService defines the minimal interface needed by PlaceHandler.
type placeService interface {
	Autocomplete(ctx context.Context, text, location string) ([]places.Suggestion, error)
	Search(ctx context.Context, term, location string) ([]domain.Place, error)
	Confirm(ctx context.Context, journalID uuid.UUID, slot int, input place.ConfirmInput) (*domain.Page, error)
}

// PlaceHandler serves place search and the place confirmation endpoint
// that seeds a page.
type PlaceHandler struct {
	svc placeService
	log *slog.Logger
}

// NewPlaceHandler creates a PlaceHandler.
func NewPlaceHandler(svc placeService, logger *slog.Logger) *PlaceHandler {
	return &PlaceHandler{svc: svc, log: logger.With("handler", "place")}
}

// Autocomplete handles GET /places/autocomplete?text=&location=.
func (h *PlaceHandler) Autocomplete(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	suggestions, err := h.svc.Autocomplete(r.Context(), q.Get("text"), q.Get("location"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	if suggestions == nil {
		suggestions = []places.Suggestion{}
	}
	writeJSON(w, http.StatusOK, suggestions)
}

// Search handles GET /places/search?term=&location=.
func (h *PlaceHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	results, err := h.svc.Search(r.Context(), q.Get("term"), q.Get("location"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	if results == nil {
		results = []domain.Place{}
	}
	writeJSON(w, http.StatusOK, results)
}

// Confirm handles POST /journals/{journalID}/pages/{slot}/place. The request
// body is the selected place as returned by Search.
func (h *PlaceHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	journalID, ok := pathUUID(w, r, "journalID")
	if !ok {
		return
	}
	slot, ok := pathSlot(w, r)
	if !ok {
		return
	}

	var selected domain.Place
	if err := json.NewDecoder(r.Body).Decode(&selected); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.svc.Confirm(r.Context(), journalID, slot, place.ConfirmInput{Place: selected})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toPageResponse(p))
}
