package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/footprints-app/footprints-backend/internal/domain"
	"github.com/footprints-app/footprints-backend/internal/service/journal"
)

// journalService defines the minimal interface needed by JournalHandler.
type journalService interface {
	List(ctx context.Context) ([]*domain.Journal, error)
	Create(ctx context.Context, input journal.CreateInput) (*domain.Journal, error)
	Delete(ctx context.Context, ids []uuid.UUID) (int, error)
}

// JournalHandler serves the shelf REST endpoints.
type JournalHandler struct {
	svc journalService
	log *slog.Logger
}

// NewJournalHandler creates a JournalHandler.
func NewJournalHandler(svc journalService, logger *slog.Logger) *JournalHandler {
	return &JournalHandler{svc: svc, log: logger.With("handler", "journal")}
}

type createJournalRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Color       string  `json:"color,omitempty"`
}

type batchDeleteRequest struct {
	IDs []string `json:"ids"`
}

type journalResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	Color       string     `json:"color"`
	IsPublic    bool       `json:"isPublic"`
	SharedAt    *time.Time `json:"sharedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// List handles GET /journals.
func (h *JournalHandler) List(w http.ResponseWriter, r *http.Request) {
	journals, err := h.svc.List(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	out := make([]journalResponse, len(journals))
	for i, j := range journals {
		out[i] = toJournalResponse(j)
	}
	writeJSON(w, http.StatusOK, out)
}

// Create handles POST /journals.
func (h *JournalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createJournalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.svc.Create(r.Context(), journal.CreateInput{
		Title:       req.Title,
		Description: req.Description,
		Color:       req.Color,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toJournalResponse(created))
}

// BatchDelete handles POST /journals/batch-delete.
func (h *JournalHandler) BatchDelete(w http.ResponseWriter, r *http.Request) {
	var req batchDeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ids := make([]uuid.UUID, 0, len(req.IDs))
	for _, raw := range req.IDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid journal id: "+raw)
			return
		}
		ids = append(ids, id)
	}

	deleted, err := h.svc.Delete(r.Context(), ids)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"deleted": deleted})
}

func toJournalResponse(j *domain.Journal) journalResponse {
	return journalResponse{
		ID:          j.ID.String(),
		Title:       j.Title,
		Description: j.Description,
		Color:       j.Color,
		IsPublic:    j.IsPublic,
		SharedAt:    j.SharedAt,
		CreatedAt:   j.CreatedAt,
	}
}
