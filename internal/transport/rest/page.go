package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/footprints-app/footprints-backend/internal/domain"
	"github.com/footprints-app/footprints-backend/internal/service/page"
)

// pageService defines the minimal interface needed by PageHandler.
type pageService interface {
	Index(ctx context.Context, journalID uuid.UUID) ([]page.SlotInfo, error)
	Get(ctx context.Context, journalID uuid.UUID, slot int) (*domain.Page, error)
	Purge(ctx context.Context, journalID uuid.UUID, slot int) error
}

// PageHandler serves the page index and per-slot endpoints.
type PageHandler struct {
	svc pageService
	log *slog.Logger
}

// NewPageHandler creates a PageHandler.
func NewPageHandler(svc pageService, logger *slog.Logger) *PageHandler {
	return &PageHandler{svc: svc, log: logger.With("handler", "page")}
}

type slotInfoResponse struct {
	Slot         int        `json:"slot"`
	Filled       bool       `json:"filled"`
	PlaceName    string     `json:"placeName,omitempty"`
	Thumbnail    *string    `json:"thumbnail,omitempty"`
	LastModified *time.Time `json:"lastModified,omitempty"`
}

type pageResponse struct {
	JournalID       uuid.UUID               `json:"journalId"`
	Slot            int                     `json:"slot"`
	Items           []domain.Item           `json:"items"`
	Place           *domain.Place           `json:"place,omitempty"`
	Vibes           *string                 `json:"vibes,omitempty"`
	DetailedInfo    *string                 `json:"detailedInfo,omitempty"`
	CanvasImage     *string                 `json:"canvasImage,omitempty"`
	GeneratedImages []domain.GeneratedImage `json:"generatedImages,omitempty"`
	LastModified    time.Time               `json:"lastModified"`
}

func toPageResponse(p *domain.Page) pageResponse {
	items := p.Items
	if items == nil {
		items = []domain.Item{}
	}
	return pageResponse{
		JournalID:       p.JournalID,
		Slot:            p.Slot,
		Items:           items,
		Place:           p.Place,
		Vibes:           p.Vibes,
		DetailedInfo:    p.DetailedInfo,
		CanvasImage:     p.CanvasImage,
		GeneratedImages: p.GeneratedImages,
		LastModified:    p.LastModified,
	}
}

// Index handles GET /journals/{journalID}/pages.
func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	journalID, ok := pathUUID(w, r, "journalID")
	if !ok {
		return
	}

	index, err := h.svc.Index(r.Context(), journalID)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	out := make([]slotInfoResponse, len(index))
	for i, info := range index {
		out[i] = slotInfoResponse{
			Slot:         info.Slot,
			Filled:       info.Filled,
			PlaceName:    info.PlaceName,
			Thumbnail:    info.Thumbnail,
			LastModified: info.LastModified,
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// Get handles GET /journals/{journalID}/pages/{slot}.
func (h *PageHandler) Get(w http.ResponseWriter, r *http.Request) {
	journalID, ok := pathUUID(w, r, "journalID")
	if !ok {
		return
	}
	slot, ok := pathSlot(w, r)
	if !ok {
		return
	}

	p, err := h.svc.Get(r.Context(), journalID, slot)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toPageResponse(p))
}

// Delete handles DELETE /journals/{journalID}/pages/{slot}.
func (h *PageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	journalID, ok := pathUUID(w, r, "journalID")
	if !ok {
		return
	}
	slot, ok := pathSlot(w, r)
	if !ok {
		return
	}

	if err := h.svc.Purge(r.Context(), journalID, slot); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
