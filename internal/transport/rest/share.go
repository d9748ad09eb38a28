package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/footprints-app/footprints-backend/internal/domain"
	"github.com/footprints-app/footprints-backend/internal/service/share"
)

// shareService defines the minimal interface needed by ShareHandler.
type shareService interface {
	SharePage(ctx context.Context, journalID uuid.UUID, slot int) (*share.ShareResult, error)
	PublicPage(ctx context.Context, journalID uuid.UUID, slot int) (*domain.Page, error)
	PublicJournalView(ctx context.Context, journalID uuid.UUID) (*share.PublicJournal, error)
	ShareToGallery(ctx context.Context, journalID uuid.UUID, slot int) (*domain.GalleryEntry, error)
	Gallery(ctx context.Context, filter domain.GalleryFilter) ([]*domain.GalleryEntry, error)
}

// ShareHandler serves sharing, the anonymous page viewer, and the gallery.
type ShareHandler struct {
	svc shareService
	log *slog.Logger
}

// NewShareHandler creates a ShareHandler.
func NewShareHandler(svc shareService, logger *slog.Logger) *ShareHandler {
	return &ShareHandler{svc: svc, log: logger.With("handler", "share")}
}

type shareResponse struct {
	URL      string     `json:"url"`
	IsPublic bool       `json:"isPublic"`
	SharedAt *time.Time `json:"sharedAt,omitempty"`
}

type galleryEntryResponse struct {
	ID        string        `json:"id"`
	ImageURL  string        `json:"imageUrl"`
	JournalID string        `json:"journalId"`
	PageSlot  int           `json:"pageSlot"`
	Place     *domain.Place `json:"place,omitempty"`
	PageItems []domain.Item `json:"pageItems"`
	CreatedAt time.Time     `json:"createdAt"`
}

func toGalleryEntryResponse(e *domain.GalleryEntry) galleryEntryResponse {
	items := e.PageItems
	if items == nil {
		items = []domain.Item{}
	}
	return galleryEntryResponse{
		ID:        e.ID.String(),
		ImageURL:  e.ImageURL,
		JournalID: e.JournalID.String(),
		PageSlot:  e.PageSlot,
		Place:     e.Place,
		PageItems: items,
		CreatedAt: e.CreatedAt,
	}
}

// SharePage handles POST /journals/{journalID}/pages/{slot}/share.
func (h *ShareHandler) SharePage(w http.ResponseWriter, r *http.Request) {
	journalID, ok := pathUUID(w, r, "journalID")
	if !ok {
		return
	}
	slot, ok := pathSlot(w, r)
	if !ok {
		return
	}

	result, err := h.svc.SharePage(r.Context(), journalID, slot)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, shareResponse{
		URL:      result.URL,
		IsPublic: result.Journal.IsPublic,
		SharedAt: result.Journal.SharedAt,
	})
}

// PublicPage handles GET /shared/journal/{journalID}/page/{slot}. No auth.
func (h *ShareHandler) PublicPage(w http.ResponseWriter, r *http.Request) {
	journalID, ok := pathUUID(w, r, "journalID")
	if !ok {
		return
	}
	slot, ok := pathSlot(w, r)
	if !ok {
		return
	}

	p, err := h.svc.PublicPage(r.Context(), journalID, slot)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toPageResponse(p))
}

type publicJournalResponse struct {
	JournalID   string               `json:"journalId"`
	Title       string               `json:"title"`
	Description *string              `json:"description,omitempty"`
	Color       string               `json:"color"`
	SharedAt    *time.Time           `json:"sharedAt,omitempty"`
	Slots       []publicSlotResponse `json:"slots"`
}

type publicSlotResponse struct {
	Slot      int     `json:"slot"`
	Filled    bool    `json:"filled"`
	PlaceName string  `json:"placeName,omitempty"`
	Vibes     *string `json:"vibes,omitempty"`
	Thumbnail *string `json:"thumbnail,omitempty"`
}

// PublicJournal handles GET /shared/journal/{journalID}. No auth.
func (h *ShareHandler) PublicJournal(w http.ResponseWriter, r *http.Request) {
	journalID, ok := pathUUID(w, r, "journalID")
	if !ok {
		return
	}

	view, err := h.svc.PublicJournalView(r.Context(), journalID)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	slots := make([]publicSlotResponse, len(view.Slots))
	for i, s := range view.Slots {
		slots[i] = publicSlotResponse{
			Slot:      s.Slot,
			Filled:    s.Filled,
			PlaceName: s.PlaceName,
			Vibes:     s.Vibes,
			Thumbnail: s.Thumbnail,
		}
	}
	writeJSON(w, http.StatusOK, publicJournalResponse{
		JournalID:   view.Journal.ID.String(),
		Title:       view.Journal.Title,
		Description: view.Journal.Description,
		Color:       view.Journal.Color,
		SharedAt:    view.Journal.SharedAt,
		Slots:       slots,
	})
}

// ShareToGallery handles POST /journals/{journalID}/pages/{slot}/gallery.
func (h *ShareHandler) ShareToGallery(w http.ResponseWriter, r *http.Request) {
	journalID, ok := pathUUID(w, r, "journalID")
	if !ok {
		return
	}
	slot, ok := pathSlot(w, r)
	if !ok {
		return
	}

	entry, err := h.svc.ShareToGallery(r.Context(), journalID, slot)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toGalleryEntryResponse(entry))
}

// Gallery handles GET /gallery?journal_id=&limit=&offset=. No auth.
func (h *ShareHandler) Gallery(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var filter domain.GalleryFilter
	if raw := q.Get("journal_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid journal_id")
			return
		}
		filter.JournalID = &id
	}
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		filter.Limit = n
	}
	if raw := q.Get("offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid offset")
			return
		}
		filter.Offset = n
	}

	entries, err := h.svc.Gallery(r.Context(), filter)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	out := make([]galleryEntryResponse, len(entries))
	for i, e := range entries {
		out[i] = toGalleryEntryResponse(e)
	}
	writeJSON(w, http.StatusOK, out)
}
