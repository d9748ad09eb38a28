// Package share implements public sharing: marking a journal public, the
// anonymous page viewer behind the stable share URL, and the community
// gallery.
package share

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/footprints-app/footprints-backend/internal/config"
	"github.com/footprints-app/footprints-backend/internal/domain"
	"github.com/footprints-app/footprints-backend/pkg/ctxutil"
)

// journalRepo defines the journal repository interface needed by this service.
type journalRepo interface {
	GetByID(ctx context.Context, journalID uuid.UUID) (*domain.Journal, error)
	MarkPublic(ctx context.Context, journalID uuid.UUID) (*domain.Journal, error)
}

// pageRepo defines the page repository interface needed by this service.
type pageRepo interface {
	Get(ctx context.Context, journalID uuid.UUID, slot int) (*domain.Page, error)
	ListByJournal(ctx context.Context, journalID uuid.UUID) ([]*domain.Page, error)
}

// galleryRepo defines the gallery repository interface needed by this service.
type galleryRepo interface {
	Insert(ctx context.Context, entry *domain.GalleryEntry) (*domain.GalleryEntry, error)
	List(ctx context.Context, filter domain.GalleryFilter) ([]*domain.GalleryEntry, error)
}

// Service implements sharing and the gallery.
type Service struct {
	log      *slog.Logger
	journals journalRepo
	pages    pageRepo
	gallery  galleryRepo
	cfg      config.CanvasConfig
}

// NewService creates a new share service instance.
func NewService(logger *slog.Logger, journals journalRepo, pages pageRepo, gallery galleryRepo, cfg config.CanvasConfig) *Service {
	return &Service{
		log:      logger.With("service", "share"),
		journals: journals,
		pages:    pages,
		gallery:  gallery,
		cfg:      cfg,
	}
}

// ShareResult is the outcome of sharing a page.
type ShareResult struct {
	Journal *domain.Journal
	// URL is the stable public path of the shared page.
	URL string
}

// PublicURL returns the anonymous viewer path for a page.
func PublicURL(journalID uuid.UUID, slot int) string {
	return fmt.Sprintf("/shared/journal/%s/page/%d", journalID, slot)
}

// SharePage makes the owning journal public and returns the page's stable
// public URL. Sharing is idempotent: the first call stamps shared_at, later
// calls write nothing and return the same URL.
func (s *Service) SharePage(ctx context.Context, journalID uuid.UUID, slot int) (*ShareResult, error) {
	if !domain.SlotIsValid(slot, s.cfg.PageSlots) {
		return nil, domain.NewValidationError("slot", fmt.Sprintf("must be between 1 and %d", s.cfg.PageSlots))
	}

	journal, err := s.ownedJournal(ctx, journalID)
	if err != nil {
		return nil, err
	}

	if !journal.IsPublic {
		journal, err = s.journals.MarkPublic(ctx, journalID)
		if err != nil {
			return nil, fmt.Errorf("share.SharePage: mark public: %w", err)
		}
		s.log.InfoContext(ctx, "journal made public",
			slog.String("journal_id", journalID.String()))
	}

	return &ShareResult{Journal: journal, URL: PublicURL(journalID, slot)}, nil
}

// PublicPage serves the anonymous viewer. A journal that exists but was
// never shared yields ErrNotPublic, distinct from ErrNotFound, so the
// transport can answer 403 instead of 404.
func (s *Service) PublicPage(ctx context.Context, journalID uuid.UUID, slot int) (*domain.Page, error) {
	if !domain.SlotIsValid(slot, s.cfg.PageSlots) {
		return nil, domain.NewValidationError("slot", fmt.Sprintf("must be between 1 and %d", s.cfg.PageSlots))
	}

	journal, err := s.journals.GetByID(ctx, journalID)
	if err != nil {
		return nil, fmt.Errorf("share.PublicPage: %w", err)
	}
	if !journal.IsPublic {
		return nil, domain.ErrNotPublic
	}

	page, err := s.pages.Get(ctx, journalID, slot)
	if err != nil {
		return nil, fmt.Errorf("share.PublicPage: %w", err)
	}
	return page, nil
}

// PublicJournal is the anonymous view of a whole shared journal: the cover
// plus one entry per slot, in slot order.
type PublicJournal struct {
	Journal *domain.Journal
	Slots   []PublicSlot
}

// PublicSlot is one slot of the anonymous journal view.
type PublicSlot struct {
	Slot      int
	Filled    bool
	PlaceName string
	Vibes     *string
	Thumbnail *string
}

// PublicJournalView serves the anonymous journal index. Like PublicPage, a
// journal that was never shared yields ErrNotPublic, and every configured
// slot is reported so the viewer can render the whole spread.
func (s *Service) PublicJournalView(ctx context.Context, journalID uuid.UUID) (*PublicJournal, error) {
	journal, err := s.journals.GetByID(ctx, journalID)
	if err != nil {
		return nil, fmt.Errorf("share.PublicJournalView: %w", err)
	}
	if !journal.IsPublic {
		return nil, domain.ErrNotPublic
	}

	saved, err := s.pages.ListByJournal(ctx, journalID)
	if err != nil {
		return nil, fmt.Errorf("share.PublicJournalView: %w", err)
	}

	bySlot := make(map[int]*domain.Page, len(saved))
	for _, p := range saved {
		bySlot[p.Slot] = p
	}

	slots := make([]PublicSlot, s.cfg.PageSlots)
	for i := range slots {
		slot := i + 1
		info := PublicSlot{Slot: slot}

		if p, ok := bySlot[slot]; ok {
			info.Filled = p.HasContent()
			info.Vibes = p.Vibes
			info.Thumbnail = p.CanvasImage
			if p.Place != nil {
				info.PlaceName = p.Place.Name
			}
		}

		slots[i] = info
	}

	return &PublicJournal{Journal: journal, Slots: slots}, nil
}

// ShareToGallery copies the page into the community gallery. The entry is an
// independent snapshot; it does not require or change the journal's public
// flag, and later edits to the page leave it untouched.
func (s *Service) ShareToGallery(ctx context.Context, journalID uuid.UUID, slot int) (*domain.GalleryEntry, error) {
	if !domain.SlotIsValid(slot, s.cfg.PageSlots) {
		return nil, domain.NewValidationError("slot", fmt.Sprintf("must be between 1 and %d", s.cfg.PageSlots))
	}

	if _, err := s.ownedJournal(ctx, journalID); err != nil {
		return nil, err
	}

	page, err := s.pages.Get(ctx, journalID, slot)
	if err != nil {
		return nil, fmt.Errorf("share.ShareToGallery: %w", err)
	}
	if !page.HasContent() {
		return nil, domain.NewValidationError("slot", "page has no content to share")
	}
	if page.CanvasImage == nil {
		return nil, domain.NewValidationError("slot", "page has no snapshot to share")
	}

	items := make([]domain.Item, len(page.Items))
	copy(items, page.Items)

	entry, err := s.gallery.Insert(ctx, &domain.GalleryEntry{
		ImageURL:  *page.CanvasImage,
		JournalID: journalID,
		PageSlot:  slot,
		Place:     page.Place,
		PageItems: items,
	})
	if err != nil {
		return nil, fmt.Errorf("share.ShareToGallery: %w", err)
	}

	s.log.InfoContext(ctx, "page shared to gallery",
		slog.String("journal_id", journalID.String()),
		slog.Int("slot", slot),
		slog.String("entry_id", entry.ID.String()))

	return entry, nil
}

// Gallery lists community gallery entries newest first.
func (s *Service) Gallery(ctx context.Context, filter domain.GalleryFilter) ([]*domain.GalleryEntry, error) {
	entries, err := s.gallery.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("share.Gallery: %w", err)
	}
	return entries, nil
}

func (s *Service) ownedJournal(ctx context.Context, journalID uuid.UUID) (*domain.Journal, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	journal, err := s.journals.GetByID(ctx, journalID)
	if err != nil {
		return nil, fmt.Errorf("get journal: %w", err)
	}
	if !journal.IsOwnedBy(userID) {
		return nil, domain.ErrForbidden
	}
	return journal, nil
}
