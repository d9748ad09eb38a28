// Package page implements the page index and page retrieval operations.
// A journal always exposes a fixed number of slots; the index reports every
// slot, filled or not, so the client can render the whole spread at once.
package page

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/footprints-app/footprints-backend/internal/config"
	"github.com/footprints-app/footprints-backend/internal/domain"
	"github.com/footprints-app/footprints-backend/pkg/ctxutil"
)

// journalRepo defines the journal repository interface needed by this service.
type journalRepo interface {
	GetByID(ctx context.Context, journalID uuid.UUID) (*domain.Journal, error)
}

// pageRepo defines the page repository interface needed by this service.
type pageRepo interface {
	Get(ctx context.Context, journalID uuid.UUID, slot int) (*domain.Page, error)
	ListByJournal(ctx context.Context, journalID uuid.UUID) ([]*domain.Page, error)
	Purge(ctx context.Context, journalID uuid.UUID, slot int) error
}

// Service implements page index and retrieval.
type Service struct {
	log      *slog.Logger
	journals journalRepo
	pages    pageRepo
	cfg      config.CanvasConfig
}

// NewService creates a new page service instance.
func NewService(logger *slog.Logger, journals journalRepo, pages pageRepo, cfg config.CanvasConfig) *Service {
	return &Service{
		log:      logger.With("service", "page"),
		journals: journals,
		pages:    pages,
		cfg:      cfg,
	}
}

// SlotInfo is one entry of the page index.
type SlotInfo struct {
	Slot         int
	Filled       bool
	PlaceName    string
	Thumbnail    *string
	LastModified *time.Time
}

// Index returns one SlotInfo per configured slot, in slot order. Slots with
// no saved page, or a saved page with no items, report Filled == false.
func (s *Service) Index(ctx context.Context, journalID uuid.UUID) ([]SlotInfo, error) {
	if _, err := s.ownedJournal(ctx, journalID); err != nil {
		return nil, err
	}

	saved, err := s.pages.ListByJournal(ctx, journalID)
	if err != nil {
		return nil, fmt.Errorf("page.Index: %w", err)
	}

	bySlot := make(map[int]*domain.Page, len(saved))
	for _, p := range saved {
		bySlot[p.Slot] = p
	}

	index := make([]SlotInfo, s.cfg.PageSlots)
	for i := range index {
		slot := i + 1
		info := SlotInfo{Slot: slot}

		if p, ok := bySlot[slot]; ok {
			info.Filled = p.HasContent()
			info.Thumbnail = p.CanvasImage
			if p.Place != nil {
				info.PlaceName = p.Place.Name
			}
			lm := p.LastModified
			info.LastModified = &lm
		}

		index[i] = info
	}

	return index, nil
}

// Get returns the page at (journalID, slot). A slot that was never saved
// yields an empty page rather than an error; every valid slot is editable.
func (s *Service) Get(ctx context.Context, journalID uuid.UUID, slot int) (*domain.Page, error) {
	if !domain.SlotIsValid(slot, s.cfg.PageSlots) {
		return nil, domain.NewValidationError("slot", fmt.Sprintf("must be between 1 and %d", s.cfg.PageSlots))
	}

	if _, err := s.ownedJournal(ctx, journalID); err != nil {
		return nil, err
	}

	p, err := s.pages.Get(ctx, journalID, slot)
	if err == nil {
		return p, nil
	}
	if errors.Is(err, domain.ErrNotFound) {
		return &domain.Page{JournalID: journalID, Slot: slot, Items: []domain.Item{}}, nil
	}
	return nil, fmt.Errorf("page.Get: %w", err)
}

// Purge deletes the saved page at (journalID, slot), returning the slot to
// its empty state. Purging an empty slot is a no-op.
func (s *Service) Purge(ctx context.Context, journalID uuid.UUID, slot int) error {
	if !domain.SlotIsValid(slot, s.cfg.PageSlots) {
		return domain.NewValidationError("slot", fmt.Sprintf("must be between 1 and %d", s.cfg.PageSlots))
	}

	if _, err := s.ownedJournal(ctx, journalID); err != nil {
		return err
	}

	if err := s.pages.Purge(ctx, journalID, slot); err != nil {
		return fmt.Errorf("page.Purge: %w", err)
	}

	s.log.InfoContext(ctx, "page purged",
		slog.String("journal_id", journalID.String()), slog.Int("slot", slot))
	return nil
}

// ownedJournal loads the journal and enforces ownership.
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
