// Package place implements the place flow: type-ahead suggestions, search,
// and confirming a search result onto a page slot. Confirmation seeds the
// page with generated content, illustrations, and the starter decorations.
package place

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/footprints-app/footprints-backend/internal/adapter/provider/contentgen"
	"github.com/footprints-app/footprints-backend/internal/adapter/provider/imagegen"
	"github.com/footprints-app/footprints-backend/internal/adapter/provider/places"
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
	Upsert(ctx context.Context, page *domain.Page) (*domain.Page, error)
	Purge(ctx context.Context, journalID uuid.UUID, slot int) error
}

// searchProvider defines the place search interface needed by this service.
type searchProvider interface {
	Autocomplete(ctx context.Context, text, location string) ([]places.Suggestion, error)
	Search(ctx context.Context, term, location string) ([]domain.Place, error)
}

// contentProvider defines the content generation interface.
type contentProvider interface {
	Generate(ctx context.Context, place *domain.Place) (*contentgen.Result, error)
}

// imageProvider defines the illustration generation interface.
type imageProvider interface {
	Generate(ctx context.Context, prompts []string) []domain.GeneratedImage
}

// renderer produces the page's snapshot image.
type renderer interface {
	Snapshot(items []domain.Item) (string, error)
}

// Service implements the place flow.
type Service struct {
	log      *slog.Logger
	journals journalRepo
	pages    pageRepo
	search   searchProvider
	content  contentProvider
	images   imageProvider
	raster   renderer
	cfg      config.CanvasConfig
}

// NewService creates a new place service instance.
func NewService(
	logger *slog.Logger,
	journals journalRepo,
	pages pageRepo,
	search searchProvider,
	content contentProvider,
	images imageProvider,
	raster renderer,
	cfg config.CanvasConfig,
) *Service {
	return &Service{
		log:      logger.With("service", "place"),
		journals: journals,
		pages:    pages,
		search:   search,
		content:  content,
		images:   images,
		raster:   raster,
		cfg:      cfg,
	}
}

// Autocomplete returns type-ahead suggestions for a partial query, biased
// toward location when one is given.
func (s *Service) Autocomplete(ctx context.Context, text, location string) ([]places.Suggestion, error) {
	suggestions, err := s.search.Autocomplete(ctx, text, location)
	if err != nil {
		return nil, fmt.Errorf("place.Autocomplete: %w", err)
	}
	return suggestions, nil
}

// Search returns businesses matching term near location. An empty location
// falls back to the provider's configured default.
func (s *Service) Search(ctx context.Context, term, location string) ([]domain.Place, error) {
	if term == "" {
		return nil, domain.NewValidationError("term", "required")
	}

	results, err := s.search.Search(ctx, term, location)
	if err != nil {
		return nil, fmt.Errorf("place.Search: %w", err)
	}
	return results, nil
}

// ConfirmInput holds parameters for attaching a place to a page slot.
type ConfirmInput struct {
	Place domain.Place
}

// Validate validates the confirm input.
func (i ConfirmInput) Validate() error {
	var errs []domain.FieldError

	if i.Place.ID == "" {
		errs = append(errs, domain.FieldError{Field: "place.id", Message: "required"})
	}
	if i.Place.Name == "" {
		errs = append(errs, domain.FieldError{Field: "place.name", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// Confirm attaches a place to the slot and seeds the page. Confirming over
// an already filled slot purges it first: changing the place restarts the
// page from scratch. Content and illustrations are generated best-effort;
// their providers guarantee fallbacks, so Confirm fails only on access or
// persistence errors.
func (s *Service) Confirm(ctx context.Context, journalID uuid.UUID, slot int, input ConfirmInput) (*domain.Page, error) {
	if !domain.SlotIsValid(slot, s.cfg.PageSlots) {
		return nil, domain.NewValidationError("slot", fmt.Sprintf("must be between 1 and %d", s.cfg.PageSlots))
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkOwnership(ctx, journalID); err != nil {
		return nil, err
	}

	// A filled slot is reset by re-selection.
	existing, err := s.pages.Get(ctx, journalID, slot)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("place.Confirm: load page: %w", err)
	}
	if existing != nil && existing.HasContent() {
		if err := s.pages.Purge(ctx, journalID, slot); err != nil {
			return nil, fmt.Errorf("place.Confirm: purge page: %w", err)
		}
		s.log.InfoContext(ctx, "page purged for new place",
			slog.String("journal_id", journalID.String()), slog.Int("slot", slot))
	}

	place := input.Place

	generated, err := s.content.Generate(ctx, &place)
	if err != nil {
		// The provider degrades internally; an error here is unexpected but
		// must not block the confirm. Fall back to the fixed defaults.
		s.log.WarnContext(ctx, "content generation failed",
			slog.String("place", place.Name), slog.String("error", err.Error()))
		generated = &contentgen.Result{
			MenuItems:      contentgen.ParseMenuItems(""),
			LocationDetail: contentgen.ParseLocationDetail(""),
		}
	}

	// Illustrations are gated on the generated menu, which always has at
	// least the fallback entries.
	prompts := imagegen.BuildPrompts(generated.MenuItems)
	illustrations := s.images.Generate(ctx, prompts)

	// The canvas starts empty. The generated vibe line, rating badge, and
	// illustrations become sidebar sources the editor offers for placement.
	page := &domain.Page{
		JournalID:       journalID,
		Slot:            slot,
		Place:           &place,
		Items:           []domain.Item{},
		GeneratedImages: illustrations,
	}
	if generated.Vibes != "" {
		page.Vibes = &generated.Vibes
	}
	if generated.DetailedInfo != "" {
		page.DetailedInfo = &generated.DetailedInfo
	}

	snapshot, err := s.raster.Snapshot(page.Items)
	if err != nil {
		s.log.WarnContext(ctx, "snapshot render failed",
			slog.String("journal_id", journalID.String()),
			slog.Int("slot", slot),
			slog.String("error", err.Error()))
	} else {
		page.CanvasImage = &snapshot
	}

	saved, err := s.pages.Upsert(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("place.Confirm: persist page: %w", err)
	}

	s.log.InfoContext(ctx, "place confirmed",
		slog.String("journal_id", journalID.String()),
		slog.Int("slot", slot),
		slog.String("place", place.Name))

	return saved, nil
}

func (s *Service) checkOwnership(ctx context.Context, journalID uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	journal, err := s.journals.GetByID(ctx, journalID)
	if err != nil {
		return fmt.Errorf("get journal: %w", err)
	}
	if !journal.IsOwnedBy(userID) {
		return domain.ErrForbidden
	}
	return nil
}
