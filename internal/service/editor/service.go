// Package editor orchestrates canvas mutations for a page: placing sidebar
// assets, uploading photos, and the move/resize/rotate/edit/delete item
// operations. Every mutation runs through the canvas engine, is persisted
// wholesale, and refreshes the page's snapshot image.
package editor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/footprints-app/footprints-backend/internal/adapter/provider/contentgen"
	"github.com/footprints-app/footprints-backend/internal/config"
	"github.com/footprints-app/footprints-backend/internal/domain"
	"github.com/footprints-app/footprints-backend/internal/service/editor/assets"
	"github.com/footprints-app/footprints-backend/internal/service/editor/canvas"
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
}

// renderer produces the PNG snapshot cached on the page after each mutation.
type renderer interface {
	Snapshot(items []domain.Item) (string, error)
}

// imageFetcher converts a remote image URL into an inline data URI. Remote
// content is inlined at placement time so saved pages are self-contained.
type imageFetcher interface {
	FetchDataURI(ctx context.Context, url string) (string, error)
}

// Service implements canvas editing.
type Service struct {
	log      *slog.Logger
	journals journalRepo
	pages    pageRepo
	raster   renderer
	fetcher  imageFetcher
	cfg      config.CanvasConfig
}

// NewService creates a new editor service instance.
func NewService(logger *slog.Logger, journals journalRepo, pages pageRepo, raster renderer, fetcher imageFetcher, cfg config.CanvasConfig) *Service {
	return &Service{
		log:      logger.With("service", "editor"),
		journals: journals,
		pages:    pages,
		raster:   raster,
		fetcher:  fetcher,
		cfg:      cfg,
	}
}

// Assets returns the sidebar asset catalog.
func (s *Service) Assets() []assets.Asset {
	return assets.Catalog()
}

// PlaceAssetInput holds parameters for dropping a sidebar asset on a page.
type PlaceAssetInput struct {
	AssetID string
	X       float64
	Y       float64
}

// PlaceAsset drops a catalog asset onto the canvas at the given position.
// Ticket, receipt, and rating badge assets are re-rendered with the page's
// place details burned in; a page without a confirmed place gets the blank
// template. The vibe tag carries the page's generated vibe line and is
// placed locked, like the badge.
func (s *Service) PlaceAsset(ctx context.Context, journalID uuid.UUID, slot int, input PlaceAssetInput) (*domain.Page, domain.Item, error) {
	asset, ok := assets.Lookup(input.AssetID)
	if !ok {
		return nil, domain.Item{}, domain.NewValidationError("asset_id", "unknown asset")
	}

	return s.mutate(ctx, journalID, slot, func(page *domain.Page, eng *canvas.Engine) (domain.Item, error) {
		item := domain.Item{
			Kind:     asset.Kind,
			Content:  s.assetContent(asset, page),
			X:        input.X,
			Y:        input.Y,
			Width:    asset.Width,
			Height:   asset.Height,
			Editable: asset.Editable,
		}
		return eng.Place(item)
	})
}

// assetContent resolves the dropped asset's content, burning in place
// details where the asset calls for them.
func (s *Service) assetContent(asset assets.Asset, page *domain.Page) string {
	if asset.ID == assets.IDVibeTag {
		if page.Vibes != nil {
			return *page.Vibes
		}
		return ""
	}
	if asset.Kind == domain.ItemKindText {
		return "Write something..."
	}

	if page.Place != nil {
		menu := menuItemsFor(page)
		switch asset.ID {
		case assets.IDTicket:
			return assets.RenderTicket(page.Place, menu)
		case assets.IDReceipt:
			return assets.RenderReceipt(page.Place, menu)
		case assets.IDRatingBadge:
			return assets.RenderRatingBadge(page.Place.Rating, page.Place.ReviewCount)
		}
	}

	return asset.DataURI
}

// menuItemsFor re-derives the menu list from the page's stored detail text.
// The fallback menu applies when the text carries no menu marker.
func menuItemsFor(page *domain.Page) []string {
	if page.DetailedInfo == nil {
		return contentgen.ParseMenuItems("")
	}
	return contentgen.ParseMenuItems(*page.DetailedInfo)
}

// UploadImageInput holds parameters for placing a photo on a page.
type UploadImageInput struct {
	// Content is an inline data URI or a remote URL.
	Content string
	X       float64
	Y       float64
}

// UploadImage places a photo item. Remote URLs are fetched and inlined so
// the stored page never depends on a third-party host staying up.
func (s *Service) UploadImage(ctx context.Context, journalID uuid.UUID, slot int, input UploadImageInput) (*domain.Page, domain.Item, error) {
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, domain.Item{}, domain.NewValidationError("content", "required")
	}

	if !strings.HasPrefix(content, "data:") {
		inlined, err := s.fetcher.FetchDataURI(ctx, content)
		if err != nil {
			return nil, domain.Item{}, fmt.Errorf("editor.UploadImage inline remote: %w", err)
		}
		content = inlined
	}

	return s.mutate(ctx, journalID, slot, func(page *domain.Page, eng *canvas.Engine) (domain.Item, error) {
		return eng.Place(domain.Item{
			Kind:     domain.ItemKindImage,
			Content:  content,
			X:        input.X,
			Y:        input.Y,
			Width:    assets.ImageSize,
			Height:   assets.ImageSize,
			Editable: true,
		})
	})
}

// MoveInput is the drag gesture's final pointer state.
type MoveInput struct {
	X float64
	Y float64
}

// MoveItem moves an item to a new position. Positions are not clamped to the
// canvas; half-off-the-page is a legitimate scrapbook look.
func (s *Service) MoveItem(ctx context.Context, journalID uuid.UUID, slot int, itemID uuid.UUID, input MoveInput) (*domain.Page, domain.Item, error) {
	return s.mutate(ctx, journalID, slot, func(page *domain.Page, eng *canvas.Engine) (domain.Item, error) {
		it, err := eng.Item(itemID)
		if err != nil {
			return domain.Item{}, err
		}
		// Grab at the item origin so the pointer target is the new position.
		if err := eng.BeginDrag(itemID, it.X, it.Y); err != nil {
			return domain.Item{}, err
		}
		if err := eng.DragTo(input.X, input.Y); err != nil {
			return domain.Item{}, err
		}
		return eng.EndDrag()
	})
}

// ResizeInput is the resize gesture's target size.
type ResizeInput struct {
	Width  float64
	Height float64
}

// ResizeItem resizes an item. Each dimension is clamped to the configured
// [min, max] range; an out-of-range request succeeds at the bound.
func (s *Service) ResizeItem(ctx context.Context, journalID uuid.UUID, slot int, itemID uuid.UUID, input ResizeInput) (*domain.Page, domain.Item, error) {
	return s.mutate(ctx, journalID, slot, func(page *domain.Page, eng *canvas.Engine) (domain.Item, error) {
		it, err := eng.Item(itemID)
		if err != nil {
			return domain.Item{}, err
		}
		if err := eng.BeginResize(itemID, 0, 0); err != nil {
			return domain.Item{}, err
		}
		// Pointer delta from (0,0) equals the requested size change.
		if err := eng.ResizeTo(input.Width-it.Width, input.Height-it.Height); err != nil {
			return domain.Item{}, err
		}
		return eng.EndResize()
	})
}

// RotateInput is the rotate gesture's target angle in degrees.
type RotateInput struct {
	Rotation float64
}

// RotateItem rotates an item to the given absolute angle. The stored value
// is normalized to (-180, 180].
func (s *Service) RotateItem(ctx context.Context, journalID uuid.UUID, slot int, itemID uuid.UUID, input RotateInput) (*domain.Page, domain.Item, error) {
	return s.mutate(ctx, journalID, slot, func(page *domain.Page, eng *canvas.Engine) (domain.Item, error) {
		it, err := eng.Item(itemID)
		if err != nil {
			return domain.Item{}, err
		}
		cx, cy := canvas.Center(it.X, it.Y, it.Width, it.Height)
		if err := eng.BeginRotate(itemID, cx+100, cy); err != nil {
			return domain.Item{}, err
		}
		// The gesture starts at angle 0, so the pointer angle equals the
		// rotation delta from the item's current angle.
		px, py := canvas.PointAtAngle(cx, cy, 100, input.Rotation-it.Rotation)
		if err := eng.RotateTo(px, py); err != nil {
			return domain.Item{}, err
		}
		return eng.EndRotate()
	})
}

// EditInput is the committed text of an inline edit.
type EditInput struct {
	Content string
}

// EditItem replaces an editable text item's content. Items carrying
// system-provided content reject the edit.
func (s *Service) EditItem(ctx context.Context, journalID uuid.UUID, slot int, itemID uuid.UUID, input EditInput) (*domain.Page, domain.Item, error) {
	return s.mutate(ctx, journalID, slot, func(page *domain.Page, eng *canvas.Engine) (domain.Item, error) {
		if err := eng.BeginEdit(itemID); err != nil {
			return domain.Item{}, err
		}
		return eng.CommitEdit(input.Content)
	})
}

// DeleteItem removes an item from the canvas.
func (s *Service) DeleteItem(ctx context.Context, journalID uuid.UUID, slot int, itemID uuid.UUID) (*domain.Page, error) {
	page, _, err := s.mutate(ctx, journalID, slot, func(page *domain.Page, eng *canvas.Engine) (domain.Item, error) {
		return domain.Item{}, eng.Remove(itemID)
	})
	return page, err
}

// mutate loads the page, applies fn through a canvas engine, persists the
// resulting item collection, and refreshes the snapshot. A failed store is a
// failed operation; the client must know its mutation did not stick.
func (s *Service) mutate(ctx context.Context, journalID uuid.UUID, slot int, fn func(*domain.Page, *canvas.Engine) (domain.Item, error)) (*domain.Page, domain.Item, error) {
	if !domain.SlotIsValid(slot, s.cfg.PageSlots) {
		return nil, domain.Item{}, domain.NewValidationError("slot", fmt.Sprintf("must be between 1 and %d", s.cfg.PageSlots))
	}
	if err := s.checkOwnership(ctx, journalID); err != nil {
		return nil, domain.Item{}, err
	}

	page, err := s.loadPage(ctx, journalID, slot)
	if err != nil {
		return nil, domain.Item{}, err
	}

	eng := canvas.NewEngine(page.Items, canvas.Params{
		MinItemSize: s.cfg.MinItemSize,
		MaxItemSize: s.cfg.MaxItemSize,
	})

	item, err := fn(page, eng)
	if err != nil {
		return nil, domain.Item{}, mapCanvasError(err)
	}

	page.Items = eng.Items()

	snapshot, err := s.raster.Snapshot(page.Items)
	if err != nil {
		// The snapshot is a derived cache; losing one render must not lose
		// the mutation. Keep the previous image and log.
		s.log.WarnContext(ctx, "snapshot render failed",
			slog.String("journal_id", journalID.String()),
			slog.Int("slot", slot),
			slog.String("error", err.Error()))
	} else {
		page.CanvasImage = &snapshot
	}

	saved, err := s.pages.Upsert(ctx, page)
	if err != nil {
		return nil, domain.Item{}, fmt.Errorf("editor: persist page: %w", err)
	}

	return saved, item, nil
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

// loadPage returns the saved page or a fresh empty one for unsaved slots.
func (s *Service) loadPage(ctx context.Context, journalID uuid.UUID, slot int) (*domain.Page, error) {
	page, err := s.pages.Get(ctx, journalID, slot)
	if err == nil {
		return page, nil
	}
	if errors.Is(err, domain.ErrNotFound) {
		return &domain.Page{JournalID: journalID, Slot: slot, Items: []domain.Item{}}, nil
	}
	return nil, fmt.Errorf("editor: load page: %w", err)
}

// mapCanvasError translates engine sentinels into domain errors the
// transport layer knows how to express.
func mapCanvasError(err error) error {
	switch {
	case errors.Is(err, canvas.ErrItemNotFound):
		return fmt.Errorf("%s: %w", err, domain.ErrNotFound)
	case errors.Is(err, canvas.ErrNotEditable):
		return domain.NewValidationError("item", "content is not editable")
	case errors.Is(err, canvas.ErrInteractionActive), errors.Is(err, canvas.ErrNoInteraction):
		return fmt.Errorf("%s: %w", err, domain.ErrConflict)
	}
	return err
}
