package page

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/footprints-app/footprints-backend/internal/config"
	"github.com/footprints-app/footprints-backend/internal/domain"
	"github.com/footprints-app/footprints-backend/pkg/ctxutil"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testCanvasCfg() config.CanvasConfig {
	return config.CanvasConfig{PageSlots: 6, Width: 800, Height: 600, MinItemSize: 50}
}

type journalRepoMock struct {
	GetByIDFunc func(ctx context.Context, journalID uuid.UUID) (*domain.Journal, error)
}

func (m *journalRepoMock) GetByID(ctx context.Context, journalID uuid.UUID) (*domain.Journal, error) {
	return m.GetByIDFunc(ctx, journalID)
}

type pageRepoMock struct {
	GetFunc           func(ctx context.Context, journalID uuid.UUID, slot int) (*domain.Page, error)
	ListByJournalFunc func(ctx context.Context, journalID uuid.UUID) ([]*domain.Page, error)
	PurgeFunc         func(ctx context.Context, journalID uuid.UUID, slot int) error
}

func (m *pageRepoMock) Get(ctx context.Context, journalID uuid.UUID, slot int) (*domain.Page, error) {
	return m.GetFunc(ctx, journalID, slot)
}

func (m *pageRepoMock) ListByJournal(ctx context.Context, journalID uuid.UUID) ([]*domain.Page, error) {
	return m.ListByJournalFunc(ctx, journalID)
}

func (m *pageRepoMock) Purge(ctx context.Context, journalID uuid.UUID, slot int) error {
	if m.PurgeFunc == nil {
		panic("pageRepoMock.PurgeFunc: method is nil but pageRepo.Purge was just called")
	}
	return m.PurgeFunc(ctx, journalID, slot)
}

func ownerJournal(owner uuid.UUID) *journalRepoMock {
	return &journalRepoMock{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Journal, error) {
			return &domain.Journal{ID: id, UserID: owner}, nil
		},
	}
}

func TestService_Index_AlwaysFullSlotCount(t *testing.T) {
	t.Parallel()

	owner := uuid.New()
	journalID := uuid.New()
	thumb := "data:image/png;base64,abc"
	now := time.Now()

	pages := &pageRepoMock{
		ListByJournalFunc: func(ctx context.Context, id uuid.UUID) ([]*domain.Page, error) {
			return []*domain.Page{
				{
					JournalID: id, Slot: 2,
					Items:        []domain.Item{{ID: uuid.New(), Kind: domain.ItemKindText}},
					Place:        &domain.Place{Name: "Third Wave"},
					CanvasImage:  &thumb,
					LastModified: now,
				},
				// Saved but emptied page: present row, zero items.
				{JournalID: id, Slot: 5, Items: []domain.Item{}, LastModified: now},
			}, nil
		},
	}

	svc := NewService(testLogger(), ownerJournal(owner), pages, testCanvasCfg())
	ctx := ctxutil.WithUserID(context.Background(), owner)

	index, err := svc.Index(ctx, journalID)
	if err != nil {
		t.Fatalf("Index returned error: %v", err)
	}
	if len(index) != 6 {
		t.Fatalf("len(index) = %d, want the full slot count", len(index))
	}

	for i, info := range index {
		if info.Slot != i+1 {
			t.Errorf("index[%d].Slot = %d", i, info.Slot)
		}
	}

	if !index[1].Filled || index[1].PlaceName != "Third Wave" || index[1].Thumbnail == nil {
		t.Errorf("slot 2 = %+v, want filled with place and thumbnail", index[1])
	}
	if index[4].Filled {
		t.Error("slot 5 has no items and must not count as filled")
	}
	if index[0].Filled || index[0].LastModified != nil {
		t.Errorf("slot 1 never saved, got %+v", index[0])
	}
}

func TestService_Index_OwnershipEnforced(t *testing.T) {
	t.Parallel()

	svc := NewService(testLogger(), ownerJournal(uuid.New()), &pageRepoMock{}, testCanvasCfg())

	ctx := ctxutil.WithUserID(context.Background(), uuid.New())
	if _, err := svc.Index(ctx, uuid.New()); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("want ErrForbidden, got %v", err)
	}

	if _, err := svc.Index(context.Background(), uuid.New()); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("want ErrUnauthorized for anonymous, got %v", err)
	}
}

func TestService_Get_UnsavedSlotYieldsEmptyPage(t *testing.T) {
	t.Parallel()

	owner := uuid.New()
	journalID := uuid.New()

	pages := &pageRepoMock{
		GetFunc: func(ctx context.Context, id uuid.UUID, slot int) (*domain.Page, error) {
			return nil, domain.ErrNotFound
		},
	}
	svc := NewService(testLogger(), ownerJournal(owner), pages, testCanvasCfg())
	ctx := ctxutil.WithUserID(context.Background(), owner)

	p, err := svc.Get(ctx, journalID, 4)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if p.JournalID != journalID || p.Slot != 4 {
		t.Errorf("page = %+v", p)
	}
	if p.Items == nil || len(p.Items) != 0 {
		t.Errorf("empty page must have an empty non-nil item slice, got %#v", p.Items)
	}
}

func TestService_Purge(t *testing.T) {
	t.Parallel()

	owner := uuid.New()
	journalID := uuid.New()

	purged := 0
	pages := &pageRepoMock{
		PurgeFunc: func(ctx context.Context, id uuid.UUID, slot int) error {
			purged++
			if id != journalID || slot != 3 {
				t.Errorf("Purge(%v, %d)", id, slot)
			}
			return nil
		},
	}
	svc := NewService(testLogger(), ownerJournal(owner), pages, testCanvasCfg())
	ctx := ctxutil.WithUserID(context.Background(), owner)

	if err := svc.Purge(ctx, journalID, 3); err != nil {
		t.Fatalf("Purge returned error: %v", err)
	}
	if purged != 1 {
		t.Errorf("repo purge called %d times", purged)
	}

	if err := svc.Purge(ctx, journalID, 0); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("bad slot: want ErrValidation, got %v", err)
	}
	if err := svc.Purge(context.Background(), journalID, 3); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("anonymous: want ErrUnauthorized, got %v", err)
	}
}

func TestService_Get_SlotRange(t *testing.T) {
	t.Parallel()

	svc := NewService(testLogger(), ownerJournal(uuid.New()), &pageRepoMock{}, testCanvasCfg())
	ctx := ctxutil.WithUserID(context.Background(), uuid.New())

	for _, slot := range []int{0, -1, 7, 100} {
		if _, err := svc.Get(ctx, uuid.New(), slot); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("Get(slot=%d): want ErrValidation, got %v", slot, err)
		}
	}
}
