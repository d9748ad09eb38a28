package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/footprints-app/footprints-backend/internal/domain"
	"github.com/footprints-app/footprints-backend/internal/service/journal"
)

type journalServiceMock struct {
	ListFunc   func(ctx context.Context) ([]*domain.Journal, error)
	CreateFunc func(ctx context.Context, input journal.CreateInput) (*domain.Journal, error)
	DeleteFunc func(ctx context.Context, ids []uuid.UUID) (int, error)
}

func (m *journalServiceMock) List(ctx context.Context) ([]*domain.Journal, error) {
	return m.ListFunc(ctx)
}

func (m *journalServiceMock) Create(ctx context.Context, input journal.CreateInput) (*domain.Journal, error) {
	return m.CreateFunc(ctx, input)
}

func (m *journalServiceMock) Delete(ctx context.Context, ids []uuid.UUID) (int, error) {
	return m.DeleteFunc(ctx, ids)
}

func TestJournalHandler_Create(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	svc := &journalServiceMock{
		CreateFunc: func(_ context.Context, input journal.CreateInput) (*domain.Journal, error) {
			if input.Title != "Tokyo 2026" {
				t.Errorf("unexpected title: %q", input.Title)
			}
			return &domain.Journal{ID: id, Title: input.Title, Color: "#8B4513"}, nil
		},
	}
	h := NewJournalHandler(svc, discardLogger())

	body := bytes.NewBufferString(`{"title":"Tokyo 2026"}`)
	req := httptest.NewRequest(http.MethodPost, "/journals", body)
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp journalResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != id.String() {
		t.Errorf("expected id %s, got %s", id, resp.ID)
	}
	if resp.Color == "" {
		t.Error("expected a spine color in the response")
	}
}

func TestJournalHandler_Create_InvalidBody(t *testing.T) {
	t.Parallel()

	h := NewJournalHandler(&journalServiceMock{}, discardLogger())

	req := httptest.NewRequest(http.MethodPost, "/journals", bytes.NewBufferString("{"))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestJournalHandler_BatchDelete(t *testing.T) {
	t.Parallel()

	a, b := uuid.New(), uuid.New()
	svc := &journalServiceMock{
		DeleteFunc: func(_ context.Context, ids []uuid.UUID) (int, error) {
			if len(ids) != 2 || ids[0] != a || ids[1] != b {
				t.Errorf("unexpected ids: %v", ids)
			}
			return 2, nil
		},
	}
	h := NewJournalHandler(svc, discardLogger())

	body, _ := json.Marshal(batchDeleteRequest{IDs: []string{a.String(), b.String()}})
	req := httptest.NewRequest(http.MethodPost, "/journals/batch-delete", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.BatchDelete(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp map[string]int
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["deleted"] != 2 {
		t.Errorf("expected deleted=2, got %d", resp["deleted"])
	}
}

func TestJournalHandler_BatchDelete_BadID(t *testing.T) {
	t.Parallel()

	h := NewJournalHandler(&journalServiceMock{}, discardLogger())

	req := httptest.NewRequest(http.MethodPost, "/journals/batch-delete",
		bytes.NewBufferString(`{"ids":["nope"]}`))
	rec := httptest.NewRecorder()

	h.BatchDelete(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestJournalHandler_List_Unauthorized(t *testing.T) {
	t.Parallel()

	svc := &journalServiceMock{
		ListFunc: func(_ context.Context) ([]*domain.Journal, error) {
			return nil, domain.ErrUnauthorized
		},
	}
	h := NewJournalHandler(svc, discardLogger())

	req := httptest.NewRequest(http.MethodGet, "/journals", nil)
	rec := httptest.NewRecorder()

	h.List(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}
