package places

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/footprints-app/footprints-backend/internal/config"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() config.PlacesConfig {
	return config.PlacesConfig{
		APIKey:           "test-key",
		FallbackLocation: "New York",
		SearchLimit:      10,
		Timeout:          5 * time.Second,
	}
}

func TestProvider_Autocomplete_Success(t *testing.T) {
	t.Parallel()

	body := `{
		"terms": [{"text": "coffee"}, {"text": "coffee shop"}],
		"businesses": [{"id": "abc123", "name": "Coffee Project"}],
		"categories": [{"title": "Coffee & Tea"}]
	}`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/autocomplete" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("text"); got != "coff" {
			t.Errorf("text = %q, want %q", got, "coff")
		}
		if r.URL.Query().Has("location") {
			t.Error("unqualified autocomplete must not send a location")
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	defer srv.Close()

	p := NewProviderWithURL(srv.URL, testConfig(), newTestLogger())
	suggestions, err := p.Autocomplete(context.Background(), "coff", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(suggestions) != 3 {
		t.Fatalf("len(suggestions) = %d, want 3", len(suggestions))
	}
	if suggestions[0].Text != "coffee" || suggestions[0].ID != "" {
		t.Errorf("suggestions[0] = %+v", suggestions[0])
	}
	if suggestions[2].Text != "Coffee Project" || suggestions[2].ID != "abc123" {
		t.Errorf("suggestions[2] = %+v", suggestions[2])
	}
}

func TestProvider_Autocomplete_LocationQualifier(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("location"); got != "Osaka" {
			t.Errorf("location = %q, want %q", got, "Osaka")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"terms": [], "businesses": []}`))
	}))
	defer srv.Close()

	p := NewProviderWithURL(srv.URL, testConfig(), newTestLogger())
	if _, err := p.Autocomplete(context.Background(), "coff", " Osaka "); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestProvider_Autocomplete_ShortQuerySkipsNetwork(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	p := NewProviderWithURL(srv.URL, testConfig(), newTestLogger())

	for _, text := range []string{"", "a", " a "} {
		suggestions, err := p.Autocomplete(context.Background(), text, "Osaka")
		if err != nil {
			t.Fatalf("Autocomplete(%q): unexpected error: %v", text, err)
		}
		if len(suggestions) != 0 {
			t.Errorf("Autocomplete(%q): want no suggestions, got %d", text, len(suggestions))
		}
	}

	if calls.Load() != 0 {
		t.Errorf("short queries must not hit the API, got %d calls", calls.Load())
	}
}

func TestProvider_Search_Success(t *testing.T) {
	t.Parallel()

	body := `{
		"businesses": [{
			"id": "tw-1",
			"name": "Third Wave",
			"rating": 4.5,
			"review_count": 211,
			"image_url": "https://example.com/tw.jpg",
			"url": "https://example.com/biz/tw-1",
			"categories": [{"alias": "coffee", "title": "Coffee & Tea"}],
			"coordinates": {"latitude": 45.52, "longitude": -122.68},
			"location": {"address1": "12 Bean St", "city": "Portland", "state": "OR", "zip_code": "97201"}
		}],
		"total": 1
	}`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/businesses/search" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("term") != "coffee" || q.Get("location") != "Portland" {
			t.Errorf("query = %v", q)
		}
		if q.Get("limit") != "10" || q.Get("sort_by") != "best_match" {
			t.Errorf("limit/sort_by = %q/%q", q.Get("limit"), q.Get("sort_by"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	defer srv.Close()

	p := NewProviderWithURL(srv.URL, testConfig(), newTestLogger())
	places, err := p.Search(context.Background(), "coffee", "Portland")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(places) != 1 {
		t.Fatalf("len(places) = %d, want 1", len(places))
	}

	got := places[0]
	if got.ID != "tw-1" || got.Name != "Third Wave" || got.Rating != 4.5 {
		t.Errorf("place = %+v", got)
	}
	if got.Location.ShortAddress() != "12 Bean St, Portland" {
		t.Errorf("ShortAddress = %q", got.Location.ShortAddress())
	}
	if got.Coordinates == nil || got.Coordinates.Latitude != 45.52 {
		t.Errorf("coordinates = %+v", got.Coordinates)
	}
	if len(got.Categories) != 1 || got.Categories[0] != "Coffee & Tea" {
		t.Errorf("categories = %v", got.Categories)
	}
}

func TestProvider_Search_EmptyLocationUsesFallback(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("location"); got != "New York" {
			t.Errorf("location = %q, want fallback %q", got, "New York")
		}
		w.Write([]byte(`{"businesses": [], "total": 0}`))
	}))
	defer srv.Close()

	p := NewProviderWithURL(srv.URL, testConfig(), newTestLogger())
	places, err := p.Search(context.Background(), "pizza", "  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(places) != 0 {
		t.Errorf("want no places, got %d", len(places))
	}
}

func TestProvider_Search_RetriesOn5xx(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"businesses": [], "total": 0}`))
	}))
	defer srv.Close()

	p := NewProviderWithURL(srv.URL, testConfig(), newTestLogger())
	if _, err := p.Search(context.Background(), "ramen", ""); err != nil {
		t.Fatalf("unexpected error after retry: %v", err)
	}
	if calls.Load() != 2 {
		t.Errorf("calls = %d, want 2", calls.Load())
	}
}

func TestProvider_Search_APIErrorSurfaced(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": {"code": "VALIDATION_ERROR", "description": "bad location"}}`))
	}))
	defer srv.Close()

	p := NewProviderWithURL(srv.URL, testConfig(), newTestLogger())
	_, err := p.Search(context.Background(), "x", "nowhere")
	if err == nil {
		t.Fatal("expected error")
	}
}
