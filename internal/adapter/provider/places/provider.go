// Package places fetches place data from a Yelp-shaped search API.
package places

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/footprints-app/footprints-backend/internal/config"
	"github.com/footprints-app/footprints-backend/internal/domain"
)

// Suggestion is one autocomplete result. Term suggestions have an empty ID;
// business suggestions carry the business id so the client can jump straight
// to a result.
type Suggestion struct {
	Text string `json:"text"`
	ID   string `json:"id,omitempty"`
}

// Provider fetches autocomplete suggestions and business search results.
type Provider struct {
	baseURL          string
	apiKey           string
	fallbackLocation string
	searchLimit      int
	httpClient       *http.Client
	log              *slog.Logger
}

// NewProvider creates a Provider from config.
func NewProvider(cfg config.PlacesConfig, logger *slog.Logger) *Provider {
	return &Provider{
		baseURL:          strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:           cfg.APIKey,
		fallbackLocation: cfg.FallbackLocation,
		searchLimit:      cfg.SearchLimit,
		httpClient:       &http.Client{Timeout: cfg.Timeout},
		log:              logger.With("adapter", "places"),
	}
}

// NewProviderWithURL creates a Provider with a custom base URL (for testing).
func NewProviderWithURL(baseURL string, cfg config.PlacesConfig, logger *slog.Logger) *Provider {
	p := NewProvider(cfg, logger)
	p.baseURL = strings.TrimRight(baseURL, "/")
	return p
}

// Autocomplete returns type-ahead suggestions for a partial query. An
// optional location qualifier biases the business suggestions; empty means
// unqualified. Queries shorter than two characters return no suggestions
// without a network call; the upstream API rejects them anyway.
func (p *Provider) Autocomplete(ctx context.Context, text, location string) ([]Suggestion, error) {
	text = strings.TrimSpace(text)
	if len([]rune(text)) < 2 {
		return []Suggestion{}, nil
	}

	q := url.Values{}
	q.Set("text", text)
	if location = strings.TrimSpace(location); location != "" {
		q.Set("location", location)
	}
	reqURL := p.baseURL + "/autocomplete?" + q.Encode()

	var out autocompleteResponse
	if err := p.getJSON(ctx, reqURL, &out); err != nil {
		return nil, fmt.Errorf("places: autocomplete %q: %w", text, err)
	}

	suggestions := []Suggestion{}
	for _, t := range out.Terms {
		suggestions = append(suggestions, Suggestion{Text: t.Text})
	}
	for _, b := range out.Businesses {
		suggestions = append(suggestions, Suggestion{Text: b.Name, ID: b.ID})
	}

	p.log.DebugContext(ctx, "places autocomplete",
		slog.String("text", text), slog.Int("suggestions", len(suggestions)))

	return suggestions, nil
}

// Search returns up to the configured limit of businesses matching term,
// sorted by best match. An empty location falls back to the configured
// default so a bare term always yields results.
func (p *Provider) Search(ctx context.Context, term, location string) ([]domain.Place, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		location = p.fallbackLocation
	}

	q := url.Values{}
	q.Set("term", term)
	q.Set("location", location)
	q.Set("limit", strconv.Itoa(p.searchLimit))
	q.Set("sort_by", "best_match")
	reqURL := p.baseURL + "/businesses/search?" + q.Encode()

	var out searchResponse
	if err := p.getJSON(ctx, reqURL, &out); err != nil {
		return nil, fmt.Errorf("places: search %q: %w", term, err)
	}

	places := make([]domain.Place, 0, len(out.Businesses))
	for _, b := range out.Businesses {
		places = append(places, mapBusiness(b))
	}

	p.log.DebugContext(ctx, "places search",
		slog.String("term", term), slog.String("location", location),
		slog.Int("results", len(places)))

	return places, nil
}

// getJSON performs an authenticated GET with a single retry on 5xx or
// network errors, decoding the body into v.
func (p *Provider) getJSON(ctx context.Context, reqURL string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.doWithRetry(ctx, req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error.Code != "" {
			return fmt.Errorf("status %d: %s", resp.StatusCode, apiErr.Error.Code)
		}
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode json: %w", err)
	}

	return nil
}

// doWithRetry executes the request with a single retry on 5xx or network errors.
func (p *Provider) doWithRetry(ctx context.Context, req *http.Request) (*http.Response, error) {
	resp, err := p.httpClient.Do(req)

	shouldRetry := err != nil || (resp != nil && resp.StatusCode >= 500)
	if !shouldRetry {
		return resp, err
	}

	if ctx.Err() != nil {
		return resp, err
	}

	reason := "network error"
	if err == nil && resp != nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
	}
	p.log.WarnContext(ctx, "places retry", slog.String("url", req.URL.Path), slog.String("reason", reason))

	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	time.Sleep(500 * time.Millisecond)

	return p.httpClient.Do(req)
}

// mapBusiness converts an API business into a domain.Place snapshot.
func mapBusiness(b apiBusiness) domain.Place {
	place := domain.Place{
		ID:          b.ID,
		Name:        b.Name,
		Rating:      b.Rating,
		ReviewCount: b.ReviewCount,
		ImageURL:    b.ImageURL,
		URL:         b.URL,
		Location: domain.Location{
			Address1: b.Location.Address1,
			City:     b.Location.City,
			State:    b.Location.State,
			ZipCode:  b.Location.ZipCode,
		},
	}

	for _, c := range b.Categories {
		place.Categories = append(place.Categories, c.Title)
	}
	if b.Coordinates != nil {
		place.Coordinates = &domain.Coordinate{
			Latitude:  b.Coordinates.Latitude,
			Longitude: b.Coordinates.Longitude,
		}
	}

	return place
}
