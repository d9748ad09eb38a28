// Package imagegen produces page illustrations via an OpenAI-shaped images
// API. Every request that cannot be served remotely, including running with
// no API key at all, yields a deterministic inline SVG placeholder instead;
// callers always receive exactly one image per prompt.
package imagegen

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/footprints-app/footprints-backend/internal/config"
	"github.com/footprints-app/footprints-backend/internal/domain"
)

// Provider generates illustrations for confirmed places.
type Provider struct {
	baseURL    string
	apiKey     string
	model      string
	size       string
	enabled    bool
	httpClient *http.Client
	log        *slog.Logger
}

// NewProvider creates a Provider from config. An empty API key disables
// remote calls entirely.
func NewProvider(cfg config.ImagesConfig, logger *slog.Logger) *Provider {
	return &Provider{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		size:       cfg.Size,
		enabled:    cfg.APIKey != "",
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        logger.With("adapter", "imagegen"),
	}
}

// NewProviderWithURL creates a Provider with a custom base URL (for testing).
func NewProviderWithURL(baseURL string, cfg config.ImagesConfig, logger *slog.Logger) *Provider {
	p := NewProvider(cfg, logger)
	p.baseURL = strings.TrimRight(baseURL, "/")
	return p
}

const menuPromptTemplate = `Generate a single, cartoon-style image of the menu item %s.

The image should feature only this menu item.

Use a solid background color that contrasts well with the item.

Style should be cute and cartoon-like.

No text or logos (except very minimal, optional small label if necessary).

The item should be centered and clearly visible, with clean, simple lines.

No extra objects, clutter, or background details.`

// BuildPrompts returns one illustration prompt per menu item. The menu
// comes from content generation and its fallback, so prompts are always
// well-formed even when content generation degraded.
func BuildPrompts(menuItems []string) []string {
	prompts := make([]string, 0, len(menuItems))
	for _, item := range menuItems {
		prompts = append(prompts, fmt.Sprintf(menuPromptTemplate, item))
	}
	return prompts
}

// Generate produces one image per prompt, in prompt order. Remote failures
// are logged and replaced by placeholders; the returned slice always has
// len(prompts) entries.
func (p *Provider) Generate(ctx context.Context, prompts []string) []domain.GeneratedImage {
	images := make([]domain.GeneratedImage, len(prompts))

	for i, prompt := range prompts {
		images[i] = domain.GeneratedImage{Prompt: prompt}

		if !p.enabled {
			images[i].URL = PlaceholderSVG(prompt)
			continue
		}

		url, err := p.generateOne(ctx, prompt)
		if err != nil {
			p.log.WarnContext(ctx, "image generation failed, using placeholder",
				slog.String("error", err.Error()))
			images[i].URL = PlaceholderSVG(prompt)
			continue
		}
		images[i].URL = url
	}

	return images
}

type generationRequest struct {
	Model          string `json:"model"`
	Prompt         string `json:"prompt"`
	N              int    `json:"n"`
	Size           string `json:"size"`
	ResponseFormat string `json:"response_format"`
}

type generationResponse struct {
	Data []struct {
		B64JSON string `json:"b64_json"`
	} `json:"data"`
}

// generateOne calls the images endpoint and returns an inline PNG data URI.
func (p *Provider) generateOne(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(generationRequest{
		Model:          p.model,
		Prompt:         prompt,
		N:              1,
		Size:           p.size,
		ResponseFormat: "b64_json",
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.baseURL+"/images/generations", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var out generationResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("decode json: %w", err)
	}
	if len(out.Data) == 0 || out.Data[0].B64JSON == "" {
		return "", fmt.Errorf("empty image data")
	}

	return "data:image/png;base64," + out.Data[0].B64JSON, nil
}

// placeholder palette, warm scrapbook tones.
var placeholderColors = []string{
	"#D4A5A5", "#C9B79C", "#A5BFD4", "#B5C9A5", "#D4C5A5", "#C5A5D4",
}

// PlaceholderSVG renders a deterministic inline SVG for a prompt. The same
// prompt always produces the same image, which keeps re-renders stable.
func PlaceholderSVG(prompt string) string {
	h := fnv.New32a()
	h.Write([]byte(prompt))
	color := placeholderColors[int(h.Sum32())%len(placeholderColors)]

	label := prompt
	if r := []rune(label); len(r) > 40 {
		label = string(r[:40]) + "…"
	}

	svg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="512" height="512" viewBox="0 0 512 512">`+
		`<rect width="512" height="512" fill="%s"/>`+
		`<rect x="32" y="32" width="448" height="448" fill="none" stroke="#FFFFFF" stroke-width="4" stroke-dasharray="12 8"/>`+
		`<text x="256" y="266" font-family="serif" font-size="20" fill="#FFFFFF" text-anchor="middle">%s</text>`+
		`</svg>`, color, escapeXML(label))

	return "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte(svg))
}

func escapeXML(s string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
	)
	return r.Replace(s)
}
