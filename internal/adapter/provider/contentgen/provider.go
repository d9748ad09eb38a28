// Package contentgen produces the descriptive text for a confirmed place:
// a short vibe line, a longer detail blurb, and the parsed menu items and
// location hint that drive receipt burn-in and illustration prompts.
//
// Generation is best-effort. Without an API key, or when any call fails,
// the provider degrades to fixed fallback content so a page is never left
// without text.
package contentgen

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/footprints-app/footprints-backend/internal/config"
	"github.com/footprints-app/footprints-backend/internal/domain"
)

// Result is the full generated content bundle for one place.
type Result struct {
	Vibes          string
	DetailedInfo   string
	MenuItems      []string
	LocationDetail string
}

// Provider generates place content via the Anthropic messages API.
type Provider struct {
	client  anthropic.Client
	model   string
	enabled bool
	log     *slog.Logger
}

// NewProvider creates a Provider from config. An empty API key disables
// remote calls; Generate then returns fallback content immediately.
func NewProvider(cfg config.ContentConfig, logger *slog.Logger) *Provider {
	p := &Provider{
		model:   cfg.Model,
		enabled: cfg.APIKey != "",
		log:     logger.With("adapter", "contentgen"),
	}
	if p.enabled {
		p.client = anthropic.NewClient(option.WithAPIKey(cfg.APIKey))
	}
	return p
}

// Generate produces the content bundle for a place. The vibe line and the
// detail blurb are independent generations and run concurrently; each falls
// back on its own, so one failed call never blanks the other field.
func (p *Provider) Generate(ctx context.Context, place *domain.Place) (*Result, error) {
	if !p.enabled {
		p.log.DebugContext(ctx, "contentgen disabled, using fallback content",
			slog.String("place", place.Name))
		return fallbackResult(place), nil
	}

	var (
		wg       sync.WaitGroup
		vibes    string
		details  string
		vibesErr error
		detErr   error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		vibes, vibesErr = p.complete(ctx, vibesPrompt(place), 128)
	}()
	go func() {
		defer wg.Done()
		details, detErr = p.complete(ctx, detailsPrompt(place), 1024)
	}()
	wg.Wait()

	result := fallbackResult(place)

	if vibesErr != nil {
		p.log.WarnContext(ctx, "vibes generation failed",
			slog.String("place", place.Name), slog.String("error", vibesErr.Error()))
	} else if v := strings.TrimSpace(vibes); v != "" {
		result.Vibes = v
	}

	if detErr != nil {
		p.log.WarnContext(ctx, "details generation failed",
			slog.String("place", place.Name), slog.String("error", detErr.Error()))
	} else if d := strings.TrimSpace(details); d != "" {
		result.DetailedInfo = d
		result.MenuItems = ParseMenuItems(d)
		result.LocationDetail = ParseLocationDetail(d)
	}

	return result, nil
}

// complete sends one prompt and returns the text of the first content block.
func (p *Provider) complete(ctx context.Context, prompt string, maxTokens int64) (string, error) {
	msg, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("contentgen: api call: %w", err)
	}
	if len(msg.Content) == 0 {
		return "", fmt.Errorf("contentgen: empty response")
	}
	return msg.Content[0].Text, nil
}

func vibesPrompt(place *domain.Place) string {
	return fmt.Sprintf(`Describe the vibe of "%s" (%s) in one short, evocative sentence a scrapbooker would scribble next to a photo. No quotes, no preamble.`,
		place.Name, place.Location.ShortAddress())
}

func detailsPrompt(place *domain.Place) string {
	return fmt.Sprintf(`Write a short scrapbook blurb about "%s", a place in %s rated %.1f stars.

End with exactly these two lines:
Menu Items: <three signature items, comma separated>
Location: <a few words on the setting or neighborhood>`,
		place.Name, place.Location.ShortAddress(), place.Rating)
}

// fallbackResult is the content used when generation is off or failed.
func fallbackResult(place *domain.Place) *Result {
	return &Result{
		Vibes:          fmt.Sprintf("a memorable stop at %s", place.Name),
		DetailedInfo:   fmt.Sprintf("%s, %s.", place.Name, place.Location.ShortAddress()),
		MenuItems:      append([]string(nil), fallbackMenuItems...),
		LocationDetail: fallbackLocationDetail,
	}
}
