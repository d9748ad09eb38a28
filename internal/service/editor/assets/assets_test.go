package assets

import (
	"strings"
	"testing"

	"github.com/footprints-app/footprints-backend/internal/domain"
	"github.com/footprints-app/footprints-backend/internal/raster"
)

func TestCatalogIsFixedAndSelfContained(t *testing.T) {
	cat := Catalog()
	if len(cat) == 0 {
		t.Fatal("catalog must not be empty")
	}

	seen := map[string]bool{}
	for _, a := range cat {
		if seen[a.ID] {
			t.Errorf("duplicate asset id %q", a.ID)
		}
		seen[a.ID] = true

		if a.Kind == domain.ItemKindImage {
			if !strings.HasPrefix(a.DataURI, "data:image/png;base64,") {
				t.Errorf("asset %q bitmap is not inline PNG", a.ID)
			}
			if _, err := raster.DecodeDataURI(a.DataURI); err != nil {
				t.Errorf("asset %q bitmap does not decode: %v", a.ID, err)
			}
		}
	}

	for _, id := range []string{IDPhotostrip, IDTicket, IDReceipt, IDTextBlock, IDRatingBadge, IDVibeTag} {
		if !seen[id] {
			t.Errorf("catalog lacks %q", id)
		}
	}
}

func TestOnlyTextBlockIsEditable(t *testing.T) {
	for _, a := range Catalog() {
		want := a.ID == IDTextBlock
		if a.Editable != want {
			t.Errorf("asset %q editable = %v, want %v", a.ID, a.Editable, want)
		}
	}
}

func TestPhotostripHasLargerFootprint(t *testing.T) {
	strip, ok := Lookup(IDPhotostrip)
	if !ok {
		t.Fatal("photostrip missing")
	}
	if strip.Width <= ImageSize || strip.Height <= 0 {
		t.Errorf("photostrip footprint %vx%v not larger than default image size %v",
			strip.Width, strip.Height, ImageSize)
	}
}

func TestLookupUnknown(t *testing.T) {
	if _, ok := Lookup("confetti-cannon"); ok {
		t.Error("unknown id must not resolve")
	}
}

func TestRenderTicketBurnsInPlace(t *testing.T) {
	place := &domain.Place{
		Name:     "Le Jules Verne",
		Location: domain.Location{Address1: "Av. Gustave Eiffel", City: "Paris"},
	}

	plain := RenderTicket(nil, nil)
	burned := RenderTicket(place, []string{"Soufflé", "Tartare"})

	if plain == burned {
		t.Error("burn-in must change the ticket bitmap")
	}
	if _, err := raster.DecodeDataURI(burned); err != nil {
		t.Errorf("burned ticket does not decode: %v", err)
	}
}

func TestRenderReceiptDeterministic(t *testing.T) {
	place := &domain.Place{Name: "Diner", Location: domain.Location{City: "Austin"}}
	menu := []string{"pancakes", "coffee", "pie"}

	a := RenderReceipt(place, menu)
	b := RenderReceipt(place, menu)
	if a != b {
		t.Error("receipt rendering must be deterministic for identical input")
	}
}

func TestRenderRatingBadge(t *testing.T) {
	uri := RenderRatingBadge(4.5, 1893)
	if _, err := raster.DecodeDataURI(uri); err != nil {
		t.Fatalf("badge does not decode: %v", err)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 26); got != "short" {
		t.Errorf("truncate(short) = %q", got)
	}
	long := strings.Repeat("a", 40)
	got := truncate(long, 26)
	if len([]rune(got)) != 26 {
		t.Errorf("truncated length %d, want 26", len([]rune(got)))
	}
	if !strings.HasSuffix(got, "…") {
		t.Errorf("truncated string %q lacks ellipsis", got)
	}
}
