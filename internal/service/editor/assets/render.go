package assets

import (
	"fmt"
	"image"
	"strings"

	"github.com/footprints-app/footprints-backend/internal/domain"
	"github.com/footprints-app/footprints-backend/internal/raster"
)

// Burn-in layout constants for ticket and receipt re-rendering. Coordinates
// are canvas-local pixels inside the asset bitmap.
const (
	maxAddressChars = 26
	maxMenuLines    = 2

	ticketNameY    = 34
	ticketAddressY = 56
	ticketMenuY    = 78

	receiptNameY    = 30
	receiptAddressY = 48
	receiptMenuY    = 90
	receiptMenuStep = 22
)

// RenderTicket redraws the ticket asset with the place's name, truncated
// address, and up to two menu lines burned in, returning a fresh data URI.
func RenderTicket(place *domain.Place, menuItems []string) string {
	return drawTicket(place, menuItems)
}

// RenderReceipt redraws the receipt asset the same way.
func RenderReceipt(place *domain.Place, menuItems []string) string {
	return drawReceipt(place, menuItems)
}

// RenderRatingBadge draws the place's star rating and review count as a
// small non-editable badge bitmap.
func RenderRatingBadge(rating float64, reviewCount int) string {
	img := image.NewRGBA(image.Rect(0, 0, int(BadgeWidth), int(BadgeHeight)))
	raster.FillRect(img, img.Bounds(), framePaper)
	raster.StrokeRect(img, img.Bounds(), ticketEdge)

	stars := strings.Repeat("*", int(rating+0.5))
	raster.DrawLines(img, 10, 18, inkDark, []string{
		fmt.Sprintf("%s %.1f", stars, rating),
		fmt.Sprintf("%d reviews", reviewCount),
	})
	return mustDataURI(img)
}

func drawTicket(place *domain.Place, menuItems []string) string {
	img := image.NewRGBA(image.Rect(0, 0, 220, 110))
	raster.FillRect(img, img.Bounds(), ticketWarm)
	raster.StrokeRect(img, img.Bounds(), ticketEdge)
	// Perforation line before the stub.
	for y := 6; y < 104; y += 8 {
		raster.FillRect(img, image.Rect(172, y, 174, y+4), ticketEdge)
	}
	raster.DrawLines(img, 12, 18, ticketEdge, []string{"ADMIT ONE"})

	if place != nil {
		raster.DrawLines(img, 12, ticketNameY, inkDark, []string{truncate(place.Name, maxAddressChars)})
		raster.DrawLines(img, 12, ticketAddressY, inkDark, []string{truncate(place.Location.ShortAddress(), maxAddressChars)})
		raster.DrawLines(img, 12, ticketMenuY, inkDark, menuLines(menuItems, 1))
	}
	return mustDataURI(img)
}

func drawReceipt(place *domain.Place, menuItems []string) string {
	img := image.NewRGBA(image.Rect(0, 0, 160, 220))
	raster.FillRect(img, img.Bounds(), receiptBG)
	raster.StrokeRect(img, img.Bounds(), ruleGray)
	for y := 66; y < 200; y += 22 {
		raster.FillRect(img, image.Rect(10, y, 150, y+1), ruleGray)
	}

	if place == nil {
		raster.DrawLines(img, 10, receiptNameY, inkDark, []string{"RECEIPT"})
	} else {
		raster.DrawLines(img, 10, receiptNameY, inkDark, []string{truncate(place.Name, 20)})
		raster.DrawLines(img, 10, receiptAddressY, inkDark, []string{truncate(place.Location.ShortAddress(), 20)})
		for i, line := range menuLines(menuItems, maxMenuLines) {
			raster.DrawLines(img, 10, receiptMenuY+i*receiptMenuStep, inkDark, []string{truncate(line, 20)})
		}
	}
	return mustDataURI(img)
}

// menuLines takes at most n menu items.
func menuLines(items []string, n int) []string {
	if len(items) > n {
		items = items[:n]
	}
	out := make([]string, 0, n)
	for _, it := range items {
		if s := strings.TrimSpace(it); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
