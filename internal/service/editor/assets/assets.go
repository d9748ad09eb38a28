// Package assets provides the editor sidebar's fixed decorative asset
// catalog. Every asset bitmap is generated procedurally at startup and
// carried as an inline PNG data URI, so placed content never depends on
// external URL availability.
package assets

import (
	"image"
	"image/color"
	"sync"

	"github.com/footprints-app/footprints-backend/internal/domain"
	"github.com/footprints-app/footprints-backend/internal/raster"
)

// Asset is one sidebar source that can be dropped onto the canvas.
type Asset struct {
	ID     string
	Name   string
	Kind   domain.ItemKind
	Width  float64
	Height float64
	// DataURI is the asset bitmap. Empty for text assets.
	DataURI string
	// Editable marks assets whose placed content the user may rewrite.
	// System content (vibe tag, rating badge) is placed locked.
	Editable bool
}

// Default item footprints. The photostrip gets a larger footprint than
// other image assets.
const (
	TextWidth        = 200.0
	TextHeight       = 50.0
	ImageSize        = 150.0
	PhotostripWidth  = 320.0
	PhotostripHeight = 130.0
	BadgeWidth       = 140.0
	BadgeHeight      = 44.0
)

// Well-known asset ids. Ticket and receipt are re-rendered at drop time
// with the page's place details burned in; the rating badge and vibe tag
// pull their content from the page's confirmed place.
const (
	IDPhotostrip  = "photostrip"
	IDTicket      = "ticket"
	IDReceipt     = "receipt"
	IDWashiTape   = "washi-tape"
	IDPolaroid    = "polaroid"
	IDSticker     = "sticker"
	IDTextBlock   = "text"
	IDRatingBadge = "rating-badge"
	IDVibeTag     = "vibe-tag"
)

var (
	buildOnce sync.Once
	catalog   []Asset
	byID      map[string]Asset
)

// Catalog returns the fixed decorative asset set, in sidebar order.
func Catalog() []Asset {
	buildOnce.Do(build)
	out := make([]Asset, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup returns the asset with the given id.
func Lookup(id string) (Asset, bool) {
	buildOnce.Do(build)
	a, ok := byID[id]
	return a, ok
}

func build() {
	catalog = []Asset{
		{ID: IDTextBlock, Name: "Text block", Kind: domain.ItemKindText, Width: TextWidth, Height: TextHeight, Editable: true},
		{ID: IDPhotostrip, Name: "Photo strip", Kind: domain.ItemKindImage, Width: PhotostripWidth, Height: PhotostripHeight, DataURI: drawPhotostrip()},
		{ID: IDTicket, Name: "Ticket", Kind: domain.ItemKindImage, Width: 220, Height: 110, DataURI: drawTicket(nil, nil)},
		{ID: IDReceipt, Name: "Receipt", Kind: domain.ItemKindImage, Width: 160, Height: 220, DataURI: drawReceipt(nil, nil)},
		{ID: IDWashiTape, Name: "Washi tape", Kind: domain.ItemKindImage, Width: 180, Height: 40, DataURI: drawWashiTape()},
		{ID: IDPolaroid, Name: "Polaroid", Kind: domain.ItemKindImage, Width: ImageSize, Height: ImageSize, DataURI: drawPolaroid()},
		{ID: IDSticker, Name: "Sticker", Kind: domain.ItemKindImage, Width: 90, Height: 90, DataURI: drawSticker()},
		{ID: IDRatingBadge, Name: "Rating badge", Kind: domain.ItemKindImage, Width: BadgeWidth, Height: BadgeHeight, DataURI: RenderRatingBadge(0, 0)},
		{ID: IDVibeTag, Name: "Vibe tag", Kind: domain.ItemKindText, Width: TextWidth, Height: TextHeight},
	}
	byID = make(map[string]Asset, len(catalog))
	for _, a := range catalog {
		byID[a.ID] = a
	}
}

// ---------------------------------------------------------------------------
// Procedural asset bitmaps
// ---------------------------------------------------------------------------

var (
	stripDark  = color.RGBA{40, 40, 48, 255}
	framePaper = color.RGBA{250, 250, 248, 255}
	ticketWarm = color.RGBA{244, 196, 120, 255}
	ticketEdge = color.RGBA{160, 110, 50, 255}
	receiptBG  = color.RGBA{252, 252, 250, 255}
	ruleGray   = color.RGBA{205, 205, 205, 255}
	inkDark    = color.RGBA{60, 55, 50, 255}
	washiTeal  = color.RGBA{130, 200, 190, 230}
	stickerRed = color.RGBA{226, 104, 92, 255}
)

func mustDataURI(img image.Image) string {
	uri, err := raster.EncodeDataURI(img)
	if err != nil {
		// PNG-encoding an in-memory RGBA cannot fail at runtime.
		panic(err)
	}
	return uri
}

func drawPhotostrip() string {
	img := image.NewRGBA(image.Rect(0, 0, int(PhotostripWidth), int(PhotostripHeight)))
	raster.FillRect(img, img.Bounds(), stripDark)
	// Three film frames with even gutters.
	for i := 0; i < 3; i++ {
		x := 12 + i*104
		raster.FillRect(img, image.Rect(x, 14, x+92, int(PhotostripHeight)-14), framePaper)
	}
	return mustDataURI(img)
}

func drawWashiTape() string {
	img := image.NewRGBA(image.Rect(0, 0, 180, 40))
	raster.FillRect(img, img.Bounds(), washiTeal)
	// Torn ends: notch the corners.
	for y := 0; y < 40; y += 8 {
		raster.FillRect(img, image.Rect(0, y, 4, y+4), color.RGBA{})
		raster.FillRect(img, image.Rect(176, y+4, 180, y+8), color.RGBA{})
	}
	return mustDataURI(img)
}

func drawPolaroid() string {
	img := image.NewRGBA(image.Rect(0, 0, int(ImageSize), int(ImageSize)))
	raster.FillRect(img, img.Bounds(), framePaper)
	raster.StrokeRect(img, img.Bounds(), ruleGray)
	// Photo window with the classic wide bottom border.
	raster.FillRect(img, image.Rect(12, 12, int(ImageSize)-12, int(ImageSize)-38), color.RGBA{180, 190, 200, 255})
	return mustDataURI(img)
}

func drawSticker() string {
	img := image.NewRGBA(image.Rect(0, 0, 90, 90))
	// Filled circle, scanline by scanline.
	const r = 42
	for y := 0; y < 90; y++ {
		for x := 0; x < 90; x++ {
			dx, dy := x-45, y-45
			if dx*dx+dy*dy <= r*r {
				img.SetRGBA(x, y, stickerRed)
			}
		}
	}
	raster.DrawLines(img, 33, 50, framePaper, []string{"yum!"})
	return mustDataURI(img)
}
