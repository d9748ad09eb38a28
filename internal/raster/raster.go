// Package raster renders a page's item collection into a flattened bitmap
// snapshot. The snapshot is a derived cache for thumbnails and anonymous
// viewing; the item collection stays the editable source of truth.
package raster

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"strings"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"

	_ "image/gif"  // decode inline GIF content
	_ "image/jpeg" // decode inline JPEG content

	"github.com/footprints-app/footprints-backend/internal/domain"
)

const (
	lineHeight = 16
	textMargin = 4

	// maxTileSide bounds the per-item surface, whatever geometry the stored
	// item claims. Anything larger would never be visible at canvas scale.
	maxTileSide = 4096
)

var (
	paper       = color.RGBA{255, 255, 255, 255}
	ink         = color.RGBA{51, 51, 51, 255}
	placeholder = color.RGBA{240, 240, 240, 255}
	frame       = color.RGBA{200, 200, 200, 255}
)

// Renderer rasterizes pages at a fixed canvas size.
type Renderer struct {
	width  int
	height int
}

// New creates a Renderer for the given canvas dimensions.
func New(width, height int) *Renderer {
	return &Renderer{width: width, height: height}
}

// Snapshot renders the items, in placement order, onto a white canvas and
// returns the result as a PNG data URI.
func (r *Renderer) Snapshot(items []domain.Item) (string, error) {
	img := r.Render(items)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("raster: encode snapshot: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// Render draws the items onto a fresh canvas surface. Items whose image
// content cannot be decoded (remote URLs, SVG placeholders) are drawn as
// framed placeholder boxes so the snapshot layout stays faithful.
func (r *Renderer) Render(items []domain.Item) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, r.width, r.height))
	FillRect(dst, dst.Bounds(), paper)

	for i := range items {
		tile := renderTile(&items[i])
		composite(dst, tile, items[i].X, items[i].Y, items[i].Rotation)
	}
	return dst
}

// renderTile rasterizes one item into its own surface at the item's size,
// clamped to [1, maxTileSide] per side.
func renderTile(it *domain.Item) *image.RGBA {
	w := int(math.Min(maxTileSide, math.Max(1, it.Width)))
	h := int(math.Min(maxTileSide, math.Max(1, it.Height)))
	tile := image.NewRGBA(image.Rect(0, 0, w, h))

	switch it.Kind {
	case domain.ItemKindText:
		DrawLines(tile, textMargin, lineHeight, ink, strings.Split(it.Content, "\n"))
	case domain.ItemKindImage:
		src, err := DecodeDataURI(it.Content)
		if err != nil {
			FillRect(tile, tile.Bounds(), placeholder)
			StrokeRect(tile, tile.Bounds(), frame)
			break
		}
		draw.ApproxBiLinear.Scale(tile, tile.Bounds(), src, src.Bounds(), draw.Over, nil)
	}
	return tile
}

// composite draws tile onto dst at (x, y), rotated by deg about the tile's
// center. The zero-rotation path avoids the transform entirely.
func composite(dst *image.RGBA, tile *image.RGBA, x, y, deg float64) {
	if deg == 0 {
		r := tile.Bounds().Add(image.Pt(int(x), int(y)))
		draw.Draw(dst, r, tile, image.Point{}, draw.Over)
		return
	}

	theta := deg * math.Pi / 180
	sin, cos := math.Sincos(theta)
	cx := float64(tile.Bounds().Dx()) / 2
	cy := float64(tile.Bounds().Dy()) / 2

	// Rotate about the tile center, then translate the center to the item's
	// center position on the canvas.
	aff := f64.Aff3{
		cos, -sin, (x + cx) - (cos*cx - sin*cy),
		sin, cos, (y + cy) - (sin*cx + cos*cy),
	}
	draw.BiLinear.Transform(dst, aff, tile, tile.Bounds(), draw.Over, nil)
}

// DrawLines renders text lines with the fixed bitmap face, one per row
// starting at baseline y.
func DrawLines(dst *image.RGBA, x, y int, c color.Color, lines []string) {
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
	}
	for i, line := range lines {
		d.Dot = fixed.P(x, y+i*lineHeight)
		d.DrawString(line)
	}
}

// FillRect fills r with a solid color.
func FillRect(dst *image.RGBA, r image.Rectangle, c color.Color) {
	draw.Draw(dst, r, image.NewUniform(c), image.Point{}, draw.Src)
}

// StrokeRect draws a one-pixel border along the edges of r.
func StrokeRect(dst *image.RGBA, r image.Rectangle, c color.Color) {
	for x := r.Min.X; x < r.Max.X; x++ {
		dst.Set(x, r.Min.Y, c)
		dst.Set(x, r.Max.Y-1, c)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		dst.Set(r.Min.X, y, c)
		dst.Set(r.Max.X-1, y, c)
	}
}

// EncodeDataURI encodes an image as a PNG data URI.
func EncodeDataURI(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("raster: encode png: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// DecodeDataURI decodes an inline base64 data URI into an image. Non-data
// URIs and unsupported payloads (e.g. SVG) return an error.
func DecodeDataURI(s string) (image.Image, error) {
	if !strings.HasPrefix(s, "data:") {
		return nil, fmt.Errorf("raster: not a data URI")
	}
	meta, payload, ok := strings.Cut(s, ",")
	if !ok {
		return nil, fmt.Errorf("raster: malformed data URI")
	}
	if !strings.HasSuffix(meta, ";base64") {
		return nil, fmt.Errorf("raster: data URI is not base64-encoded")
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("raster: decode base64: %w", err)
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("raster: decode image: %w", err)
	}
	return img, nil
}
