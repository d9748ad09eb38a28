package domain

import (
	"math"

	"github.com/google/uuid"
)

// ItemKind distinguishes the two kinds of canvas content.
type ItemKind string

const (
	ItemKindText  ItemKind = "text"
	ItemKindImage ItemKind = "image"
)

func (k ItemKind) String() string { return string(k) }

func (k ItemKind) IsValid() bool {
	return k == ItemKindText || k == ItemKindImage
}

// Item is a single element placed on a page's canvas.
//
// Content is literal text for text items; for image items it is either a
// remote URL or an inline data URI. Position is top-left, canvas-local
// pixels. Rotation is degrees, normalized to (-180, 180].
//
// Items with Editable == false carry system-provided content (rating badge,
// vibe tags) whose Content must never be mutated by an edit operation.
//
// The JSON shape is the persisted and wire representation of an item.
type Item struct {
	ID       uuid.UUID `json:"id"`
	Kind     ItemKind  `json:"type"`
	Content  string    `json:"content"`
	X        float64   `json:"x"`
	Y        float64   `json:"y"`
	Width    float64   `json:"width,omitempty"`
	Height   float64   `json:"height,omitempty"`
	Rotation float64   `json:"rotation,omitempty"`
	Editable bool      `json:"editable"`
}

// ValidateGeometry reports whether position, size, and rotation are all
// finite. NaN or infinite geometry must never be stored.
func (it *Item) ValidateGeometry() error {
	for _, v := range []struct {
		name string
		val  float64
	}{
		{"x", it.X}, {"y", it.Y},
		{"width", it.Width}, {"height", it.Height},
		{"rotation", it.Rotation},
	} {
		if math.IsNaN(v.val) || math.IsInf(v.val, 0) {
			return NewValidationError(v.name, "must be finite")
		}
	}
	return nil
}

// Validate checks the full item invariant set.
func (it *Item) Validate() error {
	if it.ID == uuid.Nil {
		return NewValidationError("id", "required")
	}
	if !it.Kind.IsValid() {
		return NewValidationError("type", "must be text or image")
	}
	return it.ValidateGeometry()
}
