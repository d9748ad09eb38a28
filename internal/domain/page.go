package domain

import (
	"time"

	"github.com/google/uuid"
)

// Page is one addressable slot within a journal. It is created lazily on
// first save and addressed by (JournalID, Slot); the Item collection is the
// editable source of truth, while CanvasImage is a derived snapshot cache
// used for thumbnails and anonymous rendering.
type Page struct {
	JournalID       uuid.UUID
	Slot            int
	Items           []Item
	Place           *Place
	Vibes           *string
	DetailedInfo    *string
	CanvasImage     *string
	GeneratedImages []GeneratedImage
	LastModified    time.Time
}

// GeneratedImage is one illustration produced for a page, paired with the
// prompt that produced it. URL is an inline data URI once placed.
type GeneratedImage struct {
	URL    string `json:"url"`
	Prompt string `json:"prompt"`
}

// HasContent reports whether the page counts as "filled" on the page index:
// at least one item has been placed on its canvas.
func (p *Page) HasContent() bool {
	return p != nil && len(p.Items) > 0
}

// FindItem returns the index of the item with the given id, or -1.
func (p *Page) FindItem(id uuid.UUID) int {
	for i := range p.Items {
		if p.Items[i].ID == id {
			return i
		}
	}
	return -1
}

// SlotIsValid reports whether slot addresses one of the fixed page slots
// (1-based, inclusive of slots).
func SlotIsValid(slot, slots int) bool {
	return slot >= 1 && slot <= slots
}
