package domain

import (
	"time"

	"github.com/google/uuid"
)

// GalleryEntry is a community-visible snapshot of a shared page. It is an
// independent copy: inserting one does not affect the owning journal's
// visibility flag, and later edits to the page do not retroactively change
// the entry.
type GalleryEntry struct {
	ID        uuid.UUID
	ImageURL  string
	JournalID uuid.UUID
	PageSlot  int
	Place     *Place
	// PageItems is the live item collection at time of sharing, kept so the
	// gallery can re-render instead of relying solely on the static image.
	PageItems []Item
	CreatedAt time.Time
}

// GalleryFilter defines parameters for listing gallery entries.
type GalleryFilter struct {
	// JournalID limits results to entries shared from one journal.
	JournalID *uuid.UUID

	// Limit is the maximum number of entries. Default 50, max 100.
	Limit int

	// Offset is the number of entries to skip.
	Offset int
}

// Normalize applies defaults and clamps values.
func (f *GalleryFilter) Normalize() {
	if f.Limit <= 0 {
		f.Limit = 50
	}
	if f.Limit > 100 {
		f.Limit = 100
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
}
