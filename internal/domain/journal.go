package domain

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// Journal is a user-owned scrapbook: a titled cover plus a fixed number of
// page slots. The slot count is configuration, not journal state: every
// journal exposes the same number of slots regardless of how many are filled.
type Journal struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Title       string
	Description *string
	Color       string
	IsPublic    bool
	SharedAt    *time.Time
	CreatedAt   time.Time
}

// IsOwnedBy reports whether the journal belongs to the given user.
func (j *Journal) IsOwnedBy(userID uuid.UUID) bool {
	return j.UserID == userID
}

// BookPalette is the fixed set of spine colors a new journal is assigned from.
var BookPalette = []string{
	"#8B4513", "#A0522D", "#CD853F", "#D2691E", "#DEB887", "#F4A460", "#D2B48C",
}

// RandomColor picks a palette color for a new journal.
func RandomColor() string {
	return BookPalette[rand.Intn(len(BookPalette))]
}
