package canvas

import "github.com/google/uuid"

// Mode is the single active interaction of an editor session. Exactly one
// Mode value exists at a time, so dragging, resizing, rotating, and text
// editing are mutually exclusive by construction.
type Mode interface {
	mode()
}

// Idle means no interaction is in progress.
type Idle struct{}

// Dragging tracks a move gesture: the grab offset is the pointer position
// relative to the item's top-left corner at gesture start.
type Dragging struct {
	ItemID  uuid.UUID
	OffsetX float64
	OffsetY float64
}

// Resizing tracks a resize gesture from the dedicated handle: the item's
// size and the pointer position at gesture start.
type Resizing struct {
	ItemID      uuid.UUID
	StartWidth  float64
	StartHeight float64
	StartX      float64
	StartY      float64
}

// Rotating tracks a rotate gesture: the center-to-pointer angle and the
// item's stored rotation at gesture start. Subsequent pointer positions
// produce a relative delta from StartAngle.
type Rotating struct {
	ItemID        uuid.UUID
	StartAngle    float64
	StartRotation float64
}

// Editing tracks inline text editing of a single item.
type Editing struct {
	ItemID uuid.UUID
}

func (Idle) mode()     {}
func (Dragging) mode() {}
func (Resizing) mode() {}
func (Rotating) mode() {}
func (Editing) mode()  {}
