// Package canvas implements the page editor's interaction model as a pure
// state machine over an ordered item collection. It has no I/O: the editor
// service feeds it gesture and mutation operations and persists the result.
package canvas

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/footprints-app/footprints-backend/internal/domain"
)

var (
	// ErrInteractionActive is returned when a gesture begins while another
	// interaction is already in progress.
	ErrInteractionActive = errors.New("another interaction is active")

	// ErrNoInteraction is returned when a continue/end call arrives without
	// a matching begin.
	ErrNoInteraction = errors.New("no interaction in progress")

	// ErrItemNotFound is returned when an operation names an unknown item.
	ErrItemNotFound = errors.New("item not found on canvas")

	// ErrNotEditable is returned when an edit targets system-provided
	// content. Edit clicks on such items are ignored by contract.
	ErrNotEditable = errors.New("item content is not editable")
)

// Params configures an Engine.
type Params struct {
	// MinItemSize floors each dimension during a resize.
	MinItemSize float64

	// MaxItemSize caps each dimension during a resize. Zero means no cap.
	MaxItemSize float64
}

// Engine holds one editor session's canvas state: the ordered item
// collection and the single active interaction mode.
type Engine struct {
	items []domain.Item
	mode  Mode
	min   float64
	max   float64
}

// NewEngine creates an engine over an existing item collection (loaded from
// a saved page; nil for an empty canvas).
func NewEngine(items []domain.Item, p Params) *Engine {
	e := &Engine{
		items: make([]domain.Item, len(items)),
		mode:  Idle{},
		min:   p.MinItemSize,
		max:   p.MaxItemSize,
	}
	copy(e.items, items)
	return e
}

// Items returns a copy of the current item collection in placement order.
func (e *Engine) Items() []domain.Item {
	out := make([]domain.Item, len(e.items))
	copy(out, e.items)
	return out
}

// Mode returns the current interaction mode.
func (e *Engine) Mode() Mode { return e.mode }

// Item returns the item with the given id.
func (e *Engine) Item(id uuid.UUID) (domain.Item, error) {
	i := e.find(id)
	if i < 0 {
		return domain.Item{}, fmt.Errorf("item %s: %w", id, ErrItemNotFound)
	}
	return e.items[i], nil
}

// Place appends a new item to the collection. A fresh id is assigned when
// the caller did not set one; an explicit id must not collide with any
// existing item. Pre-existing items are left untouched.
func (e *Engine) Place(item domain.Item) (domain.Item, error) {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	} else if e.find(item.ID) >= 0 {
		return domain.Item{}, fmt.Errorf("item %s: %w", item.ID, domain.ErrAlreadyExists)
	}
	if err := item.Validate(); err != nil {
		return domain.Item{}, err
	}
	e.items = append(e.items, item)
	return item, nil
}

// Remove deletes the item from the collection. Removal is the item's
// destruction; if the item was engaged in the active interaction, the
// session returns to Idle.
func (e *Engine) Remove(id uuid.UUID) error {
	i := e.find(id)
	if i < 0 {
		return fmt.Errorf("item %s: %w", id, ErrItemNotFound)
	}
	if e.activeItem() == id {
		e.mode = Idle{}
	}
	e.items = append(e.items[:i], e.items[i+1:]...)
	return nil
}

// ---------------------------------------------------------------------------
// Drag
// ---------------------------------------------------------------------------

// BeginDrag starts a move gesture at the given canvas-local pointer position.
func (e *Engine) BeginDrag(id uuid.UUID, px, py float64) error {
	if _, ok := e.mode.(Idle); !ok {
		return ErrInteractionActive
	}
	i := e.find(id)
	if i < 0 {
		return fmt.Errorf("item %s: %w", id, ErrItemNotFound)
	}
	e.mode = Dragging{
		ItemID:  id,
		OffsetX: px - e.items[i].X,
		OffsetY: py - e.items[i].Y,
	}
	return nil
}

// DragTo updates the dragged item's position to pointer minus grab offset.
// There is no canvas-bound clamping: items may be dragged freely, including
// off-canvas.
func (e *Engine) DragTo(px, py float64) error {
	d, ok := e.mode.(Dragging)
	if !ok {
		return ErrNoInteraction
	}
	if !isFinite(px, py) {
		return domain.NewValidationError("pointer", "must be finite")
	}
	i := e.find(d.ItemID)
	e.items[i].X = px - d.OffsetX
	e.items[i].Y = py - d.OffsetY
	return nil
}

// EndDrag finishes the move gesture and returns the moved item so the
// caller can persist it.
func (e *Engine) EndDrag() (domain.Item, error) {
	d, ok := e.mode.(Dragging)
	if !ok {
		return domain.Item{}, ErrNoInteraction
	}
	e.mode = Idle{}
	return e.items[e.find(d.ItemID)], nil
}

// ---------------------------------------------------------------------------
// Resize
// ---------------------------------------------------------------------------

// BeginResize starts a resize gesture from the item's resize handle.
func (e *Engine) BeginResize(id uuid.UUID, px, py float64) error {
	if _, ok := e.mode.(Idle); !ok {
		return ErrInteractionActive
	}
	i := e.find(id)
	if i < 0 {
		return fmt.Errorf("item %s: %w", id, ErrItemNotFound)
	}
	e.mode = Resizing{
		ItemID:      id,
		StartWidth:  e.items[i].Width,
		StartHeight: e.items[i].Height,
		StartX:      px,
		StartY:      py,
	}
	return nil
}

// ResizeTo adds the pointer delta to the gesture's starting size, clamping
// each dimension to the configured [min, max] range.
func (e *Engine) ResizeTo(px, py float64) error {
	r, ok := e.mode.(Resizing)
	if !ok {
		return ErrNoInteraction
	}
	if !isFinite(px, py) {
		return domain.NewValidationError("pointer", "must be finite")
	}
	i := e.find(r.ItemID)
	e.items[i].Width = e.clampSize(r.StartWidth + (px - r.StartX))
	e.items[i].Height = e.clampSize(r.StartHeight + (py - r.StartY))
	return nil
}

func (e *Engine) clampSize(v float64) float64 {
	v = max(e.min, v)
	if e.max > 0 {
		v = min(e.max, v)
	}
	return v
}

// EndResize finishes the resize gesture and returns the resized item.
func (e *Engine) EndResize() (domain.Item, error) {
	r, ok := e.mode.(Resizing)
	if !ok {
		return domain.Item{}, ErrNoInteraction
	}
	e.mode = Idle{}
	return e.items[e.find(r.ItemID)], nil
}

// ---------------------------------------------------------------------------
// Rotate
// ---------------------------------------------------------------------------

// BeginRotate starts a rotate gesture: it records the angle from the item's
// center to the pointer, so later pointer positions yield a relative delta.
func (e *Engine) BeginRotate(id uuid.UUID, px, py float64) error {
	if _, ok := e.mode.(Idle); !ok {
		return ErrInteractionActive
	}
	i := e.find(id)
	if i < 0 {
		return fmt.Errorf("item %s: %w", id, ErrItemNotFound)
	}
	it := e.items[i]
	cx, cy := Center(it.X, it.Y, it.Width, it.Height)
	e.mode = Rotating{
		ItemID:        id,
		StartAngle:    AngleDegrees(cx, cy, px, py),
		StartRotation: it.Rotation,
	}
	return nil
}

// RotateTo sets the item's rotation to its starting rotation plus the
// angular delta since gesture start, normalized to (-180, 180].
func (e *Engine) RotateTo(px, py float64) error {
	r, ok := e.mode.(Rotating)
	if !ok {
		return ErrNoInteraction
	}
	if !isFinite(px, py) {
		return domain.NewValidationError("pointer", "must be finite")
	}
	i := e.find(r.ItemID)
	it := e.items[i]
	cx, cy := Center(it.X, it.Y, it.Width, it.Height)
	delta := AngleDegrees(cx, cy, px, py) - r.StartAngle
	e.items[i].Rotation = NormalizeDegrees(r.StartRotation + delta)
	return nil
}

// EndRotate finishes the rotate gesture and returns the rotated item.
func (e *Engine) EndRotate() (domain.Item, error) {
	r, ok := e.mode.(Rotating)
	if !ok {
		return domain.Item{}, ErrNoInteraction
	}
	e.mode = Idle{}
	return e.items[e.find(r.ItemID)], nil
}

// ---------------------------------------------------------------------------
// Text editing
// ---------------------------------------------------------------------------

// BeginEdit enters inline edit mode for an editable text item. At most one
// item is edited at a time.
func (e *Engine) BeginEdit(id uuid.UUID) error {
	if _, ok := e.mode.(Idle); !ok {
		return ErrInteractionActive
	}
	i := e.find(id)
	if i < 0 {
		return fmt.Errorf("item %s: %w", id, ErrItemNotFound)
	}
	if !e.items[i].Editable {
		return fmt.Errorf("item %s: %w", id, ErrNotEditable)
	}
	e.mode = Editing{ItemID: id}
	return nil
}

// CommitEdit stores the new content and exits edit mode, returning the
// updated item. The editable check at BeginEdit is re-asserted here so a
// non-editable item's content can never change through this path.
func (e *Engine) CommitEdit(content string) (domain.Item, error) {
	ed, ok := e.mode.(Editing)
	if !ok {
		return domain.Item{}, ErrNoInteraction
	}
	i := e.find(ed.ItemID)
	if !e.items[i].Editable {
		e.mode = Idle{}
		return domain.Item{}, fmt.Errorf("item %s: %w", ed.ItemID, ErrNotEditable)
	}
	e.items[i].Content = content
	e.mode = Idle{}
	return e.items[i], nil
}

// CancelEdit exits edit mode without touching the item's content.
func (e *Engine) CancelEdit() error {
	if _, ok := e.mode.(Editing); !ok {
		return ErrNoInteraction
	}
	e.mode = Idle{}
	return nil
}

// ---------------------------------------------------------------------------

func (e *Engine) find(id uuid.UUID) int {
	for i := range e.items {
		if e.items[i].ID == id {
			return i
		}
	}
	return -1
}

// activeItem returns the id engaged in the current interaction, or uuid.Nil.
func (e *Engine) activeItem() uuid.UUID {
	switch m := e.mode.(type) {
	case Dragging:
		return m.ItemID
	case Resizing:
		return m.ItemID
	case Rotating:
		return m.ItemID
	case Editing:
		return m.ItemID
	}
	return uuid.Nil
}
