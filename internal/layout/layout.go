// Package layout implements the pluggable geometry policies windows are
// positioned under: a free-form base, a bounding-box constrained policy, a
// grid-snapped policy layered over the constrained one, and a centered
// dialog policy. A layout holds policy only; window rects live on the
// windows, except for the one-shot restore arena used across layout
// switches.
//
// Layouts are not safe for concurrent use; the owner serializes access.
package layout

import (
	"github.com/1broseidon/floatwm/internal/event"
	"github.com/1broseidon/floatwm/internal/geom"
)

// Placement defaults shared by the policies.
const (
	cascadeStep   = 36
	cornerCascade = 32
	defaultSpan   = 100
)

// Change describes a policy modification broadcast to bound windows.
// Reason is free text for diagnostics only.
type Change struct {
	Reason string
}

// Caps declares which operations a layout permits. Move and Resize gate
// gestures, Transitions gates animated placement, Restore gates the
// cross-switch rect memory.
type Caps struct {
	Move        bool
	Resize      bool
	Transitions bool
	Restore     bool
}

// Layout is a geometry policy shared by any number of windows. Move,
// Resize, FitRect and InitializeRect are pure with respect to window
// state: they derive rects, the caller stores them.
type Layout interface {
	Caps() Caps

	// Move translates r by offset. direction carries the gesture sign per
	// axis so constrained policies know which edge to clamp last.
	Move(r geom.Rect, offset, direction geom.Vector2) geom.Rect
	// Resize applies signed per-edge deltas to r.
	Resize(r geom.Rect, edges geom.Edges) geom.Rect
	// FitRect reconciles an externally supplied rect against the current
	// policy, for example after the policy's bound shrank.
	FitRect(r geom.Rect) geom.Rect
	// InitializeRect derives a first placement for a window that has no
	// stored rect, keyed by the window's position in the registry.
	InitializeRect(id int) geom.Rect
	// PixelRect maps a layout-local rect to the padded pixel rect the
	// rendering host consumes. Hosts never read the raw rect.
	PixelRect(r geom.Rect) geom.Rect

	Padding() geom.Edges
	SetPadding(geom.Edges)

	// AddWindow and RemoveWindow maintain the registry of bound windows.
	// Registry order is insertion order and keys auto-placement.
	AddWindow(id int)
	RemoveWindow(id int)
	// IndexOf returns the window's registry position, or the slot it
	// would occupy if bound now.
	IndexOf(id int) int

	// StoreRect parks a rect for a detaching window, TakeStoredRect
	// consumes it on reattach, DropStoredRect discards it. All three are
	// no-ops when the Restore cap is off.
	StoreRect(id int, r geom.Rect)
	TakeStoredRect(id int) (geom.Rect, bool)
	DropStoredRect(id int)

	// Updates carries non-breaking changes: bound windows re-fit in
	// place. Breaks carries breaking changes: bound windows re-derive
	// their rect and play a switch transition.
	Updates() *event.Feed[Change]
	Breaks() *event.Feed[Change]
}

// Base is the free-form policy and the common core of the
// specializations: registry, restore arena, padding and the two change
// feeds. New windows cascade diagonally at a fixed step.
type Base struct {
	caps    Caps
	padding geom.Edges
	windows []int
	stored  map[int]geom.Rect
	updates event.Feed[Change]
	breaks  event.Feed[Change]
}

// NewBase returns a free-form layout with every capability enabled.
func NewBase() *Base {
	return &Base{
		caps:   Caps{Move: true, Resize: true, Transitions: true, Restore: true},
		stored: make(map[int]geom.Rect),
	}
}

func newBase(caps Caps) *Base {
	return &Base{caps: caps, stored: make(map[int]geom.Rect)}
}

func (b *Base) Caps() Caps { return b.caps }

func (b *Base) Move(r geom.Rect, offset, _ geom.Vector2) geom.Rect {
	if !b.caps.Move {
		return r
	}
	return r.Translate(offset)
}

func (b *Base) Resize(r geom.Rect, edges geom.Edges) geom.Rect {
	if !b.caps.Resize {
		return r
	}
	return r.Resize(edges)
}

// FitRect is the identity for the free-form policy.
func (b *Base) FitRect(r geom.Rect) geom.Rect { return r }

func (b *Base) InitializeRect(id int) geom.Rect {
	step := float64(cascadeStep * b.IndexOf(id))
	return geom.Rect{X: step, Y: step, Width: defaultSpan, Height: defaultSpan}
}

func (b *Base) PixelRect(r geom.Rect) geom.Rect {
	return padRect(r, b.padding)
}

func (b *Base) Padding() geom.Edges { return b.padding }

// SetPadding installs a new pixel padding and notifies bound windows with
// a non-breaking update.
func (b *Base) SetPadding(p geom.Edges) {
	b.padding = p
	b.updates.Publish(Change{Reason: "padding"})
}

func (b *Base) AddWindow(id int) {
	for _, w := range b.windows {
		if w == id {
			return
		}
	}
	b.windows = append(b.windows, id)
}

func (b *Base) RemoveWindow(id int) {
	for i, w := range b.windows {
		if w == id {
			b.windows = append(b.windows[:i], b.windows[i+1:]...)
			return
		}
	}
}

func (b *Base) IndexOf(id int) int {
	for i, w := range b.windows {
		if w == id {
			return i
		}
	}
	return len(b.windows)
}

// Windows returns the registry in insertion order.
func (b *Base) Windows() []int {
	out := make([]int, len(b.windows))
	copy(out, b.windows)
	return out
}

func (b *Base) StoreRect(id int, r geom.Rect) {
	if !b.caps.Restore {
		return
	}
	b.stored[id] = r
}

func (b *Base) TakeStoredRect(id int) (geom.Rect, bool) {
	if !b.caps.Restore {
		return geom.Rect{}, false
	}
	r, ok := b.stored[id]
	if ok {
		delete(b.stored, id)
	}
	return r, ok
}

func (b *Base) DropStoredRect(id int) {
	delete(b.stored, id)
}

func (b *Base) Updates() *event.Feed[Change] { return &b.updates }
func (b *Base) Breaks() *event.Feed[Change]  { return &b.breaks }

// padRect applies a padding edge inward.
func padRect(r geom.Rect, p geom.Edges) geom.Rect {
	return geom.Rect{
		X:      r.X + p.Left,
		Y:      r.Y + p.Top,
		Width:  r.Width - p.Left - p.Right,
		Height: r.Height - p.Top - p.Bottom,
	}
}
