// Package wm owns the window entities and their collection registry: id
// and key allocation, the z-order priority stack, layout binding with
// per-window overrides, and the broadcast protocol that re-fits or
// re-derives every window when policies change.
package wm

import (
	"time"

	"github.com/1broseidon/floatwm/internal/anim"
	"github.com/1broseidon/floatwm/internal/event"
	"github.com/1broseidon/floatwm/internal/geom"
	"github.com/1broseidon/floatwm/internal/layout"
)

type windowState int

const (
	stateUnbound windowState = iota
	stateBound
	stateDestroyed
)

// binding is the tagged active-layout variant: a window either inherits
// the collection's current layout or carries a private override.
type binding struct {
	override   layout.Layout
	isOverride bool
}

// Window is one managed panel: identity, rect, z-priority and an
// optional private layout override. The window owns its rect; layouts
// only derive new values for it.
type Window struct {
	id  int
	key string
	col *Collection

	// Props is an opaque host payload carried alongside the window.
	Props any

	rect    geom.Rect
	hasRect bool

	priority int
	bind     binding
	state    windowState

	// Last pixel rect handed to the renderer, the from-position of
	// switch transitions. transitionUntil marks when the most recent
	// playback runs out; updates landing before it re-target the glide
	// instead of snapping.
	lastPixel       geom.Rect
	hasPixel        bool
	transitionUntil time.Time

	dragging bool
	dragFrom geom.Rect
	dragDir  geom.Vector2

	unsubSwap   func()
	unsubUpdate func()
	unsubBreak  func()
	colDetach   func()

	// Layouts currently parking a rect for this window; swept on
	// destroy.
	storedIn map[layout.Layout]struct{}

	destroyed event.Feed[int]
}

// ID returns the dense collection-allocated id.
func (w *Window) ID() int { return w.id }

// Key returns the optional external alias, empty when unset.
func (w *Window) Key() string { return w.key }

// Rect returns the current layout-local rect.
func (w *Window) Rect() geom.Rect { return w.rect }

// Priority returns the 1-based z rank, higher is closer to the front.
func (w *Window) Priority() int { return w.priority }

// Destroyed reports whether the window reached its terminal state.
func (w *Window) Destroyed() bool { return w.state == stateDestroyed }

// Initialized reports whether Initialize has run.
func (w *Window) Initialized() bool { return w.state == stateBound }

// HasOverride reports whether a private layout shields this window from
// collection layout swaps.
func (w *Window) HasOverride() bool { return w.bind.isOverride }

// Dragging reports whether a gesture snapshot is active.
func (w *Window) Dragging() bool { return w.dragging }

// OnDestroyed registers fn to run once when the window reaches its
// terminal state. The returned cancel unregisters.
func (w *Window) OnDestroyed(fn func(id int)) (cancel func()) {
	return w.destroyed.Subscribe(fn)
}

// ActiveLayout resolves the tagged binding: the private override when
// set, the collection's current layout otherwise.
func (w *Window) ActiveLayout() layout.Layout {
	if w.bind.isOverride {
		return w.bind.override
	}
	return w.col.Layout()
}

// PixelRect returns the padded pixel rect the renderer sees for the
// current placement.
func (w *Window) PixelRect() geom.Rect {
	return w.ActiveLayout().PixelRect(w.rect)
}

func (w *Window) z() int { return w.col.zBase + w.priority }

// Initialize binds the window to its collection's event flow and places
// it: the supplied rect when one was given, the active layout's initial
// placement otherwise. Calling it again, or on a destroyed window, does
// nothing.
func (w *Window) Initialize() {
	if w.state != stateUnbound {
		return
	}
	w.state = stateBound
	w.unsubSwap = w.col.swaps.Subscribe(w.onParentSwap)

	active := w.ActiveLayout()
	w.attach(active)
	if !w.hasRect {
		w.rect = active.InitializeRect(w.id)
		w.hasRect = true
	}
	w.place(active.PixelRect(w.rect))
}

func (w *Window) attach(l layout.Layout) {
	l.AddWindow(w.id)
	w.unsubUpdate = l.Updates().Subscribe(w.onUpdate)
	w.unsubBreak = l.Breaks().Subscribe(w.onBreak)
}

func (w *Window) detachFeeds() {
	if w.unsubUpdate != nil {
		w.unsubUpdate()
		w.unsubUpdate = nil
	}
	if w.unsubBreak != nil {
		w.unsubBreak()
		w.unsubBreak = nil
	}
}

// SetLayout installs l as the window's private layout, or returns the
// window to the collection's layout when l is nil. Either way the window
// is re-laid-out and the change animates as a switch.
func (w *Window) SetLayout(l layout.Layout) {
	if w.state != stateBound {
		return
	}
	old := w.ActiveLayout()
	if l == nil {
		w.bind = binding{}
	} else {
		w.bind = binding{override: l, isOverride: true}
	}
	w.switchTo(old, w.ActiveLayout())
}

func (w *Window) onParentSwap(sw LayoutSwap) {
	if w.bind.isOverride {
		return
	}
	w.switchTo(sw.Old, sw.New)
}

// switchTo moves the window from one layout to another: the old layout
// parks the rect for a later return, the new one either hands the parked
// rect back or derives a fresh placement.
func (w *Window) switchTo(old, next layout.Layout) {
	// A re-layout invalidates any gesture snapshot.
	w.dragging = false

	if old != nil {
		w.detachFrom(old)
	}
	w.attachAndDerive(next)
}

func (w *Window) detachFrom(old layout.Layout) {
	old.StoreRect(w.id, w.rect)
	if old.Caps().Restore {
		w.storedIn[old] = struct{}{}
	}
	old.RemoveWindow(w.id)
	w.detachFeeds()
}

func (w *Window) attachAndDerive(next layout.Layout) {
	w.attach(next)
	if r, ok := next.TakeStoredRect(w.id); ok {
		delete(w.storedIn, next)
		w.setRect(r, true)
	} else {
		w.setRect(next.InitializeRect(w.id), true)
	}
}

func (w *Window) onUpdate(layout.Change) {
	w.setRect(w.ActiveLayout().FitRect(w.rect), w.midTransition())
}

// midTransition reports whether a played transition is still running.
func (w *Window) midTransition() bool {
	return w.col.now().Before(w.transitionUntil)
}

func (w *Window) onBreak(layout.Change) {
	active := w.ActiveLayout()
	if r, ok := active.TakeStoredRect(w.id); ok {
		delete(w.storedIn, active)
		w.setRect(r, true)
	} else {
		w.setRect(active.InitializeRect(w.id), true)
	}
}

// setRect commits a derived rect. Identical rects are dropped so
// continuous gestures and redundant broadcasts never restart a
// transition.
func (w *Window) setRect(r geom.Rect, animated bool) {
	if r == w.rect && w.hasPixel {
		return
	}
	w.rect = r
	w.hasRect = true
	px := w.ActiveLayout().PixelRect(r)
	if animated && w.ActiveLayout().Caps().Transitions {
		w.glide(px)
	} else {
		w.place(px)
	}
}

func (w *Window) place(px geom.Rect) {
	if w.col.renderer != nil {
		w.col.renderer.Apply(w.id, px, w.z())
	}
	w.lastPixel = px
	w.hasPixel = true
	w.transitionUntil = time.Time{}
}

func (w *Window) glide(px geom.Rect) {
	if w.col.renderer != nil && w.hasPixel {
		tr := anim.Movement(w.lastPixel, px, w.col.transitions.Switch)
		w.col.renderer.Play(w.id, tr, w.z())
		w.transitionUntil = w.col.now().Add(tr.Duration)
	} else if w.col.renderer != nil {
		w.col.renderer.Apply(w.id, px, w.z())
		w.transitionUntil = time.Time{}
	}
	w.lastPixel = px
	w.hasPixel = true
}

// StartDrag snapshots the rect a gesture works from. Gestures derive
// every new placement from this snapshot plus the cumulative offset, so
// a frame never re-enters initial placement.
func (w *Window) StartDrag() {
	if w.state != stateBound {
		return
	}
	w.dragging = true
	w.dragFrom = w.rect
	w.dragDir = geom.Vector2{}
}

// MoveBy applies a gesture frame: offset is cumulative from the
// snapshot, delta the movement within this frame. The delta's sign
// updates the clamp direction per axis.
func (w *Window) MoveBy(offset, delta geom.Vector2) {
	if w.state != stateBound || !w.dragging {
		return
	}
	w.dragDir.X = dirStep(w.dragDir.X, delta.X)
	w.dragDir.Y = dirStep(w.dragDir.Y, delta.Y)
	w.setRect(w.ActiveLayout().Move(w.dragFrom, offset, w.dragDir), false)
}

// ResizeBy applies a resize gesture frame with cumulative edge deltas
// from the snapshot.
func (w *Window) ResizeBy(edges geom.Edges) {
	if w.state != stateBound || !w.dragging {
		return
	}
	w.setRect(w.ActiveLayout().Resize(w.dragFrom, edges), false)
}

// EndDrag drops the gesture snapshot.
func (w *Window) EndDrag() {
	w.dragging = false
}

func dirStep(prev, delta float64) float64 {
	if delta > 0 {
		return 1
	}
	if delta < 0 {
		return -1
	}
	return prev
}

// Destroy detaches the window from everything it subscribed to, sweeps
// its parked rects, releases the visual with an exit transition and
// emits the terminal notification. Destroying twice is a no-op.
func (w *Window) Destroy() {
	if w.state == stateDestroyed {
		return
	}
	wasBound := w.state == stateBound
	w.state = stateDestroyed
	w.dragging = false

	if w.col.renderer != nil {
		var exit anim.Transition
		if wasBound && w.hasPixel && w.ActiveLayout().Caps().Transitions {
			exit = anim.Exit(w.lastPixel, w.col.transitions.Exit)
		}
		w.col.renderer.Release(w.id, exit)
	}

	if wasBound {
		w.ActiveLayout().RemoveWindow(w.id)
	}
	w.detachFeeds()
	if w.unsubSwap != nil {
		w.unsubSwap()
		w.unsubSwap = nil
	}

	for l := range w.storedIn {
		l.DropStoredRect(w.id)
	}
	w.storedIn = nil

	w.destroyed.Publish(w.id)
	w.destroyed = event.Feed[int]{}
}
