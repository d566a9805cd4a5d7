package wm

import (
	"log/slog"
	"time"

	"github.com/1broseidon/floatwm/internal/anim"
	"github.com/1broseidon/floatwm/internal/event"
	"github.com/1broseidon/floatwm/internal/geom"
	"github.com/1broseidon/floatwm/internal/layout"
)

// LayoutSwap is broadcast to every window when the collection's layout
// changes.
type LayoutSwap struct {
	Old layout.Layout
	New layout.Layout
}

// Transitions holds the timing specs windows animate with.
type Transitions struct {
	Switch anim.Spec
	Exit   anim.Spec
}

// DefaultTransitions returns the stock timings.
func DefaultTransitions() Transitions {
	return Transitions{
		Switch: anim.Spec{Duration: 220 * time.Millisecond, Easing: anim.EaseInOut},
		Exit:   anim.Spec{Duration: 150 * time.Millisecond, Easing: anim.EaseOut},
	}
}

// Config configures a collection. Zero fields fall back to a free-form
// layout, default transitions and slog's default logger.
type Config struct {
	Layout      layout.Layout
	Renderer    Renderer
	ZBase       int
	Transitions Transitions
	Logger      *slog.Logger
}

// Collection is the window registry: id and key allocation, the
// priority stack, the shared current layout and the size source driving
// it. Not safe for concurrent use; the owner serializes.
type Collection struct {
	logger      *slog.Logger
	renderer    Renderer
	transitions Transitions
	zBase       int
	now         func() time.Time

	byID    map[int]*Window
	byKey   map[string]*Window
	order   []*Window
	current layout.Layout
	source  layout.SizeSource

	swaps event.Feed[LayoutSwap]
}

// NewCollection returns an empty collection.
func NewCollection(cfg Config) *Collection {
	if cfg.Layout == nil {
		cfg.Layout = layout.NewBase()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Transitions == (Transitions{}) {
		cfg.Transitions = DefaultTransitions()
	}
	return &Collection{
		logger:      cfg.Logger,
		renderer:    cfg.Renderer,
		transitions: cfg.Transitions,
		zBase:       cfg.ZBase,
		now:         time.Now,
		byID:        make(map[int]*Window),
		byKey:       make(map[string]*Window),
		current:     cfg.Layout,
	}
}

// WindowOptions carries the optional pieces of a new window.
type WindowOptions struct {
	// Key registers an external alias for lookups alongside the id.
	Key string
	// Rect supplies the initial rect; without one the active layout
	// derives a placement at Initialize time.
	Rect *geom.Rect
	// Props is an opaque host payload.
	Props any
}

// NewWindow allocates a window at the front of the priority stack. The
// id is one past the highest live id, so ids of destroyed windows below
// the maximum are never handed out again. The window starts unbound;
// call Initialize to place it.
func (c *Collection) NewWindow(opts WindowOptions) *Window {
	w := &Window{
		id:       c.nextID(),
		key:      opts.Key,
		col:      c,
		Props:    opts.Props,
		storedIn: make(map[layout.Layout]struct{}),
	}
	if opts.Rect != nil {
		w.rect = *opts.Rect
		w.hasRect = true
	}

	c.byID[w.id] = w
	if opts.Key != "" {
		if prev, ok := c.byKey[opts.Key]; ok {
			c.logger.Warn("window key rebound", "key", opts.Key, "previous_id", prev.id, "id", w.id)
		}
		c.byKey[opts.Key] = w
	}
	c.order = append(c.order, w)
	w.priority = len(c.order)
	w.colDetach = w.destroyed.Subscribe(func(int) { c.drop(w) })
	return w
}

func (c *Collection) nextID() int {
	next := 0
	for id := range c.byID {
		if id >= next {
			next = id + 1
		}
	}
	return next
}

func (c *Collection) drop(w *Window) {
	delete(c.byID, w.id)
	if w.key != "" && c.byKey[w.key] == w {
		delete(c.byKey, w.key)
	}
	for i, win := range c.order {
		if win == w {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// GetWindow looks a window up by id.
func (c *Collection) GetWindow(id int) (*Window, bool) {
	w, ok := c.byID[id]
	return w, ok
}

// GetWindowByKey looks a window up by its alias.
func (c *Collection) GetWindowByKey(key string) (*Window, bool) {
	w, ok := c.byKey[key]
	return w, ok
}

// Windows returns the priority stack back to front.
func (c *Collection) Windows() []*Window {
	out := make([]*Window, len(c.order))
	copy(out, c.order)
	return out
}

// Len reports the number of live windows.
func (c *Collection) Len() int { return len(c.byID) }

// Layout returns the collection's current layout.
func (c *Collection) Layout() layout.Layout { return c.current }

// SetTransitions replaces the timing specs used for animations from now
// on. Running playback is unaffected.
func (c *Collection) SetTransitions(t Transitions) {
	if t == (Transitions{}) {
		t = DefaultTransitions()
	}
	c.transitions = t
}

// ZBase returns the z offset added under every priority.
func (c *Collection) ZBase() int { return c.zBase }

// BringToFront moves w to the front of the stack and renumbers every
// priority to its 1-based stack index. Re-fronting the front window is
// a no-op.
func (c *Collection) BringToFront(w *Window) {
	if w == nil || len(c.order) == 0 || c.order[len(c.order)-1] == w {
		return
	}
	pos := -1
	for i, win := range c.order {
		if win == w {
			pos = i
			break
		}
	}
	if pos < 0 {
		return
	}
	c.order = append(c.order[:pos], c.order[pos+1:]...)
	c.order = append(c.order, w)

	for i, win := range c.order {
		win.priority = i + 1
		if win.hasPixel && c.renderer != nil {
			c.renderer.Apply(win.id, win.lastPixel, win.z())
		}
	}
}

// SetLayout swaps the collection layout: the size source moves from the
// old layout to the new one, the new bound is derived, then the swap is
// broadcast so every window without an override re-lays itself out.
func (c *Collection) SetLayout(l layout.Layout) {
	if l == nil {
		c.logger.Warn("ignoring nil collection layout")
		return
	}
	if l == c.current {
		return
	}
	old := c.current
	if c.source != nil {
		if b, ok := old.(layout.Bindable); ok {
			b.Unbind()
		}
		if b, ok := l.(layout.Bindable); ok {
			b.Bind(c.source)
		}
	}
	c.current = l
	c.swaps.Publish(LayoutSwap{Old: old, New: l})
}

// BindSource installs the size source driving bindable layouts. A nil
// source unbinds.
func (c *Collection) BindSource(src layout.SizeSource) {
	if src == nil {
		c.UnbindSource()
		return
	}
	c.source = src
	if b, ok := c.current.(layout.Bindable); ok {
		b.Bind(src)
	}
}

// UnbindSource detaches the current size source, if any.
func (c *Collection) UnbindSource() {
	if b, ok := c.current.(layout.Bindable); ok {
		b.Unbind()
	}
	c.source = nil
}

// Source returns the bound size source, nil when none.
func (c *Collection) Source() layout.SizeSource { return c.source }

// Adopt transfers a window from its current collection into this one
// under a fresh id, carrying parked rects over to the new id. Adopting
// a window the collection already owns is a warned no-op.
func (c *Collection) Adopt(w *Window) {
	if w == nil {
		return
	}
	if w.col == c {
		c.logger.Warn("ignoring self transfer", "id", w.id)
		return
	}
	if w.state == stateDestroyed {
		c.logger.Warn("ignoring transfer of destroyed window", "id", w.id)
		return
	}

	oldCol := w.col

	// Detach from the old layout while the old id is still registered
	// there.
	if w.state == stateBound {
		w.dragging = false
		w.detachFrom(w.ActiveLayout())
	}
	if w.colDetach != nil {
		w.colDetach()
		w.colDetach = nil
	}
	if w.unsubSwap != nil {
		w.unsubSwap()
		w.unsubSwap = nil
	}
	oldCol.drop(w)

	oldID := w.id
	w.col = c
	w.id = c.nextID()

	// Parked rects follow the window to its new id.
	for l := range w.storedIn {
		if r, ok := l.TakeStoredRect(oldID); ok {
			l.StoreRect(w.id, r)
		}
	}

	c.byID[w.id] = w
	if w.key != "" {
		if _, taken := c.byKey[w.key]; taken {
			c.logger.Warn("dropping window key on transfer", "key", w.key, "id", w.id)
			w.key = ""
		} else {
			c.byKey[w.key] = w
		}
	}
	c.order = append(c.order, w)
	w.priority = len(c.order)
	w.colDetach = w.destroyed.Subscribe(func(int) { c.drop(w) })

	if w.state == stateBound {
		w.unsubSwap = c.swaps.Subscribe(w.onParentSwap)
		w.attachAndDerive(w.ActiveLayout())
	}
}
