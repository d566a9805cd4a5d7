package wm

import (
	"testing"
	"time"

	"github.com/1broseidon/floatwm/internal/geom"
	"github.com/1broseidon/floatwm/internal/layout"
)

func newConstrainedFixture() *layout.Constrained {
	l := layout.NewConstrained()
	l.SetBound(geom.Rect{Width: 1000, Height: 800}, true)
	l.SetConstraints(layout.SizeConstraints{
		MinWidth: 200, MinHeight: 200,
		MaxWidth: 300, MaxHeight: 300,
	})
	return l
}

func TestInitializePlacesSuppliedRect(t *testing.T) {
	r := &fakeRenderer{}
	c := NewCollection(Config{Renderer: r})

	rect := geom.Rect{X: 30, Y: 40, Width: 120, Height: 80}
	w := c.NewWindow(WindowOptions{Rect: &rect})
	w.Initialize()

	if w.Rect() != rect {
		t.Fatalf("rect = %+v, want supplied %+v", w.Rect(), rect)
	}
	got := r.last()
	if got.kind != "apply" || got.rect != rect {
		t.Fatalf("renderer saw %s %+v, want apply %+v", got.kind, got.rect, rect)
	}
}

func TestInitializeDerivesPlacement(t *testing.T) {
	c := NewCollection(Config{})
	w0 := c.NewWindow(WindowOptions{})
	w0.Initialize()
	w1 := c.NewWindow(WindowOptions{})
	w1.Initialize()

	// Free-form cascade: 36 per registry slot.
	if want := (geom.Rect{X: 0, Y: 0, Width: 100, Height: 100}); w0.Rect() != want {
		t.Fatalf("first placement = %+v, want %+v", w0.Rect(), want)
	}
	if want := (geom.Rect{X: 36, Y: 36, Width: 100, Height: 100}); w1.Rect() != want {
		t.Fatalf("second placement = %+v, want %+v", w1.Rect(), want)
	}
}

func TestInitializeTwiceIsNoop(t *testing.T) {
	r := &fakeRenderer{}
	c := NewCollection(Config{Renderer: r})
	w := c.NewWindow(WindowOptions{})
	w.Initialize()

	n := len(r.ops)
	w.Initialize()
	if len(r.ops) != n {
		t.Fatalf("second Initialize re-placed the window")
	}
}

func TestOverrideShieldsParentSwap(t *testing.T) {
	a := layout.NewBase()
	b := layout.NewBase()
	c := NewCollection(Config{Layout: a})

	override := layout.NewBase()
	w := c.NewWindow(WindowOptions{})
	w.Initialize()
	w.SetLayout(override)
	rect := w.Rect()

	c.SetLayout(b)

	if w.ActiveLayout() != override {
		t.Fatalf("active layout changed under an override")
	}
	if w.Rect() != rect {
		t.Fatalf("rect = %+v after parent swap, want untouched %+v", w.Rect(), rect)
	}
}

func TestSetLayoutNilRestoresInherited(t *testing.T) {
	c := NewCollection(Config{})
	w := c.NewWindow(WindowOptions{})
	w.Initialize()
	inherited := w.Rect()

	w.SetLayout(layout.NewBase())
	w.SetLayout(nil)

	if w.HasOverride() {
		t.Fatalf("override still set after clearing")
	}
	if w.ActiveLayout() != c.Layout() {
		t.Fatalf("active layout is not the collection layout")
	}
	// The collection layout parked the rect when the override took
	// over, so clearing hands it back exactly.
	if w.Rect() != inherited {
		t.Fatalf("rect = %+v, want restored %+v", w.Rect(), inherited)
	}
}

func TestUpdateRefitsInPlace(t *testing.T) {
	r := &fakeRenderer{}
	l := newConstrainedFixture()
	c := NewCollection(Config{Layout: l, Renderer: r})

	rect := geom.Rect{X: 790, Y: 590, Width: 200, Height: 200}
	w := c.NewWindow(WindowOptions{Rect: &rect})
	w.Initialize()

	l.SetBound(geom.Rect{Width: 500, Height: 400}, false)

	want := geom.Rect{X: 300, Y: 200, Width: 200, Height: 200}
	if w.Rect() != want {
		t.Fatalf("rect after shrink = %+v, want %+v", w.Rect(), want)
	}
	if got := r.last(); got.kind != "apply" {
		t.Fatalf("smooth update rendered as %s, want apply", got.kind)
	}
}

func TestBreakRederivesWithTransition(t *testing.T) {
	r := &fakeRenderer{}
	l := newConstrainedFixture()
	c := NewCollection(Config{Layout: l, Renderer: r})

	rect := geom.Rect{X: 100, Y: 100, Width: 250, Height: 250}
	w := c.NewWindow(WindowOptions{Rect: &rect})
	w.Initialize()

	l.SetBound(geom.Rect{Width: 600, Height: 600}, true)

	// Fresh derivation: top-right cascade of the new bound.
	want := geom.Rect{X: 400, Y: 0, Width: 200, Height: 200}
	if w.Rect() != want {
		t.Fatalf("rect after break = %+v, want %+v", w.Rect(), want)
	}
	if got := r.last(); got.kind != "play" {
		t.Fatalf("break rendered as %s, want play", got.kind)
	}
}

func TestUpdateMidTransitionKeepsGliding(t *testing.T) {
	t0 := time.Now()
	r := &fakeRenderer{}
	l := newConstrainedFixture()
	c := NewCollection(Config{Layout: l, Renderer: r})
	c.now = func() time.Time { return t0 }

	rect := geom.Rect{X: 100, Y: 100, Width: 250, Height: 250}
	w := c.NewWindow(WindowOptions{Rect: &rect})
	w.Initialize()

	l.SetBound(geom.Rect{Width: 600, Height: 600}, true)
	if got := r.last(); got.kind != "play" {
		t.Fatalf("break rendered as %s, want play", got.kind)
	}

	// An update landing while the switch glide still runs re-targets
	// the playback instead of snapping.
	l.SetBound(geom.Rect{Width: 500, Height: 500}, false)
	if got := r.last(); got.kind != "play" {
		t.Fatalf("mid-transition update rendered as %s, want play", got.kind)
	}

	// Once the glide has run out, updates land immediately again.
	c.now = func() time.Time { return t0.Add(time.Second) }
	l.SetBound(geom.Rect{Width: 450, Height: 450}, false)
	if got := r.last(); got.kind != "apply" {
		t.Fatalf("settled update rendered as %s, want apply", got.kind)
	}
}

func TestDragMovesFromSnapshot(t *testing.T) {
	c := NewCollection(Config{})
	rect := geom.Rect{X: 10, Y: 10, Width: 100, Height: 100}
	w := c.NewWindow(WindowOptions{Rect: &rect})
	w.Initialize()

	w.StartDrag()
	w.MoveBy(geom.Vector2{X: 30}, geom.Vector2{X: 30})
	if want := (geom.Rect{X: 40, Y: 10, Width: 100, Height: 100}); w.Rect() != want {
		t.Fatalf("after first frame rect = %+v, want %+v", w.Rect(), want)
	}

	// The offset is cumulative from the snapshot, not from the last
	// frame. 10+50 = 60, not 40+50.
	w.MoveBy(geom.Vector2{X: 50, Y: 5}, geom.Vector2{X: 20, Y: 5})
	if want := (geom.Rect{X: 60, Y: 15, Width: 100, Height: 100}); w.Rect() != want {
		t.Fatalf("after second frame rect = %+v, want %+v", w.Rect(), want)
	}
	w.EndDrag()
	if w.Dragging() {
		t.Fatalf("still dragging after EndDrag")
	}
}

func TestDragPinsThenFollowsBack(t *testing.T) {
	l := newConstrainedFixture()
	c := NewCollection(Config{Layout: l})
	rect := geom.Rect{X: 700, Y: 0, Width: 250, Height: 250}
	w := c.NewWindow(WindowOptions{Rect: &rect})
	w.Initialize()

	w.StartDrag()
	// Raw 900 exceeds 1000-250, the trailing edge pins at x=750.
	w.MoveBy(geom.Vector2{X: 200}, geom.Vector2{X: 200})
	if w.Rect().X != 750 {
		t.Fatalf("x = %v, want pinned 750", w.Rect().X)
	}

	// Reversing keeps the window pinned while the raw position is still
	// outside, then follows the pointer the moment it comes back in.
	w.MoveBy(geom.Vector2{X: 170}, geom.Vector2{X: -30})
	if w.Rect().X != 750 {
		t.Fatalf("x = %v after partial reverse, want 750", w.Rect().X)
	}
	w.MoveBy(geom.Vector2{X: 20}, geom.Vector2{X: -150})
	if w.Rect().X != 720 {
		t.Fatalf("x = %v, want 720", w.Rect().X)
	}
}

func TestMoveRequiresDragSnapshot(t *testing.T) {
	c := NewCollection(Config{})
	rect := geom.Rect{X: 10, Y: 10, Width: 100, Height: 100}
	w := c.NewWindow(WindowOptions{Rect: &rect})
	w.Initialize()

	w.MoveBy(geom.Vector2{X: 50}, geom.Vector2{X: 50})
	if w.Rect() != rect {
		t.Fatalf("MoveBy without StartDrag moved the window to %+v", w.Rect())
	}
}

func TestLayoutSwitchInvalidatesDrag(t *testing.T) {
	c := NewCollection(Config{})
	w := c.NewWindow(WindowOptions{})
	w.Initialize()

	w.StartDrag()
	c.SetLayout(layout.NewBase())

	if w.Dragging() {
		t.Fatalf("gesture survived a layout switch")
	}
	rect := w.Rect()
	w.MoveBy(geom.Vector2{X: 50}, geom.Vector2{X: 50})
	if w.Rect() != rect {
		t.Fatalf("stale gesture frame still applied")
	}
}

func TestResizeByFromSnapshot(t *testing.T) {
	l := newConstrainedFixture()
	c := NewCollection(Config{Layout: l})
	rect := geom.Rect{X: 100, Y: 100, Width: 250, Height: 250}
	w := c.NewWindow(WindowOptions{Rect: &rect})
	w.Initialize()

	w.StartDrag()
	w.ResizeBy(geom.Edges{Right: 500})
	if w.Rect().Width != 300 {
		t.Fatalf("width = %v, want clamped 300", w.Rect().Width)
	}

	// Each frame resizes the snapshot, so backing off shrinks again.
	w.ResizeBy(geom.Edges{Right: 10})
	if w.Rect().Width != 260 {
		t.Fatalf("width = %v, want snapshot 250 + 10", w.Rect().Width)
	}
}

func TestRedundantFrameSkipsRender(t *testing.T) {
	r := &fakeRenderer{}
	c := NewCollection(Config{Renderer: r})
	rect := geom.Rect{X: 10, Y: 10, Width: 100, Height: 100}
	w := c.NewWindow(WindowOptions{Rect: &rect})
	w.Initialize()

	n := len(r.ops)
	w.StartDrag()
	w.MoveBy(geom.Vector2{}, geom.Vector2{})
	if len(r.ops) != n {
		t.Fatalf("identical rect reached the renderer")
	}
}

func TestDestroySweepsParkedRects(t *testing.T) {
	r := &fakeRenderer{}
	a := layout.NewBase()
	b := layout.NewBase()
	c := NewCollection(Config{Layout: a, Renderer: r})

	rect := geom.Rect{X: 10, Y: 10, Width: 50, Height: 50}
	w := c.NewWindow(WindowOptions{Rect: &rect})
	w.Initialize()
	id := w.ID()
	c.SetLayout(b)

	var notified []int
	w.OnDestroyed(func(id int) { notified = append(notified, id) })

	w.Destroy()

	if !w.Destroyed() || c.Len() != 0 {
		t.Fatalf("destroyed = %v, len = %d", w.Destroyed(), c.Len())
	}
	if len(notified) != 1 || notified[0] != id {
		t.Fatalf("notifications = %v, want [%d]", notified, id)
	}
	if got := r.last(); got.kind != "release" {
		t.Fatalf("renderer saw %s, want release", got.kind)
	}
	// The rect parked in the first layout is swept, not left behind.
	if _, ok := a.TakeStoredRect(id); ok {
		t.Fatalf("parked rect survived destroy")
	}

	n := len(r.ops)
	w.Destroy()
	if len(r.ops) != n || len(notified) != 1 {
		t.Fatalf("second Destroy had side effects")
	}
}

func TestDestroyBeforeInitialize(t *testing.T) {
	r := &fakeRenderer{}
	c := NewCollection(Config{Renderer: r})
	w := c.NewWindow(WindowOptions{})
	w.Destroy()

	if c.Len() != 0 {
		t.Fatalf("unbound window still registered after destroy")
	}
	if got := r.last(); got.kind != "release" || !got.tr.IsZero() {
		t.Fatalf("release = %s with transition %v, want bare release", got.kind, got.tr)
	}
}
