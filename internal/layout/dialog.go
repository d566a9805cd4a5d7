package layout

import (
	"math"

	"github.com/1broseidon/floatwm/internal/geom"
)

// Dialog centers every window in a viewport at its preferred size,
// shrunk to fit when the viewport is small. It keeps no per-window
// state: every fit recomputes the centered rect from scratch. Moving and
// resizing are disabled by capability.
type Dialog struct {
	*Base
	viewport  geom.Rect
	preferred geom.Size
	margin    float64
	unwatch   func()
}

// NewDialog returns a dialog layout producing preferred-sized centered
// rects. A zero preferred dimension falls back to the default span.
func NewDialog(preferred geom.Size) *Dialog {
	if preferred.Width <= 0 {
		preferred.Width = defaultSpan
	}
	if preferred.Height <= 0 {
		preferred.Height = defaultSpan
	}
	return &Dialog{
		Base:      newBase(Caps{Transitions: true}),
		preferred: preferred,
		margin:    32,
	}
}

// Viewport returns the rect dialogs are centered in.
func (d *Dialog) Viewport() geom.Rect { return d.viewport }

// SetViewport moves the viewport and re-centers bound windows with a
// non-breaking update.
func (d *Dialog) SetViewport(r geom.Rect) {
	d.viewport = r
	d.updates.Publish(Change{Reason: "viewport"})
}

// SetPreferred changes the preferred dialog size, a non-breaking update.
func (d *Dialog) SetPreferred(s geom.Size) {
	d.preferred = s
	d.updates.Publish(Change{Reason: "preferred size"})
}

// SetMargin changes the viewport margin kept around shrunk dialogs.
func (d *Dialog) SetMargin(m float64) {
	d.margin = m
	d.updates.Publish(Change{Reason: "margin"})
}

// Bind tracks src as the viewport. Rebinding replaces the previous
// watcher.
func (d *Dialog) Bind(src SizeSource) {
	d.Unbind()
	d.SetViewport(src.Bounds())
	d.unwatch = src.Watch(func(r geom.Rect) {
		d.SetViewport(r)
	})
}

// Unbind detaches the current viewport source, if any.
func (d *Dialog) Unbind() {
	if d.unwatch != nil {
		d.unwatch()
		d.unwatch = nil
	}
}

// FitRect ignores the prior rect entirely and returns the centered rect.
func (d *Dialog) FitRect(geom.Rect) geom.Rect { return d.centered() }

// InitializeRect returns the centered rect regardless of index.
func (d *Dialog) InitializeRect(int) geom.Rect { return d.centered() }

func (d *Dialog) centered() geom.Rect {
	w := math.Min(d.preferred.Width, d.viewport.Width-d.margin)
	h := math.Min(d.preferred.Height, d.viewport.Height-d.margin)
	w = math.Max(w, 0)
	h = math.Max(h, 0)
	return geom.Rect{
		X:      d.viewport.X + (d.viewport.Width-w)/2,
		Y:      d.viewport.Y + (d.viewport.Height-h)/2,
		Width:  w,
		Height: h,
	}
}
