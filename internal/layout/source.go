package layout

import (
	"github.com/1broseidon/floatwm/internal/event"
	"github.com/1broseidon/floatwm/internal/geom"
)

// SizeSource is an external object whose rectangle drives a layout's
// bound: a monitor work area, a resizable viewport, or a fixed rect.
type SizeSource interface {
	Bounds() geom.Rect
	// Watch registers fn to run on every bounds change and returns a
	// cancel function that detaches it.
	Watch(fn func(geom.Rect)) (cancel func())
}

// Bindable is implemented by layouts whose geometry tracks a SizeSource.
// Bind is idempotent: rebinding replaces the previous watcher. Unbind
// fully detaches and is safe to call when nothing is bound.
type Bindable interface {
	Bind(src SizeSource)
	Unbind()
}

// StaticSource is a SizeSource backed by a plain rect. SetBounds moves
// the rect and notifies watchers; hosts use it for fixed bounds and
// tests use it to drive resize flows.
type StaticSource struct {
	rect geom.Rect
	feed event.Feed[geom.Rect]
}

// NewStaticSource returns a source reporting r.
func NewStaticSource(r geom.Rect) *StaticSource {
	return &StaticSource{rect: r}
}

func (s *StaticSource) Bounds() geom.Rect { return s.rect }

// SetBounds replaces the rect and fires every watcher with the new value.
func (s *StaticSource) SetBounds(r geom.Rect) {
	s.rect = r
	s.feed.Publish(r)
}

func (s *StaticSource) Watch(fn func(geom.Rect)) (cancel func()) {
	return s.feed.Subscribe(fn)
}
