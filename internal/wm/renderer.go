package wm

import (
	"github.com/1broseidon/floatwm/internal/anim"
	"github.com/1broseidon/floatwm/internal/geom"
)

// Renderer is the boundary to a rendering host. The engine hands it
// padded pixel rects and transition descriptors; the host owns playback.
// A collection without a renderer stays fully functional, it just draws
// nothing.
type Renderer interface {
	// Apply places the window immediately. When a transition is already
	// playing for the window the host may glide instead of jumping.
	Apply(id int, rect geom.Rect, z int)
	// Play starts tr for the window, replacing any running playback, and
	// leaves the window at the transition's final frame.
	Play(id int, tr anim.Transition, z int)
	// Release detaches the window's visual, playing tr on the detached
	// remnant when non-zero.
	Release(id int, tr anim.Transition)
}
