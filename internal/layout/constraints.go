package layout

import (
	"math"

	"github.com/1broseidon/floatwm/internal/geom"
)

// SizeConstraints bounds every resize and clamp of a constrained layout
// and suggests an initial window size. Max values of zero or below mean
// unbounded; zero suggestions fall back to the minimum. Units follow the
// owning layout (pixels, or cells under a grid).
type SizeConstraints struct {
	MinWidth  float64
	MinHeight float64
	MaxWidth  float64
	MaxHeight float64

	SuggestionWidth  float64
	SuggestionHeight float64
}

func (s SizeConstraints) maxWidth() float64 {
	if s.MaxWidth <= 0 {
		return math.Inf(1)
	}
	return s.MaxWidth
}

func (s SizeConstraints) maxHeight() float64 {
	if s.MaxHeight <= 0 {
		return math.Inf(1)
	}
	return s.MaxHeight
}

// InitialSize resolves the placement size for a new window: the
// suggestion when present, else the minimum, else the default span.
func (s SizeConstraints) InitialSize() geom.Size {
	w := s.SuggestionWidth
	if w <= 0 {
		w = s.MinWidth
	}
	if w <= 0 {
		w = defaultSpan
	}
	h := s.SuggestionHeight
	if h <= 0 {
		h = s.MinHeight
	}
	if h <= 0 {
		h = defaultSpan
	}
	return geom.Size{Width: w, Height: h}
}

// clampRange pins v into [lo, hi]. When lo exceeds hi the lower bound
// wins; min/max inversions are left to config validation.
func clampRange(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
