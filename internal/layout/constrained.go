package layout

import (
	"math"

	"github.com/1broseidon/floatwm/internal/geom"
)

// Constrained keeps every window inside a rectangular bound and inside a
// size range. The bound may be driven by an external SizeSource; every
// externally pushed bound change is breaking.
type Constrained struct {
	*Base
	bound       geom.Rect
	constraints SizeConstraints
	unwatch     func()
}

// NewConstrained returns a constrained layout with a zero bound. Callers
// set the bound directly or bind a size source.
func NewConstrained() *Constrained {
	return &Constrained{Base: NewBase()}
}

// Bound returns the current constraint bound.
func (c *Constrained) Bound() geom.Rect { return c.bound }

// SetBound replaces the constraint bound. A breaking change makes bound
// windows re-derive their rects; a non-breaking one re-fits them in
// place.
func (c *Constrained) SetBound(r geom.Rect, breaking bool) {
	c.bound = r
	if breaking {
		c.breaks.Publish(Change{Reason: "bound"})
	} else {
		c.updates.Publish(Change{Reason: "bound"})
	}
}

// Constraints returns the current size constraints.
func (c *Constrained) Constraints() SizeConstraints { return c.constraints }

// SetConstraints replaces the size constraints and re-fits bound windows.
func (c *Constrained) SetConstraints(sc SizeConstraints) {
	c.constraints = sc
	c.updates.Publish(Change{Reason: "size constraints"})
}

// Bind starts tracking src: the bound is re-derived immediately and on
// every subsequent source change, both as breaking changes. Rebinding
// replaces the previous watcher.
func (c *Constrained) Bind(src SizeSource) {
	c.Unbind()
	c.SetBound(src.Bounds(), true)
	c.unwatch = src.Watch(func(r geom.Rect) {
		c.SetBound(r, true)
	})
}

// Unbind detaches the current size source, if any.
func (c *Constrained) Unbind() {
	if c.unwatch != nil {
		c.unwatch()
		c.unwatch = nil
	}
}

// Move translates r by offset, then pins it inside the bound. On each
// axis the edge clamp matching the gesture direction runs last, so a
// rect that cannot satisfy both edges settles as far toward the gesture
// as the bound allows instead of rebounding off the far edge.
func (c *Constrained) Move(r geom.Rect, offset, direction geom.Vector2) geom.Rect {
	if !c.caps.Move {
		return r
	}
	moved := r.Translate(offset)
	moved.X = clampAxis(moved.X, moved.Width, c.bound.X, c.bound.Right(), direction.X)
	moved.Y = clampAxis(moved.Y, moved.Height, c.bound.Y, c.bound.Bottom(), direction.Y)
	return moved
}

func clampAxis(pos, size, lo, hi, dir float64) float64 {
	if dir < 0 {
		return math.Min(math.Max(pos, lo), hi-size)
	}
	return math.Max(math.Min(pos, hi-size), lo)
}

// Resize clamps the requested edge deltas against the size range, one
// edge at a time, applies them, then pulls any edge that escaped the
// bound back in by shrinking the same dimension. The opposite edge never
// moves to compensate.
func (c *Constrained) Resize(r geom.Rect, edges geom.Edges) geom.Rect {
	if !c.caps.Resize {
		return r
	}
	out := r.Resize(c.clampEdges(r, edges))
	return c.clampToBound(out)
}

func (c *Constrained) clampEdges(r geom.Rect, e geom.Edges) geom.Edges {
	sc := c.constraints
	e.Left = clampRange(e.Left, r.Width-sc.maxWidth(), r.Width-sc.MinWidth)
	e.Right = clampRange(e.Right, sc.MinWidth-r.Width, sc.maxWidth()-r.Width)
	e.Top = clampRange(e.Top, r.Height-sc.maxHeight(), r.Height-sc.MinHeight)
	e.Bottom = clampRange(e.Bottom, sc.MinHeight-r.Height, sc.maxHeight()-r.Height)
	return e
}

func (c *Constrained) clampToBound(r geom.Rect) geom.Rect {
	b := c.bound
	if r.X < b.X {
		r.Width -= b.X - r.X
		r.X = b.X
	}
	if r.Right() > b.Right() {
		r.Width = b.Right() - r.X
	}
	if r.Y < b.Y {
		r.Height -= b.Y - r.Y
		r.Y = b.Y
	}
	if r.Bottom() > b.Bottom() {
		r.Height = b.Bottom() - r.Y
	}
	return r
}

// FitRect shrinks r to the bound's size when oversized, then clamps its
// position so all four edges lie inside the bound. Applying it twice
// yields the same rect.
func (c *Constrained) FitRect(r geom.Rect) geom.Rect {
	r.Width = math.Min(r.Width, c.bound.Width)
	r.Height = math.Min(r.Height, c.bound.Height)
	r.X = clampRange(r.X, c.bound.X, c.bound.Right()-r.Width)
	r.Y = clampRange(r.Y, c.bound.Y, c.bound.Bottom()-r.Height)
	return r
}

// InitializeRect cascades new windows inward and downward from the
// bound's top-right corner, sized by the constraints' initial size.
func (c *Constrained) InitializeRect(id int) geom.Rect {
	step := float64(cornerCascade * c.IndexOf(id))
	size := c.constraints.InitialSize()
	r := geom.Rect{
		X:      c.bound.Right() - size.Width - step,
		Y:      c.bound.Y + step,
		Width:  size.Width,
		Height: size.Height,
	}
	return c.FitRect(r)
}
