// Package geom provides the rectangle algebra shared by layout policies,
// the window collection and the rendering hosts. Coordinates are float64
// in whatever unit the owning layout defines (pixels or grid cells).
package geom

import "math"

// Vector2 is a 2D offset or point.
type Vector2 struct {
	X float64
	Y float64
}

// Add returns v + o.
func (v Vector2) Add(o Vector2) Vector2 {
	return Vector2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vector2) Sub(o Vector2) Vector2 {
	return Vector2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Size is a width/height pair.
type Size struct {
	Width  float64
	Height float64
}

// Edges holds one signed delta per rectangle edge. Each value is movement
// of that edge along the positive axis: left/top deltas shift the origin,
// right/bottom deltas shift the far edge.
type Edges struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

// Rect is an axis-aligned rectangle. Rects are plain comparable values;
// two rects are the same placement exactly when r == other.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Right returns the X coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the Y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Vector2 {
	return Vector2{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Size returns the rectangle's dimensions.
func (r Rect) Size() Size {
	return Size{Width: r.Width, Height: r.Height}
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Translate returns the rectangle shifted by v.
func (r Rect) Translate(v Vector2) Rect {
	r.X += v.X
	r.Y += v.Y
	return r
}

// Resize applies per-edge deltas. Moving the left or top edge shifts the
// origin and shrinks the dimension; moving the right or bottom edge grows it.
func (r Rect) Resize(e Edges) Rect {
	r.X += e.Left
	r.Y += e.Top
	r.Width += e.Right - e.Left
	r.Height += e.Bottom - e.Top
	return r
}

// Inset returns the rectangle shrunk by d on every side. A negative d grows it.
func (r Rect) Inset(d float64) Rect {
	return Rect{
		X:      r.X + d,
		Y:      r.Y + d,
		Width:  r.Width - 2*d,
		Height: r.Height - 2*d,
	}
}

// Contains reports whether p lies inside the rectangle. Points on the left
// and top edges are inside, points on the right and bottom edges are not.
func (r Rect) Contains(p Vector2) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// Intersect returns the overlap of r and o, or a zero rect when they are
// disjoint.
func (r Rect) Intersect(o Rect) Rect {
	x1 := math.Max(r.X, o.X)
	y1 := math.Max(r.Y, o.Y)
	x2 := math.Min(r.Right(), o.Right())
	y2 := math.Min(r.Bottom(), o.Bottom())
	if x2 <= x1 || y2 <= y1 {
		return Rect{}
	}
	return Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

// Ints returns the rectangle rounded to integer pixels for protocol
// boundaries that do not speak floats.
func (r Rect) Ints() (x, y, w, h int) {
	return int(math.Round(r.X)), int(math.Round(r.Y)),
		int(math.Round(r.Width)), int(math.Round(r.Height))
}
