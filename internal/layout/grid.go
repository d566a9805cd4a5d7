package layout

import (
	"math"

	"github.com/1broseidon/floatwm/internal/event"
	"github.com/1broseidon/floatwm/internal/geom"
)

// Grid lays a cell-unit coordinate space over a pixel bound. Window rects
// under a grid are expressed in whole cells; pixel-space gesture deltas
// are quantized to the nearest cell before they reach the wrapped
// constrained policy, which clamps in cell units against {0,0,cols,rows}.
//
// Changing the grid's dimensions or the pixel size of a cell is always a
// breaking change.
type Grid struct {
	inner   *Constrained
	cols    int
	rows    int
	pix     geom.Rect
	unwatch func()
}

// NewGrid returns a cols by rows grid with a zero pixel bound. Dimensions
// below one are raised to one. The wrapped constraints default to a
// minimum span of one cell.
func NewGrid(cols, rows int) *Grid {
	g := &Grid{inner: NewConstrained()}
	g.cols, g.rows = atLeastOne(cols), atLeastOne(rows)
	g.inner.bound = geom.Rect{Width: float64(g.cols), Height: float64(g.rows)}
	g.inner.constraints = SizeConstraints{MinWidth: 1, MinHeight: 1}
	return g
}

func atLeastOne(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// PixelBound returns the pixel rect the cells are laid over.
func (g *Grid) PixelBound() geom.Rect { return g.pix }

// CellSize returns the pixel extent of one cell.
func (g *Grid) CellSize() (w, h float64) {
	return g.pix.Width / float64(g.cols), g.pix.Height / float64(g.rows)
}

// SetDimensions changes the column and row counts, a breaking change.
func (g *Grid) SetDimensions(cols, rows int) {
	g.cols, g.rows = atLeastOne(cols), atLeastOne(rows)
	g.inner.SetBound(geom.Rect{Width: float64(g.cols), Height: float64(g.rows)}, true)
}

// SetPixelBound moves the grid over a new pixel rect. Cell pixel size
// changes with it, so this is a breaking change.
func (g *Grid) SetPixelBound(r geom.Rect) {
	g.pix = r
	g.inner.breaks.Publish(Change{Reason: "cell size"})
}

// Bind tracks src with the pixel bound. Rebinding replaces the previous
// watcher.
func (g *Grid) Bind(src SizeSource) {
	g.Unbind()
	g.SetPixelBound(src.Bounds())
	g.unwatch = src.Watch(func(r geom.Rect) {
		g.SetPixelBound(r)
	})
}

// Unbind detaches the current size source, if any.
func (g *Grid) Unbind() {
	if g.unwatch != nil {
		g.unwatch()
		g.unwatch = nil
	}
}

func (g *Grid) Caps() Caps { return g.inner.Caps() }

// Move quantizes the pixel offset to whole cells and delegates the cell
// space clamp.
func (g *Grid) Move(r geom.Rect, offset, direction geom.Vector2) geom.Rect {
	cw, ch := g.CellSize()
	cells := geom.Vector2{X: quantize(offset.X, cw), Y: quantize(offset.Y, ch)}
	return g.inner.Move(r, cells, direction)
}

// Resize quantizes each pixel edge delta to whole cells and delegates the
// cell space clamp.
func (g *Grid) Resize(r geom.Rect, edges geom.Edges) geom.Rect {
	cw, ch := g.CellSize()
	return g.inner.Resize(r, geom.Edges{
		Left:   quantize(edges.Left, cw),
		Top:    quantize(edges.Top, ch),
		Right:  quantize(edges.Right, cw),
		Bottom: quantize(edges.Bottom, ch),
	})
}

// quantize maps a pixel delta to the nearest whole-cell delta.
func quantize(d, cell float64) float64 {
	if cell <= 0 {
		return 0
	}
	return math.Round(d / cell)
}

func (g *Grid) FitRect(r geom.Rect) geom.Rect { return g.inner.FitRect(r) }

// InitializeRect places windows row-major, wrapping at the column count.
// The span per axis is the larger of the suggested and minimum cell
// spans.
func (g *Grid) InitializeRect(id int) geom.Rect {
	sc := g.inner.constraints
	w := math.Max(sc.SuggestionWidth, sc.MinWidth)
	h := math.Max(sc.SuggestionHeight, sc.MinHeight)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	perRow := int(float64(g.cols) / w)
	if perRow < 1 {
		perRow = 1
	}
	idx := g.inner.IndexOf(id)
	r := geom.Rect{
		X:      float64(idx%perRow) * w,
		Y:      float64(idx/perRow) * h,
		Width:  w,
		Height: h,
	}
	return g.inner.FitRect(r)
}

// PixelRect maps a cell rect onto the pixel bound and applies padding.
func (g *Grid) PixelRect(r geom.Rect) geom.Rect {
	cw, ch := g.CellSize()
	px := geom.Rect{
		X:      g.pix.X + r.X*cw,
		Y:      g.pix.Y + r.Y*ch,
		Width:  r.Width * cw,
		Height: r.Height * ch,
	}
	return padRect(px, g.inner.Padding())
}

// Constraints returns the wrapped cell-unit size constraints.
func (g *Grid) Constraints() SizeConstraints { return g.inner.Constraints() }

// SetConstraints replaces the cell-unit size constraints.
func (g *Grid) SetConstraints(sc SizeConstraints) { g.inner.SetConstraints(sc) }

func (g *Grid) Padding() geom.Edges     { return g.inner.Padding() }
func (g *Grid) SetPadding(p geom.Edges) { g.inner.SetPadding(p) }

func (g *Grid) AddWindow(id int)    { g.inner.AddWindow(id) }
func (g *Grid) RemoveWindow(id int) { g.inner.RemoveWindow(id) }
func (g *Grid) IndexOf(id int) int  { return g.inner.IndexOf(id) }

func (g *Grid) StoreRect(id int, r geom.Rect)           { g.inner.StoreRect(id, r) }
func (g *Grid) TakeStoredRect(id int) (geom.Rect, bool) { return g.inner.TakeStoredRect(id) }
func (g *Grid) DropStoredRect(id int)                   { g.inner.DropStoredRect(id) }

func (g *Grid) Updates() *event.Feed[Change] { return g.inner.Updates() }
func (g *Grid) Breaks() *event.Feed[Change]  { return g.inner.Breaks() }
