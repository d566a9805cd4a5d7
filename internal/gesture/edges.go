package gesture

import "github.com/1broseidon/floatwm/internal/geom"

// EdgeMask marks the rect edges a resize drag engages.
type EdgeMask struct {
	Left, Top, Right, Bottom bool
}

// Apply maps a cumulative pointer offset onto deltas for the engaged
// edges.
func (em EdgeMask) Apply(offset geom.Vector2) geom.Edges {
	var e geom.Edges
	if em.Left {
		e.Left = offset.X
	}
	if em.Right {
		e.Right = offset.X
	}
	if em.Top {
		e.Top = offset.Y
	}
	if em.Bottom {
		e.Bottom = offset.Y
	}
	return e
}

// PickEdges chooses the edges a grab at (x, y) engages. A grab inside an
// edge's grip band engages exactly that edge, so grabbing the middle of
// a side resizes one dimension. Outside every band the nearest corner
// wins. When opposite bands overlap on a small window the nearer edge
// takes the axis.
func PickEdges(px geom.Rect, x, y, grip float64) EdgeMask {
	var m EdgeMask
	m.Left = x <= px.X+grip
	m.Right = x >= px.Right()-grip
	if m.Left && m.Right {
		m.Left = x-px.X <= px.Right()-x
		m.Right = !m.Left
	}
	m.Top = y <= px.Y+grip
	m.Bottom = y >= px.Bottom()-grip
	if m.Top && m.Bottom {
		m.Top = y-px.Y <= px.Bottom()-y
		m.Bottom = !m.Top
	}
	if !m.Left && !m.Right && !m.Top && !m.Bottom {
		c := px.Center()
		m.Right = x >= c.X
		m.Left = !m.Right
		m.Bottom = y >= c.Y
		m.Top = !m.Bottom
	}
	return m
}
