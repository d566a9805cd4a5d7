package anim

// Easing is a cubic bezier timing curve through (0,0) and (1,1) with two
// control points, matching the CSS cubic-bezier convention.
type Easing struct {
	X1, Y1, X2, Y2 float64
}

// Standard curves.
var (
	Linear    = Easing{X1: 1.0 / 3, Y1: 1.0 / 3, X2: 2.0 / 3, Y2: 2.0 / 3}
	Ease      = Easing{X1: 0.25, Y1: 0.1, X2: 0.25, Y2: 1}
	EaseIn    = Easing{X1: 0.42, Y1: 0, X2: 1, Y2: 1}
	EaseOut   = Easing{X1: 0, Y1: 0, X2: 0.58, Y2: 1}
	EaseInOut = Easing{X1: 0.42, Y1: 0, X2: 0.58, Y2: 1}
)

// Eval maps linear progress x in [0,1] to eased progress. The zero
// Easing evaluates as Linear so uninitialized specs stay usable.
func (e Easing) Eval(x float64) float64 {
	if x <= 0 {
		return 0
	}
	if x >= 1 {
		return 1
	}
	if e == (Easing{}) {
		e = Linear
	}

	// Solve the bezier parameter for horizontal position x by bisection;
	// the x polynomial is monotonic for control points inside [0,1].
	lo, hi := 0.0, 1.0
	var s float64
	for i := 0; i < 32; i++ {
		s = (lo + hi) / 2
		if bezier(e.X1, e.X2, s) < x {
			lo = s
		} else {
			hi = s
		}
	}
	return bezier(e.Y1, e.Y2, s)
}

// bezier evaluates the one-dimensional cubic with endpoints 0 and 1 and
// control values c1, c2 at parameter s.
func bezier(c1, c2, s float64) float64 {
	u := 1 - s
	return 3*u*u*s*c1 + 3*u*s*s*c2 + s*s*s
}
