package anim

import (
	"math"
	"testing"
	"time"

	"github.com/1broseidon/floatwm/internal/geom"
)

func TestLinearEval(t *testing.T) {
	for _, x := range []float64{0, 0.25, 0.5, 0.75, 1} {
		got := Linear.Eval(x)
		if math.Abs(got-x) > 1e-6 {
			t.Fatalf("Linear.Eval(%v) = %v, want %v", x, got, x)
		}
	}
}

func TestZeroEasingActsLinear(t *testing.T) {
	var e Easing
	if got := e.Eval(0.5); math.Abs(got-0.5) > 1e-6 {
		t.Fatalf("zero easing Eval(0.5) = %v, want 0.5", got)
	}
}

func TestEvalEndpointsAndBounds(t *testing.T) {
	curves := []Easing{Linear, Ease, EaseIn, EaseOut, EaseInOut}
	for _, e := range curves {
		if e.Eval(0) != 0 || e.Eval(1) != 1 {
			t.Fatalf("easing %+v does not pin endpoints", e)
		}
		prev := 0.0
		for x := 0.05; x < 1; x += 0.05 {
			y := e.Eval(x)
			if y < prev-1e-9 {
				t.Fatalf("easing %+v not monotonic at %v: %v < %v", e, x, y, prev)
			}
			prev = y
		}
	}
}

func TestEaseInStartsSlow(t *testing.T) {
	if y := EaseIn.Eval(0.2); y >= 0.2 {
		t.Fatalf("EaseIn.Eval(0.2) = %v, want below 0.2", y)
	}
	if y := EaseOut.Eval(0.2); y <= 0.2 {
		t.Fatalf("EaseOut.Eval(0.2) = %v, want above 0.2", y)
	}
}

func TestMovementSamplesMidpoint(t *testing.T) {
	from := geom.Rect{X: 0, Y: 0, Width: 100, Height: 100}
	to := geom.Rect{X: 200, Y: 100, Width: 300, Height: 200}
	tr := Movement(from, to, Spec{Duration: 200 * time.Millisecond, Easing: Linear})

	mid := tr.At(0.5)
	want := geom.Rect{X: 100, Y: 50, Width: 200, Height: 150}
	if mid.Rect != want {
		t.Fatalf("At(0.5) rect = %+v, want %+v", mid.Rect, want)
	}
	if mid.Opacity != 1 || mid.Scale != 1 {
		t.Fatalf("movement accents = %v opacity, %v scale, want 1, 1", mid.Opacity, mid.Scale)
	}
}

func TestAtPinsEnds(t *testing.T) {
	from := geom.Rect{X: 0, Y: 0, Width: 10, Height: 10}
	to := geom.Rect{X: 50, Y: 50, Width: 10, Height: 10}
	tr := Movement(from, to, Spec{Duration: time.Second, Easing: EaseInOut})

	if got := tr.At(-1).Rect; got != from {
		t.Fatalf("At(-1) = %+v, want %+v", got, from)
	}
	if got := tr.At(2).Rect; got != to {
		t.Fatalf("At(2) = %+v, want %+v", got, to)
	}
}

func TestExitFadesOut(t *testing.T) {
	r := geom.Rect{X: 10, Y: 10, Width: 80, Height: 60}
	tr := Exit(r, Spec{Duration: 150 * time.Millisecond, Easing: Linear})

	end := tr.At(1)
	if end.Opacity != 0 {
		t.Fatalf("exit end opacity = %v, want 0", end.Opacity)
	}
	if end.Rect != r {
		t.Fatalf("exit moves the rect: %+v", end.Rect)
	}

	mid := tr.At(0.5)
	if mid.Opacity <= 0 || mid.Opacity >= 1 {
		t.Fatalf("exit midpoint opacity = %v, want inside (0,1)", mid.Opacity)
	}
}

func TestIsZero(t *testing.T) {
	if !(Transition{}).IsZero() {
		t.Fatalf("empty transition not zero")
	}
	tr := Movement(geom.Rect{}, geom.Rect{X: 1}, Spec{})
	if !tr.IsZero() {
		t.Fatalf("zero-duration transition not zero")
	}
	tr = Movement(geom.Rect{}, geom.Rect{X: 1}, Spec{Duration: time.Millisecond})
	if tr.IsZero() {
		t.Fatalf("real transition reported zero")
	}
}
