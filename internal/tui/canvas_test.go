package tui

import (
	"testing"
	"time"

	"github.com/1broseidon/floatwm/internal/anim"
	"github.com/1broseidon/floatwm/internal/geom"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestCanvasApplySettlesWithoutAppear(t *testing.T) {
	c := newCanvas(anim.Spec{})
	rect := geom.Rect{X: 2, Y: 1, Width: 20, Height: 8}
	c.Apply(1, rect, 3)

	l := c.layers[1]
	if l == nil {
		t.Fatal("no layer after Apply")
	}
	if l.play != nil {
		t.Fatal("zero appear spec must not start a playback")
	}
	if l.frame.Rect != rect || l.frame.Opacity != 1 {
		t.Fatalf("settled frame = %+v", l.frame)
	}
	if c.Step(time.Now()) {
		t.Fatal("Step reported a running playback")
	}
}

func TestCanvasAppearPlaysOnFirstApply(t *testing.T) {
	t0 := time.Now()
	c := newCanvas(anim.Spec{Duration: 200 * time.Millisecond, Easing: anim.Linear})
	c.now = fixedClock(t0)

	rect := geom.Rect{X: 0, Y: 0, Width: 10, Height: 6}
	c.Apply(1, rect, 1)

	l := c.layers[1]
	if l.play == nil {
		t.Fatal("first Apply must start the appear playback")
	}
	if l.frame.Opacity != 0 {
		t.Fatalf("appear starts at opacity %v, want 0", l.frame.Opacity)
	}

	if !c.Step(t0.Add(100 * time.Millisecond)) {
		t.Fatal("mid-appear Step reported no running playback")
	}
	if got := l.frame.Opacity; got <= 0 || got >= 1 {
		t.Fatalf("mid-appear opacity = %v", got)
	}

	if c.Step(t0.Add(250 * time.Millisecond)) {
		t.Fatal("Step still running past the duration")
	}
	if l.frame.Opacity != 1 || l.play != nil {
		t.Fatalf("appear did not settle: %+v", l.frame)
	}

	// Later placements land immediately.
	moved := geom.Rect{X: 5, Y: 5, Width: 10, Height: 6}
	c.Apply(1, moved, 1)
	if l.play != nil || l.frame.Rect != moved {
		t.Fatal("repeat Apply must place immediately")
	}
}

func TestCanvasPlaySamplesMovement(t *testing.T) {
	t0 := time.Now()
	c := newCanvas(anim.Spec{})
	c.now = fixedClock(t0)

	from := geom.Rect{X: 0, Y: 0, Width: 10, Height: 5}
	to := geom.Rect{X: 10, Y: 6, Width: 10, Height: 5}
	c.Apply(7, from, 2)
	c.Play(7, anim.Movement(from, to, anim.Spec{
		Duration: 100 * time.Millisecond,
		Easing:   anim.Linear,
	}), 2)

	c.Step(t0.Add(50 * time.Millisecond))
	mid := c.layers[7].frame.Rect
	if mid.X != 5 || mid.Y != 3 {
		t.Fatalf("midpoint = %+v", mid)
	}

	c.Step(t0.Add(150 * time.Millisecond))
	l := c.layers[7]
	if l.frame.Rect != to || l.play != nil {
		t.Fatalf("movement did not settle at %+v: %+v", to, l.frame)
	}
}

func TestCanvasReleasePlaysRemnant(t *testing.T) {
	t0 := time.Now()
	c := newCanvas(anim.Spec{})
	c.now = fixedClock(t0)

	rect := geom.Rect{X: 1, Y: 1, Width: 8, Height: 4}
	c.Apply(3, rect, 1)
	c.Label(3, "doomed")

	c.Release(3, anim.Exit(rect, anim.Spec{
		Duration: 100 * time.Millisecond,
		Easing:   anim.Linear,
	}))
	if _, ok := c.labels[3]; ok {
		t.Fatal("release must drop the label")
	}
	l := c.layers[3]
	if l == nil || !l.gone {
		t.Fatal("release must keep a fading remnant")
	}

	c.Step(t0.Add(150 * time.Millisecond))
	if !c.Empty() {
		t.Fatal("finished remnant must leave the canvas")
	}
}

func TestCanvasReleaseWithoutTransitionDrops(t *testing.T) {
	c := newCanvas(anim.Spec{})
	c.Apply(9, geom.Rect{Width: 6, Height: 4}, 1)
	c.Release(9, anim.Transition{})
	if !c.Empty() {
		t.Fatal("zero transition release must drop the layer immediately")
	}
}

func TestCanvasPaintOcclusion(t *testing.T) {
	c := newCanvas(anim.Spec{})
	c.Apply(1, geom.Rect{X: 0, Y: 0, Width: 12, Height: 6}, 1)
	c.Apply(2, geom.Rect{X: 4, Y: 2, Width: 12, Height: 6}, 2)

	runes, styles := c.paint(20, 10, 2)

	if runes[0][0] != '┌' {
		t.Fatalf("bottom corner = %q", runes[0][0])
	}
	if runes[2][4] != '┌' {
		t.Fatalf("top corner = %q", runes[2][4])
	}
	// The top layer's interior blanks the bottom border it crosses.
	if runes[5][2] != '─' {
		t.Fatalf("visible bottom border = %q", runes[5][2])
	}
	if runes[5][8] != ' ' {
		t.Fatalf("occluded bottom border = %q", runes[5][8])
	}
	if styles[2][4] != cellFront {
		t.Fatalf("front style = %d", styles[2][4])
	}
	if styles[0][0] != cellBack {
		t.Fatalf("back style = %d", styles[0][0])
	}
}

func TestCanvasPaintCentersLabel(t *testing.T) {
	c := newCanvas(anim.Spec{})
	c.Apply(1, geom.Rect{X: 0, Y: 0, Width: 12, Height: 5}, 1)
	c.Label(1, "abc")

	runes, _ := c.paint(16, 8, 1)
	if got := string(runes[2][4:7]); got != "abc" {
		t.Fatalf("label row = %q", got)
	}
}

func TestCanvasPaintSkipsDegenerateRects(t *testing.T) {
	c := newCanvas(anim.Spec{})
	c.Apply(1, geom.Rect{X: 3, Y: 3, Width: 1, Height: 1}, 1)

	runes, _ := c.paint(10, 6, 1)
	for y := range runes {
		for x := range runes[y] {
			if runes[y][x] != ' ' {
				t.Fatalf("cell (%d,%d) painted for a degenerate rect", x, y)
			}
		}
	}
}

func TestFrameRectFoldsScale(t *testing.T) {
	got := frameRect(anim.Keyframe{
		Rect:  geom.Rect{X: 0, Y: 0, Width: 10, Height: 10},
		Scale: 0.5,
	})
	want := geom.Rect{X: 2.5, Y: 2.5, Width: 5, Height: 5}
	if got != want {
		t.Fatalf("frameRect = %+v, want %+v", got, want)
	}
}
