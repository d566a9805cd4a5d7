package engine

import (
	"testing"
	"time"

	"github.com/1broseidon/floatwm/internal/anim"
	"github.com/1broseidon/floatwm/internal/config"
	"github.com/1broseidon/floatwm/internal/geom"
	"github.com/1broseidon/floatwm/internal/layout"
	"github.com/1broseidon/floatwm/internal/wm"
)

func TestBuildLayoutFloating(t *testing.T) {
	l := buildLayout(config.LayoutPreset{
		Kind:    config.LayoutFloating,
		Padding: config.Margins{Top: 2, Bottom: 2, Left: 2, Right: 2},
	})
	if _, ok := l.(*layout.Base); !ok {
		t.Fatalf("kind = %T, want *layout.Base", l)
	}
	caps := l.Caps()
	if !caps.Move || !caps.Resize || !caps.Transitions || !caps.Restore {
		t.Fatalf("caps = %+v, want all enabled", caps)
	}
	if got := l.Padding(); got != (geom.Edges{Left: 2, Top: 2, Right: 2, Bottom: 2}) {
		t.Fatalf("padding = %+v", got)
	}
}

func TestBuildLayoutConstrained(t *testing.T) {
	l := buildLayout(config.LayoutPreset{
		Kind: config.LayoutConstrained,
		Sizes: config.SizeRange{
			MinWidth: 320, MinHeight: 240,
			MaxWidth: 1600, MaxHeight: 1200,
			PreferredWidth: 720, PreferredHeight: 480,
		},
	})
	c, ok := l.(*layout.Constrained)
	if !ok {
		t.Fatalf("kind = %T, want *layout.Constrained", l)
	}
	want := layout.SizeConstraints{
		MinWidth: 320, MinHeight: 240,
		MaxWidth: 1600, MaxHeight: 1200,
		SuggestionWidth: 720, SuggestionHeight: 480,
	}
	if got := c.Constraints(); got != want {
		t.Fatalf("constraints = %+v, want %+v", got, want)
	}
}

func TestBuildLayoutGridKeepsCellFloor(t *testing.T) {
	l := buildLayout(config.LayoutPreset{
		Kind:  config.LayoutGrid,
		Grid:  config.GridSpec{Cols: 3, Rows: 2},
		Sizes: config.SizeRange{PreferredWidth: 2, PreferredHeight: 1},
	})
	g, ok := l.(*layout.Grid)
	if !ok {
		t.Fatalf("kind = %T, want *layout.Grid", l)
	}
	if g.Cols() != 3 || g.Rows() != 2 {
		t.Fatalf("dimensions = %dx%d, want 3x2", g.Cols(), g.Rows())
	}
	sc := g.Constraints()
	if sc.MinWidth != 1 || sc.MinHeight != 1 {
		t.Fatalf("cell minimums = %vx%v, want 1x1", sc.MinWidth, sc.MinHeight)
	}
	if sc.SuggestionWidth != 2 || sc.SuggestionHeight != 1 {
		t.Fatalf("cell suggestions = %vx%v, want 2x1", sc.SuggestionWidth, sc.SuggestionHeight)
	}
}

func TestBuildLayoutDialogCenters(t *testing.T) {
	l := buildLayout(config.LayoutPreset{
		Kind:   config.LayoutDialog,
		Dialog: config.DialogSpec{Width: 480, Height: 320, Margin: 32},
	})
	d, ok := l.(*layout.Dialog)
	if !ok {
		t.Fatalf("kind = %T, want *layout.Dialog", l)
	}
	d.SetViewport(geom.Rect{Width: 1920, Height: 1080})
	got := d.InitializeRect(0)
	want := geom.Rect{X: 720, Y: 380, Width: 480, Height: 320}
	if got != want {
		t.Fatalf("centered = %+v, want %+v", got, want)
	}
}

func TestTransitionsFromEnabled(t *testing.T) {
	tr := TransitionsFrom(config.AnimationConfig{
		Enabled: true, SwitchMS: 220, ExitMS: 150, Easing: "ease-out",
	})
	if tr.Switch.Duration != 220*time.Millisecond {
		t.Fatalf("switch duration = %v", tr.Switch.Duration)
	}
	if tr.Exit.Duration != 150*time.Millisecond {
		t.Fatalf("exit duration = %v", tr.Exit.Duration)
	}
	if tr.Switch.Easing != anim.EaseOut {
		t.Fatalf("easing = %+v, want ease-out", tr.Switch.Easing)
	}
}

// Disabled animation must still produce a non-zero Transitions value;
// the collection replaces a zero value with its defaults.
func TestTransitionsFromDisabledStaysNonZero(t *testing.T) {
	tr := TransitionsFrom(config.AnimationConfig{Enabled: false, Easing: "linear"})
	if tr == (wm.Transitions{}) {
		t.Fatal("disabled transitions collapsed to the zero value")
	}
	if tr.Switch.Duration != 0 || tr.Exit.Duration != 0 {
		t.Fatalf("disabled durations = %v/%v, want 0/0", tr.Switch.Duration, tr.Exit.Duration)
	}
}

func TestEasingByName(t *testing.T) {
	cases := []struct {
		name string
		want anim.Easing
	}{
		{"linear", anim.Linear},
		{"ease", anim.Ease},
		{"ease-in", anim.EaseIn},
		{"ease-out", anim.EaseOut},
		{"ease-in-out", anim.EaseInOut},
		{"bogus", anim.Linear},
	}
	for _, tc := range cases {
		if got := easingByName(tc.name); got != tc.want {
			t.Errorf("easingByName(%q) = %+v, want %+v", tc.name, got, tc.want)
		}
	}
}

func TestNextName(t *testing.T) {
	names := []string{"floating", "clamped", "grid"}
	cases := []struct {
		active string
		step   int
		want   string
	}{
		{"floating", 1, "clamped"},
		{"grid", 1, "floating"},
		{"floating", -1, "grid"},
		{"clamped", -1, "floating"},
		{"clamped", 2, "floating"},
		{"unknown", 1, "floating"},
	}
	for _, tc := range cases {
		if got := nextName(names, tc.active, tc.step); got != tc.want {
			t.Errorf("nextName(%q, %d) = %q, want %q", tc.active, tc.step, got, tc.want)
		}
	}
	if got := nextName(nil, "x", 1); got != "" {
		t.Errorf("nextName on empty list = %q, want empty", got)
	}
}
