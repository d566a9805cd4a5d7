package x11

import (
	"testing"

	"github.com/BurntSushi/xgbutil/ewmh"
)

func TestAccumulateStrut_TopPanelOnMatchingMonitor(t *testing.T) {
	mon := &Monitor{X: 0, Y: 0, Width: 1920, Height: 1080}
	sp := &ewmh.WmStrutPartial{Top: 32, TopStartX: 0, TopEndX: 1919}

	var acc reserved
	accumulateStrut(mon, 1920, 1080, sp, &acc)

	if acc.top != 32 {
		t.Fatalf("top = %d, want 32", acc.top)
	}
	if acc.left != 0 || acc.right != 0 || acc.bottom != 0 {
		t.Fatalf("unexpected insets %+v", acc)
	}
}

func TestAccumulateStrut_IgnoresPanelOnOtherMonitor(t *testing.T) {
	// Second monitor to the right; the panel spans only the first.
	mon := &Monitor{X: 1920, Y: 0, Width: 1280, Height: 1024}
	sp := &ewmh.WmStrutPartial{Top: 32, TopStartX: 0, TopEndX: 1919}

	var acc reserved
	accumulateStrut(mon, 3200, 1080, sp, &acc)

	if acc != (reserved{}) {
		t.Fatalf("expected no insets, got %+v", acc)
	}
}

func TestAccumulateStrut_BottomDockKeepsMaxOfTwo(t *testing.T) {
	mon := &Monitor{X: 0, Y: 0, Width: 1920, Height: 1080}

	var acc reserved
	accumulateStrut(mon, 1920, 1080,
		&ewmh.WmStrutPartial{Bottom: 24, BottomStartX: 0, BottomEndX: 1919}, &acc)
	accumulateStrut(mon, 1920, 1080,
		&ewmh.WmStrutPartial{Bottom: 48, BottomStartX: 600, BottomEndX: 1300}, &acc)

	if acc.bottom != 48 {
		t.Fatalf("bottom = %d, want 48", acc.bottom)
	}
}

func TestAccumulateStrut_LeftStrutClippedToMonitor(t *testing.T) {
	// Narrow monitor fully inside the strut band width.
	mon := &Monitor{X: 0, Y: 0, Width: 40, Height: 1080}
	sp := &ewmh.WmStrutPartial{Left: 64, LeftStartY: 0, LeftEndY: 1079}

	var acc reserved
	accumulateStrut(mon, 1920, 1080, sp, &acc)

	if acc.left != 40 {
		t.Fatalf("left = %d, want 40 (clipped to monitor width)", acc.left)
	}
}

func TestMonitorAt(t *testing.T) {
	monitors := []Monitor{
		{ID: 0, X: 0, Y: 0, Width: 1920, Height: 1080},
		{ID: 1, X: 1920, Y: 0, Width: 1280, Height: 1024},
	}

	if m := monitorAt(monitors, 100, 100); m == nil || m.ID != 0 {
		t.Fatalf("point on first monitor resolved to %+v", m)
	}
	if m := monitorAt(monitors, 1920, 10); m == nil || m.ID != 1 {
		t.Fatalf("left edge of second monitor resolved to %+v", m)
	}
	if m := monitorAt(monitors, 5000, 5000); m != nil {
		t.Fatalf("point outside all monitors resolved to %+v", m)
	}
}
