package gesture

import (
	"testing"

	"github.com/1broseidon/floatwm/internal/geom"
)

type frameLog struct {
	offsets []geom.Vector2
	deltas  []geom.Vector2
	starts  int
	ends    int
}

func newTestDrag(sched *ManualScheduler, allow func() bool) (*Drag, *frameLog) {
	log := &frameLog{}
	d := New(Config{
		Allow:   allow,
		OnStart: func() { log.starts++ },
		OnFrame: func(offset, delta geom.Vector2) {
			log.offsets = append(log.offsets, offset)
			log.deltas = append(log.deltas, delta)
		},
		OnEnd:     func() { log.ends++ },
		Scheduler: sched,
	})
	return d, log
}

func press(x, y float64) Pointer {
	return Pointer{Pos: geom.Vector2{X: x, Y: y}, Button: ButtonPrimary}
}

func at(x, y float64) Pointer {
	return Pointer{Pos: geom.Vector2{X: x, Y: y}}
}

func TestPressGate(t *testing.T) {
	tests := []struct {
		name  string
		p     Pointer
		allow func() bool
		want  bool
	}{
		{"primary", press(0, 0), nil, true},
		{"secondary", Pointer{Button: ButtonSecondary}, nil, false},
		{"no button", Pointer{}, nil, false},
		{"modifier held", Pointer{Button: ButtonPrimary, Mods: ModShift}, nil, false},
		{"allow refuses", press(0, 0), func() bool { return false }, false},
		{"allow admits", press(0, 0), func() bool { return true }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, log := newTestDrag(&ManualScheduler{}, tt.allow)
			if got := d.Press(tt.p); got != tt.want {
				t.Fatalf("Press = %v, want %v", got, tt.want)
			}
			wantStarts := 0
			if tt.want {
				wantStarts = 1
			}
			if log.starts != wantStarts {
				t.Fatalf("starts = %d, want %d", log.starts, wantStarts)
			}
		})
	}
}

func TestMovesMergeIntoOneFrame(t *testing.T) {
	sched := &ManualScheduler{}
	d, log := newTestDrag(sched, nil)

	d.Press(press(100, 100))
	d.Move(at(110, 100))
	d.Move(at(125, 90))
	d.Move(at(140, 95))

	if sched.Pending() != 1 {
		t.Fatalf("pending frames = %d, want 1", sched.Pending())
	}

	sched.Fire()
	if len(log.offsets) != 1 {
		t.Fatalf("deliveries = %d, want 1", len(log.offsets))
	}
	// Cumulative offset from the press origin; one merged delta.
	want := geom.Vector2{X: 40, Y: -5}
	if log.offsets[0] != want {
		t.Fatalf("offset = %+v, want %+v", log.offsets[0], want)
	}
	if log.deltas[0] != want {
		t.Fatalf("first delta = %+v, want %+v", log.deltas[0], want)
	}
}

func TestDeltaResetsAfterDelivery(t *testing.T) {
	sched := &ManualScheduler{}
	d, log := newTestDrag(sched, nil)

	d.Press(press(0, 0))
	d.Move(at(30, 0))
	sched.Fire()

	d.Move(at(50, 10))
	sched.Fire()

	if len(log.deltas) != 2 {
		t.Fatalf("deliveries = %d, want 2", len(log.deltas))
	}
	// Second delta covers only the movement after the first delivery.
	if want := (geom.Vector2{X: 20, Y: 10}); log.deltas[1] != want {
		t.Fatalf("second delta = %+v, want %+v", log.deltas[1], want)
	}
	// The offset stays cumulative from the origin.
	if want := (geom.Vector2{X: 50, Y: 10}); log.offsets[1] != want {
		t.Fatalf("second offset = %+v, want %+v", log.offsets[1], want)
	}
}

func TestReleaseCancelsPendingFrame(t *testing.T) {
	sched := &ManualScheduler{}
	d, log := newTestDrag(sched, nil)

	d.Press(press(0, 0))
	d.Move(at(30, 0))
	d.Release(at(30, 0))

	sched.Fire()
	if len(log.offsets) != 0 {
		t.Fatalf("deliveries after release = %d, want 0", len(log.offsets))
	}
	if log.ends != 1 {
		t.Fatalf("ends = %d, want 1", log.ends)
	}

	// Movement after the gesture ended is ignored.
	d.Move(at(100, 100))
	sched.Fire()
	if len(log.offsets) != 0 {
		t.Fatalf("deliveries after end = %d, want 0", len(log.offsets))
	}
}

func TestSecondPressWhileActiveIsIgnored(t *testing.T) {
	d, log := newTestDrag(&ManualScheduler{}, nil)

	if !d.Press(press(0, 0)) {
		t.Fatalf("first press rejected")
	}
	if d.Press(press(50, 50)) {
		t.Fatalf("second press accepted mid-gesture")
	}
	if log.starts != 1 {
		t.Fatalf("starts = %d, want 1", log.starts)
	}
}

func TestDisposeIsIdempotent(t *testing.T) {
	sched := &ManualScheduler{}
	d, log := newTestDrag(sched, nil)

	d.Press(press(0, 0))
	d.Move(at(10, 10))

	d.Dispose()
	d.Dispose()
	d.Dispose()

	if log.ends != 1 {
		t.Fatalf("ends = %d, want 1", log.ends)
	}
	sched.Fire()
	if len(log.offsets) != 0 {
		t.Fatalf("deliveries after dispose = %d, want 0", len(log.offsets))
	}

	// A disposed drag accepts nothing.
	if d.Press(press(0, 0)) {
		t.Fatalf("disposed drag accepted a press")
	}
}

func TestDisposeWithoutGestureSkipsEnd(t *testing.T) {
	d, log := newTestDrag(&ManualScheduler{}, nil)
	d.Dispose()
	if log.ends != 0 {
		t.Fatalf("ends = %d, want 0", log.ends)
	}
}

func TestActive(t *testing.T) {
	d, _ := newTestDrag(&ManualScheduler{}, nil)
	if d.Active() {
		t.Fatalf("fresh drag reports active")
	}
	d.Press(press(0, 0))
	if !d.Active() {
		t.Fatalf("pressed drag reports inactive")
	}
	d.Cancel()
	if d.Active() {
		t.Fatalf("canceled drag reports active")
	}
}
