package engine

import (
	"time"

	"github.com/1broseidon/floatwm/internal/geom"
	"github.com/1broseidon/floatwm/internal/gesture"
	"github.com/1broseidon/floatwm/internal/layout"
	"github.com/1broseidon/floatwm/internal/x11"
)

// bindGestures grabs the move and resize buttons on a managed client
// and routes the resulting pointer drags through the drag coordinator.
// The held modifier is consumed by the grab, so presses reach the
// coordinator as a bare primary button.
func (e *Engine) bindGestures(m *managed) {
	sched := e.frameScheduler()

	m.move = gesture.New(gesture.Config{
		Allow:     func() bool { return e.allowGesture(m, func(c layout.Caps) bool { return c.Move }) },
		OnStart:   func() { e.startMove(m) },
		OnFrame:   func(offset, delta geom.Vector2) { e.moveFrame(m, offset, delta) },
		OnEnd:     func() { e.endDrag(m) },
		Scheduler: sched,
		Logger:    e.logger,
	})
	m.resize = gesture.New(gesture.Config{
		Allow:     func() bool { return e.allowGesture(m, func(c layout.Caps) bool { return c.Resize }) },
		OnStart:   func() { e.startResize(m) },
		OnFrame:   func(offset, _ geom.Vector2) { e.resizeFrame(m, offset) },
		OnEnd:     func() { e.endDrag(m) },
		Scheduler: sched,
		Logger:    e.logger,
	})

	e.conn.BindDrag(m.xwin, x11.DragButton(e.cfg.Gestures.MoveModifier, 1), dragHooks(m.move, nil))
	e.conn.BindDrag(m.xwin, x11.DragButton(e.cfg.Gestures.ResizeModifier, 1), dragHooks(m.resize, func(rootX, rootY int) {
		m.grabX, m.grabY = rootX, rootY
	}))
}

func (e *Engine) frameScheduler() gesture.Scheduler {
	if e.sched != nil {
		return e.sched
	}
	return gesture.TickScheduler{
		Interval: time.Second / time.Duration(e.cfg.Gestures.FrameRateHz),
	}
}

// dragHooks adapts X drag callbacks onto a Drag. beforePress, when set,
// runs on the event goroutine before the press is offered, stashing the
// grab position for the resize start.
func dragHooks(d *gesture.Drag, beforePress func(rootX, rootY int)) x11.DragHooks {
	return x11.DragHooks{
		Begin: func(rootX, rootY int) bool {
			if beforePress != nil {
				beforePress(rootX, rootY)
			}
			return d.Press(pointerAt(rootX, rootY))
		},
		Step: func(rootX, rootY int) {
			d.Move(pointerAt(rootX, rootY))
		},
		End: func(rootX, rootY int) {
			d.Release(pointerAt(rootX, rootY))
		},
	}
}

func pointerAt(rootX, rootY int) gesture.Pointer {
	return gesture.Pointer{
		Pos:    geom.Vector2{X: float64(rootX), Y: float64(rootY)},
		Button: gesture.ButtonPrimary,
	}
}

func (e *Engine) allowGesture(m *managed, permits func(layout.Caps) bool) bool {
	if m.released.Load() {
		return false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return m.win.Initialized() && permits(m.win.ActiveLayout().Caps())
}

func (e *Engine) startMove(m *managed) {
	if m.released.Load() {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.col.BringToFront(m.win)
	m.win.StartDrag()
}

func (e *Engine) startResize(m *managed) {
	if m.released.Load() {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.col.BringToFront(m.win)
	m.win.StartDrag()
	m.edges = gesture.PickEdges(m.win.PixelRect(),
		float64(m.grabX), float64(m.grabY), float64(e.cfg.Gestures.EdgeGrip))
}

func (e *Engine) moveFrame(m *managed, offset, delta geom.Vector2) {
	if m.released.Load() {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	m.win.MoveBy(offset, delta)
}

func (e *Engine) resizeFrame(m *managed, offset geom.Vector2) {
	if m.released.Load() {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	m.win.ResizeBy(m.edges.Apply(offset))
}

func (e *Engine) endDrag(m *managed) {
	if m.released.Load() {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	m.win.EndDrag()
}
