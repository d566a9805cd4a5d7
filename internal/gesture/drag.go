// Package gesture turns pointer-like input into frame-batched drag
// callbacks. Hosts normalize their native events into Pointer values and
// push them at a Drag; the drag accumulates movement and delivers one
// (offset, delta) pair per frame tick at most.
package gesture

import (
	"log/slog"
	"sync"

	"github.com/1broseidon/floatwm/internal/geom"
)

// Button identifies a pointer button.
type Button int

const (
	ButtonNone Button = iota
	ButtonPrimary
	ButtonSecondary
	ButtonMiddle
)

// Modifiers is a bitmask of held modifier keys.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
	ModSuper
)

// Pointer is one normalized pointer event.
type Pointer struct {
	Pos    geom.Vector2
	Button Button
	Mods   Modifiers
}

// Config wires a Drag to its host. OnFrame receives the cumulative
// offset since the gesture started plus the movement since the previous
// delivery; it is called from the scheduler's goroutine.
type Config struct {
	// Allow gates gesture start; a nil Allow admits every press.
	Allow   func() bool
	OnStart func()
	OnFrame func(offset, delta geom.Vector2)
	OnEnd   func()

	Scheduler Scheduler
	Logger    *slog.Logger
}

// Drag is the pointer-gesture state machine. Starts are accepted only
// for an unmodified primary press while Allow holds; movement batches to
// at most one OnFrame per scheduler tick; the per-frame delta resets
// only once a delivery has gone out.
type Drag struct {
	mu          sync.Mutex
	cfg         Config
	active      bool
	disposed    bool
	origin      geom.Vector2
	offset      geom.Vector2
	delta       geom.Vector2
	cancelFrame func()
}

// New returns a Drag using cfg. A nil scheduler falls back to a
// TickScheduler, a nil logger to slog.Default.
func New(cfg Config) *Drag {
	if cfg.Scheduler == nil {
		cfg.Scheduler = TickScheduler{}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Drag{cfg: cfg}
}

// Press tries to start the gesture and reports whether it did. Presses
// with the wrong button, any modifier held, or a refusing Allow are
// ignored, as are presses on a disposed or already active drag.
func (d *Drag) Press(p Pointer) bool {
	d.mu.Lock()
	if d.disposed || d.active {
		d.mu.Unlock()
		return false
	}
	if p.Button != ButtonPrimary || p.Mods != 0 {
		d.mu.Unlock()
		return false
	}
	if d.cfg.Allow != nil && !d.cfg.Allow() {
		d.mu.Unlock()
		return false
	}
	d.active = true
	d.origin = p.Pos
	d.offset = geom.Vector2{}
	d.delta = geom.Vector2{}
	onStart := d.cfg.OnStart
	d.mu.Unlock()

	if onStart != nil {
		onStart()
	}
	return true
}

// Move folds a pointer movement into the gesture. The first movement of
// a frame schedules the flush; later movements in the same frame merge
// into it.
func (d *Drag) Move(p Pointer) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.disposed || !d.active {
		return
	}

	total := p.Pos.Sub(d.origin)
	d.delta = d.delta.Add(total.Sub(d.offset))
	d.offset = total

	if d.cancelFrame == nil {
		d.cancelFrame = d.cfg.Scheduler.Schedule(d.flush)
	}
}

func (d *Drag) flush() {
	d.mu.Lock()
	d.cancelFrame = nil
	if d.disposed || !d.active {
		d.mu.Unlock()
		return
	}
	offset, delta := d.offset, d.delta
	// The delta only resets because this delivery is going out.
	d.delta = geom.Vector2{}
	onFrame := d.cfg.OnFrame
	d.mu.Unlock()

	if onFrame != nil {
		onFrame(offset, delta)
	}
}

// Release ends the gesture on pointer release. A pending frame delivery
// is canceled rather than flushed.
func (d *Drag) Release(Pointer) {
	d.end()
}

// Cancel ends the gesture without a terminating pointer event.
func (d *Drag) Cancel() {
	d.end()
}

func (d *Drag) end() {
	d.mu.Lock()
	if !d.active {
		d.mu.Unlock()
		return
	}
	d.active = false
	if d.cancelFrame != nil {
		d.cancelFrame()
		d.cancelFrame = nil
	}
	onEnd := d.cfg.OnEnd
	d.mu.Unlock()

	if onEnd != nil {
		onEnd()
	}
}

// Dispose ends any running gesture and makes every later call a no-op.
// Safe to call repeatedly.
func (d *Drag) Dispose() {
	d.mu.Lock()
	if d.disposed {
		d.mu.Unlock()
		return
	}
	d.disposed = true
	wasActive := d.active
	d.active = false
	if d.cancelFrame != nil {
		d.cancelFrame()
		d.cancelFrame = nil
	}
	onEnd := d.cfg.OnEnd
	d.mu.Unlock()

	if wasActive && onEnd != nil {
		onEnd()
	}
}

// Active reports whether a gesture is in flight.
func (d *Drag) Active() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.active
}
