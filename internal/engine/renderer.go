package engine

import (
	"log/slog"
	"sync"
	"time"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/1broseidon/floatwm/internal/anim"
	"github.com/1broseidon/floatwm/internal/geom"
)

// renderer drives managed clients on screen: immediate placement through
// EWMH plus ticker-driven transition playback. Apply, Play and Release
// are only called while the engine lock is held; playback runs on its
// own goroutine against the captured X window.
type renderer struct {
	conn   Backend
	logger *slog.Logger

	// lookup resolves an engine window id to its X client. Called only
	// while the engine lock is held.
	lookup func(id int) (xproto.Window, bool)

	mu    sync.Mutex
	fps   int
	plays map[int]*playback
	zs    map[int]int
}

type playback struct {
	stop chan struct{}
	done chan struct{}
}

func newRenderer(conn Backend, logger *slog.Logger, fps int, lookup func(int) (xproto.Window, bool)) *renderer {
	return &renderer{
		conn:   conn,
		logger: logger,
		lookup: lookup,
		fps:    fps,
		plays:  make(map[int]*playback),
		zs:     make(map[int]int),
	}
}

// Apply places the window immediately, canceling any running playback.
func (r *renderer) Apply(id int, rect geom.Rect, z int) {
	xwin, ok := r.lookup(id)
	if !ok {
		return
	}
	r.cancelPlayback(id)
	raise := r.trackZ(id, z)

	x, y, w, h := rect.Ints()
	if err := r.conn.MoveResize(xwin, x, y, w, h); err != nil {
		r.logger.Warn("window placement failed", "xid", xwin, "error", err)
	}
	if raise {
		if err := r.conn.Raise(xwin); err != nil {
			r.logger.Warn("window restack failed", "xid", xwin, "error", err)
		}
	}
}

// Play starts transition playback for the window, replacing any running
// one. Zero transitions and a disabled frame rate jump straight to the
// final frame.
func (r *renderer) Play(id int, tr anim.Transition, z int) {
	xwin, ok := r.lookup(id)
	if !ok {
		return
	}
	r.cancelPlayback(id)
	if r.trackZ(id, z) {
		if err := r.conn.Raise(xwin); err != nil {
			r.logger.Warn("window restack failed", "xid", xwin, "error", err)
		}
	}

	r.mu.Lock()
	fps := r.fps
	r.mu.Unlock()
	if tr.IsZero() || fps < 1 {
		r.applyFrame(xwin, tr.At(1), transitionFades(tr))
		return
	}

	pb := &playback{stop: make(chan struct{}), done: make(chan struct{})}
	r.mu.Lock()
	r.plays[id] = pb
	r.mu.Unlock()
	go r.animate(id, xwin, tr, fps, pb)
}

// Release forgets the window's render state. The exit transition is
// dropped: the X client is gone by the time the engine releases it, so
// there is no surface left to fade.
func (r *renderer) Release(id int, _ anim.Transition) {
	r.cancelPlayback(id)
	r.mu.Lock()
	delete(r.zs, id)
	r.mu.Unlock()
}

// trackZ records the window's z and reports whether it changed. The
// collection renumbers priorities bottom-up on restacks, so raising
// changed windows in call order rebuilds the stack correctly.
func (r *renderer) trackZ(id, z int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	last, seen := r.zs[id]
	r.zs[id] = z
	return !seen || last != z
}

func (r *renderer) animate(id int, xwin xproto.Window, tr anim.Transition, fps int, pb *playback) {
	defer close(pb.done)

	fades := transitionFades(tr)
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()
	start := time.Now()

	for {
		select {
		case <-pb.stop:
			return
		case now := <-ticker.C:
			p := float64(now.Sub(start)) / float64(tr.Duration)
			if p >= 1 {
				r.applyFrame(xwin, tr.At(1), fades)
				r.mu.Lock()
				if r.plays[id] == pb {
					delete(r.plays, id)
				}
				r.mu.Unlock()
				return
			}
			r.applyFrame(xwin, tr.At(p), fades)
		}
	}
}

// applyFrame pushes one sampled keyframe to the server, scale folded
// into the rect around its center. Opacity is only touched for
// transitions that actually fade.
func (r *renderer) applyFrame(xwin xproto.Window, k anim.Keyframe, fades bool) {
	rect := k.Rect
	if k.Scale > 0 && k.Scale != 1 {
		c := rect.Center()
		w, h := rect.Width*k.Scale, rect.Height*k.Scale
		rect = geom.Rect{X: c.X - w/2, Y: c.Y - h/2, Width: w, Height: h}
	}
	x, y, w, h := rect.Ints()
	if err := r.conn.MoveResize(xwin, x, y, w, h); err != nil {
		r.logger.Debug("frame placement failed", "xid", xwin, "error", err)
		return
	}
	if fades {
		if err := r.conn.SetOpacity(xwin, k.Opacity); err != nil {
			r.logger.Debug("opacity change failed", "xid", xwin, "error", err)
		}
	}
}

func transitionFades(tr anim.Transition) bool {
	for _, k := range tr.Keyframes {
		if k.Opacity != 1 {
			return true
		}
	}
	return false
}

func (r *renderer) cancelPlayback(id int) {
	r.mu.Lock()
	pb := r.plays[id]
	delete(r.plays, id)
	r.mu.Unlock()
	if pb != nil {
		close(pb.stop)
		<-pb.done
	}
}

func (r *renderer) setFPS(fps int) {
	r.mu.Lock()
	r.fps = fps
	r.mu.Unlock()
}

// stopAll cancels every running playback.
func (r *renderer) stopAll() {
	r.mu.Lock()
	plays := r.plays
	r.plays = make(map[int]*playback)
	r.mu.Unlock()
	for _, pb := range plays {
		close(pb.stop)
		<-pb.done
	}
}
