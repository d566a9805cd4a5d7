package gesture

import "time"

// Scheduler queues work for the next frame tick. At most one delivery
// per scheduled call; the returned cancel drops the delivery if it has
// not fired yet.
type Scheduler interface {
	Schedule(fn func()) (cancel func())
}

// TickScheduler fires scheduled work after a fixed frame interval,
// approximating an animation-frame callback. The zero value uses a
// 60Hz-ish frame.
type TickScheduler struct {
	Interval time.Duration
}

func (s TickScheduler) Schedule(fn func()) (cancel func()) {
	iv := s.Interval
	if iv <= 0 {
		iv = 16 * time.Millisecond
	}
	t := time.AfterFunc(iv, fn)
	return func() { t.Stop() }
}

// ManualScheduler holds scheduled work until Fire is called. Tests use
// it to step gesture frames deterministically.
type ManualScheduler struct {
	nextID  int
	pending []manualEntry
}

type manualEntry struct {
	id int
	fn func()
}

func (m *ManualScheduler) Schedule(fn func()) (cancel func()) {
	id := m.nextID
	m.nextID++
	m.pending = append(m.pending, manualEntry{id: id, fn: fn})
	return func() {
		for i, e := range m.pending {
			if e.id == id {
				m.pending = append(m.pending[:i], m.pending[i+1:]...)
				return
			}
		}
	}
}

// Fire runs everything scheduled so far, in order. Work scheduled while
// firing waits for the next Fire.
func (m *ManualScheduler) Fire() {
	batch := m.pending
	m.pending = nil
	for _, e := range batch {
		e.fn()
	}
}

// Pending reports how many deliveries are queued.
func (m *ManualScheduler) Pending() int { return len(m.pending) }
