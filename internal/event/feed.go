// Package event provides the ordered observer lists layouts and window
// collections use to notify their subscribers.
package event

// Feed is an ordered list of subscribers invoked synchronously, in
// subscription order, on every publish. Feeds are not safe for concurrent
// use; callers serialize access the same way they do for the objects that
// own them.
type Feed[T any] struct {
	nextID int
	subs   []feedSub[T]
}

type feedSub[T any] struct {
	id int
	fn func(T)
}

// Subscribe appends fn to the feed and returns a cancel function removing
// it again. The cancel function is idempotent.
func (f *Feed[T]) Subscribe(fn func(T)) (cancel func()) {
	id := f.nextID
	f.nextID++
	f.subs = append(f.subs, feedSub[T]{id: id, fn: fn})
	return func() { f.remove(id) }
}

func (f *Feed[T]) remove(id int) {
	for i, s := range f.subs {
		if s.id == id {
			f.subs = append(f.subs[:i], f.subs[i+1:]...)
			return
		}
	}
}

// Publish invokes every current subscriber with v, in subscription order.
// Subscribers added during a publish are deferred to the next one;
// subscribers removed during a publish are skipped.
func (f *Feed[T]) Publish(v T) {
	snapshot := make([]feedSub[T], len(f.subs))
	copy(snapshot, f.subs)
	for _, s := range snapshot {
		if !f.subscribed(s.id) {
			continue
		}
		s.fn(v)
	}
}

func (f *Feed[T]) subscribed(id int) bool {
	for _, s := range f.subs {
		if s.id == id {
			return true
		}
	}
	return false
}

// Len reports the number of active subscribers.
func (f *Feed[T]) Len() int { return len(f.subs) }
