// Package binding tracks which window currently listens for mouse motion and
// release events. A subscription exists only while a drag or resize is in
// progress; the program filter drops motion events whenever nothing listens.
package binding

// Release ends a subscription. Calling it more than once is safe.
type Release func()

type subscription struct {
	owner    string
	released bool
}

// Bindings is the registry of live gesture subscriptions for one desktop.
// It is owned by the Bubble Tea update loop and is not safe for concurrent
// use.
type Bindings struct {
	subs     []*subscription
	acquired int
}

// New returns an empty registry.
func New() *Bindings {
	return &Bindings{}
}

// Acquire subscribes owner to motion and release events.
func (b *Bindings) Acquire(owner string) Release {
	sub := &subscription{owner: owner}
	b.subs = append(b.subs, sub)
	b.acquired++
	return func() {
		if sub.released {
			return
		}
		sub.released = true
		b.remove(sub)
	}
}

func (b *Bindings) remove(sub *subscription) {
	for i, s := range b.subs {
		if s == sub {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			return
		}
	}
}

// Active returns the number of live subscriptions.
func (b *Bindings) Active() int {
	return len(b.subs)
}

// Acquired returns how many subscriptions were ever handed out.
func (b *Bindings) Acquired() int {
	return b.acquired
}

// Listening reports whether any subscription is live.
func (b *Bindings) Listening() bool {
	return len(b.subs) > 0
}

// Owner returns the owner of the most recent live subscription.
func (b *Bindings) Owner() (string, bool) {
	if len(b.subs) == 0 {
		return "", false
	}
	return b.subs[len(b.subs)-1].owner, true
}

// ReleaseAll drops every subscription. Releases handed out earlier become
// no-ops.
func (b *Bindings) ReleaseAll() {
	for _, s := range b.subs {
		s.released = true
	}
	b.subs = nil
}
