// Package event provides the in-process notification hub shared by the
// selection model, the key dispatcher, and the UI. A Bus is created per
// application session and passed to each component; there is no package
// level instance. Delivery is synchronous and in subscription order, and
// handlers may publish or subscribe re-entrantly.
package event

import (
	"sync"

	"github.com/google/uuid"
)

// Handler receives the payload published for an event name.
type Handler func(payload any)

// Subscription identifies a registered handler and allows its removal.
type Subscription struct {
	id   string
	name string
	bus  *Bus
}

// ID returns the unique identifier of this subscription.
func (s *Subscription) ID() string { return s.id }

// Unsubscribe detaches the handler. It is safe to call more than once,
// and safe to call from inside a handler while a publish is in flight.
func (s *Subscription) Unsubscribe() {
	if s == nil || s.bus == nil {
		return
	}
	s.bus.remove(s.name, s.id)
}

type entry struct {
	id      string
	fn      Handler
	once    bool
	removed bool
}

// Bus dispatches named events to subscribed handlers.
type Bus struct {
	mu   sync.Mutex
	subs map[string][]*entry
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[string][]*entry)}
}

// Subscribe registers fn for events published under name. Handlers fire
// in subscription order. The returned subscription cancels delivery.
func (b *Bus) Subscribe(name string, fn Handler) *Subscription {
	return b.add(name, fn, false)
}

// SubscribeOnce registers fn for a single delivery; the subscription is
// removed before fn runs, so a re-entrant publish cannot reach it twice.
func (b *Bus) SubscribeOnce(name string, fn Handler) *Subscription {
	return b.add(name, fn, true)
}

func (b *Bus) add(name string, fn Handler, once bool) *Subscription {
	if fn == nil {
		return &Subscription{}
	}
	e := &entry{id: uuid.NewString(), fn: fn, once: once}
	b.mu.Lock()
	b.subs[name] = append(b.subs[name], e)
	b.mu.Unlock()
	return &Subscription{id: e.id, name: name, bus: b}
}

func (b *Bus) remove(name, id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	entries := b.subs[name]
	for i, e := range entries {
		if e.id == id {
			e.removed = true
			b.subs[name] = append(entries[:i], entries[i+1:]...)
			break
		}
	}
	if len(b.subs[name]) == 0 {
		delete(b.subs, name)
	}
}

// Publish delivers payload to every handler subscribed under name at the
// moment of the call. The subscriber list is snapshotted first and no
// lock is held while a handler runs, so handlers may publish further
// events or adjust subscriptions without deadlocking. Handlers added
// during delivery do not see the in-flight event; handlers removed
// during delivery are skipped.
func (b *Bus) Publish(name string, payload any) {
	b.mu.Lock()
	entries := make([]*entry, len(b.subs[name]))
	copy(entries, b.subs[name])
	b.mu.Unlock()

	for _, e := range entries {
		b.mu.Lock()
		alive := !e.removed
		if alive && e.once {
			b.detachLocked(name, e)
		}
		b.mu.Unlock()
		if !alive {
			continue
		}
		e.fn(payload)
	}
}

// detachLocked removes e from the live list without touching e.fn; the
// caller still owns the delivery. Callers must hold b.mu.
func (b *Bus) detachLocked(name string, target *entry) {
	target.removed = true
	entries := b.subs[name]
	for i, e := range entries {
		if e == target {
			b.subs[name] = append(entries[:i], entries[i+1:]...)
			break
		}
	}
	if len(b.subs[name]) == 0 {
		delete(b.subs, name)
	}
}

// SubscriberCount reports how many handlers are attached to name.
func (b *Bus) SubscriberCount(name string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs[name])
}
