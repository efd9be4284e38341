// Package events provides the synchronous publish/subscribe hub that connects
// stores, the presenter and the views.
//
// Dispatch is a direct call-stack fan-out: Emit invokes every matching handler
// in registration order before returning, a panicking handler unwinds through
// the Emit call site, and a handler may Emit again (executed inline, depth
// first).
package events

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// Wildcard matches every event name.
const Wildcard Name = "*"

// Handler receives an emitted event.
type Handler func(Event)

// Subscription identifies a registered handler; pass it to Off to deregister.
type Subscription struct {
	pattern Name
	id      uint64
}

type entry struct {
	id      uint64
	pattern Name
	fn      Handler
	removed atomic.Bool
}

// Bus is the event dispatcher. Construct one per application and inject it.
type Bus struct {
	mu       sync.Mutex
	nextID   uint64
	handlers []*entry
	log      *zap.Logger
}

// Option configures a Bus.
type Option func(*Bus)

// WithLogger traces every emit at debug level.
func WithLogger(l *zap.Logger) Option {
	return func(b *Bus) { b.log = l }
}

// NewBus creates an empty bus.
func NewBus(opts ...Option) *Bus {
	b := &Bus{log: zap.NewNop()}
	for _, o := range opts {
		o(b)
	}
	return b
}

// On registers fn for events named pattern, or for every event when pattern
// is Wildcard.
func (b *Bus) On(pattern Name, fn Handler) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	e := &entry{id: b.nextID, pattern: pattern, fn: fn}
	b.handlers = append(b.handlers, e)
	return Subscription{pattern: pattern, id: e.id}
}

// Off deregisters a handler. A handler removed while an emit is in progress
// is not invoked for the remainder of that emit.
func (b *Bus) Off(sub Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, e := range b.handlers {
		if e.id == sub.id && e.pattern == sub.pattern {
			e.removed.Store(true)
			b.handlers = append(b.handlers[:i:i], b.handlers[i+1:]...)
			return
		}
	}
}

// Emit delivers ev to every matching handler. Handlers registered during the
// emit do not receive it.
func (b *Bus) Emit(ev Event) {
	name := ev.EventName()
	b.mu.Lock()
	snapshot := make([]*entry, 0, len(b.handlers))
	for _, e := range b.handlers {
		if e.pattern == name || e.pattern == Wildcard {
			snapshot = append(snapshot, e)
		}
	}
	b.mu.Unlock()

	b.log.Debug("emit", zap.String("event", string(name)), zap.Int("handlers", len(snapshot)))
	for _, e := range snapshot {
		if e.removed.Load() {
			continue
		}
		e.fn(ev)
	}
}

// Trigger returns a callback that emits a Named event called name carrying
// whatever argument it receives. It adapts imperative callback sites.
func (b *Bus) Trigger(name Name) func(payload any) {
	return func(payload any) {
		b.Emit(Named{Name: name, Payload: payload})
	}
}

// Subscribe registers a handler for the event type T.
func Subscribe[T Event](b *Bus, fn func(T)) Subscription {
	var zero T
	return b.On(zero.EventName(), func(ev Event) {
		if v, ok := ev.(T); ok {
			fn(v)
		}
	})
}
