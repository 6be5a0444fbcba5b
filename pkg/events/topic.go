package events

import (
	"sync"

	"github.com/google/uuid"
)

// Subscription identifies a handler registered on a Topic.
type Subscription interface {
	ID() uuid.UUID
	// Cancel removes the handler. Cancelling twice is a no-op.
	Cancel()
}

type handler[T any] struct {
	id uuid.UUID
	fn func(T)
}

// Topic is a synchronous publish/subscribe channel for one event type.
// Handlers run on the publishing goroutine in subscription order.
type Topic[T any] struct {
	mu       sync.Mutex
	handlers []handler[T]
}

type subscription[T any] struct {
	id    uuid.UUID
	topic *Topic[T]
}

func (s *subscription[T]) ID() uuid.UUID {
	return s.id
}

func (s *subscription[T]) Cancel() {
	s.topic.unsubscribe(s.id)
}

// Subscribe registers fn and returns a handle used to cancel it.
func (t *Topic[T]) Subscribe(fn func(T)) Subscription {
	t.mu.Lock()
	defer t.mu.Unlock()
	id := uuid.New()
	t.handlers = append(t.handlers, handler[T]{id: id, fn: fn})
	return &subscription[T]{id: id, topic: t}
}

// Once registers fn for the next event only.
func (t *Topic[T]) Once(fn func(T)) Subscription {
	var sub Subscription
	sub = t.Subscribe(func(ev T) {
		sub.Cancel()
		fn(ev)
	})
	return sub
}

func (t *Topic[T]) unsubscribe(id uuid.UUID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i, h := range t.handlers {
		if h.id == id {
			t.handlers = append(t.handlers[:i:i], t.handlers[i+1:]...)
			return
		}
	}
}

// Publish delivers ev to the handlers registered at the time of the call.
// Handlers added during delivery receive the next event, not this one.
func (t *Topic[T]) Publish(ev T) {
	t.mu.Lock()
	snapshot := make([]handler[T], len(t.handlers))
	copy(snapshot, t.handlers)
	t.mu.Unlock()

	for _, h := range snapshot {
		if !t.active(h.id) {
			continue
		}
		h.fn(ev)
	}
}

func (t *Topic[T]) active(id uuid.UUID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, h := range t.handlers {
		if h.id == id {
			return true
		}
	}
	return false
}

// Len returns the number of registered handlers.
func (t *Topic[T]) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.handlers)
}

// Clear removes every handler.
func (t *Topic[T]) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.handlers = nil
}
