package domain

// Subscription is a handle returned by Subscribe. Unsubscribe is safe to call more than once.
type Subscription struct {
	cancel func()
}

func (s *Subscription) Unsubscribe() {
	if s == nil || s.cancel == nil {
		return
	}
	s.cancel()
	s.cancel = nil
}

// Subscriptions releases a group of subscriptions together
type Subscriptions struct {
	items []*Subscription
}

func (g *Subscriptions) Add(s ...*Subscription) {
	g.items = append(g.items, s...)
}

// Clear unsubscribes everything and keeps the group usable
func (g *Subscriptions) Clear() {
	for _, s := range g.items {
		s.Unsubscribe()
	}
	g.items = nil
}

func (g *Subscriptions) Len() int { return len(g.items) }

type handler[T any] struct {
	id int
	fn func(T)
}

// Signal delivers values synchronously to subscribers in subscription order
type Signal[T any] struct {
	nextID   int
	handlers []handler[T]
}

func NewSignal[T any]() *Signal[T] {
	return &Signal[T]{}
}

func (s *Signal[T]) Subscribe(fn func(T)) *Subscription {
	s.nextID++
	id := s.nextID
	s.handlers = append(s.handlers, handler[T]{id: id, fn: fn})
	return &Subscription{cancel: func() { s.remove(id) }}
}

func (s *Signal[T]) remove(id int) {
	for i, h := range s.handlers {
		if h.id == id {
			s.handlers = append(s.handlers[:i:i], s.handlers[i+1:]...)
			return
		}
	}
}

// Emit calls every handler subscribed at the moment of the call.
// Handlers added during delivery see the next value only.
func (s *Signal[T]) Emit(v T) {
	snapshot := s.handlers
	for _, h := range snapshot {
		if s.subscribed(h.id) {
			h.fn(v)
		}
	}
}

func (s *Signal[T]) subscribed(id int) bool {
	for _, h := range s.handlers {
		if h.id == id {
			return true
		}
	}
	return false
}

// Subscribers returns the number of live handlers
func (s *Signal[T]) Subscribers() int { return len(s.handlers) }

// Reset drops every handler
func (s *Signal[T]) Reset() { s.handlers = nil }

// Property holds a current value and notifies subscribers on every Set
type Property[T any] struct {
	value   T
	changed Signal[T]
}

func NewProperty[T any](initial T) *Property[T] {
	return &Property[T]{value: initial}
}

func (p *Property[T]) Get() T { return p.value }

func (p *Property[T]) Set(v T) {
	p.value = v
	p.changed.Emit(v)
}

func (p *Property[T]) Subscribe(fn func(T)) *Subscription {
	return p.changed.Subscribe(fn)
}

func (p *Property[T]) Subscribers() int { return p.changed.Subscribers() }

// Reinitialize overwrites the value without notifying and drops every subscriber
func (p *Property[T]) Reinitialize(v T) {
	p.value = v
	p.changed.Reset()
}
