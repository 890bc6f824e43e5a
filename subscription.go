package invokable

import "sync"

// Subscription is a handle to a callback hooked onto an Event.
// Call Close() to unsubscribe it.
type Subscription[T any] struct {
	event    *Event[T]
	callback Callback[T]
	once     sync.Once
}

// Hook subscribes cb and returns a handle that unsubscribes it on Close.
// If cb was already subscribed, the handle still refers to that subscription.
func (e *Event[T]) Hook(cb Callback[T]) *Subscription[T] {
	e.Subscribe(cb)
	return &Subscription[T]{
		event:    e,
		callback: cb,
	}
}

// Callback returns the subscribed callback.
func (s *Subscription[T]) Callback() Callback[T] { return s.callback }

// Close removes the callback from its event. Later calls do nothing.
func (s *Subscription[T]) Close() {
	s.once.Do(func() {
		s.event.Unsubscribe(s.callback)
	})
}
