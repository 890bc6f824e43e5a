package invokable

import (
	"errors"
	"slices"
	"sync"

	"github.com/rs/zerolog"
)

var nopLogger = zerolog.Nop()

// Event is an ordered set of callbacks invoked synchronously on the calling
// goroutine. No two subscribed callbacks share an ID.
//
// All operations are serialized by one mutex owned by the event. By default
// Invoke holds it for the whole dispatch: a slow callback blocks every other
// operation on the same event, and a callback must not call back into the
// event it is running on. See WithConcurrentDispatch for the alternative.
//
// The zero Event is ready to use with default options.
type Event[T any] struct {
	mu         sync.Mutex
	callbacks  []Callback[T] // copy-on-write; dispatch may still hold an old slice
	log        *zerolog.Logger
	concurrent bool
}

// New creates an Event with optional configuration.
func New[T any](opts ...Option) *Event[T] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	e := &Event[T]{concurrent: o.concurrent}
	if o.logger != nil {
		l := *o.logger
		if o.name != "" {
			l = l.With().Str("event", o.name).Logger()
		}
		e.log = &l
	}
	return e
}

func (e *Event[T]) logger() *zerolog.Logger {
	if e.log == nil {
		return &nopLogger
	}
	return e.log
}

// Subscribe appends cb unless a callback with the same ID is already
// subscribed, in which case it does nothing.
func (e *Event[T]) Subscribe(cb Callback[T]) *Event[T] {
	if cb.IsZero() {
		return e
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.indexOf(cb.id) >= 0 {
		e.logger().Debug().Stringer("callback", cb.id).Msg("duplicate subscription ignored")
		return e
	}

	// Clip forces a fresh array so an in-flight dispatch never sees the append.
	e.callbacks = append(slices.Clip(e.callbacks), cb)

	e.logger().Debug().
		Stringer("callback", cb.id).
		Int("subscribers", len(e.callbacks)).
		Msg("subscribed")
	return e
}

// Unsubscribe removes the callback with the same ID as cb, if any.
func (e *Event[T]) Unsubscribe(cb Callback[T]) *Event[T] {
	e.mu.Lock()
	defer e.mu.Unlock()

	i := e.indexOf(cb.id)
	if i < 0 {
		return e
	}
	e.callbacks = slices.Concat(e.callbacks[:i], e.callbacks[i+1:])

	e.logger().Debug().
		Stringer("callback", cb.id).
		Int("subscribers", len(e.callbacks)).
		Msg("unsubscribed")
	return e
}

// ReplaceAll drops every subscription and subscribes cb in one step.
// No other operation observes the event in between.
// Replacing with the zero Callback leaves the event empty.
func (e *Event[T]) ReplaceAll(cb Callback[T]) *Event[T] {
	e.mu.Lock()
	defer e.mu.Unlock()

	dropped := len(e.callbacks)
	e.callbacks = nil
	if !cb.IsZero() {
		e.callbacks = []Callback[T]{cb}
	}

	e.logger().Debug().
		Stringer("callback", cb.id).
		Int("dropped", dropped).
		Msg("subscriptions replaced")
	return e
}

// Clear drops every subscription. Subscribers are not notified.
func (e *Event[T]) Clear() *Event[T] {
	e.mu.Lock()
	defer e.mu.Unlock()

	dropped := len(e.callbacks)
	e.callbacks = nil

	e.logger().Debug().Int("dropped", dropped).Msg("subscriptions cleared")
	return e
}

// Invoke calls every subscribed callback in subscription order with arg.
//
// Dispatch stops at the first callback that returns an error, and that error
// is returned as is. A panicking callback unwinds through Invoke likewise.
// The event stays consistent on every exit path.
func (e *Event[T]) Invoke(arg T) error {
	return e.dispatch(arg, false)
}

// InvokeAll calls every subscribed callback even when some fail and returns
// the failures joined with errors.Join, or nil.
func (e *Event[T]) InvokeAll(arg T) error {
	return e.dispatch(arg, true)
}

func (e *Event[T]) dispatch(arg T, all bool) error {
	e.mu.Lock()
	callbacks := e.callbacks
	if e.concurrent {
		e.mu.Unlock()
	} else {
		defer e.mu.Unlock()
	}

	if !all {
		for _, cb := range callbacks {
			if err := cb.Invoke(arg); err != nil {
				return err
			}
		}
		return nil
	}

	var errs []error
	for _, cb := range callbacks {
		if err := cb.Invoke(arg); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Len returns the number of subscribed callbacks.
func (e *Event[T]) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.callbacks)
}

// Has reports whether a callback with the same ID as cb is subscribed.
func (e *Event[T]) Has(cb Callback[T]) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.indexOf(cb.id) >= 0
}

// Callbacks returns the subscribed callbacks in order.
// Returns a copy; modifying it doesn't affect the event.
func (e *Event[T]) Callbacks() []Callback[T] {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Clone(e.callbacks)
}

// indexOf must be called while holding e.mu.
func (e *Event[T]) indexOf(id ID) int {
	return slices.IndexFunc(e.callbacks, func(cb Callback[T]) bool {
		return cb.id == id
	})
}
