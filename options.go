package invokable

import "github.com/rs/zerolog"

// Option configures an Event.
type Option func(*options)

type options struct {
	logger     *zerolog.Logger
	name       string
	concurrent bool
}

// WithLogger sets the logger used for subscription bookkeeping.
// Entries are written at debug level. Callback failures are never logged;
// they belong to whoever called Invoke.
// Default is zerolog.Nop().
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = &logger
	}
}

// WithName labels the event in log entries.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithConcurrentDispatch releases the guard before callbacks run.
//
// Invoke copies the subscriber list under the guard and dispatches from the
// copy, so callbacks may subscribe and unsubscribe on the same event and a
// slow callback does not block other goroutines. Subscriptions made during
// a dispatch are not part of it; removals during a dispatch do not skip
// callbacks already copied.
//
// By default Invoke holds the guard for the whole dispatch instead.
func WithConcurrentDispatch() Option {
	return func(o *options) {
		o.concurrent = true
	}
}
