package invokable

import "errors"

var (
	// ErrNilFunc is the panic value when a callback is built from a nil function.
	ErrNilFunc = errors.New("invokable: nil function")

	// ErrNilReceiver is the panic value when a method is bound to a nil receiver.
	ErrNilReceiver = errors.New("invokable: nil receiver")
)
