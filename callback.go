package invokable

import (
	"fmt"
	"reflect"
	"sync/atomic"
)

// None is the argument type of events that carry no payload.
type None struct{}

// ID identifies the binding behind a Callback. IDs are comparable and can
// be used as map keys.
//
// Method bindings are identified by receiver and method, so rebuilding a
// callback from the same pair yields the same ID. Function bindings are
// identified by construction: every Func, FuncE, Action or Clone call takes
// the next Seq, and only copies of that Callback share its ID.
type ID struct {
	// Receiver is the address of the bound receiver, or 0 for free functions.
	Receiver uintptr

	// Function is the entry point of the bound code.
	Function uintptr

	// Seq orders function bindings and clones by construction; 0 for method
	// bindings.
	Seq uint64
}

// String formats the ID as receiver/function/seq.
func (id ID) String() string {
	return fmt.Sprintf("%#x/%#x/%d", id.Receiver, id.Function, id.Seq)
}

var seq atomic.Uint64

// Callback is an immutable handle to a bound function. Compare callbacks
// with Equal or by ID; the == operator does not apply.
// Build one with Func, FuncE, Action, Method, MethodE or MethodAction and keep
// it around: the same value unsubscribes it later.
//
// The zero Callback binds nothing and invoking it does nothing.
type Callback[T any] struct {
	id ID
	fn func(T) error
}

// Func binds a free function or closure.
//
// Each call creates a new identity, even for the same function: keep the
// returned Callback to unsubscribe it later. Use Method when the binding
// itself should identify the callback.
func Func[T any](fn func(T)) Callback[T] {
	if fn == nil {
		panic(ErrNilFunc)
	}
	return Callback[T]{
		id: funcID(fn),
		fn: func(arg T) error {
			fn(arg)
			return nil
		},
	}
}

// FuncE binds a free function that can fail.
func FuncE[T any](fn func(T) error) Callback[T] {
	if fn == nil {
		panic(ErrNilFunc)
	}
	return Callback[T]{
		id: funcID(fn),
		fn: fn,
	}
}

// Action binds a function that takes no arguments.
func Action(fn func()) Callback[None] {
	if fn == nil {
		panic(ErrNilFunc)
	}
	return Callback[None]{
		id: funcID(fn),
		fn: func(None) error {
			fn()
			return nil
		},
	}
}

// Method binds a method expression to a receiver:
//
//	cb := invokable.Method(&counter, (*Counter).Add)
//
// m should be a method expression. Its code address and the receiver's
// address form the identity, so equal pairs always produce equal callbacks.
//
// The receiver is referenced, not owned. Callers must keep it valid for as
// long as the callback may run and unsubscribe before discarding it.
// Receivers of zero size may share an address and therefore an identity.
func Method[R, T any](recv *R, m func(*R, T)) Callback[T] {
	id := methodID(recv, m)
	return Callback[T]{
		id: id,
		fn: func(arg T) error {
			m(recv, arg)
			return nil
		},
	}
}

// MethodE binds a method that can fail.
func MethodE[R, T any](recv *R, m func(*R, T) error) Callback[T] {
	id := methodID(recv, m)
	return Callback[T]{
		id: id,
		fn: func(arg T) error {
			return m(recv, arg)
		},
	}
}

// MethodAction binds a method that takes no arguments.
func MethodAction[R any](recv *R, m func(*R)) Callback[None] {
	id := methodID(recv, m)
	return Callback[None]{
		id: id,
		fn: func(None) error {
			m(recv)
			return nil
		},
	}
}

// ID returns the callback's identity.
func (c Callback[T]) ID() ID { return c.id }

// Equal reports whether both callbacks share an identity.
func (c Callback[T]) Equal(other Callback[T]) bool {
	return c.id == other.id
}

// IsZero reports whether c binds nothing.
func (c Callback[T]) IsZero() bool { return c.fn == nil }

// Invoke calls the bound function with arg.
// Errors and panics from the function reach the caller unchanged.
func (c Callback[T]) Invoke(arg T) error {
	if c.fn == nil {
		return nil
	}
	return c.fn(arg)
}

// Clone returns a callback that runs the same function under a new
// identity, so it can be subscribed alongside c.
func (c Callback[T]) Clone() Callback[T] {
	if c.fn == nil {
		return c
	}
	id := c.id
	id.Seq = seq.Add(1)
	return Callback[T]{id: id, fn: c.fn}
}

func funcID[F any](fn F) ID {
	return ID{
		Function: reflect.ValueOf(fn).Pointer(),
		Seq:      seq.Add(1),
	}
}

func methodID[R, F any](recv *R, m F) ID {
	if recv == nil {
		panic(ErrNilReceiver)
	}
	v := reflect.ValueOf(m)
	if v.IsNil() {
		panic(ErrNilFunc)
	}
	return ID{
		Receiver: reflect.ValueOf(recv).Pointer(),
		Function: v.Pointer(),
	}
}
