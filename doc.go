// Package invokable provides typed, synchronous events for Go.
//
// An Event holds an ordered set of Callbacks and calls each of them, on the
// calling goroutine, when invoked. Callbacks carry an identity, so the value used to
// subscribe also unsubscribes. Method bindings are identified by receiver and
// method; function bindings by the Func, FuncE or Action call that made them:
//
//	type Button struct {
//	    Pressed invokable.Event[invokable.None]
//	}
//
//	type Light struct{ on bool }
//
//	func (l *Light) Toggle() { l.on = !l.on }
//
//	var b Button
//	light := &Light{}
//	toggle := invokable.MethodAction(light, (*Light).Toggle)
//
//	b.Pressed.Subscribe(toggle)
//	_ = b.Pressed.Invoke(invokable.None{})
//	b.Pressed.Unsubscribe(toggle)
//
// Events with several arguments take a struct. Bound receivers are not owned:
// unsubscribe before discarding one.
package invokable
