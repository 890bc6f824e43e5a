package invokable_test

import (
	"fmt"

	"github.com/zoobzio/invokable"
)

type EventCaller struct {
	ButtonPress invokable.Event[invokable.None]
}

type EventListener struct {
	presses int
}

func (l *EventListener) Notifier() {
	l.presses++
	fmt.Println("Button Pressed")
}

func Example() {
	var caller EventCaller
	listener := &EventListener{}

	call := invokable.MethodAction(listener, (*EventListener).Notifier)
	caller.ButtonPress.Subscribe(call)
	_ = caller.ButtonPress.Invoke(invokable.None{})

	caller.ButtonPress.Unsubscribe(call)
	_ = caller.ButtonPress.Invoke(invokable.None{})
	// Output:
	// Button Pressed
}

type Multiplier struct {
	ID int
}

func (m *Multiplier) Apply(x int) {
	fmt.Println(m.ID * x)
}

type Divider struct {
	By int
}

func (d *Divider) Apply(x int) {
	fmt.Println(x / d.By)
}

func ExampleMethod() {
	event := invokable.New[int]()
	x, y := &Multiplier{ID: 2}, &Multiplier{ID: 1}
	z := &Divider{By: 6}

	callx := invokable.Method(x, (*Multiplier).Apply)
	cally := invokable.Method(y, (*Multiplier).Apply)
	callz := invokable.Method(z, (*Divider).Apply)

	event.Subscribe(callx).Subscribe(cally).Subscribe(callz)
	_ = event.Invoke(12)

	event.Unsubscribe(callx).Unsubscribe(cally).Unsubscribe(callz)
	fmt.Println(event.Len())
	// Output:
	// 24
	// 12
	// 2
	// 0
}

func ExampleEvent_ReplaceAll() {
	event := invokable.New[string]()
	greet := invokable.Func(func(name string) { fmt.Println("hello", name) })
	wave := invokable.Func(func(name string) { fmt.Println("bye", name) })

	event.Subscribe(greet)
	event.ReplaceAll(wave)
	_ = event.Invoke("gopher")
	// Output:
	// bye gopher
}

func ExampleEvent_Hook() {
	event := invokable.New[int]()
	sub := event.Hook(invokable.Func(func(n int) { fmt.Println("got", n) }))

	_ = event.Invoke(1)
	sub.Close()
	_ = event.Invoke(2)
	// Output:
	// got 1
}
