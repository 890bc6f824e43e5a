package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/zoobzio/invokable"
	"github.com/zoobzio/invokable/internal/logging"
)

// EventCaller owns an event that fires when its button is pressed.
type EventCaller struct {
	ButtonPress *invokable.Event[invokable.None]
}

// EventListener reports button presses.
type EventListener struct {
	out io.Writer
}

// Notifier prints one line per press.
func (l *EventListener) Notifier() {
	fmt.Fprintln(l.out, "Button Pressed")
}

func newButtonCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "button",
		Short: "Subscribe a listener to a button, press it, then unsubscribe",
		Long: `Subscribes EventListener.Notifier to a button press event and invokes it.
The listener is then unsubscribed and the event invoked again, which
prints nothing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runButton(cmd.OutOrStdout())
		},
	}
}

func runButton(out io.Writer) error {
	logger := logging.Named("button")

	caller := EventCaller{
		ButtonPress: invokable.New[invokable.None](
			invokable.WithLogger(logger),
			invokable.WithName("button.press"),
		),
	}
	listener := &EventListener{out: out}

	call := invokable.MethodAction(listener, (*EventListener).Notifier)
	caller.ButtonPress.Subscribe(call)
	if err := caller.ButtonPress.Invoke(invokable.None{}); err != nil {
		return fmt.Errorf("press button: %w", err)
	}

	caller.ButtonPress.Unsubscribe(call)
	if err := caller.ButtonPress.Invoke(invokable.None{}); err != nil {
		return fmt.Errorf("press button: %w", err)
	}

	logger.Debug().Int("subscribers", caller.ButtonPress.Len()).Msg("button demo finished")
	return nil
}
