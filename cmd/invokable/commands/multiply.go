package commands

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/zoobzio/invokable"
	"github.com/zoobzio/invokable/internal/logging"
)

// Multiplier prints its input scaled by ID.
type Multiplier struct {
	ID  int
	out io.Writer
}

// Apply prints ID*x.
func (m *Multiplier) Apply(x int) {
	fmt.Fprintln(m.out, m.ID*x)
}

// Divider prints its input divided by six.
type Divider struct {
	out io.Writer
}

// Apply prints x/6.
func (d *Divider) Apply(x int) {
	fmt.Fprintln(d.out, x/6)
}

func newMultiplyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "multiply [value]",
		Short: "Invoke three receivers bound to one int event",
		Long: `Binds two Multipliers (IDs 2 and 1) and a Divider to one event and
invokes it with value (default 12). Each receiver prints its result in
subscription order.

Examples:
  invokable multiply        # 24, 12, 2
  invokable multiply 30     # 60, 30, 5`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value := 12
			if len(args) == 1 {
				v, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid value %q: %w", args[0], err)
				}
				value = v
			}
			return runMultiply(cmd.OutOrStdout(), value)
		},
	}
}

func runMultiply(out io.Writer, value int) error {
	logger := logging.Named("multiply")

	event := invokable.New[int](
		invokable.WithLogger(logger),
		invokable.WithName("multiply"),
	)

	x := &Multiplier{ID: 2, out: out}
	y := &Multiplier{ID: 1, out: out}
	z := &Divider{out: out}

	callx := invokable.Method(x, (*Multiplier).Apply)
	cally := invokable.Method(y, (*Multiplier).Apply)
	callz := invokable.Method(z, (*Divider).Apply)

	event.Subscribe(callx).Subscribe(cally).Subscribe(callz)
	if err := event.Invoke(value); err != nil {
		return fmt.Errorf("invoke: %w", err)
	}
	event.Unsubscribe(callx).Unsubscribe(cally).Unsubscribe(callz)

	logger.Debug().Int("subscribers", event.Len()).Msg("multiply demo finished")
	return nil
}
