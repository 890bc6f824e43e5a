package commands

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/zoobzio/invokable"
	"github.com/zoobzio/invokable/internal/logging"
)

// Report summarises a stress run.
type Report struct {
	Subscribes   int64
	Unsubscribes int64
	Replaces     int64
	Clears       int64
	Invokes      int64
	Calls        int64
	Remaining    int
	Elapsed      time.Duration
}

// dispatch is the argument of the stressed event. Each invocation gets its
// own, so per-dispatch call counts can be checked.
type dispatch struct {
	hits []atomic.Int32
}

type worker struct {
	index int
	calls *atomic.Int64
}

func (w *worker) handle(d *dispatch) {
	d.hits[w.index].Add(1)
	w.calls.Add(1)
}

func newStressCmd() *cobra.Command {
	var (
		scenarioPath string
		concurrent   bool
		flagScenario = DefaultScenario()
	)

	cmd := &cobra.Command{
		Use:   "stress",
		Short: "Run random concurrent operations against one event",
		Long: `Starts a number of goroutines that subscribe, unsubscribe, replace, clear
and invoke callbacks on one shared event. After the run, the subscriber
list is checked for duplicate identities, and every dispatch is checked for
callbacks invoked more than once.

Examples:
  invokable stress
  invokable stress --goroutines 32 --iterations 5000 --concurrent
  invokable stress --scenario scenario.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := DefaultScenario()
			if scenarioPath != "" {
				loaded, err := LoadScenario(scenarioPath)
				if err != nil {
					return err
				}
				s = loaded
			}

			flags := cmd.Flags()
			if flags.Changed("goroutines") {
				s.Goroutines = flagScenario.Goroutines
			}
			if flags.Changed("iterations") {
				s.Iterations = flagScenario.Iterations
			}
			if flags.Changed("subscribers") {
				s.Subscribers = flagScenario.Subscribers
			}
			if flags.Changed("seed") {
				s.Seed = flagScenario.Seed
			}
			if flags.Changed("concurrent") {
				s.Dispatch = DispatchSerialized
				if concurrent {
					s.Dispatch = DispatchConcurrent
				}
			}
			if err := s.Validate(); err != nil {
				return fmt.Errorf("invalid scenario: %w", err)
			}

			report, err := RunStress(cmd.Context(), s, logging.Named("stress"))
			if err != nil {
				return err
			}
			printReport(cmd.OutOrStdout(), s, report)
			return nil
		},
	}

	cmd.Flags().StringVar(&scenarioPath, "scenario", "", "YAML scenario file")
	cmd.Flags().IntVar(&flagScenario.Goroutines, "goroutines", flagScenario.Goroutines, "Number of workers")
	cmd.Flags().IntVar(&flagScenario.Iterations, "iterations", flagScenario.Iterations, "Operations per worker")
	cmd.Flags().IntVar(&flagScenario.Subscribers, "subscribers", flagScenario.Subscribers, "Distinct callbacks to pick from")
	cmd.Flags().Uint64Var(&flagScenario.Seed, "seed", flagScenario.Seed, "Random seed")
	cmd.Flags().BoolVar(&concurrent, "concurrent", false, "Dispatch without holding the event's lock")

	return cmd
}

// RunStress executes s against a fresh event and verifies its invariants.
func RunStress(ctx context.Context, s Scenario, logger zerolog.Logger) (Report, error) {
	if err := s.Validate(); err != nil {
		return Report{}, err
	}

	opts := []invokable.Option{
		invokable.WithLogger(logger),
		invokable.WithName("stress"),
	}
	if s.Dispatch == DispatchConcurrent {
		opts = append(opts, invokable.WithConcurrentDispatch())
	}
	event := invokable.New[*dispatch](opts...)

	var report Report
	var calls atomic.Int64
	callbacks := make([]invokable.Callback[*dispatch], s.Subscribers)
	for i := range callbacks {
		callbacks[i] = invokable.Method(&worker{index: i, calls: &calls}, (*worker).handle)
	}

	logger.Info().
		Int("goroutines", s.Goroutines).
		Int("iterations", s.Iterations).
		Int("subscribers", s.Subscribers).
		Str("dispatch", s.Dispatch).
		Uint64("seed", s.Seed).
		Msg("stress run starting")

	start := time.Now()
	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < s.Goroutines; w++ {
		rng := rand.New(rand.NewPCG(s.Seed, uint64(w)))
		g.Go(func() error {
			for i := 0; i < s.Iterations; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}

				cb := callbacks[rng.IntN(len(callbacks))]
				switch op := rng.IntN(100); {
				case op < 40:
					event.Subscribe(cb)
					atomic.AddInt64(&report.Subscribes, 1)
				case op < 70:
					event.Unsubscribe(cb)
					atomic.AddInt64(&report.Unsubscribes, 1)
				case op < 72:
					event.ReplaceAll(cb)
					atomic.AddInt64(&report.Replaces, 1)
				case op < 73:
					event.Clear()
					atomic.AddInt64(&report.Clears, 1)
				default:
					d := &dispatch{hits: make([]atomic.Int32, len(callbacks))}
					if err := event.Invoke(d); err != nil {
						return fmt.Errorf("invoke: %w", err)
					}
					atomic.AddInt64(&report.Invokes, 1)
					for j := range d.hits {
						if n := d.hits[j].Load(); n > 1 {
							return fmt.Errorf("callback %d invoked %d times in one dispatch", j, n)
						}
					}
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logger.Error().Err(err).Msg("stress run failed")
		return report, err
	}

	report.Elapsed = time.Since(start)
	report.Calls = calls.Load()

	remaining := event.Callbacks()
	report.Remaining = len(remaining)
	seen := make(map[invokable.ID]struct{}, len(remaining))
	for _, cb := range remaining {
		if _, dup := seen[cb.ID()]; dup {
			err := fmt.Errorf("duplicate subscription %v", cb.ID())
			logger.Error().Err(err).Msg("stress run failed")
			return report, err
		}
		seen[cb.ID()] = struct{}{}
	}

	logger.Info().
		Int64("invokes", report.Invokes).
		Int64("calls", report.Calls).
		Int("remaining", report.Remaining).
		Dur("elapsed", report.Elapsed).
		Msg("stress run complete")
	return report, nil
}

func printReport(out io.Writer, s Scenario, r Report) {
	fmt.Fprintf(out, "dispatch:     %s\n", s.Dispatch)
	fmt.Fprintf(out, "subscribes:   %d\n", r.Subscribes)
	fmt.Fprintf(out, "unsubscribes: %d\n", r.Unsubscribes)
	fmt.Fprintf(out, "replaces:     %d\n", r.Replaces)
	fmt.Fprintf(out, "clears:       %d\n", r.Clears)
	fmt.Fprintf(out, "invokes:      %d\n", r.Invokes)
	fmt.Fprintf(out, "calls:        %d\n", r.Calls)
	fmt.Fprintf(out, "remaining:    %d\n", r.Remaining)
	fmt.Fprintf(out, "elapsed:      %s\n", r.Elapsed)
}
