package invokable

import (
	"math/rand/v2"
	"sync/atomic"
	"testing"

	"golang.org/x/sync/errgroup"
)

type tally struct {
	hits []atomic.Int32
}

type slot struct {
	index int
}

func (s *slot) hit(t *tally) {
	t.hits[s.index].Add(1)
}

func checkUnique[T any](t *testing.T, e *Event[T]) {
	t.Helper()
	seen := make(map[ID]struct{})
	for _, cb := range e.Callbacks() {
		if _, dup := seen[cb.ID()]; dup {
			t.Fatalf("duplicate identity %v in subscriber list", cb.ID())
		}
		seen[cb.ID()] = struct{}{}
	}
}

func TestStressRandomOperations(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
	}{
		{"serialized", nil},
		{"concurrent", []Option{WithConcurrentDispatch()}},
	}

	const (
		goroutines = 16
		iterations = 2000
		pool       = 24
	)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New[*tally](tt.opts...)

			slots := make([]*slot, pool)
			callbacks := make([]Callback[*tally], pool)
			for i := range slots {
				slots[i] = &slot{index: i}
				callbacks[i] = Method(slots[i], (*slot).hit)
			}

			var g errgroup.Group
			for w := 0; w < goroutines; w++ {
				rng := rand.New(rand.NewPCG(uint64(w), 42))
				g.Go(func() error {
					for i := 0; i < iterations; i++ {
						cb := callbacks[rng.IntN(pool)]
						switch op := rng.IntN(100); {
						case op < 40:
							e.Subscribe(cb)
						case op < 70:
							e.Unsubscribe(cb)
						case op < 72:
							e.ReplaceAll(cb)
						case op < 73:
							e.Clear()
						default:
							tl := &tally{hits: make([]atomic.Int32, pool)}
							if err := e.Invoke(tl); err != nil {
								return err
							}
							for j := range tl.hits {
								if n := tl.hits[j].Load(); n > 1 {
									t.Errorf("callback %d invoked %d times in one dispatch", j, n)
								}
							}
						}
					}
					return nil
				})
			}

			if err := g.Wait(); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			checkUnique(t, e)
			if e.Len() > pool {
				t.Errorf("more subscribers than distinct callbacks: %d", e.Len())
			}
		})
	}
}

func TestStressStableSubscribersInvokedOnce(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
	}{
		{"serialized", nil},
		{"concurrent", []Option{WithConcurrentDispatch()}},
	}

	const (
		stable   = 4
		volatile = 12
		churners = 8
		invokers = 4
		rounds   = 1000
	)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New[*tally](tt.opts...)

			total := stable + volatile
			callbacks := make([]Callback[*tally], total)
			for i := range callbacks {
				callbacks[i] = Method(&slot{index: i}, (*slot).hit)
			}
			for i := 0; i < stable; i++ {
				e.Subscribe(callbacks[i])
			}

			var g errgroup.Group
			for w := 0; w < churners; w++ {
				rng := rand.New(rand.NewPCG(uint64(w), 7))
				g.Go(func() error {
					for i := 0; i < rounds; i++ {
						cb := callbacks[stable+rng.IntN(volatile)]
						if rng.IntN(2) == 0 {
							e.Subscribe(cb)
						} else {
							e.Unsubscribe(cb)
						}
					}
					return nil
				})
			}

			var missed, doubled atomic.Int32
			for w := 0; w < invokers; w++ {
				g.Go(func() error {
					for i := 0; i < rounds; i++ {
						tl := &tally{hits: make([]atomic.Int32, total)}
						if err := e.Invoke(tl); err != nil {
							return err
						}
						for j := 0; j < stable; j++ {
							switch tl.hits[j].Load() {
							case 0:
								missed.Add(1)
							case 1:
							default:
								doubled.Add(1)
							}
						}
					}
					return nil
				})
			}

			if err := g.Wait(); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if n := missed.Load(); n > 0 {
				t.Errorf("stable subscribers skipped %d times", n)
			}
			if n := doubled.Load(); n > 0 {
				t.Errorf("stable subscribers invoked more than once %d times", n)
			}
			checkUnique(t, e)
		})
	}
}

func TestStressNoLostUpdates(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
	}{
		{"serialized", nil},
		{"concurrent", []Option{WithConcurrentDispatch()}},
	}

	const (
		goroutines = 16
		owned      = 8
		iterations = 2000
		invokers   = 2
	)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New[*tally](tt.opts...)

			total := goroutines * owned
			callbacks := make([]Callback[*tally], total)
			for i := range callbacks {
				callbacks[i] = Method(&slot{index: i}, (*slot).hit)
			}

			// subscribed[i] is written only by the goroutine owning callback i.
			subscribed := make([]bool, total)

			var g errgroup.Group
			for w := 0; w < goroutines; w++ {
				rng := rand.New(rand.NewPCG(uint64(w), 11))
				first := w * owned
				g.Go(func() error {
					for i := 0; i < iterations; i++ {
						j := first + rng.IntN(owned)
						if rng.IntN(2) == 0 {
							e.Subscribe(callbacks[j])
							subscribed[j] = true
						} else {
							e.Unsubscribe(callbacks[j])
							subscribed[j] = false
						}
					}
					return nil
				})
			}

			stop := make(chan struct{})
			var dispatchers errgroup.Group
			for w := 0; w < invokers; w++ {
				dispatchers.Go(func() error {
					for {
						select {
						case <-stop:
							return nil
						default:
						}
						if err := e.Invoke(&tally{hits: make([]atomic.Int32, total)}); err != nil {
							return err
						}
					}
				})
			}

			if err := g.Wait(); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			close(stop)
			if err := dispatchers.Wait(); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			want := make(map[ID]struct{})
			for i, ok := range subscribed {
				if ok {
					want[callbacks[i].ID()] = struct{}{}
				}
			}

			got := e.Callbacks()
			if len(got) != len(want) {
				t.Fatalf("expected %d subscribers, got %d", len(want), len(got))
			}
			for _, cb := range got {
				if _, ok := want[cb.ID()]; !ok {
					t.Errorf("callback %v subscribed but last operation was Unsubscribe", cb.ID())
				}
			}
			checkUnique(t, e)
		})
	}
}
