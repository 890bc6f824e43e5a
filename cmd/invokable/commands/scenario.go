package commands

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Dispatch modes accepted in a scenario.
const (
	DispatchSerialized = "serialized"
	DispatchConcurrent = "concurrent"
)

// Scenario describes a stress run against a single event.
type Scenario struct {
	// Goroutines is the number of workers issuing operations.
	Goroutines int `yaml:"goroutines"`
	// Iterations is the number of operations per worker.
	Iterations int `yaml:"iterations"`
	// Subscribers is the number of distinct callbacks workers pick from.
	Subscribers int `yaml:"subscribers"`
	// Seed makes the operation sequence reproducible.
	Seed uint64 `yaml:"seed"`
	// Dispatch is "serialized" or "concurrent".
	Dispatch string `yaml:"dispatch"`
}

// DefaultScenario returns the scenario used when no file is given.
func DefaultScenario() Scenario {
	return Scenario{
		Goroutines:  8,
		Iterations:  1000,
		Subscribers: 16,
		Seed:        1,
		Dispatch:    DispatchSerialized,
	}
}

// LoadScenario reads a YAML scenario. Keys missing from the file keep
// their default values.
func LoadScenario(path string) (Scenario, error) {
	s := DefaultScenario()

	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("read scenario: %w", err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	return s, s.Validate()
}

// Validate checks that the scenario can run.
func (s Scenario) Validate() error {
	var errs []error
	if s.Goroutines <= 0 {
		errs = append(errs, fmt.Errorf("goroutines must be positive, got %d", s.Goroutines))
	}
	if s.Iterations < 0 {
		errs = append(errs, fmt.Errorf("iterations must not be negative, got %d", s.Iterations))
	}
	if s.Subscribers <= 0 {
		errs = append(errs, fmt.Errorf("subscribers must be positive, got %d", s.Subscribers))
	}
	switch s.Dispatch {
	case DispatchSerialized, DispatchConcurrent:
	default:
		errs = append(errs, fmt.Errorf("unknown dispatch mode %q", s.Dispatch))
	}
	return errors.Join(errs...)
}
