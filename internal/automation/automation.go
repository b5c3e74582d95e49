// Package automation runs scripted export scenarios: an ordered list of
// frame and animation exports described in YAML.
package automation

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Step kinds.
const (
	KindFrame     = "frame"
	KindRender    = "render"
	KindNormalize = "normalize"
)

// Scenario defines a scripted export sequence
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Steps       []Step `yaml:"steps"`
}

// Step is a single export in a scenario
type Step struct {
	Kind    string  `yaml:"kind"`
	Preset  string  `yaml:"preset"`
	Year    int     `yaml:"year"`
	All     bool    `yaml:"all"`
	Output  string  `yaml:"output"`
	HTML    string  `yaml:"html"`
	Samples int     `yaml:"samples"`
	Zoom    float64 `yaml:"zoom"`
}

// LoadScenario loads and validates a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := scenario.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &scenario, nil
}

func (s *Scenario) Validate() error {
	if len(s.Steps) == 0 {
		return fmt.Errorf("scenario %q has no steps", s.Name)
	}
	for i, step := range s.Steps {
		switch step.Kind {
		case KindFrame:
			if step.Year == 0 && !step.All {
				return fmt.Errorf("step %d: frame needs a year or all", i+1)
			}
		case KindRender, KindNormalize:
		default:
			return fmt.Errorf("step %d: unknown kind %q", i+1, step.Kind)
		}
	}
	return nil
}

// Executor performs one step.
type Executor interface {
	Execute(ctx context.Context, step Step) error
}

type ExecutorFunc func(ctx context.Context, step Step) error

func (f ExecutorFunc) Execute(ctx context.Context, step Step) error { return f(ctx, step) }

// RunScenario executes the steps in order and stops at the first failure
// or when ctx is done. It returns the number of completed steps.
func RunScenario(ctx context.Context, scenario *Scenario, exec Executor, logger *zap.Logger) (int, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	for i, step := range scenario.Steps {
		if err := ctx.Err(); err != nil {
			return i, err
		}

		logger.Info("running step",
			zap.String("scenario", scenario.Name),
			zap.Int("step", i+1),
			zap.Int("of", len(scenario.Steps)),
			zap.String("kind", step.Kind),
			zap.String("preset", step.Preset))

		if err := exec.Execute(ctx, step); err != nil {
			return i, fmt.Errorf("step %d (%s): %w", i+1, step.Kind, err)
		}
	}
	return len(scenario.Steps), nil
}
