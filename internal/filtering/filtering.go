// Package filtering runs named noise filters over extracted text fragments.
package filtering

import (
	"go.uber.org/zap"
)

// Filter represents a single filtering step applied to fragments.
type Filter interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	// Keep reports whether the fragment survives this step.
	Keep(fragment string) bool
}

// Step describes the result of executing a filtering step.
type Step struct {
	Name    string
	Initial int
	Dropped int
	Left    int
}

// Status represents runtime information about a filter.
type Status struct {
	Name    string
	Enabled bool
	Reason  string
	Details map[string]string
}

// statusProvider is implemented by filters that can supply detailed status information.
type statusProvider interface {
	Status() Status
}

// DisableByName marks a filter with the provided name as disabled while keeping it in the list.
func DisableByName(steps []Filter, name, reason string) {
	for _, step := range steps {
		if step.Name() == name {
			step.Disable(reason)
		}
	}
}

// Run executes the supplied filters sequentially and returns the surviving fragments
// together with per-step accounting. The input slice is not modified.
func Run(steps []Filter, fragments []string, logger *zap.Logger) ([]string, []Step) {
	current := append([]string(nil), fragments...)
	report := make([]Step, 0, len(steps))

	for _, step := range steps {
		if !step.IsEnabled() {
			if logger != nil {
				logger.Debug("filter disabled", zap.String("name", step.Name()))
			}
			continue
		}

		initial := len(current)
		next := current[:0]
		for _, fragment := range current {
			if step.Keep(fragment) {
				next = append(next, fragment)
			}
		}
		current = next

		info := Step{Name: step.Name(), Initial: initial, Dropped: initial - len(current), Left: len(current)}
		report = append(report, info)

		if logger != nil && info.Dropped > 0 {
			logger.Debug("filter step",
				zap.String("name", info.Name),
				zap.Int("initial", info.Initial),
				zap.Int("dropped", info.Dropped),
				zap.Int("left", info.Left),
			)
		}
	}

	return current, report
}

// Describe returns status entries for the provided filters.
func Describe(steps []Filter) []Status {
	statuses := make([]Status, 0, len(steps))
	for _, step := range steps {
		if reporter, ok := step.(statusProvider); ok {
			statuses = append(statuses, reporter.Status())
			continue
		}

		statuses = append(statuses, Status{
			Name:    step.Name(),
			Enabled: step.IsEnabled(),
		})
	}
	return statuses
}
