package filtering

import (
	"regexp"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRunSkillNoise(t *testing.T) {
	core, observed := observer.New(zapcore.DebugLevel)
	logger := zap.New(core)

	in := []string{
		"Python", "", "jane@example.com", "https://github.com/jane", "2019", "CA",
		"March", "Jan.", "Kafka", "a very long fragment that clearly is a sentence and not a skill at all",
		"05/2020", "ca", "www.example.com",
	}

	got, steps := Run(SkillNoise(50), in, logger)

	want := []string{"Python", "Kafka", "ca"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}

	if len(steps) != 7 {
		t.Fatalf("expected 7 steps, got %d", len(steps))
	}
	if steps[0].Initial != len(in) {
		t.Fatalf("expected first step to see %d fragments, got %d", len(in), steps[0].Initial)
	}
	last := steps[len(steps)-1]
	if last.Left != len(want) {
		t.Fatalf("expected %d left, got %d", len(want), last.Left)
	}

	if observed.Len() == 0 {
		t.Fatalf("expected filter steps to be logged")
	}

	if in[1] != "" || in[2] != "jane@example.com" {
		t.Fatalf("input slice was modified: %v", in)
	}
}

func TestDisableByName(t *testing.T) {
	steps := []Filter{NewMonth(), NewUSState()}
	DisableByName(steps, "month", "test")

	got, report := Run(steps, []string{"May", "TX", "Go"}, nil)
	if len(got) != 2 || got[0] != "May" || got[1] != "Go" {
		t.Fatalf("unexpected result: %v", got)
	}
	if len(report) != 1 || report[0].Name != "us_state" {
		t.Fatalf("unexpected report: %+v", report)
	}

	statuses := Describe(steps)
	if statuses[0].Enabled || statuses[0].Reason != "test" {
		t.Fatalf("expected month filter to be disabled: %+v", statuses[0])
	}
	if !statuses[1].Enabled {
		t.Fatalf("expected state filter to stay enabled")
	}
}

func TestPatternStatus(t *testing.T) {
	f := NewPattern("digits", regexp.MustCompile(`\d`))
	status := Describe([]Filter{f})[0]
	if status.Details["pattern"] != `\d` {
		t.Fatalf("unexpected details: %+v", status.Details)
	}
	if f.Keep("42") || !f.Keep("Go") {
		t.Fatalf("pattern filter kept the wrong fragments")
	}
}
