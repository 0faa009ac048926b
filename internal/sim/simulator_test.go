package sim

import (
	"context"
	"math"
	"testing"
)

type decayDynamics struct{}

func (d *decayDynamics) Derivative(x State, u Control, t float64) State {
	return State{-x[0]}
}

func (d *decayDynamics) StateDim() int   { return 1 }
func (d *decayDynamics) ControlDim() int { return 0 }

type eulerStep struct{}

func (e *eulerStep) Step(dyn Dynamics, x State, u Control, t float64, dt float64) State {
	dx := dyn.Derivative(x, u, t)
	out := make(State, len(x))
	for i := range x {
		out[i] = x[i] + dt*dx[i]
	}
	return out
}

type zeroDrive struct{}

func (z *zeroDrive) Compute(x State, t float64) Control { return Control{} }

func TestSimulatorRun(t *testing.T) {
	s := New(&decayDynamics{}, &eulerStep{}, &zeroDrive{})

	cfg := Config{Dt: 0.1, Duration: 1.0}
	result, err := s.Run(context.Background(), State{1.0}, cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(result.States) != 11 {
		t.Errorf("expected 11 states, got %d", len(result.States))
	}
	if len(result.Times) != 11 {
		t.Errorf("expected 11 times, got %d", len(result.Times))
	}
	if result.StepsTaken != 10 {
		t.Errorf("expected 10 steps, got %d", result.StepsTaken)
	}

	final := result.States[len(result.States)-1][0]
	expected := math.Exp(-1.0)
	if math.Abs(final-expected) > 0.2 {
		t.Errorf("expected final state ~%.4f, got %.4f", expected, final)
	}
}

func TestSimulatorInvalidConfig(t *testing.T) {
	s := New(&decayDynamics{}, &eulerStep{}, &zeroDrive{})

	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero dt", Config{Dt: 0, Duration: 1.0}},
		{"negative dt", Config{Dt: -0.1, Duration: 1.0}},
		{"zero duration", Config{Dt: 0.1, Duration: 0}},
		{"negative duration", Config{Dt: 0.1, Duration: -1.0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Run(context.Background(), State{1.0}, tt.cfg)
			if err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

// depletingDynamics exercises the optional output, capacity, and
// constraint hooks.
type depletingDynamics struct{}

func (d *depletingDynamics) Derivative(x State, u Control, t float64) State {
	return State{-1}
}

func (d *depletingDynamics) StateDim() int   { return 1 }
func (d *depletingDynamics) ControlDim() int { return 1 }

func (d *depletingDynamics) Output(x State, u Control, t float64) float64 { return x[0] * 2 }

func (d *depletingDynamics) Capacity(x State) float64 { return x[0] }

func (d *depletingDynamics) Constrain(x State) {
	if x[0] < 0 {
		x[0] = 0
	}
}

type constantDrive struct{ level float64 }

func (c *constantDrive) Compute(x State, t float64) Control { return Control{c.level} }

func TestSimulatorRecordsOutputsAndCapacities(t *testing.T) {
	s := New(&depletingDynamics{}, &eulerStep{}, &constantDrive{level: 1})

	result, err := s.Run(context.Background(), State{1.0}, Config{Dt: 0.25, Duration: 1.0})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(result.Outputs) != len(result.States) {
		t.Fatalf("outputs not recorded per sample: %d vs %d", len(result.Outputs), len(result.States))
	}
	if len(result.Capacities) != len(result.States) {
		t.Fatalf("capacities not recorded per sample: %d vs %d", len(result.Capacities), len(result.States))
	}

	if result.Outputs[0] != 2.0 {
		t.Errorf("expected initial output 2, got %f", result.Outputs[0])
	}
	last := result.Capacities[len(result.Capacities)-1]
	if last != 0 {
		t.Errorf("expected capacity to deplete to 0, got %f", last)
	}
}

func TestSimulatorConstrains(t *testing.T) {
	s := New(&depletingDynamics{}, &eulerStep{}, &constantDrive{level: 1})

	// Large steps overshoot zero; the constraint clamps every sample.
	result, err := s.Run(context.Background(), State{1.0}, Config{Dt: 0.4, Duration: 2.0})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	for i, x := range result.States {
		if x[0] < 0 {
			t.Fatalf("sample %d went negative: %f", i, x[0])
		}
	}
}

func TestSimulatorStopsOnInvalidState(t *testing.T) {
	s := New(&nanDynamics{}, &eulerStep{}, &zeroDrive{})

	result, err := s.Run(context.Background(), State{1.0}, Config{Dt: 0.1, Duration: 1.0, ValidateState: true})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(result.Errors) == 0 {
		t.Fatal("expected a recorded error")
	}
	if result.StepsTaken == 10 {
		t.Error("run should have stopped early")
	}
}

type nanDynamics struct{}

func (n *nanDynamics) Derivative(x State, u Control, t float64) State {
	return State{math.NaN()}
}

func (n *nanDynamics) StateDim() int   { return 1 }
func (n *nanDynamics) ControlDim() int { return 0 }

func TestSimulatorContextCancel(t *testing.T) {
	s := New(&decayDynamics{}, &eulerStep{}, &zeroDrive{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Run(ctx, State{1.0}, Config{Dt: 0.1, Duration: 1.0})
	if err == nil {
		t.Error("expected context error")
	}
}

type countingMetric struct {
	count int
}

func (c *countingMetric) Name() string                        { return "count" }
func (c *countingMetric) Observe(x State, u Control, t float64) { c.count++ }
func (c *countingMetric) Value() float64                      { return float64(c.count) }
func (c *countingMetric) Reset()                              { c.count = 0 }

func TestSimulatorMetrics(t *testing.T) {
	s := New(&decayDynamics{}, &eulerStep{}, &zeroDrive{})

	metric := &countingMetric{}
	s.AddMetric(metric)

	result, err := s.Run(context.Background(), State{1.0}, Config{Dt: 0.1, Duration: 1.0})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if v, ok := result.Metrics["count"]; !ok || v != 10 {
		t.Errorf("expected 10 observations recorded, got %v", result.Metrics)
	}
}

func TestRunWithCallbackStopsEarly(t *testing.T) {
	s := New(&decayDynamics{}, &eulerStep{}, &zeroDrive{})

	steps := 0
	err := s.RunWithCallback(context.Background(), State{1.0}, Config{Dt: 0.1, Duration: 10.0},
		func(x State, u Control, t float64) bool {
			steps++
			return steps < 5
		})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if steps != 5 {
		t.Errorf("expected 5 callbacks, got %d", steps)
	}
}

func TestSweep(t *testing.T) {
	levels := []float64{0.5, 1.0, 2.0}

	sweep := NewSweep(levels, func(level float64) (*Simulator, State, Config) {
		s := New(&decayDynamics{}, &eulerStep{}, &zeroDrive{})
		return s, State{level}, Config{Dt: 0.1, Duration: 1.0}
	})

	results, err := sweep.Run(context.Background())
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for i, r := range results {
		if r.States[0][0] != levels[i] {
			t.Errorf("result %d: expected initial state %f, got %f", i, levels[i], r.States[0][0])
		}
	}
}
