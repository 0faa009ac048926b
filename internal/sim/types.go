package sim

import "math"

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Sub(o State) State {
	d := make(State, len(s))
	for i := range s {
		d[i] = s[i] - o[i]
	}
	return d
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

type Control []float64

type Dynamics interface {
	Derivative(x State, u Control, t float64) State
	StateDim() int
	ControlDim() int
}

type Integrator interface {
	Step(dyn Dynamics, x State, u Control, t float64, dt float64) State
}

// Excitation produces the drive signal for a model at time t. The current
// state is available for closed-loop sources.
type Excitation interface {
	Compute(x State, t float64) Control
}

type Metric interface {
	Name() string
	Observe(x State, u Control, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(x State, u Control, t float64)
}

// Reporter is implemented by dynamics whose interesting quantity is an
// output of the state rather than the state itself (e.g. muscle force).
type Reporter interface {
	Output(x State, u Control, t float64) float64
}

// CapacityMeter reports the remaining fraction of a depletable resource.
type CapacityMeter interface {
	Capacity(x State) float64
}

// Constrainer projects a state back onto its valid set after a step
// (e.g. clamping depleted capacities at zero).
type Constrainer interface {
	Constrain(x State)
}

type Config struct {
	Dt            float64
	Duration      float64
	Seed          int64
	ValidateState bool
}

type Result struct {
	States     []State
	Controls   []Control
	Times      []float64
	Outputs    []float64
	Capacities []float64
	Metrics    map[string]float64
	Errors     []error
	StepsTaken int
}
