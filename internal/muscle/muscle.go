package muscle

import "github.com/myolab/myolab/internal/sim"

// Muscle couples a motor neuron pool with its fibers. State is the
// remaining twitch force of each unit; excitation is a single scalar
// broadcast to the pool.
type Muscle struct {
	pool   *Pool
	fibers *Fibers
	state  sim.State
}

func New(pool *Pool, fibers *Fibers) *Muscle {
	m := &Muscle{pool: pool, fibers: fibers}
	m.state = m.InitialState()
	return m
}

// NewStandard builds a muscle with the published model constants and the
// given motor unit count.
func NewStandard(unitCount int) *Muscle {
	fp := DefaultFiberParams()
	fp.UnitCount = unitCount
	pp := DefaultPoolParams()
	pp.UnitCount = unitCount
	return New(NewPool(pp), NewFibers(fp))
}

func (m *Muscle) Pool() *Pool     { return m.pool }
func (m *Muscle) Fibers() *Fibers { return m.fibers }

func (m *Muscle) StateDim() int   { return m.fibers.UnitCount() }
func (m *Muscle) ControlDim() int { return 1 }

// InitialState is a fresh, unfatigued muscle: every unit at its peak
// twitch force.
func (m *Muscle) InitialState() sim.State {
	x := make(sim.State, m.fibers.UnitCount())
	copy(x, m.fibers.PeakTwitchForces())
	return x
}

// MaxExcitation is the pool's saturation drive.
func (m *Muscle) MaxExcitation() float64 { return m.pool.MaxExcitation() }

// Derivative implements sim.Dynamics: the rate of capacity loss for each
// unit under the current excitation. Depleted units stop fatiguing.
func (m *Muscle) Derivative(x sim.State, u sim.Control, t float64) sim.State {
	excitation := 0.0
	if len(u) > 0 {
		excitation = u[0]
	}
	rates := m.pool.FiringRates(excitation)
	normalized := m.fibers.NormalizedForces(rates)
	fatigue := m.fibers.FatigueRates(normalized)

	dx := make(sim.State, len(x))
	for i := range dx {
		if x[i] <= 0 {
			continue
		}
		dx[i] = -fatigue[i]
	}
	return dx
}

// Force is the total instantaneous force for the given capacities and
// excitation.
func (m *Muscle) Force(x sim.State, excitation float64) float64 {
	rates := m.pool.FiringRates(excitation)
	normalized := m.fibers.NormalizedForces(rates)
	return m.fibers.Force(x, normalized)
}

// Output implements sim.Reporter.
func (m *Muscle) Output(x sim.State, u sim.Control, t float64) float64 {
	excitation := 0.0
	if len(u) > 0 {
		excitation = u[0]
	}
	return m.Force(x, excitation)
}

// Capacity implements sim.CapacityMeter: remaining twitch force as a
// fraction of the unfatigued total.
func (m *Muscle) Capacity(x sim.State) float64 {
	total := 0.0
	for _, p := range m.fibers.PeakTwitchForces() {
		total += p
	}
	if total == 0 {
		return 0
	}
	remaining := 0.0
	for _, c := range x {
		if c > 0 {
			remaining += c
		}
	}
	return remaining / total
}

// Constrain implements sim.Constrainer: a unit's capacity cannot go
// negative.
func (m *Muscle) Constrain(x sim.State) {
	for i, c := range x {
		if c < 0 {
			x[i] = 0
		}
	}
}

// Step advances the muscle's internal state by dt seconds at the given
// excitation and returns the force produced during the step. This is the
// simple forward-Euler path for callers that do not need the simulator.
func (m *Muscle) Step(excitation, dt float64) float64 {
	force := m.Force(m.state, excitation)
	dx := m.Derivative(m.state, sim.Control{excitation}, 0)
	for i := range m.state {
		m.state[i] += dt * dx[i]
	}
	m.Constrain(m.state)
	return force
}

// State exposes the internal state used by Step.
func (m *Muscle) State() sim.State { return m.state }

// Reset restores the muscle to the unfatigued state.
func (m *Muscle) Reset() { m.state = m.InitialState() }
