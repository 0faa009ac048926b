package excite

import (
	"math"

	"github.com/myolab/myolab/internal/sim"
)

// Constant holds a fixed excitation level for the whole run.
type Constant struct {
	Level float64
}

func NewConstant(level float64) *Constant {
	return &Constant{Level: level}
}

func (c *Constant) Compute(x sim.State, t float64) sim.Control {
	return sim.Control{c.Level}
}

// Step switches from Low to High at time At.
type Step struct {
	Low  float64
	High float64
	At   float64
}

func NewStep(low, high, at float64) *Step {
	return &Step{Low: low, High: high, At: at}
}

func (s *Step) Compute(x sim.State, t float64) sim.Control {
	if t < s.At {
		return sim.Control{s.Low}
	}
	return sim.Control{s.High}
}

// Ramp rises linearly from Start to End over Duration, then holds End.
type Ramp struct {
	Start    float64
	End      float64
	Duration float64
}

func NewRamp(start, end, duration float64) *Ramp {
	return &Ramp{Start: start, End: end, Duration: duration}
}

func (r *Ramp) Compute(x sim.State, t float64) sim.Control {
	if r.Duration <= 0 || t >= r.Duration {
		return sim.Control{r.End}
	}
	return sim.Control{r.Start + (r.End-r.Start)*t/r.Duration}
}

// Sine oscillates around Mean with the given amplitude and frequency in
// hertz. Levels below zero are clamped; a muscle cannot be inhibited
// past rest.
type Sine struct {
	Mean      float64
	Amplitude float64
	Frequency float64
}

func NewSine(mean, amplitude, frequency float64) *Sine {
	return &Sine{Mean: mean, Amplitude: amplitude, Frequency: frequency}
}

func (s *Sine) Compute(x sim.State, t float64) sim.Control {
	level := s.Mean + s.Amplitude*math.Sin(2*math.Pi*s.Frequency*t)
	if level < 0 {
		level = 0
	}
	return sim.Control{level}
}

// None produces zero excitation.
type None struct {
	dim int
}

func NewNone(dim int) *None {
	if dim <= 0 {
		dim = 1
	}
	return &None{dim: dim}
}

func (n *None) Compute(x sim.State, t float64) sim.Control {
	return make(sim.Control, n.dim)
}
