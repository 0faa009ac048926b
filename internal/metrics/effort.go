package metrics

import "github.com/myolab/myolab/internal/sim"

// ExcitationEffort reports the mean central drive requested over a run.
// Drive is the single scalar input of a muscle; negative values mean
// rest and cost nothing.
type ExcitationEffort struct {
	total float64
	steps int
}

func NewExcitationEffort() *ExcitationEffort {
	return &ExcitationEffort{}
}

func (e *ExcitationEffort) Name() string {
	return "excitation_effort"
}

func (e *ExcitationEffort) Observe(x sim.State, u sim.Control, t float64) {
	if len(u) == 0 {
		return
	}
	if drive := u[0]; drive > 0 {
		e.total += drive
	}
	e.steps++
}

func (e *ExcitationEffort) Value() float64 {
	if e.steps == 0 {
		return 0
	}
	return e.total / float64(e.steps)
}

func (e *ExcitationEffort) Reset() {
	e.total = 0
	e.steps = 0
}
