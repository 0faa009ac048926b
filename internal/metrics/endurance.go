package metrics

import "github.com/myolab/myolab/internal/sim"

// Endurance records how long output stays at or above a force target
// once it has first reached it. Value is the elapsed time in seconds, or
// the full observed span if the target was never lost.
type Endurance struct {
	name     string
	reporter sim.Reporter
	target   float64
	reached  bool
	failed   bool
	start    float64
	last     float64
}

func NewEndurance(reporter sim.Reporter, target float64) *Endurance {
	return &Endurance{
		name:     "endurance_time",
		reporter: reporter,
		target:   target,
	}
}

func (e *Endurance) Name() string {
	return e.name
}

func (e *Endurance) Observe(x sim.State, u sim.Control, t float64) {
	if e.failed {
		return
	}
	force := e.reporter.Output(x, u, t)
	if !e.reached {
		if force >= e.target {
			e.reached = true
			e.start = t
			e.last = t
		}
		return
	}
	if force < e.target {
		e.failed = true
		return
	}
	e.last = t
}

func (e *Endurance) Value() float64 {
	if !e.reached {
		return 0
	}
	return e.last - e.start
}

func (e *Endurance) Reset() {
	e.reached = false
	e.failed = false
	e.start = 0
	e.last = 0
}

// CapacityLoss is the fraction of twitch capacity spent over the run.
type CapacityLoss struct {
	name    string
	meter   sim.CapacityMeter
	initial float64
	final   float64
	samples int
}

func NewCapacityLoss(meter sim.CapacityMeter) *CapacityLoss {
	return &CapacityLoss{
		name:  "capacity_loss",
		meter: meter,
	}
}

func (c *CapacityLoss) Name() string {
	return c.name
}

func (c *CapacityLoss) Observe(x sim.State, u sim.Control, t float64) {
	capacity := c.meter.Capacity(x)
	if c.samples == 0 {
		c.initial = capacity
	}
	c.final = capacity
	c.samples++
}

func (c *CapacityLoss) Value() float64 {
	if c.samples == 0 || c.initial == 0 {
		return 0
	}
	return (c.initial - c.final) / c.initial
}

func (c *CapacityLoss) Reset() {
	c.initial = 0
	c.final = 0
	c.samples = 0
}
