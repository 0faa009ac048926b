package metrics

import "github.com/myolab/myolab/internal/sim"

type PeakForce struct {
	name     string
	reporter sim.Reporter
	peak     float64
}

func NewPeakForce(reporter sim.Reporter) *PeakForce {
	return &PeakForce{
		name:     "peak_force",
		reporter: reporter,
	}
}

func (p *PeakForce) Name() string {
	return p.name
}

func (p *PeakForce) Observe(x sim.State, u sim.Control, t float64) {
	force := p.reporter.Output(x, u, t)
	if force > p.peak {
		p.peak = force
	}
}

func (p *PeakForce) Value() float64 {
	return p.peak
}

func (p *PeakForce) Reset() {
	p.peak = 0
}

type MeanForce struct {
	name     string
	reporter sim.Reporter
	sum      float64
	samples  int
}

func NewMeanForce(reporter sim.Reporter) *MeanForce {
	return &MeanForce{
		name:     "mean_force",
		reporter: reporter,
	}
}

func (m *MeanForce) Name() string {
	return m.name
}

func (m *MeanForce) Observe(x sim.State, u sim.Control, t float64) {
	m.sum += m.reporter.Output(x, u, t)
	m.samples++
}

func (m *MeanForce) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanForce) Reset() {
	m.sum = 0
	m.samples = 0
}
