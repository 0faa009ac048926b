package muscle

import "math"

// PoolParams mirror the motor neuron pool constants of Potvin 2017.
type PoolParams struct {
	UnitCount               int
	MaxRecruitmentThreshold float64 // excitation at which the last unit recruits
	MinFiringRate           float64 // hertz, at recruitment
	PeakFiringRateFirst     float64 // hertz, first unit
	PeakFiringRateLast      float64 // hertz, last unit
	FiringRateSlope         float64 // hertz per excitation unit above threshold
}

func DefaultPoolParams() PoolParams {
	return PoolParams{
		UnitCount:               120,
		MaxRecruitmentThreshold: 50,
		MinFiringRate:           8,
		PeakFiringRateFirst:     35,
		PeakFiringRateLast:      25,
		FiringRateSlope:         1,
	}
}

// Pool maps a scalar excitation onto per-unit firing rates. Units recruit
// in size order at exponentially spaced thresholds and rate-code linearly
// above threshold up to a per-unit peak rate. Peak rates fall off in
// proportion to recruitment threshold, so late-recruiting units have the
// lowest ceilings.
type Pool struct {
	params     PoolParams
	thresholds []float64
	peakRates  []float64
}

func NewPool(params PoolParams) *Pool {
	p := &Pool{params: params}
	p.thresholds = make([]float64, params.UnitCount)
	p.peakRates = make([]float64, params.UnitCount)
	rLog := math.Log(params.MaxRecruitmentThreshold)
	for i := range p.thresholds {
		p.thresholds[i] = math.Exp(rLog * spread(i, params.UnitCount))
	}
	rateRange := params.PeakFiringRateFirst - params.PeakFiringRateLast
	span := params.MaxRecruitmentThreshold - p.thresholds[0]
	for i, threshold := range p.thresholds {
		p.peakRates[i] = params.PeakFiringRateFirst
		if span > 0 {
			p.peakRates[i] -= rateRange * (threshold - p.thresholds[0]) / span
		}
	}
	return p
}

func (p *Pool) UnitCount() int                  { return p.params.UnitCount }
func (p *Pool) RecruitmentThresholds() []float64 { return p.thresholds }
func (p *Pool) PeakFiringRates() []float64       { return p.peakRates }

// MaxExcitation is the drive at which the last unit reaches its peak
// firing rate. Larger inputs produce no additional output.
func (p *Pool) MaxExcitation() float64 {
	last := p.params.UnitCount - 1
	return p.thresholds[last] + (p.peakRates[last]-p.params.MinFiringRate)/p.params.FiringRateSlope
}

// FiringRates returns the firing rate of every unit for the given
// excitation: zero below threshold, otherwise linear from the minimum
// rate, clamped at the unit's peak rate.
func (p *Pool) FiringRates(excitation float64) []float64 {
	rates := make([]float64, p.params.UnitCount)
	if excitation <= 0 {
		return rates
	}
	for i, threshold := range p.thresholds {
		if excitation < threshold {
			continue
		}
		rate := p.params.MinFiringRate + p.params.FiringRateSlope*(excitation-threshold)
		if rate > p.peakRates[i] {
			rate = p.peakRates[i]
		}
		rates[i] = rate
	}
	return rates
}
