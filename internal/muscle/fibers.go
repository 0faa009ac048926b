package muscle

import "math"

// FiberParams mirror the parameter names of Potvin 2017.
type FiberParams struct {
	UnitCount              int     // n
	MaxTwitchAmplitude     float64 // RP, peak twitch force of the last unit
	MaxContractionTime     float64 // tL, milliseconds
	ContractionTimeRange   float64 // rt, slowest/fastest contraction time
	FatigueFactorFirstUnit float64 // capacity lost per second at full activation
	FatigabilityRange      float64 // last unit fatigability / first unit
}

func DefaultFiberParams() FiberParams {
	return FiberParams{
		UnitCount:              120,
		MaxTwitchAmplitude:     100,
		MaxContractionTime:     90,
		ContractionTimeRange:   3,
		FatigueFactorFirstUnit: 0.0125,
		FatigabilityRange:      180,
	}
}

// Fibers holds the per-unit constants of the fiber model. All slices are
// indexed by motor unit, smallest first.
type Fibers struct {
	params                FiberParams
	peakTwitchForces      []float64
	contractionTimes      []float64
	nominalFatigabilities []float64
}

func NewFibers(params FiberParams) *Fibers {
	f := &Fibers{params: params}
	f.peakTwitchForces = calcPeakTwitchForces(params.UnitCount, params.MaxTwitchAmplitude)
	f.contractionTimes = calcContractionTimes(
		params.MaxTwitchAmplitude,
		params.MaxContractionTime,
		params.ContractionTimeRange,
		f.peakTwitchForces,
	)
	f.nominalFatigabilities = calcNominalFatigabilities(
		params.UnitCount,
		params.FatigabilityRange,
		params.FatigueFactorFirstUnit,
	)
	return f
}

func (f *Fibers) UnitCount() int                  { return f.params.UnitCount }
func (f *Fibers) PeakTwitchForces() []float64     { return f.peakTwitchForces }
func (f *Fibers) ContractionTimes() []float64     { return f.contractionTimes }
func (f *Fibers) NominalFatigabilities() []float64 { return f.nominalFatigabilities }

// Peak twitch forces form an exponential range from 1 up to the max
// twitch amplitude across the pool.
func calcPeakTwitchForces(unitCount int, maxTwitchAmplitude float64) []float64 {
	forces := make([]float64, unitCount)
	tLog := math.Log(maxTwitchAmplitude)
	for i := range forces {
		forces[i] = math.Exp(tLog * spread(i, unitCount))
	}
	return forces
}

// Contraction times run from MaxContractionTime for the first unit down
// to MaxContractionTime/ContractionTimeRange for the last, as a power
// law of twitch force.
func calcContractionTimes(maxTwitchAmplitude, maxContractionTime, contractionTimeRange float64, peakTwitchForces []float64) []float64 {
	scale := math.Log(maxTwitchAmplitude) / math.Log(contractionTimeRange)
	times := make([]float64, len(peakTwitchForces))
	for i, p := range peakTwitchForces {
		times[i] = maxContractionTime * math.Pow(1/p, 1/scale)
	}
	return times
}

func calcNominalFatigabilities(unitCount int, fatigabilityRange, fatigueFactorFirstUnit float64) []float64 {
	fatigabilities := make([]float64, unitCount)
	fLog := math.Log(fatigabilityRange)
	for i := range fatigabilities {
		fatigabilities[i] = fatigueFactorFirstUnit * math.Exp(fLog*spread(i, unitCount))
	}
	return fatigabilities
}

// spread maps unit index to [0, 1] across the pool.
func spread(i, unitCount int) float64 {
	if unitCount <= 1 {
		return 0
	}
	return float64(i) / float64(unitCount-1)
}

// NormalizedForces converts per-unit firing rates (hertz) into normalized
// force in [0, 1). The response is linear up to a normalized stimulus of
// 0.4 and sigmoid above it.
func (f *Fibers) NormalizedForces(firingRates []float64) []float64 {
	forces := make([]float64, len(firingRates))
	for i, rate := range firingRates {
		// Rates are per second, contraction times in milliseconds.
		nf := (rate / 1000) * f.contractionTimes[i]
		if nf <= 0.4 {
			forces[i] = nf * 0.3
		} else {
			forces[i] = 1 - math.Exp(-2*nf*nf*nf)
		}
	}
	return forces
}

// Force sums per-unit force: normalized force scaled by the remaining
// twitch capacity of each unit.
func (f *Fibers) Force(capacities, normalizedForces []float64) float64 {
	total := 0.0
	for i, nf := range normalizedForces {
		c := capacities[i]
		if c < 0 {
			c = 0
		}
		total += nf * c
	}
	return total
}

// FatigueRates returns the capacity lost per second for each unit at the
// given normalized forces.
func (f *Fibers) FatigueRates(normalizedForces []float64) []float64 {
	rates := make([]float64, len(normalizedForces))
	for i, nf := range normalizedForces {
		rates[i] = nf * f.nominalFatigabilities[i]
	}
	return rates
}
