package sim

import (
	"context"
	"sync"
)

// Sweep runs one simulation per parameter level, in parallel. The build
// function must return a fresh simulator per level; metrics are not safe
// to share across goroutines.
type Sweep struct {
	levels []float64
	build  func(level float64) (*Simulator, State, Config)
}

func NewSweep(levels []float64, build func(level float64) (*Simulator, State, Config)) *Sweep {
	return &Sweep{levels: levels, build: build}
}

func (s *Sweep) Run(ctx context.Context) ([]*Result, error) {
	results := make([]*Result, len(s.levels))
	errs := make([]error, len(s.levels))

	var wg sync.WaitGroup
	for i, level := range s.levels {
		wg.Add(1)
		go func(idx int, level float64) {
			defer wg.Done()

			sim, x0, cfg := s.build(level)
			results[idx], errs[idx] = sim.Run(ctx, x0, cfg)
		}(i, level)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
