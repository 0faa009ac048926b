package sim

import "context"

type Simulator struct {
	dyn        Dynamics
	integrator Integrator
	excitation Excitation
	metrics    []Metric
	observers  []Observer
}

func New(dyn Dynamics, integrator Integrator, excitation Excitation) *Simulator {
	return &Simulator{
		dyn:        dyn,
		integrator: integrator,
		excitation: excitation,
		metrics:    make([]Metric, 0),
		observers:  make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) Run(ctx context.Context, x0 State, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	steps := int(cfg.Duration / cfg.Dt)
	result := &Result{
		States:   make([]State, 0, steps+1),
		Controls: make([]Control, 0, steps),
		Times:    make([]float64, 0, steps+1),
		Metrics:  make(map[string]float64),
		Errors:   make([]error, 0),
	}

	reporter, hasOutput := s.dyn.(Reporter)
	meter, hasCapacity := s.dyn.(CapacityMeter)
	constrainer, hasConstraint := s.dyn.(Constrainer)
	if hasOutput {
		result.Outputs = make([]float64, 0, steps+1)
	}
	if hasCapacity {
		result.Capacities = make([]float64, 0, steps+1)
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	x := x0.Clone()
	t := 0.0

	record := func(u Control) {
		result.States = append(result.States, x.Clone())
		result.Times = append(result.Times, t)
		if hasOutput {
			result.Outputs = append(result.Outputs, reporter.Output(x, u, t))
		}
		if hasCapacity {
			result.Capacities = append(result.Capacities, meter.Capacity(x))
		}
	}

	record(make(Control, s.dyn.ControlDim()))

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		u := s.excitation.Compute(x, t)

		for _, m := range s.metrics {
			m.Observe(x, u, t)
		}
		for _, obs := range s.observers {
			obs.OnStep(x, u, t)
		}

		x = s.integrator.Step(s.dyn, x, u, t, cfg.Dt)
		if hasConstraint {
			constrainer.Constrain(x)
		}

		if cfg.ValidateState && !x.IsValid() {
			err := &SimError{Step: i, Time: t, Wrapped: ErrInvalidState}
			result.Errors = append(result.Errors, err)
			break
		}

		t += cfg.Dt
		result.StepsTaken++

		result.Controls = append(result.Controls, u)
		record(u)
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func (s *Simulator) validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return ErrBadTimestep
	}
	if cfg.Duration <= 0 {
		return ErrBadDuration
	}
	return nil
}

// RunWithCallback steps the simulation, handing each state to the callback.
// Returning false from the callback stops the run early.
func (s *Simulator) RunWithCallback(ctx context.Context, x0 State, cfg Config, callback func(State, Control, float64) bool) error {
	if err := s.validateConfig(cfg); err != nil {
		return err
	}

	constrainer, hasConstraint := s.dyn.(Constrainer)

	x := x0.Clone()
	t := 0.0

	for t < cfg.Duration {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		u := s.excitation.Compute(x, t)

		if !callback(x, u, t) {
			return nil
		}

		x = s.integrator.Step(s.dyn, x, u, t, cfg.Dt)
		if hasConstraint {
			constrainer.Constrain(x)
		}
		t += cfg.Dt

		if cfg.ValidateState && !x.IsValid() {
			return &SimError{Time: t, Wrapped: ErrInvalidState}
		}
	}

	return nil
}
