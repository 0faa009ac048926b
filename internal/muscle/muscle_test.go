package muscle

import (
	"math"
	"testing"

	"github.com/myolab/myolab/internal/sim"
)

func TestZeroExcitationProducesNoForce(t *testing.T) {
	m := NewStandard(120)

	for i := 0; i < 50; i++ {
		force := m.Step(0, 0.01)
		if force != 0 {
			t.Fatalf("step %d: expected zero force, got %f", i, force)
		}
	}

	// Nothing fired, so nothing fatigued.
	if math.Abs(m.Capacity(m.State())-1.0) > 1e-9 {
		t.Errorf("capacity should remain full, got %f", m.Capacity(m.State()))
	}
}

func TestForceSaturatesAtMaxExcitation(t *testing.T) {
	m := NewStandard(120)

	if math.Abs(m.MaxExcitation()-67.0) > 1e-9 {
		t.Fatalf("expected max excitation 67, got %f", m.MaxExcitation())
	}

	x := m.InitialState()
	atMax := m.Force(x, m.MaxExcitation())
	beyond := m.Force(x, m.MaxExcitation()*1.5)

	if atMax <= 0 {
		t.Fatal("full drive should produce force")
	}
	if math.Abs(atMax-beyond) > 1e-9 {
		t.Errorf("force should saturate: %f at max, %f beyond", atMax, beyond)
	}
}

func TestForceMatchesPotvinReference(t *testing.T) {
	// Total force of a fresh 120-unit muscle at moderate and maximal
	// drive, per Potvin and Fuglevand (2017).
	tests := []struct {
		name  string
		drive float64
		want  float64
	}{
		{"moderate", 40, 1311.86896},
		{"maximal", 67, 2215.98114},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewStandard(120)
			force := m.Force(m.InitialState(), tt.drive)
			if math.Abs(force-tt.want) > 0.05 {
				t.Errorf("expected force %f at drive %f, got %f", tt.want, tt.drive, force)
			}
		})
	}
}

func TestForceGrowsWithExcitation(t *testing.T) {
	m := NewStandard(120)
	x := m.InitialState()

	prev := 0.0
	for _, drive := range []float64{5, 10, 20, 40, 67} {
		force := m.Force(x, drive)
		if force <= prev {
			t.Fatalf("force should grow with drive: %f at %f, previous %f", force, drive, prev)
		}
		prev = force
	}
}

func TestSustainedDriveFatigues(t *testing.T) {
	m := NewStandard(120)

	first := m.Step(40, 0.1)
	var last float64
	for i := 0; i < 600; i++ {
		last = m.Step(40, 0.1)
	}

	if last >= first {
		t.Errorf("force should decline under sustained drive: %f -> %f", first, last)
	}
	if cap := m.Capacity(m.State()); cap >= 1.0 {
		t.Errorf("capacity should have dropped, got %f", cap)
	}
}

func TestCapacityNeverNegative(t *testing.T) {
	m := NewStandard(120)

	// Long, hard drive with a coarse step.
	for i := 0; i < 2000; i++ {
		m.Step(67, 0.5)
	}

	for i, c := range m.State() {
		if c < 0 {
			t.Fatalf("unit %d capacity went negative: %f", i, c)
		}
	}
	if cap := m.Capacity(m.State()); cap < 0 || cap > 1 {
		t.Errorf("capacity fraction out of range: %f", cap)
	}
}

func TestReset(t *testing.T) {
	m := NewStandard(120)

	for i := 0; i < 100; i++ {
		m.Step(67, 0.1)
	}
	m.Reset()

	if math.Abs(m.Capacity(m.State())-1.0) > 1e-9 {
		t.Errorf("reset should restore full capacity, got %f", m.Capacity(m.State()))
	}
}

func TestDerivativeSkipsDepletedUnits(t *testing.T) {
	m := NewStandard(120)

	x := m.InitialState()
	x[0] = 0

	dx := m.Derivative(x, sim.Control{67}, 0)
	if dx[0] != 0 {
		t.Errorf("depleted unit should stop fatiguing, got rate %f", dx[0])
	}
	if dx[1] >= 0 {
		t.Errorf("active unit should lose capacity, got rate %f", dx[1])
	}
}

func TestDynamicsDimensions(t *testing.T) {
	m := NewStandard(60)

	if m.StateDim() != 60 {
		t.Errorf("expected state dim 60, got %d", m.StateDim())
	}
	if m.ControlDim() != 1 {
		t.Errorf("expected control dim 1, got %d", m.ControlDim())
	}
	if len(m.InitialState()) != 60 {
		t.Errorf("expected 60 initial capacities, got %d", len(m.InitialState()))
	}
}

func TestMuscleImplementsSimInterfaces(t *testing.T) {
	var dyn sim.Dynamics = NewStandard(10)

	if _, ok := dyn.(sim.Reporter); !ok {
		t.Error("muscle should report force as output")
	}
	if _, ok := dyn.(sim.CapacityMeter); !ok {
		t.Error("muscle should meter capacity")
	}
	if _, ok := dyn.(sim.Constrainer); !ok {
		t.Error("muscle should constrain capacities")
	}
}
