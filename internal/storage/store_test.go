package storage

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/myolab/myolab/internal/sim"
)

func fakeResult() *sim.Result {
	return &sim.Result{
		States:     []sim.State{{1.0}, {0.9}, {0.8}},
		Controls:   []sim.Control{{40}, {40}},
		Times:      []float64{0, 0.1, 0.2},
		Outputs:    []float64{0, 10, 12},
		Capacities: []float64{1, 0.99, 0.98},
		Metrics:    map[string]float64{"peak_force": 12},
		StepsTaken: 2,
	}
}

func TestSaveAndLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	meta := RunMetadata{
		Units:      120,
		Excitation: "constant",
		Integrator: "euler",
		Dt:         0.1,
		Duration:   0.2,
	}

	runID, err := st.Save(meta, fakeResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if !strings.HasPrefix(runID, "run_") {
		t.Errorf("unexpected run id %q", runID)
	}

	loaded, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.ID != runID {
		t.Errorf("expected id %q, got %q", runID, loaded.ID)
	}
	if loaded.Units != 120 || loaded.Excitation != "constant" {
		t.Errorf("metadata changed: %+v", loaded)
	}
	if loaded.Metrics["peak_force"] != 12 {
		t.Errorf("metrics not saved: %v", loaded.Metrics)
	}
}

func TestLoadTrace(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(RunMetadata{Units: 120}, fakeResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	trace, err := st.LoadTrace(runID)
	if err != nil {
		t.Fatalf("load trace failed: %v", err)
	}

	if len(trace.Times) != 3 {
		t.Fatalf("expected 3 samples, got %d", len(trace.Times))
	}
	if math.Abs(trace.Times[2]-0.2) > 1e-6 {
		t.Errorf("expected final time 0.2, got %f", trace.Times[2])
	}
	if math.Abs(trace.Force[1]-10) > 1e-6 {
		t.Errorf("expected force 10, got %f", trace.Force[1])
	}
	if math.Abs(trace.Capacity[2]-0.98) > 1e-6 {
		t.Errorf("expected capacity 0.98, got %f", trace.Capacity[2])
	}

	// The initial sample has no control applied yet.
	if trace.Excitation[0] != 0 {
		t.Errorf("expected no drive at t=0, got %f", trace.Excitation[0])
	}
	if math.Abs(trace.Excitation[1]-40) > 1e-6 {
		t.Errorf("expected drive 40 at the second sample, got %f", trace.Excitation[1])
	}
}

func TestList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Fatalf("expected no runs, got %d", len(runs))
	}

	for i := 0; i < 3; i++ {
		if _, err := st.Save(RunMetadata{Units: 120}, fakeResult()); err != nil {
			t.Fatalf("save %d failed: %v", i, err)
		}
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 3 {
		t.Errorf("expected 3 runs, got %d", len(runs))
	}
}

func TestListMissingDir(t *testing.T) {
	st := New("/nonexistent/myolab-test")
	runs, err := st.List()
	if err != nil {
		t.Fatalf("missing base dir should not error: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestExportJSON(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(RunMetadata{Units: 120, Excitation: "constant"}, fakeResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	trace, err := st.LoadTrace(runID)
	if err != nil {
		t.Fatalf("load trace failed: %v", err)
	}

	var buf bytes.Buffer
	if err := ExportJSON(&buf, meta, trace); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("export is not valid json: %v", err)
	}
	if data.ID != runID {
		t.Errorf("expected id %q, got %q", runID, data.ID)
	}
	if data.Steps != 3 {
		t.Errorf("expected 3 samples, got %d", data.Steps)
	}
	if len(data.Force) != 3 {
		t.Errorf("expected 3 force values, got %d", len(data.Force))
	}
	if data.Metrics["peak_force"] != 12 {
		t.Errorf("metrics missing: %v", data.Metrics)
	}
}
