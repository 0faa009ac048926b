package storage

import (
	"encoding/json"
	"io"
)

type ExportData struct {
	ID         string             `json:"id"`
	Units      int                `json:"units"`
	Excitation string             `json:"excitation"`
	Integrator string             `json:"integrator"`
	Dt         float64            `json:"dt"`
	Duration   float64            `json:"duration"`
	Steps      int                `json:"steps"`
	Times      []float64          `json:"times"`
	Drive      []float64          `json:"drive"`
	Force      []float64          `json:"force"`
	Capacity   []float64          `json:"capacity"`
	Metrics    map[string]float64 `json:"metrics"`
}

// ExportJSON writes a run's metadata and trace as one JSON document.
func ExportJSON(w io.Writer, meta *RunMetadata, trace *Trace) error {
	data := ExportData{
		ID:         meta.ID,
		Units:      meta.Units,
		Excitation: meta.Excitation,
		Integrator: meta.Integrator,
		Dt:         meta.Dt,
		Duration:   meta.Duration,
		Steps:      len(trace.Times),
		Times:      trace.Times,
		Drive:      trace.Excitation,
		Force:      trace.Force,
		Capacity:   trace.Capacity,
		Metrics:    meta.Metrics,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
