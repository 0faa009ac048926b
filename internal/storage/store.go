package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/myolab/myolab/internal/sim"
)

// Store keeps one directory per run: metadata.json plus trace.csv with
// the observable trace (time, excitation, force, capacity).
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Timestamp  time.Time          `json:"timestamp"`
	Units      int                `json:"units"`
	Excitation string             `json:"excitation"`
	Integrator string             `json:"integrator"`
	Dt         float64            `json:"dt"`
	Duration   float64            `json:"duration"`
	Seed       int64              `json:"seed"`
	Metrics    map[string]float64 `json:"metrics"`
}

// Trace is the per-step observable record of a run.
type Trace struct {
	Times      []float64
	Excitation []float64
	Force      []float64
	Capacity   []float64
}

func (s *Store) Save(meta RunMetadata, result *sim.Result) (string, error) {
	// Unix time keeps IDs sortable; the uuid suffix keeps same-second
	// runs distinct.
	runID := fmt.Sprintf("run_%d_%s", time.Now().Unix(), uuid.NewString()[:8])
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()
	meta.Metrics = result.Metrics

	metaPath := filepath.Join(runDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvPath := filepath.Join(runDir, "trace.csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write([]string{"time", "excitation", "force", "capacity"}); err != nil {
		return "", err
	}

	for i := range result.Times {
		row := []string{
			formatFloat(result.Times[i]),
			formatFloat(controlAt(result, i)),
			formatFloat(at(result.Outputs, i)),
			formatFloat(at(result.Capacities, i)),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

func at(values []float64, i int) float64 {
	if i < len(values) {
		return values[i]
	}
	return 0
}

// controlAt returns the scalar excitation applied during step i. The
// initial sample has no control yet.
func controlAt(result *sim.Result, i int) float64 {
	// Controls[j] produced States[j+1]; attribute step i's control to
	// the sample it led to.
	j := i - 1
	if j >= 0 && j < len(result.Controls) && len(result.Controls[j]) > 0 {
		return result.Controls[j][0]
	}
	return 0
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadTrace(runID string) (*Trace, error) {
	csvPath := filepath.Join(s.baseDir, runID, "trace.csv")
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	trace := &Trace{}
	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) < 4 {
			continue
		}

		vals := make([]float64, 4)
		ok := true
		for j := 0; j < 4; j++ {
			v, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				ok = false
				break
			}
			vals[j] = v
		}
		if !ok {
			continue
		}

		trace.Times = append(trace.Times, vals[0])
		trace.Excitation = append(trace.Excitation, vals[1])
		trace.Force = append(trace.Force, vals[2])
		trace.Capacity = append(trace.Capacity, vals[3])
	}

	return trace, nil
}
