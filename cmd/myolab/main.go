package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/myolab/myolab/internal/analysis"
	"github.com/myolab/myolab/internal/config"
	"github.com/myolab/myolab/internal/excite"
	"github.com/myolab/myolab/internal/integrators"
	"github.com/myolab/myolab/internal/metrics"
	"github.com/myolab/myolab/internal/muscle"
	"github.com/myolab/myolab/internal/sim"
	"github.com/myolab/myolab/internal/storage"
	"github.com/myolab/myolab/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	dt         float64
	duration   float64
	units      int
	integrator string
	seed       int64
	// Excitation profile parameters
	profile   string
	level     float64
	low       float64
	at        float64
	amplitude float64
	frequency float64
	// Endurance target force; zero disables the metric
	target float64
	// Config file and preset
	configFile string
	preset     string
	// Output file for scene convert
	outFile string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "myolab",
		Short: "motor unit muscle models and scene tooling",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".myolab", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a fatigue simulation",
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)
	runCmd.Flags().Float64Var(&target, "target", 0, "endurance force target")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "drive a muscle interactively",
		RunE:  runLive,
	}
	addSimFlags(liveCmd)
	liveCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	liveCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run trace to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run trace to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of the force trace",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark the muscle model",
		RunE:  benchMuscle,
	}
	benchCmd.Flags().IntVar(&units, "units", config.DefaultUnits, "motor unit count")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset configurations",
		RunE:  listPresetConfigs,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [level...]",
		Short: "run one simulation per excitation level",
		Args:  cobra.MinimumNArgs(1),
		RunE:  sweepLevels,
	}
	sweepCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	sweepCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	sweepCmd.Flags().IntVar(&units, "units", config.DefaultUnits, "motor unit count")
	sweepCmd.Flags().StringVar(&integrator, "integrator", "euler", "integrator (euler, rk4)")

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, exportCmd, exportCSVCmd,
		exportJSONCmd, analyzeCmd, benchCmd, presetsCmd, sweepCmd, newSceneCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	cmd.Flags().IntVar(&units, "units", config.DefaultUnits, "motor unit count")
	cmd.Flags().StringVar(&integrator, "integrator", "euler", "integrator (euler, rk4)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed")
	cmd.Flags().StringVar(&profile, "profile", "constant", "excitation profile (constant, step, ramp, sine)")
	cmd.Flags().Float64Var(&level, "level", config.DefaultLevel, "excitation level (constant level, step high, ramp end, sine mean)")
	cmd.Flags().Float64Var(&low, "low", 0, "low level (step low, ramp start)")
	cmd.Flags().Float64Var(&at, "at", 0, "profile time (step switch, ramp duration)")
	cmd.Flags().Float64Var(&amplitude, "amplitude", 0, "sine amplitude")
	cmd.Flags().Float64Var(&frequency, "frequency", 1, "sine frequency (hz)")
}

// resolveConfig layers preset, config file, and changed CLI flags, in
// that order of increasing precedence.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		copied := *p
		cfg = &copied
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("units") {
		cfg.Muscle.Units = units
	}
	if cmd.Flags().Changed("integrator") {
		cfg.Integrator = integrator
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	if cmd.Flags().Changed("profile") {
		cfg.Excitation.Profile = profile
	}
	if cmd.Flags().Changed("level") {
		cfg.Excitation.Level = level
	}
	if cmd.Flags().Changed("low") {
		cfg.Excitation.Low = low
	}
	if cmd.Flags().Changed("at") {
		cfg.Excitation.At = at
	}
	if cmd.Flags().Changed("amplitude") {
		cfg.Excitation.Amplitude = amplitude
	}
	if cmd.Flags().Changed("frequency") {
		cfg.Excitation.Frequency = frequency
	}

	return cfg, nil
}

func buildIntegrator(name string) (sim.Integrator, error) {
	switch name {
	case "euler":
		return integrators.NewEuler(), nil
	case "rk4":
		return integrators.NewRK4(), nil
	}
	return nil, fmt.Errorf("unknown integrator: %s (available: euler, rk4)", name)
}

func buildExcitation(ec config.ExcitationConfig) (sim.Excitation, error) {
	switch ec.Profile {
	case "constant":
		return excite.NewConstant(ec.Level), nil
	case "step":
		return excite.NewStep(ec.Low, ec.Level, ec.At), nil
	case "ramp":
		return excite.NewRamp(ec.Low, ec.Level, ec.At), nil
	case "sine":
		return excite.NewSine(ec.Level, ec.Amplitude, ec.Frequency), nil
	case "none":
		return excite.NewNone(1), nil
	}
	return nil, fmt.Errorf("unknown excitation profile: %s", ec.Profile)
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	m := muscle.NewStandard(cfg.Muscle.Units)

	integ, err := buildIntegrator(cfg.Integrator)
	if err != nil {
		return err
	}

	drive, err := buildExcitation(cfg.Excitation)
	if err != nil {
		return err
	}

	s := sim.New(m, integ, drive)
	s.AddMetric(metrics.NewPeakForce(m))
	s.AddMetric(metrics.NewMeanForce(m))
	s.AddMetric(metrics.NewExcitationEffort())
	s.AddMetric(metrics.NewCapacityLoss(m))
	if target > 0 {
		s.AddMetric(metrics.NewEndurance(m, target))
	}

	fmt.Printf("running %d-unit muscle, %s drive, %.1fs...\n",
		cfg.Muscle.Units, cfg.Excitation.Profile, cfg.Duration)
	start := time.Now()

	result, err := s.Run(context.Background(), m.InitialState(), sim.Config{
		Dt:            cfg.Dt,
		Duration:      cfg.Duration,
		Seed:          cfg.Seed,
		ValidateState: true,
	})
	if err != nil {
		return err
	}
	for _, e := range result.Errors {
		fmt.Fprintf(os.Stderr, "warning: %v\n", e)
	}

	elapsed := time.Since(start)

	runID, err := st.Save(storage.RunMetadata{
		Units:      cfg.Muscle.Units,
		Excitation: cfg.Excitation.Profile,
		Integrator: cfg.Integrator,
		Dt:         cfg.Dt,
		Duration:   cfg.Duration,
		Seed:       cfg.Seed,
	}, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	m := muscle.NewStandard(cfg.Muscle.Units)
	return viz.RunLive(m, cfg.Excitation.Level, cfg.Dt)
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tUNITS\tDRIVE\tDURATION\tDT\tINTEG")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%.2fs\t%.4fs\t%s\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Units,
			run.Excitation,
			run.Duration,
			run.Dt,
			run.Integrator,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	trace, err := st.LoadTrace(runID)
	if err != nil {
		return err
	}

	if len(trace.Times) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("units: %d, drive: %s\n", meta.Units, meta.Excitation)
	fmt.Printf("samples: %d\n\n", len(trace.Times))

	series := []struct {
		caption string
		data    []float64
	}{
		{"force", trace.Force},
		{"excitation", trace.Excitation},
		{"capacity", trace.Capacity},
	}

	for _, s := range series {
		graph := asciigraph.Plot(s.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(s.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	trace, err := st.LoadTrace(runID)
	if err != nil {
		return err
	}

	if len(trace.Times) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"time", "excitation", "force", "capacity"}); err != nil {
		return err
	}

	for i := range trace.Times {
		row := []string{
			strconv.FormatFloat(trace.Times[i], 'f', 6, 64),
			strconv.FormatFloat(trace.Excitation[i], 'f', 6, 64),
			strconv.FormatFloat(trace.Force[i], 'f', 6, 64),
			strconv.FormatFloat(trace.Capacity[i], 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	trace, err := st.LoadTrace(runID)
	if err != nil {
		return err
	}

	return storage.ExportJSON(os.Stdout, meta, trace)
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	trace, err := st.LoadTrace(runID)
	if err != nil {
		return err
	}

	if len(trace.Force) == 0 {
		return fmt.Errorf("no data")
	}

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("drive: %s, dt: %.4fs\n\n", meta.Excitation, meta.Dt)

	padded := analysis.PadPow2(trace.Force)
	ps := analysis.PowerSpectrum(padded)

	plotData := ps[:len(ps)/4]

	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum (force)"),
	)
	fmt.Println(graph)
	fmt.Println()

	maxPower := 0.0
	maxIdx := 0
	for i := 1; i < len(plotData); i++ {
		if plotData[i] > maxPower {
			maxPower = plotData[i]
			maxIdx = i
		}
	}

	// bin width is 1/(n*dt) hz
	freq := float64(maxIdx) / (float64(len(padded)) * meta.Dt)
	fmt.Printf("dominant frequency: %.3f hz\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/freq)
	}

	return nil
}

func benchMuscle(cmd *cobra.Command, args []string) error {
	durations := []float64{10.0, 60.0, 200.0}
	dts := []float64{0.001, 0.01, 0.1}

	fmt.Printf("benchmarking %d-unit muscle\n\n", units)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DURATION\tDT\tSTEPS\tTIME\tSTEPS/SEC")

	for _, dur := range durations {
		for _, step := range dts {
			m := muscle.NewStandard(units)
			s := sim.New(m, integrators.NewRK4(), excite.NewConstant(config.DefaultLevel))

			start := time.Now()
			result, err := s.Run(context.Background(), m.InitialState(), sim.Config{Dt: step, Duration: dur})
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			stepsPerSec := float64(result.StepsTaken) / elapsed.Seconds()
			fmt.Fprintf(w, "%.1fs\t%.4fs\t%d\t%v\t%.0f\n",
				dur, step, result.StepsTaken, elapsed, stepsPerSec)
		}
	}

	return w.Flush()
}

func listPresetConfigs(cmd *cobra.Command, args []string) error {
	names := config.ListPresets()
	if len(names) == 0 {
		fmt.Println("no presets")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tDRIVE\tLEVEL\tINTEG\tDT\tDURATION")
	for _, name := range names {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%s\t%.1f\t%s\t%.4fs\t%.1fs\n",
			name, p.Excitation.Profile, p.Excitation.Level, p.Integrator, p.Dt, p.Duration)
	}
	return w.Flush()
}

func sweepLevels(cmd *cobra.Command, args []string) error {
	levels := make([]float64, len(args))
	for i, arg := range args {
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return fmt.Errorf("bad level %q: %w", arg, err)
		}
		levels[i] = v
	}

	if _, err := buildIntegrator(integrator); err != nil {
		return err
	}

	sweep := sim.NewSweep(levels, func(lvl float64) (*sim.Simulator, sim.State, sim.Config) {
		m := muscle.NewStandard(units)
		// each level gets its own integrator; rk4 carries scratch buffers
		integ, _ := buildIntegrator(integrator)
		s := sim.New(m, integ, excite.NewConstant(lvl))
		s.AddMetric(metrics.NewPeakForce(m))
		s.AddMetric(metrics.NewMeanForce(m))
		s.AddMetric(metrics.NewCapacityLoss(m))
		return s, m.InitialState(), sim.Config{Dt: dt, Duration: duration}
	})

	fmt.Printf("sweeping %d levels (%d units, %.1fs each)\n\n", len(levels), units, duration)
	start := time.Now()
	results, err := sweep.Run(context.Background())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "LEVEL\tPEAK\tMEAN\tCAPACITY LOSS")
	for i, r := range results {
		fmt.Fprintf(w, "%.1f\t%.2f\t%.2f\t%.1f%%\n",
			levels[i], r.Metrics["peak_force"], r.Metrics["mean_force"], r.Metrics["capacity_loss"]*100)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\ncompleted in %v\n", elapsed)
	return nil
}
