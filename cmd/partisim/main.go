package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/partisim/internal/config"
	"github.com/san-kum/partisim/internal/engine"
	"github.com/san-kum/partisim/internal/export"
	"github.com/san-kum/partisim/internal/metrics"
	"github.com/san-kum/partisim/internal/storage"
	"github.com/san-kum/partisim/internal/tui"
	"github.com/san-kum/partisim/internal/vec"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string
	dt         float64
	duration   float64
	seed       int64
	particles  int
	integrator string
	boundary   string
	spatial    string
	workers    int
	trace      bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "partisim",
		Short: "2d particle simulation lab",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLive(cmd, args)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".partisim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a headless simulation and save the results",
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)
	runCmd.Flags().BoolVar(&trace, "trace", false, "record trajectories and export them as svg")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run with live terminal visualization",
		RunE:  runLive,
	}
	addSimFlags(liveCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the series of a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "print run metadata as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id] [file]",
		Short: "render the final particle state of a run as svg",
		Args:  cobra.ExactArgs(2),
		RunE:  exportSVG,
	}

	initCmd := &cobra.Command{
		Use:   "init [file]",
		Short: "write a starter config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.DefaultConfig()
			if preset != "" {
				cfg = config.GetPreset(preset)
				if cfg == nil {
					return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
				}
			}
			return cfg.Save(args[0])
		},
	}
	initCmd.Flags().StringVar(&preset, "preset", "", "seed the file from a preset")

	rootCmd.AddCommand(runCmd, liveCmd, presetsCmd, listCmd, plotCmd, exportCmd, exportSVGCmd, initCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	cmd.Flags().IntVar(&particles, "particles", 0, "initial particle count (0 = config default)")
	cmd.Flags().StringVar(&integrator, "integrator", "", "integrator: euler, verlet, rk4")
	cmd.Flags().StringVar(&boundary, "boundary", "", "boundary: reflective, wrapping, absorbing, elastic")
	cmd.Flags().StringVar(&spatial, "spatial", "", "spatial index: grid, quadtree, none")
	cmd.Flags().IntVar(&workers, "workers", 0, "force workers (0 = auto)")
}

// buildConfig layers preset, config file and CLI flags, flags last.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg.Preset = preset
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("seed") || cfg.Seed == 0 {
		cfg.Seed = seed
	}
	if cmd.Flags().Changed("particles") {
		cfg.InitialCount = particles
		if particles > cfg.MaxParticles {
			cfg.MaxParticles = particles
		}
	}
	if cmd.Flags().Changed("integrator") {
		cfg.Integrator = integrator
	}
	if cmd.Flags().Changed("boundary") {
		cfg.Boundary.Policy = boundary
	}
	if cmd.Flags().Changed("spatial") {
		cfg.Spatial.Strategy = spatial
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	eng, err := engine.FromConfig(cfg)
	if err != nil {
		return err
	}
	if workers > 0 {
		eng.SetWorkers(workers)
	}

	var tracer *export.Tracer
	if trace {
		tracer = export.NewTracer(20, 4)
		eng.AddObserver(tracer)
	}

	ms := []metrics.Metric{
		metrics.NewKineticEnergy(),
		metrics.NewMomentumDrift(),
		metrics.NewSpread(),
	}

	fmt.Printf("running %d particles for %.1fs...\n", eng.ParticleCount(), cfg.Duration)
	start := time.Now()

	result, err := eng.Run(context.Background(), cfg.Duration, cfg.Dt, ms)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(storage.RunMetadata{
		Preset:     cfg.Preset,
		Integrator: cfg.Integrator,
		Boundary:   cfg.Boundary.Policy,
		Dt:         cfg.Dt,
		Duration:   cfg.Duration,
		Seed:       cfg.Seed,
	}, result, eng.System())
	if err != nil {
		return err
	}

	if tracer != nil {
		svg := export.TrajectoriesToSVG(tracer.Paths(), cfg.Boundary.Rect(), 800, 800)
		path := filepath.Join(dataDir, runID, "trajectories.svg")
		if err := os.WriteFile(path, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("trajectories: %s\n", path)
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Printf("final particles: %d\n", eng.ParticleCount())
	for _, e := range result.Errors {
		fmt.Printf("warning: %v\n", e)
	}
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	if len(result.Energies) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(result.Energies,
			asciigraph.Height(8),
			asciigraph.Width(70),
			asciigraph.Caption("total kinetic energy"),
		))
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	eng, err := engine.FromConfig(cfg)
	if err != nil {
		return err
	}
	if workers > 0 {
		eng.SetWorkers(workers)
	}

	return tui.Run(eng, cfg)
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
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tDURATION\tDT\tINTEG\tBOUNDARY\tPARTICLES")

	for _, run := range runs {
		meta, err := st.Load(run)
		if err != nil {
			continue
		}
		presetName := meta.Preset
		if presetName == "" {
			presetName = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.4fs\t%s\t%s\t%d\n",
			meta.RunID,
			presetName,
			meta.CreatedAt.Format("2006-01-02 15:04:05"),
			meta.Duration,
			meta.Dt,
			meta.Integrator,
			meta.Boundary,
			meta.FinalCount,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	series, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}
	if len(series) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.RunID)
	fmt.Printf("samples: %d\n\n", len(series))

	energies := make([]float64, len(series))
	counts := make([]float64, len(series))
	for i, rec := range series {
		energies[i] = rec.Energy
		counts[i] = float64(rec.Count)
	}

	fmt.Println(asciigraph.Plot(energies,
		asciigraph.Height(10), asciigraph.Width(80),
		asciigraph.Caption("total kinetic energy")))
	fmt.Println()
	fmt.Println(asciigraph.Plot(counts,
		asciigraph.Height(10), asciigraph.Width(80),
		asciigraph.Caption("particle count")))

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	records, err := st.LoadParticles(args[0])
	if err != nil {
		return err
	}
	sys := storage.RestoreSystem(records)

	// Frame the snapshot with a small margin.
	bounds := snapshotBounds(records)
	svg := export.ScatterToSVG(sys, bounds, 800, 800)
	if err := os.WriteFile(args[1], []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d particles)\n", args[1], len(records))
	return nil
}

func snapshotBounds(records []storage.ParticleRecord) vec.Rect {
	if len(records) == 0 {
		return vec.NewRect(-1, -1, 1, 1)
	}
	minX, maxX := records[0].PosX, records[0].PosX
	minY, maxY := records[0].PosY, records[0].PosY
	for _, r := range records {
		if r.PosX < minX {
			minX = r.PosX
		}
		if r.PosX > maxX {
			maxX = r.PosX
		}
		if r.PosY < minY {
			minY = r.PosY
		}
		if r.PosY > maxY {
			maxY = r.PosY
		}
	}
	padX := (maxX - minX) * 0.05
	padY := (maxY - minY) * 0.05
	if padX == 0 {
		padX = 1
	}
	if padY == 0 {
		padY = 1
	}
	return vec.NewRect(minX-padX, minY-padY, maxX+padX, maxY+padY)
}
