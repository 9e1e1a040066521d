package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/brakelab/brakelab/internal/config"
	"github.com/brakelab/brakelab/internal/engine"
	"github.com/brakelab/brakelab/internal/export"
	"github.com/brakelab/brakelab/internal/history"
	"github.com/brakelab/brakelab/internal/metrics"
	"github.com/brakelab/brakelab/internal/scenario"
	"github.com/brakelab/brakelab/internal/storage"
	"github.com/brakelab/brakelab/internal/sweep"
	"github.com/brakelab/brakelab/internal/viz"
)

var (
	dataDir    string
	speed      string
	surface    string
	distance   float64
	maxTicks   int
	configFile string
	preset     string
	frameRate  int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "brakelab",
		Short: "braking distance simulation lab",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to the live view when no subcommand is given.
			return runLive(cmd, args)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run one braking scenario",
		RunE:  runScenario,
	}
	runCmd.Flags().StringVar(&speed, "speed", "medium", "speed class (low, medium, high)")
	runCmd.Flags().StringVar(&surface, "surface", "dry", "road surface (dry, wet, icy)")
	runCmd.Flags().Float64Var(&distance, "distance", config.DefaultObstacleDistance, "obstacle distance past the brake line (units)")
	runCmd.Flags().IntVar(&maxTicks, "ticks", config.DefaultMaxTicks, "tick budget")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset scenario")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "run the full speed/surface matrix",
		RunE:  runSweep,
	}
	sweepCmd.Flags().Float64Var(&distance, "distance", config.DefaultObstacleDistance, "obstacle distance past the brake line (units)")
	sweepCmd.Flags().IntVar(&maxTicks, "ticks", config.DefaultMaxTicks, "tick budget")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run with live terminal visualization",
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&speed, "speed", "medium", "speed class (low, medium, high)")
	liveCmd.Flags().StringVar(&surface, "surface", "dry", "road surface (dry, wet, icy)")
	liveCmd.Flags().Float64Var(&distance, "distance", config.DefaultObstacleDistance, "obstacle distance past the brake line (units)")
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	listCmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"history"},
		Short:   "list saved runs",
		RunE:    listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved run's traces",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a saved run's trace to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export a saved run's velocity curve to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a saved run to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				p := config.Presets[name]
				fmt.Printf("  %-10s %s / %s, obstacle %.0f units\n", name, p.Speed, p.Surface, p.ObstacleDistance)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, sweepCmd, liveCmd, listCmd, plotCmd, exportCSVCmd, exportSVGCmd, exportJSONCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func resolveConfiguration(cmd *cobra.Command) (scenario.RunConfiguration, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return scenario.RunConfiguration{}, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return scenario.RunConfiguration{}, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	// CLI flags override preset and file values.
	if cmd.Flags().Changed("speed") || (preset == "" && configFile == "") {
		cfg.Speed = speed
	}
	if cmd.Flags().Changed("surface") || (preset == "" && configFile == "") {
		cfg.Surface = surface
	}
	if cmd.Flags().Changed("distance") || (preset == "" && configFile == "") {
		cfg.ObstacleDistance = distance
	}

	return cfg.RunConfiguration()
}

func runScenario(cmd *cobra.Command, args []string) error {
	runCfg, err := resolveConfiguration(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	log := history.NewLog()
	eng := engine.New(runCfg, log)
	eng.AddMetric(metrics.NewPeakDecel())
	eng.AddMetric(metrics.NewMeanSpeed())
	eng.AddMetric(metrics.NewTravelDistance())

	fmt.Printf("running %s / %s, obstacle %.0f units past the line...\n",
		runCfg.SpeedClass, runCfg.Surface, runCfg.ObstacleDistance)
	start := time.Now()

	result, err := eng.Run(context.Background(), maxTicks)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(result)
	if err != nil {
		return err
	}

	title, message := history.Banner(result.Outcome)
	fmt.Printf("completed in %v (%d ticks, %.1fs simulated)\n", elapsed, result.Ticks, result.Trace[len(result.Trace)-1].Time)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("\n%s: %s\n", title, message)
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.4f\n", name, val)
	}

	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	fmt.Printf("sweeping speed/surface matrix, obstacle %.0f units past the line\n\n", distance)

	cells := sweep.Run(context.Background(), distance, maxTicks)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SPEED\tSURFACE\tDISTANCE\tOUTCOME\tTICKS")
	for _, c := range cells {
		if c.Err != nil {
			fmt.Fprintf(w, "%s\t%s\terror: %v\t\t\n", c.Config.SpeedClass, c.Config.Surface, c.Err)
			continue
		}
		row := history.Row(c.Result.Outcome)
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n",
			c.Config.SpeedClass, c.Config.Surface, row.Distance, row.Outcome, c.Result.Ticks)
	}
	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	spd, err := scenario.ParseSpeedClass(speed)
	if err != nil {
		spd = scenario.SpeedMedium
	}
	srf, err := scenario.ParseSurface(surface)
	if err != nil {
		srf = scenario.SurfaceDry
	}
	dist := distance
	if dist <= 0 {
		dist = config.DefaultObstacleDistance
	}

	m := viz.NewModel(scenario.RunConfiguration{
		SpeedClass:       spd,
		Surface:          srf,
		ObstacleDistance: dist,
	}, frameRate)
	p := tea.NewProgram(m)
	_, err = p.Run()
	return err
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
	fmt.Fprintln(w, "ID\tTIME\tSPEED\tSURFACE\tOBSTACLE\tDISTANCE\tOUTCOME")
	for _, run := range runs {
		outcome := "stopped"
		if run.Crashed {
			outcome = "crashed"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.0f\t%.1fm\t%s\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Speed,
			run.Surface,
			run.ObstacleDistance,
			run.BrakingDistance,
			outcome,
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
	trace, err := st.LoadTrace(args[0])
	if err != nil {
		return err
	}
	if len(trace) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s / %s, obstacle %.0f units\n", meta.Speed, meta.Surface, meta.ObstacleDistance)
	fmt.Printf("samples: %d\n\n", len(trace))

	vel := make([]float64, len(trace))
	pos := make([]float64, len(trace))
	for i, row := range trace {
		vel[i] = row.Velocity
		pos[i] = row.Position
	}

	fmt.Println(asciigraph.Plot(vel,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("velocity (units/s)"),
	))
	fmt.Println()
	fmt.Println(asciigraph.Plot(pos,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("position (units)"),
	))

	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	trace, err := st.LoadTrace(args[0])
	if err != nil {
		return err
	}
	return storage.ExportCSV(os.Stdout, trace)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	trace, err := st.LoadTrace(args[0])
	if err != nil {
		return err
	}
	svg := export.TraceSVG(meta, trace)
	if svg == "" {
		return fmt.Errorf("no data to export")
	}
	fmt.Print(svg)
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	trace, err := st.LoadTrace(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, meta, trace)
}
