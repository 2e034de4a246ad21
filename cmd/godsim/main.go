package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"maps"
	"os"
	"os/signal"
	"slices"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/godsim/internal/analysis"
	"github.com/san-kum/godsim/internal/automation"
	"github.com/san-kum/godsim/internal/config"
	"github.com/san-kum/godsim/internal/dynamo"
	"github.com/san-kum/godsim/internal/experiment"
	"github.com/san-kum/godsim/internal/export"
	"github.com/san-kum/godsim/internal/metrics"
	"github.com/san-kum/godsim/internal/report"
	"github.com/san-kum/godsim/internal/sim"
	"github.com/san-kum/godsim/internal/storage"
	"github.com/san-kum/godsim/internal/viz"
)

var (
	dataDir    string
	quiet      bool
	noColor    bool
	preset     string
	configFile string
	ticks      int
	seed       uint64
	every      int
	sliceZ     int
	save       bool
	frameRate  int
	series     string
	runs       int
	outFile    string
	compress   bool
	param      string
	paramMin   float64
	paramMax   float64
	steps      int
	objective  string
	minimize   bool
	svgFile    string
	column     string
	sweepRuns  int
)

// main registers the godsim commands and executes the root command,
// exiting with status 1 on error.
func main() {
	rootCmd := &cobra.Command{
		Use:          "godsim",
		Short:        "voxel world simulator with an autonomous director",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "suppress driver logging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "plain ASCII output")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation and print reports",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addWorldFlags(runCmd)
	runCmd.Flags().IntVar(&ticks, "ticks", config.DefaultTicks, "ticks to simulate")
	runCmd.Flags().Uint64Var(&seed, "seed", 0, "random seed")
	runCmd.Flags().IntVar(&every, "every", config.DefaultReportEvery, "summary interval in ticks (0 disables)")
	runCmd.Flags().IntVar(&sliceZ, "slice", -1, "z-level for slice output (negative means depth/2)")
	runCmd.Flags().BoolVar(&save, "save", false, "store the run record")
	runCmd.Flags().StringVar(&svgFile, "svg", "", "write the final slice as SVG")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run the world in the interactive viewer",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addWorldFlags(liveCmd)
	liveCmd.Flags().Uint64Var(&seed, "seed", 0, "random seed")
	liveCmd.Flags().IntVar(&sliceZ, "slice", -1, "initial z-level (negative means depth/2)")
	liveCmd.Flags().IntVar(&frameRate, "fps", 10, "ticks per second")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored statistics series",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&series, "series", "", "series to plot (default: all)")
	plotCmd.Flags().StringVar(&svgFile, "svg", "", "write the first plotted series as SVG")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "summarise and find cycles in a stored series",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().StringVar(&column, "series", "biomass", "series to analyze")

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show run metadata and metrics",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVarP(&outFile, "out", "o", "", "write to file instead of stdout")
	exportCmd.Flags().BoolVar(&compress, "zstd", false, "zstd compress the export")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, p := range config.ListPresets() {
				fmt.Printf("  %s\n", p)
			}
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE:  printConfig,
	}
	addWorldFlags(configCmd)

	ensembleCmd := &cobra.Command{
		Use:   "ensemble",
		Short: "run independent seeds in parallel",
		Args:  cobra.NoArgs,
		RunE:  runEnsemble,
	}
	addWorldFlags(ensembleCmd)
	ensembleCmd.Flags().IntVar(&runs, "runs", 4, "number of runs")
	ensembleCmd.Flags().IntVar(&ticks, "ticks", config.DefaultTicks, "ticks per run")
	ensembleCmd.Flags().Uint64Var(&seed, "seed", 0, "seed of the first run")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a YAML scenario of scripted runs",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep one parameter and compare averaged metrics",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	addWorldFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&param, "param", "cooling_rate", "parameter to sweep")
	sweepCmd.Flags().Float64Var(&paramMin, "min", 0, "first value")
	sweepCmd.Flags().Float64Var(&paramMax, "max", 0.1, "last value")
	sweepCmd.Flags().IntVar(&steps, "steps", 5, "number of values")
	sweepCmd.Flags().IntVar(&sweepRuns, "runs", 2, "seeds per value")
	sweepCmd.Flags().IntVar(&ticks, "ticks", config.DefaultTicks, "ticks per run")
	sweepCmd.Flags().Uint64Var(&seed, "seed", 0, "seed of the first run")
	sweepCmd.Flags().StringVar(&objective, "objective", "stability", "metric to optimise")
	sweepCmd.Flags().BoolVar(&minimize, "minimize", false, "prefer the lowest objective")

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, analyzeCmd, showCmd, exportCmd,
		presetsCmd, configCmd, ensembleCmd, scenarioCmd, sweepCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addWorldFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml), applied over --preset")
}

func newLogger() *log.Logger {
	if quiet {
		return log.New(io.Discard, "", 0)
	}
	return log.New(os.Stderr, "[godsim] ", log.LstdFlags|log.Lmicroseconds)
}

// loadConfig resolves the preset, then the config file, then any flags the
// user set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		p, err := config.GetPreset(preset)
		if err != nil {
			return nil, fmt.Errorf("%w (available: %v)", err, config.ListPresets())
		}
		cfg = p
	}
	if configFile != "" {
		// The file overlays the preset, or the defaults without one.
		c, err := config.LoadOnto(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = c
	}

	flags := cmd.Flags()
	if flags.Changed("ticks") {
		cfg.Run.Ticks = ticks
	}
	if flags.Changed("seed") {
		cfg.Run.Seed = seed
	}
	if flags.Changed("every") {
		cfg.Run.ReportEvery = every
	}
	if flags.Changed("slice") {
		cfg.Run.SliceZ = sliceZ
	}
	if flags.Changed("data") {
		cfg.Run.DataDir = dataDir
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func presetName() string {
	if preset != "" {
		return preset
	}
	if configFile != "" {
		return "custom"
	}
	return "default"
}

func sortedKeys(m map[string]float64) []string {
	return slices.Sorted(maps.Keys(m))
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	out := report.New(os.Stdout, !noColor)
	z := cfg.Slice()
	k := cfg.Run.ReportEvery
	printer := sim.ObserverFunc(func(s *dynamo.State) {
		if k <= 0 || s.Tick%k != 0 {
			return
		}
		out.Summary(s)
		if s.Tick%(4*k) == 0 {
			_ = out.Slice(s.Grid, z)
		}
	})

	exp := experiment.New(cfg, experiment.WithLogger(newLogger()))
	if err := exp.Setup(metrics.Standard(), printer); err != nil {
		return err
	}

	initial := exp.Multiverse().Current()
	out.Summary(initial)
	if err := out.Slice(initial.Grid, z); err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	start := time.Now()
	result, err := exp.Run(ctx)
	if err != nil && result == nil {
		return err
	}
	elapsed := time.Since(start)

	out.Detailed(result.Final)
	fmt.Printf("\ncompleted %d ticks in %v\n", result.TicksRun, elapsed)
	fmt.Printf("births: %d  extinctions: %d  interventions: %d\n", result.Births, result.Extinctions, result.Actions)
	fmt.Println("\nmetrics:")
	for _, m := range sortedKeys(result.Metrics) {
		fmt.Printf("  %s: %.4f\n", m, result.Metrics[m])
	}

	if svgFile != "" {
		svg, serr := export.SliceToSVG(result.Final.Grid, z, result.Final.Populations, 8)
		if serr != nil {
			return serr
		}
		if serr := os.WriteFile(svgFile, []byte(svg), 0644); serr != nil {
			return serr
		}
		fmt.Printf("slice written to %s\n", svgFile)
	}

	if save {
		st := storage.New(cfg.Run.DataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, serr := st.Save(storage.RunMetadata{
			Preset:    presetName(),
			Seed:      cfg.Run.Seed,
			Ticks:     result.TicksRun,
			Width:     cfg.World.Width,
			Height:    cfg.World.Height,
			Depth:     cfg.World.Depth,
			Generator: cfg.World.Generator,
			Metrics:   result.Metrics,
		}, result.Stats)
		if serr != nil {
			return serr
		}
		fmt.Printf("run id: %s\n", runID)
	}
	return err
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	exp := experiment.New(cfg)
	if err := exp.Setup(nil); err != nil {
		return err
	}

	m := viz.NewModel(exp.Multiverse(), sim.NewRand(cfg.Run.Seed), cfg.Slice(), frameRate).WithColor(!noColor)
	p := tea.NewProgram(m, tea.WithAltScreen())
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
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tTICKS\tSEED\tSIZE\tGEN")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%dx%dx%d\t%s\n",
			run.ID,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Ticks,
			run.Seed,
			run.Width, run.Height, run.Depth,
			run.Generator,
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
	stats, err := st.LoadStats(runID)
	if err != nil {
		return err
	}
	if len(stats) < 2 {
		return fmt.Errorf("not enough samples to plot")
	}

	names := storage.SeriesNames()
	if series != "" {
		names = []string{series}
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("preset: %s  seed: %d\n", meta.Preset, meta.Seed)
	fmt.Printf("samples: %d\n\n", len(stats))

	for i, name := range names {
		data, err := storage.Column(stats, name)
		if err != nil {
			return err
		}
		if i == 0 && svgFile != "" {
			if err := os.WriteFile(svgFile, []byte(export.SeriesToSVG(data, 800, 300, "#00ff88")), 0644); err != nil {
				return err
			}
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(strings.ReplaceAll(name, "_", " ")),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	stats, err := st.LoadStats(runID)
	if err != nil {
		return err
	}
	data, err := storage.Column(stats, column)
	if err != nil {
		return err
	}
	if len(data) < 4 {
		return fmt.Errorf("not enough samples to analyze")
	}

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("series: %s\n\n", column)

	ps := analysis.PowerSpectrum(data)
	graph := asciigraph.Plot(ps[1:],
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum ("+column+")"),
	)
	fmt.Println(graph)
	fmt.Println()

	sum := analysis.Describe(data)
	fmt.Printf("mean: %.3f  std: %.3f  min: %.3f  max: %.3f\n", sum.Mean, sum.Std, sum.Min, sum.Max)
	fmt.Printf("trend: %+.4f per tick\n", sum.Trend)
	if p, ok := analysis.DominantPeriod(data); ok {
		fmt.Printf("dominant period: %.1f ticks\n", p)
	} else {
		fmt.Println("no periodic component")
	}
	return nil
}

func showRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	stats, err := st.LoadStats(args[0])
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "id\t%s\n", meta.ID)
	fmt.Fprintf(w, "preset\t%s\n", meta.Preset)
	fmt.Fprintf(w, "time\t%s\n", meta.Timestamp.Format(time.RFC3339))
	fmt.Fprintf(w, "seed\t%d\n", meta.Seed)
	fmt.Fprintf(w, "world\t%dx%dx%d (%s)\n", meta.Width, meta.Height, meta.Depth, meta.Generator)
	fmt.Fprintf(w, "ticks\t%d\n", meta.Ticks)
	if n := len(stats); n > 0 {
		last := stats[n-1]
		fmt.Fprintf(w, "final\tciv=%d pops=%d biomass=%d tech=%.2f temp=%.2f\n",
			last.Civilizations, last.Populations, last.Biomass, last.AvgTech, last.MeanTemperature)
	}
	for _, m := range sortedKeys(meta.Metrics) {
		fmt.Fprintf(w, "%s\t%.4f\n", m, meta.Metrics[m])
	}
	return w.Flush()
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	stats, err := st.LoadStats(args[0])
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if outFile != "" {
		f, err := os.Create(outFile)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	if compress {
		return storage.ExportZstd(w, *meta, stats)
	}
	return storage.ExportJSON(w, *meta, stats)
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	r := automation.NewRunner(newLogger())
	r.Store = storage.New(dataDir)
	r.NewMetrics = metrics.Standard

	fmt.Printf("scenario %s: %d steps\n", sc.Name, len(sc.Steps))
	results, err := r.RunScenario(ctx, sc)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tSEED\tTICKS\tCIVS\tBIOMASS\tBIRTHS\tEXTINCT\tRUN")
	for _, sr := range results {
		s := sr.Result.Final.Stats()
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%d\t%d\t%s\n",
			sr.Name, sr.Seed, sr.Result.TicksRun, s.Civilizations, s.Biomass,
			sr.Result.Births, sr.Result.Extinctions, sr.RunID)
	}
	if ferr := w.Flush(); ferr != nil {
		return ferr
	}
	return err
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	r := automation.NewRunner(newLogger())
	r.NewMetrics = metrics.Standard
	points, err := r.RunSweep(ctx, &automation.Sweep{
		Base:  cfg,
		Param: param,
		Min:   paramMin,
		Max:   paramMax,
		Steps: steps,
		Seeds: sweepRuns,
	})
	if err != nil {
		return err
	}

	names := automation.Metrics(points)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\n", strings.ToUpper(param), strings.ToUpper(strings.Join(names, "\t")))
	for _, p := range points {
		fmt.Fprintf(w, "%.4f", p.Value)
		for _, n := range names {
			fmt.Fprintf(w, "\t%.3f", p.Metrics[n])
		}
		fmt.Fprintln(w)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if best, ok := automation.Best(points, objective, !minimize); ok {
		fmt.Printf("\nbest %s: %s=%.4f (%.3f)\n", objective, param, best.Value, best.Metrics[objective])
	}
	return nil
}

func printConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return enc.Close()
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if runs <= 0 {
		return fmt.Errorf("runs must be positive")
	}

	ctx, cancel := signalContext()
	defer cancel()

	exp := experiment.New(cfg, experiment.WithLogger(newLogger()))
	fmt.Printf("running %d worlds of %d ticks...\n", runs, cfg.Run.Ticks)
	start := time.Now()
	results, err := exp.Ensemble(ctx, runs, metrics.Standard)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tCIVS\tPOPS\tBIOMASS\tTECH\tTEMP\tBIRTHS\tEXTINCT\tACTIONS")
	for i, r := range results {
		s := r.Final.Stats()
		fmt.Fprintf(w, "%d\t%d\t%d\t%d\t%.2f\t%.2f\t%d\t%d\t%d\n",
			cfg.Run.Seed+uint64(i),
			s.Civilizations, s.Populations, s.Biomass, s.AvgTech, s.MeanTemperature,
			r.Births, r.Extinctions, r.Actions,
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\ncompleted in %v\n", time.Since(start))
	return nil
}
