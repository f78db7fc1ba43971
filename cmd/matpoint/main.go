package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/spf13/cobra"

	"github.com/san-kum/matpoint/internal/config"
	"github.com/san-kum/matpoint/internal/dynamo"
	"github.com/san-kum/matpoint/internal/experiment"
	"github.com/san-kum/matpoint/internal/export"
	"github.com/san-kum/matpoint/internal/logging"
	"github.com/san-kum/matpoint/internal/point"
	"github.com/san-kum/matpoint/internal/viz"
)

var (
	configFile string
	preset     string
	logLevel   string
	mass       float64
	pos        []float64
	vel        []float64
	forceNames []string
	dt         float64
	duration   float64
	format     string
	plot       bool
	plotHeight int
	plotWidth  int
	otherPos   []float64
	otherVel   []float64
	otherMass  float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "matpoint",
		Short:         "material point dynamics",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run simulation",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addPointFlags(runCmd)
	runCmd.Flags().StringVar(&format, "format", "table", "output format (table, csv, json)")
	runCmd.Flags().BoolVar(&plot, "plot", false, "plot trajectory components")
	runCmd.Flags().IntVar(&plotWidth, "width", 70, "plot width")
	runCmd.Flags().IntVar(&plotHeight, "height", 12, "plot height")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run simulation with live visualization",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addPointFlags(liveCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tFORCES\tDT\tDURATION")
			for _, name := range config.ListPresets() {
				cfg := config.GetPreset(name)
				terms := make([]string, len(cfg.Forces))
				for i, f := range cfg.Forces {
					terms[i] = f.TermName()
				}
				fmt.Fprintf(w, "%s\t%s\t%.4fs\t%.2fs\n", name, strings.Join(terms, "+"), cfg.Dt, cfg.Duration)
			}
			return w.Flush()
		},
	}

	forcesCmd := &cobra.Command{
		Use:   "forces",
		Short: "list available forces and their parameters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := experiment.NewRegistry()
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tPARAMS")
			for _, name := range registry.ListForces() {
				f, err := registry.GetForce(name, nil)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\t%s\n", name, formatParams(f))
			}
			return w.Flush()
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "print the resolved configuration as yaml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			return cfg.Encode(os.Stdout)
		},
	}
	addPointFlags(configCmd)

	hashCmd := &cobra.Command{
		Use:   "hash",
		Short: "hash a point, or a pair of points with --other-pos",
		Args:  cobra.NoArgs,
		RunE:  hashPoints,
	}
	hashCmd.Flags().Float64Var(&mass, "mass", config.DefaultMass, "mass")
	hashCmd.Flags().Float64SliceVar(&pos, "pos", []float64{0, 0, 0}, "position x,y,z")
	hashCmd.Flags().Float64SliceVar(&vel, "vel", []float64{0, 0, 0}, "velocity x,y,z")
	hashCmd.Flags().Float64Var(&otherMass, "other-mass", config.DefaultMass, "mass of the second point")
	hashCmd.Flags().Float64SliceVar(&otherPos, "other-pos", nil, "position of the second point")
	hashCmd.Flags().Float64SliceVar(&otherVel, "other-vel", []float64{0, 0, 0}, "velocity of the second point")

	rootCmd.AddCommand(runCmd, liveCmd, presetsCmd, forcesCmd, configCmd, hashCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func addPointFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().Float64Var(&mass, "mass", config.DefaultMass, "mass")
	cmd.Flags().Float64SliceVar(&pos, "pos", []float64{0, 0, config.DefaultZ}, "initial position x,y,z")
	cmd.Flags().Float64SliceVar(&vel, "vel", []float64{0, 0, 0}, "initial velocity x,y,z")
	cmd.Flags().StringSliceVar(&forceNames, "force", []string{"gravity"}, "forces to apply")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
}

// resolveConfig layers defaults, preset, config file and explicitly set
// flags, in that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("mass") {
		cfg.Point.Mass = mass
	}
	if flags.Changed("pos") {
		v, err := vec3(pos, "pos")
		if err != nil {
			return nil, err
		}
		cfg.Point.Position = v
	}
	if flags.Changed("vel") {
		v, err := vec3(vel, "vel")
		if err != nil {
			return nil, err
		}
		cfg.Point.Velocity = v
	}
	if flags.Changed("force") {
		cfg.Forces = make([]config.ForceConfig, len(forceNames))
		for i, name := range forceNames {
			cfg.Forces[i] = config.ForceConfig{Type: name}
		}
	}
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("time") {
		cfg.Duration = duration
	}
	if flags.Changed("log-level") || cfg.LogLevel == "" {
		cfg.LogLevel = logLevel
	}

	return cfg, cfg.Validate()
}

func vec3(v []float64, name string) ([3]float64, error) {
	if len(v) != 3 {
		return [3]float64{}, fmt.Errorf("--%s needs 3 components, got %d", name, len(v))
	}
	return [3]float64{v[0], v[1], v[2]}, nil
}

func setup(cmd *cobra.Command) (*config.Config, *experiment.Experiment, logging.Logger, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, nil, nil, err
	}

	log, err := logging.New(os.Stderr, cfg.LogLevel)
	if err != nil {
		return nil, nil, nil, err
	}

	exp := experiment.New(cfg)
	if err := exp.Setup(experiment.NewRegistry(), log); err != nil {
		return nil, nil, nil, err
	}
	return cfg, exp, log, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, exp, log, err := setup(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	switch format {
	case "csv":
		// rows are written as they are produced
		w := export.NewCSVWriter(os.Stdout, 0)
		var writeErr error
		_, err := exp.Stream(ctx, func(s dynamo.Sample) bool {
			writeErr = w.Write(s)
			return writeErr == nil
		})
		if writeErr != nil {
			return writeErr
		}
		if flushErr := w.Flush(); flushErr != nil {
			return flushErr
		}
		return err
	case "json", "table":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	log.Info("running simulation", "steps", cfg.SimConfig().Steps(), "dt", cfg.Dt)
	start := time.Now()

	result, err := exp.Run(ctx)
	if err != nil {
		var simErr *dynamo.SimulationError
		if errors.As(err, &simErr) && result != nil {
			log.Warn("simulation stopped early", "step", simErr.Step, "time", simErr.Time)
			printSummary(result, time.Since(start))
		}
		return err
	}

	if format == "json" {
		return export.WriteJSON(os.Stdout, result, cfg.SimConfig())
	}

	printSummary(result, time.Since(start))
	if plot {
		fmt.Println()
		fmt.Println(viz.PlotComponents(result, plotWidth, plotHeight))
		if e := viz.PlotEnergy(result, exp.Force(), plotWidth, plotHeight); e != "" {
			fmt.Println(e)
		}
	}
	return nil
}

func printSummary(result *dynamo.Result, elapsed time.Duration) {
	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", result.RunID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Printf("final: %s\n", result.Final)
	fmt.Printf("hash: %016x\n", result.Final.Hash())
	fmt.Println("\nmetrics:")

	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, name := range names {
		fmt.Fprintf(w, "  %s\t%.6f\n", name, result.Metrics[name])
	}
	w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, exp, _, err := setup(cmd)
	if err != nil {
		return err
	}

	title := "material point"
	if preset != "" {
		title = preset
	}
	m := viz.NewModel(title, exp.Point(), exp.Force(), cfg.Dt)
	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
	return err
}

func hashPoints(cmd *cobra.Command, args []string) error {
	a, err := buildPoint(pos, vel, mass)
	if err != nil {
		return err
	}

	fmt.Println(viz.Row("point", a.String()))
	fmt.Println(viz.Row("hash", fmt.Sprintf("%016x", a.Hash())))

	if !cmd.Flags().Changed("other-pos") {
		return nil
	}

	b, err := buildPoint(otherPos, otherVel, otherMass)
	if err != nil {
		return err
	}
	fmt.Println(viz.Row("other", b.String()))
	fmt.Println(viz.Row("other hash", fmt.Sprintf("%016x", b.Hash())))
	fmt.Println(viz.Row("equal", fmt.Sprintf("%t", a.Equal(b))))
	fmt.Println(viz.Row("pair hash", fmt.Sprintf("%016x", point.HashPair(a, b))))
	fmt.Println(viz.Row("ordered hash", fmt.Sprintf("%016x", point.HashOrderedPair(a, b))))
	return nil
}

func buildPoint(p, v []float64, m float64) (point.MaterialPoint, error) {
	pv, err := vec3(p, "pos")
	if err != nil {
		return point.MaterialPoint{}, err
	}
	vv, err := vec3(v, "vel")
	if err != nil {
		return point.MaterialPoint{}, err
	}
	mp, err := point.NewAt(mgl64.Vec3(pv), m)
	if err != nil {
		return point.MaterialPoint{}, err
	}
	mp.SetVelocity(mgl64.Vec3(vv))
	return mp, nil
}

func formatParams(f dynamo.Force) string {
	c, ok := f.(dynamo.Configurable)
	if !ok {
		return "-"
	}
	params := c.GetParams()
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%g", k, params[k])
	}
	return strings.Join(parts, " ")
}
