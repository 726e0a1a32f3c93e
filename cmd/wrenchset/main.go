package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/wrenchlab/wrenchset/internal/config"
	"github.com/wrenchlab/wrenchset/internal/export"
	"github.com/wrenchlab/wrenchset/internal/metrics"
	"github.com/wrenchlab/wrenchset/internal/model"
	"github.com/wrenchlab/wrenchset/internal/polytope"
	"github.com/wrenchlab/wrenchset/internal/sphere"
	"github.com/wrenchlab/wrenchset/internal/store"
	"github.com/wrenchlab/wrenchset/internal/tui"
	"github.com/wrenchlab/wrenchset/internal/workspace"
)

var (
	dataDir    string
	configFile string
	preset     string

	modeFlag   string
	poseFlag   []float64
	refFlag    []float64
	bufferFlag float64

	gridFlag  string
	fromFlag  []float64
	toFlag    []float64
	stepsFlag int

	svgPath string
	outPath string

	massFlag    float64
	gravityFlag float64
	tminFlag    float64
	tmaxFlag    float64
	l1Flag      float64
	l2Flag      float64
	tau1Flag    float64
	tau2Flag    float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "wrenchset",
		Short: "achievable wrench set analysis for robot manipulators",
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.Run()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".wrenchset", "directory for stored runs")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [model]",
		Short: "build the wrench polytope at a pose and fit a sphere",
		Args:  cobra.ExactArgs(1),
		RunE:  runAnalyze,
	}
	addScenarioFlags(analyzeCmd)
	addModeFlags(analyzeCmd)
	analyzeCmd.Flags().StringVar(&svgPath, "svg", "", "write an svg rendering to this file")

	sweepCmd := &cobra.Command{
		Use:   "sweep [model]",
		Short: "evaluate the capacity margin over a pose grid",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	addScenarioFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&gridFlag, "grid", "", "pose grid as min:max:steps[,min:max:steps...]")

	profileCmd := &cobra.Command{
		Use:   "profile [model]",
		Short: "evaluate the capacity margin along a straight path",
		Args:  cobra.ExactArgs(1),
		RunE:  runProfile,
	}
	addScenarioFlags(profileCmd)
	profileCmd.Flags().Float64SliceVar(&fromFlag, "from", nil, "start pose")
	profileCmd.Flags().Float64SliceVar(&toFlag, "to", nil, "end pose")
	profileCmd.Flags().IntVar(&stepsFlag, "steps", config.DefaultProfileSteps, "poses along the path")
	profileCmd.Flags().StringVar(&svgPath, "svg", "", "write the margin profile as svg to this file")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored sweep runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the margins of a stored sweep",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [model]",
		Short: "export a pose analysis as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportAnalysis,
	}
	addScenarioFlags(exportJSONCmd)
	addModeFlags(exportJSONCmd)
	exportJSONCmd.Flags().StringVar(&outPath, "out", "", "output file (default stdout)")

	presetsCmd := &cobra.Command{
		Use:   "presets [model]",
		Short: "list presets for a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names := config.ListPresets(args[0])
			if len(names) == 0 {
				return fmt.Errorf("no presets for model: %s", args[0])
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, name := range names {
				fmt.Printf("  %s\n", name)
			}
			return nil
		},
	}

	exploreCmd := &cobra.Command{
		Use:   "explore",
		Short: "interactive wrench set explorer",
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.Run()
		},
	}

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(sweepCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(plotCmd)
	rootCmd.AddCommand(exportJSONCmd)
	rootCmd.AddCommand(presetsCmd)
	rootCmd.AddCommand(exploreCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "load scenario from a yaml file")
	cmd.Flags().StringVar(&preset, "preset", "", "apply a named preset for the model")
	cmd.Flags().Float64SliceVar(&refFlag, "ref", nil, "reference wrench")
	cmd.Flags().Float64Var(&massFlag, "mass", 0, "payload mass override")
	cmd.Flags().Float64Var(&gravityFlag, "gravity", 0, "gravity override")
	cmd.Flags().Float64Var(&tminFlag, "tmin", 0, "minimum cable tension override")
	cmd.Flags().Float64Var(&tmaxFlag, "tmax", 0, "maximum cable tension override")
	cmd.Flags().Float64Var(&l1Flag, "l1", 0, "first link length override")
	cmd.Flags().Float64Var(&l2Flag, "l2", 0, "second link length override")
	cmd.Flags().Float64Var(&tau1Flag, "tau1", 0, "shoulder torque limit override")
	cmd.Flags().Float64Var(&tau2Flag, "tau2", 0, "elbow torque limit override")
}

func addModeFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&modeFlag, "mode", "capacity", "sphere mode: capacity, chebyshev, max_containing, coriolis")
	cmd.Flags().Float64SliceVar(&poseFlag, "pose", nil, "pose to analyze")
	cmd.Flags().Float64Var(&bufferFlag, "buffer", 0, "required clearance around the reference wrench")
}

// resolveConfig layers a preset, then a config file, then explicitly set
// flags on top of the defaults. The model argument always wins over the
// model named in a config file.
func resolveConfig(cmd *cobra.Command, modelName string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	cfg.Model = modelName

	if preset != "" {
		p := config.GetPreset(modelName, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset %q for %s (available: %s)",
				preset, modelName, strings.Join(config.ListPresets(modelName), ", "))
		}
		base := *p
		cfg = &base
		cfg.Model = modelName
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		cfg.Model = modelName
	}

	if cmd.Flags().Changed("mode") {
		cfg.Mode = modeFlag
	}
	if cmd.Flags().Changed("pose") {
		cfg.Pose = poseFlag
	}
	if cmd.Flags().Changed("ref") {
		cfg.Reference = refFlag
	}
	if cmd.Flags().Changed("buffer") {
		cfg.Buffer = bufferFlag
	}
	if cmd.Flags().Changed("mass") {
		cfg.Robot.Mass = massFlag
	}
	if cmd.Flags().Changed("gravity") {
		cfg.Robot.Gravity = gravityFlag
	}
	if cmd.Flags().Changed("tmin") {
		cfg.Robot.TensionMin = tminFlag
	}
	if cmd.Flags().Changed("tmax") {
		cfg.Robot.TensionMax = tmaxFlag
	}
	if cmd.Flags().Changed("l1") {
		cfg.Robot.L1 = l1Flag
	}
	if cmd.Flags().Changed("l2") {
		cfg.Robot.L2 = l2Flag
	}
	if cmd.Flags().Changed("tau1") {
		cfg.Robot.ShoulderTorque = tau1Flag
	}
	if cmd.Flags().Changed("tau2") {
		cfg.Robot.ElbowTorque = tau2Flag
	}

	return cfg, nil
}

func buildSource(cfg *config.Config) (model.Source, error) {
	rc := cfg.Robot
	switch cfg.Model {
	case "twolink":
		m := model.NewTwoLink()
		if rc.L1 > 0 {
			m.L1 = rc.L1
		}
		if rc.L2 > 0 {
			m.L2 = rc.L2
		}
		if rc.Mass > 0 {
			m.M2 = rc.Mass
		}
		if rc.Gravity > 0 {
			m.Gravity = rc.Gravity
		}
		if rc.ShoulderTorque > 0 {
			m.Tau1Min, m.Tau1Max = -rc.ShoulderTorque, rc.ShoulderTorque
		}
		if rc.ElbowTorque > 0 {
			m.Tau2Min, m.Tau2Max = -rc.ElbowTorque, rc.ElbowTorque
		}
		return m, nil
	case "planar_cable":
		m := model.NewPlanarCable()
		applyCableOverrides(&m.Mass, &m.Gravity, &m.Tmin, &m.Tmax, rc)
		return m, nil
	case "spatial_cable":
		m := model.NewSpatialCable()
		applyCableOverrides(&m.Mass, &m.Gravity, &m.Tmin, &m.Tmax, rc)
		return m, nil
	default:
		return nil, fmt.Errorf("unknown model: %s (available: twolink, planar_cable, spatial_cable)", cfg.Model)
	}
}

func applyCableOverrides(mass, gravity, tmin, tmax *float64, rc config.RobotConfig) {
	if rc.Mass > 0 {
		*mass = rc.Mass
	}
	if rc.Gravity > 0 {
		*gravity = rc.Gravity
	}
	if rc.TensionMin > 0 {
		*tmin = rc.TensionMin
	}
	if rc.TensionMax > 0 {
		*tmax = rc.TensionMax
	}
}

func reference(cfg *config.Config, dim int) []float64 {
	if len(cfg.Reference) > 0 {
		return cfg.Reference
	}
	return make([]float64, dim)
}

func approximate(cfg *config.Config, p *polytope.Polytope, pose []float64) (sphere.Sphere, error) {
	ap := sphere.Approximator{}
	ref := reference(cfg, p.Dim())

	switch cfg.Mode {
	case "capacity":
		return ap.Capacity(p, ref)
	case "chebyshev":
		return ap.Chebyshev(context.Background(), p)
	case "max_containing":
		return ap.MaxContaining(context.Background(), p, ref, cfg.Buffer)
	case "coriolis":
		if cfg.Model != "twolink" {
			return sphere.Sphere{}, fmt.Errorf("coriolis mode needs an elbow angle, only twolink supports it")
		}
		return ap.CoriolisAdjusted(p, ref, pose[1])
	default:
		return sphere.Sphere{}, fmt.Errorf("unknown mode: %s (available: capacity, chebyshev, max_containing, coriolis)", cfg.Mode)
	}
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}

	src, err := buildSource(cfg)
	if err != nil {
		return err
	}

	pose := cfg.GetPose()
	act, err := src.At(pose)
	if err != nil {
		return err
	}

	var builder polytope.Builder
	start := time.Now()
	poly, err := builder.Build(context.Background(), act)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	n, m := act.Dims()
	fmt.Printf("model: %s  pose: %s\n", cfg.Model, fmtVec(pose))
	fmt.Printf("wrench dim: %d  actuators: %d\n", n, m)
	fmt.Printf("built in %v\n\n", elapsed)
	fmt.Printf("faces: %d\n", poly.NFaces)
	fmt.Printf("half-spaces: %d\n", poly.NumHalfspaces())
	fmt.Printf("volume: %.4f\n\n", poly.Volume)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	header := make([]string, 0, n+1)
	for j := 0; j < n; j++ {
		header = append(header, fmt.Sprintf("A%d", j))
	}
	header = append(header, "B")
	fmt.Fprintln(w, strings.Join(header, "\t"))
	for i := 0; i < poly.NumHalfspaces(); i++ {
		row := make([]string, 0, n+1)
		for j := 0; j < n; j++ {
			row = append(row, fmt.Sprintf("%.4f", poly.A.At(i, j)))
		}
		row = append(row, fmt.Sprintf("%.4f", poly.B[i]))
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	sp, err := approximate(cfg, poly, pose)
	if err != nil {
		return err
	}

	fmt.Printf("\n%s sphere:\n", cfg.Mode)
	fmt.Printf("  center: %s\n", fmtVec(sp.Center))
	fmt.Printf("  radius: %.4f\n", sp.Radius)

	if svgPath != "" {
		svg := export.PolytopeToSVG(poly, []sphere.Sphere{sp}, reference(cfg, poly.Dim()), 640, 640)
		if svg == "" {
			fmt.Println("\nsvg output needs a planar wrench set, skipping")
			return nil
		}
		if err := os.WriteFile(svgPath, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("\nsvg written to %s\n", svgPath)
	}

	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}

	src, err := buildSource(cfg)
	if err != nil {
		return err
	}

	grid, err := resolveGrid(cfg)
	if err != nil {
		return err
	}

	sw := workspace.NewSweeper(src, cfg.Reference)
	sw.AddMetric(metrics.NewMinMargin())
	sw.AddMetric(metrics.NewMeanMargin())
	sw.AddMetric(metrics.NewFeasibleShare())

	fmt.Printf("sweeping %s over %d poses...\n", cfg.Model, grid.Size())
	start := time.Now()
	result, err := sw.Run(context.Background(), grid)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(cfg.Model, "capacity", cfg.Reference, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Println("\nmetrics:")
	for name, value := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, value)
	}

	return nil
}

func resolveGrid(cfg *config.Config) (workspace.Grid, error) {
	if gridFlag != "" {
		var axes []workspace.Axis
		for _, spec := range strings.Split(gridFlag, ",") {
			parts := strings.Split(spec, ":")
			if len(parts) != 3 {
				return workspace.Grid{}, fmt.Errorf("bad grid axis %q, want min:max:steps", spec)
			}
			lo, err := strconv.ParseFloat(parts[0], 64)
			if err != nil {
				return workspace.Grid{}, fmt.Errorf("bad grid axis %q: %w", spec, err)
			}
			hi, err := strconv.ParseFloat(parts[1], 64)
			if err != nil {
				return workspace.Grid{}, fmt.Errorf("bad grid axis %q: %w", spec, err)
			}
			steps, err := strconv.Atoi(parts[2])
			if err != nil {
				return workspace.Grid{}, fmt.Errorf("bad grid axis %q: %w", spec, err)
			}
			axes = append(axes, workspace.Axis{Min: lo, Max: hi, Steps: steps})
		}
		return workspace.Grid{Axes: axes}, nil
	}

	axes := make([]workspace.Axis, len(cfg.Grid.Axes))
	for i, a := range cfg.Grid.Axes {
		axes[i] = workspace.Axis{Min: a.Min, Max: a.Max, Steps: a.Steps}
	}
	return workspace.Grid{Axes: axes}, nil
}

func runProfile(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}

	src, err := buildSource(cfg)
	if err != nil {
		return err
	}

	from, to := cfg.Profile.From, cfg.Profile.To
	if cmd.Flags().Changed("from") {
		from = fromFlag
	}
	if cmd.Flags().Changed("to") {
		to = toFlag
	}
	steps := cfg.Profile.Steps
	if cmd.Flags().Changed("steps") || steps == 0 {
		steps = stepsFlag
	}
	if len(from) == 0 || len(to) == 0 {
		return fmt.Errorf("profile needs --from and --to poses")
	}

	sw := workspace.NewSweeper(src, cfg.Reference)
	sw.AddMetric(metrics.NewMinMargin())
	sw.AddMetric(metrics.NewFeasibleShare())

	result, err := sw.Profile(context.Background(), from, to, steps)
	if err != nil {
		return err
	}

	data := make([]float64, 0, len(result.Points))
	infeasible := 0
	for _, pt := range result.Points {
		if pt.Feasible {
			data = append(data, pt.Margin)
		} else {
			infeasible++
		}
	}

	fmt.Printf("%s: %s -> %s, %d poses\n\n", cfg.Model, fmtVec(from), fmtVec(to), steps)
	if len(data) >= 2 {
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(60),
			asciigraph.Caption("capacity margin along path"),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	if infeasible > 0 {
		fmt.Printf("%d of %d poses infeasible\n", infeasible, len(result.Points))
	}
	for name, value := range result.Metrics {
		fmt.Printf("%s: %.6f\n", name, value)
	}

	if svgPath != "" {
		svg := export.MarginProfileToSVG(result.Points, 800, 300, "#00cc66")
		if svg == "" {
			fmt.Println("\nsvg output needs at least two feasible poses, skipping")
			return nil
		}
		if err := os.WriteFile(svgPath, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("\nsvg written to %s\n", svgPath)
	}

	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no stored runs")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODEL\tMODE\tTIME\tMIN MARGIN\tFEASIBLE")
	for _, run := range runs {
		min := "-"
		if v, ok := run.Metrics["min_margin"]; ok {
			min = fmt.Sprintf("%.3f", v)
		}
		share := "-"
		if v, ok := run.Metrics["feasible_share"]; ok {
			share = fmt.Sprintf("%.0f%%", v*100)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			run.ID, run.Model, run.Mode,
			run.Timestamp.Format("2006-01-02 15:04:05"), min, share)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	points, err := st.LoadPoints(runID)
	if err != nil {
		return err
	}
	if len(points) == 0 {
		return fmt.Errorf("no data")
	}

	data := make([]float64, 0, len(points))
	for _, pt := range points {
		if pt.Feasible {
			data = append(data, pt.Margin)
		}
	}
	if len(data) < 2 {
		return fmt.Errorf("not enough feasible poses to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("model: %s\n\n", meta.Model)

	graph := asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("capacity margin (grid order, feasible poses)"),
	)
	fmt.Println(graph)
	fmt.Printf("\nfeasible: %d/%d poses\n", len(data), len(points))

	return nil
}

func exportAnalysis(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}

	src, err := buildSource(cfg)
	if err != nil {
		return err
	}

	pose := cfg.GetPose()
	act, err := src.At(pose)
	if err != nil {
		return err
	}

	var builder polytope.Builder
	poly, err := builder.Build(context.Background(), act)
	if err != nil {
		return err
	}

	sp, err := approximate(cfg, poly, pose)
	if err != nil {
		return err
	}

	if outPath != "" {
		if err := store.ExportJSON(outPath, cfg.Model, cfg.Mode, pose, poly, sp); err != nil {
			return err
		}
		fmt.Printf("exported to %s\n", outPath)
		return nil
	}
	return store.ExportJSONStdout(cfg.Model, cfg.Mode, pose, poly, sp)
}

func fmtVec(v []float64) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = fmt.Sprintf("%.2f", x)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
