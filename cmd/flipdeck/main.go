package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gorilla/websocket"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/flipdeck/flipdeck/internal/config"
	"github.com/flipdeck/flipdeck/internal/export"
	"github.com/flipdeck/flipdeck/internal/flip"
	"github.com/flipdeck/flipdeck/internal/gui"
	"github.com/flipdeck/flipdeck/internal/render"
	"github.com/flipdeck/flipdeck/internal/session"
	"github.com/flipdeck/flipdeck/internal/storage"
	"github.com/flipdeck/flipdeck/internal/tui"
	"github.com/flipdeck/flipdeck/internal/web"
)

var (
	dataDir     string
	configFile  string
	preset      string
	durationMS  int
	axis        string
	orientation string
	backface    string
	snapTime    float64
	snapTravel  float64
	perspective float64
	tickRate    int
	// Scripted runs
	flips   int
	dwellMS int
	label   string
	// Plot and export output
	svgFile    string
	samples    int
	plotWidth  int
	plotHeight int
	// Render output
	outFile     string
	imageWidth  int
	imageHeight int
	// Web
	port       string
	wsURL      string
	frameLimit int
)

// addAnimFlags registers the shared animation flags; every command that
// builds a controller takes the same set.
func addAnimFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().IntVar(&durationMS, "duration", config.DefaultDurationMS, "flip duration (ms)")
	cmd.Flags().StringVar(&axis, "axis", "vertical", "rotation axis (vertical|horizontal)")
	cmd.Flags().StringVar(&orientation, "orientation", "front", "starting face (front|back)")
	cmd.Flags().StringVar(&backface, "backface", "tracking", "backface mode (tracking|pinned)")
	cmd.Flags().Float64Var(&snapTime, "snap-time", config.DefaultSnapTime, "easing knee time")
	cmd.Flags().Float64Var(&snapTravel, "snap-travel", config.DefaultSnapTravel, "easing knee travel")
	cmd.Flags().Float64Var(&perspective, "perspective", config.DefaultPerspective, "perspective coefficient")
	cmd.Flags().IntVar(&tickRate, "tick-rate", config.DefaultTickRate, "ticks per second")
}

// main registers commands and runs the interactive TUI when no
// subcommand is given. It exits with status 1 on command errors.
func main() {
	rootCmd := &cobra.Command{
		Use:   "flipdeck",
		Short: "two-sided card flip animation lab",
		RunE:  runTUI,
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".flipdeck", "data directory")
	addAnimFlags(rootCmd)

	demoCmd := &cobra.Command{
		Use:   "demo",
		Short: "run a scripted flip and print the trace",
		RunE:  runDemo,
	}
	addAnimFlags(demoCmd)
	demoCmd.Flags().IntVar(&flips, "flips", 2, "number of flips")
	demoCmd.Flags().IntVar(&dwellMS, "dwell", 250, "dwell between flips (ms)")

	curveCmd := &cobra.Command{
		Use:   "curve",
		Short: "plot the easing curve",
		RunE:  plotCurve,
	}
	addAnimFlags(curveCmd)
	curveCmd.Flags().IntVar(&samples, "samples", 80, "curve sample count")
	curveCmd.Flags().StringVar(&svgFile, "svg", "", "also write the curve as SVG")
	curveCmd.Flags().IntVar(&plotWidth, "svg-width", 640, "SVG width")
	curveCmd.Flags().IntVar(&plotHeight, "svg-height", 400, "SVG height")

	recordCmd := &cobra.Command{
		Use:   "record",
		Short: "run a scripted flip and store the frames",
		RunE:  recordRun,
	}
	addAnimFlags(recordCmd)
	recordCmd.Flags().IntVar(&flips, "flips", 1, "number of flips")
	recordCmd.Flags().IntVar(&dwellMS, "dwell", 0, "dwell between flips (ms)")
	recordCmd.Flags().StringVar(&label, "label", "flip", "run label")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata as JSON, or the trajectory as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&svgFile, "svg", "", "write the angle trajectory as SVG instead")
	exportCmd.Flags().IntVar(&plotWidth, "svg-width", 640, "SVG width")
	exportCmd.Flags().IntVar(&plotHeight, "svg-height", 400, "SVG height")

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "render a scripted flip as an animated WebP",
		RunE:  renderWebP,
	}
	addAnimFlags(renderCmd)
	renderCmd.Flags().IntVar(&flips, "flips", 2, "number of flips")
	renderCmd.Flags().IntVar(&dwellMS, "dwell", 250, "dwell between flips (ms)")
	renderCmd.Flags().StringVar(&outFile, "out", "flip.webp", "output file")
	renderCmd.Flags().IntVar(&imageWidth, "width", 0, "frame width (renderer default when 0)")
	renderCmd.Flags().IntVar(&imageHeight, "height", 0, "frame height (renderer default when 0)")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve the browser card view",
		RunE:  serveWeb,
	}
	addAnimFlags(serveCmd)
	serveCmd.Flags().StringVar(&port, "port", "8080", "listen port")

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "follow a served frame stream",
		RunE:  watchFrames,
	}
	watchCmd.Flags().StringVar(&wsURL, "url", "ws://localhost:8080/ws", "websocket frame stream")
	watchCmd.Flags().IntVar(&frameLimit, "frames", 0, "stop after this many frames (0 = run until interrupted)")

	windowCmd := &cobra.Command{
		Use:   "window",
		Short: "open the card in a native window",
		RunE:  runWindow,
	}
	addAnimFlags(windowCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE:  listPresets,
	}

	rootCmd.AddCommand(demoCmd, curveCmd, recordCmd, listCmd, plotCmd, exportCmd, renderCmd, serveCmd, watchCmd, windowCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveConfig layers defaults, preset, config file, and changed CLI
// flags, in that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			names := config.ListPresets()
			sort.Strings(names)
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, names)
		}
		c := *p
		cfg = &c
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("duration") {
		cfg.DurationMS = durationMS
	}
	if cmd.Flags().Changed("axis") {
		cfg.Axis = axis
	}
	if cmd.Flags().Changed("orientation") {
		cfg.Orientation = orientation
	}
	if cmd.Flags().Changed("backface") {
		cfg.Backface = backface
	}
	if cmd.Flags().Changed("snap-time") {
		cfg.SnapTime = snapTime
	}
	if cmd.Flags().Changed("snap-travel") {
		cfg.SnapTravel = snapTravel
	}
	if cmd.Flags().Changed("perspective") {
		cfg.Perspective = perspective
	}
	if cmd.Flags().Changed("tick-rate") {
		cfg.TickRate = tickRate
	}

	return cfg, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	m, err := tui.NewModel(cfg, preset)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m)
	_, err = p.Run()
	return err
}

func runDemo(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	anim, err := cfg.Animation()
	if err != nil {
		return err
	}
	ctrl, err := flip.New(anim)
	if err != nil {
		return err
	}

	script := session.Script{
		Flips: flips,
		Tick:  cfg.Tick(),
		Dwell: time.Duration(dwellMS) * time.Millisecond,
	}

	fmt.Printf("flipping %d time(s) over %v each...\n\n", flips, anim.Duration)
	pts, err := session.New(ctrl).Collect(context.Background(), script)
	if err != nil {
		return err
	}

	angles := make([]float64, len(pts))
	for i, p := range pts {
		angles[i] = p.Frame.Angle
	}
	graph := asciigraph.Plot(angles,
		asciigraph.Height(10),
		asciigraph.Width(70),
		asciigraph.Caption("angle (rad) vs tick"),
	)
	fmt.Println(graph)

	last := pts[len(pts)-1]
	st := ctrl.Stats()
	fmt.Printf("\nframes: %d\n", len(pts))
	fmt.Printf("final face: %s\n", last.Frame.Face)
	fmt.Printf("published: %d\n", st.Published)
	fmt.Printf("skipped: %d\n", st.Skipped)
	return nil
}

func plotCurve(cmd *cobra.Command, args []string) error {
	if samples < 2 {
		return fmt.Errorf("need at least 2 samples, got %d", samples)
	}
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if _, err := cfg.Animation(); err != nil {
		return err
	}

	data := flip.Curve(cfg.SnapTime, cfg.SnapTravel, samples)
	graph := asciigraph.Plot(data,
		asciigraph.Height(12),
		asciigraph.Width(70),
		asciigraph.Caption(fmt.Sprintf("eased travel (knee %.2f @ t=%.2f)", cfg.SnapTravel, cfg.SnapTime)),
	)
	fmt.Println(graph)

	if svgFile != "" {
		svg := export.CurveToSVG(cfg.SnapTime, cfg.SnapTravel, samples, plotWidth, plotHeight, "#d4a04c")
		if err := os.WriteFile(svgFile, []byte(svg), 0o644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgFile)
	}
	return nil
}

func recordRun(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	anim, err := cfg.Animation()
	if err != nil {
		return err
	}
	ctrl, err := flip.New(anim)
	if err != nil {
		return err
	}

	dir := dataDir
	if cfg.DataDir != "" && !cmd.Flags().Changed("data") {
		dir = cfg.DataDir
	}
	st := storage.New(dir)
	if err := st.Init(); err != nil {
		return err
	}

	script := session.Script{
		Flips: flips,
		Tick:  cfg.Tick(),
		Dwell: time.Duration(dwellMS) * time.Millisecond,
	}

	fmt.Printf("recording %d flip(s)...\n", flips)
	start := time.Now()
	pts, err := session.New(ctrl).Collect(context.Background(), script)
	if err != nil {
		return err
	}

	runID, err := st.Save(label, anim, cfg.TickRate, flips, pts)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", time.Since(start))
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("frames: %d\n", len(pts))
	return nil
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
	fmt.Fprintln(w, "ID\tLABEL\tTIME\tFLIPS\tDURATION\tAXIS\tBACKFACE\tFRAMES")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%dms\t%s\t%s\t%d\n",
			run.ID,
			run.Label,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Flips,
			run.DurationMS,
			run.Axis,
			run.Backface,
			run.Frames,
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

	recorded, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}
	if len(recorded) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("label: %s\n", meta.Label)
	fmt.Printf("samples: %d\n\n", len(recorded))

	progress := make([]float64, len(recorded))
	angle := make([]float64, len(recorded))
	front := make([]float64, len(recorded))
	for i, s := range recorded {
		progress[i] = s.Progress
		angle[i] = s.Angle
		if s.Front {
			front[i] = 1
		}
	}

	for _, series := range []struct {
		data    []float64
		caption string
	}{
		{progress, "progress"},
		{angle, "angle (rad)"},
		{front, "front visible (1 = front)"},
	} {
		graph := asciigraph.Plot(series.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(series.caption),
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

	if svgFile != "" {
		recorded, err := st.LoadSamples(runID)
		if err != nil {
			return err
		}
		pts := make([]export.XY, len(recorded))
		for i, s := range recorded {
			pts[i] = export.XY{X: s.Time, Y: s.Angle}
		}
		svg := export.TrajectoryToSVG(pts, plotWidth, plotHeight, "#d4a04c", 0, math.Pi)
		if err := os.WriteFile(svgFile, []byte(svg), 0o644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgFile)
		return nil
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func renderWebP(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	anim, err := cfg.Animation()
	if err != nil {
		return err
	}

	f, err := os.Create(outFile)
	if err != nil {
		return err
	}
	defer f.Close()

	script := session.Script{
		Flips: flips,
		Tick:  cfg.Tick(),
		Dwell: time.Duration(dwellMS) * time.Millisecond,
	}
	opts := render.Options{Width: imageWidth, Height: imageHeight}

	fmt.Printf("rendering %d flip(s) to %s...\n", flips, outFile)
	start := time.Now()
	n, err := render.Animate(context.Background(), anim, script, opts, f)
	if err != nil {
		return err
	}

	fmt.Printf("wrote %d frames in %v\n", n, time.Since(start))
	return nil
}

func serveWeb(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	srv, err := web.NewServer(cfg, preset, port)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func watchFrames(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", wsURL, err)
	}
	defer conn.Close()

	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	fmt.Printf("watching %s (ctrl-c to stop)\n", wsURL)
	for i := 0; frameLimit == 0 || i < frameLimit; i++ {
		var fr struct {
			Face     string  `json:"face"`
			Progress float64 `json:"progress"`
			Angle    float64 `json:"angle"`
		}
		if err := conn.ReadJSON(&fr); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		fmt.Printf("face %-5s  progress %5.2f  angle %+6.3f\n", fr.Face, fr.Progress, fr.Angle)
	}
	return nil
}

func runWindow(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	return gui.Run(cfg)
}

func listPresets(cmd *cobra.Command, args []string) error {
	names := config.ListPresets()
	if len(names) == 0 {
		fmt.Println("no presets")
		return nil
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tDURATION\tAXIS\tSNAP\tTRAVEL\tBACKFACE")
	for _, name := range names {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%dms\t%s\t%.2f\t%.2f\t%s\n",
			name, p.DurationMS, p.Axis, p.SnapTime, p.SnapTravel, p.Backface)
	}
	return w.Flush()
}
