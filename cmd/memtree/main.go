package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/memtree/internal/audio"
	"github.com/san-kum/memtree/internal/automation"
	"github.com/san-kum/memtree/internal/config"
	"github.com/san-kum/memtree/internal/export"
	"github.com/san-kum/memtree/internal/gallery"
	"github.com/san-kum/memtree/internal/gui"
	"github.com/san-kum/memtree/internal/insight"
	"github.com/san-kum/memtree/internal/scene"
	"github.com/san-kum/memtree/internal/storage"
	"github.com/san-kum/memtree/internal/tui"
	"github.com/san-kum/memtree/internal/upload"
	"github.com/spf13/cobra"
)

var (
	configFile string
	dataDir    string
	backend    string
	preset     string
	seed       int64
	verbose    bool

	description string
	frames      int
	theme       string
	dryRun      bool
	force       bool
	snapWidth   int
	snapHeight  int
	snapAt      float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "memtree",
		Short:         "a particle christmas tree of your memories",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runGUI,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	pf.StringVar(&backend, "backend", config.DefaultBackend, "storage backend ("+strings.Join(storage.Backends, ", ")+")")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.Int64Var(&seed, "seed", 0, "layout seed (0 draws a fresh layout)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "open the tree window",
		RunE:  runGUI,
	}

	addCmd := &cobra.Command{
		Use:   "add [image]",
		Short: "add a memory",
		Args:  cobra.ExactArgs(1),
		RunE:  addMemory,
	}
	addCmd.Flags().StringVarP(&description, "desc", "d", "", "memory description")
	addCmd.MarkFlagRequired("desc")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list memories",
		RunE:  listMemories,
	}

	insightCmd := &cobra.Command{
		Use:   "insight [id|name]",
		Short: "ask for a short insight about a memory",
		Args:  cobra.MinimumNArgs(1),
		RunE:  showInsight,
	}

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "browse memories in the terminal",
		RunE:  runTUI,
	}
	tuiCmd.Flags().StringVar(&theme, "theme", "mars", "colour theme")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "run the scene loop headless and time it",
		RunE:  benchScene,
	}
	benchCmd.Flags().IntVar(&frames, "frames", 300, "frames to run")

	profileCmd := &cobra.Command{
		Use:   "profile",
		Short: "plot the tree radius profile",
		RunE:  plotProfile,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			for _, name := range config.ListPresets() {
				fmt.Fprintf(w, "%s\t%s\n", name, config.Presets[name].Description)
			}
			return w.Flush()
		},
	}

	exportCmd := &cobra.Command{
		Use:   "export [file]",
		Short: "export memories as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportMemories,
	}

	importCmd := &cobra.Command{
		Use:   "import [manifest.yaml]",
		Short: "add memories listed in a manifest",
		Args:  cobra.ExactArgs(1),
		RunE:  importManifest,
	}
	importCmd.Flags().BoolVar(&dryRun, "dry-run", false, "validate without saving")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot [out.svg]",
		Short: "render the tree to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  snapshot,
	}
	snapshotCmd.Flags().IntVar(&snapWidth, "width", 1280, "image width")
	snapshotCmd.Flags().IntVar(&snapHeight, "height", 720, "image height")
	snapshotCmd.Flags().Float64Var(&snapAt, "at", 0, "scene time in seconds")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage configuration",
	}
	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the default config",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initConfig,
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	configCmd.AddCommand(initCmd)

	rootCmd.AddCommand(guiCmd, addCmd, listCmd, insightCmd, tuiCmd, benchCmd, profileCmd, presetsCmd, exportCmd, importCmd, snapshotCmd, configCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// loadConfig layers defaults, preset, config file, .env and flags, in
// that order.
func loadConfig(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Resolve(configFile, preset)
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.LoadEnv(".env"); err != nil {
		return nil, nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("data") {
		cfg.Storage.Dir = dataDir
	}
	if flags.Changed("backend") {
		cfg.Storage.Backend = backend
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return nil, nil, fmt.Errorf("log level %q: %w", cfg.LogLevel, err)
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)
	return cfg, log, nil
}

type env struct {
	cfg   *config.Config
	log   *slog.Logger
	store storage.Store
	repo  *storage.Repository
}

func (e *env) Close() {
	if err := e.store.Close(); err != nil {
		e.log.Warn("close store", "err", err)
	}
}

func openEnv(cmd *cobra.Command) (*env, error) {
	cfg, log, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	st, err := storage.Open(cmd.Context(), cfg.Storage)
	if err != nil {
		return nil, err
	}
	log.Debug("storage open", "backend", cfg.Storage.Backend, "key", cfg.Storage.Key)
	return &env{
		cfg:   cfg,
		log:   log,
		store: st,
		repo:  storage.NewRepository(st, cfg.Storage.Key, log),
	}, nil
}

func runGUI(cmd *cobra.Command, args []string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	insights, err := insight.New(e.cfg.Insight, e.log)
	if err != nil {
		return err
	}
	defer insights.Close()

	return gui.Run(cmd.Context(), gui.Options{
		Config:   *e.cfg,
		Repo:     e.repo,
		Insights: insights,
		Audio:    audio.NewPlayer(e.cfg.Audio, audio.PortAudio, e.log),
		Log:      e.log,
	})
}

func addMemory(cmd *cobra.Command, args []string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	p, err := upload.FromFile(args[0], description, time.Now())
	if err != nil {
		return err
	}
	projects, err := e.repo.Load(cmd.Context())
	if err != nil {
		return err
	}
	if _, ok := storage.Find(projects, p.ID); ok {
		return fmt.Errorf("memory %s already exists, try again", p.ID)
	}
	projects, err = e.repo.Append(cmd.Context(), projects, p)
	if err != nil {
		return err
	}
	fmt.Printf("added memory #%s (%d total)\n", p.ShortID(), len(projects))
	return nil
}

func listMemories(cmd *cobra.Command, args []string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	projects, err := e.repo.Load(cmd.Context())
	if err != nil {
		return err
	}
	if len(projects) == 0 {
		fmt.Println("no memories yet")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tADDED\tTYPE\tDESCRIPTION")
	for _, p := range projects {
		mime := "-"
		if m, _, err := upload.ParseDataURL(p.ImageURL); err == nil {
			mime = m
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.ID, added(p.ID), mime, oneLine(p.Description, 48))
	}
	return w.Flush()
}

// added decodes the millisecond timestamp ids are made from.
func added(id string) string {
	var ms int64
	if _, err := fmt.Sscan(id, &ms); err != nil || ms <= 0 {
		return "-"
	}
	return time.UnixMilli(ms).Format("2006-01-02 15:04")
}

func oneLine(s string, n int) string {
	s, _, _ = strings.Cut(s, "\n")
	if r := []rune(s); len(r) > n {
		return string(r[:n-3]) + "..."
	}
	return s
}

func showInsight(cmd *cobra.Command, args []string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	name := strings.Join(args, " ")
	projects, err := e.repo.Load(cmd.Context())
	if err != nil {
		return err
	}
	if p, ok := storage.Find(projects, name); ok {
		name, _, _ = strings.Cut(p.Description, "\n")
	}

	svc, err := insight.New(e.cfg.Insight, e.log)
	if err != nil {
		return err
	}
	defer svc.Close()
	fmt.Println(svc.Insight(cmd.Context(), name))
	return nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	// the alt screen owns the terminal
	quiet := slog.New(slog.DiscardHandler)
	svc, err := insight.New(e.cfg.Insight, quiet)
	if err != nil {
		return err
	}
	defer svc.Close()

	return tui.Run(cmd.Context(), tui.Deps{
		Config:   *e.cfg,
		Repo:     storage.NewRepository(e.store, e.cfg.Storage.Key, quiet),
		Insights: svc,
		Theme:    theme,
		Log:      quiet,
	})
}

func benchScene(cmd *cobra.Command, args []string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()
	if frames <= 0 {
		return fmt.Errorf("frames must be positive, got %d", frames)
	}

	projects := e.repo.LoadOrDefault(cmd.Context())
	w, h := e.cfg.Window.Width, e.cfg.Window.Height
	renderer := &scene.NullRenderer{Width: w, Height: h}
	bus := scene.NewEventBus()
	sched := scene.NewManualScheduler()
	mgr := scene.NewManager(
		scene.Host{Renderer: renderer, Events: bus, Scheduler: sched},
		e.cfg.Scene, e.cfg.Geometry,
		scene.WithRand(config.Rand(e.cfg.Seed)),
		scene.WithLogger(e.log),
	)

	start := time.Now()
	selected := 0
	onSelect := scene.SelectFunc(func(p gallery.Project) { selected++ })
	if err := mgr.Mount(projects, &onSelect); err != nil {
		return err
	}
	defer mgr.Unmount()
	mountTime := time.Since(start)

	stats := mgr.Context().Decor.Stats()
	fmt.Printf("mounted %d nodes in %v\n", mgr.Context().Registry.Len(), mountTime.Round(time.Millisecond))
	fmt.Printf("  tree %d  ornaments %d  gifts %d  trail %d tris  motes %d  stars %d\n",
		stats.TreeParticles, stats.Ornaments, stats.Gifts, stats.TrailTriangles, stats.Motes, stats.Stars)

	times := make([]float64, 0, frames)
	const dt = float32(1.0 / 60)
	for i := 0; i < frames; i++ {
		if err := cmd.Context().Err(); err != nil {
			break
		}
		// sweep the pointer across the window so picking has work to do
		x := float32(i * 7 % w)
		bus.Emit(scene.Event{Kind: scene.PointerMove, X: x, Y: float32(h) / 2})
		if i%60 == 59 {
			bus.Emit(scene.Event{Kind: scene.Click, X: x, Y: float32(h) / 2})
		}

		t0 := time.Now()
		sched.Step(float32(i) * dt)
		times = append(times, float64(time.Since(t0).Microseconds())/1000)
	}

	if len(times) == 0 {
		return cmd.Context().Err()
	}
	sorted := append([]float64(nil), times...)
	sort.Float64s(sorted)
	var sum float64
	for _, v := range times {
		sum += v
	}
	mean := sum / float64(len(times))
	p95 := sorted[len(sorted)*95/100]

	fmt.Println()
	fmt.Println(asciigraph.Plot(downsample(times, 120),
		asciigraph.Height(12),
		asciigraph.Caption("frame time (ms)")))
	fmt.Println()
	fmt.Printf("frames: %d  renders: %d  clicks resolved: %d\n", len(times), renderer.Renders, selected)
	fmt.Printf("mean: %.3fms  p95: %.3fms  max: %.3fms  (%.0f fps budget used: %.1f%%)\n",
		mean, p95, sorted[len(sorted)-1], 1/float64(dt), mean/(1000*float64(dt))*100)
	return nil
}

// downsample keeps at most n points by averaging buckets.
func downsample(data []float64, n int) []float64 {
	if len(data) <= n {
		return data
	}
	out := make([]float64, n)
	bucket := float64(len(data)) / float64(n)
	for i := range out {
		lo, hi := int(float64(i)*bucket), int(float64(i+1)*bucket)
		var s float64
		for _, v := range data[lo:hi] {
			s += v
		}
		out[i] = s / float64(hi-lo)
	}
	return out
}

func plotProfile(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	tp := cfg.Geometry.Tree

	const samples = 80
	radius := make([]float64, samples)
	for i := range radius {
		radius[i] = float64(tp.RadiusAt(float32(i) / float32(samples-1)))
	}
	fmt.Println(asciigraph.Plot(radius,
		asciigraph.Height(15),
		asciigraph.Width(samples),
		asciigraph.Caption(fmt.Sprintf("tree radius, base to apex (height %.1f, %d particles)", tp.Height, tp.Count))))
	return nil
}

func exportMemories(cmd *cobra.Command, args []string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	projects, err := e.repo.Load(cmd.Context())
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return storage.Export(os.Stdout, e.repo.Key(), projects)
	}
	if err := storage.ExportFile(args[0], e.repo.Key(), projects); err != nil {
		return err
	}
	fmt.Printf("exported %d memories to %s\n", len(projects), args[0])
	return nil
}

func importManifest(cmd *cobra.Command, args []string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	m, err := automation.LoadManifest(args[0])
	if err != nil {
		return err
	}
	rep, err := automation.Import(cmd.Context(), e.repo, m, time.Now(), dryRun, e.log)
	if err != nil {
		if rep != nil && len(rep.Added) > 0 {
			fmt.Printf("saved %d memories before failing\n", len(rep.Added))
		}
		return err
	}

	verb := "added"
	if rep.DryRun {
		verb = "would add"
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, p := range rep.Added {
		fmt.Fprintf(w, "  #%s\t%s\n", p.ShortID(), oneLine(p.Description, 60))
	}
	w.Flush()
	fmt.Printf("%s %d memories (%d total)\n", verb, len(rep.Added), rep.Total)
	return nil
}

func snapshot(cmd *cobra.Command, args []string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	projects := e.repo.LoadOrDefault(cmd.Context())
	aspect := float32(snapWidth) / float32(max(snapHeight, 1))
	ctx := scene.NewContext(e.cfg.Scene, e.cfg.Geometry, projects, config.Rand(e.cfg.Seed), aspect)
	ctx.Tick(float32(snapAt))

	opts := export.DefaultOptions()
	opts.Width, opts.Height = snapWidth, snapHeight
	if err := export.SnapshotFile(args[0], ctx, opts); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d memories)\n", args[0], len(projects))
	return nil
}

func initConfig(cmd *cobra.Command, args []string) error {
	path := "memtree.yaml"
	if len(args) > 0 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s exists (use --force to overwrite)", path)
	}

	cfg := config.DefaultConfig()
	if preset != "" && !cfg.ApplyPreset(preset) {
		return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}
