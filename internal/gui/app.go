// Package gui hosts the memory tree in a raylib window: it drives the
// scene frame loop, draws the HUD and overlays and handles uploads.
package gui

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/memtree/internal/audio"
	"github.com/san-kum/memtree/internal/config"
	"github.com/san-kum/memtree/internal/gallery"
	"github.com/san-kum/memtree/internal/insight"
	"github.com/san-kum/memtree/internal/scene"
	"github.com/san-kum/memtree/internal/storage"
	"github.com/san-kum/memtree/internal/upload"
)

// syncDelay is how long the HUD shows the syncing banner after start.
const syncDelay = 2 * time.Second

const fontPath = "/usr/share/fonts/liberation/LiberationMono-Regular.ttf"

type Options struct {
	Config   config.Config
	Repo     *storage.Repository
	Insights *insight.Service
	Audio    *audio.Player
	Log      *slog.Logger
}

type insightResult struct {
	id   string
	text string
}

type App struct {
	cfg      config.Config
	repo     *storage.Repository
	insights *insight.Service
	player   *audio.Player
	log      *slog.Logger

	manager  *scene.Manager
	bus      *scene.EventBus
	sched    *scene.ManualScheduler
	renderer *Renderer
	loader   *Loader
	input    *Input
	font     rl.Font

	projects []gallery.Project
	onSelect scene.SelectFunc
	started  time.Time
	quit     bool
	swallow  bool // the current press closed an overlay

	// detail overlay
	selected    *gallery.Project
	insightText string
	insightCh   chan insightResult

	// add-memory panel
	adding  bool
	dropped string
	desc    []rune
	status  string
}

// loadFont falls back to raylib's built-in font when the system font is
// missing.
func loadFont() rl.Font {
	if _, err := os.Stat(fontPath); err != nil {
		return rl.GetFontDefault()
	}
	font := rl.LoadFontEx(fontPath, 32, nil, 0)
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

// NewApp wires the scene host. The window must already be open.
func NewApp(opts Options) *App {
	log := opts.Log
	if log == nil {
		log = slog.Default()
	}
	w, h := opts.Config.Window.Width, opts.Config.Window.Height
	a := &App{
		cfg:       opts.Config,
		repo:      opts.Repo,
		insights:  opts.Insights,
		player:    opts.Audio,
		log:       log,
		bus:       scene.NewEventBus(),
		sched:     scene.NewManualScheduler(),
		renderer:  NewRenderer(w, h, opts.Config.Window.Bloom, DefaultMaterials()),
		loader:    NewLoader(),
		font:      loadFont(),
		started:   time.Now(),
		insightCh: make(chan insightResult, 4),
	}
	a.input = NewInput(a.bus, w, h)
	a.manager = scene.NewManager(scene.Host{
		Renderer:  a.renderer,
		Events:    a.bus,
		Scheduler: a.sched,
		Textures:  a.loader,
	}, opts.Config.Scene, opts.Config.Geometry, scene.WithRand(config.Rand(opts.Config.Seed)), scene.WithLogger(log))
	a.onSelect = a.open
	return a
}

// Run opens the window and blocks until it is closed or ctx is done.
func Run(ctx context.Context, opts Options) error {
	wc := opts.Config.Window
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(wc.Width), int32(wc.Height), wc.Title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(wc.FPS))
	rl.SetExitKey(0)

	app := NewApp(opts)
	defer app.Close()
	if err := app.Mount(ctx); err != nil {
		return err
	}
	for !rl.WindowShouldClose() && !app.quit && ctx.Err() == nil {
		app.Frame(ctx)
	}
	return nil
}

// Mount loads the stored memories and builds the scene.
func (a *App) Mount(ctx context.Context) error {
	a.projects = a.repo.LoadOrDefault(ctx)
	if a.player != nil {
		a.player.Start()
	}
	return a.manager.Mount(a.projects, &a.onSelect)
}

func (a *App) Close() {
	a.manager.Unmount()
	a.loader.Close()
	if a.player != nil {
		a.player.Close()
	}
}

// Frame runs one iteration of the window loop.
func (a *App) Frame(ctx context.Context) {
	a.handleDrops()
	a.handleKeys(ctx)

	blocked := a.overlayOpen() || a.swallow || a.overButton(rl.GetMousePosition())
	var controls *scene.OrbitControls
	if sc := a.manager.Context(); sc != nil {
		controls = sc.Controls
	}
	if a.input.Poll(controls, blocked) {
		if a.player != nil {
			a.player.Interact()
		}
		a.handleUIClick(rl.GetMousePosition())
	}
	if rl.IsMouseButtonReleased(rl.MouseLeftButton) {
		a.swallow = false
	}

	a.loader.Drain(4)
	a.pollInsight()

	rl.BeginDrawing()
	rl.ClearBackground(hexColor(a.cfg.Geometry.Palette.Background, 1))
	a.sched.Step(float32(rl.GetTime()))
	a.drawHUD()
	switch {
	case a.selected != nil:
		a.drawDetail()
	case a.adding:
		a.drawAddPanel()
	}
	rl.EndDrawing()
}

func (a *App) overlayOpen() bool {
	return a.selected != nil || a.adding
}

// open is the scene's selection callback.
func (a *App) open(p gallery.Project) {
	a.selected = &p
	a.insightText = ""
	if a.insights == nil {
		a.insightText = insight.Fallback
		return
	}
	name := firstLine(p.Description)
	go func() {
		a.insightCh <- insightResult{id: p.ID, text: a.insights.Insight(context.Background(), name)}
	}()
}

func (a *App) pollInsight() {
	for {
		select {
		case res := <-a.insightCh:
			if a.selected != nil && a.selected.ID == res.id {
				a.insightText = res.text
			}
		default:
			return
		}
	}
}

func (a *App) closeOverlays() {
	a.selected = nil
	a.adding = false
	a.dropped = ""
	a.desc = a.desc[:0]
	a.status = ""
}

func (a *App) handleKeys(ctx context.Context) {
	if rl.IsKeyPressed(rl.KeyEscape) {
		if a.overlayOpen() {
			a.closeOverlays()
		} else {
			a.quit = true
		}
		return
	}
	if a.adding {
		a.handleTyping(ctx)
		return
	}
	if rl.IsKeyPressed(rl.KeyM) {
		a.toggleMute()
	}
	if rl.IsKeyPressed(rl.KeyA) && a.selected == nil {
		a.adding = true
		// the key that opened the panel is not part of the description
		for rl.GetCharPressed() > 0 {
		}
	}
}

func (a *App) toggleMute() {
	if a.player == nil {
		return
	}
	muted := a.player.ToggleMute()
	a.log.Debug("audio toggled", "muted", muted)
}

func (a *App) handleTyping(ctx context.Context) {
	for r := rl.GetCharPressed(); r > 0; r = rl.GetCharPressed() {
		a.desc = append(a.desc, rune(r))
	}
	if rl.IsKeyPressed(rl.KeyBackspace) && len(a.desc) > 0 {
		a.desc = a.desc[:len(a.desc)-1]
	}
	if rl.IsKeyPressed(rl.KeyEnter) {
		a.commit(ctx)
	}
}

func (a *App) handleDrops() {
	if !rl.IsFileDropped() {
		return
	}
	files := rl.LoadDroppedFiles()
	defer rl.UnloadDroppedFiles()
	if len(files) == 0 {
		return
	}
	a.selected = nil
	a.adding = true
	a.dropped = files[0]
	a.status = ""
}

// commit saves the pending upload and rebuilds the scene with it.
func (a *App) commit(ctx context.Context) {
	if a.dropped == "" {
		a.status = "Drop an image onto the window first"
		return
	}
	p, err := upload.FromFile(a.dropped, string(a.desc), time.Now())
	if err != nil {
		a.status = uploadMessage(err)
		return
	}
	projects, err := a.repo.Append(ctx, a.projects, p)
	if err != nil {
		a.log.Error("save memory", "err", err)
		a.status = "Could not save memory"
		return
	}
	a.projects = projects
	if err := a.manager.Update(a.projects, &a.onSelect); err != nil {
		a.log.Error("rebuild scene", "err", err)
	}
	a.log.Info("memory added", "id", p.ID, "file", filepath.Base(a.dropped))
	a.closeOverlays()
}

func uploadMessage(err error) string {
	switch {
	case errors.Is(err, upload.ErrEmptyDescription):
		return "Add a description"
	case errors.Is(err, upload.ErrNotImage), errors.Is(err, upload.ErrEmptyImage):
		return "That file is not an image"
	case errors.Is(err, upload.ErrTooLarge):
		return "Image is too large"
	}
	return "Could not read image"
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")
	return line
}
