// Package tui is a terminal browser for the memory gallery with a live
// braille preview of the tree.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/memtree/internal/config"
	"github.com/san-kum/memtree/internal/gallery"
	"github.com/san-kum/memtree/internal/insight"
	"github.com/san-kum/memtree/internal/scene"
	"github.com/san-kum/memtree/internal/storage"
	"github.com/san-kum/memtree/internal/upload"
	"github.com/san-kum/memtree/internal/viz"
)

const listWidth = 38

type mode int

const (
	modeBrowse mode = iota
	modeAddPath
	modeAddDesc
)

// Deps are the collaborators the browser talks to.
type Deps struct {
	Config   config.Config
	Repo     *storage.Repository
	Insights *insight.Service
	Theme    string
	Log      *slog.Logger
}

type model struct {
	deps     Deps
	projects []gallery.Project
	cursor   int

	scene   *scene.Context
	preview *viz.Preview
	theme   viz.Theme
	start   time.Time
	elapsed time.Duration
	last    time.Time
	frame   int
	paused  bool

	insights map[string]string
	loading  map[string]bool

	mode    mode
	input   string
	path    string
	status  string
	failure bool

	width, height int
}

type tickMsg time.Time

type insightMsg struct {
	id, text string
}

type savedMsg struct {
	projects []gallery.Project
	project  gallery.Project
	err      error
}

func tick() tea.Cmd {
	return tea.Tick(50*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func newModel(deps Deps, projects []gallery.Project) model {
	if deps.Log == nil {
		deps.Log = slog.Default()
	}
	m := model{
		deps:     deps,
		projects: projects,
		theme:    viz.GetTheme(deps.Theme),
		insights: make(map[string]string),
		loading:  make(map[string]bool),
		width:    100,
		height:   32,
		start:    time.Now(),
	}
	m.rebuild()
	return m
}

// rebuild makes a fresh scene for the current list, as the window does
// when its list changes.
func (m *model) rebuild() {
	cfg := m.deps.Config
	m.scene = scene.NewContext(cfg.Scene, cfg.Geometry, m.projects, config.Rand(cfg.Seed), 1)
	m.resize()
}

func (m *model) resize() {
	w := max(m.width-listWidth-6, 10)
	h := max(m.height-12, 4)
	m.preview = viz.NewPreview(w, h, m.theme)
	m.preview.Fit(m.scene.Camera)
}

// Run starts the browser and blocks until the user quits.
func Run(ctx context.Context, deps Deps) error {
	projects := deps.Repo.LoadOrDefault(ctx)
	p := tea.NewProgram(newModel(deps, projects), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func (m model) Init() tea.Cmd { return tick() }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil
	case tickMsg:
		now := time.Time(msg)
		if !m.paused && !m.last.IsZero() {
			m.elapsed += now.Sub(m.last)
		}
		m.last = now
		m.frame++
		m.scene.Tick(float32(m.elapsed.Seconds()))
		m.preview.Draw(m.scene, m.selectedID())
		return m, tick()
	case insightMsg:
		delete(m.loading, msg.id)
		m.insights[msg.id] = msg.text
		return m, nil
	case savedMsg:
		if msg.err != nil {
			m.status, m.failure = msg.err.Error(), true
			return m, nil
		}
		m.projects = msg.projects
		m.cursor = len(m.projects) - 1
		m.status, m.failure = "Memory synced #"+msg.project.ShortID(), false
		m.rebuild()
		return m, nil
	}
	return m, nil
}

func (m model) selected() (gallery.Project, bool) {
	if m.cursor < 0 || m.cursor >= len(m.projects) {
		return gallery.Project{}, false
	}
	return m.projects[m.cursor], true
}

func (m model) selectedID() string {
	p, _ := m.selected()
	return p.ID
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	switch m.mode {
	case modeAddPath, modeAddDesc:
		return m.inputKey(msg)
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.projects)-1 {
			m.cursor++
		}
	case "enter", "i":
		return m, m.requestInsight()
	case "t":
		m.theme = m.theme.Next()
		m.preview.Theme = m.theme
	case " ":
		m.paused = !m.paused
	case "a":
		m.mode, m.input, m.status = modeAddPath, "", ""
	}
	return m, nil
}

func (m model) inputKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode, m.input, m.path = modeBrowse, "", ""
		return m, nil
	case tea.KeyBackspace:
		if r := []rune(m.input); len(r) > 0 {
			m.input = string(r[:len(r)-1])
		}
		return m, nil
	case tea.KeySpace:
		m.input += " "
		return m, nil
	case tea.KeyRunes:
		m.input += string(msg.Runes)
		return m, nil
	case tea.KeyEnter:
	default:
		return m, nil
	}

	if m.mode == modeAddPath {
		m.path = strings.TrimSpace(m.input)
		m.mode, m.input = modeAddDesc, ""
		return m, nil
	}
	desc := m.input
	m.mode, m.input = modeBrowse, ""
	return m, m.save(m.path, desc)
}

func (m model) save(path, desc string) tea.Cmd {
	repo, projects := m.deps.Repo, m.projects
	return func() tea.Msg {
		p, err := upload.FromFile(path, desc, time.Now())
		if err != nil {
			return savedMsg{err: err}
		}
		next, err := repo.Append(context.Background(), projects, p)
		return savedMsg{projects: next, project: p, err: err}
	}
}

func (m model) requestInsight() tea.Cmd {
	p, ok := m.selected()
	if !ok || m.loading[p.ID] {
		return nil
	}
	if _, done := m.insights[p.ID]; done {
		return nil
	}
	m.loading[p.ID] = true
	svc := m.deps.Insights
	return func() tea.Msg {
		if svc == nil {
			return insightMsg{id: p.ID, text: insight.Fallback}
		}
		name, _, _ := strings.Cut(p.Description, "\n")
		return insightMsg{id: p.ID, text: svc.Insight(context.Background(), name)}
	}
}

func (m model) View() string {
	th := m.theme
	title := viz.GradientText("MARS", th.Primary, th.Accent) + "  " +
		lipgloss.NewStyle().Foreground(th.Accent).Render("Memories of 2025")
	sync := viz.AnimatedSpinner(m.frame) + " syncing"
	if time.Since(m.start) >= 2*time.Second {
		sync = fmt.Sprintf("%d Memory Fragments Synced", len(m.projects))
	}
	header := title + "   " + viz.Subtle.Render(sync)

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		viz.Panel.Width(listWidth).Render(m.listView()),
		viz.Panel.Render(m.preview.Canvas.Render()),
	)

	return strings.Join([]string{header, body, m.detailView(), m.footer()}, "\n")
}

func (m model) listView() string {
	th := m.theme
	if len(m.projects) == 0 {
		return viz.Subtle.Render("No memories yet.\nPress a to add one.")
	}
	var b strings.Builder
	for i, p := range m.projects {
		line := fmt.Sprintf("%c #%s %s", viz.NodeBadge(i), p.ShortID(), truncate(firstLine(p.Description), listWidth-12))
		if i == m.cursor {
			b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(th.Highlight).Render("▸ " + line))
		} else {
			b.WriteString(lipgloss.NewStyle().Foreground(th.Text).Render("  " + line))
		}
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m model) detailView() string {
	switch m.mode {
	case modeAddPath:
		return "Image path: " + m.input + "█"
	case modeAddDesc:
		return "Description: " + m.input + "█"
	}
	if m.status != "" {
		col := m.theme.Primary
		if m.failure {
			col = m.theme.Error
		}
		return lipgloss.NewStyle().Foreground(col).Render(m.status)
	}
	p, ok := m.selected()
	if !ok {
		return ""
	}
	out := viz.Badge.Render("Project Detail") + " " + p.Description
	switch {
	case m.loading[p.ID]:
		out += "\n" + viz.AnimatedSpinner(m.frame) + " consulting the archive"
	case m.insights[p.ID] != "":
		out += "\n" + lipgloss.NewStyle().Foreground(m.theme.Accent).Italic(true).Render(m.insights[p.ID])
	}
	return out
}

func (m model) footer() string {
	return viz.KeyHint.Render("↑/↓ select · enter insight · a add · t theme · space pause · q quit")
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")
	return line
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
