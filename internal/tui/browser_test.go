package tui

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/memtree/internal/config"
	"github.com/san-kum/memtree/internal/gallery"
	"github.com/san-kum/memtree/internal/insight"
	"github.com/san-kum/memtree/internal/storage"
)

var pngBytes = []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func testDeps(t *testing.T) Deps {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Seed = 9
	cfg.Geometry.Tree.Count = 300
	cfg.Geometry.Ornaments.Count = 5
	cfg.Geometry.Trail.Segments = 30
	cfg.Geometry.Trail.Resolution = 60
	cfg.Geometry.Motes.Count = 10
	cfg.Geometry.StarField.Count = 50

	log := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	return Deps{
		Config: *cfg,
		Repo:   storage.NewRepository(storage.NewMemoryStore(), config.DefaultKey, log),
		Log:    log,
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(m model, msgs ...tea.Msg) (model, tea.Cmd) {
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(model)
	}
	return m, cmd
}

func typeText(m model, s string) model {
	for _, r := range s {
		if r == ' ' {
			m, _ = send(m, key(" "))
			continue
		}
		m, _ = send(m, key(string(r)))
	}
	return m
}

func TestCursorMovement(t *testing.T) {
	projects := []gallery.Project{{ID: "1", Description: "a"}, {ID: "2", Description: "b"}}
	m := newModel(testDeps(t), projects)

	m, _ = send(m, key("k"))
	if m.cursor != 0 {
		t.Fatal("cursor should not move above the first item")
	}
	m, _ = send(m, key("j"), key("j"), key("j"))
	if m.cursor != 1 {
		t.Errorf("cursor should stop at the last item, got %d", m.cursor)
	}
	if m.selectedID() != "2" {
		t.Errorf("selected = %q", m.selectedID())
	}
}

func TestPlaceholderScene(t *testing.T) {
	m := newModel(testDeps(t), nil)
	if got := len(m.scene.Nodes()); got != gallery.PlaceholderCount {
		t.Errorf("expected %d placeholder nodes, got %d", gallery.PlaceholderCount, got)
	}
	if !strings.Contains(m.listView(), "No memories yet") {
		t.Error("empty list should prompt to add")
	}
}

func TestTickAdvancesUnlessPaused(t *testing.T) {
	m := newModel(testDeps(t), nil)
	t0 := time.Unix(100, 0)
	m, _ = send(m, tickMsg(t0), tickMsg(t0.Add(time.Second)))
	if m.elapsed != time.Second {
		t.Fatalf("elapsed = %v", m.elapsed)
	}
	if m.scene.Frames != 2 {
		t.Errorf("expected 2 scene ticks, got %d", m.scene.Frames)
	}

	m, _ = send(m, key(" "), tickMsg(t0.Add(3*time.Second)))
	if m.elapsed != time.Second {
		t.Errorf("paused browser should not advance, elapsed = %v", m.elapsed)
	}
}

func TestAddMemory(t *testing.T) {
	deps := testDeps(t)
	path := filepath.Join(t.TempDir(), "snow.png")
	if err := os.WriteFile(path, pngBytes, 0644); err != nil {
		t.Fatal(err)
	}
	m := newModel(deps, nil)

	m, _ = send(m, key("a"))
	m = typeText(m, path)
	m, _ = send(m, key("enter"))
	if m.mode != modeAddDesc || m.path != path {
		t.Fatalf("expected description prompt, mode=%v path=%q", m.mode, m.path)
	}
	m = typeText(m, "first snow")
	m, cmd := send(m, key("enter"))
	if cmd == nil {
		t.Fatal("expected a save command")
	}

	m, _ = send(m, cmd())
	if m.failure {
		t.Fatalf("save failed: %s", m.status)
	}
	if len(m.projects) != 1 || m.projects[0].Description != "first snow" {
		t.Fatalf("unexpected projects %+v", m.projects)
	}
	if len(m.scene.Nodes()) != 1 {
		t.Error("scene should be rebuilt with the new memory")
	}

	stored, err := deps.Repo.Load(context.Background())
	if err != nil || len(stored) != 1 {
		t.Errorf("memory not persisted: %v %v", stored, err)
	}
}

func TestAddRejectsNonImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	os.WriteFile(path, []byte("hello there"), 0644)
	m := newModel(testDeps(t), nil)

	m, _ = send(m, key("a"))
	m = typeText(m, path)
	m, _ = send(m, key("enter"))
	m = typeText(m, "desc")
	m, cmd := send(m, key("enter"))
	m, _ = send(m, cmd())

	if !m.failure || len(m.projects) != 0 {
		t.Errorf("expected failure, got status %q", m.status)
	}
}

func TestAddCancel(t *testing.T) {
	m := newModel(testDeps(t), nil)
	m, _ = send(m, key("a"))
	m = typeText(m, "x")
	m, _ = send(m, key("esc"))
	if m.mode != modeBrowse || m.input != "" {
		t.Error("esc should leave input mode")
	}
}

func TestInsightWithoutService(t *testing.T) {
	m := newModel(testDeps(t), []gallery.Project{{ID: "7", Description: "Rover"}})
	m, cmd := send(m, key("enter"))
	if cmd == nil || !m.loading["7"] {
		t.Fatal("expected an insight request")
	}
	m, _ = send(m, cmd())
	if m.insights["7"] != insight.Fallback || m.loading["7"] {
		t.Errorf("expected fallback insight, got %q", m.insights["7"])
	}

	if _, cmd := send(m, key("enter")); cmd != nil {
		t.Error("a known insight should not be requested again")
	}
}

func TestViewRenders(t *testing.T) {
	m := newModel(testDeps(t), []gallery.Project{{ID: "1734567890123", Description: "Launch day"}})
	m, _ = send(m, tea.WindowSizeMsg{Width: 120, Height: 40}, tickMsg(time.Unix(1, 0)))
	v := m.View()
	for _, want := range []string{"Memories of 2025", "#0123", "Launch day"} {
		if !strings.Contains(v, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
