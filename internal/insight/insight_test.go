package insight

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/san-kum/memtree/internal/config"
)

type fakeGenerator struct {
	answer  string
	err     error
	calls   int
	prompts []string
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.calls++
	f.prompts = append(f.prompts, prompt)
	return f.answer, f.err
}

type slowGenerator struct{}

func (slowGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func newService(t *testing.T, gen Generator, log *slog.Logger) *Service {
	t.Helper()
	s, err := NewWithGenerator(gen, 1<<16, time.Second, log)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	t.Cleanup(s.Close)
	return s
}

func TestPrompt(t *testing.T) {
	p := Prompt("Rover")
	if !strings.Contains(p, `project named "Rover"`) {
		t.Errorf("prompt should quote the name: %s", p)
	}
	if !strings.Contains(p, "MARS Initiative") {
		t.Errorf("prompt should mention the initiative: %s", p)
	}
}

func TestInsightCachesAnswers(t *testing.T) {
	gen := &fakeGenerator{answer: "  Red dust dreams in silicon.  "}
	s := newService(t, gen, nil)
	ctx := context.Background()

	first := s.Insight(ctx, "Rover")
	second := s.Insight(ctx, "Rover")

	if first != "Red dust dreams in silicon." {
		t.Errorf("unexpected answer %q", first)
	}
	if second != first {
		t.Errorf("cached answer differs: %q", second)
	}
	if gen.calls != 1 {
		t.Errorf("expected 1 model call, got %d", gen.calls)
	}
	if gen.prompts[0] != Prompt("Rover") {
		t.Errorf("unexpected prompt %q", gen.prompts[0])
	}
}

func TestInsightFallback(t *testing.T) {
	tests := []struct {
		name string
		gen  Generator
	}{
		{"no key", nil},
		{"api error", &fakeGenerator{err: errors.New("overloaded")}},
		{"empty answer", &fakeGenerator{answer: "   "}},
		{"timeout", slowGenerator{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			s, err := NewWithGenerator(tt.gen, 1<<16, 20*time.Millisecond, slog.New(slog.NewTextHandler(&buf, nil)))
			if err != nil {
				t.Fatal(err)
			}
			defer s.Close()

			if got := s.Insight(context.Background(), "Rover"); got != Fallback {
				t.Errorf("expected fallback, got %q", got)
			}
			if !strings.Contains(buf.String(), "level=ERROR") {
				t.Errorf("failure should be logged, got %q", buf.String())
			}
		})
	}
}

func TestFailuresAreNotCached(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("down")}
	s := newService(t, gen, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
	ctx := context.Background()

	s.Insight(ctx, "Rover")
	gen.err, gen.answer = nil, "Back online."
	if got := s.Insight(ctx, "Rover"); got != "Back online." {
		t.Errorf("expected fresh answer after failure, got %q", got)
	}
}

func TestLookupNoKey(t *testing.T) {
	s, err := New(config.InsightConfig{Model: config.DefaultModel, CacheSize: 1024}, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	if _, err := s.Lookup(context.Background(), "x"); !errors.Is(err, ErrNoAPIKey) {
		t.Errorf("expected ErrNoAPIKey, got %v", err)
	}
}
