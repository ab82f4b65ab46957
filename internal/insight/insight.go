// Package insight asks a language model for a one-line poetic insight
// about a memory. Every failure degrades to a fixed sentence.
package insight

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/dgraph-io/ristretto"
	"github.com/san-kum/memtree/internal/config"
)

// Fallback is returned whenever no model answer is available.
const Fallback = "The future of this initiative is bound to redefine human potential."

var (
	ErrNoAPIKey    = errors.New("insight: no API key configured")
	ErrEmptyAnswer = errors.New("insight: model returned no text")
)

// Prompt is the request sent for a project name.
func Prompt(name string) string {
	return fmt.Sprintf("Provide a visionary, one-sentence futuristic insight about a project named %q in the context of the MARS Initiative. Keep it poetic and tech-oriented.", name)
}

// Generator produces text for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Claude is a Generator backed by the Anthropic Messages API.
type Claude struct {
	client    anthropic.Client
	model     string
	maxTokens int64
}

func NewClaude(apiKey, model string, maxTokens int64) *Claude {
	return &Claude{
		client:    anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:     model,
		maxTokens: maxTokens,
	}
}

func (c *Claude) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: c.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("insight: claude API error: %w", err)
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	return sb.String(), nil
}

// Service answers insight requests, caching successful answers per name.
type Service struct {
	gen     Generator
	cache   *ristretto.Cache
	timeout time.Duration
	log     *slog.Logger
}

// New builds a Service from config. Without an API key every request
// returns Fallback.
func New(cfg config.InsightConfig, log *slog.Logger) (*Service, error) {
	var gen Generator
	if cfg.APIKey != "" {
		gen = NewClaude(cfg.APIKey, cfg.Model, cfg.MaxTokens)
	}
	return NewWithGenerator(gen, cfg.CacheSize, cfg.Timeout, log)
}

// NewWithGenerator builds a Service around any Generator. cacheSize is the
// cache budget in bytes of answer text.
func NewWithGenerator(gen Generator, cacheSize int64, timeout time.Duration, log *slog.Logger) (*Service, error) {
	if log == nil {
		log = slog.Default()
	}
	if cacheSize <= 0 {
		cacheSize = 1 << 20
	}
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10_000,
		MaxCost:     cacheSize,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("insight: cache: %w", err)
	}
	return &Service{gen: gen, cache: cache, timeout: timeout, log: log}, nil
}

// Insight never fails: errors are logged and replaced by Fallback.
func (s *Service) Insight(ctx context.Context, name string) string {
	text, err := s.Lookup(ctx, name)
	if err != nil {
		s.log.Error("insight request failed", "name", name, "err", err)
		return Fallback
	}
	return text
}

// Lookup is Insight without the fallback.
func (s *Service) Lookup(ctx context.Context, name string) (string, error) {
	if v, ok := s.cache.Get(name); ok {
		return v.(string), nil
	}
	if s.gen == nil {
		return "", ErrNoAPIKey
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	text, err := s.gen.Generate(ctx, Prompt(name))
	if err != nil {
		return "", err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyAnswer
	}

	s.cache.Set(name, text, int64(len(text)))
	s.cache.Wait()
	return text, nil
}

func (s *Service) Close() {
	s.cache.Close()
}
