// Package audio plays the looping background music. A failed start is
// retried once on the first user interaction.
package audio

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gordonklaus/portaudio"
	"github.com/san-kum/memtree/internal/config"
)

var ErrNotStarted = errors.New("audio: not started")

// Stream is an open output stream.
type Stream interface {
	Start() error
	Close() error
}

// Opener opens a stereo output stream pulling samples from fill.
type Opener func(fill func(out [][]float32)) (Stream, error)

type paStream struct {
	s *portaudio.Stream
}

func (p *paStream) Start() error { return p.s.Start() }

func (p *paStream) Close() error {
	p.s.Stop()
	err := p.s.Close()
	portaudio.Terminate()
	return err
}

// PortAudio opens the default output device.
func PortAudio(fill func(out [][]float32)) (Stream, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("audio: init: %w", err)
	}
	s, err := portaudio.OpenDefaultStream(0, 2, SampleRate, BufferSize, fill)
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("audio: open stream: %w", err)
	}
	return &paStream{s: s}, nil
}

// Player owns the synth and its output stream.
type Player struct {
	mu      sync.Mutex
	synth   *Synth
	meter   *Meter
	open    Opener
	stream  Stream
	log     *slog.Logger
	enabled bool
	muted   bool
	pending bool // start failed, retry on first interaction
}

func NewPlayer(cfg config.AudioConfig, open Opener, log *slog.Logger) *Player {
	if open == nil {
		open = PortAudio
	}
	if log == nil {
		log = slog.Default()
	}
	return &Player{
		synth:   NewSynth(cfg.Volume),
		meter:   NewMeter(),
		open:    open,
		log:     log,
		enabled: cfg.Enabled,
		muted:   cfg.Muted,
	}
}

// Start opens the stream. On failure the error is logged and a single
// retry is armed for the next Interact call.
func (p *Player) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.enabled || p.stream != nil {
		return nil
	}
	if err := p.startLocked(); err != nil {
		p.pending = true
		p.log.Warn("audio start failed, will retry on first interaction", "err", err)
		return err
	}
	return nil
}

func (p *Player) startLocked() error {
	s, err := p.open(p.fill)
	if err != nil {
		return err
	}
	if err := s.Start(); err != nil {
		s.Close()
		return fmt.Errorf("audio: start: %w", err)
	}
	p.stream = s
	p.log.Debug("audio started")
	return nil
}

// Interact is called on every click; only the first one after a failed
// start retries.
func (p *Player) Interact() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.pending {
		return
	}
	p.pending = false
	if err := p.startLocked(); err != nil {
		p.log.Warn("audio retry failed", "err", err)
	}
}

// fill runs on the audio thread.
func (p *Player) fill(out [][]float32) {
	p.mu.Lock()
	muted := p.muted
	p.mu.Unlock()

	if muted {
		for _, ch := range out {
			clear(ch)
		}
		return
	}
	p.synth.Render(out)
	if len(out) > 0 {
		p.mu.Lock()
		p.meter.Analyze(out[0])
		p.mu.Unlock()
	}
}

// ToggleMute pauses or resumes playback and reports the new muted state.
func (p *Player) ToggleMute() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.muted = !p.muted
	return p.muted
}

func (p *Player) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stream != nil && !p.muted
}

func (p *Player) Levels() Levels {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.muted {
		return Levels{}
	}
	return p.meter.Levels()
}

func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pending = false
	if p.stream == nil {
		return ErrNotStarted
	}
	err := p.stream.Close()
	p.stream = nil
	return err
}
