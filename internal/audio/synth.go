package audio

import "math"

const (
	SampleRate = 44100
	BufferSize = 1024
)

// chord progression for the background pad: C, Am, F, G.
var progression = [][]float64{
	{130.81, 164.81, 196.00, 261.63},
	{110.00, 130.81, 164.81, 220.00},
	{87.31, 110.00, 130.81, 174.61},
	{98.00, 123.47, 146.83, 196.00},
}

// bell notes picked by the sparkle arpeggio, one per beat.
var bells = []float64{523.25, 659.25, 783.99, 1046.50, 783.99, 659.25}

// Synth is a soft looping pad with a bell arpeggio on top.
type Synth struct {
	Volume  float64
	BarLen  float64 // seconds per chord
	BeatLen float64 // seconds per bell

	Time        float64
	FilterState [2]float64
	DelayLine   [2][]float64
	DelayHead   int
}

func NewSynth(volume float64) *Synth {
	delayLen := int(float64(SampleRate) * 0.45)
	return &Synth{
		Volume:    volume,
		BarLen:    4,
		BeatLen:   0.5,
		DelayLine: [2][]float64{make([]float64, delayLen), make([]float64, delayLen)},
	}
}

// Chord returns the chord index sounding at time t.
func (s *Synth) Chord(t float64) int {
	return int(t/s.BarLen) % len(progression)
}

func triangle(phase float64) float64 {
	p := phase - math.Floor(phase)
	return 4.0*math.Abs(p-0.5) - 1.0
}

// one pole low pass
func lpf(sample, cutoff, dt, state float64) float64 {
	rc := 1.0 / (2.0 * math.Pi * cutoff)
	alpha := dt / (rc + dt)
	return state + alpha*(sample-state)
}

// bell is a decaying sine struck at the start of every beat.
func (s *Synth) bell(t float64) float64 {
	beat := int(t / s.BeatLen)
	since := t - float64(beat)*s.BeatLen
	f := bells[beat%len(bells)]
	return math.Sin(2*math.Pi*f*since) * math.Exp(-since*6)
}

// Render fills out (one slice per channel) and advances the clock.
func (s *Synth) Render(out [][]float32) {
	if len(out) == 0 {
		return
	}
	dt := 1.0 / float64(SampleRate)

	for i := range out[0] {
		chord := progression[s.Chord(s.Time)]
		var l, r float64
		g := 1.0 / float64(len(chord))
		for j, f := range chord {
			lfo := math.Sin(s.Time*0.25 + float64(j))
			l += triangle(s.Time*f*0.999) * g * (0.7 + 0.3*lfo)
			r += triangle(s.Time*f*1.001) * g * (0.7 + 0.3*lfo)
		}
		s.FilterState[0] = lpf(l, 600, dt, s.FilterState[0])
		s.FilterState[1] = lpf(r, 600, dt, s.FilterState[1])

		b := s.bell(s.Time) * 0.25
		outL := s.FilterState[0] + b
		outR := s.FilterState[1] + b

		dL := s.DelayLine[0][s.DelayHead]
		dR := s.DelayLine[1][s.DelayHead]
		mixL := outL + dL*0.3 + dR*0.1
		mixR := outR + dR*0.3 + dL*0.1
		s.DelayLine[0][s.DelayHead] = mixL * 0.6
		s.DelayLine[1][s.DelayHead] = mixR * 0.6
		s.DelayHead = (s.DelayHead + 1) % len(s.DelayLine[0])

		out[0][i] = clip(mixL * s.Volume)
		if len(out) > 1 {
			out[1][i] = clip(mixR * s.Volume)
		}
		s.Time += dt
	}
}

func clip(v float64) float32 {
	return float32(math.Max(-1, math.Min(1, v)))
}
