package audio

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// Levels are smoothed band energies in [0, 1], each a share of the total.
type Levels struct {
	Bass, Mid, High float64
}

// Meter splits rendered audio into three bands for the HUD equalizer.
type Meter struct {
	buf    []float64
	levels Levels
}

func NewMeter() *Meter {
	return &Meter{buf: make([]float64, BufferSize)}
}

// Analyze consumes one channel of samples. Shorter buffers are zero padded.
func (m *Meter) Analyze(samples []float32) Levels {
	n := len(m.buf)
	for i := range m.buf {
		v := 0.0
		if i < len(samples) {
			v = float64(samples[i])
		}
		window := 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
		m.buf[i] = v * window
	}
	spectrum := fft.FFTReal(m.buf)

	var bass, mid, high float64
	for i := 1; i < n/2; i++ {
		mag := cmplx.Abs(spectrum[i])
		switch {
		case i < 6:
			bass += mag
		case i < 46:
			mid += mag
		default:
			high += mag
		}
	}
	total := bass + mid + high
	if total < 1e-9 {
		total = 1
		bass, mid, high = 0, 0, 0
	}

	m.levels.Bass = m.levels.Bass*0.8 + bass/total*0.2
	m.levels.Mid = m.levels.Mid*0.8 + mid/total*0.2
	m.levels.High = m.levels.High*0.8 + high/total*0.2
	return m.levels
}

func (m *Meter) Levels() Levels { return m.levels }
