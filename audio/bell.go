package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(48000)

	bellFreq     = 880.0
	bellDuration = 60 * time.Millisecond

	// bellGap suppresses rings arriving faster than one tone can finish
	bellGap = 80 * time.Millisecond
)

// Bell plays a short tone when focus cannot move further
// All methods are safe without Initialize; the bell is then silent.
type Bell struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	last        time.Time
	rings       int
}

// NewBell creates an uninitialized, silent bell
func NewBell() *Bell {
	return &Bell{
		mixer: &beep.Mixer{},
	}
}

// Initialize opens the audio device
func (b *Bell) Initialize() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return err
	}

	speaker.Play(b.mixer)
	b.initialized = true
	return nil
}

// Ring queues one tone, dropped when silent or when the previous tone is still playing
func (b *Bell) Ring() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized {
		return
	}

	now := time.Now()
	if now.Sub(b.last) < bellGap {
		return
	}
	b.last = now
	b.rings++

	speaker.Lock()
	b.mixer.Add(beep.Take(sampleRate.N(bellDuration), NewToneGenerator(sampleRate, bellFreq, bellDuration)))
	speaker.Unlock()
}

// Rings returns the number of tones queued since Initialize
func (b *Bell) Rings() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.rings
}

// Cleanup stops pending tones and silences the bell
func (b *Bell) Cleanup() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized {
		return
	}

	speaker.Lock()
	b.mixer.Clear()
	speaker.Unlock()

	b.initialized = false
}

// ToneGenerator is a sine tone with a linear attack and exponential release
type ToneGenerator struct {
	sr      beep.SampleRate
	freq    float64
	pos     int
	samples int
}

// NewToneGenerator creates a tone of freq Hz shaped for the given duration
func NewToneGenerator(sr beep.SampleRate, freq float64, d time.Duration) *ToneGenerator {
	return &ToneGenerator{
		sr:      sr,
		freq:    freq,
		samples: max(sr.N(d), 1),
	}
}

func (g *ToneGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		progress := float64(g.pos) / float64(g.samples)

		// 5ms attack, then decay to silence across the tone
		envelope := math.Min(t/0.005, 1.0) * math.Exp(-4*progress)
		sample := 0.2 * envelope * math.Sin(2*math.Pi*g.freq*t)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ToneGenerator) Err() error {
	return nil
}
