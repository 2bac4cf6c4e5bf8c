package sound

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

const sampleRate = beep.SampleRate(44100)

// Effect durations
const (
	startDuration    = 120 * time.Millisecond
	absorbDuration   = 60 * time.Millisecond
	gameOverDuration = 450 * time.Millisecond
	fadeDuration     = 10 * time.Millisecond
)

// Absorb pitch rises with the player radius up to a ceiling.
const (
	absorbBaseFreq = 440.0
	absorbFreqStep = 6.0 // Hz per radius unit
	absorbMaxFreq  = 1760.0
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
)

// oscillator generates a fixed-length raw wave.
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a new oscillator for wave generation
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase) // Keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies a linear attack and release to a stream of known length.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

// NewEnvelope shapes s with a linear fade in over attack and fade out over
// release, ending the stream after duration.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	if e.position >= e.total {
		return 0, false
	}
	if remaining := e.total - e.position; len(samples) > remaining {
		samples = samples[:remaining]
	}
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		vol := 1.0
		if e.attack > 0 && e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if left := e.total - e.position; e.release > 0 && left < e.release {
			vol = math.Min(vol, float64(left)/float64(e.release))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales a stream by a linear factor. math.Log2(0) is -Inf, so
// zero volume is mapped to silence.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// AbsorbFrequency returns the blip pitch for a player of radius r.
func AbsorbFrequency(r float64) float64 {
	return math.Min(absorbBaseFreq+absorbFreqStep*r, absorbMaxFreq)
}

// CreateStartSound generates a rising two-note chirp.
func CreateStartSound(volume float64) beep.Streamer {
	half := startDuration / 2
	n1 := NewEnvelope(NewOscillator(523.25, half, WaveSquare, sampleRate), half, fadeDuration, fadeDuration, sampleRate)
	n2 := NewEnvelope(NewOscillator(783.99, half, WaveSquare, sampleRate), half, fadeDuration, fadeDuration, sampleRate)
	return newVolume(beep.Seq(n1, n2), 0.3*volume)
}

// CreateAbsorbSound generates a short blip whose pitch follows the radius.
func CreateAbsorbSound(radius, volume float64) beep.Streamer {
	tone, err := generators.SineTone(sampleRate, AbsorbFrequency(radius))
	if err != nil {
		// Frequency above Nyquist; fall back to the base pitch.
		tone = NewOscillator(absorbBaseFreq, absorbDuration, WaveSine, sampleRate)
	}
	shaped := NewEnvelope(tone, absorbDuration, fadeDuration/2, absorbDuration/2, sampleRate)
	return newVolume(shaped, 0.5*volume)
}

// CreateGameOverSound generates a falling saw buzz with a low sine under it.
func CreateGameOverSound(volume float64) beep.Streamer {
	third := gameOverDuration / 3
	notes := make([]beep.Streamer, 0, 3)
	for _, freq := range []float64{220, 185, 147} {
		osc := NewOscillator(freq, third, WaveSaw, sampleRate)
		notes = append(notes, NewEnvelope(osc, third, fadeDuration, fadeDuration*3, sampleRate))
	}
	rumble := NewEnvelope(NewOscillator(73.42, gameOverDuration, WaveSine, sampleRate),
		gameOverDuration, fadeDuration, gameOverDuration/2, sampleRate)

	mixed := beep.Mix(
		newVolume(beep.Seq(notes...), 0.6),
		newVolume(rumble, 0.4),
	)
	return newVolume(mixed, 0.4*volume)
}
