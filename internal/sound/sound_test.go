package sound

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/tomz197/absorb/internal/loop"
)

// drain streams s to the end and returns the sample count and peak level.
func drain(t *testing.T, s beep.Streamer) (total int, peak float64) {
	t.Helper()
	buf := make([][2]float64, 512)
	for i := 0; i < 10000; i++ {
		n, ok := s.Stream(buf)
		for _, smp := range buf[:n] {
			peak = math.Max(peak, math.Abs(smp[0]))
		}
		total += n
		if !ok {
			return total, peak
		}
	}
	t.Fatal("stream did not end")
	return 0, 0
}

func TestOscillatorLength(t *testing.T) {
	for _, wave := range []WaveType{WaveSine, WaveSquare, WaveSaw} {
		osc := NewOscillator(440, 100*time.Millisecond, wave, sampleRate)
		total, peak := drain(t, osc)
		if want := sampleRate.N(100 * time.Millisecond); total != want {
			t.Errorf("wave %d: streamed %d samples, want %d", wave, total, want)
		}
		if peak > 1.0 {
			t.Errorf("wave %d: peak %f out of range", wave, peak)
		}
		if osc.Err() != nil {
			t.Errorf("wave %d: unexpected error %v", wave, osc.Err())
		}
	}
}

func TestEnvelopeFadesEdges(t *testing.T) {
	osc := NewOscillator(100, time.Second, WaveSquare, sampleRate)
	env := NewEnvelope(osc, 50*time.Millisecond, 10*time.Millisecond, 10*time.Millisecond, sampleRate)

	buf := make([][2]float64, sampleRate.N(50*time.Millisecond)+100)
	n, _ := env.Stream(buf)
	if want := sampleRate.N(50 * time.Millisecond); n != want {
		t.Fatalf("streamed %d samples, want %d", n, want)
	}
	if buf[0][0] != 0 {
		t.Errorf("first sample = %f, want silent attack start", buf[0][0])
	}
	if math.Abs(buf[n/2][0]) != 1 {
		t.Errorf("sustain sample = %f, want full level", buf[n/2][0])
	}
	if math.Abs(buf[n-1][0]) > 0.01 {
		t.Errorf("last sample = %f, want faded out", buf[n-1][0])
	}
	if m, ok := env.Stream(buf); m != 0 || ok {
		t.Errorf("exhausted envelope returned (%d, %v)", m, ok)
	}
}

func TestEffectsAreFinite(t *testing.T) {
	tests := []struct {
		name string
		s    beep.Streamer
		want time.Duration
	}{
		{"start", CreateStartSound(1), startDuration},
		{"absorb", CreateAbsorbSound(20, 1), absorbDuration},
		{"game over", CreateGameOverSound(1), gameOverDuration},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total, peak := drain(t, tt.s)
			want := sampleRate.N(tt.want)
			if total < want-2 || total > want+2 {
				t.Errorf("length = %d samples, want about %d", total, want)
			}
			if peak == 0 {
				t.Error("effect is silent")
			}
		})
	}
}

func TestAbsorbFrequency(t *testing.T) {
	if got := AbsorbFrequency(10); got != 500 {
		t.Errorf("AbsorbFrequency(10) = %v, want 500", got)
	}
	if got := AbsorbFrequency(1000); got != absorbMaxFreq {
		t.Errorf("AbsorbFrequency(1000) = %v, want ceiling %v", got, absorbMaxFreq)
	}
}

func TestSoundFor(t *testing.T) {
	tests := []struct {
		ev   loop.EventType
		want Sound
	}{
		{loop.EventStarted, SoundStart},
		{loop.EventAbsorbed, SoundAbsorb},
		{loop.EventGameOver, SoundGameOver},
	}
	for _, tt := range tests {
		got, ok := SoundFor(loop.Event{Type: tt.ev})
		if !ok || got != tt.want {
			t.Errorf("SoundFor(%v) = %v, %v; want %v", tt.ev, got, ok, tt.want)
		}
	}
}

func TestManagerSilentWithoutDevice(t *testing.T) {
	m := NewManager(2)
	if m.volume != 1 {
		t.Errorf("volume = %v, want clamped to 1", m.volume)
	}
	if m.Initialized() {
		t.Fatal("new manager should not be initialized")
	}

	// Must be safe without an audio device.
	m.Play(SoundAbsorb, 20)
	m.HandleEvent(loop.Event{Type: loop.EventGameOver, Radius: 30})
	m.Cleanup()
}
