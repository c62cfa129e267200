package audio

import (
	"math"
	"testing"
	"time"

	"gridcaster/internal/config"

	"github.com/gopxl/beep"
)

func drain(t *testing.T, s beep.Streamer) (n int, peak float64) {
	t.Helper()
	buf := make([][2]float64, 512)
	for {
		got, ok := s.Stream(buf)
		for _, frame := range buf[:got] {
			peak = math.Max(peak, math.Abs(frame[0]))
		}
		n += got
		if !ok {
			return n, peak
		}
	}
}

func TestBumpStreamerLength(t *testing.T) {
	rate := beep.SampleRate(8000)
	s, err := BumpStreamer(rate, 110, 50*time.Millisecond, 1)
	if err != nil {
		t.Fatalf("BumpStreamer: %v", err)
	}
	n, peak := drain(t, s)
	if n != rate.N(50*time.Millisecond) {
		t.Errorf("samples = %d, want %d", n, rate.N(50*time.Millisecond))
	}
	if peak < 0.5 || peak > 1.0001 {
		t.Errorf("peak = %v, want a full-scale tone", peak)
	}
}

func TestBumpStreamerVolume(t *testing.T) {
	rate := beep.SampleRate(8000)
	quiet, err := BumpStreamer(rate, 110, 50*time.Millisecond, 0.25)
	if err != nil {
		t.Fatal(err)
	}
	_, peak := drain(t, quiet)
	if peak > 0.2501 {
		t.Errorf("quarter volume peak = %v", peak)
	}

	silent, err := BumpStreamer(rate, 110, 50*time.Millisecond, 0)
	if err != nil {
		t.Fatal(err)
	}
	if _, peak := drain(t, silent); peak != 0 {
		t.Errorf("silent peak = %v", peak)
	}
}

func TestBumpStreamerRejectsBadFrequency(t *testing.T) {
	// Frequencies at or above the Nyquist limit are rejected by the generator.
	if _, err := BumpStreamer(beep.SampleRate(8000), 8000, time.Millisecond, 1); err == nil {
		t.Error("expected error for frequency above Nyquist")
	}
}

func TestBumpPlayerTriggersOncePerContact(t *testing.T) {
	// Not initialized: counts cues without touching the speaker.
	bp := NewBumpPlayer(config.AudioConfig{Enabled: true, Volume: 0.5, BumpFrequency: 110, BumpMillis: 20})

	for _, blocked := range []bool{false, true, true, true, false, true, false, false} {
		bp.Update(blocked)
	}
	if got := bp.Played(); got != 2 {
		t.Errorf("Played() = %d, want 2", got)
	}
	bp.Close()
}

func TestBumpPlayerDisabled(t *testing.T) {
	bp := NewBumpPlayer(config.AudioConfig{Enabled: false})
	if err := bp.Init(); err != nil {
		t.Fatalf("disabled Init should be a no-op: %v", err)
	}
	bp.Update(true)
	if bp.Played() != 0 {
		t.Error("disabled player should not trigger")
	}
}
