// Package audio plays the short cue heard when the viewer walks into a wall.
package audio

import (
	"math"
	"sync"
	"time"

	"gridcaster/internal/config"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// BumpStreamer builds one wall-bump cue: a sine tone of freq Hz lasting
// duration, scaled by volume in [0, 1].
func BumpStreamer(rate beep.SampleRate, freq float64, duration time.Duration, volume float64) (beep.Streamer, error) {
	sine, err := generators.SineTone(rate, freq)
	if err != nil {
		return nil, err
	}
	tone := beep.Take(rate.N(duration), sine)
	if volume <= 0 {
		return &effects.Volume{Streamer: tone, Base: 2, Silent: true}, nil
	}
	return &effects.Volume{Streamer: tone, Base: 2, Volume: math.Log2(volume)}, nil
}

// BumpPlayer plays the cue once per contact: holding the viewer against a
// wall does not retrigger it until the viewer moves freely again.
type BumpPlayer struct {
	mu          sync.Mutex
	enabled     bool
	initialized bool
	volume      float64
	freq        float64
	duration    time.Duration
	touching    bool
	played      int
}

// NewBumpPlayer creates a player from the audio config. Call Init before
// expecting sound.
func NewBumpPlayer(cfg config.AudioConfig) *BumpPlayer {
	return &BumpPlayer{
		enabled:  cfg.Enabled,
		volume:   cfg.Volume,
		freq:     cfg.BumpFrequency,
		duration: time.Duration(cfg.BumpMillis) * time.Millisecond,
	}
}

// Init opens the speaker. A failure leaves the player silent; callers log it
// and carry on.
func (bp *BumpPlayer) Init() error {
	bp.mu.Lock()
	defer bp.mu.Unlock()
	if !bp.enabled || bp.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return err
	}
	bp.initialized = true
	return nil
}

// Update reports this frame's collision state and plays the cue on a new contact.
func (bp *BumpPlayer) Update(blocked bool) {
	bp.mu.Lock()
	defer bp.mu.Unlock()

	newContact := blocked && !bp.touching
	bp.touching = blocked
	if !newContact || !bp.enabled {
		return
	}
	bp.played++
	if !bp.initialized {
		return
	}
	if s, err := BumpStreamer(sampleRate, bp.freq, bp.duration, bp.volume); err == nil {
		speaker.Play(s)
	}
}

// Played returns how many cues were triggered, audible or not.
func (bp *BumpPlayer) Played() int {
	bp.mu.Lock()
	defer bp.mu.Unlock()
	return bp.played
}

// Close releases the speaker.
func (bp *BumpPlayer) Close() {
	bp.mu.Lock()
	defer bp.mu.Unlock()
	if bp.initialized {
		speaker.Close()
		bp.initialized = false
	}
}
