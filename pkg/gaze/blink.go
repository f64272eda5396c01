package gaze

import (
	"math/rand"
	"time"
)

// Blinker schedules spontaneous blinks at random intervals and shapes
// the blink phase as a triangular close-then-open envelope.
type Blinker struct {
	cfg Config
	rng *rand.Rand

	nextBlinkAt time.Time
	blinkingAt  time.Time
	blinking    bool
}

// NewBlinker creates a blinker with the first blink scheduled.
func NewBlinker(cfg Config, rng *rand.Rand) *Blinker {
	b := &Blinker{cfg: cfg, rng: rng}
	b.schedule(time.Now())
	return b
}

// Phase returns the blink phase for the current instant: 1.0 fully open
// down to 0.0 at mid-blink. Advances the internal schedule.
func (b *Blinker) Phase(now time.Time) float64 {
	if !b.blinking {
		if now.After(b.nextBlinkAt) {
			b.blinking = true
			b.blinkingAt = now
		}
		return 1.0
	}

	elapsed := now.Sub(b.blinkingAt)
	if elapsed >= b.cfg.BlinkDuration {
		b.blinking = false
		b.schedule(now)
		return 1.0
	}

	// Triangular envelope: open -> closed at the midpoint -> open.
	progress := float64(elapsed) / float64(b.cfg.BlinkDuration)
	if progress < 0.5 {
		return 1.0 - progress*2
	}
	return (progress - 0.5) * 2
}

func (b *Blinker) schedule(now time.Time) {
	span := b.cfg.BlinkIntervalMax - b.cfg.BlinkIntervalMin
	wait := b.cfg.BlinkIntervalMin
	if span > 0 {
		wait += time.Duration(b.rng.Int63n(int64(span)))
	}
	b.nextBlinkAt = now.Add(wait)
}
