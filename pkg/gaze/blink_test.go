package gaze

import (
	"math/rand"
	"testing"
	"time"
)

func TestBlinker_ClosesAndReopens(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BlinkIntervalMin = 100 * time.Millisecond
	cfg.BlinkIntervalMax = 100 * time.Millisecond
	b := NewBlinker(cfg, rand.New(rand.NewSource(1)))

	start := time.Now()
	if got := b.Phase(start); got != 1.0 {
		t.Errorf("phase before first blink = %v, want 1.0", got)
	}

	// Trip the scheduled blink, then sample mid-blink.
	trigger := start.Add(cfg.BlinkIntervalMin + time.Millisecond)
	b.Phase(trigger)
	mid := b.Phase(trigger.Add(cfg.BlinkDuration / 2))
	if mid > 0.1 {
		t.Errorf("phase at mid-blink = %v, want near 0", mid)
	}

	after := b.Phase(trigger.Add(cfg.BlinkDuration + time.Millisecond))
	if after != 1.0 {
		t.Errorf("phase after blink = %v, want 1.0", after)
	}
}

func TestBlinker_EnvelopeIsSymmetric(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BlinkIntervalMin = 10 * time.Millisecond
	cfg.BlinkIntervalMax = 10 * time.Millisecond
	b := NewBlinker(cfg, rand.New(rand.NewSource(1)))

	start := time.Now()
	trigger := start.Add(cfg.BlinkIntervalMin + time.Millisecond)
	b.Phase(trigger)

	quarter := b.Phase(trigger.Add(cfg.BlinkDuration / 4))
	threeQuarter := b.Phase(trigger.Add(3 * cfg.BlinkDuration / 4))
	if diff := quarter - threeQuarter; diff > 0.01 || diff < -0.01 {
		t.Errorf("envelope asymmetric: %v vs %v", quarter, threeQuarter)
	}
}
