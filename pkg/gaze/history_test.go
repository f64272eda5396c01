package gaze

import (
	"math"
	"testing"
)

func TestFaceSizeHistory_MeanOverWindow(t *testing.T) {
	h := NewFaceSizeHistory(3)

	if h.Mean() != 0 {
		t.Errorf("empty history mean = %v, want 0", h.Mean())
	}

	h.Push(0.1)
	h.Push(0.2)
	if got := h.Mean(); math.Abs(got-0.15) > 1e-9 {
		t.Errorf("mean = %v, want 0.15", got)
	}

	// Overflowing the window drops the oldest sample.
	h.Push(0.3)
	h.Push(0.4)
	if got := h.Mean(); math.Abs(got-0.3) > 1e-9 {
		t.Errorf("mean after overflow = %v, want 0.3", got)
	}
	if h.Len() != 3 {
		t.Errorf("len = %d, want 3", h.Len())
	}
}

func TestFaceSizeHistory_Reset(t *testing.T) {
	h := NewFaceSizeHistory(5)
	h.Push(0.2)
	h.Reset()
	if h.Len() != 0 || h.Mean() != 0 {
		t.Errorf("reset left len=%d mean=%v", h.Len(), h.Mean())
	}
}
