package gaze

// FaceSizeHistory is a bounded ring buffer of recent detected face areas
// (as fractions of the sensor frame). The oldest sample is overwritten
// once capacity is reached.
type FaceSizeHistory struct {
	samples []float64
	next    int
	filled  int
}

// NewFaceSizeHistory creates a history with the given capacity.
func NewFaceSizeHistory(capacity int) *FaceSizeHistory {
	if capacity < 1 {
		capacity = 1
	}
	return &FaceSizeHistory{samples: make([]float64, capacity)}
}

// Push records a face area sample, evicting the oldest if full.
func (h *FaceSizeHistory) Push(area float64) {
	h.samples[h.next] = area
	h.next = (h.next + 1) % len(h.samples)
	if h.filled < len(h.samples) {
		h.filled++
	}
}

// Mean returns the average of the recorded samples, or 0 if empty.
func (h *FaceSizeHistory) Mean() float64 {
	if h.filled == 0 {
		return 0
	}
	sum := 0.0
	for i := 0; i < h.filled; i++ {
		sum += h.samples[i]
	}
	return sum / float64(h.filled)
}

// Len returns the number of recorded samples.
func (h *FaceSizeHistory) Len() int {
	return h.filled
}

// Reset discards all samples.
func (h *FaceSizeHistory) Reset() {
	h.next = 0
	h.filled = 0
}
