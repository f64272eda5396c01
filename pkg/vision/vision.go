// Package vision turns camera frames into motion and face observations.
package vision

import (
	"image"
	"time"
)

// Kind classifies an observation.
type Kind int

const (
	KindNone Kind = iota
	KindMotion
	KindFace
)

func (k Kind) String() string {
	switch k {
	case KindMotion:
		return "motion"
	case KindFace:
		return "face"
	default:
		return "none"
	}
}

// Event is one observation from a detector: zero or more bounding boxes
// in sensor coordinates.
type Event struct {
	Kind  Kind
	Boxes []image.Rectangle
	At    time.Time
}

// Largest returns the biggest box by area, or false when there is none.
func (e Event) Largest() (image.Rectangle, bool) {
	var best image.Rectangle
	bestArea := 0
	for _, b := range e.Boxes {
		if a := b.Dx() * b.Dy(); a > bestArea {
			bestArea = a
			best = b
		}
	}
	return best, bestArea > 0
}
