package gaze

import "time"

// Snapshot is an immutable view of the machine's output, published by
// the acquisition loop and consumed by the render loop. Superseded
// snapshots are intentionally discarded: only eventual convergence
// matters, not instantaneous accuracy.
type Snapshot struct {
	Mode          Mode
	Target        Vec2
	ColorTarget   Color
	SizeIndex     int
	FaceTracked   bool
	IdleEnteredAt time.Time
	At            time.Time
}

// Slot is a single-value latest-wins channel. Publish never blocks;
// Latest drains at most one value.
type Slot struct {
	ch chan Snapshot
}

// NewSlot creates an empty slot.
func NewSlot() *Slot {
	return &Slot{ch: make(chan Snapshot, 1)}
}

// Publish stores a snapshot, replacing any unread one.
func (s *Slot) Publish(snap Snapshot) {
	for {
		select {
		case s.ch <- snap:
			return
		default:
			// Slot occupied: discard the stale value and retry.
			select {
			case <-s.ch:
			default:
			}
		}
	}
}

// Latest returns the most recently published snapshot, if one is
// pending. Returns false without blocking when nothing new arrived.
func (s *Slot) Latest() (Snapshot, bool) {
	select {
	case snap := <-s.ch:
		return snap, true
	default:
		return Snapshot{}, false
	}
}
