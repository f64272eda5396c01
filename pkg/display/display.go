// Package display pushes encoded frames to the round eye panels.
package display

import "fmt"

// Width and Height of the GC9A01 panel.
const (
	Width  = 240
	Height = 240
)

// FrameSize is the expected length of an encoded RGB565 frame.
const FrameSize = Width * Height * 2

// Display is a sink for encoded RGB565 frames.
type Display interface {
	// Present pushes one full frame. The frame must be exactly
	// FrameSize bytes; anything else is rejected.
	Present(frame []byte) error
	Close() error
}

func checkFrame(frame []byte) error {
	if len(frame) != FrameSize {
		return fmt.Errorf("frame is %d bytes, want %d", len(frame), FrameSize)
	}
	return nil
}

// Null discards frames after validating them. Used headless and in tests.
type Null struct {
	Frames int // Frames presented so far
}

func (n *Null) Present(frame []byte) error {
	if err := checkFrame(frame); err != nil {
		return err
	}
	n.Frames++
	return nil
}

func (n *Null) Close() error { return nil }
