// Package camera provides frame sources for the perception loop.
package camera

import (
	"fmt"

	"gocv.io/x/gocv"
)

// Config holds the capture settings.
type Config struct {
	DeviceID int `yaml:"device_id"` // V4L2 device index
	Width    int `yaml:"width"`     // Frame width in pixels
	Height   int `yaml:"height"`    // Frame height in pixels
	FPS      int `yaml:"fps"`       // Requested capture rate
}

// DefaultConfig returns the standard low-latency capture settings.
func DefaultConfig() Config {
	return Config{
		DeviceID: 0,
		Width:    640,
		Height:   480,
		FPS:      30,
	}
}

// Source delivers camera frames. Read fills dst with the next BGR frame.
type Source interface {
	Read(dst *gocv.Mat) error
	Close() error
}

// WebcamSource captures from a V4L2 device via OpenCV.
type WebcamSource struct {
	capture *gocv.VideoCapture
	cfg     Config
}

// OpenWebcam opens the configured capture device.
func OpenWebcam(cfg Config) (*WebcamSource, error) {
	capture, err := gocv.OpenVideoCapture(cfg.DeviceID)
	if err != nil {
		return nil, fmt.Errorf("open camera %d: %w", cfg.DeviceID, err)
	}
	capture.Set(gocv.VideoCaptureFrameWidth, float64(cfg.Width))
	capture.Set(gocv.VideoCaptureFrameHeight, float64(cfg.Height))
	if cfg.FPS > 0 {
		capture.Set(gocv.VideoCaptureFPS, float64(cfg.FPS))
	}
	return &WebcamSource{capture: capture, cfg: cfg}, nil
}

// Read grabs the next frame into dst.
func (s *WebcamSource) Read(dst *gocv.Mat) error {
	if !s.capture.Read(dst) {
		return fmt.Errorf("camera %d: read failed", s.cfg.DeviceID)
	}
	if dst.Empty() {
		return fmt.Errorf("camera %d: empty frame", s.cfg.DeviceID)
	}
	return nil
}

// Close releases the capture device.
func (s *WebcamSource) Close() error {
	return s.capture.Close()
}
