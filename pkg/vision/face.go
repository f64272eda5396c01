package vision

import (
	"fmt"
	"image"
	"os"
	"time"

	"gocv.io/x/gocv"
)

// FaceConfig tunes the Haar cascade face detector.
type FaceConfig struct {
	CascadePath  string  `yaml:"cascade_path"`
	ScaleFactor  float64 `yaml:"scale_factor"`
	MinNeighbors int     `yaml:"min_neighbors"`
	MinSize      int     `yaml:"min_size"` // Pixels, square
}

// DefaultFaceConfig returns the stock frontal-face cascade settings.
func DefaultFaceConfig() FaceConfig {
	return FaceConfig{
		CascadePath:  "haarcascade_frontalface_default.xml",
		ScaleFactor:  1.1,
		MinNeighbors: 5,
		MinSize:      30,
	}
}

// FaceDetector wraps an OpenCV Haar cascade. Detection runs on a
// grayscale copy of the frame. Not safe for concurrent use.
type FaceDetector struct {
	cfg     FaceConfig
	cascade gocv.CascadeClassifier
	gray    gocv.Mat
}

// NewFaceDetector loads the cascade file and returns a detector.
func NewFaceDetector(cfg FaceConfig) (*FaceDetector, error) {
	if _, err := os.Stat(cfg.CascadePath); err != nil {
		return nil, fmt.Errorf("cascade file: %w", err)
	}
	cascade := gocv.NewCascadeClassifier()
	if !cascade.Load(cfg.CascadePath) {
		cascade.Close()
		return nil, fmt.Errorf("load cascade %s", cfg.CascadePath)
	}
	return &FaceDetector{cfg: cfg, cascade: cascade, gray: gocv.NewMat()}, nil
}

// Detect reports the faces visible in frame.
func (d *FaceDetector) Detect(frame gocv.Mat) Event {
	ev := Event{Kind: KindFace, At: time.Now()}
	if frame.Empty() {
		return ev
	}
	gocv.CvtColor(frame, &d.gray, gocv.ColorBGRToGray)
	min := image.Pt(d.cfg.MinSize, d.cfg.MinSize)
	rects := d.cascade.DetectMultiScaleWithParams(
		d.gray, d.cfg.ScaleFactor, d.cfg.MinNeighbors, 0, min, image.Pt(0, 0))
	ev.Boxes = append(ev.Boxes, rects...)
	return ev
}

// Close releases the cascade and buffers.
func (d *FaceDetector) Close() error {
	d.gray.Close()
	return d.cascade.Close()
}
