package vision

import (
	"image"
	"time"

	"gocv.io/x/gocv"
)

// MotionConfig tunes the frame-difference motion detector.
type MotionConfig struct {
	Width      int     `yaml:"width"`       // Downscaled analysis width
	Height     int     `yaml:"height"`      // Downscaled analysis height
	Threshold  float32 `yaml:"threshold"`   // Pixel delta treated as change
	MinArea    float64 `yaml:"min_area"`    // Contour area floor, in analysis pixels
	BlurKernel int     `yaml:"blur_kernel"` // Gaussian kernel size, odd
}

// DefaultMotionConfig returns settings tuned for a 640x480 sensor.
func DefaultMotionConfig() MotionConfig {
	return MotionConfig{
		Width:      80,
		Height:     60,
		Threshold:  25,
		MinArea:    12,
		BlurKernel: 5,
	}
}

// MotionDetector finds moving regions by differencing consecutive
// downscaled grayscale frames. The first frame only primes the baseline.
// Not safe for concurrent use.
type MotionDetector struct {
	cfg  MotionConfig
	prev gocv.Mat
	gray gocv.Mat
	diff gocv.Mat
	mask gocv.Mat
	seen bool
}

// NewMotionDetector creates a motion detector.
func NewMotionDetector(cfg MotionConfig) *MotionDetector {
	return &MotionDetector{
		cfg:  cfg,
		prev: gocv.NewMat(),
		gray: gocv.NewMat(),
		diff: gocv.NewMat(),
		mask: gocv.NewMat(),
	}
}

// Detect reports the moving regions in frame, scaled back up to the
// frame's own coordinate space.
func (d *MotionDetector) Detect(frame gocv.Mat) Event {
	ev := Event{Kind: KindMotion, At: time.Now()}
	if frame.Empty() {
		return ev
	}

	small := gocv.NewMat()
	defer small.Close()
	gocv.Resize(frame, &small, image.Pt(d.cfg.Width, d.cfg.Height), 0, 0, gocv.InterpolationLinear)
	gocv.CvtColor(small, &d.gray, gocv.ColorBGRToGray)
	if d.cfg.BlurKernel > 1 {
		gocv.GaussianBlur(d.gray, &d.gray, image.Pt(d.cfg.BlurKernel, d.cfg.BlurKernel), 0, 0, gocv.BorderDefault)
	}

	if !d.seen {
		d.gray.CopyTo(&d.prev)
		d.seen = true
		return ev
	}

	gocv.AbsDiff(d.gray, d.prev, &d.diff)
	d.gray.CopyTo(&d.prev)
	gocv.Threshold(d.diff, &d.mask, d.cfg.Threshold, 255, gocv.ThresholdBinary)

	contours := gocv.FindContours(d.mask, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	sx := float64(frame.Cols()) / float64(d.cfg.Width)
	sy := float64(frame.Rows()) / float64(d.cfg.Height)
	for i := 0; i < contours.Size(); i++ {
		contour := contours.At(i)
		if gocv.ContourArea(contour) < d.cfg.MinArea {
			continue
		}
		r := gocv.BoundingRect(contour)
		ev.Boxes = append(ev.Boxes, image.Rect(
			int(float64(r.Min.X)*sx), int(float64(r.Min.Y)*sy),
			int(float64(r.Max.X)*sx), int(float64(r.Max.Y)*sy),
		))
	}
	return ev
}

// Close releases the detector's OpenCV buffers.
func (d *MotionDetector) Close() error {
	d.prev.Close()
	d.gray.Close()
	d.diff.Close()
	d.mask.Close()
	return nil
}
