package vision

import "image"

// Projector maps sensor-space observations onto display coordinates.
// The straight-through x sign is deliberate: a box in the sensor's
// top-left corner lands left-and-above the display center. Since the
// panels face the subject the way the camera does, that reads as a
// mirror, and the eyes appear to look toward whatever moved.
type Projector struct {
	SensorWidth   int
	SensorHeight  int
	DisplayWidth  int
	DisplayHeight int
	Margin        float64 // Pixels kept clear of the display edge
}

// Project converts the centroid of box into a display-space gaze point.
func (p Projector) Project(box image.Rectangle) (float64, float64) {
	cx := float64(box.Min.X+box.Max.X) / 2
	cy := float64(box.Min.Y+box.Max.Y) / 2

	// Normalize to -1..1 around the sensor center.
	nx := (cx - float64(p.SensorWidth)/2) / (float64(p.SensorWidth) / 2)
	ny := (cy - float64(p.SensorHeight)/2) / (float64(p.SensorHeight) / 2)
	nx = clampUnit(nx)
	ny = clampUnit(ny)

	halfW := float64(p.DisplayWidth) / 2
	halfH := float64(p.DisplayHeight) / 2
	x := halfW + nx*(halfW-p.Margin)
	y := halfH + ny*(halfH-p.Margin)
	return x, y
}

// AreaFraction reports box's area as a fraction of the sensor frame.
func (p Projector) AreaFraction(box image.Rectangle) float64 {
	total := float64(p.SensorWidth * p.SensorHeight)
	if total <= 0 {
		return 0
	}
	return float64(box.Dx()*box.Dy()) / total
}

func clampUnit(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}
