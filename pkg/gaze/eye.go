package gaze

// EyeState holds the animated state of one physical eye.
// It is owned exclusively by the render loop; the acquisition loop only
// supplies targets through snapshots.
type EyeState struct {
	Current Vec2
	Target  Vec2

	// Color channels kept as floats so repeated exponential steps
	// converge smoothly before the final 8-bit truncation.
	CurrentColor [3]float64
	TargetColor  Color

	CurrentIris float64
	TargetIris  float64

	// BlinkPhase is 1.0 fully open, 0.0 fully closed.
	BlinkPhase float64
}

// NewEyeState returns an eye centered on the display, fully open,
// at the calm color and neutral iris size.
func NewEyeState(cfg Config) *EyeState {
	neutral := cfg.IrisRadiusFor(cfg.NeutralSizeIndex)
	return &EyeState{
		Current:      cfg.Center(),
		Target:       cfg.Center(),
		CurrentColor: [3]float64{float64(cfg.CalmColor.R), float64(cfg.CalmColor.G), float64(cfg.CalmColor.B)},
		TargetColor:  cfg.CalmColor,
		CurrentIris:  neutral,
		TargetIris:   neutral,
		BlinkPhase:   1.0,
	}
}

// StepPosition moves Current toward Target by the exponential smoothing
// rule. factor must be in (0, 1]; the step is idempotent once converged.
func (e *EyeState) StepPosition(factor float64) {
	e.Current.X += (e.Target.X - e.Current.X) * factor
	e.Current.Y += (e.Target.Y - e.Current.Y) * factor
}

// StepAppearance converges color and iris radius toward their targets,
// clamped to valid ranges.
func (e *EyeState) StepAppearance(colorFactor, sizeFactor float64) {
	target := [3]float64{float64(e.TargetColor.R), float64(e.TargetColor.G), float64(e.TargetColor.B)}
	for i := range e.CurrentColor {
		e.CurrentColor[i] += (target[i] - e.CurrentColor[i]) * colorFactor
		e.CurrentColor[i] = clamp(e.CurrentColor[i], 0, 255)
	}
	e.CurrentIris += (e.TargetIris - e.CurrentIris) * sizeFactor
}

// ColorRGB returns the current color truncated to 8 bits per channel.
func (e *EyeState) ColorRGB() Color {
	return Color{
		R: uint8(e.CurrentColor[0]),
		G: uint8(e.CurrentColor[1]),
		B: uint8(e.CurrentColor[2]),
	}
}
