// Package render synthesizes the eye raster and encodes it for the
// display wire format, memoizing encoded frames by quantized parameters.
package render

// PupilShape controls the pupil ellipse relative to the iris.
type PupilShape struct {
	WidthRatio  float64 `yaml:"width_ratio"`  // 1.0 round, <1.0 narrows to a slit
	HeightRatio float64 `yaml:"height_ratio"` // Vertical extent ratio
	SizeRatio   float64 `yaml:"size_ratio"`   // Pupil radius relative to iris radius
}

// Appearance holds the visual tuning of the rendered eye.
type Appearance struct {
	// Glow disk extending past the iris.
	GlowSize      float64 `yaml:"glow_size"`      // Pixels beyond the iris radius
	GlowIntensity float64 `yaml:"glow_intensity"` // Fraction of the eye color

	// Radial iris gradient: bright center fading to a darker rim.
	GradientCenter float64 `yaml:"gradient_center"` // Multiplier at the center (>1 brightens)
	GradientEdge   float64 `yaml:"gradient_edge"`   // Multiplier at the rim (<1 darkens)
	GradientStart  float64 `yaml:"gradient_start"`  // Fraction of radius where the fade begins

	// Thin bright ring at the iris boundary, alpha-blended over the glow.
	HighlightBrightness float64 `yaml:"highlight_brightness"`
	HighlightWidth      float64 `yaml:"highlight_width"` // Pixels
	HighlightAlpha      float64 `yaml:"highlight_alpha"`

	// Pupil shapes: the slit is used while nothing is tracked, the
	// round pupil while following a face.
	SlitPupil  PupilShape `yaml:"slit_pupil"`
	RoundPupil PupilShape `yaml:"round_pupil"`
}

// DefaultAppearance returns the tuned cat-eye look.
func DefaultAppearance() Appearance {
	return Appearance{
		GlowSize:      15,
		GlowIntensity: 0.3,

		GradientCenter: 1.4,
		GradientEdge:   0.5,
		GradientStart:  0.6,

		HighlightBrightness: 1.8,
		HighlightWidth:      2,
		HighlightAlpha:      0.5,

		SlitPupil:  PupilShape{WidthRatio: 0.2, HeightRatio: 1.0, SizeRatio: 0.8},
		RoundPupil: PupilShape{WidthRatio: 1.0, HeightRatio: 1.0, SizeRatio: 0.6},
	}
}

// Params are the inputs for one rendered eye frame.
type Params struct {
	X, Y       float64 // Eye center in display coordinates
	Blink      float64 // 1.0 open .. 0.0 closed
	R, G, B    uint8   // Eye color
	IrisRadius float64 // Pixels
	Tracked    bool    // Round pupil when true, slit otherwise
}
