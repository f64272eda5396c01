package gaze

import "time"

// Color is an 8-bit RGB triple.
type Color struct {
	R uint8 `yaml:"r"`
	G uint8 `yaml:"g"`
	B uint8 `yaml:"b"`
}

// Config holds all tunable parameters for the gaze controller.
//
// The settle window and the mode-timeout durations are empirically tuned;
// only the priority ordering (motion over face over idle) is load-bearing.
type Config struct {
	// Display geometry
	DisplayWidth  int     `yaml:"display_width"`  // Pixels
	DisplayHeight int     `yaml:"display_height"` // Pixels
	EdgeMargin    float64 `yaml:"edge_margin"`    // Keep-out border for eye targets (pixels)

	// Smoothing factors, all in (0, 1]. Smaller = smoother but more latent.
	PositionSmoothing float64 `yaml:"position_smoothing"` // Per-axis position convergence per tick
	ColorSmoothing    float64 `yaml:"color_smoothing"`    // Per-channel color convergence per tick
	SizeSmoothing     float64 `yaml:"size_smoothing"`     // Iris radius convergence per tick

	// Mode machine timing
	SettleWindow  time.Duration `yaml:"settle_window"`   // Motion-quiet period required before face takes over
	FaceHold      time.Duration `yaml:"face_hold"`       // How long FaceFollowing persists after the last face refresh
	IdleDelayMin  time.Duration `yaml:"idle_delay_min"`  // Idle trigger sampled from [min, max] on each re-arm
	IdleDelayMax  time.Duration `yaml:"idle_delay_max"`
	IdleResumeMin time.Duration `yaml:"idle_resume_min"` // Idle exit timer sampled from [min, max] at idle entry
	IdleResumeMax time.Duration `yaml:"idle_resume_max"`

	// Color sub-rule (independent of position mode)
	CalmColor  Color         `yaml:"calm_color"`  // Target when no face has been seen recently
	AlertColor Color         `yaml:"alert_color"` // Target while a face was seen within ColorHold
	ColorHold  time.Duration `yaml:"color_hold"`

	// Iris sizing from face proximity
	SizeSteps        int           `yaml:"size_steps"`         // Number of discrete iris size indexes
	NeutralSizeIndex int           `yaml:"neutral_size_index"` // Reverts here when no face for SizeRevert
	IrisRadiusMin    float64       `yaml:"iris_radius_min"`    // Radius at index 0 (pixels)
	IrisRadiusMax    float64       `yaml:"iris_radius_max"`    // Radius at index SizeSteps-1 (pixels)
	FaceAreaMin      float64       `yaml:"face_area_min"`      // Face area (frame fraction) mapped to index 0
	FaceAreaMax      float64       `yaml:"face_area_max"`      // Face area mapped to the top index
	FaceSizeHistory  int           `yaml:"face_size_history"`  // Ring buffer capacity for area smoothing
	SizeRevert       time.Duration `yaml:"size_revert"`

	// Spontaneous blinking
	BlinkIntervalMin time.Duration `yaml:"blink_interval_min"`
	BlinkIntervalMax time.Duration `yaml:"blink_interval_max"`
	BlinkDuration    time.Duration `yaml:"blink_duration"`
}

// DefaultConfig returns the recommended configuration for a 240x240 eye pair.
func DefaultConfig() Config {
	return Config{
		DisplayWidth:  240,
		DisplayHeight: 240,
		EdgeMargin:    10,

		PositionSmoothing: 0.2,
		ColorSmoothing:    0.15,
		SizeSmoothing:     0.1,

		SettleWindow:  400 * time.Millisecond,
		FaceHold:      2 * time.Second,
		IdleDelayMin:  8 * time.Second,
		IdleDelayMax:  20 * time.Second,
		IdleResumeMin: 10 * time.Second,
		IdleResumeMax: 30 * time.Second,

		CalmColor:  Color{R: 255, G: 220, B: 0}, // Yellow
		AlertColor: Color{R: 255, G: 0, B: 0},   // Red
		ColorHold:  1500 * time.Millisecond,

		SizeSteps:        5,
		NeutralSizeIndex: 2,
		IrisRadiusMin:    40,
		IrisRadiusMax:    70,
		FaceAreaMin:      0.01,
		FaceAreaMax:      0.25,
		FaceSizeHistory:  5,
		SizeRevert:       3 * time.Second,

		BlinkIntervalMin: 2 * time.Second,
		BlinkIntervalMax: 5 * time.Second,
		BlinkDuration:    200 * time.Millisecond,
	}
}

// Center returns the display center point.
func (c Config) Center() Vec2 {
	return Vec2{X: float64(c.DisplayWidth) / 2, Y: float64(c.DisplayHeight) / 2}
}

// IrisRadiusFor maps a size index onto a pixel radius.
func (c Config) IrisRadiusFor(index int) float64 {
	if c.SizeSteps <= 1 {
		return c.IrisRadiusMin
	}
	if index < 0 {
		index = 0
	}
	if index > c.SizeSteps-1 {
		index = c.SizeSteps - 1
	}
	step := (c.IrisRadiusMax - c.IrisRadiusMin) / float64(c.SizeSteps-1)
	return c.IrisRadiusMin + float64(index)*step
}
