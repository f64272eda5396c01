package gaze

import (
	"math"
	"testing"
)

func TestEyeState_PositionConvergence(t *testing.T) {
	cfg := DefaultConfig()
	eye := NewEyeState(cfg)
	eye.Target = Vec2{X: 200, Y: 60}

	prev := math.Hypot(eye.Target.X-eye.Current.X, eye.Target.Y-eye.Current.Y)
	for i := 0; i < 100; i++ {
		eye.StepPosition(cfg.PositionSmoothing)
		d := math.Hypot(eye.Target.X-eye.Current.X, eye.Target.Y-eye.Current.Y)
		if d > prev+1e-9 {
			t.Fatalf("distance grew at step %d: %v -> %v", i, prev, d)
		}
		prev = d
	}
	if prev > 0.01 {
		t.Errorf("expected convergence after 100 steps, still %v away", prev)
	}
}

func TestEyeState_StepAtTargetIsIdempotent(t *testing.T) {
	cfg := DefaultConfig()
	eye := NewEyeState(cfg)
	eye.Current = Vec2{X: 120, Y: 120}
	eye.Target = eye.Current

	eye.StepPosition(cfg.PositionSmoothing)
	if eye.Current != eye.Target {
		t.Errorf("step at target moved the eye to %+v", eye.Current)
	}
}

func TestEyeState_ColorConvergesToTarget(t *testing.T) {
	cfg := DefaultConfig()
	eye := NewEyeState(cfg)
	eye.TargetColor = cfg.AlertColor

	for i := 0; i < 200; i++ {
		eye.StepAppearance(cfg.ColorSmoothing, cfg.SizeSmoothing)
	}
	got := eye.ColorRGB()
	if got.R < cfg.AlertColor.R-1 {
		t.Errorf("red channel did not converge: got %d want ~%d", got.R, cfg.AlertColor.R)
	}
	if got.G > 1 {
		t.Errorf("green channel did not converge: got %d want ~0", got.G)
	}
}

func TestEyeState_IrisConvergesToTarget(t *testing.T) {
	cfg := DefaultConfig()
	eye := NewEyeState(cfg)
	eye.TargetIris = cfg.IrisRadiusFor(cfg.SizeSteps - 1)

	for i := 0; i < 300; i++ {
		eye.StepAppearance(cfg.ColorSmoothing, cfg.SizeSmoothing)
	}
	if math.Abs(eye.CurrentIris-eye.TargetIris) > 0.1 {
		t.Errorf("iris radius %v did not converge to %v", eye.CurrentIris, eye.TargetIris)
	}
}
