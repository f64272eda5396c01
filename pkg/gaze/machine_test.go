package gaze

import (
	"math/rand"
	"testing"
	"time"
)

func testMachine(cfg Config) *Machine {
	return NewMachineWithRand(cfg, rand.New(rand.NewSource(1)))
}

func TestMachine_MotionInterruptsFace(t *testing.T) {
	cfg := DefaultConfig()
	m := testMachine(cfg)
	now := time.Now()

	// Settle, then let a face take over.
	m.ObserveMotion(Vec2{X: 50, Y: 50}, now)
	faceAt := now.Add(cfg.SettleWindow)
	m.ObserveFace(Vec2{X: 100, Y: 100}, 0.05, faceAt)
	if m.Mode() != ModeFace {
		t.Fatalf("expected face mode after settle window, got %v", m.Mode())
	}

	m.ObserveMotion(Vec2{X: 30, Y: 30}, faceAt.Add(100*time.Millisecond))
	if m.Mode() != ModeMotion {
		t.Errorf("motion should interrupt face, mode is %v", m.Mode())
	}
}

func TestMachine_FaceWaitsForSettleWindow(t *testing.T) {
	cfg := DefaultConfig()
	m := testMachine(cfg)
	now := time.Now()

	m.ObserveMotion(Vec2{X: 50, Y: 50}, now)

	// Face inside the settle window must not take position control.
	early := now.Add(cfg.SettleWindow / 2)
	m.ObserveFace(Vec2{X: 100, Y: 100}, 0.05, early)
	if m.Mode() != ModeMotion {
		t.Errorf("face took over during settle window, mode is %v", m.Mode())
	}

	// But the color target reacts immediately regardless of mode.
	if m.Snapshot(early).ColorTarget != cfg.AlertColor {
		t.Error("face should flip the color target even while motion holds position")
	}

	late := now.Add(cfg.SettleWindow + time.Millisecond)
	m.ObserveFace(Vec2{X: 100, Y: 100}, 0.05, late)
	if m.Mode() != ModeFace {
		t.Errorf("face should take over after settle window, mode is %v", m.Mode())
	}
}

func TestMachine_FaceHoldExpiry(t *testing.T) {
	cfg := DefaultConfig()
	m := testMachine(cfg)
	now := time.Now()

	m.ObserveMotion(Vec2{X: 50, Y: 50}, now)
	faceAt := now.Add(cfg.SettleWindow)
	m.ObserveFace(Vec2{X: 100, Y: 100}, 0.05, faceAt)

	m.Tick(faceAt.Add(cfg.FaceHold / 2))
	if m.Mode() != ModeFace {
		t.Fatalf("face dropped before hold expired, mode is %v", m.Mode())
	}

	m.Tick(faceAt.Add(cfg.FaceHold + time.Millisecond))
	if m.Mode() != ModeMotion {
		t.Errorf("expected motion mode after face hold expiry, got %v", m.Mode())
	}
}

func TestMachine_IdleEntryAndMotionWake(t *testing.T) {
	cfg := DefaultConfig()
	cfg.IdleDelayMin = 100 * time.Millisecond
	cfg.IdleDelayMax = 100 * time.Millisecond
	m := testMachine(cfg)
	now := time.Now()

	m.ObserveMotion(Vec2{X: 50, Y: 50}, now)
	m.Tick(now.Add(150 * time.Millisecond))
	if m.Mode() != ModeIdle {
		t.Fatalf("expected idle after quiet period, got %v", m.Mode())
	}

	// Motion wakes idle immediately and recenters the gaze.
	wake := now.Add(200 * time.Millisecond)
	m.ObserveMotion(Vec2{X: 10, Y: 20}, wake)
	if m.Mode() != ModeMotion {
		t.Errorf("motion should wake idle, mode is %v", m.Mode())
	}
	if snap := m.Snapshot(wake); snap.Target != cfg.Center() {
		t.Errorf("wake should recenter, target is %+v", snap.Target)
	}

	// The next motion event steers normally.
	m.ObserveMotion(Vec2{X: 10, Y: 20}, wake.Add(40*time.Millisecond))
	if snap := m.Snapshot(wake); snap.Target != (Vec2{X: 10, Y: 20}) {
		t.Errorf("follow-up motion target not applied, got %+v", snap.Target)
	}
}

func TestMachine_FaceDoesNotSteerIdle(t *testing.T) {
	cfg := DefaultConfig()
	cfg.IdleDelayMin = 100 * time.Millisecond
	cfg.IdleDelayMax = 100 * time.Millisecond
	m := testMachine(cfg)
	now := time.Now()

	m.ObserveMotion(Vec2{X: 50, Y: 50}, now)
	m.Tick(now.Add(150 * time.Millisecond))
	if m.Mode() != ModeIdle {
		t.Fatalf("expected idle, got %v", m.Mode())
	}

	target := m.Snapshot(now).Target
	m.ObserveFace(Vec2{X: 200, Y: 200}, 0.05, now.Add(200*time.Millisecond))
	if m.Mode() != ModeIdle {
		t.Errorf("face must not preempt idle, mode is %v", m.Mode())
	}
	if got := m.Snapshot(now).Target; got != target {
		t.Errorf("face moved the idle position target to %+v", got)
	}
}

func TestMachine_IdleResumeRecenters(t *testing.T) {
	cfg := DefaultConfig()
	cfg.IdleDelayMin = 50 * time.Millisecond
	cfg.IdleDelayMax = 50 * time.Millisecond
	cfg.IdleResumeMin = 100 * time.Millisecond
	cfg.IdleResumeMax = 100 * time.Millisecond
	m := testMachine(cfg)
	now := time.Now()

	m.ObserveMotion(Vec2{X: 50, Y: 50}, now)
	m.Tick(now.Add(60 * time.Millisecond))
	if m.Mode() != ModeIdle {
		t.Fatalf("expected idle, got %v", m.Mode())
	}

	m.Tick(now.Add(200 * time.Millisecond))
	if m.Mode() != ModeMotion {
		t.Fatalf("expected motion after idle resume, got %v", m.Mode())
	}
	if got := m.Snapshot(now).Target; got != cfg.Center() {
		t.Errorf("idle exit should recenter, target is %+v", got)
	}
}

func TestMachine_ColorRevertsAfterHold(t *testing.T) {
	cfg := DefaultConfig()
	m := testMachine(cfg)
	now := time.Now()

	m.ObserveFace(Vec2{X: 100, Y: 100}, 0.05, now)
	m.Tick(now.Add(cfg.ColorHold / 2))
	if m.Snapshot(now).ColorTarget != cfg.AlertColor {
		t.Error("color dropped before hold expired")
	}

	m.Tick(now.Add(cfg.ColorHold + time.Millisecond))
	if m.Snapshot(now).ColorTarget != cfg.CalmColor {
		t.Error("color did not revert after hold")
	}
}

func TestMachine_SizeIndexFromFaceArea(t *testing.T) {
	cfg := DefaultConfig()
	m := testMachine(cfg)
	now := time.Now()

	// A face filling the whole frame pins the top index.
	m.ObserveFace(Vec2{}, cfg.FaceAreaMax, now)
	if got := m.Snapshot(now).SizeIndex; got != cfg.SizeSteps-1 {
		t.Errorf("large face should map to top index, got %d", got)
	}

	// After the revert window with no faces, back to neutral.
	m.Tick(now.Add(cfg.SizeRevert + time.Millisecond))
	if got := m.Snapshot(now).SizeIndex; got != cfg.NeutralSizeIndex {
		t.Errorf("size did not revert to neutral, got %d", got)
	}
}

func TestMachine_SizeIndexUsesHistoryMean(t *testing.T) {
	cfg := DefaultConfig()
	m := testMachine(cfg)
	now := time.Now()

	// One tiny face, then a burst of large ones: the rolling mean
	// should land below the top index at first.
	m.ObserveFace(Vec2{}, cfg.FaceAreaMin, now)
	m.ObserveFace(Vec2{}, cfg.FaceAreaMax, now)
	mid := m.Snapshot(now).SizeIndex
	if mid == cfg.SizeSteps-1 {
		t.Error("mean of min and max areas should not hit the top index")
	}

	for i := 0; i < cfg.FaceSizeHistory; i++ {
		m.ObserveFace(Vec2{}, cfg.FaceAreaMax, now)
	}
	if got := m.Snapshot(now).SizeIndex; got != cfg.SizeSteps-1 {
		t.Errorf("sustained large faces should reach the top index, got %d", got)
	}
}
