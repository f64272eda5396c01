package tracker

import (
	"math/rand"
	"testing"
	"time"

	"github.com/tolian500/go-eyes/pkg/display"
	"github.com/tolian500/go-eyes/pkg/gaze"
	"github.com/tolian500/go-eyes/pkg/render"
)

func testTracker() (*Tracker, *display.Null, *display.Null) {
	left := &display.Null{}
	right := &display.Null{}
	t := New(Options{
		Config: DefaultConfig(),
		Gaze:   gaze.DefaultConfig(),
		Look:   render.DefaultAppearance(),
		Left:   left,
		Right:  right,
		Rand:   rand.New(rand.NewSource(1)),
	})
	return t, left, right
}

func TestTracker_StepPresentsBothEyes(t *testing.T) {
	tr, left, right := testTracker()
	now := time.Now()

	for i := 0; i < 5; i++ {
		tr.step(now.Add(time.Duration(i) * 40 * time.Millisecond))
	}
	if left.Frames != 5 || right.Frames != 5 {
		t.Errorf("presented %d/%d frames, want 5/5", left.Frames, right.Frames)
	}
}

func TestTracker_SnapshotMovesTheEyes(t *testing.T) {
	tr, _, _ := testTracker()
	now := time.Now()

	tr.slot.Publish(gaze.Snapshot{
		Mode:   gaze.ModeMotion,
		Target: gaze.Vec2{X: 200, Y: 60},
		At:     now,
	})

	for i := 0; i < 60; i++ {
		tr.step(now.Add(time.Duration(i) * 40 * time.Millisecond))
	}

	if dx := tr.left.Current.X - 200; dx > 1 || dx < -1 {
		t.Errorf("left eye x = %v, want near 200", tr.left.Current.X)
	}
	if tr.left.Current != tr.right.Current {
		t.Errorf("eyes diverged outside idle: %+v vs %+v", tr.left.Current, tr.right.Current)
	}
}

func TestTracker_IdleSnapshotStartsAScript(t *testing.T) {
	tr, _, _ := testTracker()
	now := time.Now()

	tr.slot.Publish(gaze.Snapshot{Mode: gaze.ModeIdle, IdleEnteredAt: now, At: now})
	tr.step(now)

	if tr.idleEngine.Active() == nil {
		t.Fatal("idle snapshot did not start a script")
	}

	// Leaving idle discards the script.
	tr.slot.Publish(gaze.Snapshot{Mode: gaze.ModeMotion, Target: gaze.Vec2{X: 120, Y: 120}, At: now})
	tr.step(now.Add(40 * time.Millisecond))
	if tr.idleEngine.Active() != nil {
		t.Error("script survived leaving idle")
	}
}

func TestTracker_CacheServesRepeatedFrames(t *testing.T) {
	tr, _, _ := testTracker()
	now := time.Now()

	// A converged, unchanging eye renders the same quantized frame.
	for i := 0; i < 20; i++ {
		tr.step(now.Add(time.Duration(i) * 40 * time.Millisecond))
	}
	if tr.cache.Len() == 0 {
		t.Fatal("cache stayed empty")
	}
	if tr.cache.Len() > 4 {
		t.Errorf("stable eye filled %d cache entries, want a handful", tr.cache.Len())
	}
}

func TestTracker_FaceSnapshotUsesRoundPupil(t *testing.T) {
	tr, _, _ := testTracker()
	now := time.Now()

	tr.slot.Publish(gaze.Snapshot{
		Mode:        gaze.ModeFace,
		Target:      gaze.Vec2{X: 120, Y: 120},
		FaceTracked: true,
		At:          now,
	})
	tr.step(now)

	if tr.lastMode != gaze.ModeFace {
		t.Errorf("mode = %v, want face", tr.lastMode)
	}
}
