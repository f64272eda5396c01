// Package tracker runs the two loops of the eye controller: the
// acquisition loop turns camera frames into gaze targets, the render
// loop animates and presents eye frames at a fixed rate. The loops
// share nothing but a latest-wins snapshot slot, so a slow detector
// never stalls rendering.
package tracker

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"gocv.io/x/gocv"

	"github.com/tolian500/go-eyes/internal/log"
	"github.com/tolian500/go-eyes/pkg/camera"
	"github.com/tolian500/go-eyes/pkg/display"
	"github.com/tolian500/go-eyes/pkg/gaze"
	"github.com/tolian500/go-eyes/pkg/idle"
	"github.com/tolian500/go-eyes/pkg/render"
	"github.com/tolian500/go-eyes/pkg/vision"
	"github.com/tolian500/go-eyes/pkg/web"
)

// Config holds the loop timing parameters.
type Config struct {
	RenderInterval time.Duration // Frame period for the render loop
	FaceEveryN     int           // Run face detection every Nth frame
	CacheCapacity  int           // Encoded frame cache size
	ErrorBackoff   time.Duration // Pause after a failed camera read
}

// DefaultConfig returns 25 FPS rendering with face detection every
// 20th camera frame.
func DefaultConfig() Config {
	return Config{
		RenderInterval: 40 * time.Millisecond,
		FaceEveryN:     20,
		CacheCapacity:  50,
		ErrorBackoff:   500 * time.Millisecond,
	}
}

// FaceDetector is the face detection dependency. May be nil, in which
// case the controller runs on motion alone.
type FaceDetector interface {
	Detect(frame gocv.Mat) vision.Event
}

// MotionDetector is the motion detection dependency.
type MotionDetector interface {
	Detect(frame gocv.Mat) vision.Event
}

// Tracker owns both loops and everything they touch.
type Tracker struct {
	cfg     Config
	gazeCfg gaze.Config

	source    camera.Source
	motion    MotionDetector
	face      FaceDetector
	projector vision.Projector

	machine *gaze.Machine
	slot    *gaze.Slot
	blinker *gaze.Blinker

	idleEngine *idle.Engine
	geom       idle.Geometry

	left     *gaze.EyeState
	right    *gaze.EyeState
	lastMode gaze.Mode

	renderer *render.Renderer
	cache    *render.Cache

	displayLeft  display.Display
	displayRight display.Display

	server *web.Server // Optional dashboard

	captureFPS float64
	renderFPS  float64
}

// Options collects the tracker's collaborators.
type Options struct {
	Config    Config
	Gaze      gaze.Config
	Look      render.Appearance
	Source    camera.Source
	Motion    MotionDetector
	Face      FaceDetector
	Projector vision.Projector
	Left      display.Display
	Right     display.Display
	Server    *web.Server
	Rand      *rand.Rand
}

// New wires up a tracker from its collaborators.
func New(opts Options) *Tracker {
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	geom := idle.Geometry{
		Width:  opts.Gaze.DisplayWidth,
		Height: opts.Gaze.DisplayHeight,
		Margin: opts.Gaze.EdgeMargin,
	}
	return &Tracker{
		cfg:          opts.Config,
		gazeCfg:      opts.Gaze,
		source:       opts.Source,
		motion:       opts.Motion,
		face:         opts.Face,
		projector:    opts.Projector,
		machine:      gaze.NewMachineWithRand(opts.Gaze, rng),
		slot:         gaze.NewSlot(),
		blinker:      gaze.NewBlinker(opts.Gaze, rng),
		idleEngine:   idle.NewEngine(geom, rng),
		geom:         geom,
		left:         gaze.NewEyeState(opts.Gaze),
		right:        gaze.NewEyeState(opts.Gaze),
		lastMode:     gaze.ModeMotion,
		renderer:     render.NewRenderer(opts.Gaze.DisplayWidth, opts.Gaze.DisplayHeight, opts.Look),
		cache:        render.NewCache(opts.Config.CacheCapacity),
		displayLeft:  opts.Left,
		displayRight: opts.Right,
		server:       opts.Server,
	}
}

// Run drives both loops until ctx is canceled, then closes the displays.
func (t *Tracker) Run(ctx context.Context) error {
	var wg sync.WaitGroup
	if t.source != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			t.acquisitionLoop(ctx)
		}()
	}

	t.renderLoop(ctx)
	wg.Wait()

	if err := t.displayLeft.Close(); err != nil {
		log.Warn("close left display", "error", err)
	}
	if err := t.displayRight.Close(); err != nil {
		log.Warn("close right display", "error", err)
	}
	return ctx.Err()
}

// acquisitionLoop reads camera frames as fast as the source delivers
// them and feeds detections into the mode machine.
func (t *Tracker) acquisitionLoop(ctx context.Context) {
	frame := gocv.NewMat()
	defer frame.Close()

	frames := 0
	frameCount := 0
	windowStart := time.Now()

	for ctx.Err() == nil {
		if err := t.source.Read(&frame); err != nil {
			log.Warn("camera read", "error", err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(t.cfg.ErrorBackoff):
			}
			continue
		}
		now := time.Now()
		frames++
		frameCount++

		motion := t.motion.Detect(frame)
		if box, ok := motion.Largest(); ok {
			x, y := t.projector.Project(box)
			t.machine.ObserveMotion(gaze.Vec2{X: x, Y: y}, now)
		}

		if t.face != nil && t.cfg.FaceEveryN > 0 && frames%t.cfg.FaceEveryN == 0 {
			faces := t.face.Detect(frame)
			if box, ok := faces.Largest(); ok {
				x, y := t.projector.Project(box)
				area := t.projector.AreaFraction(box)
				t.machine.ObserveFace(gaze.Vec2{X: x, Y: y}, area, now)
			}
		}

		t.machine.Tick(now)
		t.slot.Publish(t.machine.Snapshot(now))

		if elapsed := now.Sub(windowStart); elapsed >= time.Second {
			t.captureFPS = float64(frameCount) / elapsed.Seconds()
			log.Debug("capture rate", "fps", t.captureFPS, "mode", t.machine.Mode().String())
			frameCount = 0
			windowStart = now
		}
	}
}

// renderLoop animates and presents frames at the configured rate.
func (t *Tracker) renderLoop(ctx context.Context) {
	ticker := time.NewTicker(t.cfg.RenderInterval)
	defer ticker.Stop()

	frameCount := 0
	windowStart := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			t.step(now)
			frameCount++
			if elapsed := now.Sub(windowStart); elapsed >= time.Second {
				t.renderFPS = float64(frameCount) / elapsed.Seconds()
				log.Debug("render rate", "fps", t.renderFPS, "cache", t.cache.Len())
				frameCount = 0
				windowStart = now
			}
		}
	}
}

// step advances the animation by one frame and presents it.
func (t *Tracker) step(now time.Time) {
	snap, fresh := t.slot.Latest()
	if fresh {
		t.applySnapshot(snap, now)
	}

	blinkOv := t.idleTargets(now)

	for _, eye := range []*gaze.EyeState{t.left, t.right} {
		eye.StepPosition(t.gazeCfg.PositionSmoothing)
		eye.StepAppearance(t.gazeCfg.ColorSmoothing, t.gazeCfg.SizeSmoothing)
	}

	blinkLeft := t.blinker.Phase(now)
	blinkRight := blinkLeft
	if blinkOv.Active {
		blinkLeft = blinkOv.Left
		blinkRight = blinkOv.Right
	}
	t.left.BlinkPhase = blinkLeft
	t.right.BlinkPhase = blinkRight

	tracked := t.lastMode == gaze.ModeFace
	leftFrame := t.frameFor(t.left, tracked)
	rightFrame := t.frameFor(t.right, tracked)

	if err := t.displayLeft.Present(leftFrame); err != nil {
		log.Warn("present left", "error", err)
	}
	if err := t.displayRight.Present(rightFrame); err != nil {
		log.Warn("present right", "error", err)
	}

	t.publishState(leftFrame)
}

// applySnapshot folds the machine's latest output into the eye states.
func (t *Tracker) applySnapshot(snap gaze.Snapshot, now time.Time) {
	if snap.Mode == gaze.ModeIdle && t.lastMode != gaze.ModeIdle {
		script := t.idleEngine.Start(now)
		log.Info("idle animation", "script", script.Name())
	}
	if snap.Mode != gaze.ModeIdle && t.lastMode == gaze.ModeIdle {
		t.idleEngine.Stop()
	}
	t.lastMode = snap.Mode

	if snap.Mode != gaze.ModeIdle {
		t.left.Target = snap.Target
		t.right.Target = snap.Target
	}
	for _, eye := range []*gaze.EyeState{t.left, t.right} {
		eye.TargetColor = snap.ColorTarget
		eye.TargetIris = t.gazeCfg.IrisRadiusFor(snap.SizeIndex)
	}
}

// idleTargets lets the active idle script drive per-eye targets.
func (t *Tracker) idleTargets(now time.Time) idle.BlinkOverride {
	if t.lastMode != gaze.ModeIdle {
		return idle.BlinkOverride{}
	}
	left, right, blink, ok := t.idleEngine.Targets(now, t.geom)
	if !ok {
		return idle.BlinkOverride{}
	}
	t.left.Target = left
	t.right.Target = right
	return blink
}

// frameFor renders one eye through the cache. Frames are always drawn
// from the quantized key's representative parameters, so a hit and a
// fresh render are identical bytes.
func (t *Tracker) frameFor(eye *gaze.EyeState, tracked bool) []byte {
	color := eye.ColorRGB()
	key := render.Quantize(render.Params{
		X:          eye.Current.X,
		Y:          eye.Current.Y,
		Blink:      eye.BlinkPhase,
		R:          color.R,
		G:          color.G,
		B:          color.B,
		IrisRadius: eye.CurrentIris,
		Tracked:    tracked,
	})
	if frame, ok := t.cache.Get(key); ok {
		return frame
	}
	rgb := t.renderer.Render(key.Params())
	frame := render.EncodeRGB565(nil, rgb)
	t.cache.Put(key, frame)
	return frame
}

// publishState pushes the current frame and state to the dashboard.
func (t *Tracker) publishState(frame []byte) {
	if t.server == nil {
		return
	}
	t.server.SendPreviewFrame(frame)

	color := t.left.ColorRGB()
	var anim string
	if script := t.idleEngine.Active(); script != nil {
		anim = script.Name()
	}
	t.server.UpdateState(func(s *web.State) {
		s.Mode = t.lastMode.String()
		s.TargetX = t.left.Target.X
		s.TargetY = t.left.Target.Y
		s.EyeX = t.left.Current.X
		s.EyeY = t.left.Current.Y
		s.ColorR = color.R
		s.ColorG = color.G
		s.ColorB = color.B
		s.IrisSize = t.left.CurrentIris
		s.Blink = t.left.BlinkPhase
		s.FPS = t.renderFPS
		s.CacheSize = t.cache.Len()
		s.IdleAnim = anim
	})
}
