// Package idle provides the library of scripted eye animations played
// while nothing is moving in front of the device.
//
// Each script is a deterministic function of elapsed time since it
// started. Script outputs are smoothing targets, so the eyes glide even
// when a script's output jumps.
package idle

import (
	"math/rand"
	"time"

	"github.com/tolian500/go-eyes/pkg/gaze"
)

// BlinkOverride lets a script drive per-eye blink phases directly,
// e.g. for an alternating single-eye blink.
type BlinkOverride struct {
	Active bool
	Left   float64
	Right  float64
}

// Script is a time-indexed movement for both eyes.
type Script interface {
	// Name identifies the script in logs.
	Name() string

	// Duration is how long the script runs before clamping to its
	// terminal return-to-center pose.
	Duration() time.Duration

	// Restart fixes any random branch for a fresh run.
	Restart(rng *rand.Rand)

	// At returns per-eye target positions for elapsed time t.
	At(t time.Duration) (left, right gaze.Vec2, blink BlinkOverride)
}

// Geometry describes the display area scripts animate within.
type Geometry struct {
	Width  int
	Height int
	Margin float64 // Keep-out border in pixels
}

// Center returns the display center.
func (g Geometry) Center() gaze.Vec2 {
	return gaze.Vec2{X: float64(g.Width) / 2, Y: float64(g.Height) / 2}
}

// Engine selects and runs one script at a time. A script is chosen
// uniformly at random each time idle mode is entered and discarded on
// exit.
type Engine struct {
	scripts []Script
	rng     *rand.Rand

	active    Script
	startedAt time.Time
}

// NewEngine creates an engine over the default script library.
func NewEngine(geom Geometry, rng *rand.Rand) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Engine{scripts: DefaultScripts(geom), rng: rng}
}

// NewEngineWithScripts creates an engine over an explicit script set.
func NewEngineWithScripts(scripts []Script, rng *rand.Rand) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Engine{scripts: scripts, rng: rng}
}

// Start picks a script at random and begins it at now.
func (e *Engine) Start(now time.Time) Script {
	e.active = e.scripts[e.rng.Intn(len(e.scripts))]
	e.active.Restart(e.rng)
	e.startedAt = now
	return e.active
}

// Stop discards the active script.
func (e *Engine) Stop() {
	e.active = nil
}

// Active returns the running script, or nil.
func (e *Engine) Active() Script {
	return e.active
}

// Targets evaluates the active script at now. Once the script's own
// duration has elapsed it clamps to the centered terminal pose; the
// idle resume timer may cut it off earlier.
func (e *Engine) Targets(now time.Time, geom Geometry) (left, right gaze.Vec2, blink BlinkOverride, ok bool) {
	if e.active == nil {
		return gaze.Vec2{}, gaze.Vec2{}, BlinkOverride{}, false
	}
	t := now.Sub(e.startedAt)
	if t >= e.active.Duration() {
		center := geom.Center()
		return center, center, BlinkOverride{}, true
	}
	left, right, blink = e.active.At(t)
	return left, right, blink, true
}
