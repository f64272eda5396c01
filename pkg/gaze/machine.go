package gaze

import (
	"math/rand"
	"time"
)

// Mode identifies the active source of eye position targets.
type Mode int

const (
	// ModeMotion follows the motion-difference centroid. Default state.
	ModeMotion Mode = iota

	// ModeFace follows a detected face until the hold timer expires
	// or motion interrupts.
	ModeFace

	// ModeIdle plays a scripted animation until motion arrives or the
	// resume timer fires.
	ModeIdle
)

// String returns a human-readable mode name.
func (m Mode) String() string {
	switch m {
	case ModeMotion:
		return "motion"
	case ModeFace:
		return "face"
	case ModeIdle:
		return "idle"
	default:
		return "unknown"
	}
}

// Machine arbitrates between motion tracking, face following and idle
// animation. It is driven by the acquisition loop: Observe* on detector
// output, Tick once per cycle for timer transitions.
//
// Priority is a hard contract: motion interrupts face, motion interrupts
// idle, and face never preempts idle.
type Machine struct {
	cfg Config
	rng *rand.Rand

	mode      Mode
	posTarget Vec2

	lastMotionAt time.Time
	lastFaceAt   time.Time
	faceHoldEnd  time.Time

	idleDelay     time.Duration // Sampled on each re-arm
	idleEnteredAt time.Time
	idleResume    time.Duration // Sampled at idle entry

	colorHoldEnd time.Time
	colorTarget  Color

	faceSizes  *FaceSizeHistory
	sizeTarget int
}

// NewMachine creates a machine in MotionTracking with eyes aimed at the
// display center.
func NewMachine(cfg Config) *Machine {
	return NewMachineWithRand(cfg, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewMachineWithRand creates a machine with an explicit random source.
func NewMachineWithRand(cfg Config, rng *rand.Rand) *Machine {
	m := &Machine{
		cfg:         cfg,
		rng:         rng,
		mode:        ModeMotion,
		posTarget:   cfg.Center(),
		colorTarget: cfg.CalmColor,
		faceSizes:   NewFaceSizeHistory(cfg.FaceSizeHistory),
		sizeTarget:  cfg.NeutralSizeIndex,
	}
	m.idleDelay = m.sampleRange(cfg.IdleDelayMin, cfg.IdleDelayMax)
	m.lastMotionAt = time.Now()
	return m
}

// Mode returns the current mode.
func (m *Machine) Mode() Mode {
	return m.mode
}

// ObserveMotion records a motion event aimed at the given display target.
// Motion always wins: it interrupts FaceFollowing and Idle immediately,
// and re-arms the idle trigger with a freshly sampled delay.
func (m *Machine) ObserveMotion(target Vec2, now time.Time) {
	m.lastMotionAt = now
	m.idleDelay = m.sampleRange(m.cfg.IdleDelayMin, m.cfg.IdleDelayMax)

	switch m.mode {
	case ModeIdle:
		// Waking from idle recenters first; the following motion
		// events steer from there.
		m.mode = ModeMotion
		m.posTarget = m.cfg.Center()
	case ModeFace:
		m.mode = ModeMotion
		m.posTarget = target
	default:
		m.posTarget = target
	}
}

// ObserveFace records a face detection at the given display target with
// the face's area as a fraction of the sensor frame.
//
// Position control only moves to FaceFollowing when no motion has fired
// within the settle window; the color and size targets react regardless
// of mode.
func (m *Machine) ObserveFace(target Vec2, area float64, now time.Time) {
	m.lastFaceAt = now
	m.colorHoldEnd = now.Add(m.cfg.ColorHold)
	m.colorTarget = m.cfg.AlertColor

	m.faceSizes.Push(area)
	m.sizeTarget = m.sizeIndexFromArea(m.faceSizes.Mean())

	switch m.mode {
	case ModeMotion:
		if now.Sub(m.lastMotionAt) >= m.cfg.SettleWindow {
			m.mode = ModeFace
			m.faceHoldEnd = now.Add(m.cfg.FaceHold)
			m.posTarget = target
		}
	case ModeFace:
		m.faceHoldEnd = now.Add(m.cfg.FaceHold)
		m.posTarget = target
	case ModeIdle:
		// Idle position control is only preempted by motion.
	}
}

// Tick advances timer-driven transitions. Call once per acquisition
// cycle, after any Observe calls for that cycle.
func (m *Machine) Tick(now time.Time) {
	switch m.mode {
	case ModeFace:
		if now.After(m.faceHoldEnd) {
			m.mode = ModeMotion
		}
	case ModeIdle:
		if now.Sub(m.idleEnteredAt) > m.idleResume {
			m.mode = ModeMotion
			m.posTarget = m.cfg.Center()
			m.lastMotionAt = now
			m.idleDelay = m.sampleRange(m.cfg.IdleDelayMin, m.cfg.IdleDelayMax)
		}
	}

	if m.mode != ModeIdle && now.Sub(m.lastMotionAt) > m.idleDelay {
		m.mode = ModeIdle
		m.idleEnteredAt = now
		m.idleResume = m.sampleRange(m.cfg.IdleResumeMin, m.cfg.IdleResumeMax)
	}

	if now.After(m.colorHoldEnd) {
		m.colorTarget = m.cfg.CalmColor
	}
	if now.Sub(m.lastFaceAt) > m.cfg.SizeRevert {
		m.sizeTarget = m.cfg.NeutralSizeIndex
	}
}

// Snapshot captures the machine's output for the render loop.
func (m *Machine) Snapshot(now time.Time) Snapshot {
	return Snapshot{
		Mode:          m.mode,
		Target:        m.posTarget,
		ColorTarget:   m.colorTarget,
		SizeIndex:     m.sizeTarget,
		FaceTracked:   m.mode == ModeFace,
		IdleEnteredAt: m.idleEnteredAt,
		At:            now,
	}
}

// sizeIndexFromArea maps a smoothed face area fraction linearly onto
// the size index range, clamped.
func (m *Machine) sizeIndexFromArea(area float64) int {
	span := m.cfg.FaceAreaMax - m.cfg.FaceAreaMin
	if span <= 0 {
		return m.cfg.NeutralSizeIndex
	}
	norm := (area - m.cfg.FaceAreaMin) / span
	idx := int(norm * float64(m.cfg.SizeSteps-1))
	if idx < 0 {
		idx = 0
	}
	if idx > m.cfg.SizeSteps-1 {
		idx = m.cfg.SizeSteps - 1
	}
	return idx
}

func (m *Machine) sampleRange(min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}
	return min + time.Duration(m.rng.Int63n(int64(max-min)))
}
