package idle

import (
	"math"
	"math/rand"
	"time"

	"github.com/tolian500/go-eyes/pkg/gaze"
)

// DefaultScripts returns the fixed script library played in idle mode.
func DefaultScripts(geom Geometry) []Script {
	return []Script{
		&orbitScript{geom: geom, radius: 20, period: 3 * time.Second, total: 9 * time.Second},
		&horizontalScanScript{geom: geom, amplitude: 25, period: 4 * time.Second, total: 10 * time.Second},
		&verticalScanScript{geom: geom, amplitude: 20, period: 4 * time.Second, total: 10 * time.Second},
		&alternatingBlinkScript{geom: geom, beat: 800 * time.Millisecond, total: 6 * time.Second},
		&cornerRollScript{geom: geom, travel: 2 * time.Second, total: 8 * time.Second},
		&archSweepScript{geom: geom, amplitude: 25, lift: 18, period: 5 * time.Second, total: 10 * time.Second},
	}
}

// orbitScript rolls both eyes around a small circle.
type orbitScript struct {
	geom   Geometry
	radius float64
	period time.Duration
	total  time.Duration
}

func (s *orbitScript) Name() string            { return "orbit" }
func (s *orbitScript) Duration() time.Duration { return s.total }
func (s *orbitScript) Restart(*rand.Rand)      {}

func (s *orbitScript) At(t time.Duration) (gaze.Vec2, gaze.Vec2, BlinkOverride) {
	angle := 2 * math.Pi * t.Seconds() / s.period.Seconds()
	offset := gaze.Vec2{X: s.radius * math.Cos(angle), Y: s.radius * math.Sin(angle)}
	p := s.geom.Center().Add(offset)
	return p, p, BlinkOverride{}
}

// horizontalScanScript sweeps edge to edge with short holds at each
// extreme, produced by overdriving a sine and clamping it.
type horizontalScanScript struct {
	geom      Geometry
	amplitude float64
	period    time.Duration
	total     time.Duration
}

func (s *horizontalScanScript) Name() string            { return "horizontal-scan" }
func (s *horizontalScanScript) Duration() time.Duration { return s.total }
func (s *horizontalScanScript) Restart(*rand.Rand)      {}

func (s *horizontalScanScript) At(t time.Duration) (gaze.Vec2, gaze.Vec2, BlinkOverride) {
	phase := 2 * math.Pi * t.Seconds() / s.period.Seconds()
	// Overdrive by 1.4x so the clamped sweep dwells at the edges.
	sweep := clampUnit(1.4 * math.Sin(phase))
	p := s.geom.Center().Add(gaze.Vec2{X: sweep * s.amplitude})
	return p, p, BlinkOverride{}
}

// verticalScanScript scans vertically on one lateral half of the
// display, chosen at random when the script starts.
type verticalScanScript struct {
	geom      Geometry
	amplitude float64
	period    time.Duration
	total     time.Duration

	sideOffset float64 // Fixed at Restart
}

func (s *verticalScanScript) Name() string            { return "vertical-scan" }
func (s *verticalScanScript) Duration() time.Duration { return s.total }

func (s *verticalScanScript) Restart(rng *rand.Rand) {
	offset := 15 + rng.Float64()*10
	if rng.Intn(2) == 0 {
		offset = -offset
	}
	s.sideOffset = offset
}

func (s *verticalScanScript) At(t time.Duration) (gaze.Vec2, gaze.Vec2, BlinkOverride) {
	phase := 2 * math.Pi * t.Seconds() / s.period.Seconds()
	p := s.geom.Center().Add(gaze.Vec2{X: s.sideOffset, Y: s.amplitude * math.Sin(phase)})
	return p, p, BlinkOverride{}
}

// alternatingBlinkScript keeps the eyes centered and winks one eye at a
// time on a fixed beat.
type alternatingBlinkScript struct {
	geom  Geometry
	beat  time.Duration
	total time.Duration
}

func (s *alternatingBlinkScript) Name() string            { return "alternating-blink" }
func (s *alternatingBlinkScript) Duration() time.Duration { return s.total }
func (s *alternatingBlinkScript) Restart(*rand.Rand)      {}

func (s *alternatingBlinkScript) At(t time.Duration) (gaze.Vec2, gaze.Vec2, BlinkOverride) {
	center := s.geom.Center()
	beatIndex := int(t / s.beat)
	within := float64(t%s.beat) / float64(s.beat)

	// Triangular wink envelope within each beat.
	phase := 1.0
	if within < 0.5 {
		phase = 1.0 - within*2
	} else {
		phase = (within - 0.5) * 2
	}

	blink := BlinkOverride{Active: true, Left: 1.0, Right: 1.0}
	if beatIndex%2 == 0 {
		blink.Left = phase
	} else {
		blink.Right = phase
	}
	return center, center, blink
}

// cornerRollScript rolls the gaze into a random corner and holds it
// there for the rest of the run.
type cornerRollScript struct {
	geom   Geometry
	travel time.Duration
	total  time.Duration

	corner gaze.Vec2 // Fixed at Restart
}

func (s *cornerRollScript) Name() string            { return "corner-roll" }
func (s *cornerRollScript) Duration() time.Duration { return s.total }

func (s *cornerRollScript) Restart(rng *rand.Rand) {
	dx := s.geom.Center().X - s.geom.Margin - 30
	dy := s.geom.Center().Y - s.geom.Margin - 30
	signX := float64(1 - 2*rng.Intn(2))
	signY := float64(1 - 2*rng.Intn(2))
	s.corner = s.geom.Center().Add(gaze.Vec2{X: signX * dx, Y: signY * dy})
}

func (s *cornerRollScript) At(t time.Duration) (gaze.Vec2, gaze.Vec2, BlinkOverride) {
	progress := math.Min(t.Seconds()/s.travel.Seconds(), 1.0)
	center := s.geom.Center()
	p := center.Add(s.corner.Sub(center).Scale(progress))
	return p, p, BlinkOverride{}
}

// archSweepScript sweeps side to side while lifting through an arch at
// the middle of each pass.
type archSweepScript struct {
	geom      Geometry
	amplitude float64
	lift      float64
	period    time.Duration
	total     time.Duration
}

func (s *archSweepScript) Name() string            { return "arch-sweep" }
func (s *archSweepScript) Duration() time.Duration { return s.total }
func (s *archSweepScript) Restart(*rand.Rand)      {}

func (s *archSweepScript) At(t time.Duration) (gaze.Vec2, gaze.Vec2, BlinkOverride) {
	phase := 2 * math.Pi * t.Seconds() / s.period.Seconds()
	x := s.amplitude * math.Sin(phase)
	// Highest at the center of the sweep, lowest at the edges.
	y := -s.lift * (1 - math.Abs(math.Sin(phase)))
	p := s.geom.Center().Add(gaze.Vec2{X: x, Y: y})
	return p, p, BlinkOverride{}
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
