package render

import "math"

// Quantization granularity. Positions snap to a coarse grid and the
// continuous blink/color/size values to buckets so that the handful of
// frames produced while smoothing settles all share cache entries.
const (
	posStep    = 5   // Pixels per position cell
	blinkSteps = 10  // Buckets across 0..1
	colorStep  = 8   // Per-channel bucket width
	irisStep   = 2.0 // Pixels per iris radius bucket
)

// Key identifies one cached frame. Params quantize to a Key, and the
// frame stored under it is always rendered from the Key's representative
// parameters, so a cache hit and a fresh render are byte-identical.
type Key struct {
	X, Y    int
	Blink   int
	R, G, B uint8
	Iris    int
	Tracked bool
}

// Quantize maps continuous frame parameters onto a cache key.
func Quantize(p Params) Key {
	blink := clampf(p.Blink, 0, 1)
	return Key{
		X:       int(math.Round(p.X / posStep)),
		Y:       int(math.Round(p.Y / posStep)),
		Blink:   int(math.Round(blink * blinkSteps)),
		R:       p.R / colorStep,
		G:       p.G / colorStep,
		B:       p.B / colorStep,
		Iris:    int(math.Round(p.IrisRadius / irisStep)),
		Tracked: p.Tracked,
	}
}

// Params returns the representative parameters for this key, the ones a
// frame stored under it must be rendered from.
func (k Key) Params() Params {
	return Params{
		X:          float64(k.X) * posStep,
		Y:          float64(k.Y) * posStep,
		Blink:      float64(k.Blink) / blinkSteps,
		R:          k.R * colorStep,
		G:          k.G * colorStep,
		B:          k.B * colorStep,
		IrisRadius: float64(k.Iris) * irisStep,
		Tracked:    k.Tracked,
	}
}

// Cache is a bounded FIFO of encoded frames. When full, the entry that
// was inserted first is evicted regardless of how often it was hit.
// Not safe for concurrent use.
type Cache struct {
	capacity int
	frames   map[Key][]byte
	order    []Key
}

// NewCache creates a cache holding at most capacity encoded frames.
func NewCache(capacity int) *Cache {
	if capacity < 1 {
		capacity = 1
	}
	return &Cache{
		capacity: capacity,
		frames:   make(map[Key][]byte, capacity),
		order:    make([]Key, 0, capacity),
	}
}

// Get returns the cached frame for key, if present.
func (c *Cache) Get(key Key) ([]byte, bool) {
	frame, ok := c.frames[key]
	return frame, ok
}

// Put stores frame under key, evicting the oldest inserted entry when
// the cache is full. The frame is copied; callers may reuse their buffer.
func (c *Cache) Put(key Key, frame []byte) {
	if _, ok := c.frames[key]; ok {
		return
	}
	if len(c.order) >= c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.frames, oldest)
	}
	stored := make([]byte, len(frame))
	copy(stored, frame)
	c.frames[key] = stored
	c.order = append(c.order, key)
}

// Len reports the number of cached frames.
func (c *Cache) Len() int { return len(c.order) }
