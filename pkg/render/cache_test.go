package render

import (
	"bytes"
	"testing"
)

func TestQuantize_NearbyParamsShareKeys(t *testing.T) {
	a := Quantize(Params{X: 120, Y: 120, Blink: 1.0, R: 255, G: 220, IrisRadius: 55})
	b := Quantize(Params{X: 121.5, Y: 118.9, Blink: 0.97, R: 254, G: 221, IrisRadius: 55.4})
	if a != b {
		t.Errorf("nearby params quantized to different keys:\n%+v\n%+v", a, b)
	}

	c := Quantize(Params{X: 160, Y: 120, Blink: 1.0, R: 255, G: 220, IrisRadius: 55})
	if a == c {
		t.Error("distant params share a key")
	}
}

func TestKey_ParamsRoundTripsThroughQuantize(t *testing.T) {
	key := Quantize(Params{X: 121.5, Y: 118.9, Blink: 0.42, R: 250, G: 10, B: 3, IrisRadius: 55.4, Tracked: true})
	if again := Quantize(key.Params()); again != key {
		t.Errorf("representative params quantize to a different key:\n%+v\n%+v", key, again)
	}
}

func TestCache_FIFOEviction(t *testing.T) {
	c := NewCache(3)
	keys := make([]Key, 4)
	for i := range keys {
		keys[i] = Key{X: i}
		c.Put(keys[i], []byte{byte(i)})
	}

	if c.Len() != 3 {
		t.Fatalf("cache holds %d entries, want 3", c.Len())
	}
	if _, ok := c.Get(keys[0]); ok {
		t.Error("oldest entry survived eviction")
	}
	for _, k := range keys[1:] {
		if _, ok := c.Get(k); !ok {
			t.Errorf("entry %+v evicted out of order", k)
		}
	}
}

func TestCache_GetDoesNotAffectEvictionOrder(t *testing.T) {
	c := NewCache(2)
	c.Put(Key{X: 0}, []byte{0})
	c.Put(Key{X: 1}, []byte{1})

	// A hit on the oldest entry must not protect it.
	c.Get(Key{X: 0})
	c.Put(Key{X: 2}, []byte{2})

	if _, ok := c.Get(Key{X: 0}); ok {
		t.Error("hit entry survived; eviction should ignore access order")
	}
	if _, ok := c.Get(Key{X: 1}); !ok {
		t.Error("newer entry was evicted")
	}
}

func TestCache_StoresACopy(t *testing.T) {
	c := NewCache(2)
	buf := []byte{1, 2, 3}
	c.Put(Key{X: 5}, buf)
	buf[0] = 99

	got, ok := c.Get(Key{X: 5})
	if !ok {
		t.Fatal("entry missing")
	}
	if !bytes.Equal(got, []byte{1, 2, 3}) {
		t.Errorf("cache shares the caller's buffer: %v", got)
	}
}
