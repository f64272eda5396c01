package render

import "testing"

func TestEncodeRGB565_LengthAndPacking(t *testing.T) {
	rgb := []byte{
		255, 255, 255, // White: all channel bits set
		0, 0, 0, // Black
		255, 0, 0, // Pure red
		0, 255, 0, // Pure green
		0, 0, 255, // Pure blue
	}
	out := EncodeRGB565(nil, rgb)
	if len(out) != 10 {
		t.Fatalf("encoded %d bytes, want 10", len(out))
	}

	want := []struct {
		hi, lo byte
	}{
		{0xFF, 0xFF}, // 31,63,31
		{0x00, 0x00},
		{0xF8, 0x00}, // Red in the top 5 bits
		{0x07, 0xE0}, // Green in the middle 6 bits
		{0x00, 0x1F}, // Blue in the bottom 5 bits
	}
	for i, w := range want {
		if out[i*2] != w.hi || out[i*2+1] != w.lo {
			t.Errorf("pixel %d = %02x%02x, want %02x%02x", i, out[i*2], out[i*2+1], w.hi, w.lo)
		}
	}
}

func TestEncodeRGB565_ReusesDst(t *testing.T) {
	rgb := make([]byte, 240*240*3)
	dst := make([]byte, 240*240*2)
	out := EncodeRGB565(dst, rgb)
	if &out[0] != &dst[0] {
		t.Error("encoder allocated despite a large enough dst")
	}
}
