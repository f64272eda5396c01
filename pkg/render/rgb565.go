package render

// EncodeRGB565 packs an 8-bit RGB buffer into big-endian RGB565, two
// bytes per pixel, as the display panel expects. dst is grown if needed
// and the encoded slice is returned.
func EncodeRGB565(dst, rgb []byte) []byte {
	pixels := len(rgb) / 3
	need := pixels * 2
	if cap(dst) < need {
		dst = make([]byte, need)
	}
	dst = dst[:need]
	for i := 0; i < pixels; i++ {
		r := uint16(rgb[i*3]) >> 3
		g := uint16(rgb[i*3+1]) >> 2
		b := uint16(rgb[i*3+2]) >> 3
		v := r<<11 | g<<5 | b
		dst[i*2] = byte(v >> 8)
		dst[i*2+1] = byte(v)
	}
	return dst
}
