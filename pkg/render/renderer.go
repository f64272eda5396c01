package render

import "math"

// Renderer draws a single eye into a reusable RGB buffer. The output is
// deterministic in its parameters: identical Params produce identical bytes.
// Not safe for concurrent use; each render loop owns its own Renderer.
type Renderer struct {
	width  int
	height int
	look   Appearance
	rgb    []byte // width*height*3, reused across frames
}

// NewRenderer creates a renderer for a width x height display buffer.
func NewRenderer(width, height int, look Appearance) *Renderer {
	return &Renderer{
		width:  width,
		height: height,
		look:   look,
		rgb:    make([]byte, width*height*3),
	}
}

// Render draws the eye described by p and returns the RGB buffer. The
// returned slice is owned by the renderer and valid until the next call.
func (r *Renderer) Render(p Params) []byte {
	for i := range r.rgb {
		r.rgb[i] = 0
	}
	if p.Blink <= 0 {
		return r.rgb
	}
	blink := p.Blink
	if blink > 1 {
		blink = 1
	}

	iris := p.IrisRadius
	if iris <= 0 {
		return r.rgb
	}
	glow := iris + r.look.GlowSize

	// Keep the whole eye, glow included, inside the buffer.
	cx := clampf(p.X, glow, float64(r.width)-glow)
	cy := clampf(p.Y, glow, float64(r.height)-glow)

	// Eyelids close symmetrically toward the horizontal center line.
	// A fully open eye is not clipped at all, so the glow extends past
	// the iris vertically as well as horizontally.
	lidTop := cy - glow
	lidBottom := cy + glow
	if blink < 1 {
		lid := iris * (1 - blink)
		lidTop = cy - iris + lid
		lidBottom = cy + iris - lid
	}

	shape := r.look.SlitPupil
	if p.Tracked {
		shape = r.look.RoundPupil
	}
	pupilW := iris * shape.SizeRatio * shape.WidthRatio
	pupilH := iris * shape.SizeRatio * shape.HeightRatio

	glowR, glowG, glowB := scaleColor(p.R, p.G, p.B, r.look.GlowIntensity)
	hiR, hiG, hiB := scaleColor(p.R, p.G, p.B, r.look.HighlightBrightness)

	iris2 := iris * iris
	glow2 := glow * glow
	hiOuter := iris + r.look.HighlightWidth/2
	hiOuter2 := hiOuter * hiOuter
	alpha := r.look.HighlightAlpha

	y0 := int(math.Max(math.Ceil(cy-glow), math.Ceil(lidTop)))
	y1 := int(math.Min(math.Floor(cy+glow), math.Floor(lidBottom)))
	x0 := int(math.Ceil(cx - glow))
	x1 := int(math.Floor(cx + glow))
	if y0 < 0 {
		y0 = 0
	}
	if y1 > r.height-1 {
		y1 = r.height - 1
	}
	if x0 < 0 {
		x0 = 0
	}
	if x1 > r.width-1 {
		x1 = r.width - 1
	}

	for y := y0; y <= y1; y++ {
		dy := float64(y) - cy
		row := y * r.width * 3
		for x := x0; x <= x1; x++ {
			dx := float64(x) - cx
			d2 := dx*dx + dy*dy
			if d2 > glow2 {
				continue
			}

			var cr, cg, cb uint8
			switch {
			case pupilContains(dx, dy, pupilW, pupilH):
				cr, cg, cb = 0, 0, 0
			case d2 <= iris2:
				mult := r.irisMultiplier(math.Sqrt(d2) / iris)
				cr, cg, cb = scaleColor(p.R, p.G, p.B, mult)
			case d2 <= hiOuter2:
				cr = blend(hiR, glowR, alpha)
				cg = blend(hiG, glowG, alpha)
				cb = blend(hiB, glowB, alpha)
			default:
				cr, cg, cb = glowR, glowG, glowB
			}

			off := row + x*3
			r.rgb[off] = cr
			r.rgb[off+1] = cg
			r.rgb[off+2] = cb
		}
	}
	return r.rgb
}

// irisMultiplier maps normalized distance from the center (0..1) to a
// brightness multiplier: flat bright core, then a linear fade to the rim.
func (r *Renderer) irisMultiplier(dn float64) float64 {
	if dn <= r.look.GradientStart {
		return r.look.GradientCenter
	}
	t := (dn - r.look.GradientStart) / (1 - r.look.GradientStart)
	return r.look.GradientCenter + (r.look.GradientEdge-r.look.GradientCenter)*t
}

func pupilContains(dx, dy, w, h float64) bool {
	if w <= 0 || h <= 0 {
		return false
	}
	nx := dx / w
	ny := dy / h
	return nx*nx+ny*ny <= 1
}

func scaleColor(r, g, b uint8, mult float64) (uint8, uint8, uint8) {
	return scaleChannel(r, mult), scaleChannel(g, mult), scaleChannel(b, mult)
}

func scaleChannel(c uint8, mult float64) uint8 {
	v := float64(c) * mult
	if v > 255 {
		return 255
	}
	if v < 0 {
		return 0
	}
	return uint8(v)
}

func blend(over, under uint8, alpha float64) uint8 {
	v := float64(over)*alpha + float64(under)*(1-alpha)
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func clampf(v, lo, hi float64) float64 {
	if lo > hi {
		return (lo + hi) / 2
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
