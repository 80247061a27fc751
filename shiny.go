package ndsprite

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Hue is handled in turns rather than degrees
const (
	shinyHueShift   = 0.5
	shinySaturation = 1.2
)

// Scale a 0-1 channel back to 0-255, truncating
func truncate(f float64) uint8 {
	return uint8(math.Max(0, math.Min(255, f*255)))
}

// Hue of c in turns, measured against the distance of each channel from the
// maximum
func turns(c colorful.Color, v, chroma float64) float64 {
	if chroma == 0 {
		return 0
	}
	rc := (v - c.R) / chroma
	gc := (v - c.G) / chroma
	bc := (v - c.B) / chroma

	var h float64
	switch v {
	case c.R:
		h = bc - gc
	case c.G:
		h = 2 + rc - bc
	default:
		h = 4 + gc - rc
	}

	h = math.Mod(h/6, 1)
	if h < 0 {
		h++
	}
	return h
}

// Sector based conversion with h in turns. The explicit float64 conversions
// stop the products being fused into the following subtraction
func fromHsv(h, s, v float64) (r, g, b float64) {
	if s == 0 {
		return v, v, v
	}
	i := int(h * 6)
	f := float64(h*6) - float64(i)
	p := v * (1 - s)
	q := v * (1 - float64(s*f))
	t := v * (1 - float64(s*(1-f)))
	switch i % 6 {
	case 0:
		return v, t, p
	case 1:
		return q, v, p
	case 2:
		return p, v, t
	case 3:
		return p, q, v
	case 4:
		return t, p, v
	default:
		return v, p, q
	}
}

func rotate(c color.RGBA) color.RGBA {
	in := colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
	_, s, v := in.Hsv()
	h := turns(in, v, v-math.Min(math.Min(in.R, in.G), in.B))

	h = math.Mod(h+shinyHueShift, 1)
	s = math.Min(1, s*shinySaturation)

	r, g, b := fromHsv(h, s, v)
	return color.RGBA{truncate(r), truncate(g), truncate(b), 0xff}
}

// Shiny returns the shiny variant of p: every entry but the transparent one
// has its hue rotated half a turn and its saturation raised by a fifth.
func (p Palette) Shiny() Palette {
	shiny := p
	for i := 1; i < PaletteSize; i++ {
		shiny[i] = rotate(p[i])
	}
	return shiny
}
