package ndsprite

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// PaletteSize is the number of entries in every palette.
const PaletteSize = 16

// Transparent is the color stored at index 0 of every palette. It only marks
// the slot as transparent and is never matched against pixels.
var Transparent = color.RGBA{0, 128, 0, 0xff}

// Any quantized color that collides with Transparent is nudged to this
var transparentAlias = color.RGBA{0, 127, 0, 0xff}

var black = color.RGBA{0, 0, 0, 0xff}

var errPaletteLength = errors.New("ndsprite: palette must be 48 bytes")

// Palette is a fixed 16 entry RGB palette. Entry 0 is reserved for
// transparency and is Transparent in any palette built by BuildPalette.
type Palette [PaletteSize]color.RGBA

// NewPalette converts a 16 color color.Palette to a Palette. Entry 0 is
// taken as is.
func NewPalette(cp color.Palette) (Palette, error) {
	var p Palette
	if len(cp) != PaletteSize {
		return p, fmt.Errorf("ndsprite: palette has %d colors, expected %d", len(cp), PaletteSize)
	}
	for i, c := range cp {
		p[i] = color.RGBAModel.Convert(c).(color.RGBA)
		p[i].A = 0xff
	}
	return p, nil
}

// ColorPalette returns p as a color.Palette.
func (p Palette) ColorPalette() color.Palette {
	cp := make(color.Palette, len(p))
	for i, c := range p {
		cp[i] = c
	}
	return cp
}

// MarshalBinary encodes p as 16 consecutive R, G, B triplets.
func (p Palette) MarshalBinary() ([]byte, error) {
	b := make([]byte, 0, 3*PaletteSize)
	for _, c := range p {
		b = append(b, c.R, c.G, c.B)
	}
	return b, nil
}

// UnmarshalBinary decodes p from the form written by MarshalBinary.
func (p *Palette) UnmarshalBinary(b []byte) error {
	if len(b) != 3*PaletteSize {
		return errPaletteLength
	}
	for i := range p {
		p[i] = color.RGBA{b[3*i+0], b[3*i+1], b[3*i+2], 0xff}
	}
	return nil
}

// Build the final palette from up to 15 quantized colors
func newPalette(colors []color.RGBA) Palette {
	var p Palette
	p[0] = Transparent
	for i := 1; i < PaletteSize; i++ {
		c := black
		if i-1 < len(colors) {
			c = colors[i-1]
			c.A = 0xff
			if c == Transparent {
				c = transparentAlias
			}
		}
		p[i] = c
	}
	return p
}

// opaquePixels collects the color of every pixel with an alpha of at least
// 128, in row-major order, image by image.
func opaquePixels(images ...*image.NRGBA) []color.RGBA {
	var colors []color.RGBA
	for _, m := range images {
		b := m.Bounds()
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				c := m.NRGBAAt(x, y)
				if c.A >= alphaThreshold {
					colors = append(colors, color.RGBA{c.R, c.G, c.B, 0xff})
				}
			}
		}
	}
	return colors
}

// BuildPalette quantizes the opaque pixels of both images into a shared
// palette using the given method. If neither image has any opaque pixels the
// palette is Transparent followed by 15 black entries. An error is returned
// if the method cannot produce any colors.
func BuildPalette(method PaletteMethod, a, b *image.NRGBA) (Palette, error) {
	colors := opaquePixels(a, b)
	if len(colors) == 0 {
		return newPalette(nil), nil
	}
	q, err := method.quantize(colors, PaletteSize-1)
	if err != nil {
		return Palette{}, err
	}
	return newPalette(q), nil
}
