package ndsprite

import (
	"image"
	"math"
)

// Pixels with alpha below this are transparent
const alphaThreshold = 128

// Nearest opaque palette entry to (r, g, b), first match wins on a tie
func (p *Palette) nearest(r, g, b uint8) uint8 {
	best := 1
	bestDist := math.MaxInt32
	for i := 1; i < PaletteSize; i++ {
		dr := int(r) - int(p[i].R)
		dg := int(g) - int(p[i].G)
		db := int(b) - int(p[i].B)
		if d := dr*dr + dg*dg + db*db; d < bestDist {
			best, bestDist = i, d
		}
	}
	return uint8(best)
}

// Classify maps every pixel of m to an index into p. Pixels with an alpha
// below 128 become index 0, everything else becomes the index of the nearest
// color among entries 1 to 15 by squared RGB distance. The result has its
// origin at (0, 0).
func Classify(m *image.NRGBA, p Palette) *image.Paletted {
	b := m.Bounds()
	pm := image.NewPaletted(image.Rect(0, 0, b.Dx(), b.Dy()), p.ColorPalette())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := m.NRGBAAt(x, y)
			if c.A < alphaThreshold {
				continue // Already zero
			}
			pm.SetColorIndex(x-b.Min.X, y-b.Min.Y, p.nearest(c.R, c.G, c.B))
		}
	}
	return pm
}
