package ndsprite

import (
	"image"
	"image/color"
	"image/draw"
)

var (
	red   = color.NRGBA{255, 0, 0, 0xff}
	green = color.NRGBA{0, 255, 0, 0xff}
	blue  = color.NRGBA{0, 0, 255, 0xff}
)

func fill(m draw.Image, r image.Rectangle, c color.Color) {
	draw.Draw(m, r, image.NewUniform(c), image.Point{}, draw.Src)
}

func newImage(w, h int) *image.NRGBA {
	return image.NewNRGBA(image.Rect(0, 0, w, h))
}

func circle(m *image.NRGBA, cx, cy, r int, c color.NRGBA) {
	for y := cy - r; y < cy+r; y++ {
		for x := cx - r; x < cx+r; x++ {
			dx, dy := 2*(x-cx)+1, 2*(y-cy)+1
			if dx*dx+dy*dy <= 4*r*r {
				m.SetNRGBA(x, y, c)
			}
		}
	}
}

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	m := newImage(w, h)
	fill(m, m.Bounds(), c)
	return m
}
