package ndsprite

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testPalette() Palette {
	return newPalette([]color.RGBA{
		{255, 0, 0, 0xff},
		{0, 0, 255, 0xff},
		{255, 0, 0, 0xff}, // Duplicate, never chosen
		{200, 200, 200, 0xff},
	})
}

func TestClassify(t *testing.T) {
	p := testPalette()

	tables := []struct {
		name string
		c    color.NRGBA
		want uint8
	}{
		{"transparent", color.NRGBA{255, 0, 0, 0}, 0},
		{"almost opaque", color.NRGBA{255, 0, 0, 127}, 0},
		{"threshold", color.NRGBA{255, 0, 0, 128}, 1},
		{"blue", color.NRGBA{10, 10, 240, 0xff}, 2},
		{"tie goes to first", color.NRGBA{250, 0, 0, 0xff}, 1},
		{"light", color.NRGBA{220, 190, 210, 0xff}, 4},
		{"black padding", color.NRGBA{5, 5, 5, 0xff}, 5},
		{"sentinel never matched", color.NRGBA{0, 128, 0, 0xff}, 5},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			m := newImage(1, 1)
			m.SetNRGBA(0, 0, table.c)
			assert.Equal(t, table.want, Classify(m, p).ColorIndexAt(0, 0))
		})
	}
}

func TestClassifyImage(t *testing.T) {
	m := newImage(SheetWidth, SheetHeight)
	for y := 0; y < SheetHeight; y++ {
		for x := 0; x < SheetWidth; x++ {
			m.SetNRGBA(x, y, color.NRGBA{uint8(x), uint8(y * 3), uint8(x + y), uint8(x * y)})
		}
	}
	p := testPalette()

	pm := Classify(m, p)
	assert.Equal(t, image.Rect(0, 0, SheetWidth, SheetHeight), pm.Rect)
	assert.Equal(t, p.ColorPalette(), pm.Palette)
	assert.Equal(t, pm, Classify(m, p))

	for y := 0; y < SheetHeight; y++ {
		for x := 0; x < SheetWidth; x++ {
			i := pm.ColorIndexAt(x, y)
			assert.True(t, i < PaletteSize)
			if m.NRGBAAt(x, y).A < 128 {
				assert.Equal(t, uint8(0), i)
			} else {
				assert.NotEqual(t, uint8(0), i)
			}
		}
	}
}

func TestClassifyOffset(t *testing.T) {
	m := solid(4, 4, color.NRGBA{0, 0, 255, 0xff}).SubImage(image.Rect(2, 2, 4, 4)).(*image.NRGBA)

	pm := Classify(m, testPalette())
	assert.Equal(t, image.Rect(0, 0, 2, 2), pm.Rect)
	assert.Equal(t, []uint8{2, 2, 2, 2}, pm.Pix)
}
