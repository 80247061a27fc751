package indexed

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPalette() color.Palette {
	p := make(color.Palette, colorsPerPalette)
	for i := range p {
		p[i] = color.RGBA{uint8(i * 16), uint8(255 - i*16), uint8(i * 7), 0xff}
	}
	return p
}

func testImage(w, h int) *image.Paletted {
	m := image.NewPaletted(image.Rect(0, 0, w, h), testPalette())
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			m.SetColorIndex(x, y, uint8((x*3+y*5)%colorsPerPalette))
		}
	}
	return m
}

func TestRoundTrip(t *testing.T) {
	tables := []struct {
		name string
		w, h int
	}{
		{"sheet", 160, 80},
		{"odd width", 7, 3},
		{"single pixel", 1, 1},
		{"tall", 2, 100},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			m := testImage(table.w, table.h)

			var b bytes.Buffer
			require.NoError(t, Encode(&b, m))

			d, err := Decode(bytes.NewReader(b.Bytes()))
			require.NoError(t, err)
			assert.Equal(t, m.Rect, d.Rect)
			assert.Equal(t, m.Palette, d.Palette)
			assert.Equal(t, m.Pix, d.Pix)

			// The standard library decoder must agree
			s, err := png.Decode(bytes.NewReader(b.Bytes()))
			require.NoError(t, err)
			pm, ok := s.(*image.Paletted)
			require.True(t, ok)
			assert.Equal(t, m.Rect, pm.Rect)
			assert.Equal(t, m.Palette, pm.Palette)
			assert.Equal(t, m.Pix, pm.Pix)
		})
	}
}

func TestStructure(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, Encode(&b, testImage(160, 80)))
	data := b.Bytes()

	assert.Equal(t, []byte(signature), data[:8])

	// Walk the chunks and check framing
	var names []string
	for off := 8; off < len(data); {
		length := int(binary.BigEndian.Uint32(data[off:]))
		name := string(data[off+4 : off+8])
		payload := data[off+8 : off+8+length]
		crc := binary.BigEndian.Uint32(data[off+8+length:])
		assert.Equal(t, crc32.ChecksumIEEE(data[off+4:off+8+length]), crc, name)

		switch name {
		case chunkIHDR:
			assert.Equal(t, []byte{0, 0, 0, 160, 0, 0, 0, 80, 4, 3, 0, 0, 0}, payload)
		case chunkPLTE:
			assert.Len(t, payload, 48)
			assert.Equal(t, []byte{0x10, 0xef, 0x07}, payload[3:6])
		case chunkIEND:
			assert.Len(t, payload, 0)
		}

		names = append(names, name)
		off += 12 + length
	}

	assert.Equal(t, []string{chunkIHDR, chunkPLTE, chunkIDAT, chunkIEND}, names)
}

func TestEncodeHeader(t *testing.T) {
	tables := []struct {
		name string
		w, h int
	}{
		{"sheet", 160, 80},
		{"canvas", 80, 80},
		{"wide", 300, 2},
		{"odd", 13, 7},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			var b bytes.Buffer
			require.NoError(t, Encode(&b, testImage(table.w, table.h)))
			data := b.Bytes()

			assert.Equal(t, uint32(ihdrLength), binary.BigEndian.Uint32(data[8:12]))
			assert.Equal(t, chunkIHDR, string(data[12:16]))
			assert.Equal(t, uint32(table.w), binary.BigEndian.Uint32(data[16:20]))
			assert.Equal(t, uint32(table.h), binary.BigEndian.Uint32(data[20:24]))

			c, err := png.DecodeConfig(bytes.NewReader(data))
			require.NoError(t, err)
			assert.Equal(t, table.w, c.Width)
			assert.Equal(t, table.h, c.Height)
		})
	}
}

func TestOddWidthPadding(t *testing.T) {
	m := image.NewPaletted(image.Rect(0, 0, 3, 1), testPalette())
	m.Pix = []uint8{0x1, 0x2, 0xf}

	var b bytes.Buffer
	require.NoError(t, Encode(&b, m))

	d, err := Decode(&b)
	require.NoError(t, err)
	assert.Equal(t, []uint8{0x1, 0x2, 0xf}, d.Pix)
}

func TestEncodeWithOffset(t *testing.T) {
	m := testImage(160, 80).SubImage(image.Rect(80, 0, 160, 80)).(*image.Paletted)

	var b bytes.Buffer
	require.NoError(t, Encode(&b, m))

	d, err := Decode(&b)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 80, 80), d.Rect)
	for y := 0; y < 80; y++ {
		for x := 0; x < 80; x++ {
			assert.Equal(t, m.ColorIndexAt(x+80, y), d.ColorIndexAt(x, y))
		}
	}
}

func TestEncodeErrors(t *testing.T) {
	short := image.NewPaletted(image.Rect(0, 0, 4, 4), testPalette()[:15])

	bad := testImage(4, 4)
	bad.Pix[5] = 16

	tables := []struct {
		name string
		m    image.Image
		err  error
	}{
		{"short palette", short, errBadPalette},
		{"index out of range", bad, errBadIndex},
		{"not paletted", image.NewNRGBA(image.Rect(0, 0, 4, 4)), errNotPaletted},
		{"empty", image.NewPaletted(image.Rect(0, 0, 0, 0), testPalette()), errEmpty},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			var b bytes.Buffer
			assert.Equal(t, table.err, Encode(&b, table.m))
		})
	}
}

func TestDecodeConfig(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, Encode(&b, testImage(160, 80)))

	c, err := DecodeConfig(&b)
	require.NoError(t, err)
	assert.Equal(t, 160, c.Width)
	assert.Equal(t, 80, c.Height)
	assert.Equal(t, testPalette(), c.ColorModel)
}

func TestDecodeErrors(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, Encode(&b, testImage(16, 16)))
	good := b.Bytes()

	corrupt := append([]byte(nil), good...)
	corrupt[20]++ // Inside the IHDR payload

	badSig := append([]byte(nil), good...)
	badSig[0] = 0

	tables := []struct {
		name string
		data []byte
		err  error
	}{
		{"truncated", good[:len(good)-6], errNotEnough},
		{"checksum", corrupt, errBadChecksum},
		{"signature", badSig, errBadSignature},
		{"empty", nil, errNotEnough},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			_, err := Decode(bytes.NewReader(table.data))
			assert.Equal(t, table.err, err)
		})
	}
}
