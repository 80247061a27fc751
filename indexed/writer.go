package indexed

import (
	"bytes"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"image"
	"image/color"
	"io"

	"github.com/klauspost/compress/zlib"
)

var (
	errNotPaletted = errors.New("indexed: image has no palette")
	errBadPalette  = errors.New("indexed: palette must have exactly 16 colors")
	errBadIndex    = errors.New("indexed: pixel index out of range")
	errEmpty       = errors.New("indexed: image is empty")
)

type encoder struct {
	w   io.Writer
	m   *image.Paletted
	hdr [8]byte
	tmp [ihdrLength]byte
}

// Each chunk is the payload length, the type, the payload and finally a
// CRC-32 over the type and payload. b must not alias e.hdr
func (e *encoder) writeChunk(b []byte, name string) error {
	binary.BigEndian.PutUint32(e.hdr[:4], uint32(len(b)))
	copy(e.hdr[4:8], name)

	crc := crc32.NewIEEE()
	crc.Write(e.hdr[4:8])
	crc.Write(b)

	if _, err := e.w.Write(e.hdr[:8]); err != nil {
		return err
	}
	if _, err := e.w.Write(b); err != nil {
		return err
	}

	binary.BigEndian.PutUint32(e.hdr[:4], crc.Sum32())
	_, err := e.w.Write(e.hdr[:4])
	return err
}

func (e *encoder) writeIHDR() error {
	b := e.m.Bounds()
	binary.BigEndian.PutUint32(e.tmp[0:4], uint32(b.Dx()))
	binary.BigEndian.PutUint32(e.tmp[4:8], uint32(b.Dy()))
	e.tmp[8] = bitDepth
	e.tmp[9] = colorTypeIndexed
	e.tmp[10] = 0 // compression
	e.tmp[11] = 0 // filter
	e.tmp[12] = 0 // interlace
	return e.writeChunk(e.tmp[:ihdrLength], chunkIHDR)
}

func (e *encoder) writePLTE() error {
	var plte [3 * colorsPerPalette]byte
	for i, c := range e.m.Palette {
		rgba := color.RGBAModel.Convert(c).(color.RGBA)
		plte[3*i+0] = rgba.R
		plte[3*i+1] = rgba.G
		plte[3*i+2] = rgba.B
	}
	return e.writeChunk(plte[:], chunkPLTE)
}

func (e *encoder) writeIDAT() error {
	b := e.m.Bounds()
	n := rowBytes(b.Dx())

	raw := make([]byte, 0, (n+1)*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		raw = append(raw, filterNone)
		for x := b.Min.X; x < b.Max.X; x += 2 {
			hi := e.m.ColorIndexAt(x, y) & 0x0f
			var lo byte
			// Odd widths leave the final low nibble as zero
			if x+1 < b.Max.X {
				lo = e.m.ColorIndexAt(x+1, y) & 0x0f
			}
			raw = append(raw, hi<<4|lo)
		}
	}

	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write(raw); err != nil {
		return err
	}
	if err := zw.Close(); err != nil {
		return err
	}

	return e.writeChunk(buf.Bytes(), chunkIDAT)
}

func (e *encoder) encode() error {
	if _, err := io.WriteString(e.w, signature); err != nil {
		return err
	}
	if err := e.writeIHDR(); err != nil {
		return err
	}
	if err := e.writePLTE(); err != nil {
		return err
	}
	if err := e.writeIDAT(); err != nil {
		return err
	}
	return e.writeChunk(nil, chunkIEND)
}

func validate(m *image.Paletted) error {
	if m.Bounds().Empty() {
		return errEmpty
	}
	if len(m.Palette) != colorsPerPalette {
		return errBadPalette
	}
	b := m.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if m.ColorIndexAt(x, y) >= colorsPerPalette {
				return errBadIndex
			}
		}
	}
	return nil
}

// Encode writes the Image m to w as a 4-bit indexed PNG. The image must
// either be an *image.Paletted or use a color.Palette as its color model, and
// the palette must hold exactly 16 colors.
func Encode(w io.Writer, m image.Image) error {
	pm, _ := m.(*image.Paletted)
	if pm == nil {
		cp, ok := m.ColorModel().(color.Palette)
		if !ok {
			return errNotPaletted
		}
		b := m.Bounds()
		pm = image.NewPaletted(b, cp)
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				pm.SetColorIndex(x, y, uint8(cp.Index(m.At(x, y))))
			}
		}
	}

	if err := validate(pm); err != nil {
		return err
	}

	e := encoder{w: w, m: pm}

	return e.encode()
}
