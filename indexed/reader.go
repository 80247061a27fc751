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
	errNotEnough    = errors.New("indexed: not enough image data")
	errBadSignature = errors.New("indexed: invalid signature")
	errBadChecksum  = errors.New("indexed: invalid checksum")
	errBadHeader    = errors.New("indexed: unsupported header")
	errBadOrder     = errors.New("indexed: chunks out of order")
	errBadFilter    = errors.New("indexed: unsupported filter type")
	errBadPLTE      = errors.New("indexed: invalid palette chunk")
)

// Upper bound on any single chunk, well above anything this package writes
const maxChunkLength = 1 << 24

func readFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

func upperNibble(b byte) byte {
	return b & 0xf0
}

func lowerNibble(b byte) byte {
	return b & 0x0f
}

type decoder struct {
	r io.Reader

	width, height int

	image   *image.Paletted
	palette color.Palette
	idat    bytes.Buffer

	tmp [8]byte
}

func (d *decoder) readChunk() (string, []byte, error) {
	if err := readFull(d.r, d.tmp[:8]); err != nil {
		return "", nil, err
	}
	length := binary.BigEndian.Uint32(d.tmp[:4])
	if length > maxChunkLength {
		return "", nil, errBadHeader
	}
	name := string(d.tmp[4:8])

	b := make([]byte, length)
	if err := readFull(d.r, b); err != nil {
		return "", nil, err
	}

	crc := crc32.NewIEEE()
	crc.Write(d.tmp[4:8])
	crc.Write(b)

	if err := readFull(d.r, d.tmp[:4]); err != nil {
		return "", nil, err
	}
	if binary.BigEndian.Uint32(d.tmp[:4]) != crc.Sum32() {
		return "", nil, errBadChecksum
	}

	return name, b, nil
}

func (d *decoder) parseIHDR(b []byte) error {
	if len(b) != ihdrLength {
		return errBadHeader
	}
	w, h := binary.BigEndian.Uint32(b[0:4]), binary.BigEndian.Uint32(b[4:8])
	if w == 0 || h == 0 || w > maxChunkLength || h > maxChunkLength {
		return errBadHeader
	}
	if b[8] != bitDepth || b[9] != colorTypeIndexed || b[10] != 0 || b[11] != 0 || b[12] != 0 {
		return errBadHeader
	}
	d.width, d.height = int(w), int(h)
	return nil
}

func (d *decoder) parsePLTE(b []byte) error {
	if len(b) == 0 || len(b)%3 != 0 || len(b)/3 > colorsPerPalette {
		return errBadPLTE
	}
	d.palette = make(color.Palette, len(b)/3)
	for i := range d.palette {
		d.palette[i] = color.RGBA{b[3*i+0], b[3*i+1], b[3*i+2], 0xff}
	}
	return nil
}

func (d *decoder) readChunks(configOnly bool) error {
	name, b, err := d.readChunk()
	if err != nil {
		return err
	}
	if name != chunkIHDR {
		return errBadOrder
	}
	if err := d.parseIHDR(b); err != nil {
		return err
	}

	for {
		name, b, err := d.readChunk()
		if err != nil {
			return err
		}
		switch name {
		case chunkPLTE:
			if d.palette != nil || d.idat.Len() > 0 {
				return errBadOrder
			}
			if err := d.parsePLTE(b); err != nil {
				return err
			}
			if configOnly {
				return nil
			}
		case chunkIDAT:
			if d.palette == nil {
				return errBadOrder
			}
			d.idat.Write(b)
		case chunkIEND:
			if d.palette == nil || d.idat.Len() == 0 {
				return errBadOrder
			}
			return nil
		default:
			// Ancillary chunks are skipped, anything critical is not
			// understood
			if name[0]&0x20 == 0 {
				return errBadHeader
			}
		}
	}
}

func (d *decoder) readPixels() error {
	zr, err := zlib.NewReader(&d.idat)
	if err != nil {
		return err
	}
	defer zr.Close()

	d.image = image.NewPaletted(image.Rect(0, 0, d.width, d.height), d.palette)

	row := make([]byte, 1+rowBytes(d.width))
	for y := 0; y < d.height; y++ {
		if err := readFull(zr, row); err != nil {
			return err
		}
		if row[0] != filterNone {
			return errBadFilter
		}
		for x := 0; x < d.width; x++ {
			b := row[1+x>>1]
			i := lowerNibble(b)
			if x&1 == 0 {
				i = upperNibble(b) >> 4
			}
			if int(i) >= len(d.palette) {
				return errBadIndex
			}
			d.image.SetColorIndex(x, y, i)
		}
	}

	return nil
}

func (d *decoder) decode(r io.Reader, configOnly bool) error {
	d.r = r

	if err := readFull(d.r, d.tmp[:len(signature)]); err != nil {
		if err != io.ErrUnexpectedEOF {
			return err
		}
		return errNotEnough
	}
	if string(d.tmp[:len(signature)]) != signature {
		return errBadSignature
	}

	if err := d.readChunks(configOnly); err != nil {
		if err != io.ErrUnexpectedEOF {
			return err
		}
		return errNotEnough
	}

	if configOnly {
		return nil
	}

	if err := d.readPixels(); err != nil {
		if err != io.ErrUnexpectedEOF {
			return err
		}
		return errNotEnough
	}

	return nil
}

// Decode reads a 4-bit indexed PNG from r and returns it as an
// *image.Paletted.
func Decode(r io.Reader) (*image.Paletted, error) {
	var d decoder
	if err := d.decode(r, false); err != nil {
		return nil, err
	}
	return d.image, nil
}

// DecodeConfig returns the color model and dimensions of a 4-bit indexed PNG
// without decoding the pixel data.
func DecodeConfig(r io.Reader) (image.Config, error) {
	var d decoder
	if err := d.decode(r, true); err != nil {
		return image.Config{}, err
	}
	return image.Config{
		ColorModel: d.palette,
		Width:      d.width,
		Height:     d.height,
	}, nil
}
