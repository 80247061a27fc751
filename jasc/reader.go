package jasc

import (
	"bufio"
	"errors"
	"image/color"
	"io"
	"strconv"
	"strings"
)

var (
	errBadMagic   = errors.New("jasc: invalid magic")
	errBadVersion = errors.New("jasc: unsupported version")
	errBadCount   = errors.New("jasc: invalid color count")
	errBadColor   = errors.New("jasc: invalid color")
	errNotEnough  = errors.New("jasc: not enough colors")
)

// Maximum number of colors accepted by Decode
const maxColors = 256

type decoder struct {
	s *bufio.Scanner
}

func (d *decoder) line() (string, error) {
	if !d.s.Scan() {
		if err := d.s.Err(); err != nil {
			return "", err
		}
		return "", io.ErrUnexpectedEOF
	}
	return strings.TrimRight(d.s.Text(), "\r"), nil
}

func parseComponent(s string) (uint8, error) {
	v, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return 0, errBadColor
	}
	return uint8(v), nil
}

func (d *decoder) decode() (color.Palette, error) {
	if l, err := d.line(); err != nil {
		return nil, err
	} else if l != magic {
		return nil, errBadMagic
	}

	if l, err := d.line(); err != nil {
		return nil, err
	} else if l != version {
		return nil, errBadVersion
	}

	l, err := d.line()
	if err != nil {
		return nil, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(l))
	if err != nil || n < 1 || n > maxColors {
		return nil, errBadCount
	}

	p := make(color.Palette, n)
	for i := range p {
		l, err := d.line()
		if err != nil {
			if err == io.ErrUnexpectedEOF {
				return nil, errNotEnough
			}
			return nil, err
		}
		f := strings.Fields(l)
		if len(f) != 3 {
			return nil, errBadColor
		}
		var rgb [3]uint8
		for j := range rgb {
			if rgb[j], err = parseComponent(f[j]); err != nil {
				return nil, err
			}
		}
		p[i] = color.RGBA{rgb[0], rgb[1], rgb[2], 0xff}
	}

	return p, nil
}

// Decode reads a JASC-PAL palette from r. Lines may end with either CR+LF or
// a bare LF.
func Decode(r io.Reader) (color.Palette, error) {
	d := decoder{s: bufio.NewScanner(r)}
	p, err := d.decode()
	if err == io.ErrUnexpectedEOF {
		return nil, errNotEnough
	}
	return p, err
}
