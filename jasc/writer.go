package jasc

import (
	"bufio"
	"errors"
	"image/color"
	"io"
	"strconv"
)

var errNoColors = errors.New("jasc: palette is empty")

// Encode writes the palette p to w in JASC-PAL format. Any alpha is
// discarded.
func Encode(w io.Writer, p color.Palette) error {
	if len(p) == 0 {
		return errNoColors
	}

	bw := bufio.NewWriter(w)
	for _, s := range []string{magic, version, strconv.Itoa(len(p))} {
		bw.WriteString(s)
		bw.WriteString(newline)
	}

	var tmp []byte
	for _, c := range p {
		rgba := color.RGBAModel.Convert(c).(color.RGBA)
		tmp = strconv.AppendUint(tmp[:0], uint64(rgba.R), 10)
		tmp = append(tmp, ' ')
		tmp = strconv.AppendUint(tmp, uint64(rgba.G), 10)
		tmp = append(tmp, ' ')
		tmp = strconv.AppendUint(tmp, uint64(rgba.B), 10)
		tmp = append(tmp, newline...)
		bw.Write(tmp)
	}

	return bw.Flush()
}
