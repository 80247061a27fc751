package ndsprite

import (
	"bytes"
	"image"

	"github.com/bodgit/ndsprite/indexed"
	"github.com/bodgit/ndsprite/jasc"
)

// Output filenames written for every subject
const (
	FrontFilename  = "front.png"
	BackFilename   = "back.png"
	NormalFilename = "normal.pal"
	ShinyFilename  = "shiny.pal"
)

// Sprites holds the converted front and back sheets of one subject along with
// the palettes they share.
type Sprites struct {
	Front, Back   *image.Paletted
	Normal, Shiny Palette
}

// File is a single encoded output.
type File struct {
	Name string
	Data []byte
}

// Canvases extracts the front and back poses and places each on its own 80
// by 80 canvas.
func Canvases(front, back image.Image) (*image.NRGBA, *image.NRGBA) {
	return PlaceInCanvas(ExtractFront(front)), PlaceInCanvas(ExtractBack(back))
}

// NewSprites builds both sheets from the front and back canvases and maps
// them onto p.
func NewSprites(front, back *image.NRGBA, p Palette) *Sprites {
	return &Sprites{
		Front:  Classify(BuildSheet(front), p),
		Back:   Classify(BuildSheet(back), p),
		Normal: p,
		Shiny:  p.Shiny(),
	}
}

// Encode returns the four output files in the order front, back, normal
// palette and shiny palette.
func (s *Sprites) Encode() ([]File, error) {
	files := make([]File, 0, 4)

	for _, sheet := range []struct {
		name string
		m    *image.Paletted
	}{
		{FrontFilename, s.Front},
		{BackFilename, s.Back},
	} {
		b := new(bytes.Buffer)
		if err := indexed.Encode(b, sheet.m); err != nil {
			return nil, err
		}
		files = append(files, File{sheet.name, b.Bytes()})
	}

	for _, pal := range []struct {
		name string
		p    Palette
	}{
		{NormalFilename, s.Normal},
		{ShinyFilename, s.Shiny},
	} {
		b := new(bytes.Buffer)
		if err := jasc.Encode(b, pal.p.ColorPalette()); err != nil {
			return nil, err
		}
		files = append(files, File{pal.name, b.Bytes()})
	}

	return files, nil
}
