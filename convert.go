package ndsprite

import (
	"crypto/sha1"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
)

// decodeFile decodes the image in file, hashing it as it's read
func decodeFile(file string) (image.Image, string, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	h := sha1.New()
	m, _, err := image.Decode(io.TeeReader(f, h))
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", file, err)
	}
	// Hash anything the decoder didn't need
	if _, err := io.Copy(h, f); err != nil {
		return nil, "", err
	}

	return m, fmt.Sprintf("%X", h.Sum(nil)), nil
}

func (c *Converter) palette(s Subject, frontSHA1, backSHA1 string, front, back *image.NRGBA) (Palette, error) {
	if c.cache != nil {
		p, err := c.cache.Find(s.Name, frontSHA1, backSHA1, c.method)
		switch {
		case err != nil:
			c.logger.Printf("Palette cache lookup for \"%s\" failed: %v\n", s.Name, err)
		case p != nil:
			c.logger.Printf("Reusing cached palette for \"%s\"\n", s.Name)
			return *p, nil
		}
	}

	p, err := BuildPalette(c.method, front, back)
	if err == nil || c.method == MedianCut {
		return p, err
	}
	c.logger.Printf("Palette for \"%s\" failed, falling back to %v: %v\n", s.Name, MedianCut, err)
	return BuildPalette(MedianCut, front, back)
}

// Convert processes a single subject, writing front.png, back.png,
// normal.pal and shiny.pal to its directory. Any error is a *SubjectError.
func (c *Converter) Convert(s Subject) error {
	c.logger.Printf("Processing \"%s\"\n", s.Name)

	front, frontSHA1, err := decodeFile(s.Front)
	if err != nil {
		return &SubjectError{s.Name, InputReadError, err}
	}
	back, backSHA1, err := decodeFile(s.Back)
	if err != nil {
		return &SubjectError{s.Name, InputReadError, err}
	}
	c.logger.Printf("Front is %v, back is %v\n", front.Bounds().Size(), back.Bounds().Size())

	fc, bc := Canvases(front, back)
	p, err := c.palette(s, frontSHA1, backSHA1, fc, bc)
	if err != nil {
		return &SubjectError{s.Name, EncodeError, err}
	}

	files, err := NewSprites(fc, bc, p).Encode()
	if err != nil {
		return &SubjectError{s.Name, EncodeError, err}
	}

	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return &SubjectError{s.Name, WriteError, err}
	}

	for _, f := range files {
		name := filepath.Join(s.Dir, f.Name)
		if err := writeFile(name, func(w io.Writer) error {
			_, err := w.Write(f.Data)
			return err
		}); err != nil {
			return &SubjectError{s.Name, WriteError, err}
		}
		c.logger.Printf("Wrote \"%s\"\n", name)
	}

	if c.cache != nil {
		if err := c.cache.Store(s.Name, frontSHA1, backSHA1, c.method, p); err != nil {
			c.logger.Printf("Unable to cache palette for \"%s\": %v\n", s.Name, err)
		}
	}

	return nil
}
