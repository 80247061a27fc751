package ndsprite

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"slices"

	"github.com/cenkalti/dominantcolor"
	"github.com/ericpauley/go-quantize/quantize"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
)

// PaletteMethod selects the color quantizer used by BuildPalette.
type PaletteMethod int

const (
	// MedianCut averages median cut buckets. It is deterministic.
	MedianCut PaletteMethod = iota
	// KMeans clusters colors with k-means. Results vary between runs.
	KMeans
	// DominantColor picks the most dominant colors.
	DominantColor
)

var methodNames = map[PaletteMethod]string{
	MedianCut:     "mediancut",
	KMeans:        "kmeans",
	DominantColor: "dominantcolor",
}

func (m PaletteMethod) String() string {
	if s, ok := methodNames[m]; ok {
		return s
	}
	return fmt.Sprintf("PaletteMethod(%d)", int(m))
}

// ParsePaletteMethod returns the PaletteMethod named s.
func ParsePaletteMethod(s string) (PaletteMethod, error) {
	for m, name := range methodNames {
		if name == s {
			return m, nil
		}
	}
	return MedianCut, fmt.Errorf("unknown palette method %q", s)
}

var errNoColors = errors.New("no colors found")

// quantize reduces colors to no more than k representative colors
func (m PaletteMethod) quantize(colors []color.RGBA, k int) ([]color.RGBA, error) {
	var (
		p   []color.RGBA
		err error
	)
	switch m {
	case MedianCut:
		p = medianCutColors(colors, k)
	case KMeans:
		p, err = kmeansColors(colors, k)
	case DominantColor:
		p = dominantColors(colors, k)
	default:
		return nil, fmt.Errorf("unknown palette method %v", m)
	}
	if err != nil {
		return nil, fmt.Errorf("%v: %w", m, err)
	}
	if len(p) == 0 {
		return nil, fmt.Errorf("%v: %w", m, errNoColors)
	}
	return p, nil
}

func toRGBA(p color.Palette) []color.RGBA {
	out := make([]color.RGBA, 0, len(p))
	for _, c := range p {
		rgba := color.RGBAModel.Convert(c).(color.RGBA)
		rgba.A = 0xff
		out = append(out, rgba)
	}
	return out
}

// Lay the colors out as a single row so the quantizer sees every pixel once
func strip(colors []color.RGBA) *image.RGBA {
	m := image.NewRGBA(image.Rect(0, 0, len(colors), 1))
	for i, c := range colors {
		m.SetRGBA(i, 0, c)
	}
	return m
}

func medianCutColors(colors []color.RGBA, k int) []color.RGBA {
	if n := distinct(colors); n < k {
		k = n
	}
	q := quantize.MedianCutQuantizer{Aggregation: quantize.Mean}
	return toRGBA(q.Quantize(make(color.Palette, 0, k), strip(colors)))
}

func distinct(colors []color.RGBA) int {
	seen := make(map[color.RGBA]struct{})
	for _, c := range colors {
		seen[c] = struct{}{}
	}
	return len(seen)
}

func clamp(f float64) uint8 {
	return uint8(math.Max(0, math.Min(255, math.Round(f))))
}

func kmeansColors(colors []color.RGBA, k int) ([]color.RGBA, error) {
	if n := distinct(colors); n < k {
		k = n
	}

	dataset := make(clusters.Observations, 0, len(colors))
	for _, c := range colors {
		dataset = append(dataset, clusters.Coordinates{
			float64(c.R) / 255,
			float64(c.G) / 255,
			float64(c.B) / 255,
		})
	}

	cc, err := kmeans.New().Partition(dataset, k)
	if err != nil {
		return nil, err
	}

	// Most populated clusters first
	slices.SortStableFunc(cc, func(a, b clusters.Cluster) int {
		return len(b.Observations) - len(a.Observations)
	})

	out := make([]color.RGBA, 0, len(cc))
	for _, c := range cc {
		if len(c.Observations) == 0 || len(c.Center) < 3 {
			continue
		}
		out = append(out, color.RGBA{clamp(c.Center[0] * 255), clamp(c.Center[1] * 255), clamp(c.Center[2] * 255), 0xff})
	}
	return out, nil
}

// Pack the colors into a roughly square image. The rest of the last row is
// left fully transparent, which dominantcolor ignores
func square(colors []color.RGBA) *image.RGBA {
	w := int(math.Ceil(math.Sqrt(float64(len(colors)))))
	h := (len(colors) + w - 1) / w
	m := image.NewRGBA(image.Rect(0, 0, w, h))
	for i, c := range colors {
		m.SetRGBA(i%w, i/w, c)
	}
	return m
}

func dominantColors(colors []color.RGBA, k int) []color.RGBA {
	found := dominantcolor.FindWeight(square(colors), k)

	out := make([]color.RGBA, 0, len(found))
	for _, c := range found {
		rgba := c.RGBA
		rgba.A = 0xff
		out = append(out, rgba)
	}
	if len(out) > k {
		out = out[:k]
	}
	return out
}
