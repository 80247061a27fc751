package ndsprite

import (
	"image"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"
)

const (
	// FrameSize is the width and height of an extracted pose.
	FrameSize = 64

	stripWidth = 4 * FrameSize
	largeSize  = 160
)

// toNRGBA returns a copy of m as an *image.NRGBA with its origin at (0, 0)
func toNRGBA(m image.Image) *image.NRGBA {
	b := m.Bounds()
	dup := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dup, dup.Bounds(), m, b.Min, draw.Src)
	return dup
}

func crop(m *image.NRGBA, r image.Rectangle) *image.NRGBA {
	dup := image.NewNRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(dup, dup.Bounds(), m, r.Min, draw.Src)
	return dup
}

func scale(m *image.NRGBA, w, h int) *image.NRGBA {
	dup := image.NewNRGBA(image.Rect(0, 0, w, h))
	xdraw.NearestNeighbor.Scale(dup, dup.Bounds(), m, m.Bounds(), draw.Src, nil)
	return dup
}

// alphaBounds returns the smallest rectangle holding every pixel with a
// non-zero alpha, or false if there are none
func alphaBounds(m *image.NRGBA) (image.Rectangle, bool) {
	b := m.Bounds()
	r := image.Rectangle{Min: b.Max, Max: b.Min}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if m.NRGBAAt(x, y).A == 0 {
				continue
			}
			r.Min.X = min(r.Min.X, x)
			r.Min.Y = min(r.Min.Y, y)
			r.Max.X = max(r.Max.X, x+1)
			r.Max.Y = max(r.Max.Y, y+1)
		}
	}
	return r, !r.Empty()
}

// roundAspect picks whichever of floor(n) and ceil(n) minimizes cost,
// never going below 1
func roundAspect(n float64, cost func(int) float64) int {
	lo, hi := int(math.Floor(n)), int(math.Ceil(n))
	v := lo
	if cost(hi) < cost(lo) {
		v = hi
	}
	return max(v, 1)
}

// thumbnailSize shrinks (w, h) to fit within limit by limit keeping the
// aspect ratio. Sizes that already fit are returned unchanged.
func thumbnailSize(w, h, limit int) (int, int) {
	if w <= limit && h <= limit {
		return w, h
	}

	x, y := limit, limit

	aspect := float64(w) / float64(h)
	if float64(x)/float64(y) >= aspect {
		x = roundAspect(float64(y)*aspect, func(n int) float64 {
			return math.Abs(aspect - float64(n)/float64(y))
		})
	} else {
		y = roundAspect(float64(x)/aspect, func(n int) float64 {
			if n == 0 {
				return 0
			}
			return math.Abs(aspect - float64(x)/float64(n))
		})
	}
	return x, y
}

// fitContent crops m to r, shrinks it to fit in a frame and places it
// horizontally centered and bottom aligned on a transparent frame
func fitContent(m *image.NRGBA, r image.Rectangle) *image.NRGBA {
	content := crop(m, r)
	if w, h := thumbnailSize(r.Dx(), r.Dy(), FrameSize); w != r.Dx() || h != r.Dy() {
		content = scale(content, w, h)
	}

	frame := image.NewNRGBA(image.Rect(0, 0, FrameSize, FrameSize))
	cb := content.Bounds()
	dp := image.Pt((FrameSize-cb.Dx())/2, FrameSize-cb.Dy())
	draw.Draw(frame, cb.Add(dp), content, image.Point{}, draw.Src)
	return frame
}

func centerCrop(m *image.NRGBA) *image.NRGBA {
	b := m.Bounds()
	c := image.Pt(b.Dx()/2, b.Dy()/2)
	return crop(m, image.Rect(c.X-FrameSize/2, c.Y-FrameSize/2, c.X+FrameSize/2, c.Y+FrameSize/2))
}

// ExtractFront returns the primary 64 by 64 pose from a front sprite.
//
// A 256 by 64 image is a four frame strip and the leftmost frame is used. A
// 160 by 160 image is cropped to its visible content and shrunk to fit, or
// center cropped if it is fully transparent. Any other image at least 64
// pixels in both dimensions is center cropped and anything smaller is scaled
// up.
func ExtractFront(m image.Image) *image.NRGBA {
	src := toNRGBA(m)
	b := src.Bounds()

	switch {
	case b.Dx() == stripWidth && b.Dy() == FrameSize:
		return crop(src, image.Rect(0, 0, FrameSize, FrameSize))
	case b.Dx() == largeSize && b.Dy() == largeSize:
		if r, ok := alphaBounds(src); ok {
			return fitContent(src, r)
		}
		return centerCrop(src)
	case b.Dx() >= FrameSize && b.Dy() >= FrameSize:
		return centerCrop(src)
	default:
		return scale(src, FrameSize, FrameSize)
	}
}

// ExtractBack returns the 64 by 64 pose from a back sprite of any size. The
// visible content is cropped and shrunk to fit; a fully transparent image is
// scaled to size as a whole.
func ExtractBack(m image.Image) *image.NRGBA {
	src := toNRGBA(m)
	if r, ok := alphaBounds(src); ok {
		return fitContent(src, r)
	}
	return scale(src, FrameSize, FrameSize)
}
