package ndsprite

import (
	"image"
	"image/draw"
)

const (
	// CanvasSize is the width and height of a single sheet frame.
	CanvasSize = 80

	// SheetWidth and SheetHeight are the dimensions of the two frame sheet.
	SheetWidth  = 2 * CanvasSize
	SheetHeight = CanvasSize
)

// paste draws src over dst at p using the alpha of src as the mask
func paste(dst *image.NRGBA, src *image.NRGBA, p image.Point) {
	sb := src.Bounds()
	draw.DrawMask(dst, sb.Sub(sb.Min).Add(p), src, sb.Min, src, sb.Min, draw.Over)
}

// PlaceInCanvas places a 64 by 64 frame on a transparent 80 by 80 canvas,
// horizontally centered and flush with the bottom edge.
func PlaceInCanvas(frame *image.NRGBA) *image.NRGBA {
	canvas := image.NewNRGBA(image.Rect(0, 0, CanvasSize, CanvasSize))
	paste(canvas, frame, image.Pt((CanvasSize-FrameSize)/2, CanvasSize-FrameSize))
	return canvas
}

// BuildSheet duplicates an 80 by 80 canvas into both frames of a 160 by 80
// sheet.
func BuildSheet(canvas *image.NRGBA) *image.NRGBA {
	sheet := image.NewNRGBA(image.Rect(0, 0, SheetWidth, SheetHeight))
	paste(sheet, canvas, image.Pt(0, 0))
	paste(sheet, canvas, image.Pt(CanvasSize, 0))
	return sheet
}
