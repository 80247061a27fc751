/*
Package indexed implements a minimal 4-bit indexed PNG decoder and encoder.

Only the subset of PNG needed for Nintendo DS sprite assets is supported: an
8-bit IHDR declaring a bit depth of 4 and color type 3 (indexed), a PLTE chunk
of exactly 16 RGB entries, a single IDAT chunk and an empty IEND chunk. Every
scanline uses filter type 0 and packs two pixels per byte, the first pixel in
the high nibble. Any conforming PNG reader can decode the output.
*/
package indexed

const (
	colorsPerPalette = 16
	bitDepth         = 4
	colorTypeIndexed = 3
	ihdrLength       = 13
	filterNone       = 0
)

const signature = "\x89PNG\r\n\x1a\n"

const (
	chunkIHDR = "IHDR"
	chunkPLTE = "PLTE"
	chunkIDAT = "IDAT"
	chunkIEND = "IEND"
)

// rowBytes returns the number of packed pixel bytes in a scanline, not
// counting the leading filter byte.
func rowBytes(width int) int {
	return (width + 1) >> 1
}
