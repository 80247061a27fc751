/*
Package jasc implements a decoder and encoder for JASC-PAL palette files as
used by Paint Shop Pro and most Nintendo DS asset pipelines.

The file is plain ASCII with CR+LF line endings: a "JASC-PAL" magic line, a
"0100" version line, the number of colors and then one "R G B" line of
decimal components per color.
*/
package jasc

const (
	magic   = "JASC-PAL"
	version = "0100"
	newline = "\r\n"
)
