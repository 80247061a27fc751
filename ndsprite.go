/*
Package ndsprite is a library for normalizing sprite images into the 4-bit
indexed assets expected by Nintendo DS Pokémon projects.

Each subject has a front and a back image of arbitrary layout. A single 64 by
64 pose is extracted from each, placed in an 80 by 80 frame and duplicated
into a 160 by 80 two frame sheet. Both sheets share one 16 color palette where
index 0 is reserved for transparency, and a hue shifted "shiny" palette is
derived from it.
*/
package ndsprite

import "log"

// Converter processes subjects, writing the four output files for each.
type Converter struct {
	cache  *PaletteCache
	method PaletteMethod
	logger *log.Logger
}

// New returns a Converter using the given palette method. The cache is
// optional and may be nil.
func New(cache *PaletteCache, method PaletteMethod, logger *log.Logger) *Converter {
	return &Converter{
		cache:  cache,
		method: method,
		logger: logger,
	}
}
