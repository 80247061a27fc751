package ndsprite

import (
	"image/color"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaletteCache(t *testing.T) {
	file := filepath.Join(t.TempDir(), "cache.db")

	cache, err := NewPaletteCache(file)
	require.NoError(t, err)

	p, err := cache.Find("gengar", "AA", "BB", MedianCut)
	require.NoError(t, err)
	assert.Nil(t, p)

	want := newPalette([]color.RGBA{{1, 2, 3, 0xff}})
	require.NoError(t, cache.Store("gengar", "AA", "BB", MedianCut, want))

	p, err = cache.Find("gengar", "AA", "BB", MedianCut)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, want, *p)

	for _, miss := range []struct {
		front, back string
		method      PaletteMethod
	}{
		{"AB", "BB", MedianCut},
		{"AA", "BC", MedianCut},
		{"AA", "BB", KMeans},
	} {
		p, err := cache.Find("gengar", miss.front, miss.back, miss.method)
		require.NoError(t, err)
		assert.Nil(t, p)
	}

	// Replaces rather than adds
	require.NoError(t, cache.Store("gengar", "CC", "DD", KMeans, newPalette(nil)))
	p, err = cache.Find("gengar", "AA", "BB", MedianCut)
	require.NoError(t, err)
	assert.Nil(t, p)

	require.NoError(t, cache.Close())

	// Survives reopening
	cache, err = NewPaletteCache(file)
	require.NoError(t, err)
	defer cache.Close()

	p, err = cache.Find("gengar", "CC", "DD", KMeans)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, newPalette(nil), *p)
}
