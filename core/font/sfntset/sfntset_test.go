package sfntset

import (
	"testing"

	"github.com/npillmayer/basicshape/core"
	"github.com/npillmayer/basicshape/core/dimen"
	"github.com/npillmayer/basicshape/core/font"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func goSet(t *testing.T, xlfds ...string) *Set {
	set := New("Go", 12*dimen.BP)
	for _, xlfd := range xlfds {
		_, err := set.Add(font.FallbackFont(), xlfd)
		require.NoError(t, err)
	}
	return set
}

func TestListSubfontsOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "basicshape.fonts")
	defer teardown()
	//
	set := goSet(t, "iso10646-1", "iso8859-1", "ISO8859-5")
	subfonts, which := set.ListSubfonts([]string{"iso8859-1", "iso8859-2", "iso8859-5", "iso10646-1"})
	assert.Equal(t, []font.Subfont{2, 3, 1}, subfonts)
	assert.Equal(t, []int{0, 2, 3}, which)
	subfonts, which = set.ListSubfonts([]string{"koi8-r"})
	assert.Empty(t, subfonts)
	assert.Empty(t, which)
	assert.Equal(t, "iso8859-5", set.Charset(3).XLFD)
	assert.Nil(t, set.Charset(4))
}

func TestAddRejects(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "basicshape.fonts")
	defer teardown()
	//
	set := New("Go", 12*dimen.BP)
	_, err := set.Add(font.FallbackFont(), "adobe-fontspecific")
	assert.Equal(t, core.EMISSING, core.Code(err))
	_, err = set.Add(nil, "iso8859-1")
	assert.Equal(t, core.EINVALID, core.Code(err))
	assert.Equal(t, font.Glyph(0), set.UnknownGlyph(), "empty set has no unknown glyph")
}

func TestHasGlyph(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "basicshape.fonts")
	defer teardown()
	//
	set := goSet(t, "iso8859-1", "iso8859-5", "iso10646-1")
	assert.True(t, set.HasGlyph(font.MakeGlyph(1, 0xe9)), "é in Latin-1")
	assert.False(t, set.HasGlyph(font.MakeGlyph(1, 0x4e2d)), "index out of range for Latin-1")
	assert.True(t, set.HasGlyph(font.MakeGlyph(2, 0xb6)), "Ж in ISO-8859-5")
	assert.True(t, set.HasGlyph(font.MakeGlyph(3, 0x416)), "Ж in UCS-4")
	assert.False(t, set.HasGlyph(font.MakeGlyph(3, 0x4e2d)), "Go fonts have no CJK")
	assert.False(t, set.HasGlyph(font.MakeGlyph(4, 'A')), "no such subfont")
	assert.False(t, set.HasGlyph(0))
	assert.False(t, set.HasGlyph(set.UnknownGlyph()))
}

func TestGlyphExtents(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "basicshape.fonts")
	defer teardown()
	//
	set := Fallback(12 * dimen.BP)
	assert.Equal(t, 12*dimen.BP, set.Size())
	ink, logical := set.GlyphExtents(font.MakeGlyph(1, 'M'))
	assert.Greater(t, logical.Width, dimen.Zero)
	assert.Less(t, logical.Y, dimen.Zero, "ascent is above baseline")
	assert.Greater(t, ink.Width, dimen.Zero)
	assert.LessOrEqual(t, ink.Width, logical.Width+dimen.BP)
	assert.Less(t, ink.Y, dimen.Zero)
	//
	// same glyph through the universal subfont
	ink2, logical2 := set.GlyphExtents(font.MakeGlyph(2, 'M'))
	assert.Equal(t, ink, ink2)
	assert.Equal(t, logical, logical2)
	//
	_, notdef := set.GlyphExtents(set.UnknownGlyph())
	assert.Greater(t, notdef.Width, dimen.Zero, ".notdef is a visible box")
	ink, logical = set.GlyphExtents(0)
	assert.Equal(t, font.Rect{}, ink)
	assert.Equal(t, font.Rect{}, logical)
}

func TestExtentsScaleWithSize(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "basicshape.fonts")
	defer teardown()
	//
	_, small := Fallback(10 * dimen.BP).GlyphExtents(font.MakeGlyph(1, 'x'))
	_, large := Fallback(20 * dimen.BP).GlyphExtents(font.MakeGlyph(1, 'x'))
	assert.InDelta(t, 2*small.Width.Points(), large.Width.Points(), 0.1)
}
