package basic

import (
	"strings"

	"github.com/npillmayer/basicshape/core/dimen"
	"github.com/npillmayer/basicshape/core/font"
)

// fakeFont is an in-memory font with glyphs placed explicitly per subfont.
type fakeFont struct {
	charsets  []string // subfont h has charset charsets[h-1]
	glyphs    map[font.Glyph]extents
	listCalls int
}

type extents struct {
	ink, logical font.Rect
}

const unknownWidth = 5 * dimen.BP

var _ font.Font = (*fakeFont)(nil)

func newFakeFont(charsets ...string) *fakeFont {
	return &fakeFont{
		charsets: charsets,
		glyphs:   make(map[font.Glyph]extents),
	}
}

// add places spacing glyphs for a range of indices into a subfont.
func (f *fakeFont) add(sf font.Subfont, from, to uint32, width dimen.Dimen) *fakeFont {
	for index := from; index <= to; index++ {
		f.glyphs[font.MakeGlyph(sf, index)] = extents{
			ink:     font.Rect{X: dimen.BP, Y: -7 * dimen.BP, Width: width - 2*dimen.BP, Height: 7 * dimen.BP},
			logical: font.Rect{Y: -8 * dimen.BP, Width: width, Height: 10 * dimen.BP},
		}
	}
	return f
}

// addMark places a combining mark glyph with explicit extents.
func (f *fakeFont) addMark(sf font.Subfont, index uint32, ink font.Rect, logicalWidth dimen.Dimen) *fakeFont {
	f.glyphs[font.MakeGlyph(sf, index)] = extents{
		ink:     ink,
		logical: font.Rect{Y: -8 * dimen.BP, Width: logicalWidth, Height: 10 * dimen.BP},
	}
	return f
}

func (f *fakeFont) ListSubfonts(charsets []string) (subfonts []font.Subfont, which []int) {
	f.listCalls++
	for i, name := range charsets {
		for j, cs := range f.charsets {
			if strings.EqualFold(cs, name) {
				subfonts = append(subfonts, font.Subfont(j+1))
				which = append(which, i)
			}
		}
	}
	return
}

func (f *fakeFont) HasGlyph(g font.Glyph) bool {
	_, ok := f.glyphs[g]
	return ok
}

func (f *fakeFont) GlyphExtents(g font.Glyph) (ink, logical font.Rect) {
	if g == f.UnknownGlyph() {
		return font.Rect{Width: unknownWidth}, font.Rect{Width: unknownWidth}
	}
	e := f.glyphs[g]
	return e.ink, e.logical
}

func (f *fakeFont) UnknownGlyph() font.Glyph {
	return font.MakeGlyph(1, 1<<21-1)
}
