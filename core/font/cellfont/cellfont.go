/*
Package cellfont implements a font backend for character-cell output devices,
such as terminals.

Every glyph occupies a whole number of cells. The number of cells for a
character is determined from its East Asian Width property (UAX #11): wide
characters occupy two cells, all others one cell, non-spacing marks none.
A cell font has a single subfont for the universal charset, and every
graphic character of Unicode has a glyph.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package cellfont

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/npillmayer/basicshape/core/charset"
	"github.com/npillmayer/basicshape/core/dimen"
	"github.com/npillmayer/basicshape/core/font"
	"github.com/npillmayer/basicshape/core/unidata"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/uax11"
)

// tracer traces with key 'basicshape.fonts'.
func tracer() tracing.Trace {
	return tracing.Select("basicshape.fonts")
}

// Font is a character-cell font. It implements font.Font.
type Font struct {
	cell    dimen.Dimen
	height  dimen.Dimen
	context *uax11.Context
}

var _ font.Font = (*Font)(nil)

const subfont font.Subfont = 1

// New creates a cell font with a given cell width. If cell is zero, it will
// be set to 10pt. Context decides about the width of ambiguous characters;
// if it is nil, a Latin context is assumed.
func New(cell dimen.Dimen, context *uax11.Context) *Font {
	if cell == 0 {
		cell = 10 * dimen.PT
	}
	if context == nil {
		context = uax11.LatinContext
	}
	grapheme.SetupGraphemeClasses()
	return &Font{
		cell:    cell,
		height:  cell * 2,
		context: context,
	}
}

// Cells returns the number of cells a character occupies.
func (f *Font) Cells(r rune) int {
	if unidata.IsNonSpacingMark(r) {
		return 0
	}
	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], r)
	w := uax11.Width(buf[:n], f.context)
	if w < 1 {
		return 1
	}
	if w > 2 {
		return 2
	}
	return w
}

// ListSubfonts is part of interface font.Font. A cell font has a single
// subfont, for the universal charset.
func (f *Font) ListSubfonts(charsets []string) (subfonts []font.Subfont, which []int) {
	for i, name := range charsets {
		if strings.EqualFold(name, charset.Universal.XLFD) {
			subfonts = append(subfonts, subfont)
			which = append(which, i)
		}
	}
	return
}

func (f *Font) char(g font.Glyph) (rune, bool) {
	if g.Subfont() != subfont {
		return 0, false
	}
	r := rune(g.Index())
	return r, utf8.ValidRune(r) && unicode.IsGraphic(r)
}

// HasGlyph is part of interface font.Font.
func (f *Font) HasGlyph(g font.Glyph) bool {
	_, ok := f.char(g)
	return ok
}

// GlyphExtents is part of interface font.Font.
// Non-spacing marks are drawn overstrike into the preceding cell.
func (f *Font) GlyphExtents(g font.Glyph) (ink, logical font.Rect) {
	r, ok := f.char(g)
	if !ok {
		return
	}
	ascent := f.height * 4 / 5
	w := dimen.Dimen(f.Cells(r)) * f.cell
	logical = font.Rect{Y: -ascent, Width: w, Height: f.height}
	ink = logical
	if w == 0 {
		ink.X, ink.Width = -f.cell, f.cell
	}
	tracer().Debugf("cell font: %#U occupies %s", r, w)
	return
}

// UnknownGlyph is part of interface font.Font.
func (f *Font) UnknownGlyph() font.Glyph {
	return font.MakeGlyph(subfont, unicode.ReplacementChar)
}
