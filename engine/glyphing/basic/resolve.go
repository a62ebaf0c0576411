package basic

import (
	"github.com/npillmayer/basicshape/core/charset"
	"github.com/npillmayer/basicshape/core/font"
)

// FindGlyph locates the glyph for a character within a font. input is the
// UTF-8 encoding of the character to look up; wc selects the candidate
// subfonts. These usually denote the same character, but clients may look up
// a substitute (e.g. a mirrored character) while keeping the classification.
//
// Subfonts are tried in order of charset priority. A subfont whose charset is
// unable to represent the character is skipped. FindGlyph returns the first
// glyph present in the font, or 0 if there is none.
func FindGlyph(cache *CharCache, f font.Font, wc rune, input []byte) font.Glyph {
	mt := cache.MaskTable(f, charset.Classify(wc))
	for _, entry := range mt.Entries {
		conv := cache.Converter(entry.Charset)
		index, ok := conv.Convert(input)
		if !ok {
			continue
		}
		g := font.MakeGlyph(entry.Subfont, index)
		if f.HasGlyph(g) {
			return g
		}
	}
	return 0
}
