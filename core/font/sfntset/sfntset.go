package sfntset

import (
	"strings"

	"github.com/npillmayer/basicshape/core"
	"github.com/npillmayer/basicshape/core/charset"
	"github.com/npillmayer/basicshape/core/dimen"
	"github.com/npillmayer/basicshape/core/font"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// Set is a font made up of subfonts, one per charset. It implements font.Font.
type Set struct {
	Name     string
	size     dimen.Dimen
	ppem     fixed.Int26_6
	subfonts []*subfont // subfont handle h is at position h-1
}

type subfont struct {
	font    *font.ScalableFont
	charset *charset.Charset
	xlfd    string // lower case
	decoder *charset.Decoder
	buf     sfnt.Buffer
	metrics xfont.Metrics
}

var _ font.Font = (*Set)(nil)

// New creates an empty font set for a given font size.
func New(name string, size dimen.Dimen) *Set {
	return &Set{
		Name: name,
		size: size,
		ppem: size.Fixed(),
	}
}

// Fallback returns a font set over the fallback font, registered for Latin-1
// and for the universal charset.
func Fallback(size dimen.Dimen) *Set {
	f := font.FallbackFont()
	set := New(f.Fontname, size)
	for _, xlfd := range []string{"iso8859-1", "iso10646-1"} {
		if _, err := set.Add(f, xlfd); err != nil {
			panic(err) // catalog always contains these
		}
	}
	return set
}

// Size returns the font size the set has been created for.
func (set *Set) Size() dimen.Dimen {
	return set.size
}

// Add registers a font as a subfont for a charset, given by its XLFD name.
// Charsets unknown to the catalog are rejected.
func (set *Set) Add(f *font.ScalableFont, xlfd string) (font.Subfont, error) {
	if f == nil || f.SFNT == nil {
		return 0, core.Error(core.EINVALID, "cannot add nil font to font set %q", set.Name)
	}
	cs := charset.ByXLFD(xlfd)
	if cs == nil {
		return 0, core.Error(core.EMISSING, "charset %q not supported", xlfd)
	}
	if len(set.subfonts) >= font.MaxSubfont {
		return 0, core.Error(core.EUNSUPPORTED, "too many subfonts in font set %q", set.Name)
	}
	dec := charset.NewDecoder(cs)
	if err := dec.Err(); err != nil {
		return 0, core.WrapError(err, core.EMISSING, "no decoder for charset %q", xlfd)
	}
	sf := &subfont{
		font:    f,
		charset: cs,
		xlfd:    strings.ToLower(cs.XLFD),
		decoder: dec,
	}
	m, err := f.SFNT.Metrics(&sf.buf, set.ppem, xfont.HintingNone)
	if err != nil {
		return 0, core.WrapError(err, core.EINVALID, "cannot read metrics of font %q", f.Fontname)
	}
	sf.metrics = m
	set.subfonts = append(set.subfonts, sf)
	h := font.Subfont(len(set.subfonts))
	tracer().Debugf("font set %q: subfont %d = %s for %s", set.Name, h, f.Fontname, cs.XLFD)
	return h, nil
}

// ListSubfonts is part of interface font.Font.
func (set *Set) ListSubfonts(charsets []string) (subfonts []font.Subfont, which []int) {
	for i, name := range charsets {
		name = strings.ToLower(name)
		for j, sf := range set.subfonts {
			if sf.xlfd == name {
				subfonts = append(subfonts, font.Subfont(j+1))
				which = append(which, i)
			}
		}
	}
	return
}

// Charset returns the charset a subfont has been registered for.
func (set *Set) Charset(h font.Subfont) *charset.Charset {
	if sf := set.subfont(h); sf != nil {
		return sf.charset
	}
	return nil
}

func (set *Set) subfont(h font.Subfont) *subfont {
	if h == 0 || int(h) > len(set.subfonts) {
		return nil
	}
	return set.subfonts[h-1]
}

// lookup finds the physical glyph for a glyph of the set. Glyphs not present
// in the font result in sfnt glyph index 0 (.notdef).
func (set *Set) lookup(g font.Glyph) (*subfont, sfnt.GlyphIndex) {
	sf := set.subfont(g.Subfont())
	if sf == nil {
		return nil, 0
	}
	r, ok := sf.decoder.Decode(g.Index())
	if !ok {
		return sf, 0
	}
	gid, err := sf.font.SFNT.GlyphIndex(&sf.buf, r)
	if err != nil {
		tracer().Errorf("font set %q: glyph lookup for %U: %v", set.Name, r, err)
		return sf, 0
	}
	return sf, gid
}

// HasGlyph is part of interface font.Font.
func (set *Set) HasGlyph(g font.Glyph) bool {
	_, gid := set.lookup(g)
	return gid != 0
}

// GlyphExtents is part of interface font.Font.
// Glyphs missing from the font report the extents of .notdef; glyph 0 has
// empty extents.
func (set *Set) GlyphExtents(g font.Glyph) (ink, logical font.Rect) {
	sf, gid := set.lookup(g)
	if sf == nil {
		return
	}
	bounds, advance, err := sf.font.SFNT.GlyphBounds(&sf.buf, gid, set.ppem, xfont.HintingNone)
	if err != nil {
		tracer().Errorf("font set %q: no bounds for glyph %v: %v", set.Name, g, err)
		return
	}
	ink = font.Rect{
		X:      dimen.FromFixed(bounds.Min.X),
		Y:      dimen.FromFixed(bounds.Min.Y),
		Width:  dimen.FromFixed(bounds.Max.X - bounds.Min.X),
		Height: dimen.FromFixed(bounds.Max.Y - bounds.Min.Y),
	}
	logical = font.Rect{
		Y:      -dimen.FromFixed(sf.metrics.Ascent),
		Width:  dimen.FromFixed(advance),
		Height: dimen.FromFixed(sf.metrics.Ascent + sf.metrics.Descent),
	}
	return
}

// notdefIndex does not decode in any charset, thus selects .notdef.
const notdefIndex = 1<<21 - 1

// UnknownGlyph is part of interface font.Font. It denotes .notdef of the
// first subfont, or 0 for an empty set.
func (set *Set) UnknownGlyph() font.Glyph {
	if len(set.subfonts) == 0 {
		return 0
	}
	return font.MakeGlyph(1, notdefIndex)
}
