/*
Package font defines the contract between shapers and font backends.

Shapers of this module do not look into font files themselves. They talk to a
font backend, which organizes a font as a set of subfonts. Each subfont covers a
character set, and glyphs are addressed by a pair of (subfont, index within the
subfont), composed into a single Glyph value.

Package font also provides loading of scalable (OpenType/TrueType) fonts,
which concrete backends build upon, and a fallback font which is always present.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package font

import (
	"fmt"
	"os"
	"reflect"
	"sync"

	"github.com/npillmayer/basicshape/core"
	"github.com/npillmayer/basicshape/core/dimen"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
)

// tracer traces with key 'basicshape.fonts'.
func tracer() tracing.Trace {
	return tracing.Select("basicshape.fonts")
}

// Subfont is a backend's handle for a charset-specific slice of a font.
// Valid handles are 1…MaxSubfont.
type Subfont uint16

// Glyph identifies a glyph of a font. It is composed from a subfont handle and
// an index within the subfont. Glyph 0 denotes "no glyph".
type Glyph uint32

const (
	indexBits = 21
	indexMask = 1<<indexBits - 1

	// MaxSubfont is the largest subfont handle which can be composed into a Glyph.
	MaxSubfont = 1<<(32-indexBits) - 1
)

// MakeGlyph composes a glyph from a subfont handle and an index within the subfont.
// Indices must be < 2^21, which covers all of Unicode.
func MakeGlyph(sf Subfont, index uint32) Glyph {
	return Glyph(uint32(sf)<<indexBits | index&indexMask)
}

// Subfont returns the subfont part of a glyph.
func (g Glyph) Subfont() Subfont {
	return Subfont(g >> indexBits)
}

// Index returns the index of a glyph within its subfont.
func (g Glyph) Index() uint32 {
	return uint32(g) & indexMask
}

func (g Glyph) String() string {
	return fmt.Sprintf("<%d:%#x>", g.Subfont(), g.Index())
}

// Rect is a rectangle in glyph space. Y grows downwards, i.e. the ascent of a
// glyph has a negative Y.
type Rect struct {
	X, Y          dimen.Dimen
	Width, Height dimen.Dimen
}

// Key is the identity of a font in side tables, such as per-font caches
// or reference counts. The zero Key identifies no font.
type Key struct {
	font Font
}

// KeyOf returns the identity of f. A font whose dynamic type cannot be
// hashed has no identity, and KeyOf returns an error of code EINVALID.
func KeyOf(f Font) (Key, error) {
	if f == nil {
		return Key{}, core.Error(core.EINVALID, "nil font has no identity")
	}
	if !reflect.TypeOf(f).Comparable() {
		return Key{}, core.Error(core.EINVALID, "font of type %T is not comparable", f)
	}
	return Key{font: f}, nil
}

// Font is the interface a font backend has to implement for shaping.
//
// Side tables identify fonts by their Key, see KeyOf. Implementations
// should therefore be pointer types or otherwise comparable.
type Font interface {
	// ListSubfonts finds the subfonts supporting any of the given charsets
	// (XLFD registry-encodings). For every subfont returned, which holds the
	// position of its charset within the charsets argument. Subfonts are returned
	// in the order of the charsets argument.
	ListSubfonts(charsets []string) (subfonts []Subfont, which []int)
	// HasGlyph checks if a glyph is present in the physical font.
	HasGlyph(g Glyph) bool
	// GlyphExtents returns the ink and logical rectangles of a glyph.
	GlyphExtents(g Glyph) (ink, logical Rect)
	// UnknownGlyph returns a glyph to display for characters which the font
	// cannot render.
	UnknownGlyph() Glyph
}

// --- Scalable fonts --------------------------------------------------------

// ScalableFont is an OpenType or TrueType font, loaded from a file or from
// memory.
type ScalableFont struct {
	Fontname string
	Filepath string     // file path
	Binary   []byte     // raw data
	SFNT     *sfnt.Font // the font's container; not safe for concurrent use
}

// LoadOpenTypeFont loads a font from a file.
func LoadOpenTypeFont(fontfile string) (*ScalableFont, error) {
	bytez, err := os.ReadFile(fontfile)
	if err != nil {
		return nil, err
	}
	f, err := ParseOpenTypeFont(bytez)
	if err != nil {
		return nil, err
	}
	f.Filepath = fontfile
	return f, nil
}

// ParseOpenTypeFont parses font data in OpenType or TrueType format.
func ParseOpenTypeFont(fbytes []byte) (f *ScalableFont, err error) {
	f = &ScalableFont{Binary: fbytes}
	f.SFNT, err = sfnt.Parse(f.Binary)
	if err != nil {
		return nil, err
	}
	f.Fontname, _ = f.SFNT.Name(nil, sfnt.NameIDFull)
	tracer().Debugf("parsed font %q with %d glyphs", f.Fontname, f.SFNT.NumGlyphs())
	return
}

// --- Fallback font ---------------------------------------------------------

// FallbackFont returns a font to be used if everything else failes. It is
// always present. Currently we use Go Sans.
func FallbackFont() *ScalableFont {
	fallbackFontLoading.Do(func() {
		fallbackFont = loadFallbackFont()
	})
	return fallbackFont
}

var fallbackFontLoading sync.Once

// fallbackFont is a font that is used if everything else failes.
// Currently we use Go Sans.
var fallbackFont *ScalableFont

func loadFallbackFont() *ScalableFont {
	var err error
	gofont := &ScalableFont{
		Fontname: "Go Sans",
		Filepath: "internal",
		Binary:   goregular.TTF,
	}
	gofont.SFNT, err = sfnt.Parse(gofont.Binary)
	if err != nil {
		panic("cannot load default font") // this cannot happen
	}
	return gofont
}
