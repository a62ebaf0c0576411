package basic

import (
	"unicode/utf8"

	"github.com/npillmayer/basicshape/core"
	"github.com/npillmayer/basicshape/core/dimen"
	"github.com/npillmayer/basicshape/core/font"
	"github.com/npillmayer/basicshape/core/font/fontregistry"
	"github.com/npillmayer/basicshape/core/unidata"
	"github.com/npillmayer/basicshape/engine/glyphing"
	"github.com/npillmayer/schuko"
	"golang.org/x/text/language"
)

// ConfigCenterMarks is the configuration key for switching centering of
// zero-width combining marks on or off (boolean, default on).
const ConfigCenterMarks = "basic.center-marks"

// Engine is the basic shaping engine. It implements glyphing.Shaper.
type Engine struct {
	caches      *CacheTable
	centerMarks bool
}

var _ glyphing.Shaper = (*Engine)(nil)

// Option configures an engine.
type Option func(*Engine)

// WithConfiguration reads engine settings from an application configuration.
// Keys not set in conf keep their defaults.
func WithConfiguration(conf schuko.Configuration) Option {
	return func(e *Engine) {
		if conf == nil {
			return
		}
		if conf.IsSet(ConfigCenterMarks) {
			e.centerMarks = conf.GetBool(ConfigCenterMarks)
		}
	}
}

// WithCacheTable lets an engine use an existing cache table, e.g. one shared
// with another engine instance.
func WithCacheTable(ct *CacheTable) Option {
	return func(e *Engine) {
		if ct != nil {
			e.caches = ct
		}
	}
}

// New creates a basic shaping engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		caches:      NewCacheTable(),
		centerMarks: true,
	}
	for _, opt := range opts {
		opt(e)
	}
	tracer().Debugf("basic engine created, centering of marks = %v", e.centerMarks)
	return e
}

// Caches returns the engine's table of per-font character caches.
func (e *Engine) Caches() *CacheTable {
	return e.caches
}

// AttachTo installs a release hook with a font registry, which drops the
// character cache of a font as soon as the registry releases the font.
func (e *Engine) AttachTo(fr *fontregistry.Registry) {
	fr.OnRelease(e.caches.Release)
}

// Zero-width characters, which are never looked up in a font.
const (
	zeroWidthSpace  = 0x200b
	leftToRightMark = 0x200e
	rightToLeftMark = 0x200f
)

// Shape converts a run of text into a run of glyphs, one glyph per
// character, in visual order. It is part of interface glyphing.Shaper.
//
// Characters not present in the font are represented by the font's unknown
// glyph. Invalid UTF-8 is treated as U+FFFD, one byte at a time. Shape
// returns an error of code EINVALID if any argument is nil or if f cannot
// be identified (see font.KeyOf); run is not touched in this case.
func (e *Engine) Shape(f font.Font, text []byte, analysis *glyphing.Analysis,
	run *glyphing.GlyphRun) error {
	//
	if f == nil || text == nil || analysis == nil || run == nil {
		return core.Error(core.EINVALID, "basic shaper: font, text, analysis and run must be non-nil")
	}
	cache, err := e.caches.For(f)
	if err != nil {
		return err
	}
	n := utf8.RuneCount(text)
	run.SetSize(n)
	rtl := analysis.IsRTL()
	var buf [utf8.UTFMax]byte
	p := 0
	for i := 0; i < n; i++ {
		wc, size := utf8.DecodeRune(text[p:])
		input := text[p : p+size]
		if rtl {
			if m, ok := unidata.MirrorOf(wc); ok {
				wc = m
				input = buf[:utf8.EncodeRune(buf[:], wc)]
			}
		}
		switch wc {
		case zeroWidthSpace, leftToRightMark, rightToLeftMark:
			setGlyph(f, run, i, p, 0)
		default:
			if g := FindGlyph(cache, f, wc, input); g != 0 {
				setGlyph(f, run, i, p, g)
				if i > 0 && unidata.IsNonSpacingMark(wc) {
					e.mergeMark(f, run, i)
				}
			} else {
				setGlyph(f, run, i, p, f.UnknownGlyph())
			}
		}
		p += size
	}
	if rtl {
		glyphing.ReverseRun(run)
		glyphing.ReverseClusters(run)
	}
	tracer().Debugf("shaped %d characters: %v", n, run)
	return nil
}

// setGlyph places glyph g at position i of a run, with its logical width as
// advance. Glyph 0 has zero width.
func setGlyph(f font.Font, run *glyphing.GlyphRun, i int, offset int, g font.Glyph) {
	run.Glyphs[i].Glyph = g
	run.Glyphs[i].Geometry = glyphing.Geometry{}
	run.LogClusters[i] = offset
	if g != 0 {
		_, logical := f.GlyphExtents(g)
		run.Glyphs[i].Geometry.Width = logical.Width
	}
}

// mergeMark attaches the combining mark at position i to the cluster of the
// preceding glyph. The cluster's advance is moved to the mark.
//
// Fonts often draw combining marks as zero-width glyphs with the ink to the
// left of the origin (overstrike). If the mark is zero-width but its ink
// starts at the origin, we center it over the cluster's advance.
func (e *Engine) mergeMark(f font.Font, run *glyphing.GlyphRun, i int) {
	prev, cur := &run.Glyphs[i-1].Geometry, &run.Glyphs[i].Geometry
	cur.Width = dimen.Max(prev.Width, cur.Width)
	prev.Width = 0
	run.LogClusters[i] = run.LogClusters[i-1]
	if !e.centerMarks {
		return
	}
	ink, logical := f.GlyphExtents(run.Glyphs[i].Glyph)
	if logical.Width == 0 && ink.X == 0 {
		cur.XOffset = (cur.Width - ink.Width) / 2
	}
}

// Break is part of interface glyphing.Shaper. The basic shaper leaves line
// breaking to generic algorithms and does not touch attrs.
func (e *Engine) Break(text []byte, analysis *glyphing.Analysis, attrs []glyphing.LogAttr) {
}

// Coverage reports the characters of the Basic Multilingual Plane the engine
// is able to find a glyph for in font f. It is part of interface
// glyphing.Shaper.
//
// Every found character is reported as CoverageExact. Surrogate code points
// are never covered. The result is not cached.
func (e *Engine) Coverage(f font.Font, lang language.Tag) *glyphing.Coverage {
	coverage := glyphing.NewCoverage()
	if f == nil {
		tracer().Errorf("basic shaper: coverage requested for nil font")
		return coverage
	}
	cache, err := e.caches.For(f)
	if err != nil {
		tracer().Errorf("basic shaper: %v", err)
		return coverage
	}
	var buf [utf8.UTFMax]byte
	count := 0
	for wc := rune(0); wc <= 0xffff; wc++ {
		if !utf8.ValidRune(wc) {
			continue
		}
		n := utf8.EncodeRune(buf[:], wc)
		if FindGlyph(cache, f, wc, buf[:n]) != 0 {
			coverage.Set(wc, glyphing.CoverageExact)
			count++
		}
	}
	tracer().Infof("coverage for language %s: %d characters", lang, count)
	return coverage
}
