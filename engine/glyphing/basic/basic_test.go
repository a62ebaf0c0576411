package basic

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/basicshape/core"
	"github.com/npillmayer/basicshape/core/charset"
	"github.com/npillmayer/basicshape/core/dimen"
	"github.com/npillmayer/basicshape/core/font"
	"github.com/npillmayer/basicshape/core/font/fontregistry"
	"github.com/npillmayer/basicshape/core/font/sfntset"
	"github.com/npillmayer/basicshape/engine/glyphing"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/text/language"
)

const charWidth = 6 * dimen.BP

// latinFont has ASCII in a Latin-1 subfont and a few characters in a
// universal subfont, among them a combining acute accent.
func latinFont() *fakeFont {
	f := newFakeFont("iso8859-1", "iso10646-1")
	f.add(1, 0x20, 0x7e, charWidth)
	f.add(2, 0x5d0, 0x5d2, charWidth) // Hebrew alef, bet, gimel
	f.add(2, 0x200b, 0x200b, charWidth)
	f.addMark(2, 0x301, font.Rect{Y: -9 * dimen.BP, Width: 2 * dimen.BP, Height: dimen.BP}, 0)
	f.addMark(2, 0x308, font.Rect{X: -4 * dimen.BP, Y: -9 * dimen.BP, Width: 3 * dimen.BP, Height: dimen.BP}, 0)
	return f
}

func latin(r rune) font.Glyph {
	return font.MakeGlyph(1, uint32(r))
}

func universal(r rune) font.Glyph {
	return font.MakeGlyph(2, uint32(r))
}

func spacing(g font.Glyph, w dimen.Dimen) glyphing.GlyphInfo {
	return glyphing.GlyphInfo{Glyph: g, Geometry: glyphing.Geometry{Width: w}}
}

// ---------------------------------------------------------------------------

type ShapeSuite struct {
	suite.Suite
	teardown func()
	engine   *Engine
	font     *fakeFont
}

func TestShapeSuite(t *testing.T) {
	suite.Run(t, new(ShapeSuite))
}

func (s *ShapeSuite) SetupTest() {
	s.teardown = gotestingadapter.QuickConfig(s.T(), "basicshape.glyphs")
	s.engine = New()
	s.font = latinFont()
}

func (s *ShapeSuite) TearDownTest() {
	s.teardown()
}

func (s *ShapeSuite) shape(text string, level uint8) *glyphing.GlyphRun {
	run := &glyphing.GlyphRun{}
	err := s.engine.Shape(s.font, []byte(text), &glyphing.Analysis{Level: level}, run)
	s.Require().NoError(err)
	return run
}

func (s *ShapeSuite) diff(want, got *glyphing.GlyphRun) {
	if diff := cmp.Diff(want, got); diff != "" {
		s.T().Errorf("unexpected glyph run (-want +got):\n%s", diff)
	}
}

func (s *ShapeSuite) TestASCII() {
	s.diff(&glyphing.GlyphRun{
		Glyphs:      []glyphing.GlyphInfo{spacing(latin('A'), charWidth), spacing(latin('B'), charWidth)},
		LogClusters: []int{0, 1},
	}, s.shape("AB", 0))
}

func (s *ShapeSuite) TestRightToLeft() {
	s.diff(&glyphing.GlyphRun{
		Glyphs:      []glyphing.GlyphInfo{spacing(latin('B'), charWidth), spacing(latin('A'), charWidth)},
		LogClusters: []int{1, 0},
	}, s.shape("AB", 1))
	//
	run := s.shape("אבג", 1) // 2 bytes each
	s.Equal([]int{4, 2, 0}, run.LogClusters)
	s.Equal(universal(0x5d2), run.Glyphs[0].Glyph)
}

func (s *ShapeSuite) TestEvenLevelIsLogicalOrder() {
	for _, level := range []uint8{0, 2, 4} {
		run := s.shape("abc", level)
		s.Equal([]int{0, 1, 2}, run.LogClusters, "level %d", level)
	}
}

func (s *ShapeSuite) TestMirroring() {
	run := s.shape("(a)", 1)
	s.Equal([]font.Glyph{latin('('), latin('a'), latin(')')},
		[]font.Glyph{run.Glyphs[0].Glyph, run.Glyphs[1].Glyph, run.Glyphs[2].Glyph})
	s.Equal([]int{2, 1, 0}, run.LogClusters, "clusters keep offsets of the original characters")
	//
	run = s.shape("(", 0)
	s.Equal(latin('('), run.Glyphs[0].Glyph, "no mirroring at even levels")
}

func (s *ShapeSuite) TestZeroWidthCharacters() {
	for _, level := range []uint8{0, 1} {
		run := s.shape("a\u200bb\u200ec\u200f", level)
		s.Require().Equal(6, run.Len())
		zeros := 0
		for i, g := range run.Glyphs {
			if g.Glyph == 0 {
				zeros++
				s.Equal(glyphing.Geometry{}, g.Geometry, "glyph %d", i)
			}
		}
		s.Equal(3, zeros, "level %d", level)
	}
	s.Equal(font.Glyph(0), s.shape("\u200b", 0).Glyphs[0].Glyph, "U+200B is never looked up")
}

func (s *ShapeSuite) TestCombiningMark() {
	run := s.shape("e\u0301", 0)
	s.Require().Equal(2, run.Len())
	s.Equal([]int{0, 0}, run.LogClusters)
	s.Equal(dimen.Zero, run.Glyphs[0].Geometry.Width)
	s.Equal(charWidth, run.Glyphs[1].Geometry.Width)
	// zero-width mark with ink at origin is centered
	s.Equal((charWidth-2*dimen.BP)/2, run.Glyphs[1].Geometry.XOffset)
	s.Equal(charWidth, run.Width())
	//
	run = s.shape("e\u0308", 0) // overstrike ink left of origin: no nudge
	s.Equal(dimen.Zero, run.Glyphs[1].Geometry.XOffset)
	s.Equal([]int{0, 0}, run.LogClusters)
}

func (s *ShapeSuite) TestCombiningMarkExactlyOneAdvance() {
	for _, text := range []string{"e\u0301", "ab\u0301c", "א\u0301"} {
		for _, level := range []uint8{0, 1} {
			run := s.shape(text, level)
			advances := make(map[int]int)
			for i, g := range run.Glyphs {
				if g.Geometry.Width != 0 {
					advances[run.LogClusters[i]]++
				}
			}
			for cluster, n := range advances {
				s.Equal(1, n, "%q level %d, cluster %d", text, level, cluster)
			}
		}
	}
}

func (s *ShapeSuite) TestMarkInRightToLeftRun() {
	run := s.shape("e\u0301x", 1)
	s.Equal([]int{3, 0, 0}, run.LogClusters)
	s.Equal([]font.Glyph{latin('x'), latin('e'), universal(0x301)},
		[]font.Glyph{run.Glyphs[0].Glyph, run.Glyphs[1].Glyph, run.Glyphs[2].Glyph},
		"base glyph precedes its mark within the cluster")
}

func (s *ShapeSuite) TestMarkWithoutBase() {
	run := s.shape("\u0301a", 0)
	s.Equal([]int{0, 2}, run.LogClusters)
	s.Equal(dimen.Zero, run.Glyphs[0].Geometry.Width)
	s.Equal(dimen.Zero, run.Glyphs[0].Geometry.XOffset)
}

func (s *ShapeSuite) TestUnresolvedMarkIsNotMerged() {
	run := s.shape("e\u0302", 0) // no glyph for circumflex
	s.Equal([]int{0, 1}, run.LogClusters)
	s.Equal(s.font.UnknownGlyph(), run.Glyphs[1].Glyph)
	s.Equal(charWidth, run.Glyphs[0].Geometry.Width)
	s.Equal(unknownWidth, run.Glyphs[1].Geometry.Width)
}

func (s *ShapeSuite) TestUnknownGlyph() {
	run := s.shape("a中", 0)
	s.Equal(s.font.UnknownGlyph(), run.Glyphs[1].Glyph)
	s.Equal(unknownWidth, run.Glyphs[1].Geometry.Width)
	s.Equal([]int{0, 1}, run.LogClusters)
}

func (s *ShapeSuite) TestInvalidUTF8() {
	run := &glyphing.GlyphRun{}
	err := s.engine.Shape(s.font, []byte{'A', 0xff, 'B'}, &glyphing.Analysis{}, run)
	s.Require().NoError(err)
	s.Equal([]int{0, 1, 2}, run.LogClusters)
	s.Equal(s.font.UnknownGlyph(), run.Glyphs[1].Glyph)
}

func (s *ShapeSuite) TestEmptyText() {
	run := s.shape("", 1)
	s.Equal(0, run.Len())
}

func (s *ShapeSuite) TestCallerAllocatedRun() {
	run := &glyphing.GlyphRun{Glyphs: make([]glyphing.GlyphInfo, 0, 8)}
	err := s.engine.Shape(s.font, []byte("AB"), &glyphing.Analysis{}, run)
	s.Require().NoError(err)
	s.diff(&glyphing.GlyphRun{
		Glyphs:      []glyphing.GlyphInfo{spacing(latin('A'), charWidth), spacing(latin('B'), charWidth)},
		LogClusters: []int{0, 1},
	}, run)
}

func (s *ShapeSuite) TestPreconditions() {
	run := &glyphing.GlyphRun{LogClusters: []int{7}, Glyphs: []glyphing.GlyphInfo{{Glyph: 99}}}
	analysis := &glyphing.Analysis{}
	for _, err := range []error{
		s.engine.Shape(nil, []byte("a"), analysis, run),
		s.engine.Shape(s.font, nil, analysis, run),
		s.engine.Shape(s.font, []byte("a"), nil, run),
		s.engine.Shape(s.font, []byte("a"), analysis, nil),
	} {
		s.Equal(core.EINVALID, core.Code(err))
	}
	s.Equal([]int{7}, run.LogClusters, "run must be left untouched")
	s.Equal(font.Glyph(99), run.Glyphs[0].Glyph)
}

func (s *ShapeSuite) TestBreakIsNoOp() {
	attrs := []glyphing.LogAttr{{IsLineBreak: true}, {}}
	s.engine.Break([]byte("ab"), &glyphing.Analysis{}, attrs)
	s.Equal([]glyphing.LogAttr{{IsLineBreak: true}, {}}, attrs)
}

// ---------------------------------------------------------------------------

func TestCenterMarksConfiguration(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "basicshape.glyphs")
	defer teardown()
	//
	conf := testconfig.Conf{ConfigCenterMarks: false}
	e := New(WithConfiguration(conf))
	run := &glyphing.GlyphRun{}
	require.NoError(t, e.Shape(latinFont(), []byte("e\u0301"), &glyphing.Analysis{}, run))
	assert.Equal(t, dimen.Zero, run.Glyphs[1].Geometry.XOffset)
	assert.Equal(t, []int{0, 0}, run.LogClusters, "marks are merged nevertheless")
	//
	e = New(WithConfiguration(testconfig.Conf{}))
	require.NoError(t, e.Shape(latinFont(), []byte("e\u0301"), &glyphing.Analysis{}, run))
	assert.NotEqual(t, dimen.Zero, run.Glyphs[1].Geometry.XOffset, "centering is on by default")
}

func TestMaskTableIsCached(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "basicshape.glyphs")
	defer teardown()
	//
	f := newFakeFont("iso10646-1", "iso8859-2", "iso8859-1")
	cache := NewCharCache()
	m := charset.Classify('A')
	mt := cache.MaskTable(f, m)
	require.Equal(t, 1, f.listCalls)
	assert.Same(t, mt, cache.MaskTable(f, m))
	assert.Equal(t, 1, f.listCalls, "font is asked only once per mask index")
	// candidate order, not font order
	want := []Entry{
		{Subfont: 3, Charset: charset.ByXLFD("iso8859-1")},
		{Subfont: 2, Charset: charset.ByXLFD("iso8859-2")},
		{Subfont: 1, Charset: charset.Universal},
	}
	assert.Equal(t, want, mt.Entries)
	//
	for _, r := range []rune{'a', 'é', 'Ж', 'あ', 0x1f600} {
		m := charset.Classify(r)
		assert.Equal(t, cache.MaskTable(f, m), cache.MaskTable(f, m), "%q", r)
	}
}

func TestFindGlyphPriority(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "basicshape.glyphs")
	defer teardown()
	//
	f := newFakeFont("iso8859-1", "iso10646-1")
	f.add(1, 'A', 'A', charWidth)
	f.add(2, 'A', 'B', charWidth)
	cache := NewCharCache()
	assert.Equal(t, latin('A'), FindGlyph(cache, f, 'A', []byte("A")))
	assert.Equal(t, universal('B'), FindGlyph(cache, f, 'B', []byte("B")),
		"subfonts lacking the glyph are passed over")
	assert.Equal(t, font.Glyph(0), FindGlyph(cache, f, 'C', []byte("C")))
}

func TestFindGlyphSkipsFailedConversions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "basicshape.glyphs")
	defer teardown()
	//
	f := newFakeFont("iso8859-1", "iso10646-1")
	f.add(1, 0, 0, charWidth) // a trap for conversions mistaken as index 0
	f.add(2, 0x4e2d, 0x4e2d, charWidth)
	cache := NewCharCache()
	m := charset.Classify('中')
	cache.tables[m] = &MaskTable{Entries: []Entry{
		{Subfont: 1, Charset: charset.ByXLFD("iso8859-1")},
		{Subfont: 2, Charset: charset.Universal},
	}}
	assert.Equal(t, universal(0x4e2d), FindGlyph(cache, f, '中', []byte("中")))
}

func TestCharCacheConverters(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "basicshape.glyphs")
	defer teardown()
	//
	cache := NewCharCache()
	latin1 := charset.ByXLFD("iso8859-1")
	c := cache.Converter(latin1)
	require.NotNil(t, c)
	assert.Same(t, c, cache.Converter(latin1), "converters are opened once")
	assert.Nil(t, cache.Converter(nil))
	cache.MaskTable(latinFont(), charset.Classify('a'))
	cache.Close()
	cache.Close()
	_, ok := c.Convert([]byte("a"))
	assert.False(t, ok, "converter is closed with its cache")
	assert.Nil(t, cache.Converter(latin1))
	assert.Equal(t, 0, cache.MaskTable(latinFont(), charset.Classify('a')).Len())
}

func TestCacheTableAndRegistry(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "basicshape.glyphs")
	defer teardown()
	//
	fr := fontregistry.NewRegistry()
	e := New()
	e.AttachTo(fr)
	f1, f2 := latinFont(), latinFont()
	fr.StoreFont("f1", f1)
	fr.StoreFont("f2", f2)
	run := &glyphing.GlyphRun{}
	require.NoError(t, e.Shape(f1, []byte("a"), &glyphing.Analysis{}, run))
	require.NoError(t, e.Shape(f2, []byte("a"), &glyphing.Analysis{}, run))
	assert.Equal(t, 2, e.Caches().Len())
	cc1, err := e.Caches().For(f1)
	require.NoError(t, err)
	cc2, err := e.Caches().For(f2)
	require.NoError(t, err)
	assert.NotSame(t, cc1, cc2)
	//
	cc, _ := e.Caches().For(f1)
	assert.True(t, fr.Release("f1"))
	assert.Equal(t, 1, e.Caches().Len())
	assert.True(t, cc.closed)
	e.Caches().Release(f1) // no-op
	assert.Equal(t, 1, e.Caches().Len())
	//
	shared := New(WithCacheTable(e.Caches()))
	assert.Same(t, e.Caches(), shared.Caches())
}

// taggedFont has a slice field and therefore cannot be hashed.
type taggedFont struct {
	*fakeFont
	tags []string
}

func TestFontWithoutIdentity(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "basicshape.glyphs")
	defer teardown()
	//
	f := taggedFont{fakeFont: latinFont(), tags: []string{"latin"}}
	e := New()
	run := &glyphing.GlyphRun{LogClusters: []int{7}}
	var err error
	assert.NotPanics(t, func() {
		err = e.Shape(f, []byte("AB"), &glyphing.Analysis{}, run)
	})
	assert.Equal(t, core.EINVALID, core.Code(err))
	assert.Equal(t, []int{7}, run.LogClusters, "run must be left untouched")
	assert.NotPanics(t, func() {
		assert.Equal(t, glyphing.CoverageNone, e.Coverage(f, language.Und).Get('A'))
		e.Caches().Release(f)
	})
	assert.Equal(t, 0, e.Caches().Len())
	//
	fr := fontregistry.NewRegistry()
	assert.Equal(t, core.EINVALID, core.Code(fr.StoreFont("tagged", f)))
	assert.Empty(t, fr.Names())
}

func TestCoverageASCIIFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "basicshape.glyphs")
	defer teardown()
	//
	f := newFakeFont("iso8859-1")
	f.add(1, 0x20, 0x7e, charWidth)
	coverage := New().Coverage(f, language.English)
	assert.Equal(t, []glyphing.CoverageRange{
		{From: 0x20, To: 0x7e, Level: glyphing.CoverageExact},
	}, coverage.Ranges(0, 0xffff))
	assert.Equal(t, glyphing.CoverageNone, coverage.Get(0xe9))
	//
	empty := New().Coverage(nil, language.Und)
	assert.Empty(t, empty.Ranges(0, 0xffff))
}

func TestShapeWithGoFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "basicshape.glyphs")
	defer teardown()
	//
	set := sfntset.Fallback(12 * dimen.BP)
	run := &glyphing.GlyphRun{}
	text := "H\u00e9 \u0391\u0392"
	require.NoError(t, New().Shape(set, []byte(text), &glyphing.Analysis{}, run))
	require.Equal(t, 5, run.Len())
	for i, g := range run.Glyphs {
		assert.True(t, set.HasGlyph(g.Glyph), "glyph %d = %v", i, g.Glyph)
		assert.Greater(t, g.Geometry.Width, dimen.Zero, "glyph %d", i)
	}
	assert.Equal(t, font.Subfont(1), run.Glyphs[1].Glyph.Subfont(), "é from Latin-1 subfont")
	assert.Equal(t, font.Subfont(2), run.Glyphs[3].Glyph.Subfont(), "Greek from universal subfont")
	assert.Equal(t, []int{0, 1, 3, 4, 6}, run.LogClusters)
	//
	coverage := New().Coverage(set, language.Greek)
	assert.Equal(t, glyphing.CoverageExact, coverage.Get('Ω'))
	assert.Equal(t, glyphing.CoverageNone, coverage.Get('中'))
	assert.Equal(t, glyphing.CoverageNone, coverage.Get(0xd800))
}
