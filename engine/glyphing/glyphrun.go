package glyphing

import (
	"fmt"
	"strings"

	"github.com/npillmayer/basicshape/core/dimen"
	"github.com/npillmayer/basicshape/core/font"
)

// Geometry is the positioning information of a glyph.
type Geometry struct {
	Width   dimen.Dimen // advance after glyph has been set
	XOffset dimen.Dimen // horizontal offset of the glyph's origin
	YOffset dimen.Dimen // vertical offset of the glyph's origin
}

// GlyphInfo is a positioned glyph.
type GlyphInfo struct {
	Glyph    font.Glyph
	Geometry Geometry
}

// GlyphRun is a sequence of glyphs, as produced by a shaper.
// LogClusters runs parallel to Glyphs: it holds, for every glyph, the byte
// offset into the shaped text of the cluster the glyph belongs to.
type GlyphRun struct {
	Glyphs      []GlyphInfo
	LogClusters []int
}

// SetSize resizes a glyph run to n glyphs, re-using already allocated memory.
// Glyphs are reset to zero values.
func (run *GlyphRun) SetSize(n int) {
	if cap(run.Glyphs) < n || cap(run.LogClusters) < n {
		run.Glyphs = make([]GlyphInfo, n)
		run.LogClusters = make([]int, n)
		return
	}
	run.Glyphs = run.Glyphs[:n]
	run.LogClusters = run.LogClusters[:n]
	for i := range run.Glyphs {
		run.Glyphs[i] = GlyphInfo{}
		run.LogClusters[i] = 0
	}
}

// Len returns the number of glyphs in the run.
func (run *GlyphRun) Len() int {
	return len(run.Glyphs)
}

// Width returns the sum of the advance widths of all glyphs in the run.
func (run *GlyphRun) Width() (w dimen.Dimen) {
	for _, g := range run.Glyphs {
		w += g.Geometry.Width
	}
	return
}

func (run *GlyphRun) String() string {
	var b strings.Builder
	b.WriteString("[")
	for i, g := range run.Glyphs {
		if i > 0 {
			b.WriteString(" ")
		}
		fmt.Fprintf(&b, "%v@%d", g.Glyph, run.LogClusters[i])
	}
	b.WriteString("]")
	return b.String()
}

// ReverseRun reverses the order of glyphs of a run, together with their
// cluster offsets.
func ReverseRun(run *GlyphRun) {
	swapRange(run, 0, run.Len())
}

// ReverseClusters restores logical order within clusters: every maximal run
// of consecutive glyphs with equal cluster offset is reversed in place.
//
// Used after ReverseRun for right-to-left text, ReverseClusters keeps
// the glyphs of a cluster (e.g. base and combining mark) in the order
// the glyph positioning expects.
func ReverseClusters(run *GlyphRun) {
	start := 0
	for i := 1; i <= run.Len(); i++ {
		if i == run.Len() || run.LogClusters[i] != run.LogClusters[start] {
			if i-start > 1 {
				swapRange(run, start, i)
			}
			start = i
		}
	}
}

// swapRange reverses glyphs [start…end) of a run.
func swapRange(run *GlyphRun, start, end int) {
	for i, j := start, end-1; i < j; i, j = i+1, j-1 {
		run.Glyphs[i], run.Glyphs[j] = run.Glyphs[j], run.Glyphs[i]
		run.LogClusters[i], run.LogClusters[j] = run.LogClusters[j], run.LogClusters[i]
	}
}
