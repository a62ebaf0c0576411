package main

import (
	"fmt"
	"strconv"

	"github.com/npillmayer/basicshape/core/charset"
	"github.com/npillmayer/basicshape/core/font"
	"github.com/npillmayer/basicshape/core/unidata"
	"github.com/npillmayer/basicshape/engine/glyphing"
	"golang.org/x/text/language"
)

// charsetOf is implemented by fonts which know the charsets of their subfonts.
type charsetOf interface {
	Charset(font.Subfont) *charset.Charset
}

// shapeTable itemizes text, shapes every item and returns rows for a table
// of glyphs, headed by a line of column titles. Clusters are byte offsets
// into text.
func shapeTable(shaper glyphing.Shaper, f font.Font, text []byte, lang language.Tag) ([][]string, error) {
	items, err := glyphing.Itemize(text, lang)
	if err != nil {
		return nil, err
	}
	rows := [][]string{{"char", "cat", "glyph", "charset", "index", "width", "x-offset", "cluster", "level"}}
	run := &glyphing.GlyphRun{}
	for _, item := range items {
		analysis := item.Analysis
		chunk := text[item.Offset : item.Offset+item.Length]
		if err := shaper.Shape(f, chunk, &analysis, run); err != nil {
			return nil, err
		}
		tracer().Debugf("item at %d: %v", item.Offset, run)
		for i, g := range run.Glyphs {
			cluster := run.LogClusters[i]
			r := []rune(string(chunk[cluster:]))[0]
			cs := "-"
			if c, ok := f.(charsetOf); ok && g.Glyph != 0 {
				if x := c.Charset(g.Glyph.Subfont()); x != nil {
					cs = x.XLFD
				}
			}
			rows = append(rows, []string{
				fmt.Sprintf("%U", r),
				unidata.Category(r),
				g.Glyph.String(),
				cs,
				fmt.Sprintf("%#x", g.Glyph.Index()),
				fmt.Sprintf("%.2fbp", g.Geometry.Width.Points()),
				fmt.Sprintf("%.2fbp", g.Geometry.XOffset.Points()),
				strconv.Itoa(item.Offset + cluster),
				strconv.Itoa(int(analysis.Level)),
			})
		}
	}
	return rows, nil
}

// coverageLines formats the coverage of the Basic Multilingual Plane as one
// line per range of code points.
func coverageLines(cov *glyphing.Coverage) []string {
	ranges := cov.Ranges(0, 0xffff)
	lines := make([]string, 0, len(ranges)+1)
	total := 0
	for _, rng := range ranges {
		total += int(rng.To-rng.From) + 1
		if rng.From == rng.To {
			lines = append(lines, fmt.Sprintf("%U          %s", rng.From, rng.Level))
			continue
		}
		lines = append(lines, fmt.Sprintf("%U–%U %s", rng.From, rng.To, rng.Level))
	}
	lines = append(lines, fmt.Sprintf("%d characters covered", total))
	return lines
}

// charsetRows lists the charset catalog.
func charsetRows() [][]string {
	rows := make([][]string, 0, len(charset.Catalog()))
	for _, cs := range charset.Catalog() {
		rows = append(rows, []string{strconv.Itoa(cs.Index), cs.XLFD, cs.Name, cs.Kind.String()})
	}
	return rows
}
