package glyphing

import (
	"unicode/utf8"

	"github.com/npillmayer/basicshape/core"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/bidi"
)

// Item is a run of text with a uniform analysis. Offset and Length are byte
// positions within the itemized text.
type Item struct {
	Offset, Length int
	Analysis       Analysis
}

// Itemize splits a paragraph of text into runs of uniform bidi direction,
// in logical order. Right-to-left runs get embedding level 1, all other runs
// level 0. Shapers expect this kind of pre-processing, as they do not
// resolve bidi levels themselves.
//
// Itemize does no full bidi resolution of nested embeddings; it is
// a helper for clients without a paragraph layout of their own.
func Itemize(text []byte, lang language.Tag) ([]Item, error) {
	if len(text) == 0 {
		return nil, nil
	}
	var p bidi.Paragraph
	if _, err := p.SetBytes(text); err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot prepare bidi paragraph")
	}
	order, err := p.Order()
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot order bidi paragraph")
	}
	// bidi positions are rune indices
	offsets := make([]int, 0, len(text)+1)
	for i := 0; i < len(text); {
		offsets = append(offsets, i)
		_, size := utf8.DecodeRune(text[i:])
		i += size
	}
	offsets = append(offsets, len(text))
	items := make([]Item, 0, order.NumRuns())
	for i := 0; i < order.NumRuns(); i++ {
		run := order.Run(i)
		start, end := run.Pos()
		if start < 0 || end+1 >= len(offsets) || end < start {
			return nil, core.Error(core.EINTERNAL, "bidi run [%d…%d] out of range", start, end)
		}
		item := Item{
			Offset:   offsets[start],
			Length:   offsets[end+1] - offsets[start],
			Analysis: Analysis{Language: lang},
		}
		if run.Direction() == bidi.RightToLeft {
			item.Analysis.Level = 1
		}
		tracer().Debugf("item %d: [%d…%d) level %d", i, item.Offset, item.Offset+item.Length,
			item.Analysis.Level)
		items = append(items, item)
	}
	return items, nil
}
