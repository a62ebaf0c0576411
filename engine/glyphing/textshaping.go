/*
Package glyphing holds the contracts between text layout and shaping engines.

A shaping engine converts a run of text, given as UTF-8 bytes, into a run of
glyphs for a font. The run of text has been analysed beforehand (see Itemize),
resulting in an Analysis, which tells the engine about the embedding level and
the language of the text.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package glyphing

import (
	"github.com/npillmayer/basicshape/core/font"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/text/language"
)

// tracer traces with key 'basicshape.glyphs'.
func tracer() tracing.Trace {
	return tracing.Select("basicshape.glyphs")
}

// Direction is the direction to typeset text in.
type Direction int

// Direction to typeset text in.
const (
	LeftToRight Direction = iota
	RightToLeft
	TopToBottom
	BottomToTop
)

func (d Direction) String() string {
	switch d {
	case LeftToRight:
		return "LeftToRight"
	case RightToLeft:
		return "RightToLeft"
	case TopToBottom:
		return "TopToBottom"
	case BottomToTop:
		return "BottomToTop"
	}
	return "Direction(?)"
}

// Analysis is the result of analysing a run of text, prior to shaping.
type Analysis struct {
	Level    uint8        // bidi embedding level; odd levels are right-to-left
	Language language.Tag // BCP 47 language tag, may be undetermined
}

// IsRTL is a predicate: is the text to be laid out right-to-left?
func (a Analysis) IsRTL() bool {
	return a.Level&1 == 1
}

// Direction returns the horizontal direction for the embedding level.
func (a Analysis) Direction() Direction {
	if a.IsRTL() {
		return RightToLeft
	}
	return LeftToRight
}

// LogAttr holds the logical attributes of a character position, as set by a
// line-break pass.
type LogAttr struct {
	IsLineBreak      bool // may break line before this position
	IsMandatoryBreak bool // must break line before this position
	IsCharBreak      bool // may break between characters before this position
	IsWhite          bool // position is whitespace
	IsCursorPosition bool // cursor may appear in front of this position
	IsWordStart      bool
	IsWordEnd        bool
}

// A Shaper creates a sequence of glyphs from a run of text.
// Glyphs are taken from a font, which has been prepared for a specific
// point-size.
type Shaper interface {
	// Shape converts a run of text into a run of glyphs, in visual order.
	Shape(f font.Font, text []byte, analysis *Analysis, run *GlyphRun) error
	// Break sets logical attributes for the characters of a run of text.
	Break(text []byte, analysis *Analysis, attrs []LogAttr)
	// Coverage reports which characters the shaper is able to handle for a font.
	Coverage(f font.Font, lang language.Tag) *Coverage
}
