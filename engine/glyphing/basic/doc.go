/*
Package basic implements a shaper for scripts without complex shaping
requirements.

The basic shaper maps every character of a run of text to exactly one glyph.
It works with fonts organized as sets of charset-specific subfonts (see
package font): for every character it determines the legacy charsets able to
represent it, asks the font for subfonts of these charsets, converts the
character into a charset-specific glyph index and checks the subfont for the
glyph. Right-to-left runs are mirrored and reordered, combining marks are
merged into the cluster of their base character.

The shaper is not safe for concurrent use with the same font. Per-font state
is held in a CacheTable, which has to be told when a font goes away (see
Engine.AttachTo).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package basic

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'basicshape.glyphs'.
func tracer() tracing.Trace {
	return tracing.Select("basicshape.glyphs")
}
