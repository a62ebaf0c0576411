/*
Package sfntset implements a font backend modelled after X11 font sets.

A Set is a collection of subfonts. Every subfont is an OpenType or TrueType
font, registered for a single charset (given by its XLFD registry-encoding
name, e.g. "iso8859-1"). Glyph indices within a subfont are charset-specific
indices, as produced by package charset. The Set maps them back to Unicode and
looks them up in the font's character map.

Sets are not safe for concurrent use.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package sfntset

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'basicshape.fonts'.
func tracer() tracing.Trace {
	return tracing.Select("basicshape.fonts")
}
