/*
Package charset knows about legacy character sets which fonts may be organized by.

Before Unicode fonts became the norm, X11-style font sets consisted of subfonts,
each covering a legacy 8-bit or EUC-encoded character set (ISO 8859-x, KOI8-R,
JIS X 0208, KS C 5601, GB 2312, …). A glyph inside such a subfont is addressed by the
character's code in the subfont's charset, not by its Unicode code point.

This package provides

▪︎ a static catalog of known charsets, each with a conversion strategy,

▪︎ a classifier which maps a code point to a mask index, denoting the subset of
charsets able to represent the code point,

▪︎ converters from UTF-8 to a charset-specific glyph index, and decoders for the
reverse direction.

Converters and decoders are stateful and must not be shared between goroutines.
The classification table is derived once per process from the charset decoders
of golang.org/x/text.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package charset

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'basicshape.charset'.
func tracer() tracing.Trace {
	return tracing.Select("basicshape.charset")
}
