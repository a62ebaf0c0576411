/*
Package unidata provides the Unicode character properties shapers need and
the standard library's package unicode lacks, most notably bidi mirroring.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package unidata

import (
	"unicode"

	"github.com/go-text/typesetting/unicodedata"
)

// MirrorOf returns the mirrored counterpart of a character, as given by
// BidiMirroring.txt. If r has no mirrored counterpart, MirrorOf returns r
// and false.
func MirrorOf(r rune) (rune, bool) {
	return unicodedata.LookupMirrorChar(r)
}

// IsNonSpacingMark is a predicate: is r of general category Mn?
func IsNonSpacingMark(r rune) bool {
	return unicodedata.LookupType(r) == unicode.Mn
}

// Category returns the two-letter general category of r, or "Cn" for
// unassigned code points.
func Category(r rune) string {
	t := unicodedata.LookupType(r)
	if t == nil {
		return "Cn"
	}
	return categoryNames[t]
}

var categoryNames = func() map[*unicode.RangeTable]string {
	m := make(map[*unicode.RangeTable]string, len(unicode.Categories))
	for name, t := range unicode.Categories {
		if len(name) == 2 {
			m[t] = name
		}
	}
	return m
}()
