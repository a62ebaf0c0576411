package charset

import (
	"unicode"
	"unicode/utf8"

	"github.com/npillmayer/basicshape/core"
	"golang.org/x/text/encoding"
)

var errNilCharset = core.Error(core.EINVALID, "charset is nil")

// Decoder maps glyph indices within a charset back to Unicode code points.
// It is the inverse of a Converter and is used by font backends to locate
// the glyph for a charset-specific index.
//
// For DoubleByteEUC charsets only the G1 set (94×94 characters) is decodable;
// indices below 0x80 do not denote a character of the charset.
type Decoder struct {
	charset *Charset
	decoder *encoding.Decoder
	err     error
}

// NewDecoder creates a decoder for a charset. Errors are reported by Err and
// cause every decoding to fail.
func NewDecoder(cs *Charset) *Decoder {
	d := &Decoder{charset: cs}
	if cs == nil {
		d.err = errNilCharset
		return d
	}
	if cs.Kind == DirectCodepoint {
		return d
	}
	enc, err := encodingFor(cs)
	if err != nil {
		d.err = err
		return d
	}
	d.decoder = enc.NewDecoder()
	return d
}

// Err returns the error which occurred when creating the decoder, if any.
func (d *Decoder) Err() error {
	return d.err
}

// Decode returns the code point for a glyph index within the decoder's charset.
func (d *Decoder) Decode(index uint32) (rune, bool) {
	if d.err != nil {
		return 0, false
	}
	var src [2]byte
	var n int
	switch d.charset.Kind {
	case DirectCodepoint:
		r := rune(index)
		if r > unicode.MaxRune || !utf8.ValidRune(r) {
			return 0, false
		}
		return r, true
	case SingleByte:
		if index > 0xff {
			return 0, false
		}
		src[0], n = byte(index), 1
	case DoubleByteEUC:
		hi, lo := byte(index>>8)|0x80, byte(index)|0x80
		if index&^0x7f7f != 0 || !isG1(hi) || !isG1(lo) {
			return 0, false
		}
		src[0], src[1], n = hi, lo, 2
	default:
		return 0, false
	}
	var out [utf8.UTFMax]byte
	d.decoder.Reset()
	nDst, nSrc, err := d.decoder.Transform(out[:], src[:n], true)
	if err != nil || nSrc != n || nDst == 0 {
		return 0, false
	}
	r, size := utf8.DecodeRune(out[:nDst])
	if r == utf8.RuneError || size != nDst {
		return 0, false
	}
	return r, true
}

// Decode is a convenience function to decode a single index. It creates a new
// decoder for every call; clients decoding many indices should use a Decoder.
func Decode(cs *Charset, index uint32) (rune, bool) {
	return NewDecoder(cs).Decode(index)
}
