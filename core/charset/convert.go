package charset

import (
	"unicode/utf8"

	"golang.org/x/text/encoding"
)

// EUCIndex combines an EUC byte pair into a glyph index by stripping the
// high bits set for the G1 code set. The result fits into 15 bits; for G1
// pairs it is at most 0x7e7e.
func EUCIndex(b0, b1 byte) uint32 {
	return uint32(b0&0x7f)<<8 | uint32(b1&0x7f)
}

// isG1 checks whether b is a valid byte of an EUC G1 (94×94) character.
func isG1(b byte) bool {
	return b >= 0xa1 && b <= 0xfe
}

// Converter converts characters to glyph indices within a charset.
//
// A converter is stateful: it holds an encoder of golang.org/x/text which is
// created on Open and released on Close. It must not be used concurrently.
type Converter struct {
	charset *Charset
	encoder *encoding.Encoder
	err     error
	closed  bool
}

// Open creates a converter for a charset. If the charset's byte encoding is not
// available, Open returns a converter together with the error. The converter will
// then report every conversion as a failure.
func Open(cs *Charset) (*Converter, error) {
	c := &Converter{charset: cs}
	if cs == nil {
		c.err = errNilCharset
		return c, c.err
	}
	if cs.Kind == DirectCodepoint {
		return c, nil
	}
	enc, err := encodingFor(cs)
	if err != nil {
		c.err = err
		return c, err
	}
	c.encoder = enc.NewEncoder()
	return c, nil
}

// Charset returns the charset this converter converts to.
func (c *Converter) Charset() *Charset {
	return c.charset
}

// Err returns the error which occurred when opening the converter, if any.
func (c *Converter) Err() error {
	return c.err
}

// Close releases the encoder. Subsequent conversions fail.
// Close may be called more than once.
func (c *Converter) Close() error {
	if c == nil || c.closed {
		return nil
	}
	c.closed = true
	c.encoder = nil
	return nil
}

// Convert converts the first character of input (UTF-8) to an index within the
// converter's charset. Bytes following the first character are ignored.
//
// If the character cannot be represented in the charset, ok is false. A failed
// conversion never produces an index.
func (c *Converter) Convert(input []byte) (index uint32, ok bool) {
	if c == nil || c.closed || c.err != nil || len(input) == 0 {
		return 0, false
	}
	_, size := utf8.DecodeRune(input)
	input = input[:size]
	switch c.charset.Kind {
	case SingleByte:
		return c.conv8bit(input)
	case DoubleByteEUC:
		return c.convEUC(input)
	case DirectCodepoint:
		return convUCS4(input)
	}
	return 0, false
}

// conv8bit expects exactly one output byte, which is the index.
func (c *Converter) conv8bit(input []byte) (uint32, bool) {
	var out [1]byte
	c.encoder.Reset()
	nDst, nSrc, err := c.encoder.Transform(out[:], input, true)
	if err != nil || nSrc != len(input) || nDst != 1 {
		tracer().Debugf("%s cannot represent %q", c.charset.Name, input)
		return 0, false
	}
	return uint32(out[0]), true
}

// convEUC accepts a single ASCII byte or a G1 byte pair.
func (c *Converter) convEUC(input []byte) (uint32, bool) {
	var out [2]byte
	c.encoder.Reset()
	nDst, nSrc, err := c.encoder.Transform(out[:], input, true)
	if err != nil || nSrc != len(input) {
		tracer().Debugf("%s cannot represent %q", c.charset.Name, input)
		return 0, false
	}
	switch {
	case nDst == 1 && out[0] < 0x80:
		return uint32(out[0]), true
	case nDst == 2 && isG1(out[0]) && isG1(out[1]):
		return EUCIndex(out[0], out[1]), true
	}
	tracer().Debugf("%s: %q converts to non-G1 sequence % x", c.charset.Name, input, out[:nDst])
	return 0, false
}

func convUCS4(input []byte) (uint32, bool) {
	r, size := utf8.DecodeRune(input)
	if r == utf8.RuneError && size <= 1 {
		return 0, false
	}
	return uint32(r), true
}
