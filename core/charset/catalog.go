package charset

import (
	"strings"

	"github.com/npillmayer/basicshape/core"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
)

// ConversionKind selects the strategy to convert a character to a glyph index
// within a charset.
type ConversionKind uint8

// Conversion strategies.
const (
	SingleByte      ConversionKind = iota // one output byte is the index
	DoubleByteEUC                         // EUC G1 byte pair, high bits stripped
	DirectCodepoint                       // the code point is the index
)

func (k ConversionKind) String() string {
	switch k {
	case SingleByte:
		return "SingleByte"
	case DoubleByteEUC:
		return "DoubleByteEUC"
	case DirectCodepoint:
		return "DirectCodepoint"
	}
	return "ConversionKind(?)"
}

// MaxCharsets is the upper limit for the number of charsets in the catalog.
// Masks are bit sets over charset indices.
const MaxCharsets = 32

// Charset describes a character set known to the catalog.
type Charset struct {
	Index int            // position in the catalog, unique
	Name  string         // IANA name of the byte encoding
	XLFD  string         // registry-encoding as advertised by font sets
	Kind  ConversionKind // conversion strategy
}

func (cs *Charset) String() string {
	return cs.XLFD
}

// The order of the catalog determines the priority of charsets during glyph
// lookup: more specific legacy charsets first, the universal charset last.
var catalog = [...]Charset{
	{0, "ISO-8859-1", "iso8859-1", SingleByte},
	{1, "ISO-8859-2", "iso8859-2", SingleByte},
	{2, "ISO-8859-3", "iso8859-3", SingleByte},
	{3, "ISO-8859-4", "iso8859-4", SingleByte},
	{4, "ISO-8859-5", "iso8859-5", SingleByte},
	{5, "ISO-8859-6", "iso8859-6", SingleByte},
	{6, "ISO-8859-7", "iso8859-7", SingleByte},
	{7, "ISO-8859-8", "iso8859-8", SingleByte},
	{8, "ISO-8859-9", "iso8859-9", SingleByte},
	{9, "ISO-8859-10", "iso8859-10", SingleByte},
	{10, "ISO-8859-13", "iso8859-13", SingleByte},
	{11, "ISO-8859-14", "iso8859-14", SingleByte},
	{12, "ISO-8859-15", "iso8859-15", SingleByte},
	{13, "KOI8-R", "koi8-r", SingleByte},
	{14, "windows-874", "tis620-0", SingleByte},
	{15, "EUC-JP", "jisx0208.1983-0", DoubleByteEUC},
	{16, "EUC-KR", "ksc5601.1987-0", DoubleByteEUC},
	{17, "GBK", "gb2312.1980-0", DoubleByteEUC},
	{18, "ISO-10646", "iso10646-1", DirectCodepoint},
}

// compile time check: catalog must fit into a mask
var _ [MaxCharsets - len(catalog)]struct{}

var charsets = func() []*Charset {
	all := make([]*Charset, len(catalog))
	for i := range catalog {
		all[i] = &catalog[i]
	}
	return all
}()

// Universal is the charset every code point is representable in.
var Universal = &catalog[len(catalog)-1]

// Catalog returns all known charsets, in order of priority.
// Clients must not modify the returned slice.
func Catalog() []*Charset {
	return charsets
}

// ByIndex returns the charset at catalog position i, or nil.
func ByIndex(i int) *Charset {
	if i < 0 || i >= len(catalog) {
		return nil
	}
	return &catalog[i]
}

// ByXLFD finds a charset by its XLFD registry-encoding (case-insensitive).
// Returns nil if no charset matches.
func ByXLFD(name string) *Charset {
	name = strings.TrimSpace(name)
	for _, cs := range charsets {
		if strings.EqualFold(cs.XLFD, name) {
			return cs
		}
	}
	return nil
}

// encodingFor resolves the byte encoding of a legacy charset through the IANA index.
func encodingFor(cs *Charset) (encoding.Encoding, error) {
	if cs.Kind == DirectCodepoint {
		return nil, core.Error(core.EUNSUPPORTED, "charset %s needs no byte encoding", cs.XLFD)
	}
	enc, err := ianaindex.IANA.Encoding(cs.Name)
	if err != nil {
		return nil, core.WrapError(err, core.EMISSING, "no encoding for charset %s", cs.Name)
	}
	if enc == nil {
		return nil, core.Error(core.EMISSING, "encoding %s not supported", cs.Name)
	}
	return enc, nil
}
