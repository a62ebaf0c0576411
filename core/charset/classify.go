package charset

import (
	"sort"
	"sync"
)

// MaskIndex identifies a subset of charsets. Code points with equal mask index are
// representable by the same charsets. Mask index 0 denotes the empty subset, i.e.
// only the universal charset applies.
type MaskIndex uint8

// Mask is a bit set over catalog indices.
type Mask uint32

// Has is a predicate: does the mask contain charset cs?
func (m Mask) Has(cs *Charset) bool {
	return cs != nil && m&(1<<uint(cs.Index)) != 0
}

// maxMasks is the number of distinct masks a MaskIndex is able to address.
const maxMasks = 255

// charRange is an entry of the classification table: all code points in
// [lo…hi] share mask index mask.
type charRange struct {
	lo, hi uint16
	mask   MaskIndex
}

type maskTables struct {
	ranges []charRange // sorted, non-overlapping; gaps have mask index 0
	masks  []Mask      // MaskIndex → Mask
}

var tables maskTables
var tablesDerivation sync.Once

func classification() *maskTables {
	tablesDerivation.Do(func() {
		tables = deriveTables(Catalog())
	})
	return &tables
}

// Classify returns the mask index of a code point. Code points outside the Basic
// Multilingual Plane or not representable in any legacy charset have mask index 0.
func Classify(r rune) MaskIndex {
	if r < 0 || r > 0xffff {
		return 0
	}
	t := classification()
	c := uint16(r)
	i := sort.Search(len(t.ranges), func(i int) bool {
		return t.ranges[i].hi >= c
	})
	if i < len(t.ranges) && t.ranges[i].lo <= c {
		return t.ranges[i].mask
	}
	return 0
}

// MaskOf returns the legacy charsets denoted by a mask index. The universal
// charset is never part of the result.
func MaskOf(m MaskIndex) Mask {
	t := classification()
	if int(m) >= len(t.masks) {
		return 0
	}
	return t.masks[m]
}

// MaskCount returns the number of distinct mask indices in use, including 0.
func MaskCount() int {
	return len(classification().masks)
}

// Candidates returns the charsets to try for code points of mask index m, in
// order of priority. The universal charset is always included, as the last
// entry.
func Candidates(m MaskIndex) []*Charset {
	mask := MaskOf(m) | 1<<uint(Universal.Index)
	cands := make([]*Charset, 0, 4)
	for _, cs := range Catalog() {
		if mask.Has(cs) {
			cands = append(cands, cs)
		}
	}
	return cands
}

// deriveTables enumerates the repertoire of every legacy charset and groups the
// code points of the BMP by the set of charsets containing them.
func deriveTables(charsets []*Charset) maskTables {
	perCodepoint := make([]Mask, 0x10000)
	for _, cs := range charsets {
		if cs.Kind == DirectCodepoint {
			continue
		}
		dec := NewDecoder(cs)
		if err := dec.Err(); err != nil {
			tracer().Errorf("charset %s excluded from classification: %v", cs.XLFD, err)
			continue
		}
		bit := Mask(1) << uint(cs.Index)
		n := 0
		repertoire(cs.Kind, func(index uint32) {
			if r, ok := dec.Decode(index); ok && r <= 0xffff {
				perCodepoint[r] |= bit
				n++
			}
		})
		tracer().Debugf("charset %s covers %d code points", cs.XLFD, n)
	}
	t := maskTables{masks: []Mask{0}}
	ids := map[Mask]MaskIndex{0: 0}
	for c, m := range perCodepoint {
		id, ok := ids[m]
		if !ok {
			if len(t.masks) >= maxMasks {
				tracer().Errorf("too many charset masks, mask %#x folded into 0", m)
			} else {
				id = MaskIndex(len(t.masks))
				t.masks = append(t.masks, m)
			}
			ids[m] = id
		}
		if id == 0 {
			continue
		}
		if last := len(t.ranges) - 1; last >= 0 && t.ranges[last].mask == id &&
			int(t.ranges[last].hi)+1 == c {
			t.ranges[last].hi = uint16(c)
			continue
		}
		t.ranges = append(t.ranges, charRange{lo: uint16(c), hi: uint16(c), mask: id})
	}
	tracer().Infof("classification: %d masks in %d ranges", len(t.masks), len(t.ranges))
	return t
}

// repertoire calls f for every index a charset of kind k may contain.
func repertoire(k ConversionKind, f func(uint32)) {
	switch k {
	case SingleByte:
		for b := uint32(0); b <= 0xff; b++ {
			f(b)
		}
	case DoubleByteEUC:
		for hi := byte(0xa1); hi <= 0xfe; hi++ {
			for lo := byte(0xa1); lo <= 0xfe; lo++ {
				f(EUCIndex(hi, lo))
			}
		}
	}
}
