package basic

import (
	"github.com/npillmayer/basicshape/core/charset"
	"github.com/npillmayer/basicshape/core/font"
)

// Entry is a candidate location for glyphs: a subfont together with the
// charset it has been found for.
type Entry struct {
	Subfont font.Subfont
	Charset *charset.Charset
}

// MaskTable lists the subfonts of a font able to hold characters of a single
// mask index, in order of priority. Mask tables are immutable once built.
type MaskTable struct {
	Entries []Entry
}

// Len returns the number of entries of the table.
func (mt *MaskTable) Len() int {
	if mt == nil {
		return 0
	}
	return len(mt.Entries)
}

const maskTableCount = 256

// CharCache holds per-font state of the shaper: mask tables, built on first
// use for a mask index, and converters, opened on first use for a charset.
// A CharCache is bound to a single font.
type CharCache struct {
	tables     [maskTableCount]*MaskTable
	converters [charset.MaxCharsets]*charset.Converter
	closed     bool
}

// NewCharCache creates an empty cache.
func NewCharCache() *CharCache {
	return &CharCache{}
}

// MaskTable returns the mask table for mask index m with respect to font f.
// The table is built on first request and cached for the lifetime of the
// cache. The font is asked for its subfonts only once per mask index.
//
// Clients must always pass the font the cache is bound to.
func (cc *CharCache) MaskTable(f font.Font, m charset.MaskIndex) *MaskTable {
	if mt := cc.tables[m]; mt != nil {
		return mt
	}
	if cc.closed {
		tracer().Errorf("character cache used after release")
		return &MaskTable{}
	}
	mt := buildMaskTable(f, m)
	cc.tables[m] = mt
	return mt
}

func buildMaskTable(f font.Font, m charset.MaskIndex) *MaskTable {
	candidates := charset.Candidates(m)
	names := make([]string, len(candidates))
	for i, cs := range candidates {
		names[i] = cs.XLFD
	}
	subfonts, which := f.ListSubfonts(names)
	mt := &MaskTable{Entries: make([]Entry, 0, len(subfonts))}
	for i, sf := range subfonts {
		if i >= len(which) || which[i] < 0 || which[i] >= len(candidates) {
			tracer().Errorf("font returned invalid charset position for subfont %d", sf)
			continue
		}
		mt.Entries = append(mt.Entries, Entry{Subfont: sf, Charset: candidates[which[i]]})
	}
	tracer().Debugf("mask table %d: %d candidate charsets, %d subfonts", m, len(candidates),
		len(mt.Entries))
	return mt
}

// Converter returns the converter for a charset, opening it on first use.
// If the charset's encoding is unavailable, the error is logged once and the
// converter returned will fail every conversion.
func (cc *CharCache) Converter(cs *charset.Charset) *charset.Converter {
	if cs == nil || cs.Index < 0 || cs.Index >= charset.MaxCharsets {
		return nil
	}
	if c := cc.converters[cs.Index]; c != nil {
		return c
	}
	if cc.closed {
		return nil
	}
	c, err := charset.Open(cs)
	if err != nil {
		tracer().Errorf("cannot open converter for %s: %v", cs.Name, err)
	}
	cc.converters[cs.Index] = c
	return c
}

// Close releases all converters and mask tables. Close may be called more
// than once; only the first call has an effect.
func (cc *CharCache) Close() {
	if cc == nil || cc.closed {
		return
	}
	cc.closed = true
	for i, c := range cc.converters {
		if c != nil {
			c.Close()
			cc.converters[i] = nil
		}
	}
	for i := range cc.tables {
		cc.tables[i] = nil
	}
}

// --- Cache table -----------------------------------------------------------

// CacheTable associates character caches with fonts, identified by
// font.KeyOf.
//
// A CacheTable does no locking.
type CacheTable struct {
	caches map[font.Key]*CharCache
}

// NewCacheTable creates an empty cache table.
func NewCacheTable() *CacheTable {
	return &CacheTable{caches: make(map[font.Key]*CharCache)}
}

// For returns the character cache of a font, creating it if necessary.
// Fonts without an identity are rejected with an error of code EINVALID.
func (ct *CacheTable) For(f font.Font) (*CharCache, error) {
	key, err := font.KeyOf(f)
	if err != nil {
		return nil, err
	}
	if cc, ok := ct.caches[key]; ok {
		return cc, nil
	}
	cc := NewCharCache()
	ct.caches[key] = cc
	return cc, nil
}

// Release closes the character cache of a font and forgets about it.
// Its signature allows using it as a font registry release hook.
func (ct *CacheTable) Release(f font.Font) {
	key, err := font.KeyOf(f)
	if err != nil {
		return
	}
	if cc, ok := ct.caches[key]; ok {
		tracer().Debugf("releasing character cache for font %T", f)
		cc.Close()
		delete(ct.caches, key)
	}
}

// Len returns the number of fonts with a character cache.
func (ct *CacheTable) Len() int {
	return len(ct.caches)
}
