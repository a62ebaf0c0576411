package glyphing

import "fmt"

// CoverageLevel tells how well a font (together with a shaper) supports a
// character.
type CoverageLevel uint8

// Coverage levels, ordered from worst to best.
const (
	CoverageNone        CoverageLevel = iota // character cannot be displayed
	CoverageFallback                         // character can be displayed by a fallback representation
	CoverageApproximate                      // character is displayed, but not quite correct
	CoverageExact                            // character is displayed as intended
)

func (l CoverageLevel) String() string {
	switch l {
	case CoverageNone:
		return "none"
	case CoverageFallback:
		return "fallback"
	case CoverageApproximate:
		return "approximate"
	case CoverageExact:
		return "exact"
	}
	return fmt.Sprintf("CoverageLevel(%d)", uint8(l))
}

const coverageBlockSize = 256

// Coverage maps code points to coverage levels. Code points never set have
// level CoverageNone. Storage is allocated in blocks of 256 code points, only
// for blocks holding covered characters.
type Coverage struct {
	blocks map[rune]*[coverageBlockSize]CoverageLevel
}

// NewCoverage creates an empty coverage.
func NewCoverage() *Coverage {
	return &Coverage{blocks: make(map[rune]*[coverageBlockSize]CoverageLevel)}
}

// Set sets the coverage level for a code point.
func (c *Coverage) Set(r rune, level CoverageLevel) {
	if r < 0 {
		return
	}
	b := c.blocks[r/coverageBlockSize]
	if b == nil {
		if level == CoverageNone {
			return
		}
		b = new([coverageBlockSize]CoverageLevel)
		c.blocks[r/coverageBlockSize] = b
	}
	b[r%coverageBlockSize] = level
}

// Get returns the coverage level of a code point.
func (c *Coverage) Get(r rune) CoverageLevel {
	if c == nil || r < 0 {
		return CoverageNone
	}
	if b := c.blocks[r/coverageBlockSize]; b != nil {
		return b[r%coverageBlockSize]
	}
	return CoverageNone
}

// Max merges another coverage into c, keeping the better level for every
// code point.
func (c *Coverage) Max(other *Coverage) {
	if other == nil {
		return
	}
	for blk, ob := range other.blocks {
		for i, level := range ob {
			r := blk*coverageBlockSize + rune(i)
			if level > c.Get(r) {
				c.Set(r, level)
			}
		}
	}
}

// CoverageRange is a range [From…To] of code points with equal coverage level.
type CoverageRange struct {
	From, To rune
	Level    CoverageLevel
}

// Ranges returns maximal ranges of code points in [from…to] with a coverage
// level other than CoverageNone, in ascending order.
func (c *Coverage) Ranges(from, to rune) []CoverageRange {
	var ranges []CoverageRange
	for r := from; r <= to; r++ {
		level := c.Get(r)
		if level == CoverageNone {
			continue
		}
		if n := len(ranges); n > 0 && ranges[n-1].Level == level && ranges[n-1].To == r-1 {
			ranges[n-1].To = r
			continue
		}
		ranges = append(ranges, CoverageRange{From: r, To: r, Level: level})
	}
	return ranges
}
