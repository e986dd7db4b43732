package compiler

import (
	"fmt"
	"sort"
)

type byteRange struct {
	from byte
	to   byte
}

func (r byteRange) String() string {
	return fmt.Sprintf("%X-%X (%v-%v)", r.from, r.to, r.from, r.to)
}

// codePointRange is an inclusive range of Unicode code points.
type codePointRange struct {
	from rune
	to   rune
}

// normalizeCodePointRanges sorts the ranges and merges overlapping or adjacent ones.
func normalizeCodePointRanges(rs []codePointRange) []codePointRange {
	if len(rs) == 0 {
		return nil
	}
	sorted := make([]codePointRange, len(rs))
	copy(sorted, rs)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].from < sorted[j].from
	})
	merged := []codePointRange{sorted[0]}
	for _, r := range sorted[1:] {
		last := &merged[len(merged)-1]
		if r.from <= last.to+1 {
			if r.to > last.to {
				last.to = r.to
			}
			continue
		}
		merged = append(merged, r)
	}
	return merged
}

// complementCodePointRanges returns the code points within [min, max] not covered by rs.
// rs must be normalized.
func complementCodePointRanges(rs []codePointRange, min, max rune) []codePointRange {
	var comp []codePointRange
	next := min
	for _, r := range rs {
		if r.from > next {
			comp = append(comp, codePointRange{from: next, to: r.from - 1})
		}
		if r.to+1 > next {
			next = r.to + 1
		}
	}
	if next <= max {
		comp = append(comp, codePointRange{from: next, to: max})
	}
	return comp
}
