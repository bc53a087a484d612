package vm

import "sort"

// IndexRange is a contiguous span of list positions representing a
// multi-select block.
type IndexRange struct {
	Index  int
	Length int
}

// Contains reports whether the position falls inside the range.
func (r IndexRange) Contains(i int) bool {
	return i >= r.Index && i < r.Index+r.Length
}

// NormalizeRanges sorts the ranges, drops empty ones, and coalesces
// overlapping or adjacent spans.
func NormalizeRanges(ranges []IndexRange) []IndexRange {
	cleaned := make([]IndexRange, 0, len(ranges))
	for _, r := range ranges {
		if r.Length <= 0 {
			continue
		}
		if r.Index < 0 {
			r.Length += r.Index
			r.Index = 0
			if r.Length <= 0 {
				continue
			}
		}
		cleaned = append(cleaned, r)
	}
	if len(cleaned) < 2 {
		return cleaned
	}
	sort.Slice(cleaned, func(i, j int) bool {
		return cleaned[i].Index < cleaned[j].Index
	})
	out := cleaned[:1]
	for _, r := range cleaned[1:] {
		last := &out[len(out)-1]
		if r.Index <= last.Index+last.Length {
			if end := r.Index + r.Length; end > last.Index+last.Length {
				last.Length = end - last.Index
			}
			continue
		}
		out = append(out, r)
	}
	return out
}

// TotalLength sums the lengths of the ranges.
func TotalLength(ranges []IndexRange) int {
	total := 0
	for _, r := range ranges {
		total += r.Length
	}
	return total
}
