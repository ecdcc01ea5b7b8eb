// Package histogram turns one-dimensional ink profiles into bars.
//
// A profile is a slice of non-negative counts, one per column or row of a
// page region. A bar is a maximal run of entries strictly above a threshold.
// Bars are the only geometry the layout detector works with: grid blocks,
// ruled separators, text lines and words are all bars of some profile.
package histogram

import "sort"

// Bar is a maximal run of profile entries above a threshold.
// End is inclusive, so Thickness is End - Start + 1.
type Bar struct {
	Start     int `json:"start"`
	End       int `json:"end"`
	Thickness int `json:"thickness"`
}

func newBar(start, end int) Bar {
	return Bar{Start: start, End: end, Thickness: end - start + 1}
}

// Analyze returns the runs of hist where hist[i] > threshold, in order.
// A run touching the end of hist is closed at len(hist)-1. When nothing is
// above the threshold the result is an empty, non-nil slice.
func Analyze(hist []int, threshold int) []Bar {
	bars := make([]Bar, 0, 8)
	start := -1

	for i, v := range hist {
		if v > threshold {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			bars = append(bars, newBar(start, i-1))
			start = -1
		}
	}
	if start >= 0 {
		bars = append(bars, newBar(start, len(hist)-1))
	}
	return bars
}

// Merge coalesces neighbouring bars whose distance next.Start-cur.End is at
// most gap. The input must be sorted by Start and is left untouched.
func Merge(bars []Bar, gap int) []Bar {
	merged := make([]Bar, 0, len(bars))
	if len(bars) == 0 {
		return merged
	}

	cur := bars[0]
	for _, next := range bars[1:] {
		if next.Start-cur.End <= gap {
			cur = newBar(cur.Start, next.End)
			continue
		}
		merged = append(merged, cur)
		cur = next
	}
	return append(merged, cur)
}

// SortByThickness orders bars by decreasing thickness in place.
// The sort is stable: among equally thick bars the earlier one stays first.
func SortByThickness(bars []Bar) {
	sort.SliceStable(bars, func(i, j int) bool {
		return bars[i].Thickness > bars[j].Thickness
	})
}

// Span returns the distance covered from the first bar's Start to the last
// bar's End, inclusive. It returns 0 for no bars.
func Span(bars []Bar) int {
	if len(bars) == 0 {
		return 0
	}
	return bars[len(bars)-1].End - bars[0].Start + 1
}
