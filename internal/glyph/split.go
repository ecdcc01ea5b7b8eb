package glyph

import (
	"image"

	"github.com/ironsheep/wordsearch-extract/internal/imaging"
)

// LetterCount estimates how many letters a w×h component holds, assuming
// letters are ratio times as wide as they are tall. The result is at least 1.
func LetterCount(w, h int, ratio float64) int {
	if h <= 0 || ratio <= 0 {
		return 1
	}
	n := int(float64(w)/(float64(h)*ratio) + 0.5)
	if n < 1 {
		n = 1
	}
	return n
}

// SplitBlob cuts b into LetterCount sub-rectangles, left to right.
//
// Each interior cut starts from its ideal position k*chunk and moves to the
// column with the least ink within a third of a chunk, never at or before
// the previous cut and never at the blob's far edge. Ties go to the column
// closest to the ideal position.
func SplitBlob(page *imaging.Page, b Blob, threshold int, ratio float64) []image.Rectangle {
	n := LetterCount(b.Width, b.Height, ratio)
	if n == 1 {
		return []image.Rectangle{b.Rect()}
	}

	hist := page.ColumnProfile(b.Rect(), threshold)[b.X : b.X+b.Width]
	chunk := b.Width / n

	parts := make([]image.Rectangle, 0, n)
	current := 0
	for k := 1; k < n; k++ {
		cut := bestCut(hist, current, k*chunk, chunk/3)
		if cut <= current || cut >= b.Width {
			continue
		}
		parts = append(parts, image.Rect(b.X+current, b.Y, b.X+cut, b.Y+b.Height))
		current = cut
	}
	return append(parts, image.Rect(b.X+current, b.Y, b.X+b.Width, b.Y+b.Height))
}

// bestCut searches [ideal-reach, ideal+reach) in hist for the column with the
// least ink, clamped to (prev, len(hist)-1). An empty window gives ideal.
func bestCut(hist []int, prev, ideal, reach int) int {
	start, end := ideal-reach, ideal+reach
	if start <= prev {
		start = prev + 1
	}
	if end >= len(hist) {
		end = len(hist) - 1
	}
	if start >= end {
		return ideal
	}

	best := start
	for x := start + 1; x < end; x++ {
		switch {
		case hist[x] < hist[best]:
			best = x
		case hist[x] == hist[best] && distance(x, ideal) < distance(best, ideal):
			best = x
		}
	}
	return best
}

func distance(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
