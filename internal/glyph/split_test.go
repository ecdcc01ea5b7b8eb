package glyph

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/wordsearch-extract/internal/imaging"
)

func TestLetterCount(t *testing.T) {
	tests := []struct {
		w, h  int
		ratio float64
		want  int
	}{
		{28, 20, 0.70, 2},
		{14, 20, 0.70, 1},
		{7, 20, 0.70, 1},
		{3, 20, 0.70, 1},
		{70, 20, 0.70, 5},
		{21, 10, 0.70, 3},
		{10, 0, 0.70, 1},
		{10, 10, 0, 1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, LetterCount(tt.w, tt.h, tt.ratio), "LetterCount(%d, %d, %v)", tt.w, tt.h, tt.ratio)
	}
}

// touchingPair draws two 12x20 letters joined by a one-pixel bridge four
// columns long, starting at x0.
func touchingPair(x0 int) (*imaging.Page, Blob) {
	img := newCanvas(x0+40, 40)
	ink(img, image.Rect(x0, 10, x0+12, 30))
	ink(img, image.Rect(x0+12, 20, x0+16, 21))
	ink(img, image.Rect(x0+16, 10, x0+28, 30))

	page := imaging.NewPage(img)
	return page, FindBlobs(page, page.Bounds(), 400)[0]
}

func TestSplitBlob_ThinnestBridge(t *testing.T) {
	page, blob := touchingPair(5)
	require.Equal(t, 28, blob.Width)

	parts := SplitBlob(page, blob, 400, 0.70)

	// The bridge spans local columns 12..15; the tie goes to the ideal cut 14.
	assert.Equal(t, []image.Rectangle{
		image.Rect(5, 10, 19, 30),
		image.Rect(19, 10, 33, 30),
	}, parts)
}

func TestSplitBlob_SingleLetter(t *testing.T) {
	img := newCanvas(30, 30)
	ink(img, image.Rect(5, 5, 17, 25))
	page := imaging.NewPage(img)
	blob := FindBlobs(page, page.Bounds(), 400)[0]

	parts := SplitBlob(page, blob, 400, 0.70)

	assert.Equal(t, []image.Rectangle{blob.Rect()}, parts)
}

func TestSplitBlob_PartsCoverBlob(t *testing.T) {
	img := newCanvas(100, 30)
	ink(img, image.Rect(0, 5, 70, 25)) // five letters' worth of solid ink
	page := imaging.NewPage(img)
	blob := FindBlobs(page, page.Bounds(), 400)[0]

	parts := SplitBlob(page, blob, 400, 0.70)

	require.Len(t, parts, 5)
	assert.Equal(t, blob.X, parts[0].Min.X)
	assert.Equal(t, blob.X+blob.Width, parts[len(parts)-1].Max.X)
	for i, p := range parts {
		assert.Positive(t, p.Dx(), "part %d", i)
		assert.Equal(t, blob.Height, p.Dy())
		if i > 0 {
			assert.Equal(t, parts[i-1].Max.X, p.Min.X, "part %d is not contiguous", i)
		}
	}
}

func TestBestCut(t *testing.T) {
	tests := []struct {
		name               string
		hist               []int
		prev, ideal, reach int
		want               int
	}{
		{"minimum in window", []int{9, 9, 9, 1, 9, 9, 9, 9}, 0, 4, 2, 3},
		{"tie toward ideal", []int{9, 1, 1, 1, 1, 1, 9, 9}, 0, 4, 3, 4},
		{"never behind previous cut", []int{5, 5, 0, 0, 5, 5, 5, 5}, 3, 4, 3, 4},
		{"never at far edge", []int{5, 5, 5, 5, 5, 0}, 0, 5, 3, 4},
		{"empty window", []int{1, 1, 1, 1}, 0, 2, 0, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, bestCut(tt.hist, tt.prev, tt.ideal, tt.reach))
		})
	}
}
