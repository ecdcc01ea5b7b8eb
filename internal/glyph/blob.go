package glyph

import (
	"image"

	"github.com/ironsheep/wordsearch-extract/internal/imaging"
)

// Blob is one 4-connected ink component in page coordinates.
type Blob struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
	Area   int `json:"area"`
}

// Rect returns the blob's bounding box.
func (b Blob) Rect() image.Rectangle {
	return image.Rect(b.X, b.Y, b.X+b.Width, b.Y+b.Height)
}

// FindBlobs labels the ink components inside r in scan order (top to
// bottom, then left to right by first pixel). Pixels outside r are never
// visited, so a component crossing the border of r is cut there.
func FindBlobs(page *imaging.Page, r image.Rectangle, threshold int) []Blob {
	r = r.Intersect(page.Bounds())
	blobs := make([]Blob, 0, 8)
	if r.Empty() {
		return blobs
	}

	w, h := r.Dx(), r.Dy()
	visited := make([]bool, w*h)
	stack := make([]image.Point, 0, 64)

	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if visited[(y-r.Min.Y)*w+x-r.Min.X] || !page.IsInk(x, y, threshold) {
				continue
			}
			var b Blob
			b, stack = fill(page, r, threshold, visited, stack, image.Pt(x, y))
			blobs = append(blobs, b)
		}
	}
	return blobs
}

// fill grows one component from seed with an explicit stack. It returns the
// stack so its backing array is reused by the next component.
func fill(page *imaging.Page, r image.Rectangle, threshold int, visited []bool, stack []image.Point, seed image.Point) (Blob, []image.Point) {
	w := r.Dx()
	minX, minY, maxX, maxY := seed.X, seed.Y, seed.X, seed.Y
	area := 0

	stack = append(stack[:0], seed)
	visited[(seed.Y-r.Min.Y)*w+seed.X-r.Min.X] = true

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		area++

		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}

		for _, n := range [4]image.Point{image.Pt(p.X+1, p.Y), image.Pt(p.X-1, p.Y), image.Pt(p.X, p.Y+1), image.Pt(p.X, p.Y-1)} {
			if !n.In(r) {
				continue
			}
			i := (n.Y-r.Min.Y)*w + n.X - r.Min.X
			if visited[i] || !page.IsInk(n.X, n.Y, threshold) {
				continue
			}
			visited[i] = true
			stack = append(stack, n)
		}
	}

	return Blob{X: minX, Y: minY, Width: maxX - minX + 1, Height: maxY - minY + 1, Area: area}, stack
}
