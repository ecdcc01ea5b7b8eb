package layout

import (
	"image"
)

// Box is an axis-aligned pixel rectangle.
type Box struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Rect converts b to an image.Rectangle.
func (b Box) Rect() image.Rectangle {
	return image.Rect(b.X, b.Y, b.X+b.Width, b.Y+b.Height)
}

// Empty reports whether b has no pixels.
func (b Box) Empty() bool {
	return b.Width <= 0 || b.Height <= 0
}

// PageLayout is the result of layout detection.
//
// Cells holds Rows*Cols boxes in row-major order. When either axis found a
// single rule, Rows or Cols is zero and Cells is empty.
type PageLayout struct {
	GridX      int   `json:"grid_x"`
	GridY      int   `json:"grid_y"`
	GridWidth  int   `json:"grid_width"`
	GridHeight int   `json:"grid_height"`
	Rows       int   `json:"rows"`
	Cols       int   `json:"cols"`
	Cells      []Box `json:"cells"`

	HasWordList bool  `json:"has_word_list"`
	ListX       int   `json:"list_x"`
	ListY       int   `json:"list_y"`
	ListWidth   int   `json:"list_width"`
	ListHeight  int   `json:"list_height"`
	Words       []Box `json:"words"`
}

// Cell returns the cell at row r, column c.
func (l *PageLayout) Cell(r, c int) Box {
	return l.Cells[r*l.Cols+c]
}

// GridBox returns the grid bounds.
func (l *PageLayout) GridBox() Box {
	return Box{X: l.GridX, Y: l.GridY, Width: l.GridWidth, Height: l.GridHeight}
}

// ListBox returns the word-list bounds, or an empty Box when the page has
// no word list.
func (l *PageLayout) ListBox() Box {
	if !l.HasWordList {
		return Box{}
	}
	return Box{X: l.ListX, Y: l.ListY, Width: l.ListWidth, Height: l.ListHeight}
}

// Rects converts boxes for drawing.
func Rects(boxes []Box) []image.Rectangle {
	rects := make([]image.Rectangle, len(boxes))
	for i, b := range boxes {
		rects[i] = b.Rect()
	}
	return rects
}
