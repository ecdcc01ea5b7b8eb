package layout

import "errors"

var (
	// ErrNoGridFound means the page has no column with enough ink to form a
	// block.
	ErrNoGridFound = errors.New("no grid found")

	// ErrNoGridSeparators means the grid block contains no ruled line on one
	// of its axes.
	ErrNoGridSeparators = errors.New("no grid separators")
)
