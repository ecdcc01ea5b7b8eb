package layout

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/ironsheep/wordsearch-extract/internal/config"
	"github.com/ironsheep/wordsearch-extract/internal/histogram"
	"github.com/ironsheep/wordsearch-extract/internal/imaging"
)

// Detector finds the page layout with a fixed set of thresholds.
// A Detector is safe for concurrent use.
type Detector struct {
	cfg    config.Detect
	logger *slog.Logger
}

// NewDetector creates a detector. A nil logger uses slog.Default().
func NewDetector(cfg config.Detect, logger *slog.Logger) *Detector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Detector{cfg: cfg, logger: logger}
}

// DetectLayout is a convenience wrapper that builds a Page from img and runs
// a detector with cfg.
func DetectLayout(img image.Image, cfg config.Detect) (*PageLayout, error) {
	return NewDetector(cfg, nil).Detect(imaging.NewPage(img))
}

// Detect runs the three projection passes and, when a word list was found,
// segments it into words.
func (d *Detector) Detect(page *imaging.Page) (*PageLayout, error) {
	layout := &PageLayout{
		Cells: []Box{},
		Words: []Box{},
	}

	if err := d.findBlocks(page, layout); err != nil {
		return nil, err
	}

	rows, err := d.findRows(page, layout)
	if err != nil {
		return nil, err
	}

	cols, err := d.findCols(page, layout)
	if err != nil {
		return nil, err
	}

	layout.Cells = buildCells(rows, cols)

	if layout.HasWordList {
		layout.Words = d.SegmentWords(page, layout.ListBox())
	}

	d.logger.Debug("layout detected",
		"grid", layout.GridBox(),
		"rows", layout.Rows,
		"cols", layout.Cols,
		"has_word_list", layout.HasWordList,
		"words", len(layout.Words))

	return layout, nil
}

// findBlocks is pass 1: the page's column profile split into blocks.
func (d *Detector) findBlocks(page *imaging.Page, layout *PageLayout) error {
	hist := page.ColumnProfile(page.Bounds(), d.cfg.BlackThreshold)
	blocks := histogram.Merge(histogram.Analyze(hist, d.cfg.BlobMinPixels), d.cfg.MergeGapX)
	if len(blocks) == 0 {
		return fmt.Errorf("pass 1: %w", ErrNoGridFound)
	}
	histogram.SortByThickness(blocks)

	grid := blocks[0]
	layout.GridX = grid.Start
	layout.GridWidth = grid.Thickness

	if len(blocks) > 1 && float64(blocks[1].Thickness) > float64(grid.Thickness)*d.cfg.MinListWidthRatio {
		list := blocks[1]
		layout.HasWordList = true
		layout.ListX = list.Start
		layout.ListWidth = list.Thickness
		layout.ListY = 0
		layout.ListHeight = page.Height
	}

	d.logger.Debug("pass 1 complete", "blocks", len(blocks), "grid_x", layout.GridX, "grid_width", layout.GridWidth)
	return nil
}

// findRows is pass 2: horizontal rules inside the grid's columns.
func (d *Detector) findRows(page *imaging.Page, layout *PageLayout) ([]histogram.Bar, error) {
	span := image.Rect(layout.GridX, 0, layout.GridX+layout.GridWidth, page.Height)
	hist := page.RowProfile(span, d.cfg.BlackThreshold)
	rules := histogram.Analyze(hist, int(float64(layout.GridWidth)*d.cfg.GridLineThreshold))
	if len(rules) == 0 {
		return nil, fmt.Errorf("pass 2: %w", ErrNoGridSeparators)
	}

	layout.GridY = rules[0].Start
	layout.GridHeight = rules[len(rules)-1].End - layout.GridY + 1
	layout.Rows = len(rules) - 1

	d.logger.Debug("pass 2 complete", "rules", len(rules), "grid_y", layout.GridY, "grid_height", layout.GridHeight)
	return rules, nil
}

// findCols is pass 3: vertical rules inside the grid's rows.
func (d *Detector) findCols(page *imaging.Page, layout *PageLayout) ([]histogram.Bar, error) {
	hist := page.ColumnProfile(layout.GridBox().Rect(), d.cfg.BlackThreshold)
	rules := histogram.Analyze(hist, int(float64(layout.GridHeight)*d.cfg.GridLineThreshold))
	if len(rules) == 0 {
		return nil, fmt.Errorf("pass 3: %w", ErrNoGridSeparators)
	}
	layout.Cols = len(rules) - 1

	d.logger.Debug("pass 3 complete", "rules", len(rules))
	return rules, nil
}

// buildCells intersects the row and column rules. Each cell spans the
// pixels strictly between two consecutive rules on both axes.
func buildCells(rows, cols []histogram.Bar) []Box {
	nr, nc := len(rows)-1, len(cols)-1
	if nr <= 0 || nc <= 0 {
		return []Box{}
	}

	cells := make([]Box, 0, nr*nc)
	for r := 0; r < nr; r++ {
		y0 := rows[r].End + 1
		y1 := rows[r+1].Start - 1
		for c := 0; c < nc; c++ {
			x0 := cols[c].End + 1
			x1 := cols[c+1].Start - 1
			cells = append(cells, Box{X: x0, Y: y0, Width: x1 - x0 + 1, Height: y1 - y0 + 1})
		}
	}
	return cells
}
