package layout

import (
	"image"

	"github.com/ironsheep/wordsearch-extract/internal/histogram"
	"github.com/ironsheep/wordsearch-extract/internal/imaging"
)

// SegmentWords cuts the word-list region into text lines and each line into
// words. Words are returned top to bottom, left to right within a line.
func (d *Detector) SegmentWords(page *imaging.Page, list Box) []Box {
	words := make([]Box, 0, 16)
	region := list.Rect().Intersect(page.Bounds())
	if region.Empty() {
		return words
	}

	lines := d.textLines(page, region)
	for _, line := range lines {
		span := image.Rect(region.Min.X, line.Start, region.Max.X, line.End+1)
		hist := page.ColumnProfile(span, d.cfg.BlackThreshold)
		for _, w := range histogram.Merge(histogram.Analyze(hist, 0), d.cfg.WordSplitGap) {
			words = append(words, Box{X: w.Start, Y: line.Start, Width: w.Thickness, Height: line.Thickness})
		}
	}

	d.logger.Debug("word list segmented", "lines", len(lines), "words", len(words))
	return words
}

// textLines returns the row bars of region tall enough to be text. Rows
// with at most LineInkFloor ink pixels count as blank, which keeps stray
// specks from bridging two lines.
func (d *Detector) textLines(page *imaging.Page, region image.Rectangle) []histogram.Bar {
	hist := page.RowProfile(region, d.cfg.BlackThreshold)
	bars := histogram.Merge(histogram.Analyze(hist, d.cfg.LineInkFloor), d.cfg.MergeGapY)

	lines := bars[:0]
	for _, b := range bars {
		if b.Thickness < d.cfg.TextLineMinHeight {
			d.logger.Debug("dropping thin text line", "start", b.Start, "thickness", b.Thickness)
			continue
		}
		lines = append(lines, b)
	}
	return lines
}
