package glyph

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"sort"

	"github.com/ironsheep/wordsearch-extract/internal/config"
	"github.com/ironsheep/wordsearch-extract/internal/imaging"
	"github.com/ironsheep/wordsearch-extract/internal/layout"
)

// ErrDegenerate is returned for a cell or word with no pixels inside the page.
var ErrDegenerate = errors.New("degenerate region")

// CellSource is the region a grid cell's glyph is rendered from.
type CellSource struct {
	Rect image.Rectangle

	// Blank is set when no ink component qualified and Rect is the whole
	// (shrunk) cell.
	Blank bool
}

// Extractor finds glyph regions on a page and renders them.
// An Extractor is safe for concurrent use; every call owns its own buffers.
type Extractor struct {
	cfg    config.Glyph
	logger *slog.Logger
}

// NewExtractor creates an extractor. A nil logger uses slog.Default().
func NewExtractor(cfg config.Glyph, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{cfg: cfg, logger: logger}
}

// Cell returns the glyph source for one grid cell.
//
// The cell is shrunk by GridMargin on every side to keep ruled-line
// remnants out; when that leaves nothing the raw cell is used. Inside it,
// the largest component with more than MinBlobArea pixels is the letter.
func (e *Extractor) Cell(page *imaging.Page, cell layout.Box) (CellSource, error) {
	area := e.cellArea(page, cell)
	if area.Empty() {
		return CellSource{}, fmt.Errorf("cell at (%d,%d): %w", cell.X, cell.Y, ErrDegenerate)
	}

	var best Blob
	for _, b := range FindBlobs(page, area, e.cfg.BlackThreshold) {
		if b.Area > e.cfg.MinBlobArea && b.Area > best.Area {
			best = b
		}
	}
	if best.Area == 0 {
		return CellSource{Rect: area, Blank: true}, nil
	}
	return CellSource{Rect: best.Rect()}, nil
}

func (e *Extractor) cellArea(page *imaging.Page, cell layout.Box) image.Rectangle {
	raw := cell.Rect().Intersect(page.Bounds())

	m := e.cfg.GridMargin
	if cell.Width-2*m <= 0 || cell.Height-2*m <= 0 {
		return raw
	}
	safe := layout.Box{X: cell.X + m, Y: cell.Y + m, Width: cell.Width - 2*m, Height: cell.Height - 2*m}
	if r := safe.Rect().Intersect(page.Bounds()); !r.Empty() {
		return r
	}
	return raw
}

// Word returns the letter regions of one word, left to right.
//
// Components smaller than MinBlobArea are dropped as noise. Components are
// ordered by their left edge; equal edges keep scan order.
func (e *Extractor) Word(page *imaging.Page, word layout.Box) ([]image.Rectangle, error) {
	area := word.Rect().Intersect(page.Bounds())
	if area.Empty() {
		return nil, fmt.Errorf("word at (%d,%d): %w", word.X, word.Y, ErrDegenerate)
	}

	all := FindBlobs(page, area, e.cfg.BlackThreshold)
	blobs := all[:0]
	for _, b := range all {
		if b.Area >= e.cfg.MinBlobArea {
			blobs = append(blobs, b)
		}
	}
	sort.SliceStable(blobs, func(i, j int) bool { return blobs[i].X < blobs[j].X })

	letters := make([]image.Rectangle, 0, len(blobs))
	for _, b := range blobs {
		letters = append(letters, SplitBlob(page, b, e.cfg.BlackThreshold, e.cfg.ExpectedLetterRatio)...)
	}
	return letters, nil
}

// Render draws r from img on an OutputSize square canvas with Padding.
func (e *Extractor) Render(img image.Image, r image.Rectangle) (*image.NRGBA, error) {
	glyph, err := imaging.RenderGlyph(img, r, e.cfg.OutputSize, e.cfg.Padding)
	if errors.Is(err, imaging.ErrEmptyRegion) {
		return nil, fmt.Errorf("glyph %v: %w", r, ErrDegenerate)
	}
	return glyph, err
}
