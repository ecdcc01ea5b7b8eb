package glyph

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/ironsheep/wordsearch-extract/internal/config"
	"github.com/ironsheep/wordsearch-extract/internal/imaging"
	"github.com/ironsheep/wordsearch-extract/internal/layout"
)

// Report summarizes one export.
type Report struct {
	Dir        string   `json:"dir"`
	GridGlyphs int      `json:"grid_glyphs"`
	WordGlyphs int      `json:"word_glyphs"`
	BlankCells int      `json:"blank_cells"`
	Skipped    int      `json:"skipped"`
	Files      []string `json:"files"`
}

// Exporter writes the glyphs of a page layout to disk.
type Exporter struct {
	extractor *Extractor
	format    string
	workers   int
	logger    *slog.Logger
}

// NewExporter creates an exporter. A nil logger uses slog.Default().
func NewExporter(cfg config.Config, logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	format := strings.ToLower(cfg.Export.Format)
	if format == "" {
		format = "bmp"
	}
	workers := cfg.Export.Workers
	if workers < 1 {
		workers = 1
	}
	return &Exporter{
		extractor: NewExtractor(cfg.Glyph, logger),
		format:    format,
		workers:   workers,
		logger:    logger,
	}
}

// GridPath returns the file a cell's glyph is written to.
func GridPath(dir string, row, col int, format string) string {
	return filepath.Join(dir, "grid", fmt.Sprintf("%d_%d.%s", col, row, format))
}

// WordDir returns the folder holding the letters of word i.
func WordDir(dir string, i int) string {
	return filepath.Join(dir, "words", fmt.Sprintf("word_%d", i))
}

// LetterPath returns the file of letter n of word i.
func LetterPath(dir string, i, n int, format string) string {
	return filepath.Join(WordDir(dir, i), fmt.Sprintf("letter_%d.%s", n, format))
}

// Export renders every cell to dir/grid/<col>_<row> and every word's
// letters to dir/words/word_<i>/letter_<n>. Letter numbers are contiguous
// over the glyphs actually written.
//
// The grid and words folders of an earlier export into dir are removed
// first, so the folder only ever holds one page. A word without any
// written letter gets no folder.
//
// Degenerate cells and words are counted and skipped. Write failures and
// context cancellation abort the export.
func (x *Exporter) Export(ctx context.Context, page *imaging.Page, l *layout.PageLayout, dir string) (*Report, error) {
	for _, sub := range []string{"grid", "words"} {
		if err := os.RemoveAll(filepath.Join(dir, sub)); err != nil {
			return nil, fmt.Errorf("failed to clear %s folder: %w", sub, err)
		}
	}
	if err := os.MkdirAll(filepath.Join(dir, "grid"), 0755); err != nil {
		return nil, fmt.Errorf("failed to create grid folder: %w", err)
	}
	if l.HasWordList {
		if err := os.MkdirAll(filepath.Join(dir, "words"), 0755); err != nil {
			return nil, fmt.Errorf("failed to create words folder: %w", err)
		}
	}

	img := page.Image()
	report := &Report{Dir: dir, Files: []string{}}
	var mu sync.Mutex
	record := func(update func(r *Report)) {
		mu.Lock()
		update(report)
		mu.Unlock()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(x.workers)

	for r := 0; r < l.Rows; r++ {
		for c := 0; c < l.Cols; c++ {
			if gctx.Err() != nil {
				break
			}
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				return x.exportCell(page, img, l.Cell(r, c), GridPath(dir, r, c, x.format), record)
			})
		}
	}

	for i, word := range l.Words {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return x.exportWord(page, img, word, dir, i, record)
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sort.Strings(report.Files)
	x.logger.Info("glyphs exported",
		"dir", dir,
		"grid", report.GridGlyphs,
		"words", report.WordGlyphs,
		"blank_cells", report.BlankCells,
		"skipped", report.Skipped)
	return report, nil
}

func (x *Exporter) exportCell(page *imaging.Page, img image.Image, cell layout.Box, path string, record func(func(*Report))) error {
	src, err := x.extractor.Cell(page, cell)
	if err != nil {
		return x.skip(err, record)
	}

	glyph, err := x.extractor.Render(img, src.Rect)
	if err != nil {
		return x.skip(err, record)
	}
	if err := imaging.SaveGlyph(glyph, path); err != nil {
		return err
	}

	record(func(r *Report) {
		r.GridGlyphs++
		if src.Blank {
			r.BlankCells++
		}
		r.Files = append(r.Files, path)
	})
	return nil
}

func (x *Exporter) exportWord(page *imaging.Page, img image.Image, word layout.Box, dir string, i int, record func(func(*Report))) error {
	letters, err := x.extractor.Word(page, word)
	if err != nil {
		return x.skip(err, record)
	}

	paths := make([]string, 0, len(letters))
	for _, r := range letters {
		glyph, err := x.extractor.Render(img, r)
		if err != nil {
			if err := x.skip(err, record); err != nil {
				return err
			}
			continue
		}
		if len(paths) == 0 {
			if err := os.MkdirAll(WordDir(dir, i), 0755); err != nil {
				return fmt.Errorf("failed to create word folder: %w", err)
			}
		}
		path := LetterPath(dir, i, len(paths), x.format)
		if err := imaging.SaveGlyph(glyph, path); err != nil {
			return err
		}
		paths = append(paths, path)
	}

	record(func(r *Report) {
		r.WordGlyphs += len(paths)
		r.Files = append(r.Files, paths...)
	})
	return nil
}

// skip counts a degenerate element. Any other error is returned.
func (x *Exporter) skip(err error, record func(func(*Report))) error {
	if !errors.Is(err, ErrDegenerate) {
		return err
	}
	x.logger.Warn("skipping degenerate element", "error", err)
	record(func(r *Report) { r.Skipped++ })
	return nil
}
