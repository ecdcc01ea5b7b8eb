// Package pipeline chains loading, layout detection and glyph export for the
// command line tool and the MCP server.
package pipeline

import (
	"context"
	"fmt"
	"image"
	"log/slog"

	"github.com/ironsheep/wordsearch-extract/internal/config"
	"github.com/ironsheep/wordsearch-extract/internal/glyph"
	"github.com/ironsheep/wordsearch-extract/internal/imaging"
	"github.com/ironsheep/wordsearch-extract/internal/layout"
)

// Overlay colors.
const (
	GridColor = "#0066FF"
	CellColor = "#00AA44"
	ListColor = "#FF8800"
)

// Pipeline runs the extraction steps for one configuration.
type Pipeline struct {
	cfg      config.Config
	cache    *imaging.ImageCache
	detector *layout.Detector
	exporter *glyph.Exporter
	logger   *slog.Logger
}

// Result is the outcome of a full extraction.
type Result struct {
	Layout *layout.PageLayout `json:"layout"`
	Report *glyph.Report      `json:"report"`
}

// New creates a pipeline. A nil cache gets a private one configured from
// cfg.Input; a nil logger uses slog.Default().
func New(cfg config.Config, cache *imaging.ImageCache, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	if cache == nil {
		cache = NewCache(cfg.Input)
	}
	return &Pipeline{
		cfg:      cfg,
		cache:    cache,
		detector: layout.NewDetector(cfg.Detect, logger),
		exporter: glyph.NewExporter(cfg, logger),
		logger:   logger,
	}
}

// NewCache creates an image cache rendering PDFs as configured.
func NewCache(in config.Input) *imaging.ImageCache {
	cache := imaging.NewImageCache()
	if in.PDFDPI > 0 {
		cache.PDFDPI = in.PDFDPI
	}
	cache.PDFPage = in.PDFPage
	return cache
}

// Config returns the configuration the pipeline was built with.
func (p *Pipeline) Config() config.Config {
	return p.cfg
}

// Image loads path, binarized when the configuration asks for it.
func (p *Pipeline) Image(path string) (image.Image, error) {
	img, err := p.cache.Load(path)
	if err != nil {
		return nil, err
	}
	if p.cfg.Input.Binarize {
		level := p.cfg.Input.BinarizeLevel
		if level == 0 {
			level = imaging.OtsuLevel(img)
		}
		p.logger.Debug("binarizing page", "path", path, "level", level, "auto", p.cfg.Input.BinarizeLevel == 0)
		return imaging.Binarize(img, level), nil
	}
	return img, nil
}

// Page loads path as a Page whose projections use the configured workers.
func (p *Pipeline) Page(path string) (*imaging.Page, error) {
	img, err := p.Image(path)
	if err != nil {
		return nil, err
	}
	page := imaging.NewPage(img)
	page.SetWorkers(p.cfg.Export.Workers)
	return page, nil
}

// Detect finds the layout of the page at path.
func (p *Pipeline) Detect(path string) (*layout.PageLayout, *imaging.Page, error) {
	page, err := p.Page(path)
	if err != nil {
		return nil, nil, err
	}
	l, err := p.detector.Detect(page)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to detect layout of %s: %w", path, err)
	}
	return l, page, nil
}

// Extract detects the layout of path and exports its glyphs to dir.
func (p *Pipeline) Extract(ctx context.Context, path, dir string) (*Result, error) {
	l, page, err := p.Detect(path)
	if err != nil {
		return nil, err
	}

	report, err := p.exporter.Export(ctx, page, l, dir)
	if err != nil {
		return nil, err
	}

	p.logger.Info("glyphs exported",
		"path", path,
		"dir", dir,
		"grid", report.GridGlyphs,
		"words", report.WordGlyphs,
		"blank", report.BlankCells,
		"skipped", report.Skipped)

	return &Result{Layout: l, Report: report}, nil
}

// Overlay draws l over the page at path.
func (p *Pipeline) Overlay(path string, l *layout.PageLayout, labels bool) (*image.RGBA, error) {
	img, err := p.Image(path)
	if err != nil {
		return nil, err
	}
	return imaging.DrawOverlay(img, Layers(l, labels)...), nil
}

// EncodeOverlay draws l over the page at path and encodes it as PNG.
func (p *Pipeline) EncodeOverlay(path string, l *layout.PageLayout, labels bool) (*imaging.OverlayResult, error) {
	img, err := p.Image(path)
	if err != nil {
		return nil, err
	}
	return imaging.EncodeOverlay(img, Layers(l, labels)...)
}

// Layers returns the overlay layers of l: cells, grid bounds, list bounds
// and words. Words get one palette color each.
func Layers(l *layout.PageLayout, labels bool) []imaging.OverlayLayer {
	layers := []imaging.OverlayLayer{
		{Rects: layout.Rects(l.Cells), Color: CellColor},
		{Rects: []image.Rectangle{l.GridBox().Rect()}, Color: GridColor},
	}
	if l.HasWordList {
		layers = append(layers,
			imaging.OverlayLayer{Rects: []image.Rectangle{l.ListBox().Rect()}, Color: ListColor},
			imaging.OverlayLayer{Rects: layout.Rects(l.Words), Labels: labels},
		)
	}
	return layers
}
