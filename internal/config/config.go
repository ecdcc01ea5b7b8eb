// Package config holds the tunable thresholds of the extraction pipeline.
//
// Defaults reproduce the values the pipeline was tuned with on scanned
// puzzle pages. A YAML file may override any subset of them, and a small set
// of WORDSEARCH_* environment variables override the file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the complete pipeline configuration.
type Config struct {
	Detect Detect `yaml:"detect" json:"detect"`
	Glyph  Glyph  `yaml:"glyph" json:"glyph"`
	Input  Input  `yaml:"input" json:"input"`
	Export Export `yaml:"export" json:"export"`
	OCR    OCR    `yaml:"ocr" json:"ocr"`
}

// Detect configures the layout detector and the word-list segmenter.
type Detect struct {
	// BlackThreshold is the R+G+B sum below which a pixel counts as ink.
	BlackThreshold int `yaml:"black_threshold" json:"black_threshold"`

	// BlobMinPixels is the Pass 1 column threshold.
	BlobMinPixels int `yaml:"blob_min_pixels" json:"blob_min_pixels"`

	// MergeGapX bridges letters of one grid row or word-list line in Pass 1.
	MergeGapX int `yaml:"merge_gap_x" json:"merge_gap_x"`

	// MergeGapY bridges ascenders and descenders within one text line.
	MergeGapY int `yaml:"merge_gap_y" json:"merge_gap_y"`

	// GridLineThreshold is the fraction of the grid span a separator must fill.
	GridLineThreshold float64 `yaml:"grid_line_threshold" json:"grid_line_threshold"`

	// MinListWidthRatio is the minimum word-list width relative to the grid.
	MinListWidthRatio float64 `yaml:"min_list_width_ratio" json:"min_list_width_ratio"`

	// TextLineMinHeight drops thinner text lines as noise.
	TextLineMinHeight int `yaml:"text_line_min_height" json:"text_line_min_height"`

	// LineInkFloor is the per-row ink count a word-list row must exceed.
	LineInkFloor int `yaml:"line_ink_floor" json:"line_ink_floor"`

	// WordSplitGap is the merge gap between letters of one word.
	WordSplitGap int `yaml:"word_split_gap" json:"word_split_gap"`
}

// Glyph configures connected-component analysis and glyph rendering.
type Glyph struct {
	BlackThreshold      int     `yaml:"black_threshold" json:"black_threshold"`
	MinBlobArea         int     `yaml:"min_blob_area" json:"min_blob_area"`
	ExpectedLetterRatio float64 `yaml:"expected_letter_ratio" json:"expected_letter_ratio"`
	GridMargin          int     `yaml:"grid_margin" json:"grid_margin"`
	OutputSize          int     `yaml:"output_size" json:"output_size"`
	Padding             int     `yaml:"padding" json:"padding"`
}

// Input configures decoding and optional preprocessing of the page.
type Input struct {
	// PDFDPI is the rasterisation resolution for PDF input.
	PDFDPI float64 `yaml:"pdf_dpi" json:"pdf_dpi"`

	// PDFPage is the zero-based page rendered from a PDF.
	PDFPage int `yaml:"pdf_page" json:"pdf_page"`

	// Binarize thresholds the page before detection.
	Binarize bool `yaml:"binarize" json:"binarize"`

	// BinarizeLevel is the gray level at or above which a pixel becomes white.
	// Zero picks the level per page from its gray histogram (Otsu).
	BinarizeLevel uint8 `yaml:"binarize_level" json:"binarize_level"`
}

// Export configures how glyphs are written.
type Export struct {
	// Format is the glyph file format: "bmp" or "png".
	Format string `yaml:"format" json:"format"`

	// Workers bounds the number of cells and words processed concurrently.
	Workers int `yaml:"workers" json:"workers"`
}

// OCR configures glyph recognition.
type OCR struct {
	// Language is the Tesseract language code.
	Language string `yaml:"language" json:"language"`

	// TessdataPrefix overrides the directory holding *.traineddata files.
	TessdataPrefix string `yaml:"tessdata_prefix" json:"tessdata_prefix"`
}

// Default returns the tuned defaults.
func Default() Config {
	return Config{
		Detect: Detect{
			BlackThreshold:    700,
			BlobMinPixels:     5,
			MergeGapX:         45,
			MergeGapY:         8,
			GridLineThreshold: 0.5,
			MinListWidthRatio: 0.10,
			TextLineMinHeight: 8,
			LineInkFloor:      2,
			WordSplitGap:      15,
		},
		Glyph: Glyph{
			BlackThreshold:      400,
			MinBlobArea:         10,
			ExpectedLetterRatio: 0.70,
			GridMargin:          4,
			OutputSize:          30,
			Padding:             7,
		},
		Input: Input{
			PDFDPI:        300,
			BinarizeLevel: 0,
		},
		Export: Export{
			Format:  "bmp",
			Workers: runtime.NumCPU(),
		},
		OCR: OCR{
			Language: "eng",
		},
	}
}

// Load reads a YAML file over the defaults. An empty path returns Default().
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := Parse(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Parse decodes YAML into cfg, leaving fields absent from data untouched.
// Environment references like ${HOME} are expanded first.
func Parse(data []byte, cfg *Config) error {
	data = []byte(os.ExpandEnv(string(data)))

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("failed to parse config: %w", err)
	}
	return nil
}

// ApplyEnv overrides selected fields from WORDSEARCH_* variables.
func (c *Config) ApplyEnv() error {
	ints := map[string]*int{
		"WORDSEARCH_DETECT_BLACK_THRESHOLD": &c.Detect.BlackThreshold,
		"WORDSEARCH_GLYPH_BLACK_THRESHOLD":  &c.Glyph.BlackThreshold,
		"WORDSEARCH_OUTPUT_SIZE":            &c.Glyph.OutputSize,
		"WORDSEARCH_WORKERS":                &c.Export.Workers,
	}
	for name, dst := range ints {
		v, ok := os.LookupEnv(name)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s=%q: %w", name, v, err)
		}
		*dst = n
	}

	if v := os.Getenv("WORDSEARCH_FORMAT"); v != "" {
		c.Export.Format = strings.ToLower(v)
	}
	if v := os.Getenv("WORDSEARCH_OCR_LANGUAGE"); v != "" {
		c.OCR.Language = v
	}
	if v := os.Getenv("TESSDATA_PREFIX"); v != "" && c.OCR.TessdataPrefix == "" {
		c.OCR.TessdataPrefix = v
	}
	return nil
}

// Validate checks ranges and the relation between merge gaps.
func (c Config) Validate() error {
	d, g := c.Detect, c.Glyph

	switch {
	case d.BlackThreshold <= 0 || d.BlackThreshold > 766:
		return fmt.Errorf("detect.black_threshold must be in (0, 766], got %d", d.BlackThreshold)
	case g.BlackThreshold <= 0 || g.BlackThreshold > 766:
		return fmt.Errorf("glyph.black_threshold must be in (0, 766], got %d", g.BlackThreshold)
	case d.GridLineThreshold <= 0 || d.GridLineThreshold > 1:
		return fmt.Errorf("detect.grid_line_threshold must be in (0, 1], got %g", d.GridLineThreshold)
	case d.MinListWidthRatio < 0:
		return fmt.Errorf("detect.min_list_width_ratio must not be negative")
	case d.MergeGapX < 0 || d.MergeGapY < 0 || d.WordSplitGap < 0:
		return fmt.Errorf("merge gaps must not be negative")
	case d.WordSplitGap >= d.MergeGapX:
		return fmt.Errorf("detect.word_split_gap (%d) must be smaller than detect.merge_gap_x (%d)",
			d.WordSplitGap, d.MergeGapX)
	case g.ExpectedLetterRatio <= 0:
		return fmt.Errorf("glyph.expected_letter_ratio must be positive")
	case g.OutputSize <= 0:
		return fmt.Errorf("glyph.output_size must be positive")
	case g.Padding < 0 || g.GridMargin < 0:
		return fmt.Errorf("glyph.padding and glyph.grid_margin must not be negative")
	}

	switch c.Export.Format {
	case "bmp", "png":
	default:
		return fmt.Errorf("export.format must be bmp or png, got %q", c.Export.Format)
	}

	if c.Export.Workers < 1 {
		return fmt.Errorf("export.workers must be at least 1, got %d", c.Export.Workers)
	}
	if c.OCR.Language == "" {
		return fmt.Errorf("ocr.language must not be empty")
	}
	return nil
}
