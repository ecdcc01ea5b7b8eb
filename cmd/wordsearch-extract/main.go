// Command wordsearch-extract splits a word-search page into normalized
// letter glyphs, optionally drawing the detected layout and reading the
// glyphs with Tesseract.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/wordsearch-extract/internal/config"
	"github.com/ironsheep/wordsearch-extract/internal/ocr"
	"github.com/ironsheep/wordsearch-extract/internal/pipeline"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

type options struct {
	configPath string
	outDir     string
	binarize   bool
	overlay    string
	labels     bool
	ocr        bool
	workers    int
	format     string
	version    bool
}

func parseFlags(fs *flag.FlagSet, args []string) (*options, map[string]bool, error) {
	o := &options{}
	fs.StringVar(&o.configPath, "config", os.Getenv("WORDSEARCH_CONFIG"), "YAML configuration file")
	fs.StringVar(&o.outDir, "out", "output", "folder receiving grid/ and words/")
	fs.BoolVar(&o.binarize, "binarize", false, "threshold the page before detection")
	fs.StringVar(&o.overlay, "overlay", "", "write the detected layout over the page to this PNG")
	fs.BoolVar(&o.labels, "labels", true, "number the words on the overlay")
	fs.BoolVar(&o.ocr, "ocr", false, "read the glyphs and write grid.txt and words.txt")
	fs.IntVar(&o.workers, "workers", 0, "concurrent workers (default from configuration)")
	fs.StringVar(&o.format, "format", "", "glyph format: bmp or png (default from configuration)")
	fs.BoolVar(&o.version, "version", false, "print version information")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return o, set, nil
}

// loadConfig reads the configuration and applies environment and flag
// overrides. Flags win over the environment.
func loadConfig(o *options, set map[string]bool) (config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return cfg, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return cfg, err
	}
	if set["binarize"] {
		cfg.Input.Binarize = o.binarize
	}
	if o.workers > 0 {
		cfg.Export.Workers = o.workers
	}
	if o.format != "" {
		cfg.Export.Format = strings.ToLower(o.format)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func main() {
	fs := flag.NewFlagSet("wordsearch-extract", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Usage: wordsearch-extract [options] <page>")
		fmt.Fprintln(fs.Output())
		fmt.Fprintln(fs.Output(), "Options:")
		fs.PrintDefaults()
	}

	o, set, err := parseFlags(fs, os.Args[1:])
	if err != nil {
		os.Exit(2)
	}
	if o.version {
		fmt.Printf("wordsearch-extract %s\n", Version)
		fmt.Printf("  Build time: %s\n", BuildTime)
		fmt.Printf("  Git commit: %s\n", GitCommit)
		return
	}
	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(2)
	}

	logger := config.NewLogger(os.Stderr)
	if err := run(fs.Arg(0), o, set, logger); err != nil {
		logger.Error("extraction failed", "error", err)
		os.Exit(1)
	}
}

func run(path string, o *options, set map[string]bool, logger *slog.Logger) error {
	cfg, err := loadConfig(o, set)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p := pipeline.New(cfg, nil, logger)
	res, err := p.Extract(ctx, path, o.outDir)
	if err != nil {
		return err
	}
	printSummary(os.Stdout, path, res)

	if o.overlay != "" {
		img, err := p.Overlay(path, res.Layout, o.labels)
		if err != nil {
			return err
		}
		if err := imaging.Save(img, o.overlay); err != nil {
			return fmt.Errorf("failed to save overlay: %w", err)
		}
		fmt.Printf("overlay: %s\n", o.overlay)
	}

	if o.ocr {
		return recognize(ctx, cfg.OCR, o.outDir, os.Stdout)
	}
	return nil
}

func recognize(ctx context.Context, cfg config.OCR, dir string, w io.Writer) error {
	r, err := ocr.NewRecognizer(cfg)
	if err != nil {
		return err
	}
	defer r.Close()

	puzzle, err := r.Recognize(ctx, dir)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return fmt.Errorf("failed to recognize glyphs: %w", err)
	}
	if err := puzzle.WriteFiles(dir); err != nil {
		return err
	}

	fmt.Fprintln(w)
	fmt.Fprint(w, puzzle.GridText())
	fmt.Fprintln(w)
	fmt.Fprint(w, puzzle.WordsText())
	if puzzle.Unknown > 0 {
		fmt.Fprintf(w, "\n%d glyphs unreadable\n", puzzle.Unknown)
	}
	return nil
}

func printSummary(w io.Writer, path string, res *pipeline.Result) {
	l, r := res.Layout, res.Report

	fmt.Fprintf(w, "%s\n", path)
	fmt.Fprintf(w, "grid: %dx%d at (%d,%d) size %dx%d\n",
		l.Cols, l.Rows, l.GridX, l.GridY, l.GridWidth, l.GridHeight)
	if l.HasWordList {
		fmt.Fprintf(w, "word list: %d words at (%d,%d) size %dx%d\n",
			len(l.Words), l.ListX, l.ListY, l.ListWidth, l.ListHeight)
	} else {
		fmt.Fprintln(w, "word list: none")
	}
	fmt.Fprintf(w, "glyphs: %d grid (%d blank), %d word letters, %d skipped -> %s\n",
		r.GridGlyphs, r.BlankCells, r.WordGlyphs, r.Skipped, r.Dir)
}
