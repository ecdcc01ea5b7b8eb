package ocr

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"unicode"

	"github.com/otiai10/gosseract/v2"

	"github.com/ironsheep/wordsearch-extract/internal/config"
)

// Alphabet is the set of letters a glyph may be recognized as.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Recognizer reads single-letter glyph images.
type Recognizer struct {
	mu     sync.Mutex
	client *gosseract.Client
}

// NewRecognizer creates a Tesseract client configured for single letters.
// The caller must Close it.
func NewRecognizer(cfg config.OCR) (*Recognizer, error) {
	client := gosseract.NewClient()

	if cfg.TessdataPrefix != "" {
		if err := client.SetTessdataPrefix(cfg.TessdataPrefix); err != nil {
			client.Close()
			return nil, fmt.Errorf("failed to set tessdata path: %w", err)
		}
	}
	if err := client.SetLanguage(cfg.Language); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetPageSegMode(gosseract.PSM_SINGLE_CHAR); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set page segmentation mode: %w", err)
	}
	if err := client.SetWhitelist(Alphabet); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set whitelist: %w", err)
	}

	return &Recognizer{client: client}, nil
}

// Close releases the Tesseract client.
func (r *Recognizer) Close() error {
	return r.client.Close()
}

// Version returns the Tesseract version.
func (r *Recognizer) Version() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.client.Version()
}

// Letter recognizes the glyph file at path. A glyph Tesseract cannot read
// yields Unknown.
func (r *Recognizer) Letter(path string) (rune, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.client.SetImage(path); err != nil {
		return Unknown, fmt.Errorf("failed to set image: %w", err)
	}
	text, err := r.client.Text()
	if err != nil {
		return Unknown, fmt.Errorf("OCR failed: %w", err)
	}
	return firstLetter(text), nil
}

// LetterFromBytes recognizes an encoded glyph image (PNG, BMP, ...).
func (r *Recognizer) LetterFromBytes(data []byte) (rune, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.client.SetImageFromBytes(data); err != nil {
		return Unknown, fmt.Errorf("failed to set image: %w", err)
	}
	text, err := r.client.Text()
	if err != nil {
		return Unknown, fmt.Errorf("OCR failed: %w", err)
	}
	return firstLetter(text), nil
}

// Recognize reads every glyph of an export folder. Cells without a file
// and unreadable glyphs become Unknown.
func (r *Recognizer) Recognize(ctx context.Context, dir string) (*Puzzle, error) {
	set, err := ScanExport(dir)
	if err != nil {
		return nil, err
	}

	p := &Puzzle{Grid: make([]string, 0, set.Rows), Words: make([]string, 0, len(set.Words))}
	read := func(path string) (rune, error) {
		if err := ctx.Err(); err != nil {
			return Unknown, err
		}
		if path == "" {
			p.Unknown++
			return Unknown, nil
		}
		ch, err := r.Letter(path)
		if err != nil {
			return Unknown, err
		}
		if ch == Unknown {
			p.Unknown++
		}
		return ch, nil
	}

	for row := 0; row < set.Rows; row++ {
		var b strings.Builder
		for col := 0; col < set.Cols; col++ {
			ch, err := read(set.Cell(row, col))
			if err != nil {
				return nil, err
			}
			b.WriteRune(ch)
		}
		p.Grid = append(p.Grid, b.String())
	}

	for _, letters := range set.Words {
		var b strings.Builder
		for _, path := range letters {
			ch, err := read(path)
			if err != nil {
				return nil, err
			}
			b.WriteRune(ch)
		}
		p.Words = append(p.Words, b.String())
	}
	return p, nil
}

// firstLetter returns the first letter of text in Alphabet, uppercased.
func firstLetter(text string) rune {
	for _, ch := range text {
		ch = unicode.ToUpper(ch)
		if ch >= 'A' && ch <= 'Z' {
			return ch
		}
	}
	return Unknown
}
