package ocr

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Unknown marks a glyph the recognizer could not read.
const Unknown = '?'

// Puzzle is the recognized text of a page.
type Puzzle struct {
	// Grid holds one string per row, one letter per column.
	Grid  []string `json:"grid"`
	Words []string `json:"words"`

	// Unknown counts glyphs recognized as Unknown.
	Unknown int `json:"unknown"`
}

// GridText returns the grid one row per line.
func (p *Puzzle) GridText() string {
	return joinLines(p.Grid)
}

// WordsText returns the word list one word per line.
func (p *Puzzle) WordsText() string {
	return joinLines(p.Words)
}

// WriteFiles writes grid.txt and words.txt into dir.
func (p *Puzzle) WriteFiles(dir string) error {
	if err := os.WriteFile(filepath.Join(dir, "grid.txt"), []byte(p.GridText()), 0644); err != nil {
		return fmt.Errorf("failed to write grid: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "words.txt"), []byte(p.WordsText()), 0644); err != nil {
		return fmt.Errorf("failed to write words: %w", err)
	}
	return nil
}

func joinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}
