package ocr

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// GlyphSet lists the glyph files of one export folder.
type GlyphSet struct {
	Rows int
	Cols int

	// Grid holds Rows*Cols paths in row-major order. A cell without a file
	// has an empty path.
	Grid []string

	// Words holds the letter paths of each word in reading order.
	Words [][]string
}

// Cell returns the path of the glyph at row r, column c.
func (s *GlyphSet) Cell(r, c int) string {
	return s.Grid[r*s.Cols+c]
}

// ScanExport reads the folder layout written by the glyph exporter.
// A missing words folder means the page had no word list. Word folders
// without letters are ignored.
func ScanExport(dir string) (*GlyphSet, error) {
	set := &GlyphSet{Grid: []string{}, Words: [][]string{}}

	entries, err := os.ReadDir(filepath.Join(dir, "grid"))
	if err != nil {
		return nil, fmt.Errorf("failed to read grid folder: %w", err)
	}

	type cell struct {
		col, row int
		path     string
	}
	cells := make([]cell, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		col, row, ok := parseCellName(e.Name())
		if !ok {
			continue
		}
		cells = append(cells, cell{col, row, filepath.Join(dir, "grid", e.Name())})
		set.Cols = max(set.Cols, col+1)
		set.Rows = max(set.Rows, row+1)
	}

	set.Grid = make([]string, set.Rows*set.Cols)
	for _, c := range cells {
		set.Grid[c.row*set.Cols+c.col] = c.path
	}

	words, err := indexedEntries(filepath.Join(dir, "words"), "word_", true)
	if err != nil {
		if os.IsNotExist(err) {
			return set, nil
		}
		return nil, fmt.Errorf("failed to read words folder: %w", err)
	}
	for _, w := range words {
		letters, err := indexedEntries(w, "letter_", false)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(w), err)
		}
		if len(letters) == 0 {
			continue
		}
		set.Words = append(set.Words, letters)
	}
	return set, nil
}

// parseCellName splits "<col>_<row>.<ext>".
func parseCellName(name string) (col, row int, ok bool) {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	c, r, found := strings.Cut(base, "_")
	if !found {
		return 0, 0, false
	}
	col, err1 := strconv.Atoi(c)
	row, err2 := strconv.Atoi(r)
	if err1 != nil || err2 != nil || col < 0 || row < 0 {
		return 0, 0, false
	}
	return col, row, true
}

// indexedEntries returns the paths in dir named prefix<N>, ordered by N.
// Numeric order keeps word_10 after word_9.
func indexedEntries(dir, prefix string, dirs bool) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	type indexed struct {
		n    int
		path string
	}
	found := make([]indexed, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() != dirs {
			continue
		}
		name := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		n, err := strconv.Atoi(strings.TrimPrefix(name, prefix))
		if err != nil {
			continue
		}
		found = append(found, indexed{n, filepath.Join(dir, e.Name())})
	}
	sort.Slice(found, func(i, j int) bool { return found[i].n < found[j].n })

	paths := make([]string, len(found))
	for i, f := range found {
		paths[i] = f.path
	}
	return paths, nil
}
