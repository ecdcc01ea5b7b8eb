// Package ocr turns exported glyph folders into puzzle text using Tesseract.
//
// The recognizer wraps gosseract/v2 in single-character mode with an
// uppercase whitelist, since every glyph holds exactly one puzzle letter.
// It reads the layout written by the glyph exporter:
//
//	<dir>/grid/<col>_<row>.bmp
//	<dir>/words/word_<i>/letter_<n>.bmp
//
// and produces the character grid and word list a solver consumes.
//
// # Prerequisites
//
// Tesseract and its language data must be installed on the system:
//   - Ubuntu/Debian: apt-get install tesseract-ocr tesseract-ocr-eng
//   - macOS: brew install tesseract
//
// TESSDATA_PREFIX (or the ocr.tessdata_prefix setting) points Tesseract at
// a non-standard traineddata directory.
//
// # Thread Safety
//
// A gosseract client is not safe for concurrent use. Recognizer serializes
// its calls; create one Recognizer per goroutine for parallel recognition.
package ocr
