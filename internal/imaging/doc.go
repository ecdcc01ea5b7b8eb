// Package imaging provides the pixel-level plumbing of the extraction pipeline.
//
// It loads page images (PNG, JPEG, GIF, BMP, TIFF and one page of a PDF),
// wraps them in a Page pixel buffer, computes ink projections, renders
// normalized glyphs and draws debugging overlays. None of the functions here
// know what a grid or a word list is; they operate on rectangles.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with the origin at the top-left corner:
//   - X increases rightward, Y increases downward
//   - image.Rectangle values are Min-inclusive and Max-exclusive
//
// # Ink
//
// A pixel is ink when the sum of its 8-bit red, green and blue channels is
// strictly below a caller-supplied threshold (0-765). The pipeline assumes a
// binarized black-on-white page; Binarize can produce one from a gray scan.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. A Page is read-only after
// construction, so projections and glyph rendering may run concurrently on
// the same Page.
package imaging
