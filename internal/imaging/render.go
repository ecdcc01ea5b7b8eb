package imaging

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// ErrEmptyRegion is returned when a source rectangle has no pixels left after
// clamping it to the image bounds.
var ErrEmptyRegion = errors.New("empty region")

// RenderGlyph crops r from src and draws it, scaled isotropically to fit
// size-2*padding pixels, centered on a white size×size canvas.
//
// The scaled dimensions are floor(w*scale) and floor(h*scale), at least one
// pixel each, with scale = min((size-2p)/w, (size-2p)/h). Resampling is
// bilinear.
func RenderGlyph(src image.Image, r image.Rectangle, size, padding int) (*image.NRGBA, error) {
	r = r.Intersect(src.Bounds())
	if r.Empty() {
		return nil, ErrEmptyRegion
	}

	w, h := r.Dx(), r.Dy()
	nw, nh := FitSize(w, h, size, padding)

	scaled := imaging.Resize(imaging.Crop(src, r), nw, nh, imaging.Linear)
	canvas := imaging.New(size, size, color.White)
	return imaging.Paste(canvas, scaled, image.Pt((size-nw)/2, (size-nh)/2)), nil
}

// FitSize returns the scaled width and height RenderGlyph uses for a w×h
// source.
func FitSize(w, h, size, padding int) (int, int) {
	target := size - 2*padding
	if target < 1 {
		target = 1
	}

	scale := math.Min(float64(target)/float64(w), float64(target)/float64(h))

	// The epsilon keeps exact fits like 16/22*22 from rounding down to 15.
	nw := int(float64(w)*scale + 1e-9)
	nh := int(float64(h)*scale + 1e-9)
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}
	return nw, nh
}

// SaveGlyph writes img to path; the format follows the extension (.bmp or .png).
func SaveGlyph(img image.Image, path string) error {
	format, err := imaging.FormatFromFilename(path)
	if err != nil {
		return fmt.Errorf("unsupported glyph file %s: %w", filepath.Base(path), err)
	}
	if format != imaging.BMP && format != imaging.PNG {
		return fmt.Errorf("unsupported glyph format %s", format)
	}
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("failed to save glyph: %w", err)
	}
	return nil
}
