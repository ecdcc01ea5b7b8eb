package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Page is an interleaved 8-bit pixel buffer with at least three channels
// (R, G, B first). It is read-only after construction.
type Page struct {
	Pix      []uint8
	Width    int
	Height   int
	Stride   int
	Channels int

	workers int
}

// NewPage copies img into a Page whose origin is (0, 0).
func NewPage(img image.Image) *Page {
	nrgba := imaging.Clone(img)
	b := nrgba.Bounds()
	return &Page{
		Pix:      nrgba.Pix,
		Width:    b.Dx(),
		Height:   b.Dy(),
		Stride:   nrgba.Stride,
		Channels: 4,
		workers:  1,
	}
}

// NewPageFromBuffer wraps an existing pixel buffer without copying it.
func NewPageFromBuffer(pix []uint8, width, height, stride, channels int) (*Page, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid page size %dx%d", width, height)
	}
	if channels < 3 {
		return nil, fmt.Errorf("page needs at least 3 channels, got %d", channels)
	}
	if stride < width*channels {
		return nil, fmt.Errorf("stride %d shorter than a row of %d pixels", stride, width)
	}
	if need := (height-1)*stride + width*channels; len(pix) < need {
		return nil, fmt.Errorf("buffer holds %d bytes, need %d", len(pix), need)
	}
	return &Page{
		Pix:      pix,
		Width:    width,
		Height:   height,
		Stride:   stride,
		Channels: channels,
		workers:  1,
	}, nil
}

// SetWorkers sets how many goroutines a projection may use. Values below one
// are treated as one.
func (p *Page) SetWorkers(n int) {
	if n < 1 {
		n = 1
	}
	p.workers = n
}

// Bounds returns the page rectangle.
func (p *Page) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.Width, p.Height)
}

// Sum returns R+G+B of the pixel at (x, y).
func (p *Page) Sum(x, y int) int {
	i := y*p.Stride + x*p.Channels
	return int(p.Pix[i]) + int(p.Pix[i+1]) + int(p.Pix[i+2])
}

// IsInk reports whether the pixel at (x, y) is darker than threshold.
func (p *Page) IsInk(x, y, threshold int) bool {
	return p.Sum(x, y) < threshold
}

// Image returns the page as an image for cropping and encoding. The pixels
// are shared when the page was built with four channels.
func (p *Page) Image() image.Image {
	if p.Channels == 4 {
		return &image.NRGBA{Pix: p.Pix, Stride: p.Stride, Rect: p.Bounds()}
	}

	out := image.NewNRGBA(p.Bounds())
	for y := 0; y < p.Height; y++ {
		for x := 0; x < p.Width; x++ {
			i := y*p.Stride + x*p.Channels
			o := out.PixOffset(x, y)
			out.Pix[o] = p.Pix[i]
			out.Pix[o+1] = p.Pix[i+1]
			out.Pix[o+2] = p.Pix[i+2]
			out.Pix[o+3] = 0xff
		}
	}
	return out
}
