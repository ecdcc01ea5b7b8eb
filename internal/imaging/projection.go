package imaging

import (
	"image"

	"golang.org/x/sync/errgroup"
)

// minBandRows keeps each projection band large enough to be worth a goroutine.
const minBandRows = 64

// ColumnProfile counts ink pixels per column inside r. The result is indexed
// by absolute x and has length p.Width; columns outside r are zero.
func (p *Page) ColumnProfile(r image.Rectangle, threshold int) []int {
	return p.profile(r, threshold, p.Width, func(hist []int, x, y int) { hist[x]++ })
}

// RowProfile counts ink pixels per row inside r. The result is indexed by
// absolute y and has length p.Height; rows outside r are zero.
func (p *Page) RowProfile(r image.Rectangle, threshold int) []int {
	return p.profile(r, threshold, p.Height, func(hist []int, x, y int) { hist[y]++ })
}

// profile splits r into horizontal bands, accumulates each band into its own
// partial histogram and sums the partials. Integer sums make the result
// identical to a sequential scan.
func (p *Page) profile(r image.Rectangle, threshold, n int, add func(hist []int, x, y int)) []int {
	hist := make([]int, n)
	r = r.Intersect(p.Bounds())
	if r.Empty() {
		return hist
	}

	bands := p.bands(r)
	if len(bands) == 1 {
		p.accumulate(hist, bands[0], threshold, add)
		return hist
	}

	partials := make([][]int, len(bands))
	var g errgroup.Group
	for i, band := range bands {
		g.Go(func() error {
			partial := make([]int, n)
			p.accumulate(partial, band, threshold, add)
			partials[i] = partial
			return nil
		})
	}
	_ = g.Wait()

	for _, partial := range partials {
		for i, v := range partial {
			hist[i] += v
		}
	}
	return hist
}

func (p *Page) accumulate(hist []int, r image.Rectangle, threshold int, add func(hist []int, x, y int)) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := y * p.Stride
		for x := r.Min.X; x < r.Max.X; x++ {
			i := row + x*p.Channels
			if int(p.Pix[i])+int(p.Pix[i+1])+int(p.Pix[i+2]) < threshold {
				add(hist, x, y)
			}
		}
	}
}

func (p *Page) bands(r image.Rectangle) []image.Rectangle {
	n := p.workers
	if limit := r.Dy() / minBandRows; n > limit {
		n = limit
	}
	if n <= 1 {
		return []image.Rectangle{r}
	}

	bands := make([]image.Rectangle, 0, n)
	step := (r.Dy() + n - 1) / n
	for y := r.Min.Y; y < r.Max.Y; y += step {
		bottom := y + step
		if bottom > r.Max.Y {
			bottom = r.Max.Y
		}
		bands = append(bands, image.Rect(r.Min.X, y, r.Max.X, bottom))
	}
	return bands
}
