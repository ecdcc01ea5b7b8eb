package imaging

import (
	"image"

	"github.com/anthonynsimon/bild/effect"
	"github.com/anthonynsimon/bild/histogram"
	"github.com/anthonynsimon/bild/segment"
)

// Luminosity weights of the gray conversion.
const (
	lumaR = 0.299
	lumaG = 0.587
	lumaB = 0.114
)

// Binarize converts img to pure black and white. Pixels whose gray value is
// below level become black, all others white. Level 0 picks the level per
// page with OtsuLevel.
//
// The detector assumes binarized input; photographs and gray scans should go
// through Binarize first.
func Binarize(img image.Image, level uint8) *image.Gray {
	gray := effect.GrayscaleWithWeights(img, lumaR, lumaG, lumaB)
	if level == 0 {
		level = otsu(histogram.NewRGBAHistogram(gray).R.Bins)
	}
	return segment.Threshold(gray, level)
}

// OtsuLevel returns the Binarize level that maximizes the between-class
// variance of img's gray histogram.
func OtsuLevel(img image.Image) uint8 {
	gray := effect.GrayscaleWithWeights(img, lumaR, lumaG, lumaB)
	return otsu(histogram.NewRGBAHistogram(gray).R.Bins)
}

// otsu splits bins into a dark class [0, t] and a light class (t, 255] and
// returns t+1, the first white gray value. Ties keep the lowest t.
func otsu(bins []int) uint8 {
	total, sum := 0, 0.0
	for i, n := range bins {
		total += n
		sum += float64(i * n)
	}

	var (
		sumB   float64
		wB     int
		best   float64
		thresh int
	)
	for i, n := range bins {
		wB += n
		if wB == 0 {
			continue
		}
		wF := total - wB
		if wF == 0 {
			break
		}
		sumB += float64(i * n)

		mB := sumB / float64(wB)
		mF := (sum - sumB) / float64(wF)
		if v := float64(wB) * float64(wF) * (mB - mF) * (mB - mF); v > best {
			best = v
			thresh = i
		}
	}

	if thresh >= 255 {
		return 255
	}
	return uint8(thresh + 1)
}
