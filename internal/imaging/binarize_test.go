package imaging

import (
	"image"
	"image/color"
	"testing"
)

func TestBinarize(t *testing.T) {
	img := createInMemoryImage(4, 1, color.White)
	img.Set(0, 0, color.RGBA{20, 20, 20, 255})
	img.Set(1, 0, color.RGBA{100, 100, 100, 255})
	img.Set(2, 0, color.RGBA{160, 160, 160, 255})

	out := Binarize(img, 128)
	if out.Bounds() != image.Rect(0, 0, 4, 1) {
		t.Fatalf("Bounds: got %v", out.Bounds())
	}

	want := []uint8{0, 0, 255, 255}
	for x, w := range want {
		if got := out.GrayAt(x, 0).Y; got != w {
			t.Errorf("pixel %d: got %d, want %d", x, got, w)
		}
	}
}

func TestBinarize_FeedsPage(t *testing.T) {
	img := createInMemoryImage(10, 10, color.RGBA{230, 230, 230, 255})
	fillRect(img, image.Rect(2, 2, 5, 5), color.RGBA{90, 90, 90, 255})

	page := NewPage(Binarize(img, 128))

	if !page.IsInk(3, 3, 400) {
		t.Error("dark square should be ink after binarization")
	}
	if page.IsInk(8, 8, 700) {
		t.Error("light background should be white after binarization")
	}
}

func TestOtsu(t *testing.T) {
	spikes := func(counts map[int]int) []int {
		bins := make([]int, 256)
		for v, n := range counts {
			bins[v] = n
		}
		return bins
	}

	tests := []struct {
		name     string
		bins     []int
		min, max uint8
	}{
		{"dark page", spikes(map[int]int{20: 100, 60: 900}), 21, 60},
		{"light page", spikes(map[int]int{200: 50, 250: 950}), 201, 250},
		{"uniform", spikes(map[int]int{128: 500}), 1, 1},
		{"empty", make([]int, 256), 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := otsu(tt.bins)
			if got < tt.min || got > tt.max {
				t.Errorf("otsu: got %d, want in [%d, %d]", got, tt.min, tt.max)
			}
		})
	}
}

func TestBinarize_Auto(t *testing.T) {
	tests := []struct {
		name       string
		background color.RGBA
		ink        color.RGBA
	}{
		// A fixed level of 128 turns both of these pages into a single color.
		{"dark scan", color.RGBA{60, 60, 60, 255}, color.RGBA{20, 20, 20, 255}},
		{"faint pencil", color.RGBA{250, 250, 250, 255}, color.RGBA{200, 200, 200, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := createInMemoryImage(20, 20, tt.background)
			fillRect(img, image.Rect(5, 5, 10, 15), tt.ink)

			level := OtsuLevel(img)
			if level <= tt.ink.R || level > tt.background.R {
				t.Errorf("OtsuLevel: got %d, want in (%d, %d]", level, tt.ink.R, tt.background.R)
			}

			out := Binarize(img, 0)
			if got := out.GrayAt(7, 7).Y; got != 0 {
				t.Errorf("ink pixel: got %d, want 0", got)
			}
			if got := out.GrayAt(15, 15).Y; got != 255 {
				t.Errorf("background pixel: got %d, want 255", got)
			}
		})
	}
}
