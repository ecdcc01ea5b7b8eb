package imaging

import (
	"image"
	"image/color"
	"math/rand"
	"reflect"
	"testing"
)

// createInMemoryImage returns a solid RGBA image.
func createInMemoryImage(width, height int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// fillRect paints r on img with c.
func fillRect(img *image.RGBA, r image.Rectangle, c color.Color) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.Set(x, y, c)
		}
	}
}

func TestNewPage(t *testing.T) {
	img := createInMemoryImage(20, 10, color.White)
	img.Set(3, 4, color.Black)
	img.Set(5, 6, color.RGBA{200, 200, 200, 255})

	page := NewPage(img)

	if page.Width != 20 || page.Height != 10 {
		t.Fatalf("dimensions: got %dx%d, want 20x10", page.Width, page.Height)
	}
	if page.Channels != 4 {
		t.Errorf("Channels: got %d, want 4", page.Channels)
	}
	if got := page.Sum(3, 4); got != 0 {
		t.Errorf("Sum(3,4): got %d, want 0", got)
	}
	if got := page.Sum(5, 6); got != 600 {
		t.Errorf("Sum(5,6): got %d, want 600", got)
	}
	if !page.IsInk(3, 4, 400) {
		t.Error("black pixel should be ink")
	}
	if page.IsInk(5, 6, 600) {
		t.Error("ink test must be strict")
	}
	if !page.IsInk(5, 6, 601) {
		t.Error("light gray pixel should be ink under threshold 601")
	}
}

func TestNewPage_OffsetBounds(t *testing.T) {
	img := image.NewRGBA(image.Rect(10, 10, 30, 20))
	fillRect(img, img.Bounds(), color.White)
	img.Set(10, 10, color.Black)

	page := NewPage(img)
	if page.Bounds() != image.Rect(0, 0, 20, 10) {
		t.Fatalf("Bounds: got %v", page.Bounds())
	}
	if !page.IsInk(0, 0, 700) {
		t.Error("top-left source pixel should map to (0,0)")
	}
}

func TestNewPageFromBuffer(t *testing.T) {
	// 3x2 RGB buffer with a padded stride of 10 bytes.
	pix := make([]uint8, 20)
	for i := range pix {
		pix[i] = 255
	}
	pix[10+3] = 0 // pixel (1,1) red channel
	pix[10+4] = 0
	pix[10+5] = 0

	page, err := NewPageFromBuffer(pix, 3, 2, 10, 3)
	if err != nil {
		t.Fatalf("NewPageFromBuffer failed: %v", err)
	}
	if !page.IsInk(1, 1, 400) {
		t.Error("pixel (1,1) should be ink")
	}
	if page.IsInk(0, 1, 400) {
		t.Error("pixel (0,1) should not be ink")
	}

	img := page.Image()
	r, g, b, a := img.At(1, 1).RGBA()
	if r != 0 || g != 0 || b != 0 || a != 0xffff {
		t.Errorf("Image().At(1,1): got (%d,%d,%d,%d)", r, g, b, a)
	}
}

func TestNewPageFromBuffer_Invalid(t *testing.T) {
	tests := []struct {
		name                           string
		pixLen, w, h, stride, channels int
	}{
		{"two channels", 100, 4, 4, 8, 2},
		{"zero width", 100, 0, 4, 12, 3},
		{"short stride", 100, 4, 4, 8, 3},
		{"short buffer", 10, 4, 4, 12, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPageFromBuffer(make([]uint8, tt.pixLen), tt.w, tt.h, tt.stride, tt.channels)
			if err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestColumnAndRowProfile(t *testing.T) {
	img := createInMemoryImage(10, 8, color.White)
	fillRect(img, image.Rect(2, 1, 4, 6), color.Black) // 2 columns x 5 rows
	page := NewPage(img)

	cols := page.ColumnProfile(page.Bounds(), 700)
	wantCols := []int{0, 0, 5, 5, 0, 0, 0, 0, 0, 0}
	if !reflect.DeepEqual(cols, wantCols) {
		t.Errorf("ColumnProfile: got %v, want %v", cols, wantCols)
	}

	rows := page.RowProfile(page.Bounds(), 700)
	wantRows := []int{0, 2, 2, 2, 2, 2, 0, 0}
	if !reflect.DeepEqual(rows, wantRows) {
		t.Errorf("RowProfile: got %v, want %v", rows, wantRows)
	}

	// Restricted to a sub-rectangle, indices stay absolute.
	sub := page.ColumnProfile(image.Rect(3, 0, 10, 3), 700)
	wantSub := []int{0, 0, 0, 2, 0, 0, 0, 0, 0, 0}
	if !reflect.DeepEqual(sub, wantSub) {
		t.Errorf("ColumnProfile(sub): got %v, want %v", sub, wantSub)
	}
}

func TestProfile_OutsidePage(t *testing.T) {
	page := NewPage(createInMemoryImage(5, 5, color.Black))

	hist := page.RowProfile(image.Rect(10, 10, 20, 20), 700)
	if len(hist) != 5 {
		t.Fatalf("length: got %d, want 5", len(hist))
	}
	for i, v := range hist {
		if v != 0 {
			t.Errorf("hist[%d]: got %d, want 0", i, v)
		}
	}
}

func TestProfile_ParallelMatchesSequential(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	img := createInMemoryImage(120, 700, color.White)
	for i := 0; i < 4000; i++ {
		img.Set(r.Intn(120), r.Intn(700), color.Black)
	}

	sequential := NewPage(img)
	parallel := NewPage(img)
	parallel.SetWorkers(6)

	rect := image.Rect(7, 13, 111, 690)
	if !reflect.DeepEqual(sequential.ColumnProfile(rect, 700), parallel.ColumnProfile(rect, 700)) {
		t.Error("parallel ColumnProfile differs from sequential")
	}
	if !reflect.DeepEqual(sequential.RowProfile(rect, 700), parallel.RowProfile(rect, 700)) {
		t.Error("parallel RowProfile differs from sequential")
	}
}

func TestBands(t *testing.T) {
	page := NewPage(createInMemoryImage(10, 300, color.White))
	page.SetWorkers(8)

	bands := page.bands(page.Bounds())
	// 300 rows allow at most 300/64 = 4 bands.
	if len(bands) != 4 {
		t.Fatalf("bands: got %d, want 4", len(bands))
	}

	total := 0
	for i, b := range bands {
		total += b.Dy()
		if i > 0 && b.Min.Y != bands[i-1].Max.Y {
			t.Errorf("band %d does not start where band %d ends", i, i-1)
		}
	}
	if total != 300 {
		t.Errorf("bands cover %d rows, want 300", total)
	}

	page.SetWorkers(0)
	if got := len(page.bands(page.Bounds())); got != 1 {
		t.Errorf("SetWorkers(0): got %d bands, want 1", got)
	}
}
