package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"
)

// OverlayLayer is a group of rectangles outlined in one style.
type OverlayLayer struct {
	Rects []image.Rectangle

	// Color is a hex color like "#FF0000". Empty gives every rectangle its
	// own color from a generated palette.
	Color string

	// Labels prints each rectangle's index at its top-left corner.
	Labels bool
}

// OverlayResult contains an annotated page encoded as base64 PNG.
type OverlayResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
	BoxCount    int    `json:"box_count"`
}

// DrawOverlay copies img and outlines every layer's rectangles on the copy,
// later layers on top.
func DrawOverlay(img image.Image, layers ...OverlayLayer) *image.RGBA {
	bounds := img.Bounds()
	result := image.NewRGBA(bounds)
	draw.Draw(result, bounds, img, bounds.Min, draw.Src)

	for _, layer := range layers {
		colors := layerColors(layer)
		for i, r := range layer.Rects {
			c := colors[i%len(colors)]
			strokeRect(result, r, c)
			if layer.Labels {
				drawLabel(result, r.Min.X+1, r.Min.Y+1, strconv.Itoa(i), color.RGBA{255, 255, 255, 255}, c)
			}
		}
	}
	return result
}

// EncodeOverlay renders the layers and returns the annotated page as PNG.
func EncodeOverlay(img image.Image, layers ...OverlayLayer) (*OverlayResult, error) {
	annotated := DrawOverlay(img, layers...)

	var buf bytes.Buffer
	if err := png.Encode(&buf, annotated); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	count := 0
	for _, layer := range layers {
		count += len(layer.Rects)
	}

	return &OverlayResult{
		Width:       annotated.Bounds().Dx(),
		Height:      annotated.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
		BoxCount:    count,
	}, nil
}

func layerColors(layer OverlayLayer) []color.RGBA {
	if layer.Color != "" {
		c, err := parseHexColor(layer.Color)
		if err != nil {
			c = color.RGBA{255, 0, 0, 255}
		}
		return []color.RGBA{c}
	}

	n := len(layer.Rects)
	if n == 0 {
		n = 1
	}
	palette := colorful.FastHappyPalette(n)
	colors := make([]color.RGBA, len(palette))
	for i, p := range palette {
		r, g, b := p.Clamped().RGB255()
		colors[i] = color.RGBA{r, g, b, 255}
	}
	return colors
}

// parseHexColor parses "#RRGGBB" (or without '#').
func parseHexColor(hex string) (color.RGBA, error) {
	if len(hex) == 0 {
		return color.RGBA{}, fmt.Errorf("empty color string")
	}
	if hex[0] != '#' {
		hex = "#" + hex
	}
	if len(hex) != 7 {
		return color.RGBA{}, fmt.Errorf("invalid color %q: want #RRGGBB", hex)
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, err
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// strokeRect draws a one pixel outline just inside r, clipped to the image.
func strokeRect(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	r = r.Intersect(img.Bounds())
	if r.Empty() {
		return
	}
	for x := r.Min.X; x < r.Max.X; x++ {
		img.SetRGBA(x, r.Min.Y, c)
		img.SetRGBA(x, r.Max.Y-1, c)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		img.SetRGBA(r.Min.X, y, c)
		img.SetRGBA(r.Max.X-1, y, c)
	}
}

// digitGlyphs is a 3x5 pixel font for box indices.
var digitGlyphs = map[rune][5]string{
	'0': {"111", "101", "101", "101", "111"},
	'1': {"010", "110", "010", "010", "111"},
	'2': {"111", "001", "111", "100", "111"},
	'3': {"111", "001", "111", "001", "111"},
	'4': {"101", "101", "111", "001", "001"},
	'5': {"111", "100", "111", "001", "111"},
	'6': {"111", "100", "111", "101", "111"},
	'7': {"111", "001", "001", "001", "001"},
	'8': {"111", "101", "111", "101", "111"},
	'9': {"111", "101", "111", "001", "111"},
}

// drawLabel prints text with the digit font on a filled background box.
// Characters without a glyph leave a blank cell.
func drawLabel(img *image.RGBA, x, y int, text string, fg, bg color.RGBA) {
	const charWidth = 4
	bounds := img.Bounds()
	set := func(px, py int, c color.RGBA) {
		if image.Pt(px, py).In(bounds) {
			img.SetRGBA(px, py, c)
		}
	}

	for dy := -1; dy < 6; dy++ {
		for dx := -1; dx < len(text)*charWidth; dx++ {
			set(x+dx, y+dy, bg)
		}
	}

	cx := x
	for _, ch := range text {
		if glyph, ok := digitGlyphs[ch]; ok {
			for row, line := range glyph {
				for col, pixel := range line {
					if pixel == '1' {
						set(cx+col, y+row, fg)
					}
				}
			}
		}
		cx += charWidth
	}
}
