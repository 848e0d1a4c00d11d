// Package render turns aggregated data and layout geometry into chart
// images. Every renderer is a pure function returning an image.Image; an
// empty input produces an explicit empty-state image, never stale marks.
package render

import (
	"image"
	"image/color"
	"image/draw"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// palette cycles across series and tiles. Chosen to stay readable on the
// dark canvas background.
var palette = []color.RGBA{
	{R: 0x4e, G: 0x79, B: 0xa7, A: 0xff},
	{R: 0xf2, G: 0x8e, B: 0x2b, A: 0xff},
	{R: 0xe1, G: 0x57, B: 0x59, A: 0xff},
	{R: 0x76, G: 0xb7, B: 0xb2, A: 0xff},
	{R: 0x59, G: 0xa1, B: 0x4f, A: 0xff},
	{R: 0xed, G: 0xc9, B: 0x48, A: 0xff},
	{R: 0xb0, G: 0x7a, B: 0xa1, A: 0xff},
	{R: 0xff, G: 0x9d, B: 0xa7, A: 0xff},
	{R: 0x9c, G: 0x75, B: 0x5f, A: 0xff},
	{R: 0xba, G: 0xb0, B: 0xac, A: 0xff},
}

var canvasBG = color.RGBA{R: 18, G: 18, B: 18, A: 255}

// PaletteColor returns the fill color for series/tile index i.
func PaletteColor(i int) color.RGBA {
	if i < 0 {
		i = -i
	}
	return palette[i%len(palette)]
}

// blankCanvas returns a dark canvas of the given size.
func blankCanvas(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, canvasBG)
		}
	}
	return img
}

// EmptyState renders the explicit "no data" caption shown when a filter
// combination matches nothing.
func EmptyState(w, h int, msg string) image.Image {
	img := blankCanvas(w, h)
	if strings.TrimSpace(msg) == "" {
		msg = "No data for the current selection"
	}
	tw := textWidth(msg)
	drawText(img, (w-tw)/2, h/2, msg, color.RGBA{R: 200, G: 200, B: 200, A: 255})
	return img
}

// Hint returns a copy of img with a one-line hint in the bottom-left
// corner. The input image is never modified.
func Hint(src image.Image, text string) image.Image {
	b := src.Bounds()
	out := image.NewRGBA(b)
	draw.Draw(out, b, src, b.Min, draw.Src)
	drawText(out, b.Min.X+8, b.Max.Y-8, text, color.RGBA{R: 170, G: 170, B: 170, A: 255})
	return out
}

// drawText draws a single line at (x, y baseline) with a subtle shadow for
// contrast on varying backgrounds.
func drawText(dst *image.RGBA, x, y int, text string, col color.RGBA) {
	face := basicfont.Face7x13
	shadow := &font.Drawer{
		Dst: dst, Src: image.NewUniform(color.RGBA{A: 180}), Face: face,
		Dot: fixed.Point26_6{X: fixed.I(x + 1), Y: fixed.I(y + 1)},
	}
	shadow.DrawString(text)
	dr := &font.Drawer{
		Dst: dst, Src: image.NewUniform(col), Face: face,
		Dot: fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	dr.DrawString(text)
}

// textWidth measures text in the fixed 7x13 face used for captions.
func textWidth(text string) int {
	dr := &font.Drawer{Face: basicfont.Face7x13}
	return dr.MeasureString(text).Ceil()
}

func fillRect(dst *image.RGBA, x0, y0, x1, y1 int, col color.RGBA) {
	b := dst.Bounds()
	if x0 < b.Min.X {
		x0 = b.Min.X
	}
	if y0 < b.Min.Y {
		y0 = b.Min.Y
	}
	if x1 > b.Max.X {
		x1 = b.Max.X
	}
	if y1 > b.Max.Y {
		y1 = b.Max.Y
	}
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			dst.SetRGBA(x, y, col)
		}
	}
}

// strokeRect draws a 1px border just inside the rectangle.
func strokeRect(dst *image.RGBA, x0, y0, x1, y1 int, col color.RGBA) {
	for x := x0; x < x1; x++ {
		dst.SetRGBA(x, y0, col)
		dst.SetRGBA(x, y1-1, col)
	}
	for y := y0; y < y1; y++ {
		dst.SetRGBA(x0, y, col)
		dst.SetRGBA(x1-1, y, col)
	}
}

// fillCircle rasterizes a filled circle.
func fillCircle(dst *image.RGBA, cx, cy int, r float64, col color.RGBA) {
	ri := int(r + 1)
	for dy := -ri; dy <= ri; dy++ {
		for dx := -ri; dx <= ri; dx++ {
			if float64(dx*dx+dy*dy) <= r*r {
				dst.SetRGBA(cx+dx, cy+dy, col)
			}
		}
	}
}

// drawLine draws a line of the given width by stamping small discs along
// its length; fine for the edge counts in a 27-node graph.
func drawLine(dst *image.RGBA, x0, y0, x1, y1 float64, width float64, col color.RGBA) {
	dx, dy := x1-x0, y1-y0
	steps := int(maxf(absf(dx), absf(dy)))
	if steps < 1 {
		steps = 1
	}
	r := width / 2
	if r < 0.5 {
		r = 0.5
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		fillCircle(dst, int(x0+dx*t), int(y0+dy*t), r, col)
	}
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
