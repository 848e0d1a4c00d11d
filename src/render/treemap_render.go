package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/datapedalers/171project/src/layout"
)

// MinLabelPx is the minimum tile edge length for label/caption text. A tile
// at exactly this size still hides its text; there is no truncation mode.
const MinLabelPx = 46

// TreemapCaption formats the value line under a tile label.
func TreemapCaption(value float64, percentMode bool) string {
	if percentMode {
		return fmt.Sprintf("%.1f%%", value)
	}
	return fmt.Sprintf("%.0f", value)
}

// RenderTreemap draws the mosaic view from positioned tiles. percentMode
// only changes the caption formatting; the geometry is already final.
func RenderTreemap(tiles []layout.Tile, percentMode bool, w, h int) image.Image {
	if len(tiles) == 0 {
		return EmptyState(w, h, "No photographs match the current filters")
	}
	img := blankCanvas(w, h)
	border := color.RGBA{R: 18, G: 18, B: 18, A: 255}
	label := color.RGBA{R: 245, G: 245, B: 245, A: 255}
	for i, t := range tiles {
		x0, y0 := int(t.X), int(t.Y)
		x1, y1 := int(t.X+t.W), int(t.Y+t.H)
		fillRect(img, x0, y0, x1, y1, PaletteColor(i))
		strokeRect(img, x0, y0, x1, y1, border)
		if t.W > MinLabelPx && t.H > MinLabelPx {
			caption := TreemapCaption(t.Value, percentMode)
			// hide rather than truncate when the text itself does not fit
			if textWidth(t.Label)+8 <= x1-x0 && textWidth(caption)+8 <= x1-x0 {
				drawText(img, x0+4, y0+14, t.Label, label)
				drawText(img, x0+4, y0+28, caption, label)
			}
		}
	}
	return img
}
