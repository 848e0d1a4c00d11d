package main

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strconv"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/datapedalers/171project/src/dataset"
	"github.com/datapedalers/171project/src/layout"
)

// drilldownOverlay sits on top of the mosaic canvas and maps taps back to
// tiles, opening a dialog with sample photographs for the tapped group.
type drilldownOverlay struct {
	widget.BaseWidget
	state *uiState
}

func newDrilldownOverlay(state *uiState) *drilldownOverlay {
	o := &drilldownOverlay{state: state}
	o.ExtendBaseWidget(o)
	return o
}

func (o *drilldownOverlay) CreateRenderer() fyne.WidgetRenderer {
	// fully transparent; only there to catch taps
	r := canvas.NewRectangle(color.Transparent)
	return widget.NewSimpleRenderer(r)
}

func (o *drilldownOverlay) Tapped(ev *fyne.PointEvent) {
	st := o.state
	if st == nil || len(st.tiles) == 0 || st.mosaicW == 0 || st.mosaicH == 0 {
		return
	}
	// The canvas uses ImageFillContain: the chart is scaled to fit and
	// centered, so map the tap through the letterboxed rectangle.
	sz := o.Size()
	if sz.Width <= 0 || sz.Height <= 0 {
		return
	}
	scale := float64(sz.Width) / float64(st.mosaicW)
	if s := float64(sz.Height) / float64(st.mosaicH); s < scale {
		scale = s
	}
	drawnW := float64(st.mosaicW) * scale
	drawnH := float64(st.mosaicH) * scale
	offX := (float64(sz.Width) - drawnW) / 2
	offY := (float64(sz.Height) - drawnH) / 2
	x := (float64(ev.Position.X) - offX) / scale
	y := (float64(ev.Position.Y) - offY) / scale
	for _, t := range st.tiles {
		if x >= t.X && x < t.X+t.W && y >= t.Y && y < t.Y+t.H {
			showDrilldown(st, t)
			return
		}
	}
}

// groupMatches returns every record whose presence flags hit any member of
// the named group, in input order.
func groupMatches(recs []dataset.PhotoRecord, label string) []dataset.PhotoRecord {
	var group *dataset.CategoryGroup
	for i := range dataset.CategoryGroups {
		if dataset.CategoryGroups[i].Label == label {
			group = &dataset.CategoryGroups[i]
			break
		}
	}
	if group == nil {
		return nil
	}
	var matches []dataset.PhotoRecord
	for _, r := range recs {
		for _, m := range group.Members {
			if r.Present[m] {
				matches = append(matches, r)
				break
			}
		}
	}
	return matches
}

// showDrilldown lists every photograph in the tapped group under the active
// year filter, with thumbnails when an images directory was provided. The
// grid scrolls; nothing is truncated.
func showDrilldown(state *uiState, tile layout.Tile) {
	matches := groupMatches(yearRecords(state), tile.Label)
	if len(matches) == 0 {
		dialog.ShowInformation(tile.Label, "No photographs in this group for the current filters.", state.window)
		return
	}

	grid := container.NewGridWithColumns(3)
	for _, r := range matches {
		caption := widget.NewLabel(fmt.Sprintf("#%d %s", r.ObjectID, r.ArtistName))
		caption.Wrapping = fyne.TextWrapWord
		grid.Add(container.NewVBox(thumbnail(state, r.ObjectID), caption))
	}
	title := fmt.Sprintf("%s: %d photographs", tile.Label, len(matches))
	content := container.NewVScroll(grid)
	content.SetMinSize(fyne.NewSize(620, 420))
	dialog.ShowCustom(title, "Close", content, state.window)
}

// thumbnail returns the <object_id>.jpg image, or a placeholder when the
// file is missing or no images directory was configured.
func thumbnail(state *uiState, objectID int) fyne.CanvasObject {
	if state.imagesDir != "" {
		path := filepath.Join(state.imagesDir, strconv.Itoa(objectID)+".jpg")
		if _, err := os.Stat(path); err == nil {
			img := canvas.NewImageFromFile(path)
			img.FillMode = canvas.ImageFillContain
			img.SetMinSize(fyne.NewSize(180, 140))
			return img
		}
	}
	ph := canvas.NewRectangle(color.RGBA{R: 60, G: 60, B: 60, A: 255})
	ph.SetMinSize(fyne.NewSize(180, 140))
	return container.NewStack(ph, widget.NewLabel("no image"))
}
