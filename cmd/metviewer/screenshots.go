package main

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/datapedalers/171project/src/aggregate"
	"github.com/datapedalers/171project/src/dataset"
	"github.com/datapedalers/171project/src/layout"
	"github.com/datapedalers/171project/src/render"
)

// RunScreenshotsMode renders every view headlessly into outDir, without
// starting the Fyne app. Used for documentation images and CI smoke runs.
func RunScreenshotsMode(csvPath, outDir string, w, h int) error {
	records, err := dataset.Load(csvPath)
	if err != nil {
		return fmt.Errorf("loading %s: %w", csvPath, err)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", outDir, err)
	}
	for _, percent := range []bool{false, true} {
		suffix := ""
		if percent {
			suffix = "_percent"
		}
		for name, img := range screenshotSet(records, w, h, percent) {
			if err := writePNG(filepath.Join(outDir, name+suffix+".png"), img); err != nil {
				return err
			}
		}
	}
	return nil
}

// screenshotSet renders the four views over the full dataset.
func screenshotSet(records []dataset.PhotoRecord, w, h int, percent bool) map[string]image.Image {
	out := map[string]image.Image{}

	counts := aggregate.GroupCounts(records, dataset.CategoryGroups)
	leaves := make([]layout.Leaf, 0, len(dataset.CategoryGroups))
	if percent {
		shares := aggregate.GroupPercentages(counts)
		for _, g := range dataset.CategoryGroups {
			leaves = append(leaves, layout.Leaf{Label: g.Label, Value: shares[g.Label]})
		}
	} else {
		for _, g := range dataset.CategoryGroups {
			leaves = append(leaves, layout.Leaf{Label: g.Label, Value: float64(counts[g.Label])})
		}
	}
	tiles := layout.Squarify(leaves, layout.Rect{W: float64(w), H: float64(h)})
	out["mosaic"] = render.RenderTreemap(tiles, percent, w, h)

	matrix := aggregate.NewCooccurrence(records)
	net := render.BuildNetwork(matrix, 0, render.MinEdgeCount)
	sim := render.LayoutNetwork(net, w, h)
	out["network"] = render.RenderNetwork(sim, net, w, h)

	cats := matrix.TopCategories(5)
	buckets := aggregate.TimelineSeries(records, cats, percent)
	out["streamgraph"] = render.RenderStreamgraph(buckets, cats, w, h)
	out["timeline"] = render.RenderTimeline(buckets, cats, percent, w, h)
	return out
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}
