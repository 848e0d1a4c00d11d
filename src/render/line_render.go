package render

import (
	"bytes"
	"image"
	"image/png"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/datapedalers/171project/src/aggregate"
	"github.com/datapedalers/171project/src/dataset"
)

// RenderTimeline draws one line per selected category across the decade
// buckets. In percent mode the y axis is pinned to [0,100] so the scale
// stays comparable while the user toggles filters.
func RenderTimeline(buckets []aggregate.TimelineBucket, cats []dataset.Category, percentMode bool, w, h int) image.Image {
	if len(buckets) == 0 || len(cats) == 0 {
		return EmptyState(w, h, "No photographs in the selected range")
	}
	decades := make([]int, len(buckets))
	for i, b := range buckets {
		decades[i] = b.Decade
	}

	var series []chart.Series
	maxY := 0.0
	for i, c := range cats {
		xs := make([]float64, 0, len(buckets))
		ys := make([]float64, 0, len(buckets))
		for _, b := range buckets {
			xs = append(xs, float64(b.Decade))
			v := b.Values[c]
			ys = append(ys, v)
			if v > maxY {
				maxY = v
			}
		}
		pc := PaletteColor(i)
		st := chart.Style{
			StrokeColor: drawing.Color{R: pc.R, G: pc.G, B: pc.B, A: 255},
			StrokeWidth: 2,
		}
		if len(xs) == 1 {
			// go-chart refuses a zero-width domain; duplicate the point
			xs = append(xs, xs[0]+10)
			ys = append(ys, ys[0])
		}
		series = append(series, chart.ContinuousSeries{Name: c.String(), XValues: xs, YValues: ys, Style: st})
	}

	yName := "Photographs"
	var yRange *chart.ContinuousRange
	var yTicks []chart.Tick
	if percentMode {
		yName = "Share (%)"
		yRange = &chart.ContinuousRange{Min: 0, Max: 100}
		yTicks = niceTicks(0, 100, 6)
	} else {
		if maxY <= 0 {
			maxY = 1
		}
		_, nMax := niceAxisBounds(0, maxY)
		yRange = &chart.ContinuousRange{Min: 0, Max: nMax}
		yTicks = niceTicks(0, nMax, 6)
	}

	ch := chart.Chart{
		Title:      "Objects over time",
		Background: chart.Style{Padding: chart.Box{Top: 14, Left: 16, Right: 12, Bottom: 28}},
		XAxis:      chart.XAxis{Name: "Decade", Ticks: decadeTicks(decades)},
		YAxis:      chart.YAxis{Name: yName, Range: yRange, Ticks: yTicks},
		Series:     series,
		Width:      w,
		Height:     h,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		dataset.Errorf("timeline render error: %v; showing blank fallback", err)
		return EmptyState(w, h, "Chart render failed")
	}
	img, err := png.Decode(&buf)
	if err != nil {
		dataset.Errorf("timeline decode error: %v; showing blank fallback", err)
		return EmptyState(w, h, "Chart render failed")
	}
	return img
}
