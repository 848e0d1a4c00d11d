package render

import (
	"image"
	"image/color"
	"sort"
	"strconv"

	"github.com/datapedalers/171project/src/aggregate"
	"github.com/datapedalers/171project/src/dataset"
)

// InsideOutOrder returns a drawing order for the stacked series that places
// the largest series in the middle and alternates smaller ones outward,
// which keeps the streamgraph visually balanced.
func InsideOutOrder(totals []float64) []int {
	idx := make([]int, len(totals))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return totals[idx[a]] > totals[idx[b]] })
	// Alternate: largest in the middle, then one to each side.
	order := make([]int, 0, len(idx))
	var front []int
	for i, s := range idx {
		if i%2 == 0 {
			order = append(order, s)
		} else {
			front = append(front, s)
		}
	}
	for i := len(front) - 1; i >= 0; i-- {
		order = append([]int{front[i]}, order...)
	}
	return order
}

// WiggleBaseline computes the wiggle-minimizing baseline per x position for
// already-ordered series values (values[series][x]).
func WiggleBaseline(values [][]float64) []float64 {
	if len(values) == 0 || len(values[0]) == 0 {
		return nil
	}
	n := len(values[0])
	base := make([]float64, n)
	for j := 1; j < n; j++ {
		var s1, s2, carry float64
		for i := range values {
			d := values[i][j] - values[i][j-1]
			s2 += values[i][j] * (carry + d/2)
			s1 += values[i][j]
			carry += d
		}
		if s1 != 0 {
			base[j] = base[j-1] - s2/s1
		} else {
			base[j] = base[j-1]
		}
	}
	return base
}

// RenderStreamgraph stacks the selected categories over the timeline
// buckets with a wiggle-minimizing offset and inside-out ordering. Values
// are raw counts or per-decade percentages depending on how the buckets
// were aggregated; the renderer treats them uniformly.
func RenderStreamgraph(buckets []aggregate.TimelineBucket, cats []dataset.Category, w, h int) image.Image {
	if len(buckets) == 0 || len(cats) == 0 {
		return EmptyState(w, h, "No photographs in the selected range")
	}
	// A single decade cannot form a band; pad a duplicate column so the
	// bucket still shows as a narrow stream.
	if len(buckets) == 1 {
		dup := buckets[0]
		dup.Decade += 10
		buckets = append(buckets, dup)
	}
	values := make([][]float64, len(cats))
	totals := make([]float64, len(cats))
	for i, c := range cats {
		values[i] = make([]float64, len(buckets))
		for j, b := range buckets {
			values[i][j] = b.Values[c]
			totals[i] += b.Values[c]
		}
	}
	order := InsideOutOrder(totals)
	ordered := make([][]float64, len(order))
	for k, i := range order {
		ordered[k] = values[i]
	}
	base := WiggleBaseline(ordered)

	// Stack: per x, band k spans [base + sum(<k), base + sum(<=k)].
	n := len(buckets)
	y0 := make([][]float64, len(ordered))
	y1 := make([][]float64, len(ordered))
	minY, maxY := 0.0, 0.0
	for k := range ordered {
		y0[k] = make([]float64, n)
		y1[k] = make([]float64, n)
	}
	for j := 0; j < n; j++ {
		acc := base[j]
		for k := range ordered {
			y0[k][j] = acc
			acc += ordered[k][j]
			y1[k][j] = acc
			if y0[k][j] < minY {
				minY = y0[k][j]
			}
			if y1[k][j] > maxY {
				maxY = y1[k][j]
			}
		}
	}
	if maxY <= minY {
		return EmptyState(w, h, "No photographs in the selected range")
	}

	img := blankCanvas(w, h)
	const padX, padTop, padBottom = 40, 16, 28
	plotW := float64(w - 2*padX)
	plotH := float64(h - padTop - padBottom)
	px := func(j int) float64 { return float64(padX) + plotW*float64(j)/float64(n-1) }
	py := func(v float64) float64 {
		return float64(padTop) + plotH*(1-(v-minY)/(maxY-minY))
	}
	for k := range ordered {
		col := PaletteColor(order[k])
		for j := 0; j < n-1; j++ {
			xa, xb := px(j), px(j+1)
			for x := int(xa); x <= int(xb); x++ {
				t := 0.0
				if xb > xa {
					t = (float64(x) - xa) / (xb - xa)
				}
				top := py(y1[k][j] + t*(y1[k][j+1]-y1[k][j]))
				bot := py(y0[k][j] + t*(y0[k][j+1]-y0[k][j]))
				for y := int(top); y <= int(bot); y++ {
					img.SetRGBA(x, y, col)
				}
			}
		}
	}
	// decade labels along the bottom
	labelCol := color.RGBA{R: 200, G: 200, B: 200, A: 255}
	for j, b := range buckets {
		lbl := strconv.Itoa(b.Decade)
		drawText(img, int(px(j))-textWidth(lbl)/2, h-8, lbl, labelCol)
	}
	// legend: category name in its series color, top-left
	lx := padX
	for i, c := range cats {
		name := c.String()
		drawText(img, lx, 12, name, PaletteColor(i))
		lx += textWidth(name) + 16
	}
	return img
}
