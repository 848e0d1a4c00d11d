// Package layout converts aggregated numbers into screen geometry: a
// squarified treemap for the mosaic view and a force-directed simulation
// for the co-occurrence network. Both are deterministic for identical
// inputs so renderers and tests can rely on exact geometry.
package layout

import "sort"

// Leaf is one treemap input: a label and a non-negative value.
type Leaf struct {
	Label string
	Value float64
}

// Rect is an axis-aligned rectangle in pixel space.
type Rect struct {
	X, Y, W, H float64
}

// Tile is a positioned leaf.
type Tile struct {
	Leaf
	Rect
}

// Squarify partitions bounds into tiles whose areas are proportional to the
// leaf values, using the squarified heuristic to keep aspect ratios near 1.
// Leaves with value <= 0 are dropped entirely (never rendered as zero-size
// tiles). Equal values keep input order.
func Squarify(leaves []Leaf, bounds Rect) []Tile {
	var kept []Leaf
	total := 0.0
	for _, l := range leaves {
		if l.Value > 0 {
			kept = append(kept, l)
			total += l.Value
		}
	}
	if len(kept) == 0 || bounds.W <= 0 || bounds.H <= 0 {
		return nil
	}
	// Descending by value; stable sort preserves input order for ties.
	sort.SliceStable(kept, func(i, j int) bool { return kept[i].Value > kept[j].Value })

	// Normalize values to areas in pixel units.
	scale := bounds.W * bounds.H / total
	areas := make([]float64, len(kept))
	for i, l := range kept {
		areas[i] = l.Value * scale
	}

	tiles := make([]Tile, 0, len(kept))
	free := bounds
	var row []int
	rowArea := 0.0
	flush := func() {
		if len(row) == 0 {
			return
		}
		if free.W >= free.H {
			// vertical column on the left edge
			w := rowArea / free.H
			y := free.Y
			for _, i := range row {
				h := areas[i] / w
				tiles = append(tiles, Tile{Leaf: kept[i], Rect: Rect{X: free.X, Y: y, W: w, H: h}})
				y += h
			}
			free = Rect{X: free.X + w, Y: free.Y, W: free.W - w, H: free.H}
		} else {
			// horizontal row along the top edge
			h := rowArea / free.W
			x := free.X
			for _, i := range row {
				w := areas[i] / h
				tiles = append(tiles, Tile{Leaf: kept[i], Rect: Rect{X: x, Y: free.Y, W: w, H: h}})
				x += w
			}
			free = Rect{X: free.X, Y: free.Y + h, W: free.W, H: free.H - h}
		}
		row = row[:0]
		rowArea = 0
	}
	for i := range kept {
		side := free.W
		if free.H < side {
			side = free.H
		}
		if len(row) > 0 && worstAspect(row, areas, rowArea+areas[i], side, areas[i]) > worstAspect(row, areas, rowArea, side, -1) {
			flush()
		}
		row = append(row, i)
		rowArea += areas[i]
	}
	flush()
	return tiles
}

// worstAspect returns the worst (largest) aspect ratio in the row if laid
// along a side of the given length. extra >= 0 evaluates the row with one
// more area appended.
func worstAspect(row []int, areas []float64, rowArea, side float64, extra float64) float64 {
	if rowArea <= 0 || side <= 0 {
		return 0
	}
	min, max := extra, extra
	if extra < 0 {
		min, max = areas[row[0]], areas[row[0]]
	}
	for _, i := range row {
		a := areas[i]
		if a < min || min < 0 {
			min = a
		}
		if a > max {
			max = a
		}
	}
	s2 := rowArea * rowArea
	w2 := side * side
	r1 := w2 * max / s2
	r2 := s2 / (w2 * min)
	if r1 > r2 {
		return r1
	}
	return r2
}
