package render

import (
	"math"
	"testing"

	"github.com/datapedalers/171project/src/aggregate"
	"github.com/datapedalers/171project/src/dataset"
)

func TestInsideOutOrder(t *testing.T) {
	order := InsideOutOrder([]float64{1, 5, 3, 2})
	if len(order) != 4 {
		t.Fatalf("order length %d", len(order))
	}
	seen := map[int]bool{}
	for _, i := range order {
		if i < 0 || i > 3 || seen[i] {
			t.Fatalf("order %v is not a permutation", order)
		}
		seen[i] = true
	}
	// the largest series (index 1) should sit away from the outer edges
	if order[0] == 1 || order[len(order)-1] == 1 {
		t.Fatalf("largest series placed at the edge: %v", order)
	}
}

func TestWiggleBaselineConstantSeries(t *testing.T) {
	// Constant stacks have no wiggle to minimize; the baseline stays flat.
	base := WiggleBaseline([][]float64{
		{4, 4, 4},
		{2, 2, 2},
	})
	for i, v := range base {
		if math.Abs(v-base[0]) > 1e-9 {
			t.Fatalf("baseline[%d] = %v, expected flat", i, v)
		}
	}
}

func TestWiggleBaselineCountersGrowth(t *testing.T) {
	// A single growing series should shift down so the band grows around
	// its center rather than only upward.
	base := WiggleBaseline([][]float64{{2, 4, 8}})
	if !(base[1] < base[0] && base[2] < base[1]) {
		t.Fatalf("baseline should decrease for growing series: %v", base)
	}
}

func TestWiggleBaselineEmpty(t *testing.T) {
	if got := WiggleBaseline(nil); got != nil {
		t.Fatalf("expected nil baseline, got %v", got)
	}
}

func streamBuckets() []aggregate.TimelineBucket {
	return []aggregate.TimelineBucket{
		{Decade: 1870, Total: 3, Values: map[dataset.Category]float64{dataset.CatPerson: 2, dataset.CatTree: 1}},
		{Decade: 1880, Total: 2, Values: map[dataset.Category]float64{dataset.CatPerson: 1, dataset.CatTree: 1}},
		{Decade: 1890, Total: 4, Values: map[dataset.Category]float64{dataset.CatPerson: 3, dataset.CatTree: 1}},
	}
}

func TestRenderStreamgraphSize(t *testing.T) {
	img := RenderStreamgraph(streamBuckets(), []dataset.Category{dataset.CatPerson, dataset.CatTree}, 500, 300)
	b := img.Bounds()
	if b.Dx() != 500 || b.Dy() != 300 {
		t.Fatalf("unexpected image size %dx%d", b.Dx(), b.Dy())
	}
}

func TestRenderStreamgraphSingleBucket(t *testing.T) {
	buckets := streamBuckets()[:1]
	img := RenderStreamgraph(buckets, []dataset.Category{dataset.CatPerson}, 400, 200)
	if img.Bounds().Dx() != 400 {
		t.Fatalf("single bucket render failed")
	}
}

func TestRenderStreamgraphEmpty(t *testing.T) {
	img := RenderStreamgraph(nil, []dataset.Category{dataset.CatPerson}, 300, 150)
	if img.Bounds().Dx() != 300 {
		t.Fatalf("empty state has wrong size")
	}
	img = RenderStreamgraph(streamBuckets(), nil, 300, 150)
	if img.Bounds().Dx() != 300 {
		t.Fatalf("no-category state has wrong size")
	}
}

func TestRenderTimelineSizeAndEmpty(t *testing.T) {
	img := RenderTimeline(streamBuckets(), []dataset.Category{dataset.CatPerson}, false, 500, 300)
	if img.Bounds().Dx() != 500 || img.Bounds().Dy() != 300 {
		t.Fatalf("unexpected timeline size %dx%d", img.Bounds().Dx(), img.Bounds().Dy())
	}
	img = RenderTimeline(nil, []dataset.Category{dataset.CatPerson}, true, 200, 100)
	if img.Bounds().Dx() != 200 {
		t.Fatalf("empty timeline has wrong size")
	}
}
