package layout

import (
	"math"
	"testing"
)

func TestSquarifyAreasProportional(t *testing.T) {
	leaves := []Leaf{
		{Label: "a", Value: 6},
		{Label: "b", Value: 3},
		{Label: "c", Value: 1},
	}
	bounds := Rect{X: 0, Y: 0, W: 600, H: 400}
	tiles := Squarify(leaves, bounds)
	if len(tiles) != 3 {
		t.Fatalf("expected 3 tiles, got %d", len(tiles))
	}
	totalArea := bounds.W * bounds.H
	for _, tile := range tiles {
		wantShare := tile.Value / 10
		gotShare := tile.W * tile.H / totalArea
		if math.Abs(gotShare-wantShare) > 1e-6 {
			t.Fatalf("tile %s area share %v, want %v", tile.Label, gotShare, wantShare)
		}
	}
}

func TestSquarifyNoOverlapAndInBounds(t *testing.T) {
	leaves := []Leaf{
		{"a", 10}, {"b", 8}, {"c", 5}, {"d", 5}, {"e", 2}, {"f", 1}, {"g", 1},
	}
	bounds := Rect{X: 10, Y: 20, W: 500, H: 300}
	tiles := Squarify(leaves, bounds)
	const eps = 1e-6
	for i, a := range tiles {
		if a.X < bounds.X-eps || a.Y < bounds.Y-eps ||
			a.X+a.W > bounds.X+bounds.W+eps || a.Y+a.H > bounds.Y+bounds.H+eps {
			t.Fatalf("tile %s escapes bounds: %+v", a.Label, a.Rect)
		}
		for j := i + 1; j < len(tiles); j++ {
			b := tiles[j]
			if a.X+a.W > b.X+eps && b.X+b.W > a.X+eps &&
				a.Y+a.H > b.Y+eps && b.Y+b.H > a.Y+eps {
				t.Fatalf("tiles %s and %s overlap", a.Label, b.Label)
			}
		}
	}
}

func TestSquarifyDropsZeroLeaves(t *testing.T) {
	tiles := Squarify([]Leaf{{"a", 5}, {"zero", 0}, {"neg", -1}}, Rect{W: 100, H: 100})
	if len(tiles) != 1 || tiles[0].Label != "a" {
		t.Fatalf("zero/negative leaves must be dropped: %+v", tiles)
	}
	// the surviving leaf takes the whole rectangle
	if math.Abs(tiles[0].W*tiles[0].H-100*100) > 1e-6 {
		t.Fatalf("single leaf must fill bounds: %+v", tiles[0].Rect)
	}
}

func TestSquarifyStableTies(t *testing.T) {
	leaves := []Leaf{{"first", 5}, {"second", 5}, {"third", 5}}
	tiles := Squarify(leaves, Rect{W: 300, H: 100})
	if tiles[0].Label != "first" || tiles[1].Label != "second" || tiles[2].Label != "third" {
		t.Fatalf("equal values must keep input order: %+v", tiles)
	}
}

func TestSquarifyDeterministic(t *testing.T) {
	leaves := []Leaf{{"a", 7}, {"b", 3}, {"c", 9}, {"d", 1}}
	bounds := Rect{W: 640, H: 480}
	first := Squarify(leaves, bounds)
	second := Squarify(leaves, bounds)
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("layout not deterministic at %d: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestSquarifyEmpty(t *testing.T) {
	if tiles := Squarify(nil, Rect{W: 100, H: 100}); tiles != nil {
		t.Fatalf("no leaves must produce no tiles")
	}
	if tiles := Squarify([]Leaf{{"a", 1}}, Rect{W: 0, H: 100}); tiles != nil {
		t.Fatalf("degenerate bounds must produce no tiles")
	}
}
