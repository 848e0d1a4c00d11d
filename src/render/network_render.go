package render

import (
	"image"
	"image/color"

	"github.com/datapedalers/171project/src/aggregate"
	"github.com/datapedalers/171project/src/dataset"
	"github.com/datapedalers/171project/src/layout"
)

// Network view defaults: edges below MinEdgeCount are a significance filter
// and are not drawn at all; TopN restricts the node set in the reduced
// detail mode.
const (
	MinEdgeCount = 5
	TopNDefault  = 10

	NodeRadiusMin = 15
	NodeRadiusMax = 50
)

// Network bundles simulation inputs for the co-occurrence view. Node order
// matches Cats; Links index into Nodes.
type Network struct {
	Cats  []dataset.Category
	Nodes []layout.Node
	Links []layout.Link
}

// BuildNetwork selects nodes and edges from a co-occurrence matrix. topN <= 0
// keeps every category with nonzero frequency; otherwise only the topN most
// frequent remain and edges are implicitly restricted to pairs inside that
// subset. The matrix itself is never recomputed for the reduced mode.
func BuildNetwork(m *aggregate.Cooccurrence, topN, minCount int) Network {
	if minCount <= 0 {
		minCount = MinEdgeCount
	}
	cats := m.TopCategories(topN)
	index := map[dataset.Category]int{}
	maxFreq := float64(m.MaxFrequency())
	net := Network{Cats: cats}
	for i, c := range cats {
		index[c] = i
		f := float64(m.Frequency(c))
		net.Nodes = append(net.Nodes, layout.Node{
			ID:     c.String(),
			Weight: f,
			Radius: layout.RadiusScale(f, maxFreq, NodeRadiusMin, NodeRadiusMax),
		})
	}
	for _, p := range m.Pairs(minCount) {
		a, okA := index[p.A]
		b, okB := index[p.B]
		if !okA || !okB {
			continue // endpoint filtered out by topN
		}
		net.Links = append(net.Links, layout.Link{Source: a, Target: b, Count: p.Count})
	}
	return net
}

// LayoutNetwork runs the force simulation to convergence for a static
// rendering. The viewer owns its own Sim instead when it needs dragging.
func LayoutNetwork(net Network, w, h int) *layout.Sim {
	sim := layout.NewSim(net.Nodes, net.Links, float64(w), float64(h), layout.DefaultSimConfig())
	sim.Run()
	return sim
}

// edgeWidth scales linearly with the co-occurrence count.
func edgeWidth(count, maxCount int) float64 {
	if maxCount <= 0 {
		return 1
	}
	return 1 + 5*float64(count)/float64(maxCount)
}

// RenderNetwork draws nodes and edges at their current simulated positions.
func RenderNetwork(sim *layout.Sim, net Network, w, h int) image.Image {
	if len(sim.Nodes) == 0 {
		return EmptyState(w, h, "No object co-occurrences above the threshold")
	}
	img := blankCanvas(w, h)
	edgeCol := color.RGBA{R: 110, G: 110, B: 110, A: 255}
	labelCol := color.RGBA{R: 245, G: 245, B: 245, A: 255}
	maxCount := 0
	for _, l := range net.Links {
		if l.Count > maxCount {
			maxCount = l.Count
		}
	}
	for _, l := range net.Links {
		a, b := sim.Nodes[l.Source], sim.Nodes[l.Target]
		drawLine(img, a.X, a.Y, b.X, b.Y, edgeWidth(l.Count, maxCount), edgeCol)
	}
	for i, n := range sim.Nodes {
		fillCircle(img, int(n.X), int(n.Y), n.Radius, PaletteColor(i))
		tw := textWidth(n.ID)
		drawText(img, int(n.X)-tw/2, int(n.Y)+4, n.ID, labelCol)
	}
	return img
}
