package render

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/datapedalers/171project/src/layout"
)

func rgbHex(i int) string {
	c := PaletteColor(i)
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// TreemapSVG writes the mosaic view as a standalone SVG document, for
// exports that need to scale beyond the on-screen canvas.
func TreemapSVG(w io.Writer, tiles []layout.Tile, percentMode bool, width, height int) {
	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:#121212")
	for i, t := range tiles {
		canvas.Rect(int(t.X), int(t.Y), int(t.W), int(t.H),
			fmt.Sprintf("fill:%s;stroke:#121212;stroke-width:1", rgbHex(i)))
		if t.W > MinLabelPx && t.H > MinLabelPx {
			canvas.Text(int(t.X)+4, int(t.Y)+16, t.Label, "fill:#f5f5f5;font-size:13px;font-family:sans-serif")
			canvas.Text(int(t.X)+4, int(t.Y)+32, TreemapCaption(t.Value, percentMode), "fill:#f5f5f5;font-size:12px;font-family:sans-serif")
		}
	}
	canvas.End()
}

// NetworkSVG writes the co-occurrence graph at its simulated positions.
func NetworkSVG(w io.Writer, sim *layout.Sim, net Network, width, height int) {
	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:#121212")
	maxCount := 0
	for _, l := range net.Links {
		if l.Count > maxCount {
			maxCount = l.Count
		}
	}
	for _, l := range net.Links {
		a, b := sim.Nodes[l.Source], sim.Nodes[l.Target]
		canvas.Line(int(a.X), int(a.Y), int(b.X), int(b.Y),
			fmt.Sprintf("stroke:#6e6e6e;stroke-width:%.1f", edgeWidth(l.Count, maxCount)))
	}
	for i, n := range sim.Nodes {
		canvas.Circle(int(n.X), int(n.Y), int(n.Radius), fmt.Sprintf("fill:%s", rgbHex(i)))
		canvas.Text(int(n.X), int(n.Y)+4, n.ID,
			"fill:#f5f5f5;font-size:12px;font-family:sans-serif;text-anchor:middle")
	}
	canvas.End()
}
