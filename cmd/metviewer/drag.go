package main

import (
	"image/color"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
)

// dragOverlay sits on top of the network canvas and lets the user drag
// nodes. While dragging the node is pinned at the pointer and the
// simulation keeps stepping so the rest of the graph follows; on release
// the node is freed again.
type dragOverlay struct {
	widget.BaseWidget
	state   *uiState
	dragged int // node index, -1 when idle
}

func newDragOverlay(state *uiState) *dragOverlay {
	o := &dragOverlay{state: state, dragged: -1}
	o.ExtendBaseWidget(o)
	return o
}

func (o *dragOverlay) CreateRenderer() fyne.WidgetRenderer {
	r := canvas.NewRectangle(color.Transparent)
	return widget.NewSimpleRenderer(r)
}

// toChart maps an overlay position into chart pixel coordinates through the
// ImageFillContain letterbox.
func (o *dragOverlay) toChart(pos fyne.Position) (float64, float64, bool) {
	st := o.state
	if st.sim == nil || st.netW == 0 || st.netH == 0 {
		return 0, 0, false
	}
	sz := o.Size()
	if sz.Width <= 0 || sz.Height <= 0 {
		return 0, 0, false
	}
	scale := float64(sz.Width) / float64(st.netW)
	if s := float64(sz.Height) / float64(st.netH); s < scale {
		scale = s
	}
	offX := (float64(sz.Width) - float64(st.netW)*scale) / 2
	offY := (float64(sz.Height) - float64(st.netH)*scale) / 2
	return (float64(pos.X) - offX) / scale, (float64(pos.Y) - offY) / scale, true
}

func (o *dragOverlay) hitNode(x, y float64) int {
	st := o.state
	for i := range st.sim.Nodes {
		n := &st.sim.Nodes[i]
		dx, dy := x-n.X, y-n.Y
		if dx*dx+dy*dy <= n.Radius*n.Radius {
			return i
		}
	}
	return -1
}

func (o *dragOverlay) Dragged(ev *fyne.DragEvent) {
	x, y, ok := o.toChart(ev.Position)
	if !ok {
		return
	}
	st := o.state
	if o.dragged < 0 {
		o.dragged = o.hitNode(x, y)
		if o.dragged < 0 {
			return
		}
	}
	st.sim.Pin(o.dragged, x, y)
	// a few steps per pointer event keep the motion smooth without
	// blocking the UI thread on full convergence
	for i := 0; i < 3; i++ {
		st.sim.Step()
	}
	redrawNetwork(st)
}

func (o *dragOverlay) DragEnd() {
	st := o.state
	if o.dragged < 0 {
		return
	}
	st.sim.Release(o.dragged)
	o.dragged = -1
	st.sim.Run()
	redrawNetwork(st)
}

var _ fyne.Draggable = (*dragOverlay)(nil)
