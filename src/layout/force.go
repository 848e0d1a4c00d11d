package layout

import "math"

// Node is one simulated circle. Radius is derived from Weight before the
// simulation starts; a pinned node has infinite effective mass (it is never
// moved by forces or collision resolution).
type Node struct {
	ID     string
	Weight float64
	Radius float64
	X, Y   float64
	VX, VY float64

	pinned bool
}

// Link connects two nodes by index with an attraction weight.
type Link struct {
	Source, Target int
	Count          int
}

// SimConfig tunes the force simulation.
type SimConfig struct {
	Repulsion      float64 // pairwise charge strength
	SpringStrength float64 // link attraction toward RestLength
	RestLength     float64
	CenterStrength float64 // pull of the barycenter toward canvas center
	CollidePad     float64 // extra spacing between circle borders
	VelocityDecay  float64
	AlphaDecay     float64
	AlphaMin       float64
	EnergyMin      float64 // kinetic energy convergence threshold
	MaxIterations  int     // hard cap so convergence time is bounded
}

// DefaultSimConfig returns the tuning used by the network view.
func DefaultSimConfig() SimConfig {
	return SimConfig{
		Repulsion:      800,
		SpringStrength: 0.02,
		RestLength:     120,
		CenterStrength: 0.05,
		CollidePad:     2,
		VelocityDecay:  0.6,
		AlphaDecay:     0.03,
		AlphaMin:       0.001,
		EnergyMin:      0.05,
		MaxIterations:  300,
	}
}

// RadiusScale maps a node weight into [rmin, rmax] on a square-root scale
// (area-linear, domain [0, maxWeight]). A zero domain collapses to rmin.
func RadiusScale(weight, maxWeight, rmin, rmax float64) float64 {
	if maxWeight <= 0 || weight <= 0 {
		return rmin
	}
	if weight > maxWeight {
		weight = maxWeight
	}
	return rmin + (rmax-rmin)*math.Sqrt(weight/maxWeight)
}

// Sim is a force-directed layout in progress.
type Sim struct {
	Nodes []Node
	Links []Link

	W, H  float64
	cfg   SimConfig
	alpha float64
	iter  int
}

// NewSim seeds nodes deterministically on a phyllotaxis spiral around the
// canvas center, so identical inputs always converge to the same layout.
func NewSim(nodes []Node, links []Link, w, h float64, cfg SimConfig) *Sim {
	s := &Sim{Nodes: nodes, Links: links, W: w, H: h, cfg: cfg, alpha: 1}
	const goldenAngle = math.Pi * (3 - 2.2360679774997896) // pi*(3-sqrt 5)
	cx, cy := w/2, h/2
	for i := range s.Nodes {
		if s.Nodes[i].X != 0 || s.Nodes[i].Y != 0 {
			continue // caller-provided position wins
		}
		r := 12 * math.Sqrt(float64(i)+0.5)
		a := float64(i) * goldenAngle
		s.Nodes[i].X = cx + r*math.Cos(a)
		s.Nodes[i].Y = cy + r*math.Sin(a)
	}
	return s
}

// Alpha exposes the current simulation temperature.
func (s *Sim) Alpha() float64 { return s.alpha }

// Iterations returns how many steps have run so far.
func (s *Sim) Iterations() int { return s.iter }

// Pin fixes node i at (x, y) until Release; used for dragging.
func (s *Sim) Pin(i int, x, y float64) {
	if i < 0 || i >= len(s.Nodes) {
		return
	}
	s.Nodes[i].X, s.Nodes[i].Y = x, y
	s.Nodes[i].VX, s.Nodes[i].VY = 0, 0
	s.Nodes[i].pinned = true
	// reheat so neighbors adjust while the node is dragged
	if s.alpha < 0.3 {
		s.alpha = 0.3
	}
}

// Release unpins node i and resumes with reduced energy injection.
func (s *Sim) Release(i int) {
	if i < 0 || i >= len(s.Nodes) {
		return
	}
	s.Nodes[i].pinned = false
	if s.alpha < 0.1 {
		s.alpha = 0.1
	}
}

// Step advances the simulation one tick and returns the kinetic energy of
// the unpinned nodes.
func (s *Sim) Step() float64 {
	n := len(s.Nodes)
	if n == 0 {
		return 0
	}
	cfg := s.cfg
	// pairwise repulsion
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			dx := s.Nodes[j].X - s.Nodes[i].X
			dy := s.Nodes[j].Y - s.Nodes[i].Y
			d2 := dx*dx + dy*dy
			if d2 < 1 {
				d2 = 1
				dx, dy = 1, 0 // deterministic nudge for coincident nodes
			}
			f := cfg.Repulsion * s.alpha / d2
			d := math.Sqrt(d2)
			fx, fy := f*dx/d, f*dy/d
			if !s.Nodes[i].pinned {
				s.Nodes[i].VX -= fx
				s.Nodes[i].VY -= fy
			}
			if !s.Nodes[j].pinned {
				s.Nodes[j].VX += fx
				s.Nodes[j].VY += fy
			}
		}
	}
	// link springs toward the configured rest length
	for _, l := range s.Links {
		a, b := &s.Nodes[l.Source], &s.Nodes[l.Target]
		dx, dy := b.X-a.X, b.Y-a.Y
		d := math.Hypot(dx, dy)
		if d < 1 {
			d, dx, dy = 1, 1, 0
		}
		f := cfg.SpringStrength * (d - cfg.RestLength) * s.alpha
		fx, fy := f*dx/d, f*dy/d
		if !a.pinned {
			a.VX += fx
			a.VY += fy
		}
		if !b.pinned {
			b.VX -= fx
			b.VY -= fy
		}
	}
	// centering: translate the barycenter toward the canvas center
	var mx, my float64
	for i := range s.Nodes {
		mx += s.Nodes[i].X
		my += s.Nodes[i].Y
	}
	mx /= float64(n)
	my /= float64(n)
	sx := (s.W/2 - mx) * cfg.CenterStrength
	sy := (s.H/2 - my) * cfg.CenterStrength
	// integrate
	energy := 0.0
	for i := range s.Nodes {
		nd := &s.Nodes[i]
		if nd.pinned {
			nd.VX, nd.VY = 0, 0
			continue
		}
		nd.VX *= cfg.VelocityDecay
		nd.VY *= cfg.VelocityDecay
		nd.X += nd.VX + sx
		nd.Y += nd.VY + sy
		energy += nd.VX*nd.VX + nd.VY*nd.VY
	}
	s.resolveCollisions(1)
	s.alpha *= 1 - cfg.AlphaDecay
	s.iter++
	return energy
}

// Run steps until the kinetic energy decays below the configured threshold
// (and alpha below AlphaMin) or the iteration cap is reached, then settles
// residual circle overlaps. Returns the number of iterations executed.
func (s *Sim) Run() int {
	start := s.iter
	for s.iter-start < s.cfg.MaxIterations {
		energy := s.Step()
		if s.alpha < s.cfg.AlphaMin || energy < s.cfg.EnergyMin {
			break
		}
	}
	s.resolveCollisions(60)
	return s.iter - start
}

// resolveCollisions separates overlapping circles by positional correction,
// up to the given number of passes. Pinned nodes never move; their overlap
// is pushed entirely onto the other circle.
func (s *Sim) resolveCollisions(passes int) {
	for p := 0; p < passes; p++ {
		moved := false
		for i := 0; i < len(s.Nodes); i++ {
			for j := i + 1; j < len(s.Nodes); j++ {
				a, b := &s.Nodes[i], &s.Nodes[j]
				if a.pinned && b.pinned {
					continue
				}
				minDist := a.Radius + b.Radius + s.cfg.CollidePad
				dx, dy := b.X-a.X, b.Y-a.Y
				d := math.Hypot(dx, dy)
				if d >= minDist {
					continue
				}
				if d < 1e-6 {
					d, dx, dy = 1e-6, 1, 0
				}
				overlap := minDist - d
				ux, uy := dx/d, dy/d
				switch {
				case a.pinned:
					b.X += ux * overlap
					b.Y += uy * overlap
				case b.pinned:
					a.X -= ux * overlap
					a.Y -= uy * overlap
				default:
					a.X -= ux * overlap / 2
					a.Y -= uy * overlap / 2
					b.X += ux * overlap / 2
					b.Y += uy * overlap / 2
				}
				moved = true
			}
		}
		if !moved {
			return
		}
	}
}
