package layout

import (
	"math"

	"wordweb/diagram"
	"wordweb/geometry"
)

// RadialPlanner places the children of an expanded node on a circle around it.
// Roots spread their children over the full circle. Deeper nodes with a known
// grandparent keep their children on the half circle facing away from it.
type RadialPlanner struct {
	baseRadius float64
	levelStep  float64
	resolver   *Resolver
}

// NewRadialPlanner creates a planner with the default radius 220 + 60 per level.
func NewRadialPlanner(resolver *Resolver) *RadialPlanner {
	if resolver == nil {
		resolver = NewResolver()
	}
	return &RadialPlanner{
		baseRadius: DefaultBaseRadius,
		levelStep:  DefaultLevelStep,
		resolver:   resolver,
	}
}

// SetRadius overrides the base radius and the per-level increment.
func (p *RadialPlanner) SetRadius(base, perLevel float64) {
	if base > 0 {
		p.baseRadius = base
	}
	if perLevel >= 0 {
		p.levelStep = perLevel
	}
}

// Name returns the name of this layout algorithm.
func (p *RadialPlanner) Name() string {
	return "radial"
}

// Radius returns the ring radius used for the children of parent.
func (p *RadialPlanner) Radius(parent diagram.Node) float64 {
	return p.baseRadius + float64(parent.Level)*p.levelStep
}

// Angles returns the raw directions, before overlap adjustment, for count children of
// parent. nodes is searched for the parent's parent.
func (p *RadialPlanner) Angles(parent diagram.Node, count int, nodes []diagram.Node) []float64 {
	if count <= 0 {
		return nil
	}
	angles := make([]float64, count)

	if parent.Level > 0 && parent.ParentID != "" {
		if grand, ok := findNode(nodes, parent.ParentID); ok {
			forward := geometry.Angle(grand.Position(), parent.Position())
			if count == 1 {
				angles[0] = forward
				return angles
			}
			// Spread over the half circle [forward-90°, forward+90°], endpoints included
			start := forward - math.Pi/2
			step := math.Pi / float64(count-1)
			for i := range angles {
				angles[i] = start + float64(i)*step
			}
			return angles
		}
	}

	step := 2 * math.Pi / float64(count)
	for i := range angles {
		angles[i] = float64(i) * step
	}
	return angles
}

// Plan returns count placements around parent. Every point is resolved against the
// existing nodes and against the points already planned in this batch.
func (p *RadialPlanner) Plan(parent diagram.Node, count int, nodes []diagram.Node) []Placement {
	angles := p.Angles(parent, count, nodes)
	if len(angles) == 0 {
		return nil
	}

	radius := p.Radius(parent)
	center := parent.Position()
	occupied := positions(nodes)

	placements := make([]Placement, len(angles))
	for i, angle := range angles {
		candidate := geometry.Polar(center, radius, angle)
		resolved, ok := p.resolver.Resolve(candidate, occupied)
		occupied = append(occupied, resolved)
		placements[i] = Placement{Point: resolved, Angle: angle, Converged: ok}
	}
	return placements
}

func findNode(nodes []diagram.Node, id string) (diagram.Node, bool) {
	for _, n := range nodes {
		if n.ID == id {
			return n, true
		}
	}
	return diagram.Node{}, false
}
