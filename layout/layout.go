// Package layout places nodes in 2D space: radial placement of expansion children around
// their parent, overlap resolution against already-placed nodes, and clustered re-layout.
package layout

import (
	"wordweb/diagram"
	"wordweb/geometry"
)

// Default planner settings.
const (
	DefaultMinDistance = 190.0
	DefaultMaxAttempts = 30
	DefaultInitialStep = 30.0
	DefaultStepGrowth  = 10.0
	DefaultBaseRadius  = 220.0
	DefaultLevelStep   = 60.0
	DefaultClusterRing = 400.0
	DefaultMemberRing  = 150.0
	DefaultOrphanGap   = 300.0
)

// Placement is a planned position for one new node.
type Placement struct {
	Point geometry.Point
	// Angle is the direction from the parent before overlap adjustment.
	Angle float64
	// Converged is false when the resolver gave up with a possibly overlapping point.
	Converged bool
}

// positions returns the centre of every node.
func positions(nodes []diagram.Node) []geometry.Point {
	pts := make([]geometry.Point, len(nodes))
	for i, n := range nodes {
		pts[i] = n.Position()
	}
	return pts
}
