package layout

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wordweb/diagram"
	"wordweb/geometry"
)

func rootNode() diagram.Node {
	return diagram.Node{ID: "root", Text: "coffee"}
}

func TestRootExpansionSpreadsOverFullCircle(t *testing.T) {
	planner := NewRadialPlanner(NewResolver(WithSeed(1)))
	root := rootNode()

	placements := planner.Plan(root, 4, []diagram.Node{root})
	require.Len(t, placements, 4)

	want := []geometry.Point{{X: 220, Y: 0}, {X: 0, Y: 220}, {X: -220, Y: 0}, {X: 0, Y: -220}}
	for i, p := range placements {
		assert.True(t, p.Converged)
		assert.InDelta(t, float64(i)*math.Pi/2, p.Angle, 1e-9)
		assert.InDelta(t, want[i].X, p.Point.X, 1e-9, "placement %d", i)
		assert.InDelta(t, want[i].Y, p.Point.Y, 1e-9, "placement %d", i)
	}
}

func TestForwardArcAwayFromGrandparent(t *testing.T) {
	planner := NewRadialPlanner(NewResolver(WithSeed(1)))
	root := rootNode()
	parent := diagram.Node{ID: "p", Text: "espresso", Level: 1, ParentID: "root", X: 220}
	nodes := []diagram.Node{root, parent}

	angles := planner.Angles(parent, 3, nodes)
	require.Len(t, angles, 3)
	assert.InDelta(t, -math.Pi/2, angles[0], 1e-9)
	assert.InDelta(t, 0, angles[1], 1e-9)
	assert.InDelta(t, math.Pi/2, angles[2], 1e-9)

	single := planner.Angles(parent, 1, nodes)
	require.Len(t, single, 1)
	assert.InDelta(t, 0, single[0], 1e-9)

	assert.Equal(t, 280.0, planner.Radius(parent))
}

func TestMissingGrandparentFallsBackToFullCircle(t *testing.T) {
	planner := NewRadialPlanner(nil)
	parent := diagram.Node{ID: "p", Level: 2, ParentID: "gone", X: 50, Y: 50}

	angles := planner.Angles(parent, 3, []diagram.Node{parent})
	require.Len(t, angles, 3)
	for i, a := range angles {
		assert.InDelta(t, float64(i)*2*math.Pi/3, a, 1e-9)
	}
	assert.Equal(t, 340.0, planner.Radius(parent))
}

func TestPlanZeroCount(t *testing.T) {
	planner := NewRadialPlanner(nil)
	assert.Nil(t, planner.Plan(rootNode(), 0, nil))
	assert.Nil(t, planner.Angles(rootNode(), -1, nil))
}

func TestPlanSeparatesCrowdedBatch(t *testing.T) {
	planner := NewRadialPlanner(NewResolver(WithSeed(3)))
	root := rootNode()

	// Twelve children on a 220 ring are closer than the minimum separation
	placements := planner.Plan(root, 12, []diagram.Node{root})
	require.Len(t, placements, 12)

	points := []geometry.Point{root.Position()}
	for _, p := range placements {
		require.True(t, p.Converged)
		points = append(points, p.Point)
	}
	for i := range points {
		for j := i + 1; j < len(points); j++ {
			assert.GreaterOrEqual(t, geometry.Distance(points[i], points[j]), DefaultMinDistance)
		}
	}
}

func TestSetRadius(t *testing.T) {
	planner := NewRadialPlanner(nil)
	planner.SetRadius(100, 10)
	assert.Equal(t, 120.0, planner.Radius(diagram.Node{Level: 2}))

	planner.SetRadius(0, -1)
	assert.Equal(t, 120.0, planner.Radius(diagram.Node{Level: 2}), "invalid values keep the current radius")
	assert.Equal(t, "radial", planner.Name())
}
