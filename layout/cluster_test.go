package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wordweb/diagram"
	"wordweb/geometry"
)

func sixNodes() []diagram.Node {
	return []diagram.Node{
		{ID: "n1", Text: "espresso", Level: 1},
		{ID: "n2", Text: "latte", Level: 1},
		{ID: "n3", Text: "morning", Level: 1},
		{ID: "n4", Text: "alarm", Level: 1},
		{ID: "n5", Text: "beans", Level: 1},
		{ID: "n6", Text: "grinder", Level: 1},
	}
}

func byID(nodes []diagram.Node) map[string]geometry.Point {
	m := make(map[string]geometry.Point, len(nodes))
	for _, n := range nodes {
		m[n.ID] = n.Position()
	}
	return m
}

func assertPoint(t *testing.T, want, got geometry.Point, msg string) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-9, msg)
	assert.InDelta(t, want.Y, got.Y, 1e-9, msg)
}

func TestClusterPlanWithOrphans(t *testing.T) {
	planner := NewClusterPlanner()
	clusters := []Cluster{
		{Name: "drinks", NodeIDs: []string{"n1", "n2"}},
		{Name: "time", NodeIDs: []string{"n3", "n4"}},
	}

	out := planner.Plan(sixNodes(), clusters, geometry.Point{})
	require.Len(t, out, 6)
	pos := byID(out)

	assertPoint(t, geometry.Pt(550, 0), pos["n1"], "n1")
	assertPoint(t, geometry.Pt(250, 0), pos["n2"], "n2")
	assertPoint(t, geometry.Pt(-250, 0), pos["n3"], "n3")
	assertPoint(t, geometry.Pt(-550, 0), pos["n4"], "n4")
	assertPoint(t, geometry.Pt(700, 0), pos["n5"], "orphan n5")
	assertPoint(t, geometry.Pt(-700, 0), pos["n6"], "orphan n6")

	// Everything else is carried over
	for i, n := range out {
		assert.Equal(t, sixNodes()[i].ID, n.ID)
		assert.Equal(t, sixNodes()[i].Text, n.Text)
	}
}

func TestClusterPlanAroundOffsetCenter(t *testing.T) {
	planner := NewClusterPlanner()
	center := geometry.Pt(1000, -500)

	out := planner.Plan(sixNodes()[:1], []Cluster{{Name: "all", NodeIDs: []string{"n1"}}}, center)
	require.Len(t, out, 1)
	assertPoint(t, geometry.Pt(1550, -500), out[0].Position(), "single member")
}

func TestClusterPlanSkipsUnknownAndLastWins(t *testing.T) {
	planner := NewClusterPlanner()
	clusters := []Cluster{
		{Name: "first", NodeIDs: []string{"n1", "ghost"}},
		{Name: "second", NodeIDs: []string{"n1"}},
	}

	out := planner.Plan(sixNodes()[:1], clusters, geometry.Point{})
	require.Len(t, out, 1)
	// n1 belongs to the second cluster, centred at (-400,0)
	assertPoint(t, geometry.Pt(-250, 0), out[0].Position(), "n1")
}

func TestClusterPlanDoesNotMutateInput(t *testing.T) {
	planner := NewClusterPlanner()
	nodes := sixNodes()
	planner.Plan(nodes, nil, geometry.Pt(5, 5))
	for _, n := range nodes {
		assert.Zero(t, n.X)
		assert.Zero(t, n.Y)
	}
}

func TestClusterRadii(t *testing.T) {
	planner := NewClusterPlanner()
	assert.Equal(t, 700.0, planner.OrphanRadius())
	assert.Equal(t, "cluster", planner.Name())

	planner.SetRadii(100, 0, 50)
	assert.Equal(t, 150.0, planner.OrphanRadius())
	assert.Equal(t, DefaultMemberRing, planner.memberRadius)
}
