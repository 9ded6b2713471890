package layout

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"wordweb/diagram"
	"wordweb/geometry"
)

func layoutParameters() *gopter.TestParameters {
	params := gopter.DefaultTestParametersWithSeed(1234)
	params.MinSuccessfulTests = 200
	return params
}

func TestRootAnglesEvenlySpaced(t *testing.T) {
	properties := gopter.NewProperties(layoutParameters())
	planner := NewRadialPlanner(nil)

	properties.Property("root children are 2π/n apart starting at 0", prop.ForAll(
		func(count int) bool {
			angles := planner.Angles(rootNode(), count, nil)
			if len(angles) != count {
				return false
			}
			for i, a := range angles {
				if math.Abs(a-2*math.Pi*float64(i)/float64(count)) > 1e-9 {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 40),
	))

	properties.TestingRun(t)
}

func TestChildAnglesStayInForwardHalfCircle(t *testing.T) {
	properties := gopter.NewProperties(layoutParameters())
	planner := NewRadialPlanner(nil)

	properties.Property("children stay within 90° of the grandparent direction", prop.ForAll(
		func(theta, distance float64, count int) bool {
			grand := diagram.Node{ID: "g", Level: 0, X: -30, Y: 75}
			pos := geometry.Polar(grand.Position(), distance, theta)
			parent := diagram.Node{ID: "p", Level: 1, ParentID: "g", X: pos.X, Y: pos.Y}

			forward := geometry.Angle(grand.Position(), parent.Position())
			for _, a := range planner.Angles(parent, count, []diagram.Node{grand, parent}) {
				if math.Abs(geometry.AngleDiff(a, forward)) > math.Pi/2+1e-9 {
					return false
				}
			}
			return true
		},
		gen.Float64Range(-math.Pi, math.Pi),
		gen.Float64Range(1, 2000),
		gen.IntRange(1, 20),
	))

	properties.TestingRun(t)
}

func TestExpansionPlacementsKeepSeparation(t *testing.T) {
	properties := gopter.NewProperties(layoutParameters())

	properties.Property("two-level expansions converge and stay apart", prop.ForAll(
		func(first, second, pick int, seed uint64) bool {
			planner := NewRadialPlanner(NewResolver(WithSeed(seed)))
			root := rootNode()
			nodes := []diagram.Node{root}

			for i, p := range planner.Plan(root, first, nodes) {
				if !p.Converged {
					return false
				}
				nodes = append(nodes, diagram.Node{
					ID: "c" + string(rune('a'+i)), Level: 1, ParentID: "root",
					X: p.Point.X, Y: p.Point.Y,
				})
			}

			parent := nodes[1+pick%first]
			for _, p := range planner.Plan(parent, second, nodes) {
				if !p.Converged {
					return false
				}
				nodes = append(nodes, diagram.Node{ID: "x", Level: 2, X: p.Point.X, Y: p.Point.Y})
			}

			for i := range nodes {
				for j := i + 1; j < len(nodes); j++ {
					if geometry.Distance(nodes[i].Position(), nodes[j].Position()) < DefaultMinDistance {
						return false
					}
				}
			}
			return true
		},
		gen.IntRange(1, 6),
		gen.IntRange(1, 6),
		gen.IntRange(0, 100),
		gen.UInt64(),
	))

	properties.Property("a single root expansion of up to 20 children converges", prop.ForAll(
		func(count int, seed uint64) bool {
			planner := NewRadialPlanner(NewResolver(WithSeed(seed)))
			for _, p := range planner.Plan(rootNode(), count, []diagram.Node{rootNode()}) {
				if !p.Converged {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 20),
		gen.UInt64(),
	))

	properties.TestingRun(t)
}

func TestResolvedPointsAreSeparatedWhenConverged(t *testing.T) {
	properties := gopter.NewProperties(layoutParameters())

	properties.Property("converged points keep the minimum distance", prop.ForAll(
		func(xs, ys []float64, px, py float64, seed uint64) bool {
			n := min(len(xs), len(ys), 20)
			occupied := make([]geometry.Point, n)
			for i := range n {
				occupied[i] = geometry.Pt(xs[i], ys[i])
			}

			got, ok := NewResolver(WithSeed(seed)).Resolve(geometry.Pt(px, py), occupied)
			if !ok {
				return true
			}
			for _, o := range occupied {
				if geometry.Distance(got, o) < DefaultMinDistance {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.Float64Range(-600, 600)),
		gen.SliceOf(gen.Float64Range(-600, 600)),
		gen.Float64Range(-600, 600),
		gen.Float64Range(-600, 600),
		gen.UInt64(),
	))

	properties.TestingRun(t)
}

func TestClusterAssignmentsLandOnRings(t *testing.T) {
	properties := gopter.NewProperties(layoutParameters())

	properties.Property("members sit 150 from their cluster centre, orphans 700 from the centre", prop.ForAll(
		func(size, clusterCount int, assign []int) bool {
			planner := NewClusterPlanner()
			nodes := make([]diagram.Node, size)
			for i := range nodes {
				nodes[i] = diagram.Node{ID: string(rune('A' + i))}
			}

			clusters := make([]Cluster, clusterCount)
			owner := map[string]int{}
			for i := range nodes {
				if i >= len(assign) || assign[i] < 0 {
					continue
				}
				c := assign[i] % clusterCount
				clusters[c].NodeIDs = append(clusters[c].NodeIDs, nodes[i].ID)
				owner[nodes[i].ID] = c
			}

			center := geometry.Pt(40, -25)
			for _, n := range planner.Plan(nodes, clusters, center) {
				c, clustered := owner[n.ID]
				if !clustered {
					if math.Abs(geometry.Distance(center, n.Position())-700) > 1e-6 {
						return false
					}
					continue
				}
				cc := planner.ClusterCenter(center, c, clusterCount)
				if math.Abs(geometry.Distance(cc, n.Position())-150) > 1e-6 {
					return false
				}
			}
			return true
		},
		gen.IntRange(0, 20),
		gen.IntRange(1, 5),
		gen.SliceOf(gen.IntRange(-1, 10)),
	))

	properties.TestingRun(t)
}
