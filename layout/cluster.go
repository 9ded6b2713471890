package layout

import (
	"math"

	"wordweb/diagram"
	"wordweb/geometry"
)

// Cluster is one category of a grouping, with its member node ids.
type Cluster struct {
	Name    string
	NodeIDs []string
}

// ClusterPlanner regroups every node by category: cluster centres sit on a ring around
// the centre, members on a smaller ring around their cluster centre, and nodes missing
// from every cluster on an outer ring. No overlap resolution is done; the rings are wide
// enough apart by construction.
type ClusterPlanner struct {
	clusterRadius float64
	memberRadius  float64
	orphanGap     float64
}

// NewClusterPlanner creates a planner with ring radii 400 (clusters), 150 (members)
// and 700 (orphans).
func NewClusterPlanner() *ClusterPlanner {
	return &ClusterPlanner{
		clusterRadius: DefaultClusterRing,
		memberRadius:  DefaultMemberRing,
		orphanGap:     DefaultOrphanGap,
	}
}

// SetRadii overrides the ring radii. Non-positive values keep the current setting.
func (p *ClusterPlanner) SetRadii(cluster, member, orphanGap float64) {
	if cluster > 0 {
		p.clusterRadius = cluster
	}
	if member > 0 {
		p.memberRadius = member
	}
	if orphanGap > 0 {
		p.orphanGap = orphanGap
	}
}

// Name returns the name of this layout algorithm.
func (p *ClusterPlanner) Name() string {
	return "cluster"
}

// OrphanRadius returns the radius of the ring holding unclustered nodes.
func (p *ClusterPlanner) OrphanRadius() float64 {
	return p.clusterRadius + p.orphanGap
}

// ClusterCenter returns the centre of cluster i out of count around center.
func (p *ClusterPlanner) ClusterCenter(center geometry.Point, i, count int) geometry.Point {
	return geometry.Polar(center, p.clusterRadius, 2*math.Pi*float64(i)/float64(count))
}

// Plan returns a full replacement of nodes with every node repositioned.
// Cluster members that do not resolve to a node are skipped. An id listed in more than
// one cluster ends up in the last one.
func (p *ClusterPlanner) Plan(nodes []diagram.Node, clusters []Cluster, center geometry.Point) []diagram.Node {
	present := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		present[n.ID] = true
	}

	placed := make(map[string]geometry.Point, len(nodes))
	for i, c := range clusters {
		cc := p.ClusterCenter(center, i, len(clusters))

		var members []string
		for _, id := range c.NodeIDs {
			if present[id] {
				members = append(members, id)
			}
		}
		for j, id := range members {
			angle := 2 * math.Pi * float64(j) / float64(len(members))
			placed[id] = geometry.Polar(cc, p.memberRadius, angle)
		}
	}

	var orphans []string
	for _, n := range nodes {
		if _, ok := placed[n.ID]; !ok {
			orphans = append(orphans, n.ID)
		}
	}
	for j, id := range orphans {
		angle := 2 * math.Pi * float64(j) / float64(len(orphans))
		placed[id] = geometry.Polar(center, p.OrphanRadius(), angle)
	}

	result := make([]diagram.Node, len(nodes))
	for i, n := range nodes {
		pt := placed[n.ID]
		n.X, n.Y = pt.X, pt.Y
		result[i] = n
	}
	return result
}
