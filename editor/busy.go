package editor

// BusyKind says what, if anything, has an outstanding oracle call.
type BusyKind int

const (
	BusyIdle BusyKind = iota
	BusyNode
	BusyClustering
)

// Busy is the single admission token for oracle calls. At most one expansion,
// extraction or clustering runs at a time across the whole graph.
type Busy struct {
	kind BusyKind
	node string
}

// Idle returns the token with nothing outstanding.
func Idle() Busy { return Busy{} }

// BusyOn returns the token for an oracle call about one node.
func BusyOn(nodeID string) Busy { return Busy{kind: BusyNode, node: nodeID} }

// Clustering returns the token for a global clustering call.
func Clustering() Busy { return Busy{kind: BusyClustering} }

// Kind returns what the token guards.
func (b Busy) Kind() BusyKind { return b.kind }

// IsIdle reports whether no call is outstanding.
func (b Busy) IsIdle() bool { return b.kind == BusyIdle }

// Node returns the busy node id, or "" when the token is not BusyNode.
func (b Busy) Node() string { return b.node }

func (b Busy) String() string {
	switch b.kind {
	case BusyNode:
		return "busy(" + b.node + ")"
	case BusyClustering:
		return "busy(clustering)"
	default:
		return "idle"
	}
}
