package diagram

import (
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Validate checks field constraints and the structural invariants of the graph:
// unique node ids, root nodes without parents, and level(child) = level(parent)+1
// whenever the parent is present. Dangling references are not errors.
func Validate(g *Graph) error {
	if g == nil {
		return fmt.Errorf("graph is nil")
	}
	v := structValidator()

	byID := make(map[string]Node, len(g.Nodes))
	for _, n := range g.Nodes {
		if err := v.Struct(n); err != nil {
			return fmt.Errorf("node %q: %w", n.ID, err)
		}
		if _, dup := byID[n.ID]; dup {
			return fmt.Errorf("duplicate node ID: %s", n.ID)
		}
		byID[n.ID] = n
	}

	for _, n := range g.Nodes {
		if n.Level == 0 && n.ParentID != "" {
			return fmt.Errorf("node %q: level 0 node has parent %q", n.ID, n.ParentID)
		}
		if n.ParentID == "" {
			continue
		}
		if n.ParentID == n.ID {
			return fmt.Errorf("node %q: node is its own parent", n.ID)
		}
		if parent, ok := byID[n.ParentID]; ok && n.Level != parent.Level+1 {
			return fmt.Errorf("node %q: level %d, parent %q has level %d", n.ID, n.Level, parent.ID, parent.Level)
		}
	}

	for i, c := range g.Connections {
		if err := v.Struct(c); err != nil {
			return fmt.Errorf("connection %d: %w", i, err)
		}
	}
	for _, f := range g.Frames {
		if err := v.Struct(f); err != nil {
			return fmt.Errorf("frame %q: %w", f.ID, err)
		}
	}
	return nil
}
