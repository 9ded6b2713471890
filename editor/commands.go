package editor

// Command is a structural change requested by the interaction state machine. The
// editor executes it against the graph.
type Command interface {
	command()
}

// ExpandCommand asks for new child nodes around NodeID.
type ExpandCommand struct {
	NodeID string
}

// ConnectCommand draws a manual connection.
type ConnectCommand struct {
	From, To string
}

// SelectCommand replaces the selection with NodeIDs, or adds to it when Additive.
type SelectCommand struct {
	NodeIDs  []string
	Additive bool
}

// ToggleSelectCommand toggles one node and clears every other selection.
type ToggleSelectCommand struct {
	NodeID string
}

// RelabelCommand asks the user for a new label for a connection.
type RelabelCommand struct {
	ConnectionID string
}

// CommitEditCommand stores edited note content.
type CommitEditCommand struct {
	NodeID string
	Text   string
}

func (ExpandCommand) command()       {}
func (ConnectCommand) command()      {}
func (SelectCommand) command()       {}
func (ToggleSelectCommand) command() {}
func (RelabelCommand) command()      {}
func (CommitEditCommand) command()   {}
