package terminal

import "fmt"

// HelpCategory groups related bindings in the help overlay.
type HelpCategory struct {
	Name     string
	Commands []HelpCommand
}

type HelpCommand struct {
	Key         string
	Description string
}

var helpCategories = []HelpCategory{
	{
		Name: "Mouse",
		Commands: []HelpCommand{
			{"click word", "Expand into related words"},
			{"drag handle", "Connect two nodes"},
			{"drag canvas", "Pan"},
			{"shift/ctrl/alt+drag", "Select nodes in a rectangle"},
			{"wheel", "Zoom at the pointer"},
			{"right click", "Toggle selection / label a connection"},
			{"double click note", "Edit note text"},
		},
	},
	{
		Name: "Nodes",
		Commands: []HelpCommand{
			{"a", "Add word at the view centre"},
			{"n", "Add note at the view centre"},
			{"x", "Expand selected word"},
			{"t", "Extract words from selected note"},
			{"r", "Rename selected node"},
			{"c", "Set fill colour of selection"},
			{"d/Del", "Delete selection"},
		},
	},
	{
		Name: "Graph",
		Commands: []HelpCommand{
			{"g", "Group all nodes into clusters"},
			{"f", "Frame selection"},
			{"u/Ctrl+Z", "Undo"},
			{"Ctrl+R", "Redo"},
		},
	},
	{
		Name: "View & Files",
		Commands: []HelpCommand{
			{"z", "Centre on selection"},
			{"0", "Reset zoom and pan"},
			{"s", "Save snapshot to history"},
			{"Ctrl+S", "Write graph file"},
			{"y", "Copy outline to clipboard"},
			{"E", "Edit graph JSON in $EDITOR"},
			{"?", "Toggle this help"},
			{"q", "Quit"},
		},
	},
	{
		Name: "Note editing",
		Commands: []HelpCommand{
			{"Esc", "Save and stop editing"},
			{"Ctrl+G", "Discard changes"},
			{"Ctrl+W/Ctrl+U", "Delete word / line"},
		},
	},
}

// helpLines renders the help overlay as text lines.
func helpLines() []string {
	var lines []string
	for i, cat := range helpCategories {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, cat.Name)
		for _, c := range cat.Commands {
			lines = append(lines, fmt.Sprintf("  %-18s %s", c.Key, c.Description))
		}
	}
	return lines
}
