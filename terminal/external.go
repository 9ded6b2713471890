package terminal

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/gdamore/tcell/v2"

	"wordweb/diagram"
	"wordweb/export"
	"wordweb/importer"
)

// errNoEditor is returned when neither $EDITOR, $VISUAL nor a common editor is found.
var errNoEditor = errors.New("no editor found, set $EDITOR")

// findEditor returns the command used to edit files.
func findEditor() (string, error) {
	for _, env := range []string{"EDITOR", "VISUAL"} {
		if cmd := os.Getenv(env); cmd != "" {
			return cmd, nil
		}
	}
	for _, candidate := range []string{"vim", "nano", "vi"} {
		if _, err := exec.LookPath(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", errNoEditor
}

// editExternally opens g as a JSON document in the user's editor and returns the edited
// graph. changed is false when the file was saved untouched or emptied.
func editExternally(screen tcell.Screen, g *diagram.Graph) (edited *diagram.Graph, changed bool, err error) {
	editorCmd, err := findEditor()
	if err != nil {
		return nil, false, err
	}

	data, err := export.NewJSONExporter().Export(g)
	if err != nil {
		return nil, false, err
	}

	tmp, err := os.CreateTemp("", "wordweb-edit-*.json")
	if err != nil {
		return nil, false, fmt.Errorf("failed to create temp file: %w", err)
	}
	name := tmp.Name()
	defer os.Remove(name)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return nil, false, fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, false, fmt.Errorf("failed to write temp file: %w", err)
	}
	before, err := os.Stat(name)
	if err != nil {
		return nil, false, err
	}

	if err := screen.Suspend(); err != nil {
		return nil, false, fmt.Errorf("failed to release terminal: %w", err)
	}
	cmd := exec.Command(editorCmd, name)
	cmd.Stdin, cmd.Stdout, cmd.Stderr = os.Stdin, os.Stdout, os.Stderr
	runErr := cmd.Run()
	if err := screen.Resume(); err != nil {
		return nil, false, fmt.Errorf("failed to restore terminal: %w", err)
	}
	if runErr != nil {
		return nil, false, fmt.Errorf("editor failed: %w", runErr)
	}

	after, err := os.Stat(name)
	if err != nil {
		return nil, false, err
	}
	if after.ModTime().Equal(before.ModTime()) {
		return nil, false, nil
	}

	content, err := os.ReadFile(name)
	if err != nil {
		return nil, false, err
	}
	content = bytes.TrimSpace(content)
	if len(content) == 0 {
		return nil, false, nil
	}

	edited, err = importer.NewJSONImporter().Import(string(content))
	if err != nil {
		// Keep the broken document so the edit is not lost
		keep := filepath.Join(os.TempDir(), "wordweb-invalid.json")
		_ = os.WriteFile(keep, content, 0o644)
		return nil, false, fmt.Errorf("%w (saved to %s)", err, keep)
	}
	return edited, true, nil
}
