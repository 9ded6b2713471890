package editor

import (
	"errors"

	"wordweb/oracle"
)

var (
	// ErrBusy is returned when an oracle command arrives while another is outstanding.
	ErrBusy = errors.New("another request is still running")
	// ErrUnknownNode is returned for ids that are not in the graph.
	ErrUnknownNode = errors.New("unknown node")
	// ErrUnknownConnection is returned for connection ids that are not in the graph.
	ErrUnknownConnection = errors.New("unknown connection")
	// ErrUnknownFrame is returned for frame ids that are not in the graph.
	ErrUnknownFrame = errors.New("unknown frame")
	// ErrNoOracle is returned by oracle commands when no oracle is configured.
	ErrNoOracle = errors.New("no word service configured")
	// ErrEmptyGraph is returned when clustering a graph without nodes.
	ErrEmptyGraph = errors.New("graph has no nodes")
	// ErrNotNote is returned when a note-only command targets a word node.
	ErrNotNote = errors.New("node is not a note")
	// ErrNoText is returned when there is nothing to send to the oracle.
	ErrNoText = errors.New("node has no text")
	// ErrNothingSelected is returned by commands that need at least one node.
	ErrNothingSelected = errors.New("no nodes selected")
	// ErrNoSnapshots is returned when no snapshot log is configured.
	ErrNoSnapshots = errors.New("no snapshot store configured")
	// ErrClosed is returned after Close.
	ErrClosed = errors.New("editor is closed")
)

// describe turns err into a notification message.
func describe(err error) string {
	var oe *oracle.Error
	if errors.As(err, &oe) {
		return oe.Op + " failed: " + oe.Message
	}
	return err.Error()
}
