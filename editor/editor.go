// Package editor is the command layer of the node-graph editor: the interaction state
// machine, graph commands, oracle calls with their busy token, and undo history.
//
// An Editor is single-threaded. Every method must be called from the goroutine that owns
// it (the UI loop). Oracle calls run on their own goroutines and hand their results back
// as Completions, which the owner runs with RunCompletion.
package editor

import (
	"context"
	"time"

	"go.uber.org/zap"

	"wordweb/canvas"
	"wordweb/diagram"
	"wordweb/geometry"
	"wordweb/layout"
	"wordweb/metrics"
	"wordweb/oracle"
	"wordweb/store"
)

// Defaults applied when Options leaves a field zero.
const (
	DefaultExpandCount   = 5
	DefaultHistorySize   = 200
	DefaultOracleTimeout = 30 * time.Second
)

// SnapshotLog is the persistent snapshot history.
type SnapshotLog interface {
	Append(ctx context.Context, label string, g *diagram.Graph) (store.Snapshot, error)
	Load(ctx context.Context, id string) (store.Snapshot, error)
}

// Completion is the UI-thread half of an asynchronous command.
type Completion func()

// Options configures an Editor.
type Options struct {
	Oracle        oracle.Oracle
	Snapshots     SnapshotLog
	Logger        *zap.Logger
	Metrics       *metrics.Registry
	Radial        *layout.RadialPlanner
	Cluster       *layout.ClusterPlanner
	Viewport      *canvas.Viewport
	ExpandCount   int
	HistorySize   int
	OracleTimeout time.Duration
	// ScreenSize is the drawable area in pixels, used to find the view centre.
	ScreenSize geometry.Point
}

// Editor owns the live graph and applies commands to it.
type Editor struct {
	graph    *diagram.Graph
	viewport *canvas.Viewport
	machine  *Machine
	history  *History
	notifier *Notifier
	busy     Busy

	oracle    oracle.Oracle
	snapshots SnapshotLog
	radial    *layout.RadialPlanner
	cluster   *layout.ClusterPlanner
	logger    *zap.Logger
	metrics   *metrics.Registry

	expandCount   int
	oracleTimeout time.Duration
	screen        geometry.Point

	relabelRequest string
	hasChanges     bool

	completions chan Completion
	pending     int
	ctx         context.Context
	cancel      context.CancelFunc
	closed      bool
}

// New creates an editor showing g. A nil graph starts empty.
func New(g *diagram.Graph, opts Options) *Editor {
	if g == nil {
		g = diagram.Empty()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Radial == nil {
		opts.Radial = layout.NewRadialPlanner(nil)
	}
	if opts.Cluster == nil {
		opts.Cluster = layout.NewClusterPlanner()
	}
	if opts.Viewport == nil {
		opts.Viewport = canvas.NewViewport()
	}
	if opts.ExpandCount <= 0 {
		opts.ExpandCount = DefaultExpandCount
	}
	if opts.HistorySize <= 0 {
		opts.HistorySize = DefaultHistorySize
	}
	if opts.OracleTimeout <= 0 {
		opts.OracleTimeout = DefaultOracleTimeout
	}

	ctx, cancel := context.WithCancel(context.Background())
	e := &Editor{
		graph:         g,
		viewport:      opts.Viewport,
		machine:       NewMachine(),
		history:       NewHistory(opts.HistorySize),
		notifier:      NewNotifier(50),
		oracle:        opts.Oracle,
		snapshots:     opts.Snapshots,
		radial:        opts.Radial,
		cluster:       opts.Cluster,
		logger:        opts.Logger,
		metrics:       opts.Metrics,
		expandCount:   opts.ExpandCount,
		oracleTimeout: opts.OracleTimeout,
		screen:        opts.ScreenSize,
		completions:   make(chan Completion, 16),
		ctx:           ctx,
		cancel:        cancel,
	}
	e.history.Save(g)
	return e
}

// Graph returns the current snapshot. It never changes after being returned.
func (e *Editor) Graph() *diagram.Graph { return e.graph }

// Viewport returns the view transform.
func (e *Editor) Viewport() *canvas.Viewport { return e.viewport }

// Machine returns the interaction state machine.
func (e *Editor) Machine() *Machine { return e.machine }

// Busy returns the current busy token.
func (e *Editor) Busy() Busy { return e.busy }

// Notifications returns the notification log.
func (e *Editor) Notifications() *Notifier { return e.notifier }

// HistoryStats returns the undo position and depth.
func (e *Editor) HistoryStats() (current, total int) { return e.history.Stats() }

// HasChanges reports whether the graph changed since the last snapshot save.
func (e *Editor) HasChanges() bool { return e.hasChanges }

// SetExpandCount changes how many children an expansion asks for.
func (e *Editor) SetExpandCount(n int) {
	if n > 0 {
		e.expandCount = n
	}
}

// SetScreenSize records the drawable area in pixels.
func (e *Editor) SetScreenSize(width, height float64) {
	e.screen = geometry.Pt(width, height)
}

// ViewCenter returns the world point at the centre of the screen.
func (e *Editor) ViewCenter() geometry.Point {
	return e.viewport.ScreenToWorld(e.screen.Scale(0.5))
}

// TakeRelabelRequest returns and clears the connection waiting for a new label.
func (e *Editor) TakeRelabelRequest() (string, bool) {
	id := e.relabelRequest
	e.relabelRequest = ""
	return id, id != ""
}

// Scene describes what to draw for the current state.
func (e *Editor) Scene() canvas.Scene {
	s := canvas.Scene{Graph: e.graph, Viewport: e.viewport, Busy: e.busy.Node()}
	if id, text, ok := e.machine.Editing(); ok {
		s.Editing, s.EditBuffer = id, text
	}
	if src, end, ok := e.machine.Connection(); ok {
		s.ConnectFrom, s.ConnectTo = src, end
	}
	if band, ok := e.machine.Band(); ok {
		s.Band = &band
	}
	return s
}

// commit replaces the graph and records it for undo.
func (e *Editor) commit(g *diagram.Graph) {
	e.graph = g
	e.history.Save(g)
	e.hasChanges = true
}

// Dispatch feeds a pointer event to the state machine and executes any resulting
// command. Failures become notifications.
func (e *Editor) Dispatch(ev Event) {
	if e.closed {
		return
	}
	cmd := e.machine.Handle(ev, e.graph, e.viewport)
	if cmd != nil {
		e.Execute(cmd)
	}
}

// Execute runs a command against the graph. Failures become notifications.
func (e *Editor) Execute(cmd Command) {
	var err error
	switch c := cmd.(type) {
	case ExpandCommand:
		err = e.Expand(c.NodeID)
	case ConnectCommand:
		e.Connect(c.From, c.To)
	case SelectCommand:
		e.SetSelection(c.NodeIDs, c.Additive)
	case ToggleSelectCommand:
		err = e.ToggleSelection(c.NodeID)
	case RelabelCommand:
		e.relabelRequest = c.ConnectionID
	case CommitEditCommand:
		err = e.UpdateNodeContent(c.NodeID, c.Text)
	}
	if err != nil {
		e.notifier.Notify(LevelWarn, "%s", describe(err))
	}
}

// Undo steps back one graph state.
func (e *Editor) Undo() bool {
	g, ok := e.history.Undo()
	if ok {
		e.graph = g
		e.hasChanges = true
	}
	return ok
}

// Redo steps forward one graph state.
func (e *Editor) Redo() bool {
	g, ok := e.history.Redo()
	if ok {
		e.graph = g
		e.hasChanges = true
	}
	return ok
}

// SetGraph replaces the whole graph, as an undoable step.
func (e *Editor) SetGraph(g *diagram.Graph) {
	if g == nil {
		g = diagram.Empty()
	}
	e.machine.CancelEdit()
	e.commit(g)
}

// SaveSnapshot appends the current graph to the snapshot log.
func (e *Editor) SaveSnapshot(ctx context.Context, label string) (store.Snapshot, error) {
	if e.snapshots == nil {
		return store.Snapshot{}, ErrNoSnapshots
	}
	snap, err := e.snapshots.Append(ctx, label, e.graph)
	if err != nil {
		e.logger.Error("snapshot save failed", zap.Error(err))
		return store.Snapshot{}, err
	}
	e.metrics.RecordSnapshotSaved()
	e.hasChanges = false
	return snap, nil
}

// Restore replaces the live graph with a stored snapshot.
func (e *Editor) Restore(ctx context.Context, id string) error {
	if e.snapshots == nil {
		return ErrNoSnapshots
	}
	snap, err := e.snapshots.Load(ctx, id)
	if err != nil {
		return err
	}
	e.SetGraph(snap.Graph)
	e.hasChanges = false
	e.logger.Info("snapshot restored", zap.String("id", snap.ID), zap.String("label", snap.Label))
	return nil
}

// Close stops accepting commands. Outstanding oracle calls are cancelled and their
// completions become no-ops.
func (e *Editor) Close() {
	if e.closed {
		return
	}
	e.closed = true
	e.cancel()
}
