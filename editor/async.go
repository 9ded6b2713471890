package editor

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"wordweb/diagram"
	"wordweb/layout"
	"wordweb/oracle"
)

// Completions delivers finished oracle calls. The owner passes each one to RunCompletion
// on its own goroutine.
func (e *Editor) Completions() <-chan Completion {
	return e.completions
}

// RunCompletion applies a finished oracle call. It is a no-op after Close.
func (e *Editor) RunCompletion(c Completion) {
	if e.closed || c == nil {
		return
	}
	c()
}

// Pending returns the number of oracle calls whose completion has not run yet.
func (e *Editor) Pending() int {
	return e.pending
}

// Settle runs completions until no oracle call is outstanding or ctx is done.
func (e *Editor) Settle(ctx context.Context) error {
	for e.pending > 0 && !e.closed {
		select {
		case c := <-e.completions:
			e.RunCompletion(c)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// launch runs call on its own goroutine and queues the completion it returns. call must
// only use values captured before launch; the completion runs on the owner's goroutine.
func (e *Editor) launch(call func(ctx context.Context) Completion) {
	e.pending++
	ctx, cancel := context.WithTimeout(e.ctx, e.oracleTimeout)
	go func() {
		defer cancel()
		done := call(ctx)
		select {
		case e.completions <- func() {
			e.pending--
			done()
		}:
		case <-e.ctx.Done():
		}
	}()
}

// admit checks that an oracle command may start now.
func (e *Editor) admit() error {
	if e.closed {
		return ErrClosed
	}
	if e.oracle == nil {
		return ErrNoOracle
	}
	if !e.busy.IsIdle() {
		e.metrics.RecordBusyRejection()
		e.logger.Debug("oracle command rejected", zap.Stringer("busy", e.busy))
		return ErrBusy
	}
	return nil
}

// Expand asks the oracle for words associated with a node and adds them as children
// placed radially around it. It returns once the call is started.
func (e *Editor) Expand(nodeID string) error {
	if err := e.admit(); err != nil {
		return err
	}
	n, ok := e.graph.Node(nodeID)
	if !ok {
		return ErrUnknownNode
	}
	source := strings.TrimSpace(n.Text)
	if source == "" {
		return ErrNoText
	}

	count := e.expandCount
	exclude := e.graph.Texts()
	o := e.oracle
	e.busy = BusyOn(nodeID)
	e.launch(func(ctx context.Context) Completion {
		phrases, err := o.Expand(ctx, source, count, exclude)
		return func() { e.finishExpand(nodeID, source, count, phrases, err) }
	})
	return nil
}

func (e *Editor) finishExpand(nodeID, source string, count int, phrases []string, err error) {
	e.busy = Idle()
	if err != nil {
		e.notifier.Notify(LevelError, "%s", describe(err))
		return
	}

	phrases = oracle.Distinct(phrases, e.graph.Texts(), count)
	if len(phrases) == 0 {
		e.notifier.Notify(LevelInfo, "No new words for %q", source)
		return
	}
	parent, ok := e.graph.Node(nodeID)
	if !ok {
		e.notifier.Notify(LevelWarn, "%q was deleted before its words arrived", source)
		return
	}
	e.addChildren(parent, phrases)
}

// ExtractNote turns a note's content into child nodes around it.
func (e *Editor) ExtractNote(nodeID string) error {
	if err := e.admit(); err != nil {
		return err
	}
	n, ok := e.graph.Node(nodeID)
	if !ok {
		return ErrUnknownNode
	}
	if !n.IsNote() {
		return ErrNotNote
	}
	text := strings.TrimSpace(n.Content)
	if text == "" {
		return ErrNoText
	}

	o := e.oracle
	e.busy = BusyOn(nodeID)
	e.launch(func(ctx context.Context) Completion {
		phrases, err := o.Extract(ctx, text)
		return func() { e.finishExtract(nodeID, phrases, err) }
	})
	return nil
}

func (e *Editor) finishExtract(nodeID string, phrases []string, err error) {
	e.busy = Idle()
	if err != nil {
		e.notifier.Notify(LevelError, "%s", describe(err))
		return
	}
	phrases = oracle.Distinct(phrases, nil, 0)
	parent, ok := e.graph.Node(nodeID)
	if !ok || len(phrases) == 0 {
		e.notifier.Notify(LevelInfo, "Nothing extracted")
		return
	}
	e.addChildren(parent, phrases)
}

// addChildren places one new word node per phrase around parent, linked by expansion
// connections, as one undoable step.
func (e *Editor) addChildren(parent diagram.Node, phrases []string) {
	placements := e.radial.Plan(parent, len(phrases), e.graph.Nodes)

	nodes := make([]diagram.Node, len(placements))
	conns := make([]diagram.Connection, len(placements))
	exhausted := 0
	for i, p := range placements {
		if !p.Converged {
			exhausted++
		}
		nodes[i] = diagram.Node{
			ID:       diagram.NewID(),
			Text:     phrases[i],
			Type:     diagram.NodeTypeWord,
			X:        p.Point.X,
			Y:        p.Point.Y,
			Level:    parent.Level + 1,
			ParentID: parent.ID,
		}
		conns[i] = diagram.Connection{ID: diagram.NewID(), From: parent.ID, To: nodes[i].ID}
	}

	e.commit(e.graph.WithNodes(nodes...).WithConnections(conns...))
	e.metrics.RecordNodesCreated(len(nodes))
	e.metrics.RecordConnectionsCreated(len(conns))
	if exhausted > 0 {
		e.metrics.RecordResolverExhausted(exhausted)
		e.logger.Debug("placement accepted with overlap",
			zap.String("parent", parent.ID), zap.Int("count", exhausted))
	}
	e.logger.Info("children added", zap.String("parent", parent.ID), zap.Int("count", len(nodes)))
}

// Cluster asks the oracle to categorise every node, then regroups all nodes on rings
// around the view centre with one fill colour per category.
func (e *Editor) Cluster() error {
	if err := e.admit(); err != nil {
		return err
	}
	if len(e.graph.Nodes) == 0 {
		return ErrEmptyGraph
	}

	items := make([]oracle.Item, len(e.graph.Nodes))
	for i, n := range e.graph.Nodes {
		items[i] = oracle.Item{ID: n.ID, Text: label(n)}
	}

	o := e.oracle
	e.busy = Clustering()
	e.launch(func(ctx context.Context) Completion {
		cats, err := o.Cluster(ctx, items)
		return func() { e.finishCluster(cats, err) }
	})
	return nil
}

func (e *Editor) finishCluster(cats []oracle.Category, err error) {
	e.busy = Idle()
	if err != nil {
		e.notifier.Notify(LevelError, "%s", describe(err))
		return
	}

	cats, violations := oracle.Normalize(cats)
	if len(violations) > 0 {
		ids := make([]string, len(violations))
		for i, v := range violations {
			ids[i] = v.ID
		}
		e.logger.Warn("clustering oracle placed nodes in several categories", zap.Strings("ids", ids))
		e.notifier.Notify(LevelWarn, "Clustering listed %d node(s) twice; kept the last category", len(ids))
	}

	palette := diagram.Palette(len(cats))
	clusters := make([]layout.Cluster, len(cats))
	fills := make(map[string]string)
	for i, c := range cats {
		clusters[i] = layout.Cluster{Name: c.Name, NodeIDs: c.IDs}
		for _, id := range c.IDs {
			fills[id] = palette[i]
		}
	}

	placed := e.cluster.Plan(e.graph.Nodes, clusters, e.ViewCenter())
	for i := range placed {
		if f, ok := fills[placed[i].ID]; ok {
			placed[i].Fill = f
		}
	}
	e.commit(e.graph.ReplaceNodes(placed))
	e.logger.Info("graph clustered", zap.Int("categories", len(cats)), zap.Int("nodes", len(placed)))
}

// CreateFrame groups nodes in a new frame. With no ids the selection is used. The frame
// gets a placeholder title at once and is renamed when the oracle suggests one.
func (e *Editor) CreateFrame(ids []string) (string, error) {
	if e.closed {
		return "", ErrClosed
	}
	if len(ids) == 0 {
		ids = e.graph.Selected()
	}
	f, ok := diagram.NewFrame(e.graph, diagram.PlaceholderFrameTitle, ids)
	if !ok {
		return "", ErrNothingSelected
	}
	e.commit(e.graph.WithFrames(f))

	if e.oracle != nil {
		var phrases []string
		for _, n := range e.graph.Members(f) {
			phrases = append(phrases, label(n))
		}
		o := e.oracle
		e.launch(func(ctx context.Context) Completion {
			title, err := o.SuggestTitle(ctx, phrases)
			return func() { e.finishTitle(f.ID, title, err) }
		})
	}
	return f.ID, nil
}

func (e *Editor) finishTitle(frameID, title string, err error) {
	if err != nil {
		e.notifier.Notify(LevelWarn, "Could not name frame: %s", oracle.Message(err))
		return
	}
	title = strings.TrimSpace(title)
	f, ok := e.graph.Frame(frameID)
	if !ok || title == "" || f.Title != diagram.PlaceholderFrameTitle {
		// Deleted or renamed by the user meanwhile
		return
	}
	next, _ := e.graph.UpdateFrame(frameID, func(f diagram.Frame) diagram.Frame {
		f.Title = title
		return f
	})
	e.commit(next)
}

// label is the text sent to the oracle for a node.
func label(n diagram.Node) string {
	if t := strings.TrimSpace(n.Text); t != "" || !n.IsNote() {
		return t
	}
	return strings.TrimSpace(n.Content)
}
