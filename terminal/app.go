// Package terminal runs the editor in a terminal: tcell mouse and key events are
// translated into editor events and commands, and the canvas is drawn as text.
package terminal

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"wordweb/canvas"
	"wordweb/config"
	"wordweb/editor"
	"wordweb/export"
)

// Options configures an App.
type Options struct {
	Editor *editor.Editor
	// Screen defaults to the real terminal.
	Screen tcell.Screen
	Logger *zap.Logger
	Cells  canvas.CellSize
	// Path is where Ctrl+S writes the graph. The format follows the extension.
	Path string
	// Watcher delivers configuration reloads; Reconfigure applies them on the UI
	// goroutine.
	Watcher     *config.Watcher
	Reconfigure func(config.Config)
	// Clipboard defaults to the system clipboard.
	Clipboard func(string) error
}

// App is the terminal front end of one Editor.
type App struct {
	editor    *editor.Editor
	screen    tcell.Screen
	logger    *zap.Logger
	cells     canvas.CellSize
	pointer   *Pointer
	grid      *canvas.Grid
	path      string
	watcher   *config.Watcher
	reconfig  func(config.Config)
	clipboard func(string) error

	ctx      context.Context
	prompt   *prompt
	showHelp bool
}

type quitRequest struct{}

// New creates an App. The screen is initialised by Run.
func New(opts Options) (*App, error) {
	if opts.Editor == nil {
		return nil, errors.New("terminal: editor is required")
	}
	if opts.Screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return nil, fmt.Errorf("failed to create screen: %w", err)
		}
		opts.Screen = s
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Cells.W <= 0 || opts.Cells.H <= 0 {
		opts.Cells = canvas.DefaultCellSize
	}
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.WriteAll
	}
	return &App{
		editor:    opts.Editor,
		screen:    opts.Screen,
		logger:    opts.Logger,
		cells:     opts.Cells,
		pointer:   NewPointer(opts.Cells),
		grid:      canvas.NewGrid(0, 0),
		path:      opts.Path,
		watcher:   opts.Watcher,
		reconfig:  opts.Reconfigure,
		clipboard: opts.Clipboard,
		ctx:       context.Background(),
	}, nil
}

// Run takes over the terminal until the user quits or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	if err := a.screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	defer a.screen.Fini()
	a.screen.EnableMouse()
	a.screen.HideCursor()
	a.screen.Clear()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	a.ctx = ctx

	go a.forward(ctx)
	if a.watcher != nil {
		a.watcher.OnChange(func(cfg config.Config) { a.post(ctx, cfg) })
	}

	a.resize()
	a.logger.Info("editor started", zap.String("path", a.path))
	for {
		a.draw()
		ev := a.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if a.handle(ev) {
			a.logger.Info("editor stopped")
			return nil
		}
	}
}

// forward hands completions of background oracle calls to the event loop.
func (a *App) forward(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			// Wakes the loop when the caller cancels; a no-op once the screen is gone
			_ = a.screen.PostEvent(tcell.NewEventInterrupt(quitRequest{}))
			return
		case c := <-a.editor.Completions():
			a.post(ctx, c)
		}
	}
}

// post queues data for the event loop, retrying while the queue is full.
func (a *App) post(ctx context.Context, data any) {
	ev := tcell.NewEventInterrupt(data)
	for i := 0; a.screen.PostEvent(ev) != nil; i++ {
		if i > 100 {
			a.logger.Warn("event queue full, dropping event")
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(10 * time.Millisecond):
		}
	}
}

// handle processes one event and reports whether the app should exit.
func (a *App) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.resize()
		a.screen.Sync()
	case *tcell.EventKey:
		return a.handleKey(ev)
	case *tcell.EventMouse:
		a.handleMouse(ev)
	case *tcell.EventInterrupt:
		switch data := ev.Data().(type) {
		case editor.Completion:
			a.editor.RunCompletion(data)
		case config.Config:
			if a.reconfig != nil {
				a.reconfig(data)
				a.editor.Notifications().Notify(editor.LevelInfo, "Configuration reloaded")
			}
		case quitRequest:
			return true
		}
	}
	return false
}

func (a *App) resize() {
	w, h := a.screen.Size()
	rows := max(h-1, 0)
	if gw, gh := a.grid.Size(); gw != w || gh != rows {
		a.grid = canvas.NewGrid(w, rows)
	}
	a.editor.SetScreenSize(float64(w)*a.cells.W, float64(rows)*a.cells.H)
}

func (a *App) handleMouse(ev *tcell.EventMouse) {
	// Translate even while prompting so the button state stays in step
	events := a.pointer.Translate(ev)
	if a.prompt != nil {
		return
	}
	for _, e := range events {
		a.editor.Dispatch(e)
	}
	if id, ok := a.editor.TakeRelabelRequest(); ok {
		c, _ := a.editor.Graph().Connection(id)
		a.prompt = newPrompt("Connection label", c.Label, func(text string) {
			a.report(a.editor.SetConnectionLabel(id, text))
		})
	}
}

func (a *App) handleKey(ev *tcell.EventKey) bool {
	if a.prompt != nil {
		if a.prompt.handle(ev) {
			a.prompt = nil
		}
		return false
	}
	if a.showHelp {
		a.showHelp = false
		return false
	}
	if a.editor.Machine().Mode() == editor.ModeEditing {
		switch outcome, key, r := EditAction(ev); outcome {
		case EditKeyPress:
			a.editor.Key(key, r)
		case EditCommit:
			a.editor.FinishEdit()
		case EditCancel:
			a.editor.CancelEdit()
		}
		return false
	}
	return a.perform(CanvasAction(ev))
}

// perform runs a canvas action and reports whether the app should exit.
func (a *App) perform(action Action) bool {
	e := a.editor
	switch action {
	case ActionQuit:
		a.saveOnExit()
		return true
	case ActionUndo:
		if !e.Undo() {
			a.info("Nothing to undo")
		}
	case ActionRedo:
		if !e.Redo() {
			a.info("Nothing to redo")
		}
	case ActionAddNode:
		a.prompt = newPrompt("Word", "", func(text string) {
			if text == "" {
				return
			}
			id, err := e.AddNode(text, e.ViewCenter())
			if a.report(err) {
				e.SetSelection([]string{id}, false)
			}
		})
	case ActionAddNote:
		_, err := e.AddNote(e.ViewCenter())
		a.report(err)
	case ActionExpand:
		if id, ok := a.selectedOne(); ok {
			a.report(e.Expand(id))
		}
	case ActionExtract:
		if id, ok := a.selectedOne(); ok {
			a.report(e.ExtractNote(id))
		}
	case ActionCluster:
		a.report(e.Cluster())
	case ActionFrame:
		_, err := e.CreateFrame(nil)
		a.report(err)
	case ActionRename:
		if id, ok := a.selectedOne(); ok {
			n, _ := e.Graph().Node(id)
			a.prompt = newPrompt("Rename", n.Text, func(text string) {
				a.report(e.RenameNode(id, text))
			})
		}
	case ActionColor:
		if len(e.Graph().Selected()) == 0 {
			a.report(editor.ErrNothingSelected)
			break
		}
		a.prompt = newPrompt("Fill (#rrggbb, empty clears)", "", func(text string) {
			a.report(e.SetFill(text))
		})
	case ActionDelete:
		if n := e.DeleteSelected(); n == 0 {
			a.report(editor.ErrNothingSelected)
		}
	case ActionSnapshot:
		a.prompt = newPrompt("Snapshot label", "", func(text string) {
			snap, err := e.SaveSnapshot(a.ctx, text)
			if a.report(err) {
				a.info("Saved snapshot %s", shortID(snap.ID))
			}
		})
	case ActionSave:
		if a.path == "" {
			a.prompt = newPrompt("Write to", "wordweb.json", func(text string) {
				if text != "" {
					a.path = text
					a.report(a.save())
				}
			})
			break
		}
		a.report(a.save())
	case ActionCopyOutline:
		a.report(a.copyOutline())
	case ActionExternalEdit:
		edited, changed, err := editExternally(a.screen, e.Graph())
		a.screen.Sync()
		if a.report(err) && changed {
			e.SetGraph(edited)
			a.info("Graph replaced from editor")
		}
	case ActionCenter:
		if id, ok := a.selectedOne(); ok {
			a.report(e.FocusNode(id))
		}
	case ActionResetView:
		e.Viewport().Reset()
	case ActionHelp:
		a.showHelp = true
	case ActionCancel:
		e.CancelEdit()
		e.ClearSelection()
	}
	return false
}

// selectedOne returns the single selected node, notifying the user otherwise.
func (a *App) selectedOne() (string, bool) {
	sel := a.editor.Graph().Selected()
	if len(sel) != 1 {
		a.info("Select exactly one node")
		return "", false
	}
	return sel[0], true
}

// save writes the graph to the app's path in the format named by its extension.
func (a *App) save() error {
	format, err := export.ParseFormat(filepath.Ext(a.path))
	if err != nil {
		format = export.FormatJSON
	}
	exp, err := export.NewExporter(format)
	if err != nil {
		return err
	}
	data, err := exp.Export(a.editor.Graph())
	if err != nil {
		return err
	}
	if err := os.WriteFile(a.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", a.path, err)
	}
	a.info("Wrote %s", a.path)
	a.logger.Info("graph written", zap.String("path", a.path), zap.String("format", string(format)))
	return nil
}

func (a *App) copyOutline() error {
	data, err := export.NewMarkdownExporter().Export(a.editor.Graph())
	if err != nil {
		return err
	}
	if err := a.clipboard(string(data)); err != nil {
		return fmt.Errorf("clipboard unavailable: %w", err)
	}
	a.info("Outline copied to clipboard")
	return nil
}

// saveOnExit records unsaved work in the snapshot log.
func (a *App) saveOnExit() {
	if !a.editor.HasChanges() {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := a.editor.SaveSnapshot(ctx, "on exit"); err != nil && !errors.Is(err, editor.ErrNoSnapshots) {
		a.logger.Error("exit snapshot failed", zap.Error(err))
	}
}

// report turns err into a notification and reports whether err was nil.
func (a *App) report(err error) bool {
	if err == nil {
		return true
	}
	a.editor.Notifications().Notify(editor.LevelWarn, "%s", err.Error())
	return false
}

func (a *App) info(format string, args ...any) {
	a.editor.Notifications().Notify(editor.LevelInfo, format, args...)
}

var (
	statusStyle = tcell.StyleDefault.Background(tcell.ColorDarkSlateGray).Foreground(tcell.ColorWhite)
	warnStyle   = statusStyle.Foreground(tcell.ColorYellow)
	errorStyle  = statusStyle.Foreground(tcell.ColorRed).Bold(true)
	helpStyle   = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)
)

// notificationTTL is how long a notification stays in the status bar.
const notificationTTL = 6 * time.Second

func (a *App) draw() {
	w, h := a.screen.Size()
	a.screen.Clear()

	scene := a.editor.Scene()
	scene.Cells = a.cells
	canvas.Render(a.grid, scene)
	drawGrid(a.screen, a.grid, 0)

	if a.showHelp {
		a.drawHelp(w, h)
	}

	if h > 0 {
		a.drawStatus(w, h-1)
	}
	a.screen.Show()
}

// drawHelp lays the help lines out in as many columns as the height requires.
func (a *App) drawHelp(w, h int) {
	lines := helpLines()
	width := 0
	for _, l := range lines {
		width = max(width, len(l)+2)
	}
	x, y := 1, 1
	for _, l := range lines {
		if y >= h-1 {
			x, y = x+width+1, 1
		}
		if x >= w {
			return
		}
		drawLine(a.screen, x, y, min(width, w-x), " "+l, helpStyle)
		y++
	}
}

func (a *App) drawStatus(width, y int) {
	if a.prompt != nil {
		drawLine(a.screen, 0, y, width, a.prompt.String(), statusStyle)
		a.screen.ShowCursor(min(a.prompt.Cursor(), width-1), y)
		return
	}
	a.screen.HideCursor()

	e := a.editor
	cur, total := e.HistoryStats()
	parts := []string{
		e.Machine().Mode().String(),
		fmt.Sprintf("%d%%", int(e.Viewport().Scale*100+0.5)),
		fmt.Sprintf("%d nodes", len(e.Graph().Nodes)),
		fmt.Sprintf("undo %d/%d", cur, total),
	}
	if b := e.Busy(); !b.IsIdle() {
		parts = append(parts, b.String())
	}
	left := " " + strings.Join(parts, " | ")

	style := statusStyle
	if n, ok := e.Notifications().Latest(); ok && time.Since(n.At) < notificationTTL {
		left += " | " + n.Message
		switch n.Level {
		case editor.LevelWarn:
			style = warnStyle
		case editor.LevelError:
			style = errorStyle
		}
	} else {
		left += " | ? for help"
	}
	drawLine(a.screen, 0, y, width, left, style)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
