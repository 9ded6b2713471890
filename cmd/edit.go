package cmd

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"wordweb/config"
	"wordweb/diagram"
	"wordweb/editor"
	"wordweb/logging"
	"wordweb/metrics"
	"wordweb/store"
	"wordweb/terminal"
)

type editFlags struct {
	format      string
	restore     string
	metricsAddr string
	noWatch     bool
}

func editCmd(g *globals) *cobra.Command {
	var f editFlags
	cmd := &cobra.Command{
		Use:   "edit [graph-file]",
		Short: "Open the canvas editor",
		Long: `Open the full-screen canvas editor. The graph file is loaded when it exists
and becomes the target of Ctrl+S; its extension picks the format written.

  wordweb edit                       # start with an empty canvas
  wordweb edit ideas.json            # edit a saved graph
  wordweb edit notes.md              # start from a Markdown outline
  wordweb edit --restore 3f2a...     # start from a stored snapshot`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, g, f, args)
		},
	}
	cmd.Flags().StringVar(&f.format, "input-format", "", "input format: json or markdown (detected if empty)")
	cmd.Flags().StringVar(&f.restore, "restore", "", "start from the snapshot with this id")
	cmd.Flags().StringVar(&f.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	cmd.Flags().BoolVar(&f.noWatch, "no-watch", false, "do not reload the config file when it changes")
	return cmd
}

func runEdit(cmd *cobra.Command, g *globals, f editFlags, args []string) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	logger, err := logging.ForTerminal(cfg.Log)
	if err != nil {
		return err
	}
	defer logger.Sync()

	var path string
	graph := diagram.Empty()
	if len(args) > 0 {
		path = args[0]
		if _, statErr := os.Stat(path); statErr == nil {
			if graph, err = readGraph(path, f.format, cmd.InOrStdin()); err != nil {
				return err
			}
		}
	}

	snapshots, err := store.Open(cfg.Store.Path, logger)
	if err != nil {
		return err
	}
	defer snapshots.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if f.restore != "" {
		snap, err := snapshots.Load(ctx, f.restore)
		if err != nil {
			return fmt.Errorf("restore %s: %w", f.restore, err)
		}
		graph = snap.Graph
	}

	reg := metrics.NewRegistry()
	addr := f.metricsAddr
	if addr == "" {
		addr = cfg.Metrics.Addr
	}
	if addr != "" {
		srv := &http.Server{Addr: addr, Handler: reg.Handler(), ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server failed", zap.Error(err))
			}
		}()
		defer srv.Close()
	}

	o, err := newOracle(cfg.Oracle, reg, logger)
	if err != nil {
		return err
	}
	p := newPlanners(cfg.Layout)
	ed := editor.New(graph, editor.Options{
		Oracle:        o,
		Snapshots:     snapshots,
		Logger:        logger,
		Metrics:       reg,
		Radial:        p.radial,
		Cluster:       p.cluster,
		Viewport:      newViewport(cfg.Canvas),
		ExpandCount:   cfg.Expand.Count,
		HistorySize:   cfg.History.Max,
		OracleTimeout: cfg.Oracle.Timeout.Duration,
	})
	defer ed.Close()

	var watcher *config.Watcher
	if !f.noWatch {
		if watcher, err = config.NewWatcher(g.path(), cfg, logger); err != nil {
			// The editor works without live reload, e.g. when the config dir does not exist
			logger.Warn("config watcher disabled", zap.Error(err))
			watcher = nil
		} else {
			defer watcher.Close()
		}
	}

	app, err := terminal.New(terminal.Options{
		Editor:      ed,
		Logger:      logger,
		Path:        path,
		Watcher:     watcher,
		Reconfigure: reconfigure(ed, p, logger),
	})
	if err != nil {
		return err
	}
	return app.Run(ctx)
}
