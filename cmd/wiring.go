package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"wordweb/canvas"
	"wordweb/config"
	"wordweb/diagram"
	"wordweb/editor"
	"wordweb/importer"
	"wordweb/layout"
	"wordweb/metrics"
	"wordweb/oracle"
)

// newOracle builds the configured word service, instrumented with metrics and logging.
func newOracle(cfg config.OracleConfig, reg *metrics.Registry, logger *zap.Logger) (oracle.Oracle, error) {
	var o oracle.Oracle
	switch cfg.Mode {
	case config.OracleHTTP:
		o = oracle.NewClient(oracle.ClientConfig{
			BaseURL: cfg.URL,
			Timeout: cfg.Timeout.Duration,
			Breaker: oracle.BreakerConfig{
				MaxRequests:      cfg.Breaker.MaxRequests,
				Interval:         cfg.Breaker.Interval.Duration,
				Timeout:          cfg.Breaker.Timeout.Duration,
				FailureThreshold: cfg.Breaker.FailureRatio,
				MinRequests:      cfg.Breaker.MinRequests,
			},
		}, logger)
	default:
		s, err := oracle.LoadStatic(cfg.WordsFile)
		if err != nil {
			return nil, err
		}
		o = s
	}
	return oracle.Instrument(o, reg, logger), nil
}

// planners holds the layout objects shared with the editor so that configuration
// reloads can adjust them in place.
type planners struct {
	radial  *layout.RadialPlanner
	cluster *layout.ClusterPlanner
}

func newPlanners(cfg config.LayoutConfig) planners {
	resolver := layout.NewResolver(
		layout.WithMinDistance(cfg.MinDistance),
		layout.WithMaxAttempts(cfg.MaxAttempts),
	)
	p := planners{
		radial:  layout.NewRadialPlanner(resolver),
		cluster: layout.NewClusterPlanner(),
	}
	p.apply(cfg)
	return p
}

// apply updates radii. The resolver keeps the separation it was built with.
func (p planners) apply(cfg config.LayoutConfig) {
	p.radial.SetRadius(cfg.BaseRadius, cfg.LevelStep)
	p.cluster.SetRadii(cfg.ClusterRing, cfg.MemberRing, cfg.OrphanGap)
}

func newViewport(cfg config.CanvasConfig) *canvas.Viewport {
	vp := canvas.NewViewport()
	vp.SetLimits(cfg.MinScale, cfg.MaxScale, cfg.ZoomSpeed)
	return vp
}

// reconfigure applies the settings that can change while the editor runs.
func reconfigure(ed *editor.Editor, p planners, logger *zap.Logger) func(config.Config) {
	return func(cfg config.Config) {
		p.apply(cfg.Layout)
		ed.Viewport().SetLimits(cfg.Canvas.MinScale, cfg.Canvas.MaxScale, cfg.Canvas.ZoomSpeed)
		ed.SetExpandCount(cfg.Expand.Count)
		logger.Info("configuration applied",
			zap.Int("expand_count", cfg.Expand.Count),
			zap.Float64("base_radius", cfg.Layout.BaseRadius),
		)
	}
}

// readGraph loads a graph file. "-" reads stdin. The format is detected from the
// content unless given.
func readGraph(path, format string, stdin io.Reader) (*diagram.Graph, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if format == "" && path != "-" {
		format = filepath.Ext(path)
	}
	g, err := importer.NewImporterRegistry().ImportHinted(string(data), format)
	if err != nil {
		return nil, fmt.Errorf("import %s: %w", path, err)
	}
	return g, nil
}

// writeFile writes data to path, or to stdout when path is "-" or empty.
func writeFile(path string, data []byte, stdout io.Writer) error {
	if path == "" || path == "-" {
		_, err := stdout.Write(data)
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}
