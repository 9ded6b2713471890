// Package logging builds the zap loggers used across wordweb.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"wordweb/config"
)

// New creates a production logger at the configured level. Output goes to cfg.File when
// set, otherwise to stderr in console format.
func New(cfg config.LogConfig) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	zc := zap.NewProductionConfig()
	zc.Level = level
	zc.Sampling = nil
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if cfg.File == "" {
		zc.Encoding = "console"
		zc.OutputPaths = []string{"stderr"}
	} else {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
		zc.OutputPaths = []string{cfg.File}
	}
	zc.ErrorOutputPaths = zc.OutputPaths

	return zc.Build()
}

// ForTerminal creates a logger that never writes to the terminal: stderr output would
// corrupt the full-screen editor. Without a configured file it logs to the state directory.
func ForTerminal(cfg config.LogConfig) (*zap.Logger, error) {
	if cfg.File == "" {
		cfg.File = filepath.Join(config.StateDir(), "wordweb.log")
	}
	return New(cfg)
}
