// Package cmd is the wordweb command line.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"wordweb/config"
)

var version = "0.4.0"

// globals are the persistent flags shared by every command.
type globals struct {
	configPath string
	logLevel   string
}

// load reads the configuration named by --config and applies flag overrides.
func (g *globals) load() (config.Config, error) {
	cfg, err := config.Load(g.configPath)
	if err != nil {
		return cfg, err
	}
	if g.logLevel != "" {
		cfg.Log.Level = g.logLevel
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("--log-level: %w", err)
		}
	}
	return cfg, nil
}

// path returns the config file in use.
func (g *globals) path() string {
	if g.configPath != "" {
		return g.configPath
	}
	return config.DefaultPath()
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	g := &globals{}

	root := &cobra.Command{
		Use:   "wordweb [graph-file]",
		Short: "wordweb - grow word association maps on a terminal canvas",
		Long: Brand.Sprint("wordweb") + " - grow word association maps on a terminal canvas\n" +
			Subtle.Sprint("Click a word to expand it, drag between handles to connect, group everything into clusters"),
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, g, editFlags{}, args)
		},
	}
	root.SetVersionTemplate("wordweb {{ .Version }}\n")
	root.PersistentFlags().StringVar(&g.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/wordweb/config.yaml)")
	root.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "override the configured log level")

	root.AddCommand(
		editCmd(g),
		exportCmd(g),
		importCmd(g),
		historyCmd(g),
		oracleCmd(g),
		configCmd(g),
	)
	return root
}

// Execute runs the command line.
func Execute() error {
	if err := NewRootCmd().Execute(); err != nil {
		Bad.Fprintf(os.Stderr, "wordweb: %v\n", err)
		return err
	}
	return nil
}
