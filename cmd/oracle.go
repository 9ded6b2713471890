package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"wordweb/config"
	"wordweb/logging"
	"wordweb/metrics"
	"wordweb/oracle"
)

func oracleCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "oracle",
		Short: "Run or query the word service",
	}
	cmd.AddCommand(oracleServeCmd(g), oracleExpandCmd(g))
	return cmd
}

func oracleServeCmd(g *globals) *cobra.Command {
	var (
		addr      string
		wordsFile string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the static word service over HTTP",
		Long: `Serve the offline word service over HTTP so that several editors, or an editor
on another machine, can share one word file. Point editors at it with
oracle.mode: http and oracle.url: http://<addr>.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.load()
			if err != nil {
				return err
			}
			logger, err := logging.New(cfg.Log)
			if err != nil {
				return err
			}
			defer logger.Sync()

			if wordsFile == "" {
				wordsFile = cfg.Oracle.WordsFile
			}
			static, err := oracle.LoadStatic(wordsFile)
			if err != nil {
				return err
			}
			reg := metrics.NewRegistry()
			handler := oracle.NewServer(oracle.Instrument(static, reg, logger), logger, reg.Handler())

			srv := &http.Server{Addr: addr, Handler: handler, ReadHeaderTimeout: 5 * time.Second}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() { errCh <- srv.ListenAndServe() }()
			Brand.Fprintf(cmd.ErrOrStderr(), "  wordweb oracle listening on %s\n", addr)
			logger.Info("oracle server started", zap.String("addr", addr), zap.String("words_file", wordsFile))

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			logger.Info("oracle server shutting down")
			return srv.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:7411", "listen address")
	cmd.Flags().StringVar(&wordsFile, "words", "", "YAML word file (default oracle.words_file)")
	return cmd
}

func oracleExpandCmd(g *globals) *cobra.Command {
	var count int
	cmd := &cobra.Command{
		Use:   "expand <word>",
		Short: "Ask the configured word service for related words",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.load()
			if err != nil {
				return err
			}
			if count <= 0 {
				count = cfg.Expand.Count
			}
			o, err := newOracle(cfg.Oracle, nil, nil)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeoutOr(cfg.Oracle, 30*time.Second))
			defer cancel()
			phrases, err := o.Expand(ctx, strings.Join(args, " "), count, nil)
			if err != nil {
				return fmt.Errorf("expand: %s", oracle.Message(err))
			}
			for _, p := range phrases {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 0, "number of words (default expand.count)")
	return cmd
}

func timeoutOr(cfg config.OracleConfig, fallback time.Duration) time.Duration {
	if cfg.Timeout.Duration > 0 {
		return cfg.Timeout.Duration
	}
	return fallback
}
