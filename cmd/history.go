package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"wordweb/export"
	"wordweb/store"
)

func historyCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect the snapshot history",
		Long: `Every snapshot saved from the editor is kept in an append-only log.

  wordweb history list
  wordweb history restore 12 -o ideas.json`,
	}
	cmd.AddCommand(historyListCmd(g), historyRestoreCmd(g))
	return cmd
}

func openStore(g *globals) (*store.Store, error) {
	cfg, err := g.load()
	if err != nil {
		return nil, err
	}
	return store.Open(cfg.Store.Path, nil)
}

func historyListCmd(g *globals) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored snapshots, newest last",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(g)
			if err != nil {
				return err
			}
			defer s.Close()

			snaps, err := s.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(snaps) == 0 {
				Subtle.Fprintln(cmd.OutOrStdout(), "  No snapshots yet. Press s in the editor to save one.")
				return nil
			}
			if limit > 0 && len(snaps) > limit {
				snaps = snaps[len(snaps)-limit:]
			}

			rows := make([][]string, len(snaps))
			for i, snap := range snaps {
				rows[i] = []string{
					strconv.FormatInt(snap.Seq, 10),
					shortID(snap.ID),
					snap.CreatedAt.Local().Format(time.DateTime),
					fmt.Sprintf("%d/%d/%d", snap.Nodes, snap.Connections, snap.Frames),
					snap.Label,
				}
			}
			table(cmd.OutOrStdout(), []string{"SEQ", "ID", "SAVED", "N/C/F", "LABEL"}, rows)
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "show only the newest n snapshots")
	return cmd
}

func historyRestoreCmd(g *globals) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "restore <id-or-seq>",
		Short: "Write a stored snapshot as a JSON graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(g)
			if err != nil {
				return err
			}
			defer s.Close()

			snap, err := s.Load(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("snapshot %s: %w", args[0], err)
			}
			data, err := export.NewJSONExporter().Export(snap.Graph)
			if err != nil {
				return err
			}
			if err := writeFile(output, data, cmd.OutOrStdout()); err != nil {
				return err
			}
			if output != "" && output != "-" {
				Good.Fprintf(cmd.ErrOrStderr(), "  ✓ restored %s to %s\n", shortID(snap.ID), output)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}
