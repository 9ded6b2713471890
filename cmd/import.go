package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"wordweb/export"
	"wordweb/logging"
	"wordweb/store"
)

type importFlags struct {
	inputFormat string
	output      string
	save        bool
	label       string
}

func importCmd(g *globals) *cobra.Command {
	var f importFlags
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Convert a Markdown outline or JSON graph into a wordweb graph",
		Long: `Read a Markdown bullet outline (or a JSON graph) and write the laid-out graph as
JSON. Nested bullets become expansions; "> " lines turn the bullet above into a note.

  wordweb import notes.md -o notes.json
  cat notes.md | wordweb import - --save --label "from notes"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			graph, err := readGraph(args[0], f.inputFormat, cmd.InOrStdin())
			if err != nil {
				return err
			}

			if f.save {
				cfg, err := g.load()
				if err != nil {
					return err
				}
				logger, err := logging.New(cfg.Log)
				if err != nil {
					return err
				}
				defer logger.Sync()
				s, err := store.Open(cfg.Store.Path, logger)
				if err != nil {
					return err
				}
				defer s.Close()

				label := f.label
				if label == "" {
					label = "import " + args[0]
				}
				snap, err := s.Append(cmd.Context(), label, graph)
				if err != nil {
					return err
				}
				Good.Fprintf(cmd.ErrOrStderr(), "  ✓ snapshot %s (%d nodes)\n", shortID(snap.ID), snap.Nodes)
				if f.output == "" {
					return nil
				}
			}

			data, err := export.NewJSONExporter().Export(graph)
			if err != nil {
				return fmt.Errorf("encode graph: %w", err)
			}
			return writeFile(f.output, data, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&f.inputFormat, "input-format", "", "input format: json or markdown (detected if empty)")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "write the JSON graph here (default stdout)")
	cmd.Flags().BoolVar(&f.save, "save", false, "append the graph to the snapshot history")
	cmd.Flags().StringVar(&f.label, "label", "", "snapshot label used with --save")
	return cmd
}
