package cmd

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"wordweb/diagram"
	"wordweb/export"
	"wordweb/store"
)

type exportFlags struct {
	formats     []string
	output      string
	inputFormat string
	snapshot    string
}

func exportCmd(g *globals) *cobra.Command {
	var f exportFlags
	cmd := &cobra.Command{
		Use:   "export [graph-file]",
		Short: "Write a graph in one or more formats",
		Long: `Write a graph as JSON, a Markdown outline, a Mermaid flowchart, Graphviz DOT, SVG, PNG or
terminal text. With one format the result goes to --output or stdout; with several,
--output names a directory and each file is named after the input.

  wordweb export ideas.json -f mermaid
  wordweb export ideas.json -f svg,png,markdown -o out/
  wordweb export --snapshot 12 -f png -o latest.png`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, g, f, args)
		},
	}
	cmd.Flags().StringSliceVarP(&f.formats, "format", "f", []string{"ascii"}, "output formats: "+formatList())
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file, or directory for several formats (default stdout)")
	cmd.Flags().StringVar(&f.inputFormat, "input-format", "", "input format: json or markdown (detected if empty)")
	cmd.Flags().StringVar(&f.snapshot, "snapshot", "", "export a stored snapshot instead of a file")
	return cmd
}

func formatList() string {
	names := make([]string, 0, len(export.GetAvailableFormats()))
	for _, f := range export.GetAvailableFormats() {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}

func runExport(cmd *cobra.Command, g *globals, f exportFlags, args []string) error {
	formats := make([]export.Format, 0, len(f.formats))
	for _, s := range f.formats {
		format, err := export.ParseFormat(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("%w (available: %s)", err, formatList())
		}
		formats = append(formats, format)
	}
	if len(formats) == 0 {
		return fmt.Errorf("no export format given")
	}

	graph, base, err := exportSource(cmd, g, f, args)
	if err != nil {
		return err
	}

	if len(formats) == 1 {
		exp, err := export.NewExporter(formats[0])
		if err != nil {
			return err
		}
		data, err := exp.Export(graph)
		if err != nil {
			return fmt.Errorf("%s export: %w", formats[0], err)
		}
		if err := writeFile(f.output, data, cmd.OutOrStdout()); err != nil {
			return err
		}
		if f.output != "" && f.output != "-" {
			Good.Fprintf(cmd.ErrOrStderr(), "  ✓ %s\n", f.output)
		}
		return nil
	}

	dir := f.output
	if dir == "" {
		dir = "."
	}
	return exportAll(cmd.Context(), graph, formats, dir, base, cmd.ErrOrStderr())
}

// exportSource loads the graph from the argument or from the snapshot log, and returns
// the base name used for output files.
func exportSource(cmd *cobra.Command, g *globals, f exportFlags, args []string) (*diagram.Graph, string, error) {
	if f.snapshot != "" {
		cfg, err := g.load()
		if err != nil {
			return nil, "", err
		}
		s, err := store.Open(cfg.Store.Path, nil)
		if err != nil {
			return nil, "", err
		}
		defer s.Close()
		snap, err := s.Load(cmd.Context(), f.snapshot)
		if err != nil {
			return nil, "", fmt.Errorf("snapshot %s: %w", f.snapshot, err)
		}
		return snap.Graph, "snapshot-" + shortID(snap.ID), nil
	}
	if len(args) == 0 {
		return nil, "", fmt.Errorf("a graph file or --snapshot is required")
	}
	graph, err := readGraph(args[0], f.inputFormat, cmd.InOrStdin())
	if err != nil {
		return nil, "", err
	}
	base := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
	if args[0] == "-" {
		base = "wordweb"
	}
	return graph, base, nil
}

// exportAll writes every format concurrently into dir. All formats are attempted; the
// first failure is returned.
func exportAll(ctx context.Context, graph *diagram.Graph, formats []export.Format, dir, base string, status io.Writer) error {
	var mu sync.Mutex
	eg, _ := errgroup.WithContext(ctx)
	eg.SetLimit(4)

	for _, format := range formats {
		eg.Go(func() error {
			exp, err := export.NewExporter(format)
			if err != nil {
				return err
			}
			data, err := exp.Export(graph)
			if err == nil {
				path := filepath.Join(dir, base+exp.GetFileExtension())
				if err = writeFile(path, data, nil); err == nil {
					mu.Lock()
					Good.Fprintf(status, "  ✓ %-9s %s\n", format, path)
					mu.Unlock()
					return nil
				}
			}
			mu.Lock()
			Bad.Fprintf(status, "  ✗ %-9s %v\n", format, err)
			mu.Unlock()
			return fmt.Errorf("%s export: %w", format, err)
		})
	}
	return eg.Wait()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
