package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gallery/pkg/layout"
	"github.com/matzehuels/gallery/pkg/pipeline"
	"github.com/matzehuels/gallery/pkg/render"
	"github.com/matzehuels/gallery/pkg/render/searchgraph"
)

type searchGraphOpts struct {
	output     string
	detailed   bool
	chosenOnly bool
	in         inputFlags
}

// searchGraphCommand creates the searchgraph debug command.
func (c *CLI) searchGraphCommand() *cobra.Command {
	var sg searchGraphOpts
	opts := c.Config.pipelineOptions()

	cmd := &cobra.Command{
		Use:   "searchgraph [manifest|dir]",
		Short: "Draw the row partition search as a graph",
		Long: `Draw the row partition search as a graph.

Node i is the break before image i and every edge is a candidate row. The
cheapest path, which the rows layout uses, is highlighted. The output format
follows the extension: .dot writes Graphviz source, .svg, .png and .pdf are
rendered.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSearchGraph(cmd.Context(), args[0], opts, sg)
		},
	}

	cmd.Flags().StringVarP(&sg.output, "output", "o", "", "output file (default: <input>.search.svg)")
	cmd.Flags().BoolVar(&sg.detailed, "detailed", false, "label edges with row height and cost")
	cmd.Flags().BoolVar(&sg.chosenOnly, "chosen-only", false, "draw only the chosen rows")
	sg.in.bind(cmd)
	addLayoutFlags(cmd, &opts)

	return cmd
}

func (c *CLI) runSearchGraph(ctx context.Context, input string, opts pipeline.Options, sg searchGraphOpts) error {
	opts.Mode = string(layout.ModeRows)
	if err := opts.ValidateForLayout(); err != nil {
		return err
	}

	runner, err := c.newRunner(true)
	if err != nil {
		return err
	}
	defer runner.Close()

	m, err := loadManifest(ctx, runner, input, sg.in)
	if err != nil {
		return err
	}

	g, err := layout.BuildSearchGraph(m.Layout(), opts.LayoutOptions().RowConfig())
	if err != nil {
		return err
	}
	c.Logger.Info("built search graph", "nodes", g.Nodes, "edges", len(g.Edges), "rows", len(g.Path)-1, "cost", g.Cost)

	output := sg.output
	if output == "" {
		output = basePath("", input) + ".search.svg"
	}

	dot := searchgraph.ToDOT(g, searchgraph.Options{Detailed: sg.detailed, ChosenOnly: sg.chosenOnly})
	data, err := renderDOT(ctx, dot, output)
	if err != nil {
		return err
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}

	printSuccess("Search graph written")
	printFile(output)
	printDetail("%d candidate rows · %d chosen · lookahead %d", len(g.Edges), len(g.Path)-1, g.Limit)
	return nil
}

// renderDOT converts DOT source to the format implied by path's extension.
func renderDOT(ctx context.Context, dot, path string) ([]byte, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch ext {
	case "dot", "gv":
		return []byte(dot), nil
	case pipeline.FormatSVG, pipeline.FormatPNG, pipeline.FormatPDF:
	default:
		return nil, fmt.Errorf("unsupported output extension %q (use .dot, .svg, .png or .pdf)", ext)
	}

	svg, err := searchgraph.RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	switch ext {
	case pipeline.FormatPNG:
		return render.ToPNG(ctx, svg, pipeline.DefaultPNGScale)
	case pipeline.FormatPDF:
		return render.ToPDF(ctx, svg)
	default:
		return svg, nil
	}
}
