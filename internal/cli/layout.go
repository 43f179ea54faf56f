package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gallery/pkg/pipeline"
	"github.com/matzehuels/gallery/pkg/schema"
)

// layoutCommand creates the layout command for computing layout documents.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		in      inputFlags
	)
	opts := c.Config.pipelineOptions()

	cmd := &cobra.Command{
		Use:   "layout [manifest|dir]",
		Short: "Compute a gallery layout",
		Long: `Compute a gallery layout from a manifest or an image directory.

The output is a layout document (same format as 'render -f json') that can be
drawn with 'visualize' without recomputing. Rows mode picks row breaks by a
shortest-path search over at most --lookahead images per row; columns mode
stacks each image onto the shortest column.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], opts, output, noCache, in)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even if cached")
	cmd.Flags().StringVar(&opts.Title, "title", "", "layout title (default: manifest title)")
	in.bind(cmd)
	addLayoutFlags(cmd, &opts)

	return cmd
}

// runLayout loads the images, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool, in inputFlags) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	m, err := loadManifest(ctx, runner, input, in)
	if err != nil {
		return err
	}
	opts.Logger = c.Logger
	if opts.Title == "" {
		opts.Title = manifestTitle(m)
	}

	spin := newSpinnerWithContext(ctx, fmt.Sprintf("Computing %s layout...", opts.Mode))
	spin.Start()

	l, cacheHit, err := runner.ComputeLayoutWithCacheInfo(ctx, m.Layout(), opts)
	if err != nil {
		spin.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spin.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		outputPath = basePath("", input) + ".layout.json"
	}
	if err := schema.WriteLayoutFile(l, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printLayoutStats(l, cacheHit)
	printNewline()
	printNextStep("Render", "gallery visualize "+outputPath)

	return nil
}
