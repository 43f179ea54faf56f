package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gallery/pkg/manifest"
	"github.com/matzehuels/gallery/pkg/pipeline"
	"github.com/matzehuels/gallery/pkg/schema"
)

// renderCommand creates the render command: layout and render in one step.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output     string
		formatsStr string
		noCache    bool
		in         inputFlags
	)
	opts := c.Config.pipelineOptions()
	formatsStr = c.Config.Formats

	cmd := &cobra.Command{
		Use:   "render [manifest|dir]",
		Short: "Lay out and render a gallery",
		Long: `Lay out and render a gallery from a manifest or an image directory.

Produces one file per format. SVG and JSON are written directly; PNG and PDF
need rsvg-convert (librsvg) on the PATH.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts, output, noCache, in)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even if cached")
	cmd.Flags().StringVar(&opts.Title, "title", "", "gallery title (default: manifest title)")
	in.bind(cmd)
	addLayoutFlags(cmd, &opts)
	addRenderFlags(cmd, &opts, &formatsStr)

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool, in inputFlags) error {
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
	opts.ImageDir = m.Dir
	if opts.Title == "" {
		opts.Title = manifestTitle(m)
	}

	spin := newSpinnerWithContext(ctx, "Preparing...")
	opts.OnStage = func(stage pipeline.Stage) {
		switch stage {
		case pipeline.StageLayout:
			spin.SetMessage(fmt.Sprintf("Computing %s layout...", opts.Mode))
		case pipeline.StageRender:
			spin.SetMessage("Rendering " + strings.Join(opts.Formats, ", ") + "...")
		}
	}
	spin.Start()

	result, err := runner.Execute(ctx, m, opts)
	if err != nil {
		spin.StopWithError("Render failed")
		return err
	}
	spin.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	paths, err := writeArtifacts(result.Artifacts, opts.Formats, output, basePath("", input), input)
	if err != nil {
		return err
	}

	printSuccess("Rendered %d %s", len(paths), plural(len(paths), "file", "files"))
	for _, p := range paths {
		printFile(p)
	}
	printLayoutStats(result.Layout, result.CacheInfo.LayoutHit)
	return nil
}

// visualizeCommand creates the visualize command: render an existing layout.
func (c *CLI) visualizeCommand() *cobra.Command {
	var (
		output     string
		formatsStr string
		imageDir   string
		noCache    bool
	)
	opts := c.Config.pipelineOptions()
	formatsStr = c.Config.Formats

	cmd := &cobra.Command{
		Use:   "visualize [layout.json]",
		Short: "Render a layout document",
		Long: `Render a layout document written by 'layout' or 'render -f json'.

The layout is drawn as-is; no layout flags apply. Thumbnails resolve image
paths against --images (default: the layout file's directory).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			if imageDir == "" {
				imageDir = filepath.Dir(args[0])
			}
			opts.ImageDir = imageDir
			return c.runVisualize(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVar(&imageDir, "images", "", "directory that image paths are relative to")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	addRenderFlags(cmd, &opts, &formatsStr)

	return cmd
}

func (c *CLI) runVisualize(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	l, err := schema.ReadLayoutFile(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger

	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, l, opts)
	if err != nil {
		return err
	}

	// "x.layout.json" renders to "x.svg".
	base := trimLayoutSuffix(basePath("", input))
	paths, err := writeArtifacts(artifacts, opts.Formats, output, base, input)
	if err != nil {
		return err
	}

	printSuccess("Rendered %d %s", len(paths), plural(len(paths), "file", "files"))
	for _, p := range paths {
		printFile(p)
	}
	printLayoutStats(l, cacheHit)
	return nil
}

// writeArtifacts writes one file per format and returns the paths written.
// A single format with an explicit output path is written there verbatim;
// otherwise files are named <base>.<format>, where an explicit output
// replaces base.
func writeArtifacts(artifacts map[string][]byte, formats []string, output, base, input string) ([]string, error) {
	if len(formats) == 1 && output != "" && filepath.Ext(output) != "" {
		if err := os.WriteFile(output, artifacts[formats[0]], 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", output, err)
		}
		return []string{output}, nil
	}

	if output != "" {
		base = basePath(output, input)
	}
	var paths []string
	for _, format := range formats {
		path := base + "." + format
		if format == pipeline.FormatJSON {
			path = base + ".layout.json"
		}
		if path == input {
			return nil, fmt.Errorf("refusing to overwrite input %s", input)
		}
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func trimLayoutSuffix(base string) string {
	const suffix = ".layout"
	if filepath.Ext(base) == suffix {
		return base[:len(base)-len(suffix)]
	}
	return base
}

// manifestTitle falls back to the directory name for untitled manifests.
func manifestTitle(m *manifest.Manifest) string {
	if m.Title != "" {
		return m.Title
	}
	return filepath.Base(m.Dir)
}
