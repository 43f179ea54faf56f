package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gallery/pkg/manifest"
	"github.com/matzehuels/gallery/pkg/pipeline"
)

// addLayoutFlags binds the layout options to cmd, using opts as defaults.
func addLayoutFlags(cmd *cobra.Command, opts *pipeline.Options) {
	f := cmd.Flags()
	f.StringVarP(&opts.Mode, "mode", "m", opts.Mode, "layout mode: rows, columns")
	f.Float64VarP(&opts.Width, "width", "w", opts.Width, "container width in pixels")
	f.Float64Var(&opts.Margin, "margin", opts.Margin, "gap between tiles")
	f.Float64Var(&opts.TargetRowHeight, "row-height", opts.TargetRowHeight, "ideal row height (rows)")
	f.IntVar(&opts.LimitNodeSearch, "lookahead", opts.LimitNodeSearch, "maximum images per row, 0 to estimate (rows)")
	f.StringVar(&opts.LastRow, "last-row", opts.LastRow, "last row policy: justify, natural (rows)")
	f.Float64Var(&opts.LastRowWeight, "last-row-weight", opts.LastRowWeight, "cost weight of the last row in (0, 1], 0 for 0.5 (rows)")
	f.IntVar(&opts.Columns, "columns", opts.Columns, "column count, 0 to pick from width (columns)")
	f.BoolVar(&opts.SafetyPixel, "safety-pixel", opts.SafetyPixel, "subtract one pixel from the width before layout")
	registerLayoutCompletions(cmd)
}

// addRenderFlags binds the drawing options to cmd. The format list is
// bound separately because it arrives as a comma-separated string.
func addRenderFlags(cmd *cobra.Command, opts *pipeline.Options, formats *string) {
	f := cmd.Flags()
	f.StringVarP(formats, "format", "f", *formats, "output format(s): svg, json, pdf, png (comma-separated)")
	f.BoolVar(&opts.Labels, "labels", opts.Labels, "draw captions on tiles")
	f.BoolVar(&opts.Thumbnails, "thumbnails", opts.Thumbnails, "embed resized images (needs the image files)")
	f.StringVar(&opts.Background, "background", opts.Background, "background color")
	f.BoolVar(&opts.Interactive, "interactive", opts.Interactive, "add hover styles and click events to the SVG")
	f.Float64Var(&opts.PNGScale, "png-scale", pipeline.DefaultPNGScale, "PNG resolution multiplier")
	registerRenderCompletions(cmd)
}

// inputFlags select how a directory input is scanned.
type inputFlags struct {
	recursive bool
	strict    bool
}

func (in *inputFlags) bind(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&in.recursive, "recursive", "r", false, "scan subdirectories (directory input)")
	cmd.Flags().BoolVar(&in.strict, "strict", false, "fail on unreadable images instead of skipping them")
}

// loadManifest reads a manifest file, or scans input when it is a directory.
func loadManifest(ctx context.Context, runner *pipeline.Runner, input string, in inputFlags) (*manifest.Manifest, error) {
	if info, err := os.Stat(input); err != nil || !info.IsDir() {
		m, err := manifest.Load(input)
		if err != nil {
			return nil, err
		}
		loggerFromContext(ctx).Debug("loaded manifest", "path", input, "images", len(m.Images))
		return m, nil
	}

	spin := newSpinnerWithContext(ctx, fmt.Sprintf("Scanning %s...", input))
	spin.Start()
	m, err := runner.Scan(ctx, input, manifest.ScanOptions{Recursive: in.recursive, Strict: in.strict})
	if err != nil {
		spin.StopWithError("Scan failed")
		return nil, err
	}
	spin.Stop()
	return m, nil
}
