package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/gallery/pkg/render/sink"
	"github.com/matzehuels/gallery/pkg/schema"
)

// Render generates output artifacts in the requested formats.
func Render(ctx context.Context, l schema.Layout, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	svgOpts := buildSVGOptions(opts)
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(l, svgOpts...)
		case FormatPNG:
			data, err = sink.RenderPNG(ctx, l, sink.WithPNGSVGOptions(svgOpts...), sink.WithScale(opts.PNGScale))
		case FormatPDF:
			data, err = sink.RenderPDF(ctx, l, svgOpts...)
		case FormatJSON:
			data, err = sink.RenderJSON(l)
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// buildSVGOptions builds SVG rendering options.
func buildSVGOptions(opts Options) []sink.SVGOption {
	var svgOpts []sink.SVGOption

	if opts.Labels {
		svgOpts = append(svgOpts, sink.WithLabels())
	}
	if opts.Background != "" {
		svgOpts = append(svgOpts, sink.WithBackground(opts.Background))
	}
	if opts.Interactive {
		svgOpts = append(svgOpts, sink.WithInteraction())
	}
	if opts.Thumbnails {
		logger := opts.Logger
		svgOpts = append(svgOpts,
			sink.WithThumbnails(sink.DirLoader(opts.ImageDir), 1),
			sink.WithThumbnailErrors(func(path string, err error) {
				logger.Warn("thumbnail skipped", "path", path, "error", err)
			}),
		)
	}

	return svgOpts
}
