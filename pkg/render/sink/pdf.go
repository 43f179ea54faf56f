package sink

import (
	"context"

	"github.com/matzehuels/gallery/pkg/render"
	"github.com/matzehuels/gallery/pkg/schema"
)

// RenderPDF renders the layout as PDF via SVG conversion.
func RenderPDF(ctx context.Context, l schema.Layout, svgOpts ...SVGOption) ([]byte, error) {
	return render.ToPDF(ctx, RenderSVG(l, svgOpts...))
}
