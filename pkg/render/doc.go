// Package render turns computed gallery layouts into visual artifacts.
//
// # Overview
//
//   - Contact sheets of a layout (in [sink]): SVG, PNG, PDF and JSON
//   - The row partition search graph (in [searchgraph]), for inspecting why
//     a justified layout broke rows where it did
//   - Generic format conversion (SVG to PDF/PNG), shared by both
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert any SVG using the external rsvg-convert tool
// from librsvg. When it is missing they fail with code UNSUPPORTED; use
// [Available] to check up front.
//
//	svg := sink.RenderSVG(l, sink.WithLabels())
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)
//
// [sink]: github.com/matzehuels/gallery/pkg/render/sink
// [searchgraph]: github.com/matzehuels/gallery/pkg/render/searchgraph
package render
