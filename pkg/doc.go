// Package pkg provides the libraries behind the gallery command.
//
// # Overview
//
// Gallery arranges a sequence of images into one of two layouts:
//
//   - justified rows, where every row fills the container width exactly and
//     the row breaks minimise the squared deviation from a target row height
//   - masonry columns, where every image goes to the currently shortest
//     column
//
// # Architecture
//
//	image directory / manifest
//	         ↓
//	    [manifest] (scan headers, load JSON or TOML)
//	         ↓
//	    [layout] (row or column placement)
//	         ↓
//	    [schema] (serialisable layout document)
//	         ↓
//	    [render/sink] (SVG, PNG, PDF, JSON)
//
// [pipeline] orchestrates these steps and caches results through [cache].
//
// # Quick Start
//
//	images := []layout.Image{
//	    {Width: 4000, Height: 3000},
//	    {Width: 3000, Height: 4000},
//	}
//	res, err := layout.Compute(images, layout.Options{
//	    Mode:            layout.ModeRows,
//	    ContainerWidth:  1200,
//	    Margin:          8,
//	    TargetRowHeight: 240,
//	})
//
// # Main Packages
//
// [layout] - The layout engine: row partitioning by shortest path, the
// lookahead estimator, and greedy masonry columns. It has no I/O.
//
// [manifest] - Image lists with sizes, captions and alt text, read from
// JSON or TOML or built by scanning a directory.
//
// [schema] - The versioned JSON layout document shared by the CLI and the
// renderers.
//
// [render/sink] - Contact sheet rendering to SVG, with PNG and PDF via
// rsvg-convert.
//
// [render/searchgraph] - DOT and SVG views of the row-break search graph.
//
// [pipeline] - Validation, caching and rendering orchestration.
//
// [cache] - File, memory and no-op caches with TTLs and content-hash keys.
//
// [errors] - Coded errors for configuration, image and input failures.
//
// [observability] - Hooks for tracing pipeline and cache events.
package pkg
