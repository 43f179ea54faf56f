// Package sink renders a serialized gallery layout to output formats.
//
// The SVG contact sheet draws one tile per placement: a grey placeholder by
// default, or an embedded thumbnail when [WithThumbnails] is given a loader.
// PNG and PDF go through the SVG renderer and rsvg-convert. JSON is the
// [schema.Layout] document itself.
//
//	svg := sink.RenderSVG(l,
//	    sink.WithLabels(),
//	    sink.WithThumbnails(sink.DirLoader(m.Dir), 1),
//	)
//
// [schema.Layout]: github.com/matzehuels/gallery/pkg/schema.Layout
package sink
