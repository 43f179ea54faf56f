// Package searchgraph draws the row partition search of a justified layout
// as a Graphviz diagram.
//
// Node i is the boundary before image i; an edge i -> j is a candidate row
// holding images [i, j). Edges on the cheapest path are drawn bold, so the
// diagram shows which rows the planner considered and which it kept.
//
//	g, _ := layout.BuildSearchGraph(images, cfg)
//	dot := searchgraph.ToDOT(g, searchgraph.Options{Detailed: true})
//	svg, err := searchgraph.RenderSVG(ctx, dot)
package searchgraph
