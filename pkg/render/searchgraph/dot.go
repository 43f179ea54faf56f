package searchgraph

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/gallery/pkg/layout"
)

// Options configures search graph rendering.
type Options struct {
	// Detailed labels each edge with its row height and cost.
	Detailed bool

	// ChosenOnly omits edges that are not on the cheapest path.
	ChosenOnly bool
}

const (
	chosenColor = "#d62728"
	otherColor  = "#9e9e9e"
)

// ToDOT converts a search graph to Graphviz DOT format.
func ToDOT(g layout.SearchGraph, opts Options) string {
	onPath := make(map[int]bool, len(g.Path))
	for _, b := range g.Path {
		onPath[b] = true
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=14];\n")
	buf.WriteString("  edge [fontsize=10];\n")
	fmt.Fprintf(&buf, "  label=%q;\n", fmt.Sprintf("cost %.4f, limit %d", g.Cost, g.Limit))
	buf.WriteString("\n")

	for i := 0; i < g.Nodes; i++ {
		attrs := []string{fmt.Sprintf("label=%q", strconv.Itoa(i))}
		if onPath[i] {
			attrs = append(attrs, "penwidth=2", fmt.Sprintf("color=%q", chosenColor))
		}
		fmt.Fprintf(&buf, "  n%d [%s];\n", i, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges {
		if opts.ChosenOnly && !e.Chosen {
			continue
		}
		fmt.Fprintf(&buf, "  n%d -> n%d [%s];\n", e.From, e.To, strings.Join(edgeAttrs(e, opts.Detailed), ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func edgeAttrs(e layout.SearchEdge, detailed bool) []string {
	var attrs []string
	if detailed {
		attrs = append(attrs, fmt.Sprintf("label=%q", fmt.Sprintf("h=%.1f\nc=%.4f", e.Height, e.Cost)))
	}
	if e.Chosen {
		return append(attrs, fmt.Sprintf("color=%q", chosenColor), "penwidth=2.5")
	}
	return append(attrs, fmt.Sprintf("color=%q", otherColor), "style=dashed")
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with a
// unitless one so the diagram scales like the gallery SVGs.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
