package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/gallery/pkg/layout"
	"github.com/matzehuels/gallery/pkg/schema"
)

const (
	placeholderFill   = "#d9d9d9"
	placeholderStroke = "#bdbdbd"
	labelBandOpacity  = 0.55
)

const tileInteractionCSS = `
    .tile { cursor: pointer; }
    .tile rect, .tile image { transition: opacity 0.15s ease; }
    .tile:hover rect, .tile:hover image { opacity: 0.85; }`

// Clicking a tile dispatches "gallery:select" with the tile index and its
// neighbours so an embedding page can open a lightbox.
const tileInteractionJS = `
    document.querySelectorAll('.tile').forEach(el => {
      el.addEventListener('click', () => {
        const n = k => el.dataset[k] === undefined ? -1 : Number(el.dataset[k]);
        document.dispatchEvent(new CustomEvent('gallery:select', {
          detail: { id: el.id.replace('tile-', ''), index: n('index'), prev: n('prev'), next: n('next') }
        }));
      });
    });`

// SVGOption configures RenderSVG.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	labels      bool
	background  string
	interactive bool
	loader      Loader
	scale       float64
	onError     func(path string, err error)
}

// WithLabels draws each tile's caption (or path) along its bottom edge.
func WithLabels() SVGOption { return func(r *svgRenderer) { r.labels = true } }

// WithBackground fills the canvas with a CSS color.
func WithBackground(color string) SVGOption { return func(r *svgRenderer) { r.background = color } }

// WithInteraction adds hover styling and the click handler.
func WithInteraction() SVGOption { return func(r *svgRenderer) { r.interactive = true } }

// WithThumbnails embeds a resized copy of every image that has a path.
// Thumbnails are scale times the tile size; tiles whose image cannot be
// loaded fall back to a placeholder.
func WithThumbnails(loader Loader, scale float64) SVGOption {
	return func(r *svgRenderer) {
		r.loader = loader
		if scale > 0 {
			r.scale = scale
		}
	}
}

// WithThumbnailErrors receives images that could not be embedded.
func WithThumbnailErrors(fn func(path string, err error)) SVGOption {
	return func(r *svgRenderer) { r.onError = fn }
}

// RenderSVG draws the layout as a contact sheet.
func RenderSVG(l schema.Layout, opts ...SVGOption) []byte {
	r := svgRenderer{scale: 1}
	for _, opt := range opts {
		opt(&r)
	}

	w, h := l.Width, max(l.Height, 0)
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		w, h, w, h)

	if l.Title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", escapeXML(l.Title))
	}
	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", escapeXML(r.background))
	}

	for i, t := range l.Tiles {
		r.renderTile(&buf, t, i, len(l.Tiles))
	}

	if r.interactive {
		fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", tileInteractionCSS)
		fmt.Fprintf(&buf, "  <script type=\"text/javascript\"><![CDATA[%s\n  ]]></script>\n", tileInteractionJS)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *svgRenderer) renderTile(buf *bytes.Buffer, t schema.Tile, i, n int) {
	prev, next := layout.Neighbors(n, i)
	fmt.Fprintf(buf, `  <g class="tile" id="tile-%s" data-index="%d"`, escapeXML(tileID(t)), t.Index)
	if prev >= 0 {
		fmt.Fprintf(buf, ` data-prev="%d"`, prev)
	}
	if next >= 0 {
		fmt.Fprintf(buf, ` data-next="%d"`, next)
	}
	buf.WriteString(">\n")

	if t.Alt != "" {
		fmt.Fprintf(buf, "    <desc>%s</desc>\n", escapeXML(t.Alt))
	}

	if uri, ok := r.thumbnail(t); ok {
		fmt.Fprintf(buf, `    <image href="%s" x="%.2f" y="%.2f" width="%.2f" height="%.2f" preserveAspectRatio="none"/>`+"\n",
			uri, t.X, t.Y, t.Width, t.Height)
	} else {
		fmt.Fprintf(buf, `    <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s" stroke="%s" stroke-width="1"/>`+"\n",
			t.X, t.Y, t.Width, t.Height, placeholderFill, placeholderStroke)
	}

	if r.labels {
		renderLabel(buf, t)
	}
	buf.WriteString("  </g>\n")
}

func (r *svgRenderer) thumbnail(t schema.Tile) (string, bool) {
	if r.loader == nil || t.Path == "" {
		return "", false
	}
	img, err := r.loader(t.Path)
	if err == nil {
		var uri string
		if uri, err = thumbnailURI(img, t.Width, t.Height, r.scale); err == nil {
			return uri, true
		}
	}
	if r.onError != nil {
		r.onError(t.Path, err)
	}
	return "", false
}

func renderLabel(buf *bytes.Buffer, t schema.Tile) {
	label := t.Label()
	if label == "" {
		return
	}
	band := labelFontSize + 2*labelPadding
	if band > t.Height {
		return
	}
	fmt.Fprintf(buf, `    <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="black" fill-opacity="%.2f"/>`+"\n",
		t.X, t.Y+t.Height-band, t.Width, band, labelBandOpacity)
	fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" font-family="sans-serif" font-size="%.0f" fill="white">%s</text>`+"\n",
		t.X+labelPadding, t.Y+t.Height-labelPadding-2, labelFontSize, escapeXML(truncateLabel(label, t.Width)))
}

func tileID(t schema.Tile) string {
	if t.ID != "" {
		return t.ID
	}
	return fmt.Sprint(t.Index)
}
