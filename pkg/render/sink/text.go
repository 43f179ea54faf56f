package sink

import (
	"bytes"
	"encoding/xml"
)

const (
	labelFontSize  = 12.0
	labelCharWidth = 0.55 // average glyph width relative to font size
	labelPadding   = 4.0
	labelMinChars  = 3
)

// truncateLabel shortens label to fit a tile of the given width.
func truncateLabel(label string, width float64) string {
	avail := width - 2*labelPadding
	maxChars := max(labelMinChars, int(avail/(labelFontSize*labelCharWidth)))

	runes := []rune(label)
	if len(runes) <= maxChars {
		return label
	}
	return string(runes[:maxChars-2]) + ".."
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
