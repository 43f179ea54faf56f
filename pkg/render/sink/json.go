package sink

import (
	"encoding/json"

	"github.com/matzehuels/gallery/pkg/schema"
)

// JSONOption configures RenderJSON.
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	compact bool
	title   string
}

// WithCompactJSON disables indentation.
func WithCompactJSON() JSONOption { return func(r *jsonRenderer) { r.compact = true } }

// WithJSONTitle overrides the document title.
func WithJSONTitle(title string) JSONOption { return func(r *jsonRenderer) { r.title = title } }

// RenderJSON exports the layout document. The output can be read back with
// schema.Unmarshal and rendered again without recomputing the layout.
func RenderJSON(l schema.Layout, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}
	if r.title != "" {
		l.Title = r.title
	}
	if r.compact {
		return json.Marshal(l)
	}
	return schema.Marshal(l)
}
