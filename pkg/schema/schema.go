package schema

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/matzehuels/gallery/pkg/errors"
	"github.com/matzehuels/gallery/pkg/layout"
)

// Version is the current layout document version.
const Version = 1

// Metadata keys understood by the renderers.
const (
	MetaPath    = "path"
	MetaCaption = "caption"
	MetaAlt     = "alt"
)

// =============================================================================
// Layout - Serialized Layout Pass
// =============================================================================

// Layout is the serialized result of one layout pass.
//
// Mode-specific fields are only populated for their mode:
//
//	Rows ("rows"):
//	  - TargetRowHeight, LimitNodeSearch, LastRow
//	  - RowCount: number of rows
//
//	Columns ("columns"):
//	  - Columns: column count
type Layout struct {
	Version int    `json:"version"`
	Mode    string `json:"mode"`
	Title   string `json:"title,omitempty"`

	// Frame
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Margin float64 `json:"margin"`

	// Rows-specific
	TargetRowHeight float64 `json:"target_row_height,omitempty"`
	LimitNodeSearch int     `json:"limit_node_search,omitempty"`
	LastRow         string  `json:"last_row,omitempty"`
	RowCount        int     `json:"row_count,omitempty"`

	// Columns-specific
	Columns int `json:"columns,omitempty"`

	Tiles []Tile `json:"tiles"`
}

// IsRows reports whether this is a justified row layout.
func (l *Layout) IsRows() bool { return l.Mode == string(layout.ModeRows) }

// IsColumns reports whether this is a masonry column layout.
func (l *Layout) IsColumns() bool { return l.Mode == string(layout.ModeColumns) }

// =============================================================================
// Tile - Positioned Image
// =============================================================================

// Tile is one positioned image.
type Tile struct {
	ID     string  `json:"id,omitempty"`
	Index  int     `json:"index"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Row    int     `json:"row"`
	Column int     `json:"column"`

	Path    string         `json:"path,omitempty"`
	Caption string         `json:"caption,omitempty"`
	Alt     string         `json:"alt,omitempty"`
	Meta    map[string]any `json:"meta,omitempty"`
}

// Label returns the caption, falling back to the path and then the ID.
func (t Tile) Label() string {
	switch {
	case t.Caption != "":
		return t.Caption
	case t.Path != "":
		return t.Path
	default:
		return t.ID
	}
}

// =============================================================================
// Conversion
// =============================================================================

// FromResult builds a Layout from an engine result and the images that
// produced it. images must be the slice passed to the engine.
func FromResult(res layout.Result, images []layout.Image, opts layout.Options) Layout {
	l := Layout{
		Version: Version,
		Mode:    string(res.Mode),
		Width:   res.ContainerWidth,
		Height:  res.ContainerHeight,
		Margin:  opts.Margin,
		Tiles:   make([]Tile, len(res.Placements)),
	}

	switch res.Mode {
	case layout.ModeColumns:
		l.Columns = opts.ColumnConfig().Columns
	default:
		l.TargetRowHeight = opts.TargetRowHeight
		l.LimitNodeSearch = opts.LimitNodeSearch
		if l.LimitNodeSearch == 0 {
			l.LimitNodeSearch = layout.EstimateNodeSearch(opts.ContainerWidth, opts.TargetRowHeight)
		}
		l.LastRow = opts.LastRow.String()
		l.RowCount = res.RowCount()
	}

	for i, p := range res.Placements {
		t := Tile{
			Index:  p.Index,
			X:      p.Left,
			Y:      p.Top,
			Width:  p.Width,
			Height: p.Height,
			Row:    p.Row,
			Column: p.Column,
		}
		if p.Index < len(images) {
			img := images[p.Index]
			t.ID = img.ID
			t.Path, t.Caption, t.Alt, t.Meta = splitMeta(img.Meta)
		}
		l.Tiles[i] = t
	}
	return l
}

// splitMeta lifts the well-known keys out of an image's metadata.
func splitMeta(meta layout.Metadata) (path, caption, alt string, rest map[string]any) {
	for k, v := range meta {
		s, isString := v.(string)
		switch {
		case k == MetaPath && isString:
			path = s
		case k == MetaCaption && isString:
			caption = s
		case k == MetaAlt && isString:
			alt = s
		default:
			if rest == nil {
				rest = make(map[string]any)
			}
			rest[k] = v
		}
	}
	return path, caption, alt, rest
}

// Result converts the layout back into engine placements.
func (l Layout) Result() layout.Result {
	res := layout.Result{
		Mode:            layout.Mode(l.Mode),
		ContainerWidth:  l.Width,
		ContainerHeight: l.Height,
		Placements:      make([]layout.Placement, len(l.Tiles)),
	}
	for i, t := range l.Tiles {
		res.Placements[i] = layout.Placement{
			Index:           t.Index,
			Left:            t.X,
			Top:             t.Y,
			Width:           t.Width,
			Height:          t.Height,
			Row:             t.Row,
			Column:          t.Column,
			ContainerHeight: l.Height,
		}
	}
	return res
}

// =============================================================================
// Serialization API
// =============================================================================

// Marshal serializes a Layout to pretty-printed JSON bytes.
func Marshal(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// Unmarshal deserializes JSON bytes into a Layout and checks that the
// document is usable.
func Unmarshal(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "unmarshal layout")
	}
	if l.Version == 0 {
		l.Version = Version
	}
	if l.Version > Version {
		return Layout{}, errors.New(errors.ErrCodeUnsupported, "layout version %d is newer than %d", l.Version, Version)
	}
	if _, err := layout.ParseMode(l.Mode); err != nil {
		return Layout{}, err
	}
	if l.Mode == "" {
		l.Mode = string(layout.ModeRows)
	}
	if !(l.Width > 0) {
		return Layout{}, errors.New(errors.ErrCodeInvalidFormat, "layout width must be positive")
	}
	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := Marshal(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return Unmarshal(data)
}
