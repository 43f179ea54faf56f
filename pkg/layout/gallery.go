package layout

import (
	"github.com/matzehuels/gallery/pkg/errors"
)

// Mode selects the layout algorithm.
type Mode string

const (
	ModeRows    Mode = "rows"
	ModeColumns Mode = "columns"
)

// ParseMode maps a mode name to its value. The empty string selects rows.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeRows:
		return ModeRows, nil
	case ModeColumns:
		return ModeColumns, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidMode, "invalid mode %q (must be rows or columns)", s)
	}
}

// Options is the mode-independent configuration consumed by Compute.
// Fields that do not apply to the selected mode are ignored.
type Options struct {
	Mode           Mode
	ContainerWidth float64
	Margin         float64

	// Rows
	TargetRowHeight float64
	LimitNodeSearch int
	LastRow         LastRowPolicy
	LastRowWeight   float64

	// Columns; zero selects DefaultColumns(ContainerWidth).
	Columns int
}

// RowConfig extracts the row layout configuration.
func (o Options) RowConfig() RowConfig {
	return RowConfig{
		ContainerWidth:  o.ContainerWidth,
		Margin:          o.Margin,
		TargetRowHeight: o.TargetRowHeight,
		LimitNodeSearch: o.LimitNodeSearch,
		LastRow:         o.LastRow,
		LastRowWeight:   o.LastRowWeight,
	}
}

// ColumnConfig extracts the column layout configuration.
func (o Options) ColumnConfig() ColumnConfig {
	cols := o.Columns
	if cols == 0 {
		cols = DefaultColumns(o.ContainerWidth)
	}
	return ColumnConfig{
		ContainerWidth: o.ContainerWidth,
		Margin:         o.Margin,
		Columns:        cols,
	}
}

// Result is the outcome of one layout pass.
type Result struct {
	Mode            Mode
	ContainerWidth  float64
	ContainerHeight float64
	Placements      []Placement
}

// Compute dispatches to Rows or Columns according to opts.Mode.
func Compute(images []Image, opts Options) (Result, error) {
	mode, err := ParseMode(string(opts.Mode))
	if err != nil {
		return Result{}, err
	}

	res := Result{Mode: mode, ContainerWidth: opts.ContainerWidth}
	switch mode {
	case ModeColumns:
		res.Placements, res.ContainerHeight, err = Columns(images, opts.ColumnConfig())
	default:
		res.Placements, err = Rows(images, opts.RowConfig())
		if err == nil && len(res.Placements) > 0 {
			res.ContainerHeight = res.Placements[0].ContainerHeight
		}
	}
	if err != nil {
		return Result{}, err
	}
	return res, nil
}

// RowCount returns the number of rows in a justified result, or zero for a
// column result.
func (r Result) RowCount() int {
	n := 0
	for _, p := range r.Placements {
		n = max(n, p.Row+1)
	}
	return n
}
