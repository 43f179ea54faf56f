package layout

import (
	"fmt"
	"math"

	"github.com/matzehuels/gallery/pkg/errors"
)

// LastRowPolicy decides how the final row of a justified layout is scored
// and scaled.
type LastRowPolicy int

const (
	// LastRowJustify scores the last row like every other row (scaled by
	// RowConfig.LastRowWeight) and stretches it to the full container width.
	LastRowJustify LastRowPolicy = iota

	// LastRowNatural exempts a sparse last row from the height penalty and
	// draws it at the target height without stretching. A last row that
	// would overflow at the target height is scaled down to fit the width.
	LastRowNatural
)

// String returns the policy name used in configuration files and flags.
func (p LastRowPolicy) String() string {
	switch p {
	case LastRowJustify:
		return "justify"
	case LastRowNatural:
		return "natural"
	default:
		return fmt.Sprintf("LastRowPolicy(%d)", int(p))
	}
}

// ParseLastRowPolicy maps a policy name to its value.
func ParseLastRowPolicy(s string) (LastRowPolicy, error) {
	switch s {
	case "", "justify":
		return LastRowJustify, nil
	case "natural":
		return LastRowNatural, nil
	default:
		return 0, errors.New(errors.ErrCodeInvalidConfig, "invalid last row policy %q (must be justify or natural)", s)
	}
}

// DefaultLastRowWeight is the cost multiplier applied to the final row when
// RowConfig.LastRowWeight is zero. It halves the height penalty so a short
// last row is cheaper than the rows above it.
const DefaultLastRowWeight = 0.5

// RowConfig configures a justified row layout.
type RowConfig struct {
	ContainerWidth  float64
	Margin          float64 // Gap between neighbouring images and between rows
	TargetRowHeight float64

	// LimitNodeSearch caps how many images one row may hold during the
	// partition search. Zero selects EstimateNodeSearch; negative values
	// are rejected.
	LimitNodeSearch int

	LastRow LastRowPolicy

	// LastRowWeight scales the final row's cost under LastRowJustify.
	// Zero selects DefaultLastRowWeight; values outside (0, 1] are rejected.
	LastRowWeight float64
}

// resolve validates the configuration and fills in derived defaults.
func (c RowConfig) resolve() (RowConfig, error) {
	if !positive(c.ContainerWidth) {
		return c, errors.New(errors.ErrCodeInvalidConfig, "container width must be positive, got %g", c.ContainerWidth)
	}
	if !positive(c.TargetRowHeight) {
		return c, errors.New(errors.ErrCodeInvalidConfig, "target row height must be positive, got %g", c.TargetRowHeight)
	}
	if !nonNegative(c.Margin) {
		return c, errors.New(errors.ErrCodeInvalidConfig, "margin must not be negative, got %g", c.Margin)
	}
	if c.LimitNodeSearch < 0 {
		return c, errors.New(errors.ErrCodeInvalidConfig, "limit node search must be at least 1, got %d", c.LimitNodeSearch)
	}
	if c.LastRow != LastRowJustify && c.LastRow != LastRowNatural {
		return c, errors.New(errors.ErrCodeInvalidConfig, "unknown last row policy %d", int(c.LastRow))
	}
	if c.LastRowWeight < 0 || c.LastRowWeight > 1 || math.IsNaN(c.LastRowWeight) {
		return c, errors.New(errors.ErrCodeInvalidConfig, "last row weight must be in (0, 1], got %g", c.LastRowWeight)
	}

	if c.LimitNodeSearch == 0 {
		c.LimitNodeSearch = EstimateNodeSearch(c.ContainerWidth, c.TargetRowHeight)
	}
	if c.LastRowWeight == 0 {
		c.LastRowWeight = DefaultLastRowWeight
	}
	return c, nil
}

// ColumnConfig configures a masonry column layout.
type ColumnConfig struct {
	ContainerWidth float64
	Margin         float64 // Gap between columns and between stacked images
	Columns        int
}

// ColumnWidth returns the fixed width shared by every column.
func (c ColumnConfig) ColumnWidth() float64 {
	if c.Columns < 1 {
		return 0
	}
	return (c.ContainerWidth - float64(c.Columns-1)*c.Margin) / float64(c.Columns)
}

func (c ColumnConfig) validate() error {
	if !positive(c.ContainerWidth) {
		return errors.New(errors.ErrCodeInvalidConfig, "container width must be positive, got %g", c.ContainerWidth)
	}
	if !nonNegative(c.Margin) {
		return errors.New(errors.ErrCodeInvalidConfig, "margin must not be negative, got %g", c.Margin)
	}
	if c.Columns < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "columns must be at least 1, got %d", c.Columns)
	}
	if w := c.ColumnWidth(); !(w > 0) {
		return errors.New(errors.ErrCodeInvalidConfig,
			"margins leave no room for %d columns in width %g", c.Columns, c.ContainerWidth)
	}
	return nil
}

func positive(v float64) bool    { return v > 0 && !math.IsInf(v, 0) }
func nonNegative(v float64) bool { return v >= 0 && !math.IsInf(v, 0) }
