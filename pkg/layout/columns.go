package layout

// Columns computes a masonry layout. Images are processed in input order and
// each is appended to the column with the smallest accumulated height (ties
// go to the lowest column index). Every image is scaled to the shared column
// width, so only heights vary.
//
// The second return value is the overall container height: the tallest
// column without a trailing margin below its last image.
func Columns(images []Image, cfg ColumnConfig) ([]Placement, float64, error) {
	if err := cfg.validate(); err != nil {
		return nil, 0, err
	}
	ratios, err := validateImages(images)
	if err != nil {
		return nil, 0, err
	}

	colWidth := cfg.ColumnWidth()
	running := make([]float64, cfg.Columns)
	placements := make([]Placement, len(images))

	for k, ar := range ratios {
		col := shortestColumn(running)
		h := colWidth / ar
		placements[k] = Placement{
			Index:  k,
			Left:   float64(col) * (colWidth + cfg.Margin),
			Top:    running[col],
			Width:  colWidth,
			Height: h,
			Row:    -1,
			Column: col,
		}
		running[col] += h + cfg.Margin
	}

	height := 0.0
	if len(images) > 0 {
		height = running[tallestColumn(running)] - cfg.Margin
	}
	for k := range placements {
		placements[k].ContainerHeight = height
	}
	return placements, height, nil
}

// DefaultColumns picks a column count for a container width using the
// breakpoints 500, 900 and 1500.
func DefaultColumns(containerWidth float64) int {
	switch {
	case containerWidth >= 1500:
		return 4
	case containerWidth >= 900:
		return 3
	case containerWidth >= 500:
		return 2
	default:
		return 1
	}
}

func shortestColumn(heights []float64) int {
	best := 0
	for i, h := range heights {
		if h < heights[best] {
			best = i
		}
	}
	return best
}

func tallestColumn(heights []float64) int {
	best := 0
	for i, h := range heights {
		if h > heights[best] {
			best = i
		}
	}
	return best
}
