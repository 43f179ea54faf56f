package layout

import "math"

// Rows computes a justified layout. Images are split into rows whose
// heights stay as close as possible to cfg.TargetRowHeight; every row except
// possibly the last (see LastRowPolicy) is scaled so that its images plus the
// margins between them span exactly cfg.ContainerWidth.
//
// Aspect ratios are preserved exactly: each image in a row gets the row's
// height and a width of height × aspect ratio.
//
// Rows returns an *errors.Error with code INVALID_CONFIG for a malformed
// configuration and INVALID_IMAGE for an image with a non-positive side. An
// empty image list yields an empty, non-nil slice.
func Rows(images []Image, cfg RowConfig) ([]Placement, error) {
	cfg, err := cfg.resolve()
	if err != nil {
		return nil, err
	}
	ratios, err := validateImages(images)
	if err != nil {
		return nil, err
	}

	s := newRowSolver(ratios, cfg)
	bounds, _ := s.solve()
	return s.place(bounds), nil
}

// Partition returns the row boundaries chosen by Rows and the total cost of
// that partition. Boundaries start at 0 and end at len(images); row r holds
// images [bounds[r], bounds[r+1]).
func Partition(images []Image, cfg RowConfig) ([]int, float64, error) {
	cfg, err := cfg.resolve()
	if err != nil {
		return nil, 0, err
	}
	ratios, err := validateImages(images)
	if err != nil {
		return nil, 0, err
	}
	bounds, total := newRowSolver(ratios, cfg).solve()
	return bounds, total, nil
}

// PartitionCost scores an arbitrary partition with the same cost function
// the planner minimises. It reports false if bounds is not a valid
// partition under cfg's lookahead bound.
func PartitionCost(images []Image, cfg RowConfig, bounds []int) (float64, bool, error) {
	cfg, err := cfg.resolve()
	if err != nil {
		return 0, false, err
	}
	ratios, err := validateImages(images)
	if err != nil {
		return 0, false, err
	}
	s := newRowSolver(ratios, cfg)
	if len(bounds) == 0 || bounds[0] != 0 || bounds[len(bounds)-1] != s.n {
		return 0, false, nil
	}

	var total float64
	for r := 1; r < len(bounds); r++ {
		i, j := bounds[r-1], bounds[r]
		if j-i < 1 || j-i > cfg.LimitNodeSearch {
			return 0, false, nil
		}
		c, ok := s.cost(i, j)
		if !ok {
			return 0, false, nil
		}
		total += c
	}
	return total, true, nil
}

// rowSolver holds the working state of one row layout pass.
type rowSolver struct {
	cfg    RowConfig
	ratios []float64
	prefix []float64 // prefix[k] is the sum of ratios[:k]
	n      int
}

func newRowSolver(ratios []float64, cfg RowConfig) *rowSolver {
	prefix := make([]float64, len(ratios)+1)
	for i, r := range ratios {
		prefix[i+1] = prefix[i] + r
	}
	return &rowSolver{cfg: cfg, ratios: ratios, prefix: prefix, n: len(ratios)}
}

// fillHeight is the height at which images [i, j) plus their inner margins
// span the container width exactly.
func (s *rowSolver) fillHeight(i, j int) float64 {
	inner := float64(j-i-1) * s.cfg.Margin
	return (s.cfg.ContainerWidth - inner) / (s.prefix[j] - s.prefix[i])
}

// cost is the weight of the edge i→j. It reports false when the margins
// alone are wider than the container, so the row cannot exist.
func (s *rowSolver) cost(i, j int) (float64, bool) {
	h := s.fillHeight(i, j)
	if !(h > 0) {
		return 0, false
	}
	target := s.cfg.TargetRowHeight
	dev := (h - target) / target
	c := dev * dev

	if j == s.n {
		switch s.cfg.LastRow {
		case LastRowJustify:
			c *= s.cfg.LastRowWeight
		case LastRowNatural:
			if h >= target {
				c = 0
			}
		}
	}
	return c, true
}

// rowHeight is the height images [i, j) are drawn at.
func (s *rowSolver) rowHeight(i, j int) float64 {
	h := s.fillHeight(i, j)
	if j == s.n && s.cfg.LastRow == LastRowNatural && h > s.cfg.TargetRowHeight {
		return s.cfg.TargetRowHeight
	}
	return h
}

// solve runs the shortest path search over row boundaries and returns the
// boundaries of the cheapest partition with its total cost. Ties keep the
// earliest start, which favours longer rows.
func (s *rowSolver) solve() ([]int, float64) {
	best := make([]float64, s.n+1)
	prev := make([]int, s.n+1)
	for j := 1; j <= s.n; j++ {
		best[j] = math.Inf(1)
		for i := max(0, j-s.cfg.LimitNodeSearch); i < j; i++ {
			if math.IsInf(best[i], 1) {
				continue
			}
			c, ok := s.cost(i, j)
			if !ok {
				continue
			}
			if v := best[i] + c; v < best[j] {
				best[j] = v
				prev[j] = i
			}
		}
	}

	// A single-image row is always feasible, so every node is reachable.
	rows := 0
	for j := s.n; j > 0; j = prev[j] {
		rows++
	}
	bounds := make([]int, rows+1)
	for j, k := s.n, rows; k >= 0; k-- {
		bounds[k] = j
		j = prev[j]
	}
	return bounds, best[s.n]
}

// place assigns pixel geometry to every image given the row boundaries.
func (s *rowSolver) place(bounds []int) []Placement {
	placements := make([]Placement, s.n)
	margin := s.cfg.Margin

	var top float64
	for r := 1; r < len(bounds); r++ {
		i, j := bounds[r-1], bounds[r]
		h := s.rowHeight(i, j)

		var left float64
		for k := i; k < j; k++ {
			w := s.ratios[k] * h
			placements[k] = Placement{
				Index:  k,
				Left:   left,
				Top:    top,
				Width:  w,
				Height: h,
				Row:    r - 1,
				Column: -1,
			}
			left += w + margin
		}
		top += h + margin
	}

	height := 0.0
	if s.n > 0 {
		height = top - margin
	}
	for k := range placements {
		placements[k].ContainerHeight = height
	}
	return placements
}
