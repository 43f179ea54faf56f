package layout

// SearchEdge is one candidate row considered by the partition search.
type SearchEdge struct {
	From, To int     // The row holds images [From, To)
	Height   float64 // Fill height of the row
	Cost     float64
	Chosen   bool // Part of the cheapest path
}

// SearchGraph is an explicit view of the row partition DAG. Rows never builds
// it; it exists for debugging and visualisation of why a partition was chosen.
type SearchGraph struct {
	Nodes int // Node count: len(images) + 1
	Edges []SearchEdge
	Path  []int // Chosen row boundaries, as returned by Partition
	Cost  float64
	Limit int // Effective lookahead bound
}

// BuildSearchGraph enumerates every feasible edge under cfg's lookahead bound
// and marks the ones on the cheapest path.
func BuildSearchGraph(images []Image, cfg RowConfig) (SearchGraph, error) {
	cfg, err := cfg.resolve()
	if err != nil {
		return SearchGraph{}, err
	}
	ratios, err := validateImages(images)
	if err != nil {
		return SearchGraph{}, err
	}

	s := newRowSolver(ratios, cfg)
	bounds, total := s.solve()

	chosen := make(map[[2]int]bool, len(bounds))
	for r := 1; r < len(bounds); r++ {
		chosen[[2]int{bounds[r-1], bounds[r]}] = true
	}

	g := SearchGraph{Nodes: s.n + 1, Path: bounds, Cost: total, Limit: cfg.LimitNodeSearch}
	for i := 0; i < s.n; i++ {
		for j := i + 1; j <= min(s.n, i+cfg.LimitNodeSearch); j++ {
			c, ok := s.cost(i, j)
			if !ok {
				continue
			}
			g.Edges = append(g.Edges, SearchEdge{
				From:   i,
				To:     j,
				Height: s.fillHeight(i, j),
				Cost:   c,
				Chosen: chosen[[2]int{i, j}],
			})
		}
	}
	return g, nil
}
