package layout

import "math"

// Tuning constants for EstimateNodeSearch. They bound search cost and are
// not a correctness requirement.
const (
	// typicalAspectRatio is the average width/height of a laid out image.
	typicalAspectRatio = 1.5
	// nodeSearchSlack covers rows packed with unusually narrow images.
	nodeSearchSlack = 8
	// narrowContainerWidth is the width below which rows stay tiny and a
	// lookahead of MinNodeSearch suffices.
	narrowContainerWidth = 450

	MinNodeSearch = 2
	MaxNodeSearch = 64
)

// EstimateNodeSearch returns a lookahead bound for the row partition search:
// the number of typical images that fit in one row at the target height, plus
// some slack, clamped to [MinNodeSearch, MaxNodeSearch].
//
// The result never decreases as containerWidth grows and never increases as
// targetRowHeight grows. Non-positive inputs yield MinNodeSearch.
func EstimateNodeSearch(containerWidth, targetRowHeight float64) int {
	if !(containerWidth > 0) || !(targetRowHeight > 0) || containerWidth < narrowContainerWidth {
		return MinNodeSearch
	}
	n := math.Round(containerWidth/targetRowHeight/typicalAspectRatio) + nodeSearchSlack
	if n >= MaxNodeSearch {
		return MaxNodeSearch
	}
	return max(int(n), MinNodeSearch)
}
