// Package layout packs images of heterogeneous aspect ratio into a gallery.
//
// Two layouts are provided:
//
//   - [Rows] builds a justified layout: images are partitioned into rows that
//     each fill the container width exactly while staying as close as possible
//     to a target row height.
//   - [Columns] builds a masonry layout: images are dropped, in order, into the
//     currently shortest of a fixed number of equal-width columns.
//
// # Row Partitioning
//
// The row layout treats the positions between images as nodes 0..N of a DAG.
// An edge i→j stands for "a row holding images [i, j)" and costs the squared
// relative deviation between that row's fill height and the target height.
// The cheapest path from 0 to N is the partition. It is found by dynamic
// programming over prefix costs, so the result is globally optimal for the
// given lookahead bound and runs in O(N · LimitNodeSearch):
//
//	best[0] = 0
//	best[j] = min over i in [j-limit, j) of best[i] + cost(i, j)
//
// The lookahead bound defaults to [EstimateNodeSearch] when the caller leaves
// RowConfig.LimitNodeSearch at zero.
//
// # Last Row
//
// The final row is often sparse. [LastRowJustify] scores it like any other row
// (scaled by RowConfig.LastRowWeight, half by default) and stretches it to the full width.
// [LastRowNatural] leaves a sparse final row at the target height instead, so
// two small thumbnails are not blown up to fill a wide container.
//
// # Determinism
//
// Every call recomputes from scratch, allocates its own working arrays and
// returns fresh placements in input order. The package holds no state and is
// safe for concurrent use with distinct inputs.
//
// # Example
//
//	imgs := []layout.Image{{Width: 400, Height: 300}, {Width: 300, Height: 400}}
//	placements, err := layout.Rows(imgs, layout.RowConfig{
//	    ContainerWidth:  1000,
//	    TargetRowHeight: 200,
//	    Margin:          4,
//	})
package layout
