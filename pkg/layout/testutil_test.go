package layout

import "math/rand/v2"

const tolerance = 1e-6

// fromRatios builds images with the given aspect ratios and height 100.
func fromRatios(ratios ...float64) []Image {
	imgs := make([]Image, len(ratios))
	for i, r := range ratios {
		imgs[i] = Image{Width: r * 100, Height: 100}
	}
	return imgs
}

// randomImages returns n images with aspect ratios between 0.4 and 2.5.
func randomImages(rng *rand.Rand, n int) []Image {
	imgs := make([]Image, n)
	for i := range imgs {
		imgs[i] = Image{Width: 40 + rng.Float64()*210, Height: 100}
	}
	return imgs
}

// rowsOf groups placements by their Row field.
func rowsOf(placements []Placement) [][]Placement {
	var rows [][]Placement
	for _, p := range placements {
		for len(rows) <= p.Row {
			rows = append(rows, nil)
		}
		rows[p.Row] = append(rows[p.Row], p)
	}
	return rows
}
