package layout

import (
	"math"

	"github.com/matzehuels/gallery/pkg/errors"
)

// Metadata holds caller-defined attributes that travel with an image
// untouched (source path, caption, alt text, ...).
type Metadata map[string]any

// Image is one input to a layout pass. Only the ratio of Width to Height
// matters to the engine; both must be strictly positive.
type Image struct {
	ID     string
	Width  float64
	Height float64
	Meta   Metadata
}

// AspectRatio returns Width / Height.
func (img Image) AspectRatio() float64 { return img.Width / img.Height }

// Placement positions one image inside the container. Placements are
// returned in the same order as the input images.
type Placement struct {
	Index  int // Position of the source image in the input sequence
	Left   float64
	Top    float64
	Width  float64
	Height float64

	// Row is the zero-based row in a justified layout, or -1.
	Row int
	// Column is the zero-based column in a masonry layout, or -1.
	Column int

	// ContainerHeight is the overall height of the laid out gallery. The same
	// value is stamped on every placement of a pass.
	ContainerHeight float64
}

// Right returns the x coordinate of the placement's right edge.
func (p Placement) Right() float64 { return p.Left + p.Width }

// Bottom returns the y coordinate of the placement's bottom edge.
func (p Placement) Bottom() float64 { return p.Top + p.Height }

// validateImages checks every image and returns the aspect ratios.
// The first malformed image aborts the pass.
func validateImages(images []Image) ([]float64, error) {
	ratios := make([]float64, len(images))
	for i, img := range images {
		// Negated comparisons also reject NaN.
		if !(img.Width > 0) || !(img.Height > 0) || math.IsInf(img.Width, 0) || math.IsInf(img.Height, 0) {
			return nil, errors.InvalidImage(i, img.Width, img.Height)
		}
		ratios[i] = img.AspectRatio()
	}
	return ratios, nil
}

// Neighbors returns the indices of the images before and after index i in a
// sequence of n images, or -1 where there is none. Views use it to hand
// previous/next context to click handlers.
func Neighbors(n, i int) (prev, next int) {
	prev, next = -1, -1
	if i < 0 || i >= n {
		return prev, next
	}
	if i > 0 {
		prev = i - 1
	}
	if i < n-1 {
		next = i + 1
	}
	return prev, next
}
