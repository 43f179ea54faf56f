package pipeline

import (
	"encoding/json"

	"github.com/matzehuels/gallery/pkg/cache"
	"github.com/matzehuels/gallery/pkg/layout"
	"github.com/matzehuels/gallery/pkg/schema"
)

// ComputeLayout runs the layout engine and wraps the placements in a layout
// document. It performs no caching; see [Runner.ComputeLayout].
func ComputeLayout(images []layout.Image, opts Options) (schema.Layout, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return schema.Layout{}, err
	}

	engineOpts := opts.LayoutOptions()
	res, err := layout.Compute(images, engineOpts)
	if err != nil {
		return schema.Layout{}, err
	}

	l := schema.FromResult(res, images, engineOpts)
	l.Title = opts.Title
	return l, nil
}

// HashImages returns the content hash of an image list. Two lists hash
// equally only if every dimension, ID and metadata value matches in order.
func HashImages(images []layout.Image) (string, error) {
	data, err := json.Marshal(images)
	if err != nil {
		return "", err
	}
	return cache.Hash(data), nil
}
