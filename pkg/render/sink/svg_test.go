package sink

import (
	"errors"
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/gallery/pkg/schema"
)

func sampleLayout() schema.Layout {
	return schema.Layout{
		Version: schema.Version,
		Mode:    "rows",
		Title:   "Trip <2024>",
		Width:   400,
		Height:  210,
		Margin:  10,
		Tiles: []schema.Tile{
			{ID: "a", Index: 0, X: 0, Y: 0, Width: 195, Height: 100, Path: "a.jpg", Caption: "Beach"},
			{ID: "b", Index: 1, X: 205, Y: 0, Width: 195, Height: 100, Path: "b.jpg"},
			{ID: "c", Index: 2, X: 0, Y: 110, Width: 400, Height: 100, Alt: "sunset & sea"},
		},
	}
}

func solidLoader(path string) (image.Image, error) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 4))
	for x := 0; x < 8; x++ {
		for y := 0; y < 4; y++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	return img, nil
}

func TestRenderSVG(t *testing.T) {
	out := string(RenderSVG(sampleLayout()))

	assert.True(t, strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 400.0 210.0" width="400" height="210">`))
	assert.True(t, strings.HasSuffix(out, "</svg>\n"))
	assert.Contains(t, out, "<title>Trip &lt;2024&gt;</title>")
	assert.Equal(t, 3, strings.Count(out, `class="tile"`))
	assert.Contains(t, out, `<rect x="205.00" y="0.00" width="195.00" height="100.00"`)
	assert.Contains(t, out, "<desc>sunset &amp; sea</desc>")
	assert.NotContains(t, out, "<text")
	assert.NotContains(t, out, "<script")
}

func TestRenderSVGNeighbours(t *testing.T) {
	out := string(RenderSVG(sampleLayout()))

	assert.Contains(t, out, `<g class="tile" id="tile-a" data-index="0" data-next="1">`)
	assert.Contains(t, out, `<g class="tile" id="tile-b" data-index="1" data-prev="0" data-next="2">`)
	assert.Contains(t, out, `<g class="tile" id="tile-c" data-index="2" data-prev="1">`)
}

func TestRenderSVGOptions(t *testing.T) {
	t.Run("labels", func(t *testing.T) {
		out := string(RenderSVG(sampleLayout(), WithLabels()))
		assert.Contains(t, out, ">Beach</text>")
		assert.Contains(t, out, ">b.jpg</text>")
		// Tile c has neither caption nor path, so its ID is used.
		assert.Contains(t, out, ">c</text>")
	})

	t.Run("background", func(t *testing.T) {
		out := string(RenderSVG(sampleLayout(), WithBackground("#fff")))
		assert.Contains(t, out, `<rect width="100%" height="100%" fill="#fff"/>`)
	})

	t.Run("interaction", func(t *testing.T) {
		out := string(RenderSVG(sampleLayout(), WithInteraction()))
		assert.Contains(t, out, "<style>")
		assert.Contains(t, out, "gallery:select")
	})
}

func TestRenderSVGThumbnails(t *testing.T) {
	out := string(RenderSVG(sampleLayout(), WithThumbnails(solidLoader, 0.5)))

	// Tiles a and b have paths; c falls back to a placeholder.
	assert.Equal(t, 2, strings.Count(out, `<image href="data:image/jpeg;base64,`))
	assert.Equal(t, 1, strings.Count(out, `fill="`+placeholderFill+`"`))
}

func TestRenderSVGThumbnailErrors(t *testing.T) {
	failing := func(path string) (image.Image, error) {
		return nil, errors.New("boom")
	}

	var failed []string
	out := string(RenderSVG(sampleLayout(),
		WithThumbnails(failing, 1),
		WithThumbnailErrors(func(path string, err error) { failed = append(failed, path) }),
	))

	assert.Equal(t, []string{"a.jpg", "b.jpg"}, failed)
	assert.NotContains(t, out, "<image")
	assert.Equal(t, 3, strings.Count(out, `fill="`+placeholderFill+`"`))
}

func TestRenderSVGEmpty(t *testing.T) {
	out := string(RenderSVG(schema.Layout{Width: 300}))
	assert.Contains(t, out, `viewBox="0 0 300.0 0.0"`)
	assert.NotContains(t, out, "tile")
}

func TestTruncateLabel(t *testing.T) {
	tests := []struct {
		label string
		width float64
		want  string
	}{
		{"short", 200, "short"},
		{"a-very-long-file-name.jpeg", 80, "a-very-l.."},
		{"abcdef", 1, "a.."},
		{"日本語のキャプション", 60, "日本語のキ.."},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, truncateLabel(tt.label, tt.width), "truncateLabel(%q, %v)", tt.label, tt.width)
	}
}

func TestThumbnailURI(t *testing.T) {
	img, _ := solidLoader("")
	uri, err := thumbnailURI(img, 3.2, 0.1, 1)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(uri, "data:image/jpeg;base64,"))
}
