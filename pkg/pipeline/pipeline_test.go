package pipeline

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/gallery/pkg/cache"
	"github.com/matzehuels/gallery/pkg/errors"
	"github.com/matzehuels/gallery/pkg/layout"
	"github.com/matzehuels/gallery/pkg/manifest"
	"github.com/matzehuels/gallery/pkg/observability"
)

func squares(n int) []layout.Image {
	imgs := make([]layout.Image, n)
	for i := range imgs {
		imgs[i] = layout.Image{Width: 100, Height: 100}
	}
	return imgs
}

// rowOpts lays five squares out as a single 200px row.
func rowOpts() Options {
	return Options{
		Mode:            "rows",
		Width:           1000,
		TargetRowHeight: 200,
		LimitNodeSearch: 5,
	}
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %s", tt.format, errors.GetCode(err))
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestSetLayoutDefaults(t *testing.T) {
	var opts Options
	opts.SetLayoutDefaults()

	if opts.Mode != DefaultMode {
		t.Errorf("Mode = %q, want %q", opts.Mode, DefaultMode)
	}
	if opts.Width != DefaultWidth {
		t.Errorf("Width = %v, want %v", opts.Width, DefaultWidth)
	}
	if opts.TargetRowHeight != DefaultTargetRowHeight {
		t.Errorf("TargetRowHeight = %v, want %v", opts.TargetRowHeight, DefaultTargetRowHeight)
	}
	if opts.LastRow != DefaultLastRow {
		t.Errorf("LastRow = %q, want %q", opts.LastRow, DefaultLastRow)
	}
	if opts.Logger == nil {
		t.Error("Logger should be set")
	}
	// Margin stays zero: a gapless grid is a valid choice.
	if opts.Margin != 0 {
		t.Errorf("Margin = %v, want 0", opts.Margin)
	}
}

func TestValidateForLayout(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"defaults", Options{}, ""},
		{"columns", Options{Mode: "columns", Columns: 3}, ""},
		{"bad mode", Options{Mode: "grid"}, errors.ErrCodeInvalidMode},
		{"bad last row", Options{LastRow: "center"}, errors.ErrCodeInvalidConfig},
		{"negative columns", Options{Mode: "columns", Columns: -1}, errors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateForLayout()
			if tt.code == "" {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.code, errors.GetCode(err))
		})
	}
}

func TestValidateForRender(t *testing.T) {
	opts := Options{}
	require.NoError(t, opts.ValidateForRender())
	assert.Equal(t, []string{FormatSVG}, opts.Formats)
	assert.Equal(t, DefaultPNGScale, opts.PNGScale)

	bad := Options{Formats: []string{"gif"}}
	assert.True(t, errors.Is(bad.ValidateForRender(), errors.ErrCodeInvalidFormat))

	thumbs := Options{Thumbnails: true}
	assert.True(t, errors.Is(thumbs.ValidateForRender(), errors.ErrCodeInvalidConfig))
}

func TestContainerWidth(t *testing.T) {
	tests := []struct {
		width  float64
		safety bool
		want   float64
	}{
		{1200, false, 1200},
		{1200, true, 1199},
		{1, true, 1},
	}
	for _, tt := range tests {
		o := Options{Width: tt.width, SafetyPixel: tt.safety}
		if got := o.ContainerWidth(); got != tt.want {
			t.Errorf("ContainerWidth(%v, %v) = %v, want %v", tt.width, tt.safety, got, tt.want)
		}
	}
}

func TestLayoutOptions(t *testing.T) {
	opts := Options{Mode: "rows", Width: 800, Margin: 4, TargetRowHeight: 150, LastRow: "natural", SafetyPixel: true}
	require.NoError(t, opts.ValidateForLayout())

	got := opts.LayoutOptions()
	assert.Equal(t, layout.ModeRows, got.Mode)
	assert.Equal(t, 799.0, got.ContainerWidth)
	assert.Equal(t, 4.0, got.Margin)
	assert.Equal(t, layout.LastRowNatural, got.LastRow)
}

func TestLayoutOptionsDefaultColumns(t *testing.T) {
	tests := []struct {
		width   float64
		columns int
		want    int
	}{
		{500, 0, 2},
		{900, 0, 3},
		{1500, 0, 4},
		{499, 0, 1},
		{500, 5, 5},
	}
	for _, tt := range tests {
		opts := Options{Mode: "columns", Width: tt.width, Columns: tt.columns, SafetyPixel: true}
		require.NoError(t, opts.ValidateForLayout())

		got := opts.LayoutOptions()
		assert.Equal(t, tt.want, got.Columns, "width %g", tt.width)
		assert.Equal(t, tt.width-1, got.ContainerWidth)
		assert.Equal(t, tt.want, opts.LayoutKeyOpts().Columns, "width %g key", tt.width)
	}
}

func TestLayoutKeyOpts(t *testing.T) {
	rows := Options{Mode: "rows", Width: 1000, TargetRowHeight: 200, Columns: 3}
	k := rows.LayoutKeyOpts()
	assert.Equal(t, 0, k.Columns, "columns must not split row cache entries")
	assert.Equal(t, 200.0, k.TargetRowHeight)

	cols := Options{Mode: "columns", Width: 1000, TargetRowHeight: 200, Columns: 3}
	k = cols.LayoutKeyOpts()
	assert.Equal(t, 3, k.Columns)
	assert.Zero(t, k.TargetRowHeight)
}

func TestArtifactKeyOpts(t *testing.T) {
	opts := Options{Labels: true, Thumbnails: true, ImageDir: "/photos", PNGScale: 3}

	svg := opts.ArtifactKeyOpts(FormatSVG)
	assert.True(t, svg.Labels)
	assert.Equal(t, "/photos", svg.ImageDir)
	assert.Zero(t, svg.Scale)

	assert.Equal(t, 3.0, opts.ArtifactKeyOpts(FormatPNG).Scale)

	// JSON output ignores every drawing option.
	assert.Equal(t, cache.ArtifactKeyOpts{Format: FormatJSON}, opts.ArtifactKeyOpts(FormatJSON))
}

func TestComputeLayout(t *testing.T) {
	opts := rowOpts()
	opts.Title = "Squares"

	l, err := ComputeLayout(squares(5), opts)
	require.NoError(t, err)

	assert.Equal(t, "rows", l.Mode)
	assert.Equal(t, "Squares", l.Title)
	assert.Equal(t, 1, l.RowCount)
	assert.Equal(t, 5, l.LimitNodeSearch)
	assert.Equal(t, "justify", l.LastRow)
	assert.InDelta(t, 200, l.Height, 1e-9)
	require.Len(t, l.Tiles, 5)
	for i, tile := range l.Tiles {
		assert.InDelta(t, float64(i)*200, tile.X, 1e-9)
		assert.InDelta(t, 200, tile.Width, 1e-9)
	}
}

func TestComputeLayoutErrors(t *testing.T) {
	_, err := ComputeLayout(squares(2), Options{Mode: "grid"})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidMode))

	bad := []layout.Image{{Width: 100, Height: 100}, {Width: 0, Height: 100}}
	_, err = ComputeLayout(bad, rowOpts())
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidImage))
}

func TestHashImages(t *testing.T) {
	a, err := HashImages(squares(3))
	require.NoError(t, err)
	b, _ := HashImages(squares(3))
	c, _ := HashImages(squares(4))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)
}

func TestRender(t *testing.T) {
	l, err := ComputeLayout(squares(5), rowOpts())
	require.NoError(t, err)

	artifacts, err := Render(context.Background(), l, Options{Formats: []string{"svg", "json"}, Labels: true})
	require.NoError(t, err)

	require.Contains(t, artifacts, "svg")
	require.Contains(t, artifacts, "json")
	assert.True(t, strings.HasPrefix(string(artifacts["svg"]), "<svg"))
	assert.Contains(t, string(artifacts["json"]), `"mode": "rows"`)
}

func TestRunnerLayoutCache(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(cache.NewMemoryCache(0), nil, nil)
	defer r.Close()

	first, hit, err := r.ComputeLayoutWithCacheInfo(ctx, squares(5), rowOpts())
	require.NoError(t, err)
	assert.False(t, hit)

	second, hit, err := r.ComputeLayoutWithCacheInfo(ctx, squares(5), rowOpts())
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, first, second)

	// Different width, different entry.
	wider := rowOpts()
	wider.Width = 1200
	_, hit, err = r.ComputeLayoutWithCacheInfo(ctx, squares(5), wider)
	require.NoError(t, err)
	assert.False(t, hit)

	refresh := rowOpts()
	refresh.Refresh = true
	_, hit, err = r.ComputeLayoutWithCacheInfo(ctx, squares(5), refresh)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestRunnerRenderCache(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(cache.NewMemoryCache(0), nil, nil)

	l, err := r.ComputeLayout(ctx, squares(5), rowOpts())
	require.NoError(t, err)

	opts := Options{Formats: []string{"svg", "json"}}
	first, hit, err := r.RenderWithCacheInfo(ctx, l, opts)
	require.NoError(t, err)
	assert.False(t, hit)

	second, hit, err := r.RenderWithCacheInfo(ctx, l, opts)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, first, second)

	// Labels change the SVG key.
	opts.Labels = true
	_, hit, err = r.RenderWithCacheInfo(ctx, l, opts)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestRunnerExecute(t *testing.T) {
	m := &manifest.Manifest{
		Title: "Holiday",
		Images: []manifest.Entry{
			{ID: "a", Path: "a.jpg", Width: 100, Height: 100, Caption: "First"},
			{ID: "b", Path: "b.jpg", Width: 100, Height: 100},
			{ID: "c", Path: "c.jpg", Width: 100, Height: 100},
			{ID: "d", Path: "d.jpg", Width: 100, Height: 100},
			{ID: "e", Path: "e.jpg", Width: 100, Height: 100},
		},
	}
	opts := rowOpts()
	opts.Formats = []string{"json"}
	var stages []Stage
	opts.OnStage = func(s Stage) { stages = append(stages, s) }

	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), m, opts)
	require.NoError(t, err)

	assert.Equal(t, []Stage{StageLayout, StageRender}, stages)

	assert.Equal(t, 5, res.Stats.ImageCount)
	assert.Equal(t, 1, res.Stats.RowCount)
	assert.Equal(t, "Holiday", res.Layout.Title)
	assert.Equal(t, "First", res.Layout.Tiles[0].Caption)
	assert.Equal(t, "b.jpg", res.Layout.Tiles[1].Path)
	assert.NotEmpty(t, res.ImagesHash)
	assert.Contains(t, res.Artifacts, "json")
	// NullCache never hits.
	assert.False(t, res.CacheInfo.LayoutHit)
	assert.False(t, res.CacheInfo.RenderHit)
}

func TestRunnerExecuteInvalidOptions(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	_, err := r.Execute(context.Background(), &manifest.Manifest{}, Options{Formats: []string{"bmp"}})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidFormat))
}

// recordingHooks captures layout events.
type recordingHooks struct {
	observability.NoopPipelineHooks
	mu     sync.Mutex
	events []string
}

func (h *recordingHooks) OnLayoutStart(_ context.Context, mode string, n int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, "start:"+mode)
}

func (h *recordingHooks) OnLayoutComplete(_ context.Context, mode string, n int, _ time.Duration, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, "complete:"+mode)
}

func TestRunnerHooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetPipelineHooks(hooks)
	t.Cleanup(observability.Reset)

	r := NewRunner(cache.NewMemoryCache(0), nil, nil)
	ctx := context.Background()
	_, err := r.ComputeLayout(ctx, squares(3), rowOpts())
	require.NoError(t, err)
	// The cached pass does not run the engine.
	_, err = r.ComputeLayout(ctx, squares(3), rowOpts())
	require.NoError(t, err)

	assert.Equal(t, []string{"start:rows", "complete:rows"}, hooks.events)
}
