package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/gallery/pkg/errors"
)

func TestCompute(t *testing.T) {
	t.Run("rows by default", func(t *testing.T) {
		res, err := Compute(scenarioImages(), Options{
			ContainerWidth:  1000,
			Margin:          10,
			TargetRowHeight: 200,
			LimitNodeSearch: 3,
		})
		require.NoError(t, err)
		assert.Equal(t, ModeRows, res.Mode)
		assert.Equal(t, 2, res.RowCount())
		assert.InDelta(t, 980/3.3+10+990/3.2, res.ContainerHeight, tolerance)
	})

	t.Run("columns with explicit count", func(t *testing.T) {
		res, err := Compute(scenarioImages(), Options{
			Mode:           ModeColumns,
			ContainerWidth: 1000,
			Margin:         10,
			Columns:        2,
		})
		require.NoError(t, err)
		assert.Equal(t, ModeColumns, res.Mode)
		assert.Zero(t, res.RowCount())
		assert.InDelta(t, 1175, res.ContainerHeight, tolerance)
	})

	t.Run("columns default from width", func(t *testing.T) {
		res, err := Compute(fromRatios(1, 1, 1, 1, 1), Options{Mode: ModeColumns, ContainerWidth: 1200})
		require.NoError(t, err)
		seen := make(map[int]bool)
		for _, p := range res.Placements {
			seen[p.Column] = true
		}
		assert.Len(t, seen, 3)
	})

	t.Run("empty rows", func(t *testing.T) {
		res, err := Compute(nil, Options{ContainerWidth: 1000, TargetRowHeight: 200})
		require.NoError(t, err)
		assert.Empty(t, res.Placements)
		assert.Zero(t, res.ContainerHeight)
	})

	t.Run("unknown mode", func(t *testing.T) {
		_, err := Compute(scenarioImages(), Options{Mode: "grid", ContainerWidth: 1000})
		assert.True(t, errors.Is(err, errors.ErrCodeInvalidMode))
	})

	t.Run("invalid config propagates", func(t *testing.T) {
		_, err := Compute(scenarioImages(), Options{ContainerWidth: 1000})
		assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig))
	})
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{"": ModeRows, "rows": ModeRows, "columns": ModeColumns} {
		got, err := ParseMode(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseMode("masonry")
	assert.Error(t, err)
}
