package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/gallery/pkg/layout"
	"github.com/matzehuels/gallery/pkg/manifest"
	"github.com/matzehuels/gallery/pkg/pipeline"
)

func previewFixture(t *testing.T, mode string) previewModel {
	t.Helper()
	m := &manifest.Manifest{Title: "Fixture"}
	for _, name := range []string{"a.jpg", "b.jpg", "c.jpg", "d.jpg"} {
		m.Images = append(m.Images, manifest.Entry{Path: name, Width: 100, Height: 100})
	}
	opts := pipeline.Options{Mode: mode, TargetRowHeight: 200, LimitNodeSearch: 4}
	require.NoError(t, opts.ValidateForLayout())
	return newPreviewModel(m, opts, 10)
}

func update(t *testing.T, m previewModel, msg tea.Msg) previewModel {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(previewModel)
}

func TestPreviewReflowsOnResize(t *testing.T) {
	m := previewFixture(t, "rows")
	assert.Equal(t, "loading...", m.View())

	// 80 columns at 10px: four squares fill one 200px row.
	m = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 40})
	require.NoError(t, m.err)
	assert.Equal(t, 800.0, m.result.ContainerWidth)
	assert.Equal(t, 1, m.result.RowCount())

	// Narrower terminal, smaller container, more rows.
	m = update(t, m, tea.WindowSizeMsg{Width: 30, Height: 40})
	assert.Equal(t, 300.0, m.result.ContainerWidth)
	assert.Greater(t, m.result.RowCount(), 1)
}

func TestPreviewNavigation(t *testing.T) {
	m := previewFixture(t, "rows")
	m = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 40})

	// Already at the first image.
	m = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 0, m.selected)

	for range 5 {
		m = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	}
	assert.Equal(t, 3, m.selected, "stops at the last image")
	assert.Contains(t, m.footer(), "← 4/4")
	assert.NotContains(t, m.footer(), "→")
}

func TestPreviewToggleMode(t *testing.T) {
	m := previewFixture(t, "rows")
	m = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 40})

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'m'}})
	assert.Equal(t, layout.ModeColumns, m.result.Mode)
	// 800px selects two columns.
	assert.Equal(t, 1, m.result.Placements[1].Column)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'m'}})
	assert.Equal(t, layout.ModeRows, m.result.Mode)
}

func TestPreviewQuit(t *testing.T) {
	m := previewFixture(t, "rows")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestPreviewCanvas(t *testing.T) {
	m := previewFixture(t, "rows")
	m = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 40})

	lines := m.canvas()
	// 200px row at 20px per line.
	require.Len(t, lines, 10)
	assert.True(t, strings.HasPrefix(lines[0], "╔"), "selected tile drawn first: %q", lines[0])
	assert.Contains(t, lines[0], "┌")
	assert.Contains(t, lines[5], "░")

	view := m.View()
	assert.Contains(t, view, "Fixture")
	assert.Contains(t, view, "a.jpg (200×200)")
}

func TestDrawBoxClips(t *testing.T) {
	grid := [][]rune{[]rune("    "), []rune("    ")}
	drawBox(grid, 2, 0, 6, 3, false)
	assert.Equal(t, "  ┌─", string(grid[0]))
	assert.Equal(t, "  │ ", string(grid[1]))
}
