package cli

import (
	"context"
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gallery/pkg/layout"
	"github.com/matzehuels/gallery/pkg/manifest"
	"github.com/matzehuels/gallery/pkg/pipeline"
)

const (
	// defaultCellPixels is the layout width of one terminal column.
	defaultCellPixels = 10.0

	// Terminal cells are roughly twice as tall as they are wide.
	cellAspect = 2.0

	// previewChrome is the number of lines used by the header and footer.
	previewChrome = 3
)

// previewCommand creates the interactive terminal preview.
func (c *CLI) previewCommand() *cobra.Command {
	var (
		in        inputFlags
		cellPixel float64
	)
	opts := c.Config.pipelineOptions()

	cmd := &cobra.Command{
		Use:   "preview [manifest|dir]",
		Short: "Preview a layout in the terminal",
		Long: `Preview a layout in the terminal.

The terminal width is the container width: each column stands for --cell
pixels. Resize the window to watch the layout reflow.

Keys: ←/→ select the previous or next image, ↑/↓ scroll, m switches between
rows and columns, q quits.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPreview(cmd.Context(), args[0], opts, cellPixel, in)
		},
	}

	cmd.Flags().Float64Var(&cellPixel, "cell", defaultCellPixels, "pixels per terminal column")
	in.bind(cmd)
	addLayoutFlags(cmd, &opts)

	return cmd
}

func (c *CLI) runPreview(ctx context.Context, input string, opts pipeline.Options, cellPixel float64, in inputFlags) error {
	if !(cellPixel > 0) {
		return fmt.Errorf("--cell must be positive, got %g", cellPixel)
	}
	if err := opts.ValidateForLayout(); err != nil {
		return err
	}

	runner, err := c.newRunner(true)
	if err != nil {
		return err
	}
	defer runner.Close()

	m, err := loadManifest(ctx, runner, input, in)
	if err != nil {
		return err
	}

	p := tea.NewProgram(newPreviewModel(m, opts, cellPixel), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}

// =============================================================================
// previewModel - Reflowing layout view
// =============================================================================

type previewModel struct {
	images []layout.Image
	labels []string
	title  string
	opts   pipeline.Options
	cellPx float64

	width, height int
	result        layout.Result
	err           error
	selected      int
	scroll        int
}

func newPreviewModel(m *manifest.Manifest, opts pipeline.Options, cellPx float64) previewModel {
	labels := make([]string, len(m.Images))
	for i, e := range m.Images {
		labels[i] = e.Caption
		if labels[i] == "" {
			labels[i] = e.Path
		}
	}
	return previewModel{
		images: m.Layout(),
		labels: labels,
		title:  manifestTitle(m),
		opts:   opts,
		cellPx: cellPx,
	}
}

func (m previewModel) Init() tea.Cmd {
	return nil
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.relayout()
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			if prev, _ := layout.Neighbors(len(m.images), m.selected); prev >= 0 {
				m.selected = prev
				m.follow()
			}
		case "right", "l":
			if _, next := layout.Neighbors(len(m.images), m.selected); next >= 0 {
				m.selected = next
				m.follow()
			}
		case "up", "k":
			m.scroll = max(0, m.scroll-1)
		case "down", "j":
			m.scroll = min(m.maxScroll(), m.scroll+1)
		case "m":
			if m.opts.Mode == string(layout.ModeColumns) {
				m.opts.Mode = string(layout.ModeRows)
			} else {
				m.opts.Mode = string(layout.ModeColumns)
			}
			m.relayout()
		}
	}
	return m, nil
}

// relayout reruns the engine for the current terminal width.
func (m *previewModel) relayout() {
	if m.width <= 0 {
		return
	}
	opts := m.opts
	opts.Width = float64(m.width) * m.cellPx
	m.result, m.err = layout.Compute(m.images, opts.LayoutOptions())
	m.scroll = min(m.scroll, m.maxScroll())
	m.follow()
}

// follow scrolls so that the selected tile is visible.
func (m *previewModel) follow() {
	if m.err != nil || m.selected >= len(m.result.Placements) {
		return
	}
	p := m.result.Placements[m.selected]
	top, bottom := m.cellRow(p.Top), m.cellRow(p.Bottom())
	view := m.viewHeight()
	switch {
	case top < m.scroll:
		m.scroll = top
	case bottom > m.scroll+view:
		m.scroll = min(top, bottom-view)
	}
	m.scroll = max(0, min(m.scroll, m.maxScroll()))
}

func (m previewModel) cellRow(px float64) int {
	return int(math.Round(px / (m.cellPx * cellAspect)))
}

func (m previewModel) cellCol(px float64) int {
	return int(math.Round(px / m.cellPx))
}

func (m previewModel) viewHeight() int {
	return max(1, m.height-previewChrome)
}

func (m previewModel) maxScroll() int {
	return max(0, m.cellRow(m.result.ContainerHeight)-m.viewHeight())
}

func (m previewModel) View() string {
	if m.width == 0 {
		return "loading..."
	}

	var b strings.Builder
	b.WriteString(StyleTitle.Render(m.title) + " " + StyleDim.Render(m.summary()) + "\n")

	if m.err != nil {
		b.WriteString(styleIconError.Render(iconError) + " " + m.err.Error() + "\n")
		return b.String()
	}

	lines := m.canvas()
	end := min(len(lines), m.scroll+m.viewHeight())
	for _, line := range lines[m.scroll:end] {
		b.WriteString(line + "\n")
	}

	b.WriteString(m.footer())
	return b.String()
}

func (m previewModel) summary() string {
	res := m.result
	parts := []string{
		string(res.Mode),
		fmt.Sprintf("%d images", len(res.Placements)),
	}
	if res.Mode == layout.ModeRows {
		parts = append(parts, fmt.Sprintf("%d rows", res.RowCount()))
	}
	parts = append(parts, fmt.Sprintf("%.0f×%.0f px", res.ContainerWidth, res.ContainerHeight))
	return strings.Join(parts, " · ")
}

func (m previewModel) footer() string {
	if len(m.images) == 0 {
		return StyleDim.Render("no images · q quit")
	}
	prev, next := layout.Neighbors(len(m.images), m.selected)
	nav := fmt.Sprintf("%d/%d", m.selected+1, len(m.images))
	if prev >= 0 {
		nav = "← " + nav
	}
	if next >= 0 {
		nav += " →"
	}
	label := m.labels[m.selected]
	if m.selected < len(m.result.Placements) {
		p := m.result.Placements[m.selected]
		label += fmt.Sprintf(" (%.0f×%.0f)", p.Width, p.Height)
	}
	return StyleHighlight.Render(nav) + " " + StyleValue.Render(label) + StyleDim.Render(" · m mode · q quit")
}

// canvas draws every placement as a box of terminal cells.
func (m previewModel) canvas() []string {
	rows := m.cellRow(m.result.ContainerHeight)
	cols := m.width
	if rows <= 0 || cols <= 0 {
		return nil
	}

	grid := make([][]rune, rows)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", cols))
	}

	for i, p := range m.result.Placements {
		x0, x1 := m.cellCol(p.Left), m.cellCol(p.Right())-1
		y0, y1 := m.cellRow(p.Top), m.cellRow(p.Bottom())-1
		drawBox(grid, x0, y0, max(x0, x1), max(y0, y1), i == m.selected)
	}

	lines := make([]string, rows)
	for i, row := range grid {
		lines[i] = string(row)
	}
	return lines
}

var (
	boxPlain    = [6]rune{'┌', '┐', '└', '┘', '─', '│'}
	boxSelected = [6]rune{'╔', '╗', '╚', '╝', '═', '║'}
)

// drawBox draws a box with inclusive corners, clipped to the grid.
func drawBox(grid [][]rune, x0, y0, x1, y1 int, selected bool) {
	box := boxPlain
	if selected {
		box = boxSelected
	}
	set := func(x, y int, r rune) {
		if y >= 0 && y < len(grid) && x >= 0 && x < len(grid[y]) {
			grid[y][x] = r
		}
	}
	for x := x0; x <= x1; x++ {
		set(x, y0, box[4])
		set(x, y1, box[4])
	}
	for y := y0; y <= y1; y++ {
		set(x0, y, box[5])
		set(x1, y, box[5])
	}
	set(x0, y0, box[0])
	set(x1, y0, box[1])
	set(x0, y1, box[2])
	set(x1, y1, box[3])
	if selected {
		for y := y0 + 1; y < y1; y++ {
			for x := x0 + 1; x < x1; x++ {
				set(x, y, '░')
			}
		}
	}
}
