package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"vinylgen/spiral"
)

// Preview cell states. Played wins over trace when points from both
// segments land in the same cell.
const (
	cellEmpty byte = iota
	cellTrace
	cellPlayed
)

// previewMaxPoints bounds per-render work; the terminal grid cannot
// resolve more anyway.
const previewMaxPoints = 1 << 16

// Half-block glyph styles. Each character cell carries two vertical
// "pixels": foreground paints the upper half, background the lower.
var (
	halfFg = map[byte]lipgloss.Style{
		cellTrace:  lipgloss.NewStyle().Foreground(colorTrace),
		cellPlayed: lipgloss.NewStyle().Foreground(colorPlayed),
	}
	halfBoth = map[[2]byte]lipgloss.Style{
		{cellTrace, cellTrace}:   lipgloss.NewStyle().Foreground(colorTrace).Background(colorTrace),
		{cellTrace, cellPlayed}:  lipgloss.NewStyle().Foreground(colorTrace).Background(colorPlayed),
		{cellPlayed, cellTrace}:  lipgloss.NewStyle().Foreground(colorPlayed).Background(colorTrace),
		{cellPlayed, cellPlayed}: lipgloss.NewStyle().Foreground(colorPlayed).Background(colorPlayed),
	}
)

// Preview renders the spiral path into terminal half-block cells.
type Preview struct {
	cols, rows int
}

// NewPreview creates a preview grid of cols x rows character cells.
func NewPreview(cols, rows int) *Preview {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return &Preview{cols: cols, rows: rows}
}

// Plot rasterizes the path into the cell grid, marking the prefix up
// to progress as played. The square canvas is fitted into the grid,
// accounting for the 2:1 aspect of character cells.
func (p *Preview) Plot(pts []spiral.Point, progress float64) [][]byte {
	grid := make([][]byte, p.rows*2)
	for i := range grid {
		grid[i] = make([]byte, p.cols)
	}
	if len(pts) == 0 {
		return grid
	}

	split := int(float64(len(pts)) * progress)
	step := 1
	if len(pts) > previewMaxPoints {
		step = (len(pts) + previewMaxPoints - 1) / previewMaxPoints
	}

	// Fit the square canvas into the pixel grid
	w := float64(p.cols)
	h := float64(p.rows * 2)
	scale := w / spiral.CanvasSize
	if s := h / spiral.CanvasSize; s < scale {
		scale = s
	}
	offX := (w - spiral.CanvasSize*scale) / 2
	offY := (h - spiral.CanvasSize*scale) / 2

	for i := 0; i < len(pts); i += step {
		x := int(pts[i].X*scale + offX)
		y := int(pts[i].Y*scale + offY)
		if x < 0 || y < 0 || x >= p.cols || y >= len(grid) {
			continue
		}
		state := cellTrace
		if i < split {
			state = cellPlayed
		}
		if state > grid[y][x] {
			grid[y][x] = state
		}
	}
	return grid
}

// Render returns the plotted grid as styled half-block lines.
func (p *Preview) Render(pts []spiral.Point, progress float64) string {
	grid := p.Plot(pts, progress)

	var sb strings.Builder
	for row := 0; row < p.rows; row++ {
		if row > 0 {
			sb.WriteByte('\n')
		}
		upper := grid[row*2]
		lower := grid[row*2+1]
		for col := 0; col < p.cols; col++ {
			u, l := upper[col], lower[col]
			switch {
			case u == cellEmpty && l == cellEmpty:
				sb.WriteByte(' ')
			case l == cellEmpty:
				sb.WriteString(halfFg[u].Render("▀"))
			case u == cellEmpty:
				sb.WriteString(halfFg[l].Render("▄"))
			default:
				sb.WriteString(halfBoth[[2]byte{u, l}].Render("▀"))
			}
		}
	}
	return sb.String()
}
