package ui

import (
	"strings"
	"testing"

	"vinylgen/spiral"
)

func TestPreviewPlot(t *testing.T) {
	t.Parallel()

	p := NewPreview(10, 5) // 10 cols x 10 half-block pixel rows

	pts := []spiral.Point{
		{X: 0, Y: 0},
		{X: 1000, Y: 1000},
		{X: 1999, Y: 1999},
	}
	grid := p.Plot(pts, 0.5) // split after the first point

	if len(grid) != 10 {
		t.Fatalf("grid has %d pixel rows, want 10", len(grid))
	}
	if grid[0][0] != cellPlayed {
		t.Errorf("origin cell = %d, want played (%d)", grid[0][0], cellPlayed)
	}
	if grid[5][5] != cellTrace {
		t.Errorf("center cell = %d, want trace (%d)", grid[5][5], cellTrace)
	}
	if grid[9][9] != cellTrace {
		t.Errorf("far corner cell = %d, want trace (%d)", grid[9][9], cellTrace)
	}
}

func TestPreviewPlayedWinsOverTrace(t *testing.T) {
	t.Parallel()

	p := NewPreview(4, 2)

	// Two points landing in the same cell, one played and one not.
	pts := []spiral.Point{
		{X: 1000, Y: 1000},
		{X: 1001, Y: 1001},
	}
	grid := p.Plot(pts, 0.5)

	var found bool
	for _, row := range grid {
		for _, c := range row {
			if c == cellPlayed {
				found = true
			}
		}
	}
	if !found {
		t.Error("no played cell: played must win when sharing a cell with trace")
	}
}

func TestPreviewOffGridPointsSkipped(t *testing.T) {
	t.Parallel()

	p := NewPreview(4, 2)
	// Extreme spiral parameters push points off canvas; Plot must not panic.
	pts := []spiral.Point{
		{X: -9000, Y: -9000},
		{X: 90000, Y: 90000},
	}
	grid := p.Plot(pts, 1)
	for _, row := range grid {
		for _, c := range row {
			if c != cellEmpty {
				t.Fatal("off-grid point was plotted")
			}
		}
	}
}

func TestPreviewRenderShape(t *testing.T) {
	t.Parallel()

	p := NewPreview(10, 5)
	pts := []spiral.Point{
		{X: 0, Y: 0},
		{X: 1000, Y: 1000},
	}
	out := p.Render(pts, 0.5)

	lines := strings.Split(out, "\n")
	if len(lines) != 5 {
		t.Fatalf("rendered %d lines, want 5", len(lines))
	}
	if !strings.Contains(out, "▀") && !strings.Contains(out, "▄") {
		t.Error("rendered preview contains no half-block glyphs")
	}
}
