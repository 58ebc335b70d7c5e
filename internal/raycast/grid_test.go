package raycast

import (
	"errors"
	"testing"
)

// emptyCells returns a rows x cols matrix of empty cells with the listed tiles solid.
func emptyCells(rows, cols int, solid ...Tile) [][]Cell {
	cells := make([][]Cell, rows)
	for r := range cells {
		cells[r] = make([]Cell, cols)
	}
	for _, t := range solid {
		cells[t.Row][t.Col] = CellSolid
	}
	return cells
}

func mustGrid(t *testing.T, rows, cols int, tileSize float64, solid ...Tile) *Grid {
	t.Helper()
	g, err := NewGrid(emptyCells(rows, cols, solid...), rows, cols, tileSize)
	if err != nil {
		t.Fatalf("NewGrid() failed: %v", err)
	}
	return g
}

func TestNewGridRejectsMalformed(t *testing.T) {
	tests := []struct {
		name     string
		cells    [][]Cell
		rows     int
		cols     int
		tileSize float64
		code     string
	}{
		{"zero tile size", emptyCells(2, 2), 2, 2, 0, "BAD_TILE_SIZE"},
		{"negative tile size", emptyCells(2, 2), 2, 2, -5, "BAD_TILE_SIZE"},
		{"no rows", nil, 0, 2, 60, "BAD_DIMENSIONS"},
		{"row count mismatch", emptyCells(3, 2), 2, 2, 60, "ROW_COUNT"},
		{"ragged row", [][]Cell{{0, 0}, {0}}, 2, 2, 60, "COL_COUNT"},
		{"column count mismatch", emptyCells(2, 3), 2, 2, 60, "COL_COUNT"},
		{"unknown cell", [][]Cell{{0, 7}, {0, 0}}, 2, 2, 60, "BAD_CELL"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewGrid(tc.cells, tc.rows, tc.cols, tc.tileSize)
			if err == nil {
				t.Fatal("NewGrid() should fail")
			}
			var gerr GridError
			if !errors.As(err, &gerr) {
				t.Fatalf("NewGrid() error = %T, expected GridError", err)
			}
			if gerr.Code != tc.code {
				t.Errorf("GridError.Code = %s, expected %s", gerr.Code, tc.code)
			}
		})
	}
}

func TestNewGridCopiesCells(t *testing.T) {
	cells := emptyCells(2, 2)
	g, err := NewGrid(cells, 2, 2, 10)
	if err != nil {
		t.Fatalf("NewGrid() failed: %v", err)
	}

	cells[0][0] = CellSolid
	if g.IsSolidAt(5, 5) {
		t.Error("grid should not observe changes to the source slice")
	}
}

func TestIsSolidAtOutsideBounds(t *testing.T) {
	g := mustGrid(t, 3, 4, 10) // 40 x 30 pixels, all empty

	outside := []struct{ x, y float64 }{
		{-0.001, 5},
		{40.001, 5},
		{5, -0.001},
		{5, 30.001},
		{-100, -100},
		{1e9, 1e9},
	}
	for _, p := range outside {
		if !g.IsSolidAt(p.x, p.y) {
			t.Errorf("IsSolidAt(%v, %v) = false, expected true", p.x, p.y)
		}
	}
}

func TestIsSolidAtInside(t *testing.T) {
	g := mustGrid(t, 3, 4, 10, Tile{Row: 1, Col: 2})

	tests := []struct {
		name     string
		x, y     float64
		expected bool
	}{
		{"origin", 0, 0, false},
		{"solid tile top-left corner", 20, 10, true},
		{"solid tile interior", 25, 15, true},
		{"just left of solid tile", 19.999, 15, false},
		{"just below solid tile", 25, 20, false},
		{"far right edge", 40, 5, true},
		{"far bottom edge", 5, 30, true},
		{"last tile interior", 39.5, 29.5, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := g.IsSolidAt(tc.x, tc.y); got != tc.expected {
				t.Errorf("IsSolidAt(%v, %v) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}
}

func TestGridDimensions(t *testing.T) {
	g := mustGrid(t, 11, 15, 60, Tile{0, 0}, Tile{10, 14})

	if g.Width() != 900 {
		t.Errorf("Width() = %v, expected 900", g.Width())
	}
	if g.Height() != 660 {
		t.Errorf("Height() = %v, expected 660", g.Height())
	}
	if g.SolidCount() != 2 {
		t.Errorf("SolidCount() = %d, expected 2", g.SolidCount())
	}
	if g.CellAt(-1, 0) != CellSolid || g.CellAt(0, 15) != CellSolid {
		t.Error("CellAt() outside the grid should be solid")
	}
}

func TestTileAt(t *testing.T) {
	g := mustGrid(t, 2, 2, 60)

	tile, ok := g.TileAt(90, 30)
	if !ok || tile != (Tile{Row: 0, Col: 1}) {
		t.Errorf("TileAt(90, 30) = %v, %v, expected {0 1}, true", tile, ok)
	}
	if _, ok := g.TileAt(120, 30); ok {
		t.Error("TileAt() on the far edge should not resolve to a tile")
	}
	if _, ok := g.TileAt(-1, 30); ok {
		t.Error("TileAt() outside the map should not resolve to a tile")
	}
}
