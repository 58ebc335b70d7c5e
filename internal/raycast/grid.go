// Package raycast implements the ray/grid intersection engine: a tile grid,
// a point viewer that moves against it, and a caster that sweeps grid lines
// to find the nearest wall along each ray.
//
// The package has no external dependencies and performs no I/O, so every
// operation is deterministic and testable in isolation.
package raycast

import (
	"fmt"
	"math"
)

// Cell is the occupancy state of one grid tile.
type Cell uint8

const (
	CellEmpty Cell = iota
	CellSolid
)

// String returns a human-readable name for the cell.
func (c Cell) String() string {
	switch c {
	case CellEmpty:
		return "empty"
	case CellSolid:
		return "solid"
	default:
		return "unknown"
	}
}

// Tile addresses a single grid cell by row and column.
type Tile struct {
	Row int
	Col int
}

// GridError describes why a grid was rejected at construction time.
type GridError struct {
	Code    string
	Message string
}

func (e GridError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Grid is an immutable rows x cols matrix of square tiles.
// Pixel space spans [0, cols*tileSize] x [0, rows*tileSize].
type Grid struct {
	rows     int
	cols     int
	tileSize float64
	cells    [][]Cell
}

// NewGrid validates cells against the declared dimensions and returns a grid
// that owns a private copy of them.
func NewGrid(cells [][]Cell, rows, cols int, tileSize float64) (*Grid, error) {
	if tileSize <= 0 || math.IsNaN(tileSize) || math.IsInf(tileSize, 0) {
		return nil, GridError{
			Code:    "BAD_TILE_SIZE",
			Message: fmt.Sprintf("tile size must be positive, got %v", tileSize),
		}
	}
	if rows <= 0 || cols <= 0 {
		return nil, GridError{
			Code:    "BAD_DIMENSIONS",
			Message: fmt.Sprintf("grid must have at least one row and column, got %dx%d", rows, cols),
		}
	}
	if len(cells) != rows {
		return nil, GridError{
			Code:    "ROW_COUNT",
			Message: fmt.Sprintf("expected %d rows, got %d", rows, len(cells)),
		}
	}

	owned := make([][]Cell, rows)
	for r, row := range cells {
		if len(row) != cols {
			return nil, GridError{
				Code:    "COL_COUNT",
				Message: fmt.Sprintf("row %d: expected %d columns, got %d", r, cols, len(row)),
			}
		}
		owned[r] = make([]Cell, cols)
		for c, cell := range row {
			if cell != CellEmpty && cell != CellSolid {
				return nil, GridError{
					Code:    "BAD_CELL",
					Message: fmt.Sprintf("row %d col %d: unknown cell value %d", r, c, cell),
				}
			}
			owned[r][c] = cell
		}
	}

	return &Grid{
		rows:     rows,
		cols:     cols,
		tileSize: tileSize,
		cells:    owned,
	}, nil
}

// Rows returns the number of tile rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of tile columns.
func (g *Grid) Cols() int { return g.cols }

// TileSize returns the side of one tile in pixels.
func (g *Grid) TileSize() float64 { return g.tileSize }

// Width returns the pixel width of the map.
func (g *Grid) Width() float64 { return float64(g.cols) * g.tileSize }

// Height returns the pixel height of the map.
func (g *Grid) Height() float64 { return float64(g.rows) * g.tileSize }

// CellAt returns the cell at (row, col). Indices outside the grid are solid.
func (g *Grid) CellAt(row, col int) Cell {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		return CellSolid
	}
	return g.cells[row][col]
}

// InBounds reports whether (x, y) lies inside the closed pixel rectangle of the map.
// NaN coordinates are never in bounds.
func (g *Grid) InBounds(x, y float64) bool {
	return x >= 0 && x <= g.Width() && y >= 0 && y <= g.Height()
}

// TileAt returns the tile containing (x, y).
// ok is false when the point maps to no tile, including the far map edges.
func (g *Grid) TileAt(x, y float64) (Tile, bool) {
	if !g.InBounds(x, y) {
		return Tile{}, false
	}
	t := Tile{
		Row: int(math.Floor(y / g.tileSize)),
		Col: int(math.Floor(x / g.tileSize)),
	}
	if t.Row >= g.rows || t.Col >= g.cols {
		return Tile{}, false
	}
	return t, true
}

// IsSolidAt reports whether (x, y) is blocked.
// Anything outside the map, including its far edges, counts as solid.
func (g *Grid) IsSolidAt(x, y float64) bool {
	t, ok := g.TileAt(x, y)
	if !ok {
		return true
	}
	return g.cells[t.Row][t.Col] == CellSolid
}

// SolidCount returns the number of solid tiles in the grid.
func (g *Grid) SolidCount() int {
	n := 0
	for _, row := range g.cells {
		for _, c := range row {
			if c == CellSolid {
				n++
			}
		}
	}
	return n
}
