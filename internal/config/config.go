// Package config provides YAML-based configuration and map loading for the
// raycaster.
package config

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-raycast/internal/raycast"
)

// RaycastConfig contains all tunable engine and presentation parameters.
type RaycastConfig struct {
	View   ViewConfig   `yaml:"view"`
	Player PlayerConfig `yaml:"player"`
	Input  InputConfig  `yaml:"input"`
	Render RenderConfig `yaml:"render"`
}

// ViewConfig defines the ray fan.
type ViewConfig struct {
	FOVDegrees  float64 `yaml:"fov_degrees"`
	StripWidth  int     `yaml:"strip_width"`
	WindowWidth int     `yaml:"window_width"` // 0 = map pixel width
}

// PlayerConfig defines viewer movement constants.
type PlayerConfig struct {
	MoveSpeed            float64 `yaml:"move_speed"`
	RotationSpeedDegrees float64 `yaml:"rotation_speed_degrees"`
	StartAngleDegrees    float64 `yaml:"start_angle_degrees"`
	Radius               float64 `yaml:"radius"`
}

// InputConfig defines how key presses become movement intents.
type InputConfig struct {
	HoldTicks int `yaml:"hold_ticks"`
}

// RenderConfig defines minimap drawing options.
type RenderConfig struct {
	RayEvery int  `yaml:"ray_every"`
	ShowHUD  bool `yaml:"show_hud"`
}

// Validate reports the first invalid field. A config that fails validation
// must not be used to start a session.
func (c RaycastConfig) Validate() error {
	switch {
	case !(c.View.FOVDegrees > 0 && c.View.FOVDegrees < 360):
		return fmt.Errorf("view.fov_degrees must be in (0, 360), got %v", c.View.FOVDegrees)
	case c.View.StripWidth <= 0:
		return fmt.Errorf("view.strip_width must be positive, got %d", c.View.StripWidth)
	case c.View.WindowWidth < 0:
		return fmt.Errorf("view.window_width must not be negative, got %d", c.View.WindowWidth)
	case c.View.WindowWidth > 0 && c.View.WindowWidth < c.View.StripWidth:
		return fmt.Errorf("view.window_width %d is narrower than strip_width %d", c.View.WindowWidth, c.View.StripWidth)
	case c.Player.MoveSpeed < 0 || math.IsNaN(c.Player.MoveSpeed):
		return fmt.Errorf("player.move_speed must not be negative, got %v", c.Player.MoveSpeed)
	case c.Player.RotationSpeedDegrees < 0 || math.IsNaN(c.Player.RotationSpeedDegrees):
		return fmt.Errorf("player.rotation_speed_degrees must not be negative, got %v", c.Player.RotationSpeedDegrees)
	case c.Input.HoldTicks < 1:
		return fmt.Errorf("input.hold_ticks must be at least 1, got %d", c.Input.HoldTicks)
	case c.Render.RayEvery < 1:
		return fmt.Errorf("render.ray_every must be at least 1, got %d", c.Render.RayEvery)
	}
	return nil
}

// FrameConfig derives engine parameters for a grid.
func (c RaycastConfig) FrameConfig(g *raycast.Grid) raycast.FrameConfig {
	width := c.View.WindowWidth
	if width == 0 {
		width = int(g.Width())
	}
	return raycast.FrameConfig{
		FOV:         raycast.Radians(c.View.FOVDegrees),
		WindowWidth: width,
		StripWidth:  c.View.StripWidth,
	}
}

// MapFile is the on-disk description of a grid.
// Grid rows use '1' or '#' for solid tiles and '0', '.' or ' ' for empty ones.
type MapFile struct {
	ID       string    `yaml:"id"`
	Name     string    `yaml:"name"`
	TileSize float64   `yaml:"tile_size"`
	Rows     int       `yaml:"rows"`
	Cols     int       `yaml:"cols"`
	Start    *MapStart `yaml:"start,omitempty"`
	Grid     []string  `yaml:"grid"`

	Path string `yaml:"-"` // source file, empty for embedded maps
}

// MapStart overrides the viewer's start pose.
type MapStart struct {
	X            float64  `yaml:"x"`
	Y            float64  `yaml:"y"`
	AngleDegrees *float64 `yaml:"angle_degrees,omitempty"`
}

// Title returns the display name, falling back to the ID.
func (m MapFile) Title() string {
	if m.Name != "" {
		return m.Name
	}
	return m.ID
}

// Cells decodes the grid rows into engine cells.
// Row and column counts are not checked here; raycast.NewGrid does that.
func (m MapFile) Cells() ([][]raycast.Cell, error) {
	cells := make([][]raycast.Cell, len(m.Grid))
	for r, row := range m.Grid {
		runes := []rune(row)
		cells[r] = make([]raycast.Cell, len(runes))
		for c, ch := range runes {
			switch ch {
			case '1', '#':
				cells[r][c] = raycast.CellSolid
			case '0', '.', ' ':
				cells[r][c] = raycast.CellEmpty
			default:
				return nil, fmt.Errorf("map %s: row %d col %d: unknown tile %q", m.ID, r, c, ch)
			}
		}
	}
	return cells, nil
}

// BuildGrid decodes and validates the map into an engine grid.
// Zero rows or cols are inferred from the grid itself.
func (m MapFile) BuildGrid() (*raycast.Grid, error) {
	cells, err := m.Cells()
	if err != nil {
		return nil, err
	}

	rows, cols := m.Rows, m.Cols
	if rows == 0 {
		rows = len(cells)
	}
	if cols == 0 && len(cells) > 0 {
		cols = len(cells[0])
	}

	g, err := raycast.NewGrid(cells, rows, cols, m.TileSize)
	if err != nil {
		return nil, fmt.Errorf("map %s: %w", m.ID, err)
	}
	return g, nil
}
