package raycast

import "fmt"

// FrameConfig holds the per-session constants of the ray fan.
type FrameConfig struct {
	FOV         float64 // radians
	WindowWidth int     // screen columns in pixels
	StripWidth  int     // pixels per ray
}

// NumRays returns WindowWidth / StripWidth.
func (c FrameConfig) NumRays() int {
	if c.StripWidth <= 0 {
		return 0
	}
	return c.WindowWidth / c.StripWidth
}

// Frame owns the grid, the viewer and the caster, and produces a fresh ray
// bundle each tick. It is not safe for concurrent use.
type Frame struct {
	grid   *Grid
	viewer *Viewer
	caster *Caster
	rays   RayBundle
	ticks  int
}

// NewFrame wires a grid and viewer into a frame and casts the initial bundle.
func NewFrame(g *Grid, v *Viewer, cfg FrameConfig) (*Frame, error) {
	if v == nil {
		return nil, fmt.Errorf("raycast: nil viewer")
	}
	if cfg.StripWidth <= 0 {
		return nil, fmt.Errorf("raycast: strip width must be positive, got %d", cfg.StripWidth)
	}
	if cfg.WindowWidth < cfg.StripWidth {
		return nil, fmt.Errorf("raycast: window width %d is narrower than strip width %d", cfg.WindowWidth, cfg.StripWidth)
	}
	if v.MoveSpeed < 0 || v.RotationSpeed < 0 {
		return nil, fmt.Errorf("raycast: speeds must not be negative (move %v, rotation %v)", v.MoveSpeed, v.RotationSpeed)
	}

	caster, err := NewCaster(g, cfg.FOV, cfg.NumRays())
	if err != nil {
		return nil, err
	}
	if g.IsSolidAt(v.X, v.Y) {
		return nil, fmt.Errorf("raycast: viewer start (%.1f, %.1f) is inside a solid tile", v.X, v.Y)
	}

	f := &Frame{
		grid:   g,
		viewer: v,
		caster: caster,
	}
	f.rays = caster.CastAll(v.Pose())
	return f, nil
}

// Tick moves the viewer and recasts every ray. The previous bundle is discarded.
func (f *Frame) Tick() RayBundle {
	f.viewer.Update(f.grid)
	f.rays = f.caster.CastAll(f.viewer.Pose())
	f.ticks++
	return f.rays
}

// Rays returns the bundle produced by the most recent tick.
func (f *Frame) Rays() RayBundle { return f.rays }

// Grid returns the frame's grid.
func (f *Frame) Grid() *Grid { return f.grid }

// Viewer returns the frame's viewer.
func (f *Frame) Viewer() *Viewer { return f.viewer }

// Caster returns the frame's caster.
func (f *Frame) Caster() *Caster { return f.caster }

// Ticks returns the number of ticks run since construction.
func (f *Frame) Ticks() int { return f.ticks }
