package raycast

import (
	"fmt"
	"math"
)

// degenerateEpsilon is the |sin| or |cos| below which a ray is treated as
// parallel to one family of grid lines.
const degenerateEpsilon = 1e-9

// Ray is the result of casting one ray from the viewer.
type Ray struct {
	Column      int     // screen column index, 0 = leftmost
	Angle       float64 // normalized
	Facing      Facing
	HitX        float64
	HitY        float64
	Distance    float64 // math.MaxFloat64 when Hit is false
	HitVertical bool    // hit came from the vertical grid-line sweep
	Hit         bool

	// WallTile is the tile sampled at the hit point. InGrid is false when the
	// ray stopped at the map boundary instead of a solid tile.
	WallTile Tile
	InGrid   bool
}

// RayBundle is the ordered fan of rays produced for one tick.
type RayBundle struct {
	Origin Pose
	Rays   []Ray
}

// Len returns the number of rays.
func (b RayBundle) Len() int { return len(b.Rays) }

// Center returns the ray nearest the middle of the field of view.
func (b RayBundle) Center() (Ray, bool) {
	if len(b.Rays) == 0 {
		return Ray{}, false
	}
	return b.Rays[len(b.Rays)/2], true
}

// Caster casts rays against a grid across a fixed field of view.
type Caster struct {
	grid     *Grid
	fov      float64
	numRays  int
	maxSteps int
}

// NewCaster creates a caster producing numRays rays spread over fov radians.
func NewCaster(g *Grid, fov float64, numRays int) (*Caster, error) {
	if g == nil {
		return nil, fmt.Errorf("raycast: nil grid")
	}
	if !(fov > 0 && fov < TwoPi) {
		return nil, fmt.Errorf("raycast: field of view must be in (0, 2π), got %v", fov)
	}
	if numRays <= 0 {
		return nil, fmt.Errorf("raycast: ray count must be positive, got %d", numRays)
	}
	return &Caster{
		grid:     g,
		fov:      fov,
		numRays:  numRays,
		maxSteps: max(g.rows, g.cols) + 1,
	}, nil
}

// FOV returns the field of view in radians.
func (c *Caster) FOV() float64 { return c.fov }

// NumRays returns the number of rays per bundle.
func (c *Caster) NumRays() int { return c.numRays }

// CastAll casts one ray per screen column, left to right.
// Ray i has angle pose.Angle - fov/2 + i*fov/numRays.
func (c *Caster) CastAll(p Pose) RayBundle {
	rays := make([]Ray, c.numRays)
	start := p.Angle - c.fov/2
	spacing := c.fov / float64(c.numRays)
	for i := range rays {
		rays[i] = c.Cast(start+float64(i)*spacing, p.X, p.Y)
		rays[i].Column = i
	}
	return RayBundle{Origin: p, Rays: rays}
}

// Cast finds the nearest wall along angle from (px, py).
func (c *Caster) Cast(angle, px, py float64) Ray {
	angle = NormalizeAngle(angle)
	facing := FacingOf(angle)
	sin, cos := math.Sin(angle), math.Cos(angle)

	horz := c.sweep(horizontalAxis(angle, sin, cos, facing, px, py))
	vert := c.sweep(verticalAxis(angle, sin, cos, facing, px, py))

	best, dist, vertical := selectNearest(px, py, horz, vert)

	ray := Ray{
		Angle:       angle,
		Facing:      facing,
		HitX:        px,
		HitY:        py,
		Distance:    dist,
		HitVertical: vertical,
		Hit:         best.found,
	}
	if best.found {
		ray.HitX, ray.HitY = best.x, best.y
		ray.WallTile, ray.InGrid = best.tile, best.inGrid
	}
	return ray
}

// axis describes one grid-line sweep in terms of a primary coordinate, the
// one whose grid lines are crossed, and a secondary coordinate that follows
// the ray's slope.
type axis struct {
	vertical bool // primary is x (vertical lines) instead of y

	primary   float64 // viewer coordinate on the primary axis
	secondary float64 // viewer coordinate on the secondary axis

	forward          bool    // ray moves toward +primary
	secondaryForward bool    // ray moves toward +secondary
	slope            float64 // d(secondary)/d(primary), signed
	parallel         bool    // ray never crosses a primary grid line
}

// horizontalAxis sweeps horizontal grid lines: primary y, secondary x.
func horizontalAxis(angle, sin, cos float64, f Facing, px, py float64) axis {
	a := axis{
		primary:          py,
		secondary:        px,
		forward:          f.Down,
		secondaryForward: f.Right,
	}
	switch {
	case math.Abs(sin) < degenerateEpsilon:
		a.parallel = true
	case math.Abs(cos) < degenerateEpsilon:
		a.slope = 0
	default:
		a.slope = 1 / math.Tan(angle)
	}
	return a
}

// verticalAxis sweeps vertical grid lines: primary x, secondary y.
func verticalAxis(angle, sin, cos float64, f Facing, px, py float64) axis {
	a := axis{
		vertical:         true,
		primary:          px,
		secondary:        py,
		forward:          f.Right,
		secondaryForward: f.Down,
	}
	switch {
	case math.Abs(cos) < degenerateEpsilon:
		a.parallel = true
	case math.Abs(sin) < degenerateEpsilon:
		a.slope = 0
	default:
		a.slope = math.Tan(angle)
	}
	return a
}

// point converts primary/secondary coordinates back to (x, y).
func (a axis) point(p, s float64) (float64, float64) {
	if a.vertical {
		return p, s
	}
	return s, p
}

// sweepHit is a candidate wall intersection from one sweep.
type sweepHit struct {
	found  bool
	x, y   float64
	tile   Tile
	inGrid bool
}

// sweep walks grid lines of one family until it samples a solid tile or
// leaves the map. The walk takes at most maxSteps tile increments.
func (c *Caster) sweep(a axis) sweepHit {
	if a.parallel {
		return sweepHit{}
	}
	ts := c.grid.tileSize

	// First grid line ahead of the viewer.
	p := math.Floor(a.primary/ts) * ts
	if a.forward {
		p += ts
	}
	s := a.secondary + (p-a.primary)*a.slope

	pStep := ts
	if !a.forward {
		pStep = -ts
	}
	sStep := math.Abs(ts * a.slope)
	if !a.secondaryForward {
		sStep = -sStep
	}

	// Facing backward along the primary axis, the tile beyond the line sits
	// one unit before it.
	sampleOffset := 0.0
	if !a.forward {
		sampleOffset = -1
	}

	for i := 0; i < c.maxSteps; i++ {
		x, y := a.point(p, s)
		if !c.grid.InBounds(x, y) {
			break
		}
		sx, sy := a.point(p+sampleOffset, s)
		if c.grid.IsSolidAt(sx, sy) {
			tile, ok := c.grid.TileAt(sx, sy)
			return sweepHit{
				found:  true,
				x:      x,
				y:      y,
				tile:   tile,
				inGrid: ok,
			}
		}
		p += pStep
		s += sStep
	}
	return sweepHit{}
}

// selectNearest picks the closer of the two sweep results.
// The vertical hit wins only when strictly closer; ties go to the horizontal hit.
func selectNearest(px, py float64, horz, vert sweepHit) (sweepHit, float64, bool) {
	horzDist := math.MaxFloat64
	if horz.found {
		horzDist = Distance(px, py, horz.x, horz.y)
	}
	vertDist := math.MaxFloat64
	if vert.found {
		vertDist = Distance(px, py, vert.x, vert.y)
	}

	if vertDist < horzDist {
		return vert, vertDist, true
	}
	return horz, horzDist, false
}
