package raycast

import engine "github.com/vovakirdan/tui-raycast/internal/raycast"

// RaySummary describes one ray of a bundle.
type RaySummary struct {
	Column   int     `yaml:"column"`
	Angle    float64 `yaml:"angle_degrees"`
	Hit      bool    `yaml:"hit"`
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Distance float64 `yaml:"distance"`
	Side     string  `yaml:"side"`
	Row      int     `yaml:"row"`
	Col      int     `yaml:"col"`
}

// Snapshot captures the session state for headless runs and tests.
type Snapshot struct {
	Map        string       `yaml:"map"`
	Tick       uint64       `yaml:"tick"`
	FrameTicks int          `yaml:"frame_ticks"`
	X          float64      `yaml:"x"`
	Y          float64      `yaml:"y"`
	Angle      float64      `yaml:"angle_degrees"`
	Explored   int          `yaml:"explored"`
	Walls      int          `yaml:"walls"`
	Paused     bool         `yaml:"paused"`
	NumRays    int          `yaml:"num_rays"`
	Center     *RaySummary  `yaml:"center,omitempty"`
	Rays       []RaySummary `yaml:"rays,omitempty"`
}

// Snapshot returns the current session state. When withRays is set every
// ray of the current bundle is included.
func (g *Game) Snapshot(withRays bool) Snapshot {
	p := g.frame.Viewer().Pose()
	bundle := g.frame.Rays()

	s := Snapshot{
		Map:        g.ID(),
		Tick:       g.tick,
		FrameTicks: g.frame.Ticks(),
		X:          p.X,
		Y:          p.Y,
		Angle:      engine.Degrees(p.Angle),
		Explored:   len(g.seen),
		Walls:      g.grid.SolidCount(),
		Paused:     g.paused,
		NumRays:    bundle.Len(),
	}
	if center, ok := bundle.Center(); ok {
		rs := summarize(center)
		s.Center = &rs
	}
	if withRays {
		s.Rays = make([]RaySummary, len(bundle.Rays))
		for i, r := range bundle.Rays {
			s.Rays[i] = summarize(r)
		}
	}
	return s
}

func summarize(r engine.Ray) RaySummary {
	rs := RaySummary{
		Column: r.Column,
		Angle:  engine.Degrees(r.Angle),
		Hit:    r.Hit,
		X:      r.HitX,
		Y:      r.HitY,
		Side:   "none",
		Row:    -1,
		Col:    -1,
	}
	if !r.Hit {
		return rs
	}
	rs.Distance = r.Distance
	rs.Side = hitSide(r)
	if r.InGrid {
		rs.Row, rs.Col = r.WallTile.Row, r.WallTile.Col
	}
	return rs
}
