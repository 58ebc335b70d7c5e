// Package raycast adapts the raycasting engine to the platform's Game
// interface: one session explores one map from a top-down view.
package raycast

import (
	"fmt"

	"github.com/vovakirdan/tui-raycast/internal/config"
	"github.com/vovakirdan/tui-raycast/internal/core"
	engine "github.com/vovakirdan/tui-raycast/internal/raycast"
	"github.com/vovakirdan/tui-raycast/internal/registry"
)

// SourceEmbedded marks maps compiled into the binary.
const SourceEmbedded = "embedded"

// Game is an exploration session on one map. The score is the number of
// distinct wall tiles any ray has struck since the last reset.
type Game struct {
	mapFile config.MapFile
	cfg     config.RaycastConfig
	grid    *engine.Grid
	start   engine.Pose

	frame *engine.Frame
	latch *IntentLatch
	seen  map[engine.Tile]struct{}

	tick     uint64
	paused   bool
	tickRate int

	// Screen dimensions
	screenW int
	screenH int
}

// Package-level settings applied by factories, set from CLI flags.
var configPath string

// SetConfigPath sets the config file used by registered map factories.
func SetConfigPath(path string) {
	configPath = path
}

// loadConfig resolves the active configuration.
func loadConfig() (config.RaycastConfig, error) {
	return config.LoadRaycast(configPath)
}

func init() {
	maps, err := config.EmbeddedMaps()
	if err != nil {
		panic(fmt.Sprintf("raycast: embedded maps: %v", err))
	}
	for _, m := range maps {
		register(m, SourceEmbedded)
	}
}

func register(m config.MapFile, source string) {
	registry.Register(registry.MapInfo{
		ID:     m.ID,
		Title:  m.Title(),
		Source: source,
	}, func() (registry.Game, error) {
		cfg, err := loadConfig()
		if err != nil {
			return nil, err
		}
		return New(m, cfg)
	})
}

// RegisterFile loads a map file and registers it under its ID.
func RegisterFile(path string) (registry.MapInfo, error) {
	m, err := config.LoadMapFile(path)
	if err != nil {
		return registry.MapInfo{}, err
	}
	return registerChecked(m, path)
}

// RegisterDir registers every map found under dir. Files that do not parse,
// grids that do not build and IDs that are already taken are skipped.
func RegisterDir(dir string) ([]registry.MapInfo, error) {
	maps, err := config.NewMapLoader(dir).LoadAll()
	if err != nil {
		return nil, err
	}

	var infos []registry.MapInfo
	for _, m := range maps {
		info, err := registerChecked(m, m.Path)
		if err != nil {
			continue
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// RegisterFromDir finds the map with the given ID under dir and registers it.
func RegisterFromDir(dir, id string) (registry.MapInfo, error) {
	m, err := config.NewMapLoader(dir).LoadByID(id)
	if err != nil {
		return registry.MapInfo{}, err
	}
	return registerChecked(m, m.Path)
}

func registerChecked(m config.MapFile, source string) (registry.MapInfo, error) {
	if _, err := m.BuildGrid(); err != nil {
		return registry.MapInfo{}, err
	}
	if registry.Exists(m.ID) {
		return registry.MapInfo{}, fmt.Errorf("map id %q from %s is already registered", m.ID, source)
	}
	register(m, source)
	return registry.MapInfo{ID: m.ID, Title: m.Title(), Source: source}, nil
}

// New creates a session on the given map. It fails when the map is
// malformed or the start pose is inside a wall.
func New(m config.MapFile, cfg config.RaycastConfig) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	grid, err := m.BuildGrid()
	if err != nil {
		return nil, err
	}

	g := &Game{
		mapFile: m,
		cfg:     cfg,
		grid:    grid,
		start:   startPose(m, grid, cfg),
	}
	frame, err := g.buildFrame()
	if err != nil {
		return nil, fmt.Errorf("map %s: %w", m.ID, err)
	}
	g.frame = frame
	g.latch = NewIntentLatch(cfg.Input.HoldTicks)
	g.seen = make(map[engine.Tile]struct{})
	g.explore(frame.Rays())
	return g, nil
}

// startPose uses the map's start when present, otherwise the map center.
func startPose(m config.MapFile, g *engine.Grid, cfg config.RaycastConfig) engine.Pose {
	p := engine.Pose{
		X:     g.Width() / 2,
		Y:     g.Height() / 2,
		Angle: engine.Radians(cfg.Player.StartAngleDegrees),
	}
	if m.Start != nil {
		p.X, p.Y = m.Start.X, m.Start.Y
		if m.Start.AngleDegrees != nil {
			p.Angle = engine.Radians(*m.Start.AngleDegrees)
		}
	}
	return p
}

func (g *Game) buildFrame() (*engine.Frame, error) {
	v := engine.NewViewer(g.start, g.cfg.Player.MoveSpeed, engine.Radians(g.cfg.Player.RotationSpeedDegrees))
	return engine.NewFrame(g.grid, v, g.cfg.FrameConfig(g.grid))
}

// ID returns the map identifier.
func (g *Game) ID() string {
	return g.mapFile.ID
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.mapFile.Title()
}

// Reset puts the viewer back at the start pose and clears exploration.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.tickRate = cfg.TickRate
	g.tick = 0
	g.paused = false

	// New already built a frame from the same inputs, so this cannot fail.
	if frame, err := g.buildFrame(); err == nil {
		g.frame = frame
	}
	g.latch.Release()
	g.seen = make(map[engine.Tile]struct{})
	g.explore(g.frame.Rays())
}

// Step advances the session by one tick.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	g.tick++

	if input.Has(core.ActionRestart) {
		g.Reset(core.RuntimeConfig{
			ScreenW:  g.screenW,
			ScreenH:  g.screenH,
			TickRate: g.tickRate,
		})
		return core.StepResult{State: g.State()}
	}

	if input.Has(core.ActionPause) {
		g.paused = !g.paused
		g.latch.Release()
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.latch.Press(input)
	walk, turn := g.latch.Intents()
	g.frame.Viewer().SetIntents(walk, turn)
	g.explore(g.frame.Tick())
	g.latch.Advance()

	return core.StepResult{State: g.State()}
}

// explore records every wall tile struck by the bundle.
func (g *Game) explore(b engine.RayBundle) {
	for _, r := range b.Rays {
		if r.Hit && r.InGrid {
			g.seen[r.WallTile] = struct{}{}
		}
	}
}

// State returns the current session state. Sessions never end on their own.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:  len(g.seen),
		Paused: g.paused,
	}
}

// RunStats returns the map's wall count and the movement ticks of this run.
func (g *Game) RunStats() (walls, ticks int) {
	return g.grid.SolidCount(), g.frame.Ticks()
}

// Frame exposes the underlying engine frame.
func (g *Game) Frame() *engine.Frame {
	return g.frame
}

// Explored reports whether a wall tile has been struck by a ray.
func (g *Game) Explored(t engine.Tile) bool {
	_, ok := g.seen[t]
	return ok
}

// Source returns where the map was loaded from, or SourceEmbedded.
func (g *Game) Source() string {
	if g.mapFile.Path == "" {
		return SourceEmbedded
	}
	return g.mapFile.Path
}
