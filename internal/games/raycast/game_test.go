package raycast

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-raycast/internal/config"
	"github.com/vovakirdan/tui-raycast/internal/core"
	engine "github.com/vovakirdan/tui-raycast/internal/raycast"
	"github.com/vovakirdan/tui-raycast/internal/registry"
)

func boxMap() config.MapFile {
	angle := 0.0
	return config.MapFile{
		ID:       "box",
		Name:     "Test Box",
		TileSize: 10,
		Start:    &config.MapStart{X: 25, Y: 25, AngleDegrees: &angle},
		Grid: []string{
			"11111",
			"10001",
			"10001",
			"10001",
			"11111",
		},
	}
}

func testConfig() config.RaycastConfig {
	cfg := config.DefaultRaycastConfig()
	cfg.View.WindowWidth = 10
	cfg.Player.MoveSpeed = 2
	cfg.Player.RotationSpeedDegrees = 6
	cfg.Input.HoldTicks = 3
	cfg.Render.RayEvery = 3
	return cfg
}

func newTestGame(t *testing.T) *Game {
	t.Helper()
	g, err := New(boxMap(), testConfig())
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	g.Reset(core.RuntimeConfig{ScreenW: 40, ScreenH: 20, TickRate: 60})
	return g
}

func input(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func TestNewUsesMapStart(t *testing.T) {
	g := newTestGame(t)

	p := g.Frame().Viewer().Pose()
	if p.X != 25 || p.Y != 25 || p.Angle != 0 {
		t.Errorf("start pose = %+v, expected (25, 25, 0)", p)
	}
	if n := g.Frame().Rays().Len(); n != 10 {
		t.Errorf("ray count = %d, expected 10", n)
	}
	if g.ID() != "box" || g.Title() != "Test Box" {
		t.Errorf("ID/Title = %s/%s", g.ID(), g.Title())
	}
}

func TestNewDefaultsToMapCenter(t *testing.T) {
	m := boxMap()
	m.Start = nil
	cfg := testConfig()
	cfg.Player.StartAngleDegrees = 180

	g, err := New(m, cfg)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	p := g.Frame().Viewer().Pose()
	if p.X != 25 || p.Y != 25 || math.Abs(p.Angle-math.Pi) > 1e-12 {
		t.Errorf("start pose = %+v, expected map center facing left", p)
	}
}

func TestNewRejectsBadInput(t *testing.T) {
	inWall := boxMap()
	inWall.Start = &config.MapStart{X: 5, Y: 5}

	ragged := boxMap()
	ragged.Grid[2] = "1001"

	badCfg := testConfig()
	badCfg.Input.HoldTicks = 0

	tests := []struct {
		name string
		m    config.MapFile
		cfg  config.RaycastConfig
	}{
		{"start inside wall", inWall, testConfig()},
		{"ragged grid", ragged, testConfig()},
		{"invalid config", boxMap(), badCfg},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New(tc.m, tc.cfg); err == nil {
				t.Error("New() should fail")
			}
		})
	}
}

func TestStepWalksForward(t *testing.T) {
	g := newTestGame(t)

	g.Step(input(core.ActionForward))

	p := g.Frame().Viewer().Pose()
	if math.Abs(p.X-27) > 1e-9 || math.Abs(p.Y-25) > 1e-9 {
		t.Errorf("after one forward step pose = %+v, expected (27, 25)", p)
	}
	if g.Frame().Ticks() != 1 {
		t.Errorf("frame ticks = %d, expected 1", g.Frame().Ticks())
	}
}

func TestStepHoldsIntentAfterPress(t *testing.T) {
	g := newTestGame(t)

	g.Step(input(core.ActionForward))
	for range 4 {
		g.Step(core.NewInputFrame())
	}

	// HoldTicks = 3: one press moves the viewer for three ticks.
	if x := g.Frame().Viewer().X; math.Abs(x-31) > 1e-9 {
		t.Errorf("X = %v, expected 31", x)
	}
}

func TestStepStopsAtWall(t *testing.T) {
	g := newTestGame(t)

	for range 20 {
		g.Step(input(core.ActionForward))
	}

	if x := g.Frame().Viewer().X; x >= 40 {
		t.Errorf("viewer entered the wall, X = %v", x)
	}
}

func TestPauseFreezesViewer(t *testing.T) {
	g := newTestGame(t)

	g.Step(input(core.ActionPause))
	if !g.State().Paused {
		t.Fatal("State().Paused = false after pause")
	}

	g.Step(input(core.ActionForward))
	if x := g.Frame().Viewer().X; x != 25 {
		t.Errorf("paused viewer moved to X = %v", x)
	}

	g.Step(input(core.ActionPause))
	g.Step(input(core.ActionForward))
	if x := g.Frame().Viewer().X; x == 25 {
		t.Error("viewer should move after unpausing")
	}
}

func TestRestartResetsPoseAndScore(t *testing.T) {
	g := newTestGame(t)
	initial := g.State().Score

	for range 30 {
		g.Step(input(core.ActionTurnRight, core.ActionForward))
	}
	if g.State().Score <= initial {
		t.Fatalf("score should grow while exploring, got %d", g.State().Score)
	}

	g.Step(input(core.ActionRestart))

	p := g.Frame().Viewer().Pose()
	if p.X != 25 || p.Y != 25 || p.Angle != 0 {
		t.Errorf("pose after restart = %+v", p)
	}
	if g.State().Score != initial {
		t.Errorf("score after restart = %d, expected %d", g.State().Score, initial)
	}
	if s := g.Snapshot(false); s.Tick != 0 || s.FrameTicks != 0 {
		t.Errorf("ticks after restart = %d/%d, expected 0", s.Tick, s.FrameTicks)
	}
}

func TestExplorationCountsDistinctWalls(t *testing.T) {
	g := newTestGame(t)

	if !g.Explored(engine.Tile{Row: 2, Col: 4}) {
		t.Error("wall straight ahead should be explored at start")
	}
	if g.Explored(engine.Tile{Row: 2, Col: 0}) {
		t.Error("wall behind the viewer should not be explored at start")
	}

	prev := g.State().Score
	for range 60 {
		g.Step(input(core.ActionTurnRight))
		score := g.State().Score
		if score < prev {
			t.Fatalf("score decreased from %d to %d", prev, score)
		}
		prev = score
	}

	// A full turn sees at least every non-corner border tile.
	if prev < 12 || prev > 16 {
		t.Errorf("score after full turn = %d, expected 12..16", prev)
	}
	if g.State().GameOver {
		t.Error("exploration never ends the session")
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(t)
	s := core.NewScreen(40, 20)

	g.Render(s)

	out := s.String()
	if !strings.Contains(s.Row(0), "Test Box") {
		t.Errorf("HUD row = %q, expected map title", s.Row(0))
	}
	if !strings.ContainsRune(out, '→') {
		t.Error("viewer glyph facing right not drawn")
	}
	if !strings.ContainsRune(out, '█') {
		t.Error("walls not drawn")
	}
	if !strings.ContainsRune(out, '|') {
		t.Error("vertical hit marks not drawn")
	}
	if !strings.ContainsRune(out, '·') {
		t.Error("ray lines not drawn")
	}
}

func TestRenderPausedOverlay(t *testing.T) {
	g := newTestGame(t)
	g.Step(input(core.ActionPause))

	s := core.NewScreen(40, 20)
	g.Render(s)

	if !strings.Contains(s.String(), "Paused") {
		t.Error("pause overlay not drawn")
	}
}

func TestRenderTooSmall(t *testing.T) {
	g := newTestGame(t)
	s := core.NewScreen(20, 6)

	g.Render(s)

	if !strings.Contains(s.Row(1), "Window too small") {
		t.Errorf("expected too-small overlay, got:\n%s", s.String())
	}
}

func TestRenderWithoutHUD(t *testing.T) {
	cfg := testConfig()
	cfg.Render.ShowHUD = false
	g, err := New(boxMap(), cfg)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	s := core.NewScreen(10, 5)
	g.Render(s)

	if strings.Contains(s.String(), "Explored") {
		t.Error("HUD drawn with show_hud disabled")
	}
	if !strings.ContainsRune(s.String(), '█') {
		t.Error("map should fit a 10x5 screen without HUD")
	}
}

func TestFacingGlyph(t *testing.T) {
	tests := []struct {
		degrees float64
		want    rune
	}{
		{0, '→'},
		{20, '→'},
		{45, '↘'},
		{90, '↓'},
		{180, '←'},
		{270, '↑'},
		{315, '↗'},
		{350, '→'},
		{-90, '↑'},
	}

	for _, tc := range tests {
		if got := facingGlyph(engine.Radians(tc.degrees)); got != tc.want {
			t.Errorf("facingGlyph(%v°) = %q, expected %q", tc.degrees, got, tc.want)
		}
	}
}

func TestSampledRaysIncludeBothEdges(t *testing.T) {
	g := newTestGame(t)

	rays := g.sampledRays(g.Frame().Rays())
	cols := make([]int, len(rays))
	for i, r := range rays {
		cols[i] = r.Column
	}
	// 10 rays sampled every 3rd: 0, 3, 6, 9
	expected := []int{0, 3, 6, 9}
	if len(cols) != len(expected) {
		t.Fatalf("sampled columns = %v, expected %v", cols, expected)
	}
	for i := range expected {
		if cols[i] != expected[i] {
			t.Errorf("sampled columns = %v, expected %v", cols, expected)
			break
		}
	}
}

func TestSnapshot(t *testing.T) {
	g := newTestGame(t)

	s := g.Snapshot(true)
	if s.Map != "box" || s.NumRays != 10 || len(s.Rays) != 10 {
		t.Fatalf("Snapshot() = %+v", s)
	}
	if s.Walls != 16 {
		t.Errorf("Walls = %d, expected 16", s.Walls)
	}
	if s.Center == nil || s.Center.Side != "vertical" || s.Center.Row != 2 || s.Center.Col != 4 {
		t.Errorf("Center = %+v, expected vertical hit on tile (2, 4)", s.Center)
	}
	if math.Abs(s.Center.Distance-15) > 1e-9 {
		t.Errorf("Center.Distance = %v, expected 15", s.Center.Distance)
	}
	if g.Snapshot(false).Rays != nil {
		t.Error("Snapshot(false) should omit rays")
	}
}

func TestEmbeddedMapsRegistered(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	for _, id := range []string{"classic", "corridor", "pillars"} {
		if !registry.Exists(id) {
			t.Errorf("map %q not registered", id)
			continue
		}
		g, err := registry.Create(id)
		if err != nil {
			t.Errorf("Create(%q) failed: %v", id, err)
			continue
		}
		if g.ID() != id {
			t.Errorf("Create(%q).ID() = %s", id, g.ID())
		}
	}
}

func TestRegisterFile(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "zz-file-map.yaml")
	data := "name: File Map\ntile_size: 16\ngrid:\n  - '####'\n  - '#..#'\n  - '####'\n"
	if err := os.WriteFile(p, []byte(data), 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	info, err := RegisterFile(p)
	if err != nil {
		t.Fatalf("RegisterFile() failed: %v", err)
	}
	t.Cleanup(func() { registry.Unregister(info.ID) })

	if info.ID != "zz-file-map" || info.Title != "File Map" || info.Source != p {
		t.Errorf("RegisterFile() = %+v", info)
	}
	if _, err := RegisterFile(p); err == nil {
		t.Error("registering the same map twice should fail")
	}
}

func TestSetConfigPathAppliesToFactories(t *testing.T) {
	p := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(p, []byte("view:\n  strip_width: 0\n"), 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	SetConfigPath(p)
	t.Cleanup(func() { SetConfigPath("") })

	if _, err := registry.Create("classic"); err == nil {
		t.Error("Create() should fail with an invalid config file")
	}
}

func TestRegisterDir(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"zz-dir-a.yaml":       "tile_size: 8\ngrid:\n  - '###'\n  - '#.#'\n  - '###'\n",
		"nested/zz-dir-b.yml": "name: Dir B\ntile_size: 8\ngrid:\n  - '###'\n  - '#.#'\n  - '###'\n",
		"zz-dir-ragged.yaml":  "tile_size: 8\ngrid:\n  - '###'\n  - '#.'\n",
		"classic.yaml":        "tile_size: 8\ngrid:\n  - '##'\n",
	}
	for name, data := range files {
		p := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatalf("MkdirAll() failed: %v", err)
		}
		if err := os.WriteFile(p, []byte(data), 0o600); err != nil {
			t.Fatalf("WriteFile() failed: %v", err)
		}
	}

	infos, err := RegisterDir(dir)
	if err != nil {
		t.Fatalf("RegisterDir() failed: %v", err)
	}
	for _, info := range infos {
		t.Cleanup(func() { registry.Unregister(info.ID) })
	}

	if len(infos) != 2 || infos[0].ID != "zz-dir-a" || infos[1].ID != "zz-dir-b" {
		t.Fatalf("RegisterDir() = %+v, expected zz-dir-a and zz-dir-b", infos)
	}
	if infos[1].Title != "Dir B" || infos[1].Source != filepath.Join(dir, "nested", "zz-dir-b.yml") {
		t.Errorf("RegisterDir()[1] = %+v", infos[1])
	}
	if registry.Exists("zz-dir-ragged") {
		t.Error("malformed grid should not be registered")
	}
}

func TestRegisterFromDir(t *testing.T) {
	dir := t.TempDir()
	data := "tile_size: 8\ngrid:\n  - '###'\n  - '#.#'\n  - '###'\n"
	if err := os.WriteFile(filepath.Join(dir, "zz-one.yaml"), []byte(data), 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	info, err := RegisterFromDir(dir, "zz-one")
	if err != nil {
		t.Fatalf("RegisterFromDir() failed: %v", err)
	}
	t.Cleanup(func() { registry.Unregister(info.ID) })

	if _, err := registry.Create("zz-one"); err != nil {
		t.Errorf("Create() failed: %v", err)
	}
	if _, err := RegisterFromDir(dir, "zz-missing"); err == nil {
		t.Error("RegisterFromDir() should fail for a missing id")
	}
}
