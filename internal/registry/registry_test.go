package registry

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-raycast/internal/core"
)

type stubGame struct{ id string }

func (g *stubGame) ID() string { return g.id }
func (g *stubGame) Title() string { return "Stub " + g.id }
func (g *stubGame) Reset(core.RuntimeConfig) {}
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen) {}
func (g *stubGame) State() core.GameState { return core.GameState{} }

func register(t *testing.T, info MapInfo, f Factory) {
	t.Helper()
	Register(info, f)
	t.Cleanup(func() { Unregister(info.ID) })
}

func TestRegisterAndCreate(t *testing.T) {
	register(t, MapInfo{ID: "zz-test-b", Title: "B"}, func() (Game, error) { return &stubGame{id: "zz-test-b"}, nil })
	register(t, MapInfo{ID: "zz-test-a"}, func() (Game, error) { return &stubGame{id: "zz-test-a"}, nil })

	if !Exists("zz-test-a") || !Exists("zz-test-b") {
		t.Fatal("registered maps should exist")
	}

	g, err := Create("zz-test-b")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.ID() != "zz-test-b" {
		t.Errorf("Create().ID() = %s, expected zz-test-b", g.ID())
	}

	var found []MapInfo
	for _, info := range List() {
		if info.ID == "zz-test-a" || info.ID == "zz-test-b" {
			found = append(found, info)
		}
	}
	if len(found) != 2 || found[0].ID != "zz-test-a" {
		t.Fatalf("List() should be sorted by ID, got %+v", found)
	}
	if found[0].Title != "zz-test-a" {
		t.Errorf("empty title should default to ID, got %q", found[0].Title)
	}
}

func TestCreateUnknown(t *testing.T) {
	if _, err := Create("zz-missing"); err == nil {
		t.Error("Create() should fail for unknown map")
	}
}

func TestCreateWrapsFactoryError(t *testing.T) {
	boom := errors.New("boom")
	register(t, MapInfo{ID: "zz-broken"}, func() (Game, error) { return nil, boom })

	_, err := Create("zz-broken")
	if !errors.Is(err, boom) {
		t.Errorf("Create() error = %v, expected wrapped %v", err, boom)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	f := func() (Game, error) { return &stubGame{id: "zz-dup"}, nil }
	register(t, MapInfo{ID: "zz-dup"}, f)

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register(MapInfo{ID: "zz-dup"}, f)
}

func TestUnregister(t *testing.T) {
	Register(MapInfo{ID: "zz-gone"}, func() (Game, error) { return &stubGame{id: "zz-gone"}, nil })

	if !Unregister("zz-gone") {
		t.Fatal("Unregister() = false, expected true")
	}
	if Exists("zz-gone") || Unregister("zz-gone") {
		t.Error("map should be gone after Unregister")
	}
}
