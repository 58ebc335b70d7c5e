// Package registry provides a global registry of playable maps.
// Each map registers a factory in init() or at startup, allowing the platform
// to list and open maps without depending on how they were loaded.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-raycast/internal/core"
)

// Game is a single raycasting session bound to one map.
// Implementations are pure logic with no Bubble Tea dependency;
// the platform handles input mapping, timing, and rendering.
type Game interface {
	// ID returns the map identifier (e.g., "classic").
	// Used for CLI commands and run storage.
	ID() string

	// Title returns a human-readable map name.
	Title() string

	// Reset places the viewer at its start pose and clears run statistics.
	Reset(cfg core.RuntimeConfig)

	// Step advances the session by one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the minimap and HUD into a pre-cleared screen.
	Render(dst *core.Screen)

	// State returns the current session state.
	State() core.GameState
}

// MapInfo contains metadata about a registered map.
type MapInfo struct {
	ID     string
	Title  string
	Source string // "embedded" or a file path
}

// Factory creates a new session for a registered map.
type Factory func() (Game, error)

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]MapInfo)
	mu        sync.RWMutex
)

// Register adds a map factory to the registry.
// Panics if a map with the same ID is already registered.
func Register(info MapInfo, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if info.ID == "" {
		panic("registry: map with empty id")
	}
	if _, exists := factories[info.ID]; exists {
		panic(fmt.Sprintf("registry: map %q already registered", info.ID))
	}
	if info.Title == "" {
		info.Title = info.ID
	}

	factories[info.ID] = f
	infos[info.ID] = info
}

// List returns information about all registered maps, sorted by ID.
func List() []MapInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]MapInfo, 0, len(infos))
	for _, info := range infos {
		result = append(result, info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create opens a new session on the map with the given ID.
func Create(id string) (Game, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown map %q", id)
	}

	g, err := f()
	if err != nil {
		return nil, fmt.Errorf("registry: map %q: %w", id, err)
	}
	return g, nil
}

// Exists checks if a map with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}

// Unregister removes a map. It reports whether the map was registered.
func Unregister(id string) bool {
	mu.Lock()
	defer mu.Unlock()

	if _, ok := factories[id]; !ok {
		return false
	}
	delete(factories, id)
	delete(infos, id)
	return true
}
