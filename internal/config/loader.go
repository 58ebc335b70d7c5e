package config

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadRaycast loads the raycaster configuration.
// Search order: customPath -> ~/.raycast/configs/raycast.yaml -> ./configs/raycast.yaml -> embedded default
// Files only need to set the keys they change; everything else keeps its default.
func LoadRaycast(customPath string) (RaycastConfig, error) {
	// A custom path must load and validate, otherwise the session cannot start
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return RaycastConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parseRaycast(data)
		if err != nil {
			return RaycastConfig{}, fmt.Errorf("failed to load config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	candidates := []string{"configs/raycast.yaml"}
	if userCfgPath := userConfigPath("raycast.yaml"); userCfgPath != "" {
		candidates = append([]string{userCfgPath}, candidates...)
	}
	for _, p := range candidates {
		data, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		if cfg, err := parseRaycast(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	if cfg, err := parseRaycast(defaultRaycastYAML); err == nil {
		return cfg, nil
	}
	return DefaultRaycastConfig(), nil
}

// parseRaycast overlays YAML onto the defaults and validates the result.
func parseRaycast(data []byte) (RaycastConfig, error) {
	cfg := DefaultRaycastConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return RaycastConfig{}, fmt.Errorf("parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return RaycastConfig{}, fmt.Errorf("invalid: %w", err)
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".raycast", "configs", filename)
}

// ParseMap parses a YAML map file.
func ParseMap(data []byte) (MapFile, error) {
	var m MapFile
	if err := yaml.Unmarshal(data, &m); err != nil {
		return MapFile{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if len(m.Grid) == 0 {
		return MapFile{}, fmt.Errorf("map %q has no grid rows", m.ID)
	}
	return m, nil
}

// LoadMapFile loads a single map file. A missing id defaults to the file name.
func LoadMapFile(p string) (MapFile, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return MapFile{}, fmt.Errorf("reading file %s: %w", p, err)
	}
	m, err := ParseMap(data)
	if err != nil {
		return MapFile{}, fmt.Errorf("parsing file %s: %w", p, err)
	}
	if m.ID == "" {
		m.ID = strings.TrimSuffix(filepath.Base(p), filepath.Ext(p))
	}
	m.Path = p
	return m, nil
}

// EmbeddedMaps returns the built-in maps sorted by ID.
func EmbeddedMaps() ([]MapFile, error) {
	entries, err := fs.ReadDir(embeddedMaps, "defaults/maps")
	if err != nil {
		return nil, fmt.Errorf("reading embedded maps: %w", err)
	}

	maps := make([]MapFile, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !isMapExtension(path.Ext(e.Name())) {
			continue
		}
		data, err := fs.ReadFile(embeddedMaps, path.Join("defaults/maps", e.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading embedded map %s: %w", e.Name(), err)
		}
		m, err := ParseMap(data)
		if err != nil {
			return nil, fmt.Errorf("parsing embedded map %s: %w", e.Name(), err)
		}
		maps = append(maps, m)
	}

	sort.Slice(maps, func(i, j int) bool {
		return maps[i].ID < maps[j].ID
	})
	return maps, nil
}

// MapLoader loads maps from a directory tree.
type MapLoader struct {
	Root string
}

// NewMapLoader creates a new map loader.
func NewMapLoader(root string) *MapLoader {
	return &MapLoader{Root: root}
}

// LoadAll recursively scans and loads all map files.
// Files that fail to parse are skipped. Returns maps sorted by ID.
func (l *MapLoader) LoadAll() ([]MapFile, error) {
	var maps []MapFile

	err := filepath.WalkDir(l.Root, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isMapExtension(filepath.Ext(p)) {
			return nil
		}

		m, err := LoadMapFile(p)
		if err != nil {
			return nil
		}
		maps = append(maps, m)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	sort.Slice(maps, func(i, j int) bool {
		return maps[i].ID < maps[j].ID
	})
	return maps, nil
}

// LoadByID loads a specific map by ID.
func (l *MapLoader) LoadByID(id string) (MapFile, error) {
	maps, err := l.LoadAll()
	if err != nil {
		return MapFile{}, err
	}
	for _, m := range maps {
		if m.ID == id {
			return m, nil
		}
	}
	return MapFile{}, fmt.Errorf("map not found: %s", id)
}

func isMapExtension(ext string) bool {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
