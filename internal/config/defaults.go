package config

import (
	"embed"
)

//go:embed defaults/raycast.yaml
var defaultRaycastYAML []byte

//go:embed defaults/maps/*.yaml
var embeddedMaps embed.FS

// DefaultRaycastConfig returns the built-in configuration.
func DefaultRaycastConfig() RaycastConfig {
	return RaycastConfig{
		View: ViewConfig{
			FOVDegrees:  60,
			StripWidth:  1,
			WindowWidth: 0,
		},
		Player: PlayerConfig{
			MoveSpeed:            2.0,
			RotationSpeedDegrees: 2.0,
			StartAngleDegrees:    90,
			Radius:               3,
		},
		Input: InputConfig{
			HoldTicks: 6,
		},
		Render: RenderConfig{
			RayEvery: 8,
			ShowHUD:  true,
		},
	}
}

// GetDefaultYAML returns the embedded default configuration file.
func GetDefaultYAML() []byte {
	return defaultRaycastYAML
}
