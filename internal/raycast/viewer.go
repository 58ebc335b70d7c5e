package raycast

import "math"

// Obstacles answers point-in-solid queries. *Grid satisfies it.
type Obstacles interface {
	IsSolidAt(x, y float64) bool
}

// Pose is the viewer's position and facing angle at one instant.
type Pose struct {
	X     float64
	Y     float64
	Angle float64
}

// Viewer is the mobile point from which rays are cast.
// Intents are written by the input layer and read, never cleared, by Update.
type Viewer struct {
	X     float64
	Y     float64
	Angle float64 // always normalized to [0, 2π)

	WalkDirection int // -1 back, 0 idle, 1 forward
	TurnDirection int // -1 left, 0 idle, 1 right

	MoveSpeed     float64 // pixels per tick
	RotationSpeed float64 // radians per tick
}

// NewViewer creates a viewer at the given pose with no movement intent.
func NewViewer(p Pose, moveSpeed, rotationSpeed float64) *Viewer {
	return &Viewer{
		X:             p.X,
		Y:             p.Y,
		Angle:         NormalizeAngle(p.Angle),
		MoveSpeed:     moveSpeed,
		RotationSpeed: rotationSpeed,
	}
}

// Pose returns the current pose.
func (v *Viewer) Pose() Pose {
	return Pose{X: v.X, Y: v.Y, Angle: v.Angle}
}

// SetIntents records walk and turn intents, clamped to {-1, 0, 1}.
func (v *Viewer) SetIntents(walk, turn int) {
	v.WalkDirection = sign(walk)
	v.TurnDirection = sign(turn)
}

// Update advances the viewer by one tick.
// Rotation always applies. The move is committed only when the destination
// point is not solid; there is no sliding along walls.
func (v *Viewer) Update(obs Obstacles) {
	v.Angle = NormalizeAngle(v.Angle + float64(v.TurnDirection)*v.RotationSpeed)

	step := float64(v.WalkDirection) * v.MoveSpeed
	if step == 0 {
		return
	}
	nx := v.X + step*math.Cos(v.Angle)
	ny := v.Y + step*math.Sin(v.Angle)
	if !obs.IsSolidAt(nx, ny) {
		v.X = nx
		v.Y = ny
	}
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	default:
		return 0
	}
}
