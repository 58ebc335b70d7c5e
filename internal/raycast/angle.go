package raycast

import "math"

// TwoPi is a full turn in radians.
const TwoPi = 2 * math.Pi

// NormalizeAngle maps any finite angle into [0, 2π).
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, TwoPi)
	if a < 0 {
		a += TwoPi
	}
	// Adding 2π to a tiny negative remainder can round up to exactly 2π.
	if a >= TwoPi {
		a = 0
	}
	return a
}

// Distance returns the Euclidean distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// Facing classifies a normalized angle into screen-space quadrant flags.
// The y axis points down, so angles in (0, π) face down.
type Facing struct {
	Up    bool
	Down  bool
	Left  bool
	Right bool
}

// FacingOf derives the facing flags of a normalized angle.
func FacingOf(angle float64) Facing {
	down := angle > 0 && angle < math.Pi
	right := angle < 0.5*math.Pi || angle > 1.5*math.Pi
	return Facing{
		Up:    !down,
		Down:  down,
		Left:  !right,
		Right: right,
	}
}
