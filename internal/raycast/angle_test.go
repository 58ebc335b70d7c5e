package raycast

import (
	"math"
	"math/rand"
	"testing"
)

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		in, expected float64
	}{
		{0, 0},
		{math.Pi, math.Pi},
		{TwoPi, 0},
		{-math.Pi / 2, 1.5 * math.Pi},
		{5 * math.Pi, math.Pi},
		{-4 * math.Pi, 0},
	}

	for _, tc := range tests {
		got := NormalizeAngle(tc.in)
		if math.Abs(got-tc.expected) > 1e-12 {
			t.Errorf("NormalizeAngle(%v) = %v, expected %v", tc.in, got, tc.expected)
		}
	}
}

func TestNormalizeAngleRangeAndIdempotence(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	inputs := []float64{-1e-17, -1e-300, math.Nextafter(TwoPi, 0), TwoPi, -TwoPi}
	for i := 0; i < 1000; i++ {
		inputs = append(inputs, (rng.Float64()-0.5)*1000)
	}

	for _, a := range inputs {
		n := NormalizeAngle(a)
		if n < 0 || n >= TwoPi {
			t.Fatalf("NormalizeAngle(%v) = %v, outside [0, 2π)", a, n)
		}
		if again := NormalizeAngle(n); again != n {
			t.Fatalf("NormalizeAngle not idempotent for %v: %v then %v", a, n, again)
		}
	}
}

func TestFacingOf(t *testing.T) {
	tests := []struct {
		name     string
		angle    float64
		expected Facing
	}{
		{"east", 0, Facing{Up: true, Right: true}},
		{"south-east", math.Pi / 4, Facing{Down: true, Right: true}},
		{"south", math.Pi / 2, Facing{Down: true, Left: true}},
		{"west", math.Pi, Facing{Up: true, Left: true}},
		{"north-west", 1.25 * math.Pi, Facing{Up: true, Left: true}},
		{"north", 1.5 * math.Pi, Facing{Up: true, Left: true}},
		{"north-east", 1.75 * math.Pi, Facing{Up: true, Right: true}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := FacingOf(tc.angle); got != tc.expected {
				t.Errorf("FacingOf(%v) = %+v, expected %+v", tc.angle, got, tc.expected)
			}
		})
	}
}

func TestDistanceAndConversions(t *testing.T) {
	if d := Distance(0, 0, 3, 4); d != 5 {
		t.Errorf("Distance() = %v, expected 5", d)
	}
	if r := Radians(180); math.Abs(r-math.Pi) > 1e-15 {
		t.Errorf("Radians(180) = %v, expected π", r)
	}
	if d := Degrees(math.Pi / 3); math.Abs(d-60) > 1e-12 {
		t.Errorf("Degrees(π/3) = %v, expected 60", d)
	}
}
