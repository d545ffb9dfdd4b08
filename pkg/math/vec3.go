// Package math provides vector helpers shared by the look and motion code.
package math

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Epsilon is the squared-length threshold below which a vector is treated as zero.
const Epsilon = 1e-6

// PitchBound is the largest pitch magnitude a look state may hold.
const PitchBound = math32.Pi/2 - 1e-3

// Gravity is the vertical acceleration used by the kinematic fall.
const Gravity float32 = -9.81

// World axes.
var (
	WorldUp      = mgl32.Vec3{0, 1, 0}
	WorldRight   = mgl32.Vec3{1, 0, 0}
	WorldForward = mgl32.Vec3{0, 0, -1}
)

// NonNegligible reports whether v is longer than the noise threshold.
// It compares squared length so no square root is taken.
func NonNegligible(v mgl32.Vec3) bool {
	return v.LenSqr() > Epsilon
}

// NonNegligible2 is NonNegligible for 2D vectors.
func NonNegligible2(v mgl32.Vec2) bool {
	return v.LenSqr() > Epsilon
}

// Horizontal zeroes the vertical component of v and renormalizes it.
// A vector with no horizontal extent yields the zero vector.
func Horizontal(v mgl32.Vec3) mgl32.Vec3 {
	flat := mgl32.Vec3{v.X(), 0, v.Z()}
	if flat.LenSqr() == 0 {
		return mgl32.Vec3{}
	}
	return flat.Normalize()
}

// SplitVertical separates v into its horizontal part and its vertical component.
func SplitVertical(v mgl32.Vec3) (horizontal mgl32.Vec3, vertical float32) {
	return mgl32.Vec3{v.X(), 0, v.Z()}, v.Y()
}

// ClampPitch bounds pitch to [-PitchBound, PitchBound].
func ClampPitch(pitch float32) float32 {
	return mgl32.Clamp(pitch, -PitchBound, PitchBound)
}

// Sum adds up a slice of 2D deltas.
func Sum(deltas []mgl32.Vec2) mgl32.Vec2 {
	var total mgl32.Vec2
	for _, d := range deltas {
		total = total.Add(d)
	}
	return total
}
