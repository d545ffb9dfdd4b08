package math

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Near reports whether a and b differ by at most tol in every component.
// Unlike mgl32's relative comparison it behaves the same near zero.
func Near(a, b mgl32.Vec3, tol float32) bool {
	d := a.Sub(b)
	return math32.Abs(d.X()) <= tol && math32.Abs(d.Y()) <= tol && math32.Abs(d.Z()) <= tol
}

// NearQuat reports whether a and b describe the same rotation within tol.
func NearQuat(a, b mgl32.Quat, tol float32) bool {
	// q and -q are the same rotation.
	return math32.Abs(a.Normalize().Dot(b.Normalize())) >= 1-tol
}
