package math

import (
	"github.com/go-gl/mathgl/mgl32"
)

// YawPitchRoll composes a rotation that applies yaw around the world up axis,
// then pitch around the resulting right axis, then roll around forward.
func YawPitchRoll(yaw, pitch, roll float32) mgl32.Quat {
	q := mgl32.QuatRotate(yaw, WorldUp)
	q = q.Mul(mgl32.QuatRotate(pitch, WorldRight))
	q = q.Mul(mgl32.QuatRotate(roll, mgl32.Vec3{0, 0, 1}))
	return q.Normalize()
}

// Yaw returns a pure rotation around the world up axis.
func Yaw(angle float32) mgl32.Quat {
	return mgl32.QuatRotate(angle, WorldUp)
}

// Pitch returns a pure rotation around the local right axis.
func Pitch(angle float32) mgl32.Quat {
	return mgl32.QuatRotate(angle, WorldRight)
}
