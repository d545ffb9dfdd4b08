package look

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/charctl/pkg/math"
)

// Direction is the orthonormal basis of a look state. It is recomputed from
// the angles every frame, never updated incrementally.
type Direction struct {
	Forward mgl32.Vec3
	Right   mgl32.Vec3
	Up      mgl32.Vec3
}

// Identity is the basis of a look state with all angles zero.
var Identity = Direction{
	Forward: math.WorldForward,
	Right:   math.WorldRight,
	Up:      math.WorldUp,
}

// Direction derives the basis from the current angles.
func (s *State) Direction() Direction {
	q := s.Rotation()
	return Direction{
		Forward: q.Rotate(math.WorldForward),
		Right:   q.Rotate(math.WorldRight),
		Up:      q.Rotate(math.WorldUp),
	}
}

// Flat returns the basis projected for ground movement: forward and right
// lose their vertical component and are renormalized, up is world up.
func (d Direction) Flat() Direction {
	return Direction{
		Forward: math.Horizontal(d.Forward),
		Right:   math.Horizontal(d.Right),
		Up:      math.WorldUp,
	}
}
