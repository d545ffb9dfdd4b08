// Package orient applies yaw and pitch events to pivot transforms.
package orient

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/charctl/internal/engine/events"
	"github.com/Faultbox/charctl/internal/game/entity"
	"github.com/Faultbox/charctl/pkg/math"
)

// Rig routes one look entity's events to its pivots. The yaw pivot is
// usually the body, the pitch pivot the head or camera. Both may be the
// same entity.
type Rig struct {
	Source entity.ID
	Yaw    entity.ID
	Pitch  entity.ID
}

type pose struct {
	yaw, pitch float32
}

// Pivots holds the current rotation of every tracked pivot.
type Pivots struct {
	rigs      []Rig
	poses     map[entity.ID]*pose
	rotations map[entity.ID]mgl32.Quat
}

// NewPivots creates an empty pivot set.
func NewPivots() *Pivots {
	return &Pivots{
		poses:     make(map[entity.ID]*pose),
		rotations: make(map[entity.ID]mgl32.Quat),
	}
}

// Track starts routing events from rig.Source. Pivots start at identity.
func (p *Pivots) Track(rig Rig) {
	p.Untrack(rig.Source)
	p.rigs = append(p.rigs, rig)
	p.poses[rig.Source] = &pose{}
	p.store(rig, p.poses[rig.Source])
}

// Untrack stops routing events from source. Pivot rotations are kept.
func (p *Pivots) Untrack(source entity.ID) {
	for i, r := range p.rigs {
		if r.Source == source {
			p.rigs = append(p.rigs[:i], p.rigs[i+1:]...)
			delete(p.poses, source)
			return
		}
	}
}

// Apply sets each pivot from the last yaw or pitch event its source sent
// this frame. Angles replace the pivot rotation, they do not accumulate.
// It returns the number of events applied.
func (p *Pivots) Apply(frame *events.Frame) int {
	applied := 0
	for _, r := range p.rigs {
		ps := p.poses[r.Source]
		n := 0
		if evt, ok := frame.Channels.Yaw.Last(events.ForEntity[events.Yaw](r.Source)); ok && r.Yaw.Valid() {
			ps.yaw = evt.Yaw
			n++
		}
		if evt, ok := frame.Channels.Pitch.Last(events.ForEntity[events.Pitch](r.Source)); ok && r.Pitch.Valid() {
			ps.pitch = evt.Pitch
			n++
		}
		if n > 0 {
			p.store(r, ps)
			applied += n
		}
	}
	return applied
}

func (p *Pivots) store(r Rig, ps *pose) {
	if r.Yaw == r.Pitch {
		if r.Yaw.Valid() {
			p.rotations[r.Yaw] = math.Yaw(ps.yaw).Mul(math.Pitch(ps.pitch))
		}
		return
	}
	if r.Yaw.Valid() {
		p.rotations[r.Yaw] = math.Yaw(ps.yaw)
	}
	if r.Pitch.Valid() {
		p.rotations[r.Pitch] = math.Pitch(ps.pitch)
	}
}

// Rotation returns the local rotation of pivot.
func (p *Pivots) Rotation(pivot entity.ID) (mgl32.Quat, bool) {
	q, ok := p.rotations[pivot]
	return q, ok
}

// Orientation returns the combined rotation of a rig, yaw then pitch.
func (p *Pivots) Orientation(rig Rig) mgl32.Quat {
	yaw, ok := p.rotations[rig.Yaw]
	if !ok {
		yaw = mgl32.QuatIdent()
	}
	if rig.Yaw == rig.Pitch {
		return yaw
	}
	pitch, ok := p.rotations[rig.Pitch]
	if !ok {
		pitch = mgl32.QuatIdent()
	}
	return yaw.Mul(pitch)
}
