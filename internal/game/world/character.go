package world

import (
	"go.uber.org/zap"

	"github.com/Faultbox/charctl/internal/engine/body"
	"github.com/Faultbox/charctl/internal/engine/motion"
	"github.com/Faultbox/charctl/internal/engine/orient"
	"github.com/Faultbox/charctl/internal/game/entity"
)

// Character is a controlled body together with its resolved look entity.
type Character struct {
	Body       entity.ID
	Look       entity.ID
	Controller *motion.Controller
	Backend    body.Backend

	// Steps counts the fixed steps run so far.
	Steps uint64

	rig orient.Rig
	log *zap.Logger
}

// Rig returns the pivots this character's look drives.
func (c *Character) Rig() orient.Rig {
	return c.rig
}

// snapshot reads the body state a step needs. Mass always comes from the
// backend. Kinematic bodies have no velocity of their own worth trusting, so
// the controller's retained velocity is used; dynamic bodies report theirs.
func (c *Character) snapshot() (motion.Body, error) {
	mass, err := c.Backend.Mass()
	if err != nil {
		return motion.Body{}, err
	}
	if c.Backend.Strategy() == body.Kinematic {
		return motion.Body{Mass: mass, Velocity: c.Controller.Velocity}, nil
	}
	vel, err := c.Backend.Velocity()
	if err != nil {
		return motion.Body{}, err
	}
	return motion.Body{Mass: mass, Velocity: vel}, nil
}

// land ends a jump once the backend reports the body on the floor and it
// is no longer rising.
func (c *Character) land() {
	if !c.Controller.Jumping {
		return
	}
	g, ok := c.Backend.(body.Grounder)
	if !ok || !g.Grounded() {
		return
	}
	climb := c.Controller.Velocity.Y()
	if c.Backend.Strategy() != body.Kinematic {
		v, err := c.Backend.Velocity()
		if err != nil {
			return
		}
		climb = v.Y()
	}
	if climb > 0 {
		return
	}
	c.Controller.Land()
	c.log.Debug("landed")
}
