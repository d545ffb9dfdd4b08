// Package world runs the per-frame character pipeline: look, motion,
// orientation and body backends, in that order.
package world

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/charctl/internal/config"
	"github.com/Faultbox/charctl/internal/engine/body"
	"github.com/Faultbox/charctl/internal/engine/events"
	"github.com/Faultbox/charctl/internal/engine/input"
	"github.com/Faultbox/charctl/internal/engine/look"
	"github.com/Faultbox/charctl/internal/engine/motion"
	"github.com/Faultbox/charctl/internal/engine/orient"
	"github.com/Faultbox/charctl/internal/game/entity"
	"github.com/Faultbox/charctl/internal/logger"
)

// Reporter receives per-character failures.
type Reporter interface {
	Failure(id entity.ID, frame uint64, err error)
}

// World owns the entities, look states and characters of one scene.
type World struct {
	Entities *entity.Registry

	looks      map[entity.ID]*look.State
	characters []*Character
	channels   *events.Set
	pivots     *orient.Pivots
	reporter   Reporter
	frame      uint64
	log        *zap.Logger
}

// Option configures a World.
type Option func(*World)

// WithReporter forwards character failures to r.
func WithReporter(r Reporter) Option {
	return func(w *World) { w.reporter = r }
}

// WithLogger replaces the world's logger.
func WithLogger(l *zap.Logger) Option {
	return func(w *World) { w.log = l }
}

// New creates an empty world.
func New(opts ...Option) *World {
	w := &World{
		Entities: entity.NewRegistry(),
		looks:    make(map[entity.ID]*look.State),
		channels: events.NewSet(),
		pivots:   orient.NewPivots(),
		log:      logger.Named("world"),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// AddLook gives id a look state.
func (w *World) AddLook(id entity.ID, sensitivity float32) (*look.State, error) {
	if !w.Entities.Exists(id) {
		return nil, fmt.Errorf("add look: %s does not exist", id)
	}
	s := look.New(sensitivity)
	w.looks[id] = s
	return s, nil
}

// Look returns the look state of id.
func (w *World) Look(id entity.ID) (*look.State, bool) {
	s, ok := w.looks[id]
	return s, ok
}

// Attach makes bodyID a controlled character. The look entity is resolved
// here, once: the body itself if it has a look state, otherwise its first
// descendant that does.
func (w *World) Attach(bodyID entity.ID, bindings input.Bindings, cfg motion.Config, backend body.Backend) (*Character, error) {
	if !w.Entities.Exists(bodyID) {
		return nil, fmt.Errorf("attach: %s does not exist", bodyID)
	}
	if _, ok := w.Character(bodyID); ok {
		return nil, fmt.Errorf("attach: %s is already a character", bodyID)
	}
	if backend == nil {
		return nil, fmt.Errorf("attach %s: no body backend", bodyID)
	}
	if backend.Entity() != bodyID {
		return nil, fmt.Errorf("attach %s: backend belongs to %s", bodyID, backend.Entity())
	}

	lookID, ok := w.Entities.Find(bodyID, func(id entity.ID) bool {
		_, ok := w.looks[id]
		return ok
	})
	if !ok {
		return nil, &MissingAssociationError{Entity: bodyID}
	}

	c := &Character{
		Body:       bodyID,
		Look:       lookID,
		Controller: motion.New(bodyID, bindings, cfg),
		Backend:    backend,
		rig:        orient.Rig{Source: lookID, Yaw: bodyID, Pitch: lookID},
		log: w.log.With(
			zap.Stringer("entity", bodyID),
			zap.Stringer("look", lookID),
		),
	}
	w.characters = append(w.characters, c)
	w.pivots.Track(c.rig)

	c.log.Info("character attached",
		zap.Stringer("backend", backend.Strategy()),
		zap.Bool("fly", c.Controller.Fly),
	)
	return c, nil
}

// Detach stops controlling bodyID. Its entities and look state remain.
func (w *World) Detach(bodyID entity.ID) bool {
	for i, c := range w.characters {
		if c.Body == bodyID {
			w.characters = append(w.characters[:i], w.characters[i+1:]...)
			w.pivots.Untrack(c.Look)
			c.log.Info("character detached")
			return true
		}
	}
	return false
}

// Character returns the character controlling bodyID.
func (w *World) Character(bodyID entity.ID) (*Character, bool) {
	for _, c := range w.characters {
		if c.Body == bodyID {
			return c, true
		}
	}
	return nil, false
}

// Characters returns the attached characters in attach order.
func (w *World) Characters() []*Character {
	return w.characters
}

// Pivots returns the orientation pivots fed by look events.
func (w *World) Pivots() *orient.Pivots {
	return w.pivots
}

// Retune applies reloaded tuning to every character between frames.
// Bindings and backends are fixed at attach time and left alone.
func (w *World) Retune(cfg *config.Config) {
	for _, c := range w.characters {
		c.Controller.Retune(cfg.Motion())
		if s, ok := w.looks[c.Look]; ok {
			s.Sensitivity = cfg.Look.Sensitivity
		}
	}
	w.log.Info("tuning applied",
		zap.Int("characters", len(w.characters)),
		zap.Float32("walk_speed", cfg.Controller.WalkSpeed),
		zap.Float32("run_speed", cfg.Controller.RunSpeed),
		zap.Float32("sensitivity", cfg.Look.Sensitivity),
	)
}

// Update runs one frame. A character that fails is skipped for the frame;
// the others still update. The returned error joins every failure.
func (w *World) Update(dt time.Duration, dev input.Device) (*events.Frame, error) {
	w.frame++
	frame := events.Begin(w.channels, w.frame, dt)

	// Look first, so motion reads this frame's basis.
	mouse := dev.MouseDeltas()
	updated := make(map[entity.ID]bool, len(w.characters))
	for _, c := range w.characters {
		if updated[c.Look] {
			continue
		}
		updated[c.Look] = true
		if s, ok := w.looks[c.Look]; ok {
			s.Update(frame, c.Look, mouse)
		}
	}

	var errs []error
	stepped := make([]bool, len(w.characters))
	for i, c := range w.characters {
		ok, err := w.step(frame, c, dev)
		if err != nil {
			errs = append(errs, err)
			c.log.Error("character update failed", zap.Uint64("frame", frame.Number), zap.Error(err))
			if w.reporter != nil {
				w.reporter.Failure(c.Body, frame.Number, err)
			}
		}
		stepped[i] = ok
	}

	w.pivots.Apply(frame)

	for i, c := range w.characters {
		c.Backend.Consume(frame)
		if stepped[i] {
			c.Backend.Step(c.Controller.FixedTimestep)
			c.land()
		}
	}

	return frame, errors.Join(errs...)
}

// step samples input and, when a fixed step is due, derives motion. It
// reports whether a step ran.
func (w *World) step(frame *events.Frame, c *Character, dev input.Device) (bool, error) {
	due, toggled := c.Controller.Sample(dev, frame.Seconds())
	if toggled {
		c.log.Info("fly toggled", zap.Bool("fly", c.Controller.Fly))
	}
	if !due {
		return false, nil
	}

	s, ok := w.looks[c.Look]
	if !ok {
		return false, &MissingAssociationError{Entity: c.Body}
	}

	snap, err := c.snapshot()
	if err != nil {
		return false, err
	}

	res := c.Controller.Step(frame, s.Direction(), snap)
	c.Steps++
	if ce := c.log.Check(zap.DebugLevel, "step"); ce != nil {
		ce.Write(
			zap.Uint64("frame", frame.Number),
			zap.Any("desired", res.Desired),
			zap.Bool("impulse", res.Emitted.Impulse),
			zap.Bool("force", res.Emitted.Force),
			zap.Bool("translation", res.Emitted.Translation),
			zap.Bool("jumping", c.Controller.Jumping),
		)
	}
	return true, nil
}
