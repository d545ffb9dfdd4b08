package world

import (
	"github.com/Faultbox/charctl/internal/config"
	"github.com/Faultbox/charctl/internal/engine/body"
	"github.com/Faultbox/charctl/internal/engine/body/kinematic"
	"github.com/Faultbox/charctl/internal/engine/body/planar"
	"github.com/Faultbox/charctl/internal/game/entity"
)

// Spawn creates a body -> head -> camera rig, puts the look state on the
// camera and attaches the body with the backend named in cfg.
func (w *World) Spawn(cfg *config.Config) (*Character, error) {
	bindings, err := cfg.KeyBindings()
	if err != nil {
		return nil, err
	}

	bodyID := w.Entities.Spawn(entity.KindBody, "player")
	head, err := w.Entities.SpawnChild(bodyID, entity.KindHead, "head")
	if err != nil {
		return nil, err
	}
	cam, err := w.Entities.SpawnChild(head, entity.KindCamera, "camera")
	if err != nil {
		return nil, err
	}
	if _, err := w.AddLook(cam, cfg.Look.Sensitivity); err != nil {
		return nil, err
	}

	backend, err := NewBackend(bodyID, cfg)
	if err != nil {
		w.discard(bodyID)
		return nil, err
	}
	c, err := w.Attach(bodyID, bindings, cfg.Motion(), backend)
	if err != nil {
		w.discard(bodyID)
		return nil, err
	}
	return c, nil
}

// NewBackend builds the body backend named in cfg.
func NewBackend(id entity.ID, cfg *config.Config) (body.Backend, error) {
	strategy, err := body.ParseStrategy(cfg.Body.Backend)
	if err != nil {
		return nil, err
	}
	if strategy == body.Kinematic {
		return kinematic.New(id, cfg.Body.Mass, cfg.Body.Floor, cfg.SpawnPoint()), nil
	}
	return planar.New(id, strategy, cfg.Body.Mass, cfg.Body.Floor, cfg.SpawnPoint())
}

// discard despawns root and drops the look states of its subtree.
func (w *World) discard(root entity.ID) {
	delete(w.looks, root)
	for _, id := range w.Entities.Descendants(root) {
		delete(w.looks, id)
	}
	w.Entities.Despawn(root)
}
