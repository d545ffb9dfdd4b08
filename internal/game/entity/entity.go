// Package entity implements entity identifiers and the parent/child hierarchy
// that ties a character body to its head and camera.
package entity

import (
	"fmt"
	"sort"
)

// ID identifies an entity. The zero ID is never assigned.
type ID uint32

// None is the invalid entity.
const None ID = 0

// Valid reports whether the id refers to an assigned entity.
func (id ID) Valid() bool {
	return id != None
}

func (id ID) String() string {
	return fmt.Sprintf("entity#%d", uint32(id))
}

// Kind describes what an entity is used for.
type Kind uint8

const (
	KindBody Kind = iota
	KindHead
	KindCamera
	KindPivot
)

func (k Kind) String() string {
	switch k {
	case KindBody:
		return "body"
	case KindHead:
		return "head"
	case KindCamera:
		return "camera"
	case KindPivot:
		return "pivot"
	default:
		return "unknown"
	}
}

// Entity is a node in the hierarchy.
type Entity struct {
	ID       ID
	Kind     Kind
	Name     string
	Parent   ID
	Children []ID
}

// Registry owns entities and their parent links.
type Registry struct {
	nextID   ID
	entities map[ID]*Entity
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		entities: make(map[ID]*Entity),
	}
}

// Spawn creates a new root entity.
func (r *Registry) Spawn(kind Kind, name string) ID {
	r.nextID++
	id := r.nextID
	r.entities[id] = &Entity{
		ID:   id,
		Kind: kind,
		Name: name,
	}
	return id
}

// SpawnChild creates a new entity parented to parent.
func (r *Registry) SpawnChild(parent ID, kind Kind, name string) (ID, error) {
	if !r.Exists(parent) {
		return None, fmt.Errorf("spawn %s: parent %s does not exist", name, parent)
	}
	id := r.Spawn(kind, name)
	if err := r.SetParent(id, parent); err != nil {
		return None, err
	}
	return id, nil
}

// Exists reports whether id is registered.
func (r *Registry) Exists(id ID) bool {
	_, ok := r.entities[id]
	return ok
}

// Get returns the entity with the given id.
func (r *Registry) Get(id ID) (*Entity, bool) {
	e, ok := r.entities[id]
	return e, ok
}

// Len returns the number of live entities.
func (r *Registry) Len() int {
	return len(r.entities)
}

// SetParent moves child under parent. Passing None detaches child.
func (r *Registry) SetParent(child, parent ID) error {
	c, ok := r.entities[child]
	if !ok {
		return fmt.Errorf("set parent: %s does not exist", child)
	}
	if parent.Valid() {
		if !r.Exists(parent) {
			return fmt.Errorf("set parent: %s does not exist", parent)
		}
		for p := parent; p.Valid(); p = r.entities[p].Parent {
			if p == child {
				return fmt.Errorf("set parent: %s is a descendant of %s", parent, child)
			}
		}
	}

	if c.Parent.Valid() {
		old := r.entities[c.Parent]
		old.Children = removeID(old.Children, child)
	}
	c.Parent = parent
	if parent.Valid() {
		p := r.entities[parent]
		p.Children = append(p.Children, child)
	}
	return nil
}

// Despawn removes an entity and all of its descendants.
func (r *Registry) Despawn(id ID) {
	e, ok := r.entities[id]
	if !ok {
		return
	}
	if e.Parent.Valid() {
		if p, ok := r.entities[e.Parent]; ok {
			p.Children = removeID(p.Children, id)
		}
	}
	r.despawnTree(id)
}

func (r *Registry) despawnTree(id ID) {
	e, ok := r.entities[id]
	if !ok {
		return
	}
	for _, c := range e.Children {
		r.despawnTree(c)
	}
	delete(r.entities, id)
}

// Descendants returns every entity below root in breadth-first order.
// Root itself is not included.
func (r *Registry) Descendants(root ID) []ID {
	e, ok := r.entities[root]
	if !ok {
		return nil
	}
	var out []ID
	queue := append([]ID(nil), e.Children...)
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		out = append(out, id)
		if c, ok := r.entities[id]; ok {
			queue = append(queue, c.Children...)
		}
	}
	return out
}

// Find returns the first entity, starting at root and then walking its
// descendants breadth-first, for which match returns true.
func (r *Registry) Find(root ID, match func(ID) bool) (ID, bool) {
	if !r.Exists(root) {
		return None, false
	}
	if match(root) {
		return root, true
	}
	for _, id := range r.Descendants(root) {
		if match(id) {
			return id, true
		}
	}
	return None, false
}

// IDs returns all registered ids in ascending order.
func (r *Registry) IDs() []ID {
	ids := make([]ID, 0, len(r.entities))
	for id := range r.entities {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func removeID(ids []ID, id ID) []ID {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
