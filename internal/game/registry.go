package game

import (
	"fmt"
	"iter"
)

// GameObject joins a physics body to its tier.
type GameObject struct {
	ID   BodyID
	Tier int
}

// Registry owns the id → tier mapping for every live game object. Spatial
// state stays with the physics world; the registry is the single source of
// truth for which ids are still in play.
type Registry struct {
	objects map[BodyID]int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{objects: make(map[BodyID]int)}
}

// Register inserts a new mapping.
func (r *Registry) Register(id BodyID, tier int) error {
	if _, ok := r.objects[id]; ok {
		return fmt.Errorf("%w: %d", ErrDuplicateID, id)
	}
	r.objects[id] = tier
	return nil
}

// Lookup returns the tier of id.
func (r *Registry) Lookup(id BodyID) (int, error) {
	tier, ok := r.objects[id]
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return tier, nil
}

// Remove deletes id. Removing an absent id is a caller bug and reports ErrNotFound.
func (r *Registry) Remove(id BodyID) error {
	if _, ok := r.objects[id]; !ok {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	delete(r.objects, id)
	return nil
}

// Len returns the number of live objects.
func (r *Registry) Len() int {
	return len(r.objects)
}

// All returns a snapshot of the live objects taken at call time. The sequence
// can be ranged over once; later registry mutations are not reflected.
func (r *Registry) All() iter.Seq2[BodyID, int] {
	snap := make([]GameObject, 0, len(r.objects))
	for id, tier := range r.objects {
		snap = append(snap, GameObject{ID: id, Tier: tier})
	}
	consumed := false
	return func(yield func(BodyID, int) bool) {
		if consumed {
			return
		}
		consumed = true
		for _, o := range snap {
			if !yield(o.ID, o.Tier) {
				return
			}
		}
	}
}

// IDs returns the live ids in no particular order.
func (r *Registry) IDs() []BodyID {
	ids := make([]BodyID, 0, len(r.objects))
	for id := range r.objects {
		ids = append(ids, id)
	}
	return ids
}

// Clear removes every entry.
func (r *Registry) Clear() {
	clear(r.objects)
}
