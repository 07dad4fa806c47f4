package game

import (
	"errors"
	"fmt"
)

// MergeKind classifies a resolved collision.
type MergeKind int

const (
	NoMerge MergeKind = iota
	Merged
)

func (k MergeKind) String() string {
	switch k {
	case NoMerge:
		return "no_merge"
	case Merged:
		return "merged"
	default:
		return "unknown"
	}
}

// MergeOutcome describes what Resolve did with one pair.
type MergeOutcome struct {
	Kind     MergeKind
	Consumed [2]BodyID // the fused pair, set when Kind == Merged
	Created  BodyID
	Tier     int // tier of the created object
	Position Vec
	Points   int
}

// Resolver fuses colliding same-tier objects. The registry is checked at
// resolution time, so an id consumed earlier in a batch simply no longer
// resolves.
type Resolver struct {
	catalog           *Catalog
	registry          *Registry
	world             World
	score             *Score
	pointsPerTierUnit int
	material          Material
}

// NewResolver wires a resolver over shared session state.
func NewResolver(cat *Catalog, reg *Registry, world World, score *Score, pointsPerTierUnit int) *Resolver {
	return &Resolver{
		catalog:           cat,
		registry:          reg,
		world:             world,
		score:             score,
		pointsPerTierUnit: pointsPerTierUnit,
	}
}

// SetMaterial selects the material for bodies created by merges.
func (r *Resolver) SetMaterial(m Material) {
	r.material = m
}

// Resolve decides whether a and b fuse and, if so, performs the fusion:
// both are removed from the registry and the world, one tier+1 object is
// created at their midpoint carrying their mean velocity, and the score grows by (tier+2)*pointsPerTierUnit.
// Nothing is mutated on NoMerge.
func (r *Resolver) Resolve(a, b BodyID) (MergeOutcome, error) {
	if a == b {
		return MergeOutcome{Kind: NoMerge}, nil
	}
	tierA, err := r.registry.Lookup(a)
	if err != nil {
		return MergeOutcome{Kind: NoMerge}, err
	}
	tierB, err := r.registry.Lookup(b)
	if err != nil {
		return MergeOutcome{Kind: NoMerge}, err
	}
	if tierA != tierB || r.catalog.IsTerminal(tierA) {
		return MergeOutcome{Kind: NoMerge}, nil
	}

	newTier := tierA + 1
	spec, err := r.catalog.At(newTier)
	if err != nil {
		return MergeOutcome{Kind: NoMerge}, err
	}

	mid := Midpoint(r.world.Position(a), r.world.Position(b))
	vel := Midpoint(r.world.Velocity(a), r.world.Velocity(b))
	if err := r.registry.Remove(a); err != nil {
		return MergeOutcome{Kind: NoMerge}, err
	}
	if err := r.registry.Remove(b); err != nil {
		return MergeOutcome{Kind: NoMerge}, err
	}
	r.world.RemoveFromWorld(a, b)

	id := r.world.CreateDynamicCircle(mid, spec.Radius, r.material)
	r.world.SetVelocity(id, vel)
	r.world.AddToWorld(id)
	if err := r.registry.Register(id, newTier); err != nil {
		return MergeOutcome{Kind: NoMerge}, fmt.Errorf("register fused object: %w", err)
	}

	points := MergePoints(newTier, r.pointsPerTierUnit)
	r.score.Add(points)
	return MergeOutcome{
		Kind:     Merged,
		Consumed: [2]BodyID{a, b},
		Created:  id,
		Tier:     newTier,
		Position: mid,
		Points:   points,
	}, nil
}

// ResolveBatch resolves every pair of one collision event. Duplicate
// unordered pairs are resolved once. A pair naming an id already consumed in
// this batch resolves as NoMerge and is not reported as an error; any other
// failure is collected and returned alongside the outcomes that did happen.
func (r *Resolver) ResolveBatch(pairs []Pair) ([]MergeOutcome, error) {
	var (
		merged []MergeOutcome
		errs   []error
	)
	seen := make(map[Pair]struct{}, len(pairs))
	for _, p := range pairs {
		k := p.key()
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}

		out, err := r.Resolve(p.A, p.B)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}
			errs = append(errs, fmt.Errorf("resolve %d/%d: %w", p.A, p.B, err))
			continue
		}
		if out.Kind == Merged {
			merged = append(merged, out)
		}
	}
	return merged, errors.Join(errs...)
}
