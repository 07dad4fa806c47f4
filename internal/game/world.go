package game

import "math"

// BodyID is the opaque handle the physics world assigns to a body. It is
// unique for the body's lifetime and is the registry key.
type BodyID uint64

// Vec is a 2D point or vector in screen space (y grows downward).
type Vec struct {
	X, Y float64
}

// Add returns v+o.
func (v Vec) Add(o Vec) Vec { return Vec{v.X + o.X, v.Y + o.Y} }

// Scale returns v*k.
func (v Vec) Scale(k float64) Vec { return Vec{v.X * k, v.Y * k} }

// Midpoint returns the arithmetic midpoint of a and b.
func Midpoint(a, b Vec) Vec {
	return Vec{(a.X + b.X) / 2, (a.Y + b.Y) / 2}
}

// Dist returns the euclidean distance between a and b.
func Dist(a, b Vec) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// Material is the contact/mass bundle selected by the current mode.
type Material struct {
	Restitution float64
	Friction    float64
	Density     float64
}

// Pair is two bodies that started touching during one physics step.
type Pair struct {
	A, B BodyID
}

// key normalises the pair so (a,b) and (b,a) compare equal.
func (p Pair) key() Pair {
	if p.A > p.B {
		return Pair{A: p.B, B: p.A}
	}
	return p
}

// Kinematics is the read side of the world used by the game-over scan.
type Kinematics interface {
	Position(id BodyID) Vec
	Velocity(id BodyID) Vec
}

// World is the physics collaborator. The rule engine never integrates motion
// or detects contacts itself; it only creates/removes bodies, reads their
// kinematic state and reacts to the two event streams.
//
// Collision batches contain game-object bodies only: static boundary bodies
// are tagged separately and never reported. Both callbacks run synchronously
// inside the world's step, one batch per step, collision batch first.
type World interface {
	Kinematics
	CreateDynamicCircle(pos Vec, radius float64, mat Material) BodyID
	AddToWorld(ids ...BodyID)
	RemoveFromWorld(ids ...BodyID)
	SetVelocity(id BodyID, v Vec)
	Angle(id BodyID) float64
	SetGravity(g Vec)
	AddBoundaries(width, height float64)
	OnCollisionStart(fn func(pairs []Pair)) (cancel func())
	OnPostStep(fn func()) (cancel func())
}
