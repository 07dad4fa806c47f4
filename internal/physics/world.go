// Package physics implements the game's World collaborator on top of the
// Chipmunk2D port. It owns every rigid body, assigns body ids, and turns
// Chipmunk's per-arbiter begin callbacks into one collision batch per step.
package physics

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/Garsondee/Merge-Drop/internal/game"
)

const (
	collisionObject cp.CollisionType = 1
	collisionWall   cp.CollisionType = 2
)

const (
	wallThickness = 24.0
	wallFriction  = 0.6
	wallBounce    = 0.1
	massScale     = 0.01 // density is per 100 px²
)

type entry struct {
	body    *cp.Body
	shape   *cp.Shape
	inSpace bool
}

// World is a Chipmunk space holding the static boundaries and the dynamic
// game objects. All methods must be called from the host loop goroutine.
type World struct {
	space  *cp.Space
	nextID game.BodyID
	bodies map[game.BodyID]*entry

	static *cp.Body
	walls  []*cp.Shape

	pending       []game.Pair
	collisionSubs []func([]game.Pair)
	postSubs      []func()
	steps         int
}

var _ game.World = (*World)(nil)

// NewWorld creates an empty space with zero gravity. The session sets
// gravity and boundaries when it attaches.
func NewWorld() *World {
	w := &World{
		space:  cp.NewSpace(),
		bodies: make(map[game.BodyID]*entry),
	}
	h := w.space.NewCollisionHandler(collisionObject, collisionObject)
	h.BeginFunc = w.begin
	return w
}

// begin queues a pair of game objects that started touching. Walls use a
// different collision type and never reach this handler.
func (w *World) begin(arb *cp.Arbiter, _ *cp.Space, _ interface{}) bool {
	a, b := arb.Bodies()
	idA, okA := a.UserData.(game.BodyID)
	idB, okB := b.UserData.(game.BodyID)
	if okA && okB {
		w.pending = append(w.pending, game.Pair{A: idA, B: idB})
	}
	return true
}

// Step advances the simulation by dt seconds, then delivers the collision
// batch (if any pair began touching) and the post-step notification. Bodies
// may be added or removed from inside either callback.
func (w *World) Step(dt float64) {
	w.pending = w.pending[:0]
	w.space.Step(dt)
	w.steps++

	if len(w.pending) > 0 {
		batch := make([]game.Pair, len(w.pending))
		copy(batch, w.pending)
		for _, fn := range w.collisionSubs {
			if fn != nil {
				fn(batch)
			}
		}
	}
	for _, fn := range w.postSubs {
		if fn != nil {
			fn()
		}
	}
}

// Steps returns how many steps have run.
func (w *World) Steps() int { return w.steps }

// CreateDynamicCircle builds a circle body at pos. It is not simulated until
// AddToWorld.
func (w *World) CreateDynamicCircle(pos game.Vec, radius float64, mat game.Material) game.BodyID {
	mass := mat.Density * math.Pi * radius * radius * massScale
	if mass <= 0 {
		mass = 1
	}
	body := cp.NewBody(mass, cp.MomentForCircle(mass, 0, radius, cp.Vector{}))
	body.SetPosition(cp.Vector{X: pos.X, Y: pos.Y})

	shape := cp.NewCircle(body, radius, cp.Vector{})
	shape.SetElasticity(mat.Restitution)
	shape.SetFriction(mat.Friction)
	shape.SetCollisionType(collisionObject)

	w.nextID++
	id := w.nextID
	body.UserData = id
	w.bodies[id] = &entry{body: body, shape: shape}
	return id
}

// AddToWorld starts simulating the given bodies. Unknown or already added
// ids are skipped.
func (w *World) AddToWorld(ids ...game.BodyID) {
	for _, id := range ids {
		e, ok := w.bodies[id]
		if !ok || e.inSpace {
			continue
		}
		w.space.AddBody(e.body)
		w.space.AddShape(e.shape)
		e.inSpace = true
	}
}

// RemoveFromWorld removes and forgets the given bodies.
func (w *World) RemoveFromWorld(ids ...game.BodyID) {
	for _, id := range ids {
		e, ok := w.bodies[id]
		if !ok {
			continue
		}
		if e.inSpace {
			w.space.RemoveShape(e.shape)
			w.space.RemoveBody(e.body)
		}
		delete(w.bodies, id)
	}
}

// Position returns the body centre, or the zero vector for unknown ids.
func (w *World) Position(id game.BodyID) game.Vec {
	e, ok := w.bodies[id]
	if !ok {
		return game.Vec{}
	}
	p := e.body.Position()
	return game.Vec{X: p.X, Y: p.Y}
}

// Velocity returns the body's linear velocity.
func (w *World) Velocity(id game.BodyID) game.Vec {
	e, ok := w.bodies[id]
	if !ok {
		return game.Vec{}
	}
	v := e.body.Velocity()
	return game.Vec{X: v.X, Y: v.Y}
}

// SetVelocity overwrites the body's linear velocity. Unknown ids are ignored.
func (w *World) SetVelocity(id game.BodyID, v game.Vec) {
	if e, ok := w.bodies[id]; ok {
		e.body.SetVelocity(v.X, v.Y)
	}
}

// Angle returns the body rotation in radians.
func (w *World) Angle(id game.BodyID) float64 {
	e, ok := w.bodies[id]
	if !ok {
		return 0
	}
	return e.body.Angle()
}

// SetGravity sets the space gravity.
func (w *World) SetGravity(g game.Vec) {
	w.space.SetGravity(cp.Vector{X: g.X, Y: g.Y})
}

// AddBoundaries builds the floor and two side walls so the inner play area is
// [0,width] x (-inf,height]. The walls reach one field height above the top
// edge so bouncing objects cannot escape. Calling it again replaces the
// previous boundaries.
func (w *World) AddBoundaries(width, height float64) {
	w.removeBoundaries()

	w.static = cp.NewStaticBody()
	w.space.AddBody(w.static)

	t := wallThickness
	// Floor, left wall, right wall. Segment radius t puts each inner face
	// exactly on the field edge.
	segments := [][2]cp.Vector{
		{{X: -t, Y: height + t}, {X: width + t, Y: height + t}},
		{{X: -t, Y: -height}, {X: -t, Y: height + t}},
		{{X: width + t, Y: -height}, {X: width + t, Y: height + t}},
	}
	for _, seg := range segments {
		shape := cp.NewSegment(w.static, seg[0], seg[1], t)
		shape.SetElasticity(wallBounce)
		shape.SetFriction(wallFriction)
		shape.SetCollisionType(collisionWall)
		w.space.AddShape(shape)
		w.walls = append(w.walls, shape)
	}
}

func (w *World) removeBoundaries() {
	for _, s := range w.walls {
		w.space.RemoveShape(s)
	}
	w.walls = nil
	if w.static != nil {
		w.space.RemoveBody(w.static)
		w.static = nil
	}
}

// OnCollisionStart subscribes fn to collision batches.
func (w *World) OnCollisionStart(fn func(pairs []game.Pair)) (cancel func()) {
	i := len(w.collisionSubs)
	w.collisionSubs = append(w.collisionSubs, fn)
	return func() { w.collisionSubs[i] = nil }
}

// OnPostStep subscribes fn to the end of every step.
func (w *World) OnPostStep(fn func()) (cancel func()) {
	i := len(w.postSubs)
	w.postSubs = append(w.postSubs, fn)
	return func() { w.postSubs[i] = nil }
}

// BodyCount returns the number of dynamic bodies being simulated.
func (w *World) BodyCount() int {
	n := 0
	for _, e := range w.bodies {
		if e.inSpace {
			n++
		}
	}
	return n
}

// BoundaryCount returns the number of static boundary shapes.
func (w *World) BoundaryCount() int {
	return len(w.walls)
}
