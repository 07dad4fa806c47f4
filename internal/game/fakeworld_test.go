package game

// fakeWorld is an in-memory World for rule tests. Tests place bodies and set
// velocities directly, then call step with the pairs that "touched".
type fakeWorld struct {
	nextID     BodyID
	bodies     map[BodyID]*fakeBody
	inWorld    map[BodyID]bool
	gravity    Vec
	boundaries int
	removed    []BodyID

	collisionSubs []func([]Pair)
	postSubs      []func()
}

type fakeBody struct {
	pos    Vec
	vel    Vec
	angle  float64
	radius float64
	mat    Material
}

func newFakeWorld() *fakeWorld {
	return &fakeWorld{
		bodies:  make(map[BodyID]*fakeBody),
		inWorld: make(map[BodyID]bool),
	}
}

func (w *fakeWorld) CreateDynamicCircle(pos Vec, radius float64, mat Material) BodyID {
	w.nextID++
	w.bodies[w.nextID] = &fakeBody{pos: pos, radius: radius, mat: mat}
	return w.nextID
}

func (w *fakeWorld) AddToWorld(ids ...BodyID) {
	for _, id := range ids {
		w.inWorld[id] = true
	}
}

func (w *fakeWorld) RemoveFromWorld(ids ...BodyID) {
	for _, id := range ids {
		delete(w.inWorld, id)
		w.removed = append(w.removed, id)
	}
}

func (w *fakeWorld) Position(id BodyID) Vec {
	if b, ok := w.bodies[id]; ok {
		return b.pos
	}
	return Vec{}
}

func (w *fakeWorld) Velocity(id BodyID) Vec {
	if b, ok := w.bodies[id]; ok {
		return b.vel
	}
	return Vec{}
}

func (w *fakeWorld) SetVelocity(id BodyID, v Vec) {
	if b, ok := w.bodies[id]; ok {
		b.vel = v
	}
}

func (w *fakeWorld) Angle(id BodyID) float64 {
	if b, ok := w.bodies[id]; ok {
		return b.angle
	}
	return 0
}

func (w *fakeWorld) SetGravity(g Vec) { w.gravity = g }

func (w *fakeWorld) AddBoundaries(_, _ float64) { w.boundaries++ }

func (w *fakeWorld) OnCollisionStart(fn func([]Pair)) func() {
	i := len(w.collisionSubs)
	w.collisionSubs = append(w.collisionSubs, fn)
	return func() { w.collisionSubs[i] = nil }
}

func (w *fakeWorld) OnPostStep(fn func()) func() {
	i := len(w.postSubs)
	w.postSubs = append(w.postSubs, fn)
	return func() { w.postSubs[i] = nil }
}

// step delivers one collision batch (if any) followed by the post-step event.
func (w *fakeWorld) step(pairs ...Pair) {
	if len(pairs) > 0 {
		for _, fn := range w.collisionSubs {
			if fn != nil {
				fn(pairs)
			}
		}
	}
	for _, fn := range w.postSubs {
		if fn != nil {
			fn()
		}
	}
}

func (w *fakeWorld) place(id BodyID, pos, vel Vec) {
	b := w.bodies[id]
	b.pos = pos
	b.vel = vel
}

func (w *fakeWorld) live() int {
	return len(w.inWorld)
}

// falling is a vertical speed well above any rest threshold.
var falling = Vec{Y: 400}
