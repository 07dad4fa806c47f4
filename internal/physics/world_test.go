package physics

import (
	"math"
	"testing"

	"github.com/Garsondee/Merge-Drop/internal/game"
)

const (
	testW  = 600.0
	testH  = 800.0
	testDT = 1.0 / 60.0
)

var testMat = game.Material{Restitution: 0.1, Friction: 0.5, Density: 1}

func newTestWorld() *World {
	w := NewWorld()
	w.SetGravity(game.Vec{Y: 980})
	w.AddBoundaries(testW, testH)
	return w
}

func TestWorld_BallRestsOnFloor(t *testing.T) {
	w := newTestWorld()
	id := w.CreateDynamicCircle(game.Vec{X: 300, Y: 100}, 20, testMat)
	w.AddToWorld(id)

	for i := 0; i < 360; i++ {
		w.Step(testDT)
	}
	p := w.Position(id)
	if math.Abs(p.Y-(testH-20)) > 3 {
		t.Fatalf("expected ball resting at y≈%.0f, got %.2f", testH-20, p.Y)
	}
	if v := w.Velocity(id); math.Abs(v.Y) > 2 {
		t.Fatalf("expected ball at rest, vy=%.2f", v.Y)
	}
}

func TestWorld_NotSimulatedUntilAdded(t *testing.T) {
	w := newTestWorld()
	id := w.CreateDynamicCircle(game.Vec{X: 300, Y: 100}, 20, testMat)
	for i := 0; i < 30; i++ {
		w.Step(testDT)
	}
	if p := w.Position(id); p.Y != 100 {
		t.Fatalf("body outside the space should not move, y=%.2f", p.Y)
	}
	if w.BodyCount() != 0 {
		t.Fatalf("expected 0 simulated bodies, got %d", w.BodyCount())
	}
}

func TestWorld_StackedDropReportsPair(t *testing.T) {
	w := newTestWorld()
	var batches [][]game.Pair
	w.OnCollisionStart(func(pairs []game.Pair) { batches = append(batches, pairs) })

	low := w.CreateDynamicCircle(game.Vec{X: 300, Y: testH - 20}, 20, testMat)
	high := w.CreateDynamicCircle(game.Vec{X: 300, Y: testH - 200}, 20, testMat)
	w.AddToWorld(low, high)

	for i := 0; i < 120 && len(batches) == 0; i++ {
		w.Step(testDT)
	}
	if len(batches) == 0 {
		t.Fatal("expected a collision batch when one ball lands on the other")
	}
	p := batches[0][0]
	if !(p.A == low && p.B == high) && !(p.A == high && p.B == low) {
		t.Fatalf("expected pair {%d,%d}, got %+v", low, high, p)
	}
}

func TestWorld_WallContactsAreNotReported(t *testing.T) {
	w := newTestWorld()
	reported := 0
	w.OnCollisionStart(func(pairs []game.Pair) { reported += len(pairs) })

	id := w.CreateDynamicCircle(game.Vec{X: 20, Y: 100}, 20, testMat)
	w.AddToWorld(id)
	for i := 0; i < 240; i++ {
		w.Step(testDT)
	}
	if reported != 0 {
		t.Fatalf("floor/wall contacts must not be reported, got %d pairs", reported)
	}
	if p := w.Position(id); p.X < 17 {
		t.Fatalf("wall should keep the ball inside the field, x=%.2f", p.X)
	}
}

func TestWorld_PostStepOncePerStep(t *testing.T) {
	w := newTestWorld()
	calls := 0
	cancel := w.OnPostStep(func() { calls++ })
	for i := 0; i < 5; i++ {
		w.Step(testDT)
	}
	cancel()
	w.Step(testDT)
	if calls != 5 {
		t.Fatalf("expected 5 post-step calls, got %d", calls)
	}
	if w.Steps() != 6 {
		t.Fatalf("expected 6 steps, got %d", w.Steps())
	}
}

func TestWorld_RemoveFromWorld(t *testing.T) {
	w := newTestWorld()
	id := w.CreateDynamicCircle(game.Vec{X: 300, Y: 100}, 20, testMat)
	w.AddToWorld(id)
	w.RemoveFromWorld(id)
	w.RemoveFromWorld(id)
	if w.BodyCount() != 0 {
		t.Fatalf("expected no bodies, got %d", w.BodyCount())
	}
	if p := w.Position(id); p != (game.Vec{}) {
		t.Fatal("removed id should read as zero")
	}
	w.Step(testDT)
}

func TestWorld_IDsAreUnique(t *testing.T) {
	w := newTestWorld()
	seen := map[game.BodyID]bool{}
	for i := 0; i < 10; i++ {
		id := w.CreateDynamicCircle(game.Vec{X: 300, Y: 100}, 10, testMat)
		if seen[id] {
			t.Fatalf("id %d reused", id)
		}
		seen[id] = true
		if i%2 == 0 {
			w.RemoveFromWorld(id)
		}
	}
}

func TestWorld_BoundariesReplaced(t *testing.T) {
	w := newTestWorld()
	if w.BoundaryCount() != 3 {
		t.Fatalf("expected floor and two walls, got %d", w.BoundaryCount())
	}
	w.AddBoundaries(400, 600)
	if w.BoundaryCount() != 3 {
		t.Fatalf("re-adding boundaries should replace them, got %d", w.BoundaryCount())
	}
}

func TestWorld_SetVelocityCarriesIntoStep(t *testing.T) {
	w := NewWorld()
	id := w.CreateDynamicCircle(game.Vec{X: 300, Y: 400}, 20, testMat)
	w.SetVelocity(id, game.Vec{X: 30, Y: -60})
	if v := w.Velocity(id); v.X != 30 || v.Y != -60 {
		t.Fatalf("expected (30,-60), got (%.2f,%.2f)", v.X, v.Y)
	}
	w.AddToWorld(id)
	w.Step(testDT)
	p := w.Position(id)
	if p.X <= 300 || p.Y >= 400 {
		t.Fatalf("expected the body to move right and up, got (%.2f,%.2f)", p.X, p.Y)
	}
	w.SetVelocity(game.BodyID(999), game.Vec{Y: 1}) // unknown ids are ignored
}
