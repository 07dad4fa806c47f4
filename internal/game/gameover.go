package game

import (
	"iter"
	"math"
)

// Monitor applies the ceiling-violation rule: an object whose centre is above
// the ceiling line and which has come to rest vertically ends the game.
// Objects still falling through the region are ignored.
type Monitor struct {
	CeilingY  float64
	RestSpeed float64
}

// NewMonitor builds a monitor from the rule config.
func NewMonitor(cfg Config) Monitor {
	return Monitor{CeilingY: cfg.CeilingY, RestSpeed: cfg.RestSpeed}
}

// Violates reports whether a single object at pos moving at vel breaks the rule.
func (m Monitor) Violates(pos, vel Vec) bool {
	return pos.Y < m.CeilingY && math.Abs(vel.Y) < m.RestSpeed
}

// Scan checks live objects and stops at the first offender, which it returns.
func (m Monitor) Scan(objects iter.Seq2[BodyID, int], kin Kinematics) (BodyID, bool) {
	for id := range objects {
		if m.Violates(kin.Position(id), kin.Velocity(id)) {
			return id, true
		}
	}
	return 0, false
}
