package game

import (
	"fmt"

	"go.uber.org/zap"
)

// DropGate throttles user drops. PendingTier is always within
// [0, Config.DroppableCeiling].
type DropGate struct {
	CanDrop     bool
	PendingTier int
}

// DropStatus is the result class of RequestDrop.
type DropStatus int

const (
	DropRejected DropStatus = iota
	DropAccepted
)

func (d DropStatus) String() string {
	if d == DropAccepted {
		return "accepted"
	}
	return "rejected"
}

// DropResult reports what RequestDrop spawned, if anything.
type DropResult struct {
	Status   DropStatus
	Object   GameObject
	Position Vec
}

// ClampDropX keeps a circle of radius r fully inside [0, width].
func ClampDropX(x, r, width float64) float64 {
	minX, maxX := r, width-r
	if maxX < minX {
		return width / 2
	}
	if x < minX {
		return minX
	}
	if x > maxX {
		return maxX
	}
	return x
}

// RequestDrop spawns the pending tier at (x, SpawnHeight), x clamped so the
// object clears both walls, then closes the gate for the mode's cooldown.
// It is rejected without side effects outside Playing or while the gate is
// closed.
func (s *Session) RequestDrop(x float64) DropResult {
	if s.closed || s.state != StatePlaying || !s.gate.CanDrop {
		return DropResult{Status: DropRejected}
	}
	tier := s.gate.PendingTier
	spec, err := s.catalog.At(tier)
	if err != nil {
		s.log.Error("pending tier outside catalog", zap.Int("tier", tier), zap.Error(err))
		return DropResult{Status: DropRejected}
	}

	pos := Vec{X: ClampDropX(x, spec.Radius, s.cfg.FieldWidth), Y: s.cfg.SpawnHeight}
	id := s.world.CreateDynamicCircle(pos, spec.Radius, s.mode.Material)
	s.world.AddToWorld(id)
	if err := s.registry.Register(id, tier); err != nil {
		s.world.RemoveFromWorld(id)
		s.log.Error("world reused a live body id", zap.Uint64("id", uint64(id)), zap.Error(err))
		return DropResult{Status: DropRejected}
	}

	s.gate.CanDrop = false
	gen := s.generation
	s.cooldown = s.sched.AfterFunc(s.mode.Cooldown, func() { s.reopenGate(gen) })

	s.stats.Drops++
	if tier > s.stats.HighestTier {
		s.stats.HighestTier = tier
	}
	s.events.Record(EventLogEntry{
		Tick:     s.stats.Ticks,
		Session:  s.shortID(),
		Category: CatDrop,
		Key:      "spawn",
		Value:    fmt.Sprintf("%s at x=%.0f", spec.VisualTag, pos.X),
		NumVal:   pos.X,
		Tier:     tier,
	})
	s.log.Debug("object dropped",
		zap.Uint64("id", uint64(id)),
		zap.Int("tier", tier),
		zap.Float64("x", pos.X))

	return DropResult{
		Status:   DropAccepted,
		Object:   GameObject{ID: id, Tier: tier},
		Position: pos,
	}
}

// reopenGate is the cooldown callback. A callback from an earlier generation
// (the session was reset or restarted since) does nothing.
func (s *Session) reopenGate(gen uint64) {
	if s.closed || gen != s.generation {
		return
	}
	s.cooldown = nil
	s.gate.CanDrop = true
	s.gate.PendingTier = s.pickTier(s.cfg.DroppableCeiling)
}
