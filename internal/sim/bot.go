package sim

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/Garsondee/Merge-Drop/internal/game"
)

// Strategy picks where an autoplay bot drops.
type Strategy int

const (
	// StrategyRandom drops anywhere across the field.
	StrategyRandom Strategy = iota
	// StrategyStack aims at the highest resting object of the pending tier,
	// falling back to a random column.
	StrategyStack
)

func (st Strategy) String() string {
	switch st {
	case StrategyRandom:
		return "random"
	case StrategyStack:
		return "stack"
	default:
		return "unknown"
	}
}

// ParseStrategy resolves a strategy name.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(name) {
	case "random":
		return StrategyRandom, nil
	case "stack":
		return StrategyStack, nil
	}
	return 0, fmt.Errorf("unknown strategy %q (want random or stack)", name)
}

// Bot is an autoplayer used by the headless reporter and tests.
type Bot struct {
	strategy Strategy
	rng      *rand.Rand
	width    float64
	jitter   float64
}

// NewBot creates a bot for a field width fieldWidth.
func NewBot(strategy Strategy, fieldWidth float64, seed int64) *Bot {
	return &Bot{
		strategy: strategy,
		rng:      rand.New(rand.NewSource(seed)), // #nosec G404 -- autoplay only
		width:    fieldWidth,
		jitter:   6,
	}
}

// Next returns the x to drop at, or false when no drop is possible.
func (b *Bot) Next(snap game.Snapshot) (float64, bool) {
	if snap.State != game.StatePlaying || !snap.Gate.CanDrop {
		return 0, false
	}
	if b.strategy == StrategyStack {
		if x, ok := b.aimAtMatch(snap); ok {
			return x, true
		}
	}
	return b.rng.Float64() * b.width, true
}

// aimAtMatch finds the topmost object sharing the pending tier.
func (b *Bot) aimAtMatch(snap game.Snapshot) (float64, bool) {
	found := false
	var best game.ObjectView
	for _, o := range snap.Objects {
		if o.Tier != snap.Gate.PendingTier {
			continue
		}
		if !found || o.Position.Y < best.Position.Y {
			best, found = o, true
		}
	}
	if !found {
		return 0, false
	}
	return best.Position.X + (b.rng.Float64()*2-1)*b.jitter, true
}
