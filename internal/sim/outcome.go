package sim

import (
	"fmt"

	"github.com/Garsondee/Merge-Drop/internal/game"
)

// Outcome is how an autoplayed run ended.
type Outcome int

const (
	OutcomeTickLimit Outcome = iota
	OutcomeGameOver
)

func (o Outcome) String() string {
	switch o {
	case OutcomeGameOver:
		return "game_over"
	case OutcomeTickLimit:
		return "tick_limit"
	default:
		return "unknown"
	}
}

// RunResult summarises one autoplayed play-through.
type RunResult struct {
	Seed        int64
	Mode        string
	Outcome     Outcome
	Ticks       int
	Score       int
	Drops       int
	Merges      int
	HighestTier int
	Objects     int
	Description string
}

// Play starts a play-through if the session is in mode select, then lets bot
// drop whenever the gate is open until game over or maxTicks steps. Each
// onTick hook runs after every step.
func (s *Sim) Play(bot *Bot, maxTicks int, onTick ...func(*Sim)) (RunResult, error) {
	if s.Session.State() == game.StateModeSelect {
		if err := s.Start(); err != nil {
			return RunResult{}, err
		}
	}
	for i := 0; i < maxTicks && s.Session.State() == game.StatePlaying; i++ {
		if x, ok := bot.Next(s.Session.Snapshot()); ok {
			s.Session.RequestDrop(x)
		}
		s.Step()
		for _, fn := range onTick {
			fn(s)
		}
	}
	return s.Result(), nil
}

// Result describes the current play-through.
func (s *Sim) Result() RunResult {
	st := s.Session.Stats()
	r := RunResult{
		Seed:        s.seed,
		Mode:        s.Session.Mode().Name,
		Outcome:     OutcomeTickLimit,
		Ticks:       st.Ticks,
		Score:       s.Session.Score(),
		Drops:       st.Drops,
		Merges:      st.Merges,
		HighestTier: st.HighestTier,
		Objects:     s.Session.ObjectCount(),
	}
	if s.Session.State() == game.StateGameOver {
		r.Outcome = OutcomeGameOver
	}
	top, _ := s.Session.Catalog().At(r.HighestTier)
	r.Description = fmt.Sprintf("%s after %d ticks: score %d, %d drops, %d merges, best fruit %s",
		r.Outcome, r.Ticks, r.Score, r.Drops, r.Merges, top.VisualTag)
	return r
}
