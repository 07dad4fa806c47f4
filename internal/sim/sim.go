// Package sim drives a session headlessly: one physics world, one game-time
// scheduler and one session, advanced together at a fixed tick rate.
package sim

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Garsondee/Merge-Drop/internal/game"
	"github.com/Garsondee/Merge-Drop/internal/physics"
)

// DefaultTPS matches Ebiten's default update rate.
const DefaultTPS = 60

// Sim is the host loop. The UI and the headless reporter both embed one.
type Sim struct {
	World   *physics.World
	Sched   *game.Scheduler
	Session *game.Session
	Events  *game.EventLog

	rules  game.Config
	mode   game.Mode
	tps    int
	dt     time.Duration
	seed   int64
	tiers  []int
	log    *zap.Logger
	tick   int
	paused bool
}

// Option configures a Sim during construction.
type Option func(*Sim)

// WithSeed sets the RNG seed for deterministic runs.
func WithSeed(seed int64) Option {
	return func(s *Sim) { s.seed = seed }
}

// WithRules replaces the default rule config.
func WithRules(cfg game.Config) Option {
	return func(s *Sim) { s.rules = cfg }
}

// WithMode sets the mode used by Start.
func WithMode(m game.Mode) Option {
	return func(s *Sim) { s.mode = m }
}

// WithLogger sets the logger handed to the session.
func WithLogger(l *zap.Logger) Option {
	return func(s *Sim) {
		if l != nil {
			s.log = l
		}
	}
}

// WithTPS sets the fixed tick rate.
func WithTPS(tps int) Option {
	return func(s *Sim) { s.tps = tps }
}

// WithTierSequence makes the pending tier after every cooldown follow tiers
// in order, cycling. The first pending tier of a play-through is always 0.
func WithTierSequence(tiers ...int) Option {
	return func(s *Sim) { s.tiers = append([]int(nil), tiers...) }
}

// New builds the world, scheduler and session. The session starts in mode
// select; call Start to begin playing.
func New(opts ...Option) (*Sim, error) {
	s := &Sim{
		rules: game.DefaultConfig(),
		mode:  game.ModeNormal,
		tps:   DefaultTPS,
		seed:  1,
		log:   zap.NewNop(),
	}
	for _, o := range opts {
		o(s)
	}
	if s.tps <= 0 {
		return nil, fmt.Errorf("tick rate must be positive, got %d", s.tps)
	}
	s.dt = time.Second / time.Duration(s.tps)

	s.World = physics.NewWorld()
	s.Sched = game.NewScheduler()
	s.Events = game.NewEventLog()

	sessOpts := []game.Option{
		game.WithLogger(s.log),
		game.WithEventLog(s.Events),
		game.WithSeed(s.seed),
	}
	if len(s.tiers) > 0 {
		seq, i := s.tiers, 0
		sessOpts = append(sessOpts, game.WithTierPicker(func(int) int {
			t := seq[i%len(seq)]
			i++
			return t
		}))
	}
	sess, err := game.NewSession(s.rules, s.World, s.Sched, sessOpts...)
	if err != nil {
		return nil, err
	}
	s.Session = sess
	return s, nil
}

// Start begins a play-through in the configured mode.
func (s *Sim) Start() error {
	return s.Session.StartGame(s.mode)
}

// StartMode begins a play-through in m and remembers it for later restarts.
func (s *Sim) StartMode(m game.Mode) error {
	s.mode = m
	return s.Session.StartGame(m)
}

// Step runs one physics step, which delivers collisions and the post-step
// scan, then advances game time so due cooldowns fire. Paused sims do not
// advance.
func (s *Sim) Step() {
	if s.paused {
		return
	}
	s.tick++
	s.World.Step(s.dt.Seconds())
	s.Sched.Advance(s.dt)
}

// RunTicks advances the simulation n ticks.
func (s *Sim) RunTicks(n int) {
	for i := 0; i < n; i++ {
		s.Step()
	}
}

// RunUntil advances the simulation up to maxTicks, stopping early if predicate
// returns true. Returns the tick at which the predicate was satisfied, or -1.
func (s *Sim) RunUntil(predicate func(*Sim) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		s.Step()
		if predicate(s) {
			return s.tick
		}
	}
	return -1
}

// SetPaused freezes or resumes Step.
func (s *Sim) SetPaused(p bool) { s.paused = p }

// Paused reports whether Step is frozen.
func (s *Sim) Paused() bool { return s.paused }

// Tick returns the number of steps taken.
func (s *Sim) Tick() int { return s.tick }

// TPS returns the tick rate.
func (s *Sim) TPS() int { return s.tps }

// Seed returns the seed the session RNG was built with.
func (s *Sim) Seed() int64 { return s.seed }

// Mode returns the mode Start will use.
func (s *Sim) Mode() game.Mode { return s.mode }

// Close detaches the session from the world.
func (s *Sim) Close() {
	s.Session.Close()
}
