package game

import (
	"fmt"
	"iter"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// State is the top-level session state.
type State int

const (
	StateModeSelect State = iota
	StatePlaying
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateModeSelect:
		return "mode_select"
	case StatePlaying:
		return "playing"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Stats summarises the current play-through.
type Stats struct {
	Drops       int
	Merges      int
	HighestTier int
	Ticks       int // post-step ticks observed while playing
}

// Session is the context object for one player's game. It owns the registry,
// score, drop gate and state, and is the single writer for all of them: every
// method and world callback must run on the host loop's goroutine.
type Session struct {
	cfg     Config
	catalog *Catalog
	world   World
	sched   *Scheduler
	events  *EventLog
	baseLog *zap.Logger
	log     *zap.Logger
	rng     *rand.Rand
	picker  func(ceiling int) int

	registry *Registry
	resolver *Resolver
	monitor  Monitor
	unsteady map[BodyID]struct{} // created this step, not yet integrated
	score    Score
	gate     DropGate
	state    State
	mode     Mode
	stats    Stats

	id         string
	generation uint64
	cooldown   *Timer
	unsubs     []func()
	closed     bool
}

// Option customises a Session.
type Option func(*Session)

// WithLogger sets the base logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.baseLog = l
		}
	}
}

// WithCatalog replaces the default tier catalog.
func WithCatalog(c *Catalog) Option {
	return func(s *Session) {
		if c != nil {
			s.catalog = c
		}
	}
}

// WithEventLog records events into el instead of a private log.
func WithEventLog(el *EventLog) Option {
	return func(s *Session) {
		if el != nil {
			s.events = el
		}
	}
}

// WithSeed seeds the pending-tier RNG.
func WithSeed(seed int64) Option {
	return func(s *Session) {
		s.rng = rand.New(rand.NewSource(seed)) // #nosec G404 -- gameplay only
	}
}

// WithTierPicker overrides how the next pending tier is drawn. The result is
// clamped to [0, ceiling].
func WithTierPicker(fn func(ceiling int) int) Option {
	return func(s *Session) {
		s.picker = fn
	}
}

// NewSession wires a session to a world and scheduler, builds the static
// boundaries and subscribes to the world's event streams. The session starts
// in mode select.
func NewSession(cfg Config, world World, sched *Scheduler, opts ...Option) (*Session, error) {
	s := &Session{
		cfg:      cfg,
		catalog:  DefaultCatalog(),
		world:    world,
		sched:    sched,
		events:   NewEventLog(),
		baseLog:  zap.NewNop(),
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())), // #nosec G404 -- gameplay only
		registry: NewRegistry(),
		monitor:  NewMonitor(cfg),
		unsteady: make(map[BodyID]struct{}),
		state:    StateModeSelect,
		mode:     ModeNormal,
		gate:     DropGate{CanDrop: true},
	}
	for _, o := range opts {
		o(s)
	}
	if err := cfg.Validate(s.catalog); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	s.log = s.baseLog
	s.resolver = NewResolver(s.catalog, s.registry, world, &s.score, cfg.PointsPerTierUnit)

	world.AddBoundaries(cfg.FieldWidth, cfg.FieldHeight)
	s.unsubs = append(s.unsubs,
		world.OnCollisionStart(s.handleCollisions),
		world.OnPostStep(s.handlePostStep),
	)
	return s, nil
}

// StartGame moves mode select to Playing with a fresh score, empty registry
// and open gate. Any other source state is ErrInvalidTransition.
func (s *Session) StartGame(mode Mode) error {
	if s.closed {
		return ErrClosed
	}
	if s.state != StateModeSelect {
		return fmt.Errorf("%w: start game while %s", ErrInvalidTransition, s.state)
	}

	s.generation++
	s.id = uuid.NewString()
	s.mode = mode
	s.log = s.baseLog.With(zap.String("session", s.id), zap.String("mode", mode.Name))
	s.clearObjects()
	s.score.Reset()
	s.gate = DropGate{CanDrop: true, PendingTier: 0}
	s.stats = Stats{}
	s.resolver.SetMaterial(mode.Material)
	s.world.SetGravity(Vec{Y: s.cfg.Gravity * mode.GravityScale})
	s.state = StatePlaying

	s.events.Add(0, s.shortID(), CatSession, "start", mode.Name, 0)
	s.log.Info("session started")
	return nil
}

// Reset tears down the current play-through from Playing or GameOver and
// returns to mode select. Boundaries stay in the world; game objects,
// score, gate and the game-over latch are cleared and any cooldown is
// cancelled.
func (s *Session) Reset() error {
	if s.closed {
		return ErrClosed
	}
	if s.state == StateModeSelect {
		return fmt.Errorf("%w: reset while %s", ErrInvalidTransition, s.state)
	}

	s.events.Add(s.stats.Ticks, s.shortID(), CatSession, "reset", s.state.String(), float64(s.score.Value()))
	s.log.Info("session reset", zap.Int("score", s.score.Value()), zap.Stringer("from", s.state))

	s.generation++
	s.cancelCooldown()
	s.clearObjects()
	s.score.Reset()
	s.gate = DropGate{CanDrop: true, PendingTier: 0}
	s.state = StateModeSelect
	s.log = s.baseLog
	return nil
}

// Restart resets and immediately starts a new game in the same mode.
func (s *Session) Restart() error {
	mode := s.mode
	if err := s.Reset(); err != nil {
		return err
	}
	return s.StartGame(mode)
}

// Close detaches the session from its world: the cooldown is cancelled, the
// event subscriptions are dropped and the session's bodies are removed.
// Every later command returns ErrClosed or is rejected.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.generation++
	s.cancelCooldown()
	for _, unsub := range s.unsubs {
		unsub()
	}
	s.unsubs = nil
	s.clearObjects()
	s.closed = true
	s.log.Debug("session closed")
}

func (s *Session) handleCollisions(pairs []Pair) {
	if s.closed || s.state != StatePlaying {
		return
	}
	merged, err := s.resolver.ResolveBatch(pairs)
	if err != nil {
		s.log.Error("collision batch violated registry contract", zap.Error(err))
	}
	for _, m := range merged {
		s.unsteady[m.Created] = struct{}{}
		s.stats.Merges++
		if m.Tier > s.stats.HighestTier {
			s.stats.HighestTier = m.Tier
		}
		from, _ := s.catalog.At(m.Tier - 1)
		to, _ := s.catalog.At(m.Tier)
		s.events.Record(EventLogEntry{
			Tick:     s.stats.Ticks,
			Session:  s.shortID(),
			Category: CatMerge,
			Key:      "fused",
			Value:    fmt.Sprintf("%s+%s -> %s", from.VisualTag, from.VisualTag, to.VisualTag),
			NumVal:   float64(m.Points),
			Tier:     m.Tier,
		})
		s.log.Debug("objects merged",
			zap.Uint64("a", uint64(m.Consumed[0])),
			zap.Uint64("b", uint64(m.Consumed[1])),
			zap.Uint64("created", uint64(m.Created)),
			zap.Int("tier", m.Tier),
			zap.Int("points", m.Points))
	}
}

func (s *Session) handlePostStep() {
	if s.closed || s.state != StatePlaying {
		return
	}
	s.stats.Ticks++
	id, over := s.monitor.Scan(s.settled(), s.world)
	clear(s.unsteady)
	if !over {
		return
	}
	tier, _ := s.registry.Lookup(id)
	s.state = StateGameOver
	s.cancelCooldown()
	pos := s.world.Position(id)
	s.events.Add(s.stats.Ticks, s.shortID(), CatGameOver, "ceiling",
		fmt.Sprintf("tier %d resting at y=%.0f", tier, pos.Y), float64(s.score.Value()))
	s.log.Info("game over",
		zap.Int("score", s.score.Value()),
		zap.Int("ticks", s.stats.Ticks),
		zap.Uint64("offender", uint64(id)))
}

// settled snapshots the live objects minus those a merge created during the
// current step. Their kinematic state is the merge's, not the integrator's,
// so the ceiling rule sees them from the next step on.
func (s *Session) settled() iter.Seq2[BodyID, int] {
	all := s.registry.All()
	return func(yield func(BodyID, int) bool) {
		for id, tier := range all {
			if _, skip := s.unsteady[id]; skip {
				continue
			}
			if !yield(id, tier) {
				return
			}
		}
	}
}

func (s *Session) cancelCooldown() {
	if s.cooldown != nil {
		s.cooldown.Stop()
		s.cooldown = nil
	}
}

func (s *Session) clearObjects() {
	if ids := s.registry.IDs(); len(ids) > 0 {
		s.world.RemoveFromWorld(ids...)
	}
	s.registry.Clear()
	clear(s.unsteady)
}

func (s *Session) pickTier(ceiling int) int {
	var t int
	if s.picker != nil {
		t = s.picker(ceiling)
	} else {
		t = s.rng.Intn(ceiling + 1)
	}
	if t < 0 {
		return 0
	}
	if t > ceiling {
		return ceiling
	}
	return t
}

func (s *Session) shortID() string {
	if len(s.id) < 8 {
		return "--"
	}
	return s.id[:8]
}

// --- Read side ---

// ID is the uuid of the current play-through, empty before the first start.
func (s *Session) ID() string { return s.id }

// State returns the current top-level state.
func (s *Session) State() State { return s.state }

// Mode returns the mode of the current or most recent play-through.
func (s *Session) Mode() Mode { return s.mode }

// Score returns the current score.
func (s *Session) Score() int { return s.score.Value() }

// Best returns the best score seen by this session object.
func (s *Session) Best() int { return s.score.Best() }

// Gate returns the drop gate.
func (s *Session) Gate() DropGate { return s.gate }

// Stats returns play-through statistics.
func (s *Session) Stats() Stats { return s.stats }

// Generation increments on every start, reset and close.
func (s *Session) Generation() uint64 { return s.generation }

// Config returns the rule config.
func (s *Session) Config() Config { return s.cfg }

// Catalog returns the tier catalog.
func (s *Session) Catalog() *Catalog { return s.catalog }

// Events returns the session event log.
func (s *Session) Events() *EventLog { return s.events }

// Objects returns a one-shot snapshot of live objects.
func (s *Session) Objects() iter.Seq2[BodyID, int] { return s.registry.All() }

// ObjectCount returns the number of live objects.
func (s *Session) ObjectCount() int { return s.registry.Len() }

// Closed reports whether Close has been called.
func (s *Session) Closed() bool { return s.closed }

// ObjectView is a live object with its kinematic state, for rendering.
type ObjectView struct {
	ID       BodyID
	Tier     int
	Spec     TierSpec
	Position Vec
	Velocity Vec
	Angle    float64
}

// Snapshot is everything the presentation layer reads in one frame.
type Snapshot struct {
	ID      string
	State   State
	Mode    Mode
	Score   int
	Best    int
	Gate    DropGate
	Stats   Stats
	Objects []ObjectView
}

// Snapshot captures the session for rendering. Objects are ordered by id.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		ID:    s.id,
		State: s.state,
		Mode:  s.mode,
		Score: s.score.Value(),
		Best:  s.score.Best(),
		Gate:  s.gate,
		Stats: s.stats,
	}
	for id, tier := range s.registry.All() {
		spec, _ := s.catalog.At(tier)
		snap.Objects = append(snap.Objects, ObjectView{
			ID:       id,
			Tier:     tier,
			Spec:     spec,
			Position: s.world.Position(id),
			Velocity: s.world.Velocity(id),
			Angle:    s.world.Angle(id),
		})
	}
	sort.Slice(snap.Objects, func(i, j int) bool { return snap.Objects[i].ID < snap.Objects[j].ID })
	return snap
}
