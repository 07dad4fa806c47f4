package game

import (
	"fmt"
	"strings"
	"time"
)

// Config holds the rule tuning. Numbers are screen-space pixels and
// pixels/second; y grows downward so the ceiling line sits near y=0.
type Config struct {
	FieldWidth  float64 // inner width between the walls
	FieldHeight float64 // floor surface y
	SpawnHeight float64 // y at which dropped objects appear
	CeilingY    float64 // objects resting with y < CeilingY end the game
	RestSpeed   float64 // |vy| below this counts as resting

	DroppableCeiling  int // highest tier offered as a drop
	PointsPerTierUnit int
	Gravity           float64 // base downward gravity before the mode scale
}

// DefaultConfig returns the tuning used by the shipped game.
func DefaultConfig() Config {
	return Config{
		FieldWidth:        600,
		FieldHeight:       800,
		SpawnHeight:       60,
		CeilingY:          120,
		RestSpeed:         2,
		DroppableCeiling:  4,
		PointsPerTierUnit: 10,
		Gravity:           980,
	}
}

// Validate checks the config against a catalog. Every failure wraps
// ErrInvalidConfig.
func (c Config) Validate(cat *Catalog) error {
	if c.FieldWidth <= 0 || c.FieldHeight <= 0 {
		return fmt.Errorf("%w: field must be positive, got %.0fx%.0f", ErrInvalidConfig, c.FieldWidth, c.FieldHeight)
	}
	if c.SpawnHeight >= c.FieldHeight {
		return fmt.Errorf("%w: spawn height %.0f must be above the floor at %.0f", ErrInvalidConfig, c.SpawnHeight, c.FieldHeight)
	}
	if c.CeilingY > c.FieldHeight {
		return fmt.Errorf("%w: ceiling %.0f is below the floor at %.0f", ErrInvalidConfig, c.CeilingY, c.FieldHeight)
	}
	if c.Gravity <= 0 {
		return fmt.Errorf("%w: gravity must be > 0, got %.2f", ErrInvalidConfig, c.Gravity)
	}
	if c.DroppableCeiling < 0 || c.DroppableCeiling >= cat.MaxTier() {
		return fmt.Errorf("%w: droppable ceiling %d must be in [0, %d)", ErrInvalidConfig, c.DroppableCeiling, cat.MaxTier())
	}
	if c.PointsPerTierUnit < 0 {
		return fmt.Errorf("%w: points per tier unit must be >= 0, got %d", ErrInvalidConfig, c.PointsPerTierUnit)
	}
	if c.RestSpeed < 0 {
		return fmt.Errorf("%w: rest speed must be >= 0, got %.2f", ErrInvalidConfig, c.RestSpeed)
	}
	spec, _ := cat.At(c.DroppableCeiling)
	if 2*spec.Radius > c.FieldWidth {
		return fmt.Errorf("%w: tier %d (r=%.0f) does not fit a %.0f wide field", ErrInvalidConfig, c.DroppableCeiling, spec.Radius, c.FieldWidth)
	}
	return nil
}

// Mode is a configuration bundle chosen at mode select. It carries no logic.
type Mode struct {
	Name         string
	GravityScale float64
	Material     Material
	Cooldown     time.Duration
}

var (
	ModeNormal = Mode{
		Name:         "normal",
		GravityScale: 1.0,
		Material:     Material{Restitution: 0.2, Friction: 0.5, Density: 1.0},
		Cooldown:     1000 * time.Millisecond,
	}
	ModeLowGravity = Mode{
		Name:         "low-gravity",
		GravityScale: 0.4,
		Material:     Material{Restitution: 0.45, Friction: 0.2, Density: 0.6},
		Cooldown:     500 * time.Millisecond,
	}
)

// Modes lists the built-in modes in menu order.
var Modes = []Mode{ModeNormal, ModeLowGravity}

// ModeByName resolves a mode by name, case-insensitively.
func ModeByName(name string) (Mode, bool) {
	for _, m := range Modes {
		if strings.EqualFold(m.Name, name) {
			return m, true
		}
	}
	return Mode{}, false
}
