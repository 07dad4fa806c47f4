// Package config loads runtime settings from an optional .env file and
// MERGEDROP_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/Garsondee/Merge-Drop/internal/game"
)

// Prefix is prepended to every variable name.
const Prefix = "MERGEDROP_"

// Config is everything a binary needs before building a sim.
type Config struct {
	Rules game.Config
	TPS   int
	Debug bool
	Seed  int64 // 0 means seed from the clock
}

// Default returns the shipped settings.
func Default() Config {
	return Config{
		Rules: game.DefaultConfig(),
		TPS:   60,
	}
}

// Load reads envFile (if non-empty and present) into the process environment
// without overriding variables that are already set, then applies overrides
// on top of Default.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("loading %s: %w", envFile, err)
		}
	}

	cfg := Default()
	floats := []struct {
		name string
		dst  *float64
	}{
		{"FIELD_WIDTH", &cfg.Rules.FieldWidth},
		{"FIELD_HEIGHT", &cfg.Rules.FieldHeight},
		{"SPAWN_HEIGHT", &cfg.Rules.SpawnHeight},
		{"CEILING_Y", &cfg.Rules.CeilingY},
		{"REST_SPEED", &cfg.Rules.RestSpeed},
		{"GRAVITY", &cfg.Rules.Gravity},
	}
	for _, f := range floats {
		if err := lookupFloat(f.name, f.dst); err != nil {
			return Config{}, err
		}
	}
	ints := []struct {
		name string
		dst  *int
	}{
		{"DROP_CEILING", &cfg.Rules.DroppableCeiling},
		{"POINTS_PER_TIER", &cfg.Rules.PointsPerTierUnit},
		{"TPS", &cfg.TPS},
	}
	for _, i := range ints {
		if err := lookupInt(i.name, i.dst); err != nil {
			return Config{}, err
		}
	}
	if v, ok := os.LookupEnv(Prefix + "DEBUG"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("%sDEBUG: %w", Prefix, err)
		}
		cfg.Debug = b
	}
	if v, ok := os.LookupEnv(Prefix + "SEED"); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("%sSEED: %w", Prefix, err)
		}
		cfg.Seed = n
	}

	if cfg.TPS <= 0 {
		return Config{}, fmt.Errorf("%sTPS must be positive, got %d", Prefix, cfg.TPS)
	}
	if err := cfg.Rules.Validate(game.DefaultCatalog()); err != nil {
		return Config{}, fmt.Errorf("rules: %w", err)
	}
	return cfg, nil
}

func lookupFloat(name string, dst *float64) error {
	v, ok := os.LookupEnv(Prefix + name)
	if !ok {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("%s%s: %w", Prefix, name, err)
	}
	*dst = f
	return nil
}

func lookupInt(name string, dst *int) error {
	v, ok := os.LookupEnv(Prefix + name)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s%s: %w", Prefix, name, err)
	}
	*dst = n
	return nil
}
