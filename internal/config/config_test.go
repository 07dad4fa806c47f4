package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Garsondee/Merge-Drop/internal/game"
)

// clearEnv unsets name for the duration of the test.
func clearEnv(t *testing.T, name string) {
	t.Helper()
	t.Setenv(name, "")
	if err := os.Unsetenv(name); err != nil {
		t.Fatal(err)
	}
}

func TestLoad_DefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("missing .env should not be an error: %v", err)
	}
	if cfg.TPS != 60 || cfg.Rules.CeilingY != Default().Rules.CeilingY {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv(Prefix+"CEILING_Y", "150")
	t.Setenv(Prefix+"DROP_CEILING", "3")
	t.Setenv(Prefix+"DEBUG", "true")
	t.Setenv(Prefix+"SEED", "42")

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Rules.CeilingY != 150 || cfg.Rules.DroppableCeiling != 3 {
		t.Fatalf("overrides not applied: %+v", cfg.Rules)
	}
	if !cfg.Debug || cfg.Seed != 42 {
		t.Fatalf("expected debug and seed 42, got %+v", cfg)
	}
}

func TestLoad_ReadsEnvFile(t *testing.T) {
	clearEnv(t, Prefix+"FIELD_WIDTH")
	clearEnv(t, Prefix+"TPS")
	path := filepath.Join(t.TempDir(), ".env")
	body := Prefix + "FIELD_WIDTH=480\n" + Prefix + "TPS=120\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Rules.FieldWidth != 480 || cfg.TPS != 120 {
		t.Fatalf("expected values from file, got width=%.0f tps=%d", cfg.Rules.FieldWidth, cfg.TPS)
	}
}

func TestLoad_EnvironmentBeatsFile(t *testing.T) {
	t.Setenv(Prefix+"GRAVITY", "500")
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte(Prefix+"GRAVITY=2000\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Rules.Gravity != 500 {
		t.Fatalf("expected process env to win, got %.0f", cfg.Rules.Gravity)
	}
}

func TestLoad_BadValueNamesVariable(t *testing.T) {
	t.Setenv(Prefix+"REST_SPEED", "slow")
	_, err := Load("")
	if err == nil || !strings.Contains(err.Error(), Prefix+"REST_SPEED") {
		t.Fatalf("expected error naming the variable, got %v", err)
	}
}

func TestLoad_RejectsInvalidRules(t *testing.T) {
	t.Setenv(Prefix+"DROP_CEILING", "10")
	if _, err := Load(""); err == nil {
		t.Fatal("expected validation error for a ceiling at the terminal tier")
	}
	t.Setenv(Prefix+"DROP_CEILING", "4")
	t.Setenv(Prefix+"TPS", "0")
	if _, err := Load(""); err == nil {
		t.Fatal("expected error for zero TPS")
	}
}

func TestLoad_RejectsZeroGravity(t *testing.T) {
	t.Setenv(Prefix+"GRAVITY", "0")
	if _, err := Load(""); !errors.Is(err, game.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig for zero gravity, got %v", err)
	}
}
