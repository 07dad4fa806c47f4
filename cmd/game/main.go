package main

import (
	"flag"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/Garsondee/Merge-Drop/internal/config"
	"github.com/Garsondee/Merge-Drop/internal/logging"
	"github.com/Garsondee/Merge-Drop/internal/sim"
	"github.com/Garsondee/Merge-Drop/internal/ui"
)

func main() {
	envFile := flag.String("env", ".env", "optional .env file")
	debug := flag.Bool("debug", false, "verbose console logging")
	seed := flag.Int64("seed", 0, "pending-tier RNG seed (0 = clock)")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		log.Fatal(err)
	}
	if *debug {
		cfg.Debug = true
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	logger, err := logging.New(cfg.Debug)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	s, err := sim.New(
		sim.WithRules(cfg.Rules),
		sim.WithTPS(cfg.TPS),
		sim.WithSeed(cfg.Seed),
		sim.WithLogger(logger),
	)
	if err != nil {
		log.Fatal(err)
	}
	defer s.Close()

	g := ui.New(s, logger)
	w, h := g.Size()
	ebiten.SetWindowTitle("Merge Drop")
	ebiten.SetWindowSize(w, h)
	ebiten.SetTPS(cfg.TPS)
	logger.Info("starting", zap.Int64("seed", cfg.Seed), zap.Int("tps", cfg.TPS))
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
