package main

import (
	"flag"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/Garsondee/Merge-Drop/internal/config"
	"github.com/Garsondee/Merge-Drop/internal/game"
	"github.com/Garsondee/Merge-Drop/internal/logging"
	"github.com/Garsondee/Merge-Drop/internal/sim"
)

// collectEvery is the reporter sampling interval (~1s at 60TPS).
const collectEvery = 60

type runStats struct {
	runIndex int
	seed     int64
	result   sim.RunResult

	firstMergeTick int
	mergesByTier   map[int]int

	windowSummary *sim.WindowReport
}

func main() {
	var runs int
	var maxTicks int
	var seedBase int64
	var seedStep int64
	var modeName string
	var strategyName string
	var envFile string
	var verbose bool

	flag.IntVar(&runs, "runs", 5, "number of headless autoplay runs")
	flag.IntVar(&maxTicks, "max-ticks", 36000, "tick limit per run")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&modeName, "mode", game.ModeNormal.Name, "game mode (normal, low-gravity)")
	flag.StringVar(&strategyName, "strategy", "stack", "bot strategy (random, stack)")
	flag.StringVar(&envFile, "env", ".env", "optional .env file")
	flag.BoolVar(&verbose, "v", false, "log session events to stderr")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if maxTicks <= 0 {
		fmt.Println("error: -max-ticks must be > 0")
		return
	}
	mode, ok := game.ModeByName(modeName)
	if !ok {
		fmt.Printf("error: unsupported mode %q (supported: %s)\n", modeName, modeNames())
		return
	}
	strategy, err := sim.ParseStrategy(strategyName)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}
	cfg, err := config.Load(envFile)
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.Quiet()
	if verbose {
		if logger, err = logging.New(true); err != nil {
			log.Fatal(err)
		}
	}
	defer func() { _ = logger.Sync() }()

	fmt.Printf("=== Headless Merge Report ===\n")
	fmt.Printf("mode=%s strategy=%s runs=%d max_ticks=%d seed_base=%d seed_step=%d\n\n",
		mode.Name, strategy, runs, maxTicks, seedBase, seedStep)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		rs, err := runOne(i+1, seed, cfg, mode, strategy, maxTicks, logger)
		if err != nil {
			log.Fatal(err)
		}
		all = append(all, rs)
		printRun(rs, game.DefaultCatalog())
	}

	printAggregate(all, game.DefaultCatalog())
}

func runOne(runIndex int, seed int64, cfg config.Config, mode game.Mode, strategy sim.Strategy, maxTicks int, logger *zap.Logger) (runStats, error) {
	s, err := sim.New(
		sim.WithSeed(seed),
		sim.WithRules(cfg.Rules),
		sim.WithMode(mode),
		sim.WithTPS(cfg.TPS),
		sim.WithLogger(logger.With(zap.Int("run", runIndex))),
	)
	if err != nil {
		return runStats{}, err
	}
	defer s.Close()

	reporter := sim.NewReporter(0)
	bot := sim.NewBot(strategy, cfg.Rules.FieldWidth, seed)
	res, err := s.Play(bot, maxTicks, func(s *sim.Sim) {
		if s.Tick()%collectEvery == 0 {
			reporter.Collect(s)
		}
	})
	if err != nil {
		return runStats{}, err
	}
	reporter.Collect(s)

	rs := runStats{
		runIndex:       runIndex,
		seed:           seed,
		result:         res,
		firstMergeTick: -1,
		mergesByTier:   map[int]int{},
		windowSummary:  reporter.WindowSummary(),
	}
	for _, e := range s.Events.Filter(game.CatMerge, "fused") {
		if rs.firstMergeTick < 0 {
			rs.firstMergeTick = e.Tick
		}
		rs.mergesByTier[e.Tier]++
	}
	return rs, nil
}

func printRun(rs runStats, cat *game.Catalog) {
	r := rs.result
	fmt.Printf("--- run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Printf("outcome=%s ticks=%d score=%s drops=%d merges=%d highest=%s objects=%d\n",
		r.Outcome, r.Ticks, humanize.Comma(int64(r.Score)), r.Drops, r.Merges, tierName(cat, r.HighestTier, r.Drops), r.Objects)
	fmt.Printf("first_merge_tick=%s merges_by_tier=[%s]\n", tickString(rs.firstMergeTick), formatTierCounts(cat, rs.mergesByTier))
	if rs.windowSummary != nil {
		fmt.Print(rs.windowSummary.Format(cat))
	}
	fmt.Println()
}

func printAggregate(all []runStats, cat *game.Catalog) {
	scores := make([]int, 0, len(all))
	ticks := make([]int, 0, len(all))
	merges := make([]int, 0, len(all))
	outcomes := map[sim.Outcome]int{}
	highest := map[int]int{}
	for _, rs := range all {
		scores = append(scores, rs.result.Score)
		ticks = append(ticks, rs.result.Ticks)
		merges = append(merges, rs.result.Merges)
		outcomes[rs.result.Outcome]++
		if rs.result.Drops > 0 {
			highest[rs.result.HighestTier]++
		}
	}

	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d game_over=%d tick_limit=%d\n", len(all), outcomes[sim.OutcomeGameOver], outcomes[sim.OutcomeTickLimit])
	mean, lo, hi := summarize(scores)
	fmt.Printf("score: mean=%s min=%s max=%s\n",
		humanize.Commaf(roundTo(mean, 1)), humanize.Comma(int64(lo)), humanize.Comma(int64(hi)))
	mean, lo, hi = summarize(ticks)
	fmt.Printf("ticks: mean=%.1f min=%d max=%d\n", mean, lo, hi)
	mean, lo, hi = summarize(merges)
	fmt.Printf("merges: mean=%.1f min=%d max=%d\n", mean, lo, hi)
	fmt.Printf("highest_tier_reached=[%s]\n", formatTierCounts(cat, highest))
}

// summarize returns the mean, min and max of vals; zeros when empty.
func summarize(vals []int) (mean float64, lo, hi int) {
	if len(vals) == 0 {
		return 0, 0, 0
	}
	lo, hi = vals[0], vals[0]
	sum := 0
	for _, v := range vals {
		sum += v
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return float64(sum) / float64(len(vals)), lo, hi
}

func roundTo(v float64, places int) float64 {
	p := 1.0
	for i := 0; i < places; i++ {
		p *= 10
	}
	return float64(int64(v*p+0.5)) / p
}

func tickString(t int) string {
	if t < 0 {
		return "n/a"
	}
	return fmt.Sprintf("%d", t)
}

func tierName(cat *game.Catalog, tier, drops int) string {
	if drops == 0 {
		return "-"
	}
	spec, err := cat.At(tier)
	if err != nil {
		return fmt.Sprintf("tier%d", tier)
	}
	return spec.VisualTag
}

// formatTierCounts renders counts in tier order, e.g. "strawberry=3,grape=1".
func formatTierCounts(cat *game.Catalog, counts map[int]int) string {
	if len(counts) == 0 {
		return "none"
	}
	tiers := make([]int, 0, len(counts))
	for t := range counts {
		tiers = append(tiers, t)
	}
	sort.Ints(tiers)
	parts := make([]string, 0, len(tiers))
	for _, t := range tiers {
		name := fmt.Sprintf("tier%d", t)
		if spec, err := cat.At(t); err == nil {
			name = spec.VisualTag
		}
		parts = append(parts, fmt.Sprintf("%s=%d", name, counts[t]))
	}
	return strings.Join(parts, ",")
}

func modeNames() string {
	names := make([]string, 0, len(game.Modes))
	for _, m := range game.Modes {
		names = append(names, m.Name)
	}
	return strings.Join(names, ", ")
}
