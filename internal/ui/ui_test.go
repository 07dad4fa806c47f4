package ui

import (
	"errors"
	"strings"
	"testing"

	"github.com/Garsondee/Merge-Drop/internal/game"
	"github.com/Garsondee/Merge-Drop/internal/sim"
)

func newTestGame(t *testing.T) *Game {
	t.Helper()
	s, err := sim.New(sim.WithSeed(5), sim.WithTierSequence(0))
	if err != nil {
		t.Fatal(err)
	}
	return New(s, nil)
}

func TestFeed_RingKeepsNewest(t *testing.T) {
	f := NewFeed()
	for i := 0; i < feedMaxEntries+5; i++ {
		f.Add(i, game.CatDrop, "x")
	}
	got := f.Recent()
	if len(got) != feedMaxEntries || f.Len() != feedMaxEntries {
		t.Fatalf("expected %d entries, got %d", feedMaxEntries, len(got))
	}
	if got[0].Tick != 5 || got[len(got)-1].Tick != feedMaxEntries+4 {
		t.Fatalf("expected oldest 5 and newest %d, got %d..%d", feedMaxEntries+4, got[0].Tick, got[len(got)-1].Tick)
	}
}

func TestFeed_AddEventFormats(t *testing.T) {
	f := NewFeed()
	f.AddEvent(game.EventLogEntry{Tick: 3, Category: game.CatMerge, Key: "fused", Value: "cherry+cherry -> strawberry", NumVal: 20})
	f.AddEvent(game.EventLogEntry{Tick: 9, Category: game.CatGameOver, Key: "ceiling", Value: "tier 3 resting at y=80"})
	got := f.Recent()
	if got[0].Message != "cherry+cherry -> strawberry +20" {
		t.Fatalf("unexpected merge line %q", got[0].Message)
	}
	if !strings.HasPrefix(got[1].Message, "GAME OVER") {
		t.Fatalf("unexpected game-over line %q", got[1].Message)
	}
}

func TestNew_LayoutFitsFieldAndPanel(t *testing.T) {
	g := newTestGame(t)
	w, h := g.Layout(0, 0)
	cfg := game.DefaultConfig()
	if w != int(cfg.FieldWidth)+2*borderWidth+feedPanelWidth || h != int(cfg.FieldHeight)+2*borderWidth {
		t.Fatalf("unexpected layout %dx%d", w, h)
	}
}

func TestApply_StartDropPauseMenu(t *testing.T) {
	g := newTestGame(t)
	g.apply(actStartLowGravity)
	sess := g.sim.Session
	if sess.State() != game.StatePlaying || sess.Mode().Name != game.ModeLowGravity.Name {
		t.Fatalf("expected low-gravity play, got %s/%s", sess.State(), sess.Mode().Name)
	}

	g.aimX = 120
	g.apply(actDrop)
	if sess.Stats().Drops != 1 {
		t.Fatalf("expected one drop, got %d", sess.Stats().Drops)
	}
	g.apply(actDrop)
	if sess.Stats().Drops != 1 || g.statusLeft == 0 {
		t.Fatal("second drop during cooldown should be rejected with a status line")
	}

	g.apply(actPause)
	if !g.sim.Paused() {
		t.Fatal("expected paused")
	}
	g.apply(actMenu)
	if sess.State() != game.StateModeSelect || g.sim.Paused() {
		t.Fatalf("menu should reset and unpause, state=%s", sess.State())
	}
}

func TestApply_RestartKeepsMode(t *testing.T) {
	g := newTestGame(t)
	g.apply(actStartNormal)
	first := g.sim.Session.ID()
	g.apply(actRestart)
	if g.sim.Session.ID() == first || g.sim.Session.State() != game.StatePlaying {
		t.Fatal("restart should begin a fresh play-through")
	}
	if g.sim.Session.Mode().Name != game.ModeNormal.Name {
		t.Fatalf("expected normal mode, got %s", g.sim.Session.Mode().Name)
	}
}

func TestApply_CopySummary(t *testing.T) {
	g := newTestGame(t)
	var copied string
	g.copyText = func(s string) error { copied = s; return nil }

	g.apply(actStartNormal)
	g.apply(actDrop)
	g.apply(actCopy)
	if !strings.Contains(copied, "mode=normal") || !strings.Contains(copied, "drops=1") {
		t.Fatalf("unexpected summary:\n%s", copied)
	}
	if g.status != "summary copied" {
		t.Fatalf("expected confirmation, got %q", g.status)
	}

	g.copyText = func(string) error { return errors.New("no xclip") }
	g.apply(actCopy)
	if g.status != "clipboard unavailable" {
		t.Fatalf("expected failure status, got %q", g.status)
	}
}

func TestSyncFeed_PullsNewEventsOnce(t *testing.T) {
	g := newTestGame(t)
	g.apply(actStartNormal)
	g.apply(actDrop)
	g.syncFeed()
	n := g.feed.Len()
	if n != 2 {
		t.Fatalf("expected start and drop in the feed, got %d", n)
	}
	g.syncFeed()
	if g.feed.Len() != n {
		t.Fatal("events must not be fed twice")
	}
}

func TestSummary_FiltersToCurrentRun(t *testing.T) {
	cat := game.DefaultCatalog()
	snap := game.Snapshot{
		ID:    "0123456789abcdef",
		State: game.StateGameOver,
		Mode:  game.ModeNormal,
		Score: 12345,
		Stats: game.Stats{Drops: 9, Merges: 2, HighestTier: 2},
		Objects: []game.ObjectView{
			{Tier: 0}, {Tier: 0}, {Tier: 2},
		},
	}
	events := []game.EventLogEntry{
		{Tick: 1, Session: "ffffffff", Category: game.CatDrop, Key: "spawn", Value: "old run"},
		{Tick: 2, Session: "01234567", Category: game.CatMerge, Key: "fused", Value: "this run"},
	}
	out := Summary(snap, cat, 7, events)
	for _, want := range []string{"score=12,345", "highest=grape", "cherry×2", "grape×1", "this run", "seed=7"} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "old run") {
		t.Fatal("events from earlier play-throughs must be excluded")
	}
}
