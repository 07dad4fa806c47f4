package game

import (
	"strings"
	"testing"
)

func TestEventLog_FilterAndLastOf(t *testing.T) {
	el := NewEventLog()
	el.Add(1, "abcd1234", CatDrop, "spawn", "cherry at x=300", 300)
	el.Add(5, "abcd1234", CatMerge, "fused", "cherry+cherry -> strawberry", 20)
	el.Add(9, "abcd1234", CatMerge, "fused", "strawberry+strawberry -> grape", 30)

	if el.Count(CatMerge, "fused") != 2 {
		t.Fatalf("expected 2 merges, got %d", el.Count(CatMerge, "fused"))
	}
	if el.Count("", "") != 3 {
		t.Fatalf("empty filter should match everything, got %d", el.Count("", ""))
	}
	last, ok := el.LastOf(CatMerge, "fused")
	if !ok || last.Tick != 9 || last.NumVal != 30 {
		t.Fatalf("unexpected last merge %+v", last)
	}
	if _, ok := el.LastOf(CatGameOver, ""); ok {
		t.Fatal("no game-over entry was recorded")
	}
}

func TestEventLog_Since(t *testing.T) {
	el := NewEventLog()
	el.Add(1, "--", CatSession, "start", "normal", 0)
	el.Add(2, "--", CatDrop, "spawn", "cherry", 0)
	if got := el.Since(1); len(got) != 1 || got[0].Category != CatDrop {
		t.Fatalf("expected the drop entry, got %+v", got)
	}
	if el.Since(2) != nil || el.Since(10) != nil {
		t.Fatal("expected nil past the end")
	}
	if len(el.Since(-1)) != 2 {
		t.Fatal("negative offset should return everything")
	}
}

func TestEventLogEntry_String(t *testing.T) {
	e := EventLogEntry{Tick: 42, Session: "3f2a9c1e", Category: CatMerge, Key: "fused", Value: "grape+grape -> dekopon"}
	s := e.String()
	if !strings.HasPrefix(s, "[T=0042] 3f2a9c1e merge") || !strings.HasSuffix(s, "grape+grape -> dekopon") {
		t.Fatalf("unexpected format %q", s)
	}
	el := NewEventLog()
	el.entries = append(el.entries, e)
	if el.Format() != s+"\n" {
		t.Fatalf("Format should emit one line per entry, got %q", el.Format())
	}
}
