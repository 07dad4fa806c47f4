package game

import (
	"fmt"
	"strings"
)

// Event log categories.
const (
	CatSession  = "session"
	CatDrop     = "drop"
	CatMerge    = "merge"
	CatGameOver = "gameover"
)

// EventLogEntry is one recorded rule-engine event.
type EventLogEntry struct {
	Tick     int
	Session  string // short session id, "--" outside a play-through
	Category string // session, drop, merge, gameover
	Key      string // specific event name within the category
	Value    string // human-readable detail
	NumVal   float64
	Tier     int // tier involved in a drop or merge; 0 for other categories
}

// String formats the entry as a fixed-width log line.
//
//	[T=0412] 3f2a9c1e merge     fused           grape+grape -> dekopon
func (e EventLogEntry) String() string {
	return fmt.Sprintf("[T=%04d] %-8s %-9s %-15s %s",
		e.Tick, e.Session, e.Category, e.Key, e.Value)
}

// EventLog collects structured events for tests, the headless report and the
// on-screen feed. It is unbounded; a session's history is small.
type EventLog struct {
	entries []EventLogEntry
}

// NewEventLog creates an empty log.
func NewEventLog() *EventLog {
	return &EventLog{}
}

// Add records a new entry.
func (el *EventLog) Add(tick int, session, category, key, value string, numVal float64) {
	el.entries = append(el.entries, EventLogEntry{
		Tick:     tick,
		Session:  session,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// Record appends a fully built entry.
func (el *EventLog) Record(e EventLogEntry) {
	el.entries = append(el.entries, e)
}

// Entries returns all recorded entries.
func (el *EventLog) Entries() []EventLogEntry {
	return el.entries
}

// Len returns the number of entries.
func (el *EventLog) Len() int {
	return len(el.entries)
}

// Since returns entries recorded after the first n.
func (el *EventLog) Since(n int) []EventLogEntry {
	if n < 0 {
		n = 0
	}
	if n >= len(el.entries) {
		return nil
	}
	return el.entries[n:]
}

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (el *EventLog) Filter(category, key string) []EventLogEntry {
	var out []EventLogEntry
	for _, e := range el.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Count returns how many entries match the given category and key.
func (el *EventLog) Count(category, key string) int {
	return len(el.Filter(category, key))
}

// LastOf returns the most recent entry matching category+key, or false if none.
func (el *EventLog) LastOf(category, key string) (EventLogEntry, bool) {
	entries := el.Filter(category, key)
	if len(entries) == 0 {
		return EventLogEntry{}, false
	}
	return entries[len(entries)-1], true
}

// Format renders all entries, one per line.
func (el *EventLog) Format() string {
	var b strings.Builder
	for _, e := range el.entries {
		b.WriteString(e.String())
		b.WriteByte('\n')
	}
	return b.String()
}
