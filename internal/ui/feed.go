package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Merge-Drop/internal/game"
)

const (
	feedPanelWidth = 320
	feedMaxEntries = 60
	feedLineHeight = 14
)

// FeedEntry is a single line in the event feed.
type FeedEntry struct {
	Tick     int
	Category string
	Message  string
}

// Feed is a ring buffer of recent session events rendered on-screen.
type Feed struct {
	entries []FeedEntry
	head    int
	count   int
}

// NewFeed creates a feed with a fixed capacity.
func NewFeed() *Feed {
	return &Feed{entries: make([]FeedEntry, feedMaxEntries)}
}

// Add appends an entry, evicting the oldest when full.
func (f *Feed) Add(tick int, category, msg string) {
	f.entries[f.head] = FeedEntry{Tick: tick, Category: category, Message: msg}
	f.head = (f.head + 1) % feedMaxEntries
	if f.count < feedMaxEntries {
		f.count++
	}
}

// AddEvent converts an event log entry into a feed line.
func (f *Feed) AddEvent(e game.EventLogEntry) {
	msg := e.Value
	switch e.Category {
	case game.CatMerge:
		msg = fmt.Sprintf("%s +%.0f", e.Value, e.NumVal)
	case game.CatGameOver:
		msg = fmt.Sprintf("GAME OVER: %s", e.Value)
	case game.CatSession:
		msg = fmt.Sprintf("%s %s", e.Key, e.Value)
	}
	f.Add(e.Tick, e.Category, msg)
}

// Recent returns entries in chronological order (oldest first).
func (f *Feed) Recent() []FeedEntry {
	result := make([]FeedEntry, f.count)
	for i := 0; i < f.count; i++ {
		idx := (f.head - f.count + i + feedMaxEntries) % feedMaxEntries
		result[i] = f.entries[idx]
	}
	return result
}

// Len returns the number of buffered entries.
func (f *Feed) Len() int { return f.count }

var feedDotColors = map[string]color.RGBA{
	game.CatSession:  {R: 120, G: 160, B: 220, A: 255},
	game.CatDrop:     {R: 150, G: 150, B: 150, A: 255},
	game.CatMerge:    {R: 110, G: 210, B: 110, A: 255},
	game.CatGameOver: {R: 230, G: 70, B: 70, A: 255},
}

// Draw renders the feed panel with its left edge at panelX.
func (f *Feed) Draw(screen *ebiten.Image, panelX, panelH int) {
	vector.FillRect(screen, float32(panelX), 0, float32(feedPanelWidth), float32(panelH), color.RGBA{R: 14, G: 12, B: 18, A: 248}, false)
	vector.StrokeLine(screen, float32(panelX), 0, float32(panelX), float32(panelH), 1.0, color.RGBA{R: 70, G: 60, B: 90, A: 255}, false)

	vector.FillRect(screen, float32(panelX), 0, float32(feedPanelWidth), 16, color.RGBA{R: 30, G: 24, B: 40, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, "EVENTS", panelX+8, 2)

	entries := f.Recent()
	maxVisible := (panelH - 24) / feedLineHeight
	if len(entries) > maxVisible {
		entries = entries[len(entries)-maxVisible:]
	}

	y := 20
	for i, e := range entries {
		// Highlight the newest three.
		if i >= len(entries)-3 {
			vector.FillRect(screen, float32(panelX+2), float32(y), float32(feedPanelWidth-4), float32(feedLineHeight), color.RGBA{R: 36, G: 30, B: 48, A: 160}, false)
		}
		dot, ok := feedDotColors[e.Category]
		if !ok {
			dot = color.RGBA{R: 200, G: 200, B: 200, A: 255}
		}
		vector.FillRect(screen, float32(panelX+5), float32(y+4), 3, 5, dot, false)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%4d %s", e.Tick, e.Message), panelX+12, y)
		y += feedLineHeight
	}
}
