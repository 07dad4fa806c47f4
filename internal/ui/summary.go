package ui

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/Garsondee/Merge-Drop/internal/game"
)

// summaryEventLimit caps the event tail included in a summary.
const summaryEventLimit = 20

// Summary renders a plain-text report of the current play-through, suitable
// for pasting into a bug report.
func Summary(snap game.Snapshot, cat *game.Catalog, seed int64, events []game.EventLogEntry) string {
	var b strings.Builder
	id := snap.ID
	if id == "" {
		id = "--"
	}
	fmt.Fprintf(&b, "--- Merge Drop run summary ---\n")
	fmt.Fprintf(&b, "session=%s mode=%s state=%s seed=%d\n", id, snap.Mode.Name, snap.State, seed)
	fmt.Fprintf(&b, "score=%s best=%s\n", humanize.Comma(int64(snap.Score)), humanize.Comma(int64(snap.Best)))

	highest := "-"
	if spec, err := cat.At(snap.Stats.HighestTier); err == nil && snap.Stats.Drops > 0 {
		highest = spec.VisualTag
	}
	fmt.Fprintf(&b, "drops=%d merges=%d highest=%s ticks=%d objects=%d\n",
		snap.Stats.Drops, snap.Stats.Merges, highest, snap.Stats.Ticks, len(snap.Objects))

	counts := make([]int, cat.Count())
	for _, o := range snap.Objects {
		if o.Tier >= 0 && o.Tier < len(counts) {
			counts[o.Tier]++
		}
	}
	b.WriteString("field:")
	listed := false
	for t, c := range counts {
		if c == 0 {
			continue
		}
		spec, _ := cat.At(t)
		fmt.Fprintf(&b, " %s×%d", spec.VisualTag, c)
		listed = true
	}
	if !listed {
		b.WriteString(" (empty)")
	}
	b.WriteByte('\n')

	// Only this play-through's events.
	var mine []game.EventLogEntry
	short := "--"
	if len(snap.ID) >= 8 {
		short = snap.ID[:8]
	}
	for _, e := range events {
		if e.Session == short {
			mine = append(mine, e)
		}
	}
	if len(mine) > summaryEventLimit {
		mine = mine[len(mine)-summaryEventLimit:]
	}
	b.WriteString("events:\n")
	if len(mine) == 0 {
		b.WriteString("  (none recorded yet)\n")
	}
	for _, e := range mine {
		b.WriteString("  ")
		b.WriteString(e.String())
		b.WriteByte('\n')
	}
	return b.String()
}
