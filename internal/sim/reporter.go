package sim

import (
	"fmt"
	"strings"

	"github.com/Garsondee/Merge-Drop/internal/game"
)

// reportWindowTicks is the default sliding window for reports (~10s at 60TPS).
const reportWindowTicks = 600

// FieldReport is a snapshot of the playfield at one tick.
type FieldReport struct {
	Tick       int
	Score      int
	Objects    int
	TierCounts []int   // live objects per tier
	StackTop   float64 // smallest y reached by any object's top edge
	Headroom   float64 // StackTop minus the ceiling line; negative is above it
}

// Reporter collects periodic field reports and summarises them over a
// sliding window.
type Reporter struct {
	history     []FieldReport
	windowTicks int
}

// NewReporter creates a reporter with the given window size.
func NewReporter(windowTicks int) *Reporter {
	if windowTicks <= 0 {
		windowTicks = reportWindowTicks
	}
	return &Reporter{windowTicks: windowTicks}
}

// Collect records the current state of s.
// Call this periodically (e.g. every 60 ticks / 1s).
func (r *Reporter) Collect(s *Sim) {
	snap := s.Session.Snapshot()
	cfg := s.Session.Config()
	rep := FieldReport{
		Tick:       s.Tick(),
		Score:      snap.Score,
		Objects:    len(snap.Objects),
		TierCounts: make([]int, s.Session.Catalog().Count()),
		StackTop:   cfg.FieldHeight,
	}
	for _, o := range snap.Objects {
		rep.TierCounts[o.Tier]++
		if top := o.Position.Y - o.Spec.Radius; top < rep.StackTop {
			rep.StackTop = top
		}
	}
	rep.Headroom = rep.StackTop - cfg.CeilingY
	r.history = append(r.history, rep)
}

// Latest returns the most recent report, or nil if none collected yet.
func (r *Reporter) Latest() *FieldReport {
	if len(r.history) == 0 {
		return nil
	}
	return &r.history[len(r.history)-1]
}

// WindowReport aggregates the reports inside the window.
type WindowReport struct {
	FromTick, ToTick int
	SampleCount      int

	AvgObjects  float64
	MinHeadroom float64
	ScoreGained int
	TierTotals  []int
}

// WindowSummary returns an aggregated summary over the recent time window.
func (r *Reporter) WindowSummary() *WindowReport {
	if len(r.history) == 0 {
		return nil
	}
	latestTick := r.history[len(r.history)-1].Tick
	cutoff := latestTick - r.windowTicks
	var window []FieldReport
	for i := len(r.history) - 1; i >= 0; i-- {
		if r.history[i].Tick < cutoff {
			break
		}
		window = append(window, r.history[i])
	}

	oldest, newest := window[len(window)-1], window[0]
	wr := &WindowReport{
		FromTick:    oldest.Tick,
		ToTick:      newest.Tick,
		SampleCount: len(window),
		MinHeadroom: newest.Headroom,
		ScoreGained: newest.Score - oldest.Score,
		TierTotals:  make([]int, len(newest.TierCounts)),
	}
	for _, rpt := range window {
		wr.AvgObjects += float64(rpt.Objects)
		if rpt.Headroom < wr.MinHeadroom {
			wr.MinHeadroom = rpt.Headroom
		}
		for t, c := range rpt.TierCounts {
			if t < len(wr.TierTotals) {
				wr.TierTotals[t] += c
			}
		}
	}
	wr.AvgObjects /= float64(len(window))
	return wr
}

// Format returns a human-readable multi-line string of the window summary.
func (wr *WindowReport) Format(cat *game.Catalog) string {
	if wr == nil {
		return "No data collected yet.\n"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "=== Field Report (T=%d..%d, %d samples) ===\n",
		wr.FromTick, wr.ToTick, wr.SampleCount)
	fmt.Fprintf(&sb, "  avg objects   %6.1f\n", wr.AvgObjects)
	fmt.Fprintf(&sb, "  min headroom  %6.0fpx\n", wr.MinHeadroom)
	fmt.Fprintf(&sb, "  score gained  %6d\n", wr.ScoreGained)

	sb.WriteString("\n--- Tier Distribution ---\n")
	var total int
	for _, c := range wr.TierTotals {
		total += c
	}
	for t, c := range wr.TierTotals {
		if c == 0 || total == 0 {
			continue
		}
		spec, err := cat.At(t)
		if err != nil {
			continue
		}
		fmt.Fprintf(&sb, "  %-12s %5.1f%%\n", spec.VisualTag, float64(c)/float64(total)*100)
	}
	return sb.String()
}
