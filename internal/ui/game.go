// Package ui is the ebiten presentation layer. It reads session snapshots,
// turns keys and mouse input into session commands, and never touches the
// rules directly.
package ui

import (
	"fmt"
	"image/color"
	"math"

	"github.com/atotto/clipboard"
	"github.com/dustin/go-humanize"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"go.uber.org/zap"
	"golang.org/x/image/font/basicfont"

	"github.com/Garsondee/Merge-Drop/internal/game"
	"github.com/Garsondee/Merge-Drop/internal/sim"
)

// borderWidth is the pixel gap between the window edge and the field.
const borderWidth = 24

// statusTicks is how long a status line stays on screen (~2s at 60TPS).
const statusTicks = 120

type action int

const (
	actNone action = iota
	actStartNormal
	actStartLowGravity
	actDrop
	actRestart
	actMenu
	actPause
	actCopy
)

// Game implements ebiten.Game on top of a headless sim.
type Game struct {
	sim  *sim.Sim
	feed *Feed
	log  *zap.Logger
	face text.Face

	width, height int
	fieldW        int
	fieldH        int
	offX, offY    int

	aimX       float64
	eventsSeen int
	status     string
	statusLeft int

	copyText func(string) error
}

// New wraps s. The sim's session should still be in mode select.
func New(s *sim.Sim, log *zap.Logger) *Game {
	if log == nil {
		log = zap.NewNop()
	}
	cfg := s.Session.Config()
	g := &Game{
		sim:      s,
		feed:     NewFeed(),
		log:      log,
		face:     text.NewGoXFace(basicfont.Face7x13),
		fieldW:   int(cfg.FieldWidth),
		fieldH:   int(cfg.FieldHeight),
		offX:     borderWidth,
		offY:     borderWidth,
		aimX:     cfg.FieldWidth / 2,
		copyText: clipboard.WriteAll,
	}
	g.width = borderWidth + g.fieldW + borderWidth + feedPanelWidth
	g.height = borderWidth + g.fieldH + borderWidth
	return g
}

// Size returns the logical screen size.
func (g *Game) Size() (int, int) { return g.width, g.height }

func (g *Game) Update() error {
	g.trackCursor()
	for _, a := range g.pollActions() {
		g.apply(a)
	}
	if g.sim.Session.State() != game.StateModeSelect {
		g.sim.Step()
	}
	g.syncFeed()
	if g.statusLeft > 0 {
		g.statusLeft--
	}
	return nil
}

func (g *Game) trackCursor() {
	mx, _ := ebiten.CursorPosition()
	x := float64(mx - g.offX)
	g.aimX = math.Max(0, math.Min(float64(g.fieldW), x))
}

// pollActions maps this frame's edge-triggered input to actions.
func (g *Game) pollActions() []action {
	var out []action
	switch g.sim.Session.State() {
	case game.StateModeSelect:
		if inpututil.IsKeyJustPressed(ebiten.Key1) {
			out = append(out, actStartNormal)
		}
		if inpututil.IsKeyJustPressed(ebiten.Key2) {
			out = append(out, actStartLowGravity)
		}
	case game.StatePlaying:
		if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
			out = append(out, actDrop)
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyP) {
			out = append(out, actPause)
		}
	}
	if g.sim.Session.State() != game.StateModeSelect {
		if inpututil.IsKeyJustPressed(ebiten.KeyR) {
			out = append(out, actRestart)
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			out = append(out, actMenu)
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyC) {
			out = append(out, actCopy)
		}
	}
	return out
}

// apply executes one action against the session.
func (g *Game) apply(a action) {
	sess := g.sim.Session
	var err error
	switch a {
	case actStartNormal:
		err = g.sim.StartMode(game.ModeNormal)
	case actStartLowGravity:
		err = g.sim.StartMode(game.ModeLowGravity)
	case actDrop:
		if g.sim.Paused() {
			return
		}
		if res := sess.RequestDrop(g.aimX); res.Status == game.DropRejected {
			g.setStatus("wait for the cooldown")
		}
	case actRestart:
		g.sim.SetPaused(false)
		err = sess.Restart()
	case actMenu:
		g.sim.SetPaused(false)
		err = sess.Reset()
	case actPause:
		g.sim.SetPaused(!g.sim.Paused())
	case actCopy:
		summary := Summary(sess.Snapshot(), sess.Catalog(), g.sim.Seed(), g.sim.Events.Entries())
		if cerr := g.copyText(summary); cerr != nil {
			g.log.Warn("clipboard unavailable", zap.Error(cerr))
			g.setStatus("clipboard unavailable")
			return
		}
		g.setStatus("summary copied")
	}
	if err != nil {
		g.log.Warn("command rejected", zap.Int("action", int(a)), zap.Error(err))
	}
}

func (g *Game) setStatus(msg string) {
	g.status = msg
	g.statusLeft = statusTicks
}

// syncFeed copies event log entries recorded since the last frame.
func (g *Game) syncFeed() {
	for _, e := range g.sim.Events.Since(g.eventsSeen) {
		g.feed.AddEvent(e)
	}
	g.eventsSeen = g.sim.Events.Len()
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 16, G: 14, B: 20, A: 255})

	snap := g.sim.Session.Snapshot()
	g.drawField(screen, snap)
	g.feed.Draw(screen, g.offX+g.fieldW+g.offX, g.height)

	switch snap.State {
	case game.StateModeSelect:
		g.drawModeSelect(screen, snap)
	case game.StatePlaying:
		g.drawAim(screen, snap)
		g.drawHUD(screen, snap)
		if g.sim.Paused() {
			g.drawBanner(screen, []string{"PAUSED", "[P] resume"})
		}
	case game.StateGameOver:
		g.drawHUD(screen, snap)
		g.drawBanner(screen, []string{
			"GAME OVER",
			"score " + humanize.Comma(int64(snap.Score)),
			"[R] restart  [Esc] menu  [C] copy summary",
		})
	}

	if g.statusLeft > 0 {
		ebitenutil.DebugPrintAt(screen, g.status, g.offX+6, g.offY+g.fieldH-20)
	}
}

func (g *Game) drawField(screen *ebiten.Image, snap game.Snapshot) {
	ox, oy := float32(g.offX), float32(g.offY)
	fw, fh := float32(g.fieldW), float32(g.fieldH)
	cfg := g.sim.Session.Config()

	vector.FillRect(screen, ox, oy, fw, fh, color.RGBA{R: 32, G: 28, B: 40, A: 255}, false)
	wallCol := color.RGBA{R: 120, G: 100, B: 80, A: 255}
	vector.FillRect(screen, ox-borderWidth, oy, borderWidth, fh+borderWidth, wallCol, false)
	vector.FillRect(screen, ox+fw, oy, borderWidth, fh+borderWidth, wallCol, false)
	vector.FillRect(screen, ox, oy+fh, fw, borderWidth, wallCol, false)

	// Ceiling line, dashed.
	cy := oy + float32(cfg.CeilingY)
	for x := float32(0); x < fw; x += 16 {
		vector.StrokeLine(screen, ox+x, cy, ox+min(x+8, fw), cy, 2, color.RGBA{R: 220, G: 60, B: 60, A: 200}, false)
	}

	for _, o := range snap.Objects {
		x := ox + float32(o.Position.X)
		y := oy + float32(o.Position.Y)
		r := float32(o.Spec.Radius)
		col := tierColor(o.Spec.VisualTag, o.Tier)
		vector.FillCircle(screen, x, y, r, col, true)
		vector.StrokeCircle(screen, x, y, r, 1.5, color.RGBA{R: 20, G: 20, B: 20, A: 200}, true)
		// Spin marker.
		mx := x + float32(math.Cos(o.Angle))*r*0.7
		my := y + float32(math.Sin(o.Angle))*r*0.7
		vector.StrokeLine(screen, x, y, mx, my, 2, color.RGBA{R: 255, G: 255, B: 255, A: 140}, true)
	}
}

// drawAim shows the drop guide and the pending object at the spawn height.
func (g *Game) drawAim(screen *ebiten.Image, snap game.Snapshot) {
	cfg := g.sim.Session.Config()
	spec, err := g.sim.Session.Catalog().At(snap.Gate.PendingTier)
	if err != nil {
		return
	}
	x := game.ClampDropX(g.aimX, spec.Radius, cfg.FieldWidth)
	sx := float32(g.offX) + float32(x)
	sy := float32(g.offY) + float32(cfg.SpawnHeight)

	guide := color.RGBA{R: 200, G: 200, B: 200, A: 60}
	for y := sy + float32(spec.Radius); y < float32(g.offY+g.fieldH); y += 12 {
		vector.StrokeLine(screen, sx, y, sx, y+6, 1, guide, false)
	}

	col := tierColor(spec.VisualTag, snap.Gate.PendingTier)
	if !snap.Gate.CanDrop {
		col = withAlpha(col, 90)
	}
	vector.FillCircle(screen, sx, sy, float32(spec.Radius), col, true)
}

func (g *Game) drawHUD(screen *ebiten.Image, snap game.Snapshot) {
	lines := []string{
		"SCORE " + humanize.Comma(int64(snap.Score)),
		"BEST  " + humanize.Comma(int64(snap.Best)),
		fmt.Sprintf("%s  drops %d  merges %d", snap.Mode.Name, snap.Stats.Drops, snap.Stats.Merges),
	}
	if spec, err := g.sim.Session.Catalog().At(snap.Gate.PendingTier); err == nil {
		lines = append(lines, "NEXT  "+spec.VisualTag)
	}
	for i, l := range lines {
		g.drawText(screen, l, float64(g.offX+8), float64(g.offY+8+i*16), color.White)
	}
}

func (g *Game) drawModeSelect(screen *ebiten.Image, snap game.Snapshot) {
	lines := []string{
		"MERGE DROP",
		"",
		"[1] normal",
		"[2] low gravity",
	}
	if snap.Best > 0 {
		lines = append(lines, "", "best "+humanize.Comma(int64(snap.Best)))
	}
	g.drawBanner(screen, lines)
}

// drawBanner draws centred lines on a dimmed box over the field.
func (g *Game) drawBanner(screen *ebiten.Image, lines []string) {
	const lineH = 18
	boxH := float32(len(lines)*lineH + 24)
	boxY := float32(g.offY) + float32(g.fieldH)/2 - boxH/2
	vector.FillRect(screen, float32(g.offX), boxY, float32(g.fieldW), boxH, color.RGBA{R: 0, G: 0, B: 0, A: 190}, false)

	for i, l := range lines {
		w, _ := text.Measure(l, g.face, lineH)
		x := float64(g.offX) + float64(g.fieldW)/2 - w/2
		y := float64(boxY) + 12 + float64(i*lineH)
		g.drawText(screen, l, x, y, color.White)
	}
}

func (g *Game) drawText(screen *ebiten.Image, s string, x, y float64, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, g.face, op)
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}
