package game

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	colGrassA   = color.RGBA{R: 46, G: 122, B: 52, A: 255}
	colGrassB   = color.RGBA{R: 52, G: 132, B: 58, A: 255}
	colLine     = color.RGBA{R: 235, G: 240, B: 235, A: 220}
	colTrigger  = color.RGBA{R: 255, G: 230, B: 90, A: 70}
	colHome     = color.RGBA{R: 70, G: 110, B: 210, A: 255}
	colAway     = color.RGBA{R: 210, G: 70, B: 70, A: 255}
	colObstacle = color.RGBA{R: 120, G: 120, B: 130, A: 255}
	colFeet     = color.RGBA{R: 255, G: 255, B: 255, A: 90}
)

func (g *Game) drawPitch(screen *ebiten.Image) {
	ox, oy := float32(g.offX), float32(g.offY)
	f := g.state.Field()
	fw, fh := float32(f.W), float32(f.H)

	// Mowing stripes.
	const stripes = 12
	sw := fw / stripes
	for i := 0; i < stripes; i++ {
		c := colGrassA
		if i%2 == 1 {
			c = colGrassB
		}
		vector.FillRect(screen, ox+float32(i)*sw, oy, sw+1, fh, c, false)
	}

	vector.StrokeRect(screen, ox, oy, fw, fh, 2, colLine, false)
	vector.StrokeLine(screen, ox+fw/2, oy, ox+fw/2, oy+fh, 2, colLine, false)
	vector.StrokeCircle(screen, ox+fw/2, oy+fh/2, 70, 2, colLine, true)
	vector.FillCircle(screen, ox+fw/2, oy+fh/2, 3, colLine, true)

	for _, goal := range []Goal{f.Left, f.Right} {
		b := goal.Box
		vector.StrokeRect(screen, ox+float32(b.X), oy+float32(b.Y), float32(b.W), float32(b.H), 3, colLine, false)
		t := goal.Trigger()
		vector.FillRect(screen, ox+float32(t.X), oy+float32(t.Y), float32(t.W), float32(t.H), colTrigger, false)
	}
}

func (g *Game) drawEntities(screen *ebiten.Image) {
	ox, oy := float32(g.offX), float32(g.offY)
	for _, o := range g.state.Obstacles() {
		vector.FillRect(screen, ox+float32(o.X), oy+float32(o.Y), float32(o.W), float32(o.H), colObstacle, false)
	}
	for id := EntityPlayer; id < entityCount; id++ {
		e := g.state.Entity(id)
		if e == nil {
			continue
		}
		c := colHome
		if SideOf(id) == SideAway {
			c = colAway
		}
		x, y := ox+float32(e.X), oy+float32(e.Y)
		vector.FillRect(screen, x, y, float32(e.W), float32(e.H), c, false)
		vector.StrokeRect(screen, x, y, float32(e.W), float32(e.H), 1, color.Black, false)
		if id == EntityKeeperLeft || id == EntityKeeperRight {
			// Keeper gloves.
			vector.FillRect(screen, x+2, y+8, 8, 8, color.RGBA{R: 240, G: 220, B: 40, A: 255}, false)
			vector.FillRect(screen, x+float32(e.W)-10, y+8, 8, 8, color.RGBA{R: 240, G: 220, B: 40, A: 255}, false)
		}
		fb := e.FeetBox()
		vector.FillRect(screen, ox+float32(fb.X), oy+float32(fb.Y), float32(fb.W), float32(fb.H), colFeet, false)
		ebitenutil.DebugPrintAt(screen, shortName(id), int(x)+2, int(y)-16)
	}
}

func shortName(id EntityID) string {
	switch id {
	case EntityPlayer:
		return "P"
	case EntityDefender:
		return "D"
	default:
		return "GK"
	}
}

func (g *Game) drawBall(screen *ebiten.Image) {
	b := g.state.Ball()
	cx, cy := b.Center()
	x := float32(g.offX) + float32(cx)
	y := float32(g.offY) + float32(cy)
	r := float32(b.W / 2)
	vector.FillCircle(screen, x, y, r, color.White, true)
	vector.StrokeCircle(screen, x, y, r, 1.5, color.Black, true)
	// A spoke shows the rolling angle.
	dx := float32(math.Cos(b.RollingAngle)) * (r - 2)
	dy := float32(math.Sin(b.RollingAngle)) * (r - 2)
	vector.StrokeLine(screen, x-dx, y-dy, x+dx, y+dy, 2, color.Black, true)
}

func (g *Game) drawScoreboard(screen *ebiten.Image) {
	s := g.state
	vector.FillRect(screen, 0, 0, float32(g.offX+fieldWidth+borderWidth), hudHeight, color.RGBA{R: 8, G: 12, B: 8, A: 255}, false)

	clock := "--:--"
	if s.Options().Rules.Kind == RulesTimed {
		secs := s.RemainingTicks() / TicksPerSecond
		clock = fmt.Sprintf("%02d:%02d", secs/60, secs%60)
	}
	left := fmt.Sprintf("HOME %d - %d AWAY   %s   %s", s.Score().Home, s.Score().Away, clock, s.Mode())
	if s.Mode().IsBot() {
		left += "  bot=" + s.Options().Difficulty.String()
	}
	g.drawText(screen, left, float64(g.offX), 8, color.White)

	right := fmt.Sprintf("SIM %s  P=pause ,/.=speed  R=script C=copy", g.speedLabel())
	g.drawText(screen, right, float64(g.offX), 24, color.RGBA{R: 160, G: 190, B: 160, A: 255})

	msg := ""
	switch {
	case s.Over():
		msg = "FULL TIME: " + s.Outcome().Outcome.String()
	case s.Tick() < g.statusUntil:
		msg = g.status
	case s.ProgramRunning():
		msg = fmt.Sprintf("script running, %d left", s.ProgramPending())
	}
	if msg != "" {
		g.drawText(screen, msg, float64(g.offX+fieldWidth-260), 8, color.RGBA{R: 255, G: 230, B: 90, A: 255})
	}
}

func (g *Game) drawText(screen *ebiten.Image, s string, x, y float64, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, g.face, op)
}
