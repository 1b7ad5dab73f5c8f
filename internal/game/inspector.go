package game

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Inspector panel: rendered into an offscreen buffer at 1× then blitted at inspScale.
const (
	inspScale = 2
	inspBufW  = 190
	inspBufH  = 170
	inspPad   = 4
	inspLineH = 13
)

// Inspector holds the selected entity and view toggle state.
type Inspector struct {
	selected EntityID
	active   bool
	rawView  bool // false = curated, true = raw dump
}

// pickEntity returns the active entity whose sprite contains the field
// point (x, y). Overlapping sprites resolve to the nearest centre.
func pickEntity(s *State, x, y float64) (EntityID, bool) {
	best := math.MaxFloat64
	var hit EntityID
	found := false
	for id := EntityPlayer; id < entityCount; id++ {
		e := s.Entity(id)
		if e == nil {
			continue
		}
		if x < e.X || x > e.X+e.W || y < e.Y || y > e.Y+e.H {
			continue
		}
		cx, cy := e.Center()
		if d := dist(cx, cy, x, y); d < best {
			best, hit, found = d, id, true
		}
	}
	return hit, found
}

// handleInspectorClick selects the entity under a screen click.
// Returns true if an entity was hit.
func (g *Game) handleInspectorClick(mx, my int) bool {
	id, ok := pickEntity(g.state, float64(mx-g.offX), float64(my-g.offY))
	g.inspector.selected, g.inspector.active = id, ok
	return ok
}

func (s *State) keeper(id EntityID) *Keeper {
	for _, k := range s.keepers {
		if k.id == id {
			return k
		}
	}
	return nil
}

// inspectLines describes one entity for the panel. It returns nil once the
// entity has left the pitch (mode change).
func inspectLines(s *State, id EntityID, raw bool) []string {
	e := s.Entity(id)
	if e == nil {
		return nil
	}
	if raw {
		return inspectRaw(s, e)
	}
	return inspectCurated(s, e)
}

func inspectCurated(s *State, e *Entity) []string {
	var out []string
	line := func(format string, args ...any) { out = append(out, fmt.Sprintf(format, args...)) }
	section := func(title string) { out = append(out, "-- "+title+" --") }
	b := s.Ball()

	section("SITUATION")
	line("pos:(%.0f,%.0f) side:%s", e.X, e.Y, SideOf(e.ID))
	switch {
	case b.Possessor == PossessedBy(e.ID):
		line("ball: AT FEET")
	case b.Stuck():
		line("ball: held by %s", b.Possessor)
	default:
		bx, by := b.Center()
		fx, fy := e.FeetBox().Center()
		line("ball: loose %.0fpx", dist(fx, fy, bx, by))
	}
	if s.Animating() && b.LastShooter == PossessedBy(e.ID) {
		line("kick in flight")
	}

	if bot := s.Bot(e.ID); bot != nil {
		section("BOT")
		line("tier: %s", bot.Difficulty())
		line("shoot range: %.0f", bot.tier.shootRange)
		if bot.tier.clearance {
			line("clearances: %d/%d", bot.Clearances(), clearanceCap)
		}
		if bot.dodging {
			line("dodging")
		}
	}
	if k := s.keeper(e.ID); k != nil {
		section("KEEPER")
		line("holding: %dt / %dt", k.hold, keeperHoldLimit)
	}

	if s.mode.Policy() == PolicyContested && s.lastLoser == e.ID {
		if left := s.stealCooldownUntil - s.tick; left > 0 {
			section("COOLDOWN")
			line("steal blocked %dt", left)
		}
	}
	return out
}

func inspectRaw(s *State, e *Entity) []string {
	var out []string
	line := func(format string, args ...any) { out = append(out, fmt.Sprintf(format, args...)) }
	fb := e.FeetBox()
	b := s.Ball()

	line("id=%d %s active=%v", e.ID, e.ID, e.Active)
	line("xy=(%.1f,%.1f) wh=%.0fx%.0f", e.X, e.Y, e.W, e.H)
	line("start=(%.0f,%.0f) spd=%.2f", e.StartX, e.StartY, e.Speed)
	line("feet=(%.1f,%.1f %.0fx%.0f)", fb.X, fb.Y, fb.W, fb.H)
	bb := e.BodyBox()
	line("body=(%.1f,%.1f %.0fx%.0f)", bb.X, bb.Y, bb.W, bb.H)
	line("lastDX=%.1f", e.lastDX)
	line("ball=(%.1f,%.1f) pos=%s", b.X, b.Y, b.Possessor)
	line("shooter=%s anim=%v", b.LastShooter, s.Animating())
	line("loser=%s until=%d tick=%d", s.lastLoser, s.stealCooldownUntil, s.tick)
	if bot := s.Bot(e.ID); bot != nil {
		line("tier=%s clr=%d dodge=%v", bot.Difficulty(), bot.clearances, bot.dodging)
		line("juke=%.0f lead=%.2f", bot.tier.jukeRadius, bot.tier.leadRatio)
	}
	if k := s.keeper(e.ID); k != nil {
		line("hold=%d", k.hold)
	}
	return out
}

// drawInspector renders the inspector panel into an offscreen buffer at 1×,
// then blits it onto the screen at inspScale for readability.
func (g *Game) drawInspector(screen *ebiten.Image) {
	if !g.inspector.active {
		return
	}
	lines := inspectLines(g.state, g.inspector.selected, g.inspector.rawView)
	if lines == nil {
		g.inspector.active = false
		return
	}
	if g.inspBuf == nil {
		g.inspBuf = ebiten.NewImage(inspBufW, inspBufH)
	}
	g.inspBuf.Clear()

	buf := g.inspBuf
	bw := float32(inspBufW)
	bh := float32(inspBufH)

	panelBg := color.RGBA{R: 14, G: 16, B: 14, A: 230}
	panelBorder := color.RGBA{R: 55, G: 80, B: 55, A: 255}
	vector.FillRect(buf, 0, 0, bw, bh, panelBg, false)
	vector.StrokeRect(buf, 0, 0, bw, bh, 1.0, panelBorder, false)

	lx := inspPad
	ly := inspPad
	ebitenutil.DebugPrintAt(buf, fmt.Sprintf("[ %s %s ]", SideOf(g.inspector.selected), g.inspector.selected), lx, ly)
	ly += inspLineH
	viewName := "CURATED"
	if g.inspector.rawView {
		viewName = "RAW"
	}
	ebitenutil.DebugPrintAt(buf, fmt.Sprintf("view: %s  [I] toggle", viewName), lx, ly)
	ly += inspLineH + 2
	vector.StrokeLine(buf, float32(lx), float32(ly), bw-float32(inspPad), float32(ly), 1.0, panelBorder, false)
	ly += 3

	for _, l := range lines {
		if ly+inspLineH > inspBufH {
			break
		}
		ebitenutil.DebugPrintAt(buf, l, lx, ly)
		ly += inspLineH
	}

	// Bottom-right corner of the pitch.
	px := g.offX + fieldWidth - inspBufW*inspScale - 8
	py := g.offY + fieldHeight - inspBufH*inspScale - 8
	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(float64(inspScale), float64(inspScale))
	opts.GeoM.Translate(float64(px), float64(py))
	screen.DrawImage(buf, opts)
}
