package game

import (
	"context"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

const (
	borderWidth = 24
	hudHeight   = 40
)

// Game is the windowed front end. It owns a State and feeds it keyboard
// input once per simulation tick.
type Game struct {
	state  *State
	script string

	width, height int
	offX, offY    int

	prevKeys map[ebiten.Key]bool
	face     text.Face

	// Simulation speed control.
	simSpeed  float64 // multiplier: 0=paused, 0.5, 1, 2, 4
	tickAccum float64 // fractional tick accumulator for sub-1x speeds
	shots     ShotLatch

	cancelScript context.CancelFunc
	status       string
	statusUntil  int

	inspector     Inspector
	inspBuf       *ebiten.Image
	prevMouseLeft bool // for edge-triggered click detection
}

// New builds the front end. script may be empty; R runs it when set.
func New(opts Options, script string) *Game {
	g := &Game{
		state:    NewState(opts),
		script:   script,
		width:    borderWidth + fieldWidth + borderWidth + logPanelWidth,
		height:   hudHeight + fieldHeight + borderWidth,
		offX:     borderWidth,
		offY:     hudHeight,
		prevKeys: make(map[ebiten.Key]bool),
		face:     text.NewGoXFace(basicfont.Face7x13),
		simSpeed: 1.0,
	}
	if script != "" && opts.Mode.IsLevel() {
		g.runScript()
	}
	return g
}

// State exposes the simulation for tests and tools.
func (g *Game) State() *State { return g.state }

// SetSpeed sets the simulation speed multiplier. 0 pauses.
func (g *Game) SetSpeed(x float64) { g.simSpeed = max(0, x) }

// Size is the window size the game lays out at.
func (g *Game) Size() (int, int) { return g.width, g.height }

func (g *Game) Update() error {
	// Handle input every frame regardless of sim speed.
	in := g.handleInput()
	g.shots.Press(in)

	if g.simSpeed <= 0 {
		return nil
	}

	// For speeds > 1 run multiple sim ticks per frame.
	// For speeds < 1 accumulate fractions.
	g.tickAccum += g.simSpeed
	for g.tickAccum >= 1.0 {
		g.tickAccum -= 1.0
		// Shots are edge-triggered: the first tick to run takes them.
		g.state.Step(g.shots.Take(in))
	}
	return nil
}

// pressed reports an edge-triggered key press and records the key state.
func (g *Game) pressed(cur map[ebiten.Key]bool, k ebiten.Key) bool {
	cur[k] = ebiten.IsKeyPressed(k)
	return cur[k] && !g.prevKeys[k]
}

func axis(neg, pos ebiten.Key) int {
	v := 0
	if ebiten.IsKeyPressed(neg) {
		v--
	}
	if ebiten.IsKeyPressed(pos) {
		v++
	}
	return v
}

// handleInput reads movement (held) and command keys (edge-triggered).
func (g *Game) handleInput() Input {
	currentKeys := map[ebiten.Key]bool{}
	var in Input

	// Home: WASD + Space. Away (1v1 only): arrows + Enter.
	in.Home.DX = axis(ebiten.KeyA, ebiten.KeyD)
	in.Home.DY = axis(ebiten.KeyW, ebiten.KeyS)
	in.Home.Shoot = g.pressed(currentKeys, ebiten.KeySpace)
	in.Away.DX = axis(ebiten.KeyArrowLeft, ebiten.KeyArrowRight)
	in.Away.DY = axis(ebiten.KeyArrowUp, ebiten.KeyArrowDown)
	in.Away.Shoot = g.pressed(currentKeys, ebiten.KeyEnter)

	// R: run the loaded script. X: cancel it.
	if g.pressed(currentKeys, ebiten.KeyR) {
		g.runScript()
	}
	if g.pressed(currentKeys, ebiten.KeyX) && g.cancelScript != nil {
		g.cancelScript()
	}

	// Backspace: new round. N: next level.
	if g.pressed(currentKeys, ebiten.KeyBackspace) {
		g.state.Reset()
	}
	if g.pressed(currentKeys, ebiten.KeyN) {
		if m := g.state.Mode(); m.IsLevel() && m.Level < maxPuzzleLevel {
			g.state.LoadMode(LevelMode(m.Level + 1))
		}
	}

	// Left click: inspect an entity. I: curated/raw view.
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) && !g.prevMouseLeft {
		mx, my := ebiten.CursorPosition()
		g.handleInspectorClick(mx, my)
	}
	g.prevMouseLeft = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	if g.pressed(currentKeys, ebiten.KeyI) {
		g.inspector.rawView = !g.inspector.rawView
	}

	// C: copy the match report.
	if g.pressed(currentKeys, ebiten.KeyC) {
		if err := copyToClipboard(g.state.Report().Report().Format()); err != nil {
			g.flash("clipboard: " + err.Error())
		} else {
			g.flash("report copied")
		}
	}

	// Sim speed controls: P=pause/resume, ,=slower, .=faster.
	speeds := []float64{0, 0.5, 1, 2, 4}
	if g.pressed(currentKeys, ebiten.KeyP) {
		if g.simSpeed > 0 {
			g.simSpeed = 0
		} else {
			g.simSpeed = 1
		}
	}
	if g.pressed(currentKeys, ebiten.KeyComma) {
		for i, s := range speeds {
			if s >= g.simSpeed && i > 0 {
				g.simSpeed = speeds[i-1]
				break
			}
		}
	}
	if g.pressed(currentKeys, ebiten.KeyPeriod) {
		for i, s := range speeds {
			if s <= g.simSpeed && i < len(speeds)-1 && speeds[i+1] > g.simSpeed {
				g.simSpeed = speeds[i+1]
				break
			}
		}
	}

	g.prevKeys = currentKeys
	return in
}

func (g *Game) runScript() {
	if g.script == "" {
		g.flash("no script loaded")
		return
	}
	if g.cancelScript != nil {
		g.cancelScript()
	}
	ctx, cancel := context.WithCancel(context.Background())
	if err := g.state.RunProgram(ctx, g.script); err != nil {
		cancel()
		g.flash(err.Error())
		return
	}
	g.cancelScript = cancel
}

func (g *Game) flash(msg string) {
	g.status = msg
	g.statusUntil = g.state.Tick() + 3*TicksPerSecond
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 12, G: 16, B: 12, A: 255})
	g.drawPitch(screen)
	g.drawEntities(screen)
	g.drawBall(screen)
	g.drawScoreboard(screen)
	g.drawInspector(screen)
	g.state.Events().Draw(screen, g.offX+fieldWidth+borderWidth, g.height)
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}

// speedLabel formats the sim speed for the HUD.
func (g *Game) speedLabel() string {
	switch g.simSpeed {
	case 0:
		return "PAUSED"
	case 1:
		return "1x"
	case 2:
		return "2x"
	case 4:
		return "4x"
	}
	return fmt.Sprintf("%.1fx", g.simSpeed)
}
