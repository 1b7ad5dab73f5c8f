package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Pitch-Sense/internal/config"
	"github.com/Garsondee/Pitch-Sense/internal/game"
)

// keyHoldTicks is how long a key counts as held after its last press event.
// Terminals only report presses and auto-repeat, never releases.
const keyHoldTicks = 8

type tui struct {
	screen tcell.Screen
	state  *game.State
	width  int
	height int

	held   map[rune]int // rune -> tick of the last press
	shots  game.ShotLatch
	paused bool
	tick   int
}

func newTUI(opts game.Options) (*tui, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	t := &tui{
		screen: screen,
		state:  game.NewState(opts),
		held:   make(map[rune]int),
	}
	t.width, t.height = screen.Size()
	return t, nil
}

func (t *tui) pressedRecently(r rune) bool {
	last, ok := t.held[r]
	return ok && t.tick-last <= keyHoldTicks
}

func (t *tui) axis(neg, pos rune) int {
	v := 0
	if t.pressedRecently(neg) {
		v--
	}
	if t.pressedRecently(pos) {
		v++
	}
	return v
}

func (t *tui) input() game.Input {
	return t.shots.Take(game.Input{Home: game.Control{
		DX: t.axis('a', 'd'),
		DY: t.axis('w', 's'),
	}})
}

// handleEvent returns false when the user quits.
func (t *tui) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() != tcell.KeyRune {
			return true
		}
		switch r := ev.Rune(); r {
		case 'q':
			return false
		case ' ':
			t.shots.Press(game.Input{Home: game.Control{Shoot: true}})
		case 'p':
			t.paused = !t.paused
		case 'r':
			t.state.Reset()
		case 'w', 'a', 's', 'd':
			t.held[r] = t.tick
		}
	case *tcell.EventResize:
		t.width, t.height = t.screen.Size()
		t.screen.Sync()
	}
	return true
}

// cell maps pitch coordinates to a terminal cell inside the border.
func (t *tui) cell(f game.Field, x, y float64) (int, int) {
	cols, rows := max(1, t.width-2), max(1, t.height-3)
	cx := 1 + int(x/f.W*float64(cols))
	cy := 2 + int(y/f.H*float64(rows))
	return min(cx, t.width-2), min(cy, t.height-2)
}

func (t *tui) put(x, y int, r rune, st tcell.Style) {
	t.screen.SetContent(x, y, r, nil, st)
}

func (t *tui) text(x, y int, s string, st tcell.Style) {
	for i, r := range s {
		t.put(x+i, y, r, st)
	}
}

func (t *tui) draw() {
	t.screen.Clear()
	s := t.state
	f := s.Field()
	grass := tcell.StyleDefault.Background(tcell.ColorDarkGreen).Foreground(tcell.ColorGreen)
	line := tcell.StyleDefault.Background(tcell.ColorDarkGreen).Foreground(tcell.ColorWhite)

	for y := 2; y < t.height-1; y++ {
		for x := 1; x < t.width-1; x++ {
			t.put(x, y, ' ', grass)
		}
	}
	mx, _ := t.cell(f, f.W/2, 0)
	for y := 2; y < t.height-1; y++ {
		t.put(mx, y, '│', line)
	}

	for _, g := range []game.Goal{f.Left, f.Right} {
		r := g.Trigger()
		x0, y0 := t.cell(f, max(0, r.X), r.Y)
		x1, y1 := t.cell(f, min(f.W-1, r.X+r.W), r.Y+r.H)
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				t.put(x, y, '░', line)
			}
		}
	}

	for _, o := range s.Obstacles() {
		x, y := t.cell(f, o.X+o.W/2, o.Y+o.H/2)
		t.put(x, y, 'x', line.Foreground(tcell.ColorGray))
	}
	for id := game.EntityPlayer; id <= game.EntityKeeperRight; id++ {
		e := s.Entity(id)
		if e == nil {
			continue
		}
		fb := e.FeetBox()
		x, y := t.cell(f, fb.X+fb.W/2, fb.Y)
		glyph, color := 'P', tcell.ColorBlue
		switch id {
		case game.EntityDefender:
			glyph, color = 'D', tcell.ColorRed
		case game.EntityKeeperLeft:
			glyph, color = 'K', tcell.ColorLightBlue
		case game.EntityKeeperRight:
			glyph, color = 'K', tcell.ColorOrange
		}
		t.put(x, y, glyph, line.Foreground(color).Bold(true))
	}
	bx, by := s.Ball().Center()
	x, y := t.cell(f, bx, by)
	t.put(x, y, 'o', line.Foreground(tcell.ColorWhite).Bold(true))

	sc := s.Score()
	hud := fmt.Sprintf(" %s  home %d - %d away  %s", s.Mode(), sc.Home, sc.Away, clock(s))
	if t.paused {
		hud += "  PAUSED"
	}
	if s.Over() {
		hud += "  " + s.Outcome().Outcome.String()
	}
	t.text(0, 0, hud, tcell.StyleDefault.Bold(true))
	t.text(0, t.height-1, " WASD move  space shoot  r reset  p pause  q quit", tcell.StyleDefault.Foreground(tcell.ColorGray))
	t.screen.Show()
}

func clock(s *game.State) string {
	ticks := s.RemainingTicks()
	if s.Options().Rules.Kind != game.RulesTimed {
		ticks = s.Tick()
	}
	secs := ticks / game.TicksPerSecond
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

func (t *tui) run() {
	ticker := time.NewTicker(time.Second / game.TicksPerSecond)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	for {
		select {
		case ev := <-events:
			if !t.handleEvent(ev) {
				return
			}
		case <-ticker.C:
			t.tick++
			if !t.paused {
				t.state.Step(t.input())
			}
			t.draw()
		}
	}
}

func main() {
	var cfgPath string
	var mode string
	var difficulty string
	var logFile string

	flag.StringVar(&cfgPath, "config", config.Path(), "TOML config file")
	flag.StringVar(&mode, "mode", "", "mode override")
	flag.StringVar(&difficulty, "difficulty", "", "bot difficulty override")
	flag.StringVar(&logFile, "log", "", "write debug log to this file")
	flag.Parse()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatal(err)
	}
	if mode != "" {
		cfg.Match.Mode = mode
	}
	if difficulty != "" {
		cfg.Match.Difficulty = difficulty
	}
	opts, err := cfg.Options()
	if err != nil {
		log.Fatal(err)
	}
	// The screen owns stdout, so logs only go to a file.
	if logFile != "" {
		f, err := os.Create(logFile)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		opts.Logger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	t, err := newTUI(opts)
	if err != nil {
		log.Fatal(err)
	}
	defer t.screen.Fini()
	t.run()
}
