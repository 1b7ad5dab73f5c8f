package game

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

var (
	ErrProgramRunning = errors.New("a program is already running")
	ErrBadProgram     = errors.New("bad program")
)

// CommandKind is one scripted instruction.
type CommandKind int

const (
	CmdMoveRight CommandKind = iota
	CmdMoveLeft
	CmdMoveUp
	CmdMoveDown
	CmdShoot
)

var commandNames = map[string]CommandKind{
	"moveright": CmdMoveRight,
	"moveleft":  CmdMoveLeft,
	"moveup":    CmdMoveUp,
	"movedown":  CmdMoveDown,
	"shootball": CmdShoot,
	"shoot":     CmdShoot,
}

func (k CommandKind) String() string {
	switch k {
	case CmdMoveRight:
		return "moveRight"
	case CmdMoveLeft:
		return "moveLeft"
	case CmdMoveUp:
		return "moveUp"
	case CmdMoveDown:
		return "moveDown"
	case CmdShoot:
		return "shootBall"
	default:
		return "unknown"
	}
}

// subSteps is how many ticks a move is split across. Right and up moves use
// 8, left and down 16.
func (k CommandKind) subSteps() int {
	if k == CmdMoveLeft || k == CmdMoveDown {
		return 16
	}
	return 8
}

func (k CommandKind) delta() (float64, float64) {
	switch k {
	case CmdMoveRight:
		return 1, 0
	case CmdMoveLeft:
		return -1, 0
	case CmdMoveUp:
		return 0, -1
	case CmdMoveDown:
		return 0, 1
	}
	return 0, 0
}

// GuardEnv is what a `when` guard can see.
type GuardEnv struct {
	InFront   func(int) bool `expr:"inFront"`
	BallStuck bool           `expr:"ballStuck"`
	X         float64        `expr:"x"`
	Y         float64        `expr:"y"`
	Level     int            `expr:"level"`
	Defenders int            `expr:"defenders"`
}

// Command is one parsed program line.
type Command struct {
	Kind  CommandKind
	Line  int
	Guard string
	guard *vm.Program
}

// Program is a flat list of commands; repeats are expanded at parse time.
type Program []Command

const maxRepeat = 100

// ParseProgram reads one command per line:
//
//	moveRight
//	repeat 3 moveUp
//	shootBall when inFront(0) == false
//
// JS-style calls such as `moveRight();` are accepted. Blank lines and lines
// starting with # or // are ignored.
func ParseProgram(src string) (Program, error) {
	var prog Program
	sc := bufio.NewScanner(strings.NewReader(src))
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") || strings.HasPrefix(text, "//") {
			continue
		}

		guardSrc := ""
		if i := strings.Index(text, " when "); i >= 0 {
			guardSrc = strings.TrimSpace(text[i+len(" when "):])
			text = strings.TrimSpace(text[:i])
		}

		count := 1
		fields := strings.Fields(text)
		if len(fields) > 0 && strings.EqualFold(fields[0], "repeat") {
			if len(fields) != 3 {
				return nil, fmt.Errorf("%w: line %d: want `repeat N command`", ErrBadProgram, line)
			}
			n, err := strconv.Atoi(fields[1])
			if err != nil || n < 1 || n > maxRepeat {
				return nil, fmt.Errorf("%w: line %d: repeat count %q", ErrBadProgram, line, fields[1])
			}
			count = n
			text = fields[2]
		}

		name := strings.ToLower(strings.TrimRight(strings.TrimSpace(text), ";"))
		name = strings.TrimSuffix(name, "()")
		kind, ok := commandNames[name]
		if !ok {
			return nil, fmt.Errorf("%w: line %d: unknown command %q", ErrBadProgram, line, text)
		}

		cmd := Command{Kind: kind, Line: line, Guard: guardSrc}
		if guardSrc != "" {
			p, err := expr.Compile(guardSrc, expr.Env(GuardEnv{}), expr.AsBool())
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: guard: %w", ErrBadProgram, line, err)
			}
			cmd.guard = p
		}
		for range count {
			prog = append(prog, cmd)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadProgram, err)
	}
	return prog, nil
}

// Sequencer runs a Program against the player, one sub-step per tick, with
// a fixed pause between commands. It never blocks; State.Step drives it.
type Sequencer struct {
	Delay int // ticks between commands

	ctx     context.Context
	queue   Program
	running bool
	wait    int

	cur       *Command
	remaining int
	stepX     float64
	stepY     float64
	targetX   float64
	targetY   float64
}

// Running reports whether a program is in progress.
func (q *Sequencer) Running() bool { return q.running }

// Pending returns how many commands are still queued, including the current.
func (q *Sequencer) Pending() int {
	n := len(q.queue)
	if q.cur != nil {
		n++
	}
	return n
}

// Start queues prog. The program stops early when ctx is cancelled.
func (q *Sequencer) Start(ctx context.Context, prog Program) error {
	if q.running {
		return ErrProgramRunning
	}
	if ctx == nil {
		ctx = context.Background()
	}
	q.ctx = ctx
	q.queue = append(Program(nil), prog...)
	q.running = len(q.queue) > 0
	q.wait = 0
	q.cur = nil
	return nil
}

// Cancel drops the program. Safe to call when idle.
func (q *Sequencer) Cancel() {
	q.running = false
	q.queue = nil
	q.cur = nil
	q.wait = 0
	q.ctx = nil
}

// step advances the program by one tick.
func (q *Sequencer) step(s *State) {
	if !q.running {
		return
	}
	if err := q.ctx.Err(); err != nil {
		q.Cancel()
		s.emit("player", "home", "script", "cancelled", err.Error(), 0)
		return
	}
	if q.wait > 0 {
		q.wait--
		return
	}
	if q.cur == nil && !q.next(s) {
		return
	}

	c := q.cur
	if c.Kind == CmdShoot {
		if !s.anim.Active() {
			q.finish(s, "done")
		}
		return
	}
	s.ApplyMovement(EntityPlayer, q.stepX, q.stepY)
	q.remaining--
	if q.remaining == 0 {
		// land exactly on the target to avoid float drift
		if p := s.Entity(EntityPlayer); p != nil {
			s.ApplyMovement(EntityPlayer, q.targetX-p.X, q.targetY-p.Y)
		}
		q.finish(s, "done")
	}
}

// next pops and starts the following command. Returns false when nothing is
// left to do this tick.
func (q *Sequencer) next(s *State) bool {
	if len(q.queue) == 0 {
		q.running = false
		s.emit("player", "home", "script", "finished", "", 0)
		return false
	}
	c := q.queue[0]
	q.queue = q.queue[1:]
	p := s.Entity(EntityPlayer)
	if p == nil {
		q.Cancel()
		return false
	}

	if c.guard != nil {
		out, err := expr.Run(c.guard, s.guardEnv())
		if pass, _ := out.(bool); err != nil || !pass {
			reason := "guard false"
			if err != nil {
				reason = err.Error()
			}
			s.emit("player", "home", "script", "skipped",
				fmt.Sprintf("line %d %s: %s", c.Line, c.Kind, reason), float64(c.Line))
			q.wait = q.Delay
			return false
		}
	}

	if c.Kind == CmdShoot {
		if !s.scriptedShot() {
			s.emit("player", "home", "script", "skipped",
				fmt.Sprintf("line %d %s: no ball", c.Line, c.Kind), float64(c.Line))
			q.wait = q.Delay
			return false
		}
		q.cur = &c
		return true
	}

	dx, dy := c.Kind.delta()
	tx, ty := p.X+dx*p.Speed, p.Y+dy*p.Speed
	if tx < 0 || ty < 0 || tx+p.W > s.field.W || ty+p.H > s.field.H {
		s.emit("player", "home", "script", "boundary",
			fmt.Sprintf("line %d %s refused at (%.0f,%.0f)", c.Line, c.Kind, p.X, p.Y), float64(c.Line))
		q.wait = q.Delay
		return false
	}
	n := c.Kind.subSteps()
	q.cur = &c
	q.remaining = n
	q.stepX = (tx - p.X) / float64(n)
	q.stepY = (ty - p.Y) / float64(n)
	q.targetX, q.targetY = tx, ty
	return true
}

func (q *Sequencer) finish(s *State, key string) {
	s.emit("player", "home", "script", key, q.cur.Kind.String(), float64(q.cur.Line))
	q.cur = nil
	q.wait = q.Delay
}

// scriptedShot is the programmatic kick: linear, four steps long, rolling
// faster than a real-time shot.
func (s *State) scriptedShot() bool {
	p := s.Entity(EntityPlayer)
	if p == nil || s.ball.Possessor != PossessedBy(EntityPlayer) {
		return false
	}
	return s.kick(AnimScriptedShot, AnimParams{
		Frames:   scriptShotFrames,
		DirX:     1,
		Speed:    p.Speed * 4 / scriptShotFrames,
		Decel:    1,
		RollStep: rollStepScripted,
		Shooter:  EntityPlayer,
	})
}

// guardEnv snapshots the state for a `when` guard.
func (s *State) guardEnv() GuardEnv {
	env := GuardEnv{
		BallStuck: s.ball.Stuck(),
		Level:     s.mode.Level,
		Defenders: len(s.obstacles),
	}
	if s.Entity(EntityDefender) != nil {
		env.Defenders++
	}
	p := s.Entity(EntityPlayer)
	if p != nil {
		env.X, env.Y = p.X, p.Y
	}
	env.InFront = func(i int) bool {
		d := s.defenderAt(i)
		return p != nil && d != nil && p.InFront(d)
	}
	return env
}

// defenderAt indexes the opposing entities scripts can see: level obstacles
// first, then the field opponent.
func (s *State) defenderAt(i int) *Entity {
	if i < 0 {
		return nil
	}
	if i < len(s.obstacles) {
		return s.obstacles[i]
	}
	if i == len(s.obstacles) {
		return s.Entity(EntityDefender)
	}
	return nil
}
