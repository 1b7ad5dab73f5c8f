package game

import (
	"context"
	"fmt"
	"log/slog"
)

// Control is one side's input for a tick. DX/DY are -1, 0 or 1.
type Control struct {
	DX, DY int
	Shoot  bool
}

// Input carries both sides' controls. Away is only read in two-human modes.
type Input struct {
	Home, Away Control
}

// ShotLatch holds shot presses until a tick consumes them. Front ends poll
// keys more often than they step when paused or slowed down.
type ShotLatch struct {
	home, away bool
}

// Press records the shots requested in in.
func (l *ShotLatch) Press(in Input) {
	l.home = l.home || in.Home.Shoot
	l.away = l.away || in.Away.Shoot
}

// Take returns in with the pending shots applied and clears the latch.
func (l *ShotLatch) Take(in Input) Input {
	in.Home.Shoot, in.Away.Shoot = l.home, l.away
	l.home, l.away = false, false
	return in
}

const defaultStepDelay = 6

// Options configure a State. The zero value is a usable bot match on easy.
type Options struct {
	Mode           Mode
	Difficulty     Difficulty // away bot
	HomeBot        bool       // let a bot drive the player too
	HomeDifficulty Difficulty
	Keepers        bool
	AutoAdvance    bool // level modes: load the next level on a goal
	Rules          Rules
	GoalInset      float64 // <= 0 selects the default
	StepDelay      int     // ticks between scripted commands; < 0 means none
	StealCooldown  int     // ticks; 0 selects the default, < 0 disables

	SimLog *SimLog
	Logger *slog.Logger
}

// DefaultOptions is a timed bot match on easy.
func DefaultOptions() Options {
	return Options{
		Mode:       BotMatchMode(),
		Difficulty: DifficultyEasy,
		Rules:      DefaultRules(),
		StepDelay:  defaultStepDelay,
	}
}

// State is the whole game: field, entities, ball and every subsystem that
// acts on them. All mutation happens inside Step or the explicit control
// methods (LoadMode, Reset, RunProgram).
type State struct {
	opts  Options
	field Field
	mode  Mode

	entities  [entityCount]*Entity
	obstacles []*Entity
	ball      *Ball
	anim      AnimationController
	goals     GoalDetector
	score     Score
	bots      []*Bot
	keepers   []*Keeper
	seq       Sequencer

	tick      int
	roundTick int
	rounds    int

	lastLoser          EntityID
	stealCooldownUntil int
	stealCooldown      int

	closeToWinAt Score
	over         bool
	outcome      MatchOutcomeReason
	levelsDone   int

	events   *EventLog
	simLog   *SimLog
	reporter *Reporter
	logger   *slog.Logger
}

// NewState builds a game in opts.Mode and resets it for kick-off.
func NewState(opts Options) *State {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.StepDelay < 0 {
		opts.StepDelay = 0
	}
	s := &State{
		opts:     opts,
		field:    NewField(fieldWidth, fieldHeight, opts.GoalInset),
		ball:     newBall(),
		events:   NewEventLog(),
		simLog:   opts.SimLog,
		logger:   opts.Logger,
		reporter: NewReporter(),
	}
	switch {
	case opts.StealCooldown == 0:
		s.stealCooldown = stealCooldownTicks
	case opts.StealCooldown > 0:
		s.stealCooldown = opts.StealCooldown
	}
	s.seq.Delay = opts.StepDelay
	s.LoadMode(opts.Mode)
	return s
}

// LoadMode switches mode, rebuilds the cast, zeroes the score and resets the
// round.
func (s *State) LoadMode(m Mode) {
	s.mode = m
	s.score = Score{}
	s.closeToWinAt = Score{}
	s.over = false
	s.outcome = MatchOutcomeReason{}
	s.tick = 0
	s.rounds = 0
	s.reporter.Begin(s)

	s.entities = [entityCount]*Entity{}
	s.entities[EntityPlayer] = newPlayer()
	for _, id := range []EntityID{EntityDefender, EntityKeeperLeft, EntityKeeperRight} {
		s.entities[id] = newDefender(id)
	}
	layout := LoadLayout(m, s.opts.Keepers, s.field)
	s.entities[EntityDefender].Active = layout.Defender != nil
	s.entities[EntityKeeperLeft].Active = layout.KeeperL != nil
	s.entities[EntityKeeperRight].Active = layout.KeeperR != nil
	s.entities[EntityKeeperLeft].Speed = keeperSpeed
	s.entities[EntityKeeperRight].Speed = keeperSpeed

	s.obstacles = s.obstacles[:0]
	for range layout.Obstacles {
		s.obstacles = append(s.obstacles, newDefender(EntityDefender))
	}

	s.bots = nil
	if m.IsBot() {
		s.bots = append(s.bots, NewBot(EntityDefender, EntityPlayer, s.opts.Difficulty))
		s.entities[EntityDefender].Speed = botTiers[s.opts.Difficulty].speed
		if s.opts.HomeBot {
			s.bots = append(s.bots, NewBot(EntityPlayer, EntityDefender, s.opts.HomeDifficulty))
		}
	}
	s.keepers = nil
	for _, id := range []EntityID{EntityKeeperLeft, EntityKeeperRight} {
		if s.entities[id].Active {
			s.keepers = append(s.keepers, NewKeeper(id))
		}
	}

	s.logger.Info("mode loaded", "mode", m.String(), "policy", m.Policy().String(),
		"keepers", len(s.keepers), "bots", len(s.bots))
	s.emit("--", "--", "match", "mode", m.String(), 0)
	s.Reset()
}

// Reset starts a new round: every entity and the ball go back to the
// layout, and every in-flight animation, script and latch is cancelled.
func (s *State) Reset() {
	s.anim.Cancel(s.ball)
	s.seq.Cancel()

	layout := LoadLayout(s.mode, s.opts.Keepers, s.field)
	s.entities[EntityPlayer].Place(layout.Player.X, layout.Player.Y)
	if layout.Defender != nil {
		s.entities[EntityDefender].Place(layout.Defender.X, layout.Defender.Y)
	}
	if layout.KeeperL != nil {
		s.entities[EntityKeeperLeft].Place(layout.KeeperL.X, layout.KeeperL.Y)
	}
	if layout.KeeperR != nil {
		s.entities[EntityKeeperRight].Place(layout.KeeperR.X, layout.KeeperR.Y)
	}
	for i, p := range layout.Obstacles {
		s.obstacles[i].Place(p.X, p.Y)
	}

	s.ball.X, s.ball.Y = layout.Ball.X, layout.Ball.Y
	s.ball.RollingAngle = 0
	s.ball.LastShooter = PossessorNone
	s.ball.Possessor = PossessorNone
	s.goals.Reset(s.ball)

	for _, b := range s.bots {
		b.ResetRound()
	}
	for _, k := range s.keepers {
		k.ResetRound()
	}
	s.stealCooldownUntil = 0
	s.roundTick = 0
	s.rounds++
	s.emit("--", "--", "round", "reset", fmt.Sprintf("round %d", s.rounds), float64(s.rounds))
}

// Step advances the simulation by one tick.
func (s *State) Step(in Input) {
	if s.over {
		return
	}
	s.tick++
	s.roundTick++
	for _, e := range s.entities {
		e.lastDX = 0
	}

	// 1. Human input.
	if !s.opts.HomeBot || !s.mode.IsBot() {
		s.control(EntityPlayer, in.Home)
	}
	if s.mode.IsOneVOne() {
		s.control(EntityDefender, in.Away)
	}

	// 2. Scripted program.
	s.seq.step(s)

	// 3. AI.
	for _, b := range s.bots {
		b.Think(s)
	}
	for _, k := range s.keepers {
		k.Think(s)
	}

	// 4. Ball animation and interception.
	s.advanceAnimation()

	// 5. Possession.
	s.resolvePossession()

	// 6. Goals. A goal resets the round, so nothing below may assume positions.
	s.checkGoals()

	// 7. Match rules.
	s.checkRules()

	// 8. Stats.
	s.reporter.Sample(s)
	if s.simLog != nil && s.simLog.Verbose() {
		for id := EntityPlayer; id < entityCount; id++ {
			if e := s.Entity(id); e != nil {
				s.simLog.AddVerbose(s.tick, id.String(), SideOf(id).String(), "move", "pos",
					fmt.Sprintf("(%.1f,%.1f)", e.X, e.Y), 0)
			}
		}
	}
}

func (s *State) control(id EntityID, c Control) {
	if c.DX != 0 || c.DY != 0 {
		s.ApplyMovement(id, float64(c.DX)*playerSpeed, float64(c.DY)*playerSpeed)
	}
	if c.Shoot {
		s.Shoot(id)
	}
}

func (s *State) checkGoals() {
	side, ok := s.goals.Check(s.ball, s.field)
	if !ok {
		return
	}
	if s.mode.IsLevel() && s.mode.Level <= maxPuzzleLevel {
		s.levelsDone++
		s.emit("--", "--", "level", "complete", s.mode.String(), float64(s.mode.Level))
		s.logger.Info("level complete", "level", s.mode.Level)
		if s.opts.AutoAdvance && s.mode.Level < maxPuzzleLevel {
			s.LoadMode(LevelMode(s.mode.Level + 1))
			return
		}
		s.Reset()
		return
	}

	s.score.Add(side)
	scorer := "--"
	if id, ok := s.ball.Possessor.Entity(); ok {
		scorer = id.String()
	} else if id, ok := s.ball.LastShooter.Entity(); ok {
		scorer = id.String()
	}
	s.emit(scorer, side.String(), "goal", "scored",
		fmt.Sprintf("%s scores, %d-%d", side, s.score.Home, s.score.Away), float64(s.score.Of(side)))
	s.logger.Info("goal", "side", side.String(), "home", s.score.Home, "away", s.score.Away, "tick", s.tick)
	s.Reset()

	if near, ok := s.opts.Rules.CloseToWin(s.score); ok && s.closeToWinAt != s.score {
		s.closeToWinAt = s.score
		s.emit("--", near.String(), "match", "close_to_win",
			fmt.Sprintf("%s needs one more", near), float64(s.score.Of(near)))
	}
}

func (s *State) checkRules() {
	if s.mode.IsLevel() && s.mode.Level <= maxPuzzleLevel {
		return
	}
	if !s.opts.Rules.Finished(s.score, s.tick) {
		return
	}
	s.over = true
	s.anim.Cancel(s.ball)
	s.seq.Cancel()
	s.outcome = DetermineMatchOutcome(s.opts.Rules, s.score, s.tick)
	s.emit("--", "--", "match", "end", s.outcome.Description, float64(s.tick))
	s.logger.Info("match over", "outcome", s.outcome.Outcome.String(),
		"home", s.score.Home, "away", s.score.Away, "ticks", s.tick)
}

// RunProgram parses src and starts it on the player.
func (s *State) RunProgram(ctx context.Context, src string) error {
	prog, err := ParseProgram(src)
	if err != nil {
		return err
	}
	if err := s.seq.Start(ctx, prog); err != nil {
		return err
	}
	s.emit("player", "home", "script", "started", fmt.Sprintf("%d commands", len(prog)), float64(len(prog)))
	return nil
}

// CancelProgram stops the running program, if any.
func (s *State) CancelProgram() { s.seq.Cancel() }

// ProgramRunning reports whether a scripted program is active.
func (s *State) ProgramRunning() bool { return s.seq.Running() }

// ProgramPending is how many scripted commands are left, including the current one.
func (s *State) ProgramPending() int { return s.seq.Pending() }

// emit fans an event out to the UI log, the SimLog, the reporter and slog.
func (s *State) emit(label, side, category, key, value string, num float64) {
	if s.simLog != nil {
		s.simLog.Add(s.tick, label, side, category, key, value, num)
	}
	s.events.Add(s.tick, label, side, key+" "+value)
	s.reporter.Observe(category, key, label, side)
	s.logger.Debug(category+" "+key, "tick", s.tick, "entity", label, "detail", value)
}

// Entity returns an active entity, or nil when it is absent in this mode.
func (s *State) Entity(id EntityID) *Entity {
	if id < 0 || id >= entityCount {
		return nil
	}
	if e := s.entities[id]; e != nil && e.Active {
		return e
	}
	return nil
}

func (s *State) Field() Field                { return s.field }
func (s *State) Mode() Mode                  { return s.mode }
func (s *State) Ball() *Ball                 { return s.ball }
func (s *State) Score() Score                { return s.score }
func (s *State) Tick() int                   { return s.tick }
func (s *State) RoundTick() int              { return s.roundTick }
func (s *State) Rounds() int                 { return s.rounds }
func (s *State) Over() bool                  { return s.over }
func (s *State) Outcome() MatchOutcomeReason { return s.outcome }
func (s *State) Obstacles() []*Entity        { return s.obstacles }
func (s *State) Events() *EventLog           { return s.events }
func (s *State) Report() *Reporter           { return s.reporter }
func (s *State) Animating() bool             { return s.anim.Active() }
func (s *State) Options() Options            { return s.opts }
func (s *State) LevelsCompleted() int        { return s.levelsDone }
func (s *State) BallMoved() bool             { return s.goals.Moved() }

// Bot returns the bot driving id, or nil.
func (s *State) Bot(id EntityID) *Bot {
	for _, b := range s.bots {
		if b.self == id {
			return b
		}
	}
	return nil
}

// RemainingTicks is the time left in a timed match.
func (s *State) RemainingTicks() int { return s.opts.Rules.Remaining(s.tick) }
