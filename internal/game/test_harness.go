package game

import "fmt"

// TestSim is a headless simulation harness used by tests and the headless
// report. It drives a State with a held Input and records every event in a
// SimLog.
type TestSim struct {
	State  *State
	SimLog *SimLog
	Input  Input // applied on every tick until changed

	opts Options
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptInfra simOptionKind = iota // mode, difficulty, rules, verbose: applied before the State exists
	simOptPlace                      // positions and possession: applied after the round reset
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestSim)
}

// WithMode selects the game mode.
func WithMode(m Mode) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.opts.Mode = m }}
}

// WithDifficulty sets the away bot tier.
func WithDifficulty(d Difficulty) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.opts.Difficulty = d }}
}

// WithHomeBot puts a bot on the player as well.
func WithHomeBot(d Difficulty) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.opts.HomeBot = true
		ts.opts.HomeDifficulty = d
	}}
}

// WithKeepers enables goalkeepers.
func WithKeepers(on bool) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.opts.Keepers = on }}
}

// WithRules sets the match end conditions.
func WithRules(r Rules) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.opts.Rules = r }}
}

// WithAutoAdvance loads the next level on a level goal.
func WithAutoAdvance(on bool) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.opts.AutoAdvance = on }}
}

// WithStepDelay sets the pause between scripted commands.
func WithStepDelay(ticks int) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.opts.StepDelay = ticks }}
}

// WithStealCooldown overrides the re-steal cooldown; negative disables it.
func WithStealCooldown(ticks int) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.opts.StealCooldown = ticks }}
}

// WithVerbose enables per-tick position logging.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.SimLog = NewSimLog(v) }}
}

// WithEntityAt moves an entity after the reset.
func WithEntityAt(id EntityID, x, y float64) SimOption {
	return SimOption{simOptPlace, func(ts *TestSim) {
		if e := ts.State.Entity(id); e != nil {
			e.Place(x, y)
		}
	}}
}

// WithPlayerAt moves the player after the reset.
func WithPlayerAt(x, y float64) SimOption { return WithEntityAt(EntityPlayer, x, y) }

// WithDefenderAt moves the defender or bot after the reset.
func WithDefenderAt(x, y float64) SimOption { return WithEntityAt(EntityDefender, x, y) }

// WithBallAt moves the ball and re-arms the goal detector there.
func WithBallAt(x, y float64) SimOption {
	return SimOption{simOptPlace, func(ts *TestSim) {
		ts.State.ball.X, ts.State.ball.Y = x, y
		ts.State.goals.Reset(ts.State.ball)
	}}
}

// WithPossession hands the ball to id, pinned at its feet.
func WithPossession(id EntityID) SimOption {
	return SimOption{simOptPlace, func(ts *TestSim) {
		e := ts.State.Entity(id)
		if e == nil {
			return
		}
		ts.State.ball.Possessor = PossessedBy(id)
		ts.State.ball.PinTo(e, ts.State.field)
	}}
}

// NewTestSim constructs a TestSim in two ordered passes:
//  1. Infrastructure (mode, difficulty, rules, verbose), then the State is built
//  2. Placements (entity and ball positions, possession)
func NewTestSim(opts ...SimOption) *TestSim {
	ts := &TestSim{
		SimLog: NewSimLog(false),
		opts:   DefaultOptions(),
	}
	for _, o := range opts {
		if o.kind == simOptInfra {
			o.fn(ts)
		}
	}
	ts.opts.SimLog = ts.SimLog
	ts.State = NewState(ts.opts)
	for _, o := range opts {
		if o.kind == simOptPlace {
			o.fn(ts)
		}
	}
	return ts
}

// RunTicks advances the simulation n ticks.
func (ts *TestSim) RunTicks(n int) {
	for i := 0; i < n; i++ {
		ts.State.Step(ts.Input)
	}
}

// RunUntil advances the simulation up to maxTicks, stopping early if predicate
// returns true. Returns the tick at which the predicate was satisfied, or -1.
func (ts *TestSim) RunUntil(predicate func(*TestSim) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		ts.State.Step(ts.Input)
		if predicate(ts) {
			return ts.State.Tick()
		}
	}
	return -1
}

// Tap applies in for a single tick, then restores the held input.
func (ts *TestSim) Tap(in Input) {
	held := ts.Input
	ts.Input = in
	ts.State.Step(in)
	ts.Input = held
}

// SimSnapshot is a lightweight copy of the pitch at a tick.
type SimSnapshot struct {
	Tick      int
	Entities  []EntitySnapshot
	BallX     float64
	BallY     float64
	Possessor Possessor
	Score     Score
}

// EntitySnapshot is one active entity's position.
type EntitySnapshot struct {
	ID   EntityID
	X, Y float64
}

// Snapshot returns the current state of the pitch.
func (ts *TestSim) Snapshot() SimSnapshot {
	s := ts.State
	snap := SimSnapshot{
		Tick:      s.Tick(),
		BallX:     s.ball.X,
		BallY:     s.ball.Y,
		Possessor: s.ball.Possessor,
		Score:     s.score,
	}
	for id := EntityPlayer; id < entityCount; id++ {
		if e := s.Entity(id); e != nil {
			snap.Entities = append(snap.Entities, EntitySnapshot{ID: id, X: e.X, Y: e.Y})
		}
	}
	return snap
}

func (snap SimSnapshot) String() string {
	return fmt.Sprintf("T=%d ball=(%.1f,%.1f) by=%s score=%d-%d",
		snap.Tick, snap.BallX, snap.BallY, snap.Possessor, snap.Score.Home, snap.Score.Away)
}
