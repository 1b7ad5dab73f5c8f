package game

import "testing"

func TestState_DefaultBotMatch(t *testing.T) {
	s := NewState(DefaultOptions())
	if !s.Mode().IsBot() {
		t.Fatalf("mode = %v", s.Mode())
	}
	if s.Entity(EntityDefender) == nil || s.Bot(EntityDefender) == nil {
		t.Fatal("bot match needs a bot on the defender")
	}
	if s.Bot(EntityPlayer) != nil {
		t.Error("player is human by default")
	}
	if s.Rounds() != 1 || s.Tick() != 0 {
		t.Errorf("rounds=%d tick=%d", s.Rounds(), s.Tick())
	}
	if b := s.Ball(); b.X != ballKickoffX || b.Stuck() {
		t.Errorf("ball = %+v", *b)
	}
}

func TestState_MovementClampsToField(t *testing.T) {
	ts := NewTestSim(WithMode(LevelMode(1)), WithPlayerAt(2, 2))
	s := ts.State
	ts.Input.Home = Control{DX: -1, DY: -1}
	ts.RunTicks(5)
	p := s.entities[EntityPlayer]
	if p.X != 0 || p.Y != 0 {
		t.Fatalf("player at (%v,%v) want (0,0)", p.X, p.Y)
	}

	p.Place(836, 511)
	ts.Input.Home = Control{DX: 1, DY: 1}
	ts.RunTicks(5)
	if p.X != fieldWidth-playerWidth || p.Y != fieldHeight-playerHeight {
		t.Errorf("player at (%v,%v) want (838,513)", p.X, p.Y)
	}
}

func TestState_AbsentEntityIgnored(t *testing.T) {
	ts := NewTestSim(WithMode(LevelMode(1)))
	s := ts.State
	s.ApplyMovement(EntityDefender, 10, 10)
	s.ApplyMovement(EntityID(99), 10, 10)
	if s.Entity(EntityDefender) != nil {
		t.Fatal("level 1 has no defender")
	}
	if s.Shoot(EntityDefender) {
		t.Error("absent entity shot")
	}
	ts.Input.Away = Control{DX: 1, Shoot: true}
	ts.RunTicks(3) // away input in a level must be a no-op
}

func TestState_AwayInputOnlyInOneVOne(t *testing.T) {
	ts := NewTestSim(WithMode(OneVOneMode(false)))
	d := ts.State.entities[EntityDefender]
	x0 := d.X
	ts.Input.Away = Control{DX: -1}
	ts.RunTicks(2)
	if d.X != x0-2*playerSpeed {
		t.Errorf("defender x = %v want %v", d.X, x0-2*playerSpeed)
	}
}

func TestState_HomeBotIgnoresKeyboard(t *testing.T) {
	ts := NewTestSim(WithHomeBot(DifficultyEasy), WithPlayerAt(100, 100))
	s := ts.State
	ts.Input.Home = Control{DX: -1}
	ts.RunTicks(5)
	if s.entities[EntityPlayer].X < 100 {
		t.Error("keyboard input moved a bot-driven player")
	}
}

func TestState_ResetCancelsAnimation(t *testing.T) {
	ts := NewTestSim(
		WithPlayerAt(300, 230),
		WithPossession(EntityPlayer),
	)
	s := ts.State
	ts.Tap(Input{Home: Control{Shoot: true}})
	if !s.Animating() {
		t.Fatal("setup: shot should be in flight")
	}
	s.Reset()
	if s.Animating() {
		t.Error("reset left the animation running")
	}
	if s.Ball().RollingAngle != 0 || s.Ball().LastShooter != PossessorNone {
		t.Errorf("ball transient state not cleared: %+v", *s.Ball())
	}
	if s.BallMoved() {
		t.Error("reset should re-arm the moved latch")
	}
	if s.Rounds() != 2 {
		t.Errorf("rounds = %d", s.Rounds())
	}
}

func TestState_LoadModeZeroesScore(t *testing.T) {
	ts := NewTestSim(WithPlayerAt(700, 230), WithPossession(EntityPlayer))
	s := ts.State
	ts.Tap(Input{Home: Control{Shoot: true}})
	ts.RunTicks(30)
	if s.Score().Home != 1 {
		t.Fatalf("setup: score = %+v", s.Score())
	}
	id := s.Report().Report().ID
	s.LoadMode(OneVOneMode(true))
	if s.Score() != (Score{}) || s.Tick() != 0 || s.Rounds() != 1 {
		t.Errorf("after load: score=%+v tick=%d rounds=%d", s.Score(), s.Tick(), s.Rounds())
	}
	if s.Bot(EntityDefender) != nil {
		t.Error("1v1 has no bot")
	}
	if s.Report().Report().ID == id {
		t.Error("new mode should start a new report")
	}
}

func TestState_AutoAdvance(t *testing.T) {
	ts := NewTestSim(
		WithMode(LevelMode(1)),
		WithAutoAdvance(true),
		WithBallAt(780, 294),
		WithPlayerAt(767.5, 200),
	)
	s := ts.State
	ts.RunTicks(1)
	ts.Tap(Input{Home: Control{Shoot: true}})
	ts.RunUntil(func(ts *TestSim) bool { return ts.State.LevelsCompleted() > 0 }, 40)
	if s.Mode() != LevelMode(2) {
		t.Fatalf("mode = %v want level-2\n%s", s.Mode(), ts.SimLog.Format())
	}
	if len(s.Obstacles()) != 2 {
		t.Errorf("level 2 obstacles = %d", len(s.Obstacles()))
	}
}

func TestState_LevelFiveRestartsWithoutNext(t *testing.T) {
	ts := NewTestSim(
		WithMode(LevelMode(5)),
		WithAutoAdvance(true),
		WithBallAt(780, 294),
		WithPlayerAt(767.5, 200),
	)
	ts.RunTicks(1)
	ts.Tap(Input{Home: Control{Shoot: true}})
	ts.RunTicks(40)
	if ts.State.Mode() != LevelMode(5) {
		t.Errorf("mode = %v, the last puzzle level should restart", ts.State.Mode())
	}
}

func TestState_EventsMirrorSimLog(t *testing.T) {
	ts := NewTestSim()
	ts.RunTicks(1)
	if ts.State.Events().Len() == 0 {
		t.Fatal("event log empty after load")
	}
	first := ts.State.Events().Recent()[0]
	if first.Message != "mode bot" {
		t.Errorf("first event = %+v", first)
	}
}

func TestState_VerboseLogsPositions(t *testing.T) {
	ts := NewTestSim(WithVerbose(true))
	ts.RunTicks(3)
	if n := ts.SimLog.CountCategory("move", "pos"); n != 3*2 {
		t.Errorf("verbose position entries = %d want 6", n)
	}
	quiet := NewTestSim()
	quiet.RunTicks(3)
	if quiet.SimLog.CountCategory("move", "pos") != 0 {
		t.Error("non-verbose log recorded positions")
	}
}

func TestShotLatch_HoldsPressUntilStep(t *testing.T) {
	ts := NewTestSim(
		WithMode(OneVOneMode(false)),
		WithPlayerAt(417.5, 200),
		WithPossession(EntityPlayer),
	)
	var l ShotLatch

	// Pressed on a paused frame, nothing stepped.
	l.Press(Input{Home: Control{Shoot: true}})
	l.Press(Input{})

	ts.State.Step(l.Take(Input{}))
	if !ts.SimLog.HasEntry("ball", AnimShot.String(), "") {
		t.Fatalf("latched shot was dropped\n%s", ts.SimLog.Format())
	}
	if in := l.Take(Input{}); in.Home.Shoot || in.Away.Shoot {
		t.Errorf("latch not cleared after take: %+v", in)
	}
}
