package game

import "testing"

func TestGoalDetector_SingleEventPerEntry(t *testing.T) {
	f := NewField(fieldWidth, fieldHeight, 0)
	b := newBall()
	b.X, b.Y = 400, 294
	var g GoalDetector
	g.Reset(b)

	if _, ok := g.Check(b, f); ok {
		t.Fatal("goal at reset position")
	}
	if g.Moved() {
		t.Fatal("moved latch set without movement")
	}

	b.X = 840
	goals := 0
	for i := 0; i < 30; i++ {
		if side, ok := g.Check(b, f); ok {
			goals++
			if side != SideHome {
				t.Errorf("right goal credited to %v", side)
			}
		}
	}
	if goals != 1 {
		t.Fatalf("goals = %d want 1", goals)
	}

	// Leaving both triggers re-arms the detector.
	b.X = 400
	g.Check(b, f)
	b.X = 30
	if side, ok := g.Check(b, f); !ok || side != SideAway {
		t.Errorf("left goal: side=%v ok=%v", side, ok)
	}
}

func TestGoalDetector_SpawnInsideNeedsMovement(t *testing.T) {
	f := NewField(fieldWidth, fieldHeight, 0)
	b := newBall()
	b.X, b.Y = 830, 294
	var g GoalDetector
	g.Reset(b)
	for i := 0; i < 10; i++ {
		if _, ok := g.Check(b, f); ok {
			t.Fatal("ball that never moved scored")
		}
	}
	b.X = 831
	if _, ok := g.Check(b, f); !ok {
		t.Error("ball that moved inside the trigger should score")
	}
}

func TestGoal_SpawnInsideDoesNotScore(t *testing.T) {
	ts := NewTestSim(
		WithMode(LevelMode(1)),
		WithPlayerAt(100, 100),
		WithBallAt(830, 294),
	)
	ts.RunTicks(30)
	if ts.State.LevelsCompleted() != 0 {
		t.Fatalf("level completed from a resting ball\n%s", ts.SimLog.Format())
	}
}

func TestGoal_PlayerShotScores(t *testing.T) {
	ts := NewTestSim(
		WithMode(BotMatchMode()),
		WithPlayerAt(700, 230),
		WithPossession(EntityPlayer),
	)
	s := ts.State
	ts.Tap(Input{Home: Control{Shoot: true}})
	if !s.Animating() && s.Score().Home == 0 {
		t.Fatal("shot did not start")
	}
	ts.RunTicks(60)
	if s.Score().Home != 1 {
		t.Fatalf("home score = %d want 1\n%s", s.Score().Home, ts.SimLog.Format())
	}
	if s.Rounds() != 2 {
		t.Errorf("rounds = %d want 2 (goal resets the round)", s.Rounds())
	}
	e, ok := ts.SimLog.LastOf("goal", "scored")
	if !ok || e.Entity != "player" {
		t.Errorf("scorer = %+v", e)
	}
	if s.Ball().X != ballKickoffX {
		t.Errorf("ball not back at kick-off: x=%v", s.Ball().X)
	}
}

func TestGoal_LevelCompletes(t *testing.T) {
	ts := NewTestSim(
		WithMode(LevelMode(1)),
		WithBallAt(780, 294),
		WithPlayerAt(767.5, 200),
	)
	ts.RunTicks(1)
	if !ts.State.Ball().Stuck() {
		t.Fatal("setup: player should have the ball")
	}
	ts.Tap(Input{Home: Control{Shoot: true}})
	ts.RunTicks(40)
	if ts.State.LevelsCompleted() != 1 {
		t.Fatalf("levels completed = %d\n%s", ts.State.LevelsCompleted(), ts.SimLog.Format())
	}
	if ts.State.Score() != (Score{}) {
		t.Errorf("level goals must not touch the match score: %+v", ts.State.Score())
	}
	if ts.State.Mode() != LevelMode(1) {
		t.Errorf("without auto-advance the level should restart, mode=%v", ts.State.Mode())
	}
}

func TestGoal_DribbleCreditsCarrier(t *testing.T) {
	ts := NewTestSim(
		WithMode(OneVOneMode(true)),
		WithPlayerAt(760, 220), // ball pinned at x 772.5, inside the trigger's y range
		WithPossession(EntityPlayer),
	)
	s := ts.State
	s.ball.LastShooter = PossessedBy(EntityDefender) // an earlier kick by the other side

	ts.Input = Input{Home: Control{DX: 1}}
	n := ts.RunUntil(func(ts *TestSim) bool { return ts.State.Score().Home > 0 }, 30)
	if n < 0 {
		t.Fatalf("dribble never scored\n%s", ts.SimLog.Format())
	}
	e, _ := ts.SimLog.LastOf("goal", "scored")
	if e.Entity != "player" {
		t.Errorf("scorer = %q want player", e.Entity)
	}
}

func TestGoal_NewHolderClearsKicker(t *testing.T) {
	ts := NewTestSim(
		WithMode(LevelMode(7)),
		WithPlayerAt(417.5, 200), // feet over the loose ball at (430,294)
	)
	s := ts.State
	s.ball.LastShooter = PossessedBy(EntityDefender)
	ts.RunTicks(1)
	if s.ball.Possessor != PossessedBy(EntityPlayer) {
		t.Fatalf("possessor = %v want player", s.ball.Possessor)
	}
	if s.ball.LastShooter != PossessorNone {
		t.Errorf("last shooter = %v want none once the player holds the ball", s.ball.LastShooter)
	}
}
