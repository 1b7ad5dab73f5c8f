package game

import "testing"

// dumpLog prints the full SimLog to t.Log so it appears in `go test -v` output.
func dumpLog(t *testing.T, ts *TestSim) {
	t.Helper()
	entries := ts.SimLog.Entries()
	if len(entries) == 0 {
		t.Log("(no log entries)")
		return
	}
	for _, e := range entries {
		t.Log(e.String())
	}
}

// dumpSummary prints the scenario summary block and the match report.
func dumpSummary(t *testing.T, ts *TestSim) {
	t.Helper()
	t.Log(ts.SimLog.Summary(ts.State))
	t.Log(ts.State.Report().Report().Format())
}

// --- Scenario: Bot vs Bot, full match ---

func TestScenario_BotVsBotFullMatch(t *testing.T) {
	t.Log("=== TestScenario_BotVsBotFullMatch ===")
	t.Log("--- Setup: medium home bot vs hard away bot, keepers, 1 minute ---")

	ts := NewTestSim(
		WithMode(BotMatchMode()),
		WithHomeBot(DifficultyMedium),
		WithDifficulty(DifficultyHard),
		WithKeepers(true),
		WithRules(Rules{Kind: RulesTimed, Minutes: 1}),
	)
	ts.RunUntil(func(ts *TestSim) bool { return ts.State.Over() }, TicksPerSecond*60+10)
	dumpSummary(t, ts)

	if !ts.State.Over() {
		t.Fatal("match did not finish")
	}
	rep := ts.State.Report().Report()
	if rep.Home.Goals != ts.State.Score().Home || rep.Away.Goals != ts.State.Score().Away {
		t.Errorf("report goals %d-%d disagree with score %+v", rep.Home.Goals, rep.Away.Goals, ts.State.Score())
	}
	if rep.Rounds != ts.State.Score().Home+ts.State.Score().Away+1 {
		t.Errorf("rounds = %d, want one per goal plus kick-off", rep.Rounds)
	}
	if rep.Home.PossessionTicks+rep.Away.PossessionTicks+rep.LooseTicks != rep.Ticks {
		t.Errorf("possession samples do not add up: %+v", rep)
	}
	if ts.SimLog.CountCategory("possession", "") == 0 {
		t.Error("nobody ever touched the ball")
	}
}

// --- Scenario: Impossible bot against a standing player ---

func TestScenario_ImpossibleBotScores(t *testing.T) {
	t.Log("=== TestScenario_ImpossibleBotScores ===")
	t.Log("--- Setup: idle human in the corner, impossible bot, freeplay ---")

	ts := NewTestSim(
		WithDifficulty(DifficultyImpossible),
		WithRules(Rules{Kind: RulesFreeplay}),
		WithPlayerAt(0, 0),
	)
	n := ts.RunUntil(func(ts *TestSim) bool { return ts.State.Score().Away > 0 }, 20*TicksPerSecond)
	if n < 0 {
		dumpLog(t, ts)
		t.Fatal("impossible bot failed to score against an empty pitch")
	}
	dumpSummary(t, ts)
	e, _ := ts.SimLog.LastOf("goal", "scored")
	if e.Entity != "defender" {
		t.Errorf("scorer = %s", e.Entity)
	}
}

// --- Scenario: Keeper saves ---

func TestScenario_KeeperStopsLongShot(t *testing.T) {
	t.Log("=== TestScenario_KeeperStopsLongShot ===")
	t.Log("--- Setup: player shoots from range straight at the right keeper ---")

	ts := NewTestSim(
		WithKeepers(true),
		WithPlayerAt(590, 230),
		WithDefenderAt(300, 500),
		WithPossession(EntityPlayer),
	)
	// Inside the tracking deadzone, with the feet just over the ball's path.
	k := ts.State.entities[EntityKeeperRight]
	k.Place(k.X, 249)
	ts.Tap(Input{Home: Control{Shoot: true}})
	ts.RunTicks(40)
	dumpSummary(t, ts)

	if ts.State.Score().Home != 0 {
		t.Fatal("keeper let the shot through")
	}
	if !ts.SimLog.HasEntry("ball", "intercept", "shot from player") {
		t.Errorf("keeper should intercept the shot\n%s", ts.SimLog.Format())
	}
}

// --- Scenario: Puzzle run ---

func TestScenario_PuzzleLevelOne(t *testing.T) {
	t.Log("=== TestScenario_PuzzleLevelOne ===")
	t.Log("--- Setup: level 1, scripted walk to the ball and a shot ---")

	ts := NewTestSim(WithMode(LevelMode(1)), WithStepDelay(2))
	src := `
repeat 5 moveRight
moveDown
shootBall when ballStuck
repeat 3 moveRight
shootBall when ballStuck
`
	if err := ts.State.RunProgram(t.Context(), src); err != nil {
		t.Fatal(err)
	}
	ts.RunUntil(func(ts *TestSim) bool { return !ts.State.ProgramRunning() }, 2000)
	dumpSummary(t, ts)

	if ts.State.ProgramRunning() {
		t.Fatal("program never finished")
	}
	if ts.SimLog.CountCategory("script", "done") == 0 {
		t.Error("no command completed")
	}
}
