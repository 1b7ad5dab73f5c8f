package game

import (
	"fmt"
	"testing"
)

// --- Invariant helpers ---

// checkInsideField verifies every logged position keeps the entity on the
// pitch. It needs a verbose SimLog.
func checkInsideField(t *testing.T, ts *TestSim) {
	t.Helper()
	posEntries := ts.SimLog.Filter("move", "pos")
	if len(posEntries) == 0 {
		t.Log("checkInsideField: no position entries (run with verbose SimLog)")
		return
	}
	f := ts.State.Field()
	for _, e := range posEntries {
		var x, y float64
		if _, err := fmt.Sscanf(e.Value, "(%f,%f)", &x, &y); err != nil {
			t.Logf("checkInsideField: could not parse %q: %v", e.Value, err)
			continue
		}
		w, h := float64(defenderWidth), float64(defenderHeight)
		if e.Entity == EntityPlayer.String() {
			w, h = playerWidth, playerHeight
		}
		if x < 0 || y < 0 || x+w > f.W+0.01 || y+h > f.H+0.01 {
			t.Errorf("T=%d %s left the pitch at (%.1f,%.1f)", e.Tick, e.Entity, x, y)
		}
	}
}

// checkPossessionTransitions verifies each possession change starts where
// the previous one ended. A round reset drops the ball silently.
func checkPossessionTransitions(t *testing.T, ts *TestSim) {
	t.Helper()
	prev := PossessorNone.String()
	for _, e := range ts.SimLog.Entries() {
		switch {
		case e.Category == "round" && e.Key == "reset":
			prev = PossessorNone.String()
			continue
		case e.Category != "possession":
			continue
		}
		var from, to string
		if _, err := fmt.Sscanf(e.Value, "%s → %s", &from, &to); err != nil {
			t.Logf("checkPossessionTransitions: could not parse %q: %v", e.Value, err)
			continue
		}
		if from == to {
			t.Errorf("T=%d no-op possession change %s", e.Tick, e.Value)
		}
		if from != prev {
			t.Errorf("T=%d change from %s but holder was %s", e.Tick, from, prev)
		}
		prev = to
	}
}

// checkBallPinned asserts the ball sits at its holder's feet after a tick.
func checkBallPinned(t *testing.T, s *State) {
	t.Helper()
	if s.Animating() && s.ball.Stuck() {
		t.Fatalf("T=%d ball held while animating", s.Tick())
	}
	if id, ok := s.ball.Possessor.Entity(); ok && !pinned(s, id) {
		t.Fatalf("T=%d ball not pinned to %v", s.Tick(), id)
	}
}

func TestInvariant_BotVsBotLongRun(t *testing.T) {
	ts := NewTestSim(
		WithMode(BotMatchMode()),
		WithDifficulty(DifficultyHard),
		WithHomeBot(DifficultyMedium),
		WithKeepers(true),
		WithRules(Rules{Kind: RulesFreeplay}),
		WithVerbose(true),
	)
	for i := 0; i < 3000; i++ {
		ts.RunTicks(1)
		checkBallPinned(t, ts.State)
	}
	checkInsideField(t, ts)
	checkPossessionTransitions(t, ts)
	dumpSummary(t, ts)
}

func TestInvariant_ContestedHumanVsHuman(t *testing.T) {
	ts := NewTestSim(
		WithMode(OneVOneMode(true)),
		WithKeepers(true),
		WithVerbose(true),
	)
	// Both humans run at each other and the ball, then zig-zag.
	for i := 0; i < 600; i++ {
		dy := 1
		if (i/40)%2 == 1 {
			dy = -1
		}
		ts.Input = Input{
			Home: Control{DX: 1, DY: dy, Shoot: i%90 == 0},
			Away: Control{DX: -1, DY: -dy, Shoot: i%70 == 0},
		}
		ts.RunTicks(1)
		checkBallPinned(t, ts.State)
	}
	checkInsideField(t, ts)
	checkPossessionTransitions(t, ts)
}

func TestInvariant_ScoreOnlyGrows(t *testing.T) {
	ts := NewTestSim(
		WithDifficulty(DifficultyImpossible),
		WithHomeBot(DifficultyImpossible),
		WithRules(Rules{Kind: RulesFreeplay}),
	)
	last := Score{}
	for i := 0; i < 4000; i++ {
		ts.RunTicks(1)
		sc := ts.State.Score()
		if sc.Home < last.Home || sc.Away < last.Away {
			t.Fatalf("T=%d score went backwards: %+v -> %+v", ts.State.Tick(), last, sc)
		}
		if (sc.Home+sc.Away)-(last.Home+last.Away) > 1 {
			t.Fatalf("T=%d two goals in one tick", ts.State.Tick())
		}
		last = sc
	}
	if ts.State.Rounds() != last.Home+last.Away+1 {
		t.Errorf("rounds = %d for score %+v", ts.State.Rounds(), last)
	}
}
