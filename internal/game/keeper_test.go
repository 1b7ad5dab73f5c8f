package game

import "testing"

func keeperSim(opts ...SimOption) *TestSim {
	base := []SimOption{WithMode(BotMatchMode()), WithKeepers(true)}
	return NewTestSim(append(base, opts...)...)
}

func TestKeeper_PlacedOnlyWhenAllowed(t *testing.T) {
	ts := keeperSim()
	if ts.State.Entity(EntityKeeperLeft) == nil || ts.State.Entity(EntityKeeperRight) == nil {
		t.Fatal("keepers missing in bot mode")
	}
	lv := NewTestSim(WithMode(LevelMode(3)), WithKeepers(true))
	if lv.State.Entity(EntityKeeperLeft) != nil {
		t.Error("puzzle levels never have keepers")
	}
}

func TestKeeper_TracksThreatVertically(t *testing.T) {
	ts := keeperSim(WithPlayerAt(650, 150))
	k := ts.State.entities[EntityKeeperRight]
	y0, x0 := k.Y, k.X

	ts.RunTicks(1)
	if got := y0 - k.Y; got != keeperSpeed {
		t.Fatalf("keeper moved %v want %v", got, keeperSpeed)
	}
	ts.RunTicks(100)
	goal := ts.State.Field().Right.Box
	if k.Y != goal.Y {
		t.Errorf("keeper y = %v want clamped to %v", k.Y, goal.Y)
	}
	if k.X != x0 {
		t.Errorf("keeper left its line: x %v -> %v", x0, k.X)
	}
}

func TestKeeper_Deadzone(t *testing.T) {
	ts := keeperSim(WithPlayerAt(650, 258.5)) // centre 2px below the keeper's
	k := ts.State.entities[EntityKeeperRight]
	y0 := k.Y
	ts.RunTicks(5)
	if k.Y != y0 {
		t.Errorf("keeper jittered inside the deadzone: %v -> %v", y0, k.Y)
	}
}

func TestKeeper_IgnoresDistantThreat(t *testing.T) {
	ts := keeperSim(WithPlayerAt(300, 50))
	k := ts.State.entities[EntityKeeperRight]
	y0 := k.Y
	ts.RunTicks(5)
	if k.Y != y0 {
		t.Errorf("keeper tracked a threat out of range")
	}
}

func TestKeeper_PassesToTeammate(t *testing.T) {
	ts := keeperSim(
		WithPlayerAt(300, 250),
		WithPossession(EntityKeeperLeft),
	)
	ts.RunTicks(1)
	if !ts.SimLog.HasEntry("keeper", "pass", "to player") {
		t.Fatalf("keeper did not pass\n%s", ts.SimLog.Format())
	}
	if ts.RunUntil(func(ts *TestSim) bool { return !ts.State.Animating() }, 40) < 0 {
		t.Fatal("pass never finished")
	}
	if got := ts.State.Ball().Possessor; got != PossessedBy(EntityPlayer) {
		t.Errorf("possessor after pass = %v want player", got)
	}
}

func TestKeeper_ClearsAfterHolding(t *testing.T) {
	ts := keeperSim(
		WithPlayerAt(700, 100), // out of passing range
		WithPossession(EntityKeeperLeft),
	)
	n := ts.RunUntil(func(ts *TestSim) bool {
		return ts.SimLog.HasEntry("keeper", "clearance", "")
	}, keeperHoldLimit+10)
	if n < 0 {
		t.Fatalf("keeper never cleared\n%s", ts.SimLog.Format())
	}
	if n < keeperHoldLimit {
		t.Errorf("cleared at tick %d, before the hold limit", n)
	}
	if ts.SimLog.CountCategory("keeper", "pass") != 0 {
		t.Error("keeper passed to an out-of-range teammate")
	}
}

func TestKeeper_NoPassUnderPressure(t *testing.T) {
	ts := keeperSim(
		WithPlayerAt(300, 250),
		WithDefenderAt(160, 280), // within keeperPressureSafe of the keeper
		WithPossession(EntityKeeperLeft),
	)
	ts.RunTicks(1)
	if ts.SimLog.CountCategory("keeper", "pass") != 0 {
		t.Errorf("keeper passed under pressure\n%s", ts.SimLog.Format())
	}
}
