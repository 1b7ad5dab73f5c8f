package game

import "testing"

func TestLoadLayout_OneVOne(t *testing.T) {
	f := NewField(fieldWidth, fieldHeight, 0)
	l := LoadLayout(OneVOneMode(false), false, f)
	if l.Player != (Point{160, 250}) {
		t.Errorf("player = %+v", l.Player)
	}
	if l.Defender == nil || *l.Defender != (Point{610, 250}) {
		t.Errorf("defender = %+v", l.Defender)
	}
	if l.Ball != (Point{430, 294}) {
		t.Errorf("ball = %+v", l.Ball)
	}
	if l.KeeperL != nil || l.KeeperR != nil {
		t.Error("keepers placed while disabled")
	}
}

func TestLoadLayout_Levels(t *testing.T) {
	f := NewField(fieldWidth, fieldHeight, 0)
	if n := len(LoadLayout(LevelMode(1), true, f).Obstacles); n != 0 {
		t.Errorf("level 1 obstacles = %d", n)
	}
	l2 := LoadLayout(LevelMode(2), false, f)
	if len(l2.Obstacles) != 2 {
		t.Fatalf("level 2 obstacles = %d", len(l2.Obstacles))
	}
	if l2.Obstacles[0].X != 340 || l2.Obstacles[1].X != 485 {
		t.Errorf("level 2 obstacles = %+v", l2.Obstacles)
	}
	if n := len(LoadLayout(LevelMode(3), false, f).Obstacles); n != 9 {
		t.Errorf("level 3 obstacles = %d", n)
	}
	if l := LoadLayout(LevelMode(3), true, f); l.KeeperL != nil {
		t.Error("keepers must not appear in puzzle levels")
	}
	if l := LoadLayout(LevelMode(7), false, f); l.Defender == nil {
		t.Error("level 7 needs a defender")
	}
}

func TestLoadLayout_Keepers(t *testing.T) {
	f := NewField(fieldWidth, fieldHeight, 0)
	l := LoadLayout(BotMatchMode(), true, f)
	if l.KeeperL == nil || l.KeeperR == nil {
		t.Fatal("keepers missing")
	}
	if l.KeeperL.X != 70 || l.KeeperR.X != 758 {
		t.Errorf("keeper x = %v / %v", l.KeeperL.X, l.KeeperR.X)
	}
	if l.KeeperL.Y != 271.5 {
		t.Errorf("keeper y = %v, want centred on the goal", l.KeeperL.Y)
	}
}
