package game

// Point is a reset coordinate (entity top-left).
type Point struct{ X, Y float64 }

// Layout is the fixed placement of every active entity for a mode.
type Layout struct {
	Player    Point
	Ball      Point
	Defender  *Point  // contested/1v1 opponent, nil when absent
	Obstacles []Point // static level defenders (levels 2 and 3)
	KeeperL   *Point
	KeeperR   *Point
}

const (
	keeperInsetX = 70
	botStartX    = 610
	botStartY    = 250
	ballKickoffX = 430
)

// LoadLayout returns reset coordinates for mode on the standard pitch.
// Keepers are only placed when the mode allows them.
func LoadLayout(mode Mode, keepers bool, f Field) Layout {
	centreBall := Point{X: (f.W - ballSize) / 2, Y: (f.H - ballSize) / 2}
	kickoffBall := Point{X: ballKickoffX, Y: (f.H - ballSize) / 2}

	l := Layout{Player: Point{X: 150, Y: 220}, Ball: centreBall}

	switch mode.Kind {
	case ModeOneVOne:
		l.Player = Point{X: 160, Y: 250}
		l.Defender = &Point{X: botStartX, Y: botStartY}
		l.Ball = kickoffBall
	case ModeBotMatch:
		l.Defender = &Point{X: botStartX, Y: botStartY}
		l.Ball = kickoffBall
	default:
		switch mode.Level {
		case 2:
			l.Ball = kickoffBall
			l.Obstacles = []Point{
				{X: kickoffBall.X - defenderWidth - 30, Y: 250},
				{X: kickoffBall.X + ballSize + 30, Y: 250},
			}
		case 3:
			l.Obstacles = []Point{
				{X: 350, Y: 250}, {X: 150, Y: 350}, {X: 150, Y: 150},
				{X: 200, Y: 250}, {X: 150, Y: 450}, {X: 250, Y: 50},
				{X: 425, Y: 150}, {X: 425, Y: 400}, {X: 600, Y: 250},
			}
		case contestedLevel:
			l.Defender = &Point{X: botStartX, Y: botStartY}
			l.Ball = kickoffBall
		}
	}

	if keepers && mode.AllowsKeepers() {
		ly := f.Left.Box.Y + (f.Left.Box.H-defenderHeight)/2
		ry := f.Right.Box.Y + (f.Right.Box.H-defenderHeight)/2
		l.KeeperL = &Point{X: keeperInsetX, Y: ly}
		l.KeeperR = &Point{X: f.W - keeperInsetX - defenderWidth, Y: ry}
	}
	return l
}
