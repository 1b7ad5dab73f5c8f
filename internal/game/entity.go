package game

const (
	fieldWidth  = 888
	fieldHeight = 613

	playerWidth  = 50
	playerHeight = 100
	playerStep   = 55 // scripted move distance
	playerSpeed  = 4  // real-time pixels per tick

	defenderWidth  = 60
	defenderHeight = 70

	feetHeight   = 10
	feetWidthMul = 0.5

	goalWidth      = 120
	goalHeight     = 200
	goalEdgeOffset = -15
)

// DefaultGoalInset is how far the scoring trigger sits inside the goal frame.
const DefaultGoalInset = 30

// EntityID names one of the fixed actors on the pitch.
type EntityID int

const (
	EntityPlayer      EntityID = iota // human-controlled attacker (home)
	EntityDefender                    // bot or second human (away)
	EntityKeeperLeft                  // home goalkeeper, guards the left goal
	EntityKeeperRight                 // away goalkeeper, guards the right goal
	entityCount
)

func (id EntityID) String() string {
	switch id {
	case EntityPlayer:
		return "player"
	case EntityDefender:
		return "defender"
	case EntityKeeperLeft:
		return "keeper-left"
	case EntityKeeperRight:
		return "keeper-right"
	default:
		return "unknown"
	}
}

// Side is a team. Home attacks the right goal, Away attacks the left one.
type Side int

const (
	SideHome Side = iota
	SideAway
)

func (s Side) String() string {
	if s == SideHome {
		return "home"
	}
	return "away"
}

// Other returns the opposing side.
func (s Side) Other() Side {
	if s == SideHome {
		return SideAway
	}
	return SideHome
}

// SideOf returns the team an entity plays for.
func SideOf(id EntityID) Side {
	if id == EntityPlayer || id == EntityKeeperLeft {
		return SideHome
	}
	return SideAway
}

// Entity is a rectangular actor: player, defender/bot or goalkeeper.
type Entity struct {
	ID     EntityID
	X, Y   float64
	W, H   float64
	Speed  float64 // scripted step for the player, px/tick for AI
	Active bool

	StartX, StartY float64

	// lastDX is the horizontal component of the most recent move; the
	// keeper-assist retreat guard reads it.
	lastDX float64
}

func newPlayer() *Entity {
	return &Entity{ID: EntityPlayer, W: playerWidth, H: playerHeight, Speed: playerStep, Active: true}
}

func newDefender(id EntityID) *Entity {
	return &Entity{ID: id, W: defenderWidth, H: defenderHeight, Speed: botSpeedEasy}
}

// FeetBox is the possession contact zone: half the body width, 10px tall,
// at the bottom centre.
func (e *Entity) FeetBox() Rect {
	fw := e.W * feetWidthMul
	return Rect{
		X: e.X + (e.W-fw)/2,
		Y: e.Y + e.H - feetHeight,
		W: fw,
		H: feetHeight,
	}
}

// BodyBox is a centred square 70% of the entity width.
func (e *Entity) BodyBox() Rect {
	s := e.W * 0.7
	return Rect{X: e.X + (e.W-s)/2, Y: e.Y + (e.H-s)/2, W: s, H: s}
}

// Center returns the centre of the full sprite rectangle.
func (e *Entity) Center() (float64, float64) {
	return e.X + e.W/2, e.Y + e.H/2
}

// Place moves the entity and records the position as its round start.
func (e *Entity) Place(x, y float64) {
	e.X, e.Y = x, y
	e.StartX, e.StartY = x, y
	e.lastDX = 0
}

// clampTo keeps the entity inside [0, field-size] on both axes.
func (e *Entity) clampTo(f Field) {
	e.X = clampF(e.X, 0, f.W-e.W)
	e.Y = clampF(e.Y, 0, f.H-e.H)
}

// InFront reports whether d stands to the right of e and within 100px
// vertically. Exposed to scripted programs as inFront(i).
func (e *Entity) InFront(d *Entity) bool {
	if d == nil {
		return false
	}
	dy := d.Y - e.Y
	if dy < 0 {
		dy = -dy
	}
	return d.X > e.X+e.W && dy < 100
}

// Field is the pitch: its bounds and the two goals.
type Field struct {
	W, H  float64
	Left  Goal
	Right Goal
}

// Goal is the frame rectangle on one side of the pitch. Only the inset
// trigger box counts for scoring.
type Goal struct {
	Side  Side // the team that defends this goal
	Box   Rect
	Inset float64
}

// Trigger returns the box that must fully contain the ball for a goal.
func (g Goal) Trigger() Rect {
	return g.Box.Inset(g.Inset)
}

// Center returns the centre of the goal frame.
func (g Goal) Center() (float64, float64) {
	return g.Box.Center()
}

// NewField builds the standard pitch with goals vertically centred at each
// edge. inset <= 0 selects DefaultGoalInset.
func NewField(w, h, inset float64) Field {
	if inset <= 0 {
		inset = DefaultGoalInset
	}
	gy := (h - goalHeight) / 2
	return Field{
		W: w,
		H: h,
		Left: Goal{
			Side:  SideHome,
			Box:   Rect{X: goalEdgeOffset, Y: gy, W: goalWidth, H: goalHeight},
			Inset: inset,
		},
		Right: Goal{
			Side:  SideAway,
			Box:   Rect{X: w - goalWidth - goalEdgeOffset, Y: gy, W: goalWidth, H: goalHeight},
			Inset: inset,
		},
	}
}

// AttackGoal is the goal the given side shoots at.
func (f Field) AttackGoal(s Side) Goal {
	if s == SideHome {
		return f.Right
	}
	return f.Left
}

// DefendGoal is the goal the given side protects.
func (f Field) DefendGoal(s Side) Goal {
	if s == SideHome {
		return f.Left
	}
	return f.Right
}
