package game

const ballSize = 25

// Possessor identifies who controls the ball. PossessorNone means loose.
type Possessor int

const PossessorNone Possessor = -1

// PossessedBy wraps an entity as a possessor.
func PossessedBy(id EntityID) Possessor { return Possessor(id) }

// Entity returns the possessing entity, ok=false when the ball is loose.
func (p Possessor) Entity() (EntityID, bool) {
	if p == PossessorNone {
		return 0, false
	}
	return EntityID(p), true
}

func (p Possessor) String() string {
	if id, ok := p.Entity(); ok {
		return id.String()
	}
	return "none"
}

// Ball is the single ball on the pitch. Possession and the rolling angle are
// owned by the engine; no other component writes them.
type Ball struct {
	X, Y float64
	W, H float64

	Possessor    Possessor
	RollingAngle float64
	LastShooter  Possessor
}

func newBall() *Ball {
	return &Ball{W: ballSize, H: ballSize, Possessor: PossessorNone, LastShooter: PossessorNone}
}

// Box returns the ball's collision rectangle.
func (b *Ball) Box() Rect {
	return Rect{X: b.X, Y: b.Y, W: b.W, H: b.H}
}

// Stuck reports whether the ball follows someone's feet.
func (b *Ball) Stuck() bool {
	return b.Possessor != PossessorNone
}

// Center returns the centre of the ball.
func (b *Ball) Center() (float64, float64) {
	return b.X + b.W/2, b.Y + b.H/2
}

// PinTo places the ball at e's feet: horizontally centred on the feet box,
// straddling its bottom edge, clamped to the field.
func (b *Ball) PinTo(e *Entity, f Field) {
	feet := e.FeetBox()
	b.X = feet.X + (feet.W-b.W)/2
	b.Y = feet.Y + feet.H - b.H/2
	b.clampTo(f)
}

func (b *Ball) clampTo(f Field) {
	b.X = clampF(b.X, 0, f.W-b.W)
	b.Y = clampF(b.Y, 0, f.H-b.H)
}
