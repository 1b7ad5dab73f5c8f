package game

// Score is the running match score.
type Score struct {
	Home, Away int
}

// Add credits one goal to side.
func (sc *Score) Add(side Side) {
	if side == SideHome {
		sc.Home++
	} else {
		sc.Away++
	}
}

// Of returns side's goals.
func (sc Score) Of(side Side) int {
	if side == SideHome {
		return sc.Home
	}
	return sc.Away
}

// GoalDetector turns "ball fully inside a trigger box" into a single scoring
// event. Two latches guard it: the ball must have left its reset position at
// least once this round, and a goal is only reported once until the ball
// leaves both trigger boxes again.
type GoalDetector struct {
	startX, startY float64
	moved          bool
	handled        bool
}

// Reset re-arms the detector for a new round with the ball at its reset spot.
func (g *GoalDetector) Reset(b *Ball) {
	g.startX, g.startY = b.X, b.Y
	g.moved = false
	g.handled = false
}

// Moved reports whether the ball has left its reset position this round.
func (g *GoalDetector) Moved() bool { return g.moved }

// Check inspects the ball and returns the scoring side when a new goal is
// detected. A ball in the right goal scores for Home, the left for Away.
func (g *GoalDetector) Check(b *Ball, f Field) (Side, bool) {
	if !g.moved && (b.X != g.startX || b.Y != g.startY) {
		g.moved = true
	}
	box := b.Box()
	inRight := Contains(f.Right.Trigger(), box)
	inLeft := Contains(f.Left.Trigger(), box)
	if !inRight && !inLeft {
		g.handled = false
		return 0, false
	}
	if g.handled || !g.moved {
		return 0, false
	}
	g.handled = true
	if inRight {
		return SideHome, true
	}
	return SideAway, true
}
