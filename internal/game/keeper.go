package game

import "fmt"

const (
	keeperTrackRange   = 250
	keeperDeadzone     = 5
	keeperSpeed        = 2.5
	keeperPassRange    = 350 // teammate must be closer than this
	keeperPressureSafe = 150 // nearest opponent must be farther than this
	keeperHoldLimit    = 2 * TicksPerSecond
)

// Keeper guards one goal. It slides along the goal mouth toward the
// opposing field player and distributes the ball when it wins it.
type Keeper struct {
	id   EntityID
	hold int // ticks holding the ball without distributing
}

// NewKeeper builds the AI for a keeper entity.
func NewKeeper(id EntityID) *Keeper {
	return &Keeper{id: id}
}

func (k *Keeper) side() Side { return SideOf(k.id) }

// fieldPlayerOf returns the outfield entity of a side.
func fieldPlayerOf(side Side) EntityID {
	if side == SideHome {
		return EntityPlayer
	}
	return EntityDefender
}

func keeperOf(side Side) EntityID {
	if side == SideHome {
		return EntityKeeperLeft
	}
	return EntityKeeperRight
}

// ResetRound clears the hold counter.
func (k *Keeper) ResetRound() { k.hold = 0 }

// Think runs tracking and then the distribution decision.
func (k *Keeper) Think(s *State) {
	e := s.Entity(k.id)
	if e == nil {
		return
	}
	k.track(s, e)
	k.distribute(s, e)
}

func (k *Keeper) track(s *State, e *Entity) {
	threat := s.Entity(fieldPlayerOf(k.side().Other()))
	if threat == nil {
		return
	}
	kx, ky := e.Center()
	tx, ty := threat.Center()
	if dist(kx, ky, tx, ty) >= keeperTrackRange {
		return
	}
	dy := ty - ky
	if dy > -keeperDeadzone && dy < keeperDeadzone {
		return
	}
	mv := min(keeperSpeed, max(dy, -dy))
	if dy < 0 {
		mv = -mv
	}
	goal := s.field.DefendGoal(k.side()).Box
	ny := clampF(e.Y+mv, goal.Y, goal.Y+goal.H-e.H)
	s.ApplyMovement(k.id, 0, ny-e.Y)
}

func (k *Keeper) distribute(s *State, e *Entity) {
	if s.ball.Possessor != PossessedBy(k.id) || s.anim.Active() {
		k.hold = 0
		return
	}
	kx, ky := e.Center()
	if mate := s.Entity(fieldPlayerOf(k.side())); mate != nil {
		mx, my := mate.Center()
		if dist(kx, ky, mx, my) < keeperPassRange && k.nearestOpponent(s, kx, ky) > keeperPressureSafe {
			fx, fy := mate.FeetBox().Center()
			bx, by := s.ball.Center()
			if s.kickToward(AnimPass, k.id, fx, fy, dist(bx, by, fx, fy)) {
				k.hold = 0
				s.emit(k.id.String(), k.side().String(), "keeper", "pass",
					fmt.Sprintf("to %s", mate.ID), dist(kx, ky, mx, my))
				return
			}
		}
	}
	k.hold++
	if k.hold < keeperHoldLimit {
		return
	}
	if s.kickToward(AnimClearance, k.id, s.field.W/2, ky, botShotDistance) {
		k.hold = 0
		s.emit(k.id.String(), k.side().String(), "keeper", "clearance", "held too long", 0)
	}
}

// nearestOpponent is the distance to the closest active opposing entity.
func (k *Keeper) nearestOpponent(s *State, x, y float64) float64 {
	best := -1.0
	for _, id := range []EntityID{fieldPlayerOf(k.side().Other()), keeperOf(k.side().Other())} {
		o := s.Entity(id)
		if o == nil {
			continue
		}
		ox, oy := o.Center()
		if d := dist(x, y, ox, oy); best < 0 || d < best {
			best = d
		}
	}
	if best < 0 {
		return s.field.W + s.field.H
	}
	return best
}
