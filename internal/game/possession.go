package game

import "fmt"

const (
	humanShotDistance = playerStep * 4 // 220px
	humanShotBoost    = 1.2
	// stealCooldownTicks stops the entity that just lost the ball from
	// taking it straight back while the feet boxes still overlap.
	stealCooldownTicks = 12
)

// ApplyMovement moves an entity by (dx,dy), clamps it to the field and, if
// it holds the ball, re-pins the ball to its feet. It is the single movement
// primitive shared by keyboard input, the AI and the command sequencer.
// Missing or inactive entities are ignored.
func (s *State) ApplyMovement(id EntityID, dx, dy float64) {
	e := s.Entity(id)
	if e == nil {
		return
	}
	e.X += dx
	e.Y += dy
	e.clampTo(s.field)
	if dx != 0 {
		e.lastDX = dx
	}
	if s.ball.Possessor == PossessedBy(id) && !s.anim.Active() {
		s.ball.PinTo(e, s.field)
	}
}

// Shoot kicks the ball along the shooter's attacking direction. Only the
// current possessor can shoot and never while another animation runs.
func (s *State) Shoot(id EntityID) bool {
	e := s.Entity(id)
	if e == nil || s.ball.Possessor != PossessedBy(id) || s.anim.Active() {
		return false
	}
	dir := 1.0
	if SideOf(id) == SideAway {
		dir = -1
	}
	return s.kick(AnimShot, AnimParams{
		Frames:   shotFrames,
		DirX:     dir,
		Speed:    humanShotDistance / shotFrames * humanShotBoost,
		Decel:    shotDecel,
		RollStep: rollStepRealtime,
		Shooter:  id,
	})
}

// kick runs the shooting protocol: clear possession, then hand the ball to
// the animation controller. Fails if an animation is already in flight.
func (s *State) kick(kind AnimKind, p AnimParams) bool {
	if !s.anim.Start(kind, p) {
		return false
	}
	s.ball.LastShooter = PossessedBy(p.Shooter)
	s.setPossessor(PossessorNone, kind.String())
	e := s.entities[p.Shooter]
	s.emit(p.Shooter.String(), SideOf(p.Shooter).String(), "ball", kind.String(),
		fmt.Sprintf("from (%.0f,%.0f) dir (%.2f,%.2f)", e.X, e.Y, p.DirX, p.DirY), p.Speed)
	return true
}

// kickToward aims a decelerating animation from the ball centre at a point
// and sizes it to travel distance d.
func (s *State) kickToward(kind AnimKind, shooter EntityID, tx, ty, d float64) bool {
	bx, by := s.ball.Center()
	ux, uy := unit(bx, by, tx, ty)
	if ux == 0 && uy == 0 {
		return false
	}
	return s.kick(kind, AnimParams{
		Frames:   shotFrames,
		DirX:     ux,
		DirY:     uy,
		Speed:    SpeedForDistance(d, shotFrames, shotDecel),
		Decel:    shotDecel,
		RollStep: rollStepRealtime,
		Shooter:  shooter,
	})
}

// advanceAnimation moves an in-flight ball one frame and runs the
// interception check. It is the only code allowed to pre-empt an animation.
func (s *State) advanceAnimation() {
	if !s.anim.Active() {
		return
	}
	shooter := s.anim.Shooter()
	if s.anim.Tick(s.ball, s.field) {
		return
	}
	box := s.ball.Box()
	for _, id := range s.possessors() {
		if SideOf(id) == SideOf(shooter) {
			continue
		}
		if !Overlaps(s.entities[id].FeetBox(), box) {
			continue
		}
		kind := s.anim.Kind()
		s.anim.Cancel(s.ball)
		s.emit(id.String(), SideOf(id).String(), "ball", "intercept",
			fmt.Sprintf("%s from %s", kind, shooter), 0)
		if s.mode.Policy() == PolicyContested {
			s.setPossessor(PossessedBy(id), "intercept")
			s.ball.PinTo(s.entities[id], s.field)
		}
		return
	}
}

// possessors lists active entities that can hold the ball under the current
// policy, in first-touch priority order.
func (s *State) possessors() []EntityID {
	var out []EntityID
	switch s.mode.Policy() {
	case PolicyContested:
		for id := EntityPlayer; id < entityCount; id++ {
			if s.Entity(id) != nil {
				out = append(out, id)
			}
		}
	default:
		if s.Entity(EntityPlayer) != nil {
			out = append(out, EntityPlayer)
		}
		if s.mode.Policy() == PolicyKeeperAssist && s.Entity(EntityDefender) != nil {
			out = append(out, EntityDefender)
		}
	}
	return out
}

// resolvePossession runs the per-tick possession state machine for the
// active policy. Nothing here runs while the ball is animating.
func (s *State) resolvePossession() {
	if s.anim.Active() {
		return
	}
	switch s.mode.Policy() {
	case PolicySimple:
		s.resolveSimple()
	case PolicyKeeperAssist:
		s.resolveKeeperAssist()
	case PolicyContested:
		s.resolveContested()
	}
}

// resolveSimple: the ball is stuck exactly while the player's feet touch it.
func (s *State) resolveSimple() {
	p := s.Entity(EntityPlayer)
	if p == nil {
		return
	}
	if Overlaps(p.FeetBox(), s.ball.Box()) {
		s.setPossessor(PossessedBy(EntityPlayer), "contact")
		s.ball.PinTo(p, s.field)
		return
	}
	s.setPossessor(PossessorNone, "lost_contact")
}

// resolveKeeperAssist: the player latches the ball on contact; the single
// opponent can only knock it loose, and blocks recapture while touching it.
func (s *State) resolveKeeperAssist() {
	p := s.Entity(EntityPlayer)
	if p == nil {
		return
	}
	box := s.ball.Box()
	opponentTouch := false
	if d := s.Entity(EntityDefender); d != nil {
		opponentTouch = Overlaps(d.FeetBox(), box)
	}

	if s.ball.Possessor == PossessedBy(EntityPlayer) {
		if opponentTouch {
			s.setPossessor(PossessorNone, "dislodged")
			return
		}
		s.ball.PinTo(p, s.field)
		return
	}
	if opponentTouch || !Overlaps(p.FeetBox(), box) || retreatingFrom(p, s.ball) {
		return
	}
	s.setPossessor(PossessedBy(EntityPlayer), "contact")
	s.ball.PinTo(p, s.field)
}

// retreatingFrom reports whether e moved horizontally away from the ball
// this tick. Such an entity cannot capture the ball from behind.
func retreatingFrom(e *Entity, b *Ball) bool {
	fx, _ := e.FeetBox().Center()
	bx, _ := b.Center()
	return (e.lastDX < 0 && bx > fx) || (e.lastDX > 0 && bx < fx)
}

// resolveContested: first touch wins a loose ball, and a touch from the
// other side steals it. Teammates never take the ball from each other. The ball is re-pinned to the holder every tick.
func (s *State) resolveContested() {
	box := s.ball.Box()
	cur, held := s.ball.Possessor.Entity()
	for _, id := range s.possessors() {
		if held && SideOf(id) == SideOf(cur) {
			continue
		}
		if id == s.lastLoser && s.tick < s.stealCooldownUntil {
			continue
		}
		if !Overlaps(s.entities[id].FeetBox(), box) {
			continue
		}
		if held {
			s.lastLoser = cur
			s.stealCooldownUntil = s.tick + s.stealCooldown
			s.setPossessor(PossessedBy(id), "steal")
		} else {
			s.setPossessor(PossessedBy(id), "contact")
		}
		break
	}
	if id, ok := s.ball.Possessor.Entity(); ok {
		if e := s.Entity(id); e != nil {
			s.ball.PinTo(e, s.field)
		} else {
			s.setPossessor(PossessorNone, "holder_gone")
		}
	}
}

// setPossessor changes possession and logs the transition.
func (s *State) setPossessor(p Possessor, reason string) {
	prev := s.ball.Possessor
	if prev == p {
		return
	}
	s.ball.Possessor = p
	if p != PossessorNone {
		// a new holder owns the ball from here; the old kick no longer counts
		s.ball.LastShooter = PossessorNone
	}
	label := p.String()
	side := "--"
	if id, ok := p.Entity(); ok {
		side = SideOf(id).String()
	}
	s.emit(label, side, "possession", reason,
		fmt.Sprintf("%s → %s", prev, p), 0)
}
