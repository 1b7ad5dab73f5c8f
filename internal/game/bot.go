package game

import (
	"fmt"

	bt "github.com/joeycumines/go-behaviortree"
)

const (
	botSpeedEasy = 2.5

	clearanceRadius = 100 // opponent this close triggers a clearance
	clearanceCap    = 2   // clearances per round (impossible only)
	leadMinDistance = 200 // only cut off an opponent this far away
	dodgeSpeedMul   = 1.3 // hard tier only
)

// botTier holds the per-difficulty tuning.
type botTier struct {
	speed      float64
	shootRange float64
	jukeRadius float64 // 0 disables juking
	leadRatio  float64 // 0 disables interception lead
	chaotic    bool    // pick juke patterns per window instead of alternating
	clearance  bool
}

var botTiers = map[Difficulty]botTier{
	DifficultyEasy:       {speed: botSpeedEasy, shootRange: 120},
	DifficultyMedium:     {speed: 2.8, shootRange: 150, leadRatio: 0.3},
	DifficultyHard:       {speed: 3.2, shootRange: 180, leadRatio: 0.55, jukeRadius: 140},
	DifficultyImpossible: {speed: 3.5, shootRange: 200, jukeRadius: 180, chaotic: true, clearance: true},
}

// jukeOffsets are the lateral offsets the hard and impossible tiers pick from.
var jukeOffsets = [...]float64{150, 200, 250, 300, 350}

// Bot drives one field entity with a behaviour tree. It is side-agnostic:
// the goals it attacks and defends follow from its entity's side, so two bots
// can play each other.
type Bot struct {
	self       EntityID
	opponent   EntityID
	difficulty Difficulty
	tier       botTier

	clearances int
	dodging    bool

	tree bt.Node
	st   *State // valid only during Think
}

// NewBot builds a bot for self playing against opponent.
func NewBot(self, opponent EntityID, d Difficulty) *Bot {
	tier, ok := botTiers[d]
	if !ok {
		tier = botTiers[DifficultyEasy]
	}
	b := &Bot{self: self, opponent: opponent, difficulty: d, tier: tier}
	b.tree = b.buildTree()
	return b
}

// Difficulty returns the bot's tier.
func (b *Bot) Difficulty() Difficulty { return b.difficulty }

// Clearances returns how many clearances the bot used this round.
func (b *Bot) Clearances() int { return b.clearances }

// ResetRound clears per-round counters.
func (b *Bot) ResetRound() {
	b.clearances = 0
	b.dodging = false
}

func leaf(fn func() bt.Status) bt.Node {
	return bt.New(func([]bt.Node) (bt.Status, error) { return fn(), nil })
}

func cond(fn func() bool) bt.Node {
	return leaf(func() bt.Status {
		if fn() {
			return bt.Success
		}
		return bt.Failure
	})
}

func (b *Bot) buildTree() bt.Node {
	return bt.New(
		bt.Selector,
		bt.New(
			bt.Sequence,
			cond(b.hasBall),
			bt.New(
				bt.Selector,
				bt.New(bt.Sequence, cond(b.clearanceReady), leaf(b.clear)),
				bt.New(bt.Sequence, cond(b.inShootRange), cond(b.ballIdle), leaf(b.shoot)),
				leaf(b.drive),
			),
		),
		leaf(b.chase),
	)
}

// Think runs one decision for the current tick. No-op when the bot's entity
// is absent.
func (b *Bot) Think(s *State) {
	if s.Entity(b.self) == nil {
		return
	}
	b.st = s
	defer func() { b.st = nil }()
	if _, err := b.tree.Tick(); err != nil {
		s.logger.Warn("bot tree failed", "entity", b.self, "err", err)
	}
}

func (b *Bot) side() Side { return SideOf(b.self) }

func (b *Bot) hasBall() bool {
	return b.st.ball.Possessor == PossessedBy(b.self)
}

func (b *Bot) opponentDistance() (float64, bool) {
	o := b.st.Entity(b.opponent)
	if o == nil {
		return 0, false
	}
	sx, sy := b.st.entities[b.self].Center()
	ox, oy := o.Center()
	return dist(sx, sy, ox, oy), true
}

func (b *Bot) clearanceReady() bool {
	if !b.tier.clearance || b.clearances >= clearanceCap || b.st.anim.Active() {
		return false
	}
	d, ok := b.opponentDistance()
	return ok && d < clearanceRadius
}

// clear kicks the ball toward the middle of the pitch, or straight back
// toward its own half when already there.
func (b *Bot) clear() bt.Status {
	s := b.st
	bx, by := s.ball.Center()
	tx, ty := s.field.W/2, s.field.H/2
	if ux, uy := unit(bx, by, tx, ty); ux == 0 && uy == 0 {
		gx, gy := s.field.AttackGoal(b.side()).Center()
		tx, ty = bx-(gx-bx), by-(gy-by)
	}
	if !s.kickToward(AnimClearance, b.self, tx, ty, botShotDistance) {
		return bt.Failure
	}
	b.clearances++
	s.emit(b.self.String(), b.side().String(), "bot", "clearance",
		fmt.Sprintf("%d/%d", b.clearances, clearanceCap), float64(b.clearances))
	return bt.Success
}

func (b *Bot) inShootRange() bool {
	sx, sy := b.st.entities[b.self].Center()
	gx, gy := b.st.field.AttackGoal(b.side()).Center()
	return dist(sx, sy, gx, gy) < b.tier.shootRange
}

func (b *Bot) ballIdle() bool { return !b.st.anim.Active() }

func (b *Bot) shoot() bt.Status {
	s := b.st
	gx, gy := s.field.AttackGoal(b.side()).Center()
	if !s.kickToward(AnimShot, b.self, gx, gy, botShotDistance) {
		return bt.Failure
	}
	return bt.Success
}

// drive carries the ball toward the attacked goal, juking around a nearby
// opponent on the hard and impossible tiers.
func (b *Bot) drive() bt.Status {
	s := b.st
	e := s.entities[b.self]
	tx, ty := s.field.AttackGoal(b.side()).Center()
	speed := b.tier.speed

	d, ok := b.opponentDistance()
	b.dodging = ok && b.tier.jukeRadius > 0 && d < b.tier.jukeRadius
	if b.dodging {
		ty += b.jukeOffset()
		if !b.tier.chaotic {
			speed *= dodgeSpeedMul
		}
	}
	cx, cy := e.Center()
	b.step(cx, cy, tx, ty, speed)
	return bt.Success
}

// jukeOffset picks a deterministic lateral offset from the tick counter.
func (b *Bot) jukeOffset() float64 {
	t := b.st.tick
	if !b.tier.chaotic {
		mag := jukeOffsets[(t/40)%3*2]
		if (t/60)%2 == 1 {
			mag = -mag
		}
		return mag
	}
	mag := jukeOffsets[mix(t/25)%uint32(len(jukeOffsets))]
	switch mix(t/20) % 4 {
	case 0:
		return mag
	case 1:
		return -mag
	case 2:
		if (t/8)%2 == 0 {
			return mag
		}
		return -mag
	default:
		// away from the opponent
		o := b.st.Entity(b.opponent)
		if o != nil && o.Y > b.st.entities[b.self].Y {
			return -mag
		}
		return mag
	}
}

// mix is a small integer hash for frame-seeded pattern choice.
func mix(n int) uint32 {
	x := uint32(n) * 0x9E3779B1
	x ^= x >> 15
	x *= 0x85EBCA77
	x ^= x >> 13
	return x
}

// chase moves the bot's feet toward the ball, or toward a point between the
// opponent and the defended goal when the opponent carries the ball far away.
func (b *Bot) chase() bt.Status {
	s := b.st
	e := s.entities[b.self]
	tx, ty := s.ball.Center()

	if b.tier.leadRatio > 0 && s.ball.Possessor == PossessedBy(b.opponent) {
		if d, ok := b.opponentDistance(); ok && d > leadMinDistance {
			ox, oy := s.entities[b.opponent].Center()
			gx, gy := s.field.DefendGoal(b.side()).Center()
			tx = ox + (gx-ox)*b.tier.leadRatio
			ty = oy + (gy-oy)*b.tier.leadRatio
		}
	}
	fx, fy := e.FeetBox().Center()
	b.step(fx, fy, tx, ty, b.tier.speed)
	return bt.Success
}

// step moves the bot so that (fromX,fromY) approaches the target by at most
// speed pixels.
func (b *Bot) step(fromX, fromY, tx, ty, speed float64) {
	d := dist(fromX, fromY, tx, ty)
	if d < 0.5 {
		return
	}
	ux, uy := unit(fromX, fromY, tx, ty)
	mv := min(speed, d)
	b.st.ApplyMovement(b.self, ux*mv, uy*mv)
}
