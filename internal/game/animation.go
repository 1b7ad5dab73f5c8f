package game

import "math"

// AnimKind labels an in-flight ball animation.
type AnimKind int

const (
	AnimNone AnimKind = iota
	AnimShot
	AnimPass
	AnimClearance
	AnimScriptedShot
)

func (k AnimKind) String() string {
	switch k {
	case AnimShot:
		return "shot"
	case AnimPass:
		return "pass"
	case AnimClearance:
		return "clearance"
	case AnimScriptedShot:
		return "scripted_shot"
	default:
		return "none"
	}
}

const (
	shotDecel        = 0.97
	shotFrames       = 32
	botShotDistance  = 250
	rollStepRealtime = math.Pi / 10
	rollStepScripted = math.Pi / 8
	scriptShotFrames = 16
)

// AnimParams describes a scripted ball trajectory. Speed is the first-frame
// step in pixels; each frame multiplies it by Decel (1 = linear).
type AnimParams struct {
	Frames   int
	DirX     float64
	DirY     float64
	Speed    float64
	Decel    float64
	RollStep float64
	Shooter  EntityID
}

// SpeedForDistance returns the first-frame speed that makes a decelerating
// animation of the given frame count cover exactly d pixels.
func SpeedForDistance(d float64, frames int, decel float64) float64 {
	if frames <= 0 {
		return 0
	}
	if decel <= 0 || decel == 1 {
		return d / float64(frames)
	}
	return d * (1 - decel) / (1 - math.Pow(decel, float64(frames)))
}

// AnimationController owns the single ball animation. Only one animation
// may run at a time; Start refuses while one is active.
type AnimationController struct {
	kind   AnimKind
	params AnimParams
	frame  int
	speed  float64
}

// Active reports whether an animation is in flight.
func (a *AnimationController) Active() bool { return a.kind != AnimNone }

// Kind returns the running animation kind, AnimNone when idle.
func (a *AnimationController) Kind() AnimKind { return a.kind }

// Shooter returns the entity that started the running animation.
func (a *AnimationController) Shooter() EntityID { return a.params.Shooter }

// Start begins an animation. It returns false if one is already running.
func (a *AnimationController) Start(kind AnimKind, p AnimParams) bool {
	if a.Active() || kind == AnimNone || p.Frames <= 0 {
		return false
	}
	if p.Decel <= 0 {
		p.Decel = 1
	}
	a.kind = kind
	a.params = p
	a.frame = 0
	a.speed = p.Speed
	return true
}

// Cancel drops the running animation and clears the ball's transient
// animation state.
func (a *AnimationController) Cancel(b *Ball) {
	a.kind = AnimNone
	a.params = AnimParams{}
	a.frame = 0
	a.speed = 0
	if b != nil {
		b.RollingAngle = 0
	}
}

// Tick advances one frame. It returns true on the frame the animation
// completes.
func (a *AnimationController) Tick(b *Ball, f Field) bool {
	if !a.Active() {
		return false
	}
	p := a.params
	b.X += p.DirX * a.speed
	b.Y += p.DirY * a.speed
	b.RollingAngle += p.RollStep
	b.clampTo(f)
	a.speed *= p.Decel
	a.frame++
	if a.frame >= p.Frames {
		a.Cancel(b)
		return true
	}
	return false
}
