package game

import (
	"math"
	"testing"
)

func TestSpeedForDistance(t *testing.T) {
	for _, decel := range []float64{0.97, 1} {
		v := SpeedForDistance(250, 32, decel)
		total := 0.0
		for i := 0; i < 32; i++ {
			total += v
			v *= decel
		}
		if math.Abs(total-250) > 1e-6 {
			t.Errorf("decel %v: covered %v want 250", decel, total)
		}
	}
	if SpeedForDistance(100, 0, 0.97) != 0 {
		t.Error("zero frames should give zero speed")
	}
}

func TestAnimation_RunsToCompletion(t *testing.T) {
	f := NewField(fieldWidth, fieldHeight, 0)
	b := newBall()
	b.X, b.Y = 100, 300

	var a AnimationController
	p := AnimParams{Frames: 32, DirX: 1, Speed: SpeedForDistance(250, 32, 0.97), Decel: 0.97, RollStep: rollStepRealtime}
	if !a.Start(AnimShot, p) {
		t.Fatal("Start refused on idle controller")
	}
	if a.Start(AnimPass, p) {
		t.Fatal("second animation must be refused while one runs")
	}

	frames := 0
	for a.Active() {
		frames++
		done := a.Tick(b, f)
		if done != !a.Active() {
			t.Fatalf("frame %d: done=%v active=%v", frames, done, a.Active())
		}
		if frames > 100 {
			t.Fatal("animation never finished")
		}
	}
	if frames != 32 {
		t.Errorf("frames = %d want 32", frames)
	}
	if math.Abs(b.X-350) > 1e-6 {
		t.Errorf("ball x = %v want 350", b.X)
	}
	if b.RollingAngle != 0 {
		t.Errorf("rolling angle not reset: %v", b.RollingAngle)
	}
}

func TestAnimation_ClampsAndCancels(t *testing.T) {
	f := NewField(fieldWidth, fieldHeight, 0)
	b := newBall()
	b.X, b.Y = 850, 300

	var a AnimationController
	a.Start(AnimShot, AnimParams{Frames: 10, DirX: 1, Speed: 20, Decel: 1, RollStep: 0.5})
	a.Tick(b, f)
	if b.X != f.W-b.W {
		t.Errorf("ball x = %v, want clamped to %v", b.X, f.W-b.W)
	}
	if b.RollingAngle == 0 {
		t.Error("rolling angle should advance mid-flight")
	}
	a.Cancel(b)
	if a.Active() || a.Kind() != AnimNone || b.RollingAngle != 0 {
		t.Error("cancel must clear all transient state")
	}
	if a.Tick(b, f) {
		t.Error("idle controller must not report completion")
	}
}
