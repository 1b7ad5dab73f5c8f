package game

import "math"

// Rect is an axis-aligned box in field pixels. Value type; used for every
// collision check (feet boxes, ball box, goal trigger boxes).
type Rect struct {
	X, Y float64
	W, H float64
}

// Overlaps reports whether a and b intersect. Inequalities are strict, so
// rectangles that only share an edge do not overlap and zero-area rectangles
// never overlap anything.
func Overlaps(a, b Rect) bool {
	if a.W <= 0 || a.H <= 0 || b.W <= 0 || b.H <= 0 {
		return false
	}
	return a.X < b.X+b.W &&
		a.X+a.W > b.X &&
		a.Y < b.Y+b.H &&
		a.Y+a.H > b.Y
}

// Contains reports whether inner lies fully inside outer. Shared edges count
// as inside.
func Contains(outer, inner Rect) bool {
	if inner.W <= 0 || inner.H <= 0 {
		return false
	}
	return inner.X >= outer.X &&
		inner.Y >= outer.Y &&
		inner.X+inner.W <= outer.X+outer.W &&
		inner.Y+inner.H <= outer.Y+outer.H
}

// Center returns the centre point of r.
func (r Rect) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Inset shrinks r by d on every side.
func (r Rect) Inset(d float64) Rect {
	return Rect{X: r.X + d, Y: r.Y + d, W: r.W - 2*d, H: r.H - 2*d}
}

func clampF(v, lo, hi float64) float64 {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func dist(ax, ay, bx, by float64) float64 {
	return math.Hypot(bx-ax, by-ay)
}

// unit returns the normalised direction from (ax,ay) to (bx,by). The zero
// vector is returned when the points coincide.
func unit(ax, ay, bx, by float64) (float64, float64) {
	dx, dy := bx-ax, by-ay
	d := math.Hypot(dx, dy)
	if d < 1e-9 {
		return 0, 0
	}
	return dx / d, dy / d
}
