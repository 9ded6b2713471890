// Package geometry provides the 2D primitives shared by the layout planners and the canvas.
package geometry

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Point is a position in world or screen space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

func (p Point) vec() r2.Vec {
	return r2.Vec{X: p.X, Y: p.Y}
}

func fromVec(v r2.Vec) Point {
	return Point{X: v.X, Y: v.Y}
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return fromVec(r2.Add(p.vec(), q.vec()))
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return fromVec(r2.Sub(p.vec(), q.vec()))
}

// Scale returns p scaled by f.
func (p Point) Scale(f float64) Point {
	return fromVec(r2.Scale(f, p.vec()))
}

// Len returns the euclidean length of p treated as a vector.
func (p Point) Len() float64 {
	return r2.Norm(p.vec())
}

// Unit returns p normalised to length 1. The zero vector stays zero.
func (p Point) Unit() Point {
	if p.X == 0 && p.Y == 0 {
		return p
	}
	return fromVec(r2.Unit(p.vec()))
}

// IsZero reports whether both components are exactly zero.
func (p Point) IsZero() bool {
	return p.X == 0 && p.Y == 0
}

// Distance returns the euclidean distance between a and b.
func Distance(a, b Point) float64 {
	return b.Sub(a).Len()
}

// Angle returns the direction from a to b in radians, in (-π, π].
func Angle(a, b Point) float64 {
	return math.Atan2(b.Y-a.Y, b.X-a.X)
}

// Polar returns the point at the given radius and angle around center.
func Polar(center Point, radius, angle float64) Point {
	return Point{
		X: center.X + radius*math.Cos(angle),
		Y: center.Y + radius*math.Sin(angle),
	}
}

// NormalizeAngle maps a into (-π, π].
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a <= -math.Pi {
		a += 2 * math.Pi
	} else if a > math.Pi {
		a -= 2 * math.Pi
	}
	return a
}

// AngleDiff returns the smallest signed difference a-b, in (-π, π].
func AngleDiff(a, b float64) float64 {
	return NormalizeAngle(a - b)
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// DistanceToSegment returns the distance from p to the segment ab.
func DistanceToSegment(p, a, b Point) float64 {
	ab := b.Sub(a)
	l2 := r2.Norm2(ab.vec())
	if l2 == 0 {
		return Distance(p, a)
	}
	t := r2.Dot(p.Sub(a).vec(), ab.vec()) / l2
	t = Clamp(t, 0, 1)
	return Distance(p, a.Add(ab.Scale(t)))
}
