// Package core provides fundamental types and utilities shared by the collision
// engine, the scenes and the terminal platform. It has no Bubble Tea dependency
// so simulation logic stays pure and testable.
package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec2 is the 2D vector used for polygon points, positions, speeds and axes.
type Vec2 = mgl64.Vec2

// V builds a Vec2 from its components.
func V(x, y float64) Vec2 {
	return Vec2{x, y}
}

// Perp returns v rotated a quarter turn counter-clockwise: (-y, x).
// The result is not normalised.
func Perp(v Vec2) Vec2 {
	return Vec2{-v.Y(), v.X()}
}

// AbsEqual reports whether a and b have equal absolute x and equal absolute y.
func AbsEqual(a, b Vec2) bool {
	return math.Abs(a.X()) == math.Abs(b.X()) && math.Abs(a.Y()) == math.Abs(b.Y())
}

// IsZero reports whether both components of v are zero.
func IsZero(v Vec2) bool {
	return v.X() == 0 && v.Y() == 0
}

// Box is a float axis-aligned bounding box in world space.
type Box struct {
	Min, Max Vec2
}

// EmptyBox returns an inverted box that any Extend call will replace.
func EmptyBox() Box {
	return Box{
		Min: Vec2{math.Inf(1), math.Inf(1)},
		Max: Vec2{math.Inf(-1), math.Inf(-1)},
	}
}

// Extend grows the box to include p.
func (b Box) Extend(p Vec2) Box {
	return Box{
		Min: Vec2{math.Min(b.Min.X(), p.X()), math.Min(b.Min.Y(), p.Y())},
		Max: Vec2{math.Max(b.Max.X(), p.X()), math.Max(b.Max.Y(), p.Y())},
	}
}

// Width returns the horizontal extent of the box.
func (b Box) Width() float64 {
	return b.Max.X() - b.Min.X()
}

// Height returns the vertical extent of the box.
func (b Box) Height() float64 {
	return b.Max.Y() - b.Min.Y()
}

// Rect represents an integer cell rectangle on the screen.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate one past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate one past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the cell (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Clamp restricts a value to be within [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// ClampF restricts a float64 value to be within [lo, hi].
func ClampF(val, lo, hi float64) float64 {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
