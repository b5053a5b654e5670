// Package vector provides the small 2D vector types shared across the
// beatmap, replay and judgement packages. Two precisions are kept
// distinct: Vector2f (float32) matches the wire-level replay frame's
// f32 fields, Vector2d (float64) is what hit object positions, decoded
// cursor positions and all judgement math (lerp, distance checks) use.
package vector

import "math"

type Vector2f struct {
	X, Y float32
}

func NewVec2f(x, y float32) Vector2f {
	return Vector2f{X: x, Y: y}
}

func (v Vector2f) Add(o Vector2f) Vector2f {
	return Vector2f{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vector2f) Sub(o Vector2f) Vector2f {
	return Vector2f{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vector2f) Scl(s float32) Vector2f {
	return Vector2f{X: v.X * s, Y: v.Y * s}
}

// Dst returns the Euclidean distance between v and o.
func (v Vector2f) Dst(o Vector2f) float32 {
	dx := float64(v.X - o.X)
	dy := float64(v.Y - o.Y)

	return float32(math.Sqrt(dx*dx + dy*dy))
}

// Copy64 widens v to float64 precision.
func (v Vector2f) Copy64() Vector2d {
	return Vector2d{X: float64(v.X), Y: float64(v.Y)}
}

type Vector2d struct {
	X, Y float64
}

func NewVec2d(x, y float64) Vector2d {
	return Vector2d{X: x, Y: y}
}

func (v Vector2d) Add(o Vector2d) Vector2d {
	return Vector2d{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vector2d) Sub(o Vector2d) Vector2d {
	return Vector2d{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vector2d) Scl(s float64) Vector2d {
	return Vector2d{X: v.X * s, Y: v.Y * s}
}

// Dst returns the Euclidean distance between v and o.
func (v Vector2d) Dst(o Vector2d) float64 {
	dx := v.X - o.X
	dy := v.Y - o.Y

	return math.Sqrt(dx*dx + dy*dy)
}

// Copy32 narrows v to float32 precision.
func (v Vector2d) Copy32() Vector2f {
	return Vector2f{X: float32(v.X), Y: float32(v.Y)}
}

// Lerp returns the point (1-t)*v + t*o. t is not clamped by this
// function; callers clamp when the caller's semantics require it.
func Lerp(v, o Vector2d, t float64) Vector2d {
	return Vector2d{
		X: v.X + (o.X-v.X)*t,
		Y: v.Y + (o.Y-v.Y)*t,
	}
}
