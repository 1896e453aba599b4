package vmath

import (
	"math"
)

// Vec2F is a float64 2D vector for simulation-space positions and velocities
type Vec2F struct {
	X, Y float64
}

func V2FAdd(a, b Vec2F) Vec2F {
	return Vec2F{a.X + b.X, a.Y + b.Y}
}

func V2FSub(a, b Vec2F) Vec2F {
	return Vec2F{a.X - b.X, a.Y - b.Y}
}

func V2FScale(v Vec2F, s float64) Vec2F {
	return Vec2F{v.X * s, v.Y * s}
}

func V2FMagSq(v Vec2F) float64 {
	return v.X*v.X + v.Y*v.Y
}

func V2FMag(v Vec2F) float64 {
	return math.Sqrt(V2FMagSq(v))
}

func V2FNormalize(v Vec2F) Vec2F {
	mag := V2FMag(v)
	if mag == 0 {
		return Vec2F{}
	}
	inv := 1.0 / mag
	return Vec2F{v.X * inv, v.Y * inv}
}

// V2FDist returns the euclidean distance between two points
func V2FDist(a, b Vec2F) float64 {
	return V2FMag(V2FSub(b, a))
}

// Vec3F is a float64 3D vector, used for raw hand landmarks
// Z carries the pose model's depth estimate and is ignored by classification
type Vec3F struct {
	X, Y, Z float64
}

func V3FAdd(a, b Vec3F) Vec3F {
	return Vec3F{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

func V3FSub(a, b Vec3F) Vec3F {
	return Vec3F{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

func V3FScale(v Vec3F, s float64) Vec3F {
	return Vec3F{v.X * s, v.Y * s, v.Z * s}
}

func V3FMagSq(v Vec3F) float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

func V3FMag(v Vec3F) float64 {
	return math.Sqrt(V3FMagSq(v))
}

// XY projects a landmark onto the camera plane
func (v Vec3F) XY() Vec2F {
	return Vec2F{v.X, v.Y}
}
