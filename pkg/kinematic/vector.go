package kinematic

import (
	"fmt"
	"math"
)

// Vector is a 3D vector. Y is up.
type Vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

var (
	Zero = Vector{}
	Up   = Vector{Y: 1}
	Down = Vector{Y: -1}
)

func (v Vector) Add(o Vector) Vector {
	return Vector{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

func (v Vector) Sub(o Vector) Vector {
	return Vector{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

func (v Vector) Scale(s float64) Vector {
	return Vector{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

func (v Vector) Dot(o Vector) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

func (v Vector) Cross(o Vector) Vector {
	return Vector{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

func (v Vector) Magnitude() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalized returns the unit vector in the direction of v, or the zero vector.
func (v Vector) Normalized() Vector {
	m := v.Magnitude()
	if m == 0 {
		return Zero
	}
	return v.Scale(1 / m)
}

// Distance returns the euclidean distance between two points.
func Distance(a, b Vector) float64 {
	return a.Sub(b).Magnitude()
}

func (v Vector) String() string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", v.X, v.Y, v.Z)
}
