package kinematic

import (
	"fmt"
	"math"
)

// Quaternion is a unit rotation quaternion.
type Quaternion struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
	W float64 `json:"w"`
}

// Identity is the zero rotation.
var Identity = Quaternion{W: 1}

// FromAxisAngle builds a rotation of deg degrees around axis.
func FromAxisAngle(axis Vector, deg float64) Quaternion {
	axis = axis.Normalized()
	half := deg * math.Pi / 360
	s := math.Sin(half)
	return Quaternion{X: axis.X * s, Y: axis.Y * s, Z: axis.Z * s, W: math.Cos(half)}
}

// FromEuler builds a rotation from euler angles in degrees, applied Z, X then Y.
func FromEuler(x, y, z float64) Quaternion {
	qx := FromAxisAngle(Vector{X: 1}, x)
	qy := FromAxisAngle(Vector{Y: 1}, y)
	qz := FromAxisAngle(Vector{Z: 1}, z)
	return qy.Mul(qx).Mul(qz)
}

// Yaw returns the rotation around the Y axis in degrees, in [0, 360).
func (q Quaternion) Yaw() float64 {
	q = q.Normalized()
	siny := 2 * (q.W*q.Y + q.X*q.Z)
	cosy := 1 - 2*(q.X*q.X+q.Y*q.Y)
	deg := math.Atan2(siny, cosy) * 180 / math.Pi
	if deg < 0 {
		deg += 360
	}
	return deg
}

func (q Quaternion) Mul(o Quaternion) Quaternion {
	return Quaternion{
		X: q.W*o.X + q.X*o.W + q.Y*o.Z - q.Z*o.Y,
		Y: q.W*o.Y - q.X*o.Z + q.Y*o.W + q.Z*o.X,
		Z: q.W*o.Z + q.X*o.Y - q.Y*o.X + q.Z*o.W,
		W: q.W*o.W - q.X*o.X - q.Y*o.Y - q.Z*o.Z,
	}
}

func (q Quaternion) Dot(o Quaternion) float64 {
	return q.X*o.X + q.Y*o.Y + q.Z*o.Z + q.W*o.W
}

// Normalized returns q scaled to unit length. The zero quaternion maps to Identity.
func (q Quaternion) Normalized() Quaternion {
	m := math.Sqrt(q.Dot(q))
	if m == 0 {
		return Identity
	}
	return Quaternion{X: q.X / m, Y: q.Y / m, Z: q.Z / m, W: q.W / m}
}

// Integrate advances q by angular velocity omega (degrees per second) over dt seconds.
func (q Quaternion) Integrate(omega Vector, dt float64) Quaternion {
	if omega == Zero || dt == 0 {
		return q
	}
	rate := omega.Magnitude()
	return FromAxisAngle(omega, rate*dt).Mul(q).Normalized()
}

// Angle returns the angle in degrees between two rotations.
func Angle(a, b Quaternion) float64 {
	d := math.Abs(a.Normalized().Dot(b.Normalized()))
	if d > 1 {
		d = 1
	}
	return 2 * math.Acos(d) * 180 / math.Pi
}

func (q Quaternion) String() string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f, %.3f)", q.X, q.Y, q.Z, q.W)
}
