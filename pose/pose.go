// Package pose provides planar rigid transformations used as particle states
// and odometry updates: rotations in SO(2) and poses in SE(2).
package pose

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Rot2 is a planar rotation. The zero value is the identity rotation.
type Rot2 struct {
	theta float64
}

// NewRot2 returns the rotation by theta radians.
func NewRot2(theta float64) Rot2 {
	return Rot2{theta: NormalizeAngle(theta)}
}

// Angle returns the signed rotation angle in (-Pi, Pi].
func (r Rot2) Angle() float64 {
	return r.theta
}

// Mul composes two rotations.
func (r Rot2) Mul(o Rot2) Rot2 {
	return NewRot2(r.theta + o.theta)
}

// Inverse returns the inverse rotation.
func (r Rot2) Inverse() Rot2 {
	return NewRot2(-r.theta)
}

// Apply rotates vector v.
func (r Rot2) Apply(v r2.Vec) r2.Vec {
	sin, cos := math.Sincos(r.theta)

	return r2.Vec{
		X: cos*v.X - sin*v.Y,
		Y: sin*v.X + cos*v.Y,
	}
}

// SE2 is a planar pose: a rotation R and a translation T.
// The zero value is the identity pose.
type SE2 struct {
	// R is pose heading
	R Rot2
	// T is pose position
	T r2.Vec
}

// NewSE2 returns the pose at position (x, y) with heading theta.
func NewSE2(theta, x, y float64) SE2 {
	return SE2{
		R: NewRot2(theta),
		T: r2.Vec{X: x, Y: y},
	}
}

// Mul composes two poses: the result transforms q from the local frame of p
// into the frame p is expressed in.
func (p SE2) Mul(q SE2) SE2 {
	return SE2{
		R: p.R.Mul(q.R),
		T: r2.Add(p.T, p.R.Apply(q.T)),
	}
}

// Inverse returns the inverse pose.
func (p SE2) Inverse() SE2 {
	inv := p.R.Inverse()

	return SE2{
		R: inv,
		T: r2.Scale(-1, inv.Apply(p.T)),
	}
}

// Angle returns the signed heading angle in (-Pi, Pi].
func (p SE2) Angle() float64 {
	return p.R.Angle()
}

// String implements the Stringer interface.
func (p SE2) String() string {
	return fmt.Sprintf("SE2{X=%v Y=%v Theta=%v}", p.T.X, p.T.Y, p.R.Angle())
}

// NormalizeAngle wraps theta into (-Pi, Pi].
func NormalizeAngle(theta float64) float64 {
	t := math.Mod(theta+math.Pi, 2*math.Pi)
	if t <= 0 {
		t += 2 * math.Pi
	}

	return t - math.Pi
}
