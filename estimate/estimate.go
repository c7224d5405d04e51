// Package estimate recovers point estimates with uncertainty from weighted
// particle ranges.
package estimate

import (
	"fmt"
	"math"

	mcl "github.com/robokit/go-mcl"
	"github.com/robokit/go-mcl/pose"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// poseDims is the dimension of a planar pose estimate: x, y and heading.
const poseDims = 3

// Base is a base estimate. It implements mcl.Estimate.
type Base struct {
	// val is estimated value
	val *mat.VecDense
	// cov is estimated covariance
	cov *mat.SymDense
}

// NewBase returns a base estimate with the given value and covariance.
// It returns error if their dimensions disagree.
func NewBase(val mat.Vector, cov mat.Symmetric) (*Base, error) {
	if val.Len() != cov.SymmetricDim() {
		return nil, fmt.Errorf("invalid dimensions, val: %d, cov: %d x %d", val.Len(), cov.SymmetricDim(), cov.SymmetricDim())
	}

	v := &mat.VecDense{}
	v.CloneFromVec(val)

	c := mat.NewSymDense(cov.SymmetricDim(), nil)
	c.CopySym(cov)

	return &Base{
		val: v,
		cov: c,
	}, nil
}

// Val returns estimated value.
func (b *Base) Val() mat.Vector {
	v := &mat.VecDense{}
	v.CloneFromVec(b.val)

	return v
}

// Cov returns covariance estimate.
func (b *Base) Cov() mat.Symmetric {
	cov := mat.NewSymDense(b.cov.SymmetricDim(), nil)
	cov.CopySym(b.cov)

	return cov
}

// FromParticles computes the weighted mean pose and covariance of a pose
// particle range and returns them as an estimate over (x, y, heading).
// The heading mean is circular and the heading residuals entering the
// covariance are wrapped around it, so clouds straddling the -Pi/Pi cut
// produce sensible spreads.
// It returns error if the range is empty or its weights do not have a
// positive sum.
func FromParticles(r mcl.ParticleRange[pose.SE2]) (*Base, error) {
	states := r.States()
	weights := r.Weights()

	if len(states) == 0 {
		return nil, fmt.Errorf("invalid particle count: %d", len(states))
	}

	sum := floats.Sum(weights)
	if sum <= 0 {
		return nil, fmt.Errorf("invalid weights sum: %v", sum)
	}

	var mx, my, sin, cos float64
	for i, s := range states {
		w := weights[i] / sum
		mx += w * s.T.X
		my += w * s.T.Y
		sin += w * math.Sin(s.Angle())
		cos += w * math.Cos(s.Angle())
	}
	heading := math.Atan2(sin, cos)

	val := mat.NewVecDense(poseDims, []float64{mx, my, heading})

	// unwrap headings around the circular mean before computing spread
	data := mat.NewDense(len(states), poseDims, nil)
	for i, s := range states {
		data.Set(i, 0, s.T.X)
		data.Set(i, 1, s.T.Y)
		data.Set(i, 2, heading+pose.NormalizeAngle(s.Angle()-heading))
	}

	cov := mat.NewSymDense(poseDims, nil)
	stat.CovarianceMatrix(cov, data, weights)

	return NewBase(val, cov)
}
