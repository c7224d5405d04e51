// Package rand provides random state distributions for particle
// initialization and perturbation.
//
// Every distribution is fully determined by its explicit, equality
// comparable parameters: distributions with equal parameters produce
// identical output sequences when driven by generators in identical states.
// The generators themselves are always supplied by the caller, never seeded
// or owned here.
package rand

import (
	"fmt"
	"math"

	mcl "github.com/robokit/go-mcl"
	"github.com/robokit/go-mcl/pose"
	"gonum.org/v1/gonum/mat"
)

// poseDims is the dimension of a planar pose: x, y and heading.
const poseDims = 3

// MultivariateNormal draws planar poses from a normal distribution with the
// given mean pose and (x, y, heading) covariance.
// MultivariateNormal implements mcl.StateDistribution.
type MultivariateNormal struct {
	// mean is the distribution mean pose
	mean pose.SE2
	// cov is the distribution covariance
	cov *mat.SymDense
	// transform maps standard normal samples to cov-distributed ones
	transform *mat.Dense
}

// NewMultivariateNormal creates a new MultivariateNormal with the given
// mean pose and covariance over (x, y, heading).
// It returns error if cov is not 3x3 or fails to factorize.
func NewMultivariateNormal(mean pose.SE2, cov mat.Symmetric) (*MultivariateNormal, error) {
	if cov.SymmetricDim() != poseDims {
		return nil, fmt.Errorf("invalid covariance dimension: %d", cov.SymmetricDim())
	}

	// Use SVD instead of Cholesky as Cholesky can be numerically unstable
	// if cov is (almost) singular
	var svd mat.SVD
	ok := svd.Factorize(cov, mat.SVDFull)
	if !ok {
		return nil, fmt.Errorf("SVD factorization failed")
	}

	u := new(mat.Dense)
	svd.UTo(u)

	vals := svd.Values(nil)
	for i := range vals {
		vals[i] = math.Sqrt(vals[i])
	}
	u.Mul(u, mat.NewDiagDense(len(vals), vals))

	c := mat.NewSymDense(poseDims, nil)
	c.CopySym(cov)

	return &MultivariateNormal{
		mean:      mean,
		cov:       c,
		transform: u,
	}, nil
}

// Sample draws one pose using three standard normal variates of g.
func (d *MultivariateNormal) Sample(g mcl.Generator) pose.SE2 {
	z := mat.NewVecDense(poseDims, []float64{
		g.NormFloat64(),
		g.NormFloat64(),
		g.NormFloat64(),
	})

	var x mat.VecDense
	x.MulVec(d.transform, z)

	return pose.NewSE2(
		d.mean.Angle()+x.AtVec(2),
		d.mean.T.X+x.AtVec(0),
		d.mean.T.Y+x.AtVec(1),
	)
}

// Mean returns the distribution mean pose.
func (d *MultivariateNormal) Mean() pose.SE2 {
	return d.mean
}

// Cov returns the distribution covariance.
func (d *MultivariateNormal) Cov() mat.Symmetric {
	cov := mat.NewSymDense(poseDims, nil)
	cov.CopySym(d.cov)

	return cov
}

// Eq returns true if both distributions have equal parameters, which
// implies they generate identical output sequences given generators in
// identical states.
func (d *MultivariateNormal) Eq(o *MultivariateNormal) bool {
	return d.mean == o.mean && mat.Equal(d.cov, o.cov)
}

// String implements the Stringer interface.
func (d *MultivariateNormal) String() string {
	return fmt.Sprintf("MultivariateNormal{\nMean=%v\nCov=%v\n}", d.mean, mat.Formatted(d.cov, mat.Prefix("    "), mat.Squeeze()))
}
