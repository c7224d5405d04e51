// Package sim provides small helpers for simulating odometry trajectories
// and inspecting particle clouds.
package sim

import (
	"fmt"

	"github.com/milosgajdos/matrix"
	mcl "github.com/robokit/go-mcl"
	"github.com/robokit/go-mcl/pose"
	"gonum.org/v1/gonum/mat"
)

// Trajectory generates an arc of absolute odometry poses: starting from
// start, every step advances stepDistance along the heading and turns by
// stepTurn. It returns steps+1 poses including the start pose.
func Trajectory(start pose.SE2, steps int, stepDistance, stepTurn float64) []pose.SE2 {
	poses := make([]pose.SE2, steps+1)
	poses[0] = start

	delta := pose.NewSE2(stepTurn, stepDistance, 0)
	for i := 1; i <= steps; i++ {
		poses[i] = poses[i-1].Mul(delta)
	}

	return poses
}

// CloudSpread returns the unweighted covariance of the particle positions
// and headings, a quick convergence indicator for simulations.
// It returns error if the range is empty or the covariance fails to be
// calculated.
func CloudSpread(r mcl.ParticleRange[pose.SE2]) (mat.Symmetric, error) {
	states := r.States()
	if len(states) == 0 {
		return nil, fmt.Errorf("invalid particle count: %d", len(states))
	}

	// particles as column vectors, one column per particle
	m := mat.NewDense(3, len(states), nil)
	for i, s := range states {
		m.Set(0, i, s.T.X)
		m.Set(1, i, s.T.Y)
		m.Set(2, i, s.Angle())
	}

	cov, err := matrix.Cov(m, "cols")
	if err != nil {
		return nil, fmt.Errorf("failed to calculate covariance matrix: %v", err)
	}

	return cov, nil
}
