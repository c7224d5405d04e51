// Package particle provides a slice-backed implementation of the particle
// range contract.
package particle

import (
	"fmt"

	mcl "github.com/robokit/go-mcl"
	"gonum.org/v1/gonum/floats"
)

// Set is a finite ordered collection of weighted particles backed by two
// co-indexed slices. Set implements mcl.ParticleRange.
type Set[S any] struct {
	// states stores particle states
	states []S
	// weights stores particle importance weights
	weights []float64
}

// NewSet creates a new Set from the given states with uniform weights:
// particle weights are initialized to 1/len(states) so they sum up to 1.
// It returns error if no states are given.
func NewSet[S any](states []S) (*Set[S], error) {
	if len(states) == 0 {
		return nil, fmt.Errorf("invalid particle count: %d", len(states))
	}

	weights := make([]float64, len(states))
	for i := range weights {
		weights[i] = 1 / float64(len(states))
	}

	s := make([]S, len(states))
	copy(s, states)

	return &Set[S]{
		states:  s,
		weights: weights,
	}, nil
}

// NewWeightedSet creates a new Set from the given states and weights.
// It returns error if the slices differ in length or no states are given.
func NewWeightedSet[S any](states []S, weights []float64) (*Set[S], error) {
	if len(states) == 0 {
		return nil, fmt.Errorf("invalid particle count: %d", len(states))
	}

	if len(states) != len(weights) {
		return nil, fmt.Errorf("invalid weight count: %d, particles: %d", len(weights), len(states))
	}

	s := make([]S, len(states))
	copy(s, states)

	w := make([]float64, len(weights))
	copy(w, weights)

	return &Set[S]{
		states:  s,
		weights: w,
	}, nil
}

// NewRandomSet creates a new Set of n particles with uniform weights, with
// states drawn from dist using generator g.
// It returns error if n is non-positive.
func NewRandomSet[S any](n int, dist mcl.StateDistribution[S], g mcl.Generator) (*Set[S], error) {
	if n <= 0 {
		return nil, fmt.Errorf("invalid particle count: %d", n)
	}

	states := make([]S, n)
	for i := range states {
		states[i] = dist.Sample(g)
	}

	return NewSet(states)
}

// States returns the state view of the set.
func (s *Set[S]) States() []S {
	return s.states
}

// Weights returns the weight view of the set.
func (s *Set[S]) Weights() []float64 {
	return s.weights
}

// Len returns the number of particles in the set.
func (s *Set[S]) Len() int {
	return len(s.states)
}

// Clone returns a deep copy of the set.
func (s *Set[S]) Clone() *Set[S] {
	states := make([]S, len(s.states))
	copy(states, s.states)

	weights := make([]float64, len(s.weights))
	copy(weights, s.weights)

	return &Set[S]{
		states:  states,
		weights: weights,
	}
}

// NormalizeWeights rescales the weights so they sum up to 1.
// It returns error if the weights sum is not positive.
func (s *Set[S]) NormalizeWeights() error {
	sum := floats.Sum(s.weights)
	if sum <= 0 {
		return fmt.Errorf("invalid weights sum: %v", sum)
	}

	floats.Scale(1/sum, s.weights)

	return nil
}
