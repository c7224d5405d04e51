package mcl

import "gonum.org/v1/gonum/mat"

// ParticleRange is a finite ordered collection of weighted particles.
// States and Weights are co-indexed views of the same underlying storage:
// they always have equal length and index i addresses the same particle in
// both. Mutating an element of either slice mutates the particle in place.
type ParticleRange[S any] interface {
	// States returns the order-preserving view of particle states
	States() []S
	// Weights returns the order-preserving view of particle weights
	Weights() []float64
}

// Generator is a uniform random source supplied and owned by the caller.
// It is satisfied by both *math/rand.Rand and *golang.org/x/exp/rand.Rand.
// The library never seeds, stores or copies a Generator.
type Generator interface {
	// Float64 returns a uniform sample from [0.0, 1.0)
	Float64() float64
	// NormFloat64 returns a standard normal sample
	NormFloat64() float64
}

// StateDistribution generates random states used to initialize or perturb
// particles. Implementations must be plain values fully determined by their
// parameters: copying an implementation yields an independent distribution,
// and two implementations with equal parameters produce identical output
// sequences when driven by generators in identical states.
type StateDistribution[S any] interface {
	// Sample draws one state using the supplied generator
	Sample(g Generator) S
}

// MotionModel converts successive absolute pose observations of type U into
// a stochastic transition operator over particle states of type S.
// UpdateMotion must be called by a single writer and never concurrently with
// in-flight ApplyMotion calls; ApplyMotion itself never mutates the model,
// so a batch of ApplyMotion calls may run in parallel over one parameter
// snapshot.
type MotionModel[S, U any] interface {
	// UpdateMotion derives new noise parameters from the next absolute pose
	UpdateMotion(u U)
	// ApplyMotion samples the stored transition and applies it to state s
	ApplyMotion(s S, g Generator) S
	// LatestMotionUpdate returns the last observed pose, if any
	LatestMotionUpdate() (U, bool)
}

// SensorModel scores how well a hypothesized state explains the latest
// sensor observation. Returned likelihoods must be non-negative and finite;
// they are multiplied into particle weights as-is.
type SensorModel[S any] func(s S) float64

// Resampler redraws a particle range in place based on its current weights.
type Resampler[S any] interface {
	// Resample replaces the particles of r using the supplied generator
	Resample(r ParticleRange[S], g Generator) error
}

// Estimate is a point estimate with uncertainty recovered from a particle
// range.
type Estimate interface {
	// Val returns estimate value
	Val() mat.Vector
	// Cov returns estimate covariance
	Cov() mat.Symmetric
}

// ScheduleMode selects how a per-particle transform is applied to a range.
type ScheduleMode int

const (
	// Sequential applies the transform deterministically from the first
	// index to the last.
	Sequential ScheduleMode = iota
	// Parallel spreads indices across available execution units with
	// unspecified interleaving. The per-element transform must be a pure
	// function of its own element and immutable shared parameters.
	Parallel
)

// String implements the Stringer interface.
func (m ScheduleMode) String() string {
	switch m {
	case Sequential:
		return "sequential"
	case Parallel:
		return "parallel"
	}
	return "unknown"
}
