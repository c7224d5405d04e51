package actions

import (
	"fmt"

	mcl "github.com/robokit/go-mcl"
)

// Reweight multiplies every particle weight by the likelihood of its state
// under the given sensor model: weights[i] *= model(states[i]).
// States are left untouched and no normalization is performed. The model
// must return non-negative likelihoods and, under mcl.Parallel, must be a
// pure function of the state. Reweight returns r for chaining.
func Reweight[S any](r mcl.ParticleRange[S], model mcl.SensorModel[S], mode mcl.ScheduleMode) mcl.ParticleRange[S] {
	states := r.States()
	weights := r.Weights()

	forEach(len(weights), mode, func(i int) {
		weights[i] *= model(states[i])
	})

	return r
}

// ReweightLikelihoods multiplies every particle weight by the precomputed
// likelihood at the same index: weights[i] *= likelihoods[i].
// It returns error if the likelihood count does not match the particle count.
func ReweightLikelihoods[S any](r mcl.ParticleRange[S], likelihoods []float64, mode mcl.ScheduleMode) (mcl.ParticleRange[S], error) {
	weights := r.Weights()

	if len(likelihoods) != len(weights) {
		return nil, fmt.Errorf("invalid likelihood count: %d, particles: %d", len(likelihoods), len(weights))
	}

	forEach(len(weights), mode, func(i int) {
		weights[i] *= likelihoods[i]
	})

	return r, nil
}

// BindReweight returns an Action that applies Reweight with the given model
// and schedule mode.
func BindReweight[S any](model mcl.SensorModel[S], mode mcl.ScheduleMode) Action[S] {
	return func(r mcl.ParticleRange[S]) (mcl.ParticleRange[S], error) {
		return Reweight(r, model, mode), nil
	}
}

// BindReweightLikelihoods returns an Action that applies
// ReweightLikelihoods with the given likelihood sequence and schedule mode.
func BindReweightLikelihoods[S any](likelihoods []float64, mode mcl.ScheduleMode) Action[S] {
	return func(r mcl.ParticleRange[S]) (mcl.ParticleRange[S], error) {
		return ReweightLikelihoods(r, likelihoods, mode)
	}
}

// Likelihoods evaluates the sensor model on every particle state and returns
// the resulting likelihood sequence, aligned 1:1 with the range. The output
// can be fed to ReweightLikelihoods.
func Likelihoods[S any](r mcl.ParticleRange[S], model mcl.SensorModel[S], mode mcl.ScheduleMode) []float64 {
	states := r.States()
	likelihoods := make([]float64, len(states))

	forEach(len(states), mode, func(i int) {
		likelihoods[i] = model(states[i])
	})

	return likelihoods
}
