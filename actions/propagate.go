package actions

import (
	mcl "github.com/robokit/go-mcl"
)

// Propagate applies a stochastic transition fn to every particle state:
// states[i] = fn(states[i], g). Weights are left untouched and Propagate
// returns r for chaining.
//
// src supplies random generators: the sequential mode draws one generator
// and uses it for the whole range, the parallel mode draws one generator per
// worker so no generator is ever shared across goroutines. fn must not
// mutate anything but its own element; motion models satisfy this as long
// as no motion update runs concurrently with the batch.
func Propagate[S any](r mcl.ParticleRange[S], fn func(s S, g mcl.Generator) S, src func() mcl.Generator, mode mcl.ScheduleMode) mcl.ParticleRange[S] {
	states := r.States()

	forEachWorker(len(states), mode, src, func(i int, g mcl.Generator) {
		states[i] = fn(states[i], g)
	})

	return r
}

// BindPropagate returns an Action that applies Propagate with the given
// transition, generator source and schedule mode.
func BindPropagate[S any](fn func(s S, g mcl.Generator) S, src func() mcl.Generator, mode mcl.ScheduleMode) Action[S] {
	return func(r mcl.ParticleRange[S]) (mcl.ParticleRange[S], error) {
		return Propagate(r, fn, src, mode), nil
	}
}
