// Package actions provides composable operations over particle ranges.
//
// Every operation comes in two forms: an eager function that applies the
// operation to a range and returns it for chaining, and a Bind factory that
// defers the operation into an Action closure so pipelines compose by plain
// function composition and evaluate once.
package actions

import (
	"runtime"
	"sync"

	mcl "github.com/robokit/go-mcl"
)

// Action is a deferred particle range operation. It mutates the range in
// place and returns it so actions can be chained.
type Action[S any] func(r mcl.ParticleRange[S]) (mcl.ParticleRange[S], error)

// Pipe applies the given actions to r from left to right and returns the
// resulting range. It stops at the first action that fails and returns its
// error.
func Pipe[S any](r mcl.ParticleRange[S], acts ...Action[S]) (mcl.ParticleRange[S], error) {
	var err error
	for _, act := range acts {
		r, err = act(r)
		if err != nil {
			return nil, err
		}
	}

	return r, nil
}

// forEach invokes fn for every index in [0, n) according to the schedule
// mode. Sequential applies fn deterministically from index 0 upwards;
// Parallel splits the index space into contiguous chunks, one per worker.
// fn must only touch state belonging to its own index.
func forEach(n int, mode mcl.ScheduleMode, fn func(i int)) {
	if mode == mcl.Parallel && n > 1 {
		workers := runtime.GOMAXPROCS(0)
		if workers > n {
			workers = n
		}
		chunk := (n + workers - 1) / workers

		var wg sync.WaitGroup
		for lo := 0; lo < n; lo += chunk {
			hi := lo + chunk
			if hi > n {
				hi = n
			}

			wg.Add(1)
			go func(lo, hi int) {
				defer wg.Done()
				for i := lo; i < hi; i++ {
					fn(i)
				}
			}(lo, hi)
		}
		wg.Wait()

		return
	}

	for i := 0; i < n; i++ {
		fn(i)
	}
}

// forEachWorker is like forEach for transforms that draw random numbers:
// every worker gets its own generator from src so generators are never
// shared across goroutines.
func forEachWorker(n int, mode mcl.ScheduleMode, src func() mcl.Generator, fn func(i int, g mcl.Generator)) {
	if mode == mcl.Parallel && n > 1 {
		workers := runtime.GOMAXPROCS(0)
		if workers > n {
			workers = n
		}
		chunk := (n + workers - 1) / workers

		var wg sync.WaitGroup
		for lo := 0; lo < n; lo += chunk {
			hi := lo + chunk
			if hi > n {
				hi = n
			}

			wg.Add(1)
			go func(lo, hi int, g mcl.Generator) {
				defer wg.Done()
				for i := lo; i < hi; i++ {
					fn(i, g)
				}
			}(lo, hi, src())
		}
		wg.Wait()

		return
	}

	g := src()
	for i := 0; i < n; i++ {
		fn(i, g)
	}
}
