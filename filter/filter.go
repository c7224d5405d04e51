// Package filter composes a motion model, a sensor model and an optional
// resampler into a per-cycle particle filter update.
package filter

import (
	"fmt"

	mcl "github.com/robokit/go-mcl"
	"github.com/robokit/go-mcl/actions"
)

// Config is particle filter configuration.
type Config[S, U any] struct {
	// Motion is the odometry motion model
	Motion mcl.MotionModel[S, U]
	// Sensor scores particle states against the latest observation
	Sensor mcl.SensorModel[S]
	// Resampler optionally redraws the particles after reweighting
	Resampler mcl.Resampler[S]
	// Mode selects sequential or parallel per-particle scheduling
	Mode mcl.ScheduleMode
	// Generators supplies one random generator per worker
	Generators func() mcl.Generator
}

// Filter runs one sequential importance sampling update per odometry cycle:
// motion update, stochastic particle propagation, importance reweighting
// and, when a resampler is configured, particle selection. The particle
// range is exclusively owned by the filter for the duration of a Step call.
type Filter[S, U any] struct {
	motion     mcl.MotionModel[S, U]
	sensor     mcl.SensorModel[S]
	resampler  mcl.Resampler[S]
	mode       mcl.ScheduleMode
	generators func() mcl.Generator
}

// New creates a new particle filter from the given configuration.
// It returns error if the motion model, sensor model or generator source is
// missing.
func New[S, U any](c *Config[S, U]) (*Filter[S, U], error) {
	if c.Motion == nil {
		return nil, fmt.Errorf("invalid config: missing motion model")
	}

	if c.Sensor == nil {
		return nil, fmt.Errorf("invalid config: missing sensor model")
	}

	if c.Generators == nil {
		return nil, fmt.Errorf("invalid config: missing generator source")
	}

	return &Filter[S, U]{
		motion:     c.Motion,
		sensor:     c.Sensor,
		resampler:  c.Resampler,
		mode:       c.Mode,
		generators: c.Generators,
	}, nil
}

// Step runs one estimation cycle on r given the next odometry pose: it
// derives new motion noise parameters, propagates every particle through
// the sampled motion, multiplies the particle weights by their sensor
// likelihoods and finally hands the weighted range to the resampler, if
// any. It returns r for chaining.
//
// The motion update completes before any particle is touched, so the
// propagation batch reads a fixed parameter snapshot even in parallel mode.
func (f *Filter[S, U]) Step(r mcl.ParticleRange[S], odometry U) (mcl.ParticleRange[S], error) {
	f.motion.UpdateMotion(odometry)

	r, err := actions.Pipe(r,
		actions.BindPropagate(f.motion.ApplyMotion, f.generators, f.mode),
		actions.BindReweight(f.sensor, f.mode),
	)
	if err != nil {
		return nil, err
	}

	if f.resampler != nil {
		if err := f.resampler.Resample(r, f.generators()); err != nil {
			return nil, fmt.Errorf("failed to resample particles: %v", err)
		}
	}

	return r, nil
}
