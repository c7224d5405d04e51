// Package motion provides sampled odometry motion models that propagate
// particle states between estimation cycles.
package motion

import (
	"math"

	mcl "github.com/robokit/go-mcl"
	"github.com/robokit/go-mcl/pose"
	"gonum.org/v1/gonum/spatial/r2"
)

// DefaultDistanceThreshold is the displacement below which an odometry
// update is treated as an in-place rotation.
const DefaultDistanceThreshold = 0.01

// OmniDriveParams configures an OmniDriveModel. The first five coefficients
// are the platform-calibrated noise coefficients also known as alpha1
// through alpha5.
type OmniDriveParams struct {
	// RotationNoiseFromRotation is how much rotational noise is generated
	// by the relative rotation between the last two odometry updates
	RotationNoiseFromRotation float64
	// RotationNoiseFromTranslation is how much rotational noise is
	// generated by the relative translation between the last two odometry
	// updates
	RotationNoiseFromTranslation float64
	// TranslationNoiseFromTranslation is how much longitudinal noise is
	// generated by the relative translation between the last two odometry
	// updates
	TranslationNoiseFromTranslation float64
	// TranslationNoiseFromRotation is how much translational noise is
	// generated by the relative rotation between the last two odometry
	// updates
	TranslationNoiseFromRotation float64
	// StrafeNoiseFromTranslation is how much lateral noise is generated by
	// the relative translation between the last two odometry updates
	StrafeNoiseFromTranslation float64
	// DistanceThreshold is the displacement below which the motion is
	// treated as an in-place rotation; zero means DefaultDistanceThreshold
	DistanceThreshold float64
}

// normalParams is a (mean, standard deviation) pair of a univariate normal
// distribution. The zero value is a degenerate distribution at 0.
type normalParams struct {
	mean   float64
	stdDev float64
}

// sample draws from the distribution using a standard normal variate of g.
func (p normalParams) sample(g mcl.Generator) float64 {
	return p.mean + p.stdDev*g.NormFloat64()
}

// OmniDriveModel is a sampled odometry motion model for an omnidirectional
// drive. It derives per-cycle noise parameters from the delta between
// successive absolute odometry poses and applies noisy relative motion to
// particle states.
//
// UpdateMotion must be called by a single writer and never concurrently
// with an in-flight batch of ApplyMotion calls. ApplyMotion only reads the
// stored parameters, so any number of ApplyMotion calls may run in parallel
// over one parameter snapshot.
// OmniDriveModel implements mcl.MotionModel.
type OmniDriveModel struct {
	// params are the fixed noise coefficients
	params OmniDriveParams
	// lastPose is the last observed odometry pose
	lastPose pose.SE2
	// hasPose tracks whether any odometry pose was observed yet
	hasPose bool
	// firstRotation turns the particle towards the direction of travel
	firstRotation pose.Rot2
	// rotation, translation and strafe are the derived noise parameters
	rotation    normalParams
	translation normalParams
	strafe      normalParams
}

// NewOmniDrive creates a new OmniDriveModel with the given parameters.
// Before the second odometry update arrives the noise parameters keep their
// zero defaults, which makes ApplyMotion the identity transform.
func NewOmniDrive(params OmniDriveParams) *OmniDriveModel {
	if params.DistanceThreshold == 0 {
		params.DistanceThreshold = DefaultDistanceThreshold
	}

	return &OmniDriveModel{params: params}
}

// UpdateMotion derives new noise parameters from the next absolute odometry
// pose. The first call only stores the pose; every following call measures
// the relative motion since the previous pose.
func (m *OmniDriveModel) UpdateMotion(p pose.SE2) {
	if m.hasPose {
		translation := r2.Sub(p.T, m.lastPose.T)
		distance := r2.Norm(translation)
		distanceVariance := distance * distance

		rotation := p.R.Mul(m.lastPose.R.Inverse())
		rotVariance := rotationVariance(rotation)

		// the bearing of a near-zero displacement is numerically unstable,
		// so below the threshold the motion is treated as in-place rotation
		if distance > m.params.DistanceThreshold {
			bearing := pose.NewRot2(math.Atan2(translation.Y, translation.X))
			m.firstRotation = bearing.Mul(m.lastPose.R.Inverse())
		} else {
			m.firstRotation = pose.Rot2{}
		}

		m.rotation = normalParams{
			mean: rotation.Angle(),
			stdDev: math.Sqrt(m.params.RotationNoiseFromRotation*rotVariance +
				m.params.RotationNoiseFromTranslation*distanceVariance),
		}
		m.translation = normalParams{
			mean: distance,
			stdDev: math.Sqrt(m.params.TranslationNoiseFromTranslation*distanceVariance +
				m.params.TranslationNoiseFromRotation*rotVariance),
		}
		m.strafe = normalParams{
			mean: 0,
			stdDev: math.Sqrt(m.params.StrafeNoiseFromTranslation*distanceVariance +
				m.params.TranslationNoiseFromRotation*rotVariance),
		}
	}
	m.lastPose = p
	m.hasPose = true
}

// ApplyMotion samples the stored relative motion and applies it to the
// given particle state: the state first pivots by the first rotation, then
// advances by the sampled longitudinal and lateral offsets under the
// sampled remaining rotation. ApplyMotion never mutates the model.
func (m *OmniDriveModel) ApplyMotion(state pose.SE2, g mcl.Generator) pose.SE2 {
	secondRotation := pose.NewRot2(m.rotation.sample(g)).Mul(m.firstRotation.Inverse())
	translation := r2.Vec{
		X: m.translation.sample(g),
		Y: -m.strafe.sample(g),
	}

	return state.
		Mul(pose.SE2{R: m.firstRotation}).
		Mul(pose.SE2{R: secondRotation, T: translation})
}

// LatestMotionUpdate returns the last odometry pose passed to UpdateMotion.
// The second return value is false if no pose was observed yet.
func (m *OmniDriveModel) LatestMotionUpdate() (pose.SE2, bool) {
	return m.lastPose, m.hasPose
}

// Params returns the model noise coefficients.
func (m *OmniDriveModel) Params() OmniDriveParams {
	return m.params
}

// rotationVariance returns the squared magnitude of the rotation, measured
// against whichever of the rotation and its half-turn flip is smaller.
// This makes forward and backward traversal produce the same noise.
func rotationVariance(r pose.Rot2) float64 {
	flipped := r.Mul(pose.NewRot2(math.Pi))
	delta := math.Min(math.Abs(r.Angle()), math.Abs(flipped.Angle()))

	return delta * delta
}
