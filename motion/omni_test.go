package motion

import (
	"math"
	"testing"

	mcl "github.com/robokit/go-mcl"
	"github.com/robokit/go-mcl/pose"
	"github.com/stretchr/testify/assert"
)

var _ mcl.MotionModel[pose.SE2, pose.SE2] = (*OmniDriveModel)(nil)

// meanGen samples every distribution at its mean.
type meanGen struct{}

func (meanGen) Float64() float64     { return 0.5 }
func (meanGen) NormFloat64() float64 { return 0.0 }

// sigmaGen samples every distribution one standard deviation above its mean.
type sigmaGen struct{}

func (sigmaGen) Float64() float64     { return 0.5 }
func (sigmaGen) NormFloat64() float64 { return 1.0 }

func testParams() OmniDriveParams {
	return OmniDriveParams{
		RotationNoiseFromRotation:       0.01,
		RotationNoiseFromTranslation:    0.04,
		TranslationNoiseFromTranslation: 0.09,
		TranslationNoiseFromRotation:    0.16,
		StrafeNoiseFromTranslation:      0.25,
	}
}

func TestNewOmniDrive(t *testing.T) {
	assert := assert.New(t)

	m := NewOmniDrive(OmniDriveParams{})
	assert.Equal(DefaultDistanceThreshold, m.Params().DistanceThreshold)

	m = NewOmniDrive(OmniDriveParams{DistanceThreshold: 0.5})
	assert.Equal(0.5, m.Params().DistanceThreshold)
}

func TestApplyMotionUninitialized(t *testing.T) {
	assert := assert.New(t)

	m := NewOmniDrive(testParams())

	// no odometry observed yet: the transition is the identity
	state := pose.NewSE2(0.3, 1.0, -2.0)
	next := m.ApplyMotion(state, meanGen{})
	assert.InDelta(state.T.X, next.T.X, 1e-12)
	assert.InDelta(state.T.Y, next.T.Y, 1e-12)
	assert.InDelta(state.Angle(), next.Angle(), 1e-12)

	_, ok := m.LatestMotionUpdate()
	assert.False(ok)
}

func TestApplyMotionSingleUpdate(t *testing.T) {
	assert := assert.New(t)

	m := NewOmniDrive(testParams())
	m.UpdateMotion(pose.NewSE2(0.0, 5.0, 5.0))

	// a single update only stores the pose: parameters keep their zero
	// defaults and the transition stays the identity
	state := pose.NewSE2(1.0, 2.0, 3.0)
	next := m.ApplyMotion(state, meanGen{})
	assert.InDelta(state.T.X, next.T.X, 1e-12)
	assert.InDelta(state.T.Y, next.T.Y, 1e-12)
	assert.InDelta(state.Angle(), next.Angle(), 1e-12)

	last, ok := m.LatestMotionUpdate()
	assert.True(ok)
	assert.InDelta(5.0, last.T.X, 1e-12)
	assert.InDelta(5.0, last.T.Y, 1e-12)
}

func TestApplyMotionUnitTranslation(t *testing.T) {
	assert := assert.New(t)

	m := NewOmniDrive(testParams())
	m.UpdateMotion(pose.NewSE2(0.0, 0.0, 0.0))
	m.UpdateMotion(pose.NewSE2(0.0, 1.0, 0.0))

	// sampling at the means translates the particle by exactly (1, 0)
	next := m.ApplyMotion(pose.SE2{}, meanGen{})
	assert.InDelta(1.0, next.T.X, 1e-12)
	assert.InDelta(0.0, next.T.Y, 1e-12)
	assert.InDelta(0.0, next.Angle(), 1e-12)

	// one standard deviation off the means: rotation std is sqrt(alpha2),
	// translation std is sqrt(alpha3) and strafe std is sqrt(alpha5),
	// with the strafe offset negated
	p := testParams()
	next = m.ApplyMotion(pose.SE2{}, sigmaGen{})
	assert.InDelta(1.0+math.Sqrt(p.TranslationNoiseFromTranslation), next.T.X, 1e-12)
	assert.InDelta(-math.Sqrt(p.StrafeNoiseFromTranslation), next.T.Y, 1e-12)
	assert.InDelta(math.Sqrt(p.RotationNoiseFromTranslation), next.Angle(), 1e-12)
}

func TestApplyMotionPivot(t *testing.T) {
	assert := assert.New(t)

	m := NewOmniDrive(testParams())
	m.UpdateMotion(pose.NewSE2(0.0, 0.0, 0.0))
	m.UpdateMotion(pose.NewSE2(0.0, 0.0, 0.5))

	// the displacement points along +y while the heading stays at zero:
	// the particle pivots towards the bearing, drives, and pivots back
	next := m.ApplyMotion(pose.SE2{}, meanGen{})
	assert.InDelta(0.0, next.T.X, 1e-12)
	assert.InDelta(0.5, next.T.Y, 1e-12)
	assert.InDelta(0.0, next.Angle(), 1e-12)
}

func TestApplyMotionBelowThreshold(t *testing.T) {
	assert := assert.New(t)

	m := NewOmniDrive(testParams())
	m.UpdateMotion(pose.NewSE2(0.0, 0.0, 0.0))
	m.UpdateMotion(pose.NewSE2(0.0, 0.0, 0.005))

	// below the distance threshold the first rotation collapses to zero,
	// so the sampled displacement stays in the particle frame: the +y
	// odometry displacement comes out along the particle heading
	next := m.ApplyMotion(pose.SE2{}, meanGen{})
	assert.InDelta(0.005, next.T.X, 1e-12)
	assert.InDelta(0.0, next.T.Y, 1e-12)
	assert.InDelta(0.0, next.Angle(), 1e-12)
}

func TestApplyMotionWithRotation(t *testing.T) {
	assert := assert.New(t)

	m := NewOmniDrive(testParams())
	m.UpdateMotion(pose.NewSE2(0.0, 0.0, 0.0))
	m.UpdateMotion(pose.NewSE2(math.Pi/2, 1.0, 0.0))

	next := m.ApplyMotion(pose.SE2{}, meanGen{})
	assert.InDelta(1.0, next.T.X, 1e-12)
	assert.InDelta(0.0, next.T.Y, 1e-12)
	assert.InDelta(math.Pi/2, next.Angle(), 1e-12)
}

func TestRotationVariance(t *testing.T) {
	assert := assert.New(t)

	// forward and backward traversal produce the same noise magnitude
	for _, theta := range []float64{0.0, math.Pi / 2, math.Pi, -math.Pi / 2, 0.3, -1.2, 2.9} {
		v := rotationVariance(pose.NewRot2(theta))
		flipped := rotationVariance(pose.NewRot2(theta + math.Pi))
		assert.InDelta(v, flipped, 1e-12)
	}

	assert.InDelta(0.0, rotationVariance(pose.NewRot2(0.0)), 1e-12)
	assert.InDelta(0.0, rotationVariance(pose.NewRot2(math.Pi)), 1e-12)
	assert.InDelta(math.Pi*math.Pi/4, rotationVariance(pose.NewRot2(math.Pi/2)), 1e-12)
	assert.InDelta(0.09, rotationVariance(pose.NewRot2(0.3)), 1e-12)
	assert.InDelta(0.09, rotationVariance(pose.NewRot2(math.Pi-0.3)), 1e-9)
}

func TestLatestMotionUpdate(t *testing.T) {
	assert := assert.New(t)

	m := NewOmniDrive(testParams())

	_, ok := m.LatestMotionUpdate()
	assert.False(ok)

	p := pose.NewSE2(0.1, 2.0, 3.0)
	m.UpdateMotion(p)

	last, ok := m.LatestMotionUpdate()
	assert.True(ok)
	assert.InDelta(p.T.X, last.T.X, 1e-12)
	assert.InDelta(p.T.Y, last.T.Y, 1e-12)
	assert.InDelta(p.Angle(), last.Angle(), 1e-12)
}
