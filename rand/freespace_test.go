package rand

import (
	rnd "math/rand"
	"testing"

	"github.com/robokit/go-mcl/pose"
	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestNewUniformFreeSpaceGrid(t *testing.T) {
	assert := assert.New(t)

	d, err := NewUniformFreeSpaceGrid(OccupancyGrid{Width: 0, Height: 1, Resolution: 1.0})
	assert.Nil(d)
	assert.Error(err)

	d, err = NewUniformFreeSpaceGrid(OccupancyGrid{Width: 1, Height: 1, Resolution: 0.0, Occupied: []bool{false}})
	assert.Nil(d)
	assert.Error(err)

	d, err = NewUniformFreeSpaceGrid(OccupancyGrid{Width: 2, Height: 2, Resolution: 1.0, Occupied: []bool{false}})
	assert.Nil(d)
	assert.Error(err)

	// a fully occupied grid has nothing to sample from
	d, err = NewUniformFreeSpaceGrid(OccupancyGrid{Width: 1, Height: 1, Resolution: 1.0, Occupied: []bool{true}})
	assert.Nil(d)
	assert.Error(err)

	d, err = NewUniformFreeSpaceGrid(OccupancyGrid{Width: 1, Height: 1, Resolution: 1.0, Occupied: []bool{false}})
	assert.NotNil(d)
	assert.NoError(err)
}

func TestUniformFreeSpaceGridSingleSlot(t *testing.T) {
	assert := assert.New(t)

	grid := OccupancyGrid{
		Width:      1,
		Height:     1,
		Resolution: 0.5,
		Origin:     pose.NewSE2(0.0, 1.0, 2.0),
		Occupied:   []bool{false},
	}

	d, err := NewUniformFreeSpaceGrid(grid)
	assert.NoError(err)

	g := rnd.New(rnd.NewSource(1))
	s := d.Sample(g)
	assert.InDelta(1.25, s.T.X, 0.001)
	assert.InDelta(2.25, s.T.Y, 0.001)
}

func TestUniformFreeSpaceGridSingleFreeSlot(t *testing.T) {
	assert := assert.New(t)

	o := true
	f := false
	grid := OccupancyGrid{
		Width:      5,
		Height:     5,
		Resolution: 1.0,
		Occupied: []bool{
			o, o, o, o, o,
			o, o, o, o, o,
			o, o, f, o, o,
			o, o, o, o, o,
			o, o, o, o, o,
		},
	}

	d, err := NewUniformFreeSpaceGrid(grid)
	assert.NoError(err)

	g := rnd.New(rnd.NewSource(1))
	for i := 0; i < 10; i++ {
		s := d.Sample(g)
		assert.InDelta(2.5, s.T.X, 0.001)
		assert.InDelta(2.5, s.T.Y, 0.001)
	}
}

func TestUniformFreeSpaceGridSomeFreeSlots(t *testing.T) {
	assert := assert.New(t)

	o := true
	f := false
	grid := OccupancyGrid{
		Width:      3,
		Height:     3,
		Resolution: 1.0,
		Occupied: []bool{
			o, f, o,
			f, o, f,
			o, f, o,
		},
	}

	d, err := NewUniformFreeSpaceGrid(grid)
	assert.NoError(err)

	g := rnd.New(rnd.NewSource(13))
	buckets := make(map[r2.Vec]int)

	n := 100000
	for i := 0; i < n; i++ {
		s := d.Sample(g)
		buckets[s.T]++
	}

	assert.Equal(4, len(buckets))
	assert.InDelta(0.25, float64(buckets[r2.Vec{X: 1.5, Y: 0.5}])/float64(n), 0.01)
	assert.InDelta(0.25, float64(buckets[r2.Vec{X: 0.5, Y: 1.5}])/float64(n), 0.01)
	assert.InDelta(0.25, float64(buckets[r2.Vec{X: 2.5, Y: 1.5}])/float64(n), 0.01)
	assert.InDelta(0.25, float64(buckets[r2.Vec{X: 1.5, Y: 2.5}])/float64(n), 0.01)
}

func TestUniformFreeSpaceGridEq(t *testing.T) {
	assert := assert.New(t)

	grid := OccupancyGrid{Width: 1, Height: 2, Resolution: 1.0, Occupied: []bool{false, true}}

	a, err := NewUniformFreeSpaceGrid(grid)
	assert.NoError(err)
	b, err := NewUniformFreeSpaceGrid(grid)
	assert.NoError(err)
	assert.True(a.Eq(b))

	c, err := NewUniformFreeSpaceGrid(OccupancyGrid{Width: 1, Height: 2, Resolution: 1.0, Occupied: []bool{false, false}})
	assert.NoError(err)
	assert.False(a.Eq(c))
}
