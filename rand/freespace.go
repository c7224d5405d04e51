package rand

import (
	"fmt"
	"math"

	mcl "github.com/robokit/go-mcl"
	"github.com/robokit/go-mcl/pose"
	"gonum.org/v1/gonum/spatial/r2"
)

// OccupancyGrid is a row-major planar occupancy grid. Cell (x, y) covers
// the square of side Resolution whose lower-left corner sits at
// (x*Resolution, y*Resolution) in the grid frame; Origin places the grid
// frame in the world frame.
type OccupancyGrid struct {
	// Width is the number of cells along the x axis
	Width int
	// Height is the number of cells along the y axis
	Height int
	// Resolution is the cell side length
	Resolution float64
	// Origin is the world pose of the grid frame
	Origin pose.SE2
	// Occupied marks occupied cells in row-major order
	Occupied []bool
}

// At reports whether cell (x, y) is occupied.
func (g *OccupancyGrid) At(x, y int) bool {
	return g.Occupied[y*g.Width+x]
}

// Eq returns true if both grids have identical geometry and occupancy.
func (g *OccupancyGrid) Eq(o *OccupancyGrid) bool {
	if g.Width != o.Width || g.Height != o.Height || g.Resolution != o.Resolution || g.Origin != o.Origin {
		return false
	}

	if len(g.Occupied) != len(o.Occupied) {
		return false
	}
	for i := range g.Occupied {
		if g.Occupied[i] != o.Occupied[i] {
			return false
		}
	}

	return true
}

// UniformFreeSpaceGrid draws poses uniformly over the free cells of an
// occupancy grid: positions land on free cell centers, headings are uniform
// over (-Pi, Pi].
// UniformFreeSpaceGrid implements mcl.StateDistribution.
type UniformFreeSpaceGrid struct {
	// grid is the source grid, kept for parameter equality
	grid OccupancyGrid
	// candidates are the world positions of all free cell centers
	candidates []r2.Vec
}

// NewUniformFreeSpaceGrid creates a new UniformFreeSpaceGrid over the given
// grid. It returns error if the grid geometry is invalid or no cell is free.
func NewUniformFreeSpaceGrid(grid OccupancyGrid) (*UniformFreeSpaceGrid, error) {
	if grid.Width <= 0 || grid.Height <= 0 {
		return nil, fmt.Errorf("invalid grid size: %d x %d", grid.Width, grid.Height)
	}

	if grid.Resolution <= 0 {
		return nil, fmt.Errorf("invalid grid resolution: %v", grid.Resolution)
	}

	if len(grid.Occupied) != grid.Width*grid.Height {
		return nil, fmt.Errorf("invalid occupancy data size: %d, cells: %d", len(grid.Occupied), grid.Width*grid.Height)
	}

	var candidates []r2.Vec
	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			if grid.At(x, y) {
				continue
			}

			center := r2.Vec{
				X: (float64(x) + 0.5) * grid.Resolution,
				Y: (float64(y) + 0.5) * grid.Resolution,
			}
			candidates = append(candidates, grid.Origin.Mul(pose.SE2{T: center}).T)
		}
	}

	if len(candidates) == 0 {
		return nil, fmt.Errorf("no free cells in %d x %d grid", grid.Width, grid.Height)
	}

	occupied := make([]bool, len(grid.Occupied))
	copy(occupied, grid.Occupied)
	grid.Occupied = occupied

	return &UniformFreeSpaceGrid{
		grid:       grid,
		candidates: candidates,
	}, nil
}

// Sample draws one pose: a uniformly chosen free cell center with a
// uniformly distributed heading.
func (d *UniformFreeSpaceGrid) Sample(g mcl.Generator) pose.SE2 {
	i := int(g.Float64() * float64(len(d.candidates)))
	if i == len(d.candidates) {
		i--
	}

	theta := (2*g.Float64() - 1) * math.Pi

	return pose.SE2{
		R: pose.NewRot2(theta),
		T: d.candidates[i],
	}
}

// Eq returns true if both distributions are built over identical grids.
func (d *UniformFreeSpaceGrid) Eq(o *UniformFreeSpaceGrid) bool {
	return d.grid.Eq(&o.grid)
}
