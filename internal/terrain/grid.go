package terrain

import (
	"fmt"
	"sync"

	"gonum.org/v1/gonum/floats"

	"github.com/Faultbox/heightbrush/pkg/math"
)

// Grid is an in-memory heightfield stored row-major.
//
// Grid implements sync.Locker. The lock is not taken by the accessors; it is
// the edit lock a caller holds across a read-modify-write, such as a brush tick.
type Grid struct {
	Cols    int
	Rows    int
	Heights []float64 // len == Cols*Rows, index row*Cols+col
	Origin  math.Vec3
	Size    math.Vec3

	mu sync.Mutex
}

// NewGrid creates a flat grid of cols × rows samples.
func NewGrid(cols, rows int, origin, size math.Vec3) *Grid {
	if cols < 0 || rows < 0 {
		panic(fmt.Sprintf("terrain: invalid grid dimensions %dx%d", cols, rows))
	}
	return &Grid{
		Cols:    cols,
		Rows:    rows,
		Heights: make([]float64, cols*rows),
		Origin:  origin,
		Size:    size,
	}
}

// NewSquareGrid creates a flat resolution × resolution grid.
func NewSquareGrid(resolution int, origin, size math.Vec3) *Grid {
	return NewGrid(resolution, resolution, origin, size)
}

// At returns the height at (col, row).
func (g *Grid) At(col, row int) float64 {
	return g.Heights[row*g.Cols+col]
}

// Set stores the height at (col, row).
func (g *Grid) Set(col, row int, h float64) {
	g.Heights[row*g.Cols+col] = h
}

// Fill sets every sample to h.
func (g *Grid) Fill(h float64) {
	for i := range g.Heights {
		g.Heights[i] = h
	}
}

// Clone returns a deep copy of the grid with its own edit lock.
func (g *Grid) Clone() *Grid {
	c := NewGrid(g.Cols, g.Rows, g.Origin, g.Size)
	copy(c.Heights, g.Heights)
	return c
}

// Lock acquires the edit lock.
func (g *Grid) Lock() { g.mu.Lock() }

// Unlock releases the edit lock.
func (g *Grid) Unlock() { g.mu.Unlock() }

// GetHeights implements Terrain. It panics if the rectangle leaves the grid.
func (g *Grid) GetHeights(x, y, width, height int) [][]float64 {
	g.checkRect(x, y, width, height)
	out := make([][]float64, height)
	for row := range height {
		start := (y+row)*g.Cols + x
		out[row] = make([]float64, width)
		copy(out[row], g.Heights[start:start+width])
	}
	return out
}

// SetHeights implements Terrain. It panics if the rectangle leaves the grid.
func (g *Grid) SetHeights(x, y int, heights [][]float64) {
	if len(heights) == 0 {
		return
	}
	g.checkRect(x, y, len(heights[0]), len(heights))
	for row, line := range heights {
		start := (y+row)*g.Cols + x
		copy(g.Heights[start:start+len(line)], line)
	}
}

// Resolution implements Terrain.
func (g *Grid) Resolution() (cols, rows int) {
	return g.Cols, g.Rows
}

// WorldSize implements Terrain.
func (g *Grid) WorldSize() math.Vec3 {
	return g.Size
}

// WorldOrigin implements Terrain.
func (g *Grid) WorldOrigin() math.Vec3 {
	return g.Origin
}

// AltitudeRange returns the minimum and maximum height in the grid.
func (g *Grid) AltitudeRange() (min, max float64) {
	if len(g.Heights) == 0 {
		return 0, 0
	}
	return floats.Min(g.Heights), floats.Max(g.Heights)
}

func (g *Grid) checkRect(x, y, width, height int) {
	if x < 0 || y < 0 || width < 0 || height < 0 || x+width > g.Cols || y+height > g.Rows {
		panic(fmt.Sprintf("terrain: rect (%d,%d %dx%d) outside %dx%d grid", x, y, width, height, g.Cols, g.Rows))
	}
}
