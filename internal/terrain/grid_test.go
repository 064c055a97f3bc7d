package terrain

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/heightbrush/pkg/math"
)

func newTestGrid(cols, rows int) *Grid {
	g := NewGrid(cols, rows, math.Vec3{}, math.Vec3{X: float64(cols), Y: 1, Z: float64(rows)})
	for row := range rows {
		for col := range cols {
			g.Set(col, row, float64(row*10+col))
		}
	}
	return g
}

func TestGridGetHeights(t *testing.T) {
	g := newTestGrid(4, 3)

	got := g.GetHeights(1, 1, 2, 2)
	want := [][]float64{{11, 12}, {21, 22}}
	for row := range want {
		for col := range want[row] {
			if got[row][col] != want[row][col] {
				t.Errorf("heights[%d][%d]: expected %v, got %v", row, col, want[row][col], got[row][col])
			}
		}
	}

	// The result is a copy
	got[0][0] = -1
	if g.At(1, 1) != 11 {
		t.Errorf("GetHeights must not alias the grid, got %v", g.At(1, 1))
	}
}

func TestGridSetHeights(t *testing.T) {
	g := newTestGrid(4, 3)
	g.SetHeights(2, 1, [][]float64{{-1, -2}, {-3, -4}})

	tests := []struct {
		col, row int
		want     float64
	}{
		{2, 1, -1},
		{3, 1, -2},
		{2, 2, -3},
		{3, 2, -4},
		{1, 1, 11},
		{2, 0, 2},
	}
	for _, tc := range tests {
		if got := g.At(tc.col, tc.row); got != tc.want {
			t.Errorf("At(%d,%d): expected %v, got %v", tc.col, tc.row, tc.want, got)
		}
	}
}

func TestGridZeroAreaRect(t *testing.T) {
	g := newTestGrid(4, 4)
	got := g.GetHeights(4, 4, 0, 0)
	if len(got) != 0 {
		t.Errorf("expected empty sub-grid, got %v", got)
	}
	g.SetHeights(4, 4, got)
}

func TestGridRectOutOfBoundsPanics(t *testing.T) {
	g := newTestGrid(4, 4)
	defer func() {
		if recover() == nil {
			t.Error("expected panic for out of bounds rectangle")
		}
	}()
	g.GetHeights(3, 3, 2, 2)
}

func TestGridAltitudeRange(t *testing.T) {
	g := newTestGrid(3, 3)
	lo, hi := g.AltitudeRange()
	if lo != 0 || hi != 22 {
		t.Errorf("expected range [0, 22], got [%v, %v]", lo, hi)
	}

	empty := NewGrid(0, 0, math.Vec3{}, math.Vec3{})
	lo, hi = empty.AltitudeRange()
	if lo != 0 || hi != 0 {
		t.Errorf("expected [0, 0] for empty grid, got [%v, %v]", lo, hi)
	}
}

func TestGridClone(t *testing.T) {
	g := newTestGrid(2, 2)
	c := g.Clone()
	c.Set(0, 0, 99)
	if g.At(0, 0) != 0 {
		t.Error("Clone shares storage with the original")
	}
}

func TestInterpolatedHeight(t *testing.T) {
	g := newTestGrid(3, 3)

	tests := []struct {
		name   string
		gx, gy float64
		want   float64
	}{
		{"sample point", 1, 1, 11},
		{"midway along X", 0.5, 0, 0.5},
		{"midway along Y", 0, 0.5, 5},
		{"cell centre", 1.5, 1.5, 16.5},
		{"far edge", 2, 2, 22},
		{"clamped below", -5, -5, 0},
		{"clamped above", 10, 10, 22},
		{"NaN", gomath.NaN(), gomath.NaN(), 0},
		{"infinite", gomath.Inf(1), gomath.Inf(-1), 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InterpolatedHeight(g, tt.gx, tt.gy)
			if gomath.Abs(got-tt.want) > 1e-9 {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestInterpolatedHeightContinuous(t *testing.T) {
	g := newTestGrid(5, 5)
	prev := InterpolatedHeight(g, 0, 2.3)
	for i := 1; i <= 400; i++ {
		x := float64(i) * 0.01
		h := InterpolatedHeight(g, x, 2.3)
		if gomath.Abs(h-prev) > 0.02 {
			t.Fatalf("jump of %v at x=%v", h-prev, x)
		}
		prev = h
	}
}

func TestInterpolatedHeightSingleSample(t *testing.T) {
	g := NewGrid(1, 1, math.Vec3{}, math.Vec3{X: 1, Z: 1})
	g.Set(0, 0, 7)
	if got := InterpolatedHeight(g, 0.4, 0.9); got != 7 {
		t.Errorf("expected 7, got %v", got)
	}
}
