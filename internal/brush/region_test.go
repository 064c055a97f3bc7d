package brush

import (
	"testing"

	"github.com/Faultbox/heightbrush/pkg/math"
)

func TestWorldToGrid(t *testing.T) {
	size := math.Vec3{X: 1000, Y: 600, Z: 1000}

	tests := []struct {
		name   string
		point  math.Vec3
		origin math.Vec3
		want   math.Vec2
	}{
		{"centre", math.Vec3{X: 500, Y: 42, Z: 500}, math.Vec3{}, math.Vec2{X: 256.5, Y: 256.5}},
		{"origin", math.Vec3{}, math.Vec3{}, math.Vec2{}},
		{"offset terrain", math.Vec3{X: 100, Z: 1100}, math.Vec3{X: 100, Y: -50, Z: 100}, math.Vec2{X: 0, Y: 513}},
		{"off terrain", math.Vec3{X: -1000, Z: 2000}, math.Vec3{}, math.Vec2{X: -513, Y: 1026}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WorldToGrid(tt.point, tt.origin, size, 513)
			if got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestWorldToGridRectangular(t *testing.T) {
	s := Space{Size: math.Vec3{X: 100, Z: 50}, Cols: 200, Rows: 10}
	got := s.WorldToGrid(math.Vec3{X: 25, Z: 25})
	want := math.Vec2{X: 50, Y: 5}
	if got != want {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestClampRegionScenarios(t *testing.T) {
	size := math.Vec3{X: 1000, Y: 600, Z: 1000}

	tests := []struct {
		name  string
		point math.Vec3
		want  Region
	}{
		{"centre of terrain", math.Vec3{X: 500, Z: 500}, Region{X: 254, Y: 254, Width: 5, Height: 5}},
		{"terrain origin", math.Vec3{}, Region{X: 0, Y: 0, Width: 5, Height: 5}},
		{"far corner", math.Vec3{X: 1000, Z: 1000}, Region{X: 510, Y: 510, Width: 3, Height: 3}},
		{"beyond far corner", math.Vec3{X: 2000, Z: 2000}, Region{X: 513, Y: 513, Width: 0, Height: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := WorldToGrid(tt.point, math.Vec3{}, size, 513)
			got := ClampRegion(pos, 5, 5, 513)
			if got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestClampRegionInsideIsUnclamped(t *testing.T) {
	const resolution = 64
	for _, size := range []int{1, 2, 5, 8, 64} {
		for c := 0; c <= resolution*2; c++ {
			center := float64(c) * 0.5
			start := center - float64(size)*0.5
			if start < 0 || start+float64(size) > resolution {
				continue
			}
			got := ClampRegion(math.Vec2{X: center, Y: center}, size, size, resolution)
			want := Region{X: int(start), Y: int(start), Width: size, Height: size}
			if got != want {
				t.Fatalf("size %d centre %v: expected %v, got %v", size, center, want, got)
			}
		}
	}
}

func TestClampRegionStaysInBounds(t *testing.T) {
	const resolution = 33
	for _, size := range []int{1, 4, 7, 33, 50} {
		for x := -60.0; x <= 100; x += 1.25 {
			for y := -60.0; y <= 100; y += 3.5 {
				r := ClampRegion(math.Vec2{X: x, Y: y}, size, size+1, resolution)
				if r.X < 0 || r.Y < 0 {
					t.Fatalf("negative origin %v for (%v,%v)", r, x, y)
				}
				if r.Width < 0 || r.Height < 0 {
					t.Fatalf("negative size %v for (%v,%v)", r, x, y)
				}
				if r.X+r.Width > resolution || r.Y+r.Height > resolution {
					t.Fatalf("region %v exceeds resolution %d for (%v,%v)", r, resolution, x, y)
				}
			}
		}
	}
}

func TestSpaceRegionRectangular(t *testing.T) {
	s := Space{Cols: 10, Rows: 4}
	got := s.Region(math.Vec2{X: 9, Y: 3}, 4, 4)
	want := Region{X: 7, Y: 1, Width: 3, Height: 3}
	if got != want {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestRegionArea(t *testing.T) {
	tests := []struct {
		r     Region
		area  int
		empty bool
	}{
		{Region{Width: 3, Height: 4}, 12, false},
		{Region{Width: 0, Height: 4}, 0, true},
		{Region{Width: 3, Height: 0}, 0, true},
	}
	for _, tc := range tests {
		if tc.r.Area() != tc.area {
			t.Errorf("%v.Area(): expected %d, got %d", tc.r, tc.area, tc.r.Area())
		}
		if tc.r.Empty() != tc.empty {
			t.Errorf("%v.Empty(): expected %v", tc.r, tc.empty)
		}
	}
}
