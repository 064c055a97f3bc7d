package terrain

import (
	"github.com/Faultbox/heightbrush/pkg/formats"
	"github.com/Faultbox/heightbrush/pkg/math"
)

// FromHFD builds a grid from a parsed heightfield file.
func FromHFD(h *formats.HFD) *Grid {
	g := NewGrid(int(h.Cols), int(h.Rows), vec3(h.Origin), vec3(h.Size))
	for row := range g.Rows {
		for col := range g.Cols {
			g.Set(col, row, float64(h.At(col, row)))
		}
	}
	return g
}

// ToHFD converts a grid to a heightfield file. Samples are narrowed to float32.
func ToHFD(g *Grid) *formats.HFD {
	h := &formats.HFD{
		Version: formats.CurrentHFDVersion,
		Cols:    uint32(g.Cols),
		Rows:    uint32(g.Rows),
		Origin:  [3]float32{float32(g.Origin.X), float32(g.Origin.Y), float32(g.Origin.Z)},
		Size:    [3]float32{float32(g.Size.X), float32(g.Size.Y), float32(g.Size.Z)},
		Heights: make([]float32, len(g.Heights)),
	}
	for i, v := range g.Heights {
		h.Heights[i] = float32(v)
	}
	return h
}

// LoadFile reads a grid from a heightfield file.
func LoadFile(path string) (*Grid, error) {
	h, err := formats.ParseHFDFile(path)
	if err != nil {
		return nil, err
	}
	return FromHFD(h), nil
}

// SaveFile writes g to a heightfield file.
func SaveFile(path string, g *Grid) error {
	return formats.WriteHFDFile(path, ToHFD(g))
}

func vec3(v [3]float32) math.Vec3 {
	return math.Vec3{X: float64(v[0]), Y: float64(v[1]), Z: float64(v[2])}
}
