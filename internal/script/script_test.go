package script

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/heightbrush/internal/brush"
	"github.com/Faultbox/heightbrush/internal/session"
	"github.com/Faultbox/heightbrush/internal/terrain"
	"github.com/Faultbox/heightbrush/pkg/math"
)

func newSession(t *testing.T) (*session.Session, *terrain.Grid) {
	t.Helper()
	g := terrain.NewSquareGrid(64, math.Vec3{}, math.Vec3{X: 64, Y: 10, Z: 64})
	s, err := session.New(g, brush.Config{Width: 4, Height: 4, Strength: 1, Action: brush.ActionRaise})
	require.NoError(t, err)
	return s, g
}

func TestParseDefaults(t *testing.T) {
	s, err := Parse([]byte("steps:\n  - at: {x: 1, z: 2}\n"))
	require.NoError(t, err)
	assert.Equal(t, DefaultElapsed, s.Elapsed)
	require.Len(t, s.Steps, 1)
	assert.Equal(t, &math.Vec3{X: 1, Z: 2}, s.Steps[0].At)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"syntax", "steps: [\n"},
		{"unknown action", "steps:\n  - action: carve\n"},
		{"two pointers", "steps:\n  - at: {x: 1}\n    miss: true\n"},
		{"negative repeat", "steps:\n  - release: true\n    repeat: -2\n"},
		{"screen without camera", "steps:\n  - screen: {x: 1, y: 1}\n"},
		{"bad camera", "camera: {width: 0}\nsteps: []\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestRunRaiseSampleFlatten(t *testing.T) {
	sess, g := newSession(t)

	src := `
elapsed: 0.5
steps:
  - at: {x: 32, z: 32}
    repeat: 4
  - action: sample
    at: {x: 32, z: 32}
  - release: true
  - action: flatten
    width: 2
    height: 2
    at: {x: 10, z: 10}
  - miss: true
`
	s, err := Parse([]byte(src))
	require.NoError(t, err)

	sum, err := s.Run(sess)
	require.NoError(t, err)

	assert.Equal(t, 8, sum.Ticks)
	assert.Equal(t, 5, sum.Edits)
	assert.Equal(t, 1, sum.Misses)
	require.Len(t, sum.Samples, 1)
	assert.InDelta(t, 2.0, sum.Samples[0], 1e-9)

	assert.InDelta(t, 2.0, g.At(32, 32), 1e-9)
	assert.Equal(t, brush.Region{X: 9, Y: 9, Width: 2, Height: 2}, sum.LastRegion)
	assert.InDelta(t, 2.0, g.At(9, 9), 1e-9)
	assert.InDelta(t, 2.0, g.At(10, 10), 1e-9)
	assert.InDelta(t, 0.0, g.At(11, 11), 1e-9)
}

func TestRunRay(t *testing.T) {
	sess, g := newSession(t)

	src := `
steps:
  - strength: 6
    elapsed: 0.5
    ray: {origin: {x: 20, y: 30, z: 40}, direction: {x: 0, y: -1, z: 0}}
`
	s, err := Parse([]byte(src))
	require.NoError(t, err)

	sum, err := s.Run(sess)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Edits)
	assert.InDelta(t, 3.0, g.At(20, 40), 1e-9)
}

func TestRunScreen(t *testing.T) {
	sess, g := newSession(t)

	src := `
camera:
  center: {x: 32, y: 0, z: 32}
  distance: 80
  pitch: 1.2
  width: 800
  height: 600
steps:
  - strength: 60
    screen: {x: 400, y: 300}
`
	s, err := Parse([]byte(src))
	require.NoError(t, err)
	require.NotNil(t, s.Camera)
	assert.Equal(t, 10000.0, s.Camera.Far) // omitted fields keep their defaults

	sum, err := s.Run(sess)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Edits)
	assert.InDelta(t, 1.0, g.At(32, 32), 1e-9)
}

func TestRunCountsEmptyRegion(t *testing.T) {
	sess, _ := newSession(t)

	src := `
steps:
  - action: sample_average
    at: {x: 1000, z: 5}
    repeat: 3
`
	s, err := Parse([]byte(src))
	require.NoError(t, err)

	sum, err := s.Run(sess)
	require.NoError(t, err)
	assert.Equal(t, 3, sum.Failed)
	assert.Empty(t, sum.Samples)
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stroke.yaml")
	require.NoError(t, os.WriteFile(path, []byte("elapsed: 0.1\nsteps:\n  - release: true\n"), 0644))

	s, err := ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, 0.1, s.Elapsed)

	_, err = ParseFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
