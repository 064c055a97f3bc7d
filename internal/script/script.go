// Package script replays recorded pointer input through a brush session.
//
// A script is a YAML document:
//
//	elapsed: 0.016            # seconds per tick unless a step overrides it
//	steps:
//	  - action: sample        # settings may change on any step
//	    at: {x: 500, z: 500}  # pointer held over this world point
//	  - action: flatten
//	    at: {x: 520, z: 500}
//	    repeat: 30
//	  - ray: {origin: {x: 0, y: 900, z: 0}, direction: {x: 1, y: -1, z: 1}}
//	  - screen: {x: 640, y: 360}  # pixel, cast through the script camera
//	  - miss: true            # pointer held but off the terrain
//	  - release: true         # pointer released
package script

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/heightbrush/internal/brush"
	"github.com/Faultbox/heightbrush/internal/picking"
	"github.com/Faultbox/heightbrush/internal/session"
	"github.com/Faultbox/heightbrush/pkg/math"
)

// DefaultElapsed is the tick length used when a script does not set one.
const DefaultElapsed = 1.0 / 60

// Script is a parsed stroke script.
type Script struct {
	Elapsed float64              `yaml:"elapsed"`
	Camera  *picking.OrbitCamera `yaml:"camera,omitempty"` // required by screen steps
	Steps   []Step               `yaml:"steps"`
}

// RaySpec is a pointer ray in world space.
type RaySpec struct {
	Origin    math.Vec3 `yaml:"origin"`
	Direction math.Vec3 `yaml:"direction"`
}

// ScreenPoint is a pointer position in viewport pixels.
type ScreenPoint struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Step is one or more identical ticks, optionally preceded by settings changes.
type Step struct {
	Action   string       `yaml:"action,omitempty"`
	Strength *float64     `yaml:"strength,omitempty"`
	Width    int          `yaml:"width,omitempty"`
	Height   int          `yaml:"height,omitempty"`
	At       *math.Vec3   `yaml:"at,omitempty"`
	Ray      *RaySpec     `yaml:"ray,omitempty"`
	Screen   *ScreenPoint `yaml:"screen,omitempty"`
	Miss     bool         `yaml:"miss,omitempty"`
	Release  bool         `yaml:"release,omitempty"`
	Elapsed  float64      `yaml:"elapsed,omitempty"`
	Repeat   int          `yaml:"repeat,omitempty"`
}

// ticks reports whether the step feeds input to the session.
func (s Step) ticks() bool {
	return s.At != nil || s.Ray != nil || s.Screen != nil || s.Miss || s.Release
}

func (s Step) validate() error {
	n := 0
	for _, set := range []bool{s.At != nil, s.Ray != nil, s.Screen != nil, s.Miss, s.Release} {
		if set {
			n++
		}
	}
	if n > 1 {
		return errors.New("at most one pointer input (at, ray, screen, miss, release) may be set")
	}
	if s.Action != "" {
		if _, err := brush.ParseAction(s.Action); err != nil {
			return err
		}
	}
	if s.Repeat < 0 {
		return fmt.Errorf("negative repeat %d", s.Repeat)
	}
	if s.Elapsed < 0 {
		return fmt.Errorf("negative elapsed %v", s.Elapsed)
	}
	return nil
}

// Parse parses and validates a script.
func Parse(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing script: %w", err)
	}
	if s.Elapsed <= 0 {
		s.Elapsed = DefaultElapsed
	}
	if s.Camera != nil {
		if err := s.Camera.Validate(); err != nil {
			return nil, err
		}
	}
	for i, step := range s.Steps {
		if err := step.validate(); err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
		if step.Screen != nil && s.Camera == nil {
			return nil, fmt.Errorf("step %d: screen input needs a camera", i+1)
		}
	}
	return &s, nil
}

// ParseFile parses a script from disk.
func ParseFile(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading script: %w", err)
	}
	return Parse(data)
}

// Summary reports what a run did.
type Summary struct {
	Ticks      int
	Edits      int          // ticks that wrote to the terrain
	Misses     int          // active ticks that did not hit the terrain
	Failed     int          // ticks rejected with ErrEmptyRegion
	Samples    []float64    // heights captured by sample and sample_average
	LastRegion brush.Region // last region written to
}

// Run replays the script through sess. Empty-region failures are counted and
// skipped; any other error stops the run.
func (s *Script) Run(sess *session.Session) (Summary, error) {
	var sum Summary
	for i, step := range s.Steps {
		if err := applySettings(sess, step); err != nil {
			return sum, fmt.Errorf("step %d: %w", i+1, err)
		}
		if !step.ticks() {
			continue
		}

		elapsed := step.Elapsed
		if elapsed == 0 {
			elapsed = s.Elapsed
		}
		for range max(step.Repeat, 1) {
			if err := s.tick(sess, step, elapsed, &sum); err != nil {
				return sum, fmt.Errorf("step %d: %w", i+1, err)
			}
		}
	}
	return sum, nil
}

func applySettings(sess *session.Session, step Step) error {
	if step.Action != "" {
		a, err := brush.ParseAction(step.Action)
		if err != nil {
			return err
		}
		if err := sess.SetAction(a); err != nil {
			return err
		}
	}
	if step.Strength != nil {
		sess.SetStrength(*step.Strength)
	}
	if step.Width > 0 {
		sess.SetWidth(step.Width)
	}
	if step.Height > 0 {
		sess.SetHeight(step.Height)
	}
	return nil
}

func (s *Script) tick(sess *session.Session, step Step, elapsed float64, sum *Summary) error {
	var (
		res brush.Result
		err error
	)
	switch {
	case step.Screen != nil:
		ray, rerr := s.Camera.Ray(step.Screen.X, step.Screen.Y)
		if rerr != nil {
			return rerr
		}
		res, err = sess.TickRay(true, ray, elapsed)
	case step.Ray != nil:
		res, err = sess.TickRay(true, picking.NewRay(step.Ray.Origin, step.Ray.Direction), elapsed)
	case step.At != nil:
		res, err = sess.Tick(session.Input{Active: true, Hit: true, Point: *step.At, Elapsed: elapsed})
	default:
		// miss or release
		res, err = sess.Tick(session.Input{Active: step.Miss, Elapsed: elapsed})
	}
	sum.Ticks++

	if errors.Is(err, brush.ErrEmptyRegion) {
		sum.Failed++
		return nil
	}
	if err != nil {
		return err
	}

	switch {
	case step.Release:
	case sess.State() == brush.Idle:
		sum.Misses++
	case res.Sampled:
		sum.Samples = append(sum.Samples, res.Height)
	case res.Action.Mutates() && !res.Region.Empty():
		sum.Edits++
		sum.LastRegion = res.Region
	}
	return nil
}
