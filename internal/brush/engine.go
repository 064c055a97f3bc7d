package brush

import (
	"fmt"

	"github.com/Faultbox/heightbrush/internal/terrain"
	"github.com/Faultbox/heightbrush/pkg/math"
)

// State is the interaction state of an Engine.
type State int

// Engine states.
const (
	Idle State = iota
	Editing
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Editing:
		return "editing"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Tick is the input the host supplies once per update.
type Tick struct {
	Active  bool            // interaction signal, e.g. pointer button held
	Hit     bool            // pointer ray hit Terrain
	Point   math.Vec3       // world-space hit point
	Terrain terrain.Terrain // heightfield under the pointer
	Elapsed float64         // seconds since the previous tick
	Stored  float64         // previously sampled height, used by Flatten
}

// Result describes what a tick did.
type Result struct {
	Action  Action
	Region  Region  // clamped rectangle; zero for Sample
	Height  float64 // sampled height when Sampled is true
	Sampled bool
}

// Engine dispatches brush actions from per-tick input.
type Engine struct {
	cfg   Config
	state State
}

// NewEngine creates an idle engine. Width and height below 1 are raised to 1.
func NewEngine(cfg Config) (*Engine, error) {
	cfg = cfg.Normalized()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{cfg: cfg}, nil
}

// Config returns the current brush configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// State returns the current interaction state.
func (e *Engine) State() State {
	return e.state
}

// SetWidth sets the brush width in samples (minimum 1).
func (e *Engine) SetWidth(w int) {
	e.cfg.Width = max(w, 1)
}

// SetHeight sets the brush height in samples (minimum 1).
func (e *Engine) SetHeight(h int) {
	e.cfg.Height = max(h, 1)
}

// SetStrength sets the raise/lower rate in height units per second.
func (e *Engine) SetStrength(s float64) {
	e.cfg.Strength = s
}

// SetAction selects the action applied on subsequent ticks.
func (e *Engine) SetAction(a Action) error {
	if !a.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidAction, int(a))
	}
	e.cfg.Action = a
	return nil
}

// Update advances the state machine by one tick and, while editing, applies
// the configured action. An inactive tick returns the engine to Idle without
// error; an active tick without a terrain hit does the same but reports
// ErrNoTerrainHit.
func (e *Engine) Update(tick Tick) (Result, error) {
	if !tick.Active {
		e.state = Idle
		return Result{}, nil
	}
	if !tick.Hit || tick.Terrain == nil {
		e.state = Idle
		return Result{}, ErrNoTerrainHit
	}

	e.state = Editing
	return Apply(tick.Terrain, e.cfg, tick.Point, tick.Elapsed, tick.Stored)
}

// Apply runs one brush action against t at a world point.
func Apply(t terrain.Terrain, cfg Config, point math.Vec3, elapsed, stored float64) (Result, error) {
	if !cfg.Action.Valid() {
		return Result{}, fmt.Errorf("%w: %d", ErrInvalidAction, int(cfg.Action))
	}

	space := SpaceOf(t)
	res := Result{Action: cfg.Action}

	if cfg.Action == ActionSample {
		res.Height = Sample(t, space, point)
		res.Sampled = true
		return res, nil
	}

	res.Region = space.Region(space.WorldToGrid(point), cfg.Width, cfg.Height)

	switch cfg.Action {
	case ActionRaise:
		Raise(t, res.Region, cfg.Strength*elapsed)
	case ActionLower:
		Lower(t, res.Region, cfg.Strength*elapsed)
	case ActionFlatten:
		Flatten(t, res.Region, stored)
	case ActionSampleAverage:
		h, err := SampleAverage(t, res.Region)
		if err != nil {
			return res, fmt.Errorf("sampling average over %s: %w", res.Region, err)
		}
		res.Height = h
		res.Sampled = true
	case ActionSmooth:
		Smooth(t, res.Region)
	}
	return res, nil
}
