// Package session drives a brush engine from host input and keeps the state
// that outlives a single tick: the stored sample and the current stroke.
package session

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Faultbox/heightbrush/internal/brush"
	"github.com/Faultbox/heightbrush/internal/logger"
	"github.com/Faultbox/heightbrush/internal/picking"
	"github.com/Faultbox/heightbrush/internal/terrain"
	"github.com/Faultbox/heightbrush/pkg/math"
)

// Input is the per-tick pointer state reported by the host.
type Input struct {
	Active  bool      // pointer button held
	Hit     bool      // pointer is over the terrain
	Point   math.Vec3 // world-space hit point, valid when Hit
	Elapsed float64   // seconds since the previous tick
}

// Session edits one terrain. It is safe for concurrent use.
type Session struct {
	terrain terrain.Terrain
	mu      sync.Locker

	engine    *brush.Engine
	sample    float64
	hasSample bool

	stroke      uuid.UUID
	strokeTicks int
}

// New creates a session on t.
//
// If t implements sync.Locker (terrain.Grid does), every tick holds that lock,
// so sessions sharing the terrain are serialised. Otherwise the session uses a
// lock of its own and the host must serialise sessions that share t.
func New(t terrain.Terrain, cfg brush.Config) (*Session, error) {
	if t == nil {
		return nil, errors.New("session: nil terrain")
	}
	engine, err := brush.NewEngine(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating brush engine: %w", err)
	}
	mu, ok := t.(sync.Locker)
	if !ok {
		mu = &sync.Mutex{}
	}
	return &Session{
		terrain: t,
		mu:      mu,
		engine:  engine,
	}, nil
}

// Terrain returns the terrain being edited.
func (s *Session) Terrain() terrain.Terrain {
	return s.terrain
}

// Tick feeds one update into the engine. A tick without a terrain hit ends the
// current stroke and is not an error; ErrEmptyRegion and ErrInvalidAction are
// returned to the caller.
func (s *Session) Tick(in Input) (brush.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tick(in)
}

// tick runs one update. The caller holds s.mu.
func (s *Session) tick(in Input) (brush.Result, error) {
	prev := s.engine.State()
	res, err := s.engine.Update(brush.Tick{
		Active:  in.Active,
		Hit:     in.Hit,
		Point:   in.Point,
		Terrain: s.terrain,
		Elapsed: in.Elapsed,
		Stored:  s.sample,
	})
	s.transition(prev, s.engine.State())

	switch {
	case errors.Is(err, brush.ErrNoTerrainHit):
		logger.Debug("tick missed terrain", zap.Float64("x", in.Point.X), zap.Float64("z", in.Point.Z))
		return brush.Result{}, nil
	case err != nil:
		logger.Warn("brush tick failed",
			zap.Stringer("action", s.engine.Config().Action),
			zap.Stringer("stroke", s.stroke),
			zap.Error(err))
		return res, err
	}

	if s.engine.State() == brush.Editing {
		s.strokeTicks++
		logger.Debug("brush applied",
			zap.Stringer("action", res.Action),
			zap.Stringer("region", res.Region),
			zap.Float64("elapsed", in.Elapsed))
	}
	if res.Sampled {
		s.sample = res.Height
		s.hasSample = true
		logger.Debug("height sampled", zap.Float64("height", res.Height))
	}
	return res, nil
}

// TickRay hit-tests ray against the terrain and applies the tick at the hit,
// both under the terrain lock.
func (s *Session) TickRay(active bool, ray picking.Ray, elapsed float64) (brush.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	in := Input{Active: active, Elapsed: elapsed}
	if active {
		in.Point, in.Hit = ray.IntersectTerrain(s.terrain)
	}
	return s.tick(in)
}

func (s *Session) transition(from, to brush.State) {
	if from == to {
		return
	}
	switch to {
	case brush.Editing:
		s.stroke = uuid.New()
		s.strokeTicks = 0
		cfg := s.engine.Config()
		logger.Info("stroke started",
			zap.Stringer("stroke", s.stroke),
			zap.Stringer("action", cfg.Action),
			zap.Int("width", cfg.Width),
			zap.Int("height", cfg.Height),
			zap.Float64("strength", cfg.Strength))
	case brush.Idle:
		logger.Info("stroke ended",
			zap.Stringer("stroke", s.stroke),
			zap.Int("ticks", s.strokeTicks))
	}
}

// State returns the engine state.
func (s *Session) State() brush.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.State()
}

// StrokeID returns the id of the current or most recent stroke.
func (s *Session) StrokeID() uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stroke
}

// StoredSample returns the last sampled height and whether one was taken.
func (s *Session) StoredSample() (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sample, s.hasSample
}

// SetStoredSample overrides the flatten target.
func (s *Session) SetStoredSample(h float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sample = h
	s.hasSample = true
}

// Config returns the brush configuration.
func (s *Session) Config() brush.Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Config()
}

// SetWidth sets the brush width.
func (s *Session) SetWidth(w int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.SetWidth(w)
}

// SetHeight sets the brush height.
func (s *Session) SetHeight(h int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.SetHeight(h)
}

// SetStrength sets the raise/lower rate.
func (s *Session) SetStrength(v float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.SetStrength(v)
}

// SetAction selects the brush action.
func (s *Session) SetAction(a brush.Action) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.SetAction(a)
}
