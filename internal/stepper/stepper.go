package stepper

import (
	"errors"
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"physics-sandbox/internal/physics"
)

// FixedTimestep is the internal simulation tick. Step accepts a frame-delta
// hint but always advances by this constant, so simulation speed does not
// follow frame rate jitter.
const FixedTimestep = float32(1.0 / 60.0)

var (
	// ErrNotReady is returned by simulation-dependent calls before Initialize.
	ErrNotReady = errors.New("stepper: not initialized")
	// ErrDisposed is returned by calls after Teardown.
	ErrDisposed = errors.New("stepper: disposed")
)

type state int

const (
	stateUninitialized state = iota
	stateReady
	stateDisposed
)

// TransformSink is the render-side destination for a body's transform. The
// stepper writes it once per Step, after the world has fully advanced; the
// render pass only reads it.
type TransformSink struct {
	Position rl.Vector3
	Rotation rl.Quaternion
}

// BodyHandle bundles a created body with the sink its transform is synced
// into.
type BodyHandle struct {
	Body *physics.Body
	Sink *TransformSink
}

// pair is one entry of the per-step sync pass. A plain list of
// (body, sink) pairs instead of per-body closures keeps the pass inspectable
// and keeps order explicit.
type pair struct {
	body *physics.Body
	sink *TransformSink
}

// Stepper owns exactly one physics world and drives it one tick per Step.
// Lifecycle: New (uninitialized) → Initialize (ready) → Teardown (disposed).
// Before Initialize, body creation fails with ErrNotReady and Step is a
// no-op. Single event-loop use; no internal locking.
type Stepper struct {
	state state
	world *physics.World
	pairs []pair
}

// New returns an uninitialized stepper.
func New() *Stepper {
	return &Stepper{}
}

// Initialize creates the world with the given gravity and moves the stepper
// to ready. Rejects non-finite gravity. Initializing a disposed stepper
// returns ErrDisposed; re-initializing a ready one is a no-op.
func (s *Stepper) Initialize(gravity rl.Vector3) error {
	switch s.state {
	case stateDisposed:
		return ErrDisposed
	case stateReady:
		return nil
	}
	if !finite(gravity.X) || !finite(gravity.Y) || !finite(gravity.Z) {
		return fmt.Errorf("stepper: non-finite gravity (%v, %v, %v)", gravity.X, gravity.Y, gravity.Z)
	}
	s.world = physics.NewWorld(gravity)
	s.state = stateReady
	return nil
}

// Ready reports whether Initialize has completed and Teardown has not run.
func (s *Stepper) Ready() bool {
	return s.state == stateReady
}

// World exposes the owned world for inspection (step counters, body list).
// Nil before Initialize and after Teardown.
func (s *Stepper) World() *physics.World {
	return s.world
}

// CreateGround adds a fixed box collider with the given half extents centered
// at position. The collider is placed at the requested position, same as the
// paired visual.
func (s *Stepper) CreateGround(halfExtents, position rl.Vector3) (*physics.Body, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	b := physics.NewBody(halfExtents, position, physics.Fixed, 0)
	s.world.AddBody(b)
	return b, nil
}

// CreateBox adds a box body with the given half extents at position and
// registers its transform sink for the per-step sync pass. Sinks are synced
// in creation order.
func (s *Stepper) CreateBox(halfExtents, position rl.Vector3, kind physics.Kind, mass float32) (*BodyHandle, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	b := physics.NewBody(halfExtents, position, kind, mass)
	s.world.AddBody(b)
	sink := &TransformSink{Position: b.Position, Rotation: b.Orientation}
	s.pairs = append(s.pairs, pair{body: b, sink: sink})
	return &BodyHandle{Body: b, Sink: sink}, nil
}

// Step advances the world by exactly one fixed tick, then copies every
// body's translation and rotation into its sink in registration order.
// deltaHint is accepted for caller convenience and ignored (the internal
// timestep is constant). No-op when the stepper is not ready, so hosts can
// call it unconditionally from their frame loop.
func (s *Stepper) Step(deltaHint float32) {
	_ = deltaHint
	if s.state != stateReady {
		return
	}
	s.world.Step(FixedTimestep)
	for _, p := range s.pairs {
		p.sink.Position = p.body.Position
		p.sink.Rotation = p.body.Orientation
	}
}

// Teardown drops all bodies, sinks, and the world. Safe to call repeatedly;
// after the first call the stepper stays disposed.
func (s *Stepper) Teardown() {
	s.world = nil
	s.pairs = nil
	s.state = stateDisposed
}

func (s *Stepper) check() error {
	switch s.state {
	case stateUninitialized:
		return ErrNotReady
	case stateDisposed:
		return ErrDisposed
	}
	return nil
}

func finite(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
