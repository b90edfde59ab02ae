package scene

import (
	"errors"
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"physics-sandbox/internal/logger"
	"physics-sandbox/internal/physics"
	"physics-sandbox/internal/stepper"
)

var (
	// ErrUnknownBody is returned by lookups and force/impulse calls on ids
	// that were never created (or that carry no rigid body).
	ErrUnknownBody = errors.New("scene: unknown body id")
	// ErrDuplicateID is returned when a create call reuses an existing id.
	ErrDuplicateID = errors.New("scene: duplicate body id")
	// ErrDisposed is returned by calls after Cleanup.
	ErrDisposed = errors.New("scene: disposed")
)

// defaultColor matches the primitive registry's untinted gray.
var defaultColor = rl.NewColor(128, 128, 128, 255)

// Options configures a created body. Zero-value Color means the default gray;
// Mass <= 0 means 1 for dynamic bodies.
type Options struct {
	Color   rl.Color
	Dynamic bool
	Mass    float32
}

// Visual is the renderable half of an entry: primitive type, world size, and
// tint. Simulated entries read their position/rotation from the transform
// sink each frame; static entries use the fixed Position set at creation.
type Visual struct {
	Prim     string // "cube" or "plane"
	Size     rl.Vector3
	Color    rl.Color
	Position rl.Vector3
}

// Entry associates an id with a visual and, for simulated bodies, the handle
// whose sink the renderer reads. Handle == nil tags the entry as static
// decoration (ground visuals); its collider, if any, is owned by the world.
type Entry struct {
	ID     string
	Visual Visual
	Handle *stepper.BodyHandle
}

// Simulated reports whether the entry carries a rigid body.
func (e *Entry) Simulated() bool {
	return e != nil && e.Handle != nil
}

// Scene is the only surface external callers touch: it creates bodies
// through the stepper, keys them by id, and forwards force/impulse requests.
// Failed operations return typed errors (ErrUnknownBody, ErrDuplicateID,
// stepper.ErrNotReady, ErrDisposed) so callers and tests can tell the cases
// apart; the scene additionally logs them.
type Scene struct {
	log      *logger.Logger
	step     *stepper.Stepper
	entries  map[string]*Entry
	order    []string // creation order, used as draw order
	disposed bool
}

// New returns a scene over the given stepper. The stepper may still be
// uninitialized; create calls fail with stepper.ErrNotReady until the host
// calls stepper.Initialize.
func New(log *logger.Logger, step *stepper.Stepper) *Scene {
	return &Scene{
		log:     log,
		step:    step,
		entries: make(map[string]*Entry),
	}
}

// Ready reports whether the scene accepts body creation: physics initialized
// and Cleanup not yet run.
func (s *Scene) Ready() bool {
	return !s.disposed && s.step.Ready()
}

// CreateBox creates a box body of the given full size at position and
// registers it under id. opts.Dynamic selects a falling body versus a fixed
// obstacle.
func (s *Scene) CreateBox(id string, size, position rl.Vector3, opts Options) error {
	if err := s.checkCreate(id); err != nil {
		return err
	}
	kind := physics.Fixed
	if opts.Dynamic {
		kind = physics.Dynamic
	}
	half := rl.Vector3Scale(size, 0.5)
	h, err := s.step.CreateBox(half, position, kind, opts.Mass)
	if err != nil {
		s.log.Logf("scene: dropped box %q: %v", id, err)
		return fmt.Errorf("create box %q: %w", id, err)
	}
	s.put(&Entry{
		ID:     id,
		Visual: Visual{Prim: "cube", Size: size, Color: colorOrDefault(opts.Color), Position: position},
		Handle: h,
	})
	return nil
}

// CreateGround creates a fixed ground collider and a static plane visual,
// both at position (the collider is placed where the visual is, not at the
// origin).
func (s *Scene) CreateGround(id string, size, position rl.Vector3, opts Options) error {
	if err := s.checkCreate(id); err != nil {
		return err
	}
	half := rl.Vector3Scale(size, 0.5)
	if _, err := s.step.CreateGround(half, position); err != nil {
		s.log.Logf("scene: dropped ground %q: %v", id, err)
		return fmt.Errorf("create ground %q: %w", id, err)
	}
	s.put(&Entry{
		ID:     id,
		Visual: Visual{Prim: "cube", Size: size, Color: colorOrDefault(opts.Color), Position: position},
	})
	return nil
}

// Get looks up an entry by id. Absent on unknown ids; never panics.
func (s *Scene) Get(id string) (*Entry, bool) {
	e, ok := s.entries[id]
	return e, ok
}

// ApplyForce applies a continuous force to the named body for the next step,
// at the center of mass or at the optional world point, and wakes it.
// ErrUnknownBody when the id does not resolve to a rigid body; the world is
// untouched on error.
func (s *Scene) ApplyForce(id string, force rl.Vector3, at ...rl.Vector3) error {
	b, err := s.body(id)
	if err != nil {
		return err
	}
	if len(at) > 0 {
		b.ApplyForceAt(force, at[0])
	} else {
		b.ApplyForce(force)
	}
	return nil
}

// ApplyImpulse applies an instantaneous velocity change to the named body,
// at the center of mass or at the optional world point, and wakes it.
func (s *Scene) ApplyImpulse(id string, impulse rl.Vector3, at ...rl.Vector3) error {
	b, err := s.body(id)
	if err != nil {
		return err
	}
	if len(at) > 0 {
		b.ApplyImpulseAt(impulse, at[0])
	} else {
		b.ApplyImpulse(impulse)
	}
	return nil
}

// Each calls fn for every entry in creation order. Used by the render pass.
func (s *Scene) Each(fn func(*Entry)) {
	for _, id := range s.order {
		fn(s.entries[id])
	}
}

// Len returns the number of registered entries.
func (s *Scene) Len() int {
	return len(s.entries)
}

// Cleanup clears the registry and tears the stepper (and its world) down.
// Safe to call repeatedly; after the first call the scene stays disposed and
// create/force calls fail with ErrDisposed.
func (s *Scene) Cleanup() {
	s.entries = make(map[string]*Entry)
	s.order = nil
	s.step.Teardown()
	if !s.disposed {
		s.disposed = true
		s.log.Logf("scene: cleaned up")
	}
}

func (s *Scene) checkCreate(id string) error {
	if s.disposed {
		return ErrDisposed
	}
	if _, exists := s.entries[id]; exists {
		return fmt.Errorf("create %q: %w", id, ErrDuplicateID)
	}
	return nil
}

func (s *Scene) put(e *Entry) {
	s.entries[e.ID] = e
	s.order = append(s.order, e.ID)
}

func (s *Scene) body(id string) (*physics.Body, error) {
	if s.disposed {
		return nil, ErrDisposed
	}
	e, ok := s.entries[id]
	if !ok || e.Handle == nil {
		s.log.Logf("scene: ignored force/impulse on %q", id)
		return nil, fmt.Errorf("%q: %w", id, ErrUnknownBody)
	}
	return e.Handle.Body, nil
}

func colorOrDefault(c rl.Color) rl.Color {
	if c == (rl.Color{}) {
		return defaultColor
	}
	return c
}
