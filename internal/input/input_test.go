package input

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"

	"physics-sandbox/internal/logger"
	"physics-sandbox/internal/scene"
	"physics-sandbox/internal/stepper"
)

func testScene(t *testing.T) (*scene.Scene, *stepper.Stepper) {
	t.Helper()
	st := stepper.New()
	if err := st.Initialize(rl.NewVector3(0, -9.81, 0)); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	s := scene.New(logger.NewAt(""), st)
	size := rl.NewVector3(1, 1, 1)
	if err := s.CreateBox("player", size, rl.NewVector3(0, 3, 0), scene.Options{Dynamic: true}); err != nil {
		t.Fatalf("create player: %v", err)
	}
	if err := s.CreateBox("crate", size, rl.NewVector3(3, 3, 0), scene.Options{Dynamic: true}); err != nil {
		t.Fatalf("create crate: %v", err)
	}
	return s, st
}

func body(t *testing.T, s *scene.Scene, id string) *scene.Entry {
	t.Helper()
	e, ok := s.Get(id)
	if !ok {
		t.Fatalf("body %q missing", id)
	}
	return e
}

func TestJumpImpulsesPlayerOnly(t *testing.T) {
	s, _ := testScene(t)
	c := NewController(logger.NewAt(""), s, "player", "crate")

	c.Apply(Actions{Jump: true})

	player := body(t, s, "player")
	crate := body(t, s, "crate")
	if player.Handle.Body.Velocity.Y != DefaultJumpImpulse {
		t.Errorf("player velocity.y = %v, want %v", player.Handle.Body.Velocity.Y, DefaultJumpImpulse)
	}
	if crate.Handle.Body.Velocity.Y != 0 {
		t.Errorf("crate velocity.y = %v, want 0", crate.Handle.Body.Velocity.Y)
	}
}

func TestDirectionalForceOnCrate(t *testing.T) {
	tests := []struct {
		name    string
		actions Actions
		wantVX  bool // velocity.x nonzero after one step
		wantVZ  bool
	}{
		{"right", Actions{MoveX: 1}, true, false},
		{"left", Actions{MoveX: -1}, true, false},
		{"forward", Actions{MoveZ: -1}, false, true},
		{"diagonal", Actions{MoveX: 1, MoveZ: 1}, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, st := testScene(t)
			c := NewController(logger.NewAt(""), s, "player", "crate")

			c.Apply(tt.actions)
			st.Step(stepper.FixedTimestep)

			crate := body(t, s, "crate")
			if gotX := crate.Handle.Body.Velocity.X != 0; gotX != tt.wantVX {
				t.Errorf("velocity.x nonzero = %v, want %v", gotX, tt.wantVX)
			}
			if gotZ := crate.Handle.Body.Velocity.Z != 0; gotZ != tt.wantVZ {
				t.Errorf("velocity.z nonzero = %v, want %v", gotZ, tt.wantVZ)
			}
			player := body(t, s, "player")
			if player.Handle.Body.Velocity.X != 0 {
				t.Error("directional force leaked to the player body")
			}
		})
	}
}

func TestCrateJump(t *testing.T) {
	s, _ := testScene(t)
	c := NewController(logger.NewAt(""), s, "player", "crate")

	c.Apply(Actions{CrateJump: true})

	crate := body(t, s, "crate")
	if crate.Handle.Body.Velocity.Y != DefaultCrateImpulse {
		t.Errorf("crate velocity.y = %v, want %v", crate.Handle.Body.Velocity.Y, DefaultCrateImpulse)
	}
}

func TestMissingBodiesLogOnce(t *testing.T) {
	st := stepper.New()
	if err := st.Initialize(rl.NewVector3(0, -9.81, 0)); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	s := scene.New(logger.NewAt(""), st) // empty scene: no player, no crate
	log := logger.NewAt("")
	c := NewController(log, s, "player", "crate")

	for i := 0; i < 5; i++ {
		c.Apply(Actions{Jump: true, CrateJump: true})
	}

	if got := len(log.Lines()); got != 2 { // one line per missing id
		t.Errorf("got %d log lines, want 2: %v", got, log.Lines())
	}
}

func TestToggleActionsHaveNoPhysicsEffect(t *testing.T) {
	s, st := testScene(t)
	c := NewController(logger.NewAt(""), s, "player", "crate")

	before := st.World().StepCount()
	c.Apply(Actions{ToggleDebug: true, ToggleGrid: true})

	if st.World().StepCount() != before {
		t.Error("toggle action stepped the world")
	}
	for _, id := range []string{"player", "crate"} {
		if v := body(t, s, id).Handle.Body.Velocity; v != (rl.Vector3{}) {
			t.Errorf("%s gained velocity %v from toggle action", id, v)
		}
	}
}
