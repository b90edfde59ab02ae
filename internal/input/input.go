package input

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"physics-sandbox/internal/logger"
	"physics-sandbox/internal/scene"
)

// Default magnitudes for the fixed key mapping.
const (
	DefaultJumpImpulse  = float32(6)
	DefaultMoveForce    = float32(20)
	DefaultCrateImpulse = float32(5)
)

// Actions is what one frame of polling produced. Kept separate from raylib
// key codes so the mapping from actions to physics calls is testable without
// a window.
type Actions struct {
	ToggleDebug bool    // no physics effect; host flips the overlay
	ToggleGrid  bool    // no physics effect; host flips the editor grid
	Jump        bool    // vertical impulse on the player body
	MoveX       float32 // -1..1, horizontal force on the crate body
	MoveZ       float32 // -1..1, horizontal force on the crate body
	CrateJump   bool    // vertical impulse on the crate body
}

// Controller turns per-frame Actions into force/impulse calls on named
// scene bodies. Failed calls (body missing, physics not ready) are logged
// once per id so a scene without the expected bodies stays quiet.
type Controller struct {
	PlayerID     string
	CrateID      string
	JumpImpulse  float32
	MoveForce    float32
	CrateImpulse float32

	scn    *scene.Scene
	log    *logger.Logger
	warned map[string]bool
}

// NewController returns a controller driving the given body ids with default
// magnitudes.
func NewController(log *logger.Logger, scn *scene.Scene, playerID, crateID string) *Controller {
	return &Controller{
		PlayerID:     playerID,
		CrateID:      crateID,
		JumpImpulse:  DefaultJumpImpulse,
		MoveForce:    DefaultMoveForce,
		CrateImpulse: DefaultCrateImpulse,
		scn:          scn,
		log:          log,
		warned:       make(map[string]bool),
	}
}

// Poll reads the keyboard and returns this frame's actions.
// F1 toggles the debug overlay, G the grid; Space jumps the player; arrow
// keys push the crate horizontally; right shift pops the crate upward.
func Poll() Actions {
	var a Actions
	a.ToggleDebug = rl.IsKeyPressed(rl.KeyF1)
	a.ToggleGrid = rl.IsKeyPressed(rl.KeyG)
	a.Jump = rl.IsKeyPressed(rl.KeySpace)
	a.CrateJump = rl.IsKeyPressed(rl.KeyRightShift)
	if rl.IsKeyDown(rl.KeyRight) {
		a.MoveX += 1
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		a.MoveX -= 1
	}
	if rl.IsKeyDown(rl.KeyDown) {
		a.MoveZ += 1
	}
	if rl.IsKeyDown(rl.KeyUp) {
		a.MoveZ -= 1
	}
	return a
}

// Apply forwards the physics-affecting actions to the scene. Toggle flags
// are left for the host to consume. Unknown-body and not-ready errors are
// swallowed after a single log line per body id.
func (c *Controller) Apply(a Actions) {
	if a.Jump {
		c.forward(c.PlayerID, c.scn.ApplyImpulse(c.PlayerID, rl.NewVector3(0, c.JumpImpulse, 0)))
	}
	if a.MoveX != 0 || a.MoveZ != 0 {
		f := rl.NewVector3(a.MoveX*c.MoveForce, 0, a.MoveZ*c.MoveForce)
		c.forward(c.CrateID, c.scn.ApplyForce(c.CrateID, f))
	}
	if a.CrateJump {
		c.forward(c.CrateID, c.scn.ApplyImpulse(c.CrateID, rl.NewVector3(0, c.CrateImpulse, 0)))
	}
}

func (c *Controller) forward(id string, err error) {
	if err == nil {
		return
	}
	if c.warned[id] {
		return
	}
	c.warned[id] = true
	c.log.Logf("input: %v", err)
}
