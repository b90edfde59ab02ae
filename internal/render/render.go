package render

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"physics-sandbox/internal/primitives"
	"physics-sandbox/internal/scene"
)

const (
	gridExtent     = 30
	gridMinorStep  = 1
	gridMajorStep  = 10
	gridMinorAlpha = 50
	gridMajorAlpha = 120
	axisLineAlpha  = 220
)

// Renderer holds the 3D camera and draws the scene each frame. Update runs
// camera logic (free camera); Draw renders between BeginMode3D and EndMode3D.
// Based on raylib examples/core/core_3d_camera_free.
type Renderer struct {
	Camera      rl.Camera3D
	GridVisible bool

	prims      *primitives.Registry
	lightDir   rl.Vector3
	cursorDone bool
}

// New returns a renderer with a perspective camera looking at the origin.
// Camera: position (12,8,12), target (0,1,0), up (0,1,0), fovy 45°. Grid is
// visible by default.
func New() *Renderer {
	r := &Renderer{
		prims:    primitives.NewRegistry(),
		lightDir: rl.Vector3Normalize(rl.NewVector3(0.5, 1, 0.5)),
	}
	r.Camera.Position = rl.NewVector3(12, 8, 12)
	r.Camera.Target = rl.NewVector3(0, 1, 0)
	r.Camera.Up = rl.NewVector3(0, 1, 0)
	r.Camera.Fovy = 45
	r.Camera.Projection = rl.CameraPerspective
	r.GridVisible = true
	return r
}

// SetGridVisible sets whether the editor grid is drawn.
func (r *Renderer) SetGridVisible(visible bool) {
	r.GridVisible = visible
}

// Update runs once per frame. Uses raylib UpdateCamera with CameraFree so the
// user can move the camera with mouse (zoom, pan) and WASD. Cursor is
// disabled so the mouse is captured for camera control.
func (r *Renderer) Update() {
	if !r.cursorDone {
		rl.DisableCursor()
		r.cursorDone = true
	}
	rl.UpdateCamera(&r.Camera, rl.CameraFree)
}

// Draw renders the grid and every scene entry. Simulated entries read their
// transform sink (written by the stepper earlier this frame, after the
// world advanced); static entries use their fixed position. Call after
// ClearBackground and before 2D overlays.
func (r *Renderer) Draw(scn *scene.Scene) {
	rl.BeginMode3D(r.Camera)
	if r.GridVisible {
		drawEditorGrid()
	}
	r.prims.SetView(r.Camera.Position, r.lightDir)
	scn.Each(func(e *scene.Entry) {
		pos := e.Visual.Position
		rot := rl.NewQuaternion(0, 0, 0, 1)
		if e.Simulated() {
			pos = e.Handle.Sink.Position
			rot = e.Handle.Sink.Rotation
		}
		r.prims.Draw(e.Visual.Prim, pos, rot, e.Visual.Size, e.Visual.Color)
	})
	rl.EndMode3D()
}

// Unload releases cached meshes and materials. Call once at teardown, before
// the window closes.
func (r *Renderer) Unload() {
	r.prims.Unload()
}

// drawEditorGrid draws a Unity-style grid on the XZ plane with major/minor
// lines and axis lines (X=red, Y=green, Z=blue). Reuses start/end vectors to
// avoid per-frame allocations in the hot loop.
func drawEditorGrid() {
	minor := rl.NewColor(128, 128, 128, gridMinorAlpha)
	major := rl.NewColor(160, 160, 160, gridMajorAlpha)
	axisX := rl.NewColor(220, 80, 80, axisLineAlpha)
	axisY := rl.NewColor(80, 220, 80, axisLineAlpha)
	axisZ := rl.NewColor(80, 80, 220, axisLineAlpha)

	var start, end rl.Vector3
	for x := -gridExtent; x <= gridExtent; x += gridMinorStep {
		c := major
		if x%gridMajorStep != 0 {
			c = minor
		}
		start.X, start.Y, start.Z = float32(x), 0, float32(-gridExtent)
		end.X, end.Y, end.Z = float32(x), 0, float32(gridExtent)
		rl.DrawLine3D(start, end, c)
	}
	for z := -gridExtent; z <= gridExtent; z += gridMinorStep {
		c := major
		if z%gridMajorStep != 0 {
			c = minor
		}
		start.X, start.Y, start.Z = float32(-gridExtent), 0, float32(z)
		end.X, end.Y, end.Z = float32(gridExtent), 0, float32(z)
		rl.DrawLine3D(start, end, c)
	}

	start.X, start.Y, start.Z = float32(-gridExtent), 0, 0
	end.X, end.Y, end.Z = float32(gridExtent), 0, 0
	rl.DrawLine3D(start, end, axisX)
	start.X, start.Y, start.Z = 0, float32(-gridExtent), 0
	end.X, end.Y, end.Z = 0, float32(gridExtent), 0
	rl.DrawLine3D(start, end, axisY)
	start.X, start.Y, start.Z = 0, 0, float32(-gridExtent)
	end.X, end.Y, end.Z = 0, 0, float32(gridExtent)
	rl.DrawLine3D(start, end, axisZ)
}
