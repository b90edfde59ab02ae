package physics

import (
	"math"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const dt = float32(1.0 / 60.0)

func TestStepIntegratesGravity(t *testing.T) {
	w := NewWorld(rl.NewVector3(0, -9.81, 0))
	b := NewBody(rl.NewVector3(0.5, 0.5, 0.5), rl.NewVector3(0, 5, 0), Dynamic, 1)
	w.AddBody(b)

	w.Step(dt)

	wantVy := float32(-9.81) * dt
	if math.Abs(float64(b.Velocity.Y-wantVy)) > 1e-6 {
		t.Errorf("velocity.y = %v, want %v", b.Velocity.Y, wantVy)
	}
	wantY := 5 + wantVy*dt
	if math.Abs(float64(b.Position.Y-wantY)) > 1e-5 {
		t.Errorf("position.y = %v, want %v", b.Position.Y, wantY)
	}
	if w.StepCount() != 1 {
		t.Errorf("step count = %d, want 1", w.StepCount())
	}
}

func TestFixedBodyNeverMoves(t *testing.T) {
	w := NewWorld(rl.NewVector3(0, -9.81, 0))
	b := NewBody(rl.NewVector3(10, 0.25, 10), rl.NewVector3(0, 2, 0), Fixed, 0)
	w.AddBody(b)
	b.ApplyForce(rl.NewVector3(100, 100, 100))
	b.ApplyImpulse(rl.NewVector3(0, 50, 0))

	for i := 0; i < 120; i++ {
		w.Step(dt)
	}

	if b.Position != rl.NewVector3(0, 2, 0) {
		t.Errorf("fixed body moved to %v", b.Position)
	}
	if b.Velocity != (rl.Vector3{}) {
		t.Errorf("fixed body gained velocity %v", b.Velocity)
	}
}

func TestForceConsumedByNextStep(t *testing.T) {
	w := NewWorld(rl.Vector3{}) // no gravity, isolate the force
	b := NewBody(rl.NewVector3(0.5, 0.5, 0.5), rl.Vector3{}, Dynamic, 2)
	w.AddBody(b)
	b.ApplyForce(rl.NewVector3(12, 0, 0))

	w.Step(dt)
	wantVx := 12.0 / 2 * dt // a = F/m
	if math.Abs(float64(b.Velocity.X-wantVx)) > 1e-6 {
		t.Errorf("velocity.x after forced step = %v, want %v", b.Velocity.X, wantVx)
	}

	// Accumulator must be cleared: a second step adds nothing.
	w.Step(dt)
	if math.Abs(float64(b.Velocity.X-wantVx)) > 1e-6 {
		t.Errorf("velocity.x after unforced step = %v, force accumulator not cleared", b.Velocity.X)
	}
}

func TestOffCenterForceSpinsBody(t *testing.T) {
	w := NewWorld(rl.Vector3{})
	b := NewBody(rl.NewVector3(0.5, 0.5, 0.5), rl.Vector3{}, Dynamic, 1)
	w.AddBody(b)

	// Push +X at a point above the center: torque around -Z.
	b.ApplyForceAt(rl.NewVector3(4, 0, 0), rl.NewVector3(0, 0.5, 0))
	w.Step(dt)

	if b.AngularVel.Z >= 0 {
		t.Errorf("angular velocity.z = %v, want negative", b.AngularVel.Z)
	}
	if b.Velocity.X <= 0 {
		t.Errorf("linear velocity.x = %v, want positive", b.Velocity.X)
	}
	if b.Orientation == rl.NewQuaternion(0, 0, 0, 1) {
		t.Error("orientation unchanged after spinning step")
	}
	q := b.Orientation
	l := math.Sqrt(float64(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W))
	if math.Abs(l-1) > 1e-4 {
		t.Errorf("orientation not normalized: |q| = %v", l)
	}
}

func TestPenetrationAxis(t *testing.T) {
	box := func(cx, cy, cz, hx, hy, hz float32) rl.BoundingBox {
		return rl.NewBoundingBox(
			rl.NewVector3(cx-hx, cy-hy, cz-hz),
			rl.NewVector3(cx+hx, cy+hy, cz+hz),
		)
	}
	tests := []struct {
		name      string
		a, b      rl.BoundingBox
		wantAxis  int
		wantDepth float32
	}{
		{"separated", box(0, 0, 0, 0.5, 0.5, 0.5), box(5, 0, 0, 0.5, 0.5, 0.5), -1, 0},
		{"touching is not overlap", box(0, 0, 0, 0.5, 0.5, 0.5), box(1, 0, 0, 0.5, 0.5, 0.5), -1, 0},
		{"shallow y", box(0, 0, 0, 10, 0.25, 10), box(0, 0.7, 0, 0.5, 0.5, 0.5), 1, 0.05},
		{"shallow x", box(0, 0, 0, 0.5, 0.5, 0.5), box(0.9, 0, 0, 0.5, 0.5, 0.5), 0, 0.1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			depth, axis := penetrationAxis(tt.a, tt.b)
			if axis != tt.wantAxis {
				t.Fatalf("axis = %d, want %d", axis, tt.wantAxis)
			}
			if axis >= 0 && math.Abs(float64(depth-tt.wantDepth)) > 1e-5 {
				t.Errorf("depth = %v, want %v", depth, tt.wantDepth)
			}
		})
	}
}

func TestResolutionPushesDynamicOutOfFixed(t *testing.T) {
	w := NewWorld(rl.NewVector3(0, -9.81, 0))
	ground := NewBody(rl.NewVector3(10, 0.25, 10), rl.Vector3{}, Fixed, 0)
	box := NewBody(rl.NewVector3(0.5, 0.5, 0.5), rl.NewVector3(0, 0.7, 0), Dynamic, 1)
	w.AddBody(ground)
	w.AddBody(box)

	w.Step(dt)

	// Overlapping from above: pushed up to exact contact, not down into the
	// ground, and the vertical velocity is cancelled.
	wantY := float32(0.25 + 0.5)
	if math.Abs(float64(box.Position.Y-wantY)) > 1e-4 {
		t.Errorf("box resolved to y=%v, want %v", box.Position.Y, wantY)
	}
	if box.Velocity.Y != 0 {
		t.Errorf("vertical velocity after contact = %v, want 0", box.Velocity.Y)
	}
	if ground.Position != (rl.Vector3{}) {
		t.Errorf("fixed ground moved to %v", ground.Position)
	}
}

func TestResolutionSplitsByMass(t *testing.T) {
	w := NewWorld(rl.Vector3{})
	heavy := NewBody(rl.NewVector3(0.5, 0.5, 0.5), rl.Vector3{}, Dynamic, 3)
	light := NewBody(rl.NewVector3(0.5, 0.5, 0.5), rl.NewVector3(0.9, 0, 0), Dynamic, 1)
	w.AddBody(heavy)
	w.AddBody(light)

	w.Step(dt)

	// Overlap 0.1 on X; the light body takes 3/4 of the correction.
	if math.Abs(float64(heavy.Position.X - -0.025)) > 1e-5 {
		t.Errorf("heavy pushed to x=%v, want -0.025", heavy.Position.X)
	}
	if math.Abs(float64(light.Position.X-0.975)) > 1e-5 {
		t.Errorf("light pushed to x=%v, want 0.975", light.Position.X)
	}
}

func TestSleepAndWake(t *testing.T) {
	w := NewWorld(rl.Vector3{}) // no gravity: a still body accumulates low motion
	b := NewBody(rl.NewVector3(0.5, 0.5, 0.5), rl.Vector3{}, Dynamic, 1)
	w.AddBody(b)

	for i := 0; i < sleepSteps; i++ {
		if b.Asleep() {
			t.Fatalf("slept early at step %d", i)
		}
		w.Step(dt)
	}
	if !b.Asleep() {
		t.Fatal("still body never slept")
	}

	b.ApplyForce(rl.NewVector3(1, 0, 0))
	if b.Asleep() {
		t.Fatal("force did not wake the body")
	}
}
