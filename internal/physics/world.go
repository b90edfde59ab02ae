package physics

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// World holds a set of bodies and runs one simulation tick per Step call:
// force/gravity integration, then AABB collision resolution. Bodies keep
// registration order so callers can sync render objects against them.
type World struct {
	Gravity rl.Vector3
	Bodies  []*Body

	stepCount uint64
}

// NewWorld returns a world with the given gravity (Y-up; pass negative Y for
// downward pull).
func NewWorld(gravity rl.Vector3) *World {
	return &World{Gravity: gravity}
}

// SetGravity replaces the gravity vector; it applies from the next step.
func (w *World) SetGravity(g rl.Vector3) {
	w.Gravity = g
}

// AddBody appends a body to the world. Order is preserved for syncing with
// scene objects.
func (w *World) AddBody(b *Body) {
	w.Bodies = append(w.Bodies, b)
}

// StepCount returns how many times Step has run.
func (w *World) StepCount() uint64 {
	return w.stepCount
}

// penetrationAxis returns the overlap amount and axis index (0=X, 1=Y, 2=Z)
// for the minimum penetration of two boxes. If no overlap, returns (0, -1).
func penetrationAxis(a, b rl.BoundingBox) (depth float32, axis int) {
	overlapX := min(a.Max.X, b.Max.X) - max(a.Min.X, b.Min.X)
	overlapY := min(a.Max.Y, b.Max.Y) - max(a.Min.Y, b.Min.Y)
	overlapZ := min(a.Max.Z, b.Max.Z) - max(a.Min.Z, b.Min.Z)
	if overlapX <= 0 || overlapY <= 0 || overlapZ <= 0 {
		return 0, -1
	}
	depth = overlapX
	axis = 0
	if overlapY < depth {
		depth = overlapY
		axis = 1
	}
	if overlapZ < depth {
		depth = overlapZ
		axis = 2
	}
	return depth, axis
}

// axisComponent returns the given component (0=X, 1=Y, 2=Z) of v.
func axisComponent(v rl.Vector3, axis int) float32 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// addAxis adds delta to the given component of v and returns the result.
func addAxis(v rl.Vector3, axis int, delta float32) rl.Vector3 {
	switch axis {
	case 0:
		v.X += delta
	case 1:
		v.Y += delta
	default:
		v.Z += delta
	}
	return v
}

// zeroAxis zeroes the given component of v and returns the result.
func zeroAxis(v rl.Vector3, axis int) rl.Vector3 {
	return addAxis(v, axis, -axisComponent(v, axis))
}

// Step advances the simulation by dt seconds: consume accumulated forces,
// apply gravity, integrate velocities then positions (semi-implicit Euler),
// integrate orientation from angular velocity, then resolve AABB overlaps.
// Sleeping bodies are skipped by integration but still act as colliders.
func (w *World) Step(dt float32) {
	for _, b := range w.Bodies {
		if b.Kind == Fixed || b.asleep {
			b.force = rl.Vector3{}
			b.torque = rl.Vector3{}
			continue
		}
		b.Velocity = rl.Vector3Add(b.Velocity, rl.Vector3Scale(w.Gravity, dt))
		b.Velocity = rl.Vector3Add(b.Velocity, rl.Vector3Scale(b.force, b.invMass*dt))
		b.AngularVel.X += b.torque.X * b.invInertia.X * dt
		b.AngularVel.Y += b.torque.Y * b.invInertia.Y * dt
		b.AngularVel.Z += b.torque.Z * b.invInertia.Z * dt
		b.force = rl.Vector3{}
		b.torque = rl.Vector3{}

		b.Position = rl.Vector3Add(b.Position, rl.Vector3Scale(b.Velocity, dt))
		integrateOrientation(b, dt)
	}

	// AABB collision: resolve overlapping pairs along the minimum penetration
	// axis, signed by the center offset, split by mass ratio. The velocity
	// component along the resolved axis is zeroed (no restitution).
	for i := 0; i < len(w.Bodies); i++ {
		bi := w.Bodies[i]
		for j := i + 1; j < len(w.Bodies); j++ {
			bj := w.Bodies[j]
			if bi.Kind == Fixed && bj.Kind == Fixed {
				continue
			}
			depth, axis := penetrationAxis(bi.aabb(), bj.aabb())
			if axis < 0 {
				continue
			}
			// Push j toward the side its center already sits on.
			dir := float32(1)
			if axisComponent(bj.Position, axis) < axisComponent(bi.Position, axis) {
				dir = -1
			}
			var moveI, moveJ float32
			switch {
			case bi.Kind == Fixed:
				moveJ = dir * depth
			case bj.Kind == Fixed:
				moveI = -dir * depth
			default:
				total := bi.Mass + bj.Mass
				moveI = -dir * depth * (bj.Mass / total)
				moveJ = dir * depth * (bi.Mass / total)
			}
			if moveI != 0 {
				bi.Position = addAxis(bi.Position, axis, moveI)
				bi.Velocity = zeroAxis(bi.Velocity, axis)
				if bi.asleep {
					bi.Wake()
				}
			}
			if moveJ != 0 {
				bj.Position = addAxis(bj.Position, axis, moveJ)
				bj.Velocity = zeroAxis(bj.Velocity, axis)
				if bj.asleep {
					bj.Wake()
				}
			}
		}
	}

	for _, b := range w.Bodies {
		if b.Kind == Fixed || b.asleep {
			continue
		}
		speed := rl.Vector3Length(b.Velocity) + rl.Vector3Length(b.AngularVel)
		if speed < sleepEpsilon {
			b.lowMotion++
			if b.lowMotion >= sleepSteps {
				b.asleep = true
			}
		} else {
			b.lowMotion = 0
		}
	}

	w.stepCount++
}

// integrateOrientation advances b.Orientation by its angular velocity over dt:
// q += 0.5 * (ω, 0) ⊗ q * dt, renormalized.
func integrateOrientation(b *Body, dt float32) {
	wx, wy, wz := b.AngularVel.X, b.AngularVel.Y, b.AngularVel.Z
	if wx == 0 && wy == 0 && wz == 0 {
		return
	}
	q := b.Orientation
	half := dt * 0.5
	b.Orientation = rl.QuaternionNormalize(rl.NewQuaternion(
		q.X+half*(wx*q.W+wy*q.Z-wz*q.Y),
		q.Y+half*(wy*q.W+wz*q.X-wx*q.Z),
		q.Z+half*(wz*q.W+wx*q.Y-wy*q.X),
		q.W-half*(wx*q.X+wy*q.Y+wz*q.Z),
	))
}
