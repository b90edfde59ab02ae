package physics

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Kind classifies a body: Dynamic bodies integrate and respond to forces,
// Fixed bodies never move (ground, walls).
type Kind int

const (
	Dynamic Kind = iota
	Fixed
)

// Sleep thresholds: a dynamic body whose combined linear+angular speed stays
// under sleepEpsilon for sleepSteps consecutive steps is put to sleep and
// skipped by integration until something wakes it (force, impulse, contact).
const (
	sleepEpsilon = 0.01
	sleepSteps   = 30
)

// Body is a simulated rigid body with a box collider. Position/orientation are
// updated by World.Step; forces and torques accumulate between steps and are
// consumed by the next step. The collider half extents are immutable after
// creation.
type Body struct {
	Position    rl.Vector3
	Orientation rl.Quaternion
	Velocity    rl.Vector3
	AngularVel  rl.Vector3
	Mass        float32
	Kind        Kind

	halfExtents rl.Vector3
	invMass     float32
	invInertia  rl.Vector3 // diagonal box inertia inverse (world-aligned approximation)

	force  rl.Vector3
	torque rl.Vector3

	asleep    bool
	lowMotion int // consecutive low-speed steps
}

// NewBody returns a body at position with the given box half extents.
// mass <= 0 defaults to 1 for dynamic bodies; fixed bodies have infinite mass
// (zero inverse mass) regardless of the argument.
func NewBody(halfExtents, position rl.Vector3, kind Kind, mass float32) *Body {
	b := &Body{
		Position:    position,
		Orientation: rl.NewQuaternion(0, 0, 0, 1),
		Mass:        mass,
		Kind:        kind,
		halfExtents: halfExtents,
	}
	if kind == Fixed {
		b.Mass = 0
		return b
	}
	if b.Mass <= 0 {
		b.Mass = 1
	}
	b.invMass = 1 / b.Mass
	// Solid box inertia: I_x = m/3 * (hy² + hz²) etc. (half extents h).
	ix := b.Mass / 3 * (halfExtents.Y*halfExtents.Y + halfExtents.Z*halfExtents.Z)
	iy := b.Mass / 3 * (halfExtents.X*halfExtents.X + halfExtents.Z*halfExtents.Z)
	iz := b.Mass / 3 * (halfExtents.X*halfExtents.X + halfExtents.Y*halfExtents.Y)
	if ix > 0 {
		b.invInertia.X = 1 / ix
	}
	if iy > 0 {
		b.invInertia.Y = 1 / iy
	}
	if iz > 0 {
		b.invInertia.Z = 1 / iz
	}
	return b
}

// HalfExtents returns the box collider half extents.
func (b *Body) HalfExtents() rl.Vector3 {
	return b.halfExtents
}

// Asleep reports whether the body is currently sleeping.
func (b *Body) Asleep() bool {
	return b.asleep
}

// Wake clears the sleep state so the next step integrates the body again.
func (b *Body) Wake() {
	b.asleep = false
	b.lowMotion = 0
}

// ApplyForce accumulates a force at the center of mass for the next step.
// Wakes the body. No effect on fixed bodies.
func (b *Body) ApplyForce(f rl.Vector3) {
	if b.Kind == Fixed {
		return
	}
	b.force = rl.Vector3Add(b.force, f)
	b.Wake()
}

// ApplyForceAt accumulates a force applied at world point at: the off-center
// part becomes torque (r × f). Wakes the body.
func (b *Body) ApplyForceAt(f, at rl.Vector3) {
	if b.Kind == Fixed {
		return
	}
	b.force = rl.Vector3Add(b.force, f)
	r := rl.Vector3Subtract(at, b.Position)
	b.torque = rl.Vector3Add(b.torque, rl.Vector3CrossProduct(r, f))
	b.Wake()
}

// ApplyImpulse changes linear velocity immediately (j scaled by inverse
// mass). Wakes the body.
func (b *Body) ApplyImpulse(j rl.Vector3) {
	if b.Kind == Fixed {
		return
	}
	b.Velocity = rl.Vector3Add(b.Velocity, rl.Vector3Scale(j, b.invMass))
	b.Wake()
}

// ApplyImpulseAt changes linear and angular velocity immediately for an
// impulse applied at world point at. Wakes the body.
func (b *Body) ApplyImpulseAt(j, at rl.Vector3) {
	if b.Kind == Fixed {
		return
	}
	b.Velocity = rl.Vector3Add(b.Velocity, rl.Vector3Scale(j, b.invMass))
	r := rl.Vector3Subtract(at, b.Position)
	w := rl.Vector3CrossProduct(r, j)
	b.AngularVel.X += w.X * b.invInertia.X
	b.AngularVel.Y += w.Y * b.invInertia.Y
	b.AngularVel.Z += w.Z * b.invInertia.Z
	b.Wake()
}

// aabb returns the world-space bounding box (center position, half extents).
// Orientation is ignored: collision stays axis-aligned, matching the box
// resolution in Step.
func (b *Body) aabb() rl.BoundingBox {
	h := b.halfExtents
	return rl.NewBoundingBox(
		rl.NewVector3(b.Position.X-h.X, b.Position.Y-h.Y, b.Position.Z-h.Z),
		rl.NewVector3(b.Position.X+h.X, b.Position.Y+h.Y, b.Position.Z+h.Z),
	)
}
