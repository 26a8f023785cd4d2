package physvis

import (
	"github.com/go-gl/mathgl/mgl32"
)

// RigidBody is the simulated object whose transform feeds the per-frame
// model-view matrix.
type RigidBody struct {
	Transform       TransformComponent
	Velocity        mgl32.Vec3
	AngularVelocity mgl32.Vec3
	Mass            float32
	GravityScale    float32
	LinearDamping   float32
}

func NewRigidBody(mass float32) *RigidBody {
	return &RigidBody{
		Transform:    *NewTransform(),
		Mass:         mass,
		GravityScale: 1.0,
	}
}

func (rb *RigidBody) ApplyImpulse(impulse mgl32.Vec3) {
	if rb.Mass > 0 {
		rb.Velocity = rb.Velocity.Add(impulse.Mul(1.0 / rb.Mass))
	} else {
		rb.Velocity = rb.Velocity.Add(impulse)
	}
}

// Step integrates one frame with semi-implicit Euler.
func (rb *RigidBody) Step(gravity mgl32.Vec3, dt float32) {
	if dt <= 0 || dt > 1.0 { // Safety cap for dt
		return
	}

	rb.Velocity = rb.Velocity.Add(gravity.Mul(rb.GravityScale * dt))
	if rb.LinearDamping > 0 {
		rb.Velocity = rb.Velocity.Mul(1.0 / (1.0 + rb.LinearDamping*dt))
	}
	rb.Transform.Position = rb.Transform.Position.Add(rb.Velocity.Mul(dt))

	if speed := rb.AngularVelocity.Len(); speed > 0 {
		axis := rb.AngularVelocity.Mul(1.0 / speed)
		spin := mgl32.QuatRotate(speed*dt, axis)
		rb.Transform.Rotation = spin.Mul(rb.Transform.Rotation).Normalize()
	}
}
