package physvis

import (
	"github.com/go-gl/mathgl/mgl32"
)

// TransformComponent places an object in world space.
type TransformComponent struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
}

func NewTransform() *TransformComponent {
	return &TransformComponent{
		Position: mgl32.Vec3{0, 0, 0},
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

// ModelMatrix returns the object-to-world transform, M = T * R * S.
func (t *TransformComponent) ModelMatrix() mgl32.Mat4 {
	translate := mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z())
	rotate := t.Rotation.Mat4()
	scale := mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z())

	return translate.Mul4(rotate).Mul4(scale)
}

// ModelView composes the object-to-camera transform the shader consumes.
func ModelView(view mgl32.Mat4, t *TransformComponent) mgl32.Mat4 {
	return view.Mul4(t.ModelMatrix())
}
