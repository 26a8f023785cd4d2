package physvis

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestIdentityTransform(t *testing.T) {
	tr := NewTransform()
	if tr.ModelMatrix() != mgl32.Ident4() {
		t.Errorf("identity transform produced %v", tr.ModelMatrix())
	}
}

func TestModelMatrixComposesTRS(t *testing.T) {
	tr := &TransformComponent{
		Position: mgl32.Vec3{1, 2, 3},
		Rotation: mgl32.QuatRotate(0.5, mgl32.Vec3{0, 1, 0}),
		Scale:    mgl32.Vec3{2, 2, 2},
	}

	want := mgl32.Translate3D(1, 2, 3).
		Mul4(tr.Rotation.Mat4()).
		Mul4(mgl32.Scale3D(2, 2, 2))
	if tr.ModelMatrix() != want {
		t.Error("model matrix is not T * R * S")
	}

	// the origin of object space lands at Position
	origin := tr.ModelMatrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	if !vec3Near(origin.Vec3(), tr.Position) {
		t.Errorf("object origin at %v, want %v", origin.Vec3(), tr.Position)
	}
}

func TestModelViewComposition(t *testing.T) {
	cam := NewCameraState()
	tr := NewTransform()
	tr.Position = mgl32.Vec3{0, 0, 10}

	mv := ModelView(cam.ViewMatrix(), tr)
	if mv != cam.ViewMatrix().Mul4(tr.ModelMatrix()) {
		t.Error("ModelView is not view * model")
	}
}
