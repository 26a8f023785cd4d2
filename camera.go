package physvis

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

type CameraState struct {
	Position mgl32.Vec3
	Yaw      float32
	Pitch    float32
	FovY     float32 // degrees
	Near     float32
	Far      float32
}

func NewCameraState() *CameraState {
	return &CameraState{
		Position: mgl32.Vec3{0, 2, 20},
		Yaw:      0,
		Pitch:    0,
		FovY:     60,
		Near:     0.1,
		Far:      1000,
	}
}

func (c *CameraState) GetForward() mgl32.Vec3 {
	// Y-up: Forward in XZ plane, Y for pitch
	return mgl32.Vec3{
		float32(math.Cos(float64(c.Pitch)) * math.Sin(float64(c.Yaw))),
		float32(math.Sin(float64(c.Pitch))),
		float32(-math.Cos(float64(c.Pitch)) * math.Cos(float64(c.Yaw))),
	}
}

func (c *CameraState) GetRight() mgl32.Vec3 {
	// Y-up: Right in XZ plane
	return mgl32.Vec3{
		float32(math.Cos(float64(c.Yaw))),
		0,
		float32(math.Sin(float64(c.Yaw))),
	}
}

func (c *CameraState) ViewMatrix() mgl32.Mat4 {
	forward := c.GetForward()
	eye := c.Position
	target := eye.Add(forward)
	up := mgl32.Vec3{0, 1, 0} // Y-up
	return mgl32.LookAtV(eye, target, up)
}

func (c *CameraState) ProjectionMatrix(aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FovY), aspect, c.Near, c.Far)
}

// BuildUniforms assembles the per-draw block for one object under this
// camera. Called once per frame with the current transforms and tint.
func (c *CameraState) BuildUniforms(t *TransformComponent, tint mgl32.Vec4, aspect float32) Uniforms {
	return Uniforms{
		ProjectionMatrix: c.ProjectionMatrix(aspect),
		ModelViewMatrix:  ModelView(c.ViewMatrix(), t),
		Color:            tint,
	}
}
