package physvis

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// Uniforms is the per-draw parameter block shared with the shader stage.
// The shader declares the same three fields in the same order; both sides
// read the block as raw memory, so the byte layout here IS the contract:
// two column-major float32 4x4 matrices followed by an RGBA float32 vector,
// 144 bytes total, no padding.
type Uniforms struct {
	ProjectionMatrix mgl32.Mat4
	ModelViewMatrix  mgl32.Mat4
	Color            mgl32.Vec4
}

const (
	UniformsSize = 144

	uniformsProjectionOffset = 0
	uniformsModelViewOffset  = 64
	uniformsColorOffset      = 128
)

// shader-side field offsets, the table the Go struct must reproduce
var uniformsShaderOffsets = map[string]uintptr{
	"ProjectionMatrix": uniformsProjectionOffset,
	"ModelViewMatrix":  uniformsModelViewOffset,
	"Color":            uniformsColorOffset,
}

// Bytes serializes the block little-endian in field order. mgl32 matrices
// are stored column-major, which matches the shader-side matrix layout, so
// no transpose happens anywhere on the upload path.
func (u *Uniforms) Bytes() []byte {
	return PackUniforms(u)
}

// VerifyUniformsLayout checks that the Go compiler laid out Uniforms exactly
// as the shader expects. A mismatch is unrecoverable (the two sides would
// silently read each other's bytes wrong), so callers should refuse to start.
func VerifyUniformsLayout() error {
	if sz := unsafe.Sizeof(Uniforms{}); sz != UniformsSize {
		return fmt.Errorf("uniforms: struct is %d bytes, shader expects %d", sz, UniformsSize)
	}
	return DescribeUniformLayout(Uniforms{}).Validate(uniformsShaderOffsets, UniformsSize)
}
