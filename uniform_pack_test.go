package physvis

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestPackUniformsNestedStruct(t *testing.T) {
	type inner struct {
		Intensity float32
		Steps     uint32
	}
	type block struct {
		Direction mgl32.Vec3
		Params    inner
	}

	b := block{
		Direction: mgl32.Vec3{1, 2, 3},
		Params:    inner{Intensity: 0.5, Steps: 7},
	}
	data := PackUniforms(&b)
	if len(data) != 20 {
		t.Fatalf("packed %d bytes, want 20", len(data))
	}

	want := new(bytes.Buffer)
	for _, f := range []float32{1, 2, 3, 0.5} {
		binary.Write(want, binary.LittleEndian, f)
	}
	binary.Write(want, binary.LittleEndian, uint32(7))
	if !bytes.Equal(data, want.Bytes()) {
		t.Errorf("packed bytes differ:\n got %v\nwant %v", data, want.Bytes())
	}
}

func TestPackUniformsStructSlice(t *testing.T) {
	type light struct {
		Color mgl32.Vec4
	}
	lights := []light{
		{Color: mgl32.Vec4{1, 0, 0, 1}},
		{Color: mgl32.Vec4{0, 1, 0, 1}},
	}
	data := PackUniforms(lights)
	if len(data) != 32 {
		t.Errorf("packed %d bytes, want 32", len(data))
	}
}

func TestPackUniformsRejects64BitFields(t *testing.T) {
	type block struct {
		Offset float64
	}
	defer func() {
		if recover() == nil {
			t.Error("expected panic for float64 field")
		}
	}()
	PackUniforms(block{})
}
