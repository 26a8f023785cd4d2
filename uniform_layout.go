package physvis

import (
	"fmt"
	"reflect"
)

// UniformField records where one field of a uniform block lives in memory.
type UniformField struct {
	Name   string
	Offset uintptr
	Size   uintptr
}

// UniformLayout is the in-memory shape of a uniform block as the Go
// compiler produced it.
type UniformLayout struct {
	Fields []UniformField
	Size   uintptr
}

// DescribeUniformLayout walks a uniform block struct and records the offset
// and size of every field.
func DescribeUniformLayout(block any) UniformLayout {
	t := reflect.TypeOf(block)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		panic("uniform block must be a struct")
	}

	layout := UniformLayout{Size: t.Size()}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		layout.Fields = append(layout.Fields, UniformField{
			Name:   field.Name,
			Offset: field.Offset,
			Size:   field.Type.Size(),
		})
	}
	return layout
}

// Validate compares the layout against the shader-side offset table. It also
// rejects padding holes: the shader reads the block densely, so any gap the
// Go compiler inserts would shift every later field.
func (l UniformLayout) Validate(expected map[string]uintptr, expectedSize uintptr) error {
	if l.Size != expectedSize {
		return fmt.Errorf("uniform layout: block is %d bytes, shader expects %d", l.Size, expectedSize)
	}

	seen := map[string]bool{}
	var end uintptr
	for _, f := range l.Fields {
		want, ok := expected[f.Name]
		if !ok {
			return fmt.Errorf("uniform layout: field %s has no shader-side counterpart", f.Name)
		}
		if f.Offset != want {
			return fmt.Errorf("uniform layout: field %s at offset %d, shader expects %d", f.Name, f.Offset, want)
		}
		if f.Offset != end {
			return fmt.Errorf("uniform layout: %d bytes of padding before field %s", f.Offset-end, f.Name)
		}
		seen[f.Name] = true
		end = f.Offset + f.Size
	}
	if end != l.Size {
		return fmt.Errorf("uniform layout: %d bytes of trailing padding", l.Size-end)
	}

	for name := range expected {
		if !seen[name] {
			return fmt.Errorf("uniform layout: shader field %s missing from block", name)
		}
	}
	return nil
}
