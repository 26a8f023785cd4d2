package physvis

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"reflect"
)

// PackUniforms serializes a uniform block to the little-endian byte stream
// the GPU reads. Matrices and vectors are fixed float32 arrays, so packing
// them element by element reproduces the column-major memory image.
func PackUniforms(block any) []byte {
	val := reflect.ValueOf(block)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	buf := new(bytes.Buffer)
	packUniformValue(val, buf)
	return buf.Bytes()
}

func packUniformValue(field reflect.Value, buf *bytes.Buffer) {
	switch field.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < field.Len(); i++ {
			elem := field.Index(i)
			if elem.Kind() == reflect.Ptr {
				elem = elem.Elem()
			}
			if elem.Kind() == reflect.Struct {
				packUniformValue(elem, buf)
			} else {
				if err := binary.Write(buf, binary.LittleEndian, elem.Interface()); err != nil {
					panic(fmt.Errorf("failed to pack slice element: %w", err))
				}
			}
		}

	case reflect.Struct:
		for i := 0; i < field.NumField(); i++ {
			packUniformValue(field.Field(i), buf)
		}

	case reflect.Uint8, reflect.Uint16, reflect.Uint32,
		reflect.Int8, reflect.Int16, reflect.Int32,
		reflect.Float32:
		if err := binary.Write(buf, binary.LittleEndian, field.Interface()); err != nil {
			panic(fmt.Errorf("failed to pack scalar field: %w", err))
		}

	case reflect.Float64, reflect.Int64, reflect.Uint64:
		// the shader side has no 8-byte scalar types
		panic(fmt.Errorf("64-bit uniform field %v has no shader counterpart", field.Type()))

	default:
		panic(fmt.Errorf("unsupported uniform type: %v", field.Type()))
	}
}
