package nexus

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestViewProjectionUBOSize(t *testing.T) {
	ubo := NewViewProjectionUBO(mgl32.Ident4())
	data := ubo.Bytes()
	if len(data) != ViewProjectionUBOSize {
		t.Fatalf("Bytes() returned %d bytes, want %d", len(data), ViewProjectionUBOSize)
	}
}

func TestViewProjectionUBOLayout(t *testing.T) {
	m := mgl32.Translate3D(1, 2, 3)
	data := NewViewProjectionUBO(m).Bytes()

	// Column major float32, matching std140 for a single mat4.
	for i := 0; i < 16; i++ {
		bits := binary.LittleEndian.Uint32(data[i*4 : i*4+4])
		got := math.Float32frombits(bits)
		if got != m[i] {
			t.Errorf("element %d = %v, want %v", i, got, m[i])
		}
	}
}
