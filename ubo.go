package nexus

import (
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// ViewProjectionUBO is the uniform block bound at set=0/binding=0 of every
// camera aware shader. Its layout is a hard compatibility contract with the
// shader binary: exactly one column major 4x4 float matrix, 64 bytes,
// tightly packed. Adding a field requires a coordinated shader update.
type ViewProjectionUBO struct {
	ViewProjection mgl32.Mat4
}

// ViewProjectionUBOSize is the byte size of the uniform block.
const ViewProjectionUBOSize = 64

// The shader contract breaks silently if padding ever sneaks in.
var _ [ViewProjectionUBOSize]byte = [unsafe.Sizeof(ViewProjectionUBO{})]byte{}

// NewViewProjectionUBO builds the uniform block from a combined
// view-projection matrix.
func NewViewProjectionUBO(viewProjection mgl32.Mat4) *ViewProjectionUBO {
	return &ViewProjectionUBO{ViewProjection: viewProjection}
}

// Bytes returns the raw 64 byte representation suitable for a direct
// uniform buffer upload.
func (u *ViewProjectionUBO) Bytes() []byte {
	return ToBytes(unsafe.Pointer(&u.ViewProjection[0]), ViewProjectionUBOSize)
}

// ToBytes will take an unsafe.Pointer and length in bytes and convert it
// to a byte slice
func ToBytes(ptr unsafe.Pointer, lenInBytes int) []byte {
	const m = 0x7fffffff
	return (*[m]byte)(ptr)[:lenInBytes]
}
