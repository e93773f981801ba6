package nexus

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Render pass mask categories. A camera only processes draw commands whose
// mask intersects its own RenderPassMask.
const (
	RenderPassMain  uint32 = 1 << 0
	RenderPassUI    uint32 = 1 << 1
	RenderPassDebug uint32 = 1 << 2

	RenderPassAll uint32 = ^uint32(0)
)

// Extent2D is a viewport size in pixels.
type Extent2D struct {
	Width  uint32
	Height uint32
}

// Viewport is the pixel space rectangle a camera renders into, together
// with the clear color and render pass mask for that pass. It is a pure
// value: cameras produce a fresh one per render pass invocation and it is
// never mutated. Equality is structural.
type Viewport struct {
	Extent         Extent2D
	ClearColor     mgl32.Vec4
	RenderPassMask uint32
}

// ScreenRegion is a camera's normalized region of the screen, with origin
// and size expressed as fractions of the full framebuffer (0..1).
type ScreenRegion struct {
	X      float32
	Y      float32
	Width  float32
	Height float32
}

// FullScreen is the region covering the whole framebuffer.
var FullScreen = ScreenRegion{X: 0, Y: 0, Width: 1, Height: 1}
