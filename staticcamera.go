package nexus

import (
	"github.com/go-gl/mathgl/mgl32"
)

// StaticCamera renders 2D/UI content. Its orientation is fixed (forward
// -Z, up +Y, right +X), the view matrix is the identity and the
// projection maps pixel coordinates with a top left origin straight to
// normalized device coordinates, so UI layout coordinates can be used as
// world coordinates unchanged.
type StaticCamera struct {
	cameraBase
}

var _ ICamera = (*StaticCamera)(nil)

// NewStaticCamera creates an inert StaticCamera covering the full screen.
// Viewport dimensions must be supplied through SetViewportSize before the
// projection is meaningful.
func NewStaticCamera(gpu ResourceAllocator) *StaticCamera {
	c := &StaticCamera{}
	c.init(gpu, c)
	return c
}

func (c *StaticCamera) ApplyUpdates(deltaTime float32) {
	c.applyCommon()
}

func (c *StaticCamera) computeView() mgl32.Mat4 {
	return mgl32.Ident4()
}

// computeProjection maps (0,0)..(viewportW,viewportH) to NDC with the
// origin at the top left, matching Vulkan's downward Y clip convention.
func (c *StaticCamera) computeProjection() mgl32.Mat4 {
	w := c.viewportW
	h := c.viewportH
	if w <= 0 || h <= 0 {
		return mgl32.Ident4()
	}
	m := mgl32.Ident4()
	m[0] = 2 / w
	m[5] = 2 / h
	m[12] = -1
	m[13] = -1
	return m
}

func (c *StaticCamera) Position() mgl32.Vec3 { return mgl32.Vec3{} }
func (c *StaticCamera) Forward() mgl32.Vec3  { return mgl32.Vec3{0, 0, -1} }
func (c *StaticCamera) Up() mgl32.Vec3       { return mgl32.Vec3{0, 1, 0} }
func (c *StaticCamera) Right() mgl32.Vec3    { return mgl32.Vec3{1, 0, 0} }

// IsVisible tests the bounds against the camera's pixel rectangle on the
// X/Y axes; depth never culls UI content.
func (c *StaticCamera) IsVisible(b Bounds) bool {
	if b.Center.X()+b.HalfExtent.X() < 0 || b.Center.X()-b.HalfExtent.X() > c.viewportW {
		return false
	}
	if b.Center.Y()+b.HalfExtent.Y() < 0 || b.Center.Y()-b.HalfExtent.Y() > c.viewportH {
		return false
	}
	return true
}

// ScreenToWorldRay maps the screen point to the camera's pixel space and
// returns a ray firing along the view direction. A ray is always
// returned, even for points outside the viewport.
func (c *StaticCamera) ScreenToWorldRay(x, y, screenW, screenH float32) Ray {
	wx := x
	wy := y
	if screenW > 0 && c.viewportW > 0 {
		wx = x / screenW * c.viewportW
	}
	if screenH > 0 && c.viewportH > 0 {
		wy = y / screenH * c.viewportH
	}
	return Ray{
		Origin:    mgl32.Vec3{wx, wy, 0},
		Direction: mgl32.Vec3{0, 0, -1},
	}
}

// WorldToScreenPoint maps a pixel space world point back to screen
// coordinates, scaling between the camera's viewport and the given screen
// dimensions.
func (c *StaticCamera) WorldToScreenPoint(world mgl32.Vec3, screenW, screenH float32) (float32, float32) {
	sx := world.X()
	sy := world.Y()
	if c.viewportW > 0 && screenW > 0 {
		sx = world.X() / c.viewportW * screenW
	}
	if c.viewportH > 0 && screenH > 0 {
		sy = world.Y() / c.viewportH * screenH
	}
	return sx, sy
}
