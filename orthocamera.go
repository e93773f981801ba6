package nexus

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// OrthoCamera is a movable orthographic camera with a fixed orientation
// (forward -Z, up +Y, right +X). The view volume is a box of the
// configured width and height centered on the camera position, extending
// from the near to the far plane along the view direction.
type OrthoCamera struct {
	cameraBase

	position PendingUpdate[mgl32.Vec3]
	width    PendingUpdate[float32]
	height   PendingUpdate[float32]
	near     PendingUpdate[float32]
	far      PendingUpdate[float32]
}

var _ ICamera = (*OrthoCamera)(nil)

// NewOrthoCamera creates an inert OrthoCamera at the origin with a 10x10
// view volume and a 0.1..1000 depth range.
func NewOrthoCamera(gpu ResourceAllocator) *OrthoCamera {
	c := &OrthoCamera{
		position: NewPendingUpdate(mgl32.Vec3{}),
		width:    NewPendingUpdate[float32](10),
		height:   NewPendingUpdate[float32](10),
		near:     NewPendingUpdate[float32](0.1),
		far:      NewPendingUpdate[float32](1000),
	}
	c.init(gpu, c)
	return c
}

func (c *OrthoCamera) SetPosition(p mgl32.Vec3) { c.position.Set(p) }
func (c *OrthoCamera) SetWidth(w float32)       { c.width.Set(w) }
func (c *OrthoCamera) SetHeight(h float32)      { c.height.Set(h) }
func (c *OrthoCamera) SetNear(n float32)        { c.near.Set(n) }
func (c *OrthoCamera) SetFar(f float32)         { c.far.Set(f) }

func (c *OrthoCamera) Width() float32  { return c.width.Get() }
func (c *OrthoCamera) Height() float32 { return c.height.Get() }
func (c *OrthoCamera) Near() float32   { return c.near.Get() }
func (c *OrthoCamera) Far() float32    { return c.far.Get() }

func (c *OrthoCamera) ApplyUpdates(deltaTime float32) {
	c.applyCommon()
	if c.position.Apply() {
		c.markViewDirty()
	}
	changed := c.width.Apply()
	changed = c.height.Apply() || changed
	changed = c.near.Apply() || changed
	changed = c.far.Apply() || changed
	if changed {
		c.markProjectionDirty()
	}
}

func (c *OrthoCamera) computeView() mgl32.Mat4 {
	p := c.position.Get()
	return mgl32.Translate3D(-p.X(), -p.Y(), -p.Z())
}

func (c *OrthoCamera) computeProjection() mgl32.Mat4 {
	w := c.width.Get()
	h := c.height.Get()
	return mgl32.Ortho(-w/2, w/2, -h/2, h/2, c.near.Get(), c.far.Get())
}

func (c *OrthoCamera) Position() mgl32.Vec3 { return c.position.Get() }
func (c *OrthoCamera) Forward() mgl32.Vec3  { return mgl32.Vec3{0, 0, -1} }
func (c *OrthoCamera) Up() mgl32.Vec3       { return mgl32.Vec3{0, 1, 0} }
func (c *OrthoCamera) Right() mgl32.Vec3    { return mgl32.Vec3{1, 0, 0} }

// IsVisible projects the bounds onto the camera's right/up/forward axes
// and tests axis aligned overlap against the camera's half extents.
func (c *OrthoCamera) IsVisible(b Bounds) bool {
	rel := b.Center.Sub(c.position.Get())

	if math32.Abs(rel.X()) > c.width.Get()/2+b.HalfExtent.X() {
		return false
	}
	if math32.Abs(rel.Y()) > c.height.Get()/2+b.HalfExtent.Y() {
		return false
	}

	// Depth along the view direction: the volume spans near..far in
	// front of the camera.
	near := c.near.Get()
	far := c.far.Get()
	depth := -rel.Z()
	center := (near + far) / 2
	halfDepth := (far - near) / 2
	return math32.Abs(depth-center) <= halfDepth+b.HalfExtent.Z()
}

// ScreenToWorldRay maps the screen point onto the camera's view plane and
// fires a ray along the view direction.
func (c *OrthoCamera) ScreenToWorldRay(x, y, screenW, screenH float32) Ray {
	p := c.position.Get()
	nx := x/screenW*2 - 1
	ny := 1 - y/screenH*2
	origin := mgl32.Vec3{
		p.X() + nx*c.width.Get()/2,
		p.Y() + ny*c.height.Get()/2,
		p.Z() - c.near.Get(),
	}
	return Ray{Origin: origin, Direction: mgl32.Vec3{0, 0, -1}}
}

// WorldToScreenPoint maps a world point to screen coordinates with a top
// left origin.
func (c *OrthoCamera) WorldToScreenPoint(world mgl32.Vec3, screenW, screenH float32) (float32, float32) {
	rel := world.Sub(c.position.Get())
	nx := rel.X() / (c.width.Get() / 2)
	ny := rel.Y() / (c.height.Get() / 2)
	return (nx + 1) / 2 * screenW, (1 - ny) / 2 * screenH
}
