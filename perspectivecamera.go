package nexus

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// PerspectiveCamera is a fully movable perspective camera. Forward and up
// can be set independently; the right vector is derived via cross product
// and up is re-orthonormalized whenever either changes.
type PerspectiveCamera struct {
	cameraBase

	position PendingUpdate[mgl32.Vec3]
	forward  PendingUpdate[mgl32.Vec3]
	up       PendingUpdate[mgl32.Vec3]
	fov      PendingUpdate[float32] // vertical field of view, degrees
	aspect   PendingUpdate[float32]
	near     PendingUpdate[float32]
	far      PendingUpdate[float32]

	right mgl32.Vec3
}

var _ ICamera = (*PerspectiveCamera)(nil)

// NewPerspectiveCamera creates an inert PerspectiveCamera at the origin
// facing -Z with a 60 degree vertical field of view.
func NewPerspectiveCamera(gpu ResourceAllocator) *PerspectiveCamera {
	c := &PerspectiveCamera{
		position: NewPendingUpdate(mgl32.Vec3{}),
		forward:  NewPendingUpdate(mgl32.Vec3{0, 0, -1}),
		up:       NewPendingUpdate(mgl32.Vec3{0, 1, 0}),
		fov:      NewPendingUpdate[float32](60),
		aspect:   NewPendingUpdate[float32](16.0 / 9.0),
		near:     NewPendingUpdate[float32](0.1),
		far:      NewPendingUpdate[float32](1000),
		right:    mgl32.Vec3{1, 0, 0},
	}
	c.init(gpu, c)
	return c
}

func (c *PerspectiveCamera) SetPosition(p mgl32.Vec3) { c.position.Set(p) }
func (c *PerspectiveCamera) SetForward(f mgl32.Vec3)  { c.forward.Set(f) }
func (c *PerspectiveCamera) SetUp(u mgl32.Vec3)       { c.up.Set(u) }
func (c *PerspectiveCamera) SetFieldOfView(d float32) { c.fov.Set(d) }
func (c *PerspectiveCamera) SetAspectRatio(a float32) { c.aspect.Set(a) }
func (c *PerspectiveCamera) SetNear(n float32)        { c.near.Set(n) }
func (c *PerspectiveCamera) SetFar(f float32)         { c.far.Set(f) }

func (c *PerspectiveCamera) FieldOfView() float32 { return c.fov.Get() }
func (c *PerspectiveCamera) AspectRatio() float32 { return c.aspect.Get() }
func (c *PerspectiveCamera) Near() float32        { return c.near.Get() }
func (c *PerspectiveCamera) Far() float32         { return c.far.Get() }

// LookAt points the camera at target, taking any pending position move
// into account so the orientation lands where the camera will be after
// the next commit.
func (c *PerspectiveCamera) LookAt(target mgl32.Vec3) {
	dir := target.Sub(c.position.Target())
	if dir.Len() == 0 {
		return
	}
	c.forward.Set(dir.Normalize())
}

// SetViewportSize keeps the aspect ratio in sync with the render surface
// in addition to the base bookkeeping. Resize notifications come from the
// window system between frames, so the aspect change is applied
// immediately rather than deferred.
func (c *PerspectiveCamera) SetViewportSize(width, height float32) {
	if math32.Abs(width-c.viewportW) < sizeTolerance && math32.Abs(height-c.viewportH) < sizeTolerance {
		return
	}
	c.cameraBase.SetViewportSize(width, height)
	if height > 0 {
		c.aspect.Reset(width / height)
	}
}

func (c *PerspectiveCamera) ApplyUpdates(deltaTime float32) {
	c.applyCommon()
	viewChanged := c.position.Apply()
	orientChanged := c.forward.Apply()
	orientChanged = c.up.Apply() || orientChanged
	if orientChanged {
		c.orthonormalize()
	}
	if viewChanged || orientChanged {
		c.markViewDirty()
	}
	projChanged := c.fov.Apply()
	projChanged = c.aspect.Apply() || projChanged
	projChanged = c.near.Apply() || projChanged
	projChanged = c.far.Apply() || projChanged
	if projChanged {
		c.markProjectionDirty()
	}
}

// orthonormalize rebuilds the camera basis from the committed forward and
// up vectors: forward is normalized, right is derived via cross product
// and up is recomputed to be exactly perpendicular.
func (c *PerspectiveCamera) orthonormalize() {
	f := c.forward.Get()
	if f.Len() == 0 {
		f = mgl32.Vec3{0, 0, -1}
	}
	f = f.Normalize()
	u := c.up.Get()
	if u.Len() == 0 {
		u = mgl32.Vec3{0, 1, 0}
	}
	r := f.Cross(u)
	if r.Len() == 0 {
		// Up is parallel to forward; pick any perpendicular axis.
		u = mgl32.Vec3{0, 0, 1}
		if math32.Abs(f.Z()) > 0.9 {
			u = mgl32.Vec3{0, 1, 0}
		}
		r = f.Cross(u)
	}
	r = r.Normalize()
	u = r.Cross(f).Normalize()

	c.right = r
	c.forward.Reset(f)
	c.up.Reset(u)
}

func (c *PerspectiveCamera) computeView() mgl32.Mat4 {
	p := c.position.Get()
	return mgl32.LookAtV(p, p.Add(c.forward.Get()), c.up.Get())
}

func (c *PerspectiveCamera) computeProjection() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.fov.Get()), c.aspect.Get(), c.near.Get(), c.far.Get())
}

func (c *PerspectiveCamera) Position() mgl32.Vec3 { return c.position.Get() }
func (c *PerspectiveCamera) Forward() mgl32.Vec3  { return c.forward.Get() }
func (c *PerspectiveCamera) Up() mgl32.Vec3       { return c.up.Get() }
func (c *PerspectiveCamera) Right() mgl32.Vec3    { return c.right }

// IsVisible approximates frustum culling with a distance test against the
// far plane and a facing test against the view direction. Objects hugging
// the frustum's side planes may be misclassified; the approximation
// trades exactness for two dot products per query.
func (c *PerspectiveCamera) IsVisible(b Bounds) bool {
	v := b.Center.Sub(c.position.Get())
	radius := b.HalfExtent.Len()
	dist := v.Len()
	if dist <= radius {
		// Camera is inside the bounds.
		return true
	}
	if dist-radius > c.far.Get() {
		return false
	}
	return v.Dot(c.forward.Get()) >= -radius
}

// ScreenToWorldRay unprojects the screen point through the inverse
// view-projection matrix and returns a ray from the near plane toward the
// far plane.
func (c *PerspectiveCamera) ScreenToWorldRay(x, y, screenW, screenH float32) Ray {
	nx := x/screenW*2 - 1
	ny := 1 - y/screenH*2

	inv := c.GetViewProjectionMatrix().Inv()
	nearPoint := inv.Mul4x1(mgl32.Vec4{nx, ny, -1, 1})
	farPoint := inv.Mul4x1(mgl32.Vec4{nx, ny, 1, 1})

	origin := c.position.Get()
	if math32.Abs(nearPoint.W()) > 1e-6 {
		origin = nearPoint.Vec3().Mul(1 / nearPoint.W())
	}
	dir := c.forward.Get()
	if math32.Abs(farPoint.W()) > 1e-6 {
		d := farPoint.Vec3().Mul(1 / farPoint.W()).Sub(origin)
		if d.Len() > 0 {
			dir = d.Normalize()
		}
	}
	return Ray{Origin: origin, Direction: dir}
}

// WorldToScreenPoint projects a world point to screen coordinates with a
// top left origin. Points whose homogeneous W lands near zero (on the
// camera plane) return the sentinel (-1,-1).
func (c *PerspectiveCamera) WorldToScreenPoint(world mgl32.Vec3, screenW, screenH float32) (float32, float32) {
	clip := c.GetViewProjectionMatrix().Mul4x1(world.Vec4(1))
	if math32.Abs(clip.W()) < 1e-6 {
		return -1, -1
	}
	nx := clip.X() / clip.W()
	ny := clip.Y() / clip.W()
	return (nx + 1) / 2 * screenW, (1 - ny) / 2 * screenH
}
