package nexus

import (
	"fmt"
	"log"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Bounds is a world space axis aligned bounding box.
type Bounds struct {
	Center     mgl32.Vec3
	HalfExtent mgl32.Vec3
}

// Ray is a world space ray with a normalized direction.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// ICamera is the contract the Renderer and the CameraRegistry depend on.
// Concrete implementations are StaticCamera, OrthoCamera and
// PerspectiveCamera.
type ICamera interface {
	Component

	ScreenRegion() ScreenRegion
	ClearColor() mgl32.Vec4
	RenderPriority() int
	RenderPassMask() uint32

	// GetViewport maps the camera's screen region, clear color and render
	// pass mask into a pixel space Viewport.
	GetViewport() Viewport

	ViewMatrix() mgl32.Mat4
	ProjectionMatrix() mgl32.Mat4
	// GetViewProjectionMatrix returns the cached product of the projection
	// and view matrices, recomputing it if a parameter changed since the
	// last read. A recomputation also re-uploads the camera's uniform
	// buffer when the camera is active.
	GetViewProjectionMatrix() mgl32.Mat4

	// GetViewProjectionDescriptorSet returns the descriptor set binding
	// the camera's uniform buffer, or nil while the camera is inert.
	GetViewProjectionDescriptorSet() DescriptorSet

	Position() mgl32.Vec3
	Forward() mgl32.Vec3
	Up() mgl32.Vec3
	Right() mgl32.Vec3

	// IsVisible reports whether the bounds may be visible to this camera.
	// The test is projection specific and conservative, not exact.
	IsVisible(b Bounds) bool
	ScreenToWorldRay(x, y, screenW, screenH float32) Ray
	WorldToScreenPoint(world mgl32.Vec3, screenW, screenH float32) (float32, float32)

	// SetViewportSize notifies the camera of the pixel dimensions of the
	// surface it renders into. Redundant notifications (within ~0.01 of
	// the current dimensions) are ignored.
	SetViewportSize(width, height float32)
}

// sizeTolerance filters redundant viewport resize notifications so an
// unchanged size never forces a projection rebuild and GPU upload.
const sizeTolerance = 0.01

// matrixSource is implemented by each camera variant; cameraBase calls
// back into it when a cached matrix is dirty.
type matrixSource interface {
	computeView() mgl32.Mat4
	computeProjection() mgl32.Mat4
}

// cameraResources owns one camera's GPU resources: a 64 byte uniform
// buffer, a descriptor set layout with a single uniform buffer binding at
// binding 0, and a descriptor set pointing at the buffer.
//
// The state machine is Inert -> Active -> Inert. Both transitions are
// idempotent, and a failed activation rolls back to Inert. The descriptor
// set is not individually freed on deactivation; it is reclaimed when the
// owning descriptor pool is reset.
type cameraResources struct {
	buffer UniformBuffer
	layout DescriptorSetLayout
	set    DescriptorSet
	active bool
}

func (r *cameraResources) activate(gpu ResourceAllocator, initial mgl32.Mat4) error {
	if r.active {
		return nil
	}
	if gpu == nil {
		return fmt.Errorf("camera has no resource allocator")
	}
	buf, err := gpu.CreateUniformBuffer(ViewProjectionUBOSize)
	if err != nil {
		return fmt.Errorf("creating view-projection uniform buffer: %w", err)
	}
	layout, err := gpu.CreateUniformLayout(0)
	if err != nil {
		buf.Destroy()
		return fmt.Errorf("creating view-projection descriptor layout: %w", err)
	}
	set, err := gpu.AllocateUniformSet(layout, buf)
	if err != nil {
		layout.Destroy()
		buf.Destroy()
		return fmt.Errorf("allocating view-projection descriptor set: %w", err)
	}
	if err := buf.Update(NewViewProjectionUBO(initial).Bytes()); err != nil {
		layout.Destroy()
		buf.Destroy()
		return fmt.Errorf("populating view-projection uniform buffer: %w", err)
	}
	r.buffer = buf
	r.layout = layout
	r.set = set
	r.active = true
	return nil
}

// upload pushes a fresh view-projection matrix to the uniform buffer.
// No-op while inert.
func (r *cameraResources) upload(m mgl32.Mat4) {
	if !r.active {
		return
	}
	if err := r.buffer.Update(NewViewProjectionUBO(m).Bytes()); err != nil {
		log.Printf("camera: uniform buffer update failed: %v", err)
	}
}

func (r *cameraResources) deactivate() {
	if !r.active {
		return
	}
	r.buffer.Destroy()
	r.layout.Destroy()
	r.buffer = nil
	r.layout = nil
	r.set = nil
	r.active = false
}

func (r *cameraResources) descriptorSet() DescriptorSet {
	if !r.active {
		return nil
	}
	return r.set
}

// cameraBase carries the state shared by all camera variants: the
// deferred common parameters, the dirty-flag matrix caches, the viewport
// dimensions and the GPU resource lifecycle.
type cameraBase struct {
	gpu ResourceAllocator
	src matrixSource

	screenRegion   PendingUpdate[ScreenRegion]
	clearColor     PendingUpdate[mgl32.Vec4]
	renderPriority PendingUpdate[int]
	renderPassMask PendingUpdate[uint32]

	viewportW float32
	viewportH float32

	view          mgl32.Mat4
	viewDirty     bool
	proj          mgl32.Mat4
	projDirty     bool
	viewProj      mgl32.Mat4
	viewProjDirty bool

	res cameraResources
}

func (c *cameraBase) init(gpu ResourceAllocator, src matrixSource) {
	c.gpu = gpu
	c.src = src
	c.screenRegion = NewPendingUpdate(FullScreen)
	c.clearColor = NewPendingUpdate(mgl32.Vec4{0, 0, 0, 1})
	c.renderPriority = NewPendingUpdate(0)
	c.renderPassMask = NewPendingUpdate(RenderPassMain)
	c.viewDirty = true
	c.projDirty = true
	c.viewProjDirty = true
}

func (c *cameraBase) ScreenRegion() ScreenRegion { return c.screenRegion.Get() }
func (c *cameraBase) ClearColor() mgl32.Vec4     { return c.clearColor.Get() }
func (c *cameraBase) RenderPriority() int        { return c.renderPriority.Get() }
func (c *cameraBase) RenderPassMask() uint32     { return c.renderPassMask.Get() }

func (c *cameraBase) SetScreenRegion(r ScreenRegion) { c.screenRegion.Set(r) }
func (c *cameraBase) SetClearColor(col mgl32.Vec4)   { c.clearColor.Set(col) }
func (c *cameraBase) SetRenderPriority(p int)        { c.renderPriority.Set(p) }
func (c *cameraBase) SetRenderPassMask(m uint32)     { c.renderPassMask.Set(m) }

// applyCommon commits the shared deferred parameters. Returns true if any
// of them changed.
func (c *cameraBase) applyCommon() bool {
	changed := c.screenRegion.Apply()
	changed = c.clearColor.Apply() || changed
	changed = c.renderPriority.Apply() || changed
	changed = c.renderPassMask.Apply() || changed
	return changed
}

// SetViewportSize records the pixel dimensions of the render surface.
// Dimensions within sizeTolerance of the current ones are ignored, so
// unchanged resize notifications never mark the projection dirty.
func (c *cameraBase) SetViewportSize(width, height float32) {
	if math32.Abs(width-c.viewportW) < sizeTolerance && math32.Abs(height-c.viewportH) < sizeTolerance {
		return
	}
	c.viewportW = width
	c.viewportH = height
	c.markProjectionDirty()
}

func (c *cameraBase) markViewDirty()       { c.viewDirty = true }
func (c *cameraBase) markProjectionDirty() { c.projDirty = true }

func (c *cameraBase) ViewMatrix() mgl32.Mat4 {
	if c.viewDirty {
		c.view = c.src.computeView()
		c.viewDirty = false
		c.viewProjDirty = true
	}
	return c.view
}

func (c *cameraBase) ProjectionMatrix() mgl32.Mat4 {
	if c.projDirty {
		c.proj = c.src.computeProjection()
		c.projDirty = false
		c.viewProjDirty = true
	}
	return c.proj
}

func (c *cameraBase) GetViewProjectionMatrix() mgl32.Mat4 {
	view := c.ViewMatrix()
	proj := c.ProjectionMatrix()
	if c.viewProjDirty {
		c.viewProj = proj.Mul4(view)
		c.viewProjDirty = false
		c.res.upload(c.viewProj)
	}
	return c.viewProj
}

func (c *cameraBase) GetViewProjectionDescriptorSet() DescriptorSet {
	return c.res.descriptorSet()
}

// GetViewport produces the pixel space viewport for the camera's current
// screen region.
func (c *cameraBase) GetViewport() Viewport {
	region := c.screenRegion.Get()
	return Viewport{
		Extent: Extent2D{
			Width:  uint32(region.Width*c.viewportW + 0.5),
			Height: uint32(region.Height*c.viewportH + 0.5),
		},
		ClearColor:     c.clearColor.Get(),
		RenderPassMask: c.renderPassMask.Get(),
	}
}

// OnActivate allocates the camera's GPU resources and populates the
// uniform buffer with the current view-projection matrix. Idempotent. On
// failure the camera stays inert and the error is returned; callers that
// keep rendering (the registry does) must tolerate the nil descriptor set.
func (c *cameraBase) OnActivate() error {
	if c.res.active {
		return nil
	}
	// Resolve the matrix before touching the GPU so a clean buffer write
	// can happen inside activate.
	view := c.ViewMatrix()
	proj := c.ProjectionMatrix()
	if c.viewProjDirty {
		c.viewProj = proj.Mul4(view)
		c.viewProjDirty = false
	}
	return c.res.activate(c.gpu, c.viewProj)
}

// OnDeactivate destroys the uniform buffer and its device memory.
// Idempotent. The descriptor set is reclaimed by the pool, not here.
func (c *cameraBase) OnDeactivate() {
	c.res.deactivate()
}

func (c *cameraBase) IsActive() bool {
	return c.res.active
}

func (c *cameraBase) Children() []Component { return nil }
