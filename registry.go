package nexus

import (
	"fmt"
	"sort"
)

// CameraRegistry owns the set of active cameras the renderer consumes. It
// creates one default camera at construction which is never removed, and
// discovers additional cameras by walking content trees on load/unload.
// The active set is kept sorted by render priority (ascending), ties
// broken by registration order, so the renderer reads it in O(1) per
// frame.
type CameraRegistry struct {
	gpu ResourceAllocator

	defaultCamera *StaticCamera
	entries       []cameraEntry
	nextSeq       uint64

	roots []Component

	active []ICamera // rebuilt whenever entries change
}

type cameraEntry struct {
	camera   ICamera
	priority int
	seq      uint64
}

// NewCameraRegistry creates a registry with an activated default
// StaticCamera sized to the given framebuffer dimensions.
func NewCameraRegistry(gpu ResourceAllocator, width, height float32) (*CameraRegistry, error) {
	r := &CameraRegistry{gpu: gpu}

	cam := NewStaticCamera(gpu)
	cam.SetViewportSize(width, height)
	if err := cam.OnActivate(); err != nil {
		return nil, fmt.Errorf("activating default camera: %w", err)
	}
	r.defaultCamera = cam
	r.register(cam)
	return r, nil
}

// DefaultCamera returns the registry's always present fallback camera.
func (r *CameraRegistry) DefaultCamera() *StaticCamera {
	return r.defaultCamera
}

// LoadContent activates the tree rooted at root and registers every
// camera component reachable from it. A camera whose activation failed
// stays registered inert; the renderer skips its matrix binding.
func (r *CameraRegistry) LoadContent(root Component) error {
	err := root.OnActivate()
	if err != nil {
		err = fmt.Errorf("activating content tree: %w", err)
	}
	r.roots = append(r.roots, root)
	Walk(root, func(c Component) {
		if cam, ok := c.(ICamera); ok {
			r.register(cam)
		}
	})
	return err
}

// UnloadContent deactivates the tree and unregisters its cameras. The
// default camera is never unregistered, even if it was placed in a tree.
func (r *CameraRegistry) UnloadContent(root Component) {
	Walk(root, func(c Component) {
		if cam, ok := c.(ICamera); ok {
			r.unregister(cam)
		}
	})
	root.OnDeactivate()
	for i, loaded := range r.roots {
		if loaded == root {
			r.roots = append(r.roots[:i], r.roots[i+1:]...)
			break
		}
	}
}

func (r *CameraRegistry) register(cam ICamera) {
	for _, e := range r.entries {
		if e.camera == cam {
			return
		}
	}
	r.entries = append(r.entries, cameraEntry{
		camera:   cam,
		priority: cam.RenderPriority(),
		seq:      r.nextSeq,
	})
	r.nextSeq++
	r.resort()
}

func (r *CameraRegistry) unregister(cam ICamera) {
	if cam == ICamera(r.defaultCamera) {
		return
	}
	for i, e := range r.entries {
		if e.camera == cam {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			r.resort()
			return
		}
	}
}

func (r *CameraRegistry) resort() {
	sort.SliceStable(r.entries, func(i, j int) bool {
		if r.entries[i].priority != r.entries[j].priority {
			return r.entries[i].priority < r.entries[j].priority
		}
		return r.entries[i].seq < r.entries[j].seq
	})
	r.active = r.active[:0]
	for _, e := range r.entries {
		r.active = append(r.active, e.camera)
	}
}

// ActiveCameras returns the priority ordered camera sequence. It is never
// empty: the default camera is always present. The returned slice is
// owned by the registry and only mutated by load/unload, never per frame.
func (r *CameraRegistry) ActiveCameras() []ICamera {
	return r.active
}

// ApplyUpdates runs the per frame deferred update commit over the default
// camera and every loaded content tree. Must be called before rendering.
func (r *CameraRegistry) ApplyUpdates(deltaTime float32) {
	r.defaultCamera.ApplyUpdates(deltaTime)
	for _, root := range r.roots {
		root.ApplyUpdates(deltaTime)
	}
}

// SetViewportSize fans a framebuffer resize notification out to every
// registered camera.
func (r *CameraRegistry) SetViewportSize(width, height float32) {
	for _, e := range r.entries {
		e.camera.SetViewportSize(width, height)
	}
}

// Shutdown deactivates every registered camera, the default one included,
// and drops all loaded trees. The default camera stays registered (inert)
// so the active set invariant holds even after shutdown; descriptor sets
// the cameras held become invalid once the device resets its descriptor
// pool afterwards.
func (r *CameraRegistry) Shutdown() {
	for _, e := range r.entries {
		e.camera.OnDeactivate()
	}
	r.entries = r.entries[:0]
	r.active = r.active[:0]
	r.roots = nil
	r.register(r.defaultCamera)
}
