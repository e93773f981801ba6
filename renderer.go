package nexus

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// TintSize is the byte size of the per draw push constant block: one RGBA
// color. Together with the ViewProjectionUBO layout it forms the wire
// contract with the paired shader programs.
const TintSize = 16

// DrawCommand is one recorded draw. The transformation matrix is NOT part
// of a draw command: it is bound once per camera pass through the
// camera's uniform buffer. Only the tint color travels per draw, as push
// constants.
type DrawCommand struct {
	RenderPassMask uint32
	Tint           mgl32.Vec4
	VertexCount    uint32
	FirstVertex    uint32
}

// FrameRecorder receives the renderer's per frame output. The production
// implementation records into a Vulkan command buffer; tests substitute a
// recording mock.
type FrameRecorder interface {
	// BeginCameraPass starts a render pass scoped to the viewport's
	// extent, clear color and render pass mask.
	BeginCameraPass(vp Viewport) error
	// BindCameraDescriptorSet binds the camera's view-projection uniform
	// at set 0. Called at most once per camera pass.
	BindCameraDescriptorSet(set DescriptorSet)
	// PushTint uploads the 16 byte per draw tint push constant.
	PushTint(tint mgl32.Vec4)
	Draw(cmd DrawCommand)
	EndCameraPass()
}

// Renderer iterates the registry's priority ordered camera set once per
// frame. Matrix transmission cost is O(active cameras), never O(draw
// commands): each camera's descriptor set is bound exactly once per pass
// and draw commands only push their tint.
type Renderer struct {
	registry *CameraRegistry
	commands []DrawCommand
}

func NewRenderer(registry *CameraRegistry) *Renderer {
	return &Renderer{registry: registry}
}

// Submit queues draw commands for the next frame.
func (r *Renderer) Submit(cmds ...DrawCommand) {
	r.commands = append(r.commands, cmds...)
}

// Reset drops all queued draw commands.
func (r *Renderer) Reset() {
	r.commands = r.commands[:0]
}

// RenderFrame records one frame: for each active camera, one render pass
// scoped to the camera's viewport, one descriptor set bind (skipped when
// the camera is inert and its handle invalid), then the mask matching
// draw commands.
func (r *Renderer) RenderFrame(rec FrameRecorder) error {
	for _, cam := range r.registry.ActiveCameras() {
		// Applying updates happened before rendering, so this read is the
		// frame's single matrix recompute/upload point for the camera.
		cam.GetViewProjectionMatrix()

		vp := cam.GetViewport()
		if vp.Extent.Width == 0 || vp.Extent.Height == 0 {
			continue
		}
		if err := rec.BeginCameraPass(vp); err != nil {
			return fmt.Errorf("beginning camera pass: %w", err)
		}
		if set := cam.GetViewProjectionDescriptorSet(); set != nil && set.Valid() {
			rec.BindCameraDescriptorSet(set)
		}
		mask := cam.RenderPassMask()
		for _, cmd := range r.commands {
			if cmd.RenderPassMask&mask == 0 {
				continue
			}
			rec.PushTint(cmd.Tint)
			rec.Draw(cmd)
		}
		rec.EndCameraPass()
	}
	return nil
}

// Frame runs a full frame step: commit deferred updates, then record the
// frame. Draw commands queued via Submit stay queued until Reset.
func (r *Renderer) Frame(deltaTime float32, rec FrameRecorder) error {
	r.registry.ApplyUpdates(deltaTime)
	return r.RenderFrame(rec)
}
