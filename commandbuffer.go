package nexus

import (
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
	vk "github.com/vulkan-go/vulkan"
)

// CommandBuffer wraps a vulkan command buffer. Not every vulkan command
// is wrapped here. Applications needing more can call the native vulkan
// APIs through VK().
type CommandBuffer struct {
	VKCommandBuffer vk.CommandBuffer
}

// VK is a utility function for accessing the native vulkan command buffer
func (c *CommandBuffer) VK() vk.CommandBuffer {
	return c.VKCommandBuffer
}

// Reset this command buffer
func (c *CommandBuffer) Reset() error {
	return vk.Error(vk.ResetCommandBuffer(c.VKCommandBuffer, 0))
}

// ResetAndRelease will reset this command buffer and release the associated resources
func (c *CommandBuffer) ResetAndRelease() error {
	return vk.Error(vk.ResetCommandBuffer(c.VKCommandBuffer, vk.CommandBufferResetFlags(vk.CommandBufferResetReleaseResourcesBit)))
}

// Begin capturing work for this command buffer
func (c *CommandBuffer) Begin() error {
	var beginInfo = vk.CommandBufferBeginInfo{}
	beginInfo.SType = vk.StructureTypeCommandBufferBeginInfo
	return vk.Error(vk.BeginCommandBuffer(c.VKCommandBuffer, &beginInfo))
}

// BeginOneTime begins capturing work for this command buffer, with the
// stipulation that it will only be submitted once before being reset.
func (c *CommandBuffer) BeginOneTime() error {
	var beginInfo = vk.CommandBufferBeginInfo{}
	beginInfo.SType = vk.StructureTypeCommandBufferBeginInfo
	beginInfo.Flags = vk.CommandBufferUsageFlags(vk.CommandBufferUsageOneTimeSubmitBit)
	return vk.Error(vk.BeginCommandBuffer(c.VKCommandBuffer, &beginInfo))
}

// End describing work for this command buffer
func (c *CommandBuffer) End() error {
	return vk.Error(vk.EndCommandBuffer(c.VKCommandBuffer))
}

// CommandRecorder records camera passes into a command buffer. It is
// the vulkan-backed FrameRecorder: one render pass instance per camera,
// the camera descriptor set bound once at the start of the pass, and a
// tint pushed before each draw.
type CommandRecorder struct {
	Cmd         *CommandBuffer
	RenderPass  vk.RenderPass
	Framebuffer vk.Framebuffer
	Pipeline    *Pipeline
}

var _ FrameRecorder = (*CommandRecorder)(nil)

func NewCommandRecorder(cmd *CommandBuffer, renderPass vk.RenderPass, framebuffer vk.Framebuffer, pipeline *Pipeline) *CommandRecorder {
	return &CommandRecorder{
		Cmd:         cmd,
		RenderPass:  renderPass,
		Framebuffer: framebuffer,
		Pipeline:    pipeline,
	}
}

// BeginCameraPass opens a render pass instance covering the camera's
// viewport and binds the pipeline. Viewport and scissor are dynamic, so
// cameras sharing the frame each set their own region.
func (r *CommandRecorder) BeginCameraPass(viewport Viewport) error {
	clear := vk.NewClearValue([]float32{
		viewport.ClearColor.X(),
		viewport.ClearColor.Y(),
		viewport.ClearColor.Z(),
		viewport.ClearColor.W(),
	})

	beginInfo := vk.RenderPassBeginInfo{
		SType:       vk.StructureTypeRenderPassBeginInfo,
		RenderPass:  r.RenderPass,
		Framebuffer: r.Framebuffer,
		RenderArea: vk.Rect2D{
			Offset: vk.Offset2D{X: 0, Y: 0},
			Extent: vk.Extent2D{Width: viewport.Extent.Width, Height: viewport.Extent.Height},
		},
		ClearValueCount: 1,
		PClearValues:    []vk.ClearValue{clear},
	}

	vk.CmdBeginRenderPass(r.Cmd.VKCommandBuffer, &beginInfo, vk.SubpassContentsInline)
	vk.CmdBindPipeline(r.Cmd.VKCommandBuffer, vk.PipelineBindPointGraphics, r.Pipeline.VKPipeline)

	vk.CmdSetViewport(r.Cmd.VKCommandBuffer, 0, 1, []vk.Viewport{{
		X:        0,
		Y:        0,
		Width:    float32(viewport.Extent.Width),
		Height:   float32(viewport.Extent.Height),
		MinDepth: 0,
		MaxDepth: 1,
	}})
	vk.CmdSetScissor(r.Cmd.VKCommandBuffer, 0, 1, []vk.Rect2D{{
		Offset: vk.Offset2D{X: 0, Y: 0},
		Extent: vk.Extent2D{Width: viewport.Extent.Width, Height: viewport.Extent.Height},
	}})

	return nil
}

// BindCameraDescriptorSet binds the camera's view-projection set at
// set 0. Called once per camera pass.
func (r *CommandRecorder) BindCameraDescriptorSet(set DescriptorSet) {
	vkSet, ok := set.(*VKDescriptorSet)
	if !ok {
		return
	}
	vk.CmdBindDescriptorSets(r.Cmd.VKCommandBuffer, vk.PipelineBindPointGraphics,
		r.Pipeline.Layout.VKPipelineLayout, 0, 1, []vk.DescriptorSet{vkSet.VKDescriptorSet}, 0, nil)
}

// PushTint writes the per-draw tint into the fragment push constant range.
func (r *CommandRecorder) PushTint(tint mgl32.Vec4) {
	vk.CmdPushConstants(r.Cmd.VKCommandBuffer, r.Pipeline.Layout.VKPipelineLayout,
		vk.ShaderStageFlags(vk.ShaderStageFragmentBit), 0, TintSize,
		unsafe.Pointer(&tint[0]))
}

func (r *CommandRecorder) Draw(cmd DrawCommand) {
	vk.CmdDraw(r.Cmd.VKCommandBuffer, cmd.VertexCount, 1, cmd.FirstVertex, 0)
}

func (r *CommandRecorder) EndCameraPass() {
	vk.CmdEndRenderPass(r.Cmd.VKCommandBuffer)
}
