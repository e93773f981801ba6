package nexus

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

// Pipeline is a graphics pipeline built from a ShaderDefinition against
// the engine's camera pipeline layout. Viewport and scissor are dynamic
// state so one pipeline serves every camera viewport.
type Pipeline struct {
	Device       *Device
	Layout       *PipelineLayout
	VKPipeline   vk.Pipeline
	Definition   *ShaderDefinition
	shaderStages []*ShaderModule
}

// PipelineConfig collects what a tint pipeline needs beyond its shader
// definition.
type PipelineConfig struct {
	RenderPass        vk.RenderPass
	CameraLayout      *VKDescriptorSetLayout
	VertexBindings    []vk.VertexInputBindingDescription
	VertexAttributes  []vk.VertexInputAttributeDescription
	PrimitiveTopology vk.PrimitiveTopology
}

// CreatePipeline builds the graphics pipeline. The shader definition is
// validated eagerly: a shape mismatch (push constant size, uniform
// binding, vertex stride against the declared bindings) fails here, at
// configuration time, never at draw time.
func (d *Device) CreatePipeline(def *ShaderDefinition, cfg *PipelineConfig) (*Pipeline, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}
	for _, b := range cfg.VertexBindings {
		if err := def.CheckGeometry(GeometryLayout{VertexStride: b.Stride}); err != nil {
			return nil, err
		}
	}

	vert, err := d.LoadShaderModuleFromFile(def.VertexFile)
	if err != nil {
		return nil, fmt.Errorf("loading vertex shader: %w", err)
	}
	frag, err := d.LoadShaderModuleFromFile(def.FragmentFile)
	if err != nil {
		vert.Destroy()
		return nil, fmt.Errorf("loading fragment shader: %w", err)
	}

	layout, err := d.CreateCameraPipelineLayout(cfg.CameraLayout)
	if err != nil {
		frag.Destroy()
		vert.Destroy()
		return nil, fmt.Errorf("creating pipeline layout: %w", err)
	}

	stages := []vk.PipelineShaderStageCreateInfo{
		vert.VKPipelineShaderStageCreateInfo(vk.ShaderStageVertexBit, "main"),
		frag.VKPipelineShaderStageCreateInfo(vk.ShaderStageFragmentBit, "main"),
	}

	topology := cfg.PrimitiveTopology
	if topology == 0 {
		topology = vk.PrimitiveTopologyTriangleList
	}

	vertexInput := vk.PipelineVertexInputStateCreateInfo{
		SType:                           vk.StructureTypePipelineVertexInputStateCreateInfo,
		VertexBindingDescriptionCount:   uint32(len(cfg.VertexBindings)),
		PVertexBindingDescriptions:      cfg.VertexBindings,
		VertexAttributeDescriptionCount: uint32(len(cfg.VertexAttributes)),
		PVertexAttributeDescriptions:    cfg.VertexAttributes,
	}

	inputAssembly := vk.PipelineInputAssemblyStateCreateInfo{
		SType:    vk.StructureTypePipelineInputAssemblyStateCreateInfo,
		Topology: topology,
	}

	// One viewport/scissor slot, values supplied per camera pass.
	viewportState := vk.PipelineViewportStateCreateInfo{
		SType:         vk.StructureTypePipelineViewportStateCreateInfo,
		ViewportCount: 1,
		ScissorCount:  1,
	}

	rasterization := vk.PipelineRasterizationStateCreateInfo{
		SType:       vk.StructureTypePipelineRasterizationStateCreateInfo,
		PolygonMode: vk.PolygonModeFill,
		CullMode:    vk.CullModeFlags(vk.CullModeBackBit),
		FrontFace:   vk.FrontFaceCounterClockwise,
		LineWidth:   1.0,
	}

	multisample := vk.PipelineMultisampleStateCreateInfo{
		SType:                vk.StructureTypePipelineMultisampleStateCreateInfo,
		RasterizationSamples: vk.SampleCount1Bit,
	}

	blendAttachment := vk.PipelineColorBlendAttachmentState{
		ColorWriteMask: vk.ColorComponentFlags(
			vk.ColorComponentRBit | vk.ColorComponentGBit | vk.ColorComponentBBit | vk.ColorComponentABit),
	}
	colorBlend := vk.PipelineColorBlendStateCreateInfo{
		SType:           vk.StructureTypePipelineColorBlendStateCreateInfo,
		AttachmentCount: 1,
		PAttachments:    []vk.PipelineColorBlendAttachmentState{blendAttachment},
	}

	dynamicStates := []vk.DynamicState{vk.DynamicStateViewport, vk.DynamicStateScissor}
	dynamic := vk.PipelineDynamicStateCreateInfo{
		SType:             vk.StructureTypePipelineDynamicStateCreateInfo,
		DynamicStateCount: uint32(len(dynamicStates)),
		PDynamicStates:    dynamicStates,
	}

	createInfo := vk.GraphicsPipelineCreateInfo{
		SType:               vk.StructureTypeGraphicsPipelineCreateInfo,
		StageCount:          uint32(len(stages)),
		PStages:             stages,
		PVertexInputState:   &vertexInput,
		PInputAssemblyState: &inputAssembly,
		PViewportState:      &viewportState,
		PRasterizationState: &rasterization,
		PMultisampleState:   &multisample,
		PColorBlendState:    &colorBlend,
		PDynamicState:       &dynamic,
		Layout:              layout.VKPipelineLayout,
		RenderPass:          cfg.RenderPass,
	}

	pipelines := make([]vk.Pipeline, 1)
	err = vk.Error(vk.CreateGraphicsPipelines(d.VKDevice, vk.NullPipelineCache, 1,
		[]vk.GraphicsPipelineCreateInfo{createInfo}, nil, pipelines))
	if err != nil {
		layout.Destroy()
		frag.Destroy()
		vert.Destroy()
		return nil, fmt.Errorf("creating graphics pipeline '%s': %w", def.Name, err)
	}

	return &Pipeline{
		Device:       d,
		Layout:       layout,
		VKPipeline:   pipelines[0],
		Definition:   def,
		shaderStages: []*ShaderModule{vert, frag},
	}, nil
}

func (p *Pipeline) Destroy() {
	vk.DestroyPipeline(p.Device.VKDevice, p.VKPipeline, nil)
	p.Layout.Destroy()
	for _, s := range p.shaderStages {
		s.Destroy()
	}
}
