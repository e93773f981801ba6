package nexus

// The camera core talks to the GPU through the narrow interfaces below so
// the per-camera resource lifecycle can be exercised without a live Vulkan
// device. The Device type in this package is the production implementation.

// UniformBuffer is a GPU visible buffer for uniform data, paired with its
// backing device memory. It is exclusively owned by the camera that
// created it and destroyed exactly once, on that camera's deactivation.
type UniformBuffer interface {
	// Update replaces the buffer contents with data.
	Update(data []byte) error
	// Destroy releases the buffer and frees its device memory.
	Destroy()
}

// DescriptorSetLayout describes a single uniform buffer binding at
// binding 0, visible to the vertex stage.
type DescriptorSetLayout interface {
	Destroy()
}

// DescriptorSet is a GPU binding table slot pointing at one uniform
// buffer. Sets are pool allocated and are not individually freed; the
// owning pool reclaims them when it is reset.
type DescriptorSet interface {
	// Valid reports whether the set refers to a live allocation. The
	// renderer skips matrix binding for cameras whose set is not valid.
	Valid() bool
}

// ResourceAllocator is what a camera needs from the graphics device to
// run its activation lifecycle: a uniform buffer, a descriptor set layout
// and a descriptor set written to point at that buffer.
type ResourceAllocator interface {
	CreateUniformBuffer(sizeInBytes uint64) (UniformBuffer, error)
	CreateUniformLayout(binding uint32) (DescriptorSetLayout, error)
	// AllocateUniformSet allocates a descriptor set from layout and writes
	// it so binding 0 points at buf (offset 0, full range).
	AllocateUniformSet(layout DescriptorSetLayout, buf UniformBuffer) (DescriptorSet, error)
}
