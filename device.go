package nexus

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

// DefaultMaxCameraSets bounds the number of camera descriptor sets a
// device's pool can hold. Sets are reclaimed only by resetting the pool
// (ResetCameraDescriptors), not freed individually.
const DefaultMaxCameraSets = 64

// Device wraps a Vulkan logical device together with the descriptor pool
// backing camera view-projection descriptor sets. It implements
// ResourceAllocator, which is the only surface the camera core sees.
type Device struct {
	PhysicalDevice *PhysicalDevice
	VKDevice       vk.Device
	DescriptorPool *DescriptorPool
}

var _ ResourceAllocator = (*Device)(nil)

func (d *Device) Destroy() {
	if d.DescriptorPool != nil {
		d.DescriptorPool.Destroy()
		d.DescriptorPool = nil
	}
	vk.DestroyDevice(d.VKDevice, nil)
}

func (d *Device) String() string {
	return fmt.Sprintf("{ PhysicalDevice: %s }", d.PhysicalDevice)
}

func (d *Device) WaitIdle() {
	vk.DeviceWaitIdle(d.VKDevice)
}

func (d *Device) GetQueue(qf *QueueFamily) *Queue {
	var vkq vk.Queue
	vk.GetDeviceQueue(d.VKDevice, uint32(qf.Index), 0, &vkq)
	return &Queue{QueueFamily: qf, Device: d, VKQueue: vkq}
}

type AllocationRequirements struct {
	Size           int
	MemoryTypeBits uint32
}

func (d *Device) AllocateForBuffer(b *Buffer, memoryProperties vk.MemoryPropertyFlags) (*DeviceMemory, error) {
	ar := b.AllocationRequirements()
	return d.Allocate(ar.Size, ar.MemoryTypeBits, memoryProperties)
}

func (d *Device) Allocate(sizeInBytes int, memoryTypeBits uint32, memoryProperties vk.MemoryPropertyFlags) (*DeviceMemory, error) {
	var allocateInfo = vk.MemoryAllocateInfo{}
	allocateInfo.SType = vk.StructureTypeMemoryAllocateInfo
	allocateInfo.AllocationSize = vk.DeviceSize(sizeInBytes)

	var err error
	allocateInfo.MemoryTypeIndex, err = d.PhysicalDevice.FindMemoryType(
		memoryTypeBits,
		vk.MemoryPropertyFlagBits(memoryProperties))
	if err != nil {
		return nil, err
	}

	var deviceMemory vk.DeviceMemory
	if err := vk.Error(vk.AllocateMemory(d.VKDevice, &allocateInfo, nil, &deviceMemory)); err != nil {
		return nil, err
	}

	return &DeviceMemory{Device: d, VKDeviceMemory: deviceMemory, Size: uint64(sizeInBytes)}, nil
}

// CreateUniformBuffer creates a host visible, host coherent uniform
// buffer with dedicated backing memory. The camera core calls this on
// activation for its 64 byte view-projection block.
func (d *Device) CreateUniformBuffer(sizeInBytes uint64) (UniformBuffer, error) {
	b, err := d.CreateBufferWithOptions(sizeInBytes,
		vk.BufferUsageFlags(vk.BufferUsageUniformBufferBit), vk.SharingModeExclusive)
	if err != nil {
		return nil, fmt.Errorf("creating uniform buffer: %w", err)
	}
	mem, err := d.AllocateForBuffer(b,
		vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit|vk.MemoryPropertyHostCoherentBit))
	if err != nil {
		b.Destroy()
		return nil, fmt.Errorf("allocating uniform buffer memory: %w", err)
	}
	if err := b.Bind(mem, 0); err != nil {
		mem.Destroy()
		b.Destroy()
		return nil, fmt.Errorf("binding uniform buffer memory: %w", err)
	}
	return &deviceUniformBuffer{buffer: b, memory: mem}, nil
}

// CreateUniformLayout creates a descriptor set layout with one uniform
// buffer binding at the given index, visible to the vertex stage.
func (d *Device) CreateUniformLayout(binding uint32) (DescriptorSetLayout, error) {
	layout := d.NewDescriptorSetLayout()
	layout.AddBinding(vk.DescriptorSetLayoutBinding{
		Binding:         binding,
		DescriptorType:  vk.DescriptorTypeUniformBuffer,
		DescriptorCount: 1,
		StageFlags:      vk.ShaderStageFlags(vk.ShaderStageVertexBit),
	})
	if _, err := d.CreateDescriptorSetLayout(layout); err != nil {
		return nil, err
	}
	return layout, nil
}

// AllocateUniformSet allocates a descriptor set from the device's pool
// and writes it to point at buf (offset 0, full range).
func (d *Device) AllocateUniformSet(layout DescriptorSetLayout, buf UniformBuffer) (DescriptorSet, error) {
	vkLayout, ok := layout.(*VKDescriptorSetLayout)
	if !ok {
		return nil, fmt.Errorf("layout was not created by this device")
	}
	vkBuf, ok := buf.(*deviceUniformBuffer)
	if !ok {
		return nil, fmt.Errorf("buffer was not created by this device")
	}

	set, err := d.DescriptorPool.Allocate(vkLayout)
	if err != nil {
		return nil, err
	}
	set.AddBuffer(int(vkLayout.binding), vk.DescriptorTypeUniformBuffer, vkBuf.buffer, 0)
	set.Write()
	return set, nil
}

// ResetCameraDescriptors reclaims every camera descriptor set at once by
// resetting the pool. Call only when no camera set is referenced by an
// in-flight command buffer.
func (d *Device) ResetCameraDescriptors() error {
	return d.DescriptorPool.Reset()
}

func (d *Device) createCameraDescriptorPool(maxSets int) (*DescriptorPool, error) {
	pool := d.NewDescriptorPool()
	pool.AddPoolSize(vk.DescriptorTypeUniformBuffer, maxSets)
	return d.CreateDescriptorPool(pool, maxSets)
}
