package nexus

import (
	vk "github.com/vulkan-go/vulkan"
)

// VKDescriptorSet is a binding of a buffer to a descriptor, per a
// specific descriptor set layout. It satisfies the DescriptorSet contract
// the camera core and renderer consume.
type VKDescriptorSet struct {
	Device               *Device
	DescriptorPool       *DescriptorPool
	VKDescriptorSet      vk.DescriptorSet
	VKWriteDescriptorSet []vk.WriteDescriptorSet
}

var _ DescriptorSet = (*VKDescriptorSet)(nil)

// Valid reports whether the set holds a live allocation.
func (ds *VKDescriptorSet) Valid() bool {
	return ds.VKDescriptorSet != vk.NullDescriptorSet
}

// AddBuffer stages a write pointing the given binding at the buffer
// (offset and full range).
func (ds *VKDescriptorSet) AddBuffer(dstBinding int, dtype vk.DescriptorType, b *Buffer, offset int) {
	descriptorBufferInfo := vk.DescriptorBufferInfo{
		Buffer: b.VKBuffer,
		Offset: vk.DeviceSize(offset),
		Range:  vk.DeviceSize(b.Size),
	}

	writeDescriptorSet := vk.WriteDescriptorSet{
		SType:           vk.StructureTypeWriteDescriptorSet,
		DstBinding:      uint32(dstBinding),
		DescriptorCount: 1,
		DescriptorType:  dtype,
		PBufferInfo:     []vk.DescriptorBufferInfo{descriptorBufferInfo},
	}

	ds.VKWriteDescriptorSet = append(ds.VKWriteDescriptorSet, writeDescriptorSet)
}

// Write flushes the staged writes to the descriptor set
func (ds *VKDescriptorSet) Write() {
	for i := range ds.VKWriteDescriptorSet {
		ds.VKWriteDescriptorSet[i].DstSet = ds.VKDescriptorSet
	}
	vk.UpdateDescriptorSets(ds.Device.VKDevice, uint32(len(ds.VKWriteDescriptorSet)), ds.VKWriteDescriptorSet, 0, nil)
}
