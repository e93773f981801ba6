package nexus

import (
	vk "github.com/vulkan-go/vulkan"
)

// VKDescriptorSetLayout describes the layout of a descriptor set. Camera
// layouts hold a single uniform buffer binding.
type VKDescriptorSetLayout struct {
	Device                        *Device
	VKDescriptorSetLayout         vk.DescriptorSetLayout
	VKDescriptorSetLayoutBindings []vk.DescriptorSetLayoutBinding

	binding uint32
}

var _ DescriptorSetLayout = (*VKDescriptorSetLayout)(nil)

func (d *Device) NewDescriptorSetLayout() *VKDescriptorSetLayout {
	return &VKDescriptorSetLayout{Device: d}
}

// AddBinding adds a binding to the descriptor set layout
func (l *VKDescriptorSetLayout) AddBinding(binding vk.DescriptorSetLayoutBinding) {
	l.VKDescriptorSetLayoutBindings = append(l.VKDescriptorSetLayoutBindings, binding)
	l.binding = binding.Binding
}

// Destroy destroys this descriptor set layout
func (l *VKDescriptorSetLayout) Destroy() {
	vk.DestroyDescriptorSetLayout(l.Device.VKDevice, l.VKDescriptorSetLayout, nil)
}

// CreateDescriptorSetLayout creates the native layout object from the
// accumulated bindings
func (d *Device) CreateDescriptorSetLayout(layout *VKDescriptorSetLayout) (*VKDescriptorSetLayout, error) {
	var descriptorSetLayoutCreateInfo = &vk.DescriptorSetLayoutCreateInfo{
		SType:        vk.StructureTypeDescriptorSetLayoutCreateInfo,
		BindingCount: uint32(len(layout.VKDescriptorSetLayoutBindings)),
		PBindings:    layout.VKDescriptorSetLayoutBindings,
	}

	var descriptorSetLayout vk.DescriptorSetLayout
	if err := vk.Error(vk.CreateDescriptorSetLayout(d.VKDevice, descriptorSetLayoutCreateInfo, nil, &descriptorSetLayout)); err != nil {
		return nil, err
	}

	layout.Device = d
	layout.VKDescriptorSetLayout = descriptorSetLayout
	return layout, nil
}
