package nexus

import (
	"fmt"
)

// ShaderDefinition records the resource shape a compiled shader pair
// (SPIR-V binaries) declares: the vertex stride it reads, the push
// constant block size it expects and the set/binding of its
// view-projection uniform. Shape mismatches are programming errors, so
// they are surfaced eagerly at configuration time instead of at draw
// time.
type ShaderDefinition struct {
	Name             string
	VertexFile       string
	FragmentFile     string
	VertexStride     uint32
	PushConstantSize uint32
	UniformSet       uint32
	UniformBinding   uint32
}

// GeometryLayout describes the vertex data a piece of geometry supplies.
type GeometryLayout struct {
	VertexStride uint32
}

// Validate checks the definition against the engine's wire contract:
// the view-projection UBO at set 0 binding 0 and a tint push constant no
// larger than TintSize.
func (s *ShaderDefinition) Validate() error {
	if s.UniformSet != 0 || s.UniformBinding != 0 {
		return fmt.Errorf("shader '%s': view-projection uniform must be at set=0/binding=0, declared set=%d/binding=%d",
			s.Name, s.UniformSet, s.UniformBinding)
	}
	if s.PushConstantSize > TintSize {
		return fmt.Errorf("shader '%s': push constant block is %d bytes, the tint channel carries at most %d",
			s.Name, s.PushConstantSize, TintSize)
	}
	return nil
}

// CheckGeometry verifies the geometry's vertex stride matches what the
// shader reads. Called when geometry is bound to a pipeline.
func (s *ShaderDefinition) CheckGeometry(g GeometryLayout) error {
	if g.VertexStride != s.VertexStride {
		return fmt.Errorf("shader '%s': vertex stride mismatch, geometry supplies %d bytes per vertex, shader reads %d",
			s.Name, g.VertexStride, s.VertexStride)
	}
	return nil
}
