package driver

import (
	"fmt"
	"slices"
)

// ConstructionType selects how pipelines are built.
type ConstructionType int

const (
	Monolithic ConstructionType = iota
	LinkTimeOptimizedLibrary
	FastLinkedLibrary
	ShaderObjectUnlinkedSPIRV
	ShaderObjectUnlinkedBinary
	ShaderObjectLinkedSPIRV
	ShaderObjectLinkedBinary

	constructionTypeCount
)

var constructionNames = [constructionTypeCount]string{
	"monolithic",
	"pipeline_library",
	"fast_linked_library",
	"shader_object_unlinked_spirv",
	"shader_object_unlinked_binary",
	"shader_object_linked_spirv",
	"shader_object_linked_binary",
}

// ConstructionTypes returns every construction type in declaration order.
func ConstructionTypes() []ConstructionType {
	out := make([]ConstructionType, constructionTypeCount)
	for i := range out {
		out[i] = ConstructionType(i)
	}
	return out
}

// ParseConstructionType returns the construction type named s.
func ParseConstructionType(s string) (ConstructionType, error) {
	for i, name := range constructionNames {
		if name == s {
			return ConstructionType(i), nil
		}
	}
	return 0, fmt.Errorf("driver: unknown construction type %q", s)
}

func (t ConstructionType) String() string {
	if t < 0 || t >= constructionTypeCount {
		return fmt.Sprintf("ConstructionType(%d)", int(t))
	}
	return constructionNames[t]
}

// IsLibrary reports whether t links graphics pipeline libraries.
func (t ConstructionType) IsLibrary() bool {
	return t == LinkTimeOptimizedLibrary || t == FastLinkedLibrary
}

// IsShaderObject reports whether t binds shader objects instead of
// pipelines.
func (t ConstructionType) IsShaderObject() bool {
	return t >= ShaderObjectUnlinkedSPIRV && t < constructionTypeCount
}

// Device extension names.
const (
	ExtGraphicsPipelineLibrary = "VK_EXT_graphics_pipeline_library"
	ExtPipelineLibrary         = "VK_KHR_pipeline_library"
	ExtShaderObject            = "VK_EXT_shader_object"
	ExtDynamicRendering        = "VK_KHR_dynamic_rendering"
	ExtColorWriteEnable        = "VK_EXT_color_write_enable"
)

// Required returns the device extensions a driver must offer to build
// pipelines the t way.
func (t ConstructionType) Required() []string {
	switch {
	case t.IsLibrary():
		return []string{ExtGraphicsPipelineLibrary}
	case t.IsShaderObject():
		return []string{ExtShaderObject, ExtColorWriteEnable}
	}
	return nil
}

// Features lists the device features a run enables when present.
type Features struct {
	DualSrcBlend     bool
	IndependentBlend bool
	DepthBiasClamp   bool
	Synchronization2 bool
}

// Capabilities is what a driver reports about its device.
type Capabilities struct {
	Features                     Features
	MaxFragmentOutputAttachments uint32
	Extensions                   []string
}

// HasExtension reports whether the device offers the named extension.
func (c Capabilities) HasExtension(name string) bool {
	return slices.Contains(c.Extensions, name)
}
