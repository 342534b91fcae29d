// Package blendstate defines the color blend attachment state walked by the
// dual-source blend checks, together with the immutable factor and operation
// tables it is built from.
//
// A Descriptor carries Vulkan vocabulary (vk.BlendFactor, vk.BlendOp) so it
// can be handed to a Vulkan pipeline as is, and it converts to the WebGPU
// blend state of gputypes where an equivalent exists.
package blendstate

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal/vulkan/vk"
)

// Descriptor is one color blend attachment state.
//
// Descriptors are values: they are built fresh for every enumeration step
// and are never mutated afterwards.
type Descriptor struct {
	BlendEnable bool

	SrcColorFactor vk.BlendFactor
	DstColorFactor vk.BlendFactor
	ColorOp        vk.BlendOp

	SrcAlphaFactor vk.BlendFactor
	DstAlphaFactor vk.BlendFactor
	AlphaOp        vk.BlendOp

	// WriteMask is derived from the channel count of the target format.
	WriteMask gputypes.ColorWriteMask
}

// Equal reports whether d and o describe the same blend equation.
// BlendEnable and WriteMask do not take part in the comparison.
func (d Descriptor) Equal(o Descriptor) bool {
	return d.SrcColorFactor == o.SrcColorFactor &&
		d.DstColorFactor == o.DstColorFactor &&
		d.ColorOp == o.ColorOp &&
		d.SrcAlphaFactor == o.SrcAlphaFactor &&
		d.DstAlphaFactor == o.DstAlphaFactor &&
		d.AlphaOp == o.AlphaOp
}

// UsesDualSource reports whether any factor of d reads the second
// fragment output.
func (d Descriptor) UsesDualSource() bool {
	return IsDualSourceFactor(d.SrcColorFactor) || IsDualSourceFactor(d.DstColorFactor) ||
		IsDualSourceFactor(d.SrcAlphaFactor) || IsDualSourceFactor(d.DstAlphaFactor)
}

// UsesAlphaFactor reports whether any of the four factors of d is
// alpha-specific.
func (d Descriptor) UsesAlphaFactor() bool {
	return IsAlphaFactor(d.SrcColorFactor) || IsAlphaFactor(d.DstColorFactor) ||
		IsAlphaFactor(d.SrcAlphaFactor) || IsAlphaFactor(d.DstAlphaFactor)
}

// Generic returns d with every src1 factor replaced by its first-source
// equivalent. The generic pipeline feeds the same color to both sources,
// so the result blends identically without a second fragment output.
func (d Descriptor) Generic() Descriptor {
	g := d
	g.SrcColorFactor = GenericFactor(d.SrcColorFactor)
	g.DstColorFactor = GenericFactor(d.DstColorFactor)
	g.SrcAlphaFactor = GenericFactor(d.SrcAlphaFactor)
	g.DstAlphaFactor = GenericFactor(d.DstAlphaFactor)
	return g
}

// Attachment converts d into the Vulkan pipeline attachment state.
func (d Descriptor) Attachment() vk.PipelineColorBlendAttachmentState {
	var enable vk.Bool32 = vk.False
	if d.BlendEnable {
		enable = vk.True
	}
	return vk.PipelineColorBlendAttachmentState{
		BlendEnable:         enable,
		SrcColorBlendFactor: d.SrcColorFactor,
		DstColorBlendFactor: d.DstColorFactor,
		ColorBlendOp:        d.ColorOp,
		SrcAlphaBlendFactor: d.SrcAlphaFactor,
		DstAlphaBlendFactor: d.DstAlphaFactor,
		AlphaBlendOp:        d.AlphaOp,
		ColorWriteMask:      ComponentFlags(d.WriteMask),
	}
}

// Equation converts d into the dynamic-state blend equation used by
// shader objects.
func (d Descriptor) Equation() vk.ColorBlendEquationEXT {
	return vk.ColorBlendEquationEXT{
		SrcColorBlendFactor: d.SrcColorFactor,
		DstColorBlendFactor: d.DstColorFactor,
		ColorBlendOp:        d.ColorOp,
		SrcAlphaBlendFactor: d.SrcAlphaFactor,
		DstAlphaBlendFactor: d.DstAlphaFactor,
		AlphaBlendOp:        d.AlphaOp,
	}
}

// FromAttachment is the inverse of Descriptor.Attachment.
func FromAttachment(s vk.PipelineColorBlendAttachmentState) Descriptor {
	return Descriptor{
		BlendEnable:    s.BlendEnable != vk.False,
		SrcColorFactor: s.SrcColorBlendFactor,
		DstColorFactor: s.DstColorBlendFactor,
		ColorOp:        s.ColorBlendOp,
		SrcAlphaFactor: s.SrcAlphaBlendFactor,
		DstAlphaFactor: s.DstAlphaBlendFactor,
		AlphaOp:        s.AlphaBlendOp,
		WriteMask:      WriteMaskFromFlags(s.ColorWriteMask),
	}
}

// WebGPU converts d into a WebGPU blend state. The second return value is
// false when d uses a factor WebGPU core has no equivalent for (the src1
// factors and the constant-alpha pair).
func (d Descriptor) WebGPU() (gputypes.BlendState, bool) {
	sc, ok1 := webgpuFactor(d.SrcColorFactor)
	dc, ok2 := webgpuFactor(d.DstColorFactor)
	sa, ok3 := webgpuFactor(d.SrcAlphaFactor)
	da, ok4 := webgpuFactor(d.DstAlphaFactor)
	co, ok5 := webgpuOp(d.ColorOp)
	ao, ok6 := webgpuOp(d.AlphaOp)
	state := gputypes.BlendState{
		Color: gputypes.BlendComponent{SrcFactor: sc, DstFactor: dc, Operation: co},
		Alpha: gputypes.BlendComponent{SrcFactor: sa, DstFactor: da, Operation: ao},
	}
	return state, ok1 && ok2 && ok3 && ok4 && ok5 && ok6
}

// WriteMaskFor returns the color write mask covering the first channels
// components of a format.
func WriteMaskFor(channels int) gputypes.ColorWriteMask {
	switch {
	case channels >= 4:
		return gputypes.ColorWriteMaskAll
	case channels == 3:
		return gputypes.ColorWriteMaskRed | gputypes.ColorWriteMaskGreen | gputypes.ColorWriteMaskBlue
	case channels == 2:
		return gputypes.ColorWriteMaskRed | gputypes.ColorWriteMaskGreen
	case channels == 1:
		return gputypes.ColorWriteMaskRed
	default:
		return gputypes.ColorWriteMaskNone
	}
}

// ComponentFlags converts a WebGPU write mask into Vulkan color component
// flags. Both use the same bit layout; the conversion is spelled out so a
// change on either side shows up here.
func ComponentFlags(m gputypes.ColorWriteMask) vk.ColorComponentFlags {
	var f vk.ColorComponentFlags
	if m&gputypes.ColorWriteMaskRed != 0 {
		f |= vk.ColorComponentFlags(vk.ColorComponentRBit)
	}
	if m&gputypes.ColorWriteMaskGreen != 0 {
		f |= vk.ColorComponentFlags(vk.ColorComponentGBit)
	}
	if m&gputypes.ColorWriteMaskBlue != 0 {
		f |= vk.ColorComponentFlags(vk.ColorComponentBBit)
	}
	if m&gputypes.ColorWriteMaskAlpha != 0 {
		f |= vk.ColorComponentFlags(vk.ColorComponentABit)
	}
	return f
}

// WriteMaskFromFlags is the inverse of ComponentFlags.
func WriteMaskFromFlags(f vk.ColorComponentFlags) gputypes.ColorWriteMask {
	var m gputypes.ColorWriteMask
	if f&vk.ColorComponentFlags(vk.ColorComponentRBit) != 0 {
		m |= gputypes.ColorWriteMaskRed
	}
	if f&vk.ColorComponentFlags(vk.ColorComponentGBit) != 0 {
		m |= gputypes.ColorWriteMaskGreen
	}
	if f&vk.ColorComponentFlags(vk.ColorComponentBBit) != 0 {
		m |= gputypes.ColorWriteMaskBlue
	}
	if f&vk.ColorComponentFlags(vk.ColorComponentABit) != 0 {
		m |= gputypes.ColorWriteMaskAlpha
	}
	return m
}
