package blendstate

import (
	"strings"

	"github.com/gogpu/wgpu/hal/vulkan/vk"
)

// unknownName is printed for values outside the closed factor and op sets.
const unknownName = "???"

// FactorName returns the short code of a blend factor ("z", "1msc", "s1a").
func FactorName(f vk.BlendFactor) string {
	switch f {
	case vk.BlendFactorZero:
		return "z"
	case vk.BlendFactorOne:
		return "o"
	case vk.BlendFactorSrcColor:
		return "sc"
	case vk.BlendFactorOneMinusSrcColor:
		return "1msc"
	case vk.BlendFactorDstColor:
		return "dc"
	case vk.BlendFactorOneMinusDstColor:
		return "1mdc"
	case vk.BlendFactorSrcAlpha:
		return "sa"
	case vk.BlendFactorOneMinusSrcAlpha:
		return "1msa"
	case vk.BlendFactorDstAlpha:
		return "da"
	case vk.BlendFactorOneMinusDstAlpha:
		return "1mda"
	case vk.BlendFactorConstantColor:
		return "cc"
	case vk.BlendFactorOneMinusConstantColor:
		return "1mcc"
	case vk.BlendFactorConstantAlpha:
		return "ca"
	case vk.BlendFactorOneMinusConstantAlpha:
		return "1mca"
	case vk.BlendFactorSrcAlphaSaturate:
		return "sas"
	case vk.BlendFactorOneMinusSrc1Color:
		return "1ms1c"
	case vk.BlendFactorOneMinusSrc1Alpha:
		return "1ms1a"
	case vk.BlendFactorSrc1Color:
		return "s1c"
	case vk.BlendFactorSrc1Alpha:
		return "s1a"
	}
	return unknownName
}

// OpName returns the short code of a blend operation ("add", "rsub").
func OpName(op vk.BlendOp) string {
	switch op {
	case vk.BlendOpAdd:
		return "add"
	case vk.BlendOpSubtract:
		return "sub"
	case vk.BlendOpReverseSubtract:
		return "rsub"
	case vk.BlendOpMin:
		return "min"
	case vk.BlendOpMax:
		return "max"
	}
	return unknownName
}

// Name returns the compact identifier of d used in logs and failure
// messages:
//
//	color_<src>_<dst>_<op>_alpha_<src>_<dst>_<op>
func (d Descriptor) Name() string {
	var b strings.Builder
	b.Grow(48)
	b.WriteString("color_")
	b.WriteString(FactorName(d.SrcColorFactor))
	b.WriteByte('_')
	b.WriteString(FactorName(d.DstColorFactor))
	b.WriteByte('_')
	b.WriteString(OpName(d.ColorOp))
	b.WriteString("_alpha_")
	b.WriteString(FactorName(d.SrcAlphaFactor))
	b.WriteByte('_')
	b.WriteString(FactorName(d.DstAlphaFactor))
	b.WriteByte('_')
	b.WriteString(OpName(d.AlphaOp))
	return b.String()
}

// String implements fmt.Stringer.
func (d Descriptor) String() string { return d.Name() }
