package blendstate

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal/vulkan/vk"
)

// baseFactors lists every blend factor that does not read the second
// fragment output, in enum order.
var baseFactors = [...]vk.BlendFactor{
	vk.BlendFactorZero,
	vk.BlendFactorOne,
	vk.BlendFactorSrcColor,
	vk.BlendFactorOneMinusSrcColor,
	vk.BlendFactorDstColor,
	vk.BlendFactorOneMinusDstColor,
	vk.BlendFactorSrcAlpha,
	vk.BlendFactorOneMinusSrcAlpha,
	vk.BlendFactorDstAlpha,
	vk.BlendFactorOneMinusDstAlpha,
	vk.BlendFactorConstantColor,
	vk.BlendFactorOneMinusConstantColor,
	vk.BlendFactorConstantAlpha,
	vk.BlendFactorOneMinusConstantAlpha,
	vk.BlendFactorSrcAlphaSaturate,
}

// alphaFactors is the set of factors whose value comes from an alpha
// component only.
var alphaFactors = [...]vk.BlendFactor{
	vk.BlendFactorSrcAlpha,
	vk.BlendFactorOneMinusSrcAlpha,
	vk.BlendFactorDstAlpha,
	vk.BlendFactorOneMinusDstAlpha,
	vk.BlendFactorConstantAlpha,
	vk.BlendFactorOneMinusConstantAlpha,
	vk.BlendFactorSrcAlphaSaturate,
	vk.BlendFactorSrc1Alpha,
	vk.BlendFactorOneMinusSrc1Alpha,
}

var allOps = [...]vk.BlendOp{
	vk.BlendOpAdd,
	vk.BlendOpSubtract,
	vk.BlendOpReverseSubtract,
	vk.BlendOpMin,
	vk.BlendOpMax,
}

// Factors returns a fresh copy of the base factor list.
func Factors() []vk.BlendFactor {
	out := make([]vk.BlendFactor, len(baseFactors))
	copy(out, baseFactors[:])
	return out
}

// AlphaFactors returns a fresh copy of the alpha-specific factor set.
func AlphaFactors() []vk.BlendFactor {
	out := make([]vk.BlendFactor, len(alphaFactors))
	copy(out, alphaFactors[:])
	return out
}

// Ops returns a fresh copy of the blend operation list.
func Ops() []vk.BlendOp {
	out := make([]vk.BlendOp, len(allOps))
	copy(out, allOps[:])
	return out
}

// IsAlphaFactor reports whether f reads an alpha component only.
func IsAlphaFactor(f vk.BlendFactor) bool {
	for _, a := range alphaFactors {
		if a == f {
			return true
		}
	}
	return false
}

// IsDualSourceFactor reports whether f reads the second fragment output.
func IsDualSourceFactor(f vk.BlendFactor) bool {
	switch f {
	case vk.BlendFactorSrc1Color, vk.BlendFactorOneMinusSrc1Color,
		vk.BlendFactorSrc1Alpha, vk.BlendFactorOneMinusSrc1Alpha:
		return true
	}
	return false
}

// DualSourceCounterpart maps a destination factor onto the src1 factor that
// takes its place in a dual-source candidate set. Factors without a
// counterpart are returned unchanged, and no counterpart is itself a key,
// so applying the mapping twice is the same as applying it once.
func DualSourceCounterpart(f vk.BlendFactor) vk.BlendFactor {
	switch f {
	case vk.BlendFactorOneMinusDstColor:
		return vk.BlendFactorOneMinusSrc1Color
	case vk.BlendFactorOneMinusDstAlpha:
		return vk.BlendFactorOneMinusSrc1Alpha
	case vk.BlendFactorDstColor:
		return vk.BlendFactorSrc1Color
	case vk.BlendFactorDstAlpha:
		return vk.BlendFactorSrc1Alpha
	}
	return f
}

// GenericFactor maps a src1 factor onto the first-source factor with the
// same role. Other factors are returned unchanged.
func GenericFactor(f vk.BlendFactor) vk.BlendFactor {
	switch f {
	case vk.BlendFactorSrc1Color:
		return vk.BlendFactorSrcColor
	case vk.BlendFactorOneMinusSrc1Color:
		return vk.BlendFactorOneMinusSrcColor
	case vk.BlendFactorSrc1Alpha:
		return vk.BlendFactorSrcAlpha
	case vk.BlendFactorOneMinusSrc1Alpha:
		return vk.BlendFactorOneMinusSrcAlpha
	}
	return f
}

func webgpuFactor(f vk.BlendFactor) (gputypes.BlendFactor, bool) {
	switch f {
	case vk.BlendFactorZero:
		return gputypes.BlendFactorZero, true
	case vk.BlendFactorOne:
		return gputypes.BlendFactorOne, true
	case vk.BlendFactorSrcColor:
		return gputypes.BlendFactorSrc, true
	case vk.BlendFactorOneMinusSrcColor:
		return gputypes.BlendFactorOneMinusSrc, true
	case vk.BlendFactorDstColor:
		return gputypes.BlendFactorDst, true
	case vk.BlendFactorOneMinusDstColor:
		return gputypes.BlendFactorOneMinusDst, true
	case vk.BlendFactorSrcAlpha:
		return gputypes.BlendFactorSrcAlpha, true
	case vk.BlendFactorOneMinusSrcAlpha:
		return gputypes.BlendFactorOneMinusSrcAlpha, true
	case vk.BlendFactorDstAlpha:
		return gputypes.BlendFactorDstAlpha, true
	case vk.BlendFactorOneMinusDstAlpha:
		return gputypes.BlendFactorOneMinusDstAlpha, true
	case vk.BlendFactorConstantColor:
		return gputypes.BlendFactorConstant, true
	case vk.BlendFactorOneMinusConstantColor:
		return gputypes.BlendFactorOneMinusConstant, true
	case vk.BlendFactorSrcAlphaSaturate:
		return gputypes.BlendFactorSrcAlphaSaturated, true
	}
	return gputypes.BlendFactorUndefined, false
}

func webgpuOp(op vk.BlendOp) (gputypes.BlendOperation, bool) {
	switch op {
	case vk.BlendOpAdd:
		return gputypes.BlendOperationAdd, true
	case vk.BlendOpSubtract:
		return gputypes.BlendOperationSubtract, true
	case vk.BlendOpReverseSubtract:
		return gputypes.BlendOperationReverseSubtract, true
	case vk.BlendOpMin:
		return gputypes.BlendOperationMin, true
	case vk.BlendOpMax:
		return gputypes.BlendOperationMax, true
	}
	return gputypes.BlendOperationUndefined, false
}
