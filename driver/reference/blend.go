package reference

import (
	"github.com/gogpu/blendcts/blendstate"
	"github.com/gogpu/blendcts/format"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal/vulkan/vk"
)

// fragment carries the inputs of one blend: both source colors, the
// destination color read from the attachment, and the blend constants.
type fragment struct {
	src0, src1 format.Vec4
	dst        format.Vec4
	constants  format.Vec4
}

// factor evaluates blend factor f for channel ch (3 is alpha).
func (fr *fragment) factor(f vk.BlendFactor, ch int) float32 {
	switch f {
	case vk.BlendFactorZero:
		return 0
	case vk.BlendFactorOne:
		return 1
	case vk.BlendFactorSrcColor:
		return fr.src0[ch]
	case vk.BlendFactorOneMinusSrcColor:
		return 1 - fr.src0[ch]
	case vk.BlendFactorDstColor:
		return fr.dst[ch]
	case vk.BlendFactorOneMinusDstColor:
		return 1 - fr.dst[ch]
	case vk.BlendFactorSrcAlpha:
		return fr.src0[3]
	case vk.BlendFactorOneMinusSrcAlpha:
		return 1 - fr.src0[3]
	case vk.BlendFactorDstAlpha:
		return fr.dst[3]
	case vk.BlendFactorOneMinusDstAlpha:
		return 1 - fr.dst[3]
	case vk.BlendFactorConstantColor:
		return fr.constants[ch]
	case vk.BlendFactorOneMinusConstantColor:
		return 1 - fr.constants[ch]
	case vk.BlendFactorConstantAlpha:
		return fr.constants[3]
	case vk.BlendFactorOneMinusConstantAlpha:
		return 1 - fr.constants[3]
	case vk.BlendFactorSrcAlphaSaturate:
		if ch == 3 {
			return 1
		}
		return min(fr.src0[3], 1-fr.dst[3])
	case vk.BlendFactorSrc1Color:
		return fr.src1[ch]
	case vk.BlendFactorOneMinusSrc1Color:
		return 1 - fr.src1[ch]
	case vk.BlendFactorSrc1Alpha:
		return fr.src1[3]
	case vk.BlendFactorOneMinusSrc1Alpha:
		return 1 - fr.src1[3]
	}
	return 0
}

func combine(op vk.BlendOp, s, sf, d, df float32) float32 {
	switch op {
	case vk.BlendOpAdd:
		return s*sf + d*df
	case vk.BlendOpSubtract:
		return s*sf - d*df
	case vk.BlendOpReverseSubtract:
		return d*df - s*sf
	case vk.BlendOpMin:
		return min(s, d)
	case vk.BlendOpMax:
		return max(s, d)
	}
	return s
}

// blend returns the color state d writes for fr.
//
// Fixed-point attachments clamp the inputs and the factors to the range
// of the format first. Channels outside the write mask keep the
// destination value.
func blend(info format.Info, d blendstate.Descriptor, fr fragment) format.Vec4 {
	if !d.BlendEnable {
		return mask(d.WriteMask, fr.src0, fr.dst)
	}
	fixed := info.Class == format.Unorm || info.Class == format.Snorm || info.Class == format.Srgb
	if fixed {
		fr.src0 = info.Clamp(fr.src0)
		fr.src1 = info.Clamp(fr.src1)
		fr.dst = info.Clamp(fr.dst)
		fr.constants = info.Clamp(fr.constants)
	}
	clampFactor := func(v float32) float32 {
		if !fixed {
			return v
		}
		var c format.Vec4
		c[0] = v
		return info.Clamp(c)[0]
	}

	var out format.Vec4
	for ch := 0; ch < 3; ch++ {
		sf := clampFactor(fr.factor(d.SrcColorFactor, ch))
		df := clampFactor(fr.factor(d.DstColorFactor, ch))
		out[ch] = combine(d.ColorOp, fr.src0[ch], sf, fr.dst[ch], df)
	}
	sf := clampFactor(fr.factor(d.SrcAlphaFactor, 3))
	df := clampFactor(fr.factor(d.DstAlphaFactor, 3))
	out[3] = combine(d.AlphaOp, fr.src0[3], sf, fr.dst[3], df)
	return mask(d.WriteMask, out, fr.dst)
}

var maskBits = [4]gputypes.ColorWriteMask{
	gputypes.ColorWriteMaskRed,
	gputypes.ColorWriteMaskGreen,
	gputypes.ColorWriteMaskBlue,
	gputypes.ColorWriteMaskAlpha,
}

func mask(m gputypes.ColorWriteMask, c, dst format.Vec4) format.Vec4 {
	for ch, bit := range maskBits {
		if m&bit == 0 {
			c[ch] = dst[ch]
		}
	}
	return c
}
