package format

import (
	"encoding/binary"
	"math"

	"github.com/x448/float16"
)

// Decode reads one texel from px. Missing color channels read as 0 and a
// missing alpha channel reads as 1. px must hold at least i.Size bytes.
func (i Info) Decode(px []byte) Vec4 {
	out := Vec4{0, 0, 0, 1}
	switch i.layout {
	case layoutArray:
		comp := i.Size / i.Channels
		for ch := 0; ch < i.Channels; ch++ {
			out[ch] = i.decodeComponent(ch, readUint(px[ch*comp:], comp))
		}
	case layoutPacked:
		word := readUint(px, i.Size)
		for ch, f := range i.fields {
			if f.bits == 0 {
				continue
			}
			out[ch] = i.decodeComponent(ch, (word>>f.shift)&mask(f.bits))
		}
	case layoutShared:
		word := readUint(px, 4)
		exp := int(word>>27) - sharedBias - sharedMantissa
		scale := float32(math.Ldexp(1, exp))
		for ch := 0; ch < 3; ch++ {
			f := i.fields[ch]
			out[ch] = float32((word>>f.shift)&mask(f.bits)) * scale
		}
	}
	return out
}

// Encode writes c into px with the rounding and clamping the format
// applies on store. Channels the format lacks are dropped.
func (i Info) Encode(px []byte, c Vec4) {
	switch i.layout {
	case layoutArray:
		comp := i.Size / i.Channels
		for ch := 0; ch < i.Channels; ch++ {
			writeUint(px[ch*comp:], comp, i.encodeComponent(ch, c[ch]))
		}
	case layoutPacked:
		var word uint32
		for ch, f := range i.fields {
			if f.bits == 0 {
				continue
			}
			word |= (i.encodeComponent(ch, c[ch]) & mask(f.bits)) << f.shift
		}
		writeUint(px, i.Size, word)
	case layoutShared:
		writeUint(px, 4, encodeShared(c))
	}
}

// Quantize returns c as it reads back after a store.
func (i Info) Quantize(c Vec4) Vec4 {
	var buf [16]byte
	i.Encode(buf[:i.Size], c)
	return i.Decode(buf[:i.Size])
}

// Clamp clamps c to the representable range of the format's class.
func (i Info) Clamp(c Vec4) Vec4 {
	switch i.Class {
	case Unorm, Srgb:
		for ch := range c {
			c[ch] = clamp(c[ch], 0, 1)
		}
	case Snorm:
		for ch := range c {
			c[ch] = clamp(c[ch], -1, 1)
		}
	}
	return c
}

func (i Info) bits(ch int) uint8 { return i.fields[ch].bits }

func (i Info) decodeComponent(ch int, v uint32) float32 {
	bits := i.bits(ch)
	switch i.Class {
	case Unorm:
		return float32(v) / float32(mask(bits))
	case Srgb:
		u := float32(v) / float32(mask(bits))
		if ch == 3 {
			return u
		}
		return SRGBToLinear(u)
	case Snorm:
		m := float32(mask(bits - 1))
		s := signExtend(v, bits)
		return max(float32(s)/m, -1)
	case Sfloat:
		if bits == 16 {
			return float16.Frombits(uint16(v)).Float32()
		}
		return math.Float32frombits(v)
	case Ufloat:
		return decodeUfloat(v, bits)
	}
	return 0
}

func (i Info) encodeComponent(ch int, c float32) uint32 {
	bits := i.bits(ch)
	switch i.Class {
	case Unorm:
		return roundUint(clamp(c, 0, 1) * float32(mask(bits)))
	case Srgb:
		c = clamp(c, 0, 1)
		if ch != 3 {
			c = LinearToSRGB(c)
		}
		return roundUint(c * float32(mask(bits)))
	case Snorm:
		m := float32(mask(bits - 1))
		s := int32(math.Round(float64(clamp(c, -1, 1) * m)))
		return uint32(s) & mask(bits)
	case Sfloat:
		if bits == 16 {
			return uint32(float16.Fromfloat32(c).Bits())
		}
		return math.Float32bits(c)
	case Ufloat:
		return encodeUfloat(c, bits)
	}
	return 0
}

// Unsigned small floats share the half-float exponent layout: 5 exponent
// bits with bias 15 above a 6 or 5 bit mantissa. They are converted
// through float16 by dropping the sign and the low mantissa bits.
func decodeUfloat(v uint32, bits uint8) float32 {
	drop := 10 - (bits - 5)
	h := uint16(v&mask(bits)) << drop
	return float16.Frombits(h).Float32()
}

func encodeUfloat(c float32, bits uint8) uint32 {
	if !(c > 0) {
		return 0
	}
	h := float16.Fromfloat32(c).Bits() & 0x7fff
	drop := 10 - (bits - 5)
	return uint32(h>>drop) & mask(bits)
}

const (
	sharedBias     = 15
	sharedMantissa = 9
	sharedExpMax   = 31
)

func encodeShared(c Vec4) uint32 {
	maxVal := float64(mask(sharedMantissa)) / float64(uint32(1)<<sharedMantissa) *
		math.Ldexp(1, sharedExpMax-sharedBias)
	var rgb [3]float64
	maxc := 0.0
	for ch := 0; ch < 3; ch++ {
		v := float64(c[ch])
		if !(v > 0) {
			v = 0
		}
		rgb[ch] = math.Min(v, maxVal)
		maxc = math.Max(maxc, rgb[ch])
	}
	expP := int(math.Max(-sharedBias-1, math.Floor(math.Log2(maxc)))) + 1 + sharedBias
	maxS := math.Floor(maxc/math.Ldexp(1, expP-sharedBias-sharedMantissa) + 0.5)
	expS := expP
	if maxS >= float64(uint32(1)<<sharedMantissa) {
		expS++
	}
	scale := math.Ldexp(1, expS-sharedBias-sharedMantissa)
	word := uint32(expS) << 27
	for ch := 0; ch < 3; ch++ {
		word |= (uint32(math.Floor(rgb[ch]/scale+0.5)) & mask(sharedMantissa)) << (ch * sharedMantissa)
	}
	return word
}

func mask(bits uint8) uint32 {
	if bits >= 32 {
		return math.MaxUint32
	}
	return uint32(1)<<bits - 1
}

func signExtend(v uint32, bits uint8) int32 {
	shift := 32 - bits
	return int32(v<<shift) >> shift
}

func roundUint(v float32) uint32 {
	return uint32(math.Round(float64(v)))
}

func clamp(v, lo, hi float32) float32 {
	if v != v {
		return lo
	}
	return min(max(v, lo), hi)
}

func readUint(b []byte, size int) uint32 {
	switch size {
	case 1:
		return uint32(b[0])
	case 2:
		return uint32(binary.LittleEndian.Uint16(b))
	default:
		return binary.LittleEndian.Uint32(b)
	}
}

func writeUint(b []byte, size int, v uint32) {
	switch size {
	case 1:
		b[0] = byte(v)
	case 2:
		binary.LittleEndian.PutUint16(b, uint16(v))
	default:
		binary.LittleEndian.PutUint32(b, v)
	}
}
