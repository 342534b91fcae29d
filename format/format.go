// Package format describes the color formats the blend checks render to.
//
// Each catalogue entry knows its channel count, texel size and numeric
// class, and can encode and decode a texel to and from a float32 RGBA
// vector the way a Vulkan implementation reads and writes attachment
// memory.
package format

import (
	"strings"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal/vulkan/vk"
)

// Vec4 is an RGBA color in the format's decoded numeric space.
type Vec4 [4]float32

// Class is the numeric interpretation of a format's channels.
type Class uint8

const (
	// Unorm channels hold unsigned normalized integers in [0, 1].
	Unorm Class = iota
	// Snorm channels hold signed normalized integers in [-1, 1].
	Snorm
	// Srgb channels hold sRGB-encoded color with a linear alpha.
	Srgb
	// Sfloat channels hold signed IEEE floats.
	Sfloat
	// Ufloat channels hold unsigned small floats.
	Ufloat
)

// String returns the class name.
func (c Class) String() string {
	switch c {
	case Unorm:
		return "unorm"
	case Snorm:
		return "snorm"
	case Srgb:
		return "srgb"
	case Sfloat:
		return "sfloat"
	case Ufloat:
		return "ufloat"
	default:
		return "unknown"
	}
}

// field locates one channel inside a packed texel.
type field struct {
	shift uint8
	bits  uint8
}

type layout uint8

const (
	// layoutArray stores channels as consecutive components of equal size.
	layoutArray layout = iota
	// layoutPacked stores channels as bit fields of one little-endian word.
	layoutPacked
	// layoutShared stores three 9-bit mantissas with a shared exponent.
	layoutShared
)

// Info describes one format of the catalogue.
type Info struct {
	Format   vk.Format
	Name     string
	Class    Class
	Channels int
	// Size is the texel size in bytes.
	Size int
	// Renderable is false for formats that can never be a blended color
	// attachment.
	Renderable bool
	// Texture is the WebGPU equivalent, or TextureFormatUndefined.
	Texture gputypes.TextureFormat

	layout layout
	// fields is indexed by R, G, B, A; a zero bits value marks an absent
	// channel. For array layouts only bits is meaningful.
	fields [4]field
}

// HasAlpha reports whether the format stores an alpha channel.
func (i Info) HasAlpha() bool { return i.Channels == 4 }

// CaseName returns the lower-case format name without the VK_FORMAT_
// prefix, e.g. "r8g8b8a8_unorm".
func (i Info) CaseName() string {
	return strings.ToLower(strings.TrimPrefix(i.Name, "VK_FORMAT_"))
}

func array(f vk.Format, name string, c Class, channels, bits int, tex gputypes.TextureFormat) Info {
	info := Info{
		Format:     f,
		Name:       name,
		Class:      c,
		Channels:   channels,
		Size:       channels * bits / 8,
		Renderable: true,
		Texture:    tex,
		layout:     layoutArray,
	}
	for ch := 0; ch < channels; ch++ {
		info.fields[ch] = field{bits: uint8(bits)}
	}
	return info
}

// packed builds a packed format; fields are given in R, G, B, A order.
func packed(f vk.Format, name string, c Class, size int, fields [4]field, tex gputypes.TextureFormat) Info {
	channels := 0
	for _, fl := range fields {
		if fl.bits != 0 {
			channels++
		}
	}
	return Info{
		Format:     f,
		Name:       name,
		Class:      c,
		Channels:   channels,
		Size:       size,
		Renderable: true,
		Texture:    tex,
		layout:     layoutPacked,
		fields:     fields,
	}
}

var catalogue = []Info{
	packed(vk.FormatR4g4UnormPack8, "VK_FORMAT_R4G4_UNORM_PACK8", Unorm, 1,
		[4]field{{4, 4}, {0, 4}, {}, {}}, gputypes.TextureFormatUndefined),
	packed(vk.FormatR4g4b4a4UnormPack16, "VK_FORMAT_R4G4B4A4_UNORM_PACK16", Unorm, 2,
		[4]field{{12, 4}, {8, 4}, {4, 4}, {0, 4}}, gputypes.TextureFormatUndefined),
	packed(vk.FormatR5g6b5UnormPack16, "VK_FORMAT_R5G6B5_UNORM_PACK16", Unorm, 2,
		[4]field{{11, 5}, {5, 6}, {0, 5}, {}}, gputypes.TextureFormatUndefined),
	packed(vk.FormatR5g5b5a1UnormPack16, "VK_FORMAT_R5G5B5A1_UNORM_PACK16", Unorm, 2,
		[4]field{{11, 5}, {6, 5}, {1, 5}, {0, 1}}, gputypes.TextureFormatUndefined),
	packed(vk.FormatA1r5g5b5UnormPack16, "VK_FORMAT_A1R5G5B5_UNORM_PACK16", Unorm, 2,
		[4]field{{10, 5}, {5, 5}, {0, 5}, {15, 1}}, gputypes.TextureFormatUndefined),

	array(vk.FormatR8Unorm, "VK_FORMAT_R8_UNORM", Unorm, 1, 8, gputypes.TextureFormatR8Unorm),
	array(vk.FormatR8Snorm, "VK_FORMAT_R8_SNORM", Snorm, 1, 8, gputypes.TextureFormatR8Snorm),
	array(vk.FormatR8Srgb, "VK_FORMAT_R8_SRGB", Srgb, 1, 8, gputypes.TextureFormatUndefined),
	array(vk.FormatR8g8Unorm, "VK_FORMAT_R8G8_UNORM", Unorm, 2, 8, gputypes.TextureFormatRG8Unorm),
	array(vk.FormatR8g8Snorm, "VK_FORMAT_R8G8_SNORM", Snorm, 2, 8, gputypes.TextureFormatRG8Snorm),
	array(vk.FormatR8g8Srgb, "VK_FORMAT_R8G8_SRGB", Srgb, 2, 8, gputypes.TextureFormatUndefined),
	array(vk.FormatR8g8b8Unorm, "VK_FORMAT_R8G8B8_UNORM", Unorm, 3, 8, gputypes.TextureFormatUndefined),
	array(vk.FormatR8g8b8Snorm, "VK_FORMAT_R8G8B8_SNORM", Snorm, 3, 8, gputypes.TextureFormatUndefined),
	array(vk.FormatR8g8b8Srgb, "VK_FORMAT_R8G8B8_SRGB", Srgb, 3, 8, gputypes.TextureFormatUndefined),
	array(vk.FormatR8g8b8a8Unorm, "VK_FORMAT_R8G8B8A8_UNORM", Unorm, 4, 8, gputypes.TextureFormatRGBA8Unorm),
	array(vk.FormatR8g8b8a8Snorm, "VK_FORMAT_R8G8B8A8_SNORM", Snorm, 4, 8, gputypes.TextureFormatRGBA8Snorm),
	array(vk.FormatR8g8b8a8Srgb, "VK_FORMAT_R8G8B8A8_SRGB", Srgb, 4, 8, gputypes.TextureFormatRGBA8UnormSrgb),

	packed(vk.FormatA2r10g10b10UnormPack32, "VK_FORMAT_A2R10G10B10_UNORM_PACK32", Unorm, 4,
		[4]field{{20, 10}, {10, 10}, {0, 10}, {30, 2}}, gputypes.TextureFormatUndefined),
	packed(vk.FormatA2b10g10r10UnormPack32, "VK_FORMAT_A2B10G10R10_UNORM_PACK32", Unorm, 4,
		[4]field{{0, 10}, {10, 10}, {20, 10}, {30, 2}}, gputypes.TextureFormatRGB10A2Unorm),

	array(vk.FormatR16Unorm, "VK_FORMAT_R16_UNORM", Unorm, 1, 16, gputypes.TextureFormatR16Unorm),
	array(vk.FormatR16Snorm, "VK_FORMAT_R16_SNORM", Snorm, 1, 16, gputypes.TextureFormatR16Snorm),
	array(vk.FormatR16Sfloat, "VK_FORMAT_R16_SFLOAT", Sfloat, 1, 16, gputypes.TextureFormatR16Float),
	array(vk.FormatR16g16Unorm, "VK_FORMAT_R16G16_UNORM", Unorm, 2, 16, gputypes.TextureFormatRG16Unorm),
	array(vk.FormatR16g16Snorm, "VK_FORMAT_R16G16_SNORM", Snorm, 2, 16, gputypes.TextureFormatRG16Snorm),
	array(vk.FormatR16g16Sfloat, "VK_FORMAT_R16G16_SFLOAT", Sfloat, 2, 16, gputypes.TextureFormatRG16Float),
	array(vk.FormatR16g16b16Unorm, "VK_FORMAT_R16G16B16_UNORM", Unorm, 3, 16, gputypes.TextureFormatUndefined),
	array(vk.FormatR16g16b16Snorm, "VK_FORMAT_R16G16B16_SNORM", Snorm, 3, 16, gputypes.TextureFormatUndefined),
	array(vk.FormatR16g16b16Sfloat, "VK_FORMAT_R16G16B16_SFLOAT", Sfloat, 3, 16, gputypes.TextureFormatUndefined),
	array(vk.FormatR16g16b16a16Unorm, "VK_FORMAT_R16G16B16A16_UNORM", Unorm, 4, 16, gputypes.TextureFormatRGBA16Unorm),
	array(vk.FormatR16g16b16a16Snorm, "VK_FORMAT_R16G16B16A16_SNORM", Snorm, 4, 16, gputypes.TextureFormatRGBA16Snorm),
	array(vk.FormatR16g16b16a16Sfloat, "VK_FORMAT_R16G16B16A16_SFLOAT", Sfloat, 4, 16, gputypes.TextureFormatRGBA16Float),

	array(vk.FormatR32Sfloat, "VK_FORMAT_R32_SFLOAT", Sfloat, 1, 32, gputypes.TextureFormatR32Float),
	array(vk.FormatR32g32Sfloat, "VK_FORMAT_R32G32_SFLOAT", Sfloat, 2, 32, gputypes.TextureFormatRG32Float),
	array(vk.FormatR32g32b32Sfloat, "VK_FORMAT_R32G32B32_SFLOAT", Sfloat, 3, 32, gputypes.TextureFormatUndefined),
	array(vk.FormatR32g32b32a32Sfloat, "VK_FORMAT_R32G32B32A32_SFLOAT", Sfloat, 4, 32, gputypes.TextureFormatRGBA32Float),

	packed(vk.FormatB10g11r11UfloatPack32, "VK_FORMAT_B10G11R11_UFLOAT_PACK32", Ufloat, 4,
		[4]field{{0, 11}, {11, 11}, {22, 10}, {}}, gputypes.TextureFormatRG11B10Ufloat),
	{
		Format:   vk.FormatE5b9g9r9UfloatPack32,
		Name:     "VK_FORMAT_E5B9G9R9_UFLOAT_PACK32",
		Class:    Ufloat,
		Channels: 3,
		Size:     4,
		Texture:  gputypes.TextureFormatRGB9E5Ufloat,
		layout:   layoutShared,
		fields:   [4]field{{0, 9}, {9, 9}, {18, 9}, {}},
	},
	packed(vk.FormatB4g4r4a4UnormPack16, "VK_FORMAT_B4G4R4A4_UNORM_PACK16", Unorm, 2,
		[4]field{{4, 4}, {8, 4}, {12, 4}, {0, 4}}, gputypes.TextureFormatUndefined),
	packed(vk.FormatB5g5r5a1UnormPack16, "VK_FORMAT_B5G5R5A1_UNORM_PACK16", Unorm, 2,
		[4]field{{1, 5}, {6, 5}, {11, 5}, {0, 1}}, gputypes.TextureFormatUndefined),
}

var byFormat = func() map[vk.Format]int {
	m := make(map[vk.Format]int, len(catalogue))
	for i, info := range catalogue {
		m[info.Format] = i
	}
	return m
}()

// Lookup returns the catalogue entry of f.
func Lookup(f vk.Format) (Info, bool) {
	i, ok := byFormat[f]
	if !ok {
		return Info{}, false
	}
	return catalogue[i], true
}

// ByCaseName finds a catalogue entry by its case name ("r8g8_unorm").
func ByCaseName(name string) (Info, bool) {
	name = strings.ToLower(name)
	for _, info := range catalogue {
		if info.CaseName() == name {
			return info, true
		}
	}
	return Info{}, false
}

// BlendFormats returns the formats the blend checks run on, in
// registration order.
func BlendFormats() []vk.Format {
	out := make([]vk.Format, len(catalogue))
	for i, info := range catalogue {
		out[i] = info.Format
	}
	return out
}

// Name returns the Vulkan name of f, or "VK_FORMAT_UNDEFINED" for formats
// outside the catalogue.
func Name(f vk.Format) string {
	if info, ok := Lookup(f); ok {
		return info.Name
	}
	return "VK_FORMAT_UNDEFINED"
}

// Channels returns the channel count of f, 0 when f is unknown.
func Channels(f vk.Format) int {
	info, _ := Lookup(f)
	return info.Channels
}

// HasAlpha reports whether f has an alpha channel.
func HasAlpha(f vk.Format) bool {
	return Channels(f) == 4
}
