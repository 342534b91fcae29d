package driver

import (
	"context"

	"github.com/gogpu/blendcts/blendstate"
	"github.com/gogpu/blendcts/compare"
	"github.com/gogpu/blendcts/format"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/wgpu/hal/vulkan/vk"
)

// Driver draws blend states and reads the attachments back.
//
// The call order is Open, CreateStorages, CreateRenderPassesAndFramebuffers,
// then per state RecreatePipeline twice and Execute, then Close. A Driver
// is not safe for concurrent use.
type Driver interface {
	// Name returns the registry name of the driver.
	Name() string

	// Info describes the device the driver runs on.
	Info() gpucontext.AdapterInfo

	// Capabilities reports device features, limits and extensions.
	Capabilities() Capabilities

	// FormatSupport reports the format features of f.
	FormatSupport(f vk.Format) FormatSupport

	// SupportedFactors returns the blend factors the device accepts for
	// attachments of format f. A nil result means all of them.
	SupportedFactors(f vk.Format) []vk.BlendFactor

	// SupportedOps returns the blend operations the device accepts for f.
	// A nil result means all of them.
	SupportedOps(f vk.Format) []vk.BlendOp

	// Open creates the device with the extensions of cfg.
	Open(ctx context.Context, cfg Config) error

	// CreateStorages allocates one image and four read-back buffers per
	// attachment.
	CreateStorages(formats []vk.Format) error

	// CreateRenderPassesAndFramebuffers prepares the generic render pass,
	// which leaves attachment 0 unused, and the dual-source render pass,
	// which writes attachment 0 only.
	CreateRenderPassesAndFramebuffers(formats []vk.Format) error

	// RecreatePipeline rebuilds the generic pipeline (state.Generic() on
	// every attachment) or the dual-source pipeline (state on attachment
	// 0). With check set it fails with ErrPipelineNotRebuilt if the new
	// pipeline has the handle of the old one.
	RecreatePipeline(dualSource bool, state blendstate.Descriptor, check bool) error

	// Execute records and submits one iteration and waits for it:
	// clear to the source colors and read back, clear to the clear
	// color and read back, generic draw and read back, dual-source draw
	// and read back.
	Execute(ctx context.Context, state blendstate.Descriptor, draw Draw) (*compare.Readback, error)

	// Close releases every resource. The driver may be opened again.
	Close() error
}

// Config describes the device a run opens.
type Config struct {
	Construction ConstructionType
	Format       vk.Format
}

// Extensions returns the device extensions enabled for c, in the order
// they are requested.
func (c Config) Extensions() []string {
	var ext []string
	if c.Construction.IsLibrary() {
		ext = append(ext, ExtGraphicsPipelineLibrary, ExtPipelineLibrary)
	}
	if c.Construction.IsShaderObject() {
		ext = append(ext, ExtShaderObject, ExtDynamicRendering, ExtColorWriteEnable)
	}
	return ext
}

// Format feature bits from Vulkan 1.1 that vk does not declare.
const (
	FormatFeatureTransferSrc vk.FormatFeatureFlags = 0x4000
	FormatFeatureTransferDst vk.FormatFeatureFlags = 0x8000
)

// FormatSupport wraps the format properties of one format.
type FormatSupport struct {
	Properties vk.FormatProperties
}

// Blend reports whether optimal-tiling images of the format can be
// blended color attachments.
func (s FormatSupport) Blend() bool {
	want := vk.FormatFeatureFlags(vk.FormatFeatureColorAttachmentBit | vk.FormatFeatureColorAttachmentBlendBit)
	return s.Properties.OptimalTilingFeatures&want == want
}

// Transfer reports whether optimal-tiling images of the format can be
// cleared and copied.
func (s FormatSupport) Transfer() bool {
	want := FormatFeatureTransferSrc | FormatFeatureTransferDst
	return s.Properties.OptimalTilingFeatures&want == want
}

// Draw holds the inputs of one iteration besides the blend state.
type Draw struct {
	// Generic is the color block of the generic draw; color N is written
	// to attachment N.
	Generic [compare.Attachments]format.Vec4
	// DualSource is the color block of the dual-source draw.
	DualSource [compare.Attachments]format.Vec4
	// Source are the colors the attachments are cleared to before the
	// source read-back.
	Source [compare.Attachments]format.Vec4
	// Clear is the color every attachment holds before the draws.
	Clear format.Vec4
	// BlendConstants feed the CONSTANT factors.
	BlendConstants [4]float32
}

// Vertices is the full-screen quad of two triangles, in clip space.
var Vertices = [6][4]float32{
	{-1, -1, 0, 1},
	{-1, 1, 0, 1},
	{1, 1, 0, 1},
	{1, 1, 0, 1},
	{1, -1, 0, 1},
	{-1, -1, 0, 1},
}

var genericColors = [compare.Attachments]format.Vec4{
	{0.1, 0, 0.5, 0.25},
	{0.6, 0.5, 0, 0.75},
	{0.2, 0, 0, 0.25},
	{0.8, 0, 0.5, 0.75},
}

// DefaultDraw returns the draw inputs of every iteration on format f.
// The dual-source block repeats the generic color of
// compare.ReusedColor.
func DefaultDraw(f vk.Format) Draw {
	d := Draw{
		Generic:        genericColors,
		Source:         genericColors,
		Clear:          format.DefaultClearColor(f),
		BlendConstants: [4]float32{0.333, 0.444, 0.555, 0.666},
	}
	for i := range d.DualSource {
		d.DualSource[i] = genericColors[compare.ReusedColor]
	}
	return d
}
