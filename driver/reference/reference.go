// Package reference implements driver.Driver on the CPU.
//
// The reference driver follows the Vulkan fixed-function blend rules for
// every format of the catalogue, rasterizes the draws with a top-left fill
// rule and routes fragment outputs the way the naga IR of the bound
// program declares them. It needs no GPU and is registered as
// driver.Reference on import.
package reference

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync/atomic"

	"github.com/gogpu/blendcts/blendstate"
	"github.com/gogpu/blendcts/compare"
	"github.com/gogpu/blendcts/driver"
	"github.com/gogpu/blendcts/format"
	"github.com/gogpu/blendcts/shader"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/wgpu/hal/vulkan/vk"
)

func init() {
	driver.Register(driver.Reference, func() driver.Driver {
		return New()
	})
}

// Option configures a reference driver.
type Option func(*Driver)

// WithCapabilities replaces the reported device capabilities.
func WithCapabilities(c driver.Capabilities) Option {
	return func(d *Driver) { d.caps = c }
}

// WithoutFormatFeatures strips the given features from the reported
// support of f.
func WithoutFormatFeatures(f vk.Format, features vk.FormatFeatureFlags) Option {
	return func(d *Driver) { d.stripped[f] |= features }
}

// DefaultCapabilities returns what the reference device reports unless
// told otherwise.
func DefaultCapabilities() driver.Capabilities {
	return driver.Capabilities{
		Features: driver.Features{
			DualSrcBlend:     true,
			IndependentBlend: true,
			DepthBiasClamp:   true,
			Synchronization2: true,
		},
		MaxFragmentOutputAttachments: 8,
		Extensions: []string{
			driver.ExtGraphicsPipelineLibrary,
			driver.ExtPipelineLibrary,
			driver.ExtShaderObject,
			driver.ExtDynamicRendering,
			driver.ExtColorWriteEnable,
		},
	}
}

// Driver is the CPU reference driver.
type Driver struct {
	caps     driver.Capabilities
	stripped map[vk.Format]vk.FormatFeatureFlags
	log      atomic.Pointer[slog.Logger]

	open     bool
	cfg      driver.Config
	programs *shader.Collection

	infos      []format.Info
	images     [][]byte
	passesDone bool

	generic    *pipeline
	dualSource *pipeline
	lastHandle uint64
	// reuseHandles hands out the previous handle again; it lets tests
	// exercise the rebuild check.
	reuseHandles bool
}

// New returns an unopened reference driver.
func New(opts ...Option) *Driver {
	d := &Driver{
		caps:     DefaultCapabilities(),
		stripped: make(map[vk.Format]vk.FormatFeatureFlags),
	}
	d.log.Store(slog.New(slog.DiscardHandler))
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// SetLogger sets the driver's logger. Pass nil to silence it.
// SetLogger is safe to call while the driver runs.
func (d *Driver) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	d.log.Store(l)
}

func (d *Driver) logger() *slog.Logger {
	return d.log.Load()
}

// Name returns driver.Reference.
func (d *Driver) Name() string { return driver.Reference }

// Info describes the reference device.
func (d *Driver) Info() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Name: "blendcts reference rasterizer", Type: gpucontext.AdapterTypeSoftware}
}

// Capabilities returns a copy of the reported capabilities.
func (d *Driver) Capabilities() driver.Capabilities {
	c := d.caps
	c.Extensions = slices.Clone(d.caps.Extensions)
	return c
}

const (
	renderableFeatures = vk.FormatFeatureFlags(vk.FormatFeatureColorAttachmentBit|
		vk.FormatFeatureColorAttachmentBlendBit|vk.FormatFeatureBlitSrcBit|vk.FormatFeatureBlitDstBit) |
		driver.FormatFeatureTransferSrc | driver.FormatFeatureTransferDst
	transferFeatures = driver.FormatFeatureTransferSrc | driver.FormatFeatureTransferDst
)

// FormatSupport reports blendable attachments for every renderable
// catalogue format and transfer support for the rest of the catalogue.
func (d *Driver) FormatSupport(f vk.Format) driver.FormatSupport {
	info, ok := format.Lookup(f)
	if !ok {
		return driver.FormatSupport{}
	}
	features := transferFeatures
	if info.Renderable {
		features = renderableFeatures
	}
	features &^= d.stripped[f]
	return driver.FormatSupport{Properties: vk.FormatProperties{OptimalTilingFeatures: features}}
}

// SupportedFactors returns nil: every factor is supported.
func (d *Driver) SupportedFactors(vk.Format) []vk.BlendFactor { return nil }

// SupportedOps returns nil: every operation is supported.
func (d *Driver) SupportedOps(vk.Format) []vk.BlendOp { return nil }

// Open checks that the reported extensions cover cfg and compiles the
// programs.
func (d *Driver) Open(ctx context.Context, cfg driver.Config) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	for _, ext := range cfg.Extensions() {
		if !d.caps.HasExtension(ext) {
			return driver.NotSupported("Extension %s is not supported", ext)
		}
	}
	programs, err := shader.Programs()
	if err != nil {
		return fmt.Errorf("reference: %w", err)
	}
	d.programs = programs
	d.cfg = cfg
	d.open = true
	d.logger().Debug("reference: device open",
		"construction", cfg.Construction.String(), "extensions", cfg.Extensions())
	return nil
}

// CreateStorages allocates one image per format.
func (d *Driver) CreateStorages(formats []vk.Format) error {
	if !d.open {
		return driver.ErrNotOpen
	}
	if len(formats) != compare.Attachments {
		return fmt.Errorf("reference: %d attachment formats, want %d", len(formats), compare.Attachments)
	}
	d.infos = d.infos[:0]
	d.images = d.images[:0]
	for _, f := range formats {
		info, ok := format.Lookup(f)
		if !ok || !info.Renderable {
			return driver.NotSupported("Unsupported color blending format: %s", format.Name(f))
		}
		d.infos = append(d.infos, info)
		d.images = append(d.images, make([]byte, compare.Width*compare.Height*info.Size))
	}
	return nil
}

// CreateRenderPassesAndFramebuffers validates that storages exist. The
// generic and dual-source passes differ only in which attachments they
// write, which the pipelines record.
func (d *Driver) CreateRenderPassesAndFramebuffers(formats []vk.Format) error {
	if !d.open {
		return driver.ErrNotOpen
	}
	if len(d.images) != len(formats) {
		return fmt.Errorf("reference: render passes for %d attachments, storages hold %d", len(formats), len(d.images))
	}
	if d.cfg.Construction.IsShaderObject() {
		d.logger().Debug("reference: dynamic rendering, no render pass objects")
	}
	d.passesDone = true
	return nil
}

// RecreatePipeline bakes a new pipeline. Shader-object construction types
// bake nothing here; Execute applies the state as dynamic state.
func (d *Driver) RecreatePipeline(dualSource bool, state blendstate.Descriptor, check bool) error {
	if !d.passesDone {
		return driver.ErrNotOpen
	}
	if d.cfg.Construction.IsShaderObject() {
		d.logger().Debug("reference: blend state left dynamic", "dual", dualSource, "state", state.Name())
		return nil
	}

	old := d.generic
	if dualSource {
		old = d.dualSource
	}

	p, err := d.bake(dualSource, state)
	if err != nil {
		return err
	}
	if d.reuseHandles && old != nil {
		p.handle = old.handle
	} else {
		d.lastHandle++
		p.handle = d.lastHandle
	}
	if check && old != nil && p.handle == old.handle {
		return fmt.Errorf("%w: handle %d", driver.ErrPipelineNotRebuilt, p.handle)
	}

	if dualSource {
		d.dualSource = p
	} else {
		d.generic = p
	}
	d.logger().Debug("reference: pipeline built",
		"dual", dualSource, "handle", p.handle, "state", state.Name())
	return nil
}

func (d *Driver) bake(dualSource bool, state blendstate.Descriptor) (*pipeline, error) {
	name, targets := shader.GenericFrag, genericTargets(state)
	if dualSource {
		name, targets = shader.DualFrag, dualTargets(state)
	}
	prog, ok := d.programs.Get(name)
	if !ok {
		return nil, fmt.Errorf("reference: program %s missing", name)
	}
	return &pipeline{dualSource: dualSource, program: prog, targets: targets}, nil
}

// Execute runs the clears, both draws and all read-backs of one
// iteration.
func (d *Driver) Execute(ctx context.Context, state blendstate.Descriptor, draw driver.Draw) (*compare.Readback, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !d.passesDone {
		return nil, driver.ErrNotOpen
	}

	generic, dual := d.generic, d.dualSource
	if d.cfg.Construction.IsShaderObject() {
		var err error
		if generic, err = d.bake(false, state); err != nil {
			return nil, err
		}
		if dual, err = d.bake(true, state); err != nil {
			return nil, err
		}
	}
	if generic == nil || dual == nil {
		return nil, fmt.Errorf("%w: execute before both pipelines were built", driver.ErrNotOpen)
	}

	rb := &compare.Readback{}
	d.clear(draw.Source[:])
	rb.Source = d.readback()

	var clearColors [compare.Attachments]format.Vec4
	for i := range clearColors {
		clearColors[i] = draw.Clear
	}
	d.clear(clearColors[:])
	rb.Dest = d.readback()

	d.draw(generic, &draw.Generic, draw.BlendConstants)
	rb.Generic = d.readback()

	d.draw(dual, &draw.DualSource, draw.BlendConstants)
	rb.DualSource = d.readback()
	return rb, nil
}

// Close releases every resource.
func (d *Driver) Close() error {
	d.open = false
	d.cfg = driver.Config{}
	d.programs = nil
	d.infos = nil
	d.images = nil
	d.passesDone = false
	d.generic = nil
	d.dualSource = nil
	d.lastHandle = 0
	return nil
}

func (d *Driver) clear(colors []format.Vec4) {
	for i, img := range d.images {
		copy(img, d.infos[i].Fill(compare.Width, compare.Height, colors[i]))
	}
}

func (d *Driver) readback() [][]byte {
	out := make([][]byte, len(d.images))
	for i, img := range d.images {
		out[i] = slices.Clone(img)
	}
	return out
}

func (d *Driver) draw(p *pipeline, colors *[compare.Attachments]format.Vec4, constants [4]float32) {
	verts := driver.Vertices[:]
	rasterize(verts, compare.Width, compare.Height, func(x, y int) {
		for i, t := range p.targets {
			if !t.write || i >= len(d.images) {
				continue
			}
			info := d.infos[i]
			off := (y*compare.Width + x) * info.Size
			px := d.images[i][off : off+info.Size]
			fr := fragment{
				src0:      p.colorFor(colors, uint32(i), 0),
				src1:      p.colorFor(colors, uint32(i), 1),
				dst:       info.Decode(px),
				constants: constants,
			}
			info.Encode(px, blend(info, t.state, fr))
		}
	})
}
