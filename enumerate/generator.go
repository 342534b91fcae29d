package enumerate

import (
	"fmt"
	"slices"

	"github.com/gogpu/blendcts/blendstate"
	"github.com/gogpu/blendcts/format"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal/vulkan/vk"
)

// Mask selects which factor axes draw from dual-source candidate sets.
type Mask uint32

const (
	SrcColorFactor Mask = 1 << iota
	DstColorFactor
	SrcAlphaFactor
	DstAlphaFactor

	AllFactors Mask = SrcColorFactor | DstColorFactor | SrcAlphaFactor | DstAlphaFactor
)

// Axis names one dimension of the enumeration, in odometer order: the
// last axis turns fastest.
type Axis int

const (
	AxisSrcColor Axis = iota
	AxisDstColor
	AxisSrcAlpha
	AxisDstAlpha
	AxisColorOp
	AxisAlphaOp

	axisCount = 6
)

var axisNames = [axisCount]string{"src color", "dst color", "src alpha", "dst alpha", "color op", "alpha op"}

// String returns the axis name.
func (a Axis) String() string {
	if a < 0 || a >= axisCount {
		return fmt.Sprintf("Axis(%d)", int(a))
	}
	return axisNames[a]
}

// axis is one odometer wheel: the candidate indices it enumerates and the
// position of the wheel. values is never written after construction, so
// copies of a Generator may share it.
type axis struct {
	values []uint32
	cur    int
}

func (a *axis) value() uint32 { return a.values[a.cur] }

// Sets holds the candidate sets a Generator was built from.
type Sets struct {
	SrcColor []vk.BlendFactor
	DstColor []vk.BlendFactor
	SrcAlpha []vk.BlendFactor
	DstAlpha []vk.BlendFactor
	ColorOps []vk.BlendOp
	AlphaOps []vk.BlendOp
}

type config struct {
	factors       []vk.BlendFactor
	ops           []vk.BlendOp
	excludeMinMax bool
}

// Option configures NewGenerator.
type Option func(*config)

// WithBaseFactors sets the supported factor list the color candidate sets
// are filtered from.
func WithBaseFactors(factors []vk.BlendFactor) Option {
	return func(c *config) { c.factors = factors }
}

// WithBaseOps sets the supported operation list.
func WithBaseOps(ops []vk.BlendOp) Option {
	return func(c *config) { c.ops = ops }
}

// WithExcludeMinMax drops MIN and MAX from both operation sets.
func WithExcludeMinMax(exclude bool) Option {
	return func(c *config) { c.excludeMinMax = exclude }
}

// Generator enumerates blend attachment states as a mixed-radix odometer
// over six axes. It is not safe for concurrent use.
//
// Copying a Generator by value yields an independent odometer over the
// same candidate sets.
type Generator struct {
	format    vk.Format
	hasAlpha  bool
	writeMask gputypes.ColorWriteMask
	mask      Mask

	sets Sets
	axes [axisCount]axis

	started   bool
	exhausted bool
	count     uint32

	max      [2]uint64
	maxKnown [2]bool
}

// NewGenerator builds the candidate sets for f and prepares the odometer.
// Factor axes enumerate at most limit candidates, operation axes at most
// limit/2. Without an alpha channel in f, both alpha factor axes and the
// alpha operation axis are pinned to a single value.
//
// An axis left with no candidates is a configuration error; in particular
// limit values of 0 and 1 are rejected.
func NewGenerator(mask Mask, f vk.Format, limit uint32, rnd Shuffler, opts ...Option) (*Generator, error) {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	info, ok := format.Lookup(f)
	if !ok {
		return nil, fmt.Errorf("%w: unknown format %d", ErrConfiguration, f)
	}

	g := &Generator{
		format:    f,
		hasAlpha:  info.HasAlpha(),
		writeMask: blendstate.WriteMaskFor(info.Channels),
		mask:      mask,
	}

	colorMode := Exclude
	if g.hasAlpha {
		colorMode = AsIs
	}

	var err error
	if g.sets.SrcColor, err = Factors(cfg.factors, mask&SrcColorFactor != 0, colorMode, rnd); err != nil {
		return nil, fmt.Errorf("%s: %w", AxisSrcColor, err)
	}
	if g.sets.DstColor, err = Factors(cfg.factors, mask&DstColorFactor != 0, colorMode, rnd); err != nil {
		return nil, fmt.Errorf("%s: %w", AxisDstColor, err)
	}
	if g.sets.SrcAlpha, err = Factors(cfg.factors, mask&SrcAlphaFactor != 0, Only, rnd); err != nil {
		return nil, fmt.Errorf("%s: %w", AxisSrcAlpha, err)
	}
	if g.sets.DstAlpha, err = Factors(cfg.factors, mask&DstAlphaFactor != 0, Only, rnd); err != nil {
		return nil, fmt.Errorf("%s: %w", AxisDstAlpha, err)
	}
	if g.sets.ColorOps, err = Ops(cfg.ops, rnd, cfg.excludeMinMax); err != nil {
		return nil, fmt.Errorf("%s: %w", AxisColorOp, err)
	}
	if g.sets.AlphaOps, err = Ops(cfg.ops, rnd, cfg.excludeMinMax); err != nil {
		return nil, fmt.Errorf("%s: %w", AxisAlphaOp, err)
	}

	alphaSize := func(n int) int {
		if g.hasAlpha {
			return n
		}
		return 1
	}
	sizes := [axisCount]struct {
		n     int
		limit uint32
	}{
		AxisSrcColor: {len(g.sets.SrcColor), limit},
		AxisDstColor: {len(g.sets.DstColor), limit},
		AxisSrcAlpha: {alphaSize(len(g.sets.SrcAlpha)), limit},
		AxisDstAlpha: {alphaSize(len(g.sets.DstAlpha)), limit},
		AxisColorOp:  {len(g.sets.ColorOps), limit / 2},
		AxisAlphaOp:  {alphaSize(len(g.sets.AlphaOps)), limit / 2},
	}
	for i, s := range sizes {
		g.axes[i].values = indices(s.n, s.limit)
		if len(g.axes[i].values) == 0 {
			return nil, fmt.Errorf("%w: %s axis is empty (%d candidates, limit %d)",
				ErrConfiguration, Axis(i), s.n, s.limit)
		}
	}

	logger().Debug("enumerate: generator ready",
		"format", info.Name, "mask", uint32(mask), "limit", limit, "sizes", g.AxisSizes())
	return g, nil
}

// indices returns 0..min(size, limit)-1.
func indices(size int, limit uint32) []uint32 {
	n := min(uint64(size), uint64(limit))
	out := make([]uint32, n)
	for i := range out {
		out[i] = uint32(i)
	}
	return out
}

// Next returns the next combination. The first call after construction or
// Reset returns the all-zero combination; later calls advance the last
// axis and carry into earlier ones. The second result is false once every
// combination has been produced.
func (g *Generator) Next() (blendstate.Descriptor, bool) {
	if g.exhausted {
		return blendstate.Descriptor{}, false
	}
	if !g.started {
		g.started = true
		g.count = 1
		return g.current(), true
	}
	for i := axisCount - 1; i >= 0; i-- {
		a := &g.axes[i]
		if a.cur++; a.cur < len(a.values) {
			g.count++
			return g.current(), true
		}
		a.cur = 0
	}
	g.exhausted = true
	return blendstate.Descriptor{}, false
}

// Reset rewinds the odometer. Candidate sets and cached maxima are kept.
func (g *Generator) Reset() {
	for i := range g.axes {
		g.axes[i].cur = 0
	}
	g.count = 0
	g.started = false
	g.exhausted = false
}

// Count returns how many combinations the current pass has produced.
func (g *Generator) Count() uint32 { return g.count }

// Max returns the number of combinations a full pass produces. With
// excludeZero set, combinations for which YieldsZero holds are not
// counted; that figure is found by running a throwaway copy of the
// odometer. Both figures are cached.
func (g *Generator) Max(excludeZero bool) uint64 {
	k := 0
	if excludeZero {
		k = 1
	}
	if g.maxKnown[k] {
		return g.max[k]
	}

	var n uint64
	if excludeZero {
		clone := *g
		clone.Reset()
		for d, ok := clone.Next(); ok; d, ok = clone.Next() {
			if !YieldsZero(d) {
				n++
			}
		}
	} else {
		n = 1
		for i := range g.axes {
			n *= uint64(len(g.axes[i].values))
		}
	}
	g.max[k], g.maxKnown[k] = n, true
	return n
}

// AxisSizes returns the number of values each axis enumerates.
func (g *Generator) AxisSizes() [axisCount]int {
	var out [axisCount]int
	for i := range g.axes {
		out[i] = len(g.axes[i].values)
	}
	return out
}

// Sets returns copies of the candidate sets.
func (g *Generator) Sets() Sets {
	return Sets{
		SrcColor: slices.Clone(g.sets.SrcColor),
		DstColor: slices.Clone(g.sets.DstColor),
		SrcAlpha: slices.Clone(g.sets.SrcAlpha),
		DstAlpha: slices.Clone(g.sets.DstAlpha),
		ColorOps: slices.Clone(g.sets.ColorOps),
		AlphaOps: slices.Clone(g.sets.AlphaOps),
	}
}

// Format returns the target format.
func (g *Generator) Format() vk.Format { return g.format }

// HasAlpha reports whether the target format has an alpha channel.
func (g *Generator) HasAlpha() bool { return g.hasAlpha }

func (g *Generator) current() blendstate.Descriptor {
	d := blendstate.Descriptor{
		BlendEnable:    true,
		SrcColorFactor: g.sets.SrcColor[g.axes[AxisSrcColor].value()],
		DstColorFactor: g.sets.DstColor[g.axes[AxisDstColor].value()],
		SrcAlphaFactor: vk.BlendFactorZero,
		DstAlphaFactor: vk.BlendFactorZero,
		ColorOp:        g.sets.ColorOps[g.axes[AxisColorOp].value()],
		AlphaOp:        g.sets.AlphaOps[g.axes[AxisAlphaOp].value()],
		WriteMask:      g.writeMask,
	}
	if g.hasAlpha {
		d.SrcAlphaFactor = g.sets.SrcAlpha[g.axes[AxisSrcAlpha].value()]
		d.DstAlphaFactor = g.sets.DstAlpha[g.axes[AxisDstAlpha].value()]
	}
	return d
}

// YieldsZero reports whether d blends every input to zero color:
// src*dst - dst*src under SUBTRACT, the same pair swapped under
// REVERSE_SUBTRACT, or two ZERO color factors.
func YieldsZero(d blendstate.Descriptor) bool {
	zero := false
	switch d.ColorOp {
	case vk.BlendOpSubtract:
		zero = d.SrcColorFactor == vk.BlendFactorDstColor && d.DstColorFactor == vk.BlendFactorSrcColor
	case vk.BlendOpReverseSubtract:
		zero = d.SrcColorFactor == vk.BlendFactorSrcColor && d.DstColorFactor == vk.BlendFactorDstColor
	}
	return zero || (d.SrcColorFactor == vk.BlendFactorZero && d.DstColorFactor == vk.BlendFactorZero)
}
