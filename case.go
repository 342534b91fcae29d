package blendcts

import (
	"context"
	"fmt"

	"github.com/gogpu/blendcts/compare"
	"github.com/gogpu/blendcts/driver"
	"github.com/gogpu/blendcts/format"
	"github.com/gogpu/wgpu/hal/vulkan/vk"
)

// GroupName is the group every case is registered under.
const GroupName = "multi_attachments"

// Params selects the attachment format and the pipeline construction type
// of a case.
type Params struct {
	Format       vk.Format
	Construction driver.ConstructionType
}

// Case is one registered check: a format under a construction type.
type Case struct {
	params Params
	info   format.Info
}

// NewCase validates p.
func NewCase(p Params) (*Case, error) {
	info, ok := format.Lookup(p.Format)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownFormat, p.Format)
	}
	if p.Construction < 0 || int(p.Construction) >= len(driver.ConstructionTypes()) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownConstruction, int(p.Construction))
	}
	return &Case{params: p, info: info}, nil
}

// Cases returns one case per blend format, in catalogue order.
func Cases(ct driver.ConstructionType) []*Case {
	formats := format.BlendFormats()
	out := make([]*Case, 0, len(formats))
	for _, f := range formats {
		c, err := NewCase(Params{Format: f, Construction: ct})
		if err != nil {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Name returns "multi_attachments/<format>", e.g.
// "multi_attachments/r8g8b8a8_unorm".
func (c *Case) Name() string {
	return GroupName + "/" + c.info.CaseName()
}

// Params returns the case parameters.
func (c *Case) Params() Params { return c.params }

// CheckSupport reports, as a *driver.NotSupportedError, the first reason
// drv cannot run the case.
func (c *Case) CheckSupport(drv driver.Driver) error {
	caps := drv.Capabilities()
	for _, ext := range c.params.Construction.Required() {
		if !caps.HasExtension(ext) {
			return driver.NotSupported("Extension %s is not supported", ext)
		}
	}
	if caps.MaxFragmentOutputAttachments < compare.Attachments {
		return driver.NotSupported("Used attachment count exceeds maxFragmentOutputAttachments limit")
	}
	if !caps.Features.DualSrcBlend {
		return driver.NotSupported("Dual-Source blending not supported")
	}

	support := drv.FormatSupport(c.params.Format)
	if !support.Blend() {
		return driver.NotSupported("Unsupported color blending format: %s", c.info.Name)
	}
	if !support.Transfer() {
		return driver.NotSupported("Unsupported color transfer format: %s", c.info.Name)
	}
	return nil
}

// CreateInstance opens drv for the case. The instance owns drv until
// Close.
func (c *Case) CreateInstance(ctx context.Context, drv driver.Driver, opts ...Option) (*Instance, error) {
	activate(drv)
	cfg := driver.Config{Construction: c.params.Construction, Format: c.params.Format}
	if err := drv.Open(ctx, cfg); err != nil {
		deactivate(drv)
		return nil, fmt.Errorf("open %s: %w", drv.Name(), err)
	}
	layout, err := compare.NewLayout(c.params.Format, compare.Width, compare.Height)
	if err != nil {
		_ = drv.Close()
		deactivate(drv)
		return nil, err
	}

	o := newOptions(opts)
	Logger().Info("blendcts: instance created",
		"case", c.Name(), "driver", drv.Name(), "construction", c.params.Construction.String(),
		"seed", o.baseSeed(), "limit", o.limit)
	return &Instance{
		drv:    drv,
		c:      c,
		opts:   o,
		layout: layout,
		draw:   driver.DefaultDraw(c.params.Format),
	}, nil
}
