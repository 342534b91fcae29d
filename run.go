package blendcts

import (
	"context"

	"github.com/gogpu/blendcts/driver"
)

// Run checks support, opens drv and iterates one case. A configuration
// the device cannot run yields a NotSupported status and a nil error;
// configuration, device and cancellation errors are returned.
func Run(ctx context.Context, drv driver.Driver, p Params, opts ...Option) (Status, error) {
	c, err := NewCase(p)
	if err != nil {
		return Status{}, err
	}
	if err := c.CheckSupport(drv); err != nil {
		return notSupportedOr(err)
	}

	inst, err := c.CreateInstance(ctx, drv, opts...)
	if err != nil {
		return notSupportedOr(err)
	}
	defer func() {
		_ = inst.Close()
	}()

	status, err := inst.Iterate(ctx)
	if err != nil {
		return Status{}, err
	}
	Logger().Info("blendcts: case finished", "case", c.Name(), "status", status.String())
	return status, nil
}
