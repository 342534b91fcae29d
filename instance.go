package blendcts

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/gogpu/blendcts/blendstate"
	"github.com/gogpu/blendcts/compare"
	"github.com/gogpu/blendcts/driver"
	"github.com/gogpu/blendcts/enumerate"
	"github.com/gogpu/blendcts/internal/dump"
	"github.com/gogpu/wgpu/hal/vulkan/vk"
)

// zeroDestMessage describes an iteration whose destination buffer reads
// back as all zeros.
const zeroDestMessage = "skip the zero-optimized result"

// Instance runs the iterations of one case on an opened driver. It is not
// safe for concurrent use.
type Instance struct {
	drv    driver.Driver
	c      *Case
	opts   options
	layout compare.Layout
	draw   driver.Draw
	closed bool
}

// Log returns the test log the instance writes to.
func (in *Instance) Log() *TestLog { return in.opts.log }

// Iterate enumerates the blend states of the case and checks each of
// them. Unsupported configurations reported by the driver become a
// NotSupported status; configuration and driver errors abort the run.
func (in *Instance) Iterate(ctx context.Context) (Status, error) {
	if in.closed {
		return Status{}, ErrInstanceClosed
	}
	f := in.c.params.Format
	flags := in.opts.logFlags()
	tl := in.opts.log

	formats := make([]vk.Format, compare.Attachments)
	for i := range formats {
		formats[i] = f
	}
	if err := in.drv.CreateStorages(formats); err != nil {
		return notSupportedOr(err)
	}
	if err := in.drv.CreateRenderPassesAndFramebuffers(formats); err != nil {
		return notSupportedOr(err)
	}

	gen, err := enumerate.NewGenerator(in.opts.dualMask, f, in.opts.limit,
		enumerate.NewSeeded(in.opts.baseSeed()),
		enumerate.WithBaseFactors(in.drv.SupportedFactors(f)),
		enumerate.WithBaseOps(in.drv.SupportedOps(f)))
	if err != nil {
		return Status{}, err
	}

	tl.Message(strconv.FormatUint(gen.Max(false), 10) + " will be processed")

	var (
		failCount uint32
		cur       uint64
		total     = gen.Max(in.opts.excludeYieldingZero)
		passed    []string
		failed    []string
	)
	for state, ok := gen.Next(); ok; state, ok = gen.Next() {
		if err := ctx.Err(); err != nil {
			return Status{}, err
		}
		if in.opts.excludeYieldingZero && enumerate.YieldsZero(state) {
			continue
		}
		cur++

		status, rb, err := in.iteratePerArgs(ctx, state, cur, total)
		if err != nil {
			return Status{}, fmt.Errorf("iteration %d (%s): %w", cur, state.Name(), err)
		}
		if status.IsFail() {
			failCount++
			if flags.fail {
				failed = append(failed, status.Description)
			}
			in.dump(cur, rb)
		} else if flags.pass || flags.warn {
			passed = append(passed, status.Description)
		}

		if in.opts.maxFailCount <= failCount {
			break
		}
	}

	if failCount == 0 {
		return Pass(strconv.FormatUint(cur, 10) + " iteration(s) processed"), nil
	}
	for _, msg := range failed {
		tl.Message(msg)
	}
	for _, msg := range passed {
		tl.Message(msg)
	}
	pct := uint32(float64(failCount) * 100 / float64(cur))
	return Fail(fmt.Sprintf("%d iteration(s) from %d failed (%d%%)", failCount, cur, pct)), nil
}

// iteratePerArgs draws state with both pipelines and compares the
// read-backs. iteration counts from 1; pipelines are checked for a real
// rebuild from the second iteration on.
func (in *Instance) iteratePerArgs(ctx context.Context, state blendstate.Descriptor, iteration, total uint64) (Status, *compare.Readback, error) {
	check := iteration > 1
	if err := in.drv.RecreatePipeline(false, state, check); err != nil {
		return Status{}, nil, err
	}
	if err := in.drv.RecreatePipeline(true, state, check); err != nil {
		return Status{}, nil, err
	}

	rb, err := in.drv.Execute(ctx, state, in.draw)
	if err != nil {
		return Status{}, nil, err
	}
	v, err := compare.Verify(*rb, in.layout)
	if err != nil {
		return Status{}, rb, err
	}

	Logger().Debug("blendcts: iteration",
		"n", iteration, "of", total, "state", state.Name(), "ok", v.OK, "degenerate", v.Degenerate)
	switch {
	case v.Degenerate:
		return QualityWarning(zeroDestMessage), rb, nil
	case v.OK:
		return Pass(""), rb, nil
	default:
		return Fail(v.Message(iteration, total, state.Name())), rb, nil
	}
}

func (in *Instance) dump(iteration uint64, rb *compare.Readback) {
	if in.opts.dumpDir == "" || rb == nil {
		return
	}
	prefix := fmt.Sprintf("%s_iter%d", in.c.info.CaseName(), iteration)
	if _, err := dump.Readback(in.opts.dumpDir, prefix, rb, in.layout); err != nil {
		Logger().Warn("blendcts: dump failed", "iteration", iteration, "err", err)
	}
}

// Close closes the driver.
func (in *Instance) Close() error {
	if in.closed {
		return nil
	}
	in.closed = true
	deactivate(in.drv)
	return in.drv.Close()
}

// notSupportedOr turns a driver's NotSupportedError into a status and
// returns every other error as is.
func notSupportedOr(err error) (Status, error) {
	var ns *driver.NotSupportedError
	if errors.As(err, &ns) {
		return NotSupported(ns.Reason), nil
	}
	return Status{}, err
}
