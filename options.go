package blendcts

import (
	"math"
	"path/filepath"
	"strings"

	"github.com/gogpu/blendcts/enumerate"
)

// Option configures a run.
//
// Example:
//
//	status, err := blendcts.Run(ctx, drv, params,
//	    blendcts.WithSeed(42),
//	    blendcts.WithLogFile("dual_blend_fail.qpa"))
type Option func(*options)

// options holds the run configuration.
type options struct {
	seed                uint64
	limit               uint32
	dualMask            enumerate.Mask
	logFile             string
	maxFailCount        uint32
	excludeYieldingZero bool
	dumpDir             string
	log                 *TestLog
}

// DefaultSeed replaces a base seed of 0.
const DefaultSeed = 13

// DefaultLimit caps the number of candidates per factor axis.
const DefaultLimit = 5

// DefaultDualMask selects the axes that draw from dual-source factor sets.
const DefaultDualMask = enumerate.DstColorFactor | enumerate.DstAlphaFactor

// defaultOptions returns the default run options.
func defaultOptions() options {
	return options{
		limit:        DefaultLimit,
		dualMask:     DefaultDualMask,
		maxFailCount: math.MaxUint32,
	}
}

func newOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = &TestLog{}
	}
	return o
}

// WithSeed sets the base seed of the shuffles. 0 selects DefaultSeed.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = seed
	}
}

// WithLimit sets how many candidates each factor axis enumerates.
// Operation axes enumerate limit/2.
func WithLimit(limit uint32) Option {
	return func(o *options) {
		o.limit = limit
	}
}

// WithDualMask selects which factor axes use dual-source candidates.
func WithDualMask(m enumerate.Mask) Option {
	return func(o *options) {
		o.dualMask = m
	}
}

// WithLogFile sets the name of the result log file. Only its base name
// matters: it must contain "dual_blend" for any per-iteration message to
// be logged, and then "pass", "warn" or "fail" select which ones.
func WithLogFile(name string) Option {
	return func(o *options) {
		o.logFile = name
	}
}

// WithMaxFailCount stops the run after n failed iterations.
func WithMaxFailCount(n uint32) Option {
	return func(o *options) {
		o.maxFailCount = n
	}
}

// WithExcludeYieldingZero skips states that blend every input to zero.
func WithExcludeYieldingZero(exclude bool) Option {
	return func(o *options) {
		o.excludeYieldingZero = exclude
	}
}

// WithDumpDir writes the attachments of every failing iteration to dir as
// PNG images.
func WithDumpDir(dir string) Option {
	return func(o *options) {
		o.dumpDir = dir
	}
}

// WithTestLog collects the messages of the run in l.
func WithTestLog(l *TestLog) Option {
	return func(o *options) {
		o.log = l
	}
}

// baseSeed returns the seed the shuffles use.
func (o *options) baseSeed() uint64 {
	if o.seed == 0 {
		return DefaultSeed
	}
	return o.seed
}

// logFlags are derived from the log file name.
type logFlags struct {
	pass, warn, fail bool
}

func (o *options) logFlags() logFlags {
	name := filepath.Base(o.logFile)
	if !strings.Contains(name, "dual_blend") {
		return logFlags{}
	}
	return logFlags{
		pass: strings.Contains(name, "pass"),
		warn: strings.Contains(name, "warn"),
		fail: strings.Contains(name, "fail"),
	}
}
