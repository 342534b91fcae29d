// Command dualblend runs the dual-source blend checks on a driver.
//
// Usage:
//
//	dualblend [-driver reference] [-construction monolithic] [-format r8g8b8a8_unorm]
//	          [-seed 0] [-limit 5] [-log dual_blend_fail.qpa] [-dump dir] [-jobs 0] [-list]
//
// Without -format every blend format is checked. With -list the enumerated
// blend states of one format are printed instead, next to their WebGPU
// equivalents.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"strings"

	"github.com/gogpu/blendcts"
	"github.com/gogpu/blendcts/driver"
	_ "github.com/gogpu/blendcts/driver/reference"
	"github.com/gogpu/blendcts/enumerate"
	"github.com/gogpu/blendcts/format"
	"github.com/gogpu/wgpu/hal/vulkan/vk"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func main() {
	var (
		drvName      = flag.String("driver", "", "driver name (default: best registered)")
		construction = flag.String("construction", "monolithic", "pipeline construction type")
		formatName   = flag.String("format", "", "format case name, e.g. r8g8b8a8_unorm (default: all)")
		seed         = flag.Uint64("seed", 0, "base seed, 0 selects 13")
		limit        = flag.Uint("limit", blendcts.DefaultLimit, "candidates per factor axis")
		logFile      = flag.String("log", "", "result log file name; selects logged messages")
		dumpDir      = flag.String("dump", "", "write attachments of failing iterations to this directory")
		maxFail      = flag.Uint("max-fail", 0, "stop a case after this many failures (0: never)")
		excludeZero  = flag.Bool("exclude-zero", false, "skip states that blend everything to zero")
		list         = flag.Bool("list", false, "print the enumerated states and exit")
		jobs         = flag.Int("jobs", 0, "cases run in parallel (0: GOMAXPROCS)")
		verbose      = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	blendcts.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	ct, err := driver.ParseConstructionType(*construction)
	if err != nil {
		log.Fatal(err)
	}
	limit32, err := toUint32("limit", *limit)
	if err != nil {
		log.Fatal(err)
	}
	maxFail32, err := toUint32("max-fail", *maxFail)
	if err != nil {
		log.Fatal(err)
	}

	var formats []format.Info
	if *formatName != "" {
		info, ok := format.ByCaseName(*formatName)
		if !ok {
			log.Fatalf("unknown format %q", *formatName)
		}
		formats = append(formats, info)
	} else {
		for _, f := range format.BlendFormats() {
			info, _ := format.Lookup(f)
			formats = append(formats, info)
		}
	}

	p := message.NewPrinter(language.English)
	newDriver := func() (driver.Driver, error) {
		drv, err := driver.Lookup(*drvName)
		if err != nil {
			return nil, fmt.Errorf("%w (available: %s)", err, strings.Join(driver.Available(), ", "))
		}
		return drv, nil
	}

	if *list {
		drv, err := newDriver()
		if err != nil {
			log.Fatal(err)
		}
		if err := listStates(p, drv, formats[0], limit32, *seed); err != nil {
			log.Fatal(err)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := []blendcts.Option{
		blendcts.WithSeed(*seed),
		blendcts.WithLimit(limit32),
		blendcts.WithLogFile(*logFile),
		blendcts.WithDumpDir(*dumpDir),
		blendcts.WithExcludeYieldingZero(*excludeZero),
	}
	if maxFail32 > 0 {
		opts = append(opts, blendcts.WithMaxFailCount(maxFail32))
	}

	params := make([]blendcts.Params, len(formats))
	for i, info := range formats {
		params[i] = blendcts.Params{Format: info.Format, Construction: ct}
	}
	counts := make(map[blendcts.Code]int)
	for _, r := range blendcts.RunAll(ctx, newDriver, params, *jobs, opts...) {
		if r.Err != nil {
			log.Fatalf("%s: %v", r.Case, r.Err)
		}
		counts[r.Status.Code]++
		p.Printf("%s: %v\n", r.Case, r.Status)
		if r.Status.IsFail() && len(r.Log) > 1 {
			for _, msg := range r.Log[1:] {
				p.Printf("  %s\n", msg)
			}
		}
	}

	p.Printf("%d case(s): %d passed, %d failed, %d warned, %d not supported\n",
		len(formats), counts[blendcts.CodePass], counts[blendcts.CodeFail],
		counts[blendcts.CodeQualityWarning], counts[blendcts.CodeNotSupported])
	if counts[blendcts.CodeFail] > 0 {
		os.Exit(1)
	}
}

// toUint32 rejects flag values that do not fit the uint32 options.
func toUint32(name string, v uint) (uint32, error) {
	if uint64(v) > math.MaxUint32 {
		return 0, fmt.Errorf("-%s %d out of range (max %d)", name, v, uint64(math.MaxUint32))
	}
	return uint32(v), nil
}

// newGenerator builds the generator a run of f on drv uses.
func newGenerator(drv driver.Driver, f vk.Format, limit uint32, seed uint64) (*enumerate.Generator, error) {
	if seed == 0 {
		seed = blendcts.DefaultSeed
	}
	return enumerate.NewGenerator(blendcts.DefaultDualMask, f, limit, enumerate.NewSeeded(seed),
		enumerate.WithBaseFactors(drv.SupportedFactors(f)),
		enumerate.WithBaseOps(drv.SupportedOps(f)))
}

// listStates prints the states a run on info would enumerate.
func listStates(p *message.Printer, drv driver.Driver, info format.Info, limit uint32, seed uint64) error {
	gen, err := newGenerator(drv, info.Format, limit, seed)
	if err != nil {
		return err
	}
	p.Printf("%s: %d states\n", info.Name, gen.Max(false))
	for d, ok := gen.Next(); ok; d, ok = gen.Next() {
		webgpu := "-"
		if bs, ok := d.WebGPU(); ok {
			webgpu = fmt.Sprintf("color %v*src %v %v*dst, alpha %v*src %v %v*dst",
				bs.Color.SrcFactor, bs.Color.Operation, bs.Color.DstFactor,
				bs.Alpha.SrcFactor, bs.Alpha.Operation, bs.Alpha.DstFactor)
		}
		p.Printf("%6d  %-40s %s\n", gen.Count(), d.Name(), webgpu)
	}
	return nil
}
