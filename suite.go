package blendcts

import (
	"context"

	"github.com/gogpu/blendcts/driver"
	"github.com/gogpu/blendcts/format"
	"github.com/gogpu/blendcts/internal/parallel"
)

// Result is the outcome of one case of RunAll.
type Result struct {
	Case   string
	Params Params
	Status Status
	// Log holds the messages the case wrote to its TestLog.
	Log []string
	Err error
}

// RunAll runs every case in params on up to workers goroutines. Each case
// gets a driver of its own from newDriver and a TestLog of its own; a
// WithTestLog option is ignored. Results are in the order of params.
//
// Cases not started when ctx is canceled report ctx.Err().
func RunAll(ctx context.Context, newDriver func() (driver.Driver, error), params []Params, workers int, opts ...Option) []Result {
	results := make([]Result, len(params))
	for i, p := range params {
		results[i] = Result{Case: caseName(p), Params: p}
	}

	pool := parallel.NewPool(workers)
	defer pool.Close()

	started := make([]bool, len(params))
	err := pool.Map(ctx, len(params), func(i int) {
		started[i] = true
		r := &results[i]
		drv, err := newDriver()
		if err != nil {
			r.Err = err
			return
		}
		var tl TestLog
		r.Status, r.Err = Run(ctx, drv, r.Params, append(opts[:len(opts):len(opts)], WithTestLog(&tl))...)
		r.Log = tl.Messages()
	})
	if err != nil {
		for i := range results {
			if !started[i] {
				results[i].Err = err
			}
		}
	}
	return results
}

// AllParams returns the parameters of Cases(ct).
func AllParams(ct driver.ConstructionType) []Params {
	cases := Cases(ct)
	out := make([]Params, len(cases))
	for i, c := range cases {
		out[i] = c.Params()
	}
	return out
}

func caseName(p Params) string {
	if info, ok := format.Lookup(p.Format); ok {
		return GroupName + "/" + info.CaseName()
	}
	return GroupName + "/" + format.Name(p.Format)
}
