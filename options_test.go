package blendcts

import (
	"math"
	"testing"
)

func TestDefaultOptions(t *testing.T) {
	o := newOptions(nil)
	if o.limit != DefaultLimit {
		t.Errorf("limit = %d, want %d", o.limit, DefaultLimit)
	}
	if o.dualMask != DefaultDualMask {
		t.Errorf("dualMask = %v, want %v", o.dualMask, DefaultDualMask)
	}
	if o.maxFailCount != math.MaxUint32 {
		t.Errorf("maxFailCount = %d, want MaxUint32", o.maxFailCount)
	}
	if o.excludeYieldingZero {
		t.Error("excludeYieldingZero is on by default")
	}
	if o.log == nil {
		t.Error("no default TestLog")
	}
	if got := o.baseSeed(); got != DefaultSeed {
		t.Errorf("baseSeed() = %d, want %d", got, DefaultSeed)
	}
}

func TestOptions(t *testing.T) {
	var tl TestLog
	o := newOptions([]Option{
		WithSeed(7),
		WithLimit(3),
		WithDualMask(0),
		WithMaxFailCount(4),
		WithExcludeYieldingZero(true),
		WithDumpDir("dumps"),
		WithTestLog(&tl),
	})
	if o.baseSeed() != 7 || o.limit != 3 || o.dualMask != 0 || o.maxFailCount != 4 ||
		!o.excludeYieldingZero || o.dumpDir != "dumps" || o.log != &tl {
		t.Errorf("options = %+v", o)
	}
}

func TestLogFlags(t *testing.T) {
	tests := []struct {
		file string
		want logFlags
	}{
		{"", logFlags{}},
		{"TestResults.qpa", logFlags{}},
		{"pass_warn_fail.qpa", logFlags{}},
		{"dual_blend.qpa", logFlags{}},
		{"dual_blend_fail.qpa", logFlags{fail: true}},
		{"dual_blend_pass_warn.qpa", logFlags{pass: true, warn: true}},
		{"/tmp/pass/dual_blend_warn.qpa", logFlags{warn: true}},
		{"/tmp/dual_blend_fail/results.qpa", logFlags{}},
	}
	for _, tt := range tests {
		o := newOptions([]Option{WithLogFile(tt.file)})
		if got := o.logFlags(); got != tt.want {
			t.Errorf("logFlags(%q) = %+v, want %+v", tt.file, got, tt.want)
		}
	}
}
