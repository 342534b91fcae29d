package main

import (
	"math"
	"slices"
	"testing"

	"github.com/gogpu/blendcts/driver/reference"
	"github.com/gogpu/wgpu/hal/vulkan/vk"
)

func TestToUint32(t *testing.T) {
	tests := []struct {
		v       uint
		want    uint32
		wantErr bool
	}{
		{0, 0, false},
		{5, 5, false},
		{math.MaxUint32, math.MaxUint32, false},
		{math.MaxUint32 + 6, 0, true},
	}
	for _, tt := range tests {
		got, err := toUint32("limit", tt.v)
		if (err != nil) != tt.wantErr {
			t.Errorf("toUint32(%d) error = %v, wantErr %v", tt.v, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("toUint32(%d) = %d, want %d", tt.v, got, tt.want)
		}
	}
}

// narrowDriver supports only ZERO and ONE with ADD.
type narrowDriver struct {
	*reference.Driver
}

func (narrowDriver) SupportedFactors(vk.Format) []vk.BlendFactor {
	return []vk.BlendFactor{vk.BlendFactorZero, vk.BlendFactorOne}
}

func (narrowDriver) SupportedOps(vk.Format) []vk.BlendOp {
	return []vk.BlendOp{vk.BlendOpAdd}
}

func TestNewGeneratorUsesDriverSupport(t *testing.T) {
	allowed := []vk.BlendFactor{vk.BlendFactorZero, vk.BlendFactorOne}
	gen, err := newGenerator(narrowDriver{reference.New()}, vk.FormatR8g8b8a8Unorm, 5, 0)
	if err != nil {
		t.Fatal(err)
	}
	n := 0
	for d, ok := gen.Next(); ok; d, ok = gen.Next() {
		n++
		if !slices.Contains(allowed, d.SrcColorFactor) || !slices.Contains(allowed, d.DstColorFactor) {
			t.Errorf("state %s uses a color factor the driver does not support", d.Name())
		}
		if d.ColorOp != vk.BlendOpAdd {
			t.Errorf("state %s uses color op %v, want ADD", d.Name(), d.ColorOp)
		}
	}
	if n == 0 {
		t.Fatal("generator produced no states")
	}
}

func TestNewGeneratorSeedFallback(t *testing.T) {
	a, err := newGenerator(reference.New(), vk.FormatR8g8b8a8Unorm, 2, 0)
	if err != nil {
		t.Fatal(err)
	}
	b, err := newGenerator(reference.New(), vk.FormatR8g8b8a8Unorm, 2, 13)
	if err != nil {
		t.Fatal(err)
	}
	for da, ok := a.Next(); ok; da, ok = a.Next() {
		db, _ := b.Next()
		if !da.Equal(db) {
			t.Fatalf("seed 0 gave %s, seed 13 gave %s", da.Name(), db.Name())
		}
	}
}
