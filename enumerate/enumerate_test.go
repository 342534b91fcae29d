package enumerate

import (
	"errors"
	"slices"
	"testing"

	"github.com/gogpu/blendcts/blendstate"
	"github.com/gogpu/wgpu/hal/vulkan/vk"
)

func TestFactors_NoDuplicatesNonEmpty(t *testing.T) {
	modes := []AlphaMode{AsIs, Exclude, Only}
	for _, dual := range []bool{false, true} {
		for _, mode := range modes {
			got, err := Factors(nil, dual, mode, NewSeeded(1))
			if err != nil {
				t.Fatalf("Factors(dual=%v, %s) error: %v", dual, mode, err)
			}
			if len(got) == 0 {
				t.Errorf("Factors(dual=%v, %s) is empty", dual, mode)
			}
			seen := make(map[vk.BlendFactor]bool)
			for _, f := range got {
				if seen[f] {
					t.Errorf("Factors(dual=%v, %s) lists %s twice", dual, mode, blendstate.FactorName(f))
				}
				seen[f] = true
			}
		}
	}
}

func TestFactors_Modes(t *testing.T) {
	excl, err := Factors(nil, false, Exclude, NewSeeded(2))
	if err != nil {
		t.Fatal(err)
	}
	for _, f := range excl {
		if blendstate.IsAlphaFactor(f) {
			t.Errorf("Exclude kept alpha factor %s", blendstate.FactorName(f))
		}
	}
	if len(excl) != 8 {
		t.Errorf("len(Exclude) = %d, want 8", len(excl))
	}

	only, err := Factors(nil, false, Only, NewSeeded(2))
	if err != nil {
		t.Fatal(err)
	}
	for _, f := range only {
		if !blendstate.IsAlphaFactor(f) {
			t.Errorf("Only kept non-alpha factor %s", blendstate.FactorName(f))
		}
	}
	if len(only) != 9 {
		t.Errorf("len(Only) = %d, want 9", len(only))
	}
}

func TestFactors_DualSource(t *testing.T) {
	got, err := Factors(nil, true, AsIs, NewSeeded(3))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 15 {
		t.Errorf("len = %d, want 15", len(got))
	}
	for _, f := range []vk.BlendFactor{
		vk.BlendFactorDstColor, vk.BlendFactorOneMinusDstColor,
		vk.BlendFactorDstAlpha, vk.BlendFactorOneMinusDstAlpha,
	} {
		if slices.Contains(got, f) {
			t.Errorf("dual-source set still holds %s", blendstate.FactorName(f))
		}
	}
	if !slices.Contains(got, vk.BlendFactorSrc1Color) {
		t.Error("dual-source set lacks s1c")
	}

	// DST_ALPHA and SRC1_ALPHA collapse onto the same value.
	alpha, err := Factors(nil, true, Only, NewSeeded(3))
	if err != nil {
		t.Fatal(err)
	}
	if len(alpha) != 7 {
		t.Errorf("len(dual Only) = %d, want 7", len(alpha))
	}

	excl, err := Factors(nil, true, Exclude, NewSeeded(3))
	if err != nil {
		t.Fatal(err)
	}
	if len(excl) != 8 {
		t.Errorf("len(dual Exclude) = %d, want 8", len(excl))
	}
}

func TestFactors_Empty(t *testing.T) {
	_, err := Factors([]vk.BlendFactor{}, false, AsIs, NewSeeded(1))
	if !errors.Is(err, ErrConfiguration) {
		t.Errorf("Factors(empty) error = %v, want ErrConfiguration", err)
	}
	onlyAlpha := []vk.BlendFactor{vk.BlendFactorSrcAlpha, vk.BlendFactorConstantAlpha}
	_, err = Factors(onlyAlpha, false, Exclude, NewSeeded(1))
	if !errors.Is(err, ErrConfiguration) {
		t.Errorf("Factors(alpha base, Exclude) error = %v, want ErrConfiguration", err)
	}
}

func TestFactors_Unseeded(t *testing.T) {
	got, err := Factors(nil, false, AsIs, nil)
	if err != nil {
		t.Fatal(err)
	}
	want := blendstate.Factors()
	slices.Sort(got)
	if !slices.Equal(got, want) {
		t.Errorf("unseeded Factors() = %v, want a permutation of %v", got, want)
	}
}

func TestFactors_SeedReproducible(t *testing.T) {
	a, _ := Factors(nil, false, AsIs, NewSeeded(42))
	b, _ := Factors(nil, false, AsIs, NewSeeded(42))
	if !slices.Equal(a, b) {
		t.Errorf("same seed gave %v and %v", a, b)
	}
}

func TestOps(t *testing.T) {
	all, err := Ops(nil, NewSeeded(5), false)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 5 {
		t.Errorf("len(Ops) = %d, want 5", len(all))
	}
	some, err := Ops(nil, NewSeeded(5), true)
	if err != nil {
		t.Fatal(err)
	}
	if len(some) != 3 || slices.Contains(some, vk.BlendOpMin) || slices.Contains(some, vk.BlendOpMax) {
		t.Errorf("Ops(excludeMinMax) = %v", some)
	}
	_, err = Ops([]vk.BlendOp{vk.BlendOpMin}, NewSeeded(5), true)
	if !errors.Is(err, ErrConfiguration) {
		t.Errorf("Ops(min only, exclude) error = %v, want ErrConfiguration", err)
	}
}

func TestGenerator_Exhaustive(t *testing.T) {
	tests := []struct {
		name  string
		f     vk.Format
		sizes [axisCount]int
	}{
		{"rgba", vk.FormatR8g8b8a8Unorm, [axisCount]int{5, 5, 5, 5, 2, 2}},
		{"rgb", vk.FormatR8g8b8Unorm, [axisCount]int{5, 5, 1, 1, 2, 1}},
		{"r", vk.FormatR32Sfloat, [axisCount]int{5, 5, 1, 1, 2, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewGenerator(DstColorFactor|DstAlphaFactor, tt.f, 5, NewSeeded(13))
			if err != nil {
				t.Fatal(err)
			}
			if got := g.AxisSizes(); got != tt.sizes {
				t.Fatalf("AxisSizes() = %v, want %v", got, tt.sizes)
			}
			want := uint64(1)
			for _, n := range tt.sizes {
				want *= uint64(n)
			}
			if got := g.Max(false); got != want {
				t.Errorf("Max(false) = %d, want %d", got, want)
			}

			seen := make(map[blendstate.Descriptor]bool)
			var n uint64
			for d, ok := g.Next(); ok; d, ok = g.Next() {
				n++
				if seen[d] {
					t.Fatalf("combination %d repeats %s", n, d.Name())
				}
				seen[d] = true
				if !d.BlendEnable {
					t.Fatal("BlendEnable = false")
				}
				if !g.HasAlpha() && (d.SrcAlphaFactor != vk.BlendFactorZero || d.DstAlphaFactor != vk.BlendFactorZero) {
					t.Fatalf("%s: alpha factors on a format without alpha", d.Name())
				}
				if !g.HasAlpha() && d.UsesAlphaFactor() {
					t.Fatalf("%s: alpha-specific factor on a format without alpha", d.Name())
				}
				if g.HasAlpha() && (!blendstate.IsAlphaFactor(d.SrcAlphaFactor) || !blendstate.IsAlphaFactor(d.DstAlphaFactor)) {
					t.Fatalf("%s: non-alpha factor on an alpha axis", d.Name())
				}
			}
			if n != want {
				t.Errorf("produced %d combinations, want %d", n, want)
			}
			if uint64(g.Count()) != want {
				t.Errorf("Count() = %d, want %d", g.Count(), want)
			}
			if _, ok := g.Next(); ok {
				t.Error("Next() after exhaustion returned a combination")
			}
		})
	}
}

func TestGenerator_ResetReproduces(t *testing.T) {
	g, err := NewGenerator(DstColorFactor|DstAlphaFactor, vk.FormatR16g16b16a16Sfloat, 4, NewSeeded(7))
	if err != nil {
		t.Fatal(err)
	}
	var first []blendstate.Descriptor
	for d, ok := g.Next(); ok; d, ok = g.Next() {
		first = append(first, d)
	}

	g.Reset()
	if g.Count() != 0 {
		t.Errorf("Count() after Reset = %d, want 0", g.Count())
	}
	i := 0
	for d, ok := g.Next(); ok; d, ok = g.Next() {
		if i >= len(first) || d != first[i] {
			t.Fatalf("pass 2 combination %d = %s, differs from pass 1", i, d.Name())
		}
		i++
	}
	if i != len(first) {
		t.Errorf("pass 2 produced %d, want %d", i, len(first))
	}

	h, err := NewGenerator(DstColorFactor|DstAlphaFactor, vk.FormatR16g16b16a16Sfloat, 4, NewSeeded(7))
	if err != nil {
		t.Fatal(err)
	}
	for i, want := range first {
		d, ok := h.Next()
		if !ok || d != want {
			t.Fatalf("same seed combination %d = %s, want %s", i, d.Name(), want.Name())
		}
	}
}

func TestGenerator_FirstCombination(t *testing.T) {
	mask := DstColorFactor | DstAlphaFactor
	g, err := NewGenerator(mask, vk.FormatR32g32b32a32Sfloat, 5, NewSeeded(13))
	if err != nil {
		t.Fatal(err)
	}
	sets := g.Sets()
	d, ok := g.Next()
	if !ok {
		t.Fatal("Next() = false on a fresh generator")
	}
	if d.SrcColorFactor != sets.SrcColor[0] || d.DstColorFactor != sets.DstColor[0] ||
		d.SrcAlphaFactor != sets.SrcAlpha[0] || d.DstAlphaFactor != sets.DstAlpha[0] ||
		d.ColorOp != sets.ColorOps[0] || d.AlphaOp != sets.AlphaOps[0] {
		t.Errorf("first combination %s is not index 0 of every set", d.Name())
	}
	if g.Count() != 1 {
		t.Errorf("Count() = %d, want 1", g.Count())
	}

	for _, f := range sets.DstColor {
		if f == vk.BlendFactorDstColor || f == vk.BlendFactorOneMinusDstColor {
			t.Errorf("dst color set holds %s, want src1 substitute", blendstate.FactorName(f))
		}
	}
	if !slices.Contains(sets.SrcColor, vk.BlendFactorDstColor) {
		t.Error("src color set lost dc although it is not dual-source restricted")
	}

	// The same seed reproduces the same first combination bit for bit.
	h, _ := NewGenerator(mask, vk.FormatR32g32b32a32Sfloat, 5, NewSeeded(13))
	if e, _ := h.Next(); e != d {
		t.Errorf("same seed first combination = %s, want %s", e.Name(), d.Name())
	}
}

func TestGenerator_MaxExcludingZero(t *testing.T) {
	for _, f := range []vk.Format{vk.FormatR8g8b8a8Unorm, vk.FormatR5g6b5UnormPack16} {
		g, err := NewGenerator(DstColorFactor|DstAlphaFactor, f, 15, NewSeeded(99))
		if err != nil {
			t.Fatal(err)
		}
		var want uint64
		for d, ok := g.Next(); ok; d, ok = g.Next() {
			if !YieldsZero(d) {
				want++
			}
		}
		if got := g.Max(true); got != want {
			t.Errorf("Max(true) = %d, want %d", got, want)
		}
		if g.Max(true) >= g.Max(false) {
			t.Errorf("Max(true) = %d, not below Max(false) = %d", g.Max(true), g.Max(false))
		}
		// Computing the filtered maximum must not move the odometer.
		if _, ok := g.Next(); ok {
			t.Error("Max(true) revived an exhausted generator")
		}
	}
}

func TestGenerator_LimitTooSmall(t *testing.T) {
	for _, limit := range []uint32{0, 1} {
		_, err := NewGenerator(AllFactors, vk.FormatR8g8b8a8Unorm, limit, NewSeeded(1))
		if !errors.Is(err, ErrConfiguration) {
			t.Errorf("NewGenerator(limit=%d) error = %v, want ErrConfiguration", limit, err)
		}
	}
	_, err := NewGenerator(AllFactors, vk.FormatUndefined, 5, NewSeeded(1))
	if !errors.Is(err, ErrConfiguration) {
		t.Errorf("NewGenerator(undefined) error = %v, want ErrConfiguration", err)
	}
}

func TestGenerator_CopyIsIndependent(t *testing.T) {
	g, err := NewGenerator(AllFactors, vk.FormatR8g8b8a8Unorm, 3, NewSeeded(11))
	if err != nil {
		t.Fatal(err)
	}
	g.Next()
	g.Next()
	c := *g
	c.Next()
	c.Next()
	if g.Count() != 2 {
		t.Errorf("original Count() = %d after advancing a copy, want 2", g.Count())
	}
	if c.Count() != 4 {
		t.Errorf("copy Count() = %d, want 4", c.Count())
	}
}

func TestYieldsZero(t *testing.T) {
	tests := []struct {
		name string
		d    blendstate.Descriptor
		want bool
	}{
		{"sub dc sc", blendstate.Descriptor{SrcColorFactor: vk.BlendFactorDstColor, DstColorFactor: vk.BlendFactorSrcColor, ColorOp: vk.BlendOpSubtract}, true},
		{"rsub sc dc", blendstate.Descriptor{SrcColorFactor: vk.BlendFactorSrcColor, DstColorFactor: vk.BlendFactorDstColor, ColorOp: vk.BlendOpReverseSubtract}, true},
		{"zero zero max", blendstate.Descriptor{SrcColorFactor: vk.BlendFactorZero, DstColorFactor: vk.BlendFactorZero, ColorOp: vk.BlendOpMax}, true},
		{"one zero add", blendstate.Descriptor{SrcColorFactor: vk.BlendFactorOne, DstColorFactor: vk.BlendFactorZero, ColorOp: vk.BlendOpAdd}, false},
		{"add dc sc", blendstate.Descriptor{SrcColorFactor: vk.BlendFactorDstColor, DstColorFactor: vk.BlendFactorSrcColor, ColorOp: vk.BlendOpAdd}, false},
		{"sub sc dc", blendstate.Descriptor{SrcColorFactor: vk.BlendFactorSrcColor, DstColorFactor: vk.BlendFactorDstColor, ColorOp: vk.BlendOpSubtract}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := YieldsZero(tt.d); got != tt.want {
				t.Errorf("YieldsZero(%s) = %v, want %v", tt.d.Name(), got, tt.want)
			}
		})
	}
}
