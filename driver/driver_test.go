package driver

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/gogpu/blendcts/blendstate"
	"github.com/gogpu/blendcts/compare"
	"github.com/gogpu/blendcts/format"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/wgpu/hal/vulkan/vk"
)

func TestConstructionTypes(t *testing.T) {
	types := ConstructionTypes()
	if len(types) != 7 {
		t.Fatalf("len(ConstructionTypes()) = %d, want 7", len(types))
	}
	tests := []struct {
		ct           ConstructionType
		name         string
		library      bool
		shaderObject bool
	}{
		{Monolithic, "monolithic", false, false},
		{LinkTimeOptimizedLibrary, "pipeline_library", true, false},
		{FastLinkedLibrary, "fast_linked_library", true, false},
		{ShaderObjectUnlinkedSPIRV, "shader_object_unlinked_spirv", false, true},
		{ShaderObjectUnlinkedBinary, "shader_object_unlinked_binary", false, true},
		{ShaderObjectLinkedSPIRV, "shader_object_linked_spirv", false, true},
		{ShaderObjectLinkedBinary, "shader_object_linked_binary", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ct.String(); got != tt.name {
				t.Errorf("String() = %q, want %q", got, tt.name)
			}
			if got := tt.ct.IsLibrary(); got != tt.library {
				t.Errorf("IsLibrary() = %v, want %v", got, tt.library)
			}
			if got := tt.ct.IsShaderObject(); got != tt.shaderObject {
				t.Errorf("IsShaderObject() = %v, want %v", got, tt.shaderObject)
			}
			parsed, err := ParseConstructionType(tt.name)
			if err != nil || parsed != tt.ct {
				t.Errorf("ParseConstructionType(%q) = %v, %v", tt.name, parsed, err)
			}
		})
	}
	if _, err := ParseConstructionType("bogus"); err == nil {
		t.Error("ParseConstructionType(bogus) error = nil")
	}
	if got := ConstructionType(42).String(); got != "ConstructionType(42)" {
		t.Errorf("String() = %q", got)
	}
}

func TestConfigExtensions(t *testing.T) {
	tests := []struct {
		ct   ConstructionType
		want []string
	}{
		{Monolithic, nil},
		{FastLinkedLibrary, []string{ExtGraphicsPipelineLibrary, ExtPipelineLibrary}},
		{ShaderObjectLinkedBinary, []string{ExtShaderObject, ExtDynamicRendering, ExtColorWriteEnable}},
	}
	for _, tt := range tests {
		got := Config{Construction: tt.ct}.Extensions()
		if !slices.Equal(got, tt.want) {
			t.Errorf("%s: Extensions() = %v, want %v", tt.ct, got, tt.want)
		}
		for _, req := range tt.ct.Required() {
			if !slices.Contains(got, req) {
				t.Errorf("%s: required %s is not enabled", tt.ct, req)
			}
		}
	}
}

func TestFormatSupport(t *testing.T) {
	blend := vk.FormatFeatureFlags(vk.FormatFeatureColorAttachmentBit | vk.FormatFeatureColorAttachmentBlendBit)
	tests := []struct {
		name     string
		features vk.FormatFeatureFlags
		blend    bool
		transfer bool
	}{
		{"none", 0, false, false},
		{"attachment only", vk.FormatFeatureFlags(vk.FormatFeatureColorAttachmentBit), false, false},
		{"blend", blend, true, false},
		{"all", blend | FormatFeatureTransferSrc | FormatFeatureTransferDst, true, true},
		{"src only", blend | FormatFeatureTransferSrc, true, false},
	}
	for _, tt := range tests {
		s := FormatSupport{Properties: vk.FormatProperties{OptimalTilingFeatures: tt.features}}
		if s.Blend() != tt.blend || s.Transfer() != tt.transfer {
			t.Errorf("%s: Blend() = %v, Transfer() = %v, want %v, %v",
				tt.name, s.Blend(), s.Transfer(), tt.blend, tt.transfer)
		}
	}
}

func TestDefaultDraw(t *testing.T) {
	d := DefaultDraw(vk.FormatR8g8b8a8Unorm)
	for i, c := range d.DualSource {
		if c != d.Generic[compare.ReusedColor] {
			t.Errorf("DualSource[%d] = %v, want %v", i, c, d.Generic[compare.ReusedColor])
		}
	}
	if d.Source != d.Generic {
		t.Error("Source colors differ from the generic block")
	}
	if d.Clear != format.DefaultClearColor(vk.FormatR8g8b8a8Unorm) {
		t.Errorf("Clear = %v", d.Clear)
	}
	if d.Generic[0] != (format.Vec4{0.1, 0, 0.5, 0.25}) {
		t.Errorf("Generic[0] = %v", d.Generic[0])
	}

	snorm := DefaultDraw(vk.FormatR8g8b8a8Snorm)
	if snorm.Clear[0] >= 0 {
		t.Errorf("snorm clear red = %v, want negative", snorm.Clear[0])
	}
}

func TestNotSupportedError(t *testing.T) {
	err := NotSupported("Unsupported color blending format: %s", "VK_FORMAT_R8_UNORM")
	if !errors.Is(err, ErrNotSupported) {
		t.Error("errors.Is(err, ErrNotSupported) = false")
	}
	var nse *NotSupportedError
	if !errors.As(err, &nse) || nse.Reason != "Unsupported color blending format: VK_FORMAT_R8_UNORM" {
		t.Errorf("errors.As = %v, reason %q", nse != nil, nse.Reason)
	}
}

type stubDriver struct{ name string }

func (s *stubDriver) Name() string { return s.name }

func (s *stubDriver) Info() gpucontext.AdapterInfo { return gpucontext.AdapterInfo{Name: s.name} }

func (s *stubDriver) Capabilities() Capabilities { return Capabilities{} }

func (s *stubDriver) FormatSupport(vk.Format) FormatSupport { return FormatSupport{} }

func (s *stubDriver) SupportedFactors(vk.Format) []vk.BlendFactor { return nil }

func (s *stubDriver) SupportedOps(vk.Format) []vk.BlendOp { return nil }

func (s *stubDriver) Open(context.Context, Config) error { return nil }

func (s *stubDriver) CreateStorages([]vk.Format) error { return nil }

func (s *stubDriver) CreateRenderPassesAndFramebuffers([]vk.Format) error {
	return nil
}

func (s *stubDriver) RecreatePipeline(bool, blendstate.Descriptor, bool) error { return nil }

func (s *stubDriver) Execute(context.Context, blendstate.Descriptor, Draw) (*compare.Readback, error) {
	return nil, nil
}

func (s *stubDriver) Close() error { return nil }

func TestRegistry(t *testing.T) {
	Register("stub-b", func() Driver { return &stubDriver{name: "stub-b"} })
	Register("stub-a", func() Driver { return &stubDriver{name: "stub-a"} })
	t.Cleanup(func() {
		Unregister("stub-a")
		Unregister("stub-b")
	})

	if !IsRegistered("stub-a") {
		t.Error("IsRegistered(stub-a) = false")
	}
	names := Available()
	if !slices.IsSorted(names) {
		t.Errorf("Available() = %v, not sorted", names)
	}
	if d := Get("stub-a"); d == nil || d.Name() != "stub-a" {
		t.Errorf("Get(stub-a) = %v", d)
	}
	if d := Get("missing"); d != nil {
		t.Errorf("Get(missing) = %v, want nil", d)
	}
	if _, err := Lookup("missing"); !errors.Is(err, ErrDriverNotAvailable) {
		t.Errorf("Lookup(missing) error = %v, want ErrDriverNotAvailable", err)
	}
	if d, err := Lookup(""); err != nil || d == nil {
		t.Errorf("Lookup(\"\") = %v, %v", d, err)
	}

	Unregister("stub-a")
	if IsRegistered("stub-a") {
		t.Error("stub-a still registered after Unregister")
	}
}
