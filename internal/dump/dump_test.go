package dump

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/gogpu/blendcts/compare"
	"github.com/gogpu/blendcts/format"
	"github.com/gogpu/wgpu/hal/vulkan/vk"
)

func TestImage(t *testing.T) {
	l, err := compare.NewLayout(vk.FormatR8g8b8a8Unorm, 4, 4)
	if err != nil {
		t.Fatal(err)
	}
	buf := l.Format.Fill(4, 4, format.Vec4{1, 0, 0, 1})
	img := Image(buf, l)
	if b := img.Bounds(); b.Dx() != 4*Scale || b.Dy() != 4*Scale {
		t.Fatalf("bounds = %v, want %dx%d", b, 4*Scale, 4*Scale)
	}
	if c := img.NRGBAAt(4*Scale-1, 0); c.R != 255 || c.G != 0 || c.A != 255 {
		t.Errorf("pixel = %v, want opaque red", c)
	}
}

func TestImageSnorm(t *testing.T) {
	l, _ := compare.NewLayout(vk.FormatR8g8b8a8Snorm, 4, 4)
	buf := l.Format.Fill(4, 4, format.Vec4{-1, 1, 0, 1})
	c := Image(buf, l).NRGBAAt(0, 0)
	if c.R != 0 || c.G != 255 || c.B != 128 {
		t.Errorf("pixel = %v, want {0 255 128}", c)
	}
}

func TestTo8(t *testing.T) {
	tests := []struct {
		v    float32
		want uint8
	}{
		{-0.5, 0},
		{0, 0},
		{0.5, 128},
		{1, 255},
		{7, 255},
	}
	for _, tt := range tests {
		if got := to8(tt.v); got != tt.want {
			t.Errorf("to8(%v) = %d, want %d", tt.v, got, tt.want)
		}
	}
}

func TestReadback(t *testing.T) {
	l, _ := compare.NewLayout(vk.FormatR16g16b16a16Sfloat, 4, 4)
	buf := l.Format.Fill(4, 4, format.Vec4{0.25, 0.5, 0.75, 1})
	bufs := [][]byte{buf, buf, buf, buf}
	rb := &compare.Readback{Dest: bufs, Generic: bufs, DualSource: bufs, Source: bufs}

	dir := filepath.Join(t.TempDir(), "nested")
	paths, err := Readback(dir, "iter7", rb, l)
	if err != nil {
		t.Fatalf("Readback() error = %v", err)
	}
	if len(paths) != 16 {
		t.Fatalf("wrote %d files, want 16", len(paths))
	}
	if want := filepath.Join(dir, "iter7_generic_2.png"); paths[10] != want {
		t.Errorf("paths[10] = %q, want %q", paths[10], want)
	}

	f, err := os.Open(paths[0])
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if _, err := png.Decode(f); err != nil {
		t.Errorf("png.Decode() error = %v", err)
	}
}

func TestReadbackShortBuffer(t *testing.T) {
	l, _ := compare.NewLayout(vk.FormatR8g8b8a8Unorm, 4, 4)
	rb := &compare.Readback{Source: [][]byte{make([]byte, 3)}}
	if _, err := Readback(t.TempDir(), "x", rb, l); err == nil {
		t.Error("Readback() accepted a short buffer")
	}
}
