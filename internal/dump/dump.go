// Package dump writes the attachments of an iteration as PNG images.
package dump

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"github.com/gogpu/blendcts/compare"
	"github.com/gogpu/blendcts/format"
	xdraw "golang.org/x/image/draw"
)

// Scale is the upscale factor applied to every attachment image.
const Scale = 16

// Image converts one attachment buffer into an NRGBA image, upscaled by
// Scale. Channel values are clamped to [0, 1]; signed formats are mapped
// from [-1, 1].
func Image(buf []byte, l compare.Layout) *image.NRGBA {
	src := image.NewNRGBA(image.Rect(0, 0, l.Width, l.Height))
	signed := l.Format.Class == format.Snorm
	for y := 0; y < l.Height; y++ {
		for x := 0; x < l.Width; x++ {
			c := l.Pixel(buf, x, y)
			var px color.NRGBA
			ch := [4]*uint8{&px.R, &px.G, &px.B, &px.A}
			for i, p := range ch {
				v := c[i]
				if signed && i < 3 {
					v = (v + 1) / 2
				}
				*p = to8(v)
			}
			src.SetNRGBA(x, y, px)
		}
	}

	dst := image.NewNRGBA(image.Rect(0, 0, l.Width*Scale, l.Height*Scale))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}

func to8(v float32) uint8 {
	switch {
	case v != v || v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return uint8(v*255 + 0.5)
}

// Readback writes every buffer of rb into dir as
// <prefix>_<kind>_<attachment>.png and returns the written paths.
// dir is created if missing.
func Readback(dir, prefix string, rb *compare.Readback, l compare.Layout) ([]string, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("dump: %w", err)
	}
	kinds := []struct {
		name string
		bufs [][]byte
	}{
		{"source", rb.Source},
		{"dest", rb.Dest},
		{"generic", rb.Generic},
		{"dual", rb.DualSource},
	}
	var paths []string
	for _, k := range kinds {
		for i, buf := range k.bufs {
			if len(buf) < l.Size() {
				return paths, fmt.Errorf("dump: %s buffer %d holds %d bytes, want %d", k.name, i, len(buf), l.Size())
			}
			path := filepath.Join(dir, fmt.Sprintf("%s_%s_%d.png", prefix, k.name, i))
			if err := save(path, Image(buf, l)); err != nil {
				return paths, err
			}
			paths = append(paths, path)
		}
	}
	return paths, nil
}

func save(path string, img image.Image) error {
	f, err := os.Create(path) //nolint:gosec // path is built from the configured dump dir
	if err != nil {
		return fmt.Errorf("dump: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("dump: encode %s: %w", path, err)
	}
	return f.Close()
}
