// Package compare checks the read-back attachment buffers of one blend
// iteration against each other.
//
// Pixels are decoded through the attachment format and compared channel by
// channel with a fixed absolute tolerance.
package compare

import (
	"fmt"

	"github.com/gogpu/blendcts/format"
	"github.com/gogpu/wgpu/hal/vulkan/vk"
)

const (
	// Tolerance is the largest absolute channel difference, exclusive,
	// for two pixels to count as equal.
	Tolerance = 1.0e-4

	// Attachments is the number of color attachments of the generic
	// pipeline.
	Attachments = 4

	// ReusedColor is the generic attachment whose push color the
	// dual-source draw feeds to both blend sources.
	ReusedColor = 2

	// Width and Height give the render area of every attachment.
	Width  = 4
	Height = 4
)

// Layout describes how a buffer holds its pixels.
type Layout struct {
	Format format.Info
	Width  int
	Height int
}

// NewLayout returns the layout of a width x height image of format f.
func NewLayout(f vk.Format, width, height int) (Layout, error) {
	info, ok := format.Lookup(f)
	if !ok {
		return Layout{}, fmt.Errorf("%w: unknown format %d", ErrLayout, f)
	}
	return Layout{Format: info, Width: width, Height: height}, nil
}

// Size returns the number of bytes a buffer of the layout occupies.
func (l Layout) Size() int { return l.Width * l.Height * l.Format.Size }

// Pixel decodes the pixel at (x, y) of buf.
func (l Layout) Pixel(buf []byte, x, y int) format.Vec4 {
	off := (y*l.Width + x) * l.Format.Size
	return l.Format.Decode(buf[off : off+l.Format.Size])
}

// PixelsEqual reports whether every channel of a and b lies within
// Tolerance of the other.
func PixelsEqual(a, b format.Vec4) bool {
	for ch := range a {
		d := a[ch] - b[ch]
		if d < 0 {
			d = -d
		}
		if !(d < Tolerance) {
			return false
		}
	}
	return true
}

// Buffers compares received against expected pixel by pixel. With eq set
// every pixel must be equal; with eq unset every pixel must differ. The
// scan stops at the first pixel that breaks the requirement. Buffers
// shorter than the layout never compare successfully.
func Buffers(received, expected []byte, l Layout, eq bool) bool {
	if len(received) < l.Size() || len(expected) < l.Size() {
		return false
	}
	for y := 0; y < l.Height; y++ {
		for x := 0; x < l.Width; x++ {
			if PixelsEqual(l.Pixel(received, x, y), l.Pixel(expected, x, y)) != eq {
				return false
			}
		}
	}
	return true
}

// IsZero reports whether every byte of buf is zero.
func IsZero(buf []byte) bool {
	for _, b := range buf {
		if b != 0 {
			return false
		}
	}
	return true
}
