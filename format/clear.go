package format

import "github.com/gogpu/wgpu/hal/vulkan/vk"

// clearColor is the default attachment clear color (cornflower blue).
var clearColor = Vec4{0.39, 0.58, 0.93, 1.0}

// ClearColor returns the default clear color for the format's class.
// Signed normalized formats spread the color over [-1, 1].
func (i Info) ClearColor() Vec4 {
	if i.Class == Snorm {
		c := clearColor
		for ch := range c {
			c[ch] = c[ch]*2 - 1
		}
		return c
	}
	return clearColor
}

// DefaultClearColor returns the clear color of f.
func DefaultClearColor(f vk.Format) Vec4 {
	info, _ := Lookup(f)
	return info.ClearColor()
}

// Fill returns a buffer of width*height texels all holding c.
func (i Info) Fill(width, height int, c Vec4) []byte {
	buf := make([]byte, width*height*i.Size)
	if len(buf) == 0 {
		return buf
	}
	i.Encode(buf[:i.Size], c)
	for off := i.Size; off < len(buf); off *= 2 {
		copy(buf[off:], buf[:off])
	}
	return buf
}
