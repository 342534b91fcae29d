package reference

import (
	"github.com/gogpu/blendcts/blendstate"
	"github.com/gogpu/blendcts/compare"
	"github.com/gogpu/blendcts/format"
	"github.com/gogpu/blendcts/shader"
)

// target is the blend state of one color attachment and whether the
// attachment takes part in a draw at all.
type target struct {
	state blendstate.Descriptor
	write bool
}

// pipeline is a baked draw configuration. Shader-object drivers build a
// fresh one per draw from dynamic state; it then has handle 0.
type pipeline struct {
	handle     uint64
	dualSource bool
	program    *shader.Program
	targets    [compare.Attachments]target
}

// genericTargets routes state.Generic() to every attachment but the
// first, which the generic render pass leaves unused.
func genericTargets(state blendstate.Descriptor) [compare.Attachments]target {
	var t [compare.Attachments]target
	g := state.Generic()
	for i := range t {
		t[i] = target{state: g, write: i != 0}
	}
	return t
}

// dualTargets routes state to attachment 0 only.
func dualTargets(state blendstate.Descriptor) [compare.Attachments]target {
	var t [compare.Attachments]target
	t[0] = target{state: state, write: true}
	return t
}

// colorFor returns the block color the program writes to location and
// blend source src. A missing output reads as zero.
func (p *pipeline) colorFor(colors *[compare.Attachments]format.Vec4, location, src uint32) format.Vec4 {
	o, ok := p.program.Output(location, src)
	if !ok || o.Color < 0 || o.Color >= len(colors) {
		return format.Vec4{}
	}
	return colors[o.Color]
}
