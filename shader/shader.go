// Package shader holds the WGSL programs the blend pipelines are built
// from, compiled to SPIR-V with naga.
//
// Besides the SPIR-V binary every fragment program records its outputs
// as found in the naga IR: which location each output is bound to, which
// blend source it feeds, and which color of the uniform block it forwards.
package shader

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gogpu/naga"
	"github.com/gogpu/naga/ir"
	"github.com/gogpu/naga/spirv"
)

var (
	// ErrNoEntryPoint is returned for a source without the expected
	// entry point.
	ErrNoEntryPoint = errors.New("shader: no entry point")

	// ErrOutput is returned when a fragment output cannot be routed to a
	// color of the uniform block.
	ErrOutput = errors.New("shader: unroutable fragment output")
)

// Output is one fragment output of a program.
type Output struct {
	Name     string
	Location uint32
	// BlendSrc is the blend source index; 0 without @blend_src.
	BlendSrc uint32
	// Color is the index of the uniform block member the output forwards.
	Color int
}

// Program is a compiled shader stage.
type Program struct {
	Name    string
	Stage   ir.ShaderStage
	Source  string
	SPIRV   []byte
	Outputs []Output
}

// Compile parses, validates and compiles src to SPIR-V. The source must
// hold exactly one entry point.
func Compile(name, src string) (*Program, error) {
	ast, err := naga.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("shader: %s: %w", name, err)
	}
	module, err := naga.LowerWithSource(ast, src)
	if err != nil {
		return nil, fmt.Errorf("shader: %s: %w", name, err)
	}
	if len(module.EntryPoints) != 1 {
		return nil, fmt.Errorf("%w: %s has %d entry points", ErrNoEntryPoint, name, len(module.EntryPoints))
	}
	errs, err := naga.Validate(module)
	if err != nil {
		return nil, fmt.Errorf("shader: %s: %w", name, err)
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("shader: %s: %w", name, &errs[0])
	}
	spv, err := naga.GenerateSPIRV(module, spirv.Options{Version: spirv.Version1_3})
	if err != nil {
		return nil, fmt.Errorf("shader: %s: %w", name, err)
	}

	ep := module.EntryPoints[0]
	p := &Program{Name: name, Stage: ep.Stage, Source: src, SPIRV: spv}
	if ep.Stage == ir.StageFragment {
		if p.Outputs, err = fragmentOutputs(module, &ep.Function); err != nil {
			return nil, fmt.Errorf("shader: %s: %w", name, err)
		}
	}
	return p, nil
}

// Words returns the SPIR-V binary as little-endian 32-bit words.
func (p *Program) Words() []uint32 {
	words := make([]uint32, len(p.SPIRV)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(p.SPIRV[i*4:])
	}
	return words
}

// DualSource reports whether the program feeds a second blend source.
func (p *Program) DualSource() bool {
	for _, o := range p.Outputs {
		if o.BlendSrc > 0 {
			return true
		}
	}
	return false
}

// Output returns the output bound to location and blend source src.
func (p *Program) Output(location, src uint32) (Output, bool) {
	for _, o := range p.Outputs {
		if o.Location == location && o.BlendSrc == src {
			return o, true
		}
	}
	return Output{}, false
}

func fragmentOutputs(m *ir.Module, fn *ir.Function) ([]Output, error) {
	res := fn.Result
	if res == nil {
		return nil, nil
	}
	if res.Binding != nil {
		o, ok := locationOutput(fn.Name, *res.Binding)
		if !ok {
			return nil, nil
		}
		// a lone output forwards the color of its own location
		o.Color = int(o.Location)
		return []Output{o}, nil
	}
	if int(res.Type) >= len(m.Types) {
		return nil, fmt.Errorf("%w: result type %d out of range", ErrOutput, res.Type)
	}
	st, ok := m.Types[res.Type].Inner.(ir.StructType)
	if !ok {
		return nil, fmt.Errorf("%w: result is neither bound nor a struct", ErrOutput)
	}
	var outs []Output
	for _, mem := range st.Members {
		if mem.Binding == nil {
			continue
		}
		o, ok := locationOutput(mem.Name, *mem.Binding)
		if !ok {
			continue
		}
		if o.Color < 0 {
			return nil, fmt.Errorf("%w: %q does not name a color", ErrOutput, mem.Name)
		}
		outs = append(outs, o)
	}
	return outs, nil
}

func locationOutput(name string, b ir.Binding) (Output, bool) {
	loc, ok := b.(ir.LocationBinding)
	if !ok {
		return Output{}, false
	}
	o := Output{Name: name, Location: loc.Location, Color: colorIndex(name)}
	if loc.BlendSrc != nil {
		o.BlendSrc = *loc.BlendSrc
	}
	return o, true
}

// colorIndex extracts N from an output named "colorN", or returns -1.
func colorIndex(name string) int {
	digits, ok := strings.CutPrefix(name, "color")
	if !ok {
		return -1
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n < 0 {
		return -1
	}
	return n
}
