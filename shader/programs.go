package shader

import (
	_ "embed"
	"fmt"
	"sort"
	"sync"
)

// Program names.
const (
	CommonVert  = "common_vert"
	GenericFrag = "generic_frag"
	DualFrag    = "dual_frag"
)

//go:embed shaders/common.wgsl
var commonVertWGSL string

//go:embed shaders/generic.wgsl
var genericFragWGSL string

//go:embed shaders/dual.wgsl
var dualFragWGSL string

var sources = map[string]string{
	CommonVert:  commonVertWGSL,
	GenericFrag: genericFragWGSL,
	DualFrag:    dualFragWGSL,
}

// Collection is a set of compiled programs keyed by name.
type Collection struct {
	programs map[string]*Program
}

// Get returns the program registered under name.
func (c *Collection) Get(name string) (*Program, bool) {
	p, ok := c.programs[name]
	return p, ok
}

// Names returns the program names in sorted order.
func (c *Collection) Names() []string {
	names := make([]string, 0, len(c.programs))
	for name := range c.programs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var (
	builtinOnce sync.Once
	builtin     *Collection
	builtinErr  error
)

// Programs returns the three built-in programs. They are compiled on the
// first call and shared afterwards.
func Programs() (*Collection, error) {
	builtinOnce.Do(func() {
		c := &Collection{programs: make(map[string]*Program, len(sources))}
		for name, src := range sources {
			p, err := Compile(name, src)
			if err != nil {
				builtinErr = fmt.Errorf("compile %s: %w", name, err)
				return
			}
			c.programs[name] = p
		}
		builtin = c
	})
	return builtin, builtinErr
}
