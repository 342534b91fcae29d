// Package enumerate builds the candidate blend factor and operation sets and
// walks every combination of them with a mixed-radix odometer.
package enumerate

import (
	"fmt"
	"slices"

	"github.com/gogpu/blendcts/blendstate"
	"github.com/gogpu/wgpu/hal/vulkan/vk"
)

// AlphaMode selects how alpha-specific factors take part in a candidate set.
type AlphaMode int

const (
	// AsIs keeps the factor list unfiltered.
	AsIs AlphaMode = iota
	// Exclude drops every alpha-specific factor.
	Exclude
	// Only uses exactly the alpha-specific factor set.
	Only
)

// String returns the mode name.
func (m AlphaMode) String() string {
	switch m {
	case AsIs:
		return "as-is"
	case Exclude:
		return "exclude"
	case Only:
		return "only"
	default:
		return fmt.Sprintf("AlphaMode(%d)", int(m))
	}
}

// Factors returns the candidate factors for one channel role.
//
// base is the supported factor list of the target format; nil means
// blendstate.Factors(). With dualSource set, destination factors are
// replaced by their src1 counterparts and the list is sorted and
// deduplicated. The result is shuffled with rnd; a nil rnd falls back to
// the unseeded source and logs a warning.
func Factors(base []vk.BlendFactor, dualSource bool, mode AlphaMode, rnd Shuffler) ([]vk.BlendFactor, error) {
	var factors []vk.BlendFactor
	switch {
	case mode == Only:
		factors = blendstate.AlphaFactors()
	case base == nil:
		factors = blendstate.Factors()
	default:
		factors = slices.Clone(base)
	}

	if dualSource {
		for i, f := range factors {
			factors[i] = blendstate.DualSourceCounterpart(f)
		}
		slices.Sort(factors)
		factors = slices.Compact(factors)
	}

	if mode == Exclude {
		factors = slices.DeleteFunc(factors, blendstate.IsAlphaFactor)
	}

	shuffler(rnd, "factors").Shuffle(len(factors), func(i, j int) {
		factors[i], factors[j] = factors[j], factors[i]
	})

	if len(factors) == 0 {
		return nil, fmt.Errorf("%w: no blend factors left (dual source %v, alpha %s)",
			ErrConfiguration, dualSource, mode)
	}
	return factors, nil
}

// Ops returns the candidate blend operations. base nil means
// blendstate.Ops().
func Ops(base []vk.BlendOp, rnd Shuffler, excludeMinMax bool) ([]vk.BlendOp, error) {
	var ops []vk.BlendOp
	if base == nil {
		ops = blendstate.Ops()
	} else {
		ops = slices.Clone(base)
	}

	if excludeMinMax {
		ops = slices.DeleteFunc(ops, func(op vk.BlendOp) bool {
			return op == vk.BlendOpMin || op == vk.BlendOpMax
		})
	}

	shuffler(rnd, "ops").Shuffle(len(ops), func(i, j int) {
		ops[i], ops[j] = ops[j], ops[i]
	})

	if len(ops) == 0 {
		return nil, fmt.Errorf("%w: no blend operations left", ErrConfiguration)
	}
	return ops, nil
}
