package driver

import (
	"fmt"
	"sort"

	"github.com/gogpu/gpucontext"
)

// Factory creates a new, unopened driver.
type Factory func() Driver

// Reference is the name of the CPU reference driver.
const Reference = "reference"

// drivers holds the registered factories. Hardware drivers take priority
// over the reference driver when both are registered.
var drivers = gpucontext.NewRegistry[Driver](
	gpucontext.WithPriority("vulkan", Reference),
)

// Register registers a driver factory with the given name.
// This is typically called from init() functions in driver packages.
// If a driver with the same name is already registered, it is replaced.
func Register(name string, factory Factory) {
	drivers.Register(name, factory)
}

// Unregister removes a driver from the registry.
func Unregister(name string) {
	drivers.Unregister(name)
}

// Available returns the registered driver names in sorted order.
func Available() []string {
	names := drivers.Available()
	sort.Strings(names)
	return names
}

// IsRegistered reports whether a driver is registered under name.
func IsRegistered(name string) bool {
	return drivers.Has(name)
}

// Get returns a new driver instance by name, or nil if none is registered.
func Get(name string) Driver {
	return drivers.Get(name)
}

// Default returns a new instance of the highest-priority registered
// driver, or nil if none is registered.
func Default() Driver {
	return drivers.Best()
}

// Lookup is Get with ErrDriverNotAvailable for an unknown name. An empty
// name selects Default.
func Lookup(name string) (Driver, error) {
	var d Driver
	if name == "" {
		d = Default()
	} else {
		d = Get(name)
	}
	if d == nil {
		return nil, fmt.Errorf("%w: %q", ErrDriverNotAvailable, name)
	}
	return d, nil
}
