package driver

import (
	"errors"
	"fmt"
)

// Common driver errors.
var (
	// ErrNotSupported is returned when the driver cannot run a
	// configuration at all. It is a verdict, not a failure.
	ErrNotSupported = errors.New("driver: not supported")

	// ErrNotOpen is returned when a resource call precedes Open.
	ErrNotOpen = errors.New("driver: not open")

	// ErrPipelineNotRebuilt is returned by RecreatePipeline when a rebuild
	// was checked and yielded the handle of the previous pipeline.
	ErrPipelineNotRebuilt = errors.New("driver: pipeline not rebuilt")

	// ErrDriverNotAvailable is returned when no driver is registered under
	// a requested name.
	ErrDriverNotAvailable = errors.New("driver: not available")
)

// NotSupportedError carries the reason a configuration is not supported.
type NotSupportedError struct {
	Reason string
}

// NotSupported returns a *NotSupportedError with a formatted reason.
func NotSupported(msg string, args ...any) error {
	return &NotSupportedError{Reason: fmt.Sprintf(msg, args...)}
}

func (e *NotSupportedError) Error() string {
	return "driver: not supported: " + e.Reason
}

// Unwrap makes errors.Is(err, ErrNotSupported) hold.
func (e *NotSupportedError) Unwrap() error { return ErrNotSupported }
