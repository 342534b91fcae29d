package compare

import "errors"

// ErrLayout is returned when a read-back set does not have one buffer per
// attachment, or a buffer is too short for the layout.
var ErrLayout = errors.New("compare: buffers do not match layout")
