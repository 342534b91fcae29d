package enumerate

import "errors"

// ErrConfiguration is returned when a candidate set or an enumeration axis
// ends up empty after filtering. It marks a broken configuration, not an
// environment limitation: the run must stop rather than enumerate nothing.
var ErrConfiguration = errors.New("enumerate: configuration error")
