package blendcts

import "errors"

// ErrUnknownFormat is returned for case parameters naming a format outside
// the blend format catalogue.
var ErrUnknownFormat = errors.New("blendcts: unknown format")

// ErrUnknownConstruction is returned for case parameters with a
// construction type that does not exist.
var ErrUnknownConstruction = errors.New("blendcts: unknown construction type")

// ErrInstanceClosed is returned by Iterate after Close.
var ErrInstanceClosed = errors.New("blendcts: instance closed")
