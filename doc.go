// Package blendcts cross-validates dual-source color blending against
// ordinary blending on four color attachments.
//
// # Overview
//
// For one attachment format, blendcts walks a reproducible, shuffled subset
// of all blend attachment states (factors and operations). Each state is
// drawn twice: once by a generic pipeline in which the src1 factors are
// replaced by their first-source equivalents and every attachment gets its
// own color, and once by a dual-source pipeline that writes attachment 0
// only, with both fragment outputs holding the color the generic draw used
// for attachment 2. Since both sources carry the same color, the two draws
// must blend to the same values.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/blendcts"
//	    "github.com/gogpu/blendcts/driver"
//	    _ "github.com/gogpu/blendcts/driver/reference"
//	)
//
//	drv, _ := driver.Lookup("")
//	status, err := blendcts.Run(ctx, drv, blendcts.Params{
//	    Format:       vk.FormatR8g8b8a8Unorm,
//	    Construction: driver.Monolithic,
//	})
//
// # Cases
//
// Cases returns one case per format of format.BlendFormats, grouped under
// "multi_attachments" and named after the format. A case first checks
// support (NotSupported is a status, not an error), then opens the driver
// and iterates.
//
// # Statuses
//
// A run ends with Pass ("N iteration(s) processed"), Fail
// ("k iteration(s) from N failed (p%)") or NotSupported. A destination
// buffer that reads back as all zeros makes the iteration a
// QualityWarning, which never counts as a failure.
//
// # Logging
//
// blendcts produces no log output unless SetLogger is called. Which
// per-iteration messages reach the TestLog is decided by the log file
// name, see WithLogFile.
package blendcts
