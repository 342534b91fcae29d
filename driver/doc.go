// Package driver defines the rendering backend the blend checks run on.
//
// A Driver owns every device resource of a run: the four color
// attachments, their read-back buffers, the generic and dual-source
// pipelines, and the command submission that draws into them. The checks
// only see host byte slices handed back by Execute.
//
// # Driver Registration
//
// Drivers register a factory on import and are selected by name:
//
//	import _ "github.com/gogpu/blendcts/driver/reference"
//
//	drv := driver.Get("reference")
//
// Default returns the highest-priority driver that is registered.
//
// # Construction Types
//
// Pipelines are built according to a ConstructionType. Monolithic and the
// two pipeline-library types bake the blend state into a pipeline object;
// the four shader-object types set it as dynamic state instead. Only
// drivers branch on the construction type.
package driver
