package scene

import "embed"

// ShaderFS holds the default GLSL sources under shaders/. A file of the
// same path under the resource root takes precedence.
//
//go:embed shaders/*.vert shaders/*.frag
var ShaderFS embed.FS
