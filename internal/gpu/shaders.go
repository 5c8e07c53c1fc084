//go:build !nogpu

package gpu

import _ "embed"

// Embedded WGSL shader sources.

//go:embed shaders/text.vert.wgsl
var textVertexShaderSource string

//go:embed shaders/text.frag.wgsl
var textFragmentShaderSource string

// TextVertexShaderSource returns the WGSL source of the text vertex stage.
func TextVertexShaderSource() string {
	return textVertexShaderSource
}

// TextFragmentShaderSource returns the WGSL source of the text fragment stage.
func TextFragmentShaderSource() string {
	return textFragmentShaderSource
}

// TextColorUniform is the name of the tint uniform in the fragment stage.
const TextColorUniform = "text_color"

// TextUniforms describes the uniform block of the text shaders.
func TextUniforms() []Uniform {
	return []Uniform{{Name: TextColorUniform, Offset: 0, Size: 16}}
}
