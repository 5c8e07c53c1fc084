//go:build !nogpu

// Package gpu owns the GPU side of fontview: the dynamic geometry buffer,
// the atlas texture, the shader program and the text renderer.
//
// Everything here uses the public gogpu/wgpu API (zero CGO), so the same
// code drives Vulkan, Metal, DX12 and GLES devices as well as the noop HAL
// device the tests wrap with wgpu.NewDeviceFromHAL.
//
// # Architecture Overview
//
//	layout.Result -> GeometryBuffer.Upload -> Renderer.Draw -> surface view
//
// Key components:
//
//   - GeometryBuffer: two growable vertex buffers (positions, texcoords)
//   - Texture: mipmapped RGBA8 atlas texture, view and anisotropic sampler
//   - Program: vertex and fragment shader modules plus named uniforms
//   - Renderer: pipeline, uniform buffer and bind group for one text block
//
// # Threading
//
// None of these types lock. They must be used from the goroutine that owns
// the device, which in a gogpu application is the draw callback.
//
// # Shaders
//
// The WGSL sources live in shaders/ and are embedded at build time. Program
// compiles them with naga before creating the modules, so a broken shader
// fails at creation rather than at pipeline build.
package gpu
