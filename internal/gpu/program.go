//go:build !nogpu

package gpu

import (
	"fmt"
	"regexp"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu"
)

// Uniform is a named member of the program's uniform block.
type Uniform struct {
	Name   string
	Offset uint64
	Size   uint64
}

// Program is a pair of compiled shader modules plus the uniforms they use.
type Program struct {
	noCopy noCopy

	vertex   *wgpu.ShaderModule
	fragment *wgpu.ShaderModule

	uniforms    map[string]Uniform
	uniformSize uint64
}

// NewProgram validates the vertex and fragment WGSL sources by compiling
// them with naga and creates a shader module for each.
//
// Only uniforms whose names occur in one of the sources are registered;
// UniformLocation reports the rest as missing.
func NewProgram(device *wgpu.Device, vertexSrc, fragmentSrc string, uniforms ...Uniform) (*Program, error) {
	if device == nil {
		return nil, ErrNilDevice
	}
	if vertexSrc == "" || fragmentSrc == "" {
		return nil, ErrEmptyShader
	}

	vertex, err := createShaderModule(device, "fontview_text_vs", vertexSrc)
	if err != nil {
		return nil, fmt.Errorf("vertex stage: %w", err)
	}
	fragment, err := createShaderModule(device, "fontview_text_fs", fragmentSrc)
	if err != nil {
		vertex.Release()
		return nil, fmt.Errorf("fragment stage: %w", err)
	}

	p := &Program{
		vertex:   vertex,
		fragment: fragment,
		uniforms: make(map[string]Uniform, len(uniforms)),
	}
	for _, u := range uniforms {
		re := regexp.MustCompile(`\b` + regexp.QuoteMeta(u.Name) + `\b`)
		if !re.MatchString(vertexSrc) && !re.MatchString(fragmentSrc) {
			slogger().Warn("uniform not used by shaders", "name", u.Name)
			continue
		}
		p.uniforms[u.Name] = u
		p.uniformSize = max(p.uniformSize, u.Offset+u.Size)
	}

	return p, nil
}

// createShaderModule checks that src compiles with naga, then hands the
// WGSL to the device so each backend can translate it natively.
func createShaderModule(device *wgpu.Device, label, src string) (*wgpu.ShaderModule, error) {
	if _, err := naga.Compile(src); err != nil {
		return nil, fmt.Errorf("compile %s: %w", label, err)
	}

	module, err := device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: label,
		WGSL:  src,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", label, err)
	}
	return module, nil
}

// UniformLocation returns the uniform called name.
func (p *Program) UniformLocation(name string) (Uniform, error) {
	u, ok := p.uniforms[name]
	if !ok {
		return Uniform{}, fmt.Errorf("%w: %q", ErrUniformNotFound, name)
	}
	return u, nil
}

// UniformSize returns the byte size of the uniform block.
func (p *Program) UniformSize() uint64 {
	return p.uniformSize
}

// Modules returns the vertex and fragment shader modules.
func (p *Program) Modules() (vertex, fragment *wgpu.ShaderModule) {
	return p.vertex, p.fragment
}

// Destroy releases both shader modules. Safe to call more than once.
func (p *Program) Destroy() {
	if p.vertex != nil {
		p.vertex.Release()
		p.vertex = nil
	}
	if p.fragment != nil {
		p.fragment.Release()
		p.fragment = nil
	}
}
