package renderer

import (
	"fmt"

	"github.com/spaghettifunk/anima-cube/engine/core"
	"github.com/spaghettifunk/anima-cube/engine/math"
	"github.com/spaghettifunk/anima-cube/engine/renderer/metadata"
)

/**
 * @brief The outcome of each step of building a shader program.
 */
type ShaderStatus struct {
	VertexCompiled   bool
	FragmentCompiled bool
	Linked           bool
	Validated        bool
}

// Ok reports whether every step succeeded.
func (s ShaderStatus) Ok() bool {
	return s.VertexCompiled && s.FragmentCompiled && s.Linked && s.Validated
}

/**
 * @brief A linked vertex + fragment program. The program handle is valid
 * until Destroy; the stage objects are released right after linking.
 */
type Shader struct {
	device  Device
	program uint32
	status  ShaderStatus
}

type shaderOptions struct {
	strict bool
}

type ShaderOption func(*shaderOptions)

// WithStrictLinking makes CompileShader fail with core.ErrShaderLink when the
// program does not link or validate, instead of returning it anyway.
func WithStrictLinking() ShaderOption {
	return func(o *shaderOptions) {
		o.strict = true
	}
}

// CompileShader builds a program from GLSL source. Compile, link and validate
// failures are logged; by default the program is returned regardless.
func CompileShader(device Device, vertexSource, fragmentSource string, opts ...ShaderOption) (*Shader, error) {
	options := &shaderOptions{}
	for _, o := range opts {
		o(options)
	}

	s := &Shader{
		device:  device,
		program: device.CreateProgram(),
	}

	vertex := device.CreateShader(metadata.ShaderStageVertex)
	fragment := device.CreateShader(metadata.ShaderStageFragment)
	// stages are flagged for deletion whatever happens below
	defer func() {
		device.DeleteShader(vertex)
		device.DeleteShader(fragment)
	}()

	s.status.VertexCompiled = compileStage(device, vertex, metadata.ShaderStageVertex, vertexSource)
	s.status.FragmentCompiled = compileStage(device, fragment, metadata.ShaderStageFragment, fragmentSource)

	device.AttachShader(s.program, vertex)
	device.AttachShader(s.program, fragment)

	ok, info := device.LinkProgram(s.program)
	s.status.Linked = ok
	if !ok {
		core.LogError("Error linking shader program: %s", info)
	}

	ok, info = device.ValidateProgram(s.program)
	s.status.Validated = ok
	if !ok {
		core.LogError("Error validating shader program: %s", info)
	}

	if options.strict && !(s.status.Linked && s.status.Validated) {
		device.DeleteProgram(s.program)
		s.program = 0
		return nil, fmt.Errorf("%w: linked=%t validated=%t", core.ErrShaderLink, s.status.Linked, s.status.Validated)
	}
	return s, nil
}

func compileStage(device Device, shader uint32, stage metadata.ShaderStage, source string) bool {
	ok, info := device.CompileShader(shader, source)
	if !ok {
		core.LogError("Error compiling %s shader: %s", stage, info)
	}
	return ok
}

func (s *Shader) Status() ShaderStatus {
	return s.status
}

func (s *Shader) Use() {
	s.device.UseProgram(s.program)
}

func (s *Shader) Unbind() {
	s.device.UseProgram(0)
}

// SetUniformInt resolves name on every call. Unknown names are a no-op.
func (s *Shader) SetUniformInt(name string, value int32) {
	s.device.UniformInt(s.device.UniformLocation(s.program, name), value)
}

// SetUniformMat4 uploads value column-major. Unknown names are a no-op.
func (s *Shader) SetUniformMat4(name string, value math.Mat4) {
	s.device.UniformMat4(s.device.UniformLocation(s.program, name), &value.Data)
}

func (s *Shader) Destroy() {
	if s.program == 0 {
		return
	}
	s.device.DeleteProgram(s.program)
	s.program = 0
}
